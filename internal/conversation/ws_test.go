package conversation

import (
	"net/http/httptest"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

func dialChatWS(t *testing.T, model *fakeModel) *websocket.Conn {
	t.Helper()
	h, _ := newTestHandler(model, &fakeExtractor{text: "unused"})

	e := echo.New()
	e.GET("/chat/ws", h.ChatWS)
	server := httptest.NewServer(e)
	t.Cleanup(server.Close)

	wsURL := "ws" + server.URL[4:] + "/chat/ws"
	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	t.Cleanup(func() { ws.Close() })
	return ws
}

func readFragment(t *testing.T, ws *websocket.Conn) wsFragment {
	t.Helper()
	var frag wsFragment
	if err := ws.ReadJSON(&frag); err != nil {
		t.Fatalf("read error: %v", err)
	}
	return frag
}

func TestChatWS_StreamsFragmentsThenDone(t *testing.T) {
	model := &fakeModel{fragments: []string{"goroutines ", "are cheap"}}
	ws := dialChatWS(t, model)

	if err := ws.WriteJSON(wsQuestion{Question: "what does a goroutine cost?"}); err != nil {
		t.Fatalf("write error: %v", err)
	}

	for i, want := range []string{"goroutines ", "are cheap"} {
		frag := readFragment(t, ws)
		if frag.Type != "fragment" {
			t.Fatalf("message %d: expected type fragment, got %s", i, frag.Type)
		}
		if frag.Content != want {
			t.Errorf("message %d: expected %q, got %q", i, want, frag.Content)
		}
	}

	done := readFragment(t, ws)
	if done.Type != "done" {
		t.Errorf("expected done marker, got %s", done.Type)
	}
}

func TestChatWS_EmptyQuestion(t *testing.T) {
	model := &fakeModel{fragments: []string{"never sent"}}
	ws := dialChatWS(t, model)

	if err := ws.WriteJSON(wsQuestion{Question: "   "}); err != nil {
		t.Fatalf("write error: %v", err)
	}

	frag := readFragment(t, ws)
	if frag.Type != "error" {
		t.Fatalf("expected error message, got %s", frag.Type)
	}
	if model.calls.Load() != 0 {
		t.Errorf("expected no model calls, got %d", model.calls.Load())
	}

	// the loop stays open for the next question
	if err := ws.WriteJSON(wsQuestion{Question: "for real this time"}); err != nil {
		t.Fatalf("write error: %v", err)
	}
	frag = readFragment(t, ws)
	if frag.Type != "fragment" || frag.Content != "never sent" {
		t.Errorf("expected fragment after recovery, got %+v", frag)
	}
}
