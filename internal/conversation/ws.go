package conversation

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type wsQuestion struct {
	Question string `json:"question"`
}

type wsFragment struct {
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
}

// @Summary      Streaming chat over WebSocket
// @Description  Accepts {"question": "..."} messages and streams reply fragments, terminated by a done marker
// @Tags         chat
// @Success      101  "Switching Protocols"
// @Router       /chat/ws [get]
func (h *Handler) ChatWS(c echo.Context) error {
	conn, err := wsUpgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx := c.Request().Context()
	for {
		var q wsQuestion
		if err := conn.ReadJSON(&q); err != nil {
			return nil
		}
		if strings.TrimSpace(q.Question) == "" {
			if err := conn.WriteJSON(wsFragment{Type: "error", Content: "empty question"}); err != nil {
				return nil
			}
			continue
		}

		for fragment := range h.service.model.Stream(ctx, q.Question) {
			if err := conn.WriteJSON(wsFragment{Type: "fragment", Content: fragment}); err != nil {
				return nil
			}
		}
		if err := conn.WriteJSON(wsFragment{Type: "done"}); err != nil {
			return nil
		}
	}
}
