package conversation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/genie-desktop/genie-backend/internal/ollama"
	"github.com/genie-desktop/genie-backend/internal/session"
	"github.com/genie-desktop/genie-backend/internal/shared"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMemoryArchive(t *testing.T) *session.Archive {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	archive := session.NewArchive(db)
	if err := archive.Migrate(); err != nil {
		t.Fatalf("migration failed: %v", err)
	}
	return archive
}

type fakeModel struct {
	calls     atomic.Int64
	reply     string
	err       error
	fragments []string
	lastSeen  []ollama.Message
}

func (f *fakeModel) Chat(ctx context.Context, messages []ollama.Message) (string, error) {
	f.calls.Add(1)
	f.lastSeen = messages
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeModel) Stream(ctx context.Context, prompt string) <-chan string {
	f.calls.Add(1)
	out := make(chan string)
	go func() {
		defer close(out)
		for _, frag := range f.fragments {
			out <- frag
		}
	}()
	return out
}

type fakeCapturer struct {
	err error
}

func (f *fakeCapturer) Capture(ctx context.Context) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	path := filepath.Join(os.TempDir(), shared.NewID("test_capture_")+".png")
	if err := os.WriteFile(path, []byte("png"), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) ExtractText(ctx context.Context, imagePath string) (string, error) {
	return f.text, f.err
}

func newTestService(model *fakeModel, extractor *fakeExtractor) (*Service, *session.MemoryStore) {
	store := session.NewMemoryStore(session.MemoryConfig{}, nil)
	svc := NewService(ServiceConfig{
		Store:     store,
		Model:     model,
		Capturer:  &fakeCapturer{},
		Extractor: extractor,
	})
	return svc, store
}

func TestService_ExplainScreen_Classifies(t *testing.T) {
	model := &fakeModel{reply: `{"type":"problem","solution_or_explanation":"def f(x): return x+1","extra_notes":""}`}
	svc, store := newTestService(model, &fakeExtractor{text: "def f(x): return x+1"})

	result, err := svc.ExplainScreen(context.Background())
	if err != nil {
		t.Fatalf("ExplainScreen failed: %v", err)
	}
	if result.Result.Type != TypeProblem {
		t.Errorf("expected type problem, got %s", result.Result.Type)
	}
	if result.ExtractedText != "def f(x): return x+1" {
		t.Errorf("unexpected extracted text: %s", result.ExtractedText)
	}

	turns, err := store.History(context.Background(), result.SessionID)
	if err != nil {
		t.Fatalf("session was not created: %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("expected 2 turns in fresh session, got %d", len(turns))
	}
	if turns[0].Role != session.RoleUser || turns[1].Role != session.RoleAssistant {
		t.Error("expected [user, assistant] ordering")
	}
}

func TestService_ExplainScreen_NonCompliantReplyDegrades(t *testing.T) {
	model := &fakeModel{reply: "I cannot produce JSON today."}
	svc, _ := newTestService(model, &fakeExtractor{text: "something on screen"})

	result, err := svc.ExplainScreen(context.Background())
	if err != nil {
		t.Fatalf("ExplainScreen failed: %v", err)
	}
	if result.Result.Type != TypeGeneral {
		t.Errorf("expected degraded type general, got %s", result.Result.Type)
	}
	if result.Result.SolutionOrExplanation != "I cannot produce JSON today." {
		t.Errorf("expected raw reply carried over, got %q", result.Result.SolutionOrExplanation)
	}
}

func TestService_ExplainScreen_EmptyOCRSkipsModel(t *testing.T) {
	model := &fakeModel{reply: "unused"}
	svc, store := newTestService(model, &fakeExtractor{text: "   \n\t "})

	_, err := svc.ExplainScreen(context.Background())
	if !errors.Is(err, shared.ErrEmptyExtractedText) {
		t.Fatalf("expected ErrEmptyExtractedText, got %v", err)
	}
	if model.calls.Load() != 0 {
		t.Errorf("expected zero model calls, got %d", model.calls.Load())
	}
	if store.Count(context.Background()) != 0 {
		t.Error("no session should be created when OCR is empty")
	}
}

func TestService_ExplainScreen_CaptureFailure(t *testing.T) {
	model := &fakeModel{}
	store := session.NewMemoryStore(session.MemoryConfig{}, nil)
	svc := NewService(ServiceConfig{
		Store:     store,
		Model:     model,
		Capturer:  &fakeCapturer{err: shared.ErrCaptureFailed},
		Extractor: &fakeExtractor{},
	})

	_, err := svc.ExplainScreen(context.Background())
	if !errors.Is(err, shared.ErrCaptureFailed) {
		t.Fatalf("expected ErrCaptureFailed, got %v", err)
	}
	if model.calls.Load() != 0 {
		t.Errorf("expected zero model calls, got %d", model.calls.Load())
	}
}

func TestService_AskOnce_FreshSession(t *testing.T) {
	model := &fakeModel{reply: "an answer"}
	svc, store := newTestService(model, &fakeExtractor{})

	first, err := svc.AskOnce(context.Background(), "a question")
	if err != nil {
		t.Fatalf("AskOnce failed: %v", err)
	}
	second, err := svc.AskOnce(context.Background(), "another question")
	if err != nil {
		t.Fatalf("AskOnce failed: %v", err)
	}
	if first.SessionID == second.SessionID {
		t.Error("AskOnce must always start a fresh session")
	}
	if first.Reply != "an answer" {
		t.Errorf("unexpected reply: %s", first.Reply)
	}
	if store.Count(context.Background()) != 2 {
		t.Errorf("expected 2 sessions, got %d", store.Count(context.Background()))
	}
}

func TestService_AskOnce_EmptyQuestion(t *testing.T) {
	model := &fakeModel{}
	svc, _ := newTestService(model, &fakeExtractor{})

	_, err := svc.AskOnce(context.Background(), "   ")
	if !errors.Is(err, shared.ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	if model.calls.Load() != 0 {
		t.Errorf("expected zero model calls, got %d", model.calls.Load())
	}
}

func TestService_Continue_UnknownSession(t *testing.T) {
	model := &fakeModel{}
	svc, store := newTestService(model, &fakeExtractor{})

	_, err := svc.Continue(context.Background(), "sess_unknown", "hello")
	if !errors.Is(err, shared.ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
	if model.calls.Load() != 0 {
		t.Errorf("expected zero model calls, got %d", model.calls.Load())
	}
	if store.Exists(context.Background(), "sess_unknown") {
		t.Error("failed continuation must not create the session")
	}
}

func TestService_Continue_EmptyMessage(t *testing.T) {
	model := &fakeModel{reply: "r"}
	svc, store := newTestService(model, &fakeExtractor{})

	sess, _ := store.Create(context.Background())
	_, err := svc.Continue(context.Background(), sess.ID, "")
	if !errors.Is(err, shared.ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	if model.calls.Load() != 0 {
		t.Errorf("expected zero model calls, got %d", model.calls.Load())
	}
}

func TestService_Continue_BuildsOrderedHistory(t *testing.T) {
	model := &fakeModel{reply: "a1"}
	svc, store := newTestService(model, &fakeExtractor{})

	ctx := context.Background()
	sess, _ := store.Create(ctx)

	if _, err := svc.Continue(ctx, sess.ID, "q1"); err != nil {
		t.Fatalf("first Continue failed: %v", err)
	}
	model.reply = "a2"
	if _, err := svc.Continue(ctx, sess.ID, "q2"); err != nil {
		t.Fatalf("second Continue failed: %v", err)
	}

	turns, _ := store.History(ctx, sess.ID)
	want := []session.Turn{
		{Role: session.RoleUser, Content: "q1"},
		{Role: session.RoleAssistant, Content: "a1"},
		{Role: session.RoleUser, Content: "q2"},
		{Role: session.RoleAssistant, Content: "a2"},
	}
	if len(turns) != len(want) {
		t.Fatalf("expected %d turns, got %d", len(want), len(turns))
	}
	for i := range want {
		if turns[i] != want[i] {
			t.Errorf("turn %d: expected %+v, got %+v", i, want[i], turns[i])
		}
	}

	// the second call replays the full history plus the new user turn
	if len(model.lastSeen) != 3 {
		t.Errorf("expected 3 messages replayed on second call, got %d", len(model.lastSeen))
	}
}

func TestService_Continue_ModelFailureSurfaces(t *testing.T) {
	model := &fakeModel{err: shared.ErrModelInvocation}
	svc, store := newTestService(model, &fakeExtractor{})

	ctx := context.Background()
	sess, _ := store.Create(ctx)

	_, err := svc.Continue(ctx, sess.ID, "q")
	if !errors.Is(err, shared.ErrModelInvocation) {
		t.Fatalf("expected ErrModelInvocation, got %v", err)
	}
}

func TestService_ExplainScreenStream_Stateless(t *testing.T) {
	model := &fakeModel{fragments: []string{"# Screen\n", "some ", "explanation"}}
	svc, store := newTestService(model, &fakeExtractor{text: "screen text"})

	text, fragments, err := svc.ExplainScreenStream(context.Background())
	if err != nil {
		t.Fatalf("ExplainScreenStream failed: %v", err)
	}
	if text != "screen text" {
		t.Errorf("unexpected extracted text: %s", text)
	}

	var got []string
	for frag := range fragments {
		got = append(got, frag)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 fragments, got %d", len(got))
	}
	if store.Count(context.Background()) != 0 {
		t.Error("streaming flow must not touch the session store")
	}
}

func TestService_RecordsArchive(t *testing.T) {
	model := &fakeModel{reply: "an answer"}
	store := session.NewMemoryStore(session.MemoryConfig{}, nil)
	archive := setupMemoryArchive(t)
	svc := NewService(ServiceConfig{
		Store:     store,
		Archive:   archive,
		Model:     model,
		Capturer:  &fakeCapturer{},
		Extractor: &fakeExtractor{},
	})

	ctx := context.Background()
	if _, err := svc.AskOnce(ctx, "a question"); err != nil {
		t.Fatalf("AskOnce failed: %v", err)
	}

	recent, err := archive.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("expected 1 archived exchange, got %d", len(recent))
	}
	if recent[0].Kind != session.KindAsk {
		t.Errorf("expected kind ask, got %s", recent[0].Kind)
	}
}
