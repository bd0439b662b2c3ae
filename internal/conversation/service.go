package conversation

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/genie-desktop/genie-backend/internal/capture"
	"github.com/genie-desktop/genie-backend/internal/ollama"
	"github.com/genie-desktop/genie-backend/internal/session"
	"github.com/genie-desktop/genie-backend/internal/shared"
)

// ModelClient is the slice of the Ollama client the orchestrator needs.
type ModelClient interface {
	Chat(ctx context.Context, messages []ollama.Message) (string, error)
	Stream(ctx context.Context, prompt string) <-chan string
}

// Recaller indexes completed exchanges for semantic search. Optional.
type Recaller interface {
	Index(ctx context.Context, ex *session.Exchange) error
}

type ExplainResult struct {
	SessionID     string
	ExtractedText string
	Result        StructuredResult
}

type ChatResult struct {
	SessionID string
	Reply     string
}

// Service orchestrates the capture/OCR edge, the session store and the
// model client. It never mutates a history directly: every exchange runs
// inside Store.Update so the append-invoke-append unit is atomic per
// session.
type Service struct {
	store     session.Store
	archive   *session.Archive
	model     ModelClient
	capturer  capture.Capturer
	extractor capture.Extractor
	recaller  Recaller
	logger    *slog.Logger
}

type ServiceConfig struct {
	Store     session.Store
	Archive   *session.Archive
	Model     ModelClient
	Capturer  capture.Capturer
	Extractor capture.Extractor
	Recaller  Recaller
	Logger    *slog.Logger
}

func NewService(cfg ServiceConfig) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:     cfg.Store,
		archive:   cfg.Archive,
		model:     cfg.Model,
		capturer:  cfg.Capturer,
		extractor: cfg.Extractor,
		recaller:  cfg.Recaller,
		logger:    logger.With("component", "conversation"),
	}
}

// ExplainScreen captures the screen, OCRs it, asks the model for a
// classification and starts a fresh session holding the exchange. Empty
// extracted text short-circuits before any model call.
func (s *Service) ExplainScreen(ctx context.Context) (*ExplainResult, error) {
	text, err := s.captureText(ctx)
	if err != nil {
		return nil, err
	}

	sess, err := s.store.Create(ctx)
	if err != nil {
		return nil, err
	}

	prompt := explainPrompt(text)
	var result StructuredResult
	var reply string
	err = s.store.Update(ctx, sess.ID, func(se *session.Session) error {
		se.Append(session.RoleUser, prompt)
		r, err := s.model.Chat(ctx, toMessages(se.Turns))
		if err != nil {
			return err
		}
		reply = r
		result = Recover(r)
		se.Append(session.RoleAssistant, r)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, &session.Exchange{
		SessionID:  sess.ID,
		Kind:       session.KindExplain,
		Prompt:     text,
		Reply:      reply,
		ResultType: result.Type,
	})

	return &ExplainResult{
		SessionID:     sess.ID,
		ExtractedText: text,
		Result:        result,
	}, nil
}

// ExplainScreenStream is the streaming variant: same capture/OCR gate, then
// markdown fragments straight from the model. It is stateless with respect
// to the session store; a disconnecting caller just stops consuming.
func (s *Service) ExplainScreenStream(ctx context.Context) (string, <-chan string, error) {
	text, err := s.captureText(ctx)
	if err != nil {
		return "", nil, err
	}
	return text, s.model.Stream(ctx, explainStreamPrompt(text)), nil
}

// AskOnce answers a free-text question in a brand-new session.
func (s *Service) AskOnce(ctx context.Context, question string) (*ChatResult, error) {
	if strings.TrimSpace(question) == "" {
		return nil, shared.ErrEmptyMessage
	}

	sess, err := s.store.Create(ctx)
	if err != nil {
		return nil, err
	}

	reply, err := s.exchange(ctx, sess.ID, question)
	if err != nil {
		return nil, err
	}

	s.record(ctx, &session.Exchange{
		SessionID: sess.ID,
		Kind:      session.KindAsk,
		Prompt:    question,
		Reply:     reply,
	})

	return &ChatResult{SessionID: sess.ID, Reply: reply}, nil
}

// Continue appends one exchange to an existing session. Unknown ids are
// rejected, never created; both validations run before any model call.
func (s *Service) Continue(ctx context.Context, sessionID, message string) (*ChatResult, error) {
	if strings.TrimSpace(message) == "" {
		return nil, shared.ErrEmptyMessage
	}
	if sessionID == "" || !s.store.Exists(ctx, sessionID) {
		return nil, shared.ErrInvalidSession
	}

	reply, err := s.exchange(ctx, sessionID, message)
	if err != nil {
		return nil, err
	}

	s.record(ctx, &session.Exchange{
		SessionID: sessionID,
		Kind:      session.KindChat,
		Prompt:    message,
		Reply:     reply,
	})

	return &ChatResult{SessionID: sessionID, Reply: reply}, nil
}

// exchange runs one append-invoke-append unit under the session lock, with
// the full history replayed to the model.
func (s *Service) exchange(ctx context.Context, sessionID, message string) (string, error) {
	var reply string
	err := s.store.Update(ctx, sessionID, func(se *session.Session) error {
		se.Append(session.RoleUser, message)
		r, err := s.model.Chat(ctx, toMessages(se.Turns))
		if err != nil {
			return err
		}
		reply = r
		se.Append(session.RoleAssistant, r)
		return nil
	})
	if err != nil {
		return "", err
	}
	return reply, nil
}

func (s *Service) captureText(ctx context.Context) (string, error) {
	path, err := s.capturer.Capture(ctx)
	if err != nil {
		return "", err
	}
	defer os.Remove(path)

	text, err := s.extractor.ExtractText(ctx, path)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", shared.ErrEmptyExtractedText
	}
	return text, nil
}

// record archives and indexes a completed exchange. Best-effort: the live
// conversation never fails because of it.
func (s *Service) record(ctx context.Context, ex *session.Exchange) {
	if s.archive != nil {
		if err := s.archive.Record(ctx, ex); err != nil {
			s.logger.Error("failed to archive exchange", "error", err, "session_id", ex.SessionID)
		}
	}
	if s.recaller != nil {
		if err := s.recaller.Index(ctx, ex); err != nil {
			s.logger.Error("failed to index exchange", "error", err, "session_id", ex.SessionID)
		}
	}
}

func toMessages(turns []session.Turn) []ollama.Message {
	messages := make([]ollama.Message, len(turns))
	for i, t := range turns {
		messages[i] = ollama.Message{Role: string(t.Role), Content: t.Content}
	}
	return messages
}
