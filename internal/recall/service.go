package recall

import (
	"context"
	"log/slog"
	"sync"

	"github.com/genie-desktop/genie-backend/internal/session"
	"github.com/google/uuid"
)

// Embedder is the slice of the Ollama client the recall index needs.
type Embedder interface {
	Embeddings(ctx context.Context, text string) ([]float32, error)
}

// Service gives past exchanges semantic search: each archived exchange is
// embedded and upserted into qdrant, and Search runs nearest-neighbour
// lookup over them. Disabled entirely when no qdrant client is configured.
type Service struct {
	store    *Store
	embedder Embedder
	logger   *slog.Logger

	ensureOnce sync.Once
	ensureErr  error
}

func NewService(store *Store, embedder Embedder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:    store,
		embedder: embedder,
		logger:   logger.With("component", "recall"),
	}
}

func (s *Service) Enabled() bool {
	return s.store.Enabled()
}

// Index embeds one exchange and stores it. Satisfies conversation.Recaller.
func (s *Service) Index(ctx context.Context, ex *session.Exchange) error {
	if !s.Enabled() {
		return nil
	}

	vec, err := s.embedder.Embeddings(ctx, ex.Prompt+"\n"+ex.Reply)
	if err != nil {
		return err
	}

	s.ensureOnce.Do(func() {
		s.ensureErr = s.store.EnsureCollection(ctx, uint64(len(vec)))
	})
	if s.ensureErr != nil {
		return s.ensureErr
	}

	return s.store.Upsert(ctx, uuid.NewString(), vec, Match{
		SessionID: ex.SessionID,
		Kind:      string(ex.Kind),
		Prompt:    ex.Prompt,
		Reply:     ex.Reply,
	})
}

func (s *Service) Search(ctx context.Context, query string, limit int) ([]Match, error) {
	if limit <= 0 {
		limit = 10
	}

	vec, err := s.embedder.Embeddings(ctx, query)
	if err != nil {
		return nil, err
	}
	return s.store.Search(ctx, vec, limit)
}
