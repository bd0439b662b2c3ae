package recall

import (
	"context"
	"testing"

	"github.com/genie-desktop/genie-backend/internal/session"
)

type fakeEmbedder struct {
	calls int
}

func (f *fakeEmbedder) Embeddings(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	return []float32{0.1, 0.2, 0.3}, nil
}

func TestService_DisabledIndexIsNoop(t *testing.T) {
	embedder := &fakeEmbedder{}
	svc := NewService(NewStore(nil), embedder, nil)

	if svc.Enabled() {
		t.Error("service without qdrant client should be disabled")
	}

	err := svc.Index(context.Background(), &session.Exchange{
		SessionID: "sess_a",
		Kind:      session.KindAsk,
		Prompt:    "q",
		Reply:     "a",
	})
	if err != nil {
		t.Errorf("disabled Index should be a no-op, got %v", err)
	}
	if embedder.calls != 0 {
		t.Errorf("disabled Index should not embed, got %d calls", embedder.calls)
	}
}

func TestStore_DisabledErrors(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	if _, err := store.Search(ctx, []float32{0.1}, 5); err == nil {
		t.Error("expected error searching a disabled store")
	}
	if err := store.Upsert(ctx, "id", []float32{0.1}, Match{}); err == nil {
		t.Error("expected error upserting into a disabled store")
	}
	if err := store.EnsureCollection(ctx, 3); err == nil {
		t.Error("expected error ensuring collection on a disabled store")
	}
}
