package session

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestArchive(t *testing.T) *Archive {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	archive := NewArchive(db)
	if err := archive.Migrate(); err != nil {
		t.Fatalf("migration failed: %v", err)
	}
	return archive
}

func TestArchive_RecordAndRecent(t *testing.T) {
	archive := setupTestArchive(t)
	ctx := context.Background()

	ex := &Exchange{
		SessionID:  "sess_abc",
		Kind:       KindExplain,
		Prompt:     "def f(x): return x+1",
		Reply:      "increments x",
		ResultType: "problem",
	}
	if err := archive.Record(ctx, ex); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if ex.ID == "" {
		t.Error("expected Record to assign an id")
	}

	recent, err := archive.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("expected 1 exchange, got %d", len(recent))
	}
	if recent[0].Kind != KindExplain {
		t.Errorf("expected kind explain, got %s", recent[0].Kind)
	}
}

func TestArchive_BySession(t *testing.T) {
	archive := setupTestArchive(t)
	ctx := context.Background()

	for _, sid := range []string{"sess_a", "sess_b", "sess_a"} {
		if err := archive.Record(ctx, &Exchange{SessionID: sid, Kind: KindChat}); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	got, err := archive.BySession(ctx, "sess_a")
	if err != nil {
		t.Fatalf("BySession failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 exchanges for sess_a, got %d", len(got))
	}
}

func TestArchive_DisabledIsNoop(t *testing.T) {
	archive := NewArchive(nil)
	ctx := context.Background()

	if archive.Enabled() {
		t.Error("nil-db archive should report disabled")
	}
	if err := archive.Record(ctx, &Exchange{SessionID: "sess_x"}); err != nil {
		t.Errorf("disabled Record should be a no-op, got %v", err)
	}
	recent, err := archive.Recent(ctx, 5)
	if err != nil || recent != nil {
		t.Errorf("disabled Recent should return nil, nil; got %v, %v", recent, err)
	}
}
