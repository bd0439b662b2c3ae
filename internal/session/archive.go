package session

import (
	"context"
	"time"

	"github.com/genie-desktop/genie-backend/internal/shared"
	"gorm.io/gorm"
)

type ExchangeKind string

const (
	KindExplain ExchangeKind = "explain"
	KindAsk     ExchangeKind = "ask"
	KindChat    ExchangeKind = "chat"
)

type Exchange struct {
	ID         string       `gorm:"primaryKey" json:"id"`
	SessionID  string       `gorm:"not null;index" json:"session_id"`
	Kind       ExchangeKind `gorm:"not null" json:"kind"`
	Prompt     string       `json:"prompt"`
	Reply      string       `json:"reply"`
	ResultType string       `json:"result_type,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}

// Archive records completed exchanges in a relational database. It is an
// optional extension point: with a nil db every call is a no-op, and the
// live conversation state never depends on it.
type Archive struct {
	db *gorm.DB
}

func NewArchive(db *gorm.DB) *Archive {
	return &Archive{db: db}
}

func (a *Archive) Enabled() bool {
	return a.db != nil
}

func (a *Archive) Migrate() error {
	if a.db == nil {
		return nil
	}
	return a.db.AutoMigrate(&Exchange{})
}

func (a *Archive) Record(ctx context.Context, ex *Exchange) error {
	if a.db == nil {
		return nil
	}
	if ex.ID == "" {
		ex.ID = shared.NewID("exc_")
	}
	return a.db.WithContext(ctx).Create(ex).Error
}

func (a *Archive) Recent(ctx context.Context, limit int) ([]*Exchange, error) {
	if a.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}

	var exchanges []*Exchange
	err := a.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&exchanges).Error
	return exchanges, err
}

func (a *Archive) BySession(ctx context.Context, sessionID string) ([]*Exchange, error) {
	if a.db == nil {
		return nil, nil
	}

	var exchanges []*Exchange
	err := a.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&exchanges).Error
	return exchanges, err
}
