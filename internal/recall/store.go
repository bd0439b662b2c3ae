package recall

import (
	"context"
	"errors"

	"github.com/qdrant/go-client/qdrant"
)

const collectionName = "exchanges"

type Match struct {
	SessionID string
	Kind      string
	Prompt    string
	Reply     string
	Score     float32
}

// Store keeps exchange embeddings in qdrant. A nil client disables it.
type Store struct {
	qdrant *qdrant.Client
}

func NewStore(client *qdrant.Client) *Store {
	return &Store{qdrant: client}
}

func (s *Store) Enabled() bool {
	return s != nil && s.qdrant != nil
}

func (s *Store) EnsureCollection(ctx context.Context, dims uint64) error {
	if !s.Enabled() {
		return errors.New("qdrant client not configured")
	}

	exists, err := s.qdrant.CollectionExists(ctx, collectionName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return s.qdrant.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     dims,
			Distance: qdrant.Distance_Cosine,
		}),
	})
}

func (s *Store) Upsert(ctx context.Context, id string, vector []float32, m Match) error {
	if !s.Enabled() {
		return errors.New("qdrant client not configured")
	}

	_, err := s.qdrant.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collectionName,
		Points: []*qdrant.PointStruct{
			{
				Id:      qdrant.NewID(id),
				Vectors: qdrant.NewVectors(vector...),
				Payload: qdrant.NewValueMap(map[string]any{
					"session_id": m.SessionID,
					"kind":       m.Kind,
					"prompt":     m.Prompt,
					"reply":      m.Reply,
				}),
			},
		},
	})
	return err
}

func (s *Store) Search(ctx context.Context, vector []float32, limit int) ([]Match, error) {
	if !s.Enabled() {
		return nil, errors.New("qdrant client not configured")
	}

	results, err := s.qdrant.Query(ctx, &qdrant.QueryPoints{
		CollectionName: collectionName,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, err
	}

	matches := make([]Match, 0, len(results))
	for _, r := range results {
		m := Match{Score: r.Score}
		if v, ok := r.Payload["session_id"]; ok {
			m.SessionID = v.GetStringValue()
		}
		if v, ok := r.Payload["kind"]; ok {
			m.Kind = v.GetStringValue()
		}
		if v, ok := r.Payload["prompt"]; ok {
			m.Prompt = v.GetStringValue()
		}
		if v, ok := r.Payload["reply"]; ok {
			m.Reply = v.GetStringValue()
		}
		matches = append(matches, m)
	}
	return matches, nil
}
