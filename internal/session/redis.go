package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/genie-desktop/genie-backend/internal/shared"
	"github.com/redis/go-redis/v9"
)

const sessionTTL = 24 * time.Hour

// RedisStore is the pluggable persistent backend: histories survive a
// process restart for up to sessionTTL. Serialization per session still
// happens in-process, so this backend assumes a single server instance.
type RedisStore struct {
	redis *redis.Client

	mu    sync.Mutex
	locks map[string]*sessionLock
}

// sessionLock is refcounted so the map only holds entries for in-flight
// updates; expired sessions do not leave locks behind.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewRedisStore(redisClient *redis.Client) *RedisStore {
	return &RedisStore{
		redis: redisClient,
		locks: make(map[string]*sessionLock),
	}
}

func (s *RedisStore) acquire(id string) *sessionLock {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sessionLock{}
		s.locks[id] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return l
}

func (s *RedisStore) release(id string, l *sessionLock) {
	l.mu.Unlock()

	s.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(s.locks, id)
	}
	s.mu.Unlock()
}

func (s *RedisStore) Create(ctx context.Context) (*Session, error) {
	now := time.Now()
	sess := &Session{
		ID:           shared.NewID("sess_"),
		CreatedAt:    now,
		LastActiveAt: now,
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return nil, err
	}
	if err := s.redis.Set(ctx, sess.RedisKey(), data, sessionTTL).Err(); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *RedisStore) Exists(ctx context.Context, id string) bool {
	n, err := s.redis.Exists(ctx, "session:"+id).Result()
	return err == nil && n > 0
}

func (s *RedisStore) get(ctx context.Context, id string) (*Session, error) {
	data, err := s.redis.Get(ctx, "session:"+id).Bytes()
	if err == redis.Nil {
		return nil, shared.ErrInvalidSession
	}
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *RedisStore) History(ctx context.Context, id string) ([]Turn, error) {
	sess, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return sess.Turns, nil
}

// Update persists whatever fn appended even when fn itself errors, matching
// MemoryStore semantics where mutations apply as they are made.
func (s *RedisStore) Update(ctx context.Context, id string, fn func(*Session) error) error {
	l := s.acquire(id)
	defer s.release(id, l)

	sess, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	fnErr := fn(sess)
	sess.LastActiveAt = time.Now()

	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := s.redis.Set(ctx, sess.RedisKey(), data, sessionTTL).Err(); err != nil {
		return err
	}
	return fnErr
}

// Count scans rather than using KEYS so a large keyspace never blocks the
// server.
func (s *RedisStore) Count(ctx context.Context) int {
	var count int
	iter := s.redis.Scan(ctx, 0, "session:sess_*", 100).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		return 0
	}
	return count
}
