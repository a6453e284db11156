package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"foodflow-frontend/internal/domain"
)

// Store keeps per-browser-session state in Redis: the credential pair and
// the staged order draft. Each value is a single named slot with
// last-write-wins semantics; concurrent tabs race and the last write wins.
type Store struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{Client: client, TTL: ttl}
}

func (s *Store) NewSessionID() string {
	return uuid.NewString()
}

func (s *Store) tokenKey(sid string) string {
	return "session:" + sid + ":token"
}

func (s *Store) refreshKey(sid string) string {
	return "session:" + sid + ":refreshToken"
}

func (s *Store) draftKey(sid string) string {
	return "session:" + sid + ":pendingOrder"
}

// Get returns the stored session, or nil when no token is present. Absence
// is not an error.
func (s *Store) Get(ctx context.Context, sid string) (*domain.Session, error) {
	token, err := s.Client.Get(ctx, s.tokenKey(sid)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	refresh, err := s.Client.Get(ctx, s.refreshKey(sid)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	return &domain.Session{Token: token, RefreshToken: refresh}, nil
}

func (s *Store) IsAuthenticated(ctx context.Context, sid string) bool {
	sess, err := s.Get(ctx, sid)
	return err == nil && sess != nil
}

func (s *Store) SetTokens(ctx context.Context, sid, access, refresh string) error {
	if err := s.Client.Set(ctx, s.tokenKey(sid), access, s.TTL).Err(); err != nil {
		return err
	}
	return s.Client.Set(ctx, s.refreshKey(sid), refresh, s.TTL).Err()
}

func (s *Store) SetAccessToken(ctx context.Context, sid, access string) error {
	return s.Client.Set(ctx, s.tokenKey(sid), access, s.TTL).Err()
}

func (s *Store) ClearTokens(ctx context.Context, sid string) error {
	return s.Client.Del(ctx, s.tokenKey(sid), s.refreshKey(sid)).Err()
}

func (s *Store) SetDraft(ctx context.Context, sid string, data []byte) error {
	return s.Client.Set(ctx, s.draftKey(sid), data, s.TTL).Err()
}

// GetDraft returns nil data when no draft is staged.
func (s *Store) GetDraft(ctx context.Context, sid string) ([]byte, error) {
	data, err := s.Client.Get(ctx, s.draftKey(sid)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *Store) DeleteDraft(ctx context.Context, sid string) error {
	return s.Client.Del(ctx, s.draftKey(sid)).Err()
}
