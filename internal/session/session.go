// Package session keeps login state server-side. The redis entry is the
// authority: destroying it logs the user out immediately, whatever
// cookies are still floating around.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	"boardmates/internal/cache"

	"github.com/redis/go-redis/v9"
)

const (
	// CookieName is the session cookie name.
	CookieName = "sid"
	// TTL is the fixed session lifetime.
	TTL = 24 * time.Hour

	keyPrefix = "session:"
)

// ErrNotFound means the session id has no live entry (expired or
// destroyed).
var ErrNotFound = errors.New("session not found")

// Data is what a session holds about the authenticated user.
type Data struct {
	UserID   int    `json:"id"`
	Username string `json:"username"`
	Type     string `json:"type"`
}

type Store interface {
	Create(ctx context.Context, data Data) (string, error)
	Get(ctx context.Context, sid string) (*Data, error)
	Delete(ctx context.Context, sid string) error
}

// Seams for tests.
var (
	randRead      = rand.Read
	jsonMarshal   = json.Marshal
	jsonUnmarshal = json.Unmarshal
)

type redisStore struct {
	rdb cache.Cache
}

// NewRedisStore returns a Store backed by redis with the fixed TTL.
func NewRedisStore(rdb cache.Cache) Store {
	return &redisStore{rdb: rdb}
}

func (s *redisStore) Create(ctx context.Context, data Data) (string, error) {
	buf := make([]byte, 32)
	if _, err := randRead(buf); err != nil {
		return "", err
	}
	sid := base64.RawURLEncoding.EncodeToString(buf)

	payload, err := jsonMarshal(data)
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, keyPrefix+sid, payload, TTL).Err(); err != nil {
		return "", err
	}
	return sid, nil
}

func (s *redisStore) Get(ctx context.Context, sid string) (*Data, error) {
	val, err := s.rdb.Get(ctx, keyPrefix+sid).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	data := &Data{}
	if err := jsonUnmarshal([]byte(val), data); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *redisStore) Delete(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, keyPrefix+sid).Err()
}

// FakeStore stands in for Store in tests.
type FakeStore struct {
	CreateFn func(ctx context.Context, data Data) (string, error)
	GetFn    func(ctx context.Context, sid string) (*Data, error)
	DeleteFn func(ctx context.Context, sid string) error
}

func (f *FakeStore) Create(ctx context.Context, data Data) (string, error) {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, data)
	}
	panic("unexpected Create")
}

func (f *FakeStore) Get(ctx context.Context, sid string) (*Data, error) {
	if f.GetFn != nil {
		return f.GetFn(ctx, sid)
	}
	panic("unexpected Get")
}

func (f *FakeStore) Delete(ctx context.Context, sid string) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, sid)
	}
	panic("unexpected Delete")
}
