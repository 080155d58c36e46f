package session

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"boardmates/internal/cache"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func restoreGlobals() {
	randRead = rand.Read
	jsonMarshal = json.Marshal
	jsonUnmarshal = json.Unmarshal
}

func TestRedisStoreCreate(t *testing.T) {
	t.Cleanup(restoreGlobals)
	data := Data{UserID: 7, Username: "alice", Type: "user"}

	t.Run("rand error", func(t *testing.T) {
		t.Cleanup(restoreGlobals)
		randRead = func([]byte) (int, error) { return 0, errors.New("rand") }
		s := NewRedisStore(&cache.FakeCache{})
		_, err := s.Create(context.Background(), data)
		require.Error(t, err)
	})

	t.Run("marshal error", func(t *testing.T) {
		t.Cleanup(restoreGlobals)
		jsonMarshal = func(any) ([]byte, error) { return nil, errors.New("marshal") }
		s := NewRedisStore(&cache.FakeCache{})
		_, err := s.Create(context.Background(), data)
		require.Error(t, err)
	})

	t.Run("set error", func(t *testing.T) {
		s := NewRedisStore(&cache.FakeCache{
			SetFn: func(context.Context, string, any, time.Duration) *redis.StatusCmd {
				return redis.NewStatusResult("", errors.New("set"))
			},
		})
		_, err := s.Create(context.Background(), data)
		require.Error(t, err)
	})

	t.Run("success", func(t *testing.T) {
		var gotKey string
		var gotTTL time.Duration
		var gotVal []byte
		s := NewRedisStore(&cache.FakeCache{
			SetFn: func(_ context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
				gotKey = key
				gotTTL = ttl
				gotVal = value.([]byte)
				return redis.NewStatusResult("OK", nil)
			},
		})
		sid, err := s.Create(context.Background(), data)
		require.NoError(t, err)
		require.NotEmpty(t, sid)
		require.Equal(t, keyPrefix+sid, gotKey)
		require.Equal(t, TTL, gotTTL)

		var stored Data
		require.NoError(t, json.Unmarshal(gotVal, &stored))
		require.Equal(t, data, stored)
	})

	t.Run("ids are unique", func(t *testing.T) {
		s := NewRedisStore(&cache.FakeCache{
			SetFn: func(context.Context, string, any, time.Duration) *redis.StatusCmd {
				return redis.NewStatusResult("OK", nil)
			},
		})
		a, err := s.Create(context.Background(), data)
		require.NoError(t, err)
		b, err := s.Create(context.Background(), data)
		require.NoError(t, err)
		require.NotEqual(t, a, b)
	})
}

func TestRedisStoreGet(t *testing.T) {
	t.Cleanup(restoreGlobals)

	t.Run("missing", func(t *testing.T) {
		s := NewRedisStore(&cache.FakeCache{
			GetFn: func(context.Context, string) *redis.StringCmd {
				return redis.NewStringResult("", redis.Nil)
			},
		})
		_, err := s.Get(context.Background(), "sid")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("redis error", func(t *testing.T) {
		s := NewRedisStore(&cache.FakeCache{
			GetFn: func(context.Context, string) *redis.StringCmd {
				return redis.NewStringResult("", errors.New("down"))
			},
		})
		_, err := s.Get(context.Background(), "sid")
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrNotFound)
	})

	t.Run("corrupt payload", func(t *testing.T) {
		s := NewRedisStore(&cache.FakeCache{
			GetFn: func(context.Context, string) *redis.StringCmd {
				return redis.NewStringResult("{", nil)
			},
		})
		_, err := s.Get(context.Background(), "sid")
		require.Error(t, err)
	})

	t.Run("success", func(t *testing.T) {
		var gotKey string
		s := NewRedisStore(&cache.FakeCache{
			GetFn: func(_ context.Context, key string) *redis.StringCmd {
				gotKey = key
				return redis.NewStringResult(`{"id":3,"username":"bob","type":"admin"}`, nil)
			},
		})
		data, err := s.Get(context.Background(), "abc")
		require.NoError(t, err)
		require.Equal(t, keyPrefix+"abc", gotKey)
		require.Equal(t, &Data{UserID: 3, Username: "bob", Type: "admin"}, data)
	})
}

func TestRedisStoreDelete(t *testing.T) {
	var gotKeys []string
	s := NewRedisStore(&cache.FakeCache{
		DelFn: func(_ context.Context, keys ...string) *redis.IntCmd {
			gotKeys = keys
			return redis.NewIntResult(1, nil)
		},
	})
	require.NoError(t, s.Delete(context.Background(), "abc"))
	require.Equal(t, []string{keyPrefix + "abc"}, gotKeys)

	s = NewRedisStore(&cache.FakeCache{
		DelFn: func(context.Context, ...string) *redis.IntCmd {
			return redis.NewIntResult(0, errors.New("down"))
		},
	})
	require.Error(t, s.Delete(context.Background(), "abc"))
}

func TestFakeStore(t *testing.T) {
	f := &FakeStore{}
	require.Panics(t, func() { f.Create(context.Background(), Data{}) })
	require.Panics(t, func() { f.Get(context.Background(), "s") })
	require.Panics(t, func() { f.Delete(context.Background(), "s") })

	f.CreateFn = func(context.Context, Data) (string, error) { return "sid", nil }
	f.GetFn = func(context.Context, string) (*Data, error) { return &Data{UserID: 1}, nil }
	f.DeleteFn = func(context.Context, string) error { return nil }

	sid, err := f.Create(context.Background(), Data{})
	require.NoError(t, err)
	require.Equal(t, "sid", sid)
	d, err := f.Get(context.Background(), "sid")
	require.NoError(t, err)
	require.Equal(t, 1, d.UserID)
	require.NoError(t, f.Delete(context.Background(), "sid"))
}
