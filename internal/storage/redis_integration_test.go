//go:build integration

package storage

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

type RedisStoreSuite struct {
	suite.Suite
	container *tcredis.RedisContainer
	client    *redis.Client
	store     *Redis
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	s.Require().NoError(err)
	s.container = container

	addr, err := container.ConnectionString(ctx)
	s.Require().NoError(err)
	opts, err := redis.ParseURL(addr)
	s.Require().NoError(err)

	s.client = redis.NewClient(opts)
	s.Require().NoError(s.client.Ping(ctx).Err())
	s.store = NewRedis(s.client)
}

func (s *RedisStoreSuite) TearDownSuite() {
	ctx := context.Background()
	if s.client != nil {
		_ = s.client.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(ctx)
	}
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.client.FlushAll(context.Background()).Err())
}

func (s *RedisStoreSuite) TestGetSet() {
	ctx := context.Background()

	s.Run("returns ErrNotFound for an absent key", func() {
		_, err := s.store.Get(ctx, "missing")
		s.Require().ErrorIs(err, ErrNotFound)
	})

	s.Run("round-trips a value", func() {
		s.Require().NoError(s.store.Set(ctx, "candidates", []byte(`[{"id":"c1"}]`)))
		got, err := s.store.Get(ctx, "candidates")
		s.Require().NoError(err)
		s.JSONEq(`[{"id":"c1"}]`, string(got))
	})

	s.Run("delete removes the key", func() {
		s.Require().NoError(s.store.Set(ctx, "users", []byte("[]")))
		s.Require().NoError(s.store.Delete(ctx, "users"))
		_, err := s.store.Get(ctx, "users")
		s.Require().ErrorIs(err, ErrNotFound)
	})
}

func (s *RedisStoreSuite) TestChangeSignal() {
	ctx := context.Background()

	ch, cancel, err := s.store.Subscribe(ctx)
	s.Require().NoError(err)
	defer cancel()

	s.Require().NoError(s.store.Set(ctx, "candidates", []byte("[]")))

	select {
	case key := <-ch:
		s.Equal("candidates", key)
	case <-time.After(5 * time.Second):
		s.Fail("no change signal received")
	}
}
