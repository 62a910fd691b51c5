package redis

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/fleetbattle-console/internal/storage"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())
	s.storage = s.newStorage()
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) newStorage() *Storage {
	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})
	return NewWithClient(client, DefaultConfig())
}

func (s *StorageSuite) TestPutAndGet() {
	err := s.storage.Put(s.ctx, map[string]string{"token": "abc", "user": `{"role":"Admin"}`})
	s.Require().NoError(err)

	v, err := s.storage.Get(s.ctx, "token")
	s.Require().NoError(err)
	s.Equal("abc", v)

	// Stored under the namespaced key, without expiry
	s.True(s.mini.Exists("fbconsole:session:token"))
	s.Equal(time.Duration(0), s.mini.TTL("fbconsole:session:token"))
}

func (s *StorageSuite) TestGetNotFound() {
	_, err := s.storage.Get(s.ctx, "token")
	s.ErrorIs(err, storage.ErrNotFound)
}

func (s *StorageSuite) TestDelete() {
	s.Require().NoError(s.storage.Put(s.ctx, map[string]string{"token": "abc", "user": "{}"}))

	err := s.storage.Delete(s.ctx, "token", "user")
	s.Require().NoError(err)

	s.False(s.mini.Exists("fbconsole:session:token"))
	s.False(s.mini.Exists("fbconsole:session:user"))
}

func (s *StorageSuite) TestDeleteNothing() {
	s.NoError(s.storage.Delete(s.ctx))
}

func (s *StorageSuite) TestSharedBetweenInstances() {
	other := s.newStorage()
	defer func() { _ = other.Close() }()

	s.Require().NoError(other.Put(s.ctx, map[string]string{"token": "xyz"}))

	v, err := s.storage.Get(s.ctx, "token")
	s.Require().NoError(err)
	s.Equal("xyz", v)
}

func (s *StorageSuite) TestWatchReportsOtherInstances() {
	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	var (
		mu   sync.Mutex
		keys []string
	)
	done := make(chan error, 1)
	go func() {
		done <- s.storage.Watch(ctx, func(key string) {
			mu.Lock()
			defer mu.Unlock()
			keys = append(keys, key)
		})
	}()

	s.Require().Eventually(func() bool {
		return s.mini.PubSubNumSub(eventsChannel("fbconsole"))[eventsChannel("fbconsole")] == 1
	}, time.Second, 10*time.Millisecond)

	// Own writes are not reported
	s.Require().NoError(s.storage.Put(s.ctx, map[string]string{"token": "mine"}))

	other := s.newStorage()
	defer func() { _ = other.Close() }()
	s.Require().NoError(other.Delete(s.ctx, "token"))

	s.Require().Eventually(func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(keys) == 1
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	s.Equal([]string{"token"}, keys)
	mu.Unlock()

	cancel()
	s.NoError(<-done)
}
