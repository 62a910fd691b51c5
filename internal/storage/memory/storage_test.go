package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/fleetbattle-console/internal/storage"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) TestPutAndGet() {
	err := s.storage.Put(s.ctx, map[string]string{"token": "abc", "user": `{"username":"alice"}`})
	s.Require().NoError(err)

	v, err := s.storage.Get(s.ctx, "token")
	s.Require().NoError(err)
	s.Equal("abc", v)

	v, err = s.storage.Get(s.ctx, "user")
	s.Require().NoError(err)
	s.Equal(`{"username":"alice"}`, v)
}

func (s *StorageSuite) TestGetNotFound() {
	_, err := s.storage.Get(s.ctx, "token")
	s.ErrorIs(err, storage.ErrNotFound)
}

func (s *StorageSuite) TestPutOverwrites() {
	s.Require().NoError(s.storage.Put(s.ctx, map[string]string{"token": "one"}))
	s.Require().NoError(s.storage.Put(s.ctx, map[string]string{"token": "two"}))

	v, err := s.storage.Get(s.ctx, "token")
	s.Require().NoError(err)
	s.Equal("two", v)
	s.Equal(1, s.storage.Len())
}

func (s *StorageSuite) TestDelete() {
	s.Require().NoError(s.storage.Put(s.ctx, map[string]string{"token": "abc", "user": "{}"}))

	err := s.storage.Delete(s.ctx, "token", "user", "missing")
	s.Require().NoError(err)

	_, err = s.storage.Get(s.ctx, "token")
	s.ErrorIs(err, storage.ErrNotFound)
	s.Equal(0, s.storage.Len())
}
