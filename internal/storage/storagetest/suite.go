// Package storagetest runs the same checks against every GameStorage driver.
package storagetest

import (
	"context"

	"github.com/stretchr/testify/suite"

	"github.com/goserg/darts/internal/storage"
)

type GameStorageSuite struct {
	suite.Suite

	// New returns an empty storage for every test.
	New func() storage.GameStorage

	storage storage.GameStorage
	ctx     context.Context
}

func (s *GameStorageSuite) SetupTest() {
	s.ctx = context.Background()
	s.storage = s.New()
}

func (s *GameStorageSuite) TearDownTest() {
	s.Require().NoError(s.storage.Close())
}

func (s *GameStorageSuite) TestGetMissing() {
	_, err := s.storage.Get(s.ctx, "darts-nope")
	s.Require().ErrorIs(err, storage.ErrNotFound)
}

func (s *GameStorageSuite) TestSetOverwrites() {
	s.Require().NoError(s.storage.Set(s.ctx, "darts1", []byte(`{"v":1}`)))
	s.Require().NoError(s.storage.Set(s.ctx, "darts1", []byte(`{"v":2}`)))

	got, err := s.storage.Get(s.ctx, "darts1")
	s.Require().NoError(err)
	s.Equal(`{"v":2}`, string(got))
}

func (s *GameStorageSuite) TestListKeysByPrefix() {
	for _, key := range []string{"dartsb", "other", "dartsa", "xdarts"} {
		s.Require().NoError(s.storage.Set(s.ctx, key, []byte("{}")))
	}
	keys, err := s.storage.ListKeys(s.ctx, "darts")
	s.Require().NoError(err)
	s.Equal([]string{"dartsa", "dartsb"}, keys)
}

func (s *GameStorageSuite) TestListKeysIsCaseSensitive() {
	for _, key := range []string{"DARTS1", "darts2", "Darts3", "dartsZ", "darts_"} {
		s.Require().NoError(s.storage.Set(s.ctx, key, []byte("{}")))
	}
	keys, err := s.storage.ListKeys(s.ctx, "darts")
	s.Require().NoError(err)
	s.Equal([]string{"darts2", "dartsZ", "darts_"}, keys)

	keys, err = s.storage.ListKeys(s.ctx, "darts_")
	s.Require().NoError(err)
	s.Equal([]string{"darts_"}, keys)
}

func (s *GameStorageSuite) TestGetManySkipsMissing() {
	s.Require().NoError(s.storage.Set(s.ctx, "darts1", []byte("one")))
	s.Require().NoError(s.storage.Set(s.ctx, "darts2", []byte("two")))

	values, err := s.storage.GetMany(s.ctx, []string{"darts2", "darts3", "darts1"})
	s.Require().NoError(err)
	s.Equal([]storage.KeyValue{
		{Key: "darts2", Value: []byte("two")},
		{Key: "darts1", Value: []byte("one")},
	}, values)

	values, err = s.storage.GetMany(s.ctx, nil)
	s.Require().NoError(err)
	s.Empty(values)
}

func (s *GameStorageSuite) TestDeleteMany() {
	for _, key := range []string{"darts1", "darts2", "darts3"} {
		s.Require().NoError(s.storage.Set(s.ctx, key, []byte("{}")))
	}
	s.Require().NoError(s.storage.DeleteMany(s.ctx, []string{"darts1", "darts3", "darts9"}))
	s.Require().NoError(s.storage.DeleteMany(s.ctx, nil))

	keys, err := s.storage.ListKeys(s.ctx, "darts")
	s.Require().NoError(err)
	s.Equal([]string{"darts2"}, keys)
}
