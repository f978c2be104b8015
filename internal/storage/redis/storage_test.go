package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/goserg/darts/internal/config"
	"github.com/goserg/darts/internal/storage"
	"github.com/goserg/darts/internal/storage/storagetest"
)

func TestStorage(t *testing.T) {
	l, _ := test.NewNullLogger()
	suite.Run(t, &storagetest.GameStorageSuite{
		New: func() storage.GameStorage {
			s := miniredis.RunT(t)
			client := redis.NewClient(&redis.Options{Addr: s.Addr()})
			return NewWithClient(l, client)
		},
	})
}

func TestNew(t *testing.T) {
	l, _ := test.NewNullLogger()
	s := miniredis.RunT(t)

	st, err := New(context.Background(), l, config.Redis{Addr: s.Addr()})
	require.NoError(t, err)
	require.NoError(t, st.Set(context.Background(), "darts1", []byte("{}")))
	assert.True(t, s.Exists("darts1"))
	require.NoError(t, st.Close())
}

func TestNewUnreachable(t *testing.T) {
	l, _ := test.NewNullLogger()
	s := miniredis.RunT(t)
	addr := s.Addr()
	s.Close()

	_, err := New(context.Background(), l, config.Redis{Addr: addr})
	assert.Error(t, err)
}
