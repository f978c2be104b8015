package redis

import (
	"context"
	"errors"
	"sort"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"github.com/goserg/darts/internal/config"
	"github.com/goserg/darts/internal/storage"
)

const scanCount = 100

type Storage struct {
	client redis.Cmdable
	closer func() error
	log    *logrus.Entry
}

var _ storage.GameStorage = (*Storage)(nil)

// New connects to the server from cfg and checks it answers.
func New(ctx context.Context, l *logrus.Logger, cfg config.Redis) (*Storage, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, eris.Wrapf(err, "ping redis at %s", cfg.Addr)
	}
	s := NewWithClient(l, client)
	s.closer = client.Close
	s.log.WithField("addr", cfg.Addr).Info("game storage connected")
	return s, nil
}

func NewWithClient(l *logrus.Logger, client redis.Cmdable) *Storage {
	return &Storage{
		client: client,
		closer: func() error { return nil },
		log:    l.WithField("from", "redis-storage"),
	}
}

func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	bz, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, storage.ErrNotFound
		}
		return nil, eris.Wrap(err, "")
	}
	return bz, nil
}

func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	return eris.Wrap(s.client.Set(ctx, key, value, 0).Err(), "")
}

func (s *Storage) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, prefix+"*", scanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, eris.Wrap(err, "")
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Storage) GetMany(ctx context.Context, keys []string) ([]storage.KeyValue, error) {
	if len(keys) == 0 {
		return []storage.KeyValue{}, nil
	}
	res, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, eris.Wrap(err, "")
	}
	values := make([]storage.KeyValue, 0, len(res))
	for i, v := range res {
		str, ok := v.(string)
		if !ok {
			// absent keys come back as nil
			continue
		}
		values = append(values, storage.KeyValue{Key: keys[i], Value: []byte(str)})
	}
	return values, nil
}

func (s *Storage) DeleteMany(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	return eris.Wrap(s.client.Del(ctx, keys...).Err(), "")
}

func (s *Storage) Close() error {
	return eris.Wrap(s.closer(), "")
}
