package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/goserg/darts/gen/model"
	"github.com/goserg/darts/gen/table"
	"github.com/goserg/darts/internal/migrate"
	"github.com/goserg/darts/internal/storage"
)

type Storage struct {
	db  *sql.DB
	log *logrus.Entry
	now func() time.Time
}

var _ storage.GameStorage = (*Storage)(nil)

func New(l *logrus.Logger, file string) (*Storage, error) {
	log := l.WithFields(map[string]interface{}{
		"from": "sqlite-storage",
	})
	db, err := storage.OpenSqlite(file)
	if err != nil {
		return nil, err
	}
	err = migrate.Up(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	log.WithField("file", file).Info("game storage connected")
	return &Storage{
		db:  db,
		log: log,
		now: time.Now,
	}, nil
}

func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	var dest model.Games
	err := table.Games.
		SELECT(table.Games.AllColumns).
		FROM(table.Games).
		WHERE(table.Games.ID.EQ(sqlite.String(key))).
		QueryContext(ctx, s.db, &dest)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return []byte(dest.Snapshot), nil
}

func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	game := model.Games{
		ID:        key,
		Snapshot:  string(value),
		UpdatedAt: s.now().UnixMilli(),
	}
	_, err := table.Games.
		INSERT(table.Games.AllColumns).
		MODEL(game).
		ON_CONFLICT(table.Games.ID).
		DO_UPDATE(sqlite.SET(
			table.Games.Snapshot.SET(table.Games.EXCLUDED.Snapshot),
			table.Games.UpdatedAt.SET(table.Games.EXCLUDED.UpdatedAt),
		)).
		ExecContext(ctx, s.db)
	return err
}

func (s *Storage) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	var games []model.Games
	err := table.Games.
		SELECT(table.Games.ID).
		FROM(table.Games).
		WHERE(prefixRange(prefix)).
		ORDER_BY(table.Games.ID.ASC()).
		QueryContext(ctx, s.db, &games)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(games))
	for _, g := range games {
		keys = append(keys, g.ID)
	}
	return keys, nil
}

func (s *Storage) GetMany(ctx context.Context, keys []string) ([]storage.KeyValue, error) {
	if len(keys) == 0 {
		return []storage.KeyValue{}, nil
	}
	var games []model.Games
	err := table.Games.
		SELECT(table.Games.AllColumns).
		FROM(table.Games).
		WHERE(table.Games.ID.IN(idList(keys)...)).
		QueryContext(ctx, s.db, &games)
	if err != nil {
		return nil, err
	}
	return convertGames(keys, games), nil
}

func (s *Storage) DeleteMany(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := table.Games.
		DELETE().
		WHERE(table.Games.ID.IN(idList(keys)...)).
		ExecContext(ctx, s.db)
	return err
}

func (s *Storage) Close() error {
	s.log.Info("closing game storage")
	return s.db.Close()
}
