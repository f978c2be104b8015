package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/goserg/darts/internal/cache/mem"
	"github.com/goserg/darts/internal/checkout"
	"github.com/goserg/darts/internal/domain"
	"github.com/goserg/darts/internal/normalize"
	"github.com/goserg/darts/internal/scoring"
	"github.com/goserg/darts/internal/snapshot"
	"github.com/goserg/darts/internal/storage"
)

var (
	ErrInvalidID     = errors.New("invalid game id")
	ErrNotCountdown  = errors.New("checkout is only for 501 and 301")
	ErrUnknownPlayer = errors.New("no rating for player")
)

// FinishListener is called after a player's finish has been saved.
type FinishListener func(ctx context.Context, game *domain.Game, player domain.Player)

// GameService runs game operations against the stored snapshots. Every
// operation reloads the game, applies one change and saves it before the next
// one may start.
type GameService struct {
	mu        sync.Mutex
	storage   storage.GameStorage
	log       *logrus.Entry
	rand      *rand.Rand
	newID     func() string
	listeners []FinishListener
	ratings   *mem.Cache[Rating]
}

func New(l *logrus.Logger, gameStorage storage.GameStorage) *GameService {
	return &GameService{
		storage: gameStorage,
		log:     l.WithField("from", "game-service"),
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
		newID:   NewID,
		ratings: mem.New(func(r Rating) string { return r.Name }),
	}
}

// NewID returns the storage key of a new game: the prefix and 12 random hex
// characters.
func NewID() string {
	return domain.KeyPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

func (s *GameService) OnFinish(l FinishListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

type NewGameParams struct {
	Variant       string
	FinishType    string
	FinishAtFirst bool
	Players       []string
	Shuffle       bool
}

// Create sets up a pending game and saves it.
func (s *GameService) Create(ctx context.Context, params NewGameParams) (*domain.Game, error) {
	variant, variantErr := domain.ParseVariant(params.Variant)
	finish := domain.FinishClassic
	var finishErr error
	if params.FinishType != "" {
		finish, finishErr = domain.ParseFinishType(params.FinishType)
	}
	if err := errors.Join(variantErr, finishErr); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g := domain.NewGame(s.newID(), variant, finish, params.FinishAtFirst)
	for _, name := range params.Players {
		if _, err := g.AddPlayer(displayName(name)); err != nil {
			return nil, err
		}
	}
	if err := g.ConfirmSetup(); err != nil {
		return nil, err
	}
	if params.Shuffle {
		if err := g.Shuffle(s.rand); err != nil {
			return nil, err
		}
	}
	if err := s.save(ctx, g); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"game":    g.ID,
		"type":    g.Type,
		"players": len(g.Players),
	}).Info("game created")
	return g, nil
}

// displayName tidies a typed name and capitalises it if it was typed all in
// lower case.
func displayName(name string) string {
	name = normalize.Display(name)
	if name == strings.ToLower(name) {
		return normalize.Title(name)
	}
	return name
}

func (s *GameService) Get(ctx context.Context, id string) (*domain.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, id)
}

// Start loads the saved game and opens the first turn if there is none.
func (s *GameService) Start(ctx context.Context, id string) (*domain.Game, error) {
	return s.update(ctx, id, func(g *domain.Game) error {
		return g.Start()
	})
}

func (s *GameService) AddDart(ctx context.Context, id string, base, multiplier int) (*domain.Game, domain.Outcome, error) {
	var out domain.Outcome
	g, err := s.update(ctx, id, func(g *domain.Game) error {
		var err error
		out, err = g.AddDart(base, multiplier)
		return err
	})
	if err != nil {
		return nil, domain.Outcome{}, err
	}
	log := s.log.WithFields(logrus.Fields{"game": id, "player": out.Player.Name})
	switch out.Kind {
	case domain.OutcomeBust:
		log.Debug(out.Message())
	case domain.OutcomeFinish:
		log.Info(out.Message())
		s.notifyFinish(ctx, g, out.Player)
	}
	return g, out, nil
}

func (s *GameService) RemoveLastDart(ctx context.Context, id string) (*domain.Game, scoring.Dart, error) {
	var d scoring.Dart
	g, err := s.update(ctx, id, func(g *domain.Game) error {
		var err error
		d, err = g.RemoveLastDart()
		return err
	})
	if err != nil {
		return nil, scoring.Dart{}, err
	}
	return g, d, nil
}

func (s *GameService) NextPlayer(ctx context.Context, id string) (*domain.Game, domain.Advance, error) {
	var adv domain.Advance
	g, err := s.update(ctx, id, func(g *domain.Game) error {
		var err error
		adv, err = g.NextPlayer()
		return err
	})
	if err != nil {
		return nil, domain.Advance{}, err
	}
	if adv.GameOver {
		s.log.WithField("game", id).Info("game over")
	}
	return g, adv, nil
}

func (s *GameService) Reset(ctx context.Context, id string) (*domain.Game, error) {
	return s.update(ctx, id, func(g *domain.Game) error {
		g.ResetGame()
		return nil
	})
}

// Checkout suggests finishing routes for the current player.
func (s *GameService) Checkout(ctx context.Context, id string) (domain.Player, [][]string, error) {
	g, err := s.Get(ctx, id)
	if err != nil {
		return domain.Player{}, nil, err
	}
	if !g.Type.IsCountdown() {
		return domain.Player{}, nil, ErrNotCountdown
	}
	p, ok := g.CurrentPlayer()
	if !ok {
		return domain.Player{}, nil, domain.ErrNotStarted
	}
	return p, checkout.Suggestions(p.Score, g.FinishType), nil
}

// update is the one way games change: load, apply fn, save. When fn or the
// save fails the change is dropped and the stored snapshot stays as it was.
func (s *GameService) update(ctx context.Context, id string, fn func(g *domain.Game) error) (*domain.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(g); err != nil {
		return nil, err
	}
	if err := s.save(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *GameService) load(ctx context.Context, id string) (*domain.Game, error) {
	if !isGameID(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	bz, err := s.storage.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", id, err)
	}
	g, err := snapshot.Decode(bz)
	if err != nil {
		s.log.WithError(err).WithField("game", id).Warn("corrupt snapshot")
		return nil, err
	}
	return g, nil
}

func (s *GameService) save(ctx context.Context, g *domain.Game) error {
	bz, err := snapshot.Encode(g)
	if err != nil {
		return err
	}
	if err := s.storage.Set(ctx, g.ID, bz); err != nil {
		s.log.WithError(err).WithField("game", g.ID).Error("save game")
		return fmt.Errorf("save game %s: %w", g.ID, err)
	}
	s.ratings.Invalidate()
	return nil
}

func (s *GameService) notifyFinish(ctx context.Context, g *domain.Game, p domain.Player) {
	s.mu.Lock()
	listeners := make([]FinishListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l(ctx, g, p)
	}
}
