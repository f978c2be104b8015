package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/goserg/darts/internal/domain"
	"github.com/goserg/darts/internal/elo"
	"github.com/goserg/darts/internal/normalize"
	"github.com/goserg/darts/internal/snapshot"
)

// Summary is one line of the saved games list.
type Summary struct {
	ID         string
	Type       domain.Variant
	Status     domain.Status
	FinishType domain.FinishType
	Players    []string
	Rounds     int
	Winner     string
}

func summarize(g *domain.Game) Summary {
	players := g.PlayersInOrder()
	names := make([]string, 0, len(players))
	for _, p := range players {
		names = append(names, p.Name)
	}
	sum := Summary{
		ID:         g.ID,
		Type:       g.Type,
		Status:     g.Status,
		FinishType: g.FinishType,
		Players:    names,
		Rounds:     g.RoundCount(),
	}
	if standings := standings(g); g.Status == domain.StatusFinished && len(standings) > 0 {
		sum.Winner = standings[0].Name
	}
	return sum
}

// List returns every saved game. Snapshots that cannot be read are skipped.
func (s *GameService) List(ctx context.Context) ([]Summary, error) {
	games, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(games))
	for _, g := range games {
		out = append(out, summarize(g))
	}
	return out, nil
}

func (s *GameService) loadAll(ctx context.Context) ([]*domain.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys, err := s.storage.ListKeys(ctx, domain.KeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	values, err := s.storage.GetMany(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("load games: %w", err)
	}
	games := make([]*domain.Game, 0, len(values))
	for _, kv := range values {
		g, err := snapshot.Decode(kv.Value)
		if err != nil {
			s.log.WithError(err).WithField("game", kv.Key).Warn("skipping saved game")
			continue
		}
		games = append(games, g)
	}
	return games, nil
}

// Delete removes saved games. Every id must be a game key.
func (s *GameService) Delete(ctx context.Context, ids []string) error {
	var errs []error
	for _, id := range ids {
		if !isGameID(id) {
			errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidID, id))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.storage.DeleteMany(ctx, ids); err != nil {
		return fmt.Errorf("delete games: %w", err)
	}
	s.ratings.Invalidate()
	s.log.WithField("games", ids).Info("games deleted")
	return nil
}

type Rating struct {
	Name        string
	Rating      int
	GamesPlayed int
}

// Leaderboard rates players over finished games with two or more players.
// Each game counts as head to head results along its final standings.
// The result is cached until a game is saved or deleted.
func (s *GameService) Leaderboard(ctx context.Context) ([]Rating, error) {
	if ratings, ok := s.ratings.All(); ok {
		return ratings, nil
	}
	gen := s.ratings.Generation()
	games, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	table := elo.NewTable()
	names := make(map[string]string)
	gamesPlayed := make(map[string]int)
	for _, g := range games {
		if g.Status != domain.StatusFinished || len(g.Players) < 2 {
			continue
		}
		st := standings(g)
		for i := range st {
			key := normalize.Name(st[i].Name)
			if _, ok := names[key]; !ok {
				names[key] = st[i].Name
			}
			gamesPlayed[key]++
			for j := i + 1; j < len(st); j++ {
				other := normalize.Name(st[j].Name)
				if other == key {
					continue
				}
				table.Record(key, other, headToHead(g, st[i], st[j]))
			}
		}
	}
	out := make([]Rating, 0, len(names))
	for key, name := range names {
		out = append(out, Rating{
			Name:        name,
			Rating:      table.Rating(key),
			GamesPlayed: gamesPlayed[key],
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].Name < out[j].Name
	})
	s.ratings.Update(gen, out)
	return out, nil
}

// PlayerRating looks a player up in the leaderboard, ignoring case and spaces.
func (s *GameService) PlayerRating(ctx context.Context, name string) (Rating, error) {
	if _, err := s.Leaderboard(ctx); err != nil {
		return Rating{}, err
	}
	r, ok := s.ratings.GetByName(name)
	if !ok {
		return Rating{}, fmt.Errorf("%w: %q", ErrUnknownPlayer, name)
	}
	return r, nil
}

// standings lists finishers in finishing order, then everyone else by score.
func standings(g *domain.Game) []domain.Player {
	out := g.RankingOrderedByFinish()
	for _, p := range g.PlayersOrderedByScore() {
		if !g.IsRanked(p.ID) {
			out = append(out, p)
		}
	}
	return out
}

// headToHead scores a against b, a standing above b.
func headToHead(g *domain.Game, a, b domain.Player) elo.Points {
	if !g.IsRanked(a.ID) && a.Score == b.Score {
		return elo.Draw
	}
	return elo.Win
}

func isGameID(id string) bool {
	return len(id) > len(domain.KeyPrefix) && id[:len(domain.KeyPrefix)] == domain.KeyPrefix
}
