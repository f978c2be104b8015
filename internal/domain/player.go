package domain

import (
	"github.com/goserg/darts/internal/scoring"
)

// Player is a participant of one game. ID is assigned at creation and never
// changes, Order drives the rotation.
type Player struct {
	ID    int
	Name  string
	Score int
	Order int
}

// MaxDarts is the number of throws in a turn.
const MaxDarts = 3

// Turn is one player's pass through a round. Player is a copy taken when the
// turn opened, so Player.Score is the pre-turn score.
type Turn struct {
	Player Player
	Score  int
	Darts  []scoring.Dart
}

func newTurn(p Player) Turn {
	return Turn{Player: p, Darts: make([]scoring.Dart, 0, MaxDarts)}
}

func (t *Turn) IsClosed() bool {
	return len(t.Darts) >= MaxDarts
}

func (t *Turn) addDart(d scoring.Dart) error {
	if t.IsClosed() {
		return ErrTooManyDarts
	}
	t.Darts = append(t.Darts, d)
	t.Score += scoring.PointValue(d)
	return nil
}

func (t *Turn) popDart() (scoring.Dart, error) {
	if len(t.Darts) == 0 {
		return scoring.Dart{}, ErrNoDart
	}
	d := t.Darts[len(t.Darts)-1]
	t.Darts = t.Darts[:len(t.Darts)-1]
	return d, nil
}

// fill back-fills the remaining slots with misses.
func (t *Turn) fill() {
	for len(t.Darts) < MaxDarts {
		t.Darts = append(t.Darts, scoring.ZeroDart)
	}
}
