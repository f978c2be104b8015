// Package snapshot is the persisted form of a game.
package snapshot

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/goserg/darts/internal/domain"
)

type Player struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
	Order int    `json:"order"`
}

type Dart struct {
	Score      int `json:"score"`
	Multiplier int `json:"multiplier"`
}

type Turn struct {
	Player Player `json:"player"`
	Score  int    `json:"score"`
	Darts  []Dart `json:"darts"`
}

type Game struct {
	ID              string   `json:"id"`
	Type            string   `json:"type"`
	Status          string   `json:"status"`
	Players         []Player `json:"players"`
	Rows            [][]Turn `json:"rows"`
	Ranking         []Player `json:"ranking"`
	FinishType      string   `json:"finishType"`
	IsFinishAtFirst bool     `json:"isFinishAtFirst"`
}

// CorruptSnapshotError is returned when stored bytes do not describe a valid
// game.
type CorruptSnapshotError struct {
	ID     string
	Reason string
	Err    error
}

func (e *CorruptSnapshotError) Error() string {
	msg := "corrupt snapshot"
	if e.ID != "" {
		msg += " " + e.ID
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CorruptSnapshotError) Unwrap() error {
	return e.Err
}

func corrupt(id string, format string, args ...any) *CorruptSnapshotError {
	return &CorruptSnapshotError{ID: id, Reason: fmt.Sprintf(format, args...)}
}

func Encode(g *domain.Game) ([]byte, error) {
	bz, err := json.Marshal(fromDomain(g))
	if err != nil {
		return nil, fmt.Errorf("encode game %s: %w", g.ID, err)
	}
	return bz, nil
}

// Decode parses and validates a stored game. Any problem is reported as a
// *CorruptSnapshotError.
func Decode(bz []byte) (*domain.Game, error) {
	var dto Game
	if err := json.Unmarshal(bz, &dto); err != nil {
		return nil, &CorruptSnapshotError{Reason: "invalid json", Err: err}
	}
	return toDomain(dto)
}
