package web

import (
	"errors"
	"strings"

	"github.com/goserg/darts/internal/domain"
	"github.com/goserg/darts/internal/scoring"
	"github.com/goserg/darts/internal/service"
)

var (
	ErrNoPlayers    = errors.New("at least one player name is required")
	ErrNoGames      = errors.New("no game ids given")
	ErrDartRequired = errors.New("either hit or base is required")
)

type createGame struct {
	Type          string   `json:"type"`
	FinishType    string   `json:"finishType"`
	FinishAtFirst bool     `json:"isFinishAtFirst"`
	Players       []string `json:"players"`
	Shuffle       bool     `json:"shuffle"`
}

func (c createGame) Validate() error {
	var err error
	if _, parseErr := domain.ParseVariant(c.Type); parseErr != nil {
		err = errors.Join(err, parseErr)
	}
	if c.FinishType != "" {
		if _, parseErr := domain.ParseFinishType(c.FinishType); parseErr != nil {
			err = errors.Join(err, parseErr)
		}
	}
	named := 0
	for _, p := range c.Players {
		if strings.TrimSpace(p) != "" {
			named++
		}
	}
	if named == 0 {
		err = errors.Join(err, ErrNoPlayers)
	}
	return err
}

func (c createGame) params() service.NewGameParams {
	return service.NewGameParams{
		Variant:       c.Type,
		FinishType:    c.FinishType,
		FinishAtFirst: c.FinishAtFirst,
		Players:       c.Players,
		Shuffle:       c.Shuffle,
	}
}

// addDart takes either a label like "T20" or a base and a multiplier.
type addDart struct {
	Hit        string `json:"hit"`
	Base       *int   `json:"base"`
	Multiplier int    `json:"multiplier"`
}

func (a addDart) Dart() (scoring.Dart, error) {
	if a.Hit != "" {
		return scoring.ParseHit(a.Hit)
	}
	if a.Base == nil {
		return scoring.Dart{}, ErrDartRequired
	}
	multiplier := a.Multiplier
	if multiplier == 0 {
		multiplier = scoring.Single
	}
	return scoring.NewDart(*a.Base, multiplier)
}

type deleteGames struct {
	IDs []string `json:"ids"`
}

func (d deleteGames) Validate() error {
	if len(d.IDs) == 0 {
		return ErrNoGames
	}
	return nil
}
