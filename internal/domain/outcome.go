package domain

import (
	"fmt"

	"github.com/goserg/darts/internal/capital"
)

type OutcomeKind int

const (
	OutcomeScored OutcomeKind = iota
	OutcomeBust
	OutcomeFinish
)

type BustReason int

const (
	BustNone BustReason = iota
	// BustOverScore: the dart took the player below zero.
	BustOverScore
	// BustLeavesOne: double-out leaves 1, which can never be finished.
	BustLeavesOne
	// BustNoDouble: double-out reached zero without a double.
	BustNoDouble
)

// Outcome describes what a recorded dart did. Busts are outcomes, not errors.
type Outcome struct {
	Kind     OutcomeKind
	Reason   BustReason
	Player   Player
	Points   int
	GameOver bool
}

func (o Outcome) Message() string {
	switch o.Kind {
	case OutcomeBust:
		switch o.Reason {
		case BustLeavesOne:
			return "1 left can't be finished on a double - turn cancelled"
		case BustNoDouble:
			return "You must finish on a double - turn cancelled"
		}
		return "Score exceeded - turn cancelled"
	case OutcomeFinish:
		if o.GameOver {
			return fmt.Sprintf("%s wins, game over", o.Player.Name)
		}
		return fmt.Sprintf("%s has finished", o.Player.Name)
	}
	return fmt.Sprintf("%d points", o.Points)
}

// Advance describes a turn change.
type Advance struct {
	// Previous is the player whose turn closed, with the score after closing.
	Previous Player
	// Restored is set when a pending bust was cleaned up.
	Restored bool
	// Contract is the Capital contract the closed turn was checked against.
	Contract       *capital.Contract
	ContractPoints int
	// Skipped lists finished players whose turns were filled automatically.
	Skipped  []Player
	Next     *Player
	GameOver bool
}
