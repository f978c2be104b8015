package domain

import (
	"errors"
	"fmt"
)

type Variant string

const (
	Variant501     Variant = "501"
	Variant301     Variant = "301"
	VariantCapital Variant = "Capital"
)

var (
	ErrUnknownVariant    = errors.New("unknown game type")
	ErrUnknownFinishType = errors.New("unknown finish type")
)

func ParseVariant(s string) (Variant, error) {
	switch v := Variant(s); v {
	case Variant501, Variant301, VariantCapital:
		return v, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// StartingScore is what every player holds before the first dart.
func (v Variant) StartingScore() int {
	switch v {
	case Variant501:
		return 501
	case Variant301:
		return 301
	}
	return 0
}

// IsCountdown is true for the x01 games where players count down to zero.
func (v Variant) IsCountdown() bool {
	return v == Variant501 || v == Variant301
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusStarted  Status = "started"
	StatusFinished Status = "finished"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusStarted || s == StatusFinished
}

type FinishType string

const (
	FinishClassic   FinishType = "classic"
	FinishDoubleOut FinishType = "double"
)

func ParseFinishType(s string) (FinishType, error) {
	switch f := FinishType(s); f {
	case FinishClassic, FinishDoubleOut:
		return f, nil
	case "double-out":
		return FinishDoubleOut, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFinishType, s)
}
