package capital

import (
	"testing"

	"github.com/goserg/darts/internal/scoring"
)

func d(base, multiplier int) scoring.Dart {
	return scoring.Dart{Base: base, Multiplier: multiplier}
}

func TestForRound(t *testing.T) {
	tests := []struct {
		round int
		want  Key
	}{
		{round: -3, want: S20},
		{round: 0, want: S20},
		{round: 5, want: SideBySide},
		{round: 11, want: Total57},
		{round: 13, want: Centre},
		{round: 40, want: Centre},
	}
	for _, tt := range tests {
		if got := ForRound(tt.round).Key; got != tt.want {
			t.Errorf("ForRound(%d) = %v, want %v", tt.round, got, tt.want)
		}
	}
	if Rounds != 14 {
		t.Errorf("Rounds = %d, want 14", Rounds)
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		key   Key
		darts []scoring.Dart
		want  bool
	}{
		{name: "20 single", key: S20, darts: []scoring.Dart{d(20, 1), d(5, 1), d(1, 1)}, want: true},
		{name: "20 as triple", key: S20, darts: []scoring.Dart{d(20, 3)}, want: true},
		{name: "no 20", key: S20, darts: []scoring.Dart{d(5, 1), d(1, 1), d(0, 1)}, want: false},
		{name: "14 hit", key: S14, darts: []scoring.Dart{d(0, 1), d(14, 2)}, want: true},
		{name: "triple", key: Triple, darts: []scoring.Dart{d(1, 1), d(7, 3)}, want: true},
		{name: "no triple", key: Triple, darts: []scoring.Dart{d(1, 2), d(25, 1)}, want: false},
		{name: "double", key: Double, darts: []scoring.Dart{d(3, 2)}, want: true},
		{name: "inner bull is not a double", key: Double, darts: []scoring.Dart{d(50, 1)}, want: false},
		{name: "side by side", key: SideBySide, darts: []scoring.Dart{d(20, 1), d(1, 1), d(18, 1)}, want: true},
		{name: "side by side wraps", key: SideBySide, darts: []scoring.Dart{d(5, 1), d(20, 3), d(1, 2)}, want: true},
		{name: "side by side gap", key: SideBySide, darts: []scoring.Dart{d(20, 1), d(18, 1), d(4, 1)}, want: false},
		{name: "side by side numeric is not board", key: SideBySide, darts: []scoring.Dart{d(7, 1), d(8, 1), d(9, 1)}, want: false},
		{name: "side by side repeated", key: SideBySide, darts: []scoring.Dart{d(20, 1), d(20, 1), d(1, 1)}, want: false},
		{name: "suite", key: Suite, darts: []scoring.Dart{d(9, 1), d(7, 2), d(8, 3)}, want: true},
		{name: "suite repeated", key: Suite, darts: []scoring.Dart{d(7, 1), d(8, 1), d(8, 1)}, want: false},
		{name: "suite with bull", key: Suite, darts: []scoring.Dart{d(19, 1), d(20, 1), d(25, 1)}, want: false},
		{name: "colours", key: Colour, darts: []scoring.Dart{d(20, 3), d(1, 2), d(20, 1)}, want: true},
		{name: "black and white and red", key: Colour, darts: []scoring.Dart{d(20, 1), d(1, 1), d(50, 1)}, want: true},
		{name: "two colours", key: Colour, darts: []scoring.Dart{d(20, 1), d(18, 1), d(25, 1)}, want: false},
		{name: "miss has no colour", key: Colour, darts: []scoring.Dart{d(20, 1), d(1, 1), d(0, 1)}, want: false},
		{name: "57 with a triple", key: Total57, darts: []scoring.Dart{d(19, 3)}, want: true},
		{name: "57 with three", key: Total57, darts: []scoring.Dart{d(25, 1), d(16, 2), d(0, 1)}, want: true},
		{name: "56", key: Total57, darts: []scoring.Dart{d(18, 3), d(2, 1)}, want: false},
		{name: "centre outer", key: Centre, darts: []scoring.Dart{d(25, 1)}, want: true},
		{name: "centre inner", key: Centre, darts: []scoring.Dart{d(1, 1), d(50, 1)}, want: true},
		{name: "no centre", key: Centre, darts: []scoring.Dart{d(20, 3), d(20, 3), d(20, 3)}, want: false},
		{name: "unknown key", key: Key("NOPE"), darts: []scoring.Dart{d(20, 1)}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.key, tt.darts); got != tt.want {
				t.Errorf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPoints(t *testing.T) {
	tests := []struct {
		name  string
		key   Key
		darts []scoring.Dart
		want  int
	}{
		{name: "20 then 5 then 1", key: S20, darts: []scoring.Dart{d(20, 1), d(5, 1), d(1, 1)}, want: 26},
		{name: "missed contract", key: S20, darts: []scoring.Dart{d(19, 3), d(19, 3), d(19, 3)}, want: 0},
		{name: "flat 57", key: Total57, darts: []scoring.Dart{d(25, 1), d(16, 2), d(0, 1)}, want: 57},
		{name: "bull counts full", key: Centre, darts: []scoring.Dart{d(50, 1), d(25, 1), d(20, 3)}, want: 135},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := Points(tt.key, tt.darts)
			second := Points(tt.key, tt.darts)
			if first != tt.want {
				t.Errorf("Points() = %v, want %v", first, tt.want)
			}
			if first != second {
				t.Errorf("Points() not deterministic: %v then %v", first, second)
			}
			if !Evaluate(tt.key, tt.darts) && first != 0 {
				t.Errorf("Points() = %v for an unmet contract", first)
			}
		})
	}
}
