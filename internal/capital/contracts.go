// Package capital holds the fourteen per-round contracts of the Capital game.
package capital

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/goserg/darts/internal/scoring"
)

type Key string

const (
	S20        Key = "S20"
	Triple     Key = "TRIPLE"
	S19        Key = "S19"
	Double     Key = "DOUBLE"
	S18        Key = "S18"
	SideBySide Key = "SIDE_BY_SIDE"
	S17        Key = "S17"
	Suite      Key = "SUITE"
	S16        Key = "S16"
	Colour     Key = "COULEUR"
	S15        Key = "S15"
	Total57    Key = "TOTAL_57"
	S14        Key = "S14"
	Centre     Key = "CENTRE"
)

type Contract struct {
	Key         Key
	Label       string
	Description string
}

// Contracts is played in order, one per round.
var Contracts = []Contract{
	{Key: S20, Label: "20", Description: "Hit at least one 20"},
	{Key: Triple, Label: "Triple", Description: "Hit at least one triple"},
	{Key: S19, Label: "19", Description: "Hit at least one 19"},
	{Key: Double, Label: "Double", Description: "Hit at least one double"},
	{Key: S18, Label: "18", Description: "Hit at least one 18"},
	{Key: SideBySide, Label: "Side by side", Description: "Three sectors next to each other on the board"},
	{Key: S17, Label: "17", Description: "Hit at least one 17"},
	{Key: Suite, Label: "Suite", Description: "Three consecutive numbers (e.g. 7-8-9)"},
	{Key: S16, Label: "16", Description: "Hit at least one 16"},
	{Key: Colour, Label: "Colour", Description: "Three darts in three different colours (white, black, red, green)"},
	{Key: S15, Label: "15", Description: "Hit at least one 15"},
	{Key: Total57, Label: "57", Description: "Score exactly 57 points"},
	{Key: S14, Label: "14", Description: "Hit at least one 14"},
	{Key: Centre, Label: "Centre", Description: "Hit the bull (25 or 50)"},
}

// Rounds is the length of a Capital game.
var Rounds = len(Contracts)

// ForRound returns the contract of a 0-based round index, clamped to the list.
func ForRound(roundIndex int) Contract {
	if roundIndex < 0 {
		roundIndex = 0
	}
	if roundIndex > len(Contracts)-1 {
		roundIndex = len(Contracts) - 1
	}
	return Contracts[roundIndex]
}

type colour string

const (
	white colour = "white"
	black colour = "black"
	red   colour = "red"
	green colour = "green"
)

func colourOf(d scoring.Dart) (colour, bool) {
	switch {
	case scoring.IsInnerBull(d), scoring.IsTriple(d):
		return red, true
	case scoring.IsOuterBull(d), scoring.IsDouble(d):
		return green, true
	}
	idx, ok := scoring.SectorIndex(d.Base)
	if !ok {
		return "", false
	}
	if idx%2 == 0 {
		return black, true
	}
	return white, true
}

// numbers returns the distinct 1..20 bases hit, bulls and misses excluded.
func numbers(darts []scoring.Dart) []int {
	seen := mapset.NewThreadUnsafeSet[int]()
	var out []int
	for _, d := range darts {
		if d.Base < 1 || d.Base > 20 {
			continue
		}
		if seen.Add(d.Base) {
			out = append(out, d.Base)
		}
	}
	return out
}

func hasNumber(darts []scoring.Dart, n int) bool {
	for _, d := range darts {
		if d.Base == n {
			return true
		}
	}
	return false
}

func adjacentOnBoard(a, b, c int) bool {
	idx := mapset.NewThreadUnsafeSet[int]()
	for _, n := range []int{a, b, c} {
		i, ok := scoring.SectorIndex(n)
		if !ok {
			return false
		}
		idx.Add(i)
	}
	for start := 0; start < len(scoring.BoardSectors); start++ {
		window := mapset.NewThreadUnsafeSet[int](
			start,
			(start+1)%len(scoring.BoardSectors),
			(start+2)%len(scoring.BoardSectors),
		)
		if window.Equal(idx) {
			return true
		}
	}
	return false
}

func consecutive(a, b, c int) bool {
	lo, mid, hi := a, b, c
	if lo > mid {
		lo, mid = mid, lo
	}
	if mid > hi {
		mid, hi = hi, mid
	}
	if lo > mid {
		lo, mid = mid, lo
	}
	return mid == lo+1 && hi == mid+1
}

func anyTriplet(nums []int, fn func(a, b, c int) bool) bool {
	for i := 0; i < len(nums); i++ {
		for j := i + 1; j < len(nums); j++ {
			for k := j + 1; k < len(nums); k++ {
				if fn(nums[i], nums[j], nums[k]) {
					return true
				}
			}
		}
	}
	return false
}

// Evaluate reports whether darts satisfy the contract.
func Evaluate(key Key, darts []scoring.Dart) bool {
	switch key {
	case S20:
		return hasNumber(darts, 20)
	case S19:
		return hasNumber(darts, 19)
	case S18:
		return hasNumber(darts, 18)
	case S17:
		return hasNumber(darts, 17)
	case S16:
		return hasNumber(darts, 16)
	case S15:
		return hasNumber(darts, 15)
	case S14:
		return hasNumber(darts, 14)
	case Triple:
		for _, d := range darts {
			if scoring.IsTriple(d) {
				return true
			}
		}
		return false
	case Double:
		for _, d := range darts {
			if scoring.IsDouble(d) {
				return true
			}
		}
		return false
	case SideBySide:
		return anyTriplet(numbers(darts), adjacentOnBoard)
	case Suite:
		return anyTriplet(numbers(darts), consecutive)
	case Colour:
		colours := mapset.NewThreadUnsafeSet[colour]()
		for _, d := range darts {
			if c, ok := colourOf(d); ok {
				colours.Add(c)
			}
		}
		return colours.Cardinality() >= 3
	case Total57:
		return scoring.Total(darts) == 57
	case Centre:
		for _, d := range darts {
			if scoring.IsOuterBull(d) || scoring.IsInnerBull(d) {
				return true
			}
		}
		return false
	}
	return false
}

// Points is what a turn earns against the contract: the darts total, a flat
// 57 for TOTAL_57, nothing when the contract is missed.
func Points(key Key, darts []scoring.Dart) int {
	if !Evaluate(key, darts) {
		return 0
	}
	if key == Total57 {
		return 57
	}
	return scoring.Total(darts)
}
