package scoring

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	Miss      = 0
	OuterBull = 25
	InnerBull = 50
)

const (
	Single = 1
	Double = 2
	Triple = 3
)

var ErrInvalidDart = errors.New("invalid dart")

// Dart is a single recorded throw. Base is the sector value (0 for a miss,
// 25 and 50 for the bulls) and Multiplier the ring it landed in.
type Dart struct {
	Base       int
	Multiplier int
}

// ZeroDart is the miss used to back-fill closed turns.
var ZeroDart = Dart{Base: Miss, Multiplier: Single}

// BoardSectors is the clockwise sector order starting from 20 at the top.
var BoardSectors = [20]int{20, 1, 18, 4, 13, 6, 10, 15, 2, 17, 3, 19, 7, 16, 8, 11, 14, 9, 12, 5}

// NewDart validates a raw hit. A miss is always stored with multiplier 1.
func NewDart(base, multiplier int) (Dart, error) {
	switch {
	case base == Miss:
		return ZeroDart, nil
	case base == OuterBull || base == InnerBull:
		if multiplier != Single {
			return Dart{}, fmt.Errorf("%w: bull %d cannot have multiplier %d", ErrInvalidDart, base, multiplier)
		}
	case base >= 1 && base <= 20:
		if multiplier < Single || multiplier > Triple {
			return Dart{}, fmt.Errorf("%w: multiplier %d", ErrInvalidDart, multiplier)
		}
	default:
		return Dart{}, fmt.Errorf("%w: base %d", ErrInvalidDart, base)
	}
	return Dart{Base: base, Multiplier: multiplier}, nil
}

// PointValue returns the points scored by d. A miss is worth nothing whatever
// the multiplier says.
func PointValue(d Dart) int {
	if d.Base == Miss {
		return 0
	}
	return d.Base * d.Multiplier
}

// Total sums the point values of darts.
func Total(darts []Dart) int {
	total := 0
	for _, d := range darts {
		total += PointValue(d)
	}
	return total
}

func IsDouble(d Dart) bool { return d.Base != Miss && d.Multiplier == Double }

func IsTriple(d Dart) bool { return d.Base != Miss && d.Multiplier == Triple }

func IsOuterBull(d Dart) bool { return d.Base == OuterBull }

func IsInnerBull(d Dart) bool { return d.Base == InnerBull }

// SectorIndex returns the position of n on the board circle.
func SectorIndex(n int) (int, bool) {
	for i, s := range BoardSectors {
		if s == n {
			return i, true
		}
	}
	return 0, false
}

// Label renders d the way checkout routes are written: T20, D16, 7, 25, Bull.
func Label(d Dart) string {
	switch {
	case d.Base == Miss:
		return "0"
	case d.Base == InnerBull:
		return "Bull"
	case d.Base == OuterBull:
		return "25"
	case d.Multiplier == Triple:
		return "T" + strconv.Itoa(d.Base)
	case d.Multiplier == Double:
		return "D" + strconv.Itoa(d.Base)
	}
	return strconv.Itoa(d.Base)
}

// ParseHit is the inverse of Label. It also accepts an S prefix for singles,
// "miss" and "bull" in any case, and "DB" for the inner bull.
func ParseHit(s string) (Dart, error) {
	raw := strings.ToUpper(strings.TrimSpace(s))
	switch raw {
	case "":
		return Dart{}, fmt.Errorf("%w: empty hit", ErrInvalidDart)
	case "MISS", "M":
		return ZeroDart, nil
	case "BULL", "DB", "50":
		return Dart{Base: InnerBull, Multiplier: Single}, nil
	case "SB", "OB", "25":
		return Dart{Base: OuterBull, Multiplier: Single}, nil
	}
	multiplier := Single
	switch raw[0] {
	case 'T':
		multiplier = Triple
		raw = raw[1:]
	case 'D':
		multiplier = Double
		raw = raw[1:]
	case 'S':
		raw = raw[1:]
	}
	base, err := strconv.Atoi(raw)
	if err != nil {
		return Dart{}, fmt.Errorf("%w: %q", ErrInvalidDart, s)
	}
	if base > 20 {
		return Dart{}, fmt.Errorf("%w: %q", ErrInvalidDart, s)
	}
	return NewDart(base, multiplier)
}
