// Package checkout suggests dart routes that finish a countdown game.
package checkout

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/goserg/darts/internal/domain"
	"github.com/goserg/darts/internal/scoring"
)

const (
	MinRemaining = 2
	MaxRemaining = 170

	maxShortRoutes = 5
	maxLongRoutes  = 8
)

var (
	triples []scoring.Dart
	singles []scoring.Dart
	doubles []scoring.Dart
	bull    = scoring.Dart{Base: scoring.InnerBull, Multiplier: scoring.Single}

	// setupHits is the search order for every dart but the last.
	setupHits []scoring.Dart
)

func init() {
	for n := 20; n >= 10; n-- {
		triples = append(triples, scoring.Dart{Base: n, Multiplier: scoring.Triple})
	}
	for n := 20; n >= 1; n-- {
		singles = append(singles, scoring.Dart{Base: n, Multiplier: scoring.Single})
		doubles = append(doubles, scoring.Dart{Base: n, Multiplier: scoring.Double})
	}
	singles = append(singles, scoring.Dart{Base: scoring.OuterBull, Multiplier: scoring.Single})

	setupHits = append(setupHits, triples...)
	setupHits = append(setupHits, singles...)
	setupHits = append(setupHits, bull)
}

// finisher returns the hit that scores exactly target as the last dart. 50 is
// suggested as Bull under either finish.
func finisher(target int, finish domain.FinishType) (scoring.Dart, bool) {
	if target == scoring.InnerBull {
		return bull, true
	}
	candidates := doubles
	if finish != domain.FinishDoubleOut {
		candidates = append(append(append([]scoring.Dart{}, triples...), singles...), doubles...)
	}
	for _, d := range candidates {
		if scoring.PointValue(d) == target {
			return d, true
		}
	}
	return scoring.Dart{}, false
}

// Suggestions returns labelled routes that take remaining to exactly zero.
// One and two dart routes win over three dart ones.
func Suggestions(remaining int, finish domain.FinishType) [][]string {
	if remaining < MinRemaining || remaining > MaxRemaining {
		return [][]string{}
	}
	var routes [][]string
	if last, ok := finisher(remaining, finish); ok {
		routes = append(routes, labels(last))
	}
	for _, first := range setupHits {
		if len(routes) >= maxShortRoutes {
			break
		}
		rest := remaining - scoring.PointValue(first)
		if rest <= 0 {
			continue
		}
		if last, ok := finisher(rest, finish); ok {
			routes = append(routes, labels(first, last))
		}
	}
	if len(routes) > 0 {
		return dedupe(routes, maxShortRoutes)
	}

	for _, first := range setupHits {
		rest1 := remaining - scoring.PointValue(first)
		if rest1 <= 0 {
			continue
		}
		for _, second := range setupHits {
			rest2 := rest1 - scoring.PointValue(second)
			if rest2 <= 0 {
				continue
			}
			if last, ok := finisher(rest2, finish); ok {
				routes = append(routes, labels(first, second, last))
			}
			if len(routes) >= maxLongRoutes {
				return dedupe(routes, maxLongRoutes)
			}
		}
	}
	return dedupe(routes, maxLongRoutes)
}

func labels(darts ...scoring.Dart) []string {
	out := make([]string, len(darts))
	for i, d := range darts {
		out[i] = scoring.Label(d)
	}
	return out
}

func dedupe(routes [][]string, limit int) [][]string {
	seen := mapset.NewThreadUnsafeSet[string]()
	out := make([][]string, 0, limit)
	for _, r := range routes {
		if !seen.Add(strings.Join(r, "-")) {
			continue
		}
		out = append(out, r)
		if len(out) == limit {
			break
		}
	}
	return out
}

// Format renders a route on one line.
func Format(route []string) string {
	return strings.Join(route, " • ")
}
