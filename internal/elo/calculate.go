// Package elo rates players from the head to head results of finished games.
package elo

import "math"

// Points is what a player scored against one opponent in one game.
type Points float64

const (
	Win  Points = 1
	Draw Points = 0.5
	Lose Points = 0
)

const (
	StartRating = 1000

	// newcomerGames is how many results a player keeps the newcomer factor for.
	newcomerGames = 30
	masterRating  = 2400
	scale         = 400.0
)

// Expected is the score a player rated ra is expected to take off one rated rb.
func Expected(ra, rb int) float64 {
	return 1 / (1 + math.Pow(10, float64(rb-ra)/scale))
}

// Calculate returns the rating a player rated ra moves to after scoring sa
// against one rated rb, k being the development factor from Coefficient.
func Calculate(ra, rb, k int, sa Points) int {
	delta := float64(k) * (float64(sa) - Expected(ra, rb))
	return ra + int(math.Round(delta))
}

// Coefficient is 40 for a newcomer, 10 from masterRating up and 20 otherwise.
func Coefficient(played, rating int) int {
	switch {
	case played <= newcomerGames:
		return 40
	case rating >= masterRating:
		return 10
	}
	return 20
}
