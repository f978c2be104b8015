package elo

// Table accumulates ratings over a sequence of head to head results, keyed by
// normalised player name.
type Table struct {
	ratings map[string]int
	played  map[string]int
}

func NewTable() *Table {
	return &Table{
		ratings: make(map[string]int),
		played:  make(map[string]int),
	}
}

// Record applies one result, pa is what a scored against b. Both players are
// rated from their ratings before the result.
func (t *Table) Record(a, b string, pa Points) {
	ra := t.Rating(a)
	rb := t.Rating(b)
	t.ratings[a] = Calculate(ra, rb, Coefficient(t.played[a], ra), pa)
	t.ratings[b] = Calculate(rb, ra, Coefficient(t.played[b], rb), Win-pa)
	t.played[a]++
	t.played[b]++
}

func (t *Table) Rating(player string) int {
	r, ok := t.ratings[player]
	if !ok {
		return StartRating
	}
	return r
}
