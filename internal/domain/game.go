package domain

import (
	"errors"
	"math/rand"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/goserg/darts/internal/capital"
	"github.com/goserg/darts/internal/scoring"
)

var (
	ErrSetup            = errors.New("no player with order 1")
	ErrTooManyDarts     = errors.New("turn already has 3 darts")
	ErrNoDart           = errors.New("no dart to remove")
	ErrNoPlayer         = errors.New("no player to play next")
	ErrNotStarted       = errors.New("game is not started")
	ErrGameFinished     = errors.New("game is finished")
	ErrNotPending       = errors.New("players can only change before the game starts")
	ErrNotEnoughPlayers = errors.New("at least one player is required")
	ErrBadOrder         = errors.New("order must list every player once")
)

// KeyPrefix starts every game ID and therefore every storage key.
const KeyPrefix = "darts"

// Game is the root aggregate: players, the rounds played so far and the
// finishing order. Rounds are append-only and the last turn of the last round
// is the current one.
type Game struct {
	ID            string
	Type          Variant
	Status        Status
	Players       []Player
	Rounds        [][]Turn
	Ranking       []Player
	FinishType    FinishType
	FinishAtFirst bool
}

func NewGame(id string, variant Variant, finish FinishType, finishAtFirst bool) *Game {
	return &Game{
		ID:            id,
		Type:          variant,
		Status:        StatusPending,
		FinishType:    finish,
		FinishAtFirst: finishAtFirst,
	}
}

// AddPlayer registers a player during setup. IDs are 1-based and never reused;
// the new player goes last.
func (g *Game) AddPlayer(name string) (Player, error) {
	if g.Status != StatusPending {
		return Player{}, ErrNotPending
	}
	id := 1
	for _, p := range g.Players {
		if p.ID >= id {
			id = p.ID + 1
		}
	}
	p := Player{
		ID:    id,
		Name:  name,
		Score: g.Type.StartingScore(),
		Order: len(g.Players) + 1,
	}
	g.Players = append(g.Players, p)
	return p, nil
}

// Reorder sets the turn order to the sequence of player IDs.
func (g *Game) Reorder(ids []int) error {
	if g.Status != StatusPending {
		return ErrNotPending
	}
	if len(ids) != len(g.Players) {
		return ErrBadOrder
	}
	seen := mapset.NewThreadUnsafeSet[int]()
	for _, id := range ids {
		if _, ok := g.playerByID(id); !ok || !seen.Add(id) {
			return ErrBadOrder
		}
	}
	for i, id := range ids {
		p, _ := g.playerByID(id)
		p.Order = i + 1
	}
	return nil
}

func (g *Game) Shuffle(r *rand.Rand) error {
	if g.Status != StatusPending {
		return ErrNotPending
	}
	ids := make([]int, len(g.Players))
	for i := range g.Players {
		ids[i] = g.Players[i].ID
	}
	r.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	return g.Reorder(ids)
}

// ConfirmSetup drops players without a name and closes the gaps in the order.
func (g *Game) ConfirmSetup() error {
	if g.Status != StatusPending {
		return ErrNotPending
	}
	kept := g.Players[:0]
	for _, p := range g.Players {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			continue
		}
		kept = append(kept, p)
	}
	g.Players = kept
	if len(g.Players) < 1 {
		return ErrNotEnoughPlayers
	}
	byOrder := make([]*Player, len(g.Players))
	for i := range g.Players {
		byOrder[i] = &g.Players[i]
	}
	sort.SliceStable(byOrder, func(i, j int) bool {
		return byOrder[i].Order < byOrder[j].Order
	})
	for i, p := range byOrder {
		p.Order = i + 1
	}
	return nil
}

// Start opens the first turn for the player with order 1. Starting a
// finished game keeps it finished.
func (g *Game) Start() error {
	if g.Status == StatusFinished {
		return nil
	}
	if len(g.Rounds) == 0 {
		first, ok := g.playerByOrder(1)
		if !ok {
			return ErrSetup
		}
		g.Rounds = append(g.Rounds, []Turn{newTurn(*first)})
	}
	g.Status = StatusStarted
	return nil
}

// AddDart records a throw against the current turn.
func (g *Game) AddDart(base, multiplier int) (Outcome, error) {
	if err := g.checkPlaying(); err != nil {
		return Outcome{}, err
	}
	d, err := scoring.NewDart(base, multiplier)
	if err != nil {
		return Outcome{}, err
	}
	turn := g.CurrentTurn()
	player, ok := g.playerByID(turn.Player.ID)
	if !ok {
		return Outcome{}, ErrNoPlayer
	}
	if err := turn.addDart(d); err != nil {
		return Outcome{}, err
	}
	points := scoring.PointValue(d)
	out := Outcome{Kind: OutcomeScored, Points: points}

	// Capital scores the whole turn against the round contract in NextPlayer.
	if !g.Type.IsCountdown() {
		out.Player = *player
		return out, nil
	}

	post := player.Score - points
	doubleOut := g.FinishType == FinishDoubleOut
	switch {
	case post < 0:
		out.Reason = BustOverScore
	case doubleOut && post == 1:
		out.Reason = BustLeavesOne
	case doubleOut && post == 0 && d.Multiplier != scoring.Double:
		out.Reason = BustNoDouble
	}
	if out.Reason != BustNone {
		out.Kind = OutcomeBust
		player.Score = turn.Player.Score
		turn.Score = 0
		turn.fill()
		out.Player = *player
		return out, nil
	}

	player.Score = post
	out.Player = *player
	if post != 0 {
		return out, nil
	}

	out.Kind = OutcomeFinish
	g.rank(*player)
	if g.FinishAtFirst || len(g.Ranking) == len(g.Players) {
		g.Status = StatusFinished
		out.GameOver = true
		return out, nil
	}
	turn.fill()
	return out, nil
}


// RemoveLastDart undoes the most recent dart of the current turn.
func (g *Game) RemoveLastDart() (scoring.Dart, error) {
	if err := g.checkPlaying(); err != nil {
		return scoring.Dart{}, err
	}
	turn := g.CurrentTurn()
	d, err := turn.popDart()
	if err != nil {
		return scoring.Dart{}, err
	}
	turn.Score = scoring.Total(turn.Darts)
	if !g.Type.IsCountdown() {
		return d, nil
	}
	player, ok := g.playerByID(turn.Player.ID)
	if !ok {
		return d, ErrNoPlayer
	}
	// The player's score is what the remaining darts leave from the pre-turn
	// score; undoing across a bust can leave it negative until the next dart
	// or NextPlayer settles it.
	player.Score = turn.Player.Score - turn.Score
	if player.Score != 0 {
		g.unrank(player.ID)
	}
	return d, nil
}

// NextPlayer closes the current turn and opens the next player's.
func (g *Game) NextPlayer() (Advance, error) {
	if err := g.checkPlaying(); err != nil {
		return Advance{}, err
	}
	turn := g.CurrentTurn()
	player, ok := g.playerByID(turn.Player.ID)
	if !ok {
		return Advance{}, ErrNoPlayer
	}
	var adv Advance
	if g.Type.IsCountdown() && g.bustPending(*player) {
		player.Score = turn.Player.Score
		turn.Score = 0
		adv.Restored = true
	}
	if g.Type == VariantCapital {
		roundIndex := len(g.Rounds) - 1
		if roundIndex < 0 {
			roundIndex = 0
		}
		contract := capital.ForRound(roundIndex)
		points := capital.Points(contract.Key, turn.Darts)
		player.Score += points
		adv.Contract = &contract
		adv.ContractPoints = points
	}
	turn.fill()
	adv.Previous = *player

	for i := 0; i < len(g.Players); i++ {
		next, err := g.openNextTurn()
		if err != nil {
			return adv, err
		}
		if next == nil {
			adv.GameOver = true
			return adv, nil
		}
		adv.Next = next
		if !g.Type.IsCountdown() || next.Score != 0 {
			return adv, nil
		}
		// Already finished: the turn is filled and play moves on.
		skipped := g.CurrentTurn()
		skipped.Score = 0
		skipped.fill()
		adv.Skipped = append(adv.Skipped, *next)
	}
	return adv, nil
}

// openNextTurn appends a turn for the player after the current one. It returns
// nil when a Capital game has just completed its last round.
func (g *Game) openNextTurn() (*Player, error) {
	nextOrder := 1
	if turn := g.CurrentTurn(); turn != nil {
		order := turn.Player.Order
		if current, ok := g.playerByID(turn.Player.ID); ok {
			order = current.Order
		}
		if order < len(g.Players) {
			nextOrder = order + 1
		}
	}
	next, ok := g.playerByOrder(nextOrder)
	if !ok {
		return nil, ErrNoPlayer
	}
	last := len(g.Rounds) - 1
	if last < 0 || len(g.Rounds[last]) >= len(g.Players) {
		if g.Type == VariantCapital && len(g.Rounds) >= capital.Rounds {
			g.Status = StatusFinished
			return nil, nil
		}
		g.Rounds = append(g.Rounds, []Turn{newTurn(*next)})
	} else {
		g.Rounds[last] = append(g.Rounds[last], newTurn(*next))
	}
	p := *next
	return &p, nil
}

// ResetGame wipes the rounds and the ranking and puts everyone back on the
// starting score.
func (g *Game) ResetGame() {
	g.Rounds = nil
	g.Ranking = nil
	g.Status = StatusPending
	for i := range g.Players {
		g.Players[i].Score = g.Type.StartingScore()
	}
}

func (g *Game) checkPlaying() error {
	switch g.Status {
	case StatusFinished:
		return ErrGameFinished
	case StatusPending:
		return ErrNotStarted
	}
	if g.CurrentTurn() == nil {
		return ErrNotStarted
	}
	return nil
}

// bustPending covers the states undo can leave behind: below zero, or a zero
// or a one that double-out would not have accepted.
func (g *Game) bustPending(p Player) bool {
	if p.Score < 0 {
		return true
	}
	if g.FinishType != FinishDoubleOut {
		return false
	}
	return p.Score == 1 || (p.Score == 0 && !g.IsRanked(p.ID))
}

func (g *Game) rank(p Player) {
	if g.IsRanked(p.ID) {
		return
	}
	g.Ranking = append(g.Ranking, p)
}

func (g *Game) unrank(id int) {
	for i := range g.Ranking {
		if g.Ranking[i].ID == id {
			g.Ranking = append(g.Ranking[:i], g.Ranking[i+1:]...)
			return
		}
	}
}

func (g *Game) IsRanked(id int) bool {
	for i := range g.Ranking {
		if g.Ranking[i].ID == id {
			return true
		}
	}
	return false
}

func (g *Game) playerByID(id int) (*Player, bool) {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return &g.Players[i], true
		}
	}
	return nil, false
}

func (g *Game) playerByOrder(order int) (*Player, bool) {
	for i := range g.Players {
		if g.Players[i].Order == order {
			return &g.Players[i], true
		}
	}
	return nil, false
}

// PlayerByID returns a copy of the player with the given ID.
func (g *Game) PlayerByID(id int) (Player, bool) {
	p, ok := g.playerByID(id)
	if !ok {
		return Player{}, false
	}
	return *p, true
}

// CurrentTurn is the last turn of the last round, nil before the game starts.
func (g *Game) CurrentTurn() *Turn {
	if len(g.Rounds) == 0 {
		return nil
	}
	row := g.Rounds[len(g.Rounds)-1]
	if len(row) == 0 {
		return nil
	}
	return &g.Rounds[len(g.Rounds)-1][len(row)-1]
}

func (g *Game) CurrentPlayer() (Player, bool) {
	turn := g.CurrentTurn()
	if turn == nil {
		return Player{}, false
	}
	return g.PlayerByID(turn.Player.ID)
}

// NextPlayerToPlay is who NextPlayer would open a turn for, passing over
// countdown players who have already finished. It is false when the next turn
// change ends a Capital game.
func (g *Game) NextPlayerToPlay() (Player, bool) {
	order := 0
	if current, ok := g.CurrentPlayer(); ok {
		order = current.Order
	}
	if g.Type == VariantCapital && order == len(g.Players) && len(g.Rounds) >= capital.Rounds {
		return Player{}, false
	}
	for i := 0; i < len(g.Players); i++ {
		order = order%len(g.Players) + 1
		p, ok := g.playerByOrder(order)
		if !ok {
			return Player{}, false
		}
		if g.Type.IsCountdown() && p.Score == 0 {
			continue
		}
		return *p, true
	}
	return Player{}, false
}

func (g *Game) HasMoreDarts() bool {
	turn := g.CurrentTurn()
	return turn != nil && !turn.IsClosed()
}

func (g *Game) HasOverScore() bool {
	p, ok := g.CurrentPlayer()
	return ok && p.Score < 0
}

// CanPlay is true while the current player may throw.
func (g *Game) CanPlay() bool {
	return g.HasMoreDarts() && !g.HasOverScore()
}

func (g *Game) RoundCount() int {
	return len(g.Rounds)
}

// RankingOrderedByFinish returns the finishers, first one first.
func (g *Game) RankingOrderedByFinish() []Player {
	out := make([]Player, len(g.Ranking))
	copy(out, g.Ranking)
	return out
}

// PlayersOrderedByScore sorts for the result table: lowest remaining first in
// countdown games, highest total first in Capital.
func (g *Game) PlayersOrderedByScore() []Player {
	out := make([]Player, len(g.Players))
	copy(out, g.Players)
	sort.SliceStable(out, func(i, j int) bool {
		if g.Type.IsCountdown() {
			return out[i].Score < out[j].Score
		}
		return out[i].Score > out[j].Score
	})
	return out
}

// PlayersInOrder returns the players sorted by turn order.
func (g *Game) PlayersInOrder() []Player {
	out := make([]Player, len(g.Players))
	copy(out, g.Players)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}
