package web

import (
	"github.com/goserg/darts/internal/capital"
	"github.com/goserg/darts/internal/checkout"
	"github.com/goserg/darts/internal/domain"
	"github.com/goserg/darts/internal/scoring"
	"github.com/goserg/darts/internal/service"
)

type playerView struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
	Order int    `json:"order"`
}

type turnView struct {
	PlayerID int      `json:"playerId"`
	Score    int      `json:"score"`
	Darts    []string `json:"darts"`
}

type contractView struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

type gameView struct {
	ID              string        `json:"id"`
	Type            string        `json:"type"`
	Status          string        `json:"status"`
	FinishType      string        `json:"finishType"`
	IsFinishAtFirst bool          `json:"isFinishAtFirst"`
	Players         []playerView  `json:"players"`
	PlayersByScore  []playerView  `json:"playersByScore"`
	Ranking         []playerView  `json:"ranking"`
	Rounds          int           `json:"rounds"`
	CurrentPlayer   *playerView   `json:"currentPlayer,omitempty"`
	CurrentTurn     *turnView     `json:"currentTurn,omitempty"`
	CanPlay         bool          `json:"canPlay"`
	HasOverScore    bool          `json:"hasOverScore"`
	Contract        *contractView `json:"contract,omitempty"`
	Checkout        [][]string    `json:"checkout,omitempty"`
}

func newPlayerView(p domain.Player) playerView {
	return playerView{ID: p.ID, Name: p.Name, Score: p.Score, Order: p.Order}
}

func newPlayerViews(players []domain.Player) []playerView {
	out := make([]playerView, 0, len(players))
	for _, p := range players {
		out = append(out, newPlayerView(p))
	}
	return out
}

func newGameView(g *domain.Game) gameView {
	v := gameView{
		ID:              g.ID,
		Type:            string(g.Type),
		Status:          string(g.Status),
		FinishType:      string(g.FinishType),
		IsFinishAtFirst: g.FinishAtFirst,
		Players:         newPlayerViews(g.PlayersInOrder()),
		PlayersByScore:  newPlayerViews(g.PlayersOrderedByScore()),
		Ranking:         newPlayerViews(g.RankingOrderedByFinish()),
		Rounds:          g.RoundCount(),
		CanPlay:         g.Status == domain.StatusStarted && g.CanPlay(),
		HasOverScore:    g.HasOverScore(),
	}
	if p, ok := g.CurrentPlayer(); ok && g.Status == domain.StatusStarted {
		pv := newPlayerView(p)
		v.CurrentPlayer = &pv
		turn := g.CurrentTurn()
		darts := make([]string, 0, len(turn.Darts))
		for _, d := range turn.Darts {
			darts = append(darts, scoring.Label(d))
		}
		v.CurrentTurn = &turnView{PlayerID: turn.Player.ID, Score: turn.Score, Darts: darts}
		if g.Type.IsCountdown() {
			v.Checkout = checkout.Suggestions(p.Score, g.FinishType)
		}
	}
	if g.Type == domain.VariantCapital && g.Status == domain.StatusStarted {
		c := capital.ForRound(g.RoundCount() - 1)
		v.Contract = &contractView{Key: string(c.Key), Label: c.Label, Description: c.Description}
	}
	return v
}

type summaryView struct {
	ID         string   `json:"id"`
	Type       string   `json:"type"`
	Status     string   `json:"status"`
	FinishType string   `json:"finishType"`
	Players    []string `json:"players"`
	Rounds     int      `json:"rounds"`
	Winner     string   `json:"winner,omitempty"`
}

func newSummaryViews(list []service.Summary) []summaryView {
	out := make([]summaryView, 0, len(list))
	for _, s := range list {
		out = append(out, summaryView{
			ID:         s.ID,
			Type:       string(s.Type),
			Status:     string(s.Status),
			FinishType: string(s.FinishType),
			Players:    s.Players,
			Rounds:     s.Rounds,
			Winner:     s.Winner,
		})
	}
	return out
}

type ratingView struct {
	Name        string `json:"name"`
	Rating      int    `json:"rating"`
	GamesPlayed int    `json:"gamesPlayed"`
}

func newRatingView(r service.Rating) ratingView {
	return ratingView{Name: r.Name, Rating: r.Rating, GamesPlayed: r.GamesPlayed}
}

func newRatingViews(ratings []service.Rating) []ratingView {
	out := make([]ratingView, 0, len(ratings))
	for _, r := range ratings {
		out = append(out, newRatingView(r))
	}
	return out
}

type outcomeView struct {
	Kind     string `json:"kind"`
	Message  string `json:"message"`
	Points   int    `json:"points"`
	GameOver bool   `json:"gameOver"`
}

func newOutcomeView(o domain.Outcome) outcomeView {
	kind := "scored"
	switch o.Kind {
	case domain.OutcomeBust:
		kind = "bust"
	case domain.OutcomeFinish:
		kind = "finish"
	}
	return outcomeView{Kind: kind, Message: o.Message(), Points: o.Points, GameOver: o.GameOver}
}

type advanceView struct {
	Previous       playerView    `json:"previous"`
	Contract       *contractView `json:"contract,omitempty"`
	ContractPoints int           `json:"contractPoints"`
	Skipped        []playerView  `json:"skipped"`
	GameOver       bool          `json:"gameOver"`
}

func newAdvanceView(a domain.Advance) advanceView {
	v := advanceView{
		Previous:       newPlayerView(a.Previous),
		ContractPoints: a.ContractPoints,
		Skipped:        newPlayerViews(a.Skipped),
		GameOver:       a.GameOver,
	}
	if a.Contract != nil {
		v.Contract = &contractView{Key: string(a.Contract.Key), Label: a.Contract.Label, Description: a.Contract.Description}
	}
	return v
}
