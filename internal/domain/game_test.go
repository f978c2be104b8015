package domain_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goserg/darts/internal/domain"
	"github.com/goserg/darts/internal/scoring"
)

func newTestGame(t *testing.T, variant domain.Variant, finish domain.FinishType, finishAtFirst bool, names ...string) *domain.Game {
	t.Helper()
	g := domain.NewGame("darts0123456789ab", variant, finish, finishAtFirst)
	for _, name := range names {
		_, err := g.AddPlayer(name)
		require.NoError(t, err)
	}
	require.NoError(t, g.ConfirmSetup())
	require.NoError(t, g.Start())
	return g
}

func throw(t *testing.T, g *domain.Game, base, multiplier int) domain.Outcome {
	t.Helper()
	out, err := g.AddDart(base, multiplier)
	require.NoError(t, err)
	return out
}

// setScore moves the current player to score by playing whole turns of
// single darts. Only used for countdown games with one player.
func setScore(t *testing.T, g *domain.Game, score int) {
	t.Helper()
	p, _ := g.CurrentPlayer()
	for p.Score-score >= 60 {
		for i := 0; i < 3 && p.Score-score >= 20; i++ {
			throw(t, g, 20, 1)
			p, _ = g.CurrentPlayer()
		}
		_, err := g.NextPlayer()
		require.NoError(t, err)
		p, _ = g.CurrentPlayer()
	}
	for p.Score-score > 0 {
		step := p.Score - score
		if step > 20 {
			step = 20
		}
		throw(t, g, step, 1)
		p, _ = g.CurrentPlayer()
		if !g.HasMoreDarts() {
			_, err := g.NextPlayer()
			require.NoError(t, err)
		}
	}
	if len(g.CurrentTurn().Darts) > 0 {
		_, err := g.NextPlayer()
		require.NoError(t, err)
	}
	p, _ = g.CurrentPlayer()
	require.Equal(t, score, p.Score)
}

func TestStart(t *testing.T) {
	g := domain.NewGame("darts1", domain.Variant501, domain.FinishClassic, false)
	assert.ErrorIs(t, g.Start(), domain.ErrSetup)

	g = newTestGame(t, domain.Variant501, domain.FinishClassic, false, "Ann", "Bob")
	assert.Equal(t, domain.StatusStarted, g.Status)
	require.Equal(t, 1, g.RoundCount())
	p, ok := g.CurrentPlayer()
	require.True(t, ok)
	assert.Equal(t, "Ann", p.Name)
	assert.True(t, g.CanPlay())

	// starting again does not open another turn
	require.NoError(t, g.Start())
	assert.Equal(t, 1, g.RoundCount())
	assert.Len(t, g.Rounds[0], 1)
}

func TestSetup(t *testing.T) {
	g := domain.NewGame("darts1", domain.Variant301, domain.FinishClassic, false)
	assert.ErrorIs(t, g.ConfirmSetup(), domain.ErrNotEnoughPlayers)

	for _, name := range []string{"Ann", " ", "Bob", "Cid"} {
		_, err := g.AddPlayer(name)
		require.NoError(t, err)
	}
	assert.ErrorIs(t, g.Reorder([]int{1, 1, 2, 3}), domain.ErrBadOrder)
	assert.ErrorIs(t, g.Reorder([]int{1, 2}), domain.ErrBadOrder)
	require.NoError(t, g.Reorder([]int{4, 3, 2, 1}))
	require.NoError(t, g.ConfirmSetup())

	require.Len(t, g.Players, 3)
	ordered := g.PlayersInOrder()
	assert.Equal(t, []string{"Cid", "Bob", "Ann"}, []string{ordered[0].Name, ordered[1].Name, ordered[2].Name})
	assert.Equal(t, []int{1, 2, 3}, []int{ordered[0].Order, ordered[1].Order, ordered[2].Order})
	for _, p := range g.Players {
		assert.Equal(t, 301, p.Score)
	}

	require.NoError(t, g.Shuffle(rand.New(rand.NewSource(7))))
	seen := map[int]bool{}
	for _, p := range g.Players {
		seen[p.Order] = true
	}
	assert.Len(t, seen, 3)

	require.NoError(t, g.Start())
	_, err := g.AddPlayer("Dan")
	assert.ErrorIs(t, err, domain.ErrNotPending)
	assert.ErrorIs(t, g.Reorder([]int{1, 2, 3}), domain.ErrNotPending)
}

func TestSinglePlayerFinish(t *testing.T) {
	g := newTestGame(t, domain.Variant501, domain.FinishClassic, false, "Ann")
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			throw(t, g, 20, 3)
		}
		_, err := g.NextPlayer()
		require.NoError(t, err)
	}
	p, _ := g.CurrentPlayer()
	require.Equal(t, 141, p.Score)

	throw(t, g, 20, 3)
	throw(t, g, 20, 3)
	out := throw(t, g, 7, 3)
	assert.Equal(t, domain.OutcomeFinish, out.Kind)
	assert.True(t, out.GameOver)
	assert.Equal(t, domain.StatusFinished, g.Status)
	require.Len(t, g.Ranking, 1)
	assert.Equal(t, "Ann", g.Ranking[0].Name)

	_, err := g.AddDart(20, 1)
	assert.ErrorIs(t, err, domain.ErrGameFinished)
	_, err = g.NextPlayer()
	assert.ErrorIs(t, err, domain.ErrGameFinished)
}

func TestDoubleOutFinish(t *testing.T) {
	g := newTestGame(t, domain.Variant501, domain.FinishDoubleOut, false, "Ann")
	setScore(t, g, 40)

	out := throw(t, g, 20, 1)
	assert.Equal(t, domain.OutcomeScored, out.Kind)
	_, err := g.NextPlayer()
	require.NoError(t, err)

	out = throw(t, g, 10, 2)
	assert.Equal(t, domain.OutcomeFinish, out.Kind)
	assert.Equal(t, domain.StatusFinished, g.Status)
	assert.True(t, g.IsRanked(1))
}

func TestDoubleOutWithoutDouble(t *testing.T) {
	g := newTestGame(t, domain.Variant501, domain.FinishDoubleOut, false, "Ann")
	setScore(t, g, 40)

	throw(t, g, 20, 1)
	out := throw(t, g, 20, 1)
	assert.Equal(t, domain.OutcomeBust, out.Kind)
	assert.Equal(t, domain.BustNoDouble, out.Reason)

	p, _ := g.CurrentPlayer()
	assert.Equal(t, 40, p.Score)
	turn := g.CurrentTurn()
	require.Len(t, turn.Darts, 3)
	assert.Equal(t, scoring.ZeroDart, turn.Darts[2])
	assert.False(t, g.CanPlay())
	assert.Empty(t, g.Ranking)

	_, err := g.AddDart(5, 1)
	assert.ErrorIs(t, err, domain.ErrTooManyDarts)
}

func TestDoubleOutInnerBull(t *testing.T) {
	g := newTestGame(t, domain.Variant301, domain.FinishDoubleOut, false, "Ann")
	setScore(t, g, 50)

	// the bull is worth 50 but is not a double ring hit
	out := throw(t, g, 50, 1)
	assert.Equal(t, domain.OutcomeBust, out.Kind)
	assert.Equal(t, domain.BustNoDouble, out.Reason)
	p, _ := g.CurrentPlayer()
	assert.Equal(t, 50, p.Score)
	assert.Empty(t, g.Ranking)
	assert.Equal(t, domain.StatusStarted, g.Status)
}

func TestDoubleOutLeavesOne(t *testing.T) {
	g := newTestGame(t, domain.Variant301, domain.FinishDoubleOut, false, "Ann")
	setScore(t, g, 2)

	out := throw(t, g, 1, 1)
	assert.Equal(t, domain.OutcomeBust, out.Kind)
	assert.Equal(t, domain.BustLeavesOne, out.Reason)
	p, _ := g.CurrentPlayer()
	assert.Equal(t, 2, p.Score)
}

func TestBustRestoresPreTurnScore(t *testing.T) {
	g := newTestGame(t, domain.Variant301, domain.FinishClassic, false, "Ann", "Bob")
	throw(t, g, 20, 3)
	_, err := g.NextPlayer()
	require.NoError(t, err)
	throw(t, g, 1, 1)
	_, err = g.NextPlayer()
	require.NoError(t, err)

	// Ann is on 241; take her down to 60.
	for _, hits := range [][3]int{{60, 60, 60}, {1, 0, 0}} {
		for _, h := range hits {
			if h == 60 {
				throw(t, g, 20, 3)
			} else {
				throw(t, g, h, 1)
			}
		}
		_, err = g.NextPlayer()
		require.NoError(t, err)
		_, err = g.NextPlayer()
		require.NoError(t, err)
	}
	ann, _ := g.PlayerByID(1)
	require.Equal(t, 60, ann.Score)

	throw(t, g, 20, 1)
	out := throw(t, g, 20, 3)
	assert.Equal(t, domain.OutcomeBust, out.Kind)
	assert.Equal(t, domain.BustOverScore, out.Reason)
	ann, _ = g.PlayerByID(1)
	assert.Equal(t, 60, ann.Score)
	assert.Len(t, g.CurrentTurn().Darts, 3)
	assert.Zero(t, g.CurrentTurn().Score)
}

func TestTwoPlayersFinish(t *testing.T) {
	g := newTestGame(t, domain.Variant301, domain.FinishClassic, false, "Ann", "Bob")
	for _, p := range g.Players {
		require.Equal(t, 301, p.Score)
	}
	// 301 = 5*60 + 1
	for round := 0; round < 5; round++ {
		throw(t, g, 20, 3)
		_, err := g.NextPlayer()
		require.NoError(t, err)
		throw(t, g, 20, 3)
		_, err = g.NextPlayer()
		require.NoError(t, err)
	}
	out := throw(t, g, 1, 1)
	require.Equal(t, domain.OutcomeFinish, out.Kind)
	assert.False(t, out.GameOver)
	assert.Len(t, g.Ranking, 1)
	assert.Equal(t, domain.StatusStarted, g.Status)
	assert.Len(t, g.CurrentTurn().Darts, 3)

	adv, err := g.NextPlayer()
	require.NoError(t, err)
	require.NotNil(t, adv.Next)
	assert.Equal(t, "Bob", adv.Next.Name)

	throw(t, g, 20, 1)
	next, ok := g.NextPlayerToPlay()
	require.True(t, ok)
	assert.Equal(t, "Bob", next.Name)
	adv, err = g.NextPlayer()
	require.NoError(t, err)
	// Ann is done: her turn is filled and play comes back to Bob.
	require.Len(t, adv.Skipped, 1)
	assert.Equal(t, "Ann", adv.Skipped[0].Name)
	require.NotNil(t, adv.Next)
	assert.Equal(t, "Bob", adv.Next.Name)

	// Bob's 20 was a bust, he is still on 1
	bob, _ := g.PlayerByID(2)
	require.Equal(t, 1, bob.Score)
	out = throw(t, g, 1, 1)
	assert.Equal(t, domain.OutcomeFinish, out.Kind)
	assert.True(t, out.GameOver)
	assert.Equal(t, domain.StatusFinished, g.Status)
	require.Len(t, g.Ranking, 2)
	assert.Equal(t, []string{"Ann", "Bob"}, []string{g.RankingOrderedByFinish()[0].Name, g.RankingOrderedByFinish()[1].Name})
}

func TestFinishAtFirst(t *testing.T) {
	g := newTestGame(t, domain.Variant301, domain.FinishClassic, true, "Ann", "Bob")
	for round := 0; round < 5; round++ {
		throw(t, g, 20, 3)
		_, err := g.NextPlayer()
		require.NoError(t, err)
		_, err = g.NextPlayer()
		require.NoError(t, err)
	}
	out := throw(t, g, 1, 1)
	assert.True(t, out.GameOver)
	assert.Equal(t, domain.StatusFinished, g.Status)
}

func TestRoundRobin(t *testing.T) {
	g := newTestGame(t, domain.Variant501, domain.FinishClassic, false, "Ann", "Bob", "Cid")
	var orders []int
	for i := 0; i < 7; i++ {
		p, _ := g.CurrentPlayer()
		orders = append(orders, p.Order)
		want, ok := g.NextPlayerToPlay()
		require.True(t, ok)
		adv, err := g.NextPlayer()
		require.NoError(t, err)
		assert.Equal(t, want.ID, adv.Next.ID)
	}
	assert.Equal(t, []int{1, 2, 3, 1, 2, 3, 1}, orders)
	assert.Equal(t, 3, g.RoundCount())

	// every closed turn has three darts
	for r, row := range g.Rounds {
		for i, turn := range row {
			if r == len(g.Rounds)-1 && i == len(row)-1 {
				continue
			}
			assert.Len(t, turn.Darts, 3)
		}
	}
}

func TestRemoveLastDart(t *testing.T) {
	g := newTestGame(t, domain.Variant501, domain.FinishClassic, false, "Ann")
	_, err := g.RemoveLastDart()
	assert.ErrorIs(t, err, domain.ErrNoDart)

	throw(t, g, 20, 3)
	throw(t, g, 5, 1)
	d, err := g.RemoveLastDart()
	require.NoError(t, err)
	assert.Equal(t, scoring.Dart{Base: 5, Multiplier: 1}, d)
	p, _ := g.CurrentPlayer()
	assert.Equal(t, 441, p.Score)
	assert.Equal(t, 60, g.CurrentTurn().Score)
	assert.Len(t, g.CurrentTurn().Darts, 1)
}

func TestRemoveLastDartAcrossBust(t *testing.T) {
	g := newTestGame(t, domain.Variant301, domain.FinishDoubleOut, false, "Ann")
	setScore(t, g, 40)
	throw(t, g, 20, 1)
	out := throw(t, g, 20, 1)
	require.Equal(t, domain.OutcomeBust, out.Kind)

	// pop the back-filled miss: the no-double zero is back until the turn closes
	_, err := g.RemoveLastDart()
	require.NoError(t, err)
	p, _ := g.CurrentPlayer()
	assert.Equal(t, 0, p.Score)
	assert.False(t, g.IsRanked(p.ID))

	adv, err := g.NextPlayer()
	require.NoError(t, err)
	assert.True(t, adv.Restored)
	p, _ = g.CurrentPlayer()
	assert.Equal(t, 40, p.Score)
}

func TestRemoveLastDartUnranks(t *testing.T) {
	g := newTestGame(t, domain.Variant301, domain.FinishClassic, false, "Ann", "Bob")
	for round := 0; round < 5; round++ {
		throw(t, g, 20, 3)
		_, err := g.NextPlayer()
		require.NoError(t, err)
		_, err = g.NextPlayer()
		require.NoError(t, err)
	}
	throw(t, g, 1, 1)
	require.True(t, g.IsRanked(1))

	for i := 0; i < 3; i++ {
		_, err := g.RemoveLastDart()
		require.NoError(t, err)
	}
	assert.False(t, g.IsRanked(1))
	ann, _ := g.PlayerByID(1)
	assert.Equal(t, 1, ann.Score)
}

func TestCapitalContractCreditedOnNextPlayer(t *testing.T) {
	g := newTestGame(t, domain.VariantCapital, domain.FinishClassic, false, "Ann")
	throw(t, g, 20, 1)
	throw(t, g, 5, 1)
	throw(t, g, 1, 1)
	p, _ := g.CurrentPlayer()
	assert.Equal(t, 0, p.Score)

	adv, err := g.NextPlayer()
	require.NoError(t, err)
	require.NotNil(t, adv.Contract)
	assert.Equal(t, "S20", string(adv.Contract.Key))
	assert.Equal(t, 26, adv.ContractPoints)
	ann, _ := g.PlayerByID(1)
	assert.Equal(t, 26, ann.Score)

	// round 2 asks for a triple
	throw(t, g, 5, 1)
	adv, err = g.NextPlayer()
	require.NoError(t, err)
	assert.Zero(t, adv.ContractPoints)
	ann, _ = g.PlayerByID(1)
	assert.Equal(t, 26, ann.Score)
}

func TestCapitalEndsAfterFourteenRounds(t *testing.T) {
	g := newTestGame(t, domain.VariantCapital, domain.FinishClassic, false, "Ann", "Bob")
	for i := 0; i < 2*14-1; i++ {
		_, err := g.NextPlayer()
		require.NoError(t, err)
	}
	assert.Equal(t, 14, g.RoundCount())
	assert.Equal(t, domain.StatusStarted, g.Status)
	_, ok := g.NextPlayerToPlay()
	assert.False(t, ok)

	adv, err := g.NextPlayer()
	require.NoError(t, err)
	assert.True(t, adv.GameOver)
	assert.Equal(t, domain.StatusFinished, g.Status)
	assert.Equal(t, 14, g.RoundCount())
}

func TestResetGame(t *testing.T) {
	g := newTestGame(t, domain.Variant301, domain.FinishClassic, false, "Ann", "Bob")
	throw(t, g, 20, 3)
	_, err := g.NextPlayer()
	require.NoError(t, err)

	g.ResetGame()
	assert.Equal(t, domain.StatusPending, g.Status)
	assert.Zero(t, g.RoundCount())
	assert.Empty(t, g.Ranking)
	for _, p := range g.Players {
		assert.Equal(t, 301, p.Score)
	}
	_, err = g.AddDart(20, 1)
	assert.ErrorIs(t, err, domain.ErrNotStarted)
}

func TestInvalidDart(t *testing.T) {
	g := newTestGame(t, domain.Variant501, domain.FinishClassic, false, "Ann")
	_, err := g.AddDart(25, 2)
	assert.ErrorIs(t, err, scoring.ErrInvalidDart)
	assert.Empty(t, g.CurrentTurn().Darts)
}

func TestPlayersOrderedByScore(t *testing.T) {
	g := newTestGame(t, domain.Variant501, domain.FinishClassic, false, "Ann", "Bob")
	throw(t, g, 1, 1)
	_, err := g.NextPlayer()
	require.NoError(t, err)
	throw(t, g, 20, 3)
	ordered := g.PlayersOrderedByScore()
	assert.Equal(t, "Bob", ordered[0].Name)

	c := newTestGame(t, domain.VariantCapital, domain.FinishClassic, false, "Ann", "Bob")
	_, err = c.NextPlayer()
	require.NoError(t, err)
	throw(t, c, 20, 1)
	_, err = c.NextPlayer()
	require.NoError(t, err)
	ordered = c.PlayersOrderedByScore()
	assert.Equal(t, "Bob", ordered[0].Name)
}
