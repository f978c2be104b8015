package tgbot

import (
	"fmt"
	"strings"

	"github.com/goserg/darts/internal/capital"
	"github.com/goserg/darts/internal/checkout"
	"github.com/goserg/darts/internal/domain"
	"github.com/goserg/darts/internal/scoring"
)

// renderGame is the scoreboard a chat sees after every move.
func renderGame(g *domain.Game) string {
	var b strings.Builder
	b.WriteString(string(g.Type))
	if g.Type.IsCountdown() {
		b.WriteString(" ")
		b.WriteString(string(g.FinishType))
	}
	switch g.Status {
	case domain.StatusPending:
		b.WriteString(", not started")
	case domain.StatusFinished:
		b.WriteString(", finished")
	default:
		fmt.Fprintf(&b, ", round %d", g.RoundCount())
	}
	b.WriteString("\n")

	if g.Type == domain.VariantCapital && g.Status == domain.StatusStarted {
		c := capital.ForRound(g.RoundCount() - 1)
		fmt.Fprintf(&b, "Contract: %s. %s\n", c.Label, c.Description)
	}

	current, playing := g.CurrentPlayer()
	turn := g.CurrentTurn()
	for _, p := range g.PlayersInOrder() {
		mark := "  "
		if playing && g.Status == domain.StatusStarted && p.ID == current.ID {
			mark = "> "
		}
		fmt.Fprintf(&b, "%s%s %d", mark, p.Name, p.Score)
		if mark == "> " && turn != nil {
			b.WriteString(" [")
			b.WriteString(renderDarts(turn.Darts))
			b.WriteString("]")
		}
		if g.IsRanked(p.ID) {
			b.WriteString(" ✓")
		}
		b.WriteString("\n")
	}

	if g.Status == domain.StatusStarted && !g.HasMoreDarts() {
		if next, ok := g.NextPlayerToPlay(); ok {
			fmt.Fprintf(&b, "Next up: %s, send /next\n", next.Name)
		}
	}

	if g.Status == domain.StatusFinished {
		b.WriteString("Result:\n")
		for i, p := range g.PlayersOrderedByScore() {
			fmt.Fprintf(&b, "%d. %s\n", i+1, p.Name)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderDarts(darts []scoring.Dart) string {
	labels := make([]string, 0, domain.MaxDarts)
	for _, d := range darts {
		labels = append(labels, scoring.Label(d))
	}
	for len(labels) < domain.MaxDarts {
		labels = append(labels, "-")
	}
	return strings.Join(labels, " ")
}

func renderAdvance(adv domain.Advance) string {
	var lines []string
	if adv.Restored {
		lines = append(lines, fmt.Sprintf("Bust, %s stays on %d", adv.Previous.Name, adv.Previous.Score))
	}
	if adv.Contract != nil {
		if adv.ContractPoints > 0 {
			lines = append(lines, fmt.Sprintf("%s: %s done, +%d", adv.Previous.Name, adv.Contract.Label, adv.ContractPoints))
		} else {
			lines = append(lines, fmt.Sprintf("%s: %s missed", adv.Previous.Name, adv.Contract.Label))
		}
	}
	for _, p := range adv.Skipped {
		lines = append(lines, fmt.Sprintf("%s has finished, skipped", p.Name))
	}
	if adv.GameOver {
		lines = append(lines, "Game over")
	} else if adv.Next != nil {
		lines = append(lines, fmt.Sprintf("%s to throw", adv.Next.Name))
	}
	return strings.Join(lines, "\n")
}

func renderCheckout(p domain.Player, routes [][]string) string {
	if len(routes) == 0 {
		return fmt.Sprintf("%s: %d, no checkout", p.Name, p.Score)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d", p.Name, p.Score)
	for _, r := range routes {
		b.WriteString("\n")
		b.WriteString(checkout.Format(r))
	}
	return b.String()
}
