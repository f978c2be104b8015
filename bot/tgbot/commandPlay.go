package tgbot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/goserg/darts/internal/domain"
	"github.com/goserg/darts/internal/scoring"
)

var ErrNoHits = errors.New("send one to three hits, e.g. /d T20 5 D8")

// DartCommand records up to three hits in one message. Hits are all parsed
// before any is recorded; recording stops when a dart closes the turn.
type DartCommand struct {
	playCommand
}

func (c *DartCommand) Run(ctx context.Context, chatID int64, args string, resp *tgbotapi.MessageConfig) error {
	id, err := c.gameID(chatID)
	if err != nil {
		return err
	}
	fields := strings.Fields(args)
	if len(fields) == 0 || len(fields) > domain.MaxDarts {
		return ErrNoHits
	}
	darts := make([]scoring.Dart, 0, len(fields))
	for _, f := range fields {
		d, err := scoring.ParseHit(f)
		if err != nil {
			return err
		}
		darts = append(darts, d)
	}

	var (
		lines []string
		g     *domain.Game
	)
	for _, d := range darts {
		var out domain.Outcome
		g, out, err = c.gameService.AddDart(ctx, id, d.Base, d.Multiplier)
		if err != nil {
			if len(lines) == 0 {
				return err
			}
			lines = append(lines, err.Error())
			break
		}
		lines = append(lines, playerLine(out))
		if out.Kind != domain.OutcomeScored {
			break
		}
	}
	if g != nil {
		lines = append(lines, renderGame(g))
	}
	resp.Text = strings.Join(lines, "\n")
	resp.ReplyMarkup = playKeyboard()
	return nil
}

func (c *DartCommand) Help() string {
	return `/d <hit> [hit] [hit]
Records darts for the current player.
Hits: 20, T20, D16, 25 (outer bull), Bull or 50, 0 or miss`
}

type UndoCommand struct {
	playCommand
}

func (c *UndoCommand) Run(ctx context.Context, chatID int64, _ string, resp *tgbotapi.MessageConfig) error {
	id, err := c.gameID(chatID)
	if err != nil {
		return err
	}
	g, d, err := c.gameService.RemoveLastDart(ctx, id)
	if err != nil {
		return err
	}
	resp.Text = fmt.Sprintf("Removed %s\n%s", scoring.Label(d), renderGame(g))
	resp.ReplyMarkup = playKeyboard()
	return nil
}

func (c *UndoCommand) Help() string {
	return "Removes the last dart of the current turn"
}

type NextCommand struct {
	playCommand
}

func (c *NextCommand) Run(ctx context.Context, chatID int64, _ string, resp *tgbotapi.MessageConfig) error {
	id, err := c.gameID(chatID)
	if err != nil {
		return err
	}
	g, adv, err := c.gameService.NextPlayer(ctx, id)
	if err != nil {
		return err
	}
	resp.Text = renderAdvance(adv) + "\n" + renderGame(g)
	if adv.GameOver {
		resp.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
		return nil
	}
	resp.ReplyMarkup = playKeyboard()
	return nil
}

func (c *NextCommand) Help() string {
	return "Closes the current turn and passes to the next player"
}

type CheckoutCommand struct {
	playCommand
}

func (c *CheckoutCommand) Run(ctx context.Context, chatID int64, _ string, resp *tgbotapi.MessageConfig) error {
	id, err := c.gameID(chatID)
	if err != nil {
		return err
	}
	p, routes, err := c.gameService.Checkout(ctx, id)
	if err != nil {
		return err
	}
	resp.Text = renderCheckout(p, routes)
	return nil
}

func (c *CheckoutCommand) Help() string {
	return "Suggests ways to finish for the current player (501 and 301)"
}
