package tgbot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/goserg/darts/internal/domain"
	"github.com/goserg/darts/internal/service"
)

var ErrNoGameID = errors.New("send at least one game id")

type NewGameCommand struct {
	playCommand
}

// Run parses "<type> [classic|double] [first] [shuffle] <names...>".
func (c *NewGameCommand) Run(ctx context.Context, chatID int64, args string, resp *tgbotapi.MessageConfig) error {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		resp.Text = c.Help()
		return nil
	}
	params := service.NewGameParams{Variant: fields[0]}
	if strings.EqualFold(fields[0], string(domain.VariantCapital)) {
		params.Variant = string(domain.VariantCapital)
	}
	fields = fields[1:]
options:
	for len(fields) > 0 {
		switch strings.ToLower(fields[0]) {
		case "classic", "double", "double-out":
			params.FinishType = strings.ToLower(fields[0])
		case "first":
			params.FinishAtFirst = true
		case "shuffle":
			params.Shuffle = true
		default:
			break options
		}
		fields = fields[1:]
	}
	params.Players = fields

	g, err := c.gameService.Create(ctx, params)
	if err != nil {
		return err
	}
	g, err = c.gameService.Start(ctx, g.ID)
	if err != nil {
		return err
	}
	c.subs.Follow(chatID, g.ID)
	resp.Text = fmt.Sprintf("Game %s\n%s", g.ID, renderGame(g))
	resp.ReplyMarkup = playKeyboard()
	return nil
}

func (c *NewGameCommand) Help() string {
	return `/new <501|301|Capital> [classic|double] [first] [shuffle] <players...>
Creates and starts a game in this chat.
double: finish on a double. first: the game ends with the first finisher.
shuffle: random throwing order.
Example: /new 501 double Ann Bob`
}

type ScoreCommand struct {
	playCommand
}

func (c *ScoreCommand) Run(ctx context.Context, chatID int64, _ string, resp *tgbotapi.MessageConfig) error {
	id, err := c.gameID(chatID)
	if err != nil {
		return err
	}
	g, err := c.gameService.Get(ctx, id)
	if err != nil {
		return err
	}
	resp.Text = renderGame(g)
	return nil
}

func (c *ScoreCommand) Help() string {
	return "Shows the scoreboard of this chat's game"
}

type ResetCommand struct {
	playCommand
}

func (c *ResetCommand) Run(ctx context.Context, chatID int64, _ string, resp *tgbotapi.MessageConfig) error {
	id, err := c.gameID(chatID)
	if err != nil {
		return err
	}
	if _, err := c.gameService.Reset(ctx, id); err != nil {
		return err
	}
	g, err := c.gameService.Start(ctx, id)
	if err != nil {
		return err
	}
	resp.Text = "Game restarted\n" + renderGame(g)
	resp.ReplyMarkup = playKeyboard()
	return nil
}

func (c *ResetCommand) Help() string {
	return "Restarts this chat's game with the same players"
}

type GamesCommand struct {
	gameService *service.GameService
}

func (c *GamesCommand) Run(ctx context.Context, _ int64, _ string, resp *tgbotapi.MessageConfig) error {
	resp.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	games, err := c.gameService.List(ctx)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		resp.Text = "No saved games"
		return nil
	}
	lines := make([]string, 0, len(games))
	for _, g := range games {
		line := fmt.Sprintf("%s %s %s: %s", g.ID, g.Type, g.Status, strings.Join(g.Players, ", "))
		if g.Winner != "" {
			line += ", won by " + g.Winner
		}
		lines = append(lines, line)
	}
	resp.Text = strings.Join(lines, "\n")
	return nil
}

func (c *GamesCommand) Help() string {
	return "Lists saved games. Resume one with /start <game id>"
}

type DeleteCommand struct {
	gameService *service.GameService
	subs        *subscriptions
}

func (c *DeleteCommand) Run(ctx context.Context, _ int64, args string, resp *tgbotapi.MessageConfig) error {
	ids := strings.Fields(args)
	if len(ids) == 0 {
		return ErrNoGameID
	}
	if err := c.gameService.Delete(ctx, ids); err != nil {
		return err
	}
	c.subs.Forget(ids...)
	resp.Text = fmt.Sprintf("Deleted %d game(s)", len(ids))
	return nil
}

func (c *DeleteCommand) Help() string {
	return "/delete <game id...>\nDeletes saved games"
}

// playerLine is the outcome of a dart as the chat reads it.
func playerLine(out domain.Outcome) string {
	if out.Kind == domain.OutcomeScored {
		return fmt.Sprintf("%s: %d", out.Player.Name, out.Points)
	}
	return out.Message()
}
