package tgbot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/goserg/darts/internal/service"
)

const topSize = 10

type TopCommand struct {
	gameService *service.GameService
}

func (c *TopCommand) Run(ctx context.Context, _ int64, args string, resp *tgbotapi.MessageConfig) error {
	resp.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	if args != "" {
		r, err := c.gameService.PlayerRating(ctx, args)
		if err != nil {
			return err
		}
		resp.Text = fmt.Sprintf("%s: %d, %d games", r.Name, r.Rating, r.GamesPlayed)
		return nil
	}
	ratings, err := c.gameService.Leaderboard(ctx)
	if err != nil {
		return err
	}
	if len(ratings) == 0 {
		resp.Text = "No finished games yet"
		return nil
	}
	var buffer strings.Builder
	for i := range ratings {
		if i >= topSize {
			break
		}
		buffer.WriteString(strconv.Itoa(i + 1))
		buffer.WriteString(". ")
		buffer.WriteString(ratings[i].Name)
		buffer.WriteString(" (")
		buffer.WriteString(strconv.Itoa(ratings[i].Rating))
		buffer.WriteString(", ")
		buffer.WriteString(strconv.Itoa(ratings[i].GamesPlayed))
		buffer.WriteString(" games)\n")
	}
	resp.Text = strings.TrimRight(buffer.String(), "\n")
	return nil
}

func (c *TopCommand) Help() string {
	return `/top [player]
Best players by Elo rating over finished games, or one player's rating`
}
