package tgbot

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/goserg/darts/internal/service"
)

var (
	ErrBadRequest = errors.New("unknown command, see /help")
	ErrNoGame     = errors.New("no game in this chat, create one with /new")
)

type Command interface {
	Run(ctx context.Context, chatID int64, args string, resp *tgbotapi.MessageConfig) error
	Help() string
}

type Commands struct {
	list map[string]Command
}

func NewCommands(gs *service.GameService, subs *subscriptions) *Commands {
	hc := &HelpCommand{}
	play := playCommand{gameService: gs, subs: subs}
	uc := Commands{
		list: map[string]Command{
			"help":     hc,
			"start":    &StartCommand{help: hc, playCommand: play},
			"new":      &NewGameCommand{playCommand: play},
			"d":        &DartCommand{playCommand: play},
			"undo":     &UndoCommand{playCommand: play},
			"next":     &NextCommand{playCommand: play},
			"score":    &ScoreCommand{playCommand: play},
			"checkout": &CheckoutCommand{playCommand: play},
			"reset":    &ResetCommand{playCommand: play},
			"games":    &GamesCommand{gameService: gs},
			"delete":   &DeleteCommand{gameService: gs, subs: subs},
			"top":      &TopCommand{gameService: gs},
		},
	}
	hc.commands = uc.list
	return &uc
}

// RunCommand dispatches a message text like "/d T20 5". A "@botname" suffix
// on the command is ignored.
func (uc *Commands) RunCommand(ctx context.Context, chatID int64, text string, resp *tgbotapi.MessageConfig) error {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return ErrBadRequest
	}
	cmd, args, _ := strings.Cut(text[1:], " ")
	cmd, _, _ = strings.Cut(cmd, "@")
	command, ok := uc.list[strings.ToLower(cmd)]
	if !ok {
		return ErrBadRequest
	}
	return command.Run(ctx, chatID, strings.TrimSpace(args), resp)
}

// playCommand is shared by the commands that act on the chat's game.
type playCommand struct {
	gameService *service.GameService
	subs        *subscriptions
}

func (c playCommand) gameID(chatID int64) (string, error) {
	id, ok := c.subs.Current(chatID)
	if !ok {
		return "", ErrNoGame
	}
	return id, nil
}

func playKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/next"),
			tgbotapi.NewKeyboardButton("/undo"),
			tgbotapi.NewKeyboardButton("/score"),
		),
	)
}
