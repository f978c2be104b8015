package tgbot

import (
	"context"
	"sort"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type HelpCommand struct {
	commands map[string]Command
}

func (c *HelpCommand) Run(_ context.Context, _ int64, args string, resp *tgbotapi.MessageConfig) error {
	resp.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	if command, ok := c.commands[strings.TrimPrefix(args, "/")]; ok {
		resp.Text = command.Help()
		return nil
	}
	names := make([]string, 0, len(c.commands))
	for name := range c.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("Commands:\n")
	for _, name := range names {
		b.WriteString("/")
		b.WriteString(name)
		b.WriteString("\n")
	}
	b.WriteString("Send /help and a command name for details")
	resp.Text = b.String()
	return nil
}

func (c *HelpCommand) Help() string {
	return "Lists the commands"
}

// StartCommand shows the help, or with a game id resumes that game in the chat.
type StartCommand struct {
	playCommand
	help *HelpCommand
}

func (c *StartCommand) Run(ctx context.Context, chatID int64, args string, resp *tgbotapi.MessageConfig) error {
	if args == "" {
		return c.help.Run(ctx, chatID, "", resp)
	}
	g, err := c.gameService.Start(ctx, args)
	if err != nil {
		return err
	}
	c.subs.Follow(chatID, g.ID)
	resp.Text = renderGame(g)
	resp.ReplyMarkup = playKeyboard()
	return nil
}

func (c *StartCommand) Help() string {
	return `/start <game id>
Resumes a saved game in this chat. Without an id shows the help.`
}
