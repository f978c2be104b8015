package tgbot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/goserg/darts/internal/config"
	"github.com/goserg/darts/internal/domain"
	"github.com/goserg/darts/internal/service"
)

// sender is the part of the Telegram API the bot writes to.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Bot struct {
	api    *tgbotapi.BotAPI
	sender sender

	log *logrus.Entry

	// cancel func to stop the bot
	cancel func()

	subs *subscriptions

	commands *Commands
}

func New(gs *service.GameService, cfg config.TgBot, debug bool, log *logrus.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramApiToken)
	if err != nil {
		return nil, fmt.Errorf("env TELEGRAM_APITOKEN: %w", err)
	}
	api.Debug = debug
	if _, err := api.GetMe(); err != nil {
		return nil, err
	}
	b := newBot(api, gs, log)
	b.api = api
	return b, nil
}

func newBot(s sender, gs *service.GameService, log *logrus.Logger) *Bot {
	subs := newSubs()
	b := &Bot{
		sender:   s,
		log:      log.WithField("from", "tg_bot"),
		subs:     subs,
		commands: NewCommands(gs, subs),
	}
	gs.OnFinish(b.notifyFinish)
	return b
}

func (b *Bot) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	b.cancel = cancel

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update := <-updates:
			b.handleMessage(ctx, update)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil { // ignore any non-Message updates
		return
	}
	chatID := update.Message.Chat.ID
	log := b.log.WithFields(map[string]interface{}{
		"chat_id": chatID,
		"text":    update.Message.Text,
	})

	msg := tgbotapi.NewMessage(chatID, "")
	err := b.commands.RunCommand(ctx, chatID, update.Message.Text, &msg)
	if err != nil {
		log.WithError(err).Debug("command failed")
		msg.Text = err.Error()
	}
	if _, err := b.sender.Send(msg); err != nil {
		log.WithError(err).Error("send error")
	}
}

func (b *Bot) Stop() {
	if b.cancel != nil {
		b.cancel()
	}
}

// notifyFinish tells every chat following the game that a player finished.
func (b *Bot) notifyFinish(_ context.Context, g *domain.Game, p domain.Player) {
	text := fmt.Sprintf("%s finished game %s", p.Name, g.ID)
	if g.Status == domain.StatusFinished {
		text += "\n" + renderGame(g)
	}
	for _, chatID := range b.subs.Followers(g.ID) {
		if _, err := b.sender.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
			b.log.WithError(err).WithField("chat_id", chatID).Error("send finish notification")
		}
	}
}
