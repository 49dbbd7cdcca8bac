package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/davecgh/go-spew/spew"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/errgroup"

	"expensebot/internal/log"
)

// DefaultPollTimeout is the long-poll timeout in seconds.
const DefaultPollTimeout = 60

// botAPI is the subset of *tgbotapi.BotAPI the transport uses.
type botAPI interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram feeds Telegram updates to a Handler and sends back its replies.
type Telegram struct {
	api         botAPI
	handler     *Handler
	logger      *log.Logger
	pollTimeout int
}

// NewTelegram authorises token against the Bot API.
func NewTelegram(token string, debug bool, handler *Handler, logger *log.Logger) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	api.Debug = debug

	t := newTelegram(api, handler, logger)
	t.logger.Info("Telegram bot authorized successfully", log.FieldUsername, api.Self.UserName)
	return t, nil
}

func newTelegram(api botAPI, handler *Handler, logger *log.Logger) *Telegram {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Telegram{
		api:         api,
		handler:     handler,
		logger:      logger.WithComponent(log.ComponentTelegram),
		pollTimeout: DefaultPollTimeout,
	}
}

// Run consumes updates until ctx is cancelled or the update channel closes.
// Each message is handled in its own goroutine; Run waits for in-flight
// messages before returning.
func (t *Telegram) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = t.pollTimeout
	updates := t.api.GetUpdatesChan(u)

	// In-flight messages finish even after shutdown starts.
	handleCtx := context.WithoutCancel(ctx)

	var g errgroup.Group
	for {
		select {
		case <-ctx.Done():
			t.logger.Info("Stopping update polling", "reason", ctx.Err())
			t.api.StopReceivingUpdates()
			return g.Wait()
		case update, ok := <-updates:
			if !ok {
				return g.Wait()
			}
			m, ok := toMessage(update)
			if !ok {
				if t.logger.Enabled(ctx, slog.LevelDebug) {
					t.logger.Debug("Ignoring non-message update", "update", spew.Sdump(update))
				}
				continue
			}
			g.Go(func() error {
				t.handle(handleCtx, m)
				return nil
			})
		}
	}
}

func (t *Telegram) handle(ctx context.Context, m Message) {
	logger := t.logger.With(log.NewFields().WithChat(m.ChatID, m.UserID, m.Username).ToSlice()...)
	logger = logger.With(log.FieldMessageID, m.MessageID)
	ctx = log.WithLogger(ctx, logger)

	reply, ok := t.handler.Handle(ctx, m)
	if !ok {
		return
	}

	msg := tgbotapi.NewMessage(m.ChatID, reply)
	msg.ReplyToMessageID = m.MessageID
	if _, err := t.api.Send(msg); err != nil {
		logger.WarnContext(ctx, "Cannot send reply",
			log.FieldOperation, log.OpReply,
			log.FieldError, err.Error())
	}
}

// toMessage converts a text message update. Updates without a message are
// reported as not ok.
func toMessage(u tgbotapi.Update) (Message, bool) {
	if u.Message == nil {
		return Message{}, false
	}
	m := Message{
		MessageID: u.Message.MessageID,
		Text:      u.Message.Text,
	}
	if u.Message.Chat != nil {
		m.ChatID = u.Message.Chat.ID
		m.Private = u.Message.Chat.IsPrivate()
	}
	if u.Message.From != nil {
		m.UserID = u.Message.From.ID
		m.Username = u.Message.From.UserName
		m.FromBot = u.Message.From.IsBot
	} else {
		// Anonymous senders (channel posts) are never a person in a DM.
		m.FromBot = true
	}
	return m, true
}
