package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"med-reminder/internal/domain/reminders"
	"med-reminder/internal/domain/tracker"
	"med-reminder/internal/platform/logger"

	tele "gopkg.in/telebot.v4"
)

const takenUnique = "dose_taken"

// TakeFunc marca la toma de la alerta (Watcher.Take).
type TakeFunc func(ctx context.Context, alertKey string) error

type Config struct {
	Token   string
	ChatID  int64
	Offline bool
}

// Notifier manda las alertas a un chat de Telegram con un botón "Tomada".
type Notifier struct {
	bot  *tele.Bot
	chat tele.ChatID
	take TakeFunc
	log  logger.Logger

	// Telegram limita callback_data a 64 bytes: el botón lleva un id corto.
	mu   sync.Mutex
	seq  int
	keys map[string]string
}

var _ reminders.Notifier = (*Notifier)(nil)

func New(cfg Config, take TakeFunc, log logger.Logger) (*Notifier, error) {
	if cfg.Token == "" || cfg.ChatID == 0 {
		return nil, errors.New("telegram: token and chat id are required")
	}
	if log == nil {
		log = logger.Nop()
	}
	bot, err := tele.NewBot(tele.Settings{
		Token:   cfg.Token,
		Poller:  &tele.LongPoller{Timeout: 10 * time.Second},
		Offline: cfg.Offline,
	})
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}

	n := &Notifier{
		bot:  bot,
		chat: tele.ChatID(cfg.ChatID),
		take: take,
		log:  log.With(map[string]any{"component": "telegram"}),
		keys: map[string]string{},
	}
	bot.Handle(&tele.Btn{Unique: takenUnique}, n.onTaken)
	return n, nil
}

// Start corre el long polling en background.
func (n *Notifier) Start() { go n.bot.Start() }

func (n *Notifier) Stop() { n.bot.Stop() }

func (n *Notifier) Alert(_ context.Context, a tracker.Alert) error {
	title, body := reminders.AlertText(a)

	markup := &tele.ReplyMarkup{}
	btn := markup.Data("✅ Taken", takenUnique, n.shortID(a.Key))
	markup.Inline(markup.Row(btn))

	_, err := n.bot.Send(n.chat, "⏰ "+title+"\n"+body, markup)
	return err
}

// Ring no hace nada: en Telegram el aviso suena una sola vez con el mensaje.
func (n *Notifier) Ring(context.Context, tracker.Alert) error { return nil }

func (n *Notifier) Notify(_ context.Context, title, message string) error {
	_, err := n.bot.Send(n.chat, title+"\n\n"+message)
	return err
}

func (n *Notifier) onTaken(c tele.Context) error {
	text, done := n.handleTaken(context.Background(), c.Data())
	if done {
		_ = c.Edit("✅ "+text, &tele.ReplyMarkup{})
	}
	return c.Respond(&tele.CallbackResponse{Text: text})
}

func (n *Notifier) handleTaken(ctx context.Context, id string) (string, bool) {
	n.mu.Lock()
	key, ok := n.keys[id]
	n.mu.Unlock()
	if !ok {
		return "This reminder is no longer active", false
	}
	if n.take == nil {
		return "Open the app to mark this dose", false
	}
	if err := n.take(ctx, key); err != nil {
		n.log.Warn("could not mark dose from telegram", map[string]any{"alert_key": key, "error": err})
		return "Could not mark the dose, open the app", false
	}
	n.mu.Lock()
	delete(n.keys, id)
	n.mu.Unlock()
	return "Dose marked as taken", true
}

func (n *Notifier) shortID(alertKey string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.seq++
	id := strconv.FormatInt(int64(n.seq), 36)
	n.keys[id] = alertKey
	return id
}
