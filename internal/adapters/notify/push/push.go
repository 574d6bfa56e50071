package push

import (
	"context"
	"errors"
	"fmt"

	"med-reminder/internal/domain/reminders"
	"med-reminder/internal/domain/tracker"
	"med-reminder/internal/platform/logger"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

const channelID = "dose_alerts"

// Sender es lo que usamos de *messaging.Client.
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// Notifier manda las alertas como push (Firebase Cloud Messaging) al teléfono vinculado.
type Notifier struct {
	sender Sender
	token  string
	log    logger.Logger
}

var _ reminders.Notifier = (*Notifier)(nil)

// NewFCM inicializa la app de Firebase con el archivo de credenciales de la cuenta de servicio.
func NewFCM(ctx context.Context, credentialsFile, deviceToken string, log logger.Logger) (*Notifier, error) {
	if credentialsFile == "" || deviceToken == "" {
		return nil, errors.New("push: credentials file and device token are required")
	}
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("push: init firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("push: messaging client: %w", err)
	}
	return New(client, deviceToken, log), nil
}

func New(sender Sender, deviceToken string, log logger.Logger) *Notifier {
	if log == nil {
		log = logger.Nop()
	}
	return &Notifier{sender: sender, token: deviceToken, log: log.With(map[string]any{"component": "push"})}
}

func (n *Notifier) Alert(ctx context.Context, a tracker.Alert) error {
	title, body := reminders.AlertText(a)
	msg := &messaging.Message{
		Token: n.token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: map[string]string{
			"type":        "dose_due",
			"alert_key":   a.Key,
			"medicine_id": a.Occurrence.MedicineID,
			"time":        a.Occurrence.Time,
			"date":        a.Occurrence.Date,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound:     "default",
				ChannelID: channelID,
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}
	return n.send(ctx, msg)
}

// Ring manda un mensaje de datos; la app vuelve a sonar sin mostrar otra notificación.
func (n *Notifier) Ring(ctx context.Context, a tracker.Alert) error {
	return n.send(ctx, &messaging.Message{
		Token: n.token,
		Data:  map[string]string{"type": "dose_ring", "alert_key": a.Key},
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
	})
}

func (n *Notifier) Notify(ctx context.Context, title, message string) error {
	return n.send(ctx, &messaging.Message{
		Token:        n.token,
		Notification: &messaging.Notification{Title: title, Body: message},
		Data:         map[string]string{"type": "notice"},
	})
}

func (n *Notifier) send(ctx context.Context, msg *messaging.Message) error {
	id, err := n.sender.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("push: send: %w", err)
	}
	n.log.Debug("push sent", map[string]any{"message_id": id, "type": msg.Data["type"]})
	return nil
}
