// Package notification persists and delivers the point-to-point events of a help session.
package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/sirupsen/logrus"
	"github.com/uber-go/tally"

	"github.com/bitmark-inc/neighbourmatch-api/apperror"
	"github.com/bitmark-inc/neighbourmatch-api/realtime"
	"github.com/bitmark-inc/neighbourmatch-api/schema"
	"github.com/bitmark-inc/neighbourmatch-api/store"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "notification")
}

const listLimit = 20

var (
	ErrNotificationNotFound = apperror.NotFound("notification_not_found")
)

// Store keeps the notification records
type Store interface {
	CreateNotification(n *schema.Notification) error
	ListNotifications(receiverID string, limit int) ([]schema.Notification, error)
	MarkNotificationRead(notificationID, receiverID string) error
}

// Outgoing describes a notification to a single receiver
type Outgoing struct {
	SenderID   string
	ReceiverID string
	MessageID  string
	Data       map[string]interface{}
	RequestID  string
	Kind       string
}

type Notifier struct {
	store     Store
	transport realtime.Transport
	localizer *i18n.Localizer
	scope     tally.Scope
}

func New(s Store, transport realtime.Transport, localizer *i18n.Localizer, scope tally.Scope) *Notifier {
	return &Notifier{
		store:     s,
		transport: transport,
		localizer: localizer,
		scope:     scope.SubScope("notification"),
	}
}

// Send stores the notification and publishes it to the receiver's channel.
// The event is published even when storing fails.
func (n *Notifier) Send(ctx context.Context, out Outgoing) error {
	text := n.localize(out.MessageID, out.Data)

	record := &schema.Notification{
		SenderID:   out.SenderID,
		ReceiverID: out.ReceiverID,
		Message:    text,
	}

	storeErr := n.store.CreateNotification(record)
	if storeErr != nil {
		n.scope.Counter("store_failure").Inc(1)
	}

	payload := map[string]interface{}{
		"message":   text,
		"createdAt": time.Now().UTC(),
	}
	if storeErr == nil {
		payload["id"] = record.ID.String()
		payload["createdAt"] = record.CreatedAt
	}
	if out.RequestID != "" {
		payload["requestId"] = out.RequestID
	}
	if out.Kind != "" {
		payload["type"] = out.Kind
	}

	publishErr := n.transport.Publish(ctx, out.ReceiverID, realtime.Event{
		Type:    realtime.EventNotification,
		Payload: payload,
	})
	if publishErr != nil {
		n.scope.Counter("publish_failure").Inc(1)
	}

	switch {
	case storeErr != nil && publishErr != nil:
		return fmt.Errorf("store notification: %s; publish notification: %w", storeErr, publishErr)
	case storeErr != nil:
		return fmt.Errorf("store notification: %w", storeErr)
	case publishErr != nil:
		return fmt.Errorf("publish notification: %w", publishErr)
	}

	n.scope.Counter("sent").Inc(1)
	return nil
}

// Push publishes an event without keeping a record of it
func (n *Notifier) Push(ctx context.Context, channel string, event realtime.Event) error {
	if err := n.transport.Publish(ctx, channel, event); err != nil {
		n.scope.Counter("publish_failure").Inc(1)
		return err
	}
	return nil
}

// List returns the latest notifications of a receiver
func (n *Notifier) List(receiverID string) ([]schema.Notification, error) {
	notifications, err := n.store.ListNotifications(receiverID, listLimit)
	if err != nil {
		return nil, apperror.Upstream(err)
	}
	return notifications, nil
}

// MarkRead flips the read flag of a notification owned by the receiver
func (n *Notifier) MarkRead(notificationID, receiverID string) error {
	if _, err := uuid.Parse(notificationID); err != nil {
		return ErrNotificationNotFound
	}

	if err := n.store.MarkNotificationRead(notificationID, receiverID); err != nil {
		if err == store.ErrNotificationNotExist {
			return ErrNotificationNotFound
		}
		return apperror.Upstream(err)
	}
	return nil
}

func (n *Notifier) localize(messageID string, data map[string]interface{}) string {
	text, err := n.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		log.WithError(err).WithField("message_id", messageID).Warn("localize notification")
		return messageID
	}
	return text
}
