// Package realtime delivers events to the channels of connected clients.
package realtime

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "realtime")
}

// AdminChannel receives every safety event
const AdminChannel = "admin"

const (
	EventNotification   = "receive_notification"
	EventSessionCode    = "session_otp"
	EventAlertTriggered = "alert-triggered"
	EventAlertResolved  = "alert-resolved"
)

// Event is delivered at most once and is never stored
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Transport publishes events to a channel, which is either a user id or
// AdminChannel. Publishing never waits for subscribers.
type Transport interface {
	Publish(ctx context.Context, channel string, event Event) error
}

type FanoutErrors struct {
	errors []error
}

func (e *FanoutErrors) Error() string {
	errorStrings := make([]string, len(e.errors))
	for i, err := range e.errors {
		errorStrings[i] = fmt.Sprintf("#%d: %s", i, err.Error())
	}
	return strings.Join(errorStrings, "\n")
}

type fanout struct {
	transports []Transport
}

// Fanout publishes every event to all of the transports
func Fanout(transports ...Transport) Transport {
	return &fanout{transports: transports}
}

func (f *fanout) Publish(ctx context.Context, channel string, event Event) error {
	var errors []error
	for _, t := range f.transports {
		if err := t.Publish(ctx, channel, event); err != nil {
			errors = append(errors, err)
		}
	}

	if len(errors) > 0 {
		return &FanoutErrors{errors: errors}
	}
	return nil
}
