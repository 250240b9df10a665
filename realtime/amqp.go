package realtime

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/uber-go/tally"
)

const (
	mirrorBufferSize  = 64
	mirrorDialTimeout = 5 * time.Second
	mirrorRetryDelay  = 3 * time.Second
)

// AlertMirror copies the events of the admin channel into a durable queue
// read by external security desks. Other channels are ignored.
//
// Publish only queues the event. Run owns the broker connection, so a slow
// or unreachable broker never holds up the publisher.
type AlertMirror struct {
	url     string
	queue   string
	pending chan amqp.Publishing
	scope   tally.Scope

	dialTimeout time.Duration
	retryDelay  time.Duration
}

func NewAlertMirror(url, queue string, scope tally.Scope) *AlertMirror {
	return &AlertMirror{
		url:         url,
		queue:       queue,
		pending:     make(chan amqp.Publishing, mirrorBufferSize),
		scope:       scope.SubScope("alert_mirror"),
		dialTimeout: mirrorDialTimeout,
		retryDelay:  mirrorRetryDelay,
	}
}

// Publish queues an admin event. When the queue is full the event is dropped.
func (m *AlertMirror) Publish(_ context.Context, channel string, event Event) error {
	if channel != AdminChannel {
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	select {
	case m.pending <- amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         event.Type,
		Body:         body,
	}:
		m.scope.Counter("queued").Inc(1)
	default:
		m.scope.Counter("dropped").Inc(1)
		log.WithField("event", event.Type).Warn("rabbitmq: mirror queue is full, event dropped")
	}

	return nil
}

// Run publishes queued events until the context is cancelled, reconnecting
// whenever the broker goes away
func (m *AlertMirror) Run(ctx context.Context) error {
	for {
		conn, ch, err := m.connect()
		if err != nil {
			log.WithError(err).Error("rabbitmq: connect failed")
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(m.retryDelay):
				continue
			}
		}

		log.WithField("queue", m.queue).Info("rabbitmq: alert mirror connected")
		err = m.forward(ctx, ch)
		ch.Close()
		conn.Close()

		if ctx.Err() != nil {
			return nil
		}
		log.WithError(err).Warn("rabbitmq: connection lost, reconnecting")
	}
}

func (m *AlertMirror) connect() (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.DialConfig(m.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(m.dialTimeout),
	})
	if err != nil {
		return nil, nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, err
	}

	if _, err := ch.QueueDeclare(
		m.queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, err
	}

	return conn, ch, nil
}

func (m *AlertMirror) forward(ctx context.Context, ch *amqp.Channel) error {
	closed := ch.NotifyClose(make(chan *amqp.Error, 1))

	for {
		select {
		case <-ctx.Done():
			return nil
		case amqpErr := <-closed:
			if amqpErr != nil {
				return amqpErr
			}
			return amqp.ErrClosed
		case p := <-m.pending:
			if err := ch.PublishWithContext(ctx,
				"",      // default exchange
				m.queue, // routing key = queue name
				false,   // mandatory
				false,   // immediate
				p,
			); err != nil {
				m.scope.Counter("failed").Inc(1)
				// keep the event for the next connection if there is room
				select {
				case m.pending <- p:
				default:
					m.scope.Counter("dropped").Inc(1)
				}
				return err
			}
			m.scope.Counter("published").Inc(1)
		}
	}
}
