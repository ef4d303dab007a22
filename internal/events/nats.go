package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/mentor-hub/internal/config"
	"github.com/MKhiriev/mentor-hub/internal/logger"
	"github.com/nats-io/nats.go"
)

// natsConn is the part of *nats.Conn the publisher uses.
type natsConn interface {
	Publish(subject string, data []byte) error
	Drain() error
	Close()
}

type natsPublisher struct {
	conn   natsConn
	prefix string

	logger *logger.Logger
}

// NewPublisher connects to the broker configured in cfg. An empty URL
// disables publishing and yields a no-op [Publisher].
func NewPublisher(cfg config.Broker, log *logger.Logger) (Publisher, error) {
	if strings.TrimSpace(cfg.NATSURL) == "" {
		log.Info().Msg("nats url is not configured, domain events are disabled")
		return NewNopPublisher(), nil
	}

	nc, err := nats.Connect(cfg.NATSURL,
		nats.Name("mentor-hub"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("nats disconnected")
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("nats reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectingBroker, err)
	}

	log.Info().Str("url", nc.ConnectedUrl()).Msg("connected to nats")
	return newNATSPublisher(nc, cfg.SubjectPrefix, log), nil
}

func newNATSPublisher(conn natsConn, prefix string, log *logger.Logger) *natsPublisher {
	return &natsPublisher{
		conn:   conn,
		prefix: strings.Trim(prefix, "."),
		logger: log,
	}
}

// Publish implements [Publisher].
func (p *natsPublisher) Publish(ctx context.Context, event UserEvent) error {
	if event.Type == "" {
		return ErrEmptyEventType
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingEvent, err)
	}

	subject := p.subject(event.Type)
	if err = p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPublishingEvent, subject, err)
	}

	logger.FromContext(ctx).Debug().
		Str("func", "*natsPublisher.Publish").
		Str("subject", subject).
		Int64("user_id", event.UserID).
		Msg("event published")
	return nil
}

func (p *natsPublisher) subject(eventType string) string {
	if p.prefix == "" {
		return eventType
	}
	return p.prefix + "." + eventType
}

// Close drains pending messages and closes the connection.
func (p *natsPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.logger.Warn().Err(err).Msg("nats drain failed")
		p.conn.Close()
	}
}
