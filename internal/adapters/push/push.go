package push

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/nhu-hockey/nhu-app/internal/domain/entity"
	"github.com/nhu-hockey/nhu-app/pkg/logger/types"
)

type Options struct {
	URL           string
	SubjectPrefix string
	MaxReconnects int
	ReconnectWait time.Duration
}

// Publisher publishes push messages to the NATS subject <prefix>.<topic>,
// where the push gateway fans them out to subscribed devices.
type Publisher struct {
	nc     *nats.Conn
	prefix string
	logger *types.Logger
}

func New(opts Options, logger *types.Logger) (*Publisher, error) {
	if opts.URL == "" {
		opts.URL = nats.DefaultURL
	}
	if opts.ReconnectWait == 0 {
		opts.ReconnectWait = 2 * time.Second
	}

	nc, err := nats.Connect(opts.URL,
		nats.Name("nhu-app"),
		nats.MaxReconnects(opts.MaxReconnects),
		nats.ReconnectWait(opts.ReconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warnf("NATS disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Infof("NATS reconnected (url=%s)", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	return &Publisher{
		nc:     nc,
		prefix: opts.SubjectPrefix,
		logger: logger,
	}, nil
}

func (p *Publisher) Subject(topic entity.Topic) string {
	if p.prefix == "" {
		return string(topic)
	}
	return fmt.Sprintf("%s.%s", p.prefix, topic)
}

func (p *Publisher) Publish(ctx context.Context, msg entity.PushMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if msg.Channel == "" {
		msg.Channel = msg.Topic.Channel()
	}
	if msg.SentAt.IsZero() {
		msg.SentAt = time.Now().UTC()
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal push message: %w", err)
	}

	subject := p.Subject(msg.Topic)
	if err = p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}
	p.logger.Debugf("Published push message (subject=%s, size=%d)", subject, len(data))
	return nil
}

// Close flushes pending messages and closes the connection.
func (p *Publisher) Close() error {
	return p.nc.Drain()
}
