// Package events publishes portal events to NATS.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// Publisher sends JSON events to a subject.
type Publisher interface {
	Publish(ctx context.Context, subject string, payload any) error
	Close()
}

// NoopPublisher discards events. It is used when no NATS URL is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, any) error { return nil }
func (NoopPublisher) Close() {}

type conn interface {
	Publish(subject string, data []byte) error
	Drain() error
	Close()
}

// NATSPublisher publishes events over a core NATS connection.
type NATSPublisher struct {
	nc  conn
	log zerolog.Logger
}

// New returns a NATS publisher for url, or a NoopPublisher when url is empty.
func New(url string, log zerolog.Logger) (Publisher, error) {
	if url == "" {
		log.Info().Msg("NATS_URL not set, call events disabled")
		return NoopPublisher{}, nil
	}
	nc, err := nats.Connect(url,
		nats.Name("customer-portal"),
		nats.Timeout(10*time.Second),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(3*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("NATS disconnected")
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info().Str("url", c.ConnectedUrl()).Msg("NATS reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	log.Info().Str("url", url).Msg("connected to NATS")
	return newNATSPublisher(nc, log), nil
}

func newNATSPublisher(nc conn, log zerolog.Logger) *NATSPublisher {
	return &NATSPublisher{nc: nc, log: log.With().Str("component", "events").Logger()}
}

// Publish encodes payload as JSON and publishes it. Core NATS publishes are
// buffered by the client, so ctx is only checked before sending.
func (p *NATSPublisher) Publish(ctx context.Context, subject string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}
	return nil
}

// Close flushes pending events and closes the connection.
func (p *NATSPublisher) Close() {
	if err := p.nc.Drain(); err != nil {
		p.log.Warn().Err(err).Msg("NATS drain failed")
		p.nc.Close()
	}
}
