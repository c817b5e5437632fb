// Package relay republishes a device's log stream onto NATS subjects so
// other local tooling can consume it without holding its own device
// connection.
package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/edgehub-io/cli/pkg/log"
	"github.com/edgehub-io/cli/pkg/logmsg"
	"github.com/nats-io/nats.go"
	"github.com/sasha-s/go-deadlock"
	"golang.org/x/sync/errgroup"
)

// DefaultSubjectPrefix is the base subject log records are published under.
const DefaultSubjectPrefix = "logs"

// Options configures a Relay.
type Options struct {
	// SubjectPrefix is the base NATS subject, DefaultSubjectPrefix if empty.
	SubjectPrefix string
	// StatsInterval is how often publish counters are logged. Zero
	// disables the stats loop.
	StatsInterval time.Duration
}

// Source feeds log records to a callback until it fails or the context is
// canceled. Both the local supervisor stream and the cloud subscription
// satisfy this shape.
type Source func(ctx context.Context, fn func(logmsg.LogMessage) error) error

// Stats carries publish counters.
type Stats struct {
	Published uint64
	Dropped   uint64
}

// Relay publishes log records for one device onto NATS.
type Relay struct {
	nc   *nats.Conn
	opts Options

	mu    deadlock.Mutex
	stats Stats
}

func New(nc *nats.Conn, opts Options) *Relay {
	if opts.SubjectPrefix == "" {
		opts.SubjectPrefix = DefaultSubjectPrefix
	}
	return &Relay{nc: nc, opts: opts}
}

// Subject derives the publish subject for a record: prefix.device for
// system records, prefix.device.service for attributed ones.
func Subject(prefix, deviceID, service string) string {
	parts := []string{prefix, sanitizeToken(deviceID)}
	if service != "" {
		parts = append(parts, sanitizeToken(service))
	}
	return strings.Join(parts, ".")
}

// sanitizeToken makes an identifier safe for use as a NATS subject token.
func sanitizeToken(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, ".", "-")
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "*", "-")
	s = strings.ReplaceAll(s, ">", "-")
	return s
}

// Publish sends one record. Marshalling errors count as drops and do not
// abort the relay; a broken broker connection does.
func (r *Relay) Publish(deviceID string, msg logmsg.LogMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		r.mu.Lock()
		r.stats.Dropped++
		r.mu.Unlock()
		log.Warn().Err(err).Msg("relay: marshal log record")
		return nil
	}
	subject := Subject(r.opts.SubjectPrefix, deviceID, msg.ServiceName)
	if err := r.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("publish to %s: %w", subject, err)
	}
	r.mu.Lock()
	r.stats.Published++
	r.mu.Unlock()
	return nil
}

// Stats returns a snapshot of the publish counters.
func (r *Relay) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// Run pumps the source into the broker until the source fails or the
// context is canceled. A stats logger runs alongside when configured.
func (r *Relay) Run(ctx context.Context, deviceID string, source Source) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return source(ctx, func(msg logmsg.LogMessage) error {
			return r.Publish(deviceID, msg)
		})
	})
	if r.opts.StatsInterval > 0 {
		g.Go(func() error {
			ticker := time.NewTicker(r.opts.StatsInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-ticker.C:
					stats := r.Stats()
					log.Info().Uint64("published", stats.Published).Uint64("dropped", stats.Dropped).Msg("relay stats")
				}
			}
		})
	}
	return g.Wait()
}
