// Package relay bridges the dashboard to Redis: hazard pushes arrive on a
// pub/sub channel and emitted notifications are republished for other
// consumers.
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"safety_monitor/internal/logger"
	"safety_monitor/internal/models"
)

const (
	DefaultHazardChannel = "safety:fire"
	DefaultNotifyChannel = "safety:sos"

	outboxSize     = 128
	publishTimeout = 2 * time.Second
)

var ErrBadHazardPayload = errors.New("hazard payload must be 0 or 1")

// Options configures the Redis connection and channel names.
type Options struct {
	Addr          string
	Password      string
	DB            int
	HazardChannel string
	NotifyChannel string
}

// HazardSink receives parsed hazard pushes.
type HazardSink interface {
	PushHazard(ctx context.Context, active bool) (models.Dashboard, error)
}

type Relay struct {
	client        *redis.Client
	hazardChannel string
	notifyChannel string
	outbox        chan []byte
	log           *logger.Logger
}

// New connects to Redis and verifies the connection with PING.
func New(ctx context.Context, opts Options, log *logger.Logger) (*Relay, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		PoolSize:     10,
		MinIdleConns: 2,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return newRelay(client, opts, log), nil
}

func newRelay(client *redis.Client, opts Options, log *logger.Logger) *Relay {
	if opts.HazardChannel == "" {
		opts.HazardChannel = DefaultHazardChannel
	}
	if opts.NotifyChannel == "" {
		opts.NotifyChannel = DefaultNotifyChannel
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Relay{
		client:        client,
		hazardChannel: opts.HazardChannel,
		notifyChannel: opts.NotifyChannel,
		outbox:        make(chan []byte, outboxSize),
		log:           log,
	}
}

func (r *Relay) Close() error {
	return r.client.Close()
}

// Publish queues notification and alert envelopes for the notify channel.
// State and map envelopes are not relayed. Never blocks.
func (r *Relay) Publish(_ context.Context, env models.Envelope) {
	if env.Type != models.EnvelopeNotification && env.Type != models.EnvelopeAlert {
		return
	}
	payload, err := json.Marshal(env)
	if err != nil {
		r.log.Errorw("relay_marshal_failed", "err", err, "type", env.Type)
		return
	}
	select {
	case r.outbox <- payload:
	default:
		r.log.Warnw("relay_outbox_full", "type", env.Type)
	}
}

// RunPublisher drains the outbox into Redis until ctx is canceled.
func (r *Relay) RunPublisher(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case payload := <-r.outbox:
			pctx, cancel := context.WithTimeout(ctx, publishTimeout)
			if err := r.client.Publish(pctx, r.notifyChannel, payload).Err(); err != nil {
				r.log.Errorw("relay_publish_failed", "err", err, "channel", r.notifyChannel)
			}
			cancel()
		}
	}
}

// Subscribe forwards hazard pushes to sink until ctx is canceled or the
// subscription channel closes.
func (r *Relay) Subscribe(ctx context.Context, sink HazardSink) error {
	sub := r.client.Subscribe(ctx, r.hazardChannel)
	defer func() { _ = sub.Close() }()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", r.hazardChannel, err)
	}
	r.log.Infow("hazard_subscription_started", "channel", r.hazardChannel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			r.handle(ctx, sink, msg.Payload)
		}
	}
}

func (r *Relay) handle(ctx context.Context, sink HazardSink, payload string) {
	active, err := ParseHazard(payload)
	if err != nil {
		r.log.Warnw("hazard_payload_skipped", "err", err, "payload", payload)
		return
	}
	if _, err := sink.PushHazard(ctx, active); err != nil && ctx.Err() == nil {
		r.log.Errorw("hazard_push_failed", "err", err)
	}
}

// ParseHazard accepts "1"/"true" as hazard and "0"/"false"/"" as clear.
func ParseHazard(payload string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(payload)) {
	case "1", "true":
		return true, nil
	case "0", "false", "":
		return false, nil
	default:
		return false, fmt.Errorf("%w: got %q", ErrBadHazardPayload, payload)
	}
}
