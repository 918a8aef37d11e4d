package service

import (
	"context"

	"safety_monitor/internal/models"
)

// Publisher delivers envelopes to renderers and relays. Implementations
// must not block the dashboard loop.
type Publisher interface {
	Publish(ctx context.Context, env models.Envelope)
}

// Locator resolves the current device location for hazard recentering.
type Locator interface {
	Locate(ctx context.Context) (models.Location, error)
}

// Publishers fans one envelope out to every non-nil publisher.
type Publishers []Publisher

func (ps Publishers) Publish(ctx context.Context, env models.Envelope) {
	for _, p := range ps {
		if p != nil {
			p.Publish(ctx, env)
		}
	}
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, models.Envelope) {}
