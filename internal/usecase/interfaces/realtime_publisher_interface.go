package interfaces

import (
	"context"

	"grota_financiamento/internal/domain/entities"
)

// IRealtimePublisher hands state changes to the realtime bridge.
// Failures are logged by callers and never roll back the change.
type IRealtimePublisher interface {
	Publish(ctx context.Context, ev entities.RealtimeEvent) error
}
