package usecase

import (
	"context"
	"fmt"
	"time"

	"grota_financiamento/internal/domain/entities"
	"grota_financiamento/internal/infrastructure/logger"
	"grota_financiamento/internal/usecase/interfaces"
	"grota_financiamento/pkg/calendar"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultSource = "grota-api"

// deps are the collaborators every use case may share.
type deps struct {
	publisher interfaces.IRealtimePublisher
	locker    interfaces.IEntityLocker
	vehicles  interfaces.IVehicleLookup
	exporter  interfaces.IScheduleExporter
	clock     calendar.Clock
	source    string

	paymentGatewayMock bool
}

type Option func(*deps)

func WithPublisher(p interfaces.IRealtimePublisher) Option {
	return func(d *deps) { d.publisher = p }
}

func WithLocker(l interfaces.IEntityLocker) Option {
	return func(d *deps) { d.locker = l }
}

func WithVehicleLookup(v interfaces.IVehicleLookup) Option {
	return func(d *deps) { d.vehicles = v }
}

func WithScheduleExporter(e interfaces.IScheduleExporter) Option {
	return func(d *deps) { d.exporter = e }
}

func WithClock(c calendar.Clock) Option {
	return func(d *deps) {
		if c != nil {
			d.clock = c
		}
	}
}

// WithSource sets the identifier stamped on published events and used to drop echoes.
func WithSource(source string) Option {
	return func(d *deps) {
		if source != "" {
			d.source = source
		}
	}
}

// WithPaymentGatewayMock relaxes payload checks for the mock payment gateway.
func WithPaymentGatewayMock(enabled bool) Option {
	return func(d *deps) { d.paymentGatewayMock = enabled }
}

func newDeps(opts []Option) deps {
	d := deps{clock: calendar.SystemClock{}, source: defaultSource}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func (d deps) now() time.Time {
	return d.clock.Now().UTC()
}

func (d deps) today() time.Time {
	return calendar.TodayAtMidnight(d.clock.Now())
}

func (d deps) lock(ctx context.Context, kind string, id any) (func(), error) {
	if d.locker == nil {
		return func() {}, nil
	}
	return d.locker.Lock(ctx, fmt.Sprintf("%s:%v", kind, id))
}

func (d deps) publish(ctx context.Context, ev entities.RealtimeEvent) {
	if d.publisher == nil {
		return
	}
	ev.Source = d.source
	if ev.EmittedAt.IsZero() {
		ev.EmittedAt = d.now()
	}
	if err := d.publisher.Publish(ctx, ev); err != nil {
		logger.Get().WithFields(logrus.Fields{
			"event":       ev.Name,
			"proposal_id": ev.ProposalID,
		}).WithError(err).Warn("[realtime][usecase] publish failed")
	}
}

func newID() string {
	return uuid.NewString()
}
