package routes

import (
	"context"
	"fmt"

	"grota_financiamento/internal/adapter/http/handlers"
	"grota_financiamento/internal/adapter/persistence/memory"
	"grota_financiamento/internal/adapter/persistence/repository"
	"grota_financiamento/internal/adapter/persistence/sqlstore"
	"grota_financiamento/internal/infrastructure/config"
	"grota_financiamento/internal/infrastructure/database"
	"grota_financiamento/internal/infrastructure/export"
	"grota_financiamento/internal/infrastructure/locking"
	"grota_financiamento/internal/infrastructure/logger"
	"grota_financiamento/internal/infrastructure/lookup"
	"grota_financiamento/internal/infrastructure/payments"
	"grota_financiamento/internal/infrastructure/realtime"
	"grota_financiamento/internal/usecase"
	"grota_financiamento/internal/usecase/interfaces"

	"cloud.google.com/go/pubsub"
	"github.com/redis/go-redis/v9"
)

// Application holds the wired handlers plus the shared clients that need closing.
type Application struct {
	Proposals *handlers.ProposalHandler
	Timeline  *handlers.TimelineHandler
	Contracts *handlers.ContractHandler
	Payments  *handlers.InstallmentPaymentHandler
	Lookups   *handlers.LookupHandler

	// Redis is nil when REDIS_ADDR is not set; locking and idempotency are skipped.
	Redis redis.UniversalClient

	closers []func()
}

type repositories struct {
	proposals   interfaces.IProposalRepository
	events      interfaces.IProposalEventRepository
	contracts   interfaces.IContractRepository
	occurrences interfaces.IOccurrenceRepository
	payments    interfaces.IInstallmentPaymentRepository
}

// NewApplication connects the configured storage and optional collaborators
// and builds every use case and handler. Optional collaborators (Redis, Pub/Sub,
// Mercado Pago) that fail to connect are logged and left out.
func NewApplication(ctx context.Context, cfg config.Config) (*Application, error) {
	app := &Application{}

	repos, err := app.openRepositories(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}

	lookupClient := lookup.NewClient(cfg.FipeBaseURL, cfg.CEPBaseURL, cfg.LookupTimeout)
	opts := []usecase.Option{
		usecase.WithSource(cfg.RealtimeSource),
		usecase.WithVehicleLookup(lookupClient),
		usecase.WithScheduleExporter(export.NewScheduleXLSX()),
	}

	if cfg.RedisAddr != "" {
		rdb, err := locking.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			logger.Get().WithError(err).Warn("[app][wiring] redis unavailable; running without locks and idempotency")
		} else {
			app.Redis = rdb
			app.closers = append(app.closers, func() { _ = rdb.Close() })
			opts = append(opts, usecase.WithLocker(locking.NewRedisLocker(rdb, cfg.LockTTL)))
		}
	}

	rt := app.openRealtime(ctx, cfg)
	if rt.publisher != nil {
		opts = append(opts, usecase.WithPublisher(rt.publisher))
	}

	proposalUseCase := usecase.NewProposalUseCase(repos.proposals, repos.events, opts...)
	timelineUseCase := usecase.NewTimelineUseCase(repos.proposals, repos.events, opts...)
	contractUseCase := usecase.NewContractUseCase(repos.contracts, repos.occurrences, repos.proposals, opts...)
	lookupUseCase := usecase.NewLookupUseCase(lookupClient, lookupClient)

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(cfg.MercadoPagoAccessToken, cfg.PaymentGatewayMock)
	if err != nil {
		logger.Get().WithError(err).Warn("[app][wiring] Mercado Pago gateway not configured")
	} else {
		paymentGateway = mpGateway
	}
	paymentOpts := append(append([]usecase.Option{}, opts...), usecase.WithPaymentGatewayMock(cfg.PaymentGatewayMock))
	paymentUseCase := usecase.NewInstallmentPaymentUseCase(repos.payments, contractUseCase, paymentGateway, paymentOpts...)

	if rt.subscription != nil {
		sub := realtime.NewSubscriber(rt.subscription, cfg.RealtimeSource, proposalUseCase)
		subCtx, cancel := context.WithCancel(ctx)
		app.closers = append(app.closers, cancel)
		go func() {
			if err := sub.Run(subCtx); err != nil {
				logger.Get().WithError(err).Error("[app][wiring] realtime subscriber stopped")
			}
		}()
	}

	app.Proposals = handlers.NewProposalHandler(proposalUseCase)
	app.Timeline = handlers.NewTimelineHandler(timelineUseCase)
	app.Contracts = handlers.NewContractHandler(contractUseCase)
	app.Payments = handlers.NewInstallmentPaymentHandler(paymentUseCase, cfg.PaymentGatewayMock)
	app.Lookups = handlers.NewLookupHandler(lookupUseCase)

	logger.Get().WithField("storage", cfg.StorageDriver).Info("[app][wiring] application ready")
	return app, nil
}

// Close releases clients in reverse order of creation.
func (a *Application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *Application) openRepositories(ctx context.Context, cfg config.Config) (repositories, error) {
	switch cfg.StorageDriver {
	case config.StorageDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx)
		if err != nil {
			return repositories{}, err
		}
		events := repository.NewProposalEventDynamoRepository(ddb)
		return repositories{
			proposals:   repository.NewProposalDynamoRepository(ddb, events),
			events:      events,
			contracts:   repository.NewContractDynamoRepository(ddb),
			occurrences: repository.NewOccurrenceDynamoRepository(ddb),
			payments:    repository.NewInstallmentPaymentDynamoRepository(ddb),
		}, nil

	case config.StoragePostgres, config.StorageMySQL, config.StorageSQLite:
		db, err := database.OpenGorm(cfg.StorageDriver, cfg.DatabaseDSN)
		if err != nil {
			return repositories{}, err
		}
		if sqlDB, err := db.DB(); err == nil {
			a.closers = append(a.closers, func() { _ = sqlDB.Close() })
		}
		if err := sqlstore.Migrate(db); err != nil {
			return repositories{}, err
		}
		store := sqlstore.New(db)
		return repositories{
			proposals:   store.Proposals(),
			events:      store.Events(),
			contracts:   store.Contracts(),
			occurrences: store.Occurrences(),
			payments:    store.Payments(),
		}, nil

	case config.StorageMemory:
		logger.Get().Warn("[app][wiring] using in-memory storage; data is lost on restart")
		store := memory.NewStore()
		return repositories{
			proposals:   store,
			events:      store.Events(),
			contracts:   store.Contracts(),
			occurrences: store.Occurrences(),
			payments:    store.Payments(),
		}, nil
	}
	return repositories{}, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
}

type realtimeBridge struct {
	publisher    *realtime.Publisher
	subscription *pubsub.Subscription
}

func (a *Application) openRealtime(ctx context.Context, cfg config.Config) realtimeBridge {
	if cfg.PubSubProjectID == "" || cfg.PubSubTopic == "" {
		logger.Get().Info("[app][wiring] realtime bridge disabled")
		return realtimeBridge{}
	}

	client, err := realtime.NewClient(ctx, cfg.PubSubProjectID, cfg.PubSubCredentials)
	if err != nil {
		logger.Get().WithError(err).Warn("[app][wiring] pubsub unavailable; realtime bridge disabled")
		return realtimeBridge{}
	}
	a.closers = append(a.closers, func() { _ = client.Close() })

	topic, err := realtime.EnsureTopic(ctx, client, cfg.PubSubTopic)
	if err != nil {
		logger.Get().WithError(err).Warn("[app][wiring] pubsub topic unavailable; realtime bridge disabled")
		return realtimeBridge{}
	}
	publisher := realtime.NewPublisher(topic)
	a.closers = append(a.closers, publisher.Stop)

	bridge := realtimeBridge{publisher: publisher}
	if cfg.PubSubSubscription != "" {
		sub, err := realtime.EnsureSubscription(ctx, client, cfg.PubSubSubscription, topic)
		if err != nil {
			logger.Get().WithError(err).Warn("[app][wiring] pubsub subscription unavailable; inbound snapshots disabled")
		} else {
			bridge.subscription = sub
		}
	}
	return bridge
}
