package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/mailer"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/redislock"
	"fulfillment/internal/core/application/notifications"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"
	"fulfillment/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const settlementBatchLockKey = "fulfillment:lock:settlement_batch"

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	registry *prometheus.Registry
	metrics  *metrics.Metrics

	composer   notifications.Composer
	calculator services.PayableCalculator
	notifier   ports.Notifier
	dispatcher *commands.DispatchNotificationsCommandHandler

	redis *redis.Client
}

func NewCompositionRoot(ctx context.Context, cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	adminEmail, err := kernel.NewEmail(cfg.AdminEmail)
	if err != nil {
		return nil, fmt.Errorf("ADMIN_EMAIL: %w", err)
	}
	printerEmail, err := kernel.NewEmail(cfg.PrinterEmail)
	if err != nil {
		return nil, fmt.Errorf("PRINTER_EMAIL: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		registry:   registry,
		metrics:    metrics.New(registry),
		composer: notifications.NewComposer(notifications.Config{
			PublicBaseURL: cfg.PublicBaseURL,
			AdminEmail:    adminEmail,
			PrinterEmail:  printerEmail,
			PrinterToken:  cfg.PrinterWebhookSecret,
		}),
		calculator: services.NewPayableCalculator(cfg.DefaultPrinterFeeCents),
	}

	if cfg.SMTPHost != "" {
		c.notifier, err = mailer.NewSMTPNotifier(mailer.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		})
		if err != nil {
			return nil, fmt.Errorf("smtp notifier: %w", err)
		}
	} else {
		logger.Warn("SMTP_HOST is not set, notifications will only be logged")
		c.notifier = mailer.NewLogNotifier(logger)
	}

	if cfg.RedisURL != "" {
		c.redis, err = redislock.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
	}

	c.dispatcher = commands.NewDispatchNotificationsCommandHandler(
		FuncOutboxUoWFactory(func() commands.OutboxUoW {
			return c.uowFactory.CreateGorm()
		}),
		c.notifier,
		commands.RetryPolicy{
			MaxAttempts:     cfg.NotificationMaxAttempts,
			InitialInterval: cfg.NotificationRetryInterval,
			MaxInterval:     cfg.NotificationMaxRetryInterval,
		},
		c.metrics,
		logger,
	)

	return c, nil
}

// Close releases connections owned by the root.
func (c *CompositionRoot) Close() error {
	if c.redis != nil {
		return c.redis.Close()
	}
	return nil
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) orderUoW() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) CreateRegisterPaidOrderCommandHandler() commands.RegisterPaidOrderCommandHandler {
	return commands.NewRegisterPaidOrderCommandHandler(c.orderUoW())
}

func (c *CompositionRoot) CreateTransitionOrderStatusCommandHandler() commands.TransitionOrderStatusCommandHandler {
	return commands.NewTransitionOrderStatusCommandHandler(c.uow(), c.composer, c.dispatcher, c.logger)
}

func (c *CompositionRoot) CreateCreateSettlementCommandHandler() commands.CreateSettlementCommandHandler {
	return commands.NewCreateSettlementCommandHandler(c.uow(), c.calculator, c.composer, c.dispatcher, c.logger)
}

func (c *CompositionRoot) CreateApplySettlementActionCommandHandler() commands.ApplySettlementActionCommandHandler {
	return commands.NewApplySettlementActionCommandHandler(c.uow(), c.logger)
}

func (c *CompositionRoot) CreateResendSettlementCommandHandler() commands.ResendSettlementCommandHandler {
	return commands.NewResendSettlementCommandHandler(c.uow(), c.composer, c.dispatcher, c.logger)
}

func (c *CompositionRoot) CreateBatchUnbatchedOrdersCommandHandler() commands.BatchUnbatchedOrdersCommandHandler {
	creator := c.CreateCreateSettlementCommandHandler()
	return commands.NewBatchUnbatchedOrdersCommandHandler(c.orderUoW(), &creator)
}

func (c *CompositionRoot) CreateDispatchNotificationsCommandHandler() *commands.DispatchNotificationsCommandHandler {
	return c.dispatcher
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListSettlementsQueryHandler() queries.ListSettlementsQueryHandler {
	return queries.NewListSettlementsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSettlementQueryHandler() queries.GetSettlementQueryHandler {
	return queries.NewGetSettlementQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUnbatchedPayablesQueryHandler() queries.GetUnbatchedPayablesQueryHandler {
	return queries.NewGetUnbatchedPayablesQueryHandler(orderrepo.NewGormOrderRepository(c.gormDB, nil), c.calculator)
}

// MetricsHandler serves the root's prometheus registry.
func (c *CompositionRoot) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	registerOrder := c.CreateRegisterPaidOrderCommandHandler()
	transition := c.CreateTransitionOrderStatusCommandHandler()
	createSettlement := c.CreateCreateSettlementCommandHandler()
	applyAction := c.CreateApplySettlementActionCommandHandler()
	resend := c.CreateResendSettlementCommandHandler()

	return httpadapter.NewServer(httpadapter.Handlers{
		RegisterPaidOrder:     &registerOrder,
		TransitionOrderStatus: &transition,
		CreateSettlement:      &createSettlement,
		ApplySettlementAction: &applyAction,
		ResendSettlement:      &resend,
		GetOrder:              c.CreateGetOrderQueryHandler(),
		ListSettlements:       c.CreateListSettlementsQueryHandler(),
		GetSettlement:         c.CreateGetSettlementQueryHandler(),
		GetUnbatchedPayables:  c.CreateGetUnbatchedPayablesQueryHandler(),
	}, httpadapter.Config{
		PublicBaseURL:        c.cfg.PublicBaseURL,
		PrinterWebhookSecret: c.cfg.PrinterWebhookSecret,
		AdminAPIKey:          c.cfg.AdminAPIKey,
		MetricsHandler:       c.MetricsHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	dispatch := jobs.NewNotificationDispatchJob(
		c.dispatcher,
		c.cfg.NotificationDispatchSchedule,
		commands.DefaultDispatchBatchSize,
		c.metrics,
		c.logger,
	)

	if !c.cfg.SettlementBatchEnabled {
		return jobs.NewJobManager(dispatch, nil), nil
	}

	var lock jobs.Locker
	if c.redis != nil {
		redisLock, err := redislock.New(c.redis, settlementBatchLockKey, 0)
		if err != nil {
			return nil, err
		}
		lock = redisLock
	}

	batchHandler := c.CreateBatchUnbatchedOrdersCommandHandler()
	batch := jobs.NewSettlementBatchJob(&batchHandler, c.cfg.SettlementBatchSchedule, lock, c.metrics, c.logger)
	return jobs.NewJobManager(dispatch, batch), nil
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
