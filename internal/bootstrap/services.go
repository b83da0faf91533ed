package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/target/marketplace-console/config"
	"github.com/target/marketplace-console/internal/adapters/janitor"
	redisadapter "github.com/target/marketplace-console/internal/adapters/redis"
	"github.com/target/marketplace-console/internal/core"
	"github.com/target/marketplace-console/internal/data"
	"github.com/target/marketplace-console/internal/export"
	httpx "github.com/target/marketplace-console/internal/http"
	"github.com/target/marketplace-console/internal/marketplace"
	"github.com/target/marketplace-console/internal/observability/notify"
	"github.com/target/marketplace-console/internal/observability/notify/slack"
	"github.com/target/marketplace-console/internal/observability/statsd"
	"github.com/target/marketplace-console/internal/ports"
	"github.com/target/marketplace-console/internal/service"
)

var (
	_ core.JobWorkflowBackend  = (*marketplace.Client)(nil)
	_ core.JobListBackend      = (*marketplace.Client)(nil)
	_ core.DisputeBackend      = (*marketplace.Client)(nil)
	_ core.BillingBackend      = (*marketplace.Client)(nil)
	_ core.UserBackend         = (*marketplace.Client)(nil)
	_ core.SubscriptionBackend = (*marketplace.Client)(nil)
	_ core.DashboardBackend    = (*marketplace.Client)(nil)
	_ core.ExportBackend       = (*marketplace.Client)(nil)
	_ core.DirectoryBackend    = (*marketplace.Client)(nil)
)

// ServiceContainer holds the constructed services.
type ServiceContainer struct {
	HTTP          httpx.Services
	Auth          *service.AuthService
	Ledger        ports.ActionLedger
	Marketplace   *marketplace.Client
	Observability ObservabilityContainer
}

// Close stops pending search debounces and flushes metrics.
func (c ServiceContainer) Close() error {
	if s, ok := c.HTTP.Search.(*service.SearchService); ok && s != nil {
		s.Close()
	}
	if c.Observability.MetricsSink != nil {
		if err := c.Observability.MetricsSink.Close(); err != nil {
			return fmt.Errorf("close statsd: %w", err)
		}
	}
	return nil
}

// ObservabilityContainer groups the metrics sink and money-event notifier.
type ObservabilityContainer struct {
	// MetricsSink is nil when metrics are disabled.
	MetricsSink *statsd.Client
	Notifier    notify.Sink
}

// Sink returns the metrics sink or statsd.Discard.
//
//nolint:ireturn // the Sink interface is what consumers take
func (o ObservabilityContainer) Sink() statsd.Sink {
	if o.MetricsSink == nil {
		return statsd.Discard
	}
	return o.MetricsSink
}

// ServiceDeps groups the infrastructure services are built on.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

func buildObservability(logger *slog.Logger, cfg config.ObservabilityConfig, baseURL string) ObservabilityContainer {
	if logger == nil {
		logger = slog.Default()
	}

	out := ObservabilityContainer{Notifier: notify.Discard}
	if cfg.Metrics.IsEnabled() {
		client, err := statsd.NewClient(statsd.Config{
			Enabled: true,
			Address: cfg.Metrics.StatsdAddress,
			Prefix:  cfg.Metrics.Prefix,
			Logger:  logger,
		})
		if err != nil {
			logger.Error("failed to initialise statsd client", "error", err)
		} else {
			out.MetricsSink = client
		}
	}

	out.Notifier = buildNotifier(logger, cfg.Notifications, baseURL)
	return out
}

//nolint:ireturn // Discard or the Slack client
func buildNotifier(logger *slog.Logger, cfg config.ObservabilityNotificationsConfig, baseURL string) notify.Sink {
	if !cfg.Enabled || !cfg.Slack.Enabled {
		return notify.Discard
	}
	client, err := slack.NewClient(slack.Config{
		WebhookURL: cfg.Slack.WebhookURL,
		Channel:    cfg.Slack.Channel,
		Username:   cfg.Slack.Username,
		Timeout:    cfg.Timeout,
		ConsoleURL: baseURL,
	})
	if err != nil {
		logger.Error("failed to initialise slack notifier", "error", err)
		return notify.Discard
	}
	return client
}

// buildLedger picks the Postgres ledger when a database is connected.
//
//nolint:ireturn // either ledger implementation
func buildLedger(db *sql.DB) ports.ActionLedger {
	if db != nil {
		return data.NewLedgerRepo(db, data.LedgerOptions{})
	}
	return data.NewMemoryLedger(data.LedgerOptions{})
}

// NewServices builds the marketplace client and every service the router needs.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps require config")
	}
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	obs := buildObservability(logger, cfg.Observability, cfg.HTTP.BaseURL)

	client, err := marketplace.New(marketplace.Options{
		BaseURL:   cfg.Marketplace.APIURL,
		Timeout:   cfg.Marketplace.Timeout,
		Sessions:  marketplace.ContextSessions{},
		Logger:    logger,
		Metrics:   obs.Sink(),
		UserAgent: cfg.Marketplace.UserAgent,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create marketplace client: %w", err)
	}

	var auth *service.AuthService
	if deps.RedisClient != nil {
		sealer, sealErr := BuildSessionSealer(cfg.Auth.SessionKeys, cfg.IsDev, logger)
		if sealErr != nil {
			return ServiceContainer{}, sealErr
		}
		auth, err = BuildAuthService(AuthConfig{
			Auth:              cfg.Auth,
			ServiceAdminToken: cfg.Marketplace.ServiceAdminToken,
			IsDev:             cfg.IsDev,
			RedisClient:       deps.RedisClient,
			Backend:           client,
			Sealer:            sealer,
			Logger:            logger,
		})
		if err != nil {
			return ServiceContainer{}, fmt.Errorf("build auth: %w", err)
		}
	}

	presets, err := export.LoadPresets(cfg.Export.PresetsFile)
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("load export presets: %w", err)
	}

	var searchCache core.SearchCache
	if deps.RedisClient != nil && cfg.Search.CacheTTL > 0 {
		searchCache = redisadapter.NewSearchCache(deps.RedisClient)
	}

	ledger := buildLedger(deps.DB)
	billing := service.NewInvoiceService(service.InvoiceServiceOptions{Backend: client, Notifier: obs.Notifier})

	return ServiceContainer{
		HTTP: httpx.Services{
			Jobs: service.NewJobWorkflowService(service.JobWorkflowServiceOptions{
				Backend: client,
				Lister:  client,
				Ledger:  ledger,
				Metrics: obs.Sink(),
			}),
			Disputes: service.NewDisputeService(service.DisputeServiceOptions{Backend: client, Notifier: obs.Notifier}),
			Invoices: billing,
			Payments: service.NewPaymentService(client),
			Users:    service.NewUserService(client),
			Subscriptions: service.NewSubscriptionService(service.SubscriptionServiceOptions{
				Backend:  client,
				Notifier: obs.Notifier,
			}),
			Dashboard: service.NewDashboardService(client),
			Export: service.NewExportService(service.ExportServiceOptions{
				Backend:  client,
				Presets:  presets,
				PageSize: cfg.Export.PageSize,
			}),
			Search: service.NewSearchService(service.SearchServiceOptions{
				Directory: client,
				Cache:     searchCache,
				Debounce:  cfg.Search.Debounce,
				CacheTTL:  cfg.Search.CacheTTL,
			}),
		},
		Auth:          auth,
		Ledger:        ledger,
		Marketplace:   client,
		Observability: obs,
	}, nil
}

// ServiceOrchestrationConfig holds what RunServicesWithShutdown starts and stops.
type ServiceOrchestrationConfig struct {
	Config      *config.AppConfig
	Services    ServiceContainer
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// shutdownWaitTimeout bounds how long each service gets to stop.
const shutdownWaitTimeout = 15 * time.Second

type serviceStartupDeps struct {
	ctx             context.Context
	cfg             *ServiceOrchestrationConfig
	logger          *slog.Logger
	enabledServices map[config.ServiceMode]bool
	errCh           chan error
}

// backgroundService describes a startable background component.
type backgroundService struct {
	mode  config.ServiceMode
	name  string
	start func(context.Context) error
}

type backgroundServiceHandle struct {
	mode config.ServiceMode
	name string
	done <-chan struct{}
}

func startHTTPServerIfEnabled(deps *serviceStartupDeps) (*http.Server, error) {
	if deps == nil || deps.cfg == nil || !deps.enabledServices[config.ServiceModeHTTP] {
		return nil, nil //nolint:nilnil // http disabled
	}
	return StartHTTPServer(&HTTPServerConfig{
		Config:      deps.cfg.Config,
		Services:    deps.cfg.Services,
		DB:          deps.cfg.DB,
		RedisClient: deps.cfg.RedisClient,
		Logger:      deps.logger,
		ErrCh:       deps.errCh,
	})
}

func launchBackground(ctx context.Context, deps *serviceStartupDeps, descriptor backgroundService) <-chan struct{} {
	if deps == nil || !deps.enabledServices[descriptor.mode] {
		return nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := descriptor.start(ctx); err != nil {
			errMsg := fmt.Errorf("%s failed: %w", descriptor.name, err)
			select {
			case deps.errCh <- errMsg:
			case <-ctx.Done():
			default:
				deps.logger.WarnContext(ctx, "dropping background service error",
					"service", descriptor.name,
					"error", errMsg,
				)
			}
		}
	}()

	deps.logger.InfoContext(ctx, "background service started", "service", descriptor.name, "mode", descriptor.mode)
	return done
}

func startBackgroundServices(deps *serviceStartupDeps, services []backgroundService) []backgroundServiceHandle {
	if deps == nil {
		return nil
	}
	handles := make([]backgroundServiceHandle, 0, len(services))
	for _, svc := range services {
		done := launchBackground(deps.ctx, deps, svc)
		if done == nil {
			continue
		}
		handles = append(handles, backgroundServiceHandle{mode: svc.mode, name: svc.name, done: done})
	}
	return handles
}

func newLedgerJanitorBackgroundService(deps *serviceStartupDeps) backgroundService {
	return backgroundService{
		mode: config.ServiceModeLedgerJanitor,
		name: "ledger janitor",
		start: func(ctx context.Context) error {
			var janitorCfg config.JanitorConfig
			if deps.cfg.Config != nil {
				janitorCfg = deps.cfg.Config.Janitor
			}
			runner, err := janitor.NewRunner(janitor.RunnerOptions{
				DB:      deps.cfg.DB,
				Ledger:  deps.cfg.Services.Ledger,
				Config:  janitorCfg,
				Logger:  deps.logger,
				Metrics: deps.cfg.Services.Observability.Sink(),
			})
			if err != nil {
				return fmt.Errorf("create ledger janitor: %w", err)
			}
			return runner.Run(ctx)
		},
	}
}

// RunServicesWithShutdown starts the enabled services and blocks until SIGINT/SIGTERM or a
// service failure, then stops everything.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil {
		return errors.New("service orchestration config is required")
	}
	if cfg.Config == nil {
		return errors.New("service orchestration config missing AppConfig")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	serviceCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	enabledServices, err := cfg.Config.GetEnabledServices()
	if err != nil {
		return fmt.Errorf("determine enabled services: %w", err)
	}

	deps := &serviceStartupDeps{
		ctx:             serviceCtx,
		cfg:             cfg,
		logger:          logger,
		enabledServices: enabledServices,
		errCh:           make(chan error, errorChannelBufferSize(enabledServices)),
	}

	server, err := startHTTPServerIfEnabled(deps)
	if err != nil {
		return err
	}
	backgrounds := startBackgroundServices(deps, []backgroundService{
		newLedgerJanitorBackgroundService(deps),
	})

	return waitForShutdown(shutdownConfig{
		ctx:         serviceCtx,
		cancel:      cancel,
		errCh:       deps.errCh,
		httpServer:  server,
		services:    cfg.Services,
		logger:      logger,
		backgrounds: backgrounds,
	})
}

func errorChannelCapacity(enabled map[config.ServiceMode]bool) int {
	count := 0
	for _, mode := range config.ValidServiceModes() {
		if enabled[mode] {
			count++
		}
	}
	return count
}

func errorChannelBufferSize(enabled map[config.ServiceMode]bool) int {
	return errorChannelCapacity(enabled) + 1
}

type shutdownConfig struct {
	ctx         context.Context
	cancel      context.CancelFunc
	errCh       <-chan error
	httpServer  *http.Server
	services    ServiceContainer
	logger      *slog.Logger
	backgrounds []backgroundServiceHandle
}

func waitForShutdown(cfg shutdownConfig) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		cfg.logger.Info("shutting down services...")
		cfg.cancel()
		return gracefulStop(cfg)
	case err := <-cfg.errCh:
		cfg.logger.Error("service error", "error", err)
		cfg.cancel()
		if stopErr := gracefulStop(cfg); stopErr != nil {
			cfg.logger.Error("graceful stop failed", "error", stopErr)
		}
		return err
	}
}

func gracefulStop(cfg shutdownConfig) error {
	var errs []error
	if cfg.httpServer != nil {
		if err := ShutdownHTTPServer(ShutdownConfig{
			Context: context.Background(),
			Server:  cfg.httpServer,
			Logger:  cfg.logger,
		}); err != nil {
			errs = append(errs, err)
		}
	}

	for _, svc := range cfg.backgrounds {
		waitForService(svc.done, svc.name, cfg.logger)
	}

	if err := cfg.services.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func waitForService(done <-chan struct{}, name string, logger *slog.Logger) {
	if done == nil {
		return
	}
	t := time.NewTimer(shutdownWaitTimeout)
	defer t.Stop()
	select {
	case <-done:
		logger.Info(name + " stopped")
	case <-t.C:
		logger.Warn("timeout waiting for " + name + " to stop")
	}
}
