package cli

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/emiliopalmerini/herdstats/internal/adapters/otel"
	"github.com/emiliopalmerini/herdstats/internal/adapters/sqlstore"
	"github.com/emiliopalmerini/herdstats/internal/infrastructure/config"
	"github.com/emiliopalmerini/herdstats/internal/infrastructure/database"
	"github.com/emiliopalmerini/herdstats/internal/infrastructure/logging"
	"github.com/emiliopalmerini/herdstats/internal/ports"
	"github.com/emiliopalmerini/herdstats/internal/report"
)

// AppContext holds all shared dependencies for CLI commands.
type AppContext struct {
	Config     *config.Config
	Logger     *zap.Logger
	Client     *database.Client
	Metrics    ports.MetricsExporter
	Production ports.ProductionRepository
	Lookups    ports.LookupRepository
	Service    *report.Service
}

// NewAppContext creates an AppContext with all dependencies initialized.
// The database is pinged once; a failure here aborts the command.
func NewAppContext(ctx context.Context, cfg *config.Config) (*AppContext, error) {
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	a := &AppContext{Config: cfg, Logger: logger}

	a.Metrics, err = otel.NewExporter(ctx, cfg.Otel)
	switch {
	case errors.Is(err, otel.ErrDisabled):
		a.Metrics = otel.NewNoOpExporter()
	case err != nil:
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	default:
		logger.Info("exporting metrics", zap.String("endpoint", cfg.Otel.Endpoint))
	}

	opts, err := cfg.Database.Options()
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}
	opts.Ping = true
	a.Client, err = database.New(opts)
	if err != nil {
		_ = a.Close(ctx)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	repos, err := sqlstore.NewRepositories(a.Client, a.Metrics)
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}
	a.Production = repos.Production
	a.Lookups = repos.Lookups
	a.Service = report.NewService(repos.Production, repos.Lookups, report.Options{
		UnknownBreedID: cfg.Report.UnknownBreedID,
		Metrics:        a.Metrics,
		Logger:         logger,
	})

	logger.Debug("application initialized", zap.String("driver", a.Client.Driver))
	return a, nil
}

// loadApp reads the configuration named by --config and builds the app.
func loadApp(ctx context.Context) (*AppContext, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return NewAppContext(ctx, cfg)
}

// Close releases all resources held by the AppContext.
func (a *AppContext) Close(ctx context.Context) error {
	var errs []error
	if a.Client != nil {
		errs = append(errs, a.Client.Close())
	}
	if a.Metrics != nil {
		errs = append(errs, a.Metrics.Close(ctx))
	}
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	return errors.Join(errs...)
}
