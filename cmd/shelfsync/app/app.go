// Package app provides the application context and dependency management
// for the shelfsync CLI. It centralizes configuration, dependency injection,
// and lifecycle management.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/shelfsync"
	"github.com/agentstation/shelfsync/internal/appcontext"
	"github.com/agentstation/shelfsync/internal/sources/poizon"
	"github.com/agentstation/shelfsync/internal/storefront/woocommerce"
	"github.com/agentstation/shelfsync/pkg/brands"
	"github.com/agentstation/shelfsync/pkg/catalogs"
	"github.com/agentstation/shelfsync/pkg/collector"
	"github.com/agentstation/shelfsync/pkg/errors"
	"github.com/agentstation/shelfsync/pkg/pacing"
	"github.com/agentstation/shelfsync/pkg/pricing"
	"github.com/agentstation/shelfsync/pkg/reconciler"
	"github.com/agentstation/shelfsync/pkg/sources"
	"github.com/agentstation/shelfsync/pkg/storefront"
)

var _ appcontext.Interface = (*App)(nil)

// App represents the shelfsync application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Shelfsync instance (lazy-initialized, singleton)
	mu        sync.RWMutex
	shelfsync shelfsync.Shelfsync

	// Endpoints, overridable for tests
	source sources.Client
	dest   storefront.Client
}

// New creates a new App instance with the given version information.
// The app is initialized with configuration from files and environment
// that can be customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	// Load configuration
	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	// Initialize logger
	logger := NewLogger(config)
	app.logger = &logger

	// Apply any custom options
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Brands returns the configured brand table.
func (a *App) Brands() []catalogs.Brand {
	return a.config.Brands
}

// Rules returns the brand rules, read from the configured file if any.
func (a *App) Rules() (*brands.Rules, error) {
	if a.config.BrandRulesFile == "" {
		return brands.Default(), nil
	}
	cfg, err := brands.LoadFile(a.config.BrandRulesFile)
	if err != nil {
		return nil, errors.NewConfigError("brand_rules", "cannot load brand rules", err)
	}
	return brands.New(cfg), nil
}

// Pricing returns the configured pricing parameters and rounding.
func (a *App) Pricing() (pricing.Params, pricing.Rounding) {
	return a.config.Pricing, a.config.Rounding
}

// Shelfsync returns the shelfsync instance, creating it lazily if needed.
// This is thread-safe and ensures only one instance is created.
func (a *App) Shelfsync() (shelfsync.Shelfsync, error) {
	a.mu.RLock()
	if a.shelfsync != nil {
		s := a.shelfsync
		a.mu.RUnlock()
		return s, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.shelfsync != nil {
		return a.shelfsync, nil
	}

	s, err := a.build()
	if err != nil {
		return nil, err
	}
	a.shelfsync = s
	return s, nil
}

// ShelfsyncWithOptions returns a new instance with the configured options
// followed by opts. Later options win.
func (a *App) ShelfsyncWithOptions(opts ...shelfsync.Option) (shelfsync.Shelfsync, error) {
	return a.build(opts...)
}

func (a *App) build(extra ...shelfsync.Option) (shelfsync.Shelfsync, error) {
	source, dest, err := a.endpoints()
	if err != nil {
		return nil, err
	}
	opts, err := a.buildOptions()
	if err != nil {
		return nil, err
	}
	s, err := shelfsync.New(source, dest, append(opts, extra...)...)
	if err != nil {
		return nil, errors.WrapResource("create", "shelfsync", "", err)
	}
	return s, nil
}

// endpoints builds the marketplace and storefront clients from configuration.
func (a *App) endpoints() (sources.Client, storefront.Client, error) {
	source, dest := a.source, a.dest
	if source == nil {
		c, err := poizon.NewClient(a.config.PoizonAPIKey,
			poizon.WithBaseURL(a.config.PoizonBaseURL),
			poizon.WithTimeout(a.config.HTTPTimeout),
		)
		if err != nil {
			return nil, nil, err
		}
		source = c
	}
	if dest == nil {
		c, err := woocommerce.NewClient(a.config.WCURL, a.config.WCConsumerKey, a.config.WCConsumerSecret,
			woocommerce.WithTimeout(a.config.HTTPTimeout),
			woocommerce.WithQueryAuth(a.config.WCQueryAuth),
		)
		if err != nil {
			return nil, nil, err
		}
		dest = c
	}
	return source, dest, nil
}

// buildOptions constructs shelfsync options from the app configuration.
func (a *App) buildOptions() ([]shelfsync.Option, error) {
	rules, err := a.Rules()
	if err != nil {
		return nil, err
	}
	params, rounding := a.Pricing()

	opts := []shelfsync.Option{
		shelfsync.WithRules(rules),
		shelfsync.WithPricing(pricing.NewCalculator(params, pricing.WithRounding(rounding))),
		shelfsync.WithLogger(a.logger),
		shelfsync.WithCollectorOptions(
			collector.WithMaxPages(a.config.MaxPages),
			collector.WithPageSize(a.config.PageSize),
			collector.WithExcludeKids(a.config.ExcludeKids),
			collector.WithGate(pacing.New(a.config.AcceptDelay, a.config.FixedDelays)),
			collector.WithSearchRetry(pacing.Retry{
				Attempts: a.config.SearchAttempts,
				Delay:    a.config.SearchRetryDelay,
			}),
			collector.WithDetailRetry(pacing.Retry{
				Attempts: a.config.DetailAttempts,
				Delay:    a.config.DetailRetryDelay,
			}),
		),
		shelfsync.WithReconcilerOptions(
			reconciler.WithGate(pacing.New(a.config.CarryOverDelay, a.config.FixedDelays)),
		),
	}
	return opts, nil
}

// Shutdown performs graceful shutdown of the application.
func (a *App) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	a.shelfsync = nil
	a.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return errors.WrapResource("shutdown", "app", "", err)
	}
	a.logger.Debug().Msg("Shutdown complete")
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithEndpoints replaces the marketplace and storefront clients
// (useful for testing).
func WithEndpoints(source sources.Client, dest storefront.Client) Option {
	return func(a *App) error {
		a.source = source
		a.dest = dest
		return nil
	}
}
