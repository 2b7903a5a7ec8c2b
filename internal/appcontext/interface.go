// Package appcontext provides the shared application context interface
// used by all commands. Commands accept it rather than the concrete App so
// they can be tested with a Mock.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/shelfsync"
	"github.com/agentstation/shelfsync/pkg/brands"
	"github.com/agentstation/shelfsync/pkg/catalogs"
	"github.com/agentstation/shelfsync/pkg/pricing"
)

// Interface defines the application context that commands need.
type Interface interface {
	// Shelfsync returns the default instance built from configuration,
	// creating it lazily.
	Shelfsync() (shelfsync.Shelfsync, error)

	// ShelfsyncWithOptions creates a new instance with extra options
	// applied after the configured ones.
	ShelfsyncWithOptions(...shelfsync.Option) (shelfsync.Shelfsync, error)

	// Brands returns the configured brand table.
	Brands() []catalogs.Brand

	// Rules returns the configured brand rules.
	Rules() (*brands.Rules, error)

	// Pricing returns the configured pricing parameters and rounding.
	Pricing() (pricing.Params, pricing.Rounding)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
