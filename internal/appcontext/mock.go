package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/shelfsync"
	"github.com/agentstation/shelfsync/pkg/brands"
	"github.com/agentstation/shelfsync/pkg/catalogs"
	"github.com/agentstation/shelfsync/pkg/pricing"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	ShelfsyncFunc            func() (shelfsync.Shelfsync, error)
	ShelfsyncWithOptionsFunc func(...shelfsync.Option) (shelfsync.Shelfsync, error)
	BrandsFunc               func() []catalogs.Brand
	RulesFunc                func() (*brands.Rules, error)
	PricingFunc              func() (pricing.Params, pricing.Rounding)
	LoggerFunc               func() *zerolog.Logger
	OutputFormatFunc         func() string
	VersionFunc              func() string
}

var _ Interface = (*Mock)(nil)

// Shelfsync returns an instance using the mock function or nil.
func (m *Mock) Shelfsync() (shelfsync.Shelfsync, error) {
	if m.ShelfsyncFunc != nil {
		return m.ShelfsyncFunc()
	}
	return nil, nil
}

// ShelfsyncWithOptions returns an instance using the mock function, then
// Shelfsync.
func (m *Mock) ShelfsyncWithOptions(opts ...shelfsync.Option) (shelfsync.Shelfsync, error) {
	if m.ShelfsyncWithOptionsFunc != nil {
		return m.ShelfsyncWithOptionsFunc(opts...)
	}
	return m.Shelfsync()
}

// Brands returns brands using the mock function or the default table.
func (m *Mock) Brands() []catalogs.Brand {
	if m.BrandsFunc != nil {
		return m.BrandsFunc()
	}
	return catalogs.DefaultBrands()
}

// Rules returns rules using the mock function or the default rules.
func (m *Mock) Rules() (*brands.Rules, error) {
	if m.RulesFunc != nil {
		return m.RulesFunc()
	}
	return brands.Default(), nil
}

// Pricing returns pricing using the mock function or mode A, round once.
func (m *Mock) Pricing() (pricing.Params, pricing.Rounding) {
	if m.PricingFunc != nil {
		return m.PricingFunc()
	}
	return pricing.Params{Mode: pricing.ModeA}, pricing.RoundOnce
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns "unknown".
func (m *Mock) Commit() string {
	return "unknown"
}

// Date returns "unknown".
func (m *Mock) Date() string {
	return "unknown"
}

// BuiltBy returns "unknown".
func (m *Mock) BuiltBy() string {
	return "unknown"
}
