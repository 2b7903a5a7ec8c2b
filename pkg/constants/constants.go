// Package constants provides shared constants used throughout the shelfsync codebase.
// This includes timeouts, collection limits, retry budgets and pacing intervals
// that must stay consistent between the CLI defaults and the library defaults.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to either remote system
	DefaultHTTPTimeout = 30 * time.Second

	// ShutdownTimeout bounds graceful shutdown after an interrupted run
	ShutdownTimeout = 5 * time.Second
)

// Collection limits for one brand in one run
const (
	// DefaultMaxPages is the maximum number of search pages visited per brand
	DefaultMaxPages = 10

	// DefaultTargetCount is the number of products collected per brand (the top-N bound)
	DefaultTargetCount = 50

	// DefaultSearchPageSize is the fixed page size of source search requests
	DefaultSearchPageSize = 20

	// StorefrontPageSize is the page size used when listing storefront records (API maximum)
	StorefrontPageSize = 100
)

// Retry budgets; delays are fixed and never jittered
const (
	// SearchRetryAttempts is the attempt budget for one search page
	SearchRetryAttempts = 5

	// SearchRetryDelay is the wait between search page attempts
	SearchRetryDelay = 5 * time.Second

	// DetailRetryAttempts is the attempt budget for one product detail fetch
	DetailRetryAttempts = 5

	// DetailRetryDelay is the wait between detail fetch attempts
	DetailRetryDelay = 1 * time.Second
)

// Pacing intervals that respect source-side throttling
const (
	// AcceptPacing is enforced after every product accepted by the collector
	AcceptPacing = 1 * time.Second

	// CarryOverPacing is enforced after every carry-over re-fetch
	CarryOverPacing = 600 * time.Millisecond
)

// Pricing memo settings
const (
	// PriceCacheTTL is how long a memoized price stays valid
	PriceCacheTTL = 1 * time.Hour

	// PriceCacheCleanup is how often expired memo entries are evicted
	PriceCacheCleanup = 10 * time.Minute

	// TaxonomyCacheTTL is how long resolved storefront attribute and category ids are reused
	TaxonomyCacheTTL = 1 * time.Hour
)

// File permission constants define standard Unix file permissions
const (
	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Storefront vocabulary shared by the mapper and the storefront client
const (
	// EUSizeAttribute is the canonical variant attribute key holding the EU size
	EUSizeAttribute = "eu_size"

	// StorefrontSizeAttribute is the storefront's global attribute slug for sizes
	StorefrontSizeAttribute = "pa_eu_size"

	// SourceIDMetaKey is the storefront metadata key holding the source product id
	SourceIDMetaKey = "_poizon_spu_id"
)
