package app

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/shelfsync/pkg/catalogs"
	"github.com/agentstation/shelfsync/pkg/constants"
	pkgerrors "github.com/agentstation/shelfsync/pkg/errors"
	"github.com/agentstation/shelfsync/pkg/pricing"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Source marketplace
	PoizonAPIKey  string
	PoizonBaseURL string

	// Storefront
	WCURL            string
	WCConsumerKey    string
	WCConsumerSecret string
	WCQueryAuth      bool

	HTTPTimeout time.Duration

	// Curation
	Brands         []catalogs.Brand
	BrandRulesFile string
	TargetCount    int
	MaxPages       int
	PageSize       int
	ExcludeKids    bool
	Rank           bool

	// Pacing
	AcceptDelay      time.Duration
	CarryOverDelay   time.Duration
	FixedDelays      bool
	SearchAttempts   int
	SearchRetryDelay time.Duration
	DetailAttempts   int
	DetailRetryDelay time.Duration

	// Pricing
	Pricing  pricing.Params
	Rounding pricing.Rounding

	// Logging configuration
	LogLevel    string // --log-level flag
	EnvLogLevel string // LOG_LEVEL
	LogFormat   string
	LogOutput   string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (path, or .shelfsync.yaml / config.yaml in . or $HOME)
// 5. Defaults
func LoadConfig(path string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	setDefaults(v)

	used, err := readConfigFile(v, path)
	if err != nil {
		return nil, err
	}

	config := &Config{
		// Global flags (may be overridden by cobra flags later)
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no-color"),
		Format:  v.GetString("format"),

		ConfigFile: used,

		PoizonAPIKey:  v.GetString("poizon.api_key"),
		PoizonBaseURL: v.GetString("poizon.base_url"),

		WCURL:            v.GetString("wc.url"),
		WCConsumerKey:    v.GetString("wc.consumer_key"),
		WCConsumerSecret: v.GetString("wc.consumer_secret"),
		WCQueryAuth:      v.GetBool("wc.query_auth"),

		HTTPTimeout: v.GetDuration("http.timeout"),

		BrandRulesFile: v.GetString("brand_rules"),
		TargetCount:    v.GetInt("target_count"),
		MaxPages:       v.GetInt("max_pages"),
		PageSize:       v.GetInt("page_size"),
		ExcludeKids:    v.GetBool("exclude_kids"),
		Rank:           v.GetBool("rank"),

		AcceptDelay:      v.GetDuration("delays.accept"),
		CarryOverDelay:   v.GetDuration("delays.carry_over"),
		FixedDelays:      v.GetBool("delays.fixed"),
		SearchAttempts:   v.GetInt("retry.search_attempts"),
		SearchRetryDelay: v.GetDuration("retry.search_delay"),
		DetailAttempts:   v.GetInt("retry.detail_attempts"),
		DetailRetryDelay: v.GetDuration("retry.detail_delay"),

		Pricing: pricing.Params{
			Mode: pricing.ParseMode(v.GetString("pricing.mode")),
			X:    v.GetInt64("pricing.x"),
			Y:    v.GetInt64("pricing.y"),
			Z:    v.GetInt64("pricing.z"),
		},
		Rounding: pricing.ParseRounding(v.GetString("pricing.rounding")),

		// Logging configuration
		EnvLogLevel: v.GetString("log_level"),
		LogFormat:   v.GetString("log_format"),
		LogOutput:   v.GetString("log_output"),
	}

	if err := v.UnmarshalKey("brands", &config.Brands); err != nil {
		return nil, pkgerrors.NewConfigError("brands", "invalid brand table", err)
	}
	if len(config.Brands) == 0 {
		config.Brands = catalogs.DefaultBrands()
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("poizon.base_url", "https://poizon-api.com/api/poizon-ru/")
	v.SetDefault("http.timeout", constants.DefaultHTTPTimeout)

	v.SetDefault("target_count", constants.DefaultTargetCount)
	v.SetDefault("max_pages", constants.DefaultMaxPages)
	v.SetDefault("page_size", constants.DefaultSearchPageSize)

	v.SetDefault("delays.accept", constants.AcceptPacing)
	v.SetDefault("delays.carry_over", constants.CarryOverPacing)
	v.SetDefault("delays.fixed", false)
	v.SetDefault("retry.search_attempts", constants.SearchRetryAttempts)
	v.SetDefault("retry.search_delay", constants.SearchRetryDelay)
	v.SetDefault("retry.detail_attempts", constants.DetailRetryAttempts)
	v.SetDefault("retry.detail_delay", constants.DetailRetryDelay)

	v.SetDefault("pricing.mode", string(pricing.ModeA))
	v.SetDefault("pricing.rounding", pricing.RoundOnce.String())

	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
}

// readConfigFile reads path, or the first standard config file found.
// A missing standard file is not an error; a missing explicit one is.
func readConfigFile(v *viper.Viper, path string) (string, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return "", pkgerrors.NewConfigError("config", "cannot read "+path, err)
		}
		return v.ConfigFileUsed(), nil
	}

	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	for _, name := range []string{".shelfsync", "config"} {
		v.SetConfigName(name)
		err := v.ReadInConfig()
		if err == nil {
			return v.ConfigFileUsed(), nil
		}
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return "", pkgerrors.NewConfigError("config", "cannot parse config file", err)
		}
	}
	return "", nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// .env.local overrides .env
	envFiles := []string{
		".env.local",
		".env",
	}

	// godotenv.Load never overrides variables that are already set, so
	// the more specific file is loaded first.
	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}
