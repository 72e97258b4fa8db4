package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/SscSPs/million_tracker/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Ledger source kinds.
const (
	LedgerSourceSheets = "sheets"
	LedgerSourceCSV    = "csv"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// Ledger
	LedgerSource          string
	GoogleCredentialsFile string
	SpreadsheetID         string
	WorksheetName         string
	LedgerCSVPath         string
	LedgerCacheTTL        time.Duration

	// Exchange rates
	RatesAPIURL      string
	RatesCacheTTL    time.Duration
	RatesHTTPTimeout time.Duration
	RedisAddr        string
	RedisPassword    string
	DatabaseURL      string
	EnableDBCheck    bool

	// Pipeline policies
	UnsupportedCurrencyPolicy domain.UnsupportedCurrencyPolicy
	ConversionPolicy          domain.ConversionPolicy
	ValuationSource           domain.ValuationSource
	GoalTargetUSD             decimal.Decimal

	// Auth
	JWTSecret             string
	JWTExpiryDuration     time.Duration
	JWTIssuer             string
	DashboardUsername     string
	DashboardPasswordHash string

	// HTTP
	FrontendBaseURL string
	RateLimit       string
	LoginRateLimit  string
}

// AuthEnabled reports whether owner credentials are configured.
func (c *Config) AuthEnabled() bool { return c.DashboardPasswordHash != "" }

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	// Actual environment variables override defaults and .env values.
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LEDGER_SOURCE", LedgerSourceSheets)
	v.SetDefault("GOOGLE_CREDENTIALS_FILE", "cred/service-account.json")
	v.SetDefault("SPREADSHEET_ID", "")
	v.SetDefault("WORKSHEET_NAME", "database")
	v.SetDefault("LEDGER_CSV_PATH", "")
	v.SetDefault("LEDGER_CACHE_TTL", "5m")
	v.SetDefault("RATES_API_URL", "https://api.exchangerate-api.com/v4/latest/USD")
	v.SetDefault("RATES_CACHE_TTL", "5m")
	v.SetDefault("RATES_HTTP_TIMEOUT", "10s")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("UNSUPPORTED_CURRENCY_POLICY", string(domain.DropUnsupported))
	v.SetDefault("CONVERSION_POLICY", string(domain.TolerantConversion))
	v.SetDefault("VALUATION_SOURCE", string(domain.ValueWithRates))
	v.SetDefault("GOAL_TARGET_USD", domain.DefaultGoalTarget.String())
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", "million-tracker")
	v.SetDefault("DASHBOARD_USERNAME", "owner")
	v.SetDefault("DASHBOARD_PASSWORD_HASH", "")
	v.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT", "120-M")
	v.SetDefault("LOGIN_RATE_LIMIT", "5-M")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:                  v.GetString("PORT"),
		IsProduction:          v.GetBool("IS_PRODUCTION"),
		LedgerSource:          strings.ToLower(strings.TrimSpace(v.GetString("LEDGER_SOURCE"))),
		GoogleCredentialsFile: v.GetString("GOOGLE_CREDENTIALS_FILE"),
		SpreadsheetID:         v.GetString("SPREADSHEET_ID"),
		WorksheetName:         v.GetString("WORKSHEET_NAME"),
		LedgerCSVPath:         v.GetString("LEDGER_CSV_PATH"),
		RatesAPIURL:           v.GetString("RATES_API_URL"),
		RedisAddr:             v.GetString("REDIS_ADDR"),
		RedisPassword:         v.GetString("REDIS_PASSWORD"),
		DatabaseURL:           v.GetString("PGSQL_URL"),
		EnableDBCheck:         v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:             v.GetString("JWT_SECRET"),
		JWTIssuer:             v.GetString("JWT_ISSUER"),
		DashboardUsername:     v.GetString("DASHBOARD_USERNAME"),
		DashboardPasswordHash: v.GetString("DASHBOARD_PASSWORD_HASH"),
		FrontendBaseURL:       v.GetString("FRONTEND_BASE_URL"),
		RateLimit:             v.GetString("RATE_LIMIT"),
		LoginRateLimit:        v.GetString("LOGIN_RATE_LIMIT"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.LedgerCacheTTL = durationOr(v, "LEDGER_CACHE_TTL", 5*time.Minute)
	cfg.RatesCacheTTL = durationOr(v, "RATES_CACHE_TTL", 5*time.Minute)
	cfg.RatesHTTPTimeout = durationOr(v, "RATES_HTTP_TIMEOUT", 10*time.Second)
	cfg.JWTExpiryDuration = durationOr(v, "JWT_EXPIRY_DURATION", time.Hour)

	var err error
	switch cfg.LedgerSource {
	case LedgerSourceSheets:
		if cfg.SpreadsheetID == "" {
			log.Println("Warning: SPREADSHEET_ID not set. Ledger requests will fail.")
		}
	case LedgerSourceCSV:
		if cfg.LedgerCSVPath == "" {
			return nil, fmt.Errorf("LEDGER_CSV_PATH is required when LEDGER_SOURCE=%s", LedgerSourceCSV)
		}
	default:
		return nil, fmt.Errorf("invalid LEDGER_SOURCE %q: want %q or %q", cfg.LedgerSource, LedgerSourceSheets, LedgerSourceCSV)
	}

	if cfg.UnsupportedCurrencyPolicy, err = domain.ParseUnsupportedCurrencyPolicy(v.GetString("UNSUPPORTED_CURRENCY_POLICY")); err != nil {
		return nil, err
	}
	if cfg.ConversionPolicy, err = domain.ParseConversionPolicy(v.GetString("CONVERSION_POLICY")); err != nil {
		return nil, err
	}
	if cfg.ValuationSource, err = domain.ParseValuationSource(v.GetString("VALUATION_SOURCE")); err != nil {
		return nil, err
	}

	target, err := decimal.NewFromString(v.GetString("GOAL_TARGET_USD"))
	if err != nil || !target.IsPositive() {
		log.Printf("Warning: Invalid value for GOAL_TARGET_USD ('%s'). Defaulting to %s.\n", v.GetString("GOAL_TARGET_USD"), domain.DefaultGoalTarget)
		target = domain.DefaultGoalTarget
	}
	cfg.GoalTargetUSD = target

	if !cfg.AuthEnabled() {
		log.Println("Warning: DASHBOARD_PASSWORD_HASH not set. The API is served without authentication.")
	} else if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	return cfg, nil
}

func durationOr(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}
