package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/telecom-usage-monitor/internal/domain"
	"github.com/spf13/viper"
)

const (
	KeyAccounts      = "accounts"
	KeyBatchSize     = "batch_size"
	KeyFluxPackage   = "flux_package"
	KeyAPIBaseURL    = "carrier.api_base_url"
	KeyLoginBaseURL  = "carrier.login_base_url"
	KeyRSAPublicKey  = "carrier.rsa_public_key"
	KeyHTTPTimeout   = "carrier.timeout"
	KeyLogLevel      = "log.level"
	KeyLogFormat     = "log.format"
	KeyMetricsFile   = "metrics_file"
	DefaultBatchSize = 1
	MaxBatchSize     = 2
	DefaultStatePath = "telecom_state.toml"
	LegacyStatePath  = "telecom_config.json"
	defaultAPIBase   = "https://appfuwu.189.cn:9021"
	defaultLoginBase = "https://appgologin.189.cn:9031"
	defaultTimeout   = "30s"
)

var envBindings = map[string]string{
	KeyAccounts:     "TELECOM_USER",
	KeyBatchSize:    "TELECOM_BATCH_SIZE",
	KeyFluxPackage:  "TELECOM_FLUX_PACKAGE",
	KeyAPIBaseURL:   "TELECOM_API_BASE_URL",
	KeyLoginBaseURL: "TELECOM_LOGIN_BASE_URL",
	KeyRSAPublicKey: "TELECOM_RSA_PUBLIC_KEY",
	KeyHTTPTimeout:  "TELECOM_HTTP_TIMEOUT",
	KeyLogLevel:     "TELECOM_LOG_LEVEL",
	KeyLogFormat:    "TELECOM_LOG_FORMAT",
	KeyMetricsFile:  "TELECOM_METRICS_FILE",
}

type Config struct {
	Accounts             string
	BatchSize            int
	IncludeAddOnPackages bool
	Carrier              CarrierConfig
	Log                  LogConfig
	MetricsFile          string
	// Warnings lists fallbacks applied while validating; callers log them.
	Warnings []string
}

type CarrierConfig struct {
	APIBaseURL   string
	LoginBaseURL string
	RSAPublicKey string
	Timeout      time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// Bind registers defaults and environment variable names on v.
func Bind(v *viper.Viper) error {
	v.SetDefault(KeyAPIBaseURL, defaultAPIBase)
	v.SetDefault(KeyLoginBaseURL, defaultLoginBase)
	v.SetDefault(KeyHTTPTimeout, defaultTimeout)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s: %w", env, err)
		}
	}

	return nil
}

// Load reads and validates the configuration. It does not require an
// account source; see RequireAccounts.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Accounts:             strings.TrimSpace(v.GetString(KeyAccounts)),
		IncludeAddOnPackages: ParseIncludeAddOnPackages(v.GetString(KeyFluxPackage)),
		Carrier: CarrierConfig{
			APIBaseURL:   strings.TrimRight(v.GetString(KeyAPIBaseURL), "/"),
			LoginBaseURL: strings.TrimRight(v.GetString(KeyLoginBaseURL), "/"),
			RSAPublicKey: v.GetString(KeyRSAPublicKey),
		},
		Log: LogConfig{
			Level:  v.GetString(KeyLogLevel),
			Format: v.GetString(KeyLogFormat),
		},
		MetricsFile: v.GetString(KeyMetricsFile),
	}

	batchSize, warning := ParseBatchSize(v.GetString(KeyBatchSize))
	cfg.BatchSize = batchSize
	if warning != "" {
		cfg.Warnings = append(cfg.Warnings, warning)
	}

	timeout, err := time.ParseDuration(v.GetString(KeyHTTPTimeout))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", envBindings[KeyHTTPTimeout], err)
	}
	if timeout <= 0 {
		return Config{}, fmt.Errorf("invalid %s: must be positive", envBindings[KeyHTTPTimeout])
	}
	cfg.Carrier.Timeout = timeout

	if cfg.Carrier.APIBaseURL == "" || cfg.Carrier.LoginBaseURL == "" {
		return Config{}, fmt.Errorf("carrier base urls must not be empty")
	}

	return cfg, nil
}

// RequireAccounts fails when no account source was configured.
func (c Config) RequireAccounts() error {
	if c.Accounts == "" {
		return fmt.Errorf("%w: set %s", domain.ErrNoAccountSource, envBindings[KeyAccounts])
	}
	return nil
}

// ParseBatchSize accepts 1 or 2. Anything else falls back to 1 with a
// warning; larger batches exceed notification channel payload limits.
func ParseBatchSize(raw string) (int, string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return DefaultBatchSize, ""
	}

	size, err := strconv.Atoi(trimmed)
	if err != nil {
		return DefaultBatchSize, fmt.Sprintf("batch size %q is not an integer, using %d", raw, DefaultBatchSize)
	}
	if size < DefaultBatchSize || size > MaxBatchSize {
		return DefaultBatchSize, fmt.Sprintf("batch size %d is not supported (notification payload limit allows 1 or 2), using %d", size, DefaultBatchSize)
	}

	return size, ""
}

// ParseIncludeAddOnPackages is false only for a case-insensitive "false".
func ParseIncludeAddOnPackages(raw string) bool {
	return !strings.EqualFold(raw, "false")
}
