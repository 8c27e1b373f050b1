package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/nhl-due-tracker/internal/platform/calendar"
	"github.com/riskibarqy/nhl-due-tracker/internal/platform/logging"
)

// Config stores runtime configuration for the tracker.
type Config struct {
	AppEnv         string `validate:"oneof=dev stage prod"`
	ServiceName    string `validate:"required"`
	ServiceVersion string `validate:"required"`
	LogLevel       logging.Level
	LogFormat      string `validate:"oneof=json console"`

	NHLStatsBaseURL          string        `validate:"required,url"`
	NHLRestBaseURL           string        `validate:"required,url"`
	NHLTimeout               time.Duration `validate:"gt=0"`
	NHLMaxRetries            int           `validate:"gte=0,lte=10"`
	NHLRetryInitialInterval  time.Duration `validate:"gt=0"`
	NHLCircuitEnabled        bool
	NHLCircuitFailureCount   int           `validate:"gte=1"`
	NHLCircuitOpenTimeout    time.Duration `validate:"gt=0"`
	NHLCircuitHalfOpenMaxReq int           `validate:"gte=1"`

	CacheEnabled       bool
	CacheTTL           time.Duration `validate:"gt=0"`
	CacheRedisAddr     string        `validate:"omitempty,hostname_port"`
	CacheRedisPassword string
	CacheRedisDB       int `validate:"gte=0"`

	DueMinGoals   int `validate:"gte=1"`
	DueEvalDate   time.Time
	DueMaxWorkers int `validate:"gte=1,lte=64"`

	ReportFormat string `validate:"oneof=text json"`

	UptraceEnabled bool
	UptraceDSN     string `validate:"required_if=UptraceEnabled true"`
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        strings.TrimSpace(getEnv("APP_SERVICE_NAME", "nhl-due-tracker")),
		ServiceVersion:     strings.TrimSpace(getEnv("APP_SERVICE_VERSION", "dev")),
		LogLevel:           logging.ParseLevel(getEnv("APP_LOG_LEVEL", "warn")),
		LogFormat:          strings.ToLower(strings.TrimSpace(getEnv("APP_LOG_FORMAT", logging.FormatJSON))),
		NHLStatsBaseURL:    strings.TrimSpace(getEnv("NHL_STATS_BASE_URL", "https://statsapi.web.nhl.com/api/v1")),
		NHLRestBaseURL:     strings.TrimSpace(getEnv("NHL_REST_BASE_URL", "https://api.nhle.com/stats/rest/en")),
		CacheRedisAddr:     strings.TrimSpace(getEnv("CACHE_REDIS_ADDR", "")),
		CacheRedisPassword: getEnv("CACHE_REDIS_PASSWORD", ""),
		ReportFormat:       strings.ToLower(strings.TrimSpace(getEnv("REPORT_FORMAT", "text"))),
	}

	if cfg.NHLTimeout, err = time.ParseDuration(getEnv("NHL_TIMEOUT", "20s")); err != nil {
		return Config{}, fmt.Errorf("parse NHL_TIMEOUT: %w", err)
	}
	if cfg.NHLMaxRetries, err = getEnvAsInt("NHL_MAX_RETRIES", 3); err != nil {
		return Config{}, fmt.Errorf("parse NHL_MAX_RETRIES: %w", err)
	}
	if cfg.NHLRetryInitialInterval, err = time.ParseDuration(getEnv("NHL_RETRY_INITIAL_INTERVAL", "1s")); err != nil {
		return Config{}, fmt.Errorf("parse NHL_RETRY_INITIAL_INTERVAL: %w", err)
	}
	if cfg.NHLCircuitEnabled, err = strconv.ParseBool(getEnv("NHL_CIRCUIT_ENABLED", "true")); err != nil {
		return Config{}, fmt.Errorf("parse NHL_CIRCUIT_ENABLED: %w", err)
	}
	if cfg.NHLCircuitFailureCount, err = getEnvAsInt("NHL_CIRCUIT_FAILURE_COUNT", 5); err != nil {
		return Config{}, fmt.Errorf("parse NHL_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if cfg.NHLCircuitOpenTimeout, err = time.ParseDuration(getEnv("NHL_CIRCUIT_OPEN_TIMEOUT", "15s")); err != nil {
		return Config{}, fmt.Errorf("parse NHL_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if cfg.NHLCircuitHalfOpenMaxReq, err = getEnvAsInt("NHL_CIRCUIT_HALF_OPEN_MAX_REQ", 2); err != nil {
		return Config{}, fmt.Errorf("parse NHL_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}

	if cfg.CacheEnabled, err = strconv.ParseBool(getEnv("CACHE_ENABLED", "true")); err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	if cfg.CacheTTL, err = time.ParseDuration(getEnv("CACHE_TTL", "10m")); err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cfg.CacheRedisDB, err = getEnvAsInt("CACHE_REDIS_DB", 0); err != nil {
		return Config{}, fmt.Errorf("parse CACHE_REDIS_DB: %w", err)
	}

	if cfg.DueMinGoals, err = getEnvAsInt("DUE_MIN_GOALS", 40); err != nil {
		return Config{}, fmt.Errorf("parse DUE_MIN_GOALS: %w", err)
	}
	if cfg.DueEvalDate, err = parseEvalDate(getEnv("DUE_EVAL_DATE", "")); err != nil {
		return Config{}, err
	}
	if cfg.DueMaxWorkers, err = getEnvAsInt("DUE_MAX_WORKERS", 1); err != nil {
		return Config{}, fmt.Errorf("parse DUE_MAX_WORKERS: %w", err)
	}

	if cfg.UptraceEnabled, err = strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false")); err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	cfg.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var configValidator = validator.New()

// Validate reports the first invalid field using its environment variable name.
func (c Config) Validate() error {
	err := configValidator.Struct(c)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(fieldErrs) == 0 {
		return fmt.Errorf("validate config: %w", err)
	}

	fe := fieldErrs[0]
	name := envName(fe.StructField())
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", name)
	case "required_if":
		return fmt.Errorf("%s is required when %s", name, envCondition(fe.Param()))
	case "gt":
		return fmt.Errorf("%s must be > %s", name, fe.Param())
	case "gte":
		return fmt.Errorf("%s must be >= %s", name, fe.Param())
	case "lte":
		return fmt.Errorf("%s must be <= %s", name, fe.Param())
	case "oneof":
		return fmt.Errorf("invalid %s %q: valid values are %s", name, fe.Value(), strings.Join(strings.Fields(fe.Param()), ", "))
	default:
		return fmt.Errorf("invalid %s %q: failed %s validation", name, fe.Value(), fe.Tag())
	}
}

var envNames = map[string]string{
	"AppEnv":                   "APP_ENV",
	"ServiceName":              "APP_SERVICE_NAME",
	"ServiceVersion":           "APP_SERVICE_VERSION",
	"LogFormat":                "APP_LOG_FORMAT",
	"NHLStatsBaseURL":          "NHL_STATS_BASE_URL",
	"NHLRestBaseURL":           "NHL_REST_BASE_URL",
	"NHLTimeout":               "NHL_TIMEOUT",
	"NHLMaxRetries":            "NHL_MAX_RETRIES",
	"NHLRetryInitialInterval":  "NHL_RETRY_INITIAL_INTERVAL",
	"NHLCircuitFailureCount":   "NHL_CIRCUIT_FAILURE_COUNT",
	"NHLCircuitOpenTimeout":    "NHL_CIRCUIT_OPEN_TIMEOUT",
	"NHLCircuitHalfOpenMaxReq": "NHL_CIRCUIT_HALF_OPEN_MAX_REQ",
	"CacheTTL":                 "CACHE_TTL",
	"CacheRedisAddr":           "CACHE_REDIS_ADDR",
	"CacheRedisDB":             "CACHE_REDIS_DB",
	"DueMinGoals":              "DUE_MIN_GOALS",
	"DueMaxWorkers":            "DUE_MAX_WORKERS",
	"ReportFormat":             "REPORT_FORMAT",
	"UptraceEnabled":           "UPTRACE_ENABLED",
	"UptraceDSN":               "UPTRACE_DSN",
}

func envName(field string) string {
	if name, ok := envNames[field]; ok {
		return name
	}
	return field
}

// envCondition renders a required_if param such as "UptraceEnabled true" as UPTRACE_ENABLED=true.
func envCondition(param string) string {
	parts := strings.Fields(param)
	if len(parts) != 2 {
		return param
	}
	return envName(parts[0]) + "=" + parts[1]
}

// parseEvalDate accepts an empty value, meaning today, or a YYYY-MM-DD date.
func parseEvalDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse(calendar.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse DUE_EVAL_DATE: expected YYYY-MM-DD, got %q", raw)
	}
	return calendar.Date(parsed), nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
