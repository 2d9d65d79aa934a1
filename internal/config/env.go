package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/abureyko/shipping-agent/internal/config/tracking"
	"github.com/abureyko/shipping-agent/internal/schema"
	"github.com/abureyko/shipping-agent/internal/shared/stringutils"
)

// Environment variables recognised by ApplyEnv.
const (
	EnvTrackingAPIKey       = "TRACKING_API_KEY"
	EnvTrackingAPIURL       = "TRACKING_API_URL"
	EnvTrackingPathTemplate = "TRACKING_PATH_TEMPLATE"
	EnvTrackingSourceName   = "TRACKING_SOURCE_NAME"
	EnvTrackingTimeout      = "TRACKING_TIMEOUT"
	EnvDefaultTransitDays   = "DEFAULT_TRANSIT_DAYS"
	EnvCarrierTransitDays   = "CARRIER_TRANSIT_DAYS"
	EnvSupportedCarriers    = "SUPPORTED_CARRIERS"
	EnvEstimateFallback     = "ESTIMATE_FALLBACK_ON_ERROR"
	EnvWatchSchedule        = "WATCH_SCHEDULE"
	EnvLLMAPIKey            = "LLM_API_KEY"
	EnvLLMProvider          = "LLM_PROVIDER"
	EnvLLMModel             = "LLM_MODEL"
	EnvLLMAPIBase           = "LLM_API_BASE"
	EnvAzureDeployment      = "AZURE_OPENAI_DEPLOYMENT"
	EnvHost                 = "HOST"
	EnvPort                 = "PORT"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// LoadDotEnv loads variables from .env files (default: ./.env) without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			slog.Warn("failed to load env file", "path", p, "err", err)
		}
	}
}

// ApplyEnv overrides cfg fields from environment variables. Malformed values
// are reported together as one error; a malformed carrier transit-days
// mapping is an error rather than being ignored.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	var errs []error
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	str(EnvTrackingAPIKey, &cfg.Tracking.APIKey)
	str(EnvTrackingAPIURL, &cfg.Tracking.BaseURL)
	str(EnvTrackingPathTemplate, &cfg.Tracking.PathTemplate)
	str(EnvTrackingSourceName, &cfg.Tracking.SourceName)
	str(EnvWatchSchedule, &cfg.Tracking.WatchSchedule)
	str(EnvLLMAPIKey, &cfg.LLM.APIKey)
	str(EnvLLMProvider, &cfg.LLM.Provider)
	str(EnvLLMModel, &cfg.LLM.Model)
	str(EnvLLMAPIBase, &cfg.LLM.APIBase)
	str(EnvAzureDeployment, &cfg.LLM.Deployment)
	str(EnvHost, &cfg.Server.Host)

	if v, ok := lookup(EnvTrackingTimeout); ok && v != "" {
		secs, err := parseSeconds(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvTrackingTimeout, err))
		} else {
			cfg.Tracking.Timeout = secs
		}
	}
	if v, ok := lookup(EnvDefaultTransitDays); ok && v != "" {
		days, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || days < 0 {
			errs = append(errs, fmt.Errorf("%s: invalid day count %q", EnvDefaultTransitDays, v))
		} else {
			cfg.Tracking.DefaultTransitDays = days
		}
	}
	if v, ok := lookup(EnvCarrierTransitDays); ok && v != "" {
		m, err := tracking.ParseTransitDays(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvCarrierTransitDays, err))
		} else {
			cfg.Tracking.CarrierTransitDays = m
		}
	}
	if v, ok := lookup(EnvSupportedCarriers); ok && v != "" {
		cfg.Tracking.SupportedCarriers = stringutils.SplitCSV(v)
	}
	if v, ok := lookup(EnvEstimateFallback); ok && v != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvEstimateFallback, err))
		} else {
			cfg.Tracking.EstimateFallbackOnError = b
		}
	}
	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || port <= 0 || port > 65535 {
			errs = append(errs, fmt.Errorf("%s: invalid port %q", EnvPort, v))
		} else {
			cfg.Server.Port = port
		}
	}

	if len(errs) > 0 {
		return schema.NewToolError(schema.CodeEnvValidation, errors.Join(errs...).Error(), errors.Join(errs...))
	}
	return nil
}

// parseSeconds accepts a Go duration ("20s", "1m") or a plain number of seconds.
func parseSeconds(v string) (float64, error) {
	v = strings.TrimSpace(v)
	if d, err := time.ParseDuration(v); err == nil {
		return d.Seconds(), nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("invalid timeout %q", v)
	}
	return f, nil
}

// RequireEnv checks that every named variable is set and non-empty. The
// returned error is a ToolError with code env_validation naming every
// missing variable.
func RequireEnv(names ...string) (map[string]string, error) {
	return requireEnv(os.LookupEnv, names...)
}

func requireEnv(lookup LookupFunc, names ...string) (map[string]string, error) {
	out := make(map[string]string, len(names))
	var missing []string
	for _, n := range names {
		v, ok := lookup(n)
		if !ok || v == "" {
			missing = append(missing, n)
			continue
		}
		out[n] = v
	}
	if len(missing) > 0 {
		return nil, schema.NewToolError(schema.CodeEnvValidation,
			"missing required environment variables: "+strings.Join(missing, ", "), nil)
	}
	return out, nil
}
