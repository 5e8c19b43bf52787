package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	ProviderSpoonacular = "spoonacular"
	ProviderSample      = "sample"

	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	AuthModeDev    = "dev"
	AuthModeStatic = "static"

	EnvDevelopment = "development"
)

// AppConfig is the process configuration. Values come from an optional YAML
// file named by CONFIG_FILE, then environment variables override them.
//
// The recipe provider credential is not part of it: the gateway reads
// RECIPE_API_KEY on every call.
type AppConfig struct {
	Port     string `yaml:"port"`
	Env      string `yaml:"env"`
	LogLevel string `yaml:"logLevel"`

	RecipeProvider   string            `yaml:"recipeProvider"`
	RecipeAPIBaseURL string            `yaml:"recipeApiBaseUrl"`
	RecipeAPITimeout time.Duration     `yaml:"recipeApiTimeout"`
	CacheTTL         time.Duration     `yaml:"cacheTTL"`
	CacheMaxEntries  int               `yaml:"cacheMaxEntries"`
	SearchDedupe     bool              `yaml:"searchDedupe"`
	RateLimitRPS     float64           `yaml:"rateLimitRps"`
	RateLimitBurst   int               `yaml:"rateLimitBurst"`
	ClientURL        string            `yaml:"clientUrl"`
	StorageBackend   string            `yaml:"storageBackend"`
	DatabaseURL      string            `yaml:"databaseUrl"`
	AuthMode         string            `yaml:"authMode"`
	AuthIssuer       string            `yaml:"authIssuer"`
	DevSubject       string            `yaml:"devSubject"`
	AuthTokens       map[string]string `yaml:"authTokens"`
	ShutdownTimeout  time.Duration     `yaml:"shutdownTimeout"`
}

// Development reports whether error causes may be exposed to clients.
func (c AppConfig) Development() bool {
	return c.Env == EnvDevelopment
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port:             "8080",
		Env:              "production",
		LogLevel:         "info",
		RecipeProvider:   ProviderSpoonacular,
		RecipeAPIBaseURL: "https://api.spoonacular.com",
		RecipeAPITimeout: 10 * time.Second,
		CacheTTL:         10 * time.Minute,
		CacheMaxEntries:  100,
		RateLimitRPS:     20,
		RateLimitBurst:   40,
		ClientURL:        "http://localhost:5173",
		StorageBackend:   StorageMemory,
		AuthMode:         AuthModeDev,
		AuthIssuer:       "dev",
		DevSubject:       "dev|local",
		ShutdownTimeout:  10 * time.Second,
	}
}

func LoadAppConfigFromEnv() (AppConfig, error) {
	return LoadAppConfig(os.Getenv)
}

// LoadAppConfig builds the configuration from getenv, reading CONFIG_FILE first when set.
func LoadAppConfig(getenv func(string) string) (AppConfig, error) {
	cfg := defaultAppConfig()

	if path := getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return AppConfig{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return AppConfig{}, fmt.Errorf("unmarshal yaml: %w", err)
		}
	}

	var errs []error
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) {
		if v := getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s must be a duration (e.g. 10m): %w", key, err))
				return
			}
			*dst = d
		}
	}
	integer := func(key string, dst *int) {
		if v := getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s must be an integer: %w", key, err))
				return
			}
			*dst = n
		}
	}

	str("PORT", &cfg.Port)
	str("APP_ENV", &cfg.Env)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("RECIPE_PROVIDER", &cfg.RecipeProvider)
	str("RECIPE_API_BASE_URL", &cfg.RecipeAPIBaseURL)
	dur("RECIPE_API_TIMEOUT", &cfg.RecipeAPITimeout)
	dur("CACHE_TTL", &cfg.CacheTTL)
	integer("CACHE_MAX_ENTRIES", &cfg.CacheMaxEntries)
	if v := getenv("SEARCH_DEDUPE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("SEARCH_DEDUPE must be a boolean: %w", err))
		} else {
			cfg.SearchDedupe = b
		}
	}
	if v := getenv("RATE_LIMIT_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("RATE_LIMIT_RPS must be a number: %w", err))
		} else {
			cfg.RateLimitRPS = f
		}
	}
	integer("RATE_LIMIT_BURST", &cfg.RateLimitBurst)
	str("CLIENT_URL", &cfg.ClientURL)
	str("STORAGE_BACKEND", &cfg.StorageBackend)
	str("DATABASE_URL", &cfg.DatabaseURL)
	str("AUTH_MODE", &cfg.AuthMode)
	str("AUTH_ISSUER", &cfg.AuthIssuer)
	str("DEV_SUBJECT", &cfg.DevSubject)
	if v := getenv("AUTH_TOKENS"); v != "" {
		tokens, err := parseTokens(v)
		if err != nil {
			errs = append(errs, err)
		} else {
			cfg.AuthTokens = tokens
		}
	}
	dur("SHUTDOWN_TIMEOUT", &cfg.ShutdownTimeout)

	if err := errors.Join(errs...); err != nil {
		return AppConfig{}, err
	}
	if err := cfg.validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func (c AppConfig) validate() error {
	var errs []error
	switch c.RecipeProvider {
	case ProviderSpoonacular, ProviderSample:
	default:
		errs = append(errs, fmt.Errorf("RECIPE_PROVIDER must be %s or %s, got %q", ProviderSpoonacular, ProviderSample, c.RecipeProvider))
	}
	switch c.StorageBackend {
	case StorageMemory:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when STORAGE_BACKEND=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORAGE_BACKEND must be %s or %s, got %q", StorageMemory, StoragePostgres, c.StorageBackend))
	}
	switch c.AuthMode {
	case AuthModeDev:
	case AuthModeStatic:
		if len(c.AuthTokens) == 0 {
			errs = append(errs, errors.New("AUTH_TOKENS is required when AUTH_MODE=static"))
		}
	default:
		errs = append(errs, fmt.Errorf("AUTH_MODE must be %s or %s, got %q", AuthModeDev, AuthModeStatic, c.AuthMode))
	}
	if c.CacheTTL <= 0 {
		errs = append(errs, errors.New("CACHE_TTL must be positive"))
	}
	if c.CacheMaxEntries <= 0 {
		errs = append(errs, errors.New("CACHE_MAX_ENTRIES must be positive"))
	}
	if c.RecipeAPITimeout <= 0 {
		errs = append(errs, errors.New("RECIPE_API_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

// parseTokens reads "token=subject" pairs separated by commas.
func parseTokens(v string) (map[string]string, error) {
	out := map[string]string{}
	for _, pair := range strings.Split(v, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		tok, sub, ok := strings.Cut(pair, "=")
		tok, sub = strings.TrimSpace(tok), strings.TrimSpace(sub)
		if !ok || tok == "" || sub == "" {
			return nil, errors.New("AUTH_TOKENS entries must look like token=subject")
		}
		out[tok] = sub
	}
	return out, nil
}
