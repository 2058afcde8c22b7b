package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	defaultEnvFile         = ".env"
	defaultPort            = "8080"
	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultIdleTimeout     = 120 * time.Second
	defaultShutdownTimeout = 20 * time.Second
	defaultListTTL         = 30 * time.Second
	defaultItemTTL         = 90 * time.Second
	defaultPageSize        = 12
	defaultMaxPageSize     = 100
	defaultLookupWorkers   = 8
	defaultTokenIssuer     = "praxiscommerce"
	defaultProductsColl    = "products"
	defaultTargetsColl     = "productAudienceTargets"
	defaultAccountsColl    = "accounts"
	defaultMembershipsColl = "memberships"
	defaultAffiliatesColl  = "affiliateProfiles"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server    ServerConfig
	Firestore FirestoreConfig
	Cache     CacheConfig
	Auth      AuthConfig
	Catalog   CatalogConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// FirestoreConfig stores database parameters and collection names.
type FirestoreConfig struct {
	ProjectID    string
	EmulatorHost string
	Products     string
	Targets      string
	Accounts     string
	Memberships  string
	Affiliates   string
}

// CacheConfig controls cache entry lifetimes.
type CacheConfig struct {
	ListTTL time.Duration
	ItemTTL time.Duration
}

// AuthConfig controls bearer token verification.
type AuthConfig struct {
	JWTSecret string
	Issuer    string
}

// CatalogConfig holds catalog resolution defaults.
type CatalogConfig struct {
	DefaultPageSize int
	MaxPageSize     int
	LookupWorkers   int
}

// ValidationError is returned when required configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from os.Getenv, relying only on provided maps and .env files.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the application configuration by combining defaults, .env overrides,
// and environment variables.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}

	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	cfg := Config{
		Server: ServerConfig{
			Port:            stringWithDefault(lookup, "CATALOG_SERVER_PORT", defaultPort),
			ReadTimeout:     durationWithDefault(lookup, "CATALOG_SERVER_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout:    durationWithDefault(lookup, "CATALOG_SERVER_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:     durationWithDefault(lookup, "CATALOG_SERVER_IDLE_TIMEOUT", defaultIdleTimeout),
			ShutdownTimeout: durationWithDefault(lookup, "CATALOG_SERVER_SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		},
		Firestore: FirestoreConfig{
			ProjectID:    stringWithDefault(lookup, "CATALOG_FIRESTORE_PROJECT_ID", ""),
			EmulatorHost: stringWithDefault(lookup, "CATALOG_FIRESTORE_EMULATOR_HOST", ""),
			Products:     stringWithDefault(lookup, "CATALOG_FIRESTORE_PRODUCTS_COLLECTION", defaultProductsColl),
			Targets:      stringWithDefault(lookup, "CATALOG_FIRESTORE_TARGETS_COLLECTION", defaultTargetsColl),
			Accounts:     stringWithDefault(lookup, "CATALOG_FIRESTORE_ACCOUNTS_COLLECTION", defaultAccountsColl),
			Memberships:  stringWithDefault(lookup, "CATALOG_FIRESTORE_MEMBERSHIPS_COLLECTION", defaultMembershipsColl),
			Affiliates:   stringWithDefault(lookup, "CATALOG_FIRESTORE_AFFILIATES_COLLECTION", defaultAffiliatesColl),
		},
		Cache: CacheConfig{
			ListTTL: durationWithDefault(lookup, "CATALOG_CACHE_LIST_TTL", defaultListTTL),
			ItemTTL: durationWithDefault(lookup, "CATALOG_CACHE_ITEM_TTL", defaultItemTTL),
		},
		Auth: AuthConfig{
			JWTSecret: stringWithDefault(lookup, "CATALOG_AUTH_JWT_SECRET", ""),
			Issuer:    stringWithDefault(lookup, "CATALOG_AUTH_ISSUER", defaultTokenIssuer),
		},
		Catalog: CatalogConfig{
			DefaultPageSize: intWithDefault(lookup, "CATALOG_DEFAULT_PAGE_SIZE", defaultPageSize),
			MaxPageSize:     intWithDefault(lookup, "CATALOG_MAX_PAGE_SIZE", defaultMaxPageSize),
			LookupWorkers:   intWithDefault(lookup, "CATALOG_LOOKUP_WORKERS", defaultLookupWorkers),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func validateConfig(cfg Config) error {
	var missing []string

	if cfg.Server.Port == "" {
		missing = append(missing, "Server.Port")
	}
	if cfg.Firestore.ProjectID == "" {
		missing = append(missing, "Firestore.ProjectID")
	}
	if cfg.Auth.JWTSecret == "" {
		missing = append(missing, "Auth.JWTSecret")
	}
	if cfg.Cache.ListTTL <= 0 {
		missing = append(missing, "Cache.ListTTL")
	}
	if cfg.Cache.ItemTTL <= 0 {
		missing = append(missing, "Cache.ItemTTL")
	}
	if cfg.Catalog.DefaultPageSize <= 0 {
		missing = append(missing, "Catalog.DefaultPageSize")
	}
	if cfg.Catalog.MaxPageSize < cfg.Catalog.DefaultPageSize {
		missing = append(missing, "Catalog.MaxPageSize")
	}
	if cfg.Catalog.LookupWorkers <= 0 {
		missing = append(missing, "Catalog.LookupWorkers")
	}

	if len(missing) > 0 {
		return &ValidationError{fields: missing}
	}
	return nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "export ") {
			line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" {
			continue
		}
		value = strings.Trim(value, "\"'")
		values[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && value != "" {
		return value
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return fallback
}

func intWithDefault(lookup func(string) (string, bool), key string, fallback int) int {
	if value, ok := lookup(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
