// Package config loads the fandnsd configuration from defaults,
// FDNS_-prefixed environment variables, and command-line flags, in that
// order of precedence (flags win).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// AppConfig holds the fandnsd runtime configuration.
type AppConfig struct {
	// Port is the UDP port the server binds to.
	Port int `koanf:"port" validate:"required,gte=1,lte=65535"`

	// Resolver is the upstream resolver address (host:port). When set, the
	// server forwards each question upstream instead of answering locally.
	Resolver string `koanf:"resolver" validate:"omitempty,hostname_port"`

	// RecordsDir is an optional directory of static record files backing
	// local synthesis.
	RecordsDir string `koanf:"records_dir" validate:"omitempty,dir"`

	// CacheSize bounds the forwarded-answer cache.
	CacheSize uint `koanf:"cache_size" validate:"gte=1"`

	// DisableCache turns the forwarded-answer cache off entirely.
	DisableCache bool `koanf:"disable_cache"`

	// UpstreamTimeout bounds each forwarded sub-query round trip.
	UpstreamTimeout time.Duration `koanf:"upstream_timeout" validate:"gt=0"`

	// SynthAddress is the IPv4 address placed in synthesized answers when a
	// question misses the static record table.
	SynthAddress string `koanf:"synth_address" validate:"required,ipv4"`

	// SynthTTL is the TTL in seconds for synthesized fallback answers.
	SynthTTL uint32 `koanf:"synth_ttl" validate:"gte=1"`

	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel controls log verbosity.
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`
}

// ForwardingMode reports whether an upstream resolver is configured.
func (c *AppConfig) ForwardingMode() bool {
	return c.Resolver != ""
}

// envLoader loads FDNS_-prefixed environment variables, lowercasing keys
// and stripping the prefix. Replaceable in tests.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: "FDNS_",
		TransformFunc: func(key, value string) (string, any) {
			return strings.ToLower(strings.TrimPrefix(key, "FDNS_")), value
		},
	}), nil)
}

// NewFlagSet returns the fandnsd command-line flag set.
func NewFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("fandnsd", pflag.ContinueOnError)
	fs.String("resolver", "", "upstream resolver address (host:port); enables forwarding mode")
	fs.Int("port", 0, "UDP port to listen on")
	fs.String("records", "", "directory of static record files")
	fs.String("log-level", "", "log verbosity (debug, info, warn, or error)")
	return fs
}

// Load builds the configuration from defaults, environment, and the given
// command-line arguments, then validates it.
func Load(args []string) (*AppConfig, error) {
	k := koanf.New(".")

	// Defaults first, via the structs provider.
	k.Load(structs.Provider(AppConfig{
		Port:            2053,
		CacheSize:       1024,
		UpstreamTimeout: 5 * time.Second,
		SynthAddress:    "127.0.0.1",
		SynthTTL:        300,
		Env:             "prod",
		LogLevel:        "info",
	}, "koanf"), nil)

	if err := envLoader(k); err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Explicitly set flags override everything beneath them.
	fs := NewFlagSet()
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}
	if fs.Changed("resolver") {
		cfg.Resolver, _ = fs.GetString("resolver")
	}
	if fs.Changed("port") {
		cfg.Port, _ = fs.GetInt("port")
	}
	if fs.Changed("records") {
		cfg.RecordsDir, _ = fs.GetString("records")
	}
	if fs.Changed("log-level") {
		cfg.LogLevel, _ = fs.GetString("log-level")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return &cfg, nil
}
