// Package config loads driftpath settings from a YAML file.
//
// A file only needs the keys it changes: Load decodes on top of
// DefaultConfig and validates the merged result. Unknown keys are rejected
// so that typos surface instead of silently keeping a default.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/driftpath/astar"
	"github.com/katalvlaran/driftpath/occupancy"
	"github.com/katalvlaran/driftpath/waypoint"
)

// VariantBoth selects every route variant.
const VariantBoth = "both"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config is the root of the YAML document.
type Config struct {
	// Search holds the defaults for every solve.
	Search SearchConfig `yaml:"search" json:"search"`

	// Logging selects level and handler format.
	Logging LoggingConfig `yaml:"logging" json:"logging"`

	// Server configures `driftpath serve`.
	Server ServerConfig `yaml:"server" json:"server"`
}

// SearchConfig mirrors the astar options.
type SearchConfig struct {
	Variant         string `yaml:"variant" json:"variant" validate:"oneof=direct round-trip both"`
	CacheMode       string `yaml:"cache_mode" json:"cache_mode" validate:"oneof=modular raw"`
	MaxExpansions   int    `yaml:"max_expansions" json:"max_expansions" validate:"gte=0"`
	ReturnPath      bool   `yaml:"return_path" json:"return_path"`
	PeriodicPruning bool   `yaml:"periodic_pruning" json:"periodic_pruning"`
}

// LoggingConfig selects the slog handler. Format "auto" picks text on a
// terminal and JSON otherwise.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" json:"format" validate:"oneof=auto text json"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr         string        `yaml:"addr" json:"addr" validate:"required,hostname_port"`
	ReadTimeout  time.Duration `yaml:"read_timeout" json:"read_timeout" validate:"gt=0"`
	WriteTimeout time.Duration `yaml:"write_timeout" json:"write_timeout" validate:"gt=0"`
	// MaxGridBytes caps the size of a grid accepted by POST /v1/solve.
	MaxGridBytes int `yaml:"max_grid_bytes" json:"max_grid_bytes" validate:"gt=0"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Search: SearchConfig{
			Variant:   VariantBoth,
			CacheMode: occupancy.ModeModular.String(),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "auto",
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			MaxGridBytes: 1 << 20,
		},
	}
}

// Load reads the YAML file at path over DefaultConfig. An empty path yields
// the defaults; a path that does not exist is an error.
func Load(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes a YAML document over DefaultConfig and validates it.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks every field constraint and reports all violations at once.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (got %v)", fieldPath(fe), fe.Tag(), fe.Value()))
	}

	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

// YAML renders c as a YAML document.
func (c Config) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("config: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("config: encode: %w", err)
	}

	return buf.Bytes(), nil
}

// fieldPath turns "Config.Search.CacheMode" into "search.cache_mode".
func fieldPath(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = snake(p)
	}

	return strings.Join(parts, ".")
}

func snake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}

	return b.String()
}

// Variants resolves the configured variant name.
func (s SearchConfig) Variants() ([]waypoint.Variant, error) {
	if s.Variant == VariantBoth {
		return waypoint.Variants, nil
	}
	v, err := waypoint.ParseVariant(s.Variant)
	if err != nil {
		return nil, err
	}

	return []waypoint.Variant{v}, nil
}

// Options converts the section to astar options, excluding the variant.
func (s SearchConfig) Options() ([]astar.Option, error) {
	mode, err := occupancy.ParseMode(s.CacheMode)
	if err != nil {
		return nil, err
	}
	opts := []astar.Option{
		astar.WithCacheMode(mode),
		astar.WithMaxExpansions(s.MaxExpansions),
	}
	if s.ReturnPath {
		opts = append(opts, astar.WithReturnPath())
	}
	if s.PeriodicPruning {
		opts = append(opts, astar.WithPeriodicPruning())
	}

	return opts, nil
}

// SlogLevel maps Level onto slog. Unknown values fall back to info.
func (l LoggingConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	return slog.LevelInfo
}
