// Package config loads the YAML settings that choose an allocator and the
// default builder size.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/bytebuilder/pkg/builder"
	"github.com/dd0wney/bytebuilder/pkg/logging"
	"github.com/dd0wney/bytebuilder/pkg/pools"
	"github.com/dd0wney/bytebuilder/pkg/validation"
)

// EnvAllocator overrides allocator.kind when set.
const EnvAllocator = "BYTEBUILDER_ALLOCATOR"

// Allocator kinds.
const (
	KindHeap  = "heap"
	KindPool  = "pool"
	KindArena = "arena"
)

// MinArenaSlabSize is the smallest slab an arena allocator may use.
const MinArenaSlabSize = 4096

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the top-level configuration file.
type Config struct {
	Builder   BuilderConfig   `yaml:"builder"`
	Allocator AllocatorConfig `yaml:"allocator"`
	LogLevel  string          `yaml:"log_level" validate:"oneof=debug info warn warning error"`
	Metrics   bool            `yaml:"metrics"`
}

// BuilderConfig sizes new builders.
type BuilderConfig struct {
	DefaultCapacity int `yaml:"default_capacity" validate:"gte=16"`
}

// AllocatorConfig selects and bounds the allocator behind owned builders.
type AllocatorConfig struct {
	Kind          string `yaml:"kind" validate:"oneof=heap pool arena"`
	ArenaSlabSize int    `yaml:"arena_slab_size" validate:"gte=0"`
	ArenaMaxSlabs int    `yaml:"arena_max_slabs" validate:"gte=0"`
	MaxBytes      int    `yaml:"max_bytes" validate:"gte=0"` // 0 means unlimited
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Builder: BuilderConfig{
			DefaultCapacity: builder.DefaultCapacity,
		},
		Allocator: AllocatorConfig{
			Kind:          KindPool,
			ArenaSlabSize: pools.DefaultSlabSize,
		},
		LogLevel: "info",
	}
}

// Load reads and validates the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults, applies environment overrides and
// validates the result. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.ApplyEnv()
	if err := validation.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv applies environment overrides.
func (c *Config) ApplyEnv() {
	if kind, ok := os.LookupEnv(EnvAllocator); ok && kind != "" {
		c.Allocator.Kind = kind
	}
}

// Validate checks struct tags first, then the rules that depend on more
// than one field.
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	err := validation.NewConfigValidator("allocator").
		When(c.Allocator.Kind == KindArena, func(v *validation.ConfigValidator) {
			v.MinInt("arena_slab_size", c.Allocator.ArenaSlabSize, MinArenaSlabSize)
		}).
		When(c.Allocator.MaxBytes > 0, func(v *validation.ConfigValidator) {
			v.MinInt("max_bytes", c.Allocator.MaxBytes, c.Builder.DefaultCapacity)
		}).
		Validate()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Level returns the configured log level.
func (c *Config) Level() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}

// NewAllocator builds the configured allocator. Pool allocators share the
// process-wide pools.Default(); a positive max_bytes wraps the result in
// pools.Limited.
func (c *Config) NewAllocator() (pools.Allocator, error) {
	var a pools.Allocator
	switch c.Allocator.Kind {
	case KindHeap:
		a = pools.Heap
	case KindPool:
		a = pools.Default()
	case KindArena:
		a = pools.NewArena(
			validation.DefaultOrInt(c.Allocator.ArenaSlabSize, pools.DefaultSlabSize),
			c.Allocator.ArenaMaxSlabs,
		)
	default:
		return nil, fmt.Errorf("%w: unknown allocator kind %q", ErrInvalidConfig, c.Allocator.Kind)
	}

	if c.Allocator.MaxBytes > 0 {
		a = pools.Limited(a, c.Allocator.MaxBytes)
	}
	return a, nil
}

// NewBuilder returns an empty owned builder of the configured capacity
// backed by a.
func (c *Config) NewBuilder(a pools.Allocator) (*builder.Builder, error) {
	return builder.NewLenCap(0, validation.DefaultOrInt(c.Builder.DefaultCapacity, builder.DefaultCapacity), a)
}
