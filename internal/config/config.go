package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/ontology/internal/core/observability/log"
	"github.com/zeusync/ontology/internal/core/ontology"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the process configuration, usually read from a YAML file.
type Config struct {
	Log       LogConfig     `json:"log" yaml:"log"`
	Memory    MemoryConfig  `json:"memory" yaml:"memory"`
	Console   ConsoleConfig `json:"console" yaml:"console"`
	Manifests []string      `json:"manifests,omitempty" yaml:"manifests,omitempty"`
}

type LogConfig struct {
	Level       string   `json:"level" yaml:"level"`
	Encoding    string   `json:"encoding" yaml:"encoding"`
	OutputPaths []string `json:"output_paths,omitempty" yaml:"output_paths,omitempty"`
	Development bool     `json:"development,omitempty" yaml:"development,omitempty"`
}

// MemoryConfig sizes the per-kind arenas. Capacities are keyed by kind name.
type MemoryConfig struct {
	Capacities  map[string]uint32 `json:"capacities,omitempty" yaml:"capacities,omitempty"`
	MaxStorages uint32            `json:"max_storages,omitempty" yaml:"max_storages,omitempty"`
}

type ConsoleConfig struct {
	Enabled         bool          `json:"enabled" yaml:"enabled"`
	ListenAddr      string        `json:"listen_addr" yaml:"listen_addr"`
	Path            string        `json:"path" yaml:"path"`
	MaxClients      int           `json:"max_clients" yaml:"max_clients"`
	ReadBufferSize  int           `json:"read_buffer_size" yaml:"read_buffer_size"`
	WriteBufferSize int           `json:"write_buffer_size" yaml:"write_buffer_size"`
	MaxMessageSize  int64         `json:"max_message_size" yaml:"max_message_size"`
	RequestTimeout  time.Duration `json:"request_timeout" yaml:"request_timeout"`
	QueueSize       int           `json:"queue_size" yaml:"queue_size"`
}

func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:    "info",
			Encoding: "json",
		},
		Memory: MemoryConfig{
			Capacities: make(map[string]uint32),
		},
		Console: ConsoleConfig{
			Enabled:         true,
			ListenAddr:      "127.0.0.1:8080",
			Path:            "/console",
			MaxClients:      64,
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			MaxMessageSize:  64 * 1024,
			RequestTimeout:  5 * time.Second,
			QueueSize:       64,
		},
	}
}

// Load decodes YAML over the defaults and validates the result.
func Load(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err)
	}
	switch c.Log.Encoding {
	case "", "json", "console":
	default:
		return fmt.Errorf("%w: log.encoding %q", ErrInvalidConfig, c.Log.Encoding)
	}
	for name, n := range c.Memory.Capacities {
		kind, err := ontology.ParseKind(name)
		if err != nil {
			return fmt.Errorf("%w: memory.capacities: %v", ErrInvalidConfig, err)
		}
		if kind == ontology.KindUniverse {
			return fmt.Errorf("%w: memory.capacities: universe is not arena allocated", ErrInvalidConfig)
		}
		if n == 0 {
			return fmt.Errorf("%w: memory.capacities.%s must be positive", ErrInvalidConfig, name)
		}
	}
	if c.Console.Enabled {
		if c.Console.ListenAddr == "" {
			return fmt.Errorf("%w: console.listen_addr is required", ErrInvalidConfig)
		}
		if c.Console.Path == "" || c.Console.Path[0] != '/' {
			return fmt.Errorf("%w: console.path %q must start with /", ErrInvalidConfig, c.Console.Path)
		}
		if c.Console.RequestTimeout <= 0 {
			return fmt.Errorf("%w: console.request_timeout must be positive", ErrInvalidConfig)
		}
		if c.Console.MaxClients < 0 {
			return fmt.Errorf("%w: console.max_clients must not be negative", ErrInvalidConfig)
		}
		if c.Console.QueueSize < 0 {
			return fmt.Errorf("%w: console.queue_size must not be negative", ErrInvalidConfig)
		}
	}
	return nil
}

// LogLevel is the parsed log level; Validate guarantees it parses.
func (c Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.LevelInfo
	}
	return level
}

func (c Config) LogOptions() log.Options {
	return log.Options{
		Encoding:    c.Log.Encoding,
		OutputPaths: c.Log.OutputPaths,
		Development: c.Log.Development,
	}
}

// UniverseOptions turns the memory section into universe options.
func (c Config) UniverseOptions() []ontology.Option {
	opts := []ontology.Option{ontology.WithMaxStorages(c.Memory.MaxStorages)}
	for name, n := range c.Memory.Capacities {
		if kind, err := ontology.ParseKind(name); err == nil {
			opts = append(opts, ontology.WithCapacity(kind, n))
		}
	}
	return opts
}
