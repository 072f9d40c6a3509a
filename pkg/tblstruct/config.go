package tblstruct

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the on-disk configuration of the tblstruct CLI and server.
//
// Example:
//
//	promote_headers = true
//	normalize_text = false
//	workers = 4
//
//	[output]
//	format = "json"
//	pretty = true
//
//	[server]
//	addr = ":8080"
//	timeout = "30s"
type Config struct {
	PromoteHeaders *bool        `toml:"promote_headers"`
	NormalizeText  bool         `toml:"normalize_text"`
	Workers        int          `toml:"workers"`
	Output         OutputConfig `toml:"output"`
	Server         ServerConfig `toml:"server"`
}

// OutputConfig holds serialization defaults.
type OutputConfig struct {
	// Format is one of json, csv, xlsx, text.
	Format string `toml:"format"`
	// Pretty enables indented JSON.
	Pretty bool `toml:"pretty"`
	// TablesDir, when set, receives one file per table.
	TablesDir string `toml:"tables_dir"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
	// Timeout bounds the handling of a single request (Go duration syntax).
	Timeout string `toml:"timeout"`
	// MaxBodyBytes limits the size of an uploaded block document.
	MaxBodyBytes int64 `toml:"max_body_bytes"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Workers: 1,
		Output: OutputConfig{
			Format: "json",
		},
		Server: ServerConfig{
			Addr:         ":8080",
			Timeout:      "30s",
			MaxBodyBytes: 32 << 20,
		},
	}
}

// LoadConfig reads a TOML configuration file on top of DefaultConfig.
// Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if _, err := cfg.Server.RequestTimeout(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Options converts the configuration to reconstruction options.
func (c Config) Options() Options {
	return Options{
		PromoteHeaders: c.PromoteHeaders,
		NormalizeText:  c.NormalizeText,
		Workers:        c.Workers,
	}
}

// RequestTimeout parses the configured request timeout.
func (s ServerConfig) RequestTimeout() (time.Duration, error) {
	if s.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid server timeout %q: %w", s.Timeout, err)
	}
	return d, nil
}
