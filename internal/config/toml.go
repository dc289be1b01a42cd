// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/dustin/go-humanize"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Analyze AnalyzeConfig `toml:"analyze"`
	Gen     GenConfig     `toml:"gen"`
}

// AnalyzeConfig maps analysis settings. Sizes accept human units such as
// "1MiB" or "10 MB".
type AnalyzeConfig struct {
	Layouts    []string `toml:"layouts"`
	Format     *string  `toml:"format"`
	ChunkSize  *string  `toml:"chunk-size"`
	Threshold  *string  `toml:"threshold"`
	Encoding   *string  `toml:"encoding"`
	CarryState *bool    `toml:"carry-state"`
	Unknown    *string  `toml:"unknown"`
	Bars       *bool    `toml:"bars"`
	Color      *bool    `toml:"color"`
}

// GenConfig maps synthetic text settings.
type GenConfig struct {
	Layout    *string  `toml:"layout"`
	MinLen    *int     `toml:"min-len"`
	MaxLen    *int     `toml:"max-len"`
	CapsPct   *float64 `toml:"caps"`
	PunctPct  *float64 `toml:"punct"`
	PunctSet  *string  `toml:"punct-set"`
	LineWords *int     `toml:"line-words"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// ParseSize parses a byte size such as "1MiB", "512k" or "1048576".
func ParseSize(value string) (int64, error) {
	n, err := humanize.ParseBytes(value)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", value, err)
	}
	if n > 1<<62 {
		return 0, fmt.Errorf("size %q is too large", value)
	}
	return int64(n), nil
}
