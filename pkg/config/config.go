package config

import (
	"strings"

	"github.com/arthur-debert/f2llm/pkg/archive"
	"github.com/arthur-debert/f2llm/pkg/errors"
	"github.com/pelletier/go-toml/v2"
)

// Compression modes for archive.compress.
const (
	CompressAuto   = "auto"
	CompressAlways = "always"
	CompressNever  = "never"
)

// Color modes for output.color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the effective f2llm configuration.
type Config struct {
	Archive ArchiveConfig `koanf:"archive" toml:"archive"`
	Walk    WalkConfig    `koanf:"walk" toml:"walk"`
	Output  OutputConfig  `koanf:"output" toml:"output"`
}

// ArchiveConfig controls the wire format.
type ArchiveConfig struct {
	Format   string `koanf:"format" toml:"format"`
	Marker   string `koanf:"marker" toml:"marker"`
	Compress string `koanf:"compress" toml:"compress"`
}

// WalkConfig controls tree traversal and file reads during pack.
type WalkConfig struct {
	IgnoreFile   string   `koanf:"ignore_file" toml:"ignore_file"`
	ExtraIgnore  []string `koanf:"extra_ignore" toml:"extra_ignore"`
	ReadWorkers  int      `koanf:"read_workers" toml:"read_workers"`
	MaxFileBytes int64    `koanf:"max_file_bytes" toml:"max_file_bytes"`
}

// OutputConfig controls console rendering.
type OutputConfig struct {
	Color string `koanf:"color" toml:"color"`
}

// Validate checks enumerated values and bounds.
func (c *Config) Validate() error {
	if _, err := archive.ParseFormat(c.Archive.Format); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "archive.format: unknown value %q", c.Archive.Format).
			WithDetail("key", "archive.format")
	}
	c.Archive.Format = strings.ToLower(strings.TrimSpace(c.Archive.Format))

	if c.Archive.Marker == "" || strings.ContainsAny(c.Archive.Marker, "\r\n") {
		return errors.New(errors.ErrConfigParse, "archive.marker must be a non-empty single line").
			WithDetail("key", "archive.marker")
	}
	if err := oneOf("archive.compress", c.Archive.Compress, CompressAuto, CompressAlways, CompressNever); err != nil {
		return err
	}
	if err := oneOf("output.color", c.Output.Color, ColorAuto, ColorAlways, ColorNever); err != nil {
		return err
	}
	if c.Walk.ReadWorkers < 1 {
		return errors.Newf(errors.ErrConfigParse, "walk.read_workers must be at least 1, got %d", c.Walk.ReadWorkers).
			WithDetail("key", "walk.read_workers")
	}
	if c.Walk.MaxFileBytes < 0 {
		return errors.Newf(errors.ErrConfigParse, "walk.max_file_bytes cannot be negative, got %d", c.Walk.MaxFileBytes).
			WithDetail("key", "walk.max_file_bytes")
	}
	return nil
}

func oneOf(key, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return errors.Newf(errors.ErrConfigParse, "%s must be one of %s, got %q", key, strings.Join(allowed, ", "), value).
		WithDetail("key", key)
}

// ToTOML renders the configuration as a TOML document.
func (c *Config) ToTOML() ([]byte, error) {
	out, err := toml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to render configuration")
	}
	return out, nil
}
