// Package config loads and validates YAML configuration for vault
// migrations. Config files are found by name in standard locations or
// loaded from an explicit path; unknown keys are rejected so typos
// surface immediately.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goccy/go-yaml"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigTooLarge  = errors.New("config file too large")
)

// maxConfigSize bounds config reads; a migration config is a handful of
// keys, anything near this limit is not a config file.
const maxConfigSize = 1 << 20

// Config holds all configuration for a vault migration.
type Config struct {
	Source  SourceConfig  `yaml:"source"`
	Output  OutputConfig  `yaml:"output"`
	Media   MediaConfig   `yaml:"media"`
	Convert ConvertConfig `yaml:"convert"`
}

// SourceConfig locates the wiki data directory.
type SourceConfig struct {
	Dir string `yaml:"dir"` // Wiki data directory containing pages/ (empty = must specify on command line)
}

// OutputConfig locates the vault destination.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Vault output directory (empty = must specify on command line)
}

// MediaConfig controls the media tree copy.
type MediaConfig struct {
	Dir  string `yaml:"dir"`  // Media subdirectory name under source and output (default: "media")
	Skip bool   `yaml:"skip"` // Skip copying media entirely
}

// ConvertConfig tunes the conversion itself.
type ConvertConfig struct {
	ImageWidth  int  `yaml:"imageWidth"`  // Display width for image embeds (0 = library default)
	Workers     int  `yaml:"workers"`     // Concurrent converters (0 = one per CPU)
	HTMLPreview bool `yaml:"htmlPreview"` // Write an HTML preview next to each note
}

// Validate checks each section. Called automatically by LoadConfig, but
// available for consumers who construct Config manually.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Media),
		validation.Field(&c.Convert),
	)
}

// Validate rejects media directory names that would escape the source
// or output tree.
func (m MediaConfig) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Dir,
			validation.By(func(any) error {
				if strings.ContainsAny(m.Dir, `/\`) || m.Dir == ".." {
					return errors.New("must be a plain directory name")
				}
				return nil
			}),
		),
	)
}

// Validate bounds the numeric tuning knobs.
func (c ConvertConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ImageWidth, validation.Min(0), validation.Max(4096)),
		validation.Field(&c.Workers, validation.Min(0), validation.Max(64)),
	)
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Media: MediaConfig{Dir: "media"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise it's searched as a name in standard locations. A missing
// file is an error, never a silent fallback.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !strings.ContainsAny(nameOrPath, `/\`) {
		resolved, err := resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
		configPath = resolved
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if len(data) > maxConfigSize {
		return nil, fmt.Errorf("%w: %s (%d bytes)", ErrConfigTooLarge, configPath, len(data))
	}

	cfg := DefaultConfig()
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	return cfg, nil
}

// resolveConfigPath searches for a config file by name, trying .yaml
// then .yml, in the current directory and then the user config
// directory.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	tried := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		tried = append(tried, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "dw2md", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			tried = append(tried, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
