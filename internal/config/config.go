package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"jrlgen/internal/eventbus"
	"jrlgen/internal/index"
)

// FileName is the config file looked up in the working directory
const FileName = ".jrlgen.toml"

// Config represents the application configuration
type Config struct {
	Version int             `toml:"version" yaml:"version"`
	Root    string          `toml:"root" yaml:"root"`   // prefix joined to every index line
	Index   string          `toml:"index" yaml:"index"` // file path or http(s) URL
	Logging LoggingSettings `toml:"logging" yaml:"logging"`
	UI      UISettings      `toml:"ui" yaml:"ui"`
}

// LoggingSettings controls the debug log file
type LoggingSettings struct {
	Level string `toml:"level" yaml:"level"`
	File  string `toml:"file" yaml:"file"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowHelp bool `toml:"show_help" yaml:"show_help"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, string, error)
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus        eventbus.EventBus
	candidates []string
}

// NewConfigService creates a config service that looks for FileName in the
// working directory, then for config.toml in the user config directory
func NewConfigService() ConfigService {
	candidates := []string{FileName}

	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err == nil {
			configDir = filepath.Join(configDir, ".config")
		}
	}
	if err == nil {
		candidates = append(candidates, filepath.Join(configDir, "jrlgen", "config.toml"))
	}

	return &configService{candidates: candidates}
}

// NewConfigServiceWithPaths creates a config service searching only paths
func NewConfigServiceWithPaths(bus eventbus.EventBus, paths ...string) ConfigService {
	return &configService{bus: bus, candidates: paths}
}

// Load loads the first existing candidate file. With no file present it
// returns the default configuration and an empty path.
func (cs *configService) Load() (*Config, string, error) {
	for _, path := range cs.candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}

		cfg, err := cs.LoadFromPath(path)
		if err != nil {
			return nil, path, err
		}
		return cfg, path, nil
	}

	cfg := DefaultConfig()
	cs.publish("", cfg)
	return cfg, "", nil
}

// LoadFromPath loads configuration from a specific path. Keys absent from
// the file keep their default values; unknown keys are an error.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if isYAML(path) {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty document decodes to io.EOF
		if err := dec.Decode(cfg); err != nil && len(bytes.TrimSpace(data)) > 0 {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else {
		dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	cs.publish(path, cfg)
	return cfg, nil
}

// SaveToPath saves configuration to a specific path, as YAML when the
// extension asks for it and TOML otherwise
func (cs *configService) SaveToPath(config *Config, path string) error {
	// Ensure config directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := Marshal(config, path)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Marshal encodes config in the format implied by the extension of path
func Marshal(config *Config, path string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = toml.Marshal(config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

func (cs *configService) publish(path string, cfg *Config) {
	if cs.bus == nil {
		return
	}
	cs.bus.Publish(eventbus.ConfigLoadedEvent{
		Path:  path,
		Root:  cfg.Root,
		Index: cfg.Index,
	})
}

// Validate reports configuration values that cannot work
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Index) == "" {
		return errors.New("index must not be empty")
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Root:    index.DefaultRoot,
		Index:   index.DefaultRoot + index.DefaultFile,
		Logging: LoggingSettings{
			Level: "info",
		},
		UI: UISettings{
			ShowHelp: true,
		},
	}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
