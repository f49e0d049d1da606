package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the base name for configuration files.
	ConfigFileName = "pagemill"

	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "PAGEMILL"
)

// Loader loads configuration from files, environment, and bound flags.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a loader on the global viper instance so CLI flag
// bindings participate in precedence.
func NewLoader() *Loader {
	return &Loader{v: viper.GetViper()}
}

// GetViper exposes the underlying viper instance for flag binding.
func (l *Loader) GetViper() *viper.Viper {
	return l.v
}

// Load reads configuration from the default search paths.
func (l *Loader) Load() (*Config, error) {
	l.v.SetConfigName(ConfigFileName)
	l.v.SetConfigType("yaml")
	l.addConfigPaths()
	l.setupEnvironment()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// No config file is fine; defaults and env cover everything.
	}
	return l.unmarshal()
}

// LoadWithFile reads configuration from a specific file path.
func (l *Loader) LoadWithFile(configFile string) (*Config, error) {
	if configFile == "" {
		return l.Load()
	}
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configFile)
	}

	l.v.SetConfigFile(configFile)
	l.setupEnvironment()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return l.unmarshal()
}

func (l *Loader) unmarshal() (*Config, error) {
	var config Config
	if err := l.v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

func (l *Loader) addConfigPaths() {
	l.v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(home)
	}
	l.v.AddConfigPath("/etc/pagemill")
}

func (l *Loader) setupEnvironment() {
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()
}

func (l *Loader) setDefaults() {
	l.v.SetDefault("log_level", "info")
	l.v.SetDefault("verbose", false)

	l.v.SetDefault("ocr.engine", "tesseract")
	l.v.SetDefault("ocr.language", "eng")
	l.v.SetDefault("ocr.workers", 50)
	l.v.SetDefault("ocr.attempts", 25)
	l.v.SetDefault("ocr.gemini_model", "gemini-2.5-flash")

	l.v.SetDefault("extract.chunk_index", 1)
	l.v.SetDefault("extract.chunk_size", 10)

	l.v.SetDefault("harvest.identifiers_file", "identifiers.txt")
	l.v.SetDefault("harvest.work_dir", "shelves")
	l.v.SetDefault("harvest.chunk_size", 10)
	l.v.SetDefault("harvest.max_pages", 16)
	l.v.SetDefault("harvest.compress", false)

	l.v.SetDefault("server.addr", "")
}
