// Package config holds the pagemill configuration and its loader.
// Configuration merges defaults, an optional yaml file, PAGEMILL_*
// environment variables, and CLI flags bound through viper.
package config

import (
	"errors"
	"fmt"
)

// Config is the complete configuration for the pagemill CLI.
type Config struct {
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose"`

	OCR     OCRConfig     `mapstructure:"ocr" yaml:"ocr"`
	Extract ExtractConfig `mapstructure:"extract" yaml:"extract"`
	Harvest HarvestConfig `mapstructure:"harvest" yaml:"harvest"`
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
}

// OCRConfig selects and tunes the recognition capability.
type OCRConfig struct {
	Engine      string `mapstructure:"engine" yaml:"engine"`             // tesseract or gemini
	Language    string `mapstructure:"language" yaml:"language"`         // tesseract language codes
	GeminiKey   string `mapstructure:"gemini_key" yaml:"gemini_key"`     // API key for the gemini engine
	GeminiModel string `mapstructure:"gemini_model" yaml:"gemini_model"` // model name, empty for default
	Workers     int    `mapstructure:"workers" yaml:"workers"`
	Attempts    int    `mapstructure:"attempts" yaml:"attempts"`
}

// ExtractConfig describes one extraction run over a region directory.
type ExtractConfig struct {
	RegionsDir string `mapstructure:"regions_dir" yaml:"regions_dir"`
	OutputDir  string `mapstructure:"output_dir" yaml:"output_dir"`
	ChunkIndex int    `mapstructure:"chunk_index" yaml:"chunk_index"`
	ChunkSize  int    `mapstructure:"chunk_size" yaml:"chunk_size"`
}

// HarvestConfig drives the archive.org batch loop. LayoutCommand is the
// external layout-detection stage: it is invoked per chunk with the chunk
// PDF and the region directory to populate.
type HarvestConfig struct {
	IdentifiersFile string `mapstructure:"identifiers_file" yaml:"identifiers_file"`
	OutputDir       string `mapstructure:"output_dir" yaml:"output_dir"`
	WorkDir         string `mapstructure:"work_dir" yaml:"work_dir"`
	LayoutCommand   string `mapstructure:"layout_command" yaml:"layout_command"`
	ChunkSize       int    `mapstructure:"chunk_size" yaml:"chunk_size"`
	MaxPages        int    `mapstructure:"max_pages" yaml:"max_pages"`
	Compress        bool   `mapstructure:"compress" yaml:"compress"`
}

// ServerConfig configures the optional status server.
type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"` // empty disables the server
}

// Validate checks cross-field constraints the sources cannot express.
func (c *Config) Validate() error {
	switch c.OCR.Engine {
	case "tesseract", "gemini":
	default:
		return fmt.Errorf("unknown ocr engine %q (want tesseract or gemini)", c.OCR.Engine)
	}
	if c.OCR.Workers < 1 {
		return errors.New("ocr.workers must be at least 1")
	}
	if c.OCR.Attempts < 1 {
		return errors.New("ocr.attempts must be at least 1")
	}
	if c.Harvest.ChunkSize < 1 {
		return errors.New("harvest.chunk_size must be at least 1")
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}
