// Package config loads application configuration and wires the global logger.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Transform TransformConfig `yaml:"transform" mapstructure:"transform"`
	Generate  GenerateConfig  `yaml:"generate" mapstructure:"generate"`
	Inventory InventoryConfig `yaml:"inventory" mapstructure:"inventory"`
	Category  CategoryConfig  `yaml:"category" mapstructure:"category"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// TransformConfig configures the property-sheet transformer.
type TransformConfig struct {
	DefaultInput  string `yaml:"default_input" mapstructure:"default_input"`
	DefaultOutput string `yaml:"default_output" mapstructure:"default_output"`
	BusinessUnit  string `yaml:"business_unit" mapstructure:"business_unit"`
	Page          string `yaml:"page" mapstructure:"page"`
	PriceType     string `yaml:"price_type" mapstructure:"price_type"`
}

// GenerateConfig configures the fixed-property month generator.
type GenerateConfig struct {
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`
	Year      int    `yaml:"year" mapstructure:"year"`
}

// InventoryConfig configures the search-inventory workbook processor.
type InventoryConfig struct {
	Input     string `yaml:"input" mapstructure:"input"`
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`
}

// CategoryConfig configures the category-pages report.
type CategoryConfig struct {
	Output string `yaml:"output" mapstructure:"output"`
}

// LogConfig configures logging. Dir, when set, adds a per-run log file
// named with the run timestamp alongside the console sink.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
	Dir    string `yaml:"dir" mapstructure:"dir"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("ADT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("transform.default_input", "beauty_allocation.csv")
	v.SetDefault("transform.default_output", filepath.Join("output", "beauty_output.csv"))
	v.SetDefault("transform.business_unit", "PERSONAL CARE")
	v.SetDefault("transform.page", "BEAUTY")
	v.SetDefault("transform.price_type", "CPM")
	v.SetDefault("generate.output_dir", "output")
	v.SetDefault("generate.year", 2025)
	v.SetDefault("inventory.input", "plasdb.xlsx")
	v.SetDefault("inventory.output_dir", "output")
	v.SetDefault("category.output", filepath.Join("output", "outputcat.csv"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger. When cfg.Dir is set, a
// per-run log file named with the run timestamp is attached in addition
// to the console sink.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			return eris.Wrap(err, "config: create log dir")
		}
		name := fmt.Sprintf("adt_%s.log", time.Now().Format("20060102_150405"))
		zapCfg.OutputPaths = append(zapCfg.OutputPaths, filepath.Join(cfg.Dir, name))
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
