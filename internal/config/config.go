// Package config loads runtime configuration for flexbox.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// EnvPrefix prefixes every environment override, e.g. FLEXBOX_LISTEN_ADDR.
const EnvPrefix = "FLEXBOX"

// Config holds runtime configuration values.
type Config struct {
	ListenAddr   string        `mapstructure:"listen_addr" yaml:"listen_addr"`
	UIPassword   string        `mapstructure:"ui_password" yaml:"ui_password"`
	DataDir      string        `mapstructure:"data_dir" yaml:"data_dir"`
	LayoutPath   string        `mapstructure:"layout_path" yaml:"layout_path"`
	MonitorIndex int           `mapstructure:"monitor_index" yaml:"monitor_index"`
	Surface      SurfaceConfig `mapstructure:"surface" yaml:"surface"`
	HandleSize   float64       `mapstructure:"handle_size" yaml:"handle_size"`
	ClampResize  bool          `mapstructure:"clamp_resize" yaml:"clamp_resize"`
	MoveRate     float64       `mapstructure:"move_rate" yaml:"move_rate"`
	MoveBurst    int           `mapstructure:"move_burst" yaml:"move_burst"`
	Logger       LoggerConfig  `mapstructure:"logger" yaml:"logger"`
}

// SurfaceConfig sizes the root surface. Zero values defer to the selected
// monitor.
type SurfaceConfig struct {
	Width  float64 `mapstructure:"width" yaml:"width"`
	Height float64 `mapstructure:"height" yaml:"height"`
}

// LoggerConfig configures the zap logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// SetDefaults registers every key with its default value. Keys must be known
// to viper for environment overrides to reach Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("listen_addr", "0.0.0.0:8787")
	v.SetDefault("ui_password", "")
	v.SetDefault("data_dir", "./data")
	v.SetDefault("layout_path", "")
	v.SetDefault("monitor_index", 1)
	v.SetDefault("surface.width", 0)
	v.SetDefault("surface.height", 0)
	v.SetDefault("handle_size", 8)
	v.SetDefault("clamp_resize", false)
	v.SetDefault("move_rate", 120)
	v.SetDefault("move_burst", 8)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "flexbox")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 20)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 14)
	v.SetDefault("logger.compress", true)
}

// Configure points v at an optional config file and the environment. An
// empty path looks for ./config.yaml.
func Configure(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// UI_PASSWORD without prefix is still honoured.
	if err := v.BindEnv("ui_password", EnvPrefix+"_UI_PASSWORD", "UI_PASSWORD"); err != nil {
		return err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// Load builds a Config from v, including <data_dir>/.env, and validates it.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)
	if err := loadEnvFile(filepath.Join(v.GetString("data_dir"), ".env")); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.UIPassword = strings.TrimSpace(cfg.UIPassword)
	if cfg.LayoutPath == "" {
		cfg.LayoutPath = filepath.Join(cfg.DataDir, "layout.yaml")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and required values.
func (c Config) Validate() error {
	if c.UIPassword == "" {
		return errors.New("UI_PASSWORD is required")
	}
	if c.MonitorIndex < 0 {
		return fmt.Errorf("monitor_index must be >= 0")
	}
	if c.Surface.Width < 0 || c.Surface.Height < 0 {
		return fmt.Errorf("surface size must be >= 0")
	}
	if c.HandleSize < 0 {
		return fmt.Errorf("handle_size must be >= 0")
	}
	if c.MoveRate <= 0 {
		return fmt.Errorf("move_rate must be > 0")
	}
	if c.MoveBurst <= 0 {
		return fmt.Errorf("move_burst must be > 0")
	}
	return nil
}

// loadEnvFile loads KEY=VALUE pairs from a .env file without overriding the
// real environment. A missing file is not an error.
func loadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := gotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
