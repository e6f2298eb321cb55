// Package config loads image-transform-mcp settings from defaults, an
// optional YAML file and IMAGE_MCP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"image/png"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/ironsheep/image-transform-mcp/internal/codec"
)

// EnvPrefix is prepended to every environment override, e.g.
// IMAGE_MCP_LOG_LEVEL=debug or IMAGE_MCP_CODEC_JPEG_QUALITY=90.
const EnvPrefix = "IMAGE_MCP"

const (
	defaultMaxRequestBytes = 64 << 20
	minMaxRequestBytes     = 64 << 10
)

// Config is the complete runtime configuration.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Codec   CodecConfig   `mapstructure:"codec"`
	Server  ServerConfig  `mapstructure:"server"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level     string `mapstructure:"level"`
	Format    string `mapstructure:"format"`
	AddSource bool   `mapstructure:"add_source"`
}

// CodecConfig holds encoder settings.
type CodecConfig struct {
	JPEGQuality    int     `mapstructure:"jpeg_quality"`
	PNGCompression string  `mapstructure:"png_compression"`
	WebPLossless   bool    `mapstructure:"webp_lossless"`
	WebPQuality    float32 `mapstructure:"webp_quality"`
	GIFColors      int     `mapstructure:"gif_colors"`
}

// ServerConfig limits the stdio protocol server.
type ServerConfig struct {
	// MaxRequestBytes bounds a single JSON-RPC line, base64 payload included.
	MaxRequestBytes int `mapstructure:"max_request_bytes"`
}

// MetricsConfig enables the Prometheus endpoint when Addr is set.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

var pngLevels = map[string]png.CompressionLevel{
	"default": png.DefaultCompression,
	"none":    png.NoCompression,
	"speed":   png.BestSpeed,
	"best":    png.BestCompression,
}

// Load reads configuration from configPath, or from .image-transform-mcp.yaml
// in the working or home directory when configPath is empty. A missing
// file is not an error. Environment variables take precedence over the file.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(".image-transform-mcp")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.Log.Level = NormalizeLevel(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)
	cfg.Codec.PNGCompression = strings.ToLower(cfg.Codec.PNGCompression)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// NormalizeLevel lower-cases a level name and maps "warning" to "warn".
func NormalizeLevel(level string) string {
	level = strings.ToLower(level)
	if level == "warning" {
		return "warn"
	}
	return level
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.add_source", false)

	v.SetDefault("codec.jpeg_quality", codec.DefaultJPEGQuality)
	v.SetDefault("codec.png_compression", "default")
	v.SetDefault("codec.webp_lossless", true)
	v.SetDefault("codec.webp_quality", codec.DefaultWebPQuality)
	v.SetDefault("codec.gif_colors", codec.DefaultGIFColors)

	v.SetDefault("server.max_request_bytes", defaultMaxRequestBytes)

	v.SetDefault("metrics.addr", "")
}

// Validate checks that every value is in range.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of: debug, info, warn, error")
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be one of: json, text")
	}

	if c.Codec.JPEGQuality < 1 || c.Codec.JPEGQuality > 100 {
		return fmt.Errorf("codec.jpeg_quality must be between 1 and 100")
	}
	if _, ok := pngLevels[c.Codec.PNGCompression]; !ok {
		return fmt.Errorf("codec.png_compression must be one of: default, none, speed, best")
	}
	if c.Codec.WebPQuality <= 0 || c.Codec.WebPQuality > 100 {
		return fmt.Errorf("codec.webp_quality must be in (0, 100]")
	}
	if c.Codec.GIFColors < 2 || c.Codec.GIFColors > 256 {
		return fmt.Errorf("codec.gif_colors must be between 2 and 256")
	}

	if c.Server.MaxRequestBytes < minMaxRequestBytes {
		return fmt.Errorf("server.max_request_bytes must be at least %d", minMaxRequestBytes)
	}
	return nil
}

// Options converts the codec section to encoder options.
func (c CodecConfig) Options() codec.Options {
	level, ok := pngLevels[c.PNGCompression]
	if !ok {
		level = png.DefaultCompression
	}
	return codec.Options{
		JPEGQuality:    c.JPEGQuality,
		PNGCompression: level,
		WebPLossless:   c.WebPLossless,
		WebPQuality:    c.WebPQuality,
		GIFColors:      c.GIFColors,
	}
}
