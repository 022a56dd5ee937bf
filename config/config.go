package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port           int      `yaml:"port"`
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"server"`

	Database struct {
		URI string `yaml:"uri"`
	} `yaml:"database"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	JWT struct {
		Secret string `yaml:"secret"`
		Expiry int    `yaml:"expiry"` // minutes
	} `yaml:"jwt"`

	Game struct {
		// Timezone is the IANA zone whose midnight starts a new habit day.
		Timezone string `yaml:"timezone"`
	} `yaml:"game"`

	RateLimit struct {
		AuthMax    int `yaml:"authMax"`
		AuthWindow int `yaml:"authWindow"` // seconds
	} `yaml:"rateLimit"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// LoadConfig reads the YAML file at path, applies environment overrides and
// fills defaults. An empty path skips the file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
		}
	}

	overrideFromEnv(&cfg)
	applyDefaults(&cfg)

	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("MONGODB_URI"); v != "" {
		cfg.Database.URI = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("ANIMA_TIMEZONE"); v != "" {
		cfg.Game.Timezone = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 1313
	}
	if cfg.Database.URI == "" {
		cfg.Database.URI = "mongodb://localhost:27017/anima"
	}
	if cfg.JWT.Expiry <= 0 {
		cfg.JWT.Expiry = 24 * 60
	}
	if cfg.Game.Timezone == "" {
		cfg.Game.Timezone = "UTC"
	}
	if cfg.RateLimit.AuthMax <= 0 {
		cfg.RateLimit.AuthMax = 10
	}
	if cfg.RateLimit.AuthWindow <= 0 {
		cfg.RateLimit.AuthWindow = 60
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// Location resolves Game.Timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Game.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid game timezone %q: %w", c.Game.Timezone, err)
	}
	return loc, nil
}

func (c *Config) JWTExpiry() time.Duration {
	return time.Duration(c.JWT.Expiry) * time.Minute
}

func (c *Config) AuthRateWindow() time.Duration {
	return time.Duration(c.RateLimit.AuthWindow) * time.Second
}
