package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port           int      `yaml:"port"`
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"server"`

	// Database selects the verdict store. Driver "memory" (the default)
	// needs no other fields.
	Database struct {
		Driver   string `yaml:"driver"` // memory | mysql | postgres
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslMode"` // postgres only
	} `yaml:"database"`

	// Enrichment credentials. Each is independently optional; an empty key
	// disables that enrichment path without failing requests.
	Enrichment struct {
		YouTubeAPIKey   string `yaml:"youtubeApiKey"`
		FactCheckAPIKey string `yaml:"factCheckApiKey"`
	} `yaml:"enrichment"`

	OpenAI struct {
		APIKey string `yaml:"apiKey"`
		Model  string `yaml:"model"`
	} `yaml:"openai"`

	Minio struct {
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`

	// Cache controls the verdict TTL hook. Both fields empty (the default)
	// means verdicts are kept forever, matching the reference behavior.
	Cache struct {
		TTL           string `yaml:"ttl"`           // e.g. "720h"; empty disables pruning
		SweepSchedule string `yaml:"sweepSchedule"` // cron expression, e.g. "0 * * * *"
	} `yaml:"cache"`
}

// Load reads the yaml file and layers environment overrides on top.
// A missing file is not an error: the service runs fine on env vars alone.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// env-only deployment
	default:
		return nil, err
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("YOUTUBE_API_KEY"); v != "" {
		c.Enrichment.YouTubeAPIKey = v
	}
	if v := os.Getenv("GOOGLE_FACT_CHECK_API_KEY"); v != "" {
		c.Enrichment.FactCheckAPIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.OpenAI.APIKey = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "memory"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
}

// CacheTTL parses the configured TTL; zero means pruning is disabled.
func (c *Config) CacheTTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return 0, nil
	}
	return time.ParseDuration(c.Cache.TTL)
}

// MySQLDSN builds the DSN for the mysql driver.
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// PostgresDSN builds the DSN for lib/pq.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
