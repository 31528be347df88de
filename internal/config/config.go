package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"readTimeout"`
		WriteTimeout    time.Duration `yaml:"writeTimeout"`
		IdleTimeout     time.Duration `yaml:"idleTimeout"`
		MaxUploadBytes  int64         `yaml:"maxUploadBytes"`
		CORSOrigins     []string      `yaml:"corsOrigins"`
		ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	} `yaml:"server"`

	AI struct {
		Provider  string `yaml:"provider"` // openai | mock
		APIKey    string `yaml:"apiKey"`
		Model     string `yaml:"model"`
		BaseURL   string `yaml:"baseURL"`
		MaxTokens int    `yaml:"maxTokens"`
	} `yaml:"ai"`

	Database struct {
		Driver   string `yaml:"driver"` // mysql | postgres | kosong = audit mati
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslMode"`
	} `yaml:"database"`

	Minio struct {
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`

	Pipeline struct {
		ClauseContentLimit    int      `yaml:"clauseContentLimit"`
		RemediationInputLimit int      `yaml:"remediationInputLimit"`
		DefaultRegulations    []string `yaml:"defaultRegulations"`
	} `yaml:"pipeline"`

	RateLimit struct {
		Capacity        int `yaml:"capacity"`
		RefillPerSecond int `yaml:"refillPerSecond"`
	} `yaml:"rateLimit"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var c Config
	c.Server.Port = 5000
	c.Server.ReadTimeout = 30 * time.Second
	c.Server.WriteTimeout = 180 * time.Second
	c.Server.IdleTimeout = 60 * time.Second
	c.Server.ShutdownTimeout = 10 * time.Second
	c.Server.MaxUploadBytes = 16 << 20
	c.Server.CORSOrigins = []string{"*"}
	c.AI.Provider = "openai"
	c.AI.Model = "gpt-4o-mini"
	c.AI.MaxTokens = 4096
	c.Database.SSLMode = "disable"
	c.Minio.BucketName = "legal-documents"
	c.Pipeline.ClauseContentLimit = 15000
	c.Pipeline.RemediationInputLimit = 10000
	c.RateLimit.Capacity = 30
	c.RateLimit.RefillPerSecond = 1
	c.Log.Level = "info"
	c.Log.Format = "text"
	return &c
}

// Load baca file config.yaml di atas default, lalu terapkan env override.
// File yang tidak ada bukan error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("OPENAI_API_KEY"); ok && v != "" {
		c.AI.APIKey = v
	} else if v, ok := lookup("API_KEY"); ok && v != "" {
		c.AI.APIKey = v
	}
	if v, ok := lookup("AI_MODEL"); ok && v != "" {
		c.AI.Model = v
	}
	if v, ok := lookup("AI_PROVIDER"); ok && v != "" {
		c.AI.Provider = strings.ToLower(v)
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup("SERVER_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SERVER_PORT: %w", err)
		}
		c.Server.Port = port
	}
	return nil
}

// Validate checks enum fields and ranges.
func (c *Config) Validate() error {
	switch c.AI.Provider {
	case "openai", "mock":
	default:
		return fmt.Errorf("ai.provider must be openai or mock, got %q", c.AI.Provider)
	}
	switch c.Database.Driver {
	case "", "mysql", "postgres":
	default:
		return fmt.Errorf("database.driver must be mysql, postgres or empty, got %q", c.Database.Driver)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	return nil
}

// Helper untuk build DSN MySQL
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// Helper untuk build DSN Postgres (format URL, lib/pq)
func (c *Config) PostgresDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     fmt.Sprintf("%s:%d", c.Database.Host, c.Database.Port),
		Path:     "/" + c.Database.Name,
		RawQuery: url.Values{"sslmode": {c.Database.SSLMode}}.Encode(),
	}
	return u.String()
}
