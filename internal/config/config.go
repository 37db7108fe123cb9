package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port   string `yaml:"port"`
		APIKey string `yaml:"apiKey"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	AI struct {
		URL    string `yaml:"url"`
		Model  string `yaml:"model"`
		APIKey string `yaml:"apiKey"`
	} `yaml:"ai"`
	Challenge struct {
		ReviewCount     int    `yaml:"reviewCount"`
		GlossaryCount   int    `yaml:"glossaryCount"`
		PortugueseCount int    `yaml:"portugueseCount"`
		IncorrectScope  string `yaml:"incorrectScope"` // "ever" or "still"
		SubjectsTTL     string `yaml:"subjectsTtl"`
	} `yaml:"challenge"`
}

// Load reads YAML config from path. Shared secrets can be kept out of the
// file: API_KEY and AI_API_KEY env vars override their config values.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if key := os.Getenv("API_KEY"); key != "" {
		cfg.Server.APIKey = key
	}
	if key := os.Getenv("AI_API_KEY"); key != "" {
		cfg.AI.APIKey = key
	}
	return cfg, nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

// CountOrDefault returns n when positive, otherwise the fallback.
func CountOrDefault(n, fallback int) int {
	if n > 0 {
		return n
	}
	return fallback
}
