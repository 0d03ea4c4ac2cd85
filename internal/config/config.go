package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
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
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Quiz struct {
		Prefix          string `yaml:"prefix"`
		MaxRounds       int    `yaml:"max_rounds"`
		HintPlaceholder string `yaml:"hint_placeholder"`
	} `yaml:"quiz"`
	Channels struct {
		Enabled []string `yaml:"enabled"`
	} `yaml:"channels"`
	Dictionaries []Dictionary `yaml:"dictionaries"`
}

// Dictionary configures one language.
type Dictionary struct {
	Language  string `yaml:"language"`
	Label     string `yaml:"label"`
	Path      string `yaml:"path"`
	Normalize string `yaml:"normalize"`
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the dictionary section; everything else has defaults.
func (c Config) Validate() error {
	if len(c.Dictionaries) == 0 {
		return fmt.Errorf("no dictionaries configured")
	}
	seen := make(map[string]struct{}, len(c.Dictionaries))
	for i, d := range c.Dictionaries {
		if d.Language == "" {
			return fmt.Errorf("dictionaries[%d]: language is required", i)
		}
		if _, dup := seen[d.Language]; dup {
			return fmt.Errorf("dictionaries[%d]: duplicate language %q", i, d.Language)
		}
		seen[d.Language] = struct{}{}
	}
	return nil
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
