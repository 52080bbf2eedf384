package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Pebble   PebbleConfig   `yaml:"pebble"`
	Sources  SourcesConfig  `yaml:"sources"`
	Artifact ArtifactConfig `yaml:"artifact"`
}

// ServerConfig represents the HTTP server configuration
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// PebbleConfig represents the Pebble database configuration
type PebbleConfig struct {
	Path string `yaml:"path"`
}

// SourcesConfig represents the OFAC source document endpoints
type SourcesConfig struct {
	AdvancedListURL string `yaml:"advanced_list_url"`
	EntityListURL   string `yaml:"entity_list_url"`
	TimeoutSeconds  int    `yaml:"timeout_seconds"`
	Retries         int    `yaml:"retries"`
}

// ArtifactConfig represents the generated artifact location
type ArtifactConfig struct {
	Path string `yaml:"path"`
}

// Timeout returns the per-attempt download timeout
func (s SourcesConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Load loads configuration from a YAML file and environment variables
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: 8080,
			Host: "0.0.0.0",
		},
		Pebble: PebbleConfig{
			Path: "./data/pebble",
		},
		Sources: SourcesConfig{
			AdvancedListURL: "https://sanctionslistservice.ofac.treas.gov/api/PublicationPreview/exports/SDN_ADVANCED.XML",
			EntityListURL:   "https://www.treasury.gov/ofac/downloads/sdn.csv",
			TimeoutSeconds:  30,
			Retries:         2,
		},
		Artifact: ArtifactConfig{
			Path: "./data/ofac_addresses.json",
		},
	}

	// Load from YAML file if it exists
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	// Override with environment variables
	cfg.loadEnv()

	return cfg, nil
}

func (c *Config) loadEnv() {
	// Server config
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		c.Server.Host = host
	}

	// Pebble config
	if path := os.Getenv("PEBBLE_PATH"); path != "" {
		c.Pebble.Path = path
	}

	// Source config
	if url := os.Getenv("SDN_ADVANCED_URL"); url != "" {
		c.Sources.AdvancedListURL = url
	}
	if url := os.Getenv("SDN_ENTITY_URL"); url != "" {
		c.Sources.EntityListURL = url
	}
	if timeout := os.Getenv("FETCH_TIMEOUT"); timeout != "" {
		if t, err := strconv.Atoi(timeout); err == nil {
			c.Sources.TimeoutSeconds = t
		}
	}
	if retries := os.Getenv("FETCH_RETRIES"); retries != "" {
		if r, err := strconv.Atoi(retries); err == nil {
			c.Sources.Retries = r
		}
	}

	// Artifact config
	if path := os.Getenv("ARTIFACT_PATH"); path != "" {
		c.Artifact.Path = path
	}
}
