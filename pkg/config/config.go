// Package config provides centralized configuration management for the
// Edu Bridge MCP server.
package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the complete configuration for the application
type Config struct {
	// Canvas LMS configuration
	Canvas struct {
		BaseURL  string
		APIToken string
	}

	// Ed Discussion configuration
	Ed struct {
		BaseURL  string
		APIToken string
	}

	// HTTP client configuration
	HTTP struct {
		Timeout time.Duration
	}

	// Paging defaults shared by the list tools
	Paging struct {
		DefaultPageSize int
		MaxPageSize     int
	}
}

var (
	once   sync.Once
	config *Config
)

// Load initializes and loads the configuration from environment variables.
// A .env file in the working directory is honored when present.
func Load() *Config {
	once.Do(func() {
		_ = godotenv.Load()

		v := viper.New()

		// Set default values
		v.SetDefault("canvas_base_url", "https://canvas.sydney.edu.au/api/v1")
		v.SetDefault("ed_base_url", "https://edstem.org/api")
		v.SetDefault("http_timeout_seconds", 30)
		v.SetDefault("default_page_size", 20)
		v.SetDefault("max_page_size", 100)

		// Load from environment variables
		v.AutomaticEnv()

		config = &Config{}
		config.Canvas.BaseURL = v.GetString("canvas_base_url")
		config.Canvas.APIToken = v.GetString("canvas_api_token")
		config.Ed.BaseURL = v.GetString("ed_base_url")
		config.Ed.APIToken = v.GetString("ed_api_token")
		config.HTTP.Timeout = time.Duration(v.GetInt("http_timeout_seconds")) * time.Second
		config.Paging.DefaultPageSize = v.GetInt("default_page_size")
		config.Paging.MaxPageSize = v.GetInt("max_page_size")
	})

	return config
}

// Validate checks if all required configuration values are set. A missing
// token does not prevent startup; the affected platform's tools report the
// problem at call time instead.
func (c *Config) Validate() error {
	var errors []string

	if c.Canvas.APIToken == "" {
		errors = append(errors, "CANVAS_API_TOKEN is not set; Canvas tools will not be functional")
	}
	if c.Ed.APIToken == "" {
		errors = append(errors, "ED_API_TOKEN is not set; Ed Discussion tools will not be functional")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}
