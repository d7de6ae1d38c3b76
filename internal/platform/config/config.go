// Copyright (c) 2026 Grota. All rights reserved.
// Author: plataforma@grota.com.br

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (session resolver, DB, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config; nothing
    below main reads ambient environment directly.

This ensures the gateway is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Grota portal gateway.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL) — principal store
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./migrations"`

	// Key-Value Cache (Redis) — verification token store
	RedisURL string `env:"REDIS_URL,required"`

	// Session signing secrets. Resolution order per scope is applied by the
	// session package: scope-specific → shared → public-prefixed (non-prod
	// only) → insecure dev fallback (non-prod only, fatal in production).
	AdminSessionSecret   string `env:"GROTA_ADMIN_SESSION_SECRET"`
	LojistaSessionSecret string `env:"GROTA_LOJISTA_SESSION_SECRET"`
	ClienteSessionSecret string `env:"GROTA_CLIENTE_SESSION_SECRET"`
	AuthSecret           string `env:"GROTA_AUTH_SECRET"`
	PublicAuthSecret     string `env:"NEXT_PUBLIC_GROTA_AUTH_SECRET"`

	// Upstream API base URL candidates, in fallback order.
	GrotaAPIURL string `env:"GROTA_API_URL"`
	APIURL      string `env:"API_URL"`
}

// defaultAPIBaseURL is the fixed local default when no candidate is set.
const defaultAPIBaseURL = "http://localhost:3333"

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// APIBaseURL resolves the upstream API base URL through the documented
// candidate chain, ending at the fixed local default.
func (c *Config) APIBaseURL() string {
	if c.GrotaAPIURL != "" {
		return c.GrotaAPIURL
	}
	if c.APIURL != "" {
		return c.APIURL
	}
	return defaultAPIBaseURL
}

// IsDevelopment reports whether the gateway is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the gateway is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
