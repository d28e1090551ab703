// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package config provides configuration loading and validation for the
// TourBox daemon.
//
// Subpackages:
//   - models:     Defines the core configuration data structures.
//   - loaders:    Loads and defaults the configuration from JSON.
//   - validators: Validates configuration invariants before first use.
package config

import (
	"github.com/tourboxd/tourboxd/config/loaders"
	"github.com/tourboxd/tourboxd/config/models"
	"github.com/tourboxd/tourboxd/config/validators"
)

// Config is an alias for the main configuration structure defined in
// the models package, so callers need not import it directly.
type Config = models.Config

// LoadConfig reads, defaults, and validates the configuration at
// filename. Any failure here is fatal at startup (spec.md §6.4).
func LoadConfig(filename string) (*Config, error) {
	return loaders.LoadConfig(filename)
}

// SetDefaultConfig applies ambient defaults to a configuration object.
func SetDefaultConfig(config *Config) {
	loaders.SetDefaultConfig(config)
}

// ValidateConfig checks the configuration for invariant violations.
func ValidateConfig(config *Config) error {
	return validators.ValidateConfig(config)
}
