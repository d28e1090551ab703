// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package loaders

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tourboxd/tourboxd/config/models"
	"github.com/tourboxd/tourboxd/config/validators"
)

// LoadConfig reads and parses the configuration file at filename, then
// validates it. Unlike the teacher's YAML loader, a missing file, a
// malformed document, or a validation failure are all fatal here
// (spec.md §6.4/§7 "Config-load ... fatal at startup"): there is no
// safe default for a device identity or a mapping table.
func LoadConfig(filename string) (*models.Config, error) {
	clean := filepath.Clean(filename)
	if strings.Contains(clean, "..") {
		return nil, fmt.Errorf("invalid config path: %s", filename)
	}

	// #nosec G304 -- path is sanitized above and supplied by the operator
	// via the single command-line argument, not by an untrusted caller.
	data, err := os.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", filename, err)
	}

	var config models.Config
	SetDefaultConfig(&config)
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", filename, err)
	}

	if err := validators.ValidateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filename, err)
	}

	return &config, nil
}

// SetDefaultConfig applies defaults for the ambient settings that are
// not required to be present in every config document. The core fields
// (device, key_map, mappings) have no sane default and are left zero;
// ValidateConfig rejects a zero device and an empty mappings list, while
// empty key_map tables are accepted.
func SetDefaultConfig(config *models.Config) {
	config.Diagnostics.Enabled = false
	config.Diagnostics.Addr = "localhost:8787"
	config.General.Debug = false
	config.General.LogFile = ""
}
