// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package validators

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tourboxd/tourboxd/config/models"
)

var hostnameRegex = regexp.MustCompile(`^[a-zA-Z0-9.:-]+$`)

// ValidateConfig inspects the decoded configuration for invariant
// violations and aggregates every issue found into a single error.
//
// This deliberately diverges from the teacher's ValidateConfig, which
// corrects bad values in place and returns an error only to report the
// corrections made. spec.md §7 makes a config/schema mismatch fatal at
// startup for this system — there is no safe default for an unset
// device identity or an ambiguous mapping, so any issue here is fatal
// rather than corrected (see DESIGN.md).
func ValidateConfig(config *models.Config) error {
	var issues []string

	switch config.Device.Kind {
	case models.DeviceWinUSB, models.DeviceSerial:
		// recognized
	default:
		issues = append(issues, "device: missing or unrecognized transport (expected \"winusb\" or \"serial\")")
	}

	if config.Device.Kind == models.DeviceSerial {
		if config.Device.Serial.SerialPort == "" {
			issues = append(issues, "device.serial.serial_port must not be empty")
		}
		if config.Device.Serial.BaudRate == 0 {
			issues = append(issues, "device.serial.baud_rate must be greater than zero")
		}
	}

	for code, name := range config.KeyMap.Stateful {
		if name == "" {
			issues = append(issues, fmt.Sprintf("key_map.stateful[0x%02x] has an empty device key name", code))
		}
	}
	for code, name := range config.KeyMap.Stateless {
		if name == "" {
			issues = append(issues, fmt.Sprintf("key_map.stateless[0x%02x] has an empty device key name", code))
		}
	}

	if len(config.Mappings) == 0 {
		issues = append(issues, "mappings must contain at least one entry")
	}

	for i, m := range config.Mappings {
		issues = append(issues, validateMapping(i, m)...)
	}

	if config.Diagnostics.Enabled {
		if config.Diagnostics.Addr == "" {
			issues = append(issues, "diagnostics.addr must not be empty when diagnostics.enabled is true")
		} else if host, _, ok := strings.Cut(config.Diagnostics.Addr, ":"); ok && host != "" && !hostnameRegex.MatchString(host) {
			issues = append(issues, fmt.Sprintf("diagnostics.addr has an invalid host: %s", config.Diagnostics.Addr))
		}
	}

	if len(issues) > 0 {
		return fmt.Errorf("configuration validation issues: %s", strings.Join(issues, "; "))
	}
	return nil
}

// validateMapping checks that a mapping's "keys" specification has at
// least one token, that "action" is non-empty, and that "trigger" is one
// of the three recognized literals.
func validateMapping(i int, m models.MappingConfig) []string {
	var issues []string

	// Disjointness of trigger_key/modifiers (spec.md §3) is intentionally
	// not enforced here: spec.md §9 Open Question 2 documents that the
	// source never forbids a modifier that equals the trigger key and
	// treats the resulting release-time self-match as undefined rather
	// than invalid, so only emptiness is a hard schema error.
	if len(splitAndTrim(m.Keys)) == 0 {
		issues = append(issues, fmt.Sprintf("mappings[%d].keys must not be empty", i))
	}

	if m.Action == "" {
		issues = append(issues, fmt.Sprintf("mappings[%d].action must not be empty", i))
	}

	switch m.Trigger {
	case "on_press", "on_hold", "on_release":
	default:
		issues = append(issues, fmt.Sprintf("mappings[%d].trigger: %q is not one of on_press, on_hold, on_release", i, m.Trigger))
	}

	return issues
}

func splitAndTrim(s string) []string {
	raw := strings.Split(s, "+")
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
