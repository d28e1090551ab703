// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/tourboxd/tourboxd/config/models"
	"github.com/tourboxd/tourboxd/internal/mapping"
	"github.com/tourboxd/tourboxd/internal/protocol"
)

// codeTablesFromConfig adapts the configuration's key_map into the
// decoder's CodeTables.
func codeTablesFromConfig(km models.KeyMap) protocol.CodeTables {
	return protocol.CodeTables{
		Stateless: km.Stateless,
		Stateful:  km.Stateful,
	}
}

// mappingConfigsFromConfig adapts the configuration's ordered mappings
// list into the processor's Config list, resolving each trigger
// literal (spec.md §6.1: "on_press"|"on_hold"|"on_release").
func mappingConfigsFromConfig(entries []models.MappingConfig) ([]mapping.Config, error) {
	out := make([]mapping.Config, 0, len(entries))
	for i, e := range entries {
		trigger, err := parseTrigger(e.Trigger)
		if err != nil {
			return nil, fmt.Errorf("mappings[%d]: %w", i, err)
		}
		out = append(out, mapping.Config{
			Keys:    e.Keys,
			Action:  e.Action,
			Trigger: trigger,
		})
	}
	return out, nil
}

func parseTrigger(s string) (mapping.Trigger, error) {
	switch s {
	case "on_press":
		return mapping.OnPress, nil
	case "on_hold":
		return mapping.OnHold, nil
	case "on_release":
		return mapping.OnRelease, nil
	default:
		return 0, fmt.Errorf("unrecognized trigger %q", s)
	}
}
