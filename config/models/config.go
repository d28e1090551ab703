// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package models defines the core configuration data structures for the
// TourBox daemon: the device tagged union, the two device-code tables,
// the ordered mapping list, and the diagnostics tap settings.
package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DeviceKind discriminates the closed sum of transports a device config
// can select. Dispatch on this is a single startup switch (spec.md §9
// "Tagged device union") — never a plugin registry.
type DeviceKind int

const (
	// DeviceUnknown is the zero value; a decoded config should never keep it.
	DeviceUnknown DeviceKind = iota
	DeviceWinUSB
	DeviceSerial
)

// WinUSBDevice identifies a device by its USB vendor/product ID, both
// parsed from "0x"+hex strings per spec.md §6.1.
type WinUSBDevice struct {
	VID uint16
	PID uint16
}

// SerialDevice identifies a device by its COM/tty port and baud rate.
type SerialDevice struct {
	SerialPort string
	BaudRate   uint32
}

// Device is the tagged union of transports, decoded from the JSON
// `device` object's single present key ("winusb" or "serial").
type Device struct {
	Kind   DeviceKind
	WinUSB WinUSBDevice
	Serial SerialDevice
}

type winUSBWire struct {
	VID string `json:"vid"`
	PID string `json:"pid"`
}

type serialWire struct {
	SerialPort string `json:"serial_port"`
	BaudRate   uint32 `json:"baud_rate"`
}

type deviceWire struct {
	WinUSB *winUSBWire `json:"winusb,omitempty"`
	Serial *serialWire `json:"serial,omitempty"`
}

// UnmarshalJSON decodes the device tagged union, requiring exactly one
// of "winusb" or "serial" to be present.
func (d *Device) UnmarshalJSON(data []byte) error {
	var w deviceWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("device: %w", err)
	}

	switch {
	case w.WinUSB != nil && w.Serial != nil:
		return fmt.Errorf("device: both winusb and serial present; exactly one is required")
	case w.WinUSB != nil:
		vid, err := parseHex16(w.WinUSB.VID)
		if err != nil {
			return fmt.Errorf("device.winusb.vid: %w", err)
		}
		pid, err := parseHex16(w.WinUSB.PID)
		if err != nil {
			return fmt.Errorf("device.winusb.pid: %w", err)
		}
		d.Kind = DeviceWinUSB
		d.WinUSB = WinUSBDevice{VID: vid, PID: pid}
	case w.Serial != nil:
		d.Kind = DeviceSerial
		d.Serial = SerialDevice{SerialPort: w.Serial.SerialPort, BaudRate: w.Serial.BaudRate}
	default:
		return fmt.Errorf("device: neither winusb nor serial present")
	}
	return nil
}

// MarshalJSON re-encodes the tagged union in its wire shape. Mostly
// useful for tests that round-trip a Config.
func (d Device) MarshalJSON() ([]byte, error) {
	switch d.Kind {
	case DeviceWinUSB:
		return json.Marshal(deviceWire{WinUSB: &winUSBWire{
			VID: fmt.Sprintf("0x%04x", d.WinUSB.VID),
			PID: fmt.Sprintf("0x%04x", d.WinUSB.PID),
		}})
	case DeviceSerial:
		return json.Marshal(deviceWire{Serial: &serialWire{
			SerialPort: d.Serial.SerialPort,
			BaudRate:   d.Serial.BaudRate,
		}})
	default:
		return nil, fmt.Errorf("device: cannot marshal unset device")
	}
}

func parseHex16(s string) (uint16, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(lower, "0x") {
		return 0, fmt.Errorf("expected a hex string starting with \"0x\", got %q", s)
	}
	n, err := strconv.ParseUint(lower[2:], 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid hex digits in %q: %w", s, err)
	}
	return uint16(n), nil
}

// HexByte is a single byte decoded from a "0x"+two-hex-digit JSON string
// key, used by KeyMap's code tables.
type HexByte = byte

// KeyMap holds the two device code tables from spec.md §6.1. Map keys
// are "0x"+two lowercase hex digits in the source JSON; they are decoded
// into plain byte keys here so the decoder never touches string parsing.
type KeyMap struct {
	Stateful  map[HexByte]string
	Stateless map[HexByte]string
}

// UnmarshalJSON decodes both code tables' hex-string keys into bytes.
func (k *KeyMap) UnmarshalJSON(data []byte) error {
	var wire struct {
		Stateful  map[string]string `json:"stateful"`
		Stateless map[string]string `json:"stateless"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("key_map: %w", err)
	}

	stateful, err := decodeHexByteMap(wire.Stateful)
	if err != nil {
		return fmt.Errorf("key_map.stateful: %w", err)
	}
	stateless, err := decodeHexByteMap(wire.Stateless)
	if err != nil {
		return fmt.Errorf("key_map.stateless: %w", err)
	}

	k.Stateful = stateful
	k.Stateless = stateless
	return nil
}

func decodeHexByteMap(src map[string]string) (map[HexByte]string, error) {
	out := make(map[HexByte]string, len(src))
	for key, name := range src {
		b, err := parseHexByte(key)
		if err != nil {
			return nil, err
		}
		out[b] = name
	}
	return out, nil
}

func parseHexByte(s string) (byte, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(lower, "0x") {
		return 0, fmt.Errorf("expected a hex string starting with \"0x\", got %q", s)
	}
	digits := lower[2:]
	if len(digits) != 2 {
		return 0, fmt.Errorf("expected two hex digits after \"0x\", got %q", s)
	}
	n, err := strconv.ParseUint(digits, 16, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid hex digits in %q: %w", s, err)
	}
	return byte(n), nil
}

// MappingConfig is one entry of the `mappings` list, matching
// mapping.Config's shape at the config boundary (spec.md §6.1).
type MappingConfig struct {
	Keys    string `json:"keys"`
	Action  string `json:"action"`
	Trigger string `json:"trigger"`
}

// Diagnostics selects between the websocket action tap and a plain log
// tap (SPEC_FULL.md §6.5).
type Diagnostics struct {
	Enabled bool   `json:"enabled"`
	Addr    string `json:"addr"`
}

// General holds ambient settings that are not part of the core
// input-to-action pipeline: debug verbosity and an optional log file.
type General struct {
	Debug   bool   `json:"debug"`
	LogFile string `json:"log_file"`
}

// Config is the top-level configuration document (spec.md §6.1).
type Config struct {
	Device      Device          `json:"device"`
	KeyMap      KeyMap          `json:"key_map"`
	Mappings    []MappingConfig `json:"mappings"`
	Diagnostics Diagnostics     `json:"diagnostics"`
	General     General         `json:"general"`
}
