package loaders

import (
	"os"
	"path/filepath"
	"testing"
)

const validDocument = `{
	"device": {"winusb": {"vid": "0x0483", "pid": "0x5750"}},
	"key_map": {"stateful": {"0x01": "MOD_SIDE"}, "stateless": {"0x0a": "TALL"}},
	"mappings": [{"keys": "MOD_SIDE+TALL", "action": "CTRL+C", "trigger": "on_press"}],
	"diagnostics": {"enabled": false},
	"general": {"debug": true}
}`

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadConfigSuccess(t *testing.T) {
	path := writeTempConfig(t, validDocument)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.General.Debug {
		t.Error("expected general.debug to be true")
	}
	if cfg.Diagnostics.Addr != "localhost:8787" {
		t.Errorf("expected the default diagnostics.addr to survive decoding, got %q", cfg.Diagnostics.Addr)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestLoadConfigMalformedJSON(t *testing.T) {
	path := writeTempConfig(t, `{"device": {`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
}

func TestLoadConfigFailsValidation(t *testing.T) {
	path := writeTempConfig(t, `{"device": {"winusb": {"vid": "0x0483", "pid": "0x5750"}}, "mappings": []}`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected a validation error")
	}
}

func TestLoadConfigRejectsPathTraversal(t *testing.T) {
	if _, err := LoadConfig("../../etc/passwd/../config.json"); err == nil {
		t.Fatal("expected path traversal to be rejected")
	}
}
