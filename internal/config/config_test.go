package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var reflexCfg ReflexConfig
	if err := yaml.Unmarshal(GetDefaultYAML("reflex"), &reflexCfg); err != nil {
		t.Fatalf("embedded reflex.yaml does not parse: %v", err)
	}
	if !reflect.DeepEqual(reflexCfg, DefaultReflexConfig()) {
		t.Errorf("reflex.yaml = %+v\nexpected %+v", reflexCfg, DefaultReflexConfig())
	}

	var fwCfg FireworksConfig
	if err := yaml.Unmarshal(GetDefaultYAML("fireworks"), &fwCfg); err != nil {
		t.Fatalf("embedded fireworks.yaml does not parse: %v", err)
	}
	if !reflect.DeepEqual(fwCfg, DefaultFireworksConfig()) {
		t.Errorf("fireworks.yaml = %+v\nexpected %+v", fwCfg, DefaultFireworksConfig())
	}

	if GetDefaultYAML("pong") != nil {
		t.Error("unknown games have no embedded config")
	}
}

func TestLoadReflexCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reflex.yaml")
	data := []byte("session:\n  duration_secs: 60\n  lives: 9\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadReflex(path)
	if err != nil {
		t.Fatalf("LoadReflex() failed: %v", err)
	}
	if cfg.Session.DurationSecs != 60 || cfg.Session.Lives != 9 {
		t.Errorf("overrides not applied: %+v", cfg.Session)
	}
	// Keys absent from the file keep their defaults
	if cfg.Session.TargetSpeedMs != 2000 || cfg.Difficulty.MinSize != 30 {
		t.Errorf("defaults lost for unset keys: %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := LoadFireworks(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("spawn: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFireworks(bad)
	if err == nil {
		t.Error("malformed custom config should fail")
	}
	if !reflect.DeepEqual(cfg, DefaultFireworksConfig()) {
		t.Error("a failed load should still return defaults")
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		name     string
		preset   string
		duration int
		lives    int
	}{
		{"empty means normal", "", 30, 5},
		{"normal", "normal", 30, 5},
		{"easy", "easy", 45, 7},
		{"hard", "hard", 20, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			preset, err := ParsePreset(tc.preset)
			if err != nil {
				t.Fatalf("ParsePreset(%q) failed: %v", tc.preset, err)
			}
			cfg := DefaultReflexConfig()
			ApplyReflexPreset(&cfg, preset)
			if cfg.Session.DurationSecs != tc.duration || cfg.Session.Lives != tc.lives {
				t.Errorf("session = %+v, expected duration %d lives %d", cfg.Session, tc.duration, tc.lives)
			}
			if cfg.Difficulty != DefaultReflexConfig().Difficulty {
				t.Error("presets must not change difficulty floors")
			}
		})
	}

	if _, err := ParsePreset("insane"); err == nil {
		t.Error("unknown preset should be rejected")
	}
}
