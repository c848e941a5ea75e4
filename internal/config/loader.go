package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadReflex loads the reflex game configuration.
// Search order: customPath -> ~/.reflex/configs/reflex.yaml -> ./configs/reflex.yaml -> embedded default
func LoadReflex(customPath string) (ReflexConfig, error) {
	cfg := DefaultReflexConfig()
	if err := load("reflex", customPath, defaultReflexYAML, &cfg); err != nil {
		return DefaultReflexConfig(), err
	}
	return cfg, nil
}

// LoadFireworks loads the fireworks configuration.
// Search order: customPath -> ~/.reflex/configs/fireworks.yaml -> ./configs/fireworks.yaml -> embedded default
func LoadFireworks(customPath string) (FireworksConfig, error) {
	cfg := DefaultFireworksConfig()
	if err := load("fireworks", customPath, defaultFireworksYAML, &cfg); err != nil {
		return DefaultFireworksConfig(), err
	}
	return cfg, nil
}

// load decodes the first config found into out. Values already in out act as
// defaults for keys the file leaves unset. Only an explicit customPath can fail;
// broken files in the implicit locations are skipped.
func load(gameID, customPath string, embedded []byte, out any) error {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return nil
	}

	filename := gameID + ".yaml"
	for _, path := range []string{userConfigPath(filename), filepath.Join("configs", filename)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, out); err == nil {
			return nil
		}
	}

	//nolint:errcheck // Embedded YAML is covered by tests; out keeps hard-coded defaults otherwise
	yaml.Unmarshal(embedded, out)
	return nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".reflex", "configs", filename)
}
