// Package config loads the application's YAML settings and the JSON image
// list fixtures used to seed a pool without scanning a directory.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tokenforge/image-pool-go/internal/types"
	"gopkg.in/yaml.v3"
)

type ConfigImpl struct{}

// LoadConfig reads a JSON fixture listing the pool's image file IDs.
func (c *ConfigImpl) LoadConfig(path string) (types.ConfigPool, error) {
	file, err := os.Open(path)
	if err != nil {
		return types.ConfigPool{}, fmt.Errorf("open pool fixture %s: %w", path, err)
	}
	defer file.Close()
	var cfg types.ConfigPool
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return types.ConfigPool{}, fmt.Errorf("decode pool fixture %s: %w", path, err)
	}
	return cfg, nil
}

// LoadYAML reads the application configuration (images dir, working dir,
// WAL sizing and formatter choice).
func (c *ConfigImpl) LoadYAML(path string) (YAMLConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		return YAMLConfig{}, fmt.Errorf("open config %s: %w", path, err)
	}
	defer file.Close()
	var cfg YAMLConfig
	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return YAMLConfig{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}
