package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Environment names a config file for one environment.
type Environment struct {
	Name   string `yaml:"name" toml:"name"`
	Config string `yaml:"config" toml:"config"`
}

// File is the on-disk picker definition.
type File struct {
	DefaultEnvironment string        `yaml:"defaultEnvironment" toml:"defaultEnvironment"`
	Environments       []Environment `yaml:"environments" toml:"environments"`
	Categories         []Definition  `yaml:"categories" toml:"categories"`
}

// LoadFile reads a definition file. The format follows the extension:
// .toml for TOML, anything else is parsed as YAML.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read definition file: %w", err)
	}
	var file File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &file); err != nil {
			return File{}, fmt.Errorf("parse definition file %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &file); err != nil {
			return File{}, fmt.Errorf("parse definition file %s: %w", path, err)
		}
	}
	if err := file.Validate(); err != nil {
		return File{}, fmt.Errorf("definition file %s: %w", path, err)
	}
	return file, nil
}

// Validate checks environment and category entries.
func (f File) Validate() error {
	seen := make(map[string]struct{}, len(f.Environments))
	for i, env := range f.Environments {
		name := strings.TrimSpace(env.Name)
		if name == "" {
			return fmt.Errorf("environment %d: name is required", i)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("environment %q: duplicate name", name)
		}
		seen[name] = struct{}{}
		if strings.TrimSpace(env.Config) == "" {
			return fmt.Errorf("environment %q: config location is required", name)
		}
	}
	if f.DefaultEnvironment != "" && len(f.Environments) > 0 {
		if _, ok := seen[f.DefaultEnvironment]; !ok {
			return fmt.Errorf("default environment %q is not declared", f.DefaultEnvironment)
		}
	}
	return Validate(f.Categories)
}
