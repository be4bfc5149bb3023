package boss

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadConfigFromBytes parses a single archetype definition from YAML.
// Unknown fields are rejected.
//
// Postcondition: Returns a validated *Config, or an error.
func LoadConfigFromBytes(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing boss yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDirectory reads every *.yaml file in dir as one archetype definition and
// returns the validated Catalog.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns a Catalog covering every archetype, or an error
// wrapping ErrInvalidCatalog (or the underlying I/O/parse error).
func LoadDirectory(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading boss dir %q: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	configs := make([]*Config, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		cfg, err := LoadConfigFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidCatalog, path, err)
		}
		configs = append(configs, cfg)
	}
	return NewCatalog(configs...)
}
