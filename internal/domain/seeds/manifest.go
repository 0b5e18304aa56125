package seeds

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type manifest struct {
	Entries []Entry `yaml:"entries"`
}

// LoadManifest reads seed entries from a YAML file. Every entry is validated
// on load so a broken manifest fails before anything is written.
func LoadManifest(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed manifest %s: %w", path, err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse seed manifest %s: %w", path, err)
	}
	if len(m.Entries) == 0 {
		return nil, fmt.Errorf("seed manifest %s contains no entries", path)
	}

	for i := range m.Entries {
		if err := m.Entries[i].Validate(); err != nil {
			return nil, fmt.Errorf("seed manifest %s: %w", path, err)
		}
	}

	return m.Entries, nil
}

// Merge overlays manifest entries onto the defaults. A manifest entry with a
// key that already exists replaces the default; new keys are appended in
// manifest order.
func Merge(defaults, overrides []Entry) []Entry {
	merged := make([]Entry, len(defaults))
	copy(merged, defaults)

	index := make(map[string]int, len(merged))
	for i, e := range merged {
		index[e.Key] = i
	}

	for _, o := range overrides {
		if i, ok := index[o.Key]; ok {
			merged[i] = o
			continue
		}
		index[o.Key] = len(merged)
		merged = append(merged, o)
	}

	return merged
}
