package budget

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadManifest reads a budget from a YAML file. Only the sections present in
// the file override the defaults; an omitted metrics or resource_kb section
// keeps the built-in limits.
func LoadManifest(path string) (*Budget, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read budget manifest %s: %w", path, err)
	}

	var loaded Budget
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse budget manifest %s: %w", path, err)
	}

	b := DefaultBudget()
	if loaded.Metrics != nil {
		b.Metrics = loaded.Metrics
	}
	if loaded.ResourceKB != nil {
		b.ResourceKB = loaded.ResourceKB
	}

	return b, nil
}
