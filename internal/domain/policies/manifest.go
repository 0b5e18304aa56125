package policies

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type manifest struct {
	Policies []Policy `yaml:"policies"`
}

// LoadManifest reads a policy manifest from a YAML file. Every policy is
// validated on load so a broken manifest fails before anything is applied.
func LoadManifest(path string) ([]Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy manifest %s: %w", path, err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse policy manifest %s: %w", path, err)
	}
	if len(m.Policies) == 0 {
		return nil, fmt.Errorf("policy manifest %s contains no policies", path)
	}

	for i := range m.Policies {
		if len(m.Policies[i].Roles) == 0 {
			m.Policies[i].Roles = []string{"authenticated"}
		}
		if err := m.Policies[i].Validate(); err != nil {
			return nil, fmt.Errorf("policy manifest %s: %w", path, err)
		}
	}

	return m.Policies, nil
}
