package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed roles.yaml
var defaultRoles []byte

// RoleDefinition is one named capability bundle of the catalog.
type RoleDefinition struct {
	Name        string   `yaml:"name"`
	Superuser   bool     `yaml:"superuser"`
	Permissions []string `yaml:"permissions"`
}

// RoleCatalog lists every role and permission the application knows about.
// It is seeded into the database at startup.
type RoleCatalog struct {
	Roles       []RoleDefinition `yaml:"roles"`
	Permissions []string         `yaml:"permissions"`
}

// LoadRoleCatalog reads the catalog from path, or the embedded default when path is empty.
func LoadRoleCatalog(path string) (*RoleCatalog, error) {
	data := defaultRoles
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read role catalog: %w", err)
		}
	}
	return ParseRoleCatalog(data)
}

// ParseRoleCatalog decodes and validates a YAML catalog.
func ParseRoleCatalog(data []byte) (*RoleCatalog, error) {
	var catalog RoleCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse role catalog: %w", err)
	}

	known := make(map[string]struct{}, len(catalog.Permissions))
	for _, p := range catalog.Permissions {
		known[p] = struct{}{}
	}

	seen := make(map[string]struct{}, len(catalog.Roles))
	for _, role := range catalog.Roles {
		if role.Name == "" {
			return nil, fmt.Errorf("parse role catalog: role without name")
		}
		if _, dup := seen[role.Name]; dup {
			return nil, fmt.Errorf("parse role catalog: duplicate role %q", role.Name)
		}
		seen[role.Name] = struct{}{}
		for _, p := range role.Permissions {
			if _, ok := known[p]; !ok {
				return nil, fmt.Errorf("parse role catalog: role %q references unknown permission %q", role.Name, p)
			}
		}
	}

	return &catalog, nil
}

// HasRole reports whether name is a catalog role.
func (c *RoleCatalog) HasRole(name string) bool {
	for _, r := range c.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}
