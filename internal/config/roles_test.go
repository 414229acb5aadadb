package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRoleCatalog_Default(t *testing.T) {
	catalog, err := LoadRoleCatalog("")
	require.NoError(t, err)

	assert.True(t, catalog.HasRole("admin"))
	assert.True(t, catalog.HasRole("user"))
	assert.False(t, catalog.HasRole("nobody"))
	assert.Contains(t, catalog.Permissions, "invite users")
	assert.Contains(t, catalog.Permissions, "manage areas")

	for _, r := range catalog.Roles {
		if r.Name == "admin" {
			assert.True(t, r.Superuser)
		}
	}
}

func TestParseRoleCatalog_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown permission", "roles:\n  - name: a\n    permissions: [fly]\npermissions: [walk]\n"},
		{"duplicate role", "roles:\n  - name: a\n  - name: a\n"},
		{"missing name", "roles:\n  - superuser: true\n"},
		{"malformed", "roles: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRoleCatalog([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadRoleCatalog_MissingFile(t *testing.T) {
	_, err := LoadRoleCatalog("/nonexistent/roles.yaml")
	assert.Error(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("SMTP_PORT", "not-a-number")
	t.Setenv("RATELIMIT_ACCEPT_WINDOW", "30s")

	cfg := Load()
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, "30s", cfg.AcceptRateWindow.String())
}
