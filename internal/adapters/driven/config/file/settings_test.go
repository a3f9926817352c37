package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/filingwatch/internal/core/domain"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultSettings(), settings)
}

func TestLoadLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `identity = "Example Corp admin@example.com"
form_types = ["8-K", "8-K/A"]
rate_limit = 8.0
run_timeout = "30m"

[schedule]
enabled = true
interval = "2h"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	settings, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Example Corp admin@example.com", settings.Identity)
	assert.Equal(t, []string{"8-K", "8-K/A"}, settings.FormTypes)
	assert.Equal(t, 8.0, settings.RateLimit)
	assert.Equal(t, 30*time.Minute, settings.RunTimeout)
	assert.True(t, settings.Schedule.Enabled)
	assert.Equal(t, 2*time.Hour, settings.Schedule.Interval)

	// Unset values keep defaults.
	assert.Equal(t, domain.DefaultSettings().Workers, settings.Workers)
	assert.Equal(t, domain.DefaultSettings().RetryMax, settings.RetryMax)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`run_timeout = "soon"`), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("identity = [unclosed"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	want := domain.DefaultSettings()
	want.Identity = "Example Corp admin@example.com"
	want.Workers = 8
	want.MappingFile = "/var/lib/filingwatch/company_tickers.json"
	want.Schedule.Enabled = true

	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
