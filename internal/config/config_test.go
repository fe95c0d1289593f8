package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sitegen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
site:
  origin: https://www.example.in
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://www.example.in", cfg.Site.Origin)
	assert.Equal(t, "Project Marketing Site", cfg.Site.Name)
	assert.Equal(t, "./content", cfg.Content.Root)
	assert.Equal(t, "./dist", cfg.Output.Directory)
	assert.Equal(t, "./index.html", cfg.Shell.Template)
	assert.Equal(t, "./dist/.vite/manifest.json", cfg.Shell.Manifest)
	assert.Equal(t, "src/main.tsx", cfg.Shell.Entry)
	assert.Equal(t, "weekly", cfg.Sitemap.ChangeFreq)
	assert.Equal(t, "0.8", cfg.Sitemap.Priority)
	assert.Equal(t, 4173, cfg.Preview.Port)
}

func TestLoadTrimsTrailingSlashFromOrigin(t *testing.T) {
	path := writeConfig(t, `
site:
  origin: https://www.example.in/
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://www.example.in", cfg.Site.Origin)
}

func TestLoadRequiresOrigin(t *testing.T) {
	path := writeConfig(t, `
site:
  name: No Origin Homes
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "site.origin is required")
}

func TestLoadOriginFromEnv(t *testing.T) {
	t.Setenv("SITEGEN_ORIGIN", "https://env.example.in")
	path := writeConfig(t, `
site:
  name: Env Homes
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.in", cfg.Site.Origin)
}

func TestLoadExpandsEnvVars(t *testing.T) {
	t.Setenv("CONTENT_DIR", "/srv/content")
	path := writeConfig(t, `
site:
  origin: https://www.example.in
content:
  root: ${CONTENT_DIR}
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/content", cfg.Content.Root)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration file not found")
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitegen.yaml")
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://www.example.com", cfg.Site.Origin)

	// Refuses to clobber without force.
	err = Init(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	require.NoError(t, Init(path, true))
}
