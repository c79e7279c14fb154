package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default("Ana")
	assert.Equal(t, "Ana", cfg.Profile.Name)
	assert.Equal(t, 1, cfg.Accounts.Default)
	assert.Equal(t, 2, cfg.Accounts.Card)
	assert.Equal(t, "rules/mapping-rules.yaml", cfg.Rules.Path)
	assert.Equal(t, "grana.db", cfg.Database.Path)
	assert.False(t, cfg.Wedding.Enabled)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grana.yaml")
	cfg := Default("Ana")
	cfg.Wedding.Enabled = true
	cfg.Accounts.Card = 7

	require.NoError(t, Save(path, cfg))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grana.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profile: [unclosed"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}
