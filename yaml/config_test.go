package yaml_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/figtext"
	"github.com/fwojciec/figtext/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("loads yaml", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "figtext.yaml", `
database: /tmp/figtext.db
exclusions:
  names: [Debug]
  sectionPrefixes: ["WIP "]
  components: [StatusBar]
  componentMatch: nearest-ancestor
targetKinds: [FRAME, SECTION]
resolveConcurrency: 4
target:
  headers: always
  componentHeaders: false
page:
  sections: false
`)

		cfg, err := yaml.LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, "/tmp/figtext.db", cfg.Database)
		assert.Equal(t, []string{"Debug"}, cfg.Exclusions.Names)
		assert.Equal(t, figtext.MatchNearestAncestor, cfg.Exclusions.ComponentMatch)

		target, err := cfg.TargetOptions()
		require.NoError(t, err)
		assert.Equal(t, []figtext.Kind{figtext.KindFrame, figtext.KindSection}, target.TargetKinds)
		assert.Equal(t, figtext.HeadersAlways, target.TargetHeaders)
		assert.False(t, target.ComponentHeaders)
		assert.Equal(t, 4, target.ResolveConcurrency)
		assert.Equal(t, []string{"StatusBar"}, target.Exclusions.Components)

		page, err := cfg.PageOptions()
		require.NoError(t, err)
		assert.False(t, page.Sections)
		assert.Equal(t, figtext.HeadersNever, page.TargetHeaders)
		assert.Equal(t, []string{"WIP "}, page.Exclusions.SectionPrefixes)
	})

	t.Run("loads json", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "figtext.json", `{"exclusions":{"components":["Keyboard"]},"page":{"componentHeaders":true}}`)

		cfg, err := yaml.LoadConfig(path)

		require.NoError(t, err)
		page, err := cfg.PageOptions()
		require.NoError(t, err)
		assert.True(t, page.ComponentHeaders)
		assert.True(t, page.Sections)
		assert.Equal(t, []string{"Keyboard"}, page.Exclusions.Components)
	})

	t.Run("falls back to json for unknown extensions", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "figtextrc", `{"database": "x.db"}`)

		cfg, err := yaml.LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, "x.db", cfg.Database)
	})

	t.Run("keeps mode defaults when empty", func(t *testing.T) {
		t.Parallel()

		cfg, err := yaml.LoadConfig(writeFile(t, "empty.yaml", ""))

		require.NoError(t, err)
		target, err := cfg.TargetOptions()
		require.NoError(t, err)
		assert.Equal(t, figtext.DefaultTargetOptions(), target)
	})

	t.Run("returns EINVALID for unknown component match", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.LoadConfig(writeFile(t, "bad.yaml", "exclusions:\n  componentMatch: fuzzy\n"))

		require.Error(t, err)
		assert.Equal(t, figtext.EINVALID, figtext.ErrorCode(err))
	})

	t.Run("returns EINVALID for unsupported target kinds", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.LoadConfig(writeFile(t, "bad.yaml", "targetKinds: [TEXT]\n"))

		require.Error(t, err)
		assert.Equal(t, figtext.EINVALID, figtext.ErrorCode(err))
	})

	t.Run("returns EINVALID for unknown header mode", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.LoadConfig(writeFile(t, "bad.yaml", "target:\n  headers: sometimes\n"))

		require.Error(t, err)
		assert.Equal(t, figtext.EINVALID, figtext.ErrorCode(err))
	})

	t.Run("returns EINVALID for malformed yaml", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.LoadConfig(writeFile(t, "bad.yml", "exclusions: [unclosed\n"))

		require.Error(t, err)
		assert.Equal(t, figtext.EINVALID, figtext.ErrorCode(err))
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))

		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestConfig_Nil(t *testing.T) {
	t.Parallel()

	var cfg *yaml.Config

	target, err := cfg.TargetOptions()
	require.NoError(t, err)
	assert.Equal(t, figtext.DefaultTargetOptions(), target)

	page, err := cfg.PageOptions()
	require.NoError(t, err)
	assert.Equal(t, figtext.DefaultPageOptions(), page)
}
