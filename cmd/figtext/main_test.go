package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	main "github.com/fwojciec/figtext/cmd/figtext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMain(t *testing.T) *main.Main {
	t.Helper()
	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "figtext.db")
	m.Stdin = strings.NewReader("")
	return m
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("extracts named frames from a file", func(t *testing.T) {
		t.Parallel()

		path := writeFixture(t, "onboarding.json", onboardingJSON)
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		err := newTestMain(t).Run(context.Background(), []string{"extract", path, "--frame", "Login"}, stdout, stderr)

		require.NoError(t, err)
		assert.Equal(t, "Welcome\n[Component: Btn]\nSubmit\n", stdout.String())
	})

	t.Run("skips component instances", func(t *testing.T) {
		t.Parallel()

		path := writeFixture(t, "onboarding.json", onboardingJSON)
		stdout := &bytes.Buffer{}

		err := newTestMain(t).Run(context.Background(), []string{"extract", path, "-f", "Login", "--skip-component", "ButtonComp"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Equal(t, "Welcome\n", stdout.String())
	})

	t.Run("reports missing frames", func(t *testing.T) {
		t.Parallel()

		path := writeFixture(t, "onboarding.json", onboardingJSON)
		stderr := &bytes.Buffer{}

		err := newTestMain(t).Run(context.Background(), []string{"extract", path, "-f", "Nope"}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "No matching frame found.")
	})

	t.Run("exports frames to files", func(t *testing.T) {
		t.Parallel()

		path := writeFixture(t, "onboarding.json", onboardingJSON)
		out := t.TempDir()
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		err := newTestMain(t).Run(context.Background(), []string{"extract", path, "-f", "Login", "-f", "Nope", "--out", out}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), `warning: frame "Nope" not found`)
		content, err := os.ReadFile(filepath.Join(out, "screens", "login.txt"))
		require.NoError(t, err)
		assert.Contains(t, string(content), "document: Onboarding\npage: Screens\ntarget: Login\n")
		assert.True(t, strings.HasSuffix(string(content), "---\n\nWelcome\n[Component: Btn]\nSubmit\n"))
	})

	t.Run("extracts a whole page with section labels", func(t *testing.T) {
		t.Parallel()

		path := writeFixture(t, "onboarding.json", onboardingJSON)
		stdout := &bytes.Buffer{}

		err := newTestMain(t).Run(context.Background(), []string{"page", path}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Equal(t, "Frame: Login\nWelcome\nSubmit\nSection: WIP Signup\nComing soon\n", stdout.String())
	})

	t.Run("excludes sections by prefix", func(t *testing.T) {
		t.Parallel()

		path := writeFixture(t, "onboarding.json", onboardingJSON)
		stdout := &bytes.Buffer{}

		err := newTestMain(t).Run(context.Background(), []string{"page", path, "--exclude-section", "WIP"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Equal(t, "Frame: Login\nWelcome\nSubmit\n", stdout.String())
	})

	t.Run("applies a config file", func(t *testing.T) {
		t.Parallel()

		path := writeFixture(t, "onboarding.json", onboardingJSON)
		config := writeFixture(t, "figtext.yaml", "exclusions:\n  sectionPrefixes: [WIP]\n  components: [ButtonComp]\npage:\n  sections: false\n")
		stdout := &bytes.Buffer{}

		err := newTestMain(t).Run(context.Background(), []string{"--config", config, "page", path}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Equal(t, "Welcome\n", stdout.String())
	})

	t.Run("rejects unsupported file types", func(t *testing.T) {
		t.Parallel()

		path := writeFixture(t, "notes.txt", "hello")
		stderr := &bytes.Buffer{}

		err := newTestMain(t).Run(context.Background(), []string{"page", path}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "unsupported file type")
	})

	t.Run("imports, lists, extracts and deletes stored documents", func(t *testing.T) {
		t.Parallel()

		path := writeFixture(t, "onboarding.json", onboardingJSON)
		m := newTestMain(t)
		ctx := context.Background()

		stdout := &bytes.Buffer{}
		require.NoError(t, m.Run(ctx, []string{"import", path}, stdout, &bytes.Buffer{}))
		assert.Contains(t, stdout.String(), `Imported "Onboarding" (1 pages, 8 nodes)`)

		var source string
		for _, line := range strings.Split(stdout.String(), "\n") {
			if s, ok := strings.CutPrefix(line, "Use it as "); ok {
				source = s
			}
		}
		require.True(t, strings.HasPrefix(source, "db:"), stdout.String())

		stdout.Reset()
		require.NoError(t, m.Run(ctx, []string{"docs"}, stdout, &bytes.Buffer{}))
		assert.Contains(t, stdout.String(), "Onboarding")
		assert.Contains(t, stdout.String(), source)

		stdout.Reset()
		require.NoError(t, m.Run(ctx, []string{"extract", source, "-f", "Login", "-s", "ButtonComp"}, stdout, &bytes.Buffer{}))
		assert.Equal(t, "Welcome\n", stdout.String())

		stdout.Reset()
		require.NoError(t, m.Run(ctx, []string{"delete", source, "--force"}, stdout, &bytes.Buffer{}))
		assert.Contains(t, stdout.String(), "Deleted document")

		stderr := &bytes.Buffer{}
		require.Error(t, m.Run(ctx, []string{"page", source}, &bytes.Buffer{}, stderr))
		assert.Contains(t, stderr.String(), "document not found")
	})

	t.Run("serves host requests", func(t *testing.T) {
		t.Parallel()

		path := writeFixture(t, "onboarding.json", onboardingJSON)
		m := newTestMain(t)
		m.Stdin = strings.NewReader(`{"type":"extract-text","frameNames":["Login"]}` + "\n" + `{"type":"close"}` + "\n")
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"serve", path}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Equal(t, `{"type":"extracted-text","text":"Welcome\n[Component: Btn]\nSubmit\n"}`+"\n", stdout.String())
	})

	t.Run("returns error without a command", func(t *testing.T) {
		t.Parallel()

		err := newTestMain(t).Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
	})

	t.Run("prints help", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}

		err := newTestMain(t).Run(context.Background(), []string{"--help"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "extract")
		assert.Contains(t, stdout.String(), "serve")
	})
}
