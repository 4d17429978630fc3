package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/figtext"
	main "github.com/fwojciec/figtext/cmd/figtext"
	"github.com/fwojciec/figtext/mock"
	"github.com/fwojciec/figtext/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedDocument() *figtext.Document {
	return &figtext.Document{
		ID:   "doc-1",
		Name: "Onboarding",
		Pages: []*figtext.Node{
			{ID: "0:1", Name: "Home", Kind: figtext.KindPage, Visible: true},
			{ID: "0:2", Name: "Settings", Kind: figtext.KindPage, Visible: true},
		},
	}
}

func storeLoader(resolver figtext.ComponentResolver) *main.Loader {
	return &main.Loader{
		Documents: &mock.DocumentService{
			FindDocumentByIDFn: func(_ context.Context, id string) (*figtext.Document, error) {
				if id != "doc-1" {
					return nil, figtext.Errorf(figtext.ENOTFOUND, "document not found")
				}
				return storedDocument(), nil
			},
		},
		StoreResolver: func(string) figtext.ComponentResolver { return resolver },
	}
}

func TestExtractCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("merges config and flag options", func(t *testing.T) {
		t.Parallel()

		resolver := &mock.ComponentResolver{}
		var gotPage *figtext.Node
		var gotNames []string
		var gotOpts figtext.Options
		var gotResolver figtext.ComponentResolver
		ex := &mock.Extractor{
			ExtractTargetsFn: func(_ context.Context, page *figtext.Node, names []string, opts figtext.Options) (string, error) {
				gotPage, gotNames, gotOpts = page, names, opts
				return "Welcome\n", nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Config: &yaml.Config{Exclusions: figtext.ExclusionSpec{Components: []string{"StatusBar"}}},
			Loader: storeLoader(resolver),
			NewExtractor: func(r figtext.ComponentResolver) figtext.Extractor {
				gotResolver = r
				return ex
			},
		}

		cmd := &main.ExtractCmd{
			Source:         "db:doc-1",
			Frames:         []string{"Login", "Signup"},
			SkipComponents: []string{"Keyboard"},
			Exclude:        []string{"Debug"},
			ComponentMatch: "nearest-ancestor",
			Page:           "Settings",
		}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "Welcome\n", stdout.String())
		assert.Equal(t, "Settings", gotPage.Name)
		assert.Equal(t, []string{"Login", "Signup"}, gotNames)
		assert.Equal(t, []string{"StatusBar", "Keyboard"}, gotOpts.Exclusions.Components)
		assert.Equal(t, []string{"Debug"}, gotOpts.Exclusions.Names)
		assert.Equal(t, figtext.MatchNearestAncestor, gotOpts.Exclusions.ComponentMatch)
		assert.Equal(t, figtext.HeadersAuto, gotOpts.TargetHeaders)
		assert.Same(t, resolver, gotResolver)
	})

	t.Run("reports unknown pages", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:          context.Background(),
			Stdout:       &bytes.Buffer{},
			Stderr:       stderr,
			Loader:       storeLoader(nil),
			NewExtractor: func(figtext.ComponentResolver) figtext.Extractor { return &mock.Extractor{} },
		}

		err := (&main.ExtractCmd{Source: "db:doc-1", Frames: []string{"Login"}, Page: "Nope"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, figtext.ENOTFOUND, figtext.ErrorCode(err))
		assert.Contains(t, stderr.String(), `page "Nope" not found`)
	})

	t.Run("reports missing frames", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		ex := &mock.Extractor{
			ExtractTargetsFn: func(context.Context, *figtext.Node, []string, figtext.Options) (string, error) {
				return "", figtext.Errorf(figtext.ENOTFOUND, "%s", figtext.MsgNoMatchingFrames)
			},
		}
		deps := &main.Dependencies{
			Ctx:          context.Background(),
			Stdout:       &bytes.Buffer{},
			Stderr:       stderr,
			Loader:       storeLoader(nil),
			NewExtractor: func(figtext.ComponentResolver) figtext.Extractor { return ex },
		}

		err := (&main.ExtractCmd{Source: "db:doc-1", Frames: []string{"A", "B"}}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, "error: No matching frames found.\n", stderr.String())
	})

	t.Run("writes one export per frame", func(t *testing.T) {
		t.Parallel()

		ex := &mock.Extractor{
			ExtractTargetsFn: func(_ context.Context, _ *figtext.Node, names []string, _ figtext.Options) (string, error) {
				if names[0] == "Missing" {
					return "", figtext.Errorf(figtext.ENOTFOUND, "%s", figtext.MsgNoMatchingFrame)
				}
				return names[0] + " text\n", nil
			},
		}
		var gotDir string
		var exports []*figtext.Export
		writer := &mock.ExportWriter{
			WriteExportFn: func(_ context.Context, e *figtext.Export) error {
				exports = append(exports, e)
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:          context.Background(),
			Stdout:       stdout,
			Stderr:       stderr,
			Loader:       storeLoader(nil),
			NewExtractor: func(figtext.ComponentResolver) figtext.Extractor { return ex },
			NewExportWriter: func(dir string) figtext.ExportWriter {
				gotDir = dir
				return writer
			},
		}

		cmd := &main.ExtractCmd{Source: "db:doc-1", Frames: []string{"Login", "Missing", "Signup"}, Out: "out"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "out", gotDir)
		require.Len(t, exports, 2)
		assert.Equal(t, "Onboarding", exports[0].Document)
		assert.Equal(t, "Home", exports[0].Page)
		assert.Equal(t, "Login", exports[0].Target)
		assert.Equal(t, "Login text\n", exports[0].Text)
		assert.False(t, exports[0].ExtractedAt.IsZero())
		assert.Equal(t, "Signup", exports[1].Target)
		assert.Equal(t, "warning: frame \"Missing\" not found\n", stderr.String())
		assert.Equal(t, "Wrote 2 of 3 frames to out\n", stdout.String())
	})

	t.Run("fails when no exported frame exists", func(t *testing.T) {
		t.Parallel()

		ex := &mock.Extractor{
			ExtractTargetsFn: func(context.Context, *figtext.Node, []string, figtext.Options) (string, error) {
				return "", figtext.Errorf(figtext.ENOTFOUND, "%s", figtext.MsgNoMatchingFrame)
			},
		}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:             context.Background(),
			Stdout:          &bytes.Buffer{},
			Stderr:          stderr,
			Loader:          storeLoader(nil),
			NewExtractor:    func(figtext.ComponentResolver) figtext.Extractor { return ex },
			NewExportWriter: func(string) figtext.ExportWriter { return &mock.ExportWriter{} },
		}

		err := (&main.ExtractCmd{Source: "db:doc-1", Frames: []string{"A", "B"}, Out: "out"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, figtext.ENOTFOUND, figtext.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error: No matching frames found.\n")
	})
}

func TestPageCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("passes whole-page exclusions", func(t *testing.T) {
		t.Parallel()

		var gotOpts figtext.Options
		ex := &mock.Extractor{
			ExtractPageFn: func(_ context.Context, page *figtext.Node, opts figtext.Options) (string, error) {
				gotOpts = opts
				return "Frame: Home\n", nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:          context.Background(),
			Stdout:       stdout,
			Stderr:       &bytes.Buffer{},
			Loader:       storeLoader(nil),
			NewExtractor: func(figtext.ComponentResolver) figtext.Extractor { return ex },
		}

		cmd := &main.PageCmd{
			Source:            "db:doc-1",
			ExcludeComponents: []string{"Keyboard"},
			ExcludeSections:   []string{"WIP"},
		}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "Frame: Home\n", stdout.String())
		assert.Equal(t, []string{"Keyboard"}, gotOpts.Exclusions.Components)
		assert.Equal(t, []string{"WIP"}, gotOpts.Exclusions.SectionPrefixes)
		assert.True(t, gotOpts.Sections)
		assert.Equal(t, figtext.HeadersNever, gotOpts.TargetHeaders)
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Config: &yaml.Config{TargetKinds: []string{"TEXT"}},
			Loader: storeLoader(nil),
		}

		err := (&main.PageCmd{Source: "db:doc-1"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, figtext.EINVALID, figtext.ErrorCode(err))
	})
}
