// Package yaml loads figtext configuration files.
package yaml

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/fwojciec/figtext"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration. Zero values keep the built-in
// defaults of each extraction mode.
type Config struct {
	// Database is the document store path.
	Database string `yaml:"database" json:"database"`

	// Exclusions apply to every request on top of request-level exclusions.
	Exclusions figtext.ExclusionSpec `yaml:"exclusions" json:"exclusions"`

	// TargetKinds are host type names accepted as named targets, e.g.
	// FRAME, GROUP, SECTION.
	TargetKinds []string `yaml:"targetKinds" json:"targetKinds"`

	// ResolveConcurrency bounds concurrent main-component lookups.
	ResolveConcurrency int `yaml:"resolveConcurrency" json:"resolveConcurrency"`

	Target ModeConfig `yaml:"target" json:"target"`
	Page   ModeConfig `yaml:"page" json:"page"`
}

// ModeConfig holds the format toggles of one extraction mode.
type ModeConfig struct {
	Headers          figtext.HeaderMode `yaml:"headers" json:"headers"`
	Sections         *bool              `yaml:"sections" json:"sections"`
	ComponentHeaders *bool              `yaml:"componentHeaders" json:"componentHeaders"`
}

// LoadConfig reads a YAML or JSON config file. The format follows the file
// extension; unknown extensions are tried as YAML, then JSON.
func LoadConfig(path string) (*Config, error) {
	var c Config
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, figtext.Errorf(figtext.EINVALID, "parse yaml: %v", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &c); err != nil {
			return nil, figtext.Errorf(figtext.EINVALID, "parse json: %v", err)
		}
	default:
		if err := yaml.Unmarshal(b, &c); err != nil {
			if jerr := json.Unmarshal(b, &c); jerr != nil {
				return nil, figtext.Errorf(figtext.EINVALID, "parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &c, nil
}

// Validate returns an error if the config contains invalid values.
func (c *Config) Validate() error {
	if err := c.Exclusions.ComponentMatch.Validate(); err != nil {
		return err
	}
	if _, err := c.targetKinds(); err != nil {
		return err
	}
	if c.ResolveConcurrency < 0 {
		return figtext.Errorf(figtext.EINVALID, "resolveConcurrency must not be negative")
	}
	for _, m := range []figtext.HeaderMode{c.Target.Headers, c.Page.Headers} {
		if err := (figtext.Options{TargetHeaders: m}).Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) targetKinds() ([]figtext.Kind, error) {
	if len(c.TargetKinds) == 0 {
		return nil, nil
	}
	kinds := make([]figtext.Kind, 0, len(c.TargetKinds))
	for _, s := range c.TargetKinds {
		k := figtext.ParseKind(s)
		if k == figtext.KindOther || k == figtext.KindText || k == figtext.KindPage {
			return nil, figtext.Errorf(figtext.EINVALID, "unsupported target kind %q", s)
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// TargetOptions returns the named-target options with the config applied.
// A nil Config yields the defaults.
func (c *Config) TargetOptions() (figtext.Options, error) {
	if c == nil {
		return figtext.DefaultTargetOptions(), nil
	}
	return c.apply(figtext.DefaultTargetOptions(), c.Target)
}

// PageOptions returns the whole-page options with the config applied.
// A nil Config yields the defaults.
func (c *Config) PageOptions() (figtext.Options, error) {
	if c == nil {
		return figtext.DefaultPageOptions(), nil
	}
	return c.apply(figtext.DefaultPageOptions(), c.Page)
}

func (c *Config) apply(opts figtext.Options, m ModeConfig) (figtext.Options, error) {
	kinds, err := c.targetKinds()
	if err != nil {
		return opts, err
	}
	if kinds != nil {
		opts.TargetKinds = kinds
	}

	opts.Exclusions.Names = slices.Clone(c.Exclusions.Names)
	opts.Exclusions.SectionPrefixes = slices.Clone(c.Exclusions.SectionPrefixes)
	opts.Exclusions.Components = slices.Clone(c.Exclusions.Components)
	opts.Exclusions.ComponentMatch = c.Exclusions.ComponentMatch

	if c.ResolveConcurrency > 0 {
		opts.ResolveConcurrency = c.ResolveConcurrency
	}
	if m.Headers != "" {
		opts.TargetHeaders = m.Headers
	}
	if m.Sections != nil {
		opts.Sections = *m.Sections
	}
	if m.ComponentHeaders != nil {
		opts.ComponentHeaders = *m.ComponentHeaders
	}
	return opts, opts.Validate()
}
