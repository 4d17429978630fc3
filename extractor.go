package figtext

import "context"

// HeaderMode controls whether each target's text is prefixed by its name.
type HeaderMode string

// Target header modes.
const (
	// HeadersAuto writes target headers only when more than one target
	// was located.
	HeadersAuto   HeaderMode = "auto"
	HeadersAlways HeaderMode = "always"
	HeadersNever  HeaderMode = "never"
)

// Options configures a single extraction call.
type Options struct {
	// Exclusions lists the names, section prefixes and components to skip.
	Exclusions ExclusionSpec

	// TargetKinds are the kinds the locator accepts for named targets.
	// Defaults to frames and groups.
	TargetKinds []Kind

	// TargetHeaders controls "<name>\n\n" blocks around each target.
	TargetHeaders HeaderMode

	// Sections annotates text with "<Kind>: <label>" on entering a section.
	Sections bool

	// ComponentHeaders writes "[Component: <name>]" before top-level instances.
	ComponentHeaders bool

	// ResolveConcurrency bounds concurrent main-component lookups.
	ResolveConcurrency int
}

// DefaultTargetKinds are the node kinds eligible as named targets.
var DefaultTargetKinds = []Kind{KindFrame, KindContainer}

// DefaultTargetOptions returns the options used for named-target extraction.
func DefaultTargetOptions() Options {
	return Options{
		TargetKinds:      DefaultTargetKinds,
		TargetHeaders:    HeadersAuto,
		ComponentHeaders: true,
	}
}

// DefaultPageOptions returns the options used for whole-page extraction.
func DefaultPageOptions() Options {
	return Options{
		TargetKinds:   DefaultTargetKinds,
		TargetHeaders: HeadersNever,
		Sections:      true,
	}
}

// Validate returns an error if the options contain invalid values.
func (o Options) Validate() error {
	switch o.TargetHeaders {
	case "", HeadersAuto, HeadersAlways, HeadersNever:
	default:
		return Errorf(EINVALID, "unknown target header mode %q", string(o.TargetHeaders))
	}
	if o.ResolveConcurrency < 0 {
		return Errorf(EINVALID, "resolve concurrency must not be negative")
	}
	return o.Exclusions.ComponentMatch.Validate()
}

// Extractor extracts visible text from a page of a design document.
//
// Within a target only Children are followed. Parent pointers, as set by
// Link, are consulted for what lies above a target: hidden ancestors and
// the enclosing component for nearest-ancestor exclusion. An unlinked page
// is treated as if every target sat directly under a visible root.
type Extractor interface {
	// ExtractTargets extracts text from every frame on the page whose name
	// is in names, in breadth-first discovery order.
	// Returns ENOTFOUND if no frame matches.
	ExtractTargets(ctx context.Context, page *Node, names []string, opts Options) (string, error)

	// ExtractPage extracts text from every first-level container on the page.
	// An empty page yields empty text, not an error.
	ExtractPage(ctx context.Context, page *Node, opts Options) (string, error)
}

// ComponentResolver looks up the main component an instance refers to.
// Implementations may block (e.g. on a database).
type ComponentResolver interface {
	// ResolveComponent returns the component with the given id.
	// Returns ENOTFOUND if the component does not exist.
	ResolveComponent(ctx context.Context, id string) (*Component, error)
}
