package extract

import (
	"strings"

	"github.com/fwojciec/figtext"
)

// section is the label inherited by all text under a frame, section or
// instance until a text line announces it.
type section struct {
	kind      figtext.Kind
	label     string
	announced bool
}

// accumulator is the ordered text buffer for one target.
type accumulator struct {
	b strings.Builder
}

func (a *accumulator) componentHeader(name string) {
	a.b.WriteString("[Component: ")
	a.b.WriteString(name)
	a.b.WriteString("]\n")
}

// sectionLabel writes "<Kind>: <label>" once per section.
func (a *accumulator) sectionLabel(s *section) {
	if s == nil || s.announced {
		return
	}
	s.announced = true
	a.b.WriteString(s.kind.Label())
	a.b.WriteString(": ")
	a.b.WriteString(s.label)
	a.b.WriteString("\n")
}

func (a *accumulator) text(characters string) {
	a.b.WriteString(characters)
	a.b.WriteString("\n")
}

func (a *accumulator) String() string {
	return a.b.String()
}
