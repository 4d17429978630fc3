// Package figtext extracts visible text from design-document trees: nested
// frames, sections, component instances and text leaves as supplied by a
// design-tool host.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, etree/, goquery/), and the
// traversal engine itself lives in extract/.
package figtext
