package docbump

import (
	"fmt"
	"regexp"
	"strings"
)

// ChangeClass describes how the tracked file changed since the last release.
type ChangeClass int

const (
	// NoChange means no lines were added; nothing to release.
	NoChange ChangeClass = iota
	// MinorTextChange covers any addition that is not a new top-level section.
	MinorTextChange
	// SectionLevel means at least one added line opens a new top-level section.
	SectionLevel
)

// String returns the bump name associated with the class.
func (c ChangeClass) String() string {
	switch c {
	case SectionLevel:
		return "minor"
	case MinorTextChange:
		return "patch"
	default:
		return "none"
	}
}

const (
	// DefaultSectionPattern matches a LaTeX \section{ marker.
	DefaultSectionPattern = `\\section\s*\{`
	// DefaultSubsectionPattern matches a LaTeX \subsection{ marker.
	DefaultSubsectionPattern = `\\subsection\s*\{`
)

// Markers holds the two patterns used to classify added lines.
type Markers struct {
	Section    *regexp.Regexp
	Subsection *regexp.Regexp
}

// DefaultMarkers returns the LaTeX section and subsection markers.
func DefaultMarkers() Markers {
	return Markers{
		Section:    regexp.MustCompile(DefaultSectionPattern),
		Subsection: regexp.MustCompile(DefaultSubsectionPattern),
	}
}

// CompileMarkers builds Markers from two regular expressions.
// Empty patterns fall back to the defaults.
func CompileMarkers(section, subsection string) (Markers, error) {
	if section == "" {
		section = DefaultSectionPattern
	}
	if subsection == "" {
		subsection = DefaultSubsectionPattern
	}
	sec, err := regexp.Compile(section)
	if err != nil {
		return Markers{}, fmt.Errorf("invalid section pattern %q: %w", section, err)
	}
	sub, err := regexp.Compile(subsection)
	if err != nil {
		return Markers{}, fmt.Errorf("invalid subsection pattern %q: %w", subsection, err)
	}
	return Markers{Section: sec, Subsection: sub}, nil
}

// AddedLines returns the lines a unified diff adds, without their "+" prefix.
// File header lines ("+++ b/path") are not content and are skipped.
func AddedLines(diff string) []string {
	var added []string
	for _, line := range strings.Split(diff, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if !strings.HasPrefix(line, "+") || strings.HasPrefix(line, "+++") {
			continue
		}
		added = append(added, line[1:])
	}
	return added
}

// Classification is the outcome of inspecting a change set.
type Classification struct {
	Class ChangeClass
	// Added is the number of added lines inspected.
	Added int
	// Sections and Subsections count the lines matching each marker.
	Sections    int
	Subsections int
}

// Classify inspects the added lines against the markers.
// A subsection marker is counted but does not change the class: any non-empty
// change set without a section marker is a MinorTextChange.
func (m Markers) Classify(added []string) Classification {
	c := Classification{Added: len(added)}
	for _, line := range added {
		if m.Section != nil && m.Section.MatchString(line) {
			c.Sections++
		}
		if m.Subsection != nil && m.Subsection.MatchString(line) {
			c.Subsections++
		}
	}
	switch {
	case c.Added == 0:
		c.Class = NoChange
	case c.Sections > 0:
		c.Class = SectionLevel
	default:
		c.Class = MinorTextChange
	}
	return c
}
