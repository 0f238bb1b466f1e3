package docbump

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"golang.org/x/mod/semver"
)

// Version is the numeric major.minor.patch triple of a release tag.
type Version struct {
	Major int
	Minor int
	Patch int
}

// Baseline is the version used for the first release and as the reference
// when the latest tag cannot be parsed.
var Baseline = Version{Major: 1, Minor: 0, Patch: 0}

// tagPattern matches an optional "v" followed by three dot separated integers.
// Anything after the patch number (prerelease, build metadata, junk) is ignored.
var tagPattern = regexp.MustCompile(`^v?(\d+)\.(\d+)\.(\d+)`)

// ParseTag extracts the version triple from a tag name.
// If the tag does not match, or a component is too large to be bumped,
// it returns Baseline and ok == false. It never fails.
func ParseTag(tag string) (v Version, ok bool) {
	m := tagPattern.FindStringSubmatch(tag)
	if m == nil {
		return Baseline, false
	}
	var parts [3]int
	for i := range parts {
		n, err := strconv.Atoi(m[i+1])
		if err != nil || n == math.MaxInt {
			return Baseline, false
		}
		parts[i] = n
	}
	return Version{Major: parts[0], Minor: parts[1], Patch: parts[2]}, true
}

// String renders the version as a tag: v<major>.<minor>.<patch>.
func (v Version) String() string {
	return fmt.Sprintf("v%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0 or +1 as v is lower than, equal to or higher than w
// in semantic version order.
func (v Version) Compare(w Version) int {
	return semver.Compare(v.String(), w.String())
}

// Bump returns the version that follows v for the given change class.
// ok is false for NoChange, meaning no new version should be released.
func (v Version) Bump(class ChangeClass) (next Version, ok bool) {
	switch class {
	case SectionLevel:
		return Version{Major: v.Major, Minor: v.Minor + 1, Patch: 0}, true
	case MinorTextChange:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}, true
	default:
		return v, false
	}
}
