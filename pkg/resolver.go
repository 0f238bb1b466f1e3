package docbump

import (
	"context"
	"errors"
	"fmt"
)

// DefaultFile is the tracked document when none is configured.
const DefaultFile = "src/interim_report.tex"

// DefaultTarget is the revision compared against the latest tag.
const DefaultTarget = "HEAD"

// ErrNoTags is returned by a Repository when it has no release tag yet.
var ErrNoTags = errors.New("no release tags found")

// Repository is the version control query surface the resolver needs.
type Repository interface {
	// LatestTag returns the most recent tag reachable from the current
	// revision. It returns an error wrapping ErrNoTags when there is none.
	LatestTag(ctx context.Context) (string, error)
	// Diff returns the zero-context unified diff of path between two revisions.
	Diff(ctx context.Context, reference, target, path string) (string, error)
}

// Logger receives diagnostics. *log.Logger and logging.Logger satisfy it.
type Logger interface {
	Printf(format string, args ...any)
}

// Reasons reported in Result.Reason.
const (
	ReasonFirstRelease    = "first-release"
	ReasonDiffUnavailable = "diff-unavailable"
	ReasonNoChange        = "no-change"
	ReasonBump            = "bump"
)

// Result describes the outcome of a resolution.
type Result struct {
	// Previous is the latest tag name, empty on a first release.
	Previous string
	// Reference is the version the bump was computed from.
	Reference Version
	// Next is only meaningful when Release is true.
	Next    Version
	Class   ChangeClass
	Release bool
	Reason  string
}

// Tag returns the tag to publish, or "" when no release is needed.
func (r Result) Tag() string {
	if !r.Release {
		return ""
	}
	return r.Next.String()
}

// Resolver computes the next release tag of a tracked document.
type Resolver struct {
	Repo    Repository
	File    string
	Target  string
	Markers Markers
	Log     Logger
}

// NewResolver returns a Resolver tracking DefaultFile against DefaultTarget
// with the default LaTeX markers.
func NewResolver(repo Repository) *Resolver {
	return &Resolver{
		Repo:    repo,
		File:    DefaultFile,
		Target:  DefaultTarget,
		Markers: DefaultMarkers(),
	}
}

func (r *Resolver) logf(format string, args ...any) {
	if r.Log == nil {
		return
	}
	r.Log.Printf(format, args...)
}

// Resolve determines the next release tag.
// The only error it returns is a tag lookup failure other than ErrNoTags;
// malformed tags and unavailable diffs degrade to a baseline or to no release.
func (r *Resolver) Resolve(ctx context.Context) (Result, error) {
	var res Result
	if r.Repo == nil {
		return res, errors.New("resolver has no repository")
	}

	// 1. Latest tag
	tag, err := r.Repo.LatestTag(ctx)
	if err != nil && !errors.Is(err, ErrNoTags) {
		return res, fmt.Errorf("failed to look up latest tag: %w", err)
	}
	if tag == "" {
		r.logf("no previous tag, releasing %s", Baseline)
		res.Reference = Baseline
		res.Next = Baseline
		res.Release = true
		res.Reason = ReasonFirstRelease
		return res, nil
	}
	res.Previous = tag

	// 2. Parse it
	ref, ok := ParseTag(tag)
	if !ok {
		r.logf("tag %q is not a version, using %s as reference", tag, ref)
	}
	res.Reference = ref

	file := r.File
	if file == "" {
		file = DefaultFile
	}
	target := r.Target
	if target == "" {
		target = DefaultTarget
	}

	// 3. Diff
	diff, err := r.Repo.Diff(ctx, tag, target, file)
	if err != nil {
		r.logf("diff of %s between %s and %s unavailable: %v", file, tag, target, err)
		res.Reason = ReasonDiffUnavailable
		return res, nil
	}

	// 4-5. Added lines and classification
	markers := r.Markers
	if markers.Section == nil && markers.Subsection == nil {
		markers = DefaultMarkers()
	}
	c := markers.Classify(AddedLines(diff))
	res.Class = c.Class
	r.logf("%s: %d added line(s), %d section marker(s), %d subsection marker(s) since %s",
		file, c.Added, c.Sections, c.Subsections, tag)

	// 6. Increment
	next, ok := ref.Bump(c.Class)
	if !ok {
		res.Reason = ReasonNoChange
		return res, nil
	}
	res.Next = next
	res.Release = true
	res.Reason = ReasonBump
	r.logf("%s bump: %s -> %s", c.Class, ref, next)
	return res, nil
}

// NextTag is a convenience wrapper around Resolve returning only the tag.
func NextTag(ctx context.Context, repo Repository, file string) (string, error) {
	r := NewResolver(repo)
	if file != "" {
		r.File = file
	}
	res, err := r.Resolve(ctx)
	if err != nil {
		return "", err
	}
	return res.Tag(), nil
}
