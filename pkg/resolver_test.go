package docbump

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
)

// fakeRepo returns canned answers and records the diff request.
type fakeRepo struct {
	tag     string
	tagErr  error
	diff    string
	diffErr error

	diffCalls int
	gotRef    string
	gotTarget string
	gotPath   string
}

func (f *fakeRepo) LatestTag(ctx context.Context) (string, error) {
	return f.tag, f.tagErr
}

func (f *fakeRepo) Diff(ctx context.Context, reference, target, path string) (string, error) {
	f.diffCalls++
	f.gotRef, f.gotTarget, f.gotPath = reference, target, path
	return f.diff, f.diffErr
}

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func diffAdding(lines ...string) string {
	var b strings.Builder
	b.WriteString("diff --git a/src/interim_report.tex b/src/interim_report.tex\n")
	b.WriteString("--- a/src/interim_report.tex\n")
	b.WriteString("+++ b/src/interim_report.tex\n")
	fmt.Fprintf(&b, "@@ -5,0 +6,%d @@\n", len(lines))
	for _, l := range lines {
		b.WriteString("+" + l + "\n")
	}
	return b.String()
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		repo   *fakeRepo
		tag    string
		reason string
		class  ChangeClass
	}{
		{
			name:   "no tags",
			repo:   &fakeRepo{tagErr: fmt.Errorf("git describe: %w", ErrNoTags)},
			tag:    "v1.0.0",
			reason: ReasonFirstRelease,
		},
		{
			name:   "empty tag without error",
			repo:   &fakeRepo{},
			tag:    "v1.0.0",
			reason: ReasonFirstRelease,
		},
		{
			name:   "no added lines",
			repo:   &fakeRepo{tag: "v1.2.3", diff: "--- a/x\n+++ b/x\n@@ -4 +3,0 @@\n-removed\n"},
			tag:    "",
			reason: ReasonNoChange,
			class:  NoChange,
		},
		{
			name:   "empty diff",
			repo:   &fakeRepo{tag: "v1.2.3"},
			tag:    "",
			reason: ReasonNoChange,
			class:  NoChange,
		},
		{
			name:   "section bump",
			repo:   &fakeRepo{tag: "v1.2.3", diff: diffAdding(`\section{Evaluation}`)},
			tag:    "v1.3.0",
			reason: ReasonBump,
			class:  SectionLevel,
		},
		{
			name:   "subsection bump",
			repo:   &fakeRepo{tag: "v1.2.3", diff: diffAdding(`\subsection{Setup}`)},
			tag:    "v1.2.4",
			reason: ReasonBump,
			class:  MinorTextChange,
		},
		{
			name:   "plain text bump",
			repo:   &fakeRepo{tag: "v1.2.3", diff: diffAdding("We also measured latency.")},
			tag:    "v1.2.4",
			reason: ReasonBump,
			class:  MinorTextChange,
		},
		{
			name:   "malformed tag falls back to baseline",
			repo:   &fakeRepo{tag: "release-7", diff: diffAdding(`\section{New}`)},
			tag:    "v1.1.0",
			reason: ReasonBump,
			class:  SectionLevel,
		},
		{
			name:   "malformed tag patch",
			repo:   &fakeRepo{tag: "release-7", diff: diffAdding("text")},
			tag:    "v1.0.1",
			reason: ReasonBump,
			class:  MinorTextChange,
		},
		{
			name:   "header line only",
			repo:   &fakeRepo{tag: "v1.2.3", diff: "+++ b/src/interim_report.tex\n"},
			tag:    "",
			reason: ReasonNoChange,
			class:  NoChange,
		},
		{
			name:   "diff failure",
			repo:   &fakeRepo{tag: "v1.2.3", diffErr: errors.New("fatal: bad revision")},
			tag:    "",
			reason: ReasonDiffUnavailable,
		},
		{
			name:   "tag without v prefix",
			repo:   &fakeRepo{tag: "2.0.9", diff: diffAdding("x")},
			tag:    "v2.0.10",
			reason: ReasonBump,
			class:  MinorTextChange,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := NewResolver(tc.repo).Resolve(context.Background())
			if err != nil {
				t.Fatalf("Resolve returned error: %v", err)
			}
			if res.Tag() != tc.tag {
				t.Errorf("Tag() = %q, expected %q", res.Tag(), tc.tag)
			}
			if res.Reason != tc.reason {
				t.Errorf("Reason = %q, expected %q", res.Reason, tc.reason)
			}
			if res.Class != tc.class {
				t.Errorf("Class = %s, expected %s", res.Class, tc.class)
			}
			if res.Release != (tc.tag != "") {
				t.Errorf("Release = %v for tag %q", res.Release, tc.tag)
			}
		})
	}
}

func TestResolveNoTagsSkipsDiff(t *testing.T) {
	repo := &fakeRepo{tagErr: ErrNoTags, diff: diffAdding(`\section{X}`)}
	if _, err := NewResolver(repo).Resolve(context.Background()); err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if repo.diffCalls != 0 {
		t.Errorf("expected no diff request on first release, got %d", repo.diffCalls)
	}
}

func TestResolveTagLookupFailurePropagates(t *testing.T) {
	cause := errors.New("not a git repository")
	repo := &fakeRepo{tagErr: cause}
	res, err := NewResolver(repo).Resolve(context.Background())
	if err == nil {
		t.Fatalf("expected error, got result %+v", res)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected wrapped cause, got %v", err)
	}
	if errors.Is(err, ErrNoTags) {
		t.Error("lookup failure must not be reported as ErrNoTags")
	}
	if res.Tag() != "" {
		t.Errorf("expected empty tag on failure, got %q", res.Tag())
	}
}

func TestResolveRequestsTrackedFile(t *testing.T) {
	repo := &fakeRepo{tag: "v0.3.1"}
	r := NewResolver(repo)
	r.File = "paper/main.tex"
	r.Target = "main"
	if _, err := r.Resolve(context.Background()); err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if repo.gotRef != "v0.3.1" || repo.gotTarget != "main" || repo.gotPath != "paper/main.tex" {
		t.Errorf("Diff(%q, %q, %q), expected (v0.3.1, main, paper/main.tex)", repo.gotRef, repo.gotTarget, repo.gotPath)
	}

	// Zero values fall back to the defaults.
	r = &Resolver{Repo: repo}
	if _, err := r.Resolve(context.Background()); err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if repo.gotTarget != DefaultTarget || repo.gotPath != DefaultFile {
		t.Errorf("Diff target/path = %q/%q, expected defaults", repo.gotTarget, repo.gotPath)
	}
}

func TestResolveLogs(t *testing.T) {
	log := &recordingLogger{}
	r := NewResolver(&fakeRepo{tag: "release-7", diff: diffAdding(`\subsection{A}`)})
	r.Log = log
	if _, err := r.Resolve(context.Background()); err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	joined := strings.Join(log.lines, "\n")
	for _, want := range []string{`"release-7" is not a version`, "1 subsection marker(s)", "patch bump: v1.0.0 -> v1.0.1"} {
		if !strings.Contains(joined, want) {
			t.Errorf("log missing %q:\n%s", want, joined)
		}
	}
}

func TestResolveWithoutRepository(t *testing.T) {
	if _, err := (&Resolver{}).Resolve(context.Background()); err == nil {
		t.Error("expected error for resolver without repository")
	}
}

func TestNextTag(t *testing.T) {
	tag, err := NextTag(context.Background(), &fakeRepo{tag: "v1.2.3", diff: diffAdding(`\section{X}`)}, "")
	if err != nil {
		t.Fatalf("NextTag returned error: %v", err)
	}
	if tag != "v1.3.0" {
		t.Errorf("NextTag = %q, expected v1.3.0", tag)
	}
}

func TestResolveLargestComponentFallsBack(t *testing.T) {
	repo := &fakeRepo{tag: fmt.Sprintf("v1.%d.0", math.MaxInt), diff: diffAdding(`\section{X}`)}
	res, err := NewResolver(repo).Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if res.Tag() != "v1.1.0" {
		t.Errorf("Tag() = %q, expected v1.1.0", res.Tag())
	}
}
