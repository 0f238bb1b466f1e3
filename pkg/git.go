package docbump

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// GitRepository answers Repository queries by running the git binary.
type GitRepository struct {
	// Dir is the working directory git runs in. Empty means the process cwd.
	Dir string
}

// NewGitRepository returns a GitRepository rooted at dir.
func NewGitRepository(dir string) *GitRepository {
	return &GitRepository{Dir: dir}
}

// CheckGit verifies that git is available on the system.
func CheckGit() error {
	cmd := exec.Command("git", "--version")
	if err := cmd.Run(); err != nil {
		return errors.New("git is not available on the system")
	}
	return nil
}

// git messages meaning the repository has no tag to describe.
var noTagMessages = []string{
	"No names found",
	"No tags can describe",
	"cannot describe anything",
}

func (g *GitRepository) run(ctx context.Context, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.Dir
	cmd.Env = append(os.Environ(), "LC_ALL=C")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// LatestTag returns the most recent tag reachable from HEAD.
func (g *GitRepository) LatestTag(ctx context.Context) (string, error) {
	out, stderr, err := g.run(ctx, "describe", "--tags", "--abbrev=0")
	if err != nil {
		for _, msg := range noTagMessages {
			if strings.Contains(stderr, msg) {
				return "", fmt.Errorf("git describe in %q: %w", g.Dir, ErrNoTags)
			}
		}
		return "", fmt.Errorf("git describe failed: %v, detail: %s", err, strings.TrimSpace(stderr))
	}
	tag := strings.TrimSpace(out)
	if tag == "" {
		return "", ErrNoTags
	}
	return tag, nil
}

// Diff returns the zero-context diff of path between reference and target.
func (g *GitRepository) Diff(ctx context.Context, reference, target, path string) (string, error) {
	out, stderr, err := g.run(ctx, "diff", "--no-color", "--no-ext-diff", "--unified=0", reference, target, "--", path)
	if err != nil {
		return "", fmt.Errorf("git diff failed: %v, detail: %s", err, strings.TrimSpace(stderr))
	}
	return out, nil
}
