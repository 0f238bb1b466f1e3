package docbump

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v60/github"
)

// GitHubRepository answers Repository queries through the GitHub REST API,
// for pipelines that run without a local clone.
type GitHubRepository struct {
	Owner  string
	Repo   string
	client *github.Client
}

// NewGitHubRepository wraps client for owner/repo.
func NewGitHubRepository(client *github.Client, owner, repo string) *GitHubRepository {
	return &GitHubRepository{Owner: owner, Repo: repo, client: client}
}

// ParseGitHubRepo splits "owner/repo" (or a github.com URL) into its parts.
func ParseGitHubRepo(s string) (owner, repo string, err error) {
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "github.com/")
	s = strings.TrimSuffix(s, ".git")
	s = strings.TrimSuffix(s, "/")

	parts := strings.SplitN(s, "/", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("cannot parse GitHub repo from %q", s)
	}
	return parts[0], parts[1], nil
}

// LatestTag returns the highest version tag of the repository, compared by
// the same major.minor.patch triple the resolver parses. When no tag is a
// version, the newest listed tag is returned so that the resolver can fall
// back to its baseline.
func (g *GitHubRepository) LatestTag(ctx context.Context) (string, error) {
	var names []string
	opts := &github.ListOptions{PerPage: 100}
	for {
		tags, resp, err := g.client.Repositories.ListTags(ctx, g.Owner, g.Repo, opts)
		if err != nil {
			return "", fmt.Errorf("list tags for %s/%s: %w", g.Owner, g.Repo, err)
		}
		for _, t := range tags {
			names = append(names, t.GetName())
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	if len(names) == 0 {
		return "", fmt.Errorf("%s/%s: %w", g.Owner, g.Repo, ErrNoTags)
	}

	best := ""
	var bestVersion Version
	for _, n := range names {
		v, ok := ParseTag(n)
		if !ok {
			continue
		}
		// Ties keep the first listed (newest) tag.
		if best == "" || v.Compare(bestVersion) > 0 {
			best, bestVersion = n, v
		}
	}
	if best == "" {
		return names[0], nil
	}
	return best, nil
}

// Diff compares reference with target and returns the patch of path.
// A target of "HEAD" means the repository's default branch.
// The compare file list is paged until path is found. A file that changed
// but has no patch (GitHub omits it for large diffs) is an error.
func (g *GitHubRepository) Diff(ctx context.Context, reference, target, path string) (string, error) {
	if target == "" || target == "HEAD" {
		r, _, err := g.client.Repositories.Get(ctx, g.Owner, g.Repo)
		if err != nil {
			return "", fmt.Errorf("get %s/%s: %w", g.Owner, g.Repo, err)
		}
		target = r.GetDefaultBranch()
	}

	opts := &github.ListOptions{PerPage: 100}
	for {
		cmp, resp, err := g.client.Repositories.CompareCommits(ctx, g.Owner, g.Repo, reference, target, opts)
		if err != nil {
			return "", fmt.Errorf("compare %s...%s in %s/%s: %w", reference, target, g.Owner, g.Repo, err)
		}
		for _, f := range cmp.Files {
			if f.GetFilename() != path {
				continue
			}
			if f.Patch == nil && f.GetChanges() > 0 {
				return "", fmt.Errorf("compare %s...%s in %s/%s: no patch for %s (%d changes)",
					reference, target, g.Owner, g.Repo, path, f.GetChanges())
			}
			return f.GetPatch(), nil
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return "", nil
}
