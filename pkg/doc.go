// Package docbump computes the next release tag of a document-centric
// repository from the changes made to a single tracked file.
//
// It provides functionalities for:
//   - Parsing the latest release tag into a major.minor.patch triple, falling back
//     to v1.0.0 when the tag is not a version.
//   - Extracting the added lines of a zero-context unified diff.
//   - Classifying those lines: a new top-level section (\section{) bumps the minor
//     version, any other addition bumps the patch version, no additions means no release.
//   - Querying version control through a Repository, backed either by the git
//     binary (GitRepository) or the GitHub REST API (GitHubRepository).
//
// Usage Example:
//
//	import (
//	    "context"
//	    "fmt"
//	    "log"
//
//	    docbump "github.com/bcomnes/docbump/pkg"
//	)
//
//	func main() {
//	    r := docbump.NewResolver(docbump.NewGitRepository("."))
//	    r.File = "paper/main.tex"
//	    res, err := r.Resolve(context.Background())
//	    if err != nil {
//	        log.Fatalf("resolve failed: %v", err)
//	    }
//	    fmt.Println(res.Tag())
//	}
//
// For additional details and API documentation, see https://pkg.go.dev/github.com/bcomnes/docbump.
package docbump
