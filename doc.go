// Package main implements the docbump CLI tool.
//
// The docbump tool is a command-line interface for release pipelines of
// document repositories. It looks up the latest release tag, diffs a single tracked
// document (default "src/interim_report.tex") between that tag and the target
// revision, and prints the next version tag to stdout. An empty line means no
// release is needed. The exit status is 0 in both cases.
//
// Command Usage:
//
//	docbump [flags]
//
// Flags:
//
//	--file:               Path of the tracked document. (Defaults to "src/interim_report.tex")
//	--target:             Revision compared against the latest tag. (Defaults to "HEAD")
//	--dir:                Repository directory for the git source. (Defaults to ".")
//	--source:             "git" runs the git binary, "github" uses the GitHub REST API.
//	--repo:               owner/repo for the github source. (Defaults to $GITHUB_REPOSITORY)
//	--github-token:       Token for the github source. (Defaults to $GITHUB_TOKEN)
//	--section-pattern:    Regexp for a new top-level section. (Defaults to `\\section\s*\{`)
//	--subsection-pattern: Regexp for a new sub-section. (Defaults to `\\subsection\s*\{`)
//	--config:             YAML config file. (Defaults to ".docbump.yml" in --dir, ignored when missing)
//	--verbose, -v:        Print diagnostics to stderr.
//	--version:            Displays the version of the docbump CLI tool and exits.
//
// Rules:
//
//	# No tag yet
//	docbump            → v1.0.0
//
//	# Latest tag v1.2.3, an added line contains \section{Results}
//	docbump            → v1.3.0
//
//	# Latest tag v1.2.3, only \subsection{...} or plain text added
//	docbump            → v1.2.4
//
//	# Latest tag v1.2.3, nothing added (or the diff cannot be computed)
//	docbump            → (empty line)
//
//	# Latest tag is not a version, e.g. release-7: v1.0.0 is used as the reference
//	docbump            → v1.1.0 or v1.0.1
//
// Config file:
//
//	file: paper/main.tex
//	target: HEAD
//	source: git
//	section_pattern: '\\chapter\s*\{'
//
// Flags given on the command line override the config file.
//
// In a GitHub Actions workflow:
//
//	TAG=$(docbump)
//	if [ -n "$TAG" ]; then gh release create "$TAG"; fi
//
// For more detailed API documentation, please see the documentation in the "pkg" package
// or visit [PkgGoDev](https://pkg.go.dev/github.com/bcomnes/docbump).
package main
