// Package main implements a CLI tool that prints the next release tag of a
// tracked document, or an empty line when no release is needed.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/go-github/v60/github"
	"github.com/spf13/cobra"

	"github.com/bcomnes/docbump/internal/config"
	"github.com/bcomnes/docbump/internal/logging"
	docbump "github.com/bcomnes/docbump/pkg"
)

const long = `Compares the tracked document between the latest release tag and the target revision
and prints the next tag to stdout:

  - no previous tag                    -> v1.0.0
  - an added line opens a \section{    -> minor bump (v1.2.3 -> v1.3.0)
  - any other added line               -> patch bump (v1.2.3 -> v1.2.4)
  - no added lines, or no usable diff  -> empty line (no release)

The exit status is 0 whether or not a release is needed.`

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "docbump",
		Short:         "Compute the next release tag of a tracked document",
		Long:          long,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	cmd.Flags().String("file", docbump.DefaultFile, "Path of the tracked document, relative to the repository root")
	cmd.Flags().String("target", docbump.DefaultTarget, "Revision to compare the latest tag against")
	cmd.Flags().String("dir", ".", "Repository directory (git source)")
	cmd.Flags().String("source", config.SourceGit, "Where to read tags and diffs from: git | github")
	cmd.Flags().String("repo", os.Getenv("GITHUB_REPOSITORY"), "GitHub repo (owner/repo) for the github source")
	cmd.Flags().String("github-token", os.Getenv("GITHUB_TOKEN"), "GitHub token for API access")
	cmd.Flags().String("section-pattern", docbump.DefaultSectionPattern, "Regexp marking a new top-level section")
	cmd.Flags().String("subsection-pattern", docbump.DefaultSubsectionPattern, "Regexp marking a new sub-section")
	cmd.Flags().String("config", config.DefaultPath, "Path to config file (default is resolved against --dir)")
	cmd.Flags().BoolP("verbose", "v", false, "Print diagnostics to stderr")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	if !cmd.Flags().Changed("config") {
		// The default config file lives in the repository, not the cwd.
		dir, _ := cmd.Flags().GetString("dir")
		cfgPath = filepath.Join(dir, config.DefaultPath)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not load config file: %v (using defaults)\n", err)
		cfg = config.Default()
	}
	cfg = config.MergeFlags(cfg, cmd.Flags())
	if err := cfg.Validate(); err != nil {
		return err
	}

	markers, err := docbump.CompileMarkers(cfg.SectionPattern, cfg.SubsectionPattern)
	if err != nil {
		return err
	}

	var log *logging.Logger
	if cfg.Verbose {
		log = logging.New(cmd.ErrOrStderr(), "docbump")
	}

	repo, err := newRepository(cfg)
	if err != nil {
		return err
	}

	r := docbump.NewResolver(repo)
	r.File = cfg.File
	r.Target = cfg.Target
	r.Markers = markers
	r.Log = log

	res, err := r.Resolve(context.Background())
	if err != nil {
		return err
	}
	log.Printf("result: %s (reason %s)", displayTag(res), res.Reason)

	fmt.Fprintln(cmd.OutOrStdout(), res.Tag())
	return nil
}

func newRepository(cfg *config.Config) (docbump.Repository, error) {
	switch cfg.Source {
	case config.SourceGitHub:
		owner, name, err := docbump.ParseGitHubRepo(cfg.Repo)
		if err != nil {
			return nil, err
		}
		client := github.NewClient(nil)
		if cfg.Token != "" {
			client = client.WithAuthToken(cfg.Token)
		}
		return docbump.NewGitHubRepository(client, owner, name), nil
	default:
		if err := docbump.CheckGit(); err != nil {
			return nil, err
		}
		return docbump.NewGitRepository(cfg.Dir), nil
	}
}

func displayTag(res docbump.Result) string {
	if tag := res.Tag(); tag != "" {
		return tag
	}
	return "no release"
}
