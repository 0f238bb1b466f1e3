package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	docbump "github.com/bcomnes/docbump/pkg"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = ".docbump.yml"

// Sources accepted by --source.
const (
	SourceGit    = "git"
	SourceGitHub = "github"
)

type Config struct {
	File              string `yaml:"file"`
	Target            string `yaml:"target"`
	Source            string `yaml:"source"`
	Repo              string `yaml:"repo"`
	SectionPattern    string `yaml:"section_pattern"`
	SubsectionPattern string `yaml:"subsection_pattern"`
	Dir               string `yaml:"-"`
	Token             string `yaml:"-"`
	Verbose           bool   `yaml:"-"`
}

func Default() *Config {
	return &Config{
		File:              docbump.DefaultFile,
		Target:            docbump.DefaultTarget,
		Source:            SourceGit,
		SectionPattern:    docbump.DefaultSectionPattern,
		SubsectionPattern: docbump.DefaultSubsectionPattern,
		Dir:               ".",
	}
}

// Load reads a YAML config file on top of the defaults.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// MergeFlags applies flags on top of cfg. Flags the user set explicitly
// always win; defaults only fill values the file left empty.
func MergeFlags(cfg *Config, flags *pflag.FlagSet) *Config {
	str := func(name string, dst *string) {
		v, err := flags.GetString(name)
		if err != nil {
			return
		}
		if flags.Changed(name) || (*dst == "" && v != "") {
			*dst = v
		}
	}
	str("file", &cfg.File)
	str("target", &cfg.Target)
	str("source", &cfg.Source)
	str("repo", &cfg.Repo)
	str("section-pattern", &cfg.SectionPattern)
	str("subsection-pattern", &cfg.SubsectionPattern)
	str("dir", &cfg.Dir)
	str("github-token", &cfg.Token)
	if v, err := flags.GetBool("verbose"); err == nil {
		cfg.Verbose = v
	}
	return cfg
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Source {
	case SourceGit:
	case SourceGitHub:
		if c.Repo == "" {
			return errors.New("--repo (or GITHUB_REPOSITORY) is required for the github source")
		}
	default:
		return fmt.Errorf("unknown source %q: expected %s or %s", c.Source, SourceGit, SourceGitHub)
	}
	if c.File == "" {
		return errors.New("tracked file must not be empty")
	}
	return nil
}
