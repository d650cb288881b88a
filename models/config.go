// Package models defines the radar's data model and configuration types.
package models

import (
	"bytes"
	"fmt"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gopkg.in/yaml.v3"
)

// DefaultPostsDirectory is where Jekyll keeps dated posts unless a repository
// overrides it.
const DefaultPostsDirectory = "_posts"

// RepositoryConfig identifies one repository to scan.
type RepositoryConfig struct {
	URL            string `yaml:"url"`
	PostsDirectory string `yaml:"posts_directory"`
}

// Validate checks a single repository entry.
func (r RepositoryConfig) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.URL, validation.Required, is.URL),
	)
}

// RepoListConfig is the top-level repository list loaded from bitdevs.yaml.
type RepoListConfig struct {
	Repositories []RepositoryConfig `yaml:"repositories"`
}

// Validate checks the list and, through ozzo's Validatable handling, every
// repository entry in it.
func (c RepoListConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Repositories, validation.Required),
	)
}

// LoadRepoListConfig reads, strictly decodes, validates, and defaults the
// repository list. Any failure here is fatal to the run.
func LoadRepoListConfig(path string) (*RepoListConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg RepoListConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	for i := range cfg.Repositories {
		if cfg.Repositories[i].PostsDirectory == "" {
			cfg.Repositories[i].PostsDirectory = DefaultPostsDirectory
		}
	}
	return &cfg, nil
}

// ExclusionConfig is the exclude_domains.yaml shape.
type ExclusionConfig struct {
	ExcludedDomains []string `yaml:"excluded_domains"`
}

// LoadExcludedDomains reads the exclusion list. Callers treat failures as
// non-fatal: a missing or malformed file means scanning proceeds with no
// exclusions.
func LoadExcludedDomains(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read exclusion file %s: %w", path, err)
	}

	var cfg ExclusionConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse exclusion file %s: %w", path, err)
	}
	return cfg.ExcludedDomains, nil
}
