// Package scanner orchestrates one full scan: clone each configured
// repository, walk its dated posts, and feed extracted links into the
// aggregator.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/bitcoinsearch/bitdevs-radar/internal/common"
	"github.com/bitcoinsearch/bitdevs-radar/internal/logger"
	"github.com/bitcoinsearch/bitdevs-radar/models"
	"github.com/bitcoinsearch/bitdevs-radar/pkg/aggregate"
	"github.com/bitcoinsearch/bitdevs-radar/pkg/extract"
	"github.com/bitcoinsearch/bitdevs-radar/pkg/workspace"
)

var (
	// ErrMissingPostsDir marks a cloned repository whose configured posts
	// directory does not exist.
	ErrMissingPostsDir = errors.New("posts directory not found")
	// ErrNoDatePrefix marks a post filename that does not start with a
	// YYYY-MM-DD date.
	ErrNoDatePrefix = errors.New("no date prefix in filename")
)

// Cloner fetches a repository into a local path. pkg/fetcher provides the
// real implementation; tests substitute a fake.
type Cloner interface {
	Clone(ctx context.Context, repoURL, localPath string) error
}

// Scanner runs the sequential scan loop. One failing repository or post is
// logged and skipped; the loop always continues to the next item.
type Scanner struct {
	cfg       *models.RepoListConfig
	startDate *models.Date
	excluded  []string
	cloner    Cloner
	ws        *workspace.Workspace
	extractor *extract.Extractor
	agg       *aggregate.Aggregator
	log       logger.Logger
}

// New builds a Scanner and acquires its run workspace. Callers must Close the
// scanner to release the workspace, whether or not the scan succeeds.
func New(cfg *models.RepoListConfig, excludedDomains []string, startDate *models.Date, cloner Cloner, log logger.Logger) (*Scanner, error) {
	ws, err := workspace.New(log)
	if err != nil {
		return nil, err
	}
	return &Scanner{
		cfg:       cfg,
		startDate: startDate,
		excluded:  excludedDomains,
		cloner:    cloner,
		ws:        ws,
		extractor: extract.New(excludedDomains, log),
		agg:       aggregate.New(log),
		log:       log,
	}, nil
}

// Close releases the run workspace.
func (s *Scanner) Close() error {
	return s.ws.Close()
}

// Scan processes every configured repository in order and returns the
// aggregated result. Per-repository errors are logged and swallowed so one
// bad repository cannot sink the run.
func (s *Scanner) Scan(ctx context.Context) models.ScanResult {
	s.log.Info("starting repository scan",
		logger.Int("repositories", len(s.cfg.Repositories)))

	for _, repo := range s.cfg.Repositories {
		if err := s.scanRepository(ctx, repo); err != nil {
			s.log.Error("failed to process repository",
				logger.String("url", repo.URL), logger.Error(err))
		}
	}

	s.log.Info("scan completed", logger.Int("unique_resources", s.agg.Len()))
	return s.agg.Snapshot(s.startDate, s.excluded)
}

func (s *Scanner) scanRepository(ctx context.Context, repo models.RepositoryConfig) error {
	s.log.Debug("processing repository", logger.String("url", repo.URL))

	localPath := s.ws.RepoPath(repo.URL)
	if err := s.cloner.Clone(ctx, repo.URL, localPath); err != nil {
		return err
	}

	postsPath := filepath.Join(localPath, repo.PostsDirectory)
	if info, err := os.Stat(postsPath); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrMissingPostsDir, postsPath)
	}

	// Glob returns sorted matches, so posts are visited in filename order.
	files, err := filepath.Glob(filepath.Join(postsPath, "*.md"))
	if err != nil {
		return fmt.Errorf("failed to list posts in %s: %w", postsPath, err)
	}

	processed := 0
	for _, file := range files {
		ok, err := s.scanPost(repo, file)
		if err != nil {
			return err
		}
		if ok {
			processed++
		}
	}

	s.log.Info("processed posts",
		logger.String("repository", repo.URL), logger.Int("posts", processed))
	return nil
}

// scanPost handles one post file. Skips (bad filename date, before the
// cutoff) report ok=false with no error; read or extraction failures abort
// the repository.
func (s *Scanner) scanPost(repo models.RepositoryConfig, filePath string) (bool, error) {
	name := filepath.Base(filePath)

	date, err := ParsePostDate(name)
	if err != nil {
		s.log.Warn("could not parse date from filename",
			logger.String("file", name), logger.Error(err))
		return false, nil
	}
	if s.startDate != nil && date.Before(*s.startDate) {
		s.log.Debug("skipping post before start date",
			logger.String("file", name), logger.String("date", date.String()))
		return false, nil
	}

	s.log.Debug("processing post", logger.String("file", name))
	content, err := os.ReadFile(filePath)
	if err != nil {
		return false, fmt.Errorf("failed to read post %s: %w", name, err)
	}

	links, err := s.extractor.Extract(content)
	if err != nil {
		return false, fmt.Errorf("failed to extract links from %s: %w", name, err)
	}

	source := common.SourceFileURL(repo.URL, path.Join(repo.PostsDirectory, name))
	for _, link := range links {
		s.agg.AddOccurrence(link.URL, date, source, link.Category, link.Text)
	}
	return true, nil
}

// ParsePostDate extracts the date from a Jekyll-style post filename
// (YYYY-MM-DD-title.md). The prefix must be a real calendar date.
func ParsePostDate(filename string) (models.Date, error) {
	if len(filename) < 10 {
		return models.Date{}, fmt.Errorf("%w: %s", ErrNoDatePrefix, filename)
	}
	date, err := models.ParseDate(filename[:10])
	if err != nil {
		return models.Date{}, fmt.Errorf("%w: %s", ErrNoDatePrefix, filename)
	}
	return date, nil
}
