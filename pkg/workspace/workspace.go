// Package workspace manages the temporary directory repositories are cloned
// into for the duration of one scan run.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/bitcoinsearch/bitdevs-radar/internal/common"
	"github.com/bitcoinsearch/bitdevs-radar/internal/logger"
)

// Workspace is a run-scoped scratch directory. It is acquired once when the
// scan starts and must be released with Close, error or not.
type Workspace struct {
	runID string
	root  string
	log   logger.Logger
}

// New allocates a fresh workspace under the system temp directory, tagged
// with a run ID so concurrent invocations on the same host cannot collide.
func New(log logger.Logger) (*Workspace, error) {
	runID := uuid.NewString()
	root, err := os.MkdirTemp("", "bitdevs-radar-"+runID[:8]+"-")
	if err != nil {
		return nil, fmt.Errorf("failed to create run workspace: %w", err)
	}

	log.Info("initialized run workspace",
		logger.String("run_id", runID), logger.String("path", root))
	return &Workspace{runID: runID, root: root, log: log}, nil
}

// RunID identifies this run in logs and diagnostics.
func (w *Workspace) RunID() string {
	return w.runID
}

// Root is the workspace directory path.
func (w *Workspace) Root() string {
	return w.root
}

// RepoPath returns the clone destination for a repository, derived from the
// last segment of its URL.
func (w *Workspace) RepoPath(repoURL string) string {
	return filepath.Join(w.root, common.RepoDirName(repoURL))
}

// Close removes the workspace and everything cloned into it.
func (w *Workspace) Close() error {
	w.log.Info("cleaning up run workspace", logger.String("path", w.root))
	if err := os.RemoveAll(w.root); err != nil {
		return fmt.Errorf("failed to remove run workspace %s: %w", w.root, err)
	}
	return nil
}
