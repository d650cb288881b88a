// Package fetcher clones source repositories into the run workspace.
package fetcher

import (
	"context"
	"fmt"

	git "github.com/go-git/go-git/v5"
)

// Fetcher checks repositories out by URL. The scan only reads the working
// tree, so clones are shallow and history-free.
type Fetcher struct {
	depth int
}

func NewFetcher() *Fetcher {
	return &Fetcher{depth: 1}
}

// Clone fetches repoURL into localPath. The context cancels an in-flight
// transfer; there are no retries.
func (f *Fetcher) Clone(ctx context.Context, repoURL, localPath string) error {
	_, err := git.PlainCloneContext(ctx, localPath, false, &git.CloneOptions{
		URL:          repoURL,
		Depth:        f.depth,
		SingleBranch: true,
	})
	if err != nil {
		return fmt.Errorf("failed to clone %s: %w", repoURL, err)
	}
	return nil
}
