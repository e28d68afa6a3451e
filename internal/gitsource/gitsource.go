// Package gitsource fetches a remote documentation tree before a build when
// the configuration names a docs_repo.
package gitsource

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"git.home.luguber.info/inful/sitegen/internal/config"
)

// Fetch shallow-clones the configured repository into dest and returns dest.
// An existing checkout at dest is removed first: every build starts from a
// fresh snapshot.
func Fetch(ctx context.Context, repo *config.DocsRepoConfig, dest string) (string, error) {
	if err := os.RemoveAll(dest); err != nil {
		return "", fmt.Errorf("clean checkout directory: %w", err)
	}

	opts := &git.CloneOptions{
		URL:          repo.URL,
		Depth:        1,
		SingleBranch: true,
	}
	if repo.Branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(repo.Branch)
	}

	slog.Info("Fetching documentation source", "url", repo.URL, "branch", repo.Branch)
	if _, err := git.PlainCloneContext(ctx, dest, false, opts); err != nil {
		return "", fmt.Errorf("clone docs repository %s: %w", repo.URL, err)
	}
	return dest, nil
}
