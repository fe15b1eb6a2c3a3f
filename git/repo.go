package git

import (
	"context"
	"fmt"
	"strings"
)

// IsRepository reports whether dir is inside a git repository.
// Any failure (no repo, git missing) is treated as "not a repository".
func (s *GitService) IsRepository(ctx context.Context, dir string) bool {
	_, _, err := s.executor.Run(ctx, dir, "git", "rev-parse", "--git-dir")
	return err == nil
}

// CurrentBranch returns the current branch name.
// The name is empty on a detached HEAD.
func (s *GitService) CurrentBranch(ctx context.Context, dir string) (string, error) {
	output, err := s.executor.Output(ctx, dir, "git", "branch", "--show-current")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}
