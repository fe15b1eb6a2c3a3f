package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/gitwhisperer/gitwhisperer/logger"
)

// MaxDiffSize is the maximum number of characters of diff sent to the
// backend. Large diffs slow generation down and rarely improve the result.
const MaxDiffSize = 50000

// StagedDiff returns the diff of staged changes.
// An empty string with a nil error means there is genuinely nothing staged.
func (s *GitService) StagedDiff(ctx context.Context, dir string) (string, error) {
	// --no-ext-diff ensures output goes to stdout even if an external
	// diff tool is configured
	output, err := s.executor.Output(ctx, dir, "git", "diff", "--cached", "--no-ext-diff")
	if err != nil {
		return "", fmt.Errorf("failed to get staged diff: %w", err)
	}
	return string(output), nil
}

// DiffAgainstHead returns all changes (staged and unstaged) compared to the
// last commit. If HEAD doesn't exist yet (new repo), it falls back to the
// unstaged and staged diffs concatenated.
func (s *GitService) DiffAgainstHead(ctx context.Context, dir string) (string, error) {
	output, err := s.executor.Output(ctx, dir, "git", "diff", "--no-ext-diff", "HEAD")
	if err == nil {
		return string(output), nil
	}

	log := logger.WithComponent("git")
	log.Debug("diff HEAD failed, trying without HEAD", "error", err, "dir", dir)

	unstaged, err1 := s.executor.Output(ctx, dir, "git", "diff", "--no-ext-diff")
	staged, err2 := s.executor.Output(ctx, dir, "git", "diff", "--no-ext-diff", "--cached")
	if err1 != nil && err2 != nil {
		return "", fmt.Errorf("failed to get diff: %w", err1)
	}

	// Unstaged and staged are mutually exclusive, so no duplication
	return string(unstaged) + string(staged), nil
}

// ChangedFiles returns the paths of files that differ from HEAD.
func (s *GitService) ChangedFiles(ctx context.Context, dir string) ([]string, error) {
	output, err := s.executor.Output(ctx, dir, "git", "diff", "--name-only", "HEAD")
	if err != nil {
		return nil, fmt.Errorf("failed to list changed files: %w", err)
	}

	var files []string
	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		if line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

// HasStagedChanges reports whether anything is staged for commit.
func (s *GitService) HasStagedChanges(ctx context.Context, dir string) (bool, error) {
	output, err := s.executor.Output(ctx, dir, "git", "diff", "--cached", "--name-only")
	if err != nil {
		return false, fmt.Errorf("failed to check staged changes: %w", err)
	}
	return strings.TrimSpace(string(output)) != "", nil
}

// TruncateDiff bounds a diff to MaxDiffSize characters, marking truncation.
func TruncateDiff(diff string) string {
	if len(diff) <= MaxDiffSize {
		return diff
	}
	return diff[:MaxDiffSize] + "\n... (diff truncated)"
}
