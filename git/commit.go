package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gitwhisperer/gitwhisperer/logger"
)

// StageAll stages every change in the working tree (git add -A).
func (s *GitService) StageAll(ctx context.Context, dir string) error {
	logger.WithComponent("git").Info("staging all changes", "dir", dir)

	if output, err := s.executor.CombinedOutput(ctx, dir, "git", "add", "-A"); err != nil {
		return fmt.Errorf("git add failed: %s - %w", strings.TrimSpace(string(output)), err)
	}
	return nil
}

// Commit commits the staged changes with the given message.
// The message is passed as a single argument, so embedded quotes and
// newlines reach git byte-for-byte without shell escaping.
func (s *GitService) Commit(ctx context.Context, dir, message string) error {
	logger.WithComponent("git").Info("committing", "dir", dir, "title", firstLine(message))

	if output, err := s.executor.CombinedOutput(ctx, dir, "git", "commit", "-m", message); err != nil {
		return fmt.Errorf("git commit failed: %s - %w", strings.TrimSpace(string(output)), err)
	}
	return nil
}

// RecentCommits returns the last limit one-line commit summaries,
// newest first. Used as style context for generation requests.
func (s *GitService) RecentCommits(ctx context.Context, dir string, limit int) ([]string, error) {
	output, err := s.executor.Output(ctx, dir, "git", "log", "--oneline", "-n", strconv.Itoa(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to get commit history: %w", err)
	}

	var commits []string
	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		if line != "" {
			commits = append(commits, line)
		}
	}
	return commits, nil
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
