package git

import (
	"context"
	"fmt"
	"strings"
)

// RepoStatus partitions the working tree into staged, unstaged, and
// untracked files. A file with changes both in the index and the working
// tree (porcelain "MM") appears in both Staged and Unstaged.
type RepoStatus struct {
	Staged    []string
	Unstaged  []string
	Untracked []string
}

// HasChanges reports whether any file appears in any partition.
func (r *RepoStatus) HasChanges() bool {
	return len(r.Staged) > 0 || len(r.Unstaged) > 0 || len(r.Untracked) > 0
}

// Status returns a snapshot of the repository's porcelain status.
// The snapshot is recomputed on every call, never cached.
func (s *GitService) Status(ctx context.Context, dir string) (*RepoStatus, error) {
	output, err := s.executor.Output(ctx, dir, "git", "status", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("git status failed: %w", err)
	}

	// Only trim trailing whitespace - leading space is significant in
	// porcelain format (" M file" means modified in the working tree only)
	trimmed := strings.TrimRight(string(output), "\n\r\t ")
	status := &RepoStatus{}
	if trimmed == "" {
		return status, nil
	}

	for _, line := range strings.Split(trimmed, "\n") {
		if len(line) < 4 {
			continue
		}
		index, worktree := line[0], line[1]
		path := parseStatusPath(line[3:])

		// A "?" in the worktree column means untracked regardless of
		// the index column
		if worktree == '?' {
			status.Untracked = append(status.Untracked, path)
			continue
		}
		if index != ' ' && index != '?' {
			status.Staged = append(status.Staged, path)
		}
		if worktree != ' ' {
			status.Unstaged = append(status.Unstaged, path)
		}
	}

	return status, nil
}

// parseStatusPath extracts the file path from a porcelain entry.
// Rename entries ("old -> new") resolve to the new path.
func parseStatusPath(field string) string {
	field = strings.TrimSpace(field)
	if idx := strings.Index(field, " -> "); idx >= 0 {
		field = field[idx+len(" -> "):]
	}
	return field
}
