package assistant

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gitwhisperer/gitwhisperer/backend"
	"github.com/gitwhisperer/gitwhisperer/git"
)

// PR runs the pull-request summary flow: summarize the branch's changes
// against HEAD and offer to copy the whole block to the clipboard.
func (a *Assistant) PR(ctx context.Context) error {
	return a.run("pr", func(log *slog.Logger) error {
		a.ui.Header("Pull Request Summary")

		if err := a.checkRepository(ctx); err != nil {
			return err
		}

		branch, err := a.git.CurrentBranch(ctx, a.repoPath)
		if err != nil {
			a.ui.Error(fmt.Sprintf("Failed to determine the current branch: %v", err))
			return err
		}
		if branch == "" {
			a.ui.Error("Could not determine the current branch (detached HEAD?).")
			return nil
		}

		diff, err := a.git.DiffAgainstHead(ctx, a.repoPath)
		if err != nil {
			a.ui.Error(fmt.Sprintf("Failed to read diff: %v", err))
			return err
		}
		if diff == "" {
			a.ui.Warn("Nothing to summarize: no changes against HEAD.")
			return nil
		}

		if err := a.ensureBackend(ctx, log); err != nil {
			return err
		}

		a.ui.Progress(fmt.Sprintf("Analyzing branch %q...", branch))
		result, err := a.backend.SummarizePR(ctx, backend.PRRequest{
			BranchName: branch,
			DiffText:   git.TruncateDiff(diff),
		})
		if err != nil {
			a.reportGenerationError("summarizing the pull request", err)
			return err
		}

		block := FormatPRSummary(result)
		a.ui.Info(block)

		if a.ui.Confirm("Copy the summary to the clipboard?") {
			if err := a.clip.Write(block); err != nil {
				a.ui.Error(fmt.Sprintf("Failed to copy to clipboard: %v", err))
				return err
			}
			a.ui.Success("Summary copied to clipboard.")
		}

		log.Info("pr summarized", "branch", branch)
		return nil
	})
}

// FormatPRSummary renders the three summary fields as one copyable block.
func FormatPRSummary(s *backend.PRSummary) string {
	return fmt.Sprintf("Summary: %s\nImpact: %s\nTesting Notes: %s", s.Summary, s.Impact, s.TestingNotes)
}
