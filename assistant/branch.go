package assistant

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gitwhisperer/gitwhisperer/backend"
	"github.com/gitwhisperer/gitwhisperer/git"
)

// Branch runs the branch-name flow: analyze all changes against HEAD,
// present the suggestions as a selectable list, and copy the chosen name
// to the clipboard.
func (a *Assistant) Branch(ctx context.Context) error {
	return a.run("branch", func(log *slog.Logger) error {
		a.ui.Header("Branch Name Suggestions")

		if err := a.checkRepository(ctx); err != nil {
			return err
		}

		diff, err := a.git.DiffAgainstHead(ctx, a.repoPath)
		if err != nil {
			a.ui.Error(fmt.Sprintf("Failed to read diff: %v", err))
			return err
		}
		if diff == "" {
			a.ui.Warn("Nothing to analyze: no changes against HEAD.")
			return nil
		}

		branch, err := a.git.CurrentBranch(ctx, a.repoPath)
		if err != nil {
			a.ui.Error(fmt.Sprintf("Failed to determine the current branch: %v", err))
			return err
		}

		if err := a.ensureBackend(ctx, log); err != nil {
			return err
		}

		a.ui.Progress("Analyzing changes for branch name...")
		result, err := a.backend.SuggestBranch(ctx, backend.BranchRequest{
			DiffText: git.TruncateDiff(diff),
			Context:  fmt.Sprintf("Current branch: %s", branch),
		})
		if err != nil {
			a.reportGenerationError("suggesting a branch name", err)
			return err
		}

		options := append([]string{result.BranchName}, result.Alternatives...)
		idx, ok := a.ui.Select("Pick a branch name", options)
		if !ok {
			a.ui.Info("Selection cancelled.")
			return nil
		}

		chosen := options[idx]
		if err := a.clip.Write(chosen); err != nil {
			a.ui.Error(fmt.Sprintf("Failed to copy to clipboard: %v", err))
			return err
		}
		a.ui.Success(fmt.Sprintf("%q copied to clipboard.", chosen))
		log.Info("branch name copied", "name", chosen)

		return nil
	})
}
