package assistant

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gitwhisperer/gitwhisperer/backend"
	"github.com/gitwhisperer/gitwhisperer/git"
)

// maxAlternativesShown caps how many alternative suggestions are revealed
// after a successful commit.
const maxAlternativesShown = 3

// Commit runs the interactive commit-message flow: require staged changes
// (offering to stage all), generate a message from the staged diff, let the
// user edit it, validate, and commit.
func (a *Assistant) Commit(ctx context.Context) error {
	return a.run("commit", func(log *slog.Logger) error {
		a.ui.Header("AI Commit Assistant")

		if err := a.checkRepository(ctx); err != nil {
			return err
		}

		staged, err := a.git.HasStagedChanges(ctx, a.repoPath)
		if err != nil {
			a.ui.Error(fmt.Sprintf("Failed to check staged changes: %v", err))
			return err
		}
		if !staged {
			a.ui.Warn("No staged changes found.")
			if !a.ui.Confirm("Would you like to stage all changes?") {
				a.ui.Info("Stage your changes with 'git add' and try again.")
				return nil
			}
			if err := a.git.StageAll(ctx, a.repoPath); err != nil {
				a.ui.Error(fmt.Sprintf("Failed to stage changes: %v", err))
				return err
			}
			a.ui.Success("Changes staged.")
		}

		diff, err := a.git.StagedDiff(ctx, a.repoPath)
		if err != nil {
			a.ui.Error(fmt.Sprintf("Failed to read staged diff: %v", err))
			return err
		}
		if diff == "" {
			a.ui.Warn("Nothing to analyze: the staged diff is empty.")
			return nil
		}

		if err := a.ensureBackend(ctx, log); err != nil {
			return err
		}

		a.ui.Progress("Analyzing changes...")
		result, err := a.backend.GenerateCommit(ctx, backend.CommitRequest{
			DiffText:  git.TruncateDiff(diff),
			MaxLength: a.maxLength,
			Style:     a.style,
		})
		if err != nil {
			a.reportGenerationError("generating the commit message", err)
			return err
		}

		message, ok := a.ui.PromptText("Commit message", result.CommitMessage)
		if !ok {
			a.ui.Info("Commit cancelled.")
			return nil
		}

		verdict := ValidateMessage(message)
		if !verdict.OK {
			a.ui.Error(verdict.Reason)
			return nil
		}
		if verdict.Warning != "" {
			a.ui.Warn(verdict.Warning)
		}

		if err := a.git.Commit(ctx, a.repoPath, message); err != nil {
			a.ui.Error(fmt.Sprintf("Failed to commit: %v", err))
			return err
		}
		a.ui.Success("Changes committed.")
		log.Info("commit applied")

		if len(result.Suggestions) > 0 {
			a.ui.Info("Alternative suggestions were:")
			for i, alt := range result.Suggestions {
				if i >= maxAlternativesShown {
					break
				}
				a.ui.Info(fmt.Sprintf("  %d. %s", i+1, alt))
			}
		}

		return nil
	})
}
