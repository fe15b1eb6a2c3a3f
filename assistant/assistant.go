// Package assistant orchestrates the user-facing actions: commit message
// generation, branch name suggestion, and PR summarization. Each action runs
// as one sequential chain — validate preconditions, collect the diff, ensure
// the backend is up, generate, present, apply — with no retries; every
// failure is terminal for that invocation.
//
// The assistant depends only on narrow ports so the flows can be exercised
// with fakes in tests.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gitwhisperer/gitwhisperer/backend"
	"github.com/gitwhisperer/gitwhisperer/logger"
)

// Sentinel errors for flow outcomes the caller may want to distinguish.
var (
	// ErrBusy means another action is already running against the repo.
	ErrBusy = errors.New("another action is already running")

	// ErrNoRepository means the working directory is not a git repository.
	ErrNoRepository = errors.New("not a git repository")
)

// VersionControl is the adapter port for git operations the flows use.
type VersionControl interface {
	IsRepository(ctx context.Context, dir string) bool
	StagedDiff(ctx context.Context, dir string) (string, error)
	DiffAgainstHead(ctx context.Context, dir string) (string, error)
	CurrentBranch(ctx context.Context, dir string) (string, error)
	HasStagedChanges(ctx context.Context, dir string) (bool, error)
	StageAll(ctx context.Context, dir string) error
	Commit(ctx context.Context, dir, message string) error
}

// Generator is the port for the generation service.
type Generator interface {
	Healthy(ctx context.Context) bool
	GenerateCommit(ctx context.Context, req backend.CommitRequest) (*backend.CommitResult, error)
	SuggestBranch(ctx context.Context, req backend.BranchRequest) (*backend.BranchResult, error)
	SummarizePR(ctx context.Context, req backend.PRRequest) (*backend.PRSummary, error)
}

// Launcher is the port for starting the generation service.
type Launcher interface {
	Start() error
}

// Presenter is the port for everything the user sees.
type Presenter interface {
	Header(title string)
	Info(msg string)
	Success(msg string)
	Warn(msg string)
	Error(msg string)
	Progress(msg string)

	// Confirm asks a yes/no question and returns the answer.
	Confirm(question string) bool

	// PromptText asks for a line of text pre-filled with initial.
	// ok is false when the user cancels.
	PromptText(label, initial string) (text string, ok bool)

	// Select presents options and returns the chosen index.
	// ok is false when the user cancels.
	Select(label string, options []string) (index int, ok bool)
}

// Clipboard is the port for applying text to the system clipboard.
type Clipboard interface {
	Write(text string) error
}

// Options wires an Assistant.
type Options struct {
	Git       VersionControl
	Backend   Generator
	Launcher  Launcher
	UI        Presenter
	Clipboard Clipboard

	// RepoPath is the working directory every git operation targets.
	RepoPath string

	// Generation request knobs, from config.
	CommitStyle      string
	MaxMessageLength int

	// Readiness polling bounds; zero values take the backend defaults.
	PollInterval time.Duration
	PollDeadline time.Duration
}

// Assistant sequences the three flows. A single mutex serializes
// invocations: concurrent actions against the same repository would race
// on staging and committing.
type Assistant struct {
	git      VersionControl
	backend  Generator
	launcher Launcher
	ui       Presenter
	clip     Clipboard

	repoPath     string
	style        string
	maxLength    int
	pollInterval time.Duration
	pollDeadline time.Duration

	mu sync.Mutex
}

// New creates an Assistant from the given options.
func New(opts Options) *Assistant {
	interval := opts.PollInterval
	if interval == 0 {
		interval = backend.DefaultPollInterval
	}
	deadline := opts.PollDeadline
	if deadline == 0 {
		deadline = backend.DefaultPollDeadline
	}

	return &Assistant{
		git:          opts.Git,
		backend:      opts.Backend,
		launcher:     opts.Launcher,
		ui:           opts.UI,
		clip:         opts.Clipboard,
		repoPath:     opts.RepoPath,
		style:        opts.CommitStyle,
		maxLength:    opts.MaxMessageLength,
		pollInterval: interval,
		pollDeadline: deadline,
	}
}

// run wraps a flow with the invocation mutex and top-level error reporting.
// Unexpected errors are logged and surfaced to the user with their message
// text; they never escape to crash the process.
func (a *Assistant) run(action string, fn func(log *slog.Logger) error) error {
	if !a.mu.TryLock() {
		a.ui.Error("Another action is already running. Wait for it to finish.")
		return ErrBusy
	}
	defer a.mu.Unlock()

	log := logger.WithRequest(uuid.NewString()).With("action", action)
	log.Info("action started")

	if err := fn(log); err != nil {
		log.Error("action failed", "error", err)
		return err
	}

	log.Info("action finished")
	return nil
}

// checkRepository validates the repository precondition. It runs before any
// diff collection or network I/O.
func (a *Assistant) checkRepository(ctx context.Context) error {
	if !a.git.IsRepository(ctx, a.repoPath) {
		a.ui.Error("Not a git repository. Run this from inside a repository.")
		return ErrNoRepository
	}
	return nil
}

// ensureBackend probes the generation service and, when it is down,
// launches it exactly once and polls until it answers or the deadline
// passes. The caller gets ErrUnreachable when it never comes up.
func (a *Assistant) ensureBackend(ctx context.Context, log *slog.Logger) error {
	if a.backend.Healthy(ctx) {
		return nil
	}

	log.Info("backend down, launching")
	a.ui.Progress("Backend not running, starting it...")

	if err := a.launcher.Start(); err != nil {
		a.ui.Error(fmt.Sprintf("Failed to start the backend: %v", err))
		return fmt.Errorf("launching backend: %w", err)
	}

	if !backend.WaitUntilHealthy(ctx, a.backend, a.pollInterval, a.pollDeadline) {
		a.ui.Error("Backend did not become ready. Start it manually and try again.")
		return fmt.Errorf("waiting for backend: %w", backend.ErrUnreachable)
	}

	log.Info("backend ready")
	return nil
}

// reportGenerationError maps a generation failure onto the right
// user-facing message, keeping the action-specific context.
func (a *Assistant) reportGenerationError(action string, err error) {
	switch {
	case errors.Is(err, backend.ErrUnauthorized):
		a.ui.Error("Authentication failed. Check your API key configuration and try again.")
	case errors.Is(err, backend.ErrTimeout):
		a.ui.Error(fmt.Sprintf("The backend timed out while %s. Try again.", action))
	case errors.Is(err, backend.ErrUnreachable):
		a.ui.Error(fmt.Sprintf("Could not reach the backend while %s. Start it and try again.", action))
	default:
		a.ui.Error(fmt.Sprintf("Error %s: %v", action, err))
	}
}
