package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/gitwhisperer/gitwhisperer/cli"
	"github.com/gitwhisperer/gitwhisperer/config"
	"github.com/gitwhisperer/gitwhisperer/logger"
)

const usage = `GitWhisperer - AI-powered Git commit assistant

Usage:
  gitwhisperer [flags] <command>

Commands:
  commit    Generate a commit message for staged changes
  branch    Suggest branch names for the current changes
  pr        Summarize the current branch as a pull request

Flags:
  --api-key KEY   API key for the AI backend (or set OPENAI_API_KEY)
  --port N        Backend port (default 8000)
  --repo PATH     Repository to operate on (default: current directory)
  --debug         Enable debug logging
`

// ActionRunner dispatches the user-facing actions.
type ActionRunner interface {
	Commit(ctx context.Context) error
	Branch(ctx context.Context) error
	PR(ctx context.Context) error
}

// Presenter is the subset of the UI the app shell needs directly.
type Presenter interface {
	Info(msg string)
	Error(msg string)
}

// AppOptions contains app configuration and dependencies.
type AppOptions struct {
	// Required
	Config *config.Config

	// Runner is created after flag parsing; the factory receives the
	// resolved repository path.
	NewRunner func(repoPath string) ActionRunner

	UI     Presenter
	Stderr io.Writer

	// ValidatePrereqs checks external tools; defaults to cli.ValidateRequired.
	ValidatePrereqs func() error
}

// App is the gitwhisperer command-line application.
type App struct {
	config          *config.Config
	newRunner       func(repoPath string) ActionRunner
	ui              Presenter
	stderr          io.Writer
	validatePrereqs func() error
}

// NewApp creates an App with the given dependencies.
func NewApp(opts AppOptions) *App {
	app := &App{
		config:          opts.Config,
		newRunner:       opts.NewRunner,
		ui:              opts.UI,
		stderr:          opts.Stderr,
		validatePrereqs: opts.ValidatePrereqs,
	}
	if app.validatePrereqs == nil {
		app.validatePrereqs = func() error {
			return cli.ValidateRequired(cli.DefaultPrerequisites())
		}
	}
	return app
}

// Run parses args and dispatches the requested action.
// It returns the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	flags := flag.NewFlagSet("gitwhisperer", flag.ContinueOnError)
	flags.SetOutput(a.stderr)
	flags.Usage = func() { fmt.Fprint(a.stderr, usage) }

	apiKey := flags.String("api-key", "", "API key for the AI backend")
	port := flags.Int("port", 0, "backend port")
	repo := flags.String("repo", ".", "repository to operate on")
	debug := flags.Bool("debug", false, "enable debug logging")

	if err := flags.Parse(args); err != nil {
		return 1
	}

	if flags.NArg() != 1 {
		flags.Usage()
		return 1
	}
	command := flags.Arg(0)

	logger.SetDebug(*debug)

	if *apiKey != "" {
		a.config.SetAPIKey(*apiKey)
	}
	if *port != 0 {
		a.config.SetBackendPort(*port)
	}

	if err := a.validatePrereqs(); err != nil {
		a.ui.Error(err.Error())
		return 1
	}

	if a.config.GetAPIKey() == "" {
		a.ui.Error("API key not found. Set OPENAI_API_KEY, add api_key to config.yaml, or pass --api-key.")
		return 1
	}

	a.showWelcomeOnce()

	runner := a.newRunner(*repo)

	var err error
	switch command {
	case "commit":
		err = runner.Commit(ctx)
	case "branch":
		err = runner.Branch(ctx)
	case "pr":
		err = runner.PR(ctx)
	default:
		fmt.Fprintf(a.stderr, "unknown command %q\n\n", command)
		flags.Usage()
		return 1
	}

	if err != nil {
		// The flow already reported the failure to the user
		return 1
	}
	return 0
}

// showWelcomeOnce prints the first-run welcome and persists the flag so it
// never repeats. A failed save only logs; the welcome is not worth failing
// the action over.
func (a *App) showWelcomeOnce() {
	if a.config.HasSeenWelcome() {
		return
	}

	a.ui.Info("Welcome to GitWhisperer! Diffs are sent to your locally-run AI backend to draft commit messages, branch names, and PR summaries.")
	a.config.MarkWelcomeShown()
	if err := a.config.Save(); err != nil {
		logger.WithComponent("app").Warn("failed to persist welcome flag", "error", err)
	}
}
