package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gitwhisperer/gitwhisperer/assistant"
	"github.com/gitwhisperer/gitwhisperer/backend"
	"github.com/gitwhisperer/gitwhisperer/config"
	"github.com/gitwhisperer/gitwhisperer/git"
	"github.com/gitwhisperer/gitwhisperer/logger"
	"github.com/gitwhisperer/gitwhisperer/paths"
	"github.com/gitwhisperer/gitwhisperer/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}

	logsDir, err := paths.LogsDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve log directory: %v\n", err)
		return 1
	}
	if err := logger.Init(filepath.Join(logsDir, "gitwhisperer.log")); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logging: %v\n", err)
		return 1
	}
	defer logger.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	terminal := ui.NewTerminal()

	app := NewApp(AppOptions{
		Config: cfg,
		UI:     terminal,
		Stderr: os.Stderr,
		NewRunner: func(repoPath string) ActionRunner {
			return assistant.New(assistant.Options{
				Git:              git.NewGitService(),
				Backend:          backend.NewClient(cfg.GetBackendPort(), cfg.BackendTimeout()),
				Launcher:         backend.NewLauncher(repoPath),
				UI:               terminal,
				Clipboard:        ui.NewSystemClipboard(),
				RepoPath:         repoPath,
				CommitStyle:      cfg.GetCommitStyle(),
				MaxMessageLength: cfg.GetMaxMessageLength(),
			})
		},
	})

	return app.Run(ctx, os.Args[1:])
}
