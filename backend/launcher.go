package backend

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	pexec "github.com/gitwhisperer/gitwhisperer/exec"
	"github.com/gitwhisperer/gitwhisperer/logger"
)

// backendScript is the known location of the generation service inside a
// GitWhisperer workspace.
var backendScript = filepath.Join("python-backend", "ai_commit_writer.py")

// Readiness polling bounds. The launcher never blind-waits: after starting
// the service it polls the health probe until it answers or the deadline
// passes.
const (
	DefaultPollInterval = 250 * time.Millisecond
	DefaultPollDeadline = 10 * time.Second
)

// Launcher starts the generation service as a detached background process.
type Launcher struct {
	executor      pexec.CommandExecutor
	workspaceRoot string
}

// NewLauncher creates a launcher for the backend under the given workspace root.
func NewLauncher(workspaceRoot string) *Launcher {
	return &Launcher{executor: pexec.NewRealExecutor(), workspaceRoot: workspaceRoot}
}

// NewLauncherWithExecutor creates a launcher with a custom executor (for tests).
func NewLauncherWithExecutor(exec pexec.CommandExecutor, workspaceRoot string) *Launcher {
	return &Launcher{executor: exec, workspaceRoot: workspaceRoot}
}

// Start locates the backend script and starts it detached, so its lifetime
// is not tied to this process. It does not wait for readiness; pair it with
// WaitUntilHealthy.
func (l *Launcher) Start() error {
	log := logger.WithComponent("backend")

	script := filepath.Join(l.workspaceRoot, backendScript)
	if _, err := os.Stat(script); err != nil {
		return fmt.Errorf("backend script not found at %s: %w", script, err)
	}

	pid, err := l.executor.StartDetached(l.workspaceRoot, "python3", script, "--server")
	if err != nil {
		return fmt.Errorf("failed to start backend: %w", err)
	}

	log.Info("backend started", "script", script, "pid", pid)
	return nil
}

// Prober is the availability probe the readiness wait polls.
type Prober interface {
	Healthy(ctx context.Context) bool
}

// WaitUntilHealthy polls the probe at the given interval until it answers,
// the deadline passes, or ctx is cancelled. Returns true once healthy.
func WaitUntilHealthy(ctx context.Context, probe Prober, interval, deadline time.Duration) bool {
	ctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	if probe.Healthy(ctx) {
		return true
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
			if probe.Healthy(ctx) {
				return true
			}
		}
	}
}
