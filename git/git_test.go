package git

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	pexec "github.com/gitwhisperer/gitwhisperer/exec"
)

var ctx = context.Background()

// createTestRepo creates a temporary git repository for integration tests.
func createTestRepo(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()

	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = tmpDir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v failed: %v\n%s", args, err, out)
		}
	}

	run("init")
	run("config", "user.email", "test@example.com")
	run("config", "user.name", "Test User")

	testFile := filepath.Join(tmpDir, "test.txt")
	if err := os.WriteFile(testFile, []byte("test content\n"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	run("add", ".")
	run("commit", "-m", "Initial commit")

	return tmpDir
}

func TestIsRepository(t *testing.T) {
	svc := NewGitService()

	repo := createTestRepo(t)
	if !svc.IsRepository(ctx, repo) {
		t.Error("expected repository to be detected")
	}

	if svc.IsRepository(ctx, t.TempDir()) {
		t.Error("plain temp dir should not be a repository")
	}
}

func TestStagedDiff_Empty(t *testing.T) {
	svc := NewGitService()
	repo := createTestRepo(t)

	diff, err := svc.StagedDiff(ctx, repo)
	if err != nil {
		t.Fatalf("StagedDiff: %v", err)
	}
	if diff != "" {
		t.Errorf("expected empty staged diff, got %q", diff)
	}
}

func TestStagedDiff_WithChanges(t *testing.T) {
	svc := NewGitService()
	repo := createTestRepo(t)

	if err := os.WriteFile(filepath.Join(repo, "test.txt"), []byte("changed\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := svc.StageAll(ctx, repo); err != nil {
		t.Fatalf("StageAll: %v", err)
	}

	diff, err := svc.StagedDiff(ctx, repo)
	if err != nil {
		t.Fatalf("StagedDiff: %v", err)
	}
	if !strings.Contains(diff, "+changed") {
		t.Errorf("staged diff missing change: %q", diff)
	}
}

func TestCommit_RoundTripsQuotes(t *testing.T) {
	svc := NewGitService()
	repo := createTestRepo(t)

	if err := os.WriteFile(filepath.Join(repo, "quote.txt"), []byte("q\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := svc.StageAll(ctx, repo); err != nil {
		t.Fatal(err)
	}

	message := `He said "hi"`
	if err := svc.Commit(ctx, repo, message); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	cmd := exec.Command("git", "log", "-1", "--format=%s")
	cmd.Dir = repo
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("git log: %v", err)
	}
	if got := strings.TrimSpace(string(out)); got != message {
		t.Errorf("commit message corrupted: got %q, want %q", got, message)
	}
}

func TestCommit_MessageReachesGitVerbatim(t *testing.T) {
	mock := pexec.NewMockExecutor()
	mock.AddPrefixMatch("git", []string{"commit", "-m"}, pexec.MockResponse{})
	svc := NewGitServiceWithExecutor(mock)

	message := `fix: handle "quoted" paths`
	if err := svc.Commit(ctx, "/repo", message); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	calls := mock.CallsFor("git")
	if len(calls) != 1 {
		t.Fatalf("expected 1 git call, got %d", len(calls))
	}
	args := calls[0].Args
	if args[len(args)-1] != message {
		t.Errorf("message argv = %q, want %q", args[len(args)-1], message)
	}
}

func TestCommit_FailureIncludesOutput(t *testing.T) {
	mock := pexec.NewMockExecutor()
	mock.AddPrefixMatch("git", []string{"commit", "-m"}, pexec.MockResponse{
		Stdout: []byte("nothing to commit"),
		Err:    errors.New("exit status 1"),
	})
	svc := NewGitServiceWithExecutor(mock)

	err := svc.Commit(ctx, "/repo", "msg")
	if err == nil {
		t.Fatal("expected commit error")
	}
	if !strings.Contains(err.Error(), "nothing to commit") {
		t.Errorf("error missing git output: %v", err)
	}
}

func TestCurrentBranch(t *testing.T) {
	mock := pexec.NewMockExecutor()
	mock.AddExactMatch("git", []string{"branch", "--show-current"}, pexec.MockResponse{Stdout: []byte("feature/x\n")})
	svc := NewGitServiceWithExecutor(mock)

	branch, err := svc.CurrentBranch(ctx, "/repo")
	if err != nil {
		t.Fatalf("CurrentBranch: %v", err)
	}
	if branch != "feature/x" {
		t.Errorf("branch = %q", branch)
	}
}

func TestChangedFiles(t *testing.T) {
	mock := pexec.NewMockExecutor()
	mock.AddExactMatch("git", []string{"diff", "--name-only", "HEAD"}, pexec.MockResponse{Stdout: []byte("a.go\nb.go\n\n")})
	svc := NewGitServiceWithExecutor(mock)

	files, err := svc.ChangedFiles(ctx, "/repo")
	if err != nil {
		t.Fatalf("ChangedFiles: %v", err)
	}
	if len(files) != 2 || files[0] != "a.go" || files[1] != "b.go" {
		t.Errorf("files = %v", files)
	}
}

func TestHasStagedChanges(t *testing.T) {
	mock := pexec.NewMockExecutor()
	mock.AddExactMatch("git", []string{"diff", "--cached", "--name-only"}, pexec.MockResponse{Stdout: []byte("a.go\n")})
	svc := NewGitServiceWithExecutor(mock)

	ok, err := svc.HasStagedChanges(ctx, "/repo")
	if err != nil {
		t.Fatalf("HasStagedChanges: %v", err)
	}
	if !ok {
		t.Error("expected staged changes")
	}
}

func TestHasStagedChanges_Error(t *testing.T) {
	mock := pexec.NewMockExecutor()
	mock.AddExactMatch("git", []string{"diff", "--cached", "--name-only"}, pexec.MockResponse{Err: errors.New("boom")})
	svc := NewGitServiceWithExecutor(mock)

	// Failure is an error, not a silent "no changes"
	if _, err := svc.HasStagedChanges(ctx, "/repo"); err == nil {
		t.Error("expected error to propagate")
	}
}

func TestDiffAgainstHead_FallbackWithoutHead(t *testing.T) {
	mock := pexec.NewMockExecutor()
	mock.AddExactMatch("git", []string{"diff", "--no-ext-diff", "HEAD"}, pexec.MockResponse{Err: errors.New("unknown revision")})
	mock.AddExactMatch("git", []string{"diff", "--no-ext-diff"}, pexec.MockResponse{Stdout: []byte("unstaged\n")})
	mock.AddExactMatch("git", []string{"diff", "--no-ext-diff", "--cached"}, pexec.MockResponse{Stdout: []byte("staged\n")})
	svc := NewGitServiceWithExecutor(mock)

	diff, err := svc.DiffAgainstHead(ctx, "/repo")
	if err != nil {
		t.Fatalf("DiffAgainstHead: %v", err)
	}
	if diff != "unstaged\nstaged\n" {
		t.Errorf("diff = %q", diff)
	}
}

func TestRecentCommits(t *testing.T) {
	mock := pexec.NewMockExecutor()
	mock.AddExactMatch("git", []string{"log", "--oneline", "-n", "3"}, pexec.MockResponse{
		Stdout: []byte("abc123 feat: add X\ndef456 fix: bug\n"),
	})
	svc := NewGitServiceWithExecutor(mock)

	commits, err := svc.RecentCommits(ctx, "/repo", 3)
	if err != nil {
		t.Fatalf("RecentCommits: %v", err)
	}
	if len(commits) != 2 || !strings.HasSuffix(commits[0], "feat: add X") {
		t.Errorf("commits = %v", commits)
	}
}

func TestTruncateDiff(t *testing.T) {
	short := "small diff"
	if TruncateDiff(short) != short {
		t.Error("short diff should pass through")
	}

	long := strings.Repeat("x", MaxDiffSize+10)
	truncated := TruncateDiff(long)
	if len(truncated) >= len(long) {
		t.Error("long diff should shrink")
	}
	if !strings.HasSuffix(truncated, "(diff truncated)") {
		t.Error("truncation should be marked")
	}
}
