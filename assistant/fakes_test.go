package assistant

import (
	"context"
	"sync/atomic"

	"github.com/gitwhisperer/gitwhisperer/backend"
)

// fakeGit is an in-memory VersionControl.
type fakeGit struct {
	isRepo     bool
	stagedDiff string
	headDiff   string
	branch     string
	hasStaged  bool

	stagedDiffErr error
	hasStagedErr  error
	stageAllErr   error
	commitErr     error

	stageAllCalled bool
	committed      []string
}

func (g *fakeGit) IsRepository(ctx context.Context, dir string) bool { return g.isRepo }

func (g *fakeGit) StagedDiff(ctx context.Context, dir string) (string, error) {
	return g.stagedDiff, g.stagedDiffErr
}

func (g *fakeGit) DiffAgainstHead(ctx context.Context, dir string) (string, error) {
	return g.headDiff, nil
}

func (g *fakeGit) CurrentBranch(ctx context.Context, dir string) (string, error) {
	return g.branch, nil
}

func (g *fakeGit) HasStagedChanges(ctx context.Context, dir string) (bool, error) {
	return g.hasStaged, g.hasStagedErr
}

func (g *fakeGit) StageAll(ctx context.Context, dir string) error {
	if g.stageAllErr != nil {
		return g.stageAllErr
	}
	g.stageAllCalled = true
	g.hasStaged = true
	return nil
}

func (g *fakeGit) Commit(ctx context.Context, dir, message string) error {
	if g.commitErr != nil {
		return g.commitErr
	}
	g.committed = append(g.committed, message)
	return nil
}

// fakeBackend is an in-memory Generator counting every call.
type fakeBackend struct {
	healthy atomic.Bool

	commitResult *backend.CommitResult
	branchResult *backend.BranchResult
	prResult     *backend.PRSummary

	commitErr error
	branchErr error
	prErr     error

	healthChecks int32
	commitCalls  int32
	branchCalls  int32
	prCalls      int32

	lastCommitReq backend.CommitRequest
	lastBranchReq backend.BranchRequest
	lastPRReq     backend.PRRequest
}

func (b *fakeBackend) Healthy(ctx context.Context) bool {
	atomic.AddInt32(&b.healthChecks, 1)
	return b.healthy.Load()
}

func (b *fakeBackend) GenerateCommit(ctx context.Context, req backend.CommitRequest) (*backend.CommitResult, error) {
	atomic.AddInt32(&b.commitCalls, 1)
	b.lastCommitReq = req
	return b.commitResult, b.commitErr
}

func (b *fakeBackend) SuggestBranch(ctx context.Context, req backend.BranchRequest) (*backend.BranchResult, error) {
	atomic.AddInt32(&b.branchCalls, 1)
	b.lastBranchReq = req
	return b.branchResult, b.branchErr
}

func (b *fakeBackend) SummarizePR(ctx context.Context, req backend.PRRequest) (*backend.PRSummary, error) {
	atomic.AddInt32(&b.prCalls, 1)
	b.lastPRReq = req
	return b.prResult, b.prErr
}

func (b *fakeBackend) generationCalls() int32 {
	return atomic.LoadInt32(&b.commitCalls) + atomic.LoadInt32(&b.branchCalls) + atomic.LoadInt32(&b.prCalls)
}

// fakeLauncher records launches and can flip the backend healthy on start.
type fakeLauncher struct {
	starts  int
	err     error
	onStart func()
}

func (l *fakeLauncher) Start() error {
	l.starts++
	if l.err != nil {
		return l.err
	}
	if l.onStart != nil {
		l.onStart()
	}
	return nil
}

// fakeUI scripts the interactive surface and records everything shown.
type fakeUI struct {
	infos     []string
	successes []string
	warnings  []string
	errors    []string

	confirmAnswers []bool
	confirmAsked   []string

	promptInitials []string
	promptAnswer   string // when empty, the initial text is accepted as-is
	promptCancel   bool

	selectOptions []string
	selectIndex   int
	selectCancel  bool
}

func (u *fakeUI) Header(title string) {}
func (u *fakeUI) Info(msg string)     { u.infos = append(u.infos, msg) }
func (u *fakeUI) Success(msg string)  { u.successes = append(u.successes, msg) }
func (u *fakeUI) Warn(msg string)     { u.warnings = append(u.warnings, msg) }
func (u *fakeUI) Error(msg string)    { u.errors = append(u.errors, msg) }
func (u *fakeUI) Progress(msg string) { u.infos = append(u.infos, msg) }

func (u *fakeUI) Confirm(question string) bool {
	u.confirmAsked = append(u.confirmAsked, question)
	if len(u.confirmAnswers) == 0 {
		return false
	}
	answer := u.confirmAnswers[0]
	u.confirmAnswers = u.confirmAnswers[1:]
	return answer
}

func (u *fakeUI) PromptText(label, initial string) (string, bool) {
	u.promptInitials = append(u.promptInitials, initial)
	if u.promptCancel {
		return "", false
	}
	if u.promptAnswer != "" {
		return u.promptAnswer, true
	}
	return initial, true
}

func (u *fakeUI) Select(label string, options []string) (int, bool) {
	u.selectOptions = options
	if u.selectCancel {
		return 0, false
	}
	return u.selectIndex, true
}

// fakeClipboard records written text.
type fakeClipboard struct {
	texts []string
	err   error
}

func (c *fakeClipboard) Write(text string) error {
	if c.err != nil {
		return c.err
	}
	c.texts = append(c.texts, text)
	return nil
}
