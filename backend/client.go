// Package backend talks to the locally-run GitWhisperer generation service:
// a health probe, a detached process launcher, and typed generation calls.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/gitwhisperer/gitwhisperer/logger"
)

const (
	healthPath  = "/health"
	commitPath  = "/generate-commit"
	branchPath  = "/suggest-branch"
	summaryPath = "/summarize-pr"

	// healthTimeout bounds the availability probe; the probe must answer
	// fast or the backend is treated as down.
	healthTimeout = 1 * time.Second
)

// CommitRequest is the payload for commit message generation.
type CommitRequest struct {
	DiffText  string `json:"diff_text"`
	MaxLength int    `json:"max_length"`
	Style     string `json:"style"`
}

// CommitResult is the backend's commit message response.
type CommitResult struct {
	CommitMessage string   `json:"commit_message"`
	Suggestions   []string `json:"suggestions"`
}

// BranchRequest is the payload for branch name suggestion.
type BranchRequest struct {
	DiffText string `json:"diff_text"`
	Context  string `json:"context"`
}

// BranchResult is the backend's branch name response.
type BranchResult struct {
	BranchName   string   `json:"branch_name"`
	Alternatives []string `json:"alternatives"`
}

// PRRequest is the payload for pull request summarization.
type PRRequest struct {
	BranchName string `json:"branch_name"`
	DiffText   string `json:"diff_text"`
}

// PRSummary is the backend's pull request summary response.
type PRSummary struct {
	Summary      string `json:"summary"`
	Impact       string `json:"impact"`
	TestingNotes string `json:"testing_notes"`
}

// Client is an HTTP client for the generation service.
type Client struct {
	httpClient *http.Client
	baseURL    string // Override for testing; defaults to localhost on the configured port
}

// NewClient creates a client for a backend on the given localhost port.
// The timeout bounds every generation request.
func NewClient(port int, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    fmt.Sprintf("http://127.0.0.1:%d", port),
	}
}

// NewClientWithBaseURL creates a client against an explicit base URL
// (for testing against httptest servers).
func NewClientWithBaseURL(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

// Healthy reports whether the backend answers its health check.
// It never returns an error: any failure, timeout, or non-200 means "down".
func (c *Client) Healthy(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

// GenerateCommit asks the backend for a commit message for the given diff.
func (c *Client) GenerateCommit(ctx context.Context, reqBody CommitRequest) (*CommitResult, error) {
	var result CommitResult
	if err := c.post(ctx, commitPath, reqBody, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SuggestBranch asks the backend for a branch name for the given diff.
func (c *Client) SuggestBranch(ctx context.Context, reqBody BranchRequest) (*BranchResult, error) {
	var result BranchResult
	if err := c.post(ctx, branchPath, reqBody, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SummarizePR asks the backend to summarize the branch's changes.
func (c *Client) SummarizePR(ctx context.Context, reqBody PRRequest) (*PRSummary, error) {
	var result PRSummary
	if err := c.post(ctx, summaryPath, reqBody, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// post issues one synchronous JSON request and decodes the response,
// mapping transport and status failures onto the sentinel errors.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	log := logger.WithComponent("backend")

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	log.Debug("calling backend", "path", path, "requestID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isClientTimeout(err) {
			log.Warn("backend request timed out", "path", path, "requestID", requestID)
			return fmt.Errorf("%s: %w", path, ErrTimeout)
		}
		log.Warn("backend request failed", "path", path, "requestID", requestID, "error", err)
		return fmt.Errorf("%s: %w: %v", path, ErrUnreachable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%s: %w", path, ErrUnauthorized)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%s: backend returned status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse backend response: %w", err)
	}

	log.Debug("backend responded", "path", path, "requestID", requestID)
	return nil
}

// isClientTimeout detects net errors that report themselves as timeouts
// (the http.Client timeout surfaces this way rather than as
// context.DeadlineExceeded).
func isClientTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
