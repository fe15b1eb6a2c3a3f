// Package git provides the version-control adapter for GitWhisperer.
//
// The package is organized into focused modules:
//   - service.go: GitService struct and constructor
//   - diff.go: Staged and HEAD diff collection
//   - status.go: Porcelain status parsing
//   - commit.go: Staging, commit, and history operations
//   - repo.go: Repository detection and branch queries
//
// Every operation runs exactly one git command against a given working
// directory, never retries, and returns an explicit error on failure so
// callers can tell "no content" apart from "command failed".
package git
