package assistant

import (
	"fmt"
	"strings"
)

// warnLineLength is the soft limit on the commit summary line. Messages
// beyond it are accepted with a warning, never blocked.
const warnLineLength = 100

// Verdict is the outcome of commit message validation.
type Verdict struct {
	OK      bool
	Reason  string // set when rejected
	Warning string // set when accepted with a warning
}

// ValidateMessage checks a commit message before it is applied:
// an empty message (after trimming) is rejected; a first line longer than
// 100 characters produces a warning but is not blocked.
func ValidateMessage(message string) Verdict {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return Verdict{OK: false, Reason: "commit message cannot be empty"}
	}

	first := trimmed
	if idx := strings.IndexByte(first, '\n'); idx >= 0 {
		first = first[:idx]
	}
	if len(first) > warnLineLength {
		return Verdict{
			OK:      true,
			Warning: fmt.Sprintf("summary line is %d characters; consider keeping it under %d", len(first), warnLineLength),
		}
	}

	return Verdict{OK: true}
}
