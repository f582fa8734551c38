package gitcmd

import (
	"errors"
	"fmt"
	"strings"
)

// Kind tags the origin of a shell error.
type Kind string

const KindGit Kind = "git"

// CodeUnknownRevision is the exit status git uses for fatal errors such as an
// ambiguous or unknown revision.
const CodeUnknownRevision = 128

// Error is a failed git invocation.
type Error struct {
	Kind   Kind
	Code   int
	Args   []string
	Stderr string
	// UserMessage replaces the diagnostic text when shown to a user.
	UserMessage string
	Err         error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("git %s failed", strings.Join(e.Args, " "))
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) ExitCode() int {
	return e.Code
}

func (e *Error) UserFacingMessage() string {
	return e.UserMessage
}

// AsError returns the first *Error in err's chain.
func AsError(err error) (*Error, bool) {
	var gitErr *Error
	if errors.As(err, &gitErr) && gitErr != nil {
		return gitErr, true
	}
	return nil, false
}

// HasCode reports whether err carries a git shell error of the given exit code.
func HasCode(err error, code int) bool {
	gitErr, ok := AsError(err)
	if !ok {
		return false
	}
	return gitErr.Kind == KindGit && gitErr.Code == code
}
