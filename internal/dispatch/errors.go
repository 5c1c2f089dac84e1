package dispatch

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDoubleReply is returned when a handler tries to consume the single
// first-reply slot of an invocation twice. A programming error, not a user one.
var ErrDoubleReply = errors.New("first reply already consumed")

// ErrNoFirstReply is returned when an edit or followup is attempted before
// the first reply slot has been consumed.
var ErrNoFirstReply = errors.New("no initial reply to edit")

// DuplicateCommandError reports a second registration under an existing name.
type DuplicateCommandError struct {
	Name string
}

func (e *DuplicateCommandError) Error() string {
	return fmt.Sprintf("command %q is already registered", e.Name)
}

// NotFoundError reports an unknown command, session, or role.
type NotFoundError struct {
	What string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.What)
}

// UnauthorizedError reports a permission-gated refusal. Missing holds the
// permission bits the actor lacks.
type UnauthorizedError struct {
	Missing int64
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("missing permissions: %s", strings.Join(PermissionNames(e.Missing), ", "))
}

// ArgProblem describes a single argument validation failure.
type ArgProblem struct {
	Field  string
	Reason string
}

// ValidationError collects every argument problem of one invocation so the
// user sees them all at once instead of fixing them one by one.
type ValidationError struct {
	Problems []ArgProblem
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		parts[i] = fmt.Sprintf("%s: %s", p.Field, p.Reason)
	}
	return "invalid arguments: " + strings.Join(parts, "; ")
}

// CollaboratorError wraps a failure from an external collaborator (search
// API, transmission). The wrapped cause is logged but never shown verbatim
// to the user.
type CollaboratorError struct {
	Op  string
	Err error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error { return e.Err }

// Collaborator wraps err as a CollaboratorError, or returns nil.
func Collaborator(op string, err error) error {
	if err == nil {
		return nil
	}
	return &CollaboratorError{Op: op, Err: err}
}

// UserMessage converts err into the single human-readable line shown to the
// invoking actor. Internal causes stay out of the result.
func UserMessage(err error) string {
	var verr *ValidationError
	var uerr *UnauthorizedError
	var nerr *NotFoundError
	var cerr *CollaboratorError

	switch {
	case errors.As(err, &verr):
		lines := make([]string, len(verr.Problems))
		for i, p := range verr.Problems {
			lines[i] = fmt.Sprintf("`%s`: %s", p.Field, p.Reason)
		}
		return "Invalid arguments:\n" + strings.Join(lines, "\n")
	case errors.As(err, &uerr):
		return fmt.Sprintf(
			"You need the following permissions to run this command:\n`%s`",
			strings.Join(PermissionNames(uerr.Missing), "`, `"),
		)
	case errors.As(err, &nerr):
		return fmt.Sprintf("%s not found.", capitalize(nerr.What))
	case errors.As(err, &cerr):
		return fmt.Sprintf("Failed to %s. Please try again later.", cerr.Op)
	default:
		return "Something went wrong while running this command."
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
