package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrCommandNotFound is returned when a command does not exist, either on
	// lookup or because the row vanished before a change was saved.
	ErrCommandNotFound = fmt.Errorf("%w: command", ErrNotFound)

	// ErrDuplicate is returned when a write would violate a uniqueness
	// constraint.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when a command is rejected before or
	// during a write. The wrapped error carries the rule that failed.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a unit of work cannot commit.
	ErrTransactionFailed = errors.New("transaction failed")
)

// ChangeError reports a change to a command that could not be recorded or
// saved.
type ChangeError struct {
	Kind ChangeKind
	// CommandID is zero for commands that were never saved.
	CommandID int64
	Message   string
	Err       error
}

func (e *ChangeError) Error() string {
	target := "command"
	if e.CommandID != 0 {
		target = fmt.Sprintf("command %d", e.CommandID)
	}

	msg := fmt.Sprintf("%s %s: %s", e.Kind, target, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap supports errors.Is and errors.As on the cause.
func (e *ChangeError) Unwrap() error {
	return e.Err
}

func newChangeError(kind ChangeKind, id int64, message string, err error) *ChangeError {
	return &ChangeError{Kind: kind, CommandID: id, Message: message, Err: err}
}

// NotFound reports that the command targeted by change no longer exists.
func NotFound(change Change) error {
	return newChangeError(change.Kind, change.Values.ID, "row no longer exists", ErrCommandNotFound)
}

// IsCommandNotFound reports whether err means a command was missing.
func IsCommandNotFound(err error) bool {
	return errors.Is(err, ErrCommandNotFound)
}
