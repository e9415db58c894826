package store

import (
	"fmt"

	"github.com/phrazzld/commander-api/internal/domain"
)

// ChangeKind identifies the kind of a pending change.
type ChangeKind int

const (
	ChangeCreate ChangeKind = iota + 1
	ChangeUpdate
	ChangeDelete
)

// String returns the operation name used in errors and logs.
func (k ChangeKind) String() string {
	switch k {
	case ChangeCreate:
		return "create"
	case ChangeUpdate:
		return "update"
	case ChangeDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Change is a mutation recorded by a session but not yet saved.
type Change struct {
	Kind ChangeKind
	// Target is the caller's command. Creates write the assigned ID back into it.
	Target *domain.Command
	// Values is a snapshot of Target taken when the change was recorded.
	Values domain.Command
}

// ChangeSet collects pending changes in the order they were recorded.
// Session implementations embed it to share validation of Create, Update
// and Delete. It is not safe for concurrent use.
type ChangeSet struct {
	changes []Change
}

// RecordCreate validates cmd and records it for insertion.
func (c *ChangeSet) RecordCreate(cmd *domain.Command) error {
	if cmd == nil {
		return newChangeError(ChangeCreate, 0, "command is nil", ErrInvalidEntity)
	}
	if cmd.IsPersisted() {
		return newChangeError(ChangeCreate, cmd.ID, "command already has an ID", ErrInvalidEntity)
	}
	if err := cmd.Validate(); err != nil {
		return newChangeError(ChangeCreate, 0, "validation failed",
			fmt.Errorf("%w: %w", ErrInvalidEntity, err))
	}

	c.record(ChangeCreate, cmd)
	return nil
}

// RecordUpdate validates cmd and records its current values.
func (c *ChangeSet) RecordUpdate(cmd *domain.Command) error {
	if err := requirePersisted(ChangeUpdate, cmd); err != nil {
		return err
	}
	if err := cmd.Validate(); err != nil {
		return newChangeError(ChangeUpdate, cmd.ID, "validation failed",
			fmt.Errorf("%w: %w", ErrInvalidEntity, err))
	}

	c.record(ChangeUpdate, cmd)
	return nil
}

// RecordDelete records the removal of cmd.
func (c *ChangeSet) RecordDelete(cmd *domain.Command) error {
	if err := requirePersisted(ChangeDelete, cmd); err != nil {
		return err
	}

	c.record(ChangeDelete, cmd)
	return nil
}

// Pending returns the recorded changes in order.
func (c *ChangeSet) Pending() []Change {
	return c.changes
}

// Reset discards every recorded change.
func (c *ChangeSet) Reset() {
	c.changes = nil
}

func (c *ChangeSet) record(kind ChangeKind, cmd *domain.Command) {
	c.changes = append(c.changes, Change{Kind: kind, Target: cmd, Values: *cmd.Clone()})
}

func requirePersisted(kind ChangeKind, cmd *domain.Command) error {
	if cmd == nil {
		return newChangeError(kind, 0, "command is nil", ErrInvalidEntity)
	}
	if !cmd.IsPersisted() {
		return newChangeError(kind, 0, "command has not been saved", ErrInvalidEntity)
	}
	return nil
}
