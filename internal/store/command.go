package store

import (
	"context"

	"github.com/phrazzld/commander-api/internal/domain"
	"github.com/samber/mo"
)

// CommandStore is the long-lived handle to command storage.
// It is safe for concurrent use and hands out one CommandSession per unit of work,
// typically one per HTTP request.
type CommandStore interface {
	// Session opens a new unit of work. Sessions are cheap and must not be
	// shared between goroutines.
	Session() CommandSession
}

// CommandSession defines a unit of work over command data.
//
// Reads go straight to storage and return detached copies.
// Create, Update and Delete only record the change; nothing is written until
// SaveChanges is called. Mutating a returned *domain.Command has no effect
// on storage until it is passed to Update and the session is saved.
type CommandSession interface {
	// ListAll returns every stored command ordered by ID.
	// Returns an empty slice when there are no commands.
	ListAll(ctx context.Context) ([]*domain.Command, error)

	// GetByID retrieves a command by its ID.
	// Returns mo.None when no command has that ID; the error is reserved for
	// storage failures.
	GetByID(ctx context.Context, id int64) (mo.Option[*domain.Command], error)

	// Create records a new command for insertion. The command must not have an ID.
	// The storage layer assigns the ID during SaveChanges and writes it back
	// into the given command.
	// Returns an error wrapping ErrInvalidEntity if the command is invalid.
	Create(ctx context.Context, command *domain.Command) error

	// Update records the current field values of a persisted command.
	// Returns an error wrapping ErrInvalidEntity if the command is invalid or unsaved.
	Update(ctx context.Context, command *domain.Command) error

	// Delete records the removal of a persisted command.
	// Returns an error wrapping ErrInvalidEntity if the command is unsaved.
	Delete(ctx context.Context, command *domain.Command) error

	// SaveChanges applies all recorded changes atomically, in the order they were
	// recorded, and clears them. If any change fails, storage is left unchanged.
	// Returns ErrCommandNotFound (wrapped) if an updated or deleted command no
	// longer exists.
	SaveChanges(ctx context.Context) error
}
