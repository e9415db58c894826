package domain

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// MaxHowToLength is the maximum number of characters allowed in Command.HowTo.
const MaxHowToLength = 250

// Command-specific validation errors
var (
	// ErrCommandHowToEmpty is returned when a command has no description.
	ErrCommandHowToEmpty = errors.New("command how-to cannot be empty")

	// ErrCommandHowToTooLong is returned when the description exceeds MaxHowToLength.
	ErrCommandHowToTooLong = fmt.Errorf("command how-to cannot exceed %d characters", MaxHowToLength)

	// ErrCommandPlatformEmpty is returned when a command has no platform.
	ErrCommandPlatformEmpty = errors.New("command platform cannot be empty")

	// ErrCommandLineEmpty is returned when a command has no command line.
	ErrCommandLineEmpty = errors.New("command line cannot be empty")
)

// Command is a saved shell command together with a short description of
// what it does and the platform it runs on.
//
// ID is zero until the command has been persisted; the storage layer assigns
// it and it never changes afterwards.
type Command struct {
	ID          int64  `json:"id"           db:"id"`
	HowTo       string `json:"how_to"       db:"how_to"`
	Platform    string `json:"platform"     db:"platform"`
	CommandLine string `json:"command_line" db:"command_line"`
}

// IsPersisted reports whether the storage layer has assigned an ID.
func (c *Command) IsPersisted() bool {
	return c.ID > 0
}

// Clone returns a detached copy of the command.
func (c *Command) Clone() *Command {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// Validate checks if the Command has valid data.
// Returns an error wrapping ErrValidation if any field fails validation.
func (c *Command) Validate() error {
	if c.ID < 0 {
		return fmt.Errorf("%w: %w", ErrValidation, ErrInvalidID)
	}

	if c.HowTo == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrCommandHowToEmpty)
	}

	if utf8.RuneCountInString(c.HowTo) > MaxHowToLength {
		return fmt.Errorf("%w: %w", ErrValidation, ErrCommandHowToTooLong)
	}

	if c.Platform == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrCommandPlatformEmpty)
	}

	if c.CommandLine == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrCommandLineEmpty)
	}

	return nil
}
