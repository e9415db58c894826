package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandValidate(t *testing.T) {
	valid := func() *Command {
		return &Command{
			HowTo:       "list files",
			Platform:    "Linux",
			CommandLine: "ls -la",
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Command)
		wantErr error
	}{
		{
			name:    "valid unsaved command",
			mutate:  func(c *Command) {},
			wantErr: nil,
		},
		{
			name:    "valid persisted command",
			mutate:  func(c *Command) { c.ID = 42 },
			wantErr: nil,
		},
		{
			name:    "negative id",
			mutate:  func(c *Command) { c.ID = -1 },
			wantErr: ErrInvalidID,
		},
		{
			name:    "empty how-to",
			mutate:  func(c *Command) { c.HowTo = "" },
			wantErr: ErrCommandHowToEmpty,
		},
		{
			name:    "how-to too long",
			mutate:  func(c *Command) { c.HowTo = strings.Repeat("a", MaxHowToLength+1) },
			wantErr: ErrCommandHowToTooLong,
		},
		{
			name:    "how-to at limit counted in runes",
			mutate:  func(c *Command) { c.HowTo = strings.Repeat("é", MaxHowToLength) },
			wantErr: nil,
		},
		{
			name:    "empty platform",
			mutate:  func(c *Command) { c.Platform = "" },
			wantErr: ErrCommandPlatformEmpty,
		},
		{
			name:    "empty command line",
			mutate:  func(c *Command) { c.CommandLine = "" },
			wantErr: ErrCommandLineEmpty,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := valid()
			tc.mutate(c)

			err := c.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			assert.Error(t, err)
			assert.True(t, errors.Is(err, tc.wantErr), "expected %v, got %v", tc.wantErr, err)
			assert.True(t, errors.Is(err, ErrValidation), "expected error to wrap ErrValidation")
		})
	}
}

func TestCommandClone(t *testing.T) {
	original := &Command{ID: 7, HowTo: "show disk usage", Platform: "Linux", CommandLine: "df -h"}

	cp := original.Clone()
	assert.Equal(t, original, cp)

	cp.HowTo = "changed"
	assert.Equal(t, "show disk usage", original.HowTo, "clone must be detached from the original")

	var nilCommand *Command
	assert.Nil(t, nilCommand.Clone())
}

func TestCommandIsPersisted(t *testing.T) {
	assert.False(t, (&Command{}).IsPersisted())
	assert.True(t, (&Command{ID: 1}).IsPersisted())
}
