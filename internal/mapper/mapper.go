// Package mapper converts between domain.Command and the API transfer shapes.
package mapper

import (
	"github.com/phrazzld/commander-api/internal/api/dto"
	"github.com/phrazzld/commander-api/internal/domain"
)

// ToReadResponse projects a command into its read shape.
func ToReadResponse(cmd *domain.Command) dto.CommandReadResponse {
	return dto.CommandReadResponse{
		ID:          cmd.ID,
		HowTo:       cmd.HowTo,
		Platform:    cmd.Platform,
		CommandLine: cmd.CommandLine,
	}
}

// ToReadResponses projects every command. The result is never nil so that
// an empty collection encodes as [].
func ToReadResponses(cmds []*domain.Command) []dto.CommandReadResponse {
	out := make([]dto.CommandReadResponse, 0, len(cmds))
	for _, cmd := range cmds {
		out = append(out, ToReadResponse(cmd))
	}
	return out
}

// FromCreateRequest builds an unpersisted command from a create payload.
func FromCreateRequest(req dto.CommandCreateRequest) *domain.Command {
	return &domain.Command{
		HowTo:       req.HowTo,
		Platform:    req.Platform,
		CommandLine: req.CommandLine,
	}
}

// ToUpdateRequest projects a command into the update shape, the base
// document for partial updates.
func ToUpdateRequest(cmd *domain.Command) dto.CommandUpdateRequest {
	return dto.CommandUpdateRequest{
		HowTo:       cmd.HowTo,
		Platform:    cmd.Platform,
		CommandLine: cmd.CommandLine,
	}
}

// ApplyUpdate overwrites every field of cmd from req. The ID is left alone.
func ApplyUpdate(req dto.CommandUpdateRequest, cmd *domain.Command) {
	cmd.HowTo = req.HowTo
	cmd.Platform = req.Platform
	cmd.CommandLine = req.CommandLine
}
