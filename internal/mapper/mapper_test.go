package mapper

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/commander-api/internal/api/dto"
	"github.com/phrazzld/commander-api/internal/domain"
)

func sampleCommand() *domain.Command {
	return &domain.Command{ID: 7, HowTo: "list files", Platform: "Linux", CommandLine: "ls -la"}
}

func TestToReadResponse(t *testing.T) {
	got := ToReadResponse(sampleCommand())

	assert.Equal(t, dto.CommandReadResponse{
		ID:          7,
		HowTo:       "list files",
		Platform:    "Linux",
		CommandLine: "ls -la",
	}, got)
}

func TestToReadResponsesEmpty(t *testing.T) {
	got := ToReadResponses(nil)

	data, err := json.Marshal(got)
	assert.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestToReadResponsesKeepsOrder(t *testing.T) {
	first := sampleCommand()
	second := &domain.Command{ID: 9, HowTo: "show disk usage", Platform: "Linux", CommandLine: "df -h"}

	got := ToReadResponses([]*domain.Command{first, second})

	assert.Len(t, got, 2)
	assert.Equal(t, int64(7), got[0].ID)
	assert.Equal(t, int64(9), got[1].ID)
}

func TestFromCreateRequest(t *testing.T) {
	got := FromCreateRequest(dto.CommandCreateRequest{HowTo: "a", Platform: "b", CommandLine: "c"})

	assert.False(t, got.IsPersisted())
	assert.Equal(t, &domain.Command{HowTo: "a", Platform: "b", CommandLine: "c"}, got)
}

func TestUpdateRoundTrip(t *testing.T) {
	cmd := sampleCommand()

	req := ToUpdateRequest(cmd)
	req.CommandLine = "ls -lah"
	ApplyUpdate(req, cmd)

	assert.Equal(t, int64(7), cmd.ID, "ApplyUpdate must not touch the ID")
	assert.Equal(t, "ls -lah", cmd.CommandLine)
	assert.Equal(t, "list files", cmd.HowTo)
}

func TestApplyUpdateOverwritesAllFields(t *testing.T) {
	cmd := sampleCommand()

	ApplyUpdate(dto.CommandUpdateRequest{HowTo: "x", Platform: "y", CommandLine: "z"}, cmd)

	assert.Equal(t, &domain.Command{ID: 7, HowTo: "x", Platform: "y", CommandLine: "z"}, cmd)
}
