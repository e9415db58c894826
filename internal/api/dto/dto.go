// Package dto defines the JSON shapes exchanged with API clients. Each shape
// is a projection of domain.Command; none carries data the entity lacks.
package dto

// CommandReadResponse is the representation returned for a command.
type CommandReadResponse struct {
	ID          int64  `json:"id"`
	HowTo       string `json:"howTo"`
	Platform    string `json:"platform"`
	CommandLine string `json:"commandLine"`
}

// CommandCreateRequest is the payload for creating a command.
// The identifier is assigned by storage, so clients cannot supply one.
type CommandCreateRequest struct {
	HowTo       string `json:"howTo"       validate:"required,max=250"`
	Platform    string `json:"platform"    validate:"required"`
	CommandLine string `json:"commandLine" validate:"required"`
}

// CommandUpdateRequest is the payload for replacing a command, and the
// document that PATCH operations are applied to.
type CommandUpdateRequest struct {
	HowTo       string `json:"howTo"       validate:"required,max=250"`
	Platform    string `json:"platform"    validate:"required"`
	CommandLine string `json:"commandLine" validate:"required"`
}

// PatchFields exposes the patchable fields keyed by their JSON names.
func (r *CommandUpdateRequest) PatchFields() map[string]*string {
	return map[string]*string{
		"howTo":       &r.HowTo,
		"platform":    &r.Platform,
		"commandLine": &r.CommandLine,
	}
}
