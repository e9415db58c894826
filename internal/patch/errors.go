package patch

import "fmt"

// Rules reported by Error.
const (
	RuleInvalidOp    = "op"
	RulePathNotFound = "path"
	RuleMissingFrom  = "from"
	RuleMissingValue = "value"
	RuleInvalidValue = "type"
	RuleTestFailed   = "test"
)

// Error describes the operation that stopped a patch.
type Error struct {
	// Index is the position of the failing operation in the patch document.
	Index int
	Op    string
	Path  string
	// Field is the canonical name of the affected field, when known.
	Field   string
	Rule    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("patch operation %d (%s): %s", e.Index, e.Op, e.Message)
}
