package patch

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Supported operation kinds.
const (
	OpAdd     = "add"
	OpRemove  = "remove"
	OpReplace = "replace"
	OpMove    = "move"
	OpCopy    = "copy"
	OpTest    = "test"
)

// Operation is a single step of a JSON Patch document.
type Operation struct {
	Op    string          `json:"op"`
	Path  string          `json:"path"`
	From  string          `json:"from,omitempty"`
	Value json.RawMessage `json:"value,omitempty"`
}

// Document is implemented by pointer types whose string fields can be
// patched. PatchFields returns the addressable fields keyed by their
// canonical (JSON) names.
type Document interface {
	PatchFields() map[string]*string
}

// Apply applies ops in order to a copy of doc and returns the patched copy.
// Processing stops at the first failing operation; the returned error is an
// *Error describing it and doc itself is never modified.
func Apply[T any, PT interface {
	*T
	Document
}](doc T, ops []Operation) (T, error) {
	candidate := doc
	fields := PT(&candidate).PatchFields()

	for i, op := range ops {
		if err := applyOne(fields, op); err != nil {
			err.Index = i
			return doc, err
		}
	}

	return candidate, nil
}

func applyOne(fields map[string]*string, op Operation) *Error {
	kind := strings.ToLower(op.Op)

	switch kind {
	case OpAdd, OpReplace:
		target, name, err := resolve(fields, kind, op.Path)
		if err != nil {
			return err
		}
		value, err := decodeValue(kind, op.Path, name, op.Value)
		if err != nil {
			return err
		}
		*target = value

	case OpRemove:
		target, _, err := resolve(fields, kind, op.Path)
		if err != nil {
			return err
		}
		*target = ""

	case OpMove, OpCopy:
		if op.From == "" {
			return newError(kind, op.Path, "", RuleMissingFrom, "'from' is required for a %s operation", kind)
		}
		source, _, err := resolve(fields, kind, op.From)
		if err != nil {
			return err
		}
		target, _, err := resolve(fields, kind, op.Path)
		if err != nil {
			return err
		}
		value := *source
		if kind == OpMove {
			*source = ""
		}
		*target = value

	case OpTest:
		target, name, err := resolve(fields, kind, op.Path)
		if err != nil {
			return err
		}
		expected, err := decodeValue(kind, op.Path, name, op.Value)
		if err != nil {
			return err
		}
		if *target != expected {
			return newError(kind, op.Path, name, RuleTestFailed,
				"the current value %q at path '%s' is not equal to the test value %q", *target, op.Path, expected)
		}

	default:
		return newError(op.Op, op.Path, "", RuleInvalidOp, "invalid patch operation '%s'", op.Op)
	}

	return nil
}

// resolve maps a single-segment JSON Pointer to a document field.
func resolve(fields map[string]*string, kind, path string) (*string, string, *Error) {
	segment, ok := strings.CutPrefix(path, "/")
	if ok && !strings.Contains(segment, "/") {
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		for name, field := range fields {
			if strings.EqualFold(name, segment) {
				return field, name, nil
			}
		}
	}

	return nil, "", newError(kind, path, "", RulePathNotFound,
		"the target location specified by path '%s' was not found", path)
}

// decodeValue accepts a JSON string or null; null clears the field.
func decodeValue(kind, path, field string, raw json.RawMessage) (string, *Error) {
	if len(raw) == 0 {
		return "", newError(kind, path, field, RuleMissingValue, "'value' is required for a %s operation", kind)
	}

	var value *string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", newError(kind, path, field, RuleInvalidValue,
			"the value %s is invalid for target location '%s'", string(raw), field)
	}
	if value == nil {
		return "", nil
	}

	return *value, nil
}

func newError(op, path, field, rule, format string, args ...any) *Error {
	return &Error{
		Op:      op,
		Path:    path,
		Field:   field,
		Rule:    rule,
		Message: fmt.Sprintf(format, args...),
	}
}
