package filter

import (
	"errors"
	"fmt"
)

// Sentinel causes for evaluation failures.
var (
	// ErrUnknownProperty indicates a condition references a property the
	// extractor does not recognize.
	ErrUnknownProperty = errors.New("unknown filter property")

	// ErrUnknownOperator indicates a condition carries an operator the
	// applier does not recognize.
	ErrUnknownOperator = errors.New("unknown filter operator")

	// ErrUnknownNodeType indicates a tree node is neither a condition
	// nor a group.
	ErrUnknownNodeType = errors.New("unknown filter node type")
)

// ValidationError reports a structural or semantic problem with a single
// tree node. Field names the offending part ("property", "operator",
// "value", "conjunction", "children", or "id") when one applies.
//
// Validation errors are ordinary, expected outcomes during interactive
// tree construction, not faults.
type ValidationError struct {
	NodeID string
	Field  string
	Msg    string
	Err    error // wrapped child failure, if any
}

func (e *ValidationError) Error() string {
	msg := "invalid filter node"
	if e.NodeID != "" {
		msg += " " + e.NodeID
	}
	if e.Field != "" {
		msg += fmt.Sprintf(": field %q", e.Field)
	}
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() error { return e.Err }

// EvaluationError reports that a condition which may well have passed
// validation is unrecognized by the evaluator: a programming or
// data-corruption fault, not a per-record data problem. It wraps one of
// the sentinel causes above and carries the owning node id when known.
type EvaluationError struct {
	NodeID   string
	Property Property
	Operator Operator
	Err      error
}

func (e *EvaluationError) Error() string {
	msg := "filter evaluation failed"
	if e.NodeID != "" {
		msg += " at node " + e.NodeID
	}
	if e.Property != "" {
		msg += fmt.Sprintf(": property %q", e.Property)
	}
	if e.Operator != "" {
		msg += fmt.Sprintf(": operator %q", e.Operator)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *EvaluationError) Unwrap() error { return e.Err }
