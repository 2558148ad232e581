package filter

import "fmt"

// ValidationMode selects how much of a node must be filled in.
//
// Lenient accepts in-progress nodes as an interactive builder produces
// them: placeholder properties and missing operators or values pass, but
// structurally broken nodes (bad id, bad conjunction, unknown operator
// strings) still fail. Strict is the contract a tree must meet before it
// is persisted or executed.
type ValidationMode int

const (
	Lenient ValidationMode = iota
	Strict
)

// Validate walks the node and returns a *ValidationError describing the
// first problem found, or nil.
func Validate(node Node, mode ValidationMode) error {
	switch n := node.(type) {
	case *Condition:
		return validateCondition(n, mode)
	case *Group:
		return validateGroup(n, mode)
	case nil:
		return &ValidationError{Msg: "node is nil"}
	default:
		return &ValidationError{NodeID: node.NodeID(), Msg: fmt.Sprintf("unknown node type %T", node)}
	}
}

// IsComplete reports whether the node passes strict validation. It is
// the non-failing wrapper interactive hosts poll to enable or disable a
// "run filter" action.
func IsComplete(node Node) bool {
	return Validate(node, Strict) == nil
}

func validateCondition(c *Condition, mode ValidationMode) error {
	if c.ID == "" {
		return &ValidationError{Field: "id", Msg: "condition id is required"}
	}
	if c.Type != NodeTypeCondition {
		return &ValidationError{NodeID: c.ID, Field: "id", Msg: fmt.Sprintf("node type %q does not match condition", c.Type)}
	}

	if c.Property != PropertyNone && !c.Property.Known() {
		return &ValidationError{NodeID: c.ID, Field: "property", Msg: fmt.Sprintf("unknown property %q", c.Property)}
	}
	if c.Operator != "" && !c.Operator.Valid() {
		return &ValidationError{NodeID: c.ID, Field: "operator", Msg: fmt.Sprintf("unknown operator %q", c.Operator)}
	}

	if mode != Strict {
		return nil
	}

	if c.Property == PropertyNone {
		return &ValidationError{NodeID: c.ID, Field: "property", Msg: "property is required"}
	}
	if c.Operator == "" {
		return &ValidationError{NodeID: c.ID, Field: "operator", Msg: "operator is required"}
	}
	if !c.Property.Allows(c.Operator) {
		return &ValidationError{
			NodeID: c.ID,
			Field:  "operator",
			Msg:    fmt.Sprintf("operator %q is not legal for property %q", c.Operator, c.Property),
		}
	}
	if c.Operator.RequiresValue() {
		if c.Value.Kind == KindAbsent || c.Value.Kind == KindNull {
			return &ValidationError{NodeID: c.ID, Field: "value", Msg: fmt.Sprintf("operator %q requires a value", c.Operator)}
		}
		if c.Value.Kind == KindString && c.Value.Str == "" {
			return &ValidationError{NodeID: c.ID, Field: "value", Msg: fmt.Sprintf("operator %q requires a non-empty value", c.Operator)}
		}
	}
	return nil
}

func validateGroup(g *Group, mode ValidationMode) error {
	if g.ID == "" {
		return &ValidationError{Field: "id", Msg: "group id is required"}
	}
	if g.Type != NodeTypeGroup {
		return &ValidationError{NodeID: g.ID, Field: "id", Msg: fmt.Sprintf("node type %q does not match group", g.Type)}
	}
	if g.Conjunction != ConjunctionAnd && g.Conjunction != ConjunctionOr {
		return &ValidationError{NodeID: g.ID, Field: "conjunction", Msg: fmt.Sprintf("conjunction must be %q or %q, got %q", ConjunctionAnd, ConjunctionOr, g.Conjunction)}
	}
	if g.Children == nil {
		return &ValidationError{NodeID: g.ID, Field: "children", Msg: "children must be an array"}
	}

	for i, child := range g.Children {
		if err := Validate(child, mode); err != nil {
			return &ValidationError{
				NodeID: g.ID,
				Field:  "children",
				Msg:    fmt.Sprintf("child %d is invalid", i),
				Err:    err,
			}
		}
	}
	return nil
}
