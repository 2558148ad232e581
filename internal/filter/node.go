package filter

import (
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/huandu/go-clone"
)

// NodeType discriminates the two tree node shapes.
type NodeType string

const (
	NodeTypeCondition NodeType = "condition"
	NodeTypeGroup     NodeType = "group"
)

// Conjunction combines child results inside a group.
type Conjunction string

const (
	ConjunctionAnd Conjunction = "and"
	ConjunctionOr  Conjunction = "or"
)

// Node is a filter tree node: either a *Condition leaf or a *Group.
// Trees are value objects from the engine's point of view; evaluation
// never mutates them.
type Node interface {
	NodeID() string
	NodeType() NodeType
}

// Condition is a leaf comparing one task property against one operator
// and value.
type Condition struct {
	ID       string   `json:"id"`
	Type     NodeType `json:"type"`
	Property Property `json:"property"`
	Operator Operator `json:"operator"`
	Value    Value    `json:"value"`
}

// NodeID returns the condition's unique id.
func (c *Condition) NodeID() string { return c.ID }

// NodeType returns NodeTypeCondition.
func (c *Condition) NodeType() NodeType { return NodeTypeCondition }

// Group is an internal node combining children via AND or OR.
type Group struct {
	ID          string      `json:"id"`
	Type        NodeType    `json:"type"`
	Conjunction Conjunction `json:"conjunction"`
	Children    []Node      `json:"children"`
}

// NodeID returns the group's unique id.
func (g *Group) NodeID() string { return g.ID }

// NodeType returns NodeTypeGroup.
func (g *Group) NodeType() NodeType { return NodeTypeGroup }

// Node ids are minted from an atomic counter under a per-process random
// namespace, so two concurrent constructions never collide and ids from
// different processes stay distinguishable.
var (
	nodeCounter   atomic.Uint64
	nodeNamespace = uuid.NewString()[:8]
)

// NewNodeID mints a unique node id.
func NewNodeID() string {
	return fmt.Sprintf("%s-%d", nodeNamespace, nodeCounter.Add(1))
}

// NewCondition builds a condition leaf with a fresh id. An interactively
// created condition starts as NewCondition(PropertyNone, "", Absent())
// and is completed field by field.
func NewCondition(property Property, operator Operator, value Value) *Condition {
	return &Condition{
		ID:       NewNodeID(),
		Type:     NodeTypeCondition,
		Property: property,
		Operator: operator,
		Value:    value,
	}
}

// NewGroup builds a group with a fresh id. Children is never nil.
func NewGroup(conjunction Conjunction, children ...Node) *Group {
	if children == nil {
		children = []Node{}
	}
	return &Group{
		ID:          NewNodeID(),
		Type:        NodeTypeGroup,
		Conjunction: conjunction,
		Children:    children,
	}
}

// CloneNode deep-clones a tree. The copy shares no substructure with the
// original, so a persisted view can never alias a live one.
func CloneNode(n Node) Node {
	if n == nil {
		return nil
	}
	return clone.Clone(n).(Node)
}

// MarshalNode serializes a tree to its plain JSON shape. The encoding is
// deterministic: the same tree always produces the same bytes.
func MarshalNode(n Node) ([]byte, error) {
	return json.Marshal(n)
}

// UnmarshalNode deserializes a tree, dispatching on each node's "type"
// field.
func UnmarshalNode(data []byte) (Node, error) {
	var head struct {
		Type NodeType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode filter node: %w", err)
	}

	switch head.Type {
	case NodeTypeCondition:
		var c Condition
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("decode condition: %w", err)
		}
		return &c, nil
	case NodeTypeGroup:
		var g Group
		if err := json.Unmarshal(data, &g); err != nil {
			return nil, fmt.Errorf("decode group: %w", err)
		}
		return &g, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownNodeType, head.Type)
	}
}

// UnmarshalJSON decodes a group, resolving each child's concrete type.
func (g *Group) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          string            `json:"id"`
		Type        NodeType          `json:"type"`
		Conjunction Conjunction       `json:"conjunction"`
		Children    []json.RawMessage `json:"children"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	g.ID = raw.ID
	g.Type = raw.Type
	g.Conjunction = raw.Conjunction
	g.Children = make([]Node, len(raw.Children))
	for i, childData := range raw.Children {
		child, err := UnmarshalNode(childData)
		if err != nil {
			return fmt.Errorf("child %d: %w", i, err)
		}
		g.Children[i] = child
	}
	return nil
}
