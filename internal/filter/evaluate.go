// Package filter implements a tree-structured boolean predicate engine
// over task records: recursive AND/OR groups of typed property
// conditions, with hierarchical tag matching and timezone-aware date
// comparison delegated to a date collaborator.
package filter

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/renatomen/tasknotes-sub005/internal/domain"
)

// Evaluator runs filter trees against task records. It is stateless
// across evaluations and safe for concurrent use; each record is an
// independent pass over the same immutable tree.
type Evaluator struct {
	// Dates resolves and compares date values. Required for date
	// properties; with a nil resolver date comparisons never match.
	Dates DateResolver

	// Status classifies status strings for "status.isCompleted".
	// Optional; see TaskValue.
	Status domain.StatusClassifier

	// Log receives debug output. Defaults to slog.Default.
	Log *slog.Logger
}

func (e *Evaluator) logger() *slog.Logger {
	if e.Log != nil {
		return e.Log
	}
	return slog.Default()
}

// Matches reports whether a single task satisfies the tree rooted at
// node. Groups combine children per their conjunction; an empty "and"
// group is vacuously true and an empty "or" group is vacuously false.
//
// Errors surface programming or data-corruption faults (unknown
// property, operator, or node type) annotated with the owning node id;
// per-record coercion failures are not errors.
func (e *Evaluator) Matches(node Node, task *domain.Task) (bool, error) {
	switch n := node.(type) {
	case *Condition:
		return e.matchCondition(n, task)
	case *Group:
		return e.matchGroup(n, task)
	case nil:
		return false, &EvaluationError{Err: ErrUnknownNodeType}
	default:
		return false, &EvaluationError{NodeID: node.NodeID(), Err: ErrUnknownNodeType}
	}
}

func (e *Evaluator) matchCondition(c *Condition, task *domain.Task) (bool, error) {
	taskValue, err := TaskValue(task, c.Property, e.Status)
	if err != nil {
		return false, withNodeID(err, c.ID)
	}
	ok, err := Apply(taskValue, c.Operator, c.Value, c.Property, e.Dates)
	if err != nil {
		return false, withNodeID(err, c.ID)
	}
	return ok, nil
}

func (e *Evaluator) matchGroup(g *Group, task *domain.Task) (bool, error) {
	switch g.Conjunction {
	case ConjunctionAnd:
		for _, child := range g.Children {
			ok, err := e.Matches(child, task)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	case ConjunctionOr:
		for _, child := range g.Children {
			ok, err := e.Matches(child, task)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, &EvaluationError{NodeID: g.ID, Err: fmt.Errorf("unknown conjunction %q", g.Conjunction)}
	}
}

// Filter returns the tasks matching the tree, preserving input order.
// The first evaluation fault aborts the run; callers preferring
// skip-and-log semantics can loop over Matches themselves.
func (e *Evaluator) Filter(node Node, tasks []*domain.Task) ([]*domain.Task, error) {
	matched := make([]*domain.Task, 0, len(tasks))
	for _, task := range tasks {
		ok, err := e.Matches(node, task)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, task)
		}
	}
	e.logger().Debug("filter evaluated",
		"total", len(tasks),
		"matched", len(matched))
	return matched, nil
}

// withNodeID fills in the owning node id on an evaluation error that was
// raised below the tree walk, without discarding its cause.
func withNodeID(err error, nodeID string) error {
	var evalErr *EvaluationError
	if errors.As(err, &evalErr) && evalErr.NodeID == "" {
		evalErr.NodeID = nodeID
	}
	return err
}
