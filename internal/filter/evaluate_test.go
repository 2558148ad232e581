package filter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renatomen/tasknotes-sub005/internal/domain"
	"github.com/renatomen/tasknotes-sub005/internal/ptr"
)

func newEvaluator() *Evaluator {
	return &Evaluator{Dates: stubDates{}}
}

func TestEvaluator_EndToEnd(t *testing.T) {
	// open AND tags-not-urgent: only the open, non-urgent record passes.
	tree := NewGroup(ConjunctionAnd,
		NewCondition(PropertyStatus, OpIs, String("open")),
		NewCondition(PropertyTags, OpContains, String("-urgent")),
	)

	tasks := []*domain.Task{
		{Status: "open", Tags: []string{"urgent"}},
		{Status: "open", Tags: []string{"home"}},
		{Status: "done", Tags: []string{"home"}},
	}

	matched, err := newEvaluator().Filter(tree, tasks)
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Same(t, tasks[1], matched[0])
}

func TestEvaluator_EmptyGroupConventions(t *testing.T) {
	task := &domain.Task{}

	// Vacuous truth for AND, vacuous falsity for OR.
	ok, err := newEvaluator().Matches(NewGroup(ConjunctionAnd), task)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = newEvaluator().Matches(NewGroup(ConjunctionOr), task)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEvaluator_OrShortCircuits(t *testing.T) {
	tree := NewGroup(ConjunctionOr,
		NewCondition(PropertyStatus, OpIs, String("open")),
		NewCondition(PropertyPriority, OpIs, String("high")),
	)

	ok, err := newEvaluator().Matches(tree, &domain.Task{Status: "open", Priority: "low"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = newEvaluator().Matches(tree, &domain.Task{Status: "done", Priority: "low"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEvaluator_NestedTree(t *testing.T) {
	// open AND (work-tagged OR short).
	tree := NewGroup(ConjunctionAnd,
		NewCondition(PropertyStatus, OpIs, String("open")),
		NewGroup(ConjunctionOr,
			NewCondition(PropertyTags, OpContains, String("work")),
			NewCondition(PropertyTimeEstimate, OpLessThan, Number(15)),
		),
	)

	tasks := []*domain.Task{
		{Status: "open", Tags: []string{"work/project"}},
		{Status: "open", TimeEstimate: ptr.To(10.0)},
		{Status: "open", TimeEstimate: ptr.To(60.0)},
		{Status: "done", Tags: []string{"work"}},
	}

	matched, err := newEvaluator().Filter(tree, tasks)
	require.NoError(t, err)
	require.Len(t, matched, 2)
	assert.Same(t, tasks[0], matched[0])
	assert.Same(t, tasks[1], matched[1])
}

func TestEvaluator_DateConditions(t *testing.T) {
	tree := NewCondition(PropertyDue, OpIsBefore, String("today"))

	ok, err := newEvaluator().Matches(tree, &domain.Task{Due: ptr.To("2025-01-10")})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = newEvaluator().Matches(tree, &domain.Task{Due: ptr.To("2025-02-01")})
	require.NoError(t, err)
	assert.False(t, ok)

	// Missing or malformed dates exclude the record, never fail the run.
	ok, err = newEvaluator().Matches(tree, &domain.Task{})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = newEvaluator().Matches(tree, &domain.Task{Due: ptr.To("not a date")})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEvaluator_StatusCompletedClassifier(t *testing.T) {
	tree := NewCondition(PropertyStatusCompleted, OpIsChecked, Absent())
	task := &domain.Task{Status: "done"}

	// Without a classifier the property extracts as absent, so checked
	// is false.
	ok, err := newEvaluator().Matches(tree, task)
	require.NoError(t, err)
	assert.False(t, ok)

	e := &Evaluator{Dates: stubDates{}, Status: domain.NewStatusSet("done")}
	ok, err = e.Matches(tree, task)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEvaluator_UnknownPropertyCarriesNodeID(t *testing.T) {
	bad := NewCondition(Property("bogus"), OpIs, String("x"))
	tree := NewGroup(ConjunctionAnd, bad)

	_, err := newEvaluator().Matches(tree, &domain.Task{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownProperty))

	var evalErr *EvaluationError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, bad.ID, evalErr.NodeID)
}

func TestEvaluator_UnknownOperatorCarriesNodeID(t *testing.T) {
	bad := NewCondition(PropertyTitle, Operator("frobnicates"), String("x"))

	_, err := newEvaluator().Matches(bad, &domain.Task{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownOperator))

	var evalErr *EvaluationError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, bad.ID, evalErr.NodeID)
}

func TestEvaluator_FilterAbortsOnFault(t *testing.T) {
	tree := NewCondition(Property("bogus"), OpIs, String("x"))

	_, err := newEvaluator().Filter(tree, []*domain.Task{{}, {}})
	require.Error(t, err)
}

func TestEvaluator_EvaluationDoesNotMutate(t *testing.T) {
	tree := NewGroup(ConjunctionAnd,
		NewCondition(PropertyTags, OpContains, Strings([]string{"work"})),
	)
	snapshot, err := MarshalNode(tree)
	require.NoError(t, err)

	task := &domain.Task{Tags: []string{"work"}}
	_, err = newEvaluator().Matches(tree, task)
	require.NoError(t, err)

	after, err := MarshalNode(tree)
	require.NoError(t, err)
	assert.Equal(t, string(snapshot), string(after))
	assert.Equal(t, []string{"work"}, task.Tags)
}
