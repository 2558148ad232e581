package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_StrictValidCondition(t *testing.T) {
	c := NewCondition(PropertyStatus, OpIs, String("open"))
	require.NoError(t, Validate(c, Strict))
	assert.True(t, IsComplete(c))
}

func TestValidate_LenientAllowsPlaceholder(t *testing.T) {
	// A freshly created condition starts with the empty placeholder
	// property and no operator.
	c := NewCondition(PropertyNone, "", Absent())

	require.NoError(t, Validate(c, Lenient))
	assert.False(t, IsComplete(c))

	err := Validate(c, Strict)
	require.Error(t, err)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "property", valErr.Field)
	assert.Equal(t, c.ID, valErr.NodeID)
}

func TestValidate_MissingID(t *testing.T) {
	c := &Condition{Type: NodeTypeCondition, Property: PropertyTitle, Operator: OpIsEmpty}

	err := Validate(c, Lenient)
	require.Error(t, err)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "id", valErr.Field)
}

func TestValidate_UnknownPropertyFailsEvenLenient(t *testing.T) {
	c := NewCondition(Property("bogus"), OpIs, String("x"))

	for _, mode := range []ValidationMode{Lenient, Strict} {
		err := Validate(c, mode)
		require.Error(t, err)
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Equal(t, "property", valErr.Field)
	}
}

func TestValidate_UnknownOperatorFailsEvenLenient(t *testing.T) {
	c := NewCondition(PropertyTitle, Operator("frobnicates"), String("x"))

	err := Validate(c, Lenient)
	require.Error(t, err)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "operator", valErr.Field)
}

func TestValidate_OperatorLegality(t *testing.T) {
	testCases := []struct {
		name     string
		property Property
		operator Operator
		legal    bool
	}{
		{"title equality", PropertyTitle, OpIs, true},
		{"title contains", PropertyTitle, OpContains, true},
		{"title ordering illegal", PropertyTitle, OpIsBefore, false},
		{"path contains", PropertyPath, OpContains, true},
		{"path equality illegal", PropertyPath, OpIs, false},
		{"status equality", PropertyStatus, OpIs, true},
		{"status contains illegal", PropertyStatus, OpContains, false},
		{"tags contains", PropertyTags, OpContains, true},
		{"tags equality illegal", PropertyTags, OpIs, false},
		{"blockedBy contains", PropertyBlockedBy, OpContains, true},
		{"due equality", PropertyDue, OpIs, true},
		{"due ordering", PropertyDue, OpIsOnOrAfter, true},
		{"due checked illegal", PropertyDue, OpIsChecked, false},
		{"archived checked", PropertyArchived, OpIsChecked, true},
		{"archived equality illegal", PropertyArchived, OpIs, false},
		{"timeEstimate numeric", PropertyTimeEstimate, OpGreaterThan, true},
		{"timeEstimate emptiness illegal", PropertyTimeEstimate, OpIsEmpty, false},
		{"recurrence emptiness", PropertyRecurrence, OpIsEmpty, true},
		{"recurrence equality illegal", PropertyRecurrence, OpIs, false},
		{"status.isCompleted checked", PropertyStatusCompleted, OpIsNotChecked, true},
		{"dependencies.isBlocked checked", PropertyIsBlocked, OpIsChecked, true},
		{"user field gets everything", Property("user:difficulty"), OpGreaterThan, true},
		{"user field gets tags-style ops too", Property("user:labels"), OpContains, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.legal, tc.property.Allows(tc.operator))

			value := String("1")
			if !tc.operator.RequiresValue() {
				value = Absent()
			}
			err := Validate(NewCondition(tc.property, tc.operator, value), Strict)
			if tc.legal {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_PlaceholderPropertyHasNoLegalOperators(t *testing.T) {
	assert.Empty(t, PropertyNone.Operators())
	for _, op := range AllOperators {
		assert.False(t, PropertyNone.Allows(op))
	}
}

func TestValidate_ValueRequired(t *testing.T) {
	testCases := []struct {
		name  string
		value Value
		valid bool
	}{
		{"absent", Absent(), false},
		{"null", Null(), false},
		{"empty string", String(""), false},
		{"real string", String("open"), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(NewCondition(PropertyStatus, OpIs, tc.value), Strict)
			if tc.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var valErr *ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, "value", valErr.Field)
		})
	}
}

func TestValidate_ValueNotRequiredForEmptinessAndChecked(t *testing.T) {
	require.NoError(t, Validate(NewCondition(PropertyTitle, OpIsEmpty, Absent()), Strict))
	require.NoError(t, Validate(NewCondition(PropertyArchived, OpIsChecked, Absent()), Strict))
}

func TestValidate_GroupConjunction(t *testing.T) {
	g := NewGroup(Conjunction("xor"))

	err := Validate(g, Lenient)
	require.Error(t, err)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "conjunction", valErr.Field)
}

func TestValidate_GroupNilChildren(t *testing.T) {
	g := &Group{ID: NewNodeID(), Type: NodeTypeGroup, Conjunction: ConjunctionAnd}

	err := Validate(g, Strict)
	require.Error(t, err)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "children", valErr.Field)
}

func TestValidate_EmptyGroupIsValid(t *testing.T) {
	require.NoError(t, Validate(NewGroup(ConjunctionAnd), Strict))
	require.NoError(t, Validate(NewGroup(ConjunctionOr), Strict))
}

func TestValidate_ChildFailureCarriesContext(t *testing.T) {
	bad := NewCondition(PropertyNone, "", Absent())
	g := NewGroup(ConjunctionAnd,
		NewCondition(PropertyStatus, OpIs, String("open")),
		bad,
	)

	err := Validate(g, Strict)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, g.ID, valErr.NodeID)
	assert.Equal(t, "children", valErr.Field)
	assert.Contains(t, valErr.Msg, "child 1")

	// The child's own failure stays reachable through unwrapping.
	var childErr *ValidationError
	require.ErrorAs(t, valErr.Err, &childErr)
	assert.Equal(t, bad.ID, childErr.NodeID)
	assert.Equal(t, "property", childErr.Field)
}

func TestValidate_NestedGroups(t *testing.T) {
	tree := NewGroup(ConjunctionOr,
		NewGroup(ConjunctionAnd,
			NewCondition(PropertyStatus, OpIs, String("open")),
			NewCondition(PropertyTags, OpContains, String("work")),
		),
		NewCondition(PropertyDue, OpIsBefore, String("next week")),
	)

	require.NoError(t, Validate(tree, Strict))
	assert.True(t, IsComplete(tree))
}
