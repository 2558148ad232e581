package filter

// Operator is a comparison operator applied by a filter condition.
type Operator string

const (
	OpIs                 Operator = "is"
	OpIsNot              Operator = "is-not"
	OpContains           Operator = "contains"
	OpDoesNotContain     Operator = "does-not-contain"
	OpIsBefore           Operator = "is-before"
	OpIsAfter            Operator = "is-after"
	OpIsOnOrBefore       Operator = "is-on-or-before"
	OpIsOnOrAfter        Operator = "is-on-or-after"
	OpIsEmpty            Operator = "is-empty"
	OpIsNotEmpty         Operator = "is-not-empty"
	OpIsChecked          Operator = "is-checked"
	OpIsNotChecked       Operator = "is-not-checked"
	OpGreaterThan        Operator = "is-greater-than"
	OpLessThan           Operator = "is-less-than"
	OpGreaterThanOrEqual Operator = "is-greater-than-or-equal"
	OpLessThanOrEqual    Operator = "is-less-than-or-equal"
)

// AllOperators lists every operator the engine understands.
var AllOperators = []Operator{
	OpIs, OpIsNot,
	OpContains, OpDoesNotContain,
	OpIsBefore, OpIsAfter, OpIsOnOrBefore, OpIsOnOrAfter,
	OpIsEmpty, OpIsNotEmpty,
	OpIsChecked, OpIsNotChecked,
	OpGreaterThan, OpLessThan, OpGreaterThanOrEqual, OpLessThanOrEqual,
}

// Valid reports whether op is a known operator.
func (op Operator) Valid() bool {
	switch op {
	case OpIs, OpIsNot,
		OpContains, OpDoesNotContain,
		OpIsBefore, OpIsAfter, OpIsOnOrBefore, OpIsOnOrAfter,
		OpIsEmpty, OpIsNotEmpty,
		OpIsChecked, OpIsNotChecked,
		OpGreaterThan, OpLessThan, OpGreaterThanOrEqual, OpLessThanOrEqual:
		return true
	}
	return false
}

// RequiresValue reports whether op needs a condition-side value.
// Emptiness and checked operators compare against the task value alone.
func (op Operator) RequiresValue() bool {
	switch op {
	case OpIsEmpty, OpIsNotEmpty, OpIsChecked, OpIsNotChecked:
		return false
	}
	return true
}
