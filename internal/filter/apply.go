package filter

import "strings"

// DateResolver is the external date collaborator the applier delegates
// to. Implementations must degrade gracefully: malformed input never
// fails a comparison, it just does not match.
type DateResolver interface {
	// ResolveNatural resolves a natural-language expression ("today",
	// "next monday") to a date string, passing unresolvable input
	// through as-is.
	ResolveNatural(expr string) string

	// IsNatural reports whether s is a natural-language date expression
	// rather than a literal date.
	IsNatural(s string) bool

	// DatePart returns the calendar-date component ("2006-01-02") of a
	// date or date-time string, or "" when it cannot be parsed.
	DatePart(s string) string

	// IsBeforeTimeAware reports whether a is strictly before b,
	// honoring embedded time-of-day when present. False on any parse
	// failure.
	IsBeforeTimeAware(a, b string) bool

	// IsSameDateSafe reports whether a and b fall on the same calendar
	// date, ignoring time-of-day. False on any parse failure.
	IsSameDateSafe(a, b string) bool
}

// Apply evaluates one operator against a task-side and a condition-side
// value. The originating property steers two special cases: date-shaped
// properties compare equality by calendar date, and the tags property
// uses hierarchical containment instead of substrings.
//
// Coercion failures (unparseable dates, non-numeric operands) resolve to
// false so one malformed record degrades the filter instead of aborting
// it; only an unrecognized operator is an error.
func Apply(taskValue Value, op Operator, conditionValue Value, property Property, dates DateResolver) (bool, error) {
	switch op {
	case OpIs:
		return equals(taskValue, conditionValue, property, dates), nil
	case OpIsNot:
		return !equals(taskValue, conditionValue, property, dates), nil

	case OpContains:
		return containsValue(taskValue, conditionValue, property), nil
	case OpDoesNotContain:
		return !containsValue(taskValue, conditionValue, property), nil

	case OpIsBefore, OpIsAfter, OpIsOnOrBefore, OpIsOnOrAfter:
		return compareDates(taskValue, op, conditionValue, dates), nil

	case OpIsEmpty:
		return taskValue.IsEmpty(), nil
	case OpIsNotEmpty:
		return !taskValue.IsEmpty(), nil

	case OpIsChecked:
		return isChecked(taskValue), nil
	case OpIsNotChecked:
		return !isChecked(taskValue), nil

	case OpGreaterThan, OpLessThan, OpGreaterThanOrEqual, OpLessThanOrEqual:
		return compareNumbers(taskValue, op, conditionValue), nil
	}

	return false, &EvaluationError{Operator: op, Err: ErrUnknownOperator}
}

// equals handles the four shape combinations: array/array matches on any
// shared element, array/scalar and scalar/array on membership, and
// scalar/scalar on strict equality. For date properties the comparison
// switches to calendar-date equality so "is" ignores time-of-day and
// accepts natural-language condition values.
func equals(taskValue, conditionValue Value, property Property, dates DateResolver) bool {
	if property.IsDate() && dates != nil {
		taskIsDateString := taskValue.Kind == KindString && strings.TrimSpace(taskValue.Str) != ""
		condIsNatural := conditionValue.Kind == KindString && dates.IsNatural(conditionValue.Str)
		if taskIsDateString || condIsNatural {
			return datePartEquals(taskValue, conditionValue, dates)
		}
	}

	switch {
	case taskValue.Kind == KindStrings && conditionValue.Kind == KindStrings:
		for _, t := range taskValue.Strs {
			for _, c := range conditionValue.Strs {
				if t == c {
					return true
				}
			}
		}
		return false

	case taskValue.Kind == KindStrings:
		if conditionValue.Kind != KindString {
			return false
		}
		for _, t := range taskValue.Strs {
			if t == conditionValue.Str {
				return true
			}
		}
		return false

	case conditionValue.Kind == KindStrings:
		if taskValue.Kind != KindString {
			return false
		}
		for _, c := range conditionValue.Strs {
			if c == taskValue.Str {
				return true
			}
		}
		return false
	}

	return scalarEquals(taskValue, conditionValue)
}

func scalarEquals(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindString:
		return a.Str == b.Str
	case KindNumber:
		return a.Num == b.Num
	case KindBool:
		return a.Bool == b.Bool
	case KindNull, KindAbsent:
		return true
	}
	return false
}

func datePartEquals(taskValue, conditionValue Value, dates DateResolver) bool {
	if taskValue.Kind != KindString || conditionValue.Kind != KindString {
		return false
	}
	taskDate := dates.DatePart(taskValue.Str)
	condDate := dates.DatePart(dates.ResolveNatural(conditionValue.Str))
	if taskDate == "" || condDate == "" {
		return false
	}
	return taskDate == condDate
}

// containsValue implements containment. The tags property gets
// hierarchical matching with inclusion/exclusion semantics; every other
// property gets case-insensitive substring matching, element-wise over
// whichever side is an array.
func containsValue(taskValue, conditionValue Value, property Property) bool {
	if property == PropertyTags {
		return MatchesTagConditions(taskValue.asStrings(), conditionValue.asStrings())
	}

	taskStrings := taskValue.asStrings()
	conditionStrings := conditionValue.asStrings()
	for _, t := range taskStrings {
		lowered := strings.ToLower(t)
		for _, c := range conditionStrings {
			if strings.Contains(lowered, strings.ToLower(c)) {
				return true
			}
		}
	}
	return false
}

// compareDates implements the four ordering operators. The condition
// side goes through natural-language resolution first; the strict forms
// are time-of-day aware, the on-or forms additionally accept the same
// calendar day. Any parse failure yields false.
func compareDates(taskValue Value, op Operator, conditionValue Value, dates DateResolver) bool {
	if dates == nil {
		return false
	}
	if taskValue.Kind != KindString || conditionValue.Kind != KindString {
		return false
	}
	taskDate := strings.TrimSpace(taskValue.Str)
	condDate := strings.TrimSpace(conditionValue.Str)
	if taskDate == "" || condDate == "" {
		return false
	}
	resolved := dates.ResolveNatural(condDate)

	switch op {
	case OpIsBefore:
		return dates.IsBeforeTimeAware(taskDate, resolved)
	case OpIsAfter:
		return dates.IsBeforeTimeAware(resolved, taskDate)
	case OpIsOnOrBefore:
		return dates.IsSameDateSafe(taskDate, resolved) || dates.IsBeforeTimeAware(taskDate, resolved)
	case OpIsOnOrAfter:
		return dates.IsSameDateSafe(taskDate, resolved) || dates.IsBeforeTimeAware(resolved, taskDate)
	}
	return false
}

// isChecked is a strict boolean identity check: only a stored true
// counts, truthy non-booleans do not.
func isChecked(v Value) bool {
	return v.Kind == KindBool && v.Bool
}

func compareNumbers(taskValue Value, op Operator, conditionValue Value) bool {
	taskNum, ok := taskValue.asNumber()
	if !ok {
		return false
	}
	condNum, ok := conditionValue.asNumber()
	if !ok {
		return false
	}

	switch op {
	case OpGreaterThan:
		return taskNum > condNum
	case OpLessThan:
		return taskNum < condNum
	case OpGreaterThanOrEqual:
		return taskNum >= condNum
	case OpLessThanOrEqual:
		return taskNum <= condNum
	}
	return false
}
