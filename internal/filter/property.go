package filter

import "strings"

// Property identifies which task field a condition compares against.
//
// The built-in set is closed; identifiers of the form "user:<fieldID>"
// address user-defined custom fields and accept the full operator set
// (the concrete field type is enforced by whatever built the tree, not
// by this engine).
type Property string

const (
	// PropertyNone is the unselected placeholder a freshly created
	// condition starts with. It is only legal in lenient validation.
	PropertyNone Property = ""

	PropertyTitle    Property = "title"
	PropertyPath     Property = "path"
	PropertyStatus   Property = "status"
	PropertyPriority Property = "priority"

	PropertyTags     Property = "tags"
	PropertyContexts Property = "contexts"
	PropertyProjects Property = "projects"

	PropertyBlockedBy Property = "blockedBy"
	PropertyBlocking  Property = "blocking"

	PropertyDue           Property = "due"
	PropertyScheduled     Property = "scheduled"
	PropertyCompletedDate Property = "completedDate"
	PropertyDateCreated   Property = "dateCreated"
	PropertyDateModified  Property = "dateModified"

	PropertyArchived     Property = "archived"
	PropertyTimeEstimate Property = "timeEstimate"
	PropertyRecurrence   Property = "recurrence"

	PropertyStatusCompleted Property = "status.isCompleted"
	PropertyIsBlocked       Property = "dependencies.isBlocked"
	PropertyIsBlocking      Property = "dependencies.isBlocking"
)

// userFieldPrefix marks dynamic user-defined properties.
const userFieldPrefix = "user:"

// IsUserField reports whether p addresses a user-defined custom field.
func (p Property) IsUserField() bool {
	return strings.HasPrefix(string(p), userFieldPrefix)
}

// UserFieldID returns the field identifier of a "user:<fieldID>" property,
// or "" when p is not a user field.
func (p Property) UserFieldID() string {
	if !p.IsUserField() {
		return ""
	}
	return strings.TrimPrefix(string(p), userFieldPrefix)
}

// shape groups properties by the kind of value they carry, which in turn
// decides the legal operator set.
type shape int

const (
	shapeUnknown shape = iota
	shapeNone          // unselected placeholder, no legal operators
	shapeText          // free text
	shapePath          // file path, containment only
	shapeSelect        // single-select string (status, priority)
	shapeList          // arrays of strings, tag-like
	shapeDate          // date or date-time string
	shapeBool          // strict boolean
	shapeNumeric       // float-coercible
	shapeRecurrence    // opaque recurrence rule, emptiness only
	shapeDynamic       // user-defined, permissive
)

func (p Property) shape() shape {
	switch p {
	case PropertyNone:
		return shapeNone
	case PropertyTitle:
		return shapeText
	case PropertyPath:
		return shapePath
	case PropertyStatus, PropertyPriority:
		return shapeSelect
	case PropertyTags, PropertyContexts, PropertyProjects, PropertyBlockedBy, PropertyBlocking:
		return shapeList
	case PropertyDue, PropertyScheduled, PropertyCompletedDate, PropertyDateCreated, PropertyDateModified:
		return shapeDate
	case PropertyArchived, PropertyStatusCompleted, PropertyIsBlocked, PropertyIsBlocking:
		return shapeBool
	case PropertyTimeEstimate:
		return shapeNumeric
	case PropertyRecurrence:
		return shapeRecurrence
	}
	if p.IsUserField() {
		return shapeDynamic
	}
	return shapeUnknown
}

// Known reports whether p is a built-in property or a user field.
// The empty placeholder is known but has no legal operators.
func (p Property) Known() bool {
	return p.shape() != shapeUnknown
}

// IsDate reports whether p is a date-shaped property, which switches
// equality to calendar-date comparison.
func (p Property) IsDate() bool {
	return p.shape() == shapeDate
}

var operatorsByShape = map[shape][]Operator{
	shapeNone: {},
	shapeText: {
		OpIs, OpIsNot, OpContains, OpDoesNotContain, OpIsEmpty, OpIsNotEmpty,
	},
	shapePath: {
		OpContains, OpDoesNotContain, OpIsEmpty, OpIsNotEmpty,
	},
	shapeSelect: {
		OpIs, OpIsNot, OpIsEmpty, OpIsNotEmpty,
	},
	shapeList: {
		OpContains, OpDoesNotContain, OpIsEmpty, OpIsNotEmpty,
	},
	shapeDate: {
		OpIs, OpIsNot, OpIsBefore, OpIsAfter, OpIsOnOrBefore, OpIsOnOrAfter,
		OpIsEmpty, OpIsNotEmpty,
	},
	shapeBool: {
		OpIsChecked, OpIsNotChecked,
	},
	shapeNumeric: {
		OpIs, OpIsNot, OpGreaterThan, OpLessThan, OpGreaterThanOrEqual, OpLessThanOrEqual,
	},
	shapeRecurrence: {
		OpIsEmpty, OpIsNotEmpty,
	},
	shapeDynamic: AllOperators,
}

// Operators returns the operators that are legal for p. The returned
// slice is shared; callers must not mutate it.
func (p Property) Operators() []Operator {
	return operatorsByShape[p.shape()]
}

// Allows reports whether op is legal for p.
func (p Property) Allows(op Operator) bool {
	for _, legal := range p.Operators() {
		if legal == op {
			return true
		}
	}
	return false
}
