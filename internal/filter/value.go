package filter

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ValueKind discriminates the closed union of task property values.
type ValueKind int

const (
	// KindAbsent means the task does not carry the property at all.
	KindAbsent ValueKind = iota
	// KindNull is an explicit null, distinct from absent.
	KindNull
	KindString
	KindStrings
	KindNumber
	KindBool
)

// Value is a task property value: string, list of strings, number,
// boolean, null, or absent. Every extractor returns one and every
// operator routine pattern-matches on Kind rather than duck-typing.
//
// The zero Value is absent.
type Value struct {
	Kind ValueKind
	Str  string
	Strs []string
	Num  float64
	Bool bool
}

// Absent returns the absent value.
func Absent() Value { return Value{Kind: KindAbsent} }

// Null returns the explicit null value.
func Null() Value { return Value{Kind: KindNull} }

// String wraps a string value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Strings wraps a list-of-strings value. A nil slice is normalized to an
// empty one so array-shaped properties never extract as absent.
func Strings(ss []string) Value {
	if ss == nil {
		ss = []string{}
	}
	return Value{Kind: KindStrings, Strs: ss}
}

// Number wraps a numeric value.
func Number(f float64) Value { return Value{Kind: KindNumber, Num: f} }

// Bool wraps a boolean value.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// FromAny converts a decoded JSON value (as produced by encoding/json
// into any) to a Value. Used for user-defined custom fields.
func FromAny(v any) (Value, error) {
	switch v := v.(type) {
	case nil:
		return Null(), nil
	case string:
		return String(v), nil
	case float64:
		return Number(v), nil
	case bool:
		return Bool(v), nil
	case []string:
		return Strings(v), nil
	case []any:
		ss := make([]string, len(v))
		for i, elem := range v {
			s, ok := elem.(string)
			if !ok {
				return Value{}, fmt.Errorf("value array element %d: expected string, got %T", i, elem)
			}
			ss[i] = s
		}
		return Strings(ss), nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", v)
	}
}

// IsEmpty reports whether v counts as empty for the is-empty operator.
// Null and absent are empty; a string is empty when its trimmed form is
// empty; a list is empty when it has no elements or every element trims
// to nothing or to a bare pair of quotes (placeholder entries from
// malformed front-matter). Numbers and booleans are never empty.
func (v Value) IsEmpty() bool {
	switch v.Kind {
	case KindAbsent, KindNull:
		return true
	case KindString:
		return strings.TrimSpace(v.Str) == ""
	case KindStrings:
		for _, s := range v.Strs {
			trimmed := strings.TrimSpace(s)
			if trimmed != "" && trimmed != `""` && trimmed != "''" {
				return false
			}
		}
		return true
	}
	return false
}

// asStrings flattens v to its string elements for element-wise matching.
// Scalars other than strings are stringified; null and absent flatten to
// nothing.
func (v Value) asStrings() []string {
	switch v.Kind {
	case KindString:
		return []string{v.Str}
	case KindStrings:
		return v.Strs
	case KindNumber:
		return []string{strconv.FormatFloat(v.Num, 'f', -1, 64)}
	case KindBool:
		return []string{strconv.FormatBool(v.Bool)}
	}
	return nil
}

// asNumber coerces v to a float. Strings are parsed; anything that does
// not parse reports ok=false rather than failing the evaluation.
func (v Value) asNumber() (float64, bool) {
	switch v.Kind {
	case KindNumber:
		return v.Num, true
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// MarshalJSON encodes the value as the plain JSON scalar, array, or null
// it represents. Absent also encodes as null: JSON has no way to express
// an undefined value inside a present field.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindAbsent, KindNull:
		return []byte("null"), nil
	case KindString:
		return json.Marshal(v.Str)
	case KindStrings:
		return json.Marshal(v.Strs)
	case KindNumber:
		return json.Marshal(v.Num)
	case KindBool:
		return json.Marshal(v.Bool)
	}
	return nil, fmt.Errorf("unknown value kind %d", v.Kind)
}

// UnmarshalJSON decodes a plain JSON scalar, string array, or null.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	decoded, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}
