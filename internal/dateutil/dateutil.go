// Package dateutil is the default date collaborator for the filter
// engine: natural-language resolution, calendar-date extraction, and
// timezone/time-of-day aware comparison over the date-string formats
// task records carry.
//
// Every function degrades on malformed input instead of failing: the
// engine turns unparseable dates into non-matches, never into aborted
// evaluations.
package dateutil

import (
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// DateLayout is the calendar-date format used across the engine.
const DateLayout = "2006-01-02"

// layouts lists the accepted date-string formats, most specific first.
var layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	DateLayout,
}

// Resolver implements the filter engine's date collaborator.
//
// Location anchors date-only values and natural-language resolution;
// Now is injectable so "today" is deterministic under test. The zero
// value is not usable, construct with NewResolver.
type Resolver struct {
	loc    *time.Location
	now    func() time.Time
	parser *when.Parser
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithNow overrides the clock used to anchor natural-language
// expressions.
func WithNow(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

// NewResolver builds a Resolver anchored to loc (nil means time.Local).
func NewResolver(loc *time.Location, opts ...Option) *Resolver {
	if loc == nil {
		loc = time.Local
	}
	parser := when.New(nil)
	parser.Add(en.All...)
	parser.Add(common.All...)

	r := &Resolver{
		loc:    loc,
		now:    time.Now,
		parser: parser,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// parse attempts the known literal layouts in the resolver's location.
func (r *Resolver) parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, r.loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// weekOffsets covers whole-week phrases the underlying rule set does
// not parse on its own.
var weekOffsets = map[string]int{
	"next week": 7,
	"last week": -7,
}

// ResolveNatural resolves a natural-language date expression to a
// calendar date string. Literal dates and unresolvable input pass
// through as-is.
func (r *Resolver) ResolveNatural(expr string) string {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return expr
	}
	if _, ok := r.parse(trimmed); ok {
		return expr
	}
	if days, ok := weekOffsets[strings.ToLower(trimmed)]; ok {
		return r.now().In(r.loc).AddDate(0, 0, days).Format(DateLayout)
	}

	result, err := r.parser.Parse(trimmed, r.now().In(r.loc))
	if err != nil || result == nil {
		return expr
	}
	return result.Time.In(r.loc).Format(DateLayout)
}

// IsNatural reports whether s reads as a natural-language date
// expression: not a literal date, but recognized by the resolver.
func (r *Resolver) IsNatural(s string) bool {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return false
	}
	if _, ok := r.parse(trimmed); ok {
		return false
	}
	if _, ok := weekOffsets[strings.ToLower(trimmed)]; ok {
		return true
	}
	result, err := r.parser.Parse(trimmed, r.now().In(r.loc))
	return err == nil && result != nil
}

// DatePart returns the calendar-date component of a date or date-time
// string, or "" when it cannot be parsed.
func (r *Resolver) DatePart(s string) string {
	t, ok := r.parse(s)
	if !ok {
		return ""
	}
	return t.Format(DateLayout)
}

// IsBeforeTimeAware reports whether a is strictly before b. Date-only
// values anchor to midnight, so a date-only value is before any
// same-day value with a later time-of-day. False on any parse failure.
func (r *Resolver) IsBeforeTimeAware(a, b string) bool {
	ta, ok := r.parse(a)
	if !ok {
		return false
	}
	tb, ok := r.parse(b)
	if !ok {
		return false
	}
	return ta.Before(tb)
}

// IsSameDateSafe reports whether a and b fall on the same calendar date,
// ignoring time-of-day. False on any parse failure.
func (r *Resolver) IsSameDateSafe(a, b string) bool {
	ta, ok := r.parse(a)
	if !ok {
		return false
	}
	tb, ok := r.parse(b)
	if !ok {
		return false
	}
	ya, ma, da := ta.Date()
	yb, mb, db := tb.Date()
	return ya == yb && ma == mb && da == db
}
