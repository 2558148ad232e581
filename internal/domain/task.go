// Package domain holds the task record contract consumed by the filter
// engine. Tasks are already-materialized value objects: the engine never
// fetches, parses, or persists them.
package domain

// Dependency is a link to another task that blocks this one.
// Only the UID participates in filtering; extra metadata is carried
// through untouched.
type Dependency struct {
	UID      string `json:"uid"`
	Relation string `json:"relation,omitempty"`
}

// Task is the minimal record shape the filter engine evaluates against.
//
// Optional scalar fields use pointers so that "not set" is distinguishable
// from a zero value. Date fields hold ISO-ish date or date-time strings
// ("2025-01-10", "2025-01-10T23:00"); the engine treats malformed dates as
// non-matching rather than failing the whole evaluation.
type Task struct {
	Title    string   `json:"title"`
	Path     string   `json:"path"`
	Status   string   `json:"status"`
	Priority string   `json:"priority"`
	Tags     []string `json:"tags"`
	Contexts []string `json:"contexts"`
	Projects []string `json:"projects"`

	BlockedBy []Dependency `json:"blockedBy"`
	Blocking  []string     `json:"blocking"`

	Due           *string `json:"due,omitempty"`
	Scheduled     *string `json:"scheduled,omitempty"`
	CompletedDate *string `json:"completedDate,omitempty"`
	DateCreated   *string `json:"dateCreated,omitempty"`
	DateModified  *string `json:"dateModified,omitempty"`

	Archived     bool     `json:"archived"`
	TimeEstimate *float64 `json:"timeEstimate,omitempty"`
	Recurrence   *string  `json:"recurrence,omitempty"`

	IsBlocked  *bool `json:"isBlocked,omitempty"`
	IsBlocking *bool `json:"isBlocking,omitempty"`

	// Custom carries user-defined fields addressed by "user:<fieldID>"
	// filter properties. Values follow the same closed union as built-in
	// properties (string, string list, number, boolean, null).
	Custom map[string]any `json:"custom,omitempty"`
}

// StatusClassifier maps a raw status string to a completed/incomplete
// classification. The engine does not know which statuses count as done;
// hosts inject a classifier when they want "status.isCompleted" filters
// to resolve. Without one the property evaluates as unset.
type StatusClassifier interface {
	IsCompleted(status string) bool
}

// StatusSet is a StatusClassifier backed by a fixed set of completed
// status names.
type StatusSet map[string]struct{}

// NewStatusSet builds a StatusSet from the given completed status names.
func NewStatusSet(completed ...string) StatusSet {
	s := make(StatusSet, len(completed))
	for _, name := range completed {
		s[name] = struct{}{}
	}
	return s
}

// IsCompleted reports whether status is in the completed set.
func (s StatusSet) IsCompleted(status string) bool {
	_, ok := s[status]
	return ok
}
