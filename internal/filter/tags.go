package filter

import "strings"

// Hierarchical tag matching. Tags form a "/"-separated taxonomy
// ("area/work/project"); a pattern matches a tag when it names the tag
// itself or one of its ancestor path segments. All matching is
// case-insensitive.

// MatchesHierarchicalTag reports whether tag matches pattern, with a
// substring fallback: exact match, ancestor-path match ("t/ef" matches
// "t/ef/project"), or pattern appearing anywhere inside tag ("proj"
// matches "project/alpha"). Use this variant for filter containment.
func MatchesHierarchicalTag(tag, pattern string) bool {
	t := strings.ToLower(tag)
	p := strings.ToLower(pattern)
	if t == p {
		return true
	}
	if strings.HasPrefix(t, p+"/") {
		return true
	}
	return strings.Contains(t, p)
}

// MatchesHierarchicalTagExact is MatchesHierarchicalTag without the
// substring fallback: only exact or strict ancestor-path matches count.
// Use it wherever a match decides task identity, so that "pkm-task"
// never matches a bare "task" pattern.
func MatchesHierarchicalTagExact(tag, pattern string) bool {
	t := strings.ToLower(tag)
	p := strings.ToLower(pattern)
	if t == p {
		return true
	}
	return strings.HasPrefix(t, p+"/")
}

// MatchesTagConditions decides whether a task's tags satisfy a list of
// condition patterns. Entries prefixed with "-" are exclusions; the rest
// are inclusions.
//
// The order is load-bearing: exclusions are checked first and a single
// exclusion hit fails the whole match regardless of any inclusion. Then,
// if inclusions exist, at least one must match at least one task tag.
// With no patterns at all, or exclusions only and none hit, the match
// succeeds.
func MatchesTagConditions(taskTags, conditionTags []string) bool {
	if len(conditionTags) == 0 {
		return true
	}

	var include, exclude []string
	for _, pattern := range conditionTags {
		if stripped, ok := strings.CutPrefix(pattern, "-"); ok {
			exclude = append(exclude, stripped)
			continue
		}
		include = append(include, pattern)
	}

	for _, pattern := range exclude {
		for _, tag := range taskTags {
			if MatchesHierarchicalTag(tag, pattern) {
				return false
			}
		}
	}

	if len(include) == 0 {
		return true
	}
	for _, pattern := range include {
		for _, tag := range taskTags {
			if MatchesHierarchicalTag(tag, pattern) {
				return true
			}
		}
	}
	return false
}
