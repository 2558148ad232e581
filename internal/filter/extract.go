package filter

import (
	"fmt"

	"github.com/renatomen/tasknotes-sub005/internal/domain"
	"github.com/renatomen/tasknotes-sub005/internal/ptr"
)

// TaskValue extracts the typed value of property from a task record.
//
// Array-shaped properties extract as an empty list rather than absent
// when the task carries no entries. "blockedBy" is a projection: the
// task stores dependency objects, the filter compares their UIDs.
// The dependency flags coerce to true only on an exact stored true.
//
// "status.isCompleted" needs a host-provided classification of status
// strings; status may be nil, in which case the property extracts as
// absent and checked-style conditions on it evaluate false.
func TaskValue(task *domain.Task, property Property, status domain.StatusClassifier) (Value, error) {
	switch property {
	case PropertyTitle:
		return String(task.Title), nil
	case PropertyPath:
		return String(task.Path), nil
	case PropertyStatus:
		return String(task.Status), nil
	case PropertyPriority:
		return String(task.Priority), nil

	case PropertyTags:
		return Strings(task.Tags), nil
	case PropertyContexts:
		return Strings(task.Contexts), nil
	case PropertyProjects:
		return Strings(task.Projects), nil
	case PropertyBlocking:
		return Strings(task.Blocking), nil

	case PropertyBlockedBy:
		uids := make([]string, len(task.BlockedBy))
		for i, dep := range task.BlockedBy {
			uids[i] = dep.UID
		}
		return Strings(uids), nil

	case PropertyDue:
		return optionalString(task.Due), nil
	case PropertyScheduled:
		return optionalString(task.Scheduled), nil
	case PropertyCompletedDate:
		return optionalString(task.CompletedDate), nil
	case PropertyDateCreated:
		return optionalString(task.DateCreated), nil
	case PropertyDateModified:
		return optionalString(task.DateModified), nil

	case PropertyArchived:
		return Bool(task.Archived), nil
	case PropertyTimeEstimate:
		if task.TimeEstimate == nil {
			return Absent(), nil
		}
		return Number(*task.TimeEstimate), nil
	case PropertyRecurrence:
		return optionalString(task.Recurrence), nil

	case PropertyStatusCompleted:
		if status == nil {
			return Absent(), nil
		}
		return Bool(status.IsCompleted(task.Status)), nil
	case PropertyIsBlocked:
		return Bool(ptr.Deref(task.IsBlocked, false)), nil
	case PropertyIsBlocking:
		return Bool(ptr.Deref(task.IsBlocking, false)), nil
	}

	if property.IsUserField() {
		raw, ok := task.Custom[property.UserFieldID()]
		if !ok {
			return Absent(), nil
		}
		v, err := FromAny(raw)
		if err != nil {
			return Value{}, &EvaluationError{
				Property: property,
				Err:      fmt.Errorf("custom field %q: %w", property.UserFieldID(), err),
			}
		}
		return v, nil
	}

	return Value{}, &EvaluationError{Property: property, Err: ErrUnknownProperty}
}

func optionalString(s *string) Value {
	if s == nil {
		return Absent()
	}
	return String(*s)
}
