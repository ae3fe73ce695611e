package models

import (
	"fmt"
	"sort"
	"time"
)

// Deadline is one calendar action event (assignment due date) for a course.
type Deadline struct {
	ID         int64  `json:"id" bson:"id"`
	Title      string `json:"name" bson:"name"`
	CourseName string `json:"coursename,omitempty" bson:"coursename,omitempty"`
	DueAt      int64  `json:"timestart" bson:"timestart"`
}

// Events is the Moodle wire shape for core_calendar_get_action_events_by_course.
type Events struct {
	Events []Deadline `json:"events"`
}

// BodyMessage renders the deadline for a push notification body.
func (d Deadline) BodyMessage() string {
	due := time.Unix(d.DueAt, 0)
	return fmt.Sprintf("%s\nDue: %s", d.Title, due.Format("02.01.2006 15:04"))
}

// SortDeadlines returns a copy ordered by due time ascending, the canonical
// order for stored and external deadline lists.
func SortDeadlines(deadlines []Deadline) []Deadline {
	sorted := make([]Deadline, len(deadlines))
	copy(sorted, deadlines)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DueAt < sorted[j].DueAt
	})
	return sorted
}

type deadlineKey struct {
	courseName string
	title      string
	dueAt      int64
}

// CompareDeadlines returns the external deadlines absent from stored,
// matched by content (course name, title, due time) so reordered input
// yields the same diff.
func CompareDeadlines(external, stored []Deadline) []Deadline {
	known := make(map[deadlineKey]struct{}, len(stored))
	for _, d := range stored {
		known[deadlineKey{d.CourseName, d.Title, d.DueAt}] = struct{}{}
	}

	var fresh []Deadline
	for _, d := range external {
		if _, ok := known[deadlineKey{d.CourseName, d.Title, d.DueAt}]; !ok {
			fresh = append(fresh, d)
		}
	}
	return fresh
}
