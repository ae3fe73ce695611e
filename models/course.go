package models

import "time"

// Course is one enrolled Moodle course. A course list is a set keyed by ID.
type Course struct {
	ID        int64  `json:"id" bson:"id"`
	FullName  string `json:"fullname" bson:"fullname"`
	StartDate int64  `json:"startdate" bson:"startdate"`
	EndDate   int64  `json:"enddate" bson:"enddate"`
}

// IsPast reports whether the course has already ended. Moodle uses a zero
// end date for open-ended courses.
func (c Course) IsPast() bool {
	return c.EndDate != 0 && time.Unix(c.EndDate, 0).Before(time.Now())
}

// CompareCourses returns the external courses whose ID is absent from stored.
func CompareCourses(external, stored []Course) []Course {
	known := make(map[int64]struct{}, len(stored))
	for _, c := range stored {
		known[c.ID] = struct{}{}
	}

	var fresh []Course
	for _, c := range external {
		if _, ok := known[c.ID]; !ok {
			fresh = append(fresh, c)
		}
	}
	return fresh
}

// RemovePastCourses filters out courses whose end date has passed.
func RemovePastCourses(courses []Course) []Course {
	active := make([]Course, 0, len(courses))
	for _, c := range courses {
		if !c.IsPast() {
			active = append(active, c)
		}
	}
	return active
}
