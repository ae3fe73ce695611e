package models

import "sort"

// GradeItem is a single graded activity inside a course grade report.
type GradeItem struct {
	ID                  int64  `json:"id" bson:"id"`
	ItemName            string `json:"itemname" bson:"itemname"`
	PercentageFormatted string `json:"percentageformatted" bson:"percentageformatted"`
}

// Grade is the per-course grade report for one account, annotated post-fetch
// with the owning course's display name.
type Grade struct {
	CourseID   int64       `json:"courseid" bson:"courseid"`
	CourseName string      `json:"coursename,omitempty" bson:"coursename,omitempty"`
	GradeItems []GradeItem `json:"gradeitems" bson:"gradeitems"`
}

// UserGrades is the Moodle wire shape for gradereport_user_get_grade_items.
type UserGrades struct {
	UserGrades []Grade `json:"usergrades"`
}

// GradeChange pairs a current grade item with the stored value it replaces.
// Brand-new items carry a Previous with PercentageFormatted "-".
type GradeChange struct {
	CourseID int64
	Current  GradeItem
	Previous GradeItem
}

// CompareGrades reports every external grade item that is new or whose
// formatted percentage differs from the stored one. Identity is
// (courseID, itemName); list order is irrelevant.
func CompareGrades(external, stored []Grade) []GradeChange {
	prev := make(map[int64]map[string]GradeItem, len(stored))
	for _, g := range stored {
		items := make(map[string]GradeItem, len(g.GradeItems))
		for _, item := range g.GradeItems {
			items[item.ItemName] = item
		}
		prev[g.CourseID] = items
	}

	var changes []GradeChange
	for _, g := range external {
		storedItems := prev[g.CourseID]
		for _, item := range g.GradeItems {
			old, ok := storedItems[item.ItemName]
			if !ok {
				changes = append(changes, GradeChange{
					CourseID: g.CourseID,
					Current:  item,
					Previous: GradeItem{ItemName: item.ItemName, PercentageFormatted: "-"},
				})
				continue
			}
			if old.PercentageFormatted != item.PercentageFormatted {
				changes = append(changes, GradeChange{CourseID: g.CourseID, Current: item, Previous: old})
			}
		}
	}
	return changes
}

// GradeOverview is one aggregate total-grade row per course.
type GradeOverview struct {
	CourseID   int64  `json:"courseid" bson:"courseid"`
	CourseName string `json:"coursename,omitempty" bson:"coursename,omitempty"`
	Grade      string `json:"grade" bson:"grade"`
}

// GradesOverview is the Moodle wire shape for gradereport_overview_get_course_grades.
type GradesOverview struct {
	Grades []GradeOverview `json:"grades"`
}

// SortGradesOverview orders rows by course name ascending, the canonical
// order for stored and external overviews.
func SortGradesOverview(rows []GradeOverview) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CourseName < rows[j].CourseName
	})
}

// CompareGradesOverview returns the external rows absent from stored or
// carrying a different grade. Rows are matched by course ID, never by
// position.
func CompareGradesOverview(external, stored []GradeOverview) []GradeOverview {
	prev := make(map[int64]GradeOverview, len(stored))
	for _, row := range stored {
		prev[row.CourseID] = row
	}

	var fresh []GradeOverview
	for _, row := range external {
		old, ok := prev[row.CourseID]
		if !ok || old.Grade != row.Grade {
			fresh = append(fresh, row)
		}
	}
	return fresh
}
