package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCompareCourses(t *testing.T) {
	stored := []Course{
		{ID: 1, FullName: "Algebra"},
		{ID: 2, FullName: "Calculus"},
	}
	external := []Course{
		{ID: 1, FullName: "Algebra"},
		{ID: 2, FullName: "Calculus (renamed)"},
		{ID: 3, FullName: "Physics"},
	}

	fresh := CompareCourses(external, stored)

	// Only ids absent from stored count as new; renames do not.
	assert.Len(t, fresh, 1)
	assert.Equal(t, int64(3), fresh[0].ID)
}

func TestCompareCoursesEmptyStored(t *testing.T) {
	external := []Course{{ID: 1}, {ID: 2}}

	fresh := CompareCourses(external, nil)

	assert.Len(t, fresh, 2)
}

func TestCompareCoursesNoChanges(t *testing.T) {
	courses := []Course{{ID: 1}, {ID: 2}}

	assert.Empty(t, CompareCourses(courses, courses))
}

func TestRemovePastCourses(t *testing.T) {
	now := time.Now()
	courses := []Course{
		{ID: 1, FullName: "Finished", EndDate: now.Add(-24 * time.Hour).Unix()},
		{ID: 2, FullName: "Running", EndDate: now.Add(24 * time.Hour).Unix()},
		{ID: 3, FullName: "Open-ended", EndDate: 0},
	}

	active := RemovePastCourses(courses)

	assert.Len(t, active, 2)
	assert.Equal(t, int64(2), active[0].ID)
	assert.Equal(t, int64(3), active[1].ID)
}
