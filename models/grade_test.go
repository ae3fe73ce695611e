package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareGradesChangedPercentage(t *testing.T) {
	stored := []Grade{{
		CourseID: 1,
		GradeItems: []GradeItem{
			{ItemName: "Midterm", PercentageFormatted: "50%"},
			{ItemName: "Final", PercentageFormatted: "80%"},
		},
	}}
	external := []Grade{{
		CourseID: 1,
		GradeItems: []GradeItem{
			{ItemName: "Midterm", PercentageFormatted: "75%"},
			{ItemName: "Final", PercentageFormatted: "80%"},
		},
	}}

	changes := CompareGrades(external, stored)

	require.Len(t, changes, 1)
	assert.Equal(t, "Midterm", changes[0].Current.ItemName)
	assert.Equal(t, "50%", changes[0].Previous.PercentageFormatted)
	assert.Equal(t, "75%", changes[0].Current.PercentageFormatted)
}

func TestCompareGradesNewItem(t *testing.T) {
	stored := []Grade{{
		CourseID:   1,
		GradeItems: []GradeItem{{ItemName: "Midterm", PercentageFormatted: "50%"}},
	}}
	external := []Grade{{
		CourseID: 1,
		GradeItems: []GradeItem{
			{ItemName: "Midterm", PercentageFormatted: "50%"},
			{ItemName: "Quiz 1", PercentageFormatted: "90%"},
		},
	}}

	changes := CompareGrades(external, stored)

	require.Len(t, changes, 1)
	assert.Equal(t, "Quiz 1", changes[0].Current.ItemName)
	// New items report a "-" baseline.
	assert.Equal(t, "-", changes[0].Previous.PercentageFormatted)
}

func TestCompareGradesMatchesByCourseAndItem(t *testing.T) {
	// The same item name in a different course must not match.
	stored := []Grade{{
		CourseID:   1,
		GradeItems: []GradeItem{{ItemName: "Midterm", PercentageFormatted: "50%"}},
	}}
	external := []Grade{{
		CourseID:   2,
		GradeItems: []GradeItem{{ItemName: "Midterm", PercentageFormatted: "50%"}},
	}}

	changes := CompareGrades(external, stored)

	require.Len(t, changes, 1)
	assert.Equal(t, int64(2), changes[0].CourseID)
	assert.Equal(t, "-", changes[0].Previous.PercentageFormatted)
}

func TestCompareGradesIdentical(t *testing.T) {
	grades := []Grade{{
		CourseID:   1,
		GradeItems: []GradeItem{{ItemName: "Midterm", PercentageFormatted: "50%"}},
	}}

	assert.Empty(t, CompareGrades(grades, grades))
}

func TestCompareGradesEmptyExternalCourse(t *testing.T) {
	external := []Grade{{CourseID: 1, GradeItems: nil}}

	assert.Empty(t, CompareGrades(external, nil))
}

func TestSortGradesOverview(t *testing.T) {
	rows := []GradeOverview{
		{CourseID: 2, CourseName: "Calculus", Grade: "80.00"},
		{CourseID: 1, CourseName: "Algebra", Grade: "90.00"},
	}

	SortGradesOverview(rows)

	assert.Equal(t, "Algebra", rows[0].CourseName)
	assert.Equal(t, "Calculus", rows[1].CourseName)
}

func TestCompareGradesOverview(t *testing.T) {
	stored := []GradeOverview{
		{CourseID: 1, CourseName: "Algebra", Grade: "90.00"},
		{CourseID: 2, CourseName: "Calculus", Grade: "80.00"},
	}
	external := []GradeOverview{
		{CourseID: 1, CourseName: "Algebra", Grade: "95.00"},
		{CourseID: 2, CourseName: "Calculus", Grade: "80.00"},
		{CourseID: 3, CourseName: "Physics", Grade: "70.00"},
	}

	fresh := CompareGradesOverview(external, stored)

	require.Len(t, fresh, 2)
	assert.Equal(t, int64(1), fresh[0].CourseID)
	assert.Equal(t, int64(3), fresh[1].CourseID)
}

func TestCompareGradesOverviewOrderIndependent(t *testing.T) {
	stored := []GradeOverview{
		{CourseID: 1, CourseName: "Algebra", Grade: "90.00"},
		{CourseID: 2, CourseName: "Calculus", Grade: "80.00"},
	}
	external := []GradeOverview{
		{CourseID: 2, CourseName: "Calculus", Grade: "80.00"},
		{CourseID: 1, CourseName: "Algebra", Grade: "90.00"},
	}

	// Matching is by course id, so shuffled rows must not produce a diff.
	assert.Empty(t, CompareGradesOverview(external, stored))
}
