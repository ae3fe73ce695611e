package data

import (
	"context"
	"errors"
	"testing"

	"github.com/Azarenkov/aitu-web-app/database/repository"
	"github.com/Azarenkov/aitu-web-app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	validateErr error
	user        models.User
	courses     []models.Course
	grades      map[int64]models.UserGrades
	overview    models.GradesOverview
	deadlines   map[int64]models.Events
}

func (p *stubProvider) ValidateToken(_ context.Context, _ string) error {
	return p.validateErr
}

func (p *stubProvider) GetUser(_ context.Context, _ string) (*models.User, error) {
	u := p.user
	return &u, nil
}

func (p *stubProvider) GetCourses(_ context.Context, _ string, _ int64) ([]models.Course, error) {
	return append([]models.Course(nil), p.courses...), nil
}

func (p *stubProvider) GetGradesByCourse(_ context.Context, _ string, _, courseID int64) (*models.UserGrades, error) {
	g := p.grades[courseID]
	return &models.UserGrades{UserGrades: append([]models.Grade(nil), g.UserGrades...)}, nil
}

func (p *stubProvider) GetGradesOverview(_ context.Context, _ string) (*models.GradesOverview, error) {
	return &models.GradesOverview{Grades: append([]models.GradeOverview(nil), p.overview.Grades...)}, nil
}

func (p *stubProvider) GetDeadlinesByCourse(_ context.Context, _ string, courseID int64) (*models.Events, error) {
	e := p.deadlines[courseID]
	return &models.Events{Events: append([]models.Deadline(nil), e.Events...)}, nil
}

type stubTokenRepo struct {
	saved  []models.Token
	dupErr bool
}

func (r *stubTokenRepo) Save(_ context.Context, token *models.Token) error {
	if r.dupErr {
		return repository.ErrAlreadyExists
	}
	r.saved = append(r.saved, *token)
	return nil
}

func (r *stubTokenRepo) FindAll(_ context.Context, _, _ int64) ([]models.Token, error) {
	return r.saved, nil
}

func (r *stubTokenRepo) Delete(_ context.Context, _ string) error { return nil }

type stubUserRepo struct{ stored *models.User }

func (r *stubUserRepo) Save(_ context.Context, _ string, user *models.User) error {
	r.stored = user
	return nil
}

func (r *stubUserRepo) FindByToken(_ context.Context, _ string) (*models.User, error) {
	if r.stored == nil {
		return nil, repository.ErrDataIsEmpty
	}
	return r.stored, nil
}

type stubCourseRepo struct{ stored []models.Course }

func (r *stubCourseRepo) Save(_ context.Context, _ string, courses []models.Course) error {
	r.stored = courses
	return nil
}

func (r *stubCourseRepo) FindByToken(_ context.Context, _ string) ([]models.Course, error) {
	if r.stored == nil {
		return nil, repository.ErrDataIsEmpty
	}
	return r.stored, nil
}

type stubGradeRepo struct {
	grades   []models.Grade
	overview []models.GradeOverview
}

func (r *stubGradeRepo) SaveGrades(_ context.Context, _ string, grades []models.Grade) error {
	r.grades = grades
	return nil
}

func (r *stubGradeRepo) FindGradesByToken(_ context.Context, _ string) ([]models.Grade, error) {
	if r.grades == nil {
		return nil, repository.ErrDataIsEmpty
	}
	return r.grades, nil
}

func (r *stubGradeRepo) SaveGradesOverview(_ context.Context, _ string, overview []models.GradeOverview) error {
	r.overview = overview
	return nil
}

func (r *stubGradeRepo) FindGradesOverviewByToken(_ context.Context, _ string) ([]models.GradeOverview, error) {
	if r.overview == nil {
		return nil, repository.ErrDataIsEmpty
	}
	return r.overview, nil
}

type stubDeadlineRepo struct{ stored []models.Deadline }

func (r *stubDeadlineRepo) Save(_ context.Context, _ string, deadlines []models.Deadline) error {
	r.stored = deadlines
	return nil
}

func (r *stubDeadlineRepo) FindByToken(_ context.Context, _ string) ([]models.Deadline, error) {
	if r.stored == nil {
		return nil, repository.ErrDataIsEmpty
	}
	return r.stored, nil
}

func newService(provider *stubProvider) (*DefaultDataService, *stubTokenRepo, *stubGradeRepo, *stubDeadlineRepo) {
	tokens := &stubTokenRepo{}
	grades := &stubGradeRepo{}
	deadlines := &stubDeadlineRepo{}
	svc := &DefaultDataService{
		Provider:  provider,
		Tokens:    tokens,
		Users:     &stubUserRepo{},
		Courses:   &stubCourseRepo{},
		Grades:    grades,
		Deadlines: deadlines,
	}
	return svc, tokens, grades, deadlines
}

func TestRegisterUserInvalidToken(t *testing.T) {
	svc, tokens, _, _ := newService(&stubProvider{validateErr: errors.New("invalidtoken")})

	err := svc.RegisterUser(context.Background(), &models.Token{Token: "bad"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Empty(t, tokens.saved, "a rejected token must not be persisted")
}

func TestRegisterUserDuplicate(t *testing.T) {
	svc, tokens, _, _ := newService(&stubProvider{})
	tokens.dupErr = true

	err := svc.RegisterUser(context.Background(), &models.Token{Token: "T1"})

	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRegisterUserBootstrapsSnapshots(t *testing.T) {
	provider := &stubProvider{
		user:    models.User{UserID: 7, Username: "jdoe", FullName: "John Doe"},
		courses: []models.Course{{ID: 1, FullName: "Algebra"}},
		grades: map[int64]models.UserGrades{
			1: {UserGrades: []models.Grade{{
				CourseID:   1,
				GradeItems: []models.GradeItem{{ItemName: "Midterm", PercentageFormatted: "50%"}},
			}}},
		},
		overview: models.GradesOverview{Grades: []models.GradeOverview{{CourseID: 1, Grade: "90.00"}}},
		deadlines: map[int64]models.Events{
			1: {Events: []models.Deadline{{Title: "Homework 1", DueAt: 200}}},
		},
	}
	svc, tokens, grades, deadlines := newService(provider)

	err := svc.RegisterUser(context.Background(), &models.Token{Token: "T1", DeviceToken: "D1"})

	require.NoError(t, err)
	require.Len(t, tokens.saved, 1)

	user, err := svc.GetUser(context.Background(), "T1")
	require.NoError(t, err)
	assert.Equal(t, "jdoe", user.Username)

	courses, err := svc.GetCourses(context.Background(), "T1")
	require.NoError(t, err)
	require.Len(t, courses, 1)

	// Grades and deadlines are stored with the owning course name attached.
	require.Len(t, grades.grades, 1)
	assert.Equal(t, "Algebra", grades.grades[0].CourseName)
	require.Len(t, grades.overview, 1)
	assert.Equal(t, "Algebra", grades.overview[0].CourseName)
	require.Len(t, deadlines.stored, 1)
	assert.Equal(t, "Algebra", deadlines.stored[0].CourseName)
}

func TestGetUserEmpty(t *testing.T) {
	svc, _, _, _ := newService(&stubProvider{})

	_, err := svc.GetUser(context.Background(), "T1")

	assert.ErrorIs(t, err, ErrDataIsEmpty)
}

func TestUpdateDeadlinesSortsByDueTime(t *testing.T) {
	provider := &stubProvider{
		courses: []models.Course{
			{ID: 1, FullName: "Algebra"},
			{ID: 2, FullName: "Calculus"},
		},
		deadlines: map[int64]models.Events{
			1: {Events: []models.Deadline{{Title: "Later", DueAt: 300}}},
			2: {Events: []models.Deadline{{Title: "Sooner", DueAt: 100}}},
		},
	}
	svc, _, _, deadlines := newService(provider)

	err := svc.UpdateDeadlines(context.Background(), "T1", provider.courses)

	require.NoError(t, err)
	require.Len(t, deadlines.stored, 2)
	assert.Equal(t, "Sooner", deadlines.stored[0].Title)
	assert.Equal(t, "Calculus", deadlines.stored[0].CourseName)
	assert.Equal(t, "Later", deadlines.stored[1].Title)
}

func TestFetchGradesOverviewAnnotatesWithoutPersisting(t *testing.T) {
	provider := &stubProvider{
		courses: []models.Course{
			{ID: 1, FullName: "Calculus"},
			{ID: 2, FullName: "Algebra"},
		},
		overview: models.GradesOverview{Grades: []models.GradeOverview{
			{CourseID: 1, Grade: "80.00"},
			{CourseID: 2, Grade: "90.00"},
		}},
	}
	svc, _, grades, _ := newService(provider)

	overview, err := svc.FetchGradesOverview(context.Background(), "T1", provider.courses)

	require.NoError(t, err)
	require.Len(t, overview.Grades, 2)
	// Rows come back sorted by display name.
	assert.Equal(t, "Algebra", overview.Grades[0].CourseName)
	assert.Equal(t, "Calculus", overview.Grades[1].CourseName)
	assert.Nil(t, grades.overview, "fetch must not write the snapshot")
}
