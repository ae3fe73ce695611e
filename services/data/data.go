package data

import (
	"context"
	"errors"
	"fmt"

	"github.com/Azarenkov/aitu-web-app/database/repository"
	courseRepo "github.com/Azarenkov/aitu-web-app/database/repository/course"
	deadlineRepo "github.com/Azarenkov/aitu-web-app/database/repository/deadline"
	gradeRepo "github.com/Azarenkov/aitu-web-app/database/repository/grade"
	tokenRepo "github.com/Azarenkov/aitu-web-app/database/repository/token"
	userRepo "github.com/Azarenkov/aitu-web-app/database/repository/user"
	"github.com/Azarenkov/aitu-web-app/models"
	"github.com/Azarenkov/aitu-web-app/services/moodle"
)

// DefaultDataService is the production implementation of Service.
type DefaultDataService struct {
	Provider  moodle.DataProvider
	Tokens    tokenRepo.TokenRepository
	Users     userRepo.UserRepository
	Courses   courseRepo.CourseRepository
	Grades    gradeRepo.GradeRepository
	Deadlines deadlineRepo.DeadlineRepository
}

// RegisterUser validates the token, persists the account and bootstraps all
// snapshot kinds. Any bootstrap failure aborts registration.
func (s *DefaultDataService) RegisterUser(ctx context.Context, token *models.Token) error {
	if err := s.Provider.ValidateToken(ctx, token.Token); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidToken, err)
	}

	if err := s.Tokens.Save(ctx, token); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return ErrUserAlreadyExists
		}
		return fmt.Errorf("save token: %w", err)
	}

	return s.FetchAndUpdateData(ctx, token.Token)
}

func (s *DefaultDataService) DeleteUser(ctx context.Context, token string) error {
	return s.Tokens.Delete(ctx, token)
}

func (s *DefaultDataService) FindAllTokens(ctx context.Context, limit, skip int64) ([]models.Token, error) {
	return s.Tokens.FindAll(ctx, limit, skip)
}

func (s *DefaultDataService) GetUser(ctx context.Context, token string) (*models.User, error) {
	return s.Users.FindByToken(ctx, token)
}

// UpdateUser fetches the profile from Moodle and overwrites the snapshot.
func (s *DefaultDataService) UpdateUser(ctx context.Context, token string) (*models.User, error) {
	user, err := s.Provider.GetUser(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	if err := s.Users.Save(ctx, token, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *DefaultDataService) GetCourses(ctx context.Context, token string) ([]models.Course, error) {
	return s.Courses.FindByToken(ctx, token)
}

// UpdateCourses fetches the enrolled courses from Moodle and overwrites the
// snapshot.
func (s *DefaultDataService) UpdateCourses(ctx context.Context, token string, user *models.User) ([]models.Course, error) {
	courses, err := s.Provider.GetCourses(ctx, token, user.UserID)
	if err != nil {
		return nil, fmt.Errorf("fetch courses: %w", err)
	}
	if err := s.Courses.Save(ctx, token, courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (s *DefaultDataService) GetGrades(ctx context.Context, token string) ([]models.Grade, error) {
	return s.Grades.FindGradesByToken(ctx, token)
}

// UpdateGrades fetches every course's grade report, tags each grade with the
// owning course name and overwrites the snapshot.
func (s *DefaultDataService) UpdateGrades(ctx context.Context, token string, user *models.User, courses []models.Course) error {
	var grades []models.Grade

	for _, course := range courses {
		external, err := s.Provider.GetGradesByCourse(ctx, token, user.UserID, course.ID)
		if err != nil {
			return fmt.Errorf("fetch grades for course %d: %w", course.ID, err)
		}
		for _, grade := range external.UserGrades {
			grade.CourseName = course.FullName
			grades = append(grades, grade)
		}
	}

	return s.Grades.SaveGrades(ctx, token, grades)
}

func (s *DefaultDataService) GetGradesOverview(ctx context.Context, token string) ([]models.GradeOverview, error) {
	return s.Grades.FindGradesOverviewByToken(ctx, token)
}

// FetchGradesOverview fetches the external overview, annotates each row with
// its course display name and sorts canonically. Nothing is persisted.
func (s *DefaultDataService) FetchGradesOverview(ctx context.Context, token string, courses []models.Course) (*models.GradesOverview, error) {
	overview, err := s.Provider.GetGradesOverview(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("fetch grades overview: %w", err)
	}

	for i := range overview.Grades {
		for _, course := range courses {
			if course.ID == overview.Grades[i].CourseID {
				overview.Grades[i].CourseName = course.FullName
				break
			}
		}
	}
	models.SortGradesOverview(overview.Grades)
	return overview, nil
}

// UpdateGradesOverview recomputes the external overview and overwrites the
// snapshot.
func (s *DefaultDataService) UpdateGradesOverview(ctx context.Context, token string, courses []models.Course) error {
	overview, err := s.FetchGradesOverview(ctx, token, courses)
	if err != nil {
		return err
	}
	return s.Grades.SaveGradesOverview(ctx, token, overview.Grades)
}

func (s *DefaultDataService) GetDeadlines(ctx context.Context, token string) ([]models.Deadline, error) {
	return s.Deadlines.FindByToken(ctx, token)
}

// UpdateDeadlines fetches every course's action events, tags them with the
// course name, sorts by due time and overwrites the snapshot.
func (s *DefaultDataService) UpdateDeadlines(ctx context.Context, token string, courses []models.Course) error {
	var deadlines []models.Deadline

	for _, course := range courses {
		events, err := s.Provider.GetDeadlinesByCourse(ctx, token, course.ID)
		if err != nil {
			return fmt.Errorf("fetch deadlines for course %d: %w", course.ID, err)
		}
		for _, deadline := range events.Events {
			deadline.CourseName = course.FullName
			deadlines = append(deadlines, deadline)
		}
	}

	return s.Deadlines.Save(ctx, token, models.SortDeadlines(deadlines))
}

// FetchAndUpdateData refreshes all five snapshot kinds in dependency order.
// Used at registration time and for accounts without a device token.
func (s *DefaultDataService) FetchAndUpdateData(ctx context.Context, token string) error {
	user, err := s.UpdateUser(ctx, token)
	if err != nil {
		return err
	}
	courses, err := s.UpdateCourses(ctx, token, user)
	if err != nil {
		return err
	}
	if err := s.UpdateGrades(ctx, token, user, courses); err != nil {
		return err
	}
	if err := s.UpdateGradesOverview(ctx, token, courses); err != nil {
		return err
	}
	return s.UpdateDeadlines(ctx, token, courses)
}
