package producer

import (
	"context"
	"errors"
	"fmt"

	"github.com/Azarenkov/aitu-web-app/models"
	"github.com/Azarenkov/aitu-web-app/services/data"
	"github.com/Azarenkov/aitu-web-app/services/moodle"
	"github.com/Azarenkov/aitu-web-app/services/notification"
	"github.com/Azarenkov/aitu-web-app/utils"

	"go.uber.org/zap"
)

// DefaultProducerService is the production implementation of ProducerService.
// Accounts are processed one at a time and every network call is awaited in
// sequence: correctness of the read-then-overwrite snapshot cycle relies on
// a single active poller.
type DefaultProducerService struct {
	Producer notification.EventProducer
	Provider moodle.DataProvider
	Data     data.Service
}

// ProcessNext pages the account registry. An empty page means the poll pass
// is complete: the returned offset wraps to 0 and no batch is processed.
func (s *DefaultProducerService) ProcessNext(ctx context.Context, limit, offset int64) (int64, error) {
	batch, err := s.Data.FindAllTokens(ctx, limit, offset)
	if err != nil {
		return offset, fmt.Errorf("list tokens: %w", err)
	}
	if len(batch) == 0 {
		return 0, nil
	}

	s.ProcessBatch(ctx, batch)
	return offset + int64(len(batch)), nil
}

// ProcessBatch runs the pipeline for each account. Accounts without a device
// token get a notification-free resync so the snapshot stays fresh.
func (s *DefaultProducerService) ProcessBatch(ctx context.Context, batch []models.Token) {
	logger := utils.GetLogger()

	for _, account := range batch {
		if account.DeviceToken == "" {
			if err := s.Data.FetchAndUpdateData(ctx, account.Token); err != nil {
				logger.Error("resync failed",
					zap.String("token", account.Token),
					zap.Error(err))
			}
			continue
		}
		s.processAccount(ctx, account.Token, account.DeviceToken)
	}
}

// processAccount drives the five sub-pipelines in dependency order. A user
// or course failure aborts the account; grade, overview and deadline
// failures are isolated so one resource cannot suppress the others.
func (s *DefaultProducerService) processAccount(ctx context.Context, token, deviceToken string) {
	logger := utils.GetLogger()

	user, err := s.produceUserInfo(ctx, token, deviceToken)
	if err != nil {
		logger.Error("user pipeline failed", zap.String("token", token), zap.Error(err))
		return
	}

	courses, err := s.produceCourse(ctx, token, deviceToken, user)
	if err != nil {
		logger.Error("course pipeline failed", zap.String("token", token), zap.Error(err))
		return
	}

	if err := s.produceGrade(ctx, token, deviceToken, user, courses); err != nil {
		logger.Error("grade pipeline failed", zap.String("token", token), zap.Error(err))
	}
	if err := s.produceGradeOverview(ctx, token, deviceToken, courses); err != nil {
		logger.Error("grade overview pipeline failed", zap.String("token", token), zap.Error(err))
	}

	// Deadlines only matter for courses that are still running.
	if err := s.produceDeadline(ctx, token, deviceToken, models.RemovePastCourses(courses)); err != nil {
		logger.Error("deadline pipeline failed", zap.String("token", token), zap.Error(err))
	}
}

// produceUserInfo notifies on a changed profile and returns the external
// profile for downstream pipelines regardless of whether it changed.
func (s *DefaultProducerService) produceUserInfo(ctx context.Context, token, deviceToken string) (*models.User, error) {
	external, err := s.Provider.GetUser(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("fetch user: %w", err)
	}

	stored, err := s.Data.GetUser(ctx, token)
	if err != nil {
		if !errors.Is(err, data.ErrDataIsEmpty) {
			return nil, fmt.Errorf("read stored user: %w", err)
		}
		// No profile stored yet: persist silently, there is nothing to
		// report a change against.
		if _, err := s.Data.UpdateUser(ctx, token); err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		return external, nil
	}

	if !stored.Equal(*external) {
		s.Producer.Produce(ctx, models.NewNotification(deviceToken, "New user info", external.BodyMessage()))
		if _, err := s.Data.UpdateUser(ctx, token); err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
	}
	return external, nil
}

// produceCourse notifies once per new course and returns the full external
// list, past courses included; the deadline pipeline filters those later.
func (s *DefaultProducerService) produceCourse(ctx context.Context, token, deviceToken string, user *models.User) ([]models.Course, error) {
	external, err := s.Provider.GetCourses(ctx, token, user.UserID)
	if err != nil {
		return nil, fmt.Errorf("fetch courses: %w", err)
	}

	stored, err := s.Data.GetCourses(ctx, token)
	if err != nil && !errors.Is(err, data.ErrDataIsEmpty) {
		return nil, fmt.Errorf("read stored courses: %w", err)
	}

	newCourses := models.CompareCourses(external, stored)
	for _, course := range newCourses {
		s.Producer.Produce(ctx, models.NewNotification(deviceToken, "New course", course.FullName))
	}

	if len(newCourses) > 0 {
		if _, err := s.Data.UpdateCourses(ctx, token, user); err != nil {
			return nil, fmt.Errorf("update courses: %w", err)
		}
	}
	return external, nil
}

// produceGrade notifies on every new or changed grade item. A stored grade
// list that is missing one of the account's courses, or whose per-course
// item count disagrees with Moodle, forces an unconditional resync first:
// the per-item diff cannot detect those kinds of staleness.
func (s *DefaultProducerService) produceGrade(ctx context.Context, token, deviceToken string, user *models.User, courses []models.Course) error {
	stored, err := s.Data.GetGrades(ctx, token)
	if err != nil && !errors.Is(err, data.ErrDataIsEmpty) {
		return fmt.Errorf("read stored grades: %w", err)
	}

	allCoursesPresent := true
	for _, course := range courses {
		found := false
		for _, grade := range stored {
			if grade.CourseID == course.ID {
				found = true
				break
			}
		}
		if !found {
			allCoursesPresent = false
			break
		}
	}
	if !allCoursesPresent {
		if err := s.Data.UpdateGrades(ctx, token, user, courses); err != nil {
			return fmt.Errorf("resync grades: %w", err)
		}
	}

	changed := false
	for _, course := range courses {
		external, err := s.Provider.GetGradesByCourse(ctx, token, user.UserID, course.ID)
		if err != nil {
			return fmt.Errorf("fetch grades for course %d: %w", course.ID, err)
		}
		externalGrades := external.UserGrades
		for i := range externalGrades {
			externalGrades[i].CourseName = course.FullName
		}

		// Second defensive check: a per-course item count that disagrees with
		// Moodle means items were removed, which the per-item diff cannot
		// see. Resync, but keep diffing against the pre-resync baseline so
		// genuine changes still notify.
		resynced := false
		for _, externalGrade := range externalGrades {
			for _, grade := range stored {
				if externalGrade.CourseID == grade.CourseID && len(externalGrade.GradeItems) != len(grade.GradeItems) {
					if err := s.Data.UpdateGrades(ctx, token, user, courses); err != nil {
						return fmt.Errorf("resync grades: %w", err)
					}
					resynced = true
					break
				}
			}
			if resynced {
				break
			}
		}

		changes := models.CompareGrades(externalGrades, stored)
		if len(changes) > 0 {
			changed = true
			for _, change := range changes {
				body := fmt.Sprintf("New grade | %s\n%s -> %s",
					change.Current.ItemName,
					change.Previous.PercentageFormatted,
					change.Current.PercentageFormatted)
				s.Producer.Produce(ctx, models.NewNotification(deviceToken, course.FullName, body))
			}
		}
	}

	if changed {
		if err := s.Data.UpdateGrades(ctx, token, user, courses); err != nil {
			return fmt.Errorf("update grades: %w", err)
		}
	}
	return nil
}

// produceGradeOverview notifies on every overview row that is new or whose
// total grade changed, matching rows by course id.
func (s *DefaultProducerService) produceGradeOverview(ctx context.Context, token, deviceToken string, courses []models.Course) error {
	external, err := s.Data.FetchGradesOverview(ctx, token, courses)
	if err != nil {
		return err
	}

	stored, err := s.Data.GetGradesOverview(ctx, token)
	if err != nil && !errors.Is(err, data.ErrDataIsEmpty) {
		return fmt.Errorf("read stored grades overview: %w", err)
	}
	models.SortGradesOverview(stored)

	fresh := models.CompareGradesOverview(external.Grades, stored)
	if len(fresh) == 0 {
		return nil
	}

	for _, row := range fresh {
		title := row.CourseName
		if title == "" {
			title = "-"
		}
		body := fmt.Sprintf("New course total grade | %s", row.Grade)
		s.Producer.Produce(ctx, models.NewNotification(deviceToken, title, body))
	}

	if err := s.Data.UpdateGradesOverview(ctx, token, courses); err != nil {
		return fmt.Errorf("update grades overview: %w", err)
	}
	return nil
}

// produceDeadline notifies once per new deadline across the given (non-past)
// courses, then overwrites the snapshot with the full external set.
func (s *DefaultProducerService) produceDeadline(ctx context.Context, token, deviceToken string, courses []models.Course) error {
	changed := false

	for _, course := range courses {
		stored, err := s.Data.GetDeadlines(ctx, token)
		if err != nil {
			if errors.Is(err, data.ErrDataIsEmpty) {
				stored = nil
			} else {
				return fmt.Errorf("read stored deadlines: %w", err)
			}
		}

		events, err := s.Provider.GetDeadlinesByCourse(ctx, token, course.ID)
		if err != nil {
			return fmt.Errorf("fetch deadlines for course %d: %w", course.ID, err)
		}
		external := events.Events
		if len(external) == 0 {
			continue
		}

		for i := range external {
			external[i].CourseName = course.FullName
		}

		fresh := models.CompareDeadlines(models.SortDeadlines(external), stored)
		if len(fresh) > 0 {
			changed = true
			for _, deadline := range fresh {
				s.Producer.Produce(ctx, models.NewNotification(deviceToken, "New deadline", deadline.BodyMessage()))
			}
		}
	}

	if changed {
		if err := s.Data.UpdateDeadlines(ctx, token, courses); err != nil {
			return fmt.Errorf("update deadlines: %w", err)
		}
	}
	return nil
}
