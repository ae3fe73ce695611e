package moodle

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Azarenkov/aitu-web-app/models"
)

// Client implements DataProvider against the Moodle webservice REST endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Moodle client for the given REST endpoint, e.g.
// https://moodle.example.edu/webservice/rest/server.php.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// moodleError is the payload Moodle returns, with HTTP 200, when a call fails.
type moodleError struct {
	Exception string `json:"exception"`
	ErrorCode string `json:"errorcode"`
	Message   string `json:"message"`
}

// call performs one webservice function call and decodes the JSON response
// into out.
func (c *Client) call(ctx context.Context, token, function string, params url.Values, out any) error {
	query := url.Values{}
	query.Set("wstoken", token)
	query.Set("wsfunction", function)
	query.Set("moodlewsrestformat", "json")
	for key, values := range params {
		for _, value := range values {
			query.Add(key, value)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("moodle: build request for %s: %w", function, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("moodle: %s request failed: %w", function, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("moodle: unexpected status %d for %s", resp.StatusCode, function)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("moodle: read %s response: %w", function, err)
	}

	// Moodle reports failures (including invalid tokens) as HTTP 200 with an
	// exception payload.
	var apiErr moodleError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Exception != "" {
		return fmt.Errorf("moodle: %s: %s (%s)", function, apiErr.Message, apiErr.ErrorCode)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("moodle: decode %s response: %w", function, err)
	}
	return nil
}

// ValidateToken checks the token by requesting the site info it grants
// access to.
func (c *Client) ValidateToken(ctx context.Context, token string) error {
	return c.call(ctx, token, "core_webservice_get_site_info", nil, nil)
}

// GetUser fetches the profile behind the token.
func (c *Client) GetUser(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := c.call(ctx, token, "core_webservice_get_site_info", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetCourses fetches the user's enrolled courses.
func (c *Client) GetCourses(ctx context.Context, token string, userID int64) ([]models.Course, error) {
	params := url.Values{}
	params.Set("userid", strconv.FormatInt(userID, 10))

	var courses []models.Course
	if err := c.call(ctx, token, "core_enrol_get_users_courses", params, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// GetGradesByCourse fetches the grade report for one course.
func (c *Client) GetGradesByCourse(ctx context.Context, token string, userID, courseID int64) (*models.UserGrades, error) {
	params := url.Values{}
	params.Set("userid", strconv.FormatInt(userID, 10))
	params.Set("courseid", strconv.FormatInt(courseID, 10))

	var grades models.UserGrades
	if err := c.call(ctx, token, "gradereport_user_get_grade_items", params, &grades); err != nil {
		return nil, err
	}
	return &grades, nil
}

// GetGradesOverview fetches the total grade per enrolled course.
func (c *Client) GetGradesOverview(ctx context.Context, token string) (*models.GradesOverview, error) {
	var overview models.GradesOverview
	if err := c.call(ctx, token, "gradereport_overview_get_course_grades", nil, &overview); err != nil {
		return nil, err
	}
	return &overview, nil
}

// GetDeadlinesByCourse fetches upcoming calendar action events for one course.
func (c *Client) GetDeadlinesByCourse(ctx context.Context, token string, courseID int64) (*models.Events, error) {
	params := url.Values{}
	params.Set("courseid", strconv.FormatInt(courseID, 10))
	params.Set("timesortfrom", strconv.FormatInt(time.Now().Unix(), 10))

	var events models.Events
	if err := c.call(ctx, token, "core_calendar_get_action_events_by_course", params, &events); err != nil {
		return nil, err
	}
	return &events, nil
}
