package analytics_test

import (
	"testing"
	"time"

	"course-service/internal/analytics"
	"course-service/internal/model"

	"github.com/stretchr/testify/require"
)

func fixtures() []model.PublishedCourse {
	a := model.PublishedCourse{
		ID:          "a",
		Price:       10,
		Enrollments: 3,
		Rating:      4,
		Reviews:     2,
		Clicks:      30,
		Status:      model.StatusActive,
		Metrics: []model.MetricPoint{
			{Date: "2026-01-02", Clicks: 5, Bookings: 1},
			{Date: "2026-01-01", Clicks: 3, Bookings: 0},
		},
		Students: []model.Student{{ID: "s1"}, {ID: "s2"}},
	}
	a.Title = "Go"
	a.Category = "Development"
	a.Modules = []model.Module{{Title: "M1", Subsections: []model.Subsection{{TimeMinutes: 10}, {TimeMinutes: 20}}}}
	a.SessionTypes = []model.SessionType{model.SessionClassroom}
	a.Sessions = map[model.SessionType][]model.Session{
		model.SessionClassroom: {{StartDate: "2026-02-10"}},
	}

	b := model.PublishedCourse{
		ID:          "b",
		Price:       20,
		Enrollments: 1,
		Rating:      0,
		Clicks:      10,
		Status:      model.StatusPaused,
		Metrics:     []model.MetricPoint{{Date: "2026-01-02", Clicks: 2, Bookings: 1}},
		Students:    []model.Student{{ID: "s2"}},
	}
	b.Title = "Design"
	b.Category = "Design"

	c := model.PublishedCourse{ID: "c", Price: 5, Enrollments: 4, Rating: 5, Reviews: 1, Status: model.StatusActive}
	c.Title = "Web"
	c.Category = "Development"

	return []model.PublishedCourse{a, b, c}
}

func TestAggregates(t *testing.T) {
	courses := fixtures()

	require.Equal(t, 70.0, analytics.Revenue(courses))
	require.Equal(t, 40, analytics.TotalClicks(courses))
	require.Equal(t, 8, analytics.TotalEnrollments(courses))
	require.Equal(t, 4.5, analytics.AverageRating(courses))
	require.Equal(t, map[string]int{"Development": 7, "Design": 1}, analytics.EnrollmentsByCategory(courses))
	require.Equal(t, map[model.CourseStatus]int{
		model.StatusActive:   2,
		model.StatusPaused:   1,
		model.StatusArchived: 0,
	}, analytics.StatusCounts(courses))
}

func TestAverageRating_NoRatings(t *testing.T) {
	require.Zero(t, analytics.AverageRating(nil))
	require.Zero(t, analytics.AverageRating([]model.PublishedCourse{{Rating: 0}}))
}

func TestConversionRate(t *testing.T) {
	require.Zero(t, analytics.ConversionRate(5, 0))
	require.Equal(t, 10.0, analytics.ConversionRate(3, 30))
}

func TestDailySeries(t *testing.T) {
	got := analytics.DailySeries(fixtures())
	require.Equal(t, []model.MetricPoint{
		{Date: "2026-01-01", Clicks: 3, Bookings: 0},
		{Date: "2026-01-02", Clicks: 7, Bookings: 2},
	}, got)
}

func TestBuildPerformance(t *testing.T) {
	p := analytics.BuildPerformance(fixtures())

	require.Equal(t, 70.0, p.TotalRevenue)
	require.Equal(t, 20.0, p.ConversionRate)
	require.Len(t, p.Courses, 3)
	require.Equal(t, 30.0, p.Courses[0].Revenue)
	require.Equal(t, 10.0, p.Courses[0].ConversionRate)
}

func TestBuildAdminDashboard(t *testing.T) {
	d := analytics.BuildAdminDashboard(fixtures(), []model.Draft{{ID: "d1"}})

	require.Equal(t, 3, d.TotalCourses)
	require.Equal(t, 1, d.TotalDrafts)
	require.Equal(t, 2, d.TotalStudents)
	require.Equal(t, "a", d.TopCourses[0].ID)
	require.Equal(t, "b", d.TopCourses[1].ID)
}

func TestBuildStudentDashboard_ActiveOnly(t *testing.T) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	cards := analytics.BuildStudentDashboard(fixtures(), now)

	require.Len(t, cards, 2)
	require.Equal(t, "a", cards[0].ID)
	require.Equal(t, 1, cards[0].ModuleCount)
	require.Equal(t, 2, cards[0].LessonCount)
	require.Equal(t, 30, cards[0].TotalMinutes)
	require.Equal(t, "2026-02-10", cards[0].NextSession)
	require.Equal(t, "c", cards[1].ID)
	require.Empty(t, cards[1].NextSession)
}

func TestBuildReviews(t *testing.T) {
	r := analytics.BuildReviews(fixtures())

	require.Equal(t, 3, r.TotalReviews)
	require.Equal(t, "c", r.Courses[0].CourseID)
	require.Equal(t, "a", r.Courses[1].CourseID)
	require.Equal(t, "b", r.Courses[2].CourseID)
}
