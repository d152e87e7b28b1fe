// Package analytics derives dashboard figures from the published course
// collection. Everything here is a pure function of its input and is
// recomputed on each request.
package analytics

import (
	"sort"
	"time"

	"course-service/internal/model"
	"course-service/internal/schedule"
)

func Revenue(courses []model.PublishedCourse) float64 {
	total := 0.0
	for _, c := range courses {
		total += c.Revenue()
	}
	return total
}

func TotalClicks(courses []model.PublishedCourse) int {
	total := 0
	for _, c := range courses {
		total += c.Clicks
	}
	return total
}

func TotalEnrollments(courses []model.PublishedCourse) int {
	total := 0
	for _, c := range courses {
		total += c.Enrollments
	}
	return total
}

// AverageRating averages only courses that have been rated at all.
func AverageRating(courses []model.PublishedCourse) float64 {
	sum, n := 0.0, 0
	for _, c := range courses {
		if c.Rating > 0 {
			sum += c.Rating
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func EnrollmentsByCategory(courses []model.PublishedCourse) map[string]int {
	out := make(map[string]int)
	for _, c := range courses {
		out[c.Category] += c.Enrollments
	}
	return out
}

func StatusCounts(courses []model.PublishedCourse) map[model.CourseStatus]int {
	out := map[model.CourseStatus]int{
		model.StatusActive:   0,
		model.StatusPaused:   0,
		model.StatusArchived: 0,
	}
	for _, c := range courses {
		out[c.Status]++
	}
	return out
}

// ConversionRate is enrollments per click, in percent.
func ConversionRate(enrollments, clicks int) float64 {
	if clicks == 0 {
		return 0
	}
	return float64(enrollments) / float64(clicks) * 100
}

// DailySeries sums the metric points of every course by date, oldest first.
func DailySeries(courses []model.PublishedCourse) []model.MetricPoint {
	byDate := make(map[string]*model.MetricPoint)
	for _, c := range courses {
		for _, p := range c.Metrics {
			acc, ok := byDate[p.Date]
			if !ok {
				acc = &model.MetricPoint{Date: p.Date}
				byDate[p.Date] = acc
			}
			acc.Clicks += p.Clicks
			acc.Bookings += p.Bookings
		}
	}

	out := make([]model.MetricPoint, 0, len(byDate))
	for _, p := range byDate {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

type CoursePerformance struct {
	ID             string             `json:"id"`
	Title          string             `json:"title"`
	Status         model.CourseStatus `json:"status"`
	Price          float64            `json:"price"`
	Revenue        float64            `json:"revenue"`
	Clicks         int                `json:"clicks"`
	Enrollments    int                `json:"enrollments"`
	Rating         float64            `json:"rating"`
	Reviews        int                `json:"reviews"`
	ConversionRate float64            `json:"conversionRate"`
}

type Performance struct {
	TotalRevenue     float64             `json:"totalRevenue"`
	TotalClicks      int                 `json:"totalClicks"`
	TotalEnrollments int                 `json:"totalEnrollments"`
	AverageRating    float64             `json:"averageRating"`
	ConversionRate   float64             `json:"conversionRate"`
	Courses          []CoursePerformance `json:"courses"`
	Daily            []model.MetricPoint `json:"daily"`
}

func BuildPerformance(courses []model.PublishedCourse) Performance {
	p := Performance{
		TotalRevenue:     Revenue(courses),
		TotalClicks:      TotalClicks(courses),
		TotalEnrollments: TotalEnrollments(courses),
		AverageRating:    AverageRating(courses),
		Courses:          make([]CoursePerformance, 0, len(courses)),
		Daily:            DailySeries(courses),
	}
	p.ConversionRate = ConversionRate(p.TotalEnrollments, p.TotalClicks)

	for _, c := range courses {
		p.Courses = append(p.Courses, CoursePerformance{
			ID:             c.ID,
			Title:          c.Title,
			Status:         c.Status,
			Price:          c.Price,
			Revenue:        c.Revenue(),
			Clicks:         c.Clicks,
			Enrollments:    c.Enrollments,
			Rating:         c.Rating,
			Reviews:        c.Reviews,
			ConversionRate: ConversionRate(c.Enrollments, c.Clicks),
		})
	}
	return p
}

type AdminDashboard struct {
	TotalCourses          int                        `json:"totalCourses"`
	TotalDrafts           int                        `json:"totalDrafts"`
	TotalStudents         int                        `json:"totalStudents"`
	TotalRevenue          float64                    `json:"totalRevenue"`
	AverageRating         float64                    `json:"averageRating"`
	ByStatus              map[model.CourseStatus]int `json:"byStatus"`
	EnrollmentsByCategory map[string]int             `json:"enrollmentsByCategory"`
	TopCourses            []CoursePerformance        `json:"topCourses"`
}

const topCourseCount = 5

func BuildAdminDashboard(courses []model.PublishedCourse, drafts []model.Draft) AdminDashboard {
	perf := BuildPerformance(courses)

	top := append([]CoursePerformance(nil), perf.Courses...)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Revenue > top[j].Revenue })
	if len(top) > topCourseCount {
		top = top[:topCourseCount]
	}

	students := make(map[string]struct{})
	for _, c := range courses {
		for _, s := range c.Students {
			students[s.ID] = struct{}{}
		}
	}

	return AdminDashboard{
		TotalCourses:          len(courses),
		TotalDrafts:           len(drafts),
		TotalStudents:         len(students),
		TotalRevenue:          perf.TotalRevenue,
		AverageRating:         perf.AverageRating,
		ByStatus:              StatusCounts(courses),
		EnrollmentsByCategory: EnrollmentsByCategory(courses),
		TopCourses:            top,
	}
}

type StudentCourseCard struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Subtitle     string      `json:"subtitle"`
	Category     string      `json:"category"`
	Level        model.Level `json:"level"`
	Image        string      `json:"image,omitempty"`
	ModuleCount  int         `json:"moduleCount"`
	LessonCount  int         `json:"lessonCount"`
	TotalMinutes int         `json:"totalMinutes"`
	Rating       float64     `json:"rating"`
	NextSession  string      `json:"nextSession,omitempty"`
}

// BuildStudentDashboard lists the courses a student can see: active ones only.
func BuildStudentDashboard(courses []model.PublishedCourse, now time.Time) []StudentCourseCard {
	cards := []StudentCourseCard{}
	for _, c := range courses {
		if c.Status != model.StatusActive {
			continue
		}

		card := StudentCourseCard{
			ID:          c.ID,
			Title:       c.Title,
			Subtitle:    c.Subtitle,
			Category:    c.Category,
			Level:       c.Level,
			ModuleCount: len(c.Modules),
			Rating:      c.Rating,
		}
		if len(c.Images) > 0 {
			card.Image = c.Images[0].DisplayPreview()
		}
		for _, m := range c.Modules {
			card.LessonCount += len(m.Subsections)
			for _, s := range m.Subsections {
				card.TotalMinutes += s.TimeMinutes
			}
		}

		var all []model.Session
		for _, t := range c.SessionTypes {
			all = append(all, c.Sessions[t]...)
		}
		if next, ok := schedule.NextOccurrence(all, now); ok {
			card.NextSession = next.Format(schedule.DateLayout)
		}

		cards = append(cards, card)
	}
	return cards
}

type CourseReview struct {
	CourseID string  `json:"courseId"`
	Title    string  `json:"title"`
	Rating   float64 `json:"rating"`
	Reviews  int     `json:"reviews"`
}

type ReviewSummary struct {
	AverageRating float64        `json:"averageRating"`
	TotalReviews  int            `json:"totalReviews"`
	Courses       []CourseReview `json:"courses"`
}

// BuildReviews lists courses best rated first.
func BuildReviews(courses []model.PublishedCourse) ReviewSummary {
	out := ReviewSummary{AverageRating: AverageRating(courses), Courses: []CourseReview{}}
	for _, c := range courses {
		out.TotalReviews += c.Reviews
		out.Courses = append(out.Courses, CourseReview{CourseID: c.ID, Title: c.Title, Rating: c.Rating, Reviews: c.Reviews})
	}
	sort.SliceStable(out.Courses, func(i, j int) bool { return out.Courses[i].Rating > out.Courses[j].Rating })
	return out
}
