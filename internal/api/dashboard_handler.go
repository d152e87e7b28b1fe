package api

import (
	"time"

	"course-service/internal/analytics"
	"course-service/internal/model"
	"course-service/internal/schedule"
	"course-service/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// DashboardHandler serves the read-only views derived from the stored
// collections. Nothing is cached; every request recomputes from storage.
type DashboardHandler struct {
	courseService service.CourseService
	validate      *validator.Validate
	now           func() time.Time
}

func NewDashboardHandler(courses service.CourseService) *DashboardHandler {
	return &DashboardHandler{courseService: courses, validate: newValidator(), now: time.Now}
}

func (h *DashboardHandler) Reviews(c *fiber.Ctx) error {
	courses, err := h.courseService.ListCourses(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(analytics.BuildReviews(courses))
}

func (h *DashboardHandler) Performance(c *fiber.Ctx) error {
	courses, err := h.courseService.ListCourses(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(analytics.BuildPerformance(courses))
}

func (h *DashboardHandler) Admin(c *fiber.Ctx) error {
	courses, err := h.courseService.ListCourses(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	drafts, err := h.courseService.ListDrafts(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(analytics.BuildAdminDashboard(courses, drafts))
}

func (h *DashboardHandler) Student(c *fiber.Ctx) error {
	courses, err := h.courseService.ListCourses(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(analytics.BuildStudentDashboard(courses, h.now()))
}

func (h *DashboardHandler) StudentMaterial(c *fiber.Ctx) error {
	idx, err := intParam(c, "index")
	if err != nil {
		return badRequest(c, err.Error())
	}
	m, err := h.courseService.StudentMaterial(c.UserContext(), c.Params("id"), idx, model.SubsectionType(c.Query("type")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(m)
}

func (h *DashboardHandler) SessionDuration(c *fiber.Ctx) error {
	start, end := c.Query("start"), c.Query("end")
	minutes, ok := schedule.DurationMinutes(start, end)
	if !ok {
		return c.JSON(fiber.Map{"duration": "", "minutes": 0})
	}
	return c.JSON(fiber.Map{"duration": schedule.Duration(start, end), "minutes": minutes})
}

func (h *DashboardHandler) Calendar(c *fiber.Ctx) error {
	var req CalendarRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"year":  req.Year,
		"month": req.Month,
		"weeks": schedule.MonthGrid(req.Year, time.Month(req.Month), req.Sessions),
	})
}
