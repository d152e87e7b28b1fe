package api

import (
	"encoding/json"
	"io"
	"mime/multipart"

	"course-service/internal/media"
	"course-service/internal/model"
	"course-service/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type CourseHandler struct {
	courseService       service.CourseService
	announcementService service.AnnouncementService
	attachmentService   service.AttachmentService
	activityService     service.ActivityService
	validate            *validator.Validate
}

func NewCourseHandler(
	courses service.CourseService,
	announcements service.AnnouncementService,
	attachments service.AttachmentService,
	activity service.ActivityService,
) *CourseHandler {
	return &CourseHandler{
		courseService:       courses,
		announcementService: announcements,
		attachmentService:   attachments,
		activityService:     activity,
		validate:            newValidator(),
	}
}

// jsonObject returns the raw body when it is a JSON object.
func jsonObject(c *fiber.Ctx) ([]byte, error) {
	body := c.Body()
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil || probe == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Body must be a JSON object")
	}
	return body, nil
}

func parseContent(c *fiber.Ctx) (model.CourseContent, error) {
	var content model.CourseContent
	if err := json.Unmarshal(c.Body(), &content); err != nil {
		return content, fiber.NewError(fiber.StatusBadRequest, "Cannot parse JSON")
	}
	return content, nil
}

func (h *CourseHandler) ListDrafts(c *fiber.Ctx) error {
	drafts, err := h.courseService.ListDrafts(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(drafts)
}

func (h *CourseHandler) CreateDraft(c *fiber.Ctx) error {
	content, err := parseContent(c)
	if err != nil {
		return err
	}
	draft, err := h.courseService.CreateDraft(c.UserContext(), content)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(draft)
}

func (h *CourseHandler) GetDraft(c *fiber.Ctx) error {
	draft, err := h.courseService.GetDraft(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(draft)
}

func (h *CourseHandler) PatchDraft(c *fiber.Ctx) error {
	patch, err := jsonObject(c)
	if err != nil {
		return err
	}
	draft, err := h.courseService.PatchDraft(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(draft)
}

func (h *CourseHandler) DeleteDraft(c *fiber.Ctx) error {
	if err := h.courseService.DeleteDraft(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CourseHandler) PublishDraft(c *fiber.Ctx) error {
	course, err := h.courseService.PublishDraft(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(course)
}

func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	courses, err := h.courseService.ListCourses(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	if status := c.Query("status"); status != "" {
		filtered := []model.PublishedCourse{}
		for _, pc := range courses {
			if string(pc.Status) == status {
				filtered = append(filtered, pc)
			}
		}
		courses = filtered
	}
	return c.JSON(courses)
}

func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	content, err := parseContent(c)
	if err != nil {
		return err
	}
	course, err := h.courseService.CreateCourse(c.UserContext(), content)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(course)
}

func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	course, err := h.courseService.GetCourse(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(course)
}

func (h *CourseHandler) PatchCourse(c *fiber.Ctx) error {
	patch, err := jsonObject(c)
	if err != nil {
		return err
	}
	course, err := h.courseService.PatchCourse(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(course)
}

func (h *CourseHandler) DeleteCourse(c *fiber.Ctx) error {
	if err := h.courseService.DeleteCourse(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CourseHandler) SetStatus(c *fiber.Ctx) error {
	var req StatusRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return err
	}
	course, err := h.courseService.SetStatus(c.UserContext(), c.Params("id"), model.CourseStatus(req.Status))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(course)
}

func (h *CourseHandler) ListAnnouncements(c *fiber.Ctx) error {
	list, err := h.announcementService.List(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

func (h *CourseHandler) PostAnnouncement(c *fiber.Ctx) error {
	var req AnnouncementRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return err
	}
	a, err := h.announcementService.Post(c.UserContext(), c.Params("id"), req.Message)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(a)
}

func (h *CourseHandler) DeleteAnnouncement(c *fiber.Ctx) error {
	if err := h.announcementService.Delete(c.UserContext(), c.Params("id"), c.Params("announcementId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CourseHandler) ListAttachments(c *fiber.Ctx) error {
	list, err := h.attachmentService.List(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// UploadAttachments takes multipart "files". Each file is admitted on its
// own; when none makes it the response is 413.
func (h *CourseHandler) UploadAttachments(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, "Expected multipart form data")
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		return badRequest(c, "No files uploaded")
	}

	uploads := make([]media.Upload, 0, len(headers))
	for _, fh := range headers {
		uploads = append(uploads, uploadFromHeader(fh))
	}

	result, err := h.attachmentService.Upload(c.UserContext(), c.Params("id"), uploads)
	if err != nil {
		return respondError(c, err)
	}
	if len(result.Stored) == 0 {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(result)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

func uploadFromHeader(fh *multipart.FileHeader) media.Upload {
	return media.Upload{
		Name: fh.Filename,
		Size: fh.Size,
		Open: func() (io.ReadCloser, error) { return fh.Open() },
	}
}

func (h *CourseHandler) DeleteAttachment(c *fiber.Ctx) error {
	if err := h.attachmentService.Delete(c.UserContext(), c.Params("id"), c.Params("attachmentId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CourseHandler) RecordActivity(c *fiber.Ctx) error {
	var req ActivityRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return err
	}
	if err := h.activityService.Record(c.UserContext(), c.Params("id"), model.ActivityKind(req.Kind)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusAccepted)
}
