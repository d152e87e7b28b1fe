package api

import (
	"errors"
	"log/slog"
	"strconv"

	"course-service/internal/media"
	"course-service/internal/repository"
	"course-service/internal/service"
	"course-service/internal/suggest"
	"course-service/internal/wizard"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// respondError maps domain errors onto HTTP statuses. Anything unrecognised
// is logged and answered with a generic 500.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrDraftNotFound),
		errors.Is(err, service.ErrCourseNotFound),
		errors.Is(err, service.ErrModuleNotFound),
		errors.Is(err, service.ErrAnnouncementNotFound),
		errors.Is(err, service.ErrAttachmentNotFound),
		errors.Is(err, wizard.ErrWizardNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidMaterialType),
		errors.Is(err, service.ErrEmptyAnnouncement),
		errors.Is(err, service.ErrInvalidActivity),
		errors.Is(err, repository.ErrPatchNotObject),
		errors.Is(err, repository.ErrInvalidPatch),
		errors.Is(err, wizard.ErrIndexOutOfRange),
		errors.Is(err, wizard.ErrInvalidSessionType),
		errors.Is(err, media.ErrInvalidCrop),
		errors.Is(err, media.ErrInvalidDataURL),
		errors.Is(err, media.ErrUndecodableImage),
		errors.Is(err, suggest.ErrUnknownField):
		status = fiber.StatusBadRequest
	case errors.Is(err, wizard.ErrWizardClosed),
		errors.Is(err, wizard.ErrCloseNotPending),
		errors.Is(err, wizard.ErrSessionTypeNotSelected),
		errors.Is(err, wizard.ErrNoPendingImage),
		errors.Is(err, wizard.ErrEditTargetMissing):
		status = fiber.StatusConflict
	case errors.Is(err, wizard.ErrStepIncomplete):
		status = fiber.StatusUnprocessableEntity
	case errors.Is(err, media.ErrFileTooLarge):
		status = fiber.StatusRequestEntityTooLarge
	}

	if status == fiber.StatusInternalServerError {
		slog.ErrorContext(c.UserContext(), "Request failed",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
		return c.Status(status).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

// parseBody decodes and validates the JSON body into req. Failures come back
// as *fiber.Error and are rendered by ErrorHandler.
func parseBody(c *fiber.Ctx, v *validator.Validate, req any) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := v.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	return nil
}

// ErrorHandler renders errors returned from handlers as JSON bodies.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var e *fiber.Error
	if errors.As(err, &e) {
		return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
	}
	return respondError(c, err)
}

func intParam(c *fiber.Ctx, name string) (int, error) {
	n, err := strconv.Atoi(c.Params(name))
	if err != nil {
		return 0, errors.New("invalid " + name)
	}
	return n, nil
}
