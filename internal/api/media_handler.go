package api

import (
	"log/slog"

	"course-service/internal/s3"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type MediaHandler struct {
	presigner s3.UploadPresigner
	validate  *validator.Validate
}

// NewMediaHandler accepts a nil presigner, in which case upload URLs are
// reported as unavailable.
func NewMediaHandler(presigner s3.UploadPresigner) *MediaHandler {
	return &MediaHandler{presigner: presigner, validate: newValidator()}
}

func (h *MediaHandler) VideoUploadURL(c *fiber.Ctx) error {
	if h.presigner == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Video uploads are not configured"})
	}

	var req VideoUploadRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return err
	}

	upload, err := h.presigner.PresignVideoUpload(c.UserContext(), req.Filename, req.ContentType)
	if err != nil {
		slog.ErrorContext(c.UserContext(), "Could not presign video upload", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not generate upload URL"})
	}
	return c.JSON(upload)
}
