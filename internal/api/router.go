package api

import (
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Wizard    *WizardHandler
	Course    *CourseHandler
	Dashboard *DashboardHandler
	Media     *MediaHandler
}

// SetupRoutes mounts the /v1 surface. Middleware passed in runs on /v1 only.
func SetupRoutes(app *fiber.App, h Handlers, middleware ...fiber.Handler) {
	v1 := app.Group("/v1")
	for _, m := range middleware {
		v1.Use(m)
	}

	wizards := v1.Group("/wizards")
	wizards.Post("/", h.Wizard.Create)
	wizards.Get("/:id", h.Wizard.Get)
	wizards.Post("/:id/next", h.Wizard.Next)
	wizards.Post("/:id/prev", h.Wizard.Prev)
	wizards.Put("/:id/step", h.Wizard.JumpTo)
	wizards.Put("/:id/general", h.Wizard.SetGeneral)
	wizards.Post("/:id/modules", h.Wizard.AddModule)
	wizards.Patch("/:id/modules/:module", h.Wizard.SetModuleTitle)
	wizards.Delete("/:id/modules/:module", h.Wizard.RemoveModule)
	wizards.Post("/:id/modules/:module/subsections", h.Wizard.AddSubsection)
	wizards.Put("/:id/modules/:module/subsections/:sub", h.Wizard.UpdateSubsection)
	wizards.Delete("/:id/modules/:module/subsections/:sub", h.Wizard.RemoveSubsection)
	wizards.Post("/:id/session-types/:type/toggle", h.Wizard.ToggleSessionType)
	wizards.Post("/:id/sessions/:type", h.Wizard.AddSession)
	wizards.Put("/:id/sessions/:type/:index", h.Wizard.UpdateSession)
	wizards.Delete("/:id/sessions/:type/:index", h.Wizard.RemoveSession)
	wizards.Post("/:id/images", h.Wizard.AddImage)
	wizards.Post("/:id/images/crop", h.Wizard.ApplyCrop)
	wizards.Post("/:id/images/skip-crop", h.Wizard.SkipCrop)
	wizards.Delete("/:id/images/pending", h.Wizard.DiscardPendingImage)
	wizards.Post("/:id/images/move", h.Wizard.MoveImage)
	wizards.Delete("/:id/images/:imageId", h.Wizard.RemoveImage)
	wizards.Post("/:id/videos", h.Wizard.AddVideo)
	wizards.Delete("/:id/videos/:index", h.Wizard.RemoveVideo)
	wizards.Post("/:id/suggest", h.Wizard.Suggest)
	wizards.Post("/:id/save-draft", h.Wizard.SaveDraft)
	wizards.Post("/:id/publish", h.Wizard.Publish)
	wizards.Post("/:id/close", h.Wizard.RequestClose)
	wizards.Post("/:id/close/confirm", h.Wizard.ConfirmClose)
	wizards.Post("/:id/close/cancel", h.Wizard.CancelClose)

	drafts := v1.Group("/drafts")
	drafts.Get("/", h.Course.ListDrafts)
	drafts.Post("/", h.Course.CreateDraft)
	drafts.Get("/:id", h.Course.GetDraft)
	drafts.Patch("/:id", h.Course.PatchDraft)
	drafts.Delete("/:id", h.Course.DeleteDraft)
	drafts.Post("/:id/publish", h.Course.PublishDraft)

	courses := v1.Group("/courses")
	courses.Get("/", h.Course.ListCourses)
	courses.Post("/", h.Course.CreateCourse)
	courses.Get("/:id", h.Course.GetCourse)
	courses.Patch("/:id", h.Course.PatchCourse)
	courses.Delete("/:id", h.Course.DeleteCourse)
	courses.Put("/:id/status", h.Course.SetStatus)
	courses.Get("/:id/announcements", h.Course.ListAnnouncements)
	courses.Post("/:id/announcements", h.Course.PostAnnouncement)
	courses.Delete("/:id/announcements/:announcementId", h.Course.DeleteAnnouncement)
	courses.Get("/:id/attachments", h.Course.ListAttachments)
	courses.Post("/:id/attachments", h.Course.UploadAttachments)
	courses.Delete("/:id/attachments/:attachmentId", h.Course.DeleteAttachment)
	courses.Post("/:id/activity", h.Course.RecordActivity)

	v1.Get("/reviews", h.Dashboard.Reviews)
	v1.Get("/analytics/performance", h.Dashboard.Performance)
	v1.Get("/admin/dashboard", h.Dashboard.Admin)
	v1.Get("/student/dashboard", h.Dashboard.Student)
	v1.Get("/student/courses/:id/modules/:index", h.Dashboard.StudentMaterial)

	v1.Get("/schedule/duration", h.Dashboard.SessionDuration)
	v1.Post("/schedule/calendar", h.Dashboard.Calendar)

	v1.Post("/media/video-upload-url", h.Media.VideoUploadURL)
}
