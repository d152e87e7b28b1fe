package api

import (
	"errors"

	"course-service/internal/model"
	"course-service/internal/service"
	"course-service/internal/suggest"
	"course-service/internal/wizard"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type WizardHandler struct {
	registry *wizard.Registry
	courses  service.CourseService
	validate *validator.Validate
}

func NewWizardHandler(registry *wizard.Registry, courses service.CourseService) *WizardHandler {
	return &WizardHandler{registry: registry, courses: courses, validate: newValidator()}
}

func (h *WizardHandler) parse(c *fiber.Ctx, req any) error {
	return parseBody(c, h.validate, req)
}

// withWizard resolves :id and runs fn. fn's error is mapped, and on success
// the wizard's state is returned.
func (h *WizardHandler) withWizard(c *fiber.Ctx, fn func(w *wizard.Wizard) error) error {
	w, err := h.registry.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if err := fn(w); err != nil {
		return respondError(c, err)
	}
	return c.JSON(w.State())
}

func (h *WizardHandler) Create(c *fiber.Ctx) error {
	var req CreateWizardRequest
	if len(c.Body()) > 0 {
		if err := h.parse(c, &req); err != nil {
			return err
		}
	}

	w := h.registry.Open()
	var err error
	switch {
	case req.DraftID != "":
		var d *model.Draft
		if d, err = h.courses.GetDraft(c.UserContext(), req.DraftID); err == nil {
			err = w.LoadDraft(*d)
		}
	case req.CourseID != "":
		var pc *model.PublishedCourse
		if pc, err = h.courses.GetCourse(c.UserContext(), req.CourseID); err == nil {
			err = w.LoadPublished(*pc)
		}
	}
	if err != nil {
		h.registry.Remove(w.ID())
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(w.State())
}

func (h *WizardHandler) Get(c *fiber.Ctx) error {
	return h.withWizard(c, func(*wizard.Wizard) error { return nil })
}

func (h *WizardHandler) Next(c *fiber.Ctx) error {
	w, err := h.registry.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if err := w.Next(); err != nil {
		if errors.Is(err, wizard.ErrStepIncomplete) {
			st := w.State()
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":   wizard.ErrStepIncomplete.Error(),
				"step":    st.Step,
				"missing": st.Missing,
			})
		}
		return respondError(c, err)
	}
	return c.JSON(w.State())
}

func (h *WizardHandler) Prev(c *fiber.Ctx) error {
	return h.withWizard(c, func(w *wizard.Wizard) error { return w.Prev() })
}

func (h *WizardHandler) JumpTo(c *fiber.Ctx) error {
	var req StepRequest
	if err := h.parse(c, &req); err != nil {
		return err
	}
	return h.withWizard(c, func(w *wizard.Wizard) error { return w.JumpTo(wizard.Step(req.Step)) })
}

func (h *WizardHandler) SetGeneral(c *fiber.Ctx) error {
	var req GeneralInfoRequest
	if err := h.parse(c, &req); err != nil {
		return err
	}
	if field := req.invalidGeneralField(); field != "" {
		return badRequest(c, "Unknown "+field)
	}
	return h.withWizard(c, func(w *wizard.Wizard) error { return w.SetGeneral(req.toModel()) })
}

func (h *WizardHandler) AddModule(c *fiber.Ctx) error {
	var req ModuleRequest
	if len(c.Body()) > 0 {
		if err := h.parse(c, &req); err != nil {
			return err
		}
	}
	return h.withWizard(c, func(w *wizard.Wizard) error {
		_, err := w.AddModule(req.Title)
		return err
	})
}

func (h *WizardHandler) SetModuleTitle(c *fiber.Ctx) error {
	idx, err := intParam(c, "module")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req ModuleRequest
	if err := h.parse(c, &req); err != nil {
		return err
	}
	return h.withWizard(c, func(w *wizard.Wizard) error { return w.SetModuleTitle(idx, req.Title) })
}

func (h *WizardHandler) RemoveModule(c *fiber.Ctx) error {
	idx, err := intParam(c, "module")
	if err != nil {
		return badRequest(c, err.Error())
	}
	return h.withWizard(c, func(w *wizard.Wizard) error { return w.RemoveModule(idx) })
}

func (h *WizardHandler) AddSubsection(c *fiber.Ctx) error {
	idx, err := intParam(c, "module")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req SubsectionRequest
	if err := h.parse(c, &req); err != nil {
		return err
	}
	return h.withWizard(c, func(w *wizard.Wizard) error {
		_, err := w.AddSubsection(idx, req.toModel())
		return err
	})
}

func (h *WizardHandler) UpdateSubsection(c *fiber.Ctx) error {
	idx, err := intParam(c, "module")
	if err != nil {
		return badRequest(c, err.Error())
	}
	sub, err := intParam(c, "sub")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req SubsectionRequest
	if err := h.parse(c, &req); err != nil {
		return err
	}
	return h.withWizard(c, func(w *wizard.Wizard) error { return w.UpdateSubsection(idx, sub, req.toModel()) })
}

func (h *WizardHandler) RemoveSubsection(c *fiber.Ctx) error {
	idx, err := intParam(c, "module")
	if err != nil {
		return badRequest(c, err.Error())
	}
	sub, err := intParam(c, "sub")
	if err != nil {
		return badRequest(c, err.Error())
	}
	return h.withWizard(c, func(w *wizard.Wizard) error { return w.RemoveSubsection(idx, sub) })
}

func (h *WizardHandler) ToggleSessionType(c *fiber.Ctx) error {
	t := model.SessionType(c.Params("type"))
	return h.withWizard(c, func(w *wizard.Wizard) error {
		_, err := w.ToggleSessionType(t)
		return err
	})
}

func (h *WizardHandler) AddSession(c *fiber.Ctx) error {
	var req SessionRequest
	if err := h.parse(c, &req); err != nil {
		return err
	}
	t := model.SessionType(c.Params("type"))
	return h.withWizard(c, func(w *wizard.Wizard) error {
		_, err := w.AddSession(t, req.toModel())
		return err
	})
}

func (h *WizardHandler) UpdateSession(c *fiber.Ctx) error {
	idx, err := intParam(c, "index")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req SessionRequest
	if err := h.parse(c, &req); err != nil {
		return err
	}
	t := model.SessionType(c.Params("type"))
	return h.withWizard(c, func(w *wizard.Wizard) error { return w.UpdateSession(t, idx, req.toModel()) })
}

func (h *WizardHandler) RemoveSession(c *fiber.Ctx) error {
	idx, err := intParam(c, "index")
	if err != nil {
		return badRequest(c, err.Error())
	}
	t := model.SessionType(c.Params("type"))
	return h.withWizard(c, func(w *wizard.Wizard) error { return w.RemoveSession(t, idx) })
}

func (h *WizardHandler) AddImage(c *fiber.Ctx) error {
	var req ImageRequest
	if err := h.parse(c, &req); err != nil {
		return err
	}
	return h.withWizard(c, func(w *wizard.Wizard) error {
		_, err := w.AddImage(req.Preview)
		return err
	})
}

func (h *WizardHandler) ApplyCrop(c *fiber.Ctx) error {
	var req CropRequest
	if err := h.parse(c, &req); err != nil {
		return err
	}
	return h.withWizard(c, func(w *wizard.Wizard) error {
		_, err := w.ApplyCrop(req.Rect, req.DisplayWidth, req.DisplayHeight)
		return err
	})
}

func (h *WizardHandler) SkipCrop(c *fiber.Ctx) error {
	return h.withWizard(c, func(w *wizard.Wizard) error {
		_, err := w.SkipCrop()
		return err
	})
}

func (h *WizardHandler) DiscardPendingImage(c *fiber.Ctx) error {
	return h.withWizard(c, func(w *wizard.Wizard) error { return w.DiscardPendingImage() })
}

func (h *WizardHandler) MoveImage(c *fiber.Ctx) error {
	var req MoveRequest
	if err := h.parse(c, &req); err != nil {
		return err
	}
	return h.withWizard(c, func(w *wizard.Wizard) error { return w.MoveImage(*req.From, *req.To) })
}

func (h *WizardHandler) RemoveImage(c *fiber.Ctx) error {
	imageID := c.Params("imageId")
	return h.withWizard(c, func(w *wizard.Wizard) error {
		_, err := w.RemoveImage(imageID)
		return err
	})
}

func (h *WizardHandler) AddVideo(c *fiber.Ctx) error {
	var req VideoRequest
	if err := h.parse(c, &req); err != nil {
		return err
	}
	return h.withWizard(c, func(w *wizard.Wizard) error { return w.AddVideo(req.Ref) })
}

func (h *WizardHandler) RemoveVideo(c *fiber.Ctx) error {
	idx, err := intParam(c, "index")
	if err != nil {
		return badRequest(c, err.Error())
	}
	return h.withWizard(c, func(w *wizard.Wizard) error { return w.RemoveVideo(idx) })
}

func (h *WizardHandler) Suggest(c *fiber.Ctx) error {
	var req SuggestRequest
	if err := h.parse(c, &req); err != nil {
		return err
	}

	w, err := h.registry.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	text, err := w.Suggest(c.UserContext(), suggest.Field(req.Field), req.Module, req.Subsection)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"field": req.Field, "suggestion": text, "state": w.State()})
}

func (h *WizardHandler) SaveDraft(c *fiber.Ctx) error {
	w, err := h.registry.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	draft, err := w.SaveAsDraft(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	h.registry.Remove(w.ID())
	return c.Status(fiber.StatusCreated).JSON(draft)
}

func (h *WizardHandler) Publish(c *fiber.Ctx) error {
	w, err := h.registry.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	course, err := w.Publish(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	h.registry.Remove(w.ID())
	return c.Status(fiber.StatusCreated).JSON(course)
}

func (h *WizardHandler) RequestClose(c *fiber.Ctx) error {
	w, err := h.registry.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	closed, err := w.RequestClose()
	if err != nil {
		return respondError(c, err)
	}
	if closed {
		h.registry.Remove(w.ID())
	}
	return c.JSON(fiber.Map{"closed": closed, "phase": w.Phase()})
}

func (h *WizardHandler) ConfirmClose(c *fiber.Ctx) error {
	w, err := h.registry.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if err := w.ConfirmClose(); err != nil {
		return respondError(c, err)
	}
	h.registry.Remove(w.ID())
	return c.JSON(fiber.Map{"closed": true, "phase": w.Phase()})
}

func (h *WizardHandler) CancelClose(c *fiber.Ctx) error {
	return h.withWizard(c, func(w *wizard.Wizard) error { return w.CancelClose() })
}
