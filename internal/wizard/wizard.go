// Package wizard is the five-step course authoring flow. A Wizard owns one
// mutable course aggregate; each step edits its own slice of it and Next is
// gated by that step's validator while JumpTo is not.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"course-service/internal/ids"
	"course-service/internal/model"
	"course-service/internal/schedule"
	"course-service/internal/suggest"
)

var (
	ErrStepIncomplete         = errors.New("current step is incomplete")
	ErrWizardClosed           = errors.New("wizard is closed")
	ErrCloseNotPending        = errors.New("no close confirmation is pending")
	ErrIndexOutOfRange        = errors.New("index out of range")
	ErrInvalidSessionType     = errors.New("unknown session type")
	ErrSessionTypeNotSelected = errors.New("session type is not selected")
	ErrNoPendingImage         = errors.New("no image is waiting to be cropped")
	ErrEditTargetMissing      = errors.New("the record being edited no longer exists")
)

type Phase string

const (
	PhaseOpen         Phase = "open"
	PhaseClosePending Phase = "close_pending"
	PhaseClosed       Phase = "closed"
)

// Store is where a finished aggregate goes. Create methods start a new record,
// Update methods overwrite the authored fields of an existing one and return
// nil when it is gone.
type Store interface {
	CreateDraft(ctx context.Context, content model.CourseContent) (*model.Draft, error)
	UpdateDraft(ctx context.Context, id string, content model.CourseContent) (*model.Draft, error)
	CreateCourse(ctx context.Context, content model.CourseContent) (*model.PublishedCourse, error)
	UpdateCourse(ctx context.Context, id string, content model.CourseContent) (*model.PublishedCourse, error)
}

type Wizard struct {
	mu sync.Mutex

	id                 string
	step               Step
	form               model.CourseContent
	editingDraftID     string
	editingPublishedID string
	phase              Phase
	pendingImage       *model.Image

	store     Store
	suggester suggest.Provider
	imageIDs  ids.Generator
}

func New(id string, store Store, suggester suggest.Provider, imageIDs ids.Generator) *Wizard {
	return &Wizard{
		id:        id,
		step:      FirstStep,
		form:      EmptyForm(),
		phase:     PhaseOpen,
		store:     store,
		suggester: suggester,
		imageIDs:  imageIDs,
	}
}

func (w *Wizard) ID() string { return w.id }

// State is a read-only snapshot of the wizard.
type State struct {
	ID                 string                         `json:"id"`
	Step               Step                           `json:"step"`
	StepName           string                         `json:"stepName"`
	Phase              Phase                          `json:"phase"`
	EditingDraftID     string                         `json:"editingDraftId,omitempty"`
	EditingPublishedID string                         `json:"editingPublishedId,omitempty"`
	Form               model.CourseContent            `json:"form"`
	CanAdvance         bool                           `json:"canAdvance"`
	Missing            []string                       `json:"missing,omitempty"`
	PendingImage       *model.Image                   `json:"pendingImage,omitempty"`
	SessionDurations   map[model.SessionType][]string `json:"sessionDurations,omitempty"`
}

func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stateLocked()
}

func (w *Wizard) stateLocked() State {
	missing := MissingFields(w.step, w.form)
	st := State{
		ID:                 w.id,
		Step:               w.step,
		StepName:           w.step.String(),
		Phase:              w.phase,
		EditingDraftID:     w.editingDraftID,
		EditingPublishedID: w.editingPublishedID,
		Form:               w.form.Clone(),
		CanAdvance:         len(missing) == 0,
		Missing:            missing,
	}
	if w.pendingImage != nil {
		img := *w.pendingImage
		st.PendingImage = &img
	}
	if len(w.form.Sessions) > 0 {
		st.SessionDurations = make(map[model.SessionType][]string, len(w.form.Sessions))
		for t, list := range w.form.Sessions {
			for _, s := range list {
				st.SessionDurations[t] = append(st.SessionDurations[t], schedule.Duration(s.StartTime, s.EndTime))
			}
		}
	}
	return st
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

func (w *Wizard) Phase() Phase {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.phase
}

func (w *Wizard) Form() model.CourseContent {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.form.Clone()
}

// edit runs fn with the lock held, refusing once the wizard is closed.
func (w *Wizard) edit(fn func() error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.phase == PhaseClosed {
		return ErrWizardClosed
	}
	return fn()
}

// CanAdvance reports whether the current step's gate passes.
func (w *Wizard) CanAdvance() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return StepComplete(w.step, w.form)
}

func (w *Wizard) Next() error {
	return w.edit(func() error {
		if missing := MissingFields(w.step, w.form); len(missing) > 0 {
			return fmt.Errorf("%w: %s needs %s", ErrStepIncomplete, w.step, strings.Join(missing, ", "))
		}
		if w.step < LastStep {
			w.step++
		}
		return nil
	})
}

func (w *Wizard) Prev() error {
	return w.edit(func() error {
		if w.step > FirstStep {
			w.step--
		}
		return nil
	})
}

// JumpTo selects a step directly without running any validator.
func (w *Wizard) JumpTo(step Step) error {
	return w.edit(func() error {
		switch {
		case step < FirstStep:
			step = FirstStep
		case step > LastStep:
			step = LastStep
		}
		w.step = step
		return nil
	})
}

// LoadDraft starts editing an existing draft; saving will update it.
func (w *Wizard) LoadDraft(d model.Draft) error {
	return w.edit(func() error {
		w.load(d.CourseContent)
		w.editingDraftID = d.ID
		w.editingPublishedID = ""
		return nil
	})
}

// LoadPublished starts editing a published course; publishing will update it.
func (w *Wizard) LoadPublished(c model.PublishedCourse) error {
	return w.edit(func() error {
		w.load(c.CourseContent)
		w.editingPublishedID = c.ID
		w.editingDraftID = ""
		return nil
	})
}

func (w *Wizard) load(content model.CourseContent) {
	form := content.Clone()
	if len(form.Modules) == 0 {
		form.Modules = []model.Module{{Subsections: []model.Subsection{}}}
	}
	if form.Sessions == nil {
		form.Sessions = map[model.SessionType][]model.Session{}
	}
	w.form = form
	w.step = FirstStep
	w.pendingImage = nil
}

func (w *Wizard) EditingDraftID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.editingDraftID
}

func (w *Wizard) EditingPublishedID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.editingPublishedID
}

// SaveAsDraft persists the aggregate as a new draft, or over the draft being
// edited. Success closes and resets the wizard; failure leaves it untouched.
func (w *Wizard) SaveAsDraft(ctx context.Context) (*model.Draft, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.phase == PhaseClosed {
		return nil, ErrWizardClosed
	}

	snapshot := w.form.Clone()
	var (
		saved *model.Draft
		err   error
	)
	if w.editingDraftID != "" {
		saved, err = w.store.UpdateDraft(ctx, w.editingDraftID, snapshot)
		if err == nil && saved == nil {
			err = ErrEditTargetMissing
		}
	} else {
		saved, err = w.store.CreateDraft(ctx, snapshot)
	}
	if err != nil {
		slog.ErrorContext(ctx, "Failed to save draft", slog.String("wizard_id", w.id), slog.String("error", err.Error()))
		return nil, err
	}

	w.closeLocked()
	return saved, nil
}

// Publish persists the aggregate as a new published course, or over the one
// being edited. Success closes and resets the wizard; failure leaves it untouched.
func (w *Wizard) Publish(ctx context.Context) (*model.PublishedCourse, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.phase == PhaseClosed {
		return nil, ErrWizardClosed
	}

	snapshot := w.form.Clone()
	var (
		published *model.PublishedCourse
		err       error
	)
	if w.editingPublishedID != "" {
		published, err = w.store.UpdateCourse(ctx, w.editingPublishedID, snapshot)
		if err == nil && published == nil {
			err = ErrEditTargetMissing
		}
	} else {
		published, err = w.store.CreateCourse(ctx, snapshot)
	}
	if err != nil {
		slog.ErrorContext(ctx, "Failed to publish course", slog.String("wizard_id", w.id), slog.String("error", err.Error()))
		return nil, err
	}

	w.closeLocked()
	return published, nil
}

// RequestClose closes right away when nothing has been entered. Otherwise it
// asks for confirmation and reports false.
func (w *Wizard) RequestClose() (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.phase {
	case PhaseClosed:
		return true, nil
	case PhaseClosePending:
		return false, nil
	}
	if IsEmpty(w.form) {
		w.closeLocked()
		return true, nil
	}
	w.phase = PhaseClosePending
	return false, nil
}

func (w *Wizard) ConfirmClose() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.phase != PhaseClosePending {
		return ErrCloseNotPending
	}
	w.closeLocked()
	return nil
}

func (w *Wizard) CancelClose() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.phase != PhaseClosePending {
		return ErrCloseNotPending
	}
	w.phase = PhaseOpen
	return nil
}

func (w *Wizard) closeLocked() {
	w.form = EmptyForm()
	w.step = FirstStep
	w.editingDraftID = ""
	w.editingPublishedID = ""
	w.pendingImage = nil
	w.phase = PhaseClosed
}

// Suggest fills field with a canned suggestion based on the current title.
// moduleIdx and subIdx address the target for module titles and subsection
// descriptions and are ignored otherwise. The lock is not held while the
// provider waits, so the wizard stays usable; a result that arrives after
// the wizard closed is dropped.
func (w *Wizard) Suggest(ctx context.Context, field suggest.Field, moduleIdx, subIdx int) (string, error) {
	w.mu.Lock()
	if w.phase == PhaseClosed {
		w.mu.Unlock()
		return "", ErrWizardClosed
	}
	title := w.form.Title
	w.mu.Unlock()

	text, err := w.suggester.Suggest(ctx, field, title)
	if err != nil {
		return "", err
	}

	err = w.edit(func() error {
		switch field {
		case suggest.FieldTitle:
			w.form.Title = text
		case suggest.FieldSubtitle:
			w.form.Subtitle = text
		case suggest.FieldDescription:
			w.form.Description = text
		case suggest.FieldObjectives:
			w.form.Objectives = text
		case suggest.FieldRequirements:
			w.form.Requirements = text
		case suggest.FieldModuleTitle:
			if !inRange(moduleIdx, len(w.form.Modules)) {
				return ErrIndexOutOfRange
			}
			w.form.Modules[moduleIdx].Title = text
		case suggest.FieldSubsectionDescription:
			if !inRange(moduleIdx, len(w.form.Modules)) || !inRange(subIdx, len(w.form.Modules[moduleIdx].Subsections)) {
				return ErrIndexOutOfRange
			}
			w.form.Modules[moduleIdx].Subsections[subIdx].Description = text
		default:
			return suggest.ErrUnknownField
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

func inRange(i, n int) bool {
	return i >= 0 && i < n
}
