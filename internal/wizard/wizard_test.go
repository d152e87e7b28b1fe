package wizard_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"
	"time"

	"course-service/internal/ids"
	"course-service/internal/media"
	"course-service/internal/model"
	"course-service/internal/suggest"
	"course-service/internal/wizard"

	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	drafts   map[string]model.CourseContent
	courses  map[string]model.CourseContent
	ids      *ids.SequenceGenerator
	failWith error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		drafts:  map[string]model.CourseContent{},
		courses: map[string]model.CourseContent{},
		ids:     ids.NewSequenceGenerator("rec"),
	}
}

func (s *fakeStore) CreateDraft(_ context.Context, c model.CourseContent) (*model.Draft, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	id := s.ids.NewID()
	s.drafts[id] = c
	return &model.Draft{ID: id, CourseContent: c}, nil
}

func (s *fakeStore) UpdateDraft(_ context.Context, id string, c model.CourseContent) (*model.Draft, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	if _, ok := s.drafts[id]; !ok {
		return nil, nil
	}
	s.drafts[id] = c
	return &model.Draft{ID: id, CourseContent: c}, nil
}

func (s *fakeStore) CreateCourse(_ context.Context, c model.CourseContent) (*model.PublishedCourse, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	id := s.ids.NewID()
	s.courses[id] = c
	return &model.PublishedCourse{ID: id, CourseContent: c, Status: model.StatusActive}, nil
}

func (s *fakeStore) UpdateCourse(_ context.Context, id string, c model.CourseContent) (*model.PublishedCourse, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	if _, ok := s.courses[id]; !ok {
		return nil, nil
	}
	s.courses[id] = c
	return &model.PublishedCourse{ID: id, CourseContent: c}, nil
}

func newWizard(store wizard.Store) *wizard.Wizard {
	return wizard.New("wiz-1", store, suggest.NewRandomProvider(1, 0), ids.NewSequenceGenerator("img"))
}

func general(title string) model.GeneralInfo {
	return model.GeneralInfo{
		Title:       title,
		Description: "About " + title,
		Level:       model.LevelBeginner,
		Language:    "English",
		Category:    "Development",
		Subcategory: "Web Development",
	}
}

func TestMissingFields(t *testing.T) {
	form := wizard.EmptyForm()
	require.Equal(t, []string{"title", "description", "level", "language", "category"}, wizard.MissingFields(wizard.StepGeneral, form))
	require.Equal(t, []string{"modules[].title"}, wizard.MissingFields(wizard.StepContent, form))
	require.Equal(t, []string{"sessionTypes"}, wizard.MissingFields(wizard.StepFormat, form))
	require.Empty(t, wizard.MissingFields(wizard.StepMedia, form))
	require.Empty(t, wizard.MissingFields(wizard.StepReview, form))

	form.Modules[0].Title = "   "
	require.False(t, wizard.StepComplete(wizard.StepContent, form))
	form.Modules = append(form.Modules, model.Module{Title: "M2"})
	require.True(t, wizard.StepComplete(wizard.StepContent, form))
}

func TestNext_GatedByStep(t *testing.T) {
	w := newWizard(newFakeStore())

	require.ErrorIs(t, w.Next(), wizard.ErrStepIncomplete)
	require.Equal(t, wizard.StepGeneral, w.Step())

	require.NoError(t, w.SetGeneral(general("Intro to X")))
	require.NoError(t, w.Next())
	require.Equal(t, wizard.StepContent, w.Step())

	err := w.Next()
	require.ErrorIs(t, err, wizard.ErrStepIncomplete)
	require.Contains(t, err.Error(), "modules[].title")

	require.NoError(t, w.SetModuleTitle(0, "M1"))
	require.NoError(t, w.Next())
	require.Equal(t, wizard.StepFormat, w.Step())

	require.ErrorIs(t, w.Next(), wizard.ErrStepIncomplete)
	_, err = w.ToggleSessionType(model.SessionClassroom)
	require.NoError(t, err)
	require.NoError(t, w.Next())
	require.NoError(t, w.Next())
	require.Equal(t, wizard.StepReview, w.Step())
	require.NoError(t, w.Next())
	require.Equal(t, wizard.StepReview, w.Step())
}

func TestJumpTo_SkipsValidation(t *testing.T) {
	w := newWizard(newFakeStore())

	require.NoError(t, w.JumpTo(wizard.StepMedia))
	require.Equal(t, wizard.StepMedia, w.Step())

	require.NoError(t, w.JumpTo(99))
	require.Equal(t, wizard.StepReview, w.Step())

	require.NoError(t, w.Prev())
	require.Equal(t, wizard.StepMedia, w.Step())

	require.NoError(t, w.JumpTo(0))
	require.NoError(t, w.Prev())
	require.Equal(t, wizard.StepGeneral, w.Step())
}

func TestSetGeneral_ClearsForeignSubcategory(t *testing.T) {
	w := newWizard(newFakeStore())

	info := general("Go")
	info.Category = "Business"
	require.NoError(t, w.SetGeneral(info))
	require.Empty(t, w.Form().Subcategory)
}

func TestRemoveModule_KeepsOneSlot(t *testing.T) {
	w := newWizard(newFakeStore())

	require.NoError(t, w.RemoveModule(0))
	form := w.Form()
	require.Len(t, form.Modules, 1)
	require.Empty(t, form.Modules[0].Title)

	require.ErrorIs(t, w.RemoveModule(3), wizard.ErrIndexOutOfRange)
}

func TestSubsections(t *testing.T) {
	w := newWizard(newFakeStore())

	idx, err := w.AddSubsection(0, model.Subsection{Title: "Setup", TimeMinutes: 15})
	require.NoError(t, err)
	require.Equal(t, 0, idx)
	require.Equal(t, model.SubsectionLecture, w.Form().Modules[0].Subsections[0].Type)

	require.NoError(t, w.UpdateSubsection(0, 0, model.Subsection{Title: "Quiz", Type: model.SubsectionQuiz}))
	require.Equal(t, "Quiz", w.Form().Modules[0].Subsections[0].Title)

	require.NoError(t, w.RemoveSubsection(0, 0))
	require.Empty(t, w.Form().Modules[0].Subsections)
	require.ErrorIs(t, w.RemoveSubsection(0, 0), wizard.ErrIndexOutOfRange)
}

func TestSessions(t *testing.T) {
	w := newWizard(newFakeStore())

	_, err := w.AddSession(model.SessionOneOnOne, model.Session{})
	require.ErrorIs(t, err, wizard.ErrSessionTypeNotSelected)
	_, err = w.ToggleSessionType("webinar")
	require.ErrorIs(t, err, wizard.ErrInvalidSessionType)

	selected, err := w.ToggleSessionType(model.SessionOneOnOne)
	require.NoError(t, err)
	require.True(t, selected)

	_, err = w.AddSession(model.SessionOneOnOne, model.Session{StartDate: "2026-03-01", StartTime: "09:00", EndTime: "10:30"})
	require.NoError(t, err)
	require.Equal(t, []string{"1 hr 30 min"}, w.State().SessionDurations[model.SessionOneOnOne])

	selected, err = w.ToggleSessionType(model.SessionOneOnOne)
	require.NoError(t, err)
	require.False(t, selected)
	require.Empty(t, w.Form().Sessions[model.SessionOneOnOne])
}

func blankPNG(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 40, 20))))
	return media.EncodeDataURL("image/png", buf.Bytes())
}

func TestImages_CropAndReorder(t *testing.T) {
	w := newWizard(newFakeStore())

	_, err := w.SkipCrop()
	require.ErrorIs(t, err, wizard.ErrNoPendingImage)

	first, err := w.AddImage(blankPNG(t))
	require.NoError(t, err)
	require.Equal(t, "img-1", first.ID)
	require.NotNil(t, w.State().PendingImage)
	require.Empty(t, w.Form().Images)

	cropped, err := w.ApplyCrop(model.CropRect{X: 0, Y: 0, Width: 10, Height: 10}, 20, 10)
	require.NoError(t, err)
	require.NotEmpty(t, cropped.CroppedPreview)
	require.Equal(t, cropped.Preview, first.Preview)
	require.Nil(t, w.State().PendingImage)

	_, err = w.AddImage(blankPNG(t))
	require.NoError(t, err)
	second, err := w.SkipCrop()
	require.NoError(t, err)
	require.Empty(t, second.CroppedPreview)

	require.NoError(t, w.MoveImage(1, 0))
	images := w.Form().Images
	require.Equal(t, []string{"img-2", "img-1"}, []string{images[0].ID, images[1].ID})

	removed, err := w.RemoveImage("img-1")
	require.NoError(t, err)
	require.True(t, removed)
	require.Len(t, w.Form().Images, 1)
}

func TestApplyCrop_BadRectKeepsPending(t *testing.T) {
	w := newWizard(newFakeStore())

	_, err := w.AddImage(blankPNG(t))
	require.NoError(t, err)
	_, err = w.ApplyCrop(model.CropRect{X: 100, Y: 100, Width: 5, Height: 5}, 0, 0)
	require.ErrorIs(t, err, media.ErrInvalidCrop)
	require.NotNil(t, w.State().PendingImage)
}

func TestVideos(t *testing.T) {
	w := newWizard(newFakeStore())

	require.NoError(t, w.AddVideo("intro.mp4"))
	require.NoError(t, w.AddVideo("outro.mp4"))
	require.NoError(t, w.RemoveVideo(0))
	require.Equal(t, []string{"outro.mp4"}, w.Form().Videos)
	require.ErrorIs(t, w.RemoveVideo(5), wizard.ErrIndexOutOfRange)
}

func TestRequestClose_EmptyClosesImmediately(t *testing.T) {
	w := newWizard(newFakeStore())

	closed, err := w.RequestClose()
	require.NoError(t, err)
	require.True(t, closed)
	require.Equal(t, wizard.PhaseClosed, w.Phase())
	require.ErrorIs(t, w.Next(), wizard.ErrWizardClosed)
}

func TestRequestClose_ConfirmAndCancel(t *testing.T) {
	w := newWizard(newFakeStore())
	require.NoError(t, w.SetGeneral(general("Go")))

	closed, err := w.RequestClose()
	require.NoError(t, err)
	require.False(t, closed)
	require.Equal(t, wizard.PhaseClosePending, w.Phase())

	require.NoError(t, w.CancelClose())
	require.Equal(t, wizard.PhaseOpen, w.Phase())
	require.Equal(t, "Go", w.Form().Title)
	require.ErrorIs(t, w.ConfirmClose(), wizard.ErrCloseNotPending)

	_, err = w.RequestClose()
	require.NoError(t, err)
	require.NoError(t, w.ConfirmClose())
	require.Equal(t, wizard.PhaseClosed, w.Phase())
	require.Empty(t, w.Form().Title)
}

func TestSaveAsDraft_CreateThenUpdate(t *testing.T) {
	store := newFakeStore()
	w := newWizard(store)
	require.NoError(t, w.SetGeneral(general("Go")))

	saved, err := w.SaveAsDraft(context.Background())
	require.NoError(t, err)
	require.Equal(t, "rec-1", saved.ID)
	require.Equal(t, wizard.PhaseClosed, w.Phase())

	w = newWizard(store)
	require.NoError(t, w.LoadDraft(*saved))
	require.Equal(t, "rec-1", w.EditingDraftID())
	require.NoError(t, w.SetModuleTitle(0, "Basics"))

	updated, err := w.SaveAsDraft(context.Background())
	require.NoError(t, err)
	require.Equal(t, "rec-1", updated.ID)
	require.Len(t, store.drafts, 1)
	require.Equal(t, "Basics", store.drafts["rec-1"].Modules[0].Title)
}

func TestSaveAsDraft_FailureKeepsWizardOpen(t *testing.T) {
	store := newFakeStore()
	store.failWith = errors.New("disk full")
	w := newWizard(store)
	require.NoError(t, w.SetGeneral(general("Go")))

	_, err := w.SaveAsDraft(context.Background())
	require.EqualError(t, err, "disk full")
	require.Equal(t, wizard.PhaseOpen, w.Phase())
	require.Equal(t, "Go", w.Form().Title)
}

func TestPublish_EditTargetGone(t *testing.T) {
	store := newFakeStore()
	w := newWizard(store)

	require.NoError(t, w.LoadPublished(model.PublishedCourse{ID: "missing"}))
	require.Empty(t, w.EditingDraftID())
	require.Len(t, w.Form().Modules, 1)

	_, err := w.Publish(context.Background())
	require.ErrorIs(t, err, wizard.ErrEditTargetMissing)
	require.Equal(t, wizard.PhaseOpen, w.Phase())
}

func TestPublish_New(t *testing.T) {
	store := newFakeStore()
	w := newWizard(store)
	require.NoError(t, w.SetGeneral(general("Go")))

	course, err := w.Publish(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Go", course.Title)
	require.Contains(t, store.courses, course.ID)
	require.Equal(t, wizard.PhaseClosed, w.Phase())
}

func TestSuggest_FillsField(t *testing.T) {
	w := newWizard(newFakeStore())
	require.NoError(t, w.SetGeneral(general("Kubernetes")))

	text, err := w.Suggest(context.Background(), suggest.FieldDescription, 0, 0)
	require.NoError(t, err)
	require.Equal(t, text, w.Form().Description)

	text, err = w.Suggest(context.Background(), suggest.FieldModuleTitle, 0, 0)
	require.NoError(t, err)
	require.Equal(t, text, w.Form().Modules[0].Title)

	_, err = w.Suggest(context.Background(), suggest.FieldSubsectionDescription, 0, 4)
	require.ErrorIs(t, err, wizard.ErrIndexOutOfRange)

	_, err = w.Suggest(context.Background(), "price", 0, 0)
	require.ErrorIs(t, err, suggest.ErrUnknownField)
}

func TestRegistry(t *testing.T) {
	r := wizard.NewRegistry(newFakeStore(), suggest.NewRandomProvider(1, 0), ids.NewSequenceGenerator("wiz"), ids.NewSequenceGenerator("img"))

	w := r.Open()
	require.Equal(t, "wiz-1", w.ID())

	got, err := r.Get("wiz-1")
	require.NoError(t, err)
	require.Same(t, w, got)

	_, err = w.RequestClose()
	require.NoError(t, err)
	_, err = r.Get("wiz-1")
	require.ErrorIs(t, err, wizard.ErrWizardNotFound)
	require.Zero(t, r.Len())
}

func TestRegistry_SweepDropsIdleWizards(t *testing.T) {
	r := wizard.NewRegistry(newFakeStore(), suggest.NewRandomProvider(1, 0), ids.NewSequenceGenerator("wiz"), ids.NewSequenceGenerator("img")).
		WithIdleTTL(time.Minute)

	first := r.Open()
	second := r.Open()
	require.Equal(t, 2, r.Len())

	require.Zero(t, r.Sweep(time.Now()))

	later := time.Now().Add(2 * time.Minute)
	require.Equal(t, 2, r.Sweep(later))
	require.Zero(t, r.Len())

	_, err := r.Get(first.ID())
	require.ErrorIs(t, err, wizard.ErrWizardNotFound)
	_, err = r.Get(second.ID())
	require.ErrorIs(t, err, wizard.ErrWizardNotFound)
}

func TestRegistry_GetKeepsWizardAlive(t *testing.T) {
	r := wizard.NewRegistry(newFakeStore(), suggest.NewRandomProvider(1, 0), ids.NewSequenceGenerator("wiz"), ids.NewSequenceGenerator("img")).
		WithIdleTTL(time.Hour)

	w := r.Open()
	require.Zero(t, r.Sweep(time.Now().Add(30*time.Minute)))

	_, err := r.Get(w.ID())
	require.NoError(t, err)
	require.Equal(t, 1, r.Len())
}
