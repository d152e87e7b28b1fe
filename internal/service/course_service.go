package service

import (
	"context"
	"errors"
	"log/slog"

	"course-service/internal/events"
	"course-service/internal/model"
	"course-service/internal/observability"
	"course-service/internal/repository"
	"course-service/internal/wizard"
)

var (
	ErrDraftNotFound       = errors.New("draft not found")
	ErrCourseNotFound      = errors.New("course not found")
	ErrInvalidStatus       = errors.New("invalid course status")
	ErrModuleNotFound      = errors.New("module not found")
	ErrInvalidMaterialType = errors.New("invalid material type")
)

const DefaultCoursePrice = 49.99

// CourseService owns drafts and published courses. It is also the
// destination of the authoring wizard.
type CourseService interface {
	wizard.Store

	ListDrafts(ctx context.Context) ([]model.Draft, error)
	GetDraft(ctx context.Context, id string) (*model.Draft, error)
	PatchDraft(ctx context.Context, id string, patch []byte) (*model.Draft, error)
	DeleteDraft(ctx context.Context, id string) error
	PublishDraft(ctx context.Context, id string) (*model.PublishedCourse, error)

	ListCourses(ctx context.Context) ([]model.PublishedCourse, error)
	GetCourse(ctx context.Context, id string) (*model.PublishedCourse, error)
	PatchCourse(ctx context.Context, id string, patch []byte) (*model.PublishedCourse, error)
	DeleteCourse(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id string, status model.CourseStatus) (*model.PublishedCourse, error)

	StudentMaterial(ctx context.Context, courseID string, moduleIdx int, kind model.SubsectionType) (*Material, error)
}

type courseService struct {
	draftRepo        repository.DraftRepository
	courseRepo       repository.CourseRepository
	announcementRepo repository.AnnouncementRepository
	attachmentRepo   repository.AttachmentRepository
	publisher        events.EventPublisher
	defaultPrice     float64
}

func NewCourseService(
	draftRepo repository.DraftRepository,
	courseRepo repository.CourseRepository,
	announcementRepo repository.AnnouncementRepository,
	attachmentRepo repository.AttachmentRepository,
	pub events.EventPublisher,
	defaultPrice float64,
) CourseService {
	if defaultPrice <= 0 {
		defaultPrice = DefaultCoursePrice
	}
	return &courseService{
		draftRepo:        draftRepo,
		courseRepo:       courseRepo,
		announcementRepo: announcementRepo,
		attachmentRepo:   attachmentRepo,
		publisher:        pub,
		defaultPrice:     defaultPrice,
	}
}

func (s *courseService) CreateDraft(ctx context.Context, content model.CourseContent) (*model.Draft, error) {
	draft, err := s.draftRepo.Create(ctx, content)
	if err != nil {
		return nil, err
	}

	s.track(ctx, "draft_saved")
	go s.publisher.PublishDraftSaved(context.WithoutCancel(ctx), draft)

	return draft, nil
}

// UpdateDraft overwrites the authored fields of a draft and returns nil when
// the draft no longer exists.
func (s *courseService) UpdateDraft(ctx context.Context, id string, content model.CourseContent) (*model.Draft, error) {
	draft, err := s.draftRepo.Update(ctx, id, content)
	if err != nil || draft == nil {
		return nil, err
	}

	s.track(ctx, "draft_saved")
	go s.publisher.PublishDraftSaved(context.WithoutCancel(ctx), draft)

	return draft, nil
}

// CreateCourse publishes content as a new course. Analytics start at zero,
// the status is active and the price is the configured default.
func (s *courseService) CreateCourse(ctx context.Context, content model.CourseContent) (*model.PublishedCourse, error) {
	course, err := s.courseRepo.Create(ctx, model.PublishedCourse{
		CourseContent: content,
		Price:         s.defaultPrice,
		Status:        model.StatusActive,
	})
	if err != nil {
		return nil, err
	}

	s.track(ctx, "published")
	go s.publisher.PublishCoursePublished(context.WithoutCancel(ctx), course)

	return course, nil
}

// UpdateCourse overwrites the authored fields of a published course. Status,
// price and analytics are kept.
func (s *courseService) UpdateCourse(ctx context.Context, id string, content model.CourseContent) (*model.PublishedCourse, error) {
	course, err := s.courseRepo.Update(ctx, id, content)
	if err != nil || course == nil {
		return nil, err
	}

	s.track(ctx, "updated")
	go s.publisher.PublishCourseUpdated(context.WithoutCancel(ctx), course)

	return course, nil
}

func (s *courseService) ListDrafts(ctx context.Context) ([]model.Draft, error) {
	return s.draftRepo.List(ctx)
}

func (s *courseService) GetDraft(ctx context.Context, id string) (*model.Draft, error) {
	draft, err := s.draftRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, ErrDraftNotFound
	}
	return draft, nil
}

func (s *courseService) PatchDraft(ctx context.Context, id string, patch []byte) (*model.Draft, error) {
	draft, err := s.draftRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, ErrDraftNotFound
	}
	return draft, nil
}

func (s *courseService) DeleteDraft(ctx context.Context, id string) error {
	deleted, err := s.draftRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrDraftNotFound
	}
	return nil
}

// PublishDraft publishes a copy of the draft's content. The draft itself is
// kept.
func (s *courseService) PublishDraft(ctx context.Context, id string) (*model.PublishedCourse, error) {
	draft, err := s.GetDraft(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.CreateCourse(ctx, draft.CourseContent)
}

func (s *courseService) ListCourses(ctx context.Context) ([]model.PublishedCourse, error) {
	return s.courseRepo.List(ctx)
}

func (s *courseService) GetCourse(ctx context.Context, id string) (*model.PublishedCourse, error) {
	course, err := s.courseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}
	return course, nil
}

func (s *courseService) PatchCourse(ctx context.Context, id string, patch []byte) (*model.PublishedCourse, error) {
	course, err := s.courseRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}

	s.track(ctx, "updated")
	go s.publisher.PublishCourseUpdated(context.WithoutCancel(ctx), course)

	return course, nil
}

// DeleteCourse removes the course only. Its announcements and attachments
// are left in place and reported in the log.
func (s *courseService) DeleteCourse(ctx context.Context, id string) error {
	deleted, err := s.courseRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCourseNotFound
	}

	s.logOrphans(ctx, id)
	s.track(ctx, "deleted")
	go s.publisher.PublishCourseDeleted(context.WithoutCancel(ctx), id)

	return nil
}

func (s *courseService) logOrphans(ctx context.Context, courseID string) {
	announcements, err := s.announcementRepo.CountByCourse(ctx, courseID)
	if err != nil {
		slog.WarnContext(ctx, "Could not count orphaned announcements", slog.String("course_id", courseID), slog.String("error", err.Error()))
	}
	attachments, err := s.attachmentRepo.CountByCourse(ctx, courseID)
	if err != nil {
		slog.WarnContext(ctx, "Could not count orphaned attachments", slog.String("course_id", courseID), slog.String("error", err.Error()))
	}
	if announcements > 0 || attachments > 0 {
		slog.InfoContext(ctx, "Deleted course left orphaned records",
			slog.String("course_id", courseID),
			slog.Int("announcements", announcements),
			slog.Int("attachments", attachments),
		)
	}
}

// SetStatus overwrites the status. Any status may follow any other.
func (s *courseService) SetStatus(ctx context.Context, id string, status model.CourseStatus) (*model.PublishedCourse, error) {
	if !model.IsValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	prev, err := s.GetCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	course, err := s.courseRepo.Update(ctx, id, map[string]any{"status": status})
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}

	s.track(ctx, "status_changed")
	go s.publisher.PublishCourseStatusChanged(context.WithoutCancel(ctx), id, prev.Status, status)

	return course, nil
}

func (s *courseService) track(ctx context.Context, event string) {
	observability.LifecycleEvents.WithLabelValues(event).Inc()
	slog.DebugContext(ctx, "Course lifecycle event", slog.String("event", event))
}
