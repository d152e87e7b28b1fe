package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"course-service/internal/media"
	"course-service/internal/model"
	"course-service/internal/observability"
	"course-service/internal/repository"
)

var (
	ErrEmptyAnnouncement    = errors.New("announcement message is empty")
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrAttachmentNotFound   = errors.New("attachment not found")
	ErrInvalidActivity      = errors.New("activity kind must be click or booking")
)

type AnnouncementService interface {
	Post(ctx context.Context, courseID, message string) (*model.Announcement, error)
	List(ctx context.Context, courseID string) ([]model.Announcement, error)
	Delete(ctx context.Context, courseID, id string) error
}

type announcementService struct {
	courses          CourseService
	announcementRepo repository.AnnouncementRepository
}

func NewAnnouncementService(courses CourseService, repo repository.AnnouncementRepository) AnnouncementService {
	return &announcementService{courses: courses, announcementRepo: repo}
}

// Post trims message and refuses it when nothing is left.
func (s *announcementService) Post(ctx context.Context, courseID, message string) (*model.Announcement, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyAnnouncement
	}
	if _, err := s.courses.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}
	return s.announcementRepo.Create(ctx, courseID, message)
}

func (s *announcementService) List(ctx context.Context, courseID string) ([]model.Announcement, error) {
	return s.announcementRepo.ListByCourse(ctx, courseID)
}

func (s *announcementService) Delete(ctx context.Context, courseID, id string) error {
	if err := ownedBy(ctx, s.announcementRepo.ListByCourse, courseID, id); err != nil {
		if errors.Is(err, errNotOwned) {
			return ErrAnnouncementNotFound
		}
		return err
	}
	deleted, err := s.announcementRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrAnnouncementNotFound
	}
	return nil
}

// UploadResult reports each file of a batch: stored ones and refused ones.
type UploadResult struct {
	Stored   []model.Attachment `json:"stored"`
	Rejected []media.Rejection  `json:"rejected,omitempty"`
}

type AttachmentService interface {
	Upload(ctx context.Context, courseID string, uploads []media.Upload) (*UploadResult, error)
	List(ctx context.Context, courseID string) ([]model.Attachment, error)
	Delete(ctx context.Context, courseID, id string) error
}

type attachmentService struct {
	courses        CourseService
	attachmentRepo repository.AttachmentRepository
	maxBytes       int64
}

func NewAttachmentService(courses CourseService, repo repository.AttachmentRepository, maxBytes int64) AttachmentService {
	if maxBytes <= 0 {
		maxBytes = media.DefaultMaxAttachmentBytes
	}
	return &attachmentService{courses: courses, attachmentRepo: repo, maxBytes: maxBytes}
}

// Upload admits every file on its own. Oversized files are reported back and
// never stored; the rest of the batch still goes through.
func (s *attachmentService) Upload(ctx context.Context, courseID string, uploads []media.Upload) (*UploadResult, error) {
	if _, err := s.courses.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}

	admitted, rejected := media.AdmitBatch(courseID, uploads, s.maxBytes)
	for _, r := range rejected {
		observability.AttachmentRejections.Inc()
		slog.WarnContext(ctx, "Attachment rejected", slog.String("course_id", courseID), slog.String("name", r.Name), slog.String("reason", r.Reason))
	}

	result := &UploadResult{Stored: []model.Attachment{}, Rejected: rejected}
	for _, a := range admitted {
		stored, err := s.attachmentRepo.Create(ctx, a)
		if err != nil {
			return nil, fmt.Errorf("store attachment %s: %w", a.Name, err)
		}
		result.Stored = append(result.Stored, *stored)
	}
	return result, nil
}

func (s *attachmentService) List(ctx context.Context, courseID string) ([]model.Attachment, error) {
	return s.attachmentRepo.ListByCourse(ctx, courseID)
}

func (s *attachmentService) Delete(ctx context.Context, courseID, id string) error {
	if err := ownedBy(ctx, s.attachmentRepo.ListByCourse, courseID, id); err != nil {
		if errors.Is(err, errNotOwned) {
			return ErrAttachmentNotFound
		}
		return err
	}
	deleted, err := s.attachmentRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrAttachmentNotFound
	}
	return nil
}

var errNotOwned = errors.New("record does not belong to course")

func ownedBy[T interface{ GetID() string }](ctx context.Context, list func(context.Context, string) ([]T, error), courseID, id string) error {
	items, err := list(ctx, courseID)
	if err != nil {
		return err
	}
	for _, item := range items {
		if item.GetID() == id {
			return nil
		}
	}
	return errNotOwned
}

type ActivityService interface {
	Record(ctx context.Context, courseID string, kind model.ActivityKind) error
}

type activityService struct {
	courseRepo repository.CourseRepository
	now        func() time.Time
}

func NewActivityService(courseRepo repository.CourseRepository) ActivityService {
	return &activityService{courseRepo: courseRepo, now: time.Now}
}

// NewActivityServiceWithClock is NewActivityService with a fixed clock.
func NewActivityServiceWithClock(courseRepo repository.CourseRepository, now func() time.Time) ActivityService {
	return &activityService{courseRepo: courseRepo, now: now}
}

// Record counts a click or a booking against today's metric point. A booking
// is also an enrollment. The read and the write are not atomic.
func (s *activityService) Record(ctx context.Context, courseID string, kind model.ActivityKind) error {
	if !model.IsValidActivityKind(kind) {
		return ErrInvalidActivity
	}

	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		return err
	}
	if course == nil {
		return ErrCourseNotFound
	}

	today := s.now().UTC().Format("2006-01-02")
	metrics := append([]model.MetricPoint(nil), course.Metrics...)
	idx := -1
	for i := range metrics {
		if metrics[i].Date == today {
			idx = i
			break
		}
	}
	if idx < 0 {
		metrics = append(metrics, model.MetricPoint{Date: today})
		idx = len(metrics) - 1
	}

	patch := map[string]any{}
	switch kind {
	case model.ActivityClick:
		metrics[idx].Clicks++
		patch["clicks"] = course.Clicks + 1
	case model.ActivityBooking:
		metrics[idx].Bookings++
		patch["enrollments"] = course.Enrollments + 1
	}
	patch["metrics"] = metrics

	updated, err := s.courseRepo.Update(ctx, courseID, patch)
	if err != nil {
		return err
	}
	if updated == nil {
		return ErrCourseNotFound
	}
	return nil
}
