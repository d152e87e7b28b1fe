package repository

import (
	"context"
	"time"

	"course-service/internal/ids"
	"course-service/internal/kv"
	"course-service/internal/model"
)

type AnnouncementRepository interface {
	ListByCourse(ctx context.Context, courseID string) ([]model.Announcement, error)
	Create(ctx context.Context, courseID, message string) (*model.Announcement, error)
	Delete(ctx context.Context, id string) (bool, error)
	CountByCourse(ctx context.Context, courseID string) (int, error)
}

type kvAnnouncementRepository struct {
	announcements *collection[model.Announcement]
}

func NewKVAnnouncementRepository(store kv.Store, gen ids.Generator) AnnouncementRepository {
	return &kvAnnouncementRepository{announcements: newCollection[model.Announcement](store, AnnouncementsKey, gen)}
}

func (r *kvAnnouncementRepository) ListByCourse(ctx context.Context, courseID string) ([]model.Announcement, error) {
	all, err := r.announcements.list(ctx)
	if err != nil {
		return nil, err
	}

	out := []model.Announcement{}
	for _, a := range all {
		if a.CourseID == courseID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *kvAnnouncementRepository) Create(ctx context.Context, courseID, message string) (*model.Announcement, error) {
	return r.announcements.create(ctx, func(id string, now time.Time) model.Announcement {
		return model.Announcement{ID: id, CourseID: courseID, Message: message, Timestamp: now}
	})
}

func (r *kvAnnouncementRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.announcements.delete(ctx, id)
}

func (r *kvAnnouncementRepository) CountByCourse(ctx context.Context, courseID string) (int, error) {
	list, err := r.ListByCourse(ctx, courseID)
	if err != nil {
		return 0, err
	}
	return len(list), nil
}
