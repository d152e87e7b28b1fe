package repository

import (
	"context"
	"time"

	"course-service/internal/ids"
	"course-service/internal/kv"
	"course-service/internal/model"
)

type AttachmentRepository interface {
	ListByCourse(ctx context.Context, courseID string) ([]model.Attachment, error)
	Create(ctx context.Context, attachment model.Attachment) (*model.Attachment, error)
	Delete(ctx context.Context, id string) (bool, error)
	CountByCourse(ctx context.Context, courseID string) (int, error)
}

type kvAttachmentRepository struct {
	attachments *collection[model.Attachment]
}

func NewKVAttachmentRepository(store kv.Store, gen ids.Generator) AttachmentRepository {
	return &kvAttachmentRepository{attachments: newCollection[model.Attachment](store, AttachmentsKey, gen)}
}

func (r *kvAttachmentRepository) ListByCourse(ctx context.Context, courseID string) ([]model.Attachment, error) {
	all, err := r.attachments.list(ctx)
	if err != nil {
		return nil, err
	}

	out := []model.Attachment{}
	for _, a := range all {
		if a.CourseID == courseID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *kvAttachmentRepository) Create(ctx context.Context, attachment model.Attachment) (*model.Attachment, error) {
	return r.attachments.create(ctx, func(id string, now time.Time) model.Attachment {
		a := attachment
		a.ID = id
		a.Timestamp = now
		return a
	})
}

func (r *kvAttachmentRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.attachments.delete(ctx, id)
}

func (r *kvAttachmentRepository) CountByCourse(ctx context.Context, courseID string) (int, error) {
	list, err := r.ListByCourse(ctx, courseID)
	if err != nil {
		return 0, err
	}
	return len(list), nil
}
