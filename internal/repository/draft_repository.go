package repository

import (
	"context"
	"time"

	"course-service/internal/ids"
	"course-service/internal/kv"
	"course-service/internal/model"
)

type DraftRepository interface {
	List(ctx context.Context) ([]model.Draft, error)
	FindByID(ctx context.Context, id string) (*model.Draft, error)
	Create(ctx context.Context, content model.CourseContent) (*model.Draft, error)
	Update(ctx context.Context, id string, patch any) (*model.Draft, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type kvDraftRepository struct {
	drafts *collection[model.Draft]
}

func NewKVDraftRepository(store kv.Store, gen ids.Generator) DraftRepository {
	return &kvDraftRepository{drafts: newCollection[model.Draft](store, DraftsKey, gen)}
}

func (r *kvDraftRepository) List(ctx context.Context) ([]model.Draft, error) {
	return r.drafts.list(ctx)
}

func (r *kvDraftRepository) FindByID(ctx context.Context, id string) (*model.Draft, error) {
	return r.drafts.find(ctx, id)
}

func (r *kvDraftRepository) Create(ctx context.Context, content model.CourseContent) (*model.Draft, error) {
	return r.drafts.create(ctx, func(id string, now time.Time) model.Draft {
		return model.Draft{
			ID:            id,
			CourseContent: content.Clone(),
			CreatedAt:     now,
			UpdatedAt:     now,
		}
	})
}

func (r *kvDraftRepository) Update(ctx context.Context, id string, patch any) (*model.Draft, error) {
	return r.drafts.update(ctx, id, patch, func(prev, next *model.Draft, now time.Time) {
		next.UpdatedAt = nextTimestamp(prev.UpdatedAt, now)
	})
}

func (r *kvDraftRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.drafts.delete(ctx, id)
}
