package repository

import (
	"context"
	"time"

	"course-service/internal/ids"
	"course-service/internal/kv"
	"course-service/internal/model"
)

type CourseRepository interface {
	List(ctx context.Context) ([]model.PublishedCourse, error)
	FindByID(ctx context.Context, id string) (*model.PublishedCourse, error)
	Create(ctx context.Context, course model.PublishedCourse) (*model.PublishedCourse, error)
	Update(ctx context.Context, id string, patch any) (*model.PublishedCourse, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type kvCourseRepository struct {
	courses *collection[model.PublishedCourse]
}

func NewKVCourseRepository(store kv.Store, gen ids.Generator) CourseRepository {
	return &kvCourseRepository{courses: newCollection[model.PublishedCourse](store, PublishedKey, gen)}
}

func (r *kvCourseRepository) List(ctx context.Context) ([]model.PublishedCourse, error) {
	return r.courses.list(ctx)
}

func (r *kvCourseRepository) FindByID(ctx context.Context, id string) (*model.PublishedCourse, error) {
	return r.courses.find(ctx, id)
}

// Create stores course under a fresh id and stamps publishedAt and updatedAt.
// Every other
// field, analytics included, is taken from course as given.
func (r *kvCourseRepository) Create(ctx context.Context, course model.PublishedCourse) (*model.PublishedCourse, error) {
	return r.courses.create(ctx, func(id string, now time.Time) model.PublishedCourse {
		c := course
		c.ID = id
		c.CourseContent = course.CourseContent.Clone()
		c.PublishedAt = now
		c.UpdatedAt = now
		return c
	})
}

// Update refreshes updatedAt. publishedAt never moves.
func (r *kvCourseRepository) Update(ctx context.Context, id string, patch any) (*model.PublishedCourse, error) {
	return r.courses.update(ctx, id, patch, func(prev, next *model.PublishedCourse, now time.Time) {
		next.PublishedAt = prev.PublishedAt
		next.UpdatedAt = nextTimestamp(prev.UpdatedAt, now)
	})
}

func (r *kvCourseRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.courses.delete(ctx, id)
}
