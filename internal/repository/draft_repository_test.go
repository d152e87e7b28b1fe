package repository_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"course-service/internal/ids"
	"course-service/internal/kv"
	"course-service/internal/model"
	repo "course-service/internal/repository"

	"github.com/stretchr/testify/require"
)

func sampleContent() model.CourseContent {
	return model.CourseContent{
		GeneralInfo: model.GeneralInfo{
			Title:       "Intro to X",
			Description: "Learn X from scratch",
			Level:       model.LevelBeginner,
			Language:    "English",
			Category:    "Development",
			Subcategory: "Web Development",
			Duration:    model.Duration{Hours: 2, Minutes: 30},
		},
		Modules: []model.Module{
			{Title: "M1", Subsections: []model.Subsection{{Title: "S1", Type: model.SubsectionLecture, TimeMinutes: 15}}},
		},
		Format: model.Format{
			SessionTypes: []model.SessionType{model.SessionClassroom},
			Sessions: map[model.SessionType][]model.Session{
				model.SessionClassroom: {{StartDate: "2026-01-05", StartTime: "09:00", EndTime: "10:30", Days: []string{"Monday"}, Recurring: true}},
			},
		},
		Media: model.Media{
			Images: []model.Image{{ID: "img-1", Preview: "data:image/png;base64,AAAA"}},
			Videos: []string{"videos/intro.mp4"},
		},
	}
}

type failingStore struct {
	err error
}

func (s failingStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, s.err }
func (s failingStore) Set(context.Context, string, []byte) error         { return s.err }

func TestKVDraftRepository_CreateThenList(t *testing.T) {
	ctx := context.Background()
	r := repo.NewKVDraftRepository(kv.NewMemoryStore(), ids.NewSequenceGenerator("draft"))

	content := sampleContent()
	created, err := r.Create(ctx, content)
	require.NoError(t, err)
	require.Equal(t, "draft-1", created.ID)
	require.False(t, created.CreatedAt.IsZero())
	require.True(t, created.CreatedAt.Equal(created.UpdatedAt))

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, *created, list[0])
	require.Equal(t, content, list[0].CourseContent)
}

func TestKVDraftRepository_ListMissingIsEmpty(t *testing.T) {
	r := repo.NewKVDraftRepository(kv.NewMemoryStore(), ids.NewUUIDGenerator())

	list, err := r.List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)
}

func TestKVDraftRepository_ListCorruptIsEmpty(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	require.NoError(t, store.Set(ctx, repo.DraftsKey, []byte(`{not json`)))

	r := repo.NewKVDraftRepository(store, ids.NewUUIDGenerator())
	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)

	// a create after corruption starts a fresh collection
	_, err = r.Create(ctx, sampleContent())
	require.NoError(t, err)
	list, err = r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestKVDraftRepository_BackendErrorPropagates(t *testing.T) {
	r := repo.NewKVDraftRepository(failingStore{err: errors.New("disk gone")}, ids.NewUUIDGenerator())

	_, err := r.List(context.Background())
	require.Error(t, err)

	_, err = r.Create(context.Background(), sampleContent())
	require.Error(t, err)
}

func TestKVDraftRepository_UpdateMergesAndRefreshesUpdatedAt(t *testing.T) {
	ctx := context.Background()
	r := repo.NewKVDraftRepository(kv.NewMemoryStore(), ids.NewSequenceGenerator("draft"))

	created, err := r.Create(ctx, sampleContent())
	require.NoError(t, err)

	updated, err := r.Update(ctx, created.ID, map[string]any{"title": "Intro to Y"})
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.Equal(t, "Intro to Y", updated.Title)
	require.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	require.True(t, updated.CreatedAt.Equal(created.CreatedAt))

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	want := created.CourseContent
	want.Title = "Intro to Y"
	require.Equal(t, want, list[0].CourseContent)
	require.Equal(t, created.ID, list[0].ID)
}

func TestKVDraftRepository_UpdateRawPatchKeepsID(t *testing.T) {
	ctx := context.Background()
	r := repo.NewKVDraftRepository(kv.NewMemoryStore(), ids.NewSequenceGenerator("draft"))

	created, err := r.Create(ctx, sampleContent())
	require.NoError(t, err)

	updated, err := r.Update(ctx, created.ID, json.RawMessage(`{"id":"hijack","level":"Expert"}`))
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, model.LevelExpert, updated.Level)
}

func TestKVDraftRepository_UpdateRejectsNonObjectPatch(t *testing.T) {
	ctx := context.Background()
	r := repo.NewKVDraftRepository(kv.NewMemoryStore(), ids.NewSequenceGenerator("draft"))

	created, err := r.Create(ctx, sampleContent())
	require.NoError(t, err)

	_, err = r.Update(ctx, created.ID, json.RawMessage(`[1,2]`))
	require.ErrorIs(t, err, repo.ErrPatchNotObject)
}

func TestKVDraftRepository_UpdateRejectsMistypedField(t *testing.T) {
	ctx := context.Background()
	r := repo.NewKVDraftRepository(kv.NewMemoryStore(), ids.NewSequenceGenerator("draft"))

	created, err := r.Create(ctx, sampleContent())
	require.NoError(t, err)

	_, err = r.Update(ctx, created.ID, json.RawMessage(`{"title":5}`))
	require.ErrorIs(t, err, repo.ErrInvalidPatch)

	got, err := r.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Intro to X", got.Title)
}

func TestKVDraftRepository_UpdateMissing(t *testing.T) {
	r := repo.NewKVDraftRepository(kv.NewMemoryStore(), ids.NewUUIDGenerator())

	updated, err := r.Update(context.Background(), "nope", map[string]any{"title": "x"})
	require.NoError(t, err)
	require.Nil(t, updated)
}

func TestKVDraftRepository_Delete(t *testing.T) {
	ctx := context.Background()
	r := repo.NewKVDraftRepository(kv.NewMemoryStore(), ids.NewSequenceGenerator("draft"))

	a, err := r.Create(ctx, sampleContent())
	require.NoError(t, err)
	b, err := r.Create(ctx, sampleContent())
	require.NoError(t, err)

	ok, err := r.Delete(ctx, "absent")
	require.NoError(t, err)
	require.False(t, ok)
	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	ok, err = r.Delete(ctx, a.ID)
	require.NoError(t, err)
	require.True(t, ok)

	list, err = r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, b.ID, list[0].ID)
}
