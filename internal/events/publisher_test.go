package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"course-service/internal/events"
	"course-service/internal/model"

	"github.com/stretchr/testify/require"
)

func TestCourseEvent_Marshal(t *testing.T) {
	c := &model.PublishedCourse{ID: "c1", Status: model.StatusActive}
	c.Title = "Go"
	c.Category = "Development"

	b, err := json.Marshal(events.NewCourseEvent(events.SubjectCoursePublished, c))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Equal(t, "course.published", decoded["event_type"])
	require.Equal(t, "c1", decoded["course_id"])
	require.Equal(t, "active", decoded["status"])
}

func TestCourseStatusChangedEvent_Marshal(t *testing.T) {
	b, err := json.Marshal(events.CourseStatusChangedEvent{
		EventType: events.SubjectCourseStatusChanged,
		CourseID:  "c1",
		From:      model.StatusActive,
		To:        model.StatusPaused,
	})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Equal(t, "paused", decoded["to"])
}

type recorder struct {
	failures int
	calls    int
	got      []model.ActivityKind
}

func (r *recorder) Record(_ context.Context, _ string, kind model.ActivityKind) error {
	r.calls++
	if r.calls <= r.failures {
		return errors.New("store unavailable")
	}
	r.got = append(r.got, kind)
	return nil
}

func TestActivitySubscriber_KindFromSubject(t *testing.T) {
	rec := &recorder{}
	sub := events.NewActivitySubscriber(nil, rec).WithRetryDelay(0)

	err := sub.Handle(context.Background(), "course.activity.booking", []byte(`{"course_id":"c1"}`))
	require.NoError(t, err)
	require.Equal(t, []model.ActivityKind{model.ActivityBooking}, rec.got)
}

func TestActivitySubscriber_RetriesThenSucceeds(t *testing.T) {
	rec := &recorder{failures: 2}
	sub := events.NewActivitySubscriber(nil, rec).WithRetryDelay(0)

	err := sub.Handle(context.Background(), "course.activity.click", []byte(`{"course_id":"c1","kind":"click"}`))
	require.NoError(t, err)
	require.Equal(t, 3, rec.calls)
}

func TestActivitySubscriber_GivesUp(t *testing.T) {
	rec := &recorder{failures: 10}
	sub := events.NewActivitySubscriber(nil, rec).WithRetryDelay(0)

	err := sub.Handle(context.Background(), "course.activity.click", []byte(`{"course_id":"c1"}`))
	require.EqualError(t, err, "store unavailable")
	require.Equal(t, 3, rec.calls)
}

func TestActivitySubscriber_Malformed(t *testing.T) {
	rec := &recorder{}
	sub := events.NewActivitySubscriber(nil, rec).WithRetryDelay(0)

	require.ErrorIs(t, sub.Handle(context.Background(), "course.activity.click", []byte(`{`)), events.ErrMalformedEvent)
	require.ErrorIs(t, sub.Handle(context.Background(), "course.activity.view", []byte(`{"course_id":"c1"}`)), events.ErrMalformedEvent)
	require.Zero(t, rec.calls)
}
