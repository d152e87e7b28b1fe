package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"course-service/internal/model"

	"github.com/nats-io/nats.go"
)

const (
	SubjectCoursePublished     = "course.published"
	SubjectCourseUpdated       = "course.updated"
	SubjectCourseStatusChanged = "course.status_changed"
	SubjectCourseDeleted       = "course.deleted"
	SubjectDraftSaved          = "draft.saved"
)

type EventPublisher interface {
	PublishCoursePublished(ctx context.Context, course *model.PublishedCourse) error
	PublishCourseUpdated(ctx context.Context, course *model.PublishedCourse) error
	PublishCourseStatusChanged(ctx context.Context, courseID string, from, to model.CourseStatus) error
	PublishCourseDeleted(ctx context.Context, courseID string) error
	PublishDraftSaved(ctx context.Context, draft *model.Draft) error
}

// Connect dials NATS with a client name so the connection is identifiable
// in server monitoring.
func Connect(natsURL string) (*nats.Conn, error) {
	return nats.Connect(natsURL, nats.Name("course-service"))
}

type NatsPublisher struct {
	conn *nats.Conn
}

func NewNatsPublisher(conn *nats.Conn) EventPublisher {
	return &NatsPublisher{conn: conn}
}

type CourseEvent struct {
	EventType  string             `json:"event_type"`
	CourseID   string             `json:"course_id"`
	Title      string             `json:"title"`
	Category   string             `json:"category"`
	Status     model.CourseStatus `json:"status"`
	OccurredAt time.Time          `json:"occurred_at"`
}

type CourseStatusChangedEvent struct {
	EventType  string             `json:"event_type"`
	CourseID   string             `json:"course_id"`
	From       model.CourseStatus `json:"from"`
	To         model.CourseStatus `json:"to"`
	OccurredAt time.Time          `json:"occurred_at"`
}

type CourseDeletedEvent struct {
	EventType  string    `json:"event_type"`
	CourseID   string    `json:"course_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type DraftSavedEvent struct {
	EventType string    `json:"event_type"`
	DraftID   string    `json:"draft_id"`
	Title     string    `json:"title"`
	SavedAt   time.Time `json:"saved_at"`
}

func NewCourseEvent(eventType string, course *model.PublishedCourse) CourseEvent {
	return CourseEvent{
		EventType:  eventType,
		CourseID:   course.ID,
		Title:      course.Title,
		Category:   course.Category,
		Status:     course.Status,
		OccurredAt: time.Now().UTC(),
	}
}

func (p *NatsPublisher) PublishCoursePublished(ctx context.Context, course *model.PublishedCourse) error {
	return p.publish(ctx, SubjectCoursePublished, NewCourseEvent(SubjectCoursePublished, course))
}

func (p *NatsPublisher) PublishCourseUpdated(ctx context.Context, course *model.PublishedCourse) error {
	return p.publish(ctx, SubjectCourseUpdated, NewCourseEvent(SubjectCourseUpdated, course))
}

func (p *NatsPublisher) PublishCourseStatusChanged(ctx context.Context, courseID string, from, to model.CourseStatus) error {
	return p.publish(ctx, SubjectCourseStatusChanged, CourseStatusChangedEvent{
		EventType:  SubjectCourseStatusChanged,
		CourseID:   courseID,
		From:       from,
		To:         to,
		OccurredAt: time.Now().UTC(),
	})
}

func (p *NatsPublisher) PublishCourseDeleted(ctx context.Context, courseID string) error {
	return p.publish(ctx, SubjectCourseDeleted, CourseDeletedEvent{
		EventType:  SubjectCourseDeleted,
		CourseID:   courseID,
		OccurredAt: time.Now().UTC(),
	})
}

func (p *NatsPublisher) PublishDraftSaved(ctx context.Context, draft *model.Draft) error {
	return p.publish(ctx, SubjectDraftSaved, DraftSavedEvent{
		EventType: SubjectDraftSaved,
		DraftID:   draft.ID,
		Title:     draft.Title,
		SavedAt:   draft.UpdatedAt,
	})
}

func (p *NatsPublisher) publish(ctx context.Context, subject string, event any) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		slog.ErrorContext(ctx, "Error marshalling event JSON", slog.String("subject", subject), slog.String("error", err.Error()))
		return err
	}

	if err := p.conn.Publish(subject, eventJSON); err != nil {
		slog.ErrorContext(ctx, "Error publishing to NATS", slog.String("subject", subject), slog.String("error", err.Error()))
		return err
	}

	slog.DebugContext(ctx, "Published event to NATS", slog.String("subject", subject))
	return nil
}

// NoopPublisher is used when no NATS URL is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishCoursePublished(context.Context, *model.PublishedCourse) error {
	return nil
}

func (NoopPublisher) PublishCourseUpdated(context.Context, *model.PublishedCourse) error {
	return nil
}

func (NoopPublisher) PublishCourseStatusChanged(context.Context, string, model.CourseStatus, model.CourseStatus) error {
	return nil
}

func (NoopPublisher) PublishCourseDeleted(context.Context, string) error {
	return nil
}

func (NoopPublisher) PublishDraftSaved(context.Context, *model.Draft) error {
	return nil
}
