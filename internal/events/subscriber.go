package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"course-service/internal/model"

	"github.com/nats-io/nats.go"
)

const (
	maxRetries      = 3
	retryDelay      = 2 * time.Second
	ActivitySubject = "course.activity.*"
	ActivityDLQ     = "course.activity.failed"
)

var ErrMalformedEvent = errors.New("malformed activity event")

// ActivityEvent arrives on course.activity.<kind>. Kind may be omitted from
// the payload, in which case the last subject token is used.
type ActivityEvent struct {
	EventType string             `json:"event_type"`
	CourseID  string             `json:"course_id"`
	Kind      model.ActivityKind `json:"kind"`
}

type ActivityRecorder interface {
	Record(ctx context.Context, courseID string, kind model.ActivityKind) error
}

type ActivitySubscriber struct {
	natsConn   *nats.Conn
	recorder   ActivityRecorder
	retryDelay time.Duration
}

func NewActivitySubscriber(nc *nats.Conn, recorder ActivityRecorder) *ActivitySubscriber {
	return &ActivitySubscriber{natsConn: nc, recorder: recorder, retryDelay: retryDelay}
}

// WithRetryDelay overrides the pause between delivery attempts.
func (s *ActivitySubscriber) WithRetryDelay(d time.Duration) *ActivitySubscriber {
	s.retryDelay = d
	return s
}

func (s *ActivitySubscriber) Subscribe() (*nats.Subscription, error) {
	sub, err := s.natsConn.Subscribe(ActivitySubject, func(msg *nats.Msg) {
		err := s.Handle(context.Background(), msg.Subject, msg.Data)
		if err == nil || errors.Is(err, ErrMalformedEvent) {
			return
		}

		if err := s.natsConn.Publish(ActivityDLQ, msg.Data); err != nil {
			slog.Error("Failed to publish to DLQ", slog.String("subject", ActivityDLQ), slog.String("error", err.Error()))
		} else {
			slog.Warn("Published failed activity event to DLQ", slog.String("subject", ActivityDLQ))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", ActivitySubject, err)
	}

	slog.Info("Activity subscriber listening", slog.String("subject", ActivitySubject))
	return sub, nil
}

// Handle decodes one activity message and records it, retrying up to
// maxRetries times. Malformed payloads are dropped without retry.
func (s *ActivitySubscriber) Handle(ctx context.Context, subject string, data []byte) error {
	var event ActivityEvent
	if err := json.Unmarshal(data, &event); err != nil {
		slog.ErrorContext(ctx, "Failed to unmarshal activity event", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if event.Kind == "" {
		if i := strings.LastIndexByte(subject, '.'); i >= 0 {
			event.Kind = model.ActivityKind(subject[i+1:])
		}
	}
	if event.CourseID == "" || !model.IsValidActivityKind(event.Kind) {
		slog.ErrorContext(ctx, "Dropping activity event", slog.String("course_id", event.CourseID), slog.String("kind", string(event.Kind)))
		return ErrMalformedEvent
	}

	var recordErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		recordErr = s.recorder.Record(ctx, event.CourseID, event.Kind)
		if recordErr == nil {
			return nil
		}

		slog.WarnContext(ctx, "Failed recording activity",
			slog.Int("attempt", attempt),
			slog.String("course_id", event.CourseID),
			slog.String("error", recordErr.Error()),
		)
		if attempt < maxRetries && s.retryDelay > 0 {
			time.Sleep(s.retryDelay)
		}
	}

	slog.ErrorContext(ctx, "Giving up on activity event",
		slog.Int("attempts", maxRetries),
		slog.String("course_id", event.CourseID),
		slog.String("kind", string(event.Kind)),
	)
	return recordErr
}
