// Package observability holds the domain-level Prometheus collectors.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StorageParseFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "course_storage_parse_failures_total",
			Help: "Number of stored collections that could not be decoded and were read as empty",
		},
		[]string{"collection"},
	)
	LifecycleEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "course_lifecycle_events_total",
			Help: "Course lifecycle transitions by event",
		},
		[]string{"event"},
	)
	AttachmentRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "course_attachment_rejections_total",
			Help: "Attachments refused by the size admission check",
		},
	)
)
