package model

import (
	"time"
)

type Student struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	EnrolledAt time.Time `json:"enrolledAt"`
	Progress   int       `json:"progress"`
}

// MetricPoint is one day of activity. Date is formatted as 2006-01-02.
type MetricPoint struct {
	Date     string `json:"date"`
	Clicks   int    `json:"clicks"`
	Bookings int    `json:"bookings"`
}

type PublishedCourse struct {
	ID string `json:"id"`
	CourseContent
	PublishedAt time.Time     `json:"publishedAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	Price       float64       `json:"price"`
	Enrollments int           `json:"enrollments"`
	Rating      float64       `json:"rating"`
	Reviews     int           `json:"reviews"`
	Clicks      int           `json:"clicks"`
	Status      CourseStatus  `json:"status"`
	Students    []Student     `json:"students,omitempty"`
	Metrics     []MetricPoint `json:"metrics,omitempty"`
}

func (c PublishedCourse) GetID() string { return c.ID }

func (c PublishedCourse) Revenue() float64 {
	return float64(c.Enrollments) * c.Price
}

type Announcement struct {
	ID        string    `json:"id"`
	CourseID  string    `json:"courseId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func (a Announcement) GetID() string { return a.ID }

type Attachment struct {
	ID        string    `json:"id"`
	CourseID  string    `json:"courseId"`
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	Type      string    `json:"type"`
	DataURL   string    `json:"dataUrl"`
	Timestamp time.Time `json:"timestamp"`
}

func (a Attachment) GetID() string { return a.ID }
