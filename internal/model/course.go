package model

import (
	"time"
)

type Duration struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

type GeneralInfo struct {
	Title        string   `json:"title"`
	Subtitle     string   `json:"subtitle"`
	Description  string   `json:"description"`
	Objectives   string   `json:"objectives"`
	Requirements string   `json:"requirements"`
	Level        Level    `json:"level"`
	Language     string   `json:"language"`
	Category     string   `json:"category"`
	Subcategory  string   `json:"subcategory"`
	Duration     Duration `json:"duration"`
}

type Subsection struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Type        SubsectionType `json:"type"`
	TimeMinutes int            `json:"time"`
}

type Module struct {
	Title       string       `json:"title"`
	Subsections []Subsection `json:"subsections"`
}

// Session is one scheduled occurrence pattern. EndDate, Timezone, Capacity,
// IntervalMinutes and Price are only filled in on published courses.
type Session struct {
	StartDate       string   `json:"startDate"`
	EndDate         string   `json:"endDate,omitempty"`
	StartTime       string   `json:"startTime"`
	EndTime         string   `json:"endTime"`
	Days            []string `json:"days"`
	Recurring       bool     `json:"recurring"`
	Timezone        string   `json:"timezone,omitempty"`
	Capacity        int      `json:"capacity,omitempty"`
	IntervalMinutes int      `json:"interval,omitempty"`
	Price           float64  `json:"price,omitempty"`
}

type Format struct {
	SessionTypes []SessionType             `json:"sessionTypes"`
	Sessions     map[SessionType][]Session `json:"sessions"`
}

func (f Format) HasSessionType(t SessionType) bool {
	for _, st := range f.SessionTypes {
		if st == t {
			return true
		}
	}
	return false
}

type CropRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Image struct {
	ID             string    `json:"id"`
	Preview        string    `json:"preview"`
	CroppedPreview string    `json:"croppedPreview,omitempty"`
	Crop           *CropRect `json:"crop,omitempty"`
}

// DisplayPreview is the cropped preview when one exists, the original otherwise.
func (i Image) DisplayPreview() string {
	if i.CroppedPreview != "" {
		return i.CroppedPreview
	}
	return i.Preview
}

type Media struct {
	Images []Image  `json:"images"`
	Videos []string `json:"videos"`
}

// CourseContent is the authored part of a course shared by drafts and
// published courses.
type CourseContent struct {
	GeneralInfo
	Modules []Module `json:"modules"`
	Format
	Media
}

// Clone returns a deep copy so callers never share slices with a stored record.
// Nil slices stay nil and empty slices stay empty.
func (c CourseContent) Clone() CourseContent {
	out := c

	out.Modules = cloneSlice(c.Modules)
	for i, m := range out.Modules {
		out.Modules[i].Subsections = cloneSlice(m.Subsections)
	}

	out.SessionTypes = cloneSlice(c.SessionTypes)
	if c.Sessions != nil {
		out.Sessions = make(map[SessionType][]Session, len(c.Sessions))
		for k, list := range c.Sessions {
			copied := cloneSlice(list)
			for i := range copied {
				copied[i].Days = cloneSlice(copied[i].Days)
			}
			out.Sessions[k] = copied
		}
	}

	out.Images = cloneSlice(c.Images)
	for i := range out.Images {
		if out.Images[i].Crop != nil {
			rect := *out.Images[i].Crop
			out.Images[i].Crop = &rect
		}
	}
	out.Videos = cloneSlice(c.Videos)

	return out
}

func cloneSlice[E any](in []E) []E {
	if in == nil {
		return nil
	}
	out := make([]E, len(in))
	copy(out, in)
	return out
}

type Draft struct {
	ID string `json:"id"`
	CourseContent
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (d Draft) GetID() string { return d.ID }
