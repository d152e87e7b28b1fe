package api

import (
	"course-service/internal/model"
	"course-service/internal/schedule"

	"github.com/go-playground/validator/v10"
)

// newValidator adds the "clock" tag for HH:MM times.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, ok := schedule.ParseClock(fl.Field().String())
		return ok
	})
	return v
}

type CreateWizardRequest struct {
	DraftID  string `json:"draftId,omitempty" validate:"excluded_with=CourseID"`
	CourseID string `json:"courseId,omitempty"`
}

type StepRequest struct {
	Step int `json:"step" validate:"required,min=1,max=5"`
}

type GeneralInfoRequest struct {
	Title        string `json:"title" validate:"max=120"`
	Subtitle     string `json:"subtitle" validate:"max=200"`
	Description  string `json:"description" validate:"max=5000"`
	Objectives   string `json:"objectives" validate:"max=5000"`
	Requirements string `json:"requirements" validate:"max=5000"`
	Level        string `json:"level" validate:"omitempty,oneof=Beginner Intermediate Expert"`
	Language     string `json:"language"`
	Category     string `json:"category"`
	Subcategory  string `json:"subcategory"`
	Duration     struct {
		Hours   int `json:"hours" validate:"min=0"`
		Minutes int `json:"minutes" validate:"min=0,max=59"`
	} `json:"duration"`
}

func (r GeneralInfoRequest) toModel() model.GeneralInfo {
	return model.GeneralInfo{
		Title:        r.Title,
		Subtitle:     r.Subtitle,
		Description:  r.Description,
		Objectives:   r.Objectives,
		Requirements: r.Requirements,
		Level:        model.Level(r.Level),
		Language:     r.Language,
		Category:     r.Category,
		Subcategory:  r.Subcategory,
		Duration:     model.Duration{Hours: r.Duration.Hours, Minutes: r.Duration.Minutes},
	}
}

// invalidGeneralField returns the first fixed-list field holding a value that
// is not on its list.
func (r GeneralInfoRequest) invalidGeneralField() string {
	switch {
	case r.Language != "" && !model.IsValidLanguage(r.Language):
		return "language"
	case r.Category != "" && !model.IsValidCategory(r.Category):
		return "category"
	}
	return ""
}

type ModuleRequest struct {
	Title string `json:"title" validate:"max=200"`
}

type SubsectionRequest struct {
	Title       string `json:"title" validate:"max=200"`
	Description string `json:"description" validate:"max=5000"`
	Type        string `json:"type" validate:"omitempty,oneof=lecture quiz assignment lab"`
	Time        int    `json:"time" validate:"min=0"`
}

func (r SubsectionRequest) toModel() model.Subsection {
	return model.Subsection{
		Title:       r.Title,
		Description: r.Description,
		Type:        model.SubsectionType(r.Type),
		TimeMinutes: r.Time,
	}
}

type SessionRequest struct {
	StartDate string   `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string   `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	StartTime string   `json:"startTime" validate:"omitempty,clock"`
	EndTime   string   `json:"endTime" validate:"omitempty,clock"`
	Days      []string `json:"days" validate:"dive,oneof=Sunday Monday Tuesday Wednesday Thursday Friday Saturday"`
	Recurring bool     `json:"recurring"`
	Timezone  string   `json:"timezone"`
	Capacity  int      `json:"capacity" validate:"min=0"`
	Interval  int      `json:"interval" validate:"min=0"`
	Price     float64  `json:"price" validate:"min=0"`
}

func (r SessionRequest) toModel() model.Session {
	days := r.Days
	if days == nil {
		days = []string{}
	}
	return model.Session{
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		Days:            days,
		Recurring:       r.Recurring,
		Timezone:        r.Timezone,
		Capacity:        r.Capacity,
		IntervalMinutes: r.Interval,
		Price:           r.Price,
	}
}

type ImageRequest struct {
	Preview string `json:"preview" validate:"required,startswith=data:image/"`
}

type CropRequest struct {
	Rect          model.CropRect `json:"rect"`
	DisplayWidth  float64        `json:"displayWidth" validate:"min=0"`
	DisplayHeight float64        `json:"displayHeight" validate:"min=0"`
}

type MoveRequest struct {
	From *int `json:"from" validate:"required"`
	To   *int `json:"to" validate:"required"`
}

type VideoRequest struct {
	Ref string `json:"ref" validate:"required,max=1024"`
}

type SuggestRequest struct {
	Field      string `json:"field" validate:"required"`
	Module     int    `json:"module"`
	Subsection int    `json:"subsection"`
}

type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active paused archived"`
}

type AnnouncementRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

type ActivityRequest struct {
	Kind string `json:"kind" validate:"required,oneof=click booking"`
}

type VideoUploadRequest struct {
	Filename    string `json:"filename" validate:"required,max=255"`
	ContentType string `json:"contentType" validate:"omitempty,startswith=video/"`
}

type CalendarRequest struct {
	Year     int                                   `json:"year" validate:"required,min=1970,max=9999"`
	Month    int                                   `json:"month" validate:"required,min=1,max=12"`
	Sessions map[model.SessionType][]model.Session `json:"sessions"`
}
