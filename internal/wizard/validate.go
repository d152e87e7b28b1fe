package wizard

import (
	"strings"

	"course-service/internal/model"
)

type Step int

const (
	StepGeneral Step = iota + 1
	StepContent
	StepFormat
	StepMedia
	StepReview
)

const (
	FirstStep = StepGeneral
	LastStep  = StepReview
)

var stepNames = map[Step]string{
	StepGeneral: "general",
	StepContent: "content",
	StepFormat:  "format",
	StepMedia:   "media",
	StepReview:  "review",
}

func (s Step) String() string {
	if n, ok := stepNames[s]; ok {
		return n
	}
	return "unknown"
}

// MissingFields lists what keeps step from passing its gate. An empty result
// means the step is complete. Media and review never block.
func MissingFields(step Step, form model.CourseContent) []string {
	var missing []string
	switch step {
	case StepGeneral:
		if form.Title == "" {
			missing = append(missing, "title")
		}
		if form.Description == "" {
			missing = append(missing, "description")
		}
		if form.Level == "" {
			missing = append(missing, "level")
		}
		if form.Language == "" {
			missing = append(missing, "language")
		}
		if form.Category == "" {
			missing = append(missing, "category")
		}
	case StepContent:
		if !hasTitledModule(form.Modules) {
			missing = append(missing, "modules[].title")
		}
	case StepFormat:
		if len(form.SessionTypes) == 0 {
			missing = append(missing, "sessionTypes")
		}
	}
	return missing
}

func StepComplete(step Step, form model.CourseContent) bool {
	return len(MissingFields(step, form)) == 0
}

func hasTitledModule(modules []model.Module) bool {
	for _, m := range modules {
		if strings.TrimSpace(m.Title) != "" {
			return true
		}
	}
	return false
}

// IsEmpty reports whether nothing worth keeping has been entered, in which
// case closing needs no confirmation.
func IsEmpty(form model.CourseContent) bool {
	if form.Title != "" || form.Description != "" {
		return false
	}
	for _, m := range form.Modules {
		if m.Title != "" {
			return false
		}
	}
	return len(form.Images) == 0 && len(form.Videos) == 0 && len(form.SessionTypes) == 0
}

// EmptyForm is the aggregate a fresh wizard starts from: everything unset and
// one empty module slot.
func EmptyForm() model.CourseContent {
	return model.CourseContent{
		Modules: []model.Module{{Subsections: []model.Subsection{}}},
		Format: model.Format{
			SessionTypes: []model.SessionType{},
			Sessions:     map[model.SessionType][]model.Session{},
		},
		Media: model.Media{
			Images: []model.Image{},
			Videos: []string{},
		},
	}
}
