package service

import (
	"context"

	"course-service/internal/model"
)

// Material is what a student sees for one module of a course, optionally
// narrowed to one subsection type.
type Material struct {
	CourseID    string               `json:"courseId"`
	CourseTitle string               `json:"courseTitle"`
	ModuleIndex int                  `json:"moduleIndex"`
	ModuleTitle string               `json:"moduleTitle"`
	Type        model.SubsectionType `json:"type,omitempty"`
	Items       []model.Subsection   `json:"items"`
	Minutes     int                  `json:"minutes"`
}

// StudentMaterial looks up one module of an active course. An empty kind
// returns every subsection of the module.
func (s *courseService) StudentMaterial(ctx context.Context, courseID string, moduleIdx int, kind model.SubsectionType) (*Material, error) {
	if kind != "" && !model.IsValidSubsectionType(kind) {
		return nil, ErrInvalidMaterialType
	}

	course, err := s.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.Status != model.StatusActive {
		return nil, ErrCourseNotFound
	}
	if moduleIdx < 0 || moduleIdx >= len(course.Modules) {
		return nil, ErrModuleNotFound
	}

	module := course.Modules[moduleIdx]
	m := &Material{
		CourseID:    course.ID,
		CourseTitle: course.Title,
		ModuleIndex: moduleIdx,
		ModuleTitle: module.Title,
		Type:        kind,
		Items:       []model.Subsection{},
	}
	for _, sub := range module.Subsections {
		if kind != "" && sub.Type != kind {
			continue
		}
		m.Items = append(m.Items, sub)
		m.Minutes += sub.TimeMinutes
	}
	return m, nil
}
