package wizard

import (
	"course-service/internal/media"
	"course-service/internal/model"
)

// Step 1: general info.

// SetGeneral replaces the general info. A subcategory that does not belong to
// the (possibly new) category is cleared.
func (w *Wizard) SetGeneral(info model.GeneralInfo) error {
	return w.edit(func() error {
		if !model.IsValidSubcategory(info.Category, info.Subcategory) {
			info.Subcategory = ""
		}
		w.form.GeneralInfo = info
		return nil
	})
}

// Step 2: modules and subsections.

func (w *Wizard) AddModule(title string) (int, error) {
	idx := -1
	err := w.edit(func() error {
		w.form.Modules = append(w.form.Modules, model.Module{Title: title, Subsections: []model.Subsection{}})
		idx = len(w.form.Modules) - 1
		return nil
	})
	return idx, err
}

// RemoveModule drops a module. Removing the last one leaves a fresh empty
// slot behind so the aggregate always holds at least one module.
func (w *Wizard) RemoveModule(i int) error {
	return w.edit(func() error {
		if !inRange(i, len(w.form.Modules)) {
			return ErrIndexOutOfRange
		}
		w.form.Modules = append(w.form.Modules[:i], w.form.Modules[i+1:]...)
		if len(w.form.Modules) == 0 {
			w.form.Modules = []model.Module{{Subsections: []model.Subsection{}}}
		}
		return nil
	})
}

func (w *Wizard) SetModuleTitle(i int, title string) error {
	return w.edit(func() error {
		if !inRange(i, len(w.form.Modules)) {
			return ErrIndexOutOfRange
		}
		w.form.Modules[i].Title = title
		return nil
	})
}

func (w *Wizard) AddSubsection(moduleIdx int, sub model.Subsection) (int, error) {
	idx := -1
	err := w.edit(func() error {
		if !inRange(moduleIdx, len(w.form.Modules)) {
			return ErrIndexOutOfRange
		}
		if sub.Type == "" {
			sub.Type = model.SubsectionLecture
		}
		m := &w.form.Modules[moduleIdx]
		m.Subsections = append(m.Subsections, sub)
		idx = len(m.Subsections) - 1
		return nil
	})
	return idx, err
}

func (w *Wizard) UpdateSubsection(moduleIdx, subIdx int, sub model.Subsection) error {
	return w.edit(func() error {
		if !inRange(moduleIdx, len(w.form.Modules)) || !inRange(subIdx, len(w.form.Modules[moduleIdx].Subsections)) {
			return ErrIndexOutOfRange
		}
		w.form.Modules[moduleIdx].Subsections[subIdx] = sub
		return nil
	})
}

func (w *Wizard) RemoveSubsection(moduleIdx, subIdx int) error {
	return w.edit(func() error {
		if !inRange(moduleIdx, len(w.form.Modules)) || !inRange(subIdx, len(w.form.Modules[moduleIdx].Subsections)) {
			return ErrIndexOutOfRange
		}
		m := &w.form.Modules[moduleIdx]
		m.Subsections = append(m.Subsections[:subIdx], m.Subsections[subIdx+1:]...)
		return nil
	})
}

// Step 3: format and sessions.

// ToggleSessionType selects or deselects a session type. Deselecting drops
// the sessions scheduled under it.
func (w *Wizard) ToggleSessionType(t model.SessionType) (bool, error) {
	selected := false
	err := w.edit(func() error {
		if !model.IsValidSessionType(t) {
			return ErrInvalidSessionType
		}
		for i, st := range w.form.SessionTypes {
			if st == t {
				w.form.SessionTypes = append(w.form.SessionTypes[:i], w.form.SessionTypes[i+1:]...)
				delete(w.form.Sessions, t)
				return nil
			}
		}
		w.form.SessionTypes = append(w.form.SessionTypes, t)
		if w.form.Sessions == nil {
			w.form.Sessions = map[model.SessionType][]model.Session{}
		}
		selected = true
		return nil
	})
	return selected, err
}

func (w *Wizard) AddSession(t model.SessionType, s model.Session) (int, error) {
	idx := -1
	err := w.edit(func() error {
		if !model.IsValidSessionType(t) {
			return ErrInvalidSessionType
		}
		if !w.form.HasSessionType(t) {
			return ErrSessionTypeNotSelected
		}
		w.form.Sessions[t] = append(w.form.Sessions[t], s)
		idx = len(w.form.Sessions[t]) - 1
		return nil
	})
	return idx, err
}

func (w *Wizard) UpdateSession(t model.SessionType, i int, s model.Session) error {
	return w.edit(func() error {
		if !inRange(i, len(w.form.Sessions[t])) {
			return ErrIndexOutOfRange
		}
		w.form.Sessions[t][i] = s
		return nil
	})
}

func (w *Wizard) RemoveSession(t model.SessionType, i int) error {
	return w.edit(func() error {
		list := w.form.Sessions[t]
		if !inRange(i, len(list)) {
			return ErrIndexOutOfRange
		}
		w.form.Sessions[t] = append(list[:i], list[i+1:]...)
		return nil
	})
}

// Step 4: media.

// AddImage opens the crop dialog for a newly selected image. The image joins
// the course once the crop is applied or skipped. Selecting another image
// replaces the one waiting.
func (w *Wizard) AddImage(preview string) (model.Image, error) {
	var img model.Image
	err := w.edit(func() error {
		img = model.Image{ID: w.imageIDs.NewID(), Preview: preview}
		pending := img
		w.pendingImage = &pending
		return nil
	})
	return img, err
}

// ApplyCrop rasterizes rect of the waiting image and keeps the original
// preview alongside the cropped one.
func (w *Wizard) ApplyCrop(rect model.CropRect, displayW, displayH float64) (model.Image, error) {
	var img model.Image
	err := w.edit(func() error {
		src, err := w.pendingSource()
		if err != nil {
			return err
		}
		cropped, err := media.Crop(src, rect, displayW, displayH)
		if err != nil {
			return err
		}

		img = *w.pendingImage
		img.CroppedPreview = cropped
		r := rect
		img.Crop = &r
		w.form.Images = append(w.form.Images, img)
		w.pendingImage = nil
		return nil
	})
	return img, err
}

// SkipCrop adds the waiting image uncropped.
func (w *Wizard) SkipCrop() (model.Image, error) {
	var img model.Image
	err := w.edit(func() error {
		if w.pendingImage == nil {
			return ErrNoPendingImage
		}
		img = *w.pendingImage
		w.form.Images = append(w.form.Images, img)
		w.pendingImage = nil
		return nil
	})
	return img, err
}

func (w *Wizard) DiscardPendingImage() error {
	return w.edit(func() error {
		w.pendingImage = nil
		return nil
	})
}

func (w *Wizard) MoveImage(from, to int) error {
	return w.edit(func() error {
		if !inRange(from, len(w.form.Images)) || !inRange(to, len(w.form.Images)) {
			return ErrIndexOutOfRange
		}
		w.form.Images = media.Move(w.form.Images, from, to)
		return nil
	})
}

func (w *Wizard) RemoveImage(id string) (bool, error) {
	removed := false
	err := w.edit(func() error {
		for i, img := range w.form.Images {
			if img.ID == id {
				w.form.Images = append(w.form.Images[:i], w.form.Images[i+1:]...)
				removed = true
				return nil
			}
		}
		return nil
	})
	return removed, err
}

func (w *Wizard) AddVideo(ref string) error {
	return w.edit(func() error {
		w.form.Videos = append(w.form.Videos, ref)
		return nil
	})
}

func (w *Wizard) RemoveVideo(i int) error {
	return w.edit(func() error {
		if !inRange(i, len(w.form.Videos)) {
			return ErrIndexOutOfRange
		}
		w.form.Videos = append(w.form.Videos[:i], w.form.Videos[i+1:]...)
		return nil
	})
}

// pendingSource decodes the preview waiting in the crop dialog.
func (w *Wizard) pendingSource() ([]byte, error) {
	if w.pendingImage == nil {
		return nil, ErrNoPendingImage
	}
	data, _, err := media.DecodeDataURL(w.pendingImage.Preview)
	return data, err
}
