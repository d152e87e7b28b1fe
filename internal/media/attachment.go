package media

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"course-service/internal/model"

	"github.com/gabriel-vasile/mimetype"
)

const DefaultMaxAttachmentBytes int64 = 5 * 1024 * 1024

var ErrFileTooLarge = errors.New("file exceeds the attachment size limit")

// Upload is a file offered for attachment. Size is checked before Open is
// ever called.
type Upload struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

type Rejection struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// AdmitAttachment turns an upload into an attachment record carrying the
// payload as a base64 data URL. The id and timestamp are left for the store.
func AdmitAttachment(courseID string, u Upload, limit int64) (model.Attachment, error) {
	if limit <= 0 {
		limit = DefaultMaxAttachmentBytes
	}
	if u.Size > limit {
		return model.Attachment{}, fmt.Errorf("%s: %w (%d MB max)", u.Name, ErrFileTooLarge, limit/(1024*1024))
	}

	rc, err := u.Open()
	if err != nil {
		return model.Attachment{}, fmt.Errorf("open %s: %w", u.Name, err)
	}
	defer rc.Close()

	// read one byte past the limit so a lying Size cannot smuggle a bigger file in
	data, err := io.ReadAll(io.LimitReader(rc, limit+1))
	if err != nil {
		return model.Attachment{}, fmt.Errorf("read %s: %w", u.Name, err)
	}
	if int64(len(data)) > limit {
		return model.Attachment{}, fmt.Errorf("%s: %w (%d MB max)", u.Name, ErrFileTooLarge, limit/(1024*1024))
	}

	mime := mimetype.Detect(data).String()
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return model.Attachment{
		CourseID: courseID,
		Name:     u.Name,
		Size:     int64(len(data)),
		Type:     mime,
		DataURL:  EncodeDataURL(mime, data),
	}, nil
}

// AdmitBatch admits each upload on its own; a rejected file never stops its
// siblings.
func AdmitBatch(courseID string, uploads []Upload, limit int64) ([]model.Attachment, []Rejection) {
	admitted := []model.Attachment{}
	var rejected []Rejection
	for _, u := range uploads {
		a, err := AdmitAttachment(courseID, u, limit)
		if err != nil {
			rejected = append(rejected, Rejection{Name: u.Name, Reason: err.Error()})
			continue
		}
		admitted = append(admitted, a)
	}
	return admitted, rejected
}
