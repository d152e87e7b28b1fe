package media_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"course-service/internal/media"

	"github.com/stretchr/testify/require"
)

func upload(name string, data []byte) media.Upload {
	return media.Upload{
		Name: name,
		Size: int64(len(data)),
		Open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(data)), nil },
	}
}

func TestAdmitAttachment(t *testing.T) {
	a, err := media.AdmitAttachment("c1", upload("notes.txt", []byte("hello world")), 0)
	require.NoError(t, err)
	require.Equal(t, "c1", a.CourseID)
	require.Equal(t, "notes.txt", a.Name)
	require.Equal(t, int64(11), a.Size)
	require.Equal(t, "text/plain", a.Type)
	require.True(t, strings.HasPrefix(a.DataURL, "data:text/plain;base64,"))
}

func TestAdmitAttachment_TooLargeNeverOpened(t *testing.T) {
	opened := false
	u := media.Upload{
		Name: "video.mov",
		Size: 6 * 1024 * 1024,
		Open: func() (io.ReadCloser, error) {
			opened = true
			return nil, errors.New("should not be called")
		},
	}

	_, err := media.AdmitAttachment("c1", u, media.DefaultMaxAttachmentBytes)
	require.ErrorIs(t, err, media.ErrFileTooLarge)
	require.False(t, opened)
}

func TestAdmitAttachment_UnderstatedSize(t *testing.T) {
	u := upload("big.bin", make([]byte, 32))
	u.Size = 4

	_, err := media.AdmitAttachment("c1", u, 16)
	require.ErrorIs(t, err, media.ErrFileTooLarge)
}

func TestAdmitBatch_SiblingsStillProcessed(t *testing.T) {
	big := upload("huge.zip", nil)
	big.Size = 6 * 1024 * 1024

	admitted, rejected := media.AdmitBatch("c1", []media.Upload{
		upload("a.txt", []byte("a")),
		big,
		upload("b.txt", []byte("b")),
	}, media.DefaultMaxAttachmentBytes)

	require.Len(t, admitted, 2)
	require.Equal(t, "a.txt", admitted[0].Name)
	require.Equal(t, "b.txt", admitted[1].Name)
	require.Len(t, rejected, 1)
	require.Equal(t, "huge.zip", rejected[0].Name)
}
