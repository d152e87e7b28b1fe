package media_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"course-service/internal/media"
	"course-service/internal/model"

	"github.com/stretchr/testify/require"
)

// quadrants builds a 200x100 image: left half red, right half blue.
func quadrants(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 200, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 200; x++ {
			c := color.NRGBA{R: 255, A: 255}
			if x >= 100 {
				c = color.NRGBA{B: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeResult(t *testing.T, dataURL string) image.Image {
	t.Helper()
	data, mime, err := media.DecodeDataURL(dataURL)
	require.NoError(t, err)
	require.Equal(t, "image/png", mime)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func TestCrop_ScalesFromDisplaySpace(t *testing.T) {
	src := quadrants(t)

	// displayed at half size: 100x50. Selecting the right half of the display
	// must yield the 100x100 blue half of the source.
	out, err := media.Crop(src, model.CropRect{X: 50, Y: 0, Width: 50, Height: 50}, 100, 50)
	require.NoError(t, err)

	img := decodeResult(t, out)
	require.Equal(t, 100, img.Bounds().Dx())
	require.Equal(t, 100, img.Bounds().Dy())

	r, g, b, _ := img.At(10, 10).RGBA()
	require.Zero(t, r)
	require.Zero(t, g)
	require.Equal(t, uint32(0xffff), b)
}

func TestCrop_NaturalCoordinates(t *testing.T) {
	out, err := media.Crop(quadrants(t), model.CropRect{X: 0, Y: 0, Width: 40, Height: 30}, 0, 0)
	require.NoError(t, err)

	img := decodeResult(t, out)
	require.Equal(t, 40, img.Bounds().Dx())
	require.Equal(t, 30, img.Bounds().Dy())
}

func TestCrop_ClampsToBounds(t *testing.T) {
	out, err := media.Crop(quadrants(t), model.CropRect{X: 150, Y: 50, Width: 500, Height: 500}, 0, 0)
	require.NoError(t, err)

	img := decodeResult(t, out)
	require.Equal(t, 50, img.Bounds().Dx())
	require.Equal(t, 50, img.Bounds().Dy())
}

func TestCrop_Invalid(t *testing.T) {
	_, err := media.Crop(quadrants(t), model.CropRect{X: 300, Y: 0, Width: 10, Height: 10}, 0, 0)
	require.ErrorIs(t, err, media.ErrInvalidCrop)

	_, err = media.Crop([]byte("not an image"), model.CropRect{Width: 1, Height: 1}, 0, 0)
	require.Error(t, err)
}

func TestDecodeDataURL(t *testing.T) {
	data, mime, err := media.DecodeDataURL(media.EncodeDataURL("text/plain", []byte("hi")))
	require.NoError(t, err)
	require.Equal(t, "text/plain", mime)
	require.Equal(t, "hi", string(data))

	_, _, err = media.DecodeDataURL("blob:http://localhost/abc")
	require.ErrorIs(t, err, media.ErrInvalidDataURL)

	_, _, err = media.DecodeDataURL("data:text/plain,hi")
	require.ErrorIs(t, err, media.ErrInvalidDataURL)
}

func TestCrop_RejectsNegativeSize(t *testing.T) {
	src := quadrants(t)

	_, err := media.Crop(src, model.CropRect{X: 100, Y: 50, Width: -50, Height: 20}, 0, 0)
	require.ErrorIs(t, err, media.ErrInvalidCrop)

	_, err = media.Crop(src, model.CropRect{X: 10, Y: 50, Width: 20, Height: -20}, 0, 0)
	require.ErrorIs(t, err, media.ErrInvalidCrop)
}

func TestCrop_UndecodableSource(t *testing.T) {
	_, err := media.Crop([]byte("hello"), model.CropRect{Width: 10, Height: 10}, 0, 0)
	require.ErrorIs(t, err, media.ErrUndecodableImage)
}
