package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"math"
	"strings"

	"course-service/internal/model"

	"github.com/disintegration/imaging"
)

var (
	ErrInvalidCrop      = errors.New("crop rectangle is empty or outside the image")
	ErrInvalidDataURL   = errors.New("malformed data URL")
	ErrUndecodableImage = errors.New("preview is not a decodable image")
)

// Crop cuts rect out of the encoded image src. rect is expressed in the
// coordinate space of the image as it was displayed (displayW x displayH) and
// is scaled to the image's natural pixel size before cropping. The result is a
// PNG data URL. A zero display size means rect is already in natural pixels.
func Crop(src []byte, rect model.CropRect, displayW, displayH float64) (string, error) {
	if rect.Width <= 0 || rect.Height <= 0 {
		return "", ErrInvalidCrop
	}
	img, err := imaging.Decode(bytes.NewReader(src), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUndecodableImage, err)
	}

	bounds := img.Bounds()
	scaleX, scaleY := 1.0, 1.0
	if displayW > 0 && displayH > 0 {
		scaleX = float64(bounds.Dx()) / displayW
		scaleY = float64(bounds.Dy()) / displayH
	}

	x0 := int(math.Round(rect.X * scaleX))
	y0 := int(math.Round(rect.Y * scaleY))
	x1 := int(math.Round((rect.X + rect.Width) * scaleX))
	y1 := int(math.Round((rect.Y + rect.Height) * scaleY))

	area := image.Rect(bounds.Min.X+x0, bounds.Min.Y+y0, bounds.Min.X+x1, bounds.Min.Y+y1).Intersect(bounds)
	if area.Empty() {
		return "", ErrInvalidCrop
	}

	cropped := imaging.Crop(img, area)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, cropped, imaging.PNG); err != nil {
		return "", fmt.Errorf("encode crop: %w", err)
	}
	return EncodeDataURL("image/png", buf.Bytes()), nil
}

func EncodeDataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURL accepts only base64 data URLs.
func DecodeDataURL(dataURL string) (data []byte, mime string, err error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return nil, "", ErrInvalidDataURL
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", ErrInvalidDataURL
	}
	mime, ok = strings.CutSuffix(header, ";base64")
	if !ok {
		return nil, "", ErrInvalidDataURL
	}

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}
	return data, mime, nil
}
