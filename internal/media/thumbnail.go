package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
)

// Thumbnail bounds used for uploaded images
const (
	ThumbnailMaxWidth  = 400
	ThumbnailMaxHeight = 400
)

// Thumbnail decodes a JPEG, PNG or GIF image and returns a JPEG that fits in maxWidth x maxHeight.
// Images already within bounds are re-encoded at their original size.
func Thumbnail(data []byte, maxWidth, maxHeight uint) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	thumb := resize.Thumbnail(maxWidth, maxHeight, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
