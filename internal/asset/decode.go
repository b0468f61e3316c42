package asset

import (
	"bytes"
	"errors"
	"image"
	"path"
	"strings"

	// Registered decoders. TGA is not registered: it has no magic number
	// and would claim every stream.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/ftrvxmtrx/tga"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// decode decodes one texture. TGA is chosen by extension, or tried when no
// registered format recognises the data.
func decode(id string, data []byte) (image.Image, string, error) {
	if isTGA(id) {
		img, err := tga.Decode(bytes.NewReader(data))
		return img, "tga", err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if errors.Is(err, image.ErrFormat) {
		if timg, terr := tga.Decode(bytes.NewReader(data)); terr == nil {
			return timg, "tga", nil
		}
	}
	return img, format, err
}

func isTGA(id string) bool {
	if i := strings.IndexAny(id, "?#"); i >= 0 {
		id = id[:i]
	}
	return strings.EqualFold(path.Ext(strings.ReplaceAll(id, `\`, `/`)), ".tga")
}
