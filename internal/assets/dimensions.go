package assets

import (
	"bufio"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Dimensions reads only the image header at path. ok is false when the file
// cannot be opened or is not a recognised image format.
func (r *Resolver) Dimensions(path string) (width, height int, ok bool) {
	f, err := r.fs.Open(path)
	if err != nil {
		return 0, 0, false
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(bufio.NewReader(f))
	if err != nil {
		return 0, 0, false
	}
	return cfg.Width, cfg.Height, true
}
