package slicer

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/vovakirdan/memory-mosaic/internal/puzzle"
)

// Load returns the picture named by ref: a built-in catalog name, or a path
// to a PNG, JPEG, GIF, BMP or WebP file. Any failure wraps puzzle.ErrAsset.
func Load(ref string) (image.Image, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		ref = DefaultPicture
	}
	if p, ok := Lookup(ref); ok {
		return p.Image(), nil
	}

	f, err := os.Open(ref)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q is neither a built-in picture nor a file", puzzle.ErrAsset, ref)
		}
		return nil, fmt.Errorf("%w: %v", puzzle.ErrAsset, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", puzzle.ErrAsset, ref, err)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("%w: empty %s picture %s", puzzle.ErrAsset, format, ref)
	}
	return img, nil
}

// LoadTiles loads ref and slices it into n×n faces.
func LoadTiles(ref string, n int) ([]image.Image, image.Image, error) {
	img, err := Load(ref)
	if err != nil {
		return nil, nil, err
	}
	tiles, err := Slice(img, n)
	if err != nil {
		return nil, img, err
	}
	return tiles, img, nil
}
