package render

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
	"golang.org/x/image/tiff"
)

// jpegQuality is used for .jpg captures.
const jpegQuality = 95

// Capture writes the last rendered frame, at output size, to path. The format
// follows the extension: .png, .jpg, .bmp or .tif.
func (r *Renderer) Capture(path string) error {
	if r.targetW == 0 {
		return fmt.Errorf("render: capture %s: nothing rendered", path)
	}
	enc, err := encoderFor(filepath.Ext(path))
	if err != nil {
		return fmt.Errorf("render: capture %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("render: capture %s: %w", path, err)
	}

	img := rl.LoadImageFromTexture(r.target.Texture)
	pixels := rl.LoadImageColors(img)
	frame := toRGBA(pixels, int(img.Width), int(img.Height))
	rl.UnloadImageColors(pixels)
	rl.UnloadImage(img)

	// Render textures are stored bottom row first.
	if err := imgio.Save(path, transform.FlipV(frame), enc); err != nil {
		return fmt.Errorf("render: capture %s: %w", path, err)
	}
	r.log.Info("frame captured", zap.String("path", path), zap.Int32("width", r.targetW), zap.Int32("height", r.targetH))
	return nil
}

// toRGBA copies row-major pixels into an image.
func toRGBA(pixels []color.RGBA, width, height int) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, c := range pixels {
		if i >= width*height {
			break
		}
		out.SetRGBA(i%width, i/width, c)
	}
	return out
}

func encoderFor(ext string) (imgio.Encoder, error) {
	switch strings.ToLower(ext) {
	case ".png", "":
		return imgio.PNGEncoder(), nil
	case ".jpg", ".jpeg":
		return imgio.JPEGEncoder(jpegQuality), nil
	case ".bmp":
		return imgio.BMPEncoder(), nil
	case ".tif", ".tiff":
		return func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
		}, nil
	}
	return nil, fmt.Errorf("unsupported image format %q", ext)
}
