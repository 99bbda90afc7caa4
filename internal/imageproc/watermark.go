package imageproc

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

const (
	previewWidth = 1024
	jpegQuality  = 80

	stripeSpacing = 96
	stripeWidth   = 12
)

// WatermarkPreview produces the low-resolution watermarked rendition that
// galleries show before purchase: the image is downscaled to previewWidth
// and overlaid with translucent diagonal stripes.
func WatermarkPreview(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if img.Bounds().Dx() > previewWidth {
		img = imaging.Resize(img, previewWidth, 0, imaging.Lanczos)
	}

	marked := imaging.Overlay(img, stripeOverlay(img.Bounds()), image.Pt(0, 0), 1.0)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, marked, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	return buf.Bytes(), nil
}

func stripeOverlay(bounds image.Rectangle) image.Image {
	overlay := image.NewNRGBA(bounds)
	stripe := color.NRGBA{R: 255, G: 255, B: 255, A: 70}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if (x+y)%stripeSpacing < stripeWidth {
				overlay.SetNRGBA(x, y, stripe)
			}
		}
	}
	return overlay
}
