package canvas

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/Carmen-Shannon/oxy-hybrid/common"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var (
	rasterFontOnce sync.Once
	rasterFont     *opentype.Font
	rasterFontErr  error
)

// loadRasterFont parses the embedded Go Regular TTF exactly once. The parsed
// *opentype.Font is safe for concurrent use; faces created from it are not.
func loadRasterFont() (*opentype.Font, error) {
	rasterFontOnce.Do(func() {
		rasterFont, rasterFontErr = opentype.Parse(goregular.TTF)
	})
	return rasterFont, rasterFontErr
}

// rasterizeText renders content into a tightly-sized RGBA pixel buffer, white
// glyphs on a fully transparent background. Each call creates its own face, so
// rasterizeText is safe to call from worker goroutines.
//
// Parameters:
//   - content: the string to render
//   - size: the font size in points
//   - dpi: the rendering resolution in dots per inch
//
// Returns:
//   - common.TextureStagingData: the rendered pixels with their dimensions
//   - error: an error if the font could not be loaded or the face created
func rasterizeText(content string, size, dpi float64) (common.TextureStagingData, error) {
	fnt, err := loadRasterFont()
	if err != nil {
		return common.TextureStagingData{}, fmt.Errorf("failed to load overlay font: %w", err)
	}

	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return common.TextureStagingData{}, fmt.Errorf("failed to create overlay font face: %w", err)
	}
	defer face.Close()

	metrics := face.Metrics()
	advance := font.MeasureString(face, content)

	width := advance.Ceil()
	height := metrics.Height.Ceil()
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}),
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: metrics.Ascent},
	}
	drawer.DrawString(content)

	return common.TextureStagingData{
		Pixels: img.Pix,
		Width:  uint32(width),
		Height: uint32(height),
	}, nil
}
