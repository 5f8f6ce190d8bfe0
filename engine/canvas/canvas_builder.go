package canvas

import "github.com/Carmen-Shannon/oxy-hybrid/common"

// CanvasBuilderOption is a function that configures a canvasImpl instance during construction.
type CanvasBuilderOption func(*canvasImpl)

// WithFontSize sets the font size used when rasterizing text, in points.
// Defaults to 24.
//
// Parameters:
//   - size: the font size in points
//
// Returns:
//   - CanvasBuilderOption: a function that sets the font size
func WithFontSize(size float64) CanvasBuilderOption {
	return func(c *canvasImpl) {
		c.fontSize = size
	}
}

// WithDPI sets the rendering resolution used when rasterizing text, in dots
// per inch. Defaults to 72.
//
// Parameters:
//   - dpi: the resolution in dots per inch
//
// Returns:
//   - CanvasBuilderOption: a function that sets the DPI
func WithDPI(dpi float64) CanvasBuilderOption {
	return func(c *canvasImpl) {
		c.dpi = dpi
	}
}

// WithScreenCoordinates sets the initial screen coordinate rectangle that
// DrawText positions map into. Defaults to (0, 0, 800, 600).
//
// Parameters:
//   - rect: the screen coordinate rectangle
//
// Returns:
//   - CanvasBuilderOption: a function that sets the screen coordinates
func WithScreenCoordinates(rect common.Rect) CanvasBuilderOption {
	return func(c *canvasImpl) {
		c.screen = rect
	}
}

// WithRasterWorkers sets the number of worker goroutines used by Prewarm for
// parallel text rasterization. Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of raster workers
//
// Returns:
//   - CanvasBuilderOption: a function that sets the raster worker count
func WithRasterWorkers(n int) CanvasBuilderOption {
	return func(c *canvasImpl) {
		if n > 0 {
			c.rasterWorkers = n
		}
	}
}
