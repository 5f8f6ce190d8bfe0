package composer

import (
	"github.com/Carmen-Shannon/oxy-hybrid/engine/camera"
	"github.com/Carmen-Shannon/oxy-hybrid/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-hybrid/engine/renderer/material"
)

// ComposerBuilderOption is a function that configures a composerImpl instance during construction.
type ComposerBuilderOption func(*composerImpl)

// WithCamera sets the camera whose view-projection matrix is staged every frame.
//
// Parameters:
//   - cam: the camera to use
//
// Returns:
//   - ComposerBuilderOption: a function that sets the camera
func WithCamera(cam camera.Camera) ComposerBuilderOption {
	return func(c *composerImpl) {
		c.cam = cam
	}
}

// WithUniformRing sets the uniform ring the camera uniform cycles through.
//
// Parameters:
//   - ring: the uniform ring to use
//
// Returns:
//   - ComposerBuilderOption: a function that sets the uniform ring
func WithUniformRing(ring camera.UniformRing) ComposerBuilderOption {
	return func(c *composerImpl) {
		c.ring = ring
	}
}

// WithScenePipeline sets the key of the registered render pipeline used for the
// main pass draw.
//
// Parameters:
//   - key: the pipeline cache key
//
// Returns:
//   - ComposerBuilderOption: a function that sets the scene pipeline key
func WithScenePipeline(key string) ComposerBuilderOption {
	return func(c *composerImpl) {
		c.pipelineKey = key
	}
}

// WithMeshProvider sets the provider holding the scene's vertex and index buffers.
//
// Parameters:
//   - provider: the mesh provider
//
// Returns:
//   - ComposerBuilderOption: a function that sets the mesh provider
func WithMeshProvider(provider bind_group_provider.BindGroupProvider) ComposerBuilderOption {
	return func(c *composerImpl) {
		c.meshProvider = provider
	}
}

// WithMaterial sets the scene material whose bind group is bound at group 0
// during the main pass draw.
//
// Parameters:
//   - m: the scene material
//
// Returns:
//   - ComposerBuilderOption: a function that sets the scene material
func WithMaterial(m material.Material) ComposerBuilderOption {
	return func(c *composerImpl) {
		c.sceneMaterial = m
	}
}

// WithOverlayLine appends a retained text line drawn during every frame's
// overlay pass.
//
// Parameters:
//   - content: the string to draw
//   - x: the left edge in screen coordinates
//   - y: the top edge in screen coordinates
//
// Returns:
//   - ComposerBuilderOption: a function that appends the overlay line
func WithOverlayLine(content string, x, y float32) ComposerBuilderOption {
	return func(c *composerImpl) {
		c.overlayLines = append(c.overlayLines, OverlayLine{Content: content, X: x, Y: y})
	}
}

// WithSurfaceSize sets the composer's notion of the current surface size so the
// first OnResize with the same dimensions is a no-op.
//
// Parameters:
//   - width: the surface width in pixels
//   - height: the surface height in pixels
//
// Returns:
//   - ComposerBuilderOption: a function that sets the surface size
func WithSurfaceSize(width, height int) ComposerBuilderOption {
	return func(c *composerImpl) {
		c.surfaceWidth = width
		c.surfaceHeight = height
	}
}
