package composer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-hybrid/common"
	"github.com/Carmen-Shannon/oxy-hybrid/engine/camera"
	"github.com/Carmen-Shannon/oxy-hybrid/engine/canvas"
	"github.com/Carmen-Shannon/oxy-hybrid/engine/renderer"
	"github.com/Carmen-Shannon/oxy-hybrid/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-hybrid/engine/renderer/material"
)

// OverlayLine is one retained text line drawn every frame during the overlay pass.
type OverlayLine struct {
	// Content is the string to draw.
	Content string
	// X is the left edge of the text in screen coordinates.
	X float32
	// Y is the top edge of the text in screen coordinates.
	Y float32
}

// composerImpl is the implementation of the FrameComposer interface.
type composerImpl struct {
	mu *sync.Mutex

	r  renderer.Renderer
	cv canvas.Canvas

	cam  camera.Camera
	ring camera.UniformRing

	pipelineKey   string
	meshProvider  bind_group_provider.BindGroupProvider
	sceneMaterial material.Material

	overlayLines []OverlayLine

	surfaceWidth  int
	surfaceHeight int

	state FrameState
}

// FrameComposer records one hybrid frame per RenderFrame call: the depth-tested
// 3D scene in the main pass, then the retained 2D text overlay in a second pass
// on the same command encoder, then a single submit and present.
type FrameComposer interface {
	// RenderFrame records, submits, and presents one complete frame. Stages the
	// camera uniform for the current ring slot, draws the 3D scene in the main
	// pass, draws every overlay line in the overlay pass, submits the command
	// buffer, presents the surface, and advances the uniform ring. Any error
	// abandons the frame and resets the composer to idle.
	//
	// Returns:
	//   - error: an error if any stage of frame recording or submission fails
	RenderFrame() error

	// OnResize reconfigures the surface, the overlay's screen coordinates, and
	// the camera aspect ratio for a new surface size. Calling with the current
	// size is a no-op. Must not be called while a frame is being recorded.
	//
	// Parameters:
	//   - width: the new surface width in pixels
	//   - height: the new surface height in pixels
	OnResize(width, height int)

	// State returns the composer's current frame state.
	//
	// Returns:
	//   - FrameState: the current state
	State() FrameState

	// OverlayLines returns the retained overlay lines drawn every frame.
	//
	// Returns:
	//   - []OverlayLine: the overlay lines in draw order
	OverlayLines() []OverlayLine

	// AddOverlayLine appends a retained text line drawn during every subsequent
	// frame's overlay pass.
	//
	// Parameters:
	//   - content: the string to draw
	//   - x: the left edge in screen coordinates
	//   - y: the top edge in screen coordinates
	AddOverlayLine(content string, x, y float32)

	// Release frees the GPU resources owned by the composer's uniform ring.
	// The mesh provider and material are owned by the caller.
	Release()
}

var _ FrameComposer = &composerImpl{}

// NewFrameComposer creates a FrameComposer that records frames through the
// given renderer and canvas.
//
// Parameters:
//   - r: the renderer frames are recorded into
//   - cv: the canvas drawing the 2D overlay
//   - options: variadic list of ComposerBuilderOption functions to configure the composer
//
// Returns:
//   - FrameComposer: a new FrameComposer instance
//   - error: an error if a required collaborator was not provided
func NewFrameComposer(r renderer.Renderer, cv canvas.Canvas, options ...ComposerBuilderOption) (FrameComposer, error) {
	c := &composerImpl{
		mu:    &sync.Mutex{},
		r:     r,
		cv:    cv,
		state: FrameStateIdle,
	}

	for _, opt := range options {
		opt(c)
	}

	if c.r == nil {
		return nil, fmt.Errorf("frame composer requires a renderer")
	}
	if c.cv == nil {
		return nil, fmt.Errorf("frame composer requires a canvas")
	}
	if c.cam == nil {
		return nil, fmt.Errorf("frame composer requires a camera")
	}
	if c.ring == nil {
		return nil, fmt.Errorf("frame composer requires a uniform ring")
	}
	if c.pipelineKey == "" {
		return nil, fmt.Errorf("frame composer requires a scene pipeline key")
	}
	if c.meshProvider == nil {
		return nil, fmt.Errorf("frame composer requires a mesh provider")
	}
	if c.sceneMaterial == nil {
		return nil, fmt.Errorf("frame composer requires a scene material")
	}

	return c, nil
}

func (c *composerImpl) RenderFrame() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != FrameStateIdle {
		return fmt.Errorf("RenderFrame called in state %q, frame already in progress", c.state)
	}

	// Stage this frame's camera uniform into the ring's current slot before any
	// pass begins so the queue write lands ahead of the submission that reads it.
	uniform := camera.NewGPUCameraUniform(c.cam.ViewProjectionMatrix())
	c.r.WriteBuffers([]bind_group_provider.BufferWrite{c.ring.Stage(uniform)})

	if err := c.r.BeginFrame(); err != nil {
		c.state = FrameStateIdle
		return fmt.Errorf("failed to begin frame: %w", err)
	}
	c.state = FrameStateMainPass

	if err := c.r.DrawCall(c.pipelineKey, c.meshProvider, 1, []bind_group_provider.BindGroupProvider{
		c.sceneMaterial.BindGroupProvider(),
		c.ring.Provider(),
	}); err != nil {
		c.abandonFrame()
		return fmt.Errorf("failed to draw scene: %w", err)
	}

	c.r.EndMainPass()
	c.state = FrameStateMainPassEnded

	if err := c.cv.BeginOverlay(); err != nil {
		c.abandonFrame()
		return fmt.Errorf("failed to begin overlay pass: %w", err)
	}
	c.state = FrameStateOverlayPass

	for _, line := range c.overlayLines {
		if err := c.cv.DrawText(line.Content, line.X, line.Y); err != nil {
			c.abandonFrame()
			return fmt.Errorf("failed to draw overlay text %q: %w", line.Content, err)
		}
	}

	if err := c.cv.Finish(); err != nil {
		c.state = FrameStateIdle
		return fmt.Errorf("failed to submit frame: %w", err)
	}
	c.state = FrameStateSubmitted

	c.r.Present()
	c.ring.Advance()
	c.state = FrameStateIdle
	return nil
}

// abandonFrame submits whatever has been recorded so the frame's encoder and
// swapchain texture are not leaked, then returns the composer to idle. Caller
// must hold c.mu.
func (c *composerImpl) abandonFrame() {
	_ = c.r.EndFrame()
	c.r.Present()
	c.state = FrameStateIdle
}

func (c *composerImpl) OnResize(width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if width == c.surfaceWidth && height == c.surfaceHeight {
		return
	}
	if width <= 0 || height <= 0 {
		return
	}
	c.surfaceWidth = width
	c.surfaceHeight = height

	c.r.Resize(width, height)
	c.cv.SetScreenCoordinates(common.NewRect(0, 0, float32(width), float32(height)))
	c.cam.SetAspect(float32(width) / float32(height))
}

func (c *composerImpl) State() FrameState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *composerImpl) OverlayLines() []OverlayLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]OverlayLine, len(c.overlayLines))
	copy(out, c.overlayLines)
	return out
}

func (c *composerImpl) AddOverlayLine(content string, x, y float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.overlayLines = append(c.overlayLines, OverlayLine{Content: content, X: x, Y: y})
}

func (c *composerImpl) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ring.Release()
}
