package canvas

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-hybrid/common"
	"github.com/Carmen-Shannon/oxy-hybrid/engine/mesh"
	"github.com/Carmen-Shannon/oxy-hybrid/engine/renderer"
	"github.com/Carmen-Shannon/oxy-hybrid/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-hybrid/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-hybrid/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// overlayPipelineKey identifies the text overlay render pipeline in the
// renderer's pipeline cache.
const overlayPipelineKey = "overlay_text"

// textEntry is the cached per-string state: rasterized pixels plus the GPU
// resources created lazily on first draw. One uniform buffer per string means
// a string can appear at one position per frame; drawing the same string at
// two positions requires distinct content strings.
type textEntry struct {
	staging common.TextureStagingData

	textureProvider bind_group_provider.BindGroupProvider
	uniformProvider bind_group_provider.BindGroupProvider
	gpuReady        bool
}

// canvasImpl is the implementation of the Canvas interface.
type canvasImpl struct {
	mu *sync.Mutex

	r renderer.Renderer

	cache map[string]*textEntry

	// rasterPool manages a bounded set of reusable goroutines for Prewarm
	// rasterization. GPU resource creation never happens on pool workers.
	rasterPool worker.DynamicWorkerPool

	quadProvider bind_group_provider.BindGroupProvider

	screen common.Rect

	fontSize      float64
	dpi           float64
	rasterWorkers int

	overlayActive bool
}

// Canvas is a retained-mode 2D text overlay drawn on top of the 3D scene.
//
// Each unique string is rasterized once on the CPU, uploaded once as a texture,
// and replayed every frame as a textured quad. The overlay is recorded into the
// same frame as the 3D passes: call BeginOverlay after the renderer's main pass
// has ended, issue DrawText calls, then Finish to submit the frame.
type Canvas interface {
	// BeginOverlay begins the overlay render pass on the frame's open command
	// encoder. The renderer's main pass must already have ended.
	//
	// Returns:
	//   - error: an error if no frame is in progress
	BeginOverlay() error

	// DrawText draws content at screen position (x, y), the top-left corner of
	// the text in screen coordinates. The first draw of a new string rasterizes
	// it and creates its GPU resources; subsequent draws replay the cached quad.
	//
	// Parameters:
	//   - content: the string to draw
	//   - x: the left edge in screen coordinates
	//   - y: the top edge in screen coordinates
	//
	// Returns:
	//   - error: an error if rasterization, resource creation, or the draw fails
	DrawText(content string, x, y float32) error

	// Finish ends the overlay pass and submits the frame's command buffer to
	// the GPU. The caller is responsible for presenting afterwards.
	//
	// Returns:
	//   - error: an error if command encoding or submission fails
	Finish() error

	// SetScreenCoordinates sets the screen-coordinate rectangle that DrawText
	// positions map into. Typically the full surface: (0, 0, width, height).
	//
	// Parameters:
	//   - rect: the screen coordinate rectangle
	SetScreenCoordinates(rect common.Rect)

	// ScreenCoordinates returns the current screen coordinate rectangle.
	//
	// Returns:
	//   - common.Rect: the screen coordinate rectangle
	ScreenCoordinates() common.Rect

	// Prewarm rasterizes the given strings on the worker pool so their pixel
	// data is ready before the first frame that draws them. GPU resources are
	// still created on the render thread at first DrawText.
	//
	// Parameters:
	//   - contents: the strings to rasterize ahead of time
	Prewarm(contents ...string)

	// Release frees all GPU resources held by cached text entries and the
	// shared quad geometry.
	Release()
}

var _ Canvas = &canvasImpl{}

// NewCanvas creates a Canvas drawing through the given renderer. Registers the
// overlay text pipeline (no depth attachment, alpha blending enabled) and
// uploads the shared unit-quad geometry. Panics on failure since a canvas
// without its pipeline cannot draw anything.
//
// Parameters:
//   - r: the renderer the overlay records into
//   - options: variadic list of CanvasBuilderOption functions to configure the Canvas
//
// Returns:
//   - Canvas: a new Canvas instance
func NewCanvas(r renderer.Renderer, options ...CanvasBuilderOption) Canvas {
	c := &canvasImpl{
		mu:            &sync.Mutex{},
		r:             r,
		cache:         make(map[string]*textEntry),
		screen:        common.NewRect(0, 0, 800, 600),
		fontSize:      24,
		dpi:           72,
		rasterWorkers: max(runtime.NumCPU()-1, 1),
	}

	for _, opt := range options {
		opt(c)
	}

	c.rasterPool = worker.NewDynamicWorkerPool(c.rasterWorkers, 256, 1*time.Second)

	if err := r.RegisterPipelines(newOverlayPipeline()); err != nil {
		panic(fmt.Sprintf("failed to register overlay text pipeline: %v", err))
	}

	c.quadProvider = bind_group_provider.NewBindGroupProvider("overlay_quad")
	vertexData, indexData, indexCount := overlayQuadGeometry()
	if err := r.InitMeshBuffers(c.quadProvider, vertexData, indexData, indexCount); err != nil {
		panic(fmt.Sprintf("failed to upload overlay quad geometry: %v", err))
	}

	return c
}

// newOverlayPipeline builds the overlay text render pipeline description:
// textured quad, no depth test or write, standard alpha blending.
func newOverlayPipeline() pipeline.Pipeline {
	vs := shader.NewShader(overlayPipelineKey+"_vs", shader.ShaderTypeVertex,
		shader.WithSource(GPUOverlayShaderSource),
		shader.WithVertexLayout(0, mesh.OverlayVertexBufferLayout()),
		shader.WithBindGroupLayoutDescriptor(1, overlayUniformLayoutDescriptor()),
	)
	fs := shader.NewShader(overlayPipelineKey+"_fs", shader.ShaderTypeFragment,
		shader.WithSource(GPUOverlayShaderSource),
		shader.WithBindGroupLayoutDescriptor(0, overlayTextureLayoutDescriptor()),
	)
	// Culling is disabled because the screen-to-clip transform flips Y,
	// reversing the quad's winding order in clip space.
	return pipeline.NewPipeline(overlayPipelineKey,
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
		pipeline.WithDepthTestEnabled(false),
		pipeline.WithDepthWriteEnabled(false),
		pipeline.WithBlendEnabled(true),
		pipeline.WithCullMode(wgpu.CullModeNone),
	)
}

// overlayUniformLayoutDescriptor describes bind group 1: the per-string
// transform uniform visible to the vertex stage.
func overlayUniformLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	uniformEntry := wgpu.BindGroupLayoutEntry{
		Binding:    0,
		Visibility: wgpu.ShaderStageVertex,
	}
	uniformEntry.Buffer.Type = wgpu.BufferBindingTypeUniform
	uniformEntry.Buffer.MinBindingSize = uint64((&GPUOverlayUniform{}).Size())

	return wgpu.BindGroupLayoutDescriptor{
		Label:   "overlay_uniform_layout",
		Entries: []wgpu.BindGroupLayoutEntry{uniformEntry},
	}
}

// overlayTextureLayoutDescriptor describes bind group 0: the glyph texture and
// its sampler, visible to the fragment stage.
func overlayTextureLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	textureEntry := wgpu.BindGroupLayoutEntry{
		Binding:    0,
		Visibility: wgpu.ShaderStageFragment,
	}
	textureEntry.Texture.SampleType = wgpu.TextureSampleTypeFloat
	textureEntry.Texture.ViewDimension = wgpu.TextureViewDimension2D

	samplerEntry := wgpu.BindGroupLayoutEntry{
		Binding:    1,
		Visibility: wgpu.ShaderStageFragment,
	}
	samplerEntry.Sampler.Type = wgpu.SamplerBindingTypeFiltering

	return wgpu.BindGroupLayoutDescriptor{
		Label:   "overlay_texture_layout",
		Entries: []wgpu.BindGroupLayoutEntry{textureEntry, samplerEntry},
	}
}

func (c *canvasImpl) BeginOverlay() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.r.BeginOverlayPass(); err != nil {
		return err
	}
	c.overlayActive = true
	return nil
}

func (c *canvasImpl) DrawText(content string, x, y float32) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.overlayActive {
		return fmt.Errorf("DrawText called outside an active overlay pass")
	}

	entry, err := c.ensureEntry(content)
	if err != nil {
		return err
	}

	transform := overlayTransform(c.screen, x, y, float32(entry.staging.Width), float32(entry.staging.Height))
	uniform := NewGPUOverlayUniform(transform)
	c.r.WriteBuffers([]bind_group_provider.BufferWrite{{
		Provider: entry.uniformProvider,
		Binding:  0,
		Offset:   0,
		Data:     uniform.Marshal(),
	}})

	return c.r.DrawCall(overlayPipelineKey, c.quadProvider, 1, []bind_group_provider.BindGroupProvider{
		entry.textureProvider,
		entry.uniformProvider,
	})
}

func (c *canvasImpl) Finish() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.overlayActive = false
	return c.r.EndFrame()
}

func (c *canvasImpl) SetScreenCoordinates(rect common.Rect) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.screen = rect
}

func (c *canvasImpl) ScreenCoordinates() common.Rect {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screen
}

func (c *canvasImpl) Prewarm(contents ...string) {
	var wg sync.WaitGroup
	for i, content := range contents {
		c.mu.Lock()
		_, exists := c.cache[content]
		c.mu.Unlock()
		if exists {
			continue
		}

		wg.Add(1)
		contentCap := content // capture for closure
		c.rasterPool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()

				staging, err := rasterizeText(contentCap, c.fontSize, c.dpi)
				if err != nil {
					return nil, err
				}

				c.mu.Lock()
				if _, exists := c.cache[contentCap]; !exists {
					c.cache[contentCap] = &textEntry{staging: staging}
				}
				c.mu.Unlock()
				return nil, nil
			},
		})
	}
	wg.Wait()
}

func (c *canvasImpl) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, entry := range c.cache {
		if entry.textureProvider != nil {
			entry.textureProvider.Release()
		}
		if entry.uniformProvider != nil {
			entry.uniformProvider.Release()
		}
	}
	c.cache = make(map[string]*textEntry)
	if c.quadProvider != nil {
		c.quadProvider.Release()
	}
}

// ensureEntry returns the cached entry for content, rasterizing and creating
// GPU resources as needed. Caller must hold c.mu. Runs on the render thread
// since it touches GPU resources.
func (c *canvasImpl) ensureEntry(content string) (*textEntry, error) {
	entry, exists := c.cache[content]
	if !exists {
		staging, err := rasterizeText(content, c.fontSize, c.dpi)
		if err != nil {
			return nil, err
		}
		entry = &textEntry{staging: staging}
		c.cache[content] = entry
	}

	if entry.gpuReady {
		return entry, nil
	}

	entry.textureProvider = bind_group_provider.NewBindGroupProvider("overlay_text_tex_" + content)
	if err := c.r.InitTextureView(entry.textureProvider, 0, entry.staging); err != nil {
		return nil, err
	}
	if err := c.r.InitSampler(entry.textureProvider, 1, common.SamplerStagingData{
		AddressModeU: wgpu.AddressModeClampToEdge,
		AddressModeV: wgpu.AddressModeClampToEdge,
		AddressModeW: wgpu.AddressModeClampToEdge,
		MagFilter:    wgpu.FilterModeLinear,
		MinFilter:    wgpu.FilterModeLinear,
	}); err != nil {
		return nil, err
	}
	if err := c.r.InitBindGroup(entry.textureProvider, overlayTextureLayoutDescriptor(), nil, nil); err != nil {
		return nil, err
	}

	entry.uniformProvider = bind_group_provider.NewBindGroupProvider("overlay_text_uni_" + content)
	if err := c.r.InitBindGroup(entry.uniformProvider, overlayUniformLayoutDescriptor(), nil, nil); err != nil {
		return nil, err
	}

	entry.gpuReady = true
	return entry, nil
}

// overlayQuadGeometry returns the shared unit quad spanning [0,1] in both axes
// with matching texture coordinates, packed for GPU upload. The per-string
// transform scales and positions the quad in clip space.
func overlayQuadGeometry() (vertexData, indexData []byte, indexCount int) {
	vertices := []mesh.GPUOverlayVertex{
		{Position: [2]float32{0, 0}, TexCoord: [2]float32{0, 0}},
		{Position: [2]float32{1, 0}, TexCoord: [2]float32{1, 0}},
		{Position: [2]float32{1, 1}, TexCoord: [2]float32{1, 1}},
		{Position: [2]float32{0, 1}, TexCoord: [2]float32{0, 1}},
	}
	indices := []uint32{0, 1, 2, 2, 3, 0}
	return mesh.MarshalOverlayVertices(vertices), mesh.MarshalIndices(indices), len(indices)
}

// overlayTransform builds the column-major matrix mapping the unit quad to a
// w by h pixel rectangle whose top-left corner sits at (x, y) in the screen
// rect, expressed in clip space. Screen y grows downward; clip y grows upward.
//
// Parameters:
//   - screen: the screen coordinate rectangle
//   - x: the quad's left edge in screen coordinates
//   - y: the quad's top edge in screen coordinates
//   - w: the quad width in screen units
//   - h: the quad height in screen units
//
// Returns:
//   - [16]float32: the quad-to-clip-space transform, column-major
func overlayTransform(screen common.Rect, x, y, w, h float32) [16]float32 {
	var m [16]float32
	m[0] = 2 * w / screen.W
	m[5] = -2 * h / screen.H
	m[10] = 1
	m[12] = 2*(x-screen.X)/screen.W - 1
	m[13] = 1 - 2*(y-screen.Y)/screen.H
	m[15] = 1
	return m
}
