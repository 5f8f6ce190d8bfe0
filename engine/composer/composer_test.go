package composer

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-hybrid/common"
	"github.com/Carmen-Shannon/oxy-hybrid/engine/camera"
	"github.com/Carmen-Shannon/oxy-hybrid/engine/mesh"
	"github.com/Carmen-Shannon/oxy-hybrid/engine/renderer"
	"github.com/Carmen-Shannon/oxy-hybrid/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-hybrid/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-hybrid/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// fakeRenderer records the call sequence and lets tests inject failures at
// specific stages of the frame.
type fakeRenderer struct {
	log []string

	beginFrameErr   error
	drawCallErr     error
	beginOverlayErr error
	endFrameErr     error
}

var _ renderer.Renderer = &fakeRenderer{}

func (f *fakeRenderer) Pipeline(key string) pipeline.Pipeline          { return nil }
func (f *fakeRenderer) Pipelines() map[string]pipeline.Pipeline        { return nil }
func (f *fakeRenderer) RegisterPipelines(...pipeline.Pipeline) error   { return nil }
func (f *fakeRenderer) SetPipeline(key string, p pipeline.Pipeline)    {}
func (f *fakeRenderer) SetPipelines(map[string]pipeline.Pipeline)      {}
func (f *fakeRenderer) DepthPolicy() pipeline.DepthPolicy              { return pipeline.DepthPolicyReversedZ }
func (f *fakeRenderer) SetPresentMode(mode renderer.PresentMode)       {}
func (f *fakeRenderer) InitTextureView(bind_group_provider.BindGroupProvider, int, common.TextureStagingData) error {
	return nil
}
func (f *fakeRenderer) InitSampler(bind_group_provider.BindGroupProvider, int, common.SamplerStagingData) error {
	return nil
}
func (f *fakeRenderer) InitBindGroup(bind_group_provider.BindGroupProvider, wgpu.BindGroupLayoutDescriptor, map[int]wgpu.BufferUsage, map[int]uint64) error {
	return nil
}
func (f *fakeRenderer) InitMeshBuffers(bind_group_provider.BindGroupProvider, []byte, []byte, int) error {
	return nil
}

func (f *fakeRenderer) Resize(width, height int) {
	f.log = append(f.log, fmt.Sprintf("resize(%d,%d)", width, height))
}

func (f *fakeRenderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	f.log = append(f.log, fmt.Sprintf("writeBuffers(%d)", len(writes)))
}

func (f *fakeRenderer) BeginFrame() error {
	f.log = append(f.log, "beginFrame")
	return f.beginFrameErr
}

func (f *fakeRenderer) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error {
	f.log = append(f.log, fmt.Sprintf("drawCall(%s,indices=%d,instances=%d,groups=%d)",
		pipelineKey, meshProvider.IndexCount(), instanceCount, len(bindGroups)))
	return f.drawCallErr
}

func (f *fakeRenderer) EndMainPass() {
	f.log = append(f.log, "endMainPass")
}

func (f *fakeRenderer) BeginOverlayPass() error {
	f.log = append(f.log, "beginOverlayPass")
	return f.beginOverlayErr
}

func (f *fakeRenderer) EndFrame() error {
	f.log = append(f.log, "endFrame")
	return f.endFrameErr
}

func (f *fakeRenderer) Present() {
	f.log = append(f.log, "present")
}

// fakeCanvas records overlay calls into the shared renderer log so tests can
// assert cross-collaborator ordering, and forwards pass transitions to the
// renderer the way the real canvas does.
type fakeCanvas struct {
	r *fakeRenderer

	drawTextErr error
	screen      common.Rect
}

func (f *fakeCanvas) BeginOverlay() error {
	return f.r.BeginOverlayPass()
}

func (f *fakeCanvas) DrawText(content string, x, y float32) error {
	f.r.log = append(f.r.log, fmt.Sprintf("drawText(%q,%.0f,%.0f)", content, x, y))
	return f.drawTextErr
}

func (f *fakeCanvas) Finish() error {
	return f.r.EndFrame()
}

func (f *fakeCanvas) SetScreenCoordinates(rect common.Rect) {
	f.screen = rect
	f.r.log = append(f.r.log, fmt.Sprintf("setScreen(%.0fx%.0f)", rect.W, rect.H))
}

func (f *fakeCanvas) ScreenCoordinates() common.Rect { return f.screen }
func (f *fakeCanvas) Prewarm(contents ...string)     {}
func (f *fakeCanvas) Release()                       {}

// cubeMeshProvider builds a mesh provider carrying the cube's index count so
// draw-call assertions see the real index tuple.
func cubeMeshProvider() bind_group_provider.BindGroupProvider {
	_, indices := mesh.BuildCube()
	p := bind_group_provider.NewBindGroupProvider("test_mesh")
	p.SetIndexCount(len(indices))
	return p
}

func newTestComposer(t *testing.T, r *fakeRenderer, cv *fakeCanvas, extra ...ComposerBuilderOption) FrameComposer {
	t.Helper()

	options := append([]ComposerBuilderOption{
		WithCamera(camera.NewCamera()),
		WithUniformRing(camera.NewUniformRing()),
		WithScenePipeline("cube"),
		WithMeshProvider(cubeMeshProvider()),
		WithMaterial(material.NewMaterial(
			material.WithName("test_material"),
			material.WithPipelineKey("cube"),
			material.WithBindGroupProvider(bind_group_provider.NewBindGroupProvider("test_material")),
		)),
		WithSurfaceSize(800, 600),
	}, extra...)

	c, err := NewFrameComposer(r, cv, options...)
	if err != nil {
		t.Fatalf("NewFrameComposer returned error: %v", err)
	}
	return c
}

func TestRenderFrame_CallOrder(t *testing.T) {
	r := &fakeRenderer{}
	cv := &fakeCanvas{r: r}
	c := newTestComposer(t, r, cv,
		WithOverlayLine("You can mix ggez and wgpu drawing;", 10, 210),
		WithOverlayLine("it basically draws wgpu stuff first, then ggez", 10, 250),
	)

	if err := c.RenderFrame(); err != nil {
		t.Fatalf("RenderFrame returned error: %v", err)
	}

	want := []string{
		"writeBuffers(1)",
		"beginFrame",
		"drawCall(cube,indices=36,instances=1,groups=2)",
		"endMainPass",
		"beginOverlayPass",
		`drawText("You can mix ggez and wgpu drawing;",10,210)`,
		`drawText("it basically draws wgpu stuff first, then ggez",10,250)`,
		"endFrame",
		"present",
	}
	if len(r.log) != len(want) {
		t.Fatalf("call log has %d entries, want %d:\n%s", len(r.log), len(want), strings.Join(r.log, "\n"))
	}
	for i := range want {
		if r.log[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, r.log[i], want[i])
		}
	}

	if got := c.State(); got != FrameStateIdle {
		t.Errorf("state after frame = %v, want idle", got)
	}
}

func TestRenderFrame_AdvancesUniformRing(t *testing.T) {
	r := &fakeRenderer{}
	cv := &fakeCanvas{r: r}
	ring := camera.NewUniformRing()
	c := newTestComposer(t, r, cv, WithUniformRing(ring))

	for frame := range 3 {
		wantSlot := frame % 3
		if got := ring.Slot(); got != wantSlot {
			t.Fatalf("before frame %d ring slot = %d, want %d", frame, got, wantSlot)
		}
		if err := c.RenderFrame(); err != nil {
			t.Fatalf("RenderFrame %d returned error: %v", frame, err)
		}
	}
	if got := ring.Slot(); got != 0 {
		t.Errorf("ring slot after 3 frames = %d, want 0 (wrapped)", got)
	}
}

func TestRenderFrame_BeginFrameError(t *testing.T) {
	r := &fakeRenderer{beginFrameErr: errors.New("surface lost")}
	cv := &fakeCanvas{r: r}
	c := newTestComposer(t, r, cv)

	if err := c.RenderFrame(); err == nil {
		t.Fatal("RenderFrame should propagate BeginFrame error")
	}
	if got := c.State(); got != FrameStateIdle {
		t.Errorf("state after failed frame = %v, want idle", got)
	}
	for _, call := range r.log {
		if call == "present" {
			t.Error("failed BeginFrame must not present")
		}
	}
}

func TestRenderFrame_DrawCallErrorAbandonsFrame(t *testing.T) {
	r := &fakeRenderer{drawCallErr: errors.New("pipeline missing")}
	cv := &fakeCanvas{r: r}
	c := newTestComposer(t, r, cv)

	if err := c.RenderFrame(); err == nil {
		t.Fatal("RenderFrame should propagate DrawCall error")
	}
	if got := c.State(); got != FrameStateIdle {
		t.Errorf("state after failed frame = %v, want idle", got)
	}

	// The acquired swapchain texture must still be flushed and presented.
	sawEndFrame, sawPresent := false, false
	for _, call := range r.log {
		if call == "endFrame" {
			sawEndFrame = true
		}
		if call == "present" {
			sawPresent = true
		}
	}
	if !sawEndFrame || !sawPresent {
		t.Errorf("abandoned frame must end and present; log:\n%s", strings.Join(r.log, "\n"))
	}
}

func TestRenderFrame_OverlayTextErrorAbandonsFrame(t *testing.T) {
	r := &fakeRenderer{}
	cv := &fakeCanvas{r: r, drawTextErr: errors.New("raster failed")}
	c := newTestComposer(t, r, cv, WithOverlayLine("hello", 10, 10))

	if err := c.RenderFrame(); err == nil {
		t.Fatal("RenderFrame should propagate DrawText error")
	}
	if got := c.State(); got != FrameStateIdle {
		t.Errorf("state after failed frame = %v, want idle", got)
	}
}

func TestRenderFrame_SubmitErrorPropagates(t *testing.T) {
	r := &fakeRenderer{endFrameErr: errors.New("queue submission failed")}
	cv := &fakeCanvas{r: r}
	c := newTestComposer(t, r, cv)

	if err := c.RenderFrame(); err == nil {
		t.Fatal("RenderFrame should propagate the submission error")
	}
	if got := c.State(); got != FrameStateIdle {
		t.Errorf("state after failed submit = %v, want idle", got)
	}
}

func TestRenderFrame_RejectsReentry(t *testing.T) {
	r := &fakeRenderer{}
	cv := &fakeCanvas{r: r}
	c := newTestComposer(t, r, cv).(*composerImpl)

	c.mu.Lock()
	c.state = FrameStateMainPass
	c.mu.Unlock()

	if err := c.RenderFrame(); err == nil {
		t.Error("RenderFrame should reject a call while a frame is in progress")
	}
}

func TestOnResize(t *testing.T) {
	r := &fakeRenderer{}
	cv := &fakeCanvas{r: r}
	cam := camera.NewCamera()
	c := newTestComposer(t, r, cv, WithCamera(cam))

	// Same size is a no-op.
	c.OnResize(800, 600)
	if len(r.log) != 0 {
		t.Fatalf("resize to current size should be a no-op, got: %v", r.log)
	}

	c.OnResize(1024, 768)
	want := []string{"resize(1024,768)", "setScreen(1024x768)"}
	if len(r.log) != len(want) || r.log[0] != want[0] || r.log[1] != want[1] {
		t.Errorf("resize call log = %v, want %v", r.log, want)
	}
	if got, want := cam.Aspect(), float32(1024)/float32(768); got != want {
		t.Errorf("camera aspect after resize = %v, want %v", got, want)
	}

	// Degenerate sizes are ignored (minimized window).
	before := len(r.log)
	c.OnResize(0, 0)
	if len(r.log) != before {
		t.Error("resize to zero size should be ignored")
	}
}

func TestNewFrameComposer_RequiresCollaborators(t *testing.T) {
	r := &fakeRenderer{}
	cv := &fakeCanvas{r: r}

	if _, err := NewFrameComposer(r, cv); err == nil {
		t.Error("NewFrameComposer without a camera should error")
	}
	if _, err := NewFrameComposer(nil, nil); err == nil {
		t.Error("NewFrameComposer without collaborators should error")
	}
}

func TestAddOverlayLine(t *testing.T) {
	r := &fakeRenderer{}
	cv := &fakeCanvas{r: r}
	c := newTestComposer(t, r, cv, WithOverlayLine("first", 1, 2))

	c.AddOverlayLine("second", 3, 4)

	lines := c.OverlayLines()
	if len(lines) != 2 {
		t.Fatalf("overlay line count = %d, want 2", len(lines))
	}
	if lines[1].Content != "second" || lines[1].X != 3 || lines[1].Y != 4 {
		t.Errorf("second line = %+v, want {second 3 4}", lines[1])
	}

	// Mutating the returned slice must not affect the composer's retained lines.
	lines[0].Content = "mutated"
	if c.OverlayLines()[0].Content != "first" {
		t.Error("OverlayLines must return a copy")
	}
}
