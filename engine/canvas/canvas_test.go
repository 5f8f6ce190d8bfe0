package canvas

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-hybrid/common"
	"github.com/cogentcore/webgpu/wgpu"
)

func approxEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestOverlayTransform_CornersMapToClipSpace(t *testing.T) {
	screen := common.NewRect(0, 0, 800, 600)
	x, y := float32(10), float32(210)
	w, h := float32(320), float32(28)

	m := overlayTransform(screen, x, y, w, h)

	// Transform the unit quad corners: clip = m * (qx, qy, 0, 1).
	apply := func(qx, qy float32) (float32, float32) {
		cx := m[0]*qx + m[4]*qy + m[12]
		cy := m[1]*qx + m[5]*qy + m[13]
		return cx, cy
	}

	wantLeft := 2*x/screen.W - 1
	wantTop := 1 - 2*y/screen.H
	wantRight := 2*(x+w)/screen.W - 1
	wantBottom := 1 - 2*(y+h)/screen.H

	gotX, gotY := apply(0, 0)
	if !approxEqual(gotX, wantLeft) || !approxEqual(gotY, wantTop) {
		t.Errorf("top-left corner = (%v, %v), want (%v, %v)", gotX, gotY, wantLeft, wantTop)
	}

	gotX, gotY = apply(1, 1)
	if !approxEqual(gotX, wantRight) || !approxEqual(gotY, wantBottom) {
		t.Errorf("bottom-right corner = (%v, %v), want (%v, %v)", gotX, gotY, wantRight, wantBottom)
	}
}

func TestOverlayTransform_ScreenYGrowsDownward(t *testing.T) {
	screen := common.NewRect(0, 0, 800, 600)

	upper := overlayTransform(screen, 10, 210, 100, 20)
	lower := overlayTransform(screen, 10, 250, 100, 20)

	// Larger screen y must produce a smaller clip-space y for the quad's top edge.
	if lower[13] >= upper[13] {
		t.Errorf("clip y for screen y=250 (%v) should be below clip y for screen y=210 (%v)", lower[13], upper[13])
	}
}

func TestOverlayTransform_RespectsScreenOrigin(t *testing.T) {
	offset := overlayTransform(common.NewRect(100, 50, 800, 600), 110, 260, 64, 16)
	origin := overlayTransform(common.NewRect(0, 0, 800, 600), 10, 210, 64, 16)

	// Equal positions relative to the rect origin must yield equal transforms.
	for i := range 16 {
		if !approxEqual(offset[i], origin[i]) {
			t.Fatalf("transform[%d] = %v with offset origin, want %v", i, offset[i], origin[i])
		}
	}
}

func TestOverlayTransform_HomogeneousColumn(t *testing.T) {
	m := overlayTransform(common.NewRect(0, 0, 800, 600), 0, 0, 1, 1)
	if m[3] != 0 || m[7] != 0 || m[11] != 0 || m[15] != 1 {
		t.Errorf("bottom matrix row = (%v, %v, %v, %v), want (0, 0, 0, 1)", m[3], m[7], m[11], m[15])
	}
	if m[10] != 1 {
		t.Errorf("z scale = %v, want 1", m[10])
	}
}

func TestRasterizeText_ProducesRGBAPixels(t *testing.T) {
	staging, err := rasterizeText("You can mix ggez and wgpu drawing;", 24, 72)
	if err != nil {
		t.Fatalf("rasterizeText returned error: %v", err)
	}

	if staging.Width == 0 || staging.Height == 0 {
		t.Fatalf("rasterized dimensions = %dx%d, want non-zero", staging.Width, staging.Height)
	}
	if got, want := len(staging.Pixels), int(staging.Width*staging.Height*4); got != want {
		t.Errorf("pixel buffer length = %d, want %d (width*height*4)", got, want)
	}

	opaque := 0
	for i := 3; i < len(staging.Pixels); i += 4 {
		if staging.Pixels[i] != 0 {
			opaque++
		}
	}
	if opaque == 0 {
		t.Error("rasterized text contains no visible pixels")
	}
}

func TestRasterizeText_Deterministic(t *testing.T) {
	first, err := rasterizeText("it basically draws wgpu stuff first, then ggez", 24, 72)
	if err != nil {
		t.Fatalf("rasterizeText returned error: %v", err)
	}
	second, err := rasterizeText("it basically draws wgpu stuff first, then ggez", 24, 72)
	if err != nil {
		t.Fatalf("rasterizeText returned error: %v", err)
	}

	if first.Width != second.Width || first.Height != second.Height {
		t.Fatalf("dimensions differ between runs: %dx%d vs %dx%d", first.Width, first.Height, second.Width, second.Height)
	}
	for i := range first.Pixels {
		if first.Pixels[i] != second.Pixels[i] {
			t.Fatalf("pixel byte %d differs between runs", i)
		}
	}
}

func TestRasterizeText_WiderStringWiderTexture(t *testing.T) {
	short, err := rasterizeText("hi", 24, 72)
	if err != nil {
		t.Fatalf("rasterizeText returned error: %v", err)
	}
	long, err := rasterizeText("hi there, this string is much longer", 24, 72)
	if err != nil {
		t.Fatalf("rasterizeText returned error: %v", err)
	}

	if long.Width <= short.Width {
		t.Errorf("longer string width %d should exceed shorter string width %d", long.Width, short.Width)
	}
	if long.Height != short.Height {
		t.Errorf("line height should be constant for one face: %d vs %d", long.Height, short.Height)
	}
}

func TestOverlayLayoutDescriptors(t *testing.T) {
	uniformDesc := overlayUniformLayoutDescriptor()
	if len(uniformDesc.Entries) != 1 {
		t.Fatalf("uniform layout has %d entries, want 1", len(uniformDesc.Entries))
	}
	if got, want := uniformDesc.Entries[0].Buffer.MinBindingSize, uint64(64); got != want {
		t.Errorf("uniform MinBindingSize = %d, want %d", got, want)
	}

	textureDesc := overlayTextureLayoutDescriptor()
	if len(textureDesc.Entries) != 2 {
		t.Fatalf("texture layout has %d entries, want 2", len(textureDesc.Entries))
	}
	if textureDesc.Entries[0].Binding != 0 || textureDesc.Entries[1].Binding != 1 {
		t.Errorf("texture layout bindings = (%d, %d), want (0, 1)", textureDesc.Entries[0].Binding, textureDesc.Entries[1].Binding)
	}
}

func TestOverlayPipeline_Description(t *testing.T) {
	p := newOverlayPipeline()

	if got, want := p.PipelineKey(), overlayPipelineKey; got != want {
		t.Errorf("pipeline key = %q, want %q", got, want)
	}
	if p.DepthTestEnabled() {
		t.Error("overlay pipeline must not depth test")
	}
	if p.DepthWriteEnabled() {
		t.Error("overlay pipeline must not write depth")
	}
	if !p.BlendEnabled() {
		t.Error("overlay pipeline must blend")
	}
	if got := p.CullMode(); got != wgpu.CullModeNone {
		t.Errorf("overlay CullMode = %v, want none; the Y flip reverses quad winding", got)
	}
}

func TestGPUOverlayUniform_MarshalRoundTrip(t *testing.T) {
	u := NewGPUOverlayUniform(overlayTransform(common.NewRect(0, 0, 800, 600), 10, 210, 320, 28))
	buf := u.Marshal()
	if len(buf) != u.Size() {
		t.Fatalf("marshalled length = %d, want %d", len(buf), u.Size())
	}

	var decoded GPUOverlayUniform
	if !decoded.Unmarshal(buf) {
		t.Fatal("Unmarshal rejected a full-size buffer")
	}
	if decoded.Transform != u.Transform {
		t.Error("round-tripped transform does not match original")
	}

	if decoded.Unmarshal(buf[:32]) {
		t.Error("Unmarshal accepted a short buffer")
	}
}

func TestOverlayQuadGeometry(t *testing.T) {
	vertexData, indexData, indexCount := overlayQuadGeometry()

	if got, want := len(vertexData), 4*16; got != want {
		t.Errorf("vertex data length = %d, want %d", got, want)
	}
	if got, want := len(indexData), 6*4; got != want {
		t.Errorf("index data length = %d, want %d", got, want)
	}
	if indexCount != 6 {
		t.Errorf("index count = %d, want 6", indexCount)
	}
}

func TestPrewarm_CachesRasterizedStrings(t *testing.T) {
	c := &canvasImpl{
		mu:         &sync.Mutex{},
		cache:      make(map[string]*textEntry),
		rasterPool: worker.NewDynamicWorkerPool(2, 256, 1*time.Second),
		fontSize:   24,
		dpi:        72,
	}

	c.Prewarm("alpha", "beta")

	first, ok := c.cache["alpha"]
	if !ok {
		t.Fatal("Prewarm did not cache the first string")
	}
	if _, ok := c.cache["beta"]; !ok {
		t.Fatal("Prewarm did not cache the second string")
	}
	if first.staging.Width == 0 || len(first.staging.Pixels) == 0 {
		t.Error("cached entry has empty staging data")
	}
	if first.gpuReady {
		t.Error("Prewarm must not mark entries GPU-ready")
	}

	// A second prewarm of the same string is a cache hit and keeps the entry.
	c.Prewarm("alpha")
	if c.cache["alpha"] != first {
		t.Error("repeat Prewarm replaced a cached entry")
	}
}
