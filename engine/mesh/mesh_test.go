package mesh

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestGPUVertex_Size(t *testing.T) {
	v := &GPUVertex{}
	if got, want := v.Size(), 24; got != want {
		t.Fatalf("Size = %d, want %d", got, want)
	}
}

func TestGPUVertex_Marshal(t *testing.T) {
	v := vertex(1, -1, 1, 0.5, 0.25)
	buf := v.Marshal()
	if len(buf) != 24 {
		t.Fatalf("Marshal returned %d bytes, want 24", len(buf))
	}

	want := []float32{1, -1, 1, 1, 0.5, 0.25}
	for i, w := range want {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
		if got != w {
			t.Errorf("float %d = %v, want %v", i, got, w)
		}
	}
}

func TestVertexBufferLayout(t *testing.T) {
	layout := VertexBufferLayout()
	if layout.ArrayStride != 24 {
		t.Errorf("ArrayStride = %d, want 24", layout.ArrayStride)
	}
	if layout.StepMode != wgpu.VertexStepModeVertex {
		t.Errorf("StepMode = %v, want per-vertex", layout.StepMode)
	}
	if len(layout.Attributes) != 2 {
		t.Fatalf("got %d attributes, want 2", len(layout.Attributes))
	}

	pos := layout.Attributes[0]
	if pos.Format != wgpu.VertexFormatFloat32x4 || pos.Offset != 0 || pos.ShaderLocation != 0 {
		t.Errorf("position attribute = %+v, want Float32x4 at offset 0, location 0", pos)
	}
	uv := layout.Attributes[1]
	if uv.Format != wgpu.VertexFormatFloat32x2 || uv.Offset != 16 || uv.ShaderLocation != 1 {
		t.Errorf("tex_coord attribute = %+v, want Float32x2 at offset 16, location 1", uv)
	}
}

func TestBuildCube_Counts(t *testing.T) {
	vertices, indices := BuildCube()
	if len(vertices) != 24 {
		t.Errorf("got %d vertices, want 24", len(vertices))
	}
	if len(indices) != 36 {
		t.Errorf("got %d indices, want 36", len(indices))
	}
}

func TestBuildCube_IndicesStayWithinFaceBlocks(t *testing.T) {
	_, indices := BuildCube()
	for face := range 6 {
		lo := uint32(face * 4)
		hi := lo + 4
		for i := face * 6; i < face*6+6; i++ {
			if indices[i] < lo || indices[i] >= hi {
				t.Errorf("face %d index %d = %d, want in [%d, %d)", face, i, indices[i], lo, hi)
			}
		}
	}
}

func TestBuildCube_QuadPattern(t *testing.T) {
	_, indices := BuildCube()
	for face := range 6 {
		base := uint32(face * 4)
		want := []uint32{base, base + 1, base + 2, base + 2, base + 3, base}
		for i, w := range want {
			if got := indices[face*6+i]; got != w {
				t.Errorf("face %d index %d = %d, want %d", face, i, got, w)
			}
		}
	}
}

func TestBuildCube_VertexData(t *testing.T) {
	vertices, _ := BuildCube()
	for i, v := range vertices {
		if v.Position[3] != 1 {
			t.Errorf("vertex %d w = %v, want 1", i, v.Position[3])
		}
		for axis := range 3 {
			if c := v.Position[axis]; c != 1 && c != -1 {
				t.Errorf("vertex %d axis %d = %v, want ±1", i, axis, c)
			}
		}
		for axis := range 2 {
			if c := v.TexCoord[axis]; c != 0 && c != 1 {
				t.Errorf("vertex %d uv %d = %v, want 0 or 1", i, axis, c)
			}
		}
	}

	// Every face's four vertices share one fixed axis value.
	axes := []struct {
		axis  int
		value float32
	}{
		{2, 1}, {2, -1}, {0, 1}, {0, -1}, {1, 1}, {1, -1},
	}
	for face, a := range axes {
		for i := face * 4; i < face*4+4; i++ {
			if got := vertices[i].Position[a.axis]; got != a.value {
				t.Errorf("face %d vertex %d axis %d = %v, want %v", face, i, a.axis, got, a.value)
			}
		}
	}
}

func TestMarshalVertices(t *testing.T) {
	vertices, _ := BuildCube()
	buf := MarshalVertices(vertices)
	if got, want := len(buf), 24*24; got != want {
		t.Fatalf("MarshalVertices returned %d bytes, want %d", got, want)
	}
	// Spot-check that vertex 1 lands at its stride offset.
	x := math.Float32frombits(binary.LittleEndian.Uint32(buf[24:]))
	if x != vertices[1].Position[0] {
		t.Errorf("vertex 1 x = %v, want %v", x, vertices[1].Position[0])
	}
}
