package mesh

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
)

// GPUVertexSource is the canonical WGSL definition of the VertexInput struct for textured mesh pipelines.
// Matches GPUVertex layout exactly (24 bytes, std430 aligned).
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string

// GPUVertex is the GPU-aligned representation of a single textured mesh vertex.
// Matches the WGSL VertexInput struct layout exactly (see GPUVertexSource).
// Size: 24 bytes (std430 aligned, no padding required).
type GPUVertex struct {
	Position [4]float32 // offset  0: vertex position in model space, w = 1 (16 bytes)
	TexCoord [2]float32 // offset 16: UV texture coordinate (8 bytes)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 24-byte buffer ready for GPU upload.
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, 24)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Position[3]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.TexCoord[0]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.TexCoord[1]))
	return buf
}

// VertexBufferLayout returns the wgpu vertex buffer layout matching GPUVertex.
// Attribute locations match GPUVertexSource: position at 0, tex_coord at 1.
//
// Returns:
//   - wgpu.VertexBufferLayout: the layout for pipeline creation
func VertexBufferLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64((&GPUVertex{}).Size()),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{
				Format:         wgpu.VertexFormatFloat32x4,
				Offset:         0,
				ShaderLocation: 0,
			},
			{
				Format:         wgpu.VertexFormatFloat32x2,
				Offset:         16,
				ShaderLocation: 1,
			},
		},
	}
}

// MarshalVertices serializes a vertex slice into a contiguous byte buffer for GPU upload.
//
// Parameters:
//   - vertices: the vertices to serialize
//
// Returns:
//   - []byte: the concatenated vertex data
func MarshalVertices(vertices []GPUVertex) []byte {
	buf := make([]byte, 0, len(vertices)*24)
	for i := range vertices {
		buf = append(buf, vertices[i].Marshal()...)
	}
	return buf
}

// vertex is a shorthand constructor used by BuildCube.
func vertex(x, y, z, u, v float32) GPUVertex {
	return GPUVertex{
		Position: [4]float32{x, y, z, 1},
		TexCoord: [2]float32{u, v},
	}
}

// BuildCube returns the unit cube mesh spanning [-1, 1] on each axis.
// Each of the six faces carries its own four vertices so UVs stay per-face,
// and each face's six indices reference only that face's vertex block. The
// winding is counter-clockwise when viewed from outside the cube.
//
// Returns:
//   - []GPUVertex: 24 vertices, four per face
//   - []uint32: 36 indices, two triangles per face
func BuildCube() ([]GPUVertex, []uint32) {
	vertices := []GPUVertex{
		// top (0, 0, 1)
		vertex(-1, -1, 1, 0, 0),
		vertex(1, -1, 1, 1, 0),
		vertex(1, 1, 1, 1, 1),
		vertex(-1, 1, 1, 0, 1),
		// bottom (0, 0, -1)
		vertex(-1, 1, -1, 1, 0),
		vertex(1, 1, -1, 0, 0),
		vertex(1, -1, -1, 0, 1),
		vertex(-1, -1, -1, 1, 1),
		// right (1, 0, 0)
		vertex(1, -1, -1, 0, 0),
		vertex(1, 1, -1, 1, 0),
		vertex(1, 1, 1, 1, 1),
		vertex(1, -1, 1, 0, 1),
		// left (-1, 0, 0)
		vertex(-1, -1, 1, 1, 0),
		vertex(-1, 1, 1, 0, 0),
		vertex(-1, 1, -1, 0, 1),
		vertex(-1, -1, -1, 1, 1),
		// front (0, 1, 0)
		vertex(1, 1, -1, 1, 0),
		vertex(-1, 1, -1, 0, 0),
		vertex(-1, 1, 1, 0, 1),
		vertex(1, 1, 1, 1, 1),
		// back (0, -1, 0)
		vertex(1, -1, 1, 0, 0),
		vertex(-1, -1, 1, 1, 0),
		vertex(-1, -1, -1, 1, 1),
		vertex(1, -1, -1, 0, 1),
	}

	indices := []uint32{
		0, 1, 2, 2, 3, 0, // top
		4, 5, 6, 6, 7, 4, // bottom
		8, 9, 10, 10, 11, 8, // right
		12, 13, 14, 14, 15, 12, // left
		16, 17, 18, 18, 19, 16, // front
		20, 21, 22, 22, 23, 20, // back
	}

	return vertices, indices
}
