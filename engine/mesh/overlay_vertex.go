package mesh

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
)

// GPUOverlayVertex is the GPU-aligned representation of a single overlay quad vertex.
// Size: 16 bytes (std430 aligned, no padding required).
type GPUOverlayVertex struct {
	Position [2]float32 // offset 0: vertex position in quad space (8 bytes)
	TexCoord [2]float32 // offset 8: UV texture coordinate (8 bytes)
}

// Size returns the size of the GPUOverlayVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUOverlayVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUOverlayVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload.
func (g *GPUOverlayVertex) Marshal() []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.TexCoord[0]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.TexCoord[1]))
	return buf
}

// OverlayVertexBufferLayout returns the wgpu vertex buffer layout matching GPUOverlayVertex.
// Attribute locations: position at 0, tex_coord at 1.
//
// Returns:
//   - wgpu.VertexBufferLayout: the layout for pipeline creation
func OverlayVertexBufferLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64((&GPUOverlayVertex{}).Size()),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{
				Format:         wgpu.VertexFormatFloat32x2,
				Offset:         0,
				ShaderLocation: 0,
			},
			{
				Format:         wgpu.VertexFormatFloat32x2,
				Offset:         8,
				ShaderLocation: 1,
			},
		},
	}
}

// MarshalOverlayVertices serializes an overlay vertex slice into a contiguous byte buffer for GPU upload.
//
// Parameters:
//   - vertices: the vertices to serialize
//
// Returns:
//   - []byte: the concatenated vertex data
func MarshalOverlayVertices(vertices []GPUOverlayVertex) []byte {
	buf := make([]byte, 0, len(vertices)*16)
	for i := range vertices {
		buf = append(buf, vertices[i].Marshal()...)
	}
	return buf
}

// MarshalIndices serializes an index slice into little-endian uint32 bytes for GPU upload.
//
// Parameters:
//   - indices: the indices to serialize
//
// Returns:
//   - []byte: the packed index data
func MarshalIndices(indices []uint32) []byte {
	buf := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}
