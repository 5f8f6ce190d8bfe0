package canvas

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUOverlayShaderSource is the WGSL source for the overlay text pipeline.
// Declares the OverlayUniform transform (group 1) and the glyph texture and
// sampler (group 0) alongside the vs_main/fs_main entry points.
//
//go:embed assets/overlay.wgsl
var GPUOverlayShaderSource string

// GPUOverlayUniform is the GPU-aligned representation of the overlay uniform buffer.
// Matches the WGSL OverlayUniform struct layout exactly (see GPUOverlayShaderSource).
// Size: 64 bytes (a single column-major mat4x4<f32>).
type GPUOverlayUniform struct {
	Transform [16]float32 // offset 0: quad-to-clip-space transform (mat4x4<f32>)
}

// NewGPUOverlayUniform packs a column-major transform matrix into a
// GPUOverlayUniform ready for upload.
//
// Parameters:
//   - transform: the quad-to-clip-space transform, column-major
//
// Returns:
//   - GPUOverlayUniform: the packed uniform
func NewGPUOverlayUniform(transform [16]float32) GPUOverlayUniform {
	return GPUOverlayUniform{Transform: transform}
}

// Size returns the size of the GPUOverlayUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (g *GPUOverlayUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUOverlayUniform struct into a byte buffer suitable for GPU upload.
// The encoding is little-endian IEEE-754, matching WGSL uniform buffer layout.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUOverlayUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Transform[i]))
	}
	return buf
}

// Unmarshal deserializes a byte buffer produced by Marshal back into the struct.
//
// Parameters:
//   - buf: the serialized byte buffer, at least Size() bytes
//
// Returns:
//   - bool: true if the buffer was large enough to decode
func (g *GPUOverlayUniform) Unmarshal(buf []byte) bool {
	if len(buf) < g.Size() {
		return false
	}
	for i := range 16 {
		g.Transform[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return true
}
