package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
)

// GPUCameraUniformSource is the canonical WGSL definition of the CameraUniform struct.
// Matches GPUCameraUniform layout exactly (64 bytes, std430 aligned).
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// GPUCameraUniform is the GPU-aligned representation of the camera uniform buffer.
// Matches the WGSL CameraUniform struct layout exactly (see GPUCameraUniformSource).
// Size: 64 bytes (a single column-major mat4x4<f32>).
type GPUCameraUniform struct {
	ViewProj [16]float32 // offset 0: combined view-projection matrix (mat4x4<f32>)
}

// NewGPUCameraUniform packs a column-major view-projection matrix into a
// GPUCameraUniform ready for upload.
//
// Parameters:
//   - viewProj: the combined view-projection matrix, column-major
//
// Returns:
//   - GPUCameraUniform: the packed uniform
func NewGPUCameraUniform(viewProj [16]float32) GPUCameraUniform {
	return GPUCameraUniform{ViewProj: viewProj}
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Columns returns the packed matrix as four column vectors, in column order.
//
// Returns:
//   - [4][4]float32: the matrix columns
func (g *GPUCameraUniform) Columns() [4][4]float32 {
	var cols [4][4]float32
	for c := range 4 {
		copy(cols[c][:], g.ViewProj[c*4:c*4+4])
	}
	return cols
}

// Marshal serializes the GPUCameraUniform struct into a byte buffer suitable for GPU upload.
// The encoding is little-endian IEEE-754, matching WGSL uniform buffer layout.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.ViewProj[i]))
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
func (g *GPUCameraUniform) Unmarshal(buf []byte) bool {
	if len(buf) < g.Size() {
		return false
	}
	for i := range 16 {
		g.ViewProj[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return true
}

// UniformLayoutDescriptor returns the bind group layout for the camera uniform:
// a single uniform buffer at binding 0 visible to the vertex stage. Pipelines
// bind it at group 1 and the uniform ring's providers are initialized against it.
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the camera uniform layout
func UniformLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	entry := wgpu.BindGroupLayoutEntry{
		Binding:    0,
		Visibility: wgpu.ShaderStageVertex,
	}
	entry.Buffer.Type = wgpu.BufferBindingTypeUniform
	entry.Buffer.MinBindingSize = uint64((&GPUCameraUniform{}).Size())

	return wgpu.BindGroupLayoutDescriptor{
		Label:   "camera_uniform_layout",
		Entries: []wgpu.BindGroupLayoutEntry{entry},
	}
}
