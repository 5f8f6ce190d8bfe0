package shader

import (
	"github.com/cogentcore/webgpu/wgpu"
)

type ShaderBuilderOption func(*shader)

// WithSource sets the WGSL source code directly, typically from an embedded asset.
//
// Parameters:
//   - source: the WGSL source code
//
// Returns:
//   - ShaderBuilderOption: a function that sets the shader source
func WithSource(source string) ShaderBuilderOption {
	return func(s *shader) {
		s.source = source
	}
}

// WithSourcePath reads the WGSL source code from a file on disk.
// Panics if the file cannot be read.
//
// Parameters:
//   - path: the file path to read WGSL source from
//
// Returns:
//   - ShaderBuilderOption: a function that loads and sets the shader source
func WithSourcePath(path string) ShaderBuilderOption {
	return func(s *shader) {
		s.source = readSourceFile(s.key, path)
	}
}

// WithEntryPoint overrides the default entry point name for the shader stage.
//
// Parameters:
//   - entryPoint: the entry point function name in the WGSL source
//
// Returns:
//   - ShaderBuilderOption: a function that sets the entry point
func WithEntryPoint(entryPoint string) ShaderBuilderOption {
	return func(s *shader) {
		s.entryPoint = entryPoint
	}
}

// WithBindGroupLayoutDescriptor declares the bind group layout for a group index.
// The declaration must match the WGSL source's @group bindings.
//
// Parameters:
//   - group: the bind group index
//   - descriptor: the layout descriptor for the group
//
// Returns:
//   - ShaderBuilderOption: a function that records the descriptor
func WithBindGroupLayoutDescriptor(group int, descriptor wgpu.BindGroupLayoutDescriptor) ShaderBuilderOption {
	return func(s *shader) {
		s.bindGroupLayoutDescriptors[group] = descriptor
	}
}

// WithVertexLayout declares the vertex buffer layouts for a buffer slot.
// The declaration must match the WGSL source's @location attributes.
//
// Parameters:
//   - slot: the vertex buffer slot index
//   - layouts: the vertex buffer layouts for the slot
//
// Returns:
//   - ShaderBuilderOption: a function that records the layouts
func WithVertexLayout(slot int, layouts ...wgpu.VertexBufferLayout) ShaderBuilderOption {
	return func(s *shader) {
		s.vertexLayouts[slot] = layouts
	}
}
