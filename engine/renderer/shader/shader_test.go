package shader

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

const testSource = `
@vertex
fn vs_main(@location(0) position: vec4<f32>) -> @builtin(position) vec4<f32> {
    return position;
}
`

func TestNewShader_Defaults(t *testing.T) {
	tests := []struct {
		name       string
		shaderType ShaderType
		wantEntry  string
	}{
		{"vertex", ShaderTypeVertex, "vs_main"},
		{"fragment", ShaderTypeFragment, "fs_main"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewShader("test_"+tt.name, tt.shaderType, WithSource(testSource))
			if got := s.EntryPoint(); got != tt.wantEntry {
				t.Errorf("EntryPoint = %q, want %q", got, tt.wantEntry)
			}
			if got := s.ShaderType(); got != tt.shaderType {
				t.Errorf("ShaderType = %v, want %v", got, tt.shaderType)
			}
			if s.Source() != testSource {
				t.Error("Source does not match input")
			}
		})
	}
}

func TestNewShader_Module(t *testing.T) {
	s := NewShader("cube_vs", ShaderTypeVertex, WithSource(testSource))
	m := s.Module()
	if m == nil {
		t.Fatal("Module is nil")
	}
	if m.Label != "cube_vs" {
		t.Errorf("module label = %q, want %q", m.Label, "cube_vs")
	}
	if m.WGSLDescriptor == nil || m.WGSLDescriptor.Code != testSource {
		t.Error("module WGSL code does not match source")
	}
}

func TestNewShader_EntryPointOverride(t *testing.T) {
	s := NewShader("override", ShaderTypeVertex, WithSource(testSource), WithEntryPoint("main"))
	if got := s.EntryPoint(); got != "main" {
		t.Errorf("EntryPoint = %q, want %q", got, "main")
	}
}

func TestNewShader_PanicsWithoutSource(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewShader did not panic without a source")
		}
	}()
	NewShader("missing", ShaderTypeVertex)
}

func TestNewShader_Layouts(t *testing.T) {
	desc := wgpu.BindGroupLayoutDescriptor{
		Label: "camera_layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type: wgpu.BufferBindingTypeUniform,
				},
			},
		},
	}
	layout := wgpu.VertexBufferLayout{
		ArrayStride: 24,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 0},
		},
	}

	s := NewShader("layouts", ShaderTypeVertex,
		WithSource(testSource),
		WithBindGroupLayoutDescriptor(1, desc),
		WithVertexLayout(0, layout),
	)

	if got := s.BindGroupLayoutDescriptor(1); got.Label != "camera_layout" || len(got.Entries) != 1 {
		t.Errorf("BindGroupLayoutDescriptor(1) = %+v, want the declared descriptor", got)
	}
	if got := s.BindGroupLayoutDescriptor(5); len(got.Entries) != 0 {
		t.Error("undeclared group returned a non-empty descriptor")
	}
	if got := len(s.BindGroupLayoutDescriptors()); got != 1 {
		t.Errorf("got %d declared groups, want 1", got)
	}

	vl := s.VertexLayout(0)
	if len(vl) != 1 || vl[0].ArrayStride != 24 {
		t.Errorf("VertexLayout(0) = %+v, want the declared layout", vl)
	}
	if s.VertexLayout(3) != nil {
		t.Error("undeclared slot returned a layout")
	}
}
