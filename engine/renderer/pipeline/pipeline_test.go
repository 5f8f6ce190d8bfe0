package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-hybrid/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

func TestDepthPolicy_Pairing(t *testing.T) {
	tests := []struct {
		name        string
		policy      DepthPolicy
		wantCompare wgpu.CompareFunction
		wantClear   float32
	}{
		{"reversed-z", DepthPolicyReversedZ, wgpu.CompareFunctionGreater, 0.0},
		{"standard-z", DepthPolicyStandardZ, wgpu.CompareFunctionLess, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.policy.CompareFunction(); got != tt.wantCompare {
				t.Errorf("CompareFunction = %v, want %v", got, tt.wantCompare)
			}
			if got := tt.policy.ClearValue(); got != tt.wantClear {
				t.Errorf("ClearValue = %v, want %v", got, tt.wantClear)
			}
			if got := tt.policy.String(); got != tt.name {
				t.Errorf("String = %q, want %q", got, tt.name)
			}
		})
	}
}

func TestNewPipeline_Defaults(t *testing.T) {
	p := NewPipeline("cube")

	if got := p.PipelineKey(); got != "cube" {
		t.Errorf("PipelineKey = %q, want %q", got, "cube")
	}
	if !p.DepthTestEnabled() {
		t.Error("depth test disabled by default")
	}
	if !p.DepthWriteEnabled() {
		t.Error("depth write disabled by default")
	}
	if p.BlendEnabled() {
		t.Error("blending enabled by default")
	}
	if got := p.CullMode(); got != wgpu.CullModeBack {
		t.Errorf("CullMode = %v, want back", got)
	}
	if got := p.Topology(); got != wgpu.PrimitiveTopologyTriangleList {
		t.Errorf("Topology = %v, want triangle list", got)
	}
	if got := p.FrontFace(); got != wgpu.FrontFaceCCW {
		t.Errorf("FrontFace = %v, want CCW", got)
	}
	if got := p.WriteMask(); got != wgpu.ColorWriteMaskAll {
		t.Errorf("WriteMask = %v, want all", got)
	}
	if p.Pipeline() != nil {
		t.Error("unregistered pipeline has a GPU object")
	}
}

func TestNewPipeline_Options(t *testing.T) {
	vs := shader.NewShader("vs", shader.ShaderTypeVertex, shader.WithSource("@vertex fn vs_main() {}"))
	fs := shader.NewShader("fs", shader.ShaderTypeFragment, shader.WithSource("@fragment fn fs_main() {}"))

	p := NewPipeline("overlay",
		WithVertexShader(vs),
		WithFragmentShader(fs),
		WithDepthTestEnabled(false),
		WithDepthWriteEnabled(false),
		WithBlendEnabled(true),
		WithCullMode(wgpu.CullModeNone),
	)

	if got := p.Shader(shader.ShaderTypeVertex); got != vs {
		t.Error("vertex shader not set")
	}
	if got := p.Shader(shader.ShaderTypeFragment); got != fs {
		t.Error("fragment shader not set")
	}
	if p.DepthTestEnabled() || p.DepthWriteEnabled() {
		t.Error("depth options not applied")
	}
	if !p.BlendEnabled() {
		t.Error("blend option not applied")
	}
	if p.BlendState() == nil {
		t.Error("default blend state missing")
	}
	if got := p.CullMode(); got != wgpu.CullModeNone {
		t.Errorf("CullMode = %v, want none", got)
	}
}

func TestNewPipeline_ConstructionIdempotent(t *testing.T) {
	vs := shader.NewShader("vs", shader.ShaderTypeVertex, shader.WithSource("@vertex fn vs_main() {}"))
	fs := shader.NewShader("fs", shader.ShaderTypeFragment, shader.WithSource("@fragment fn fs_main() {}"))
	build := func() Pipeline {
		return NewPipeline("cube", WithVertexShader(vs), WithFragmentShader(fs))
	}

	a, b := build(), build()
	if a.PipelineKey() != b.PipelineKey() {
		t.Errorf("keys differ: %q vs %q", a.PipelineKey(), b.PipelineKey())
	}
	if a.DepthTestEnabled() != b.DepthTestEnabled() || a.DepthWriteEnabled() != b.DepthWriteEnabled() {
		t.Error("depth configuration differs between identical constructions")
	}
	if a.BlendEnabled() != b.BlendEnabled() || a.CullMode() != b.CullMode() ||
		a.Topology() != b.Topology() || a.FrontFace() != b.FrontFace() || a.WriteMask() != b.WriteMask() {
		t.Error("primitive or color state differs between identical constructions")
	}
	if *a.BlendState() != *b.BlendState() {
		t.Error("blend state differs between identical constructions")
	}
}
