package renderer

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestMergeBindGroupLayouts(t *testing.T) {
	vertexLayouts := map[int]wgpu.BindGroupLayoutDescriptor{
		1: {
			Label: "camera",
			Entries: []wgpu.BindGroupLayoutEntry{
				{
					Binding:    0,
					Visibility: wgpu.ShaderStageVertex,
					Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
				},
			},
		},
	}
	fragmentLayouts := map[int]wgpu.BindGroupLayoutDescriptor{
		0: {
			Label: "material",
			Entries: []wgpu.BindGroupLayoutEntry{
				{
					Binding:    0,
					Visibility: wgpu.ShaderStageFragment,
					Texture:    wgpu.TextureBindingLayout{SampleType: wgpu.TextureSampleTypeFloat},
				},
				{
					Binding:    1,
					Visibility: wgpu.ShaderStageFragment,
					Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeFiltering},
				},
			},
		},
	}

	merged := mergeBindGroupLayouts(vertexLayouts, fragmentLayouts)

	if len(merged) != 2 {
		t.Fatalf("got %d merged groups, want 2", len(merged))
	}
	if got := merged[0]; len(got.Entries) != 2 || got.Label != "material" {
		t.Errorf("group 0 = %+v, want the fragment material layout", got)
	}
	if got := merged[1]; len(got.Entries) != 1 || got.Label != "camera" {
		t.Errorf("group 1 = %+v, want the vertex camera layout", got)
	}
}

func TestMergeBindGroupLayouts_SharedBindingORsVisibility(t *testing.T) {
	vertexLayouts := map[int]wgpu.BindGroupLayoutDescriptor{
		0: {
			Label: "shared",
			Entries: []wgpu.BindGroupLayoutEntry{
				{
					Binding:    0,
					Visibility: wgpu.ShaderStageVertex,
					Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
				},
			},
		},
	}
	fragmentLayouts := map[int]wgpu.BindGroupLayoutDescriptor{
		0: {
			Label: "shared",
			Entries: []wgpu.BindGroupLayoutEntry{
				{
					Binding:    0,
					Visibility: wgpu.ShaderStageFragment,
					Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
				},
				{
					Binding:    1,
					Visibility: wgpu.ShaderStageFragment,
					Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeFiltering},
				},
			},
		},
	}

	merged := mergeBindGroupLayouts(vertexLayouts, fragmentLayouts)

	entries := merged[0].Entries
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	// Entries are sorted by binding.
	if entries[0].Binding != 0 || entries[1].Binding != 1 {
		t.Fatalf("entries not sorted by binding: %+v", entries)
	}
	wantVis := wgpu.ShaderStageVertex | wgpu.ShaderStageFragment
	if entries[0].Visibility != wantVis {
		t.Errorf("shared binding visibility = %v, want vertex|fragment", entries[0].Visibility)
	}
	if entries[1].Visibility != wgpu.ShaderStageFragment {
		t.Errorf("fragment-only binding visibility = %v, want fragment", entries[1].Visibility)
	}
}
