package material

import (
	"github.com/Carmen-Shannon/oxy-hybrid/common"
	"github.com/Carmen-Shannon/oxy-hybrid/engine/renderer/bind_group_provider"
	"github.com/cogentcore/webgpu/wgpu"
)

// material is the implementation of the Material interface.
type material struct {
	name              string
	diffuse           common.TextureStagingData
	sampler           common.SamplerStagingData
	pipelineKey       string
	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Material defines the interface for a textured render material: the diffuse
// texture and sampler staging data plus the GPU resource bindings needed for
// draw calls.
//
// Staging data (name, diffuse pixels, sampler config) is set at construction
// and is read-only through this interface. GPU resource references (pipeline
// key, bind group provider) are mutable so they can be configured after
// construction during GPU initialization.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Diffuse retrieves the diffuse texture staging data.
	//
	// Returns:
	//   - common.TextureStagingData: the pixel data and dimensions
	Diffuse() common.TextureStagingData

	// Sampler retrieves the sampler staging data. Zero-value fields fall back
	// to the renderer's sampler defaults.
	//
	// Returns:
	//   - common.SamplerStagingData: the sampler configuration
	Sampler() common.SamplerStagingData

	// PipelineKey retrieves the key identifying the render pipeline this material uses.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// BindGroupProvider retrieves the bind group provider holding GPU-side resources for this material.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the bind group provider, or nil if not yet initialized
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// SetPipelineKey sets the render pipeline key for this material.
	//
	// Parameters:
	//   - key: the pipeline key to associate with this material
	SetPipelineKey(key string)

	// SetBindGroupProvider sets the bind group provider for this material.
	//
	// Parameters:
	//   - provider: the bind group provider containing GPU resources for this material
	SetBindGroupProvider(provider bind_group_provider.BindGroupProvider)
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
// The default diffuse is a 1x1 opaque white texture.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		diffuse: common.SolidTexture(0xFF, 0xFF, 0xFF, 0xFF),
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Diffuse() common.TextureStagingData {
	return m.diffuse
}

func (m *material) Sampler() common.SamplerStagingData {
	return m.sampler
}

func (m *material) PipelineKey() string {
	return m.pipelineKey
}

func (m *material) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return m.bindGroupProvider
}

func (m *material) SetPipelineKey(key string) {
	m.pipelineKey = key
}

func (m *material) SetBindGroupProvider(provider bind_group_provider.BindGroupProvider) {
	m.bindGroupProvider = provider
}

// DiffuseLayoutDescriptor returns the bind group layout every textured material
// binds at group 0: the diffuse texture at binding 0 and its sampler at
// binding 1, both visible to the fragment stage.
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the diffuse texture layout
func DiffuseLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	textureEntry := wgpu.BindGroupLayoutEntry{
		Binding:    0,
		Visibility: wgpu.ShaderStageFragment,
	}
	textureEntry.Texture.SampleType = wgpu.TextureSampleTypeFloat
	textureEntry.Texture.ViewDimension = wgpu.TextureViewDimension2D

	samplerEntry := wgpu.BindGroupLayoutEntry{
		Binding:    1,
		Visibility: wgpu.ShaderStageFragment,
	}
	samplerEntry.Sampler.Type = wgpu.SamplerBindingTypeFiltering

	return wgpu.BindGroupLayoutDescriptor{
		Label:   "material_diffuse_layout",
		Entries: []wgpu.BindGroupLayoutEntry{textureEntry, samplerEntry},
	}
}
