package material

import (
	"github.com/Carmen-Shannon/oxy-hybrid/common"
	"github.com/Carmen-Shannon/oxy-hybrid/engine/renderer/bind_group_provider"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithDiffuse is an option builder that sets the diffuse texture staging data.
//
// Parameters:
//   - staging: the pixel data and dimensions for the diffuse texture
//
// Returns:
//   - MaterialBuilderOption: a function that applies the diffuse option to a material
func WithDiffuse(staging common.TextureStagingData) MaterialBuilderOption {
	return func(m *material) {
		m.diffuse = staging
	}
}

// WithSolidColor is an option builder that sets the diffuse texture to a 1x1
// solid color.
//
// Parameters:
//   - r, g, b, a: the color channels
//
// Returns:
//   - MaterialBuilderOption: a function that applies the solid color option to a material
func WithSolidColor(r, g, b, a uint8) MaterialBuilderOption {
	return func(m *material) {
		m.diffuse = common.SolidTexture(r, g, b, a)
	}
}

// WithSampler is an option builder that sets the sampler staging data.
//
// Parameters:
//   - staging: the sampler configuration
//
// Returns:
//   - MaterialBuilderOption: a function that applies the sampler option to a material
func WithSampler(staging common.SamplerStagingData) MaterialBuilderOption {
	return func(m *material) {
		m.sampler = staging
	}
}

// WithPipelineKey is an option builder that sets the render pipeline key.
//
// Parameters:
//   - key: the pipeline key to associate with this material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the pipeline key option to a material
func WithPipelineKey(key string) MaterialBuilderOption {
	return func(m *material) {
		m.pipelineKey = key
	}
}

// WithBindGroupProvider is an option builder that sets the bind group provider.
//
// Parameters:
//   - provider: the bind group provider containing GPU resources for this material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the bind group provider option to a material
func WithBindGroupProvider(provider bind_group_provider.BindGroupProvider) MaterialBuilderOption {
	return func(m *material) {
		m.bindGroupProvider = provider
	}
}
