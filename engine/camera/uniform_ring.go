package camera

import (
	"strconv"
	"sync"

	"github.com/Carmen-Shannon/oxy-hybrid/engine/renderer/bind_group_provider"
)

// uniformRingSlots is the number of uniform buffer copies kept in flight.
// Three slots cover the frames the GPU may still be reading while the CPU
// stages the next one.
const uniformRingSlots = 3

type uniformRingImpl struct {
	mu *sync.Mutex

	providers [uniformRingSlots]bind_group_provider.BindGroupProvider
	slot      int
	size      int
}

// UniformRing cycles the camera uniform across a fixed set of GPU buffers so
// that staging a new frame's uniform never overwrites data a previous frame's
// submission may still reference.
type UniformRing interface {
	// Provider returns the bind group provider for the current slot.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the current slot's provider
	Provider() bind_group_provider.BindGroupProvider

	// Providers returns all providers in the ring in slot order.
	//
	// Returns:
	//   - []bind_group_provider.BindGroupProvider: every slot's provider
	Providers() []bind_group_provider.BindGroupProvider

	// Slot returns the index of the current slot.
	//
	// Returns:
	//   - int: the current slot index
	Slot() int

	// Size returns the byte size of the uniform each slot holds.
	//
	// Returns:
	//   - int: the uniform size in bytes
	Size() int

	// Stage packs the given uniform into a buffer write targeting the current slot.
	//
	// Parameters:
	//   - uniform: the camera uniform to stage
	//
	// Returns:
	//   - bind_group_provider.BufferWrite: the pending write for the current slot
	Stage(uniform GPUCameraUniform) bind_group_provider.BufferWrite

	// Advance moves the ring to the next slot, wrapping back to slot 0.
	Advance()

	// Release frees all GPU resources held by the ring's providers.
	Release()
}

var _ UniformRing = &uniformRingImpl{}

// NewUniformRing creates a uniform ring with one bind group provider per slot.
//
// Returns:
//   - UniformRing: the newly created ring
func NewUniformRing() UniformRing {
	r := &uniformRingImpl{
		mu:   &sync.Mutex{},
		size: (&GPUCameraUniform{}).Size(),
	}
	for i := range uniformRingSlots {
		r.providers[i] = bind_group_provider.NewBindGroupProvider(
			"camera_ring_" + strconv.Itoa(i),
		)
	}
	return r
}

func (r *uniformRingImpl) Provider() bind_group_provider.BindGroupProvider {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.providers[r.slot]
}

func (r *uniformRingImpl) Providers() []bind_group_provider.BindGroupProvider {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]bind_group_provider.BindGroupProvider, uniformRingSlots)
	copy(out, r.providers[:])
	return out
}

func (r *uniformRingImpl) Slot() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.slot
}

func (r *uniformRingImpl) Size() int {
	return r.size
}

func (r *uniformRingImpl) Stage(uniform GPUCameraUniform) bind_group_provider.BufferWrite {
	r.mu.Lock()
	defer r.mu.Unlock()
	return bind_group_provider.BufferWrite{
		Provider: r.providers[r.slot],
		Binding:  0,
		Offset:   0,
		Data:     uniform.Marshal(),
	}
}

func (r *uniformRingImpl) Advance() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slot = (r.slot + 1) % uniformRingSlots
}

func (r *uniformRingImpl) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.providers {
		if p != nil {
			p.Release()
		}
	}
}
