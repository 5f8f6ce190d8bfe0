package pipeline

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// DepthPolicy pairs a depth compare function with the clear value that makes
// it meaningful. The policy is chosen once at renderer construction and applied
// to every depth-tested pipeline and every depth attachment clear, so the two
// halves can never drift apart.
type DepthPolicy int

const (
	// DepthPolicyReversedZ stores 1.0 at the near plane and 0.0 at the far
	// plane. Fragments pass when their depth is greater than the stored value,
	// and the depth attachment clears to 0.0.
	DepthPolicyReversedZ DepthPolicy = iota

	// DepthPolicyStandardZ stores 0.0 at the near plane and 1.0 at the far
	// plane. Fragments pass when their depth is less than the stored value,
	// and the depth attachment clears to 1.0.
	DepthPolicyStandardZ
)

// CompareFunction returns the depth compare function this policy requires.
//
// Returns:
//   - wgpu.CompareFunction: CompareFunctionGreater for reversed-Z, CompareFunctionLess for standard-Z
func (d DepthPolicy) CompareFunction() wgpu.CompareFunction {
	switch d {
	case DepthPolicyStandardZ:
		return wgpu.CompareFunctionLess
	default:
		return wgpu.CompareFunctionGreater
	}
}

// ClearValue returns the depth attachment clear value this policy requires.
//
// Returns:
//   - float32: 0.0 for reversed-Z, 1.0 for standard-Z
func (d DepthPolicy) ClearValue() float32 {
	switch d {
	case DepthPolicyStandardZ:
		return 1.0
	default:
		return 0.0
	}
}

// String returns a human-readable name for the policy.
//
// Returns:
//   - string: the policy name
func (d DepthPolicy) String() string {
	switch d {
	case DepthPolicyStandardZ:
		return "standard-z"
	default:
		return "reversed-z"
	}
}
