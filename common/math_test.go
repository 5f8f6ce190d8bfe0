package common

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := make([]float32, 16)
	for i := range m {
		m[i] = float32(i)
	}
	Identity(m)
	for i, v := range m {
		want := float32(0)
		if i%5 == 0 {
			want = 1
		}
		if v != want {
			t.Errorf("Identity()[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestMul4_Identity(t *testing.T) {
	id := make([]float32, 16)
	Identity(id)

	m := []float32{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	}
	out := make([]float32, 16)

	Mul4(out, id, m)
	for i := range m {
		if out[i] != m[i] {
			t.Fatalf("I*M [%d] = %v, want %v", i, out[i], m[i])
		}
	}

	Mul4(out, m, id)
	for i := range m {
		if out[i] != m[i] {
			t.Fatalf("M*I [%d] = %v, want %v", i, out[i], m[i])
		}
	}
}

func TestMul4_AliasedOutput(t *testing.T) {
	// Mul4 must be safe when out aliases one of its inputs.
	a := []float32{
		2, 0, 0, 0,
		0, 2, 0, 0,
		0, 0, 2, 0,
		0, 0, 0, 1,
	}
	b := make([]float32, 16)
	copy(b, a)

	Mul4(a, a, b)
	for i, want := range []float32{4, 0, 0, 0, 0, 4, 0, 0, 0, 0, 4, 0, 0, 0, 0, 1} {
		if a[i] != want {
			t.Fatalf("aliased Mul4 [%d] = %v, want %v", i, a[i], want)
		}
	}
}

func TestPerspective_ReferenceValues(t *testing.T) {
	// fovY = pi/4, aspect = 4/3, near = 1, far = 10 — the fixed reference
	// projection parameters used by the cube pipeline.
	out := make([]float32, 16)
	Perspective(out, float32(math.Pi/4.0), 4.0/3.0, 1.0, 10.0)

	f := float32(1.0 / math.Tan(math.Pi/8.0))
	checks := map[int]float32{
		0:  f / (4.0 / 3.0),
		5:  f,
		10: 10.0 / (1.0 - 10.0),
		11: -1.0,
		14: (1.0 * 10.0) / (1.0 - 10.0),
		15: 0.0,
	}
	for i, want := range checks {
		if diff := math.Abs(float64(out[i] - want)); diff > 1e-6 {
			t.Errorf("Perspective()[%d] = %v, want %v", i, out[i], want)
		}
	}
	// Off-diagonal entries not listed above must be zero.
	for _, i := range []int{1, 2, 3, 4, 6, 7, 8, 9, 12, 13} {
		if out[i] != 0 {
			t.Errorf("Perspective()[%d] = %v, want 0", i, out[i])
		}
	}
}

func TestPerspective_DepthRange(t *testing.T) {
	// WebGPU clip space: points on the near plane map to depth 0, points on
	// the far plane map to depth 1 after perspective divide.
	out := make([]float32, 16)
	near, far := float32(1.0), float32(10.0)
	Perspective(out, float32(math.Pi/4.0), 1.0, near, far)

	depthAt := func(z float32) float32 {
		// view-space point (0, 0, -z), column-major multiply
		clipZ := out[10]*(-z) + out[14]
		clipW := out[11] * (-z)
		return clipZ / clipW
	}

	if d := depthAt(near); math.Abs(float64(d)) > 1e-6 {
		t.Errorf("depth at near plane = %v, want 0", d)
	}
	if d := depthAt(far); math.Abs(float64(d-1)) > 1e-6 {
		t.Errorf("depth at far plane = %v, want 1", d)
	}
}

func TestLookAt_EyeMapsToOrigin(t *testing.T) {
	tests := []struct {
		name                   string
		eyeX, eyeY, eyeZ       float32
		ctrX, ctrY, ctrZ       float32
		upX, upY, upZ          float32
	}{
		{name: "reference view", eyeX: 1.5, eyeY: -5, eyeZ: 3, upZ: 1},
		{name: "axis aligned", eyeZ: 5, upY: 1},
		{name: "offset target", eyeX: 3, eyeY: 2, eyeZ: 1, ctrX: 1, ctrY: 1, upZ: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := make([]float32, 16)
			LookAt(out, tt.eyeX, tt.eyeY, tt.eyeZ, tt.ctrX, tt.ctrY, tt.ctrZ, tt.upX, tt.upY, tt.upZ)

			// Transforming the eye position must land on the view-space origin.
			x := out[0]*tt.eyeX + out[4]*tt.eyeY + out[8]*tt.eyeZ + out[12]
			y := out[1]*tt.eyeX + out[5]*tt.eyeY + out[9]*tt.eyeZ + out[13]
			z := out[2]*tt.eyeX + out[6]*tt.eyeY + out[10]*tt.eyeZ + out[14]
			if math.Abs(float64(x)) > 1e-5 || math.Abs(float64(y)) > 1e-5 || math.Abs(float64(z)) > 1e-5 {
				t.Errorf("eye transformed to (%v, %v, %v), want origin", x, y, z)
			}

			// Bottom row stays (0, 0, 0, 1) for a rigid transform.
			if out[3] != 0 || out[7] != 0 || out[11] != 0 || out[15] != 1 {
				t.Errorf("bottom row = (%v, %v, %v, %v), want (0, 0, 0, 1)", out[3], out[7], out[11], out[15])
			}
		})
	}
}

func TestLookAt_TargetOnNegativeZ(t *testing.T) {
	// Right-handed convention: the camera looks down -Z in view space.
	out := make([]float32, 16)
	LookAt(out, 1.5, -5, 3, 0, 0, 0, 0, 0, 1)

	z := out[2]*0 + out[6]*0 + out[10]*0 + out[14]
	if z >= 0 {
		t.Errorf("target view-space z = %v, want negative", z)
	}
}
