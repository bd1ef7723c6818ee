package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	result := m.TransformPoint([3]float32{1, 2, 3})

	expected := [3]float32{11, 22, 33}
	if result != expected {
		t.Errorf("TransformPoint: got %v, want %v", result, expected)
	}
}

func TestComposeOrder(t *testing.T) {
	// scale first, then translate
	m := Compose(Vec3{1, 0, 0}, Identity(), Vec3{2, 2, 2})
	got := m.TransformPoint([3]float32{1, 1, 0})

	want := [3]float32{3, 2, 0}
	if got != want {
		t.Errorf("Compose: got %v, want %v", got, want)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(float32(math.Pi/4), 1.0, 0.1, 100.0)

	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := Vec3{0, 0, 5}
	m := LookAt(eye, Vec3{}, Vec3{0, 1, 0})

	got := m.TransformPoint([3]float32{eye.X, eye.Y, eye.Z})
	for i, c := range got {
		if abs(c) > 1e-5 {
			t.Errorf("LookAt eye component %d = %f, want 0", i, c)
		}
	}
}

func TestLookRotation(t *testing.T) {
	tests := []struct {
		name    string
		forward Vec3
	}{
		{"straight ahead", Vec3{0, 0, 20}},
		{"up right", Vec3{0.5, 0.5, 20}},
		{"down left", Vec3{-0.8, -0.3, 20}},
		{"parallel to up", Vec3{0, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := LookRotation(tt.forward, Vec3{0, 1, 0})
			z := m.TransformPoint([3]float32{0, 0, 1})
			want := tt.forward.Normalize()

			if abs(z[0]-want.X) > 1e-3 || abs(z[1]-want.Y) > 1e-3 || abs(z[2]-want.Z) > 1e-3 {
				t.Errorf("+Z maps to %v, want %v", z, want)
			}
		})
	}
}

func TestLookRotationZeroForward(t *testing.T) {
	if m := LookRotation(Vec3{}, Vec3{0, 1, 0}); m != Identity() {
		t.Errorf("zero forward should give identity, got %v", m)
	}
}

func TestInverse(t *testing.T) {
	m := Compose(Vec3{1, -2, 3}, LookRotation(Vec3{0.2, 0.1, 1}, Vec3{0, 1, 0}), Vec3{2, 3, 4})
	product := m.Mul(m.Inverse())

	id := Identity()
	for i := range product {
		if abs(product[i]-id[i]) > 1e-4 {
			t.Fatalf("M * M^-1 element %d = %f, want %f", i, product[i], id[i])
		}
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
