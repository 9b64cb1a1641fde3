package utils

import (
	"math"
	"testing"
)

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: -1, Y: 0.5, Z: 2}

	if got := a.Add(b); got != (Vec3{X: 0, Y: 2.5, Z: 5}) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != (Vec3{X: 2, Y: 1.5, Z: 1}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2); got != (Vec3{X: 2, Y: 4, Z: 6}) {
		t.Errorf("Scale = %v", got)
	}
	if got := a.Dot(b); got != 6 {
		t.Errorf("Dot = %v, 期望 6", got)
	}
	// X × Y = Z
	if got := (Vec3{X: 1}).Cross(Vec3{Y: 1}); got != (Vec3{Z: 1}) {
		t.Errorf("Cross = %v", got)
	}
}

func TestVec3Distances(t *testing.T) {
	tests := []struct {
		name       string
		a, b       Vec3
		full, flat float64
	}{
		{"同一点", Vec3{}, Vec3{}, 0, 0},
		{"水平 3-4-5", Vec3{}, Vec3{X: 3, Z: 4}, 5, 5},
		{"只有高度差", Vec3{Y: 1}, Vec3{Y: 3}, 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.DistanceTo(tt.b); math.Abs(got-tt.full) > 1e-9 {
				t.Errorf("DistanceTo = %v, 期望 %v", got, tt.full)
			}
			if got := tt.a.HorizontalDistanceTo(tt.b); math.Abs(got-tt.flat) > 1e-9 {
				t.Errorf("HorizontalDistanceTo = %v, 期望 %v", got, tt.flat)
			}
		})
	}
}

func TestVec3Normalize(t *testing.T) {
	if got := (Vec3{}).Normalize(); !got.IsZero() {
		t.Errorf("零向量归一化应保持为零, got %v", got)
	}
	n := Vec3{X: 3, Z: 4}.Normalize()
	if math.Abs(n.Length()-1) > 1e-9 {
		t.Errorf("归一化后长度应为 1, got %v", n.Length())
	}
}
