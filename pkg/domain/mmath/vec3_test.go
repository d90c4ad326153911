// 指示: miu200521358
package mmath

import (
	"math"
	"testing"
)

func TestVec3AddSubDot(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, 5, 6)

	added := a.Added(b)
	if !added.NearEquals(NewVec3(5, 7, 9), 1e-10) {
		t.Fatalf("added mismatch: %+v", added)
	}
	subed := b.Subed(a)
	if !subed.NearEquals(NewVec3(3, 3, 3), 1e-10) {
		t.Fatalf("subed mismatch: %+v", subed)
	}
	if dot := a.Dot(b); math.Abs(dot-32.0) > 1e-10 {
		t.Fatalf("dot mismatch: %f", dot)
	}
}

func TestVec3Cross(t *testing.T) {
	cross := UNIT_X_VEC3.Cross(UNIT_Y_VEC3)
	if !cross.NearEquals(UNIT_Z_VEC3, 1e-10) {
		t.Fatalf("cross mismatch: %+v", cross)
	}
}

func TestVec3NormalizedKeepsDirection(t *testing.T) {
	v := NewVec3(3, 0, 4)
	normalized := v.Normalized()
	if math.Abs(normalized.Length()-1.0) > 1e-10 {
		t.Fatalf("length mismatch: %f", normalized.Length())
	}
	if !normalized.NearEquals(NewVec3(0.6, 0, 0.8), 1e-10) {
		t.Fatalf("direction mismatch: %+v", normalized)
	}
}

func TestVec3NormalizedZeroReturnsZero(t *testing.T) {
	if !ZERO_VEC3.Normalized().NearEquals(ZERO_VEC3, 1e-10) {
		t.Fatalf("zero vector should normalize to zero")
	}
}

func TestVec3DistanceAndLerp(t *testing.T) {
	a := NewVec3(0, 0, 0)
	b := NewVec3(0, 10, 0)
	if distance := a.Distance(b); math.Abs(distance-10.0) > 1e-10 {
		t.Fatalf("distance mismatch: %f", distance)
	}
	mid := a.Lerp(b, 0.5)
	if !mid.NearEquals(NewVec3(0, 5, 0), 1e-10) {
		t.Fatalf("lerp mismatch: %+v", mid)
	}
}
