// 指示: miu200521358
package mmath

import (
	"math"
	"testing"
)

func TestQuaternionRotates90DegAroundY(t *testing.T) {
	q := NewQuaternionFromAxisAngleDeg(UNIT_Y_VEC3, 90)
	rotated := q.RotatedVec3(UNIT_X_VEC3)
	if !rotated.NearEquals(NewVec3(0, 0, -1), 1e-8) {
		t.Fatalf("rotated mismatch: %+v", rotated)
	}
}

func TestQuaternionZeroAxisIsIdentity(t *testing.T) {
	q := NewQuaternionFromAxisAngleDeg(ZERO_VEC3, 45)
	rotated := q.RotatedVec3(UNIT_X_VEC3)
	if !rotated.NearEquals(UNIT_X_VEC3, 1e-10) {
		t.Fatalf("identity rotation expected: %+v", rotated)
	}
}

func TestQuaternionMuledComposesInOrder(t *testing.T) {
	first := NewQuaternionFromAxisAngleDeg(UNIT_Y_VEC3, 90)
	second := NewQuaternionFromAxisAngleDeg(UNIT_Z_VEC3, 90)
	composed := first.Muled(second)
	rotated := composed.RotatedVec3(UNIT_X_VEC3)
	expected := second.RotatedVec3(first.RotatedVec3(UNIT_X_VEC3))
	if !rotated.NearEquals(expected, 1e-8) {
		t.Fatalf("composition mismatch: %+v != %+v", rotated, expected)
	}
}

func TestDegToRad(t *testing.T) {
	if radian := DegToRad(180); math.Abs(radian-math.Pi) > 1e-12 {
		t.Fatalf("radian mismatch: %f", radian)
	}
}
