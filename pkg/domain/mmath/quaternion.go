// 指示: miu200521358
package mmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Quaternion は回転を表す。
type Quaternion struct {
	quat mgl64.Quat
}

// NewQuaternionFromAxisAngleDeg は軸と角度(度)から回転を生成する。
// 軸は内部で正規化する。軸長0のときは恒等回転を返す。
func NewQuaternionFromAxisAngleDeg(axis Vec3, degree float64) Quaternion {
	normalized := axis.Normalized()
	if normalized.Length() <= 0 {
		return Quaternion{quat: mgl64.QuatIdent()}
	}
	radian := DegToRad(degree)
	return Quaternion{quat: mgl64.QuatRotate(radian, mgl64.Vec3{normalized.X, normalized.Y, normalized.Z})}
}

// RotatedVec3 はベクトルへ回転を適用した結果を返す。
func (q Quaternion) RotatedVec3(v Vec3) Vec3 {
	rotated := q.quat.Rotate(mgl64.Vec3{v.X, v.Y, v.Z})
	return NewVec3(rotated.X(), rotated.Y(), rotated.Z())
}

// Muled は回転の合成結果(q→other の順に適用)を返す。
func (q Quaternion) Muled(other Quaternion) Quaternion {
	return Quaternion{quat: other.quat.Mul(q.quat)}
}

// DegToRad は度をラジアンへ変換する。
func DegToRad(degree float64) float64 {
	return degree * math.Pi / 180.0
}
