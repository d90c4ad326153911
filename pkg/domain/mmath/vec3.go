// 指示: miu200521358
// Package mmath は骨格演算に使う最小限のベクトル・回転演算を提供する。
package mmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec3 は3次元ベクトルを表す。
type Vec3 struct {
	r3.Vec
}

// 単位ベクトル定数。
var (
	ZERO_VEC3   = Vec3{Vec: r3.Vec{X: 0, Y: 0, Z: 0}}
	UNIT_X_VEC3 = Vec3{Vec: r3.Vec{X: 1, Y: 0, Z: 0}}
	UNIT_Y_VEC3 = Vec3{Vec: r3.Vec{X: 0, Y: 1, Z: 0}}
	UNIT_Z_VEC3 = Vec3{Vec: r3.Vec{X: 0, Y: 0, Z: 1}}
)

// NewVec3 は成分指定でベクトルを生成する。
func NewVec3(x float64, y float64, z float64) Vec3 {
	return Vec3{Vec: r3.Vec{X: x, Y: y, Z: z}}
}

// Added は加算結果を返す。
func (v Vec3) Added(other Vec3) Vec3 {
	return Vec3{Vec: r3.Add(v.Vec, other.Vec)}
}

// Subed は減算結果を返す。
func (v Vec3) Subed(other Vec3) Vec3 {
	return Vec3{Vec: r3.Sub(v.Vec, other.Vec)}
}

// MuledScalar はスカラー倍を返す。
func (v Vec3) MuledScalar(s float64) Vec3 {
	return Vec3{Vec: r3.Scale(s, v.Vec)}
}

// Dot は内積を返す。
func (v Vec3) Dot(other Vec3) float64 {
	return r3.Dot(v.Vec, other.Vec)
}

// Cross は外積を返す。
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{Vec: r3.Cross(v.Vec, other.Vec)}
}

// Length はベクトル長を返す。
func (v Vec3) Length() float64 {
	return r3.Norm(v.Vec)
}

// Distance は2点間距離を返す。
func (v Vec3) Distance(other Vec3) float64 {
	return r3.Norm(r3.Sub(v.Vec, other.Vec))
}

// Normalized は正規化結果を返す。長さ0のときは零ベクトルを返す。
func (v Vec3) Normalized() Vec3 {
	length := v.Length()
	if length <= 0 {
		return ZERO_VEC3
	}
	return v.MuledScalar(1.0 / length)
}

// Lerp は比率tによる線形補間結果を返す。
func (v Vec3) Lerp(other Vec3, t float64) Vec3 {
	return v.Added(other.Subed(v).MuledScalar(t))
}

// NearEquals は許容誤差内で一致するか判定する。
func (v Vec3) NearEquals(other Vec3, epsilon float64) bool {
	return math.Abs(v.X-other.X) <= epsilon &&
		math.Abs(v.Y-other.Y) <= epsilon &&
		math.Abs(v.Z-other.Z) <= epsilon
}
