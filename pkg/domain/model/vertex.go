// 指示: miu200521358
package model

import (
	"sort"

	"github.com/miu200521358/mu_rig2ue/pkg/domain/mmath"
)

const (
	// WeightSumTolerance は頂点ウェイト合計の許容誤差を表す。
	WeightSumTolerance = 1e-4
	// WeightEpsilon はウェイト値のゼロ判定閾値を表す。
	WeightEpsilon = 1e-8
	// MaxDeformBoneCount は1頂点あたりの最大影響ボーン数を表す。
	MaxDeformBoneCount = 4
)

// Deform は頂点1件のボーン影響を表す。
type Deform struct {
	Indexes []int
	Weights []float64
}

// NewDeform はボーン影響を生成する。
func NewDeform(indexes []int, weights []float64) *Deform {
	return &Deform{
		Indexes: append([]int(nil), indexes...),
		Weights: append([]float64(nil), weights...),
	}
}

// weightedJoint は正規化用のジョイント情報を表す。
type weightedJoint struct {
	Index  int
	Weight float64
}

// Normalized は重複合算・降順ソート・上位4件打ち切り・合計1正規化を適用した結果を返す。
// 有効ウェイトが残らないときは fallbackIndex へ全量を割り当てる。
func (d *Deform) Normalized(fallbackIndex int) *Deform {
	weightByBone := map[int]float64{}
	maxCount := len(d.Indexes)
	if len(d.Weights) < maxCount {
		maxCount = len(d.Weights)
	}
	for i := 0; i < maxCount; i++ {
		if d.Indexes[i] < 0 || d.Weights[i] <= WeightEpsilon {
			continue
		}
		weightByBone[d.Indexes[i]] += d.Weights[i]
	}

	joints := make([]weightedJoint, 0, len(weightByBone))
	for index, weight := range weightByBone {
		joints = append(joints, weightedJoint{Index: index, Weight: weight})
	}
	if len(joints) == 0 {
		if fallbackIndex < 0 {
			fallbackIndex = 0
		}
		return NewDeform([]int{fallbackIndex}, []float64{1.0})
	}

	sort.Slice(joints, func(i int, j int) bool {
		if joints[i].Weight == joints[j].Weight {
			return joints[i].Index < joints[j].Index
		}
		return joints[i].Weight > joints[j].Weight
	})
	if len(joints) > MaxDeformBoneCount {
		joints = joints[:MaxDeformBoneCount]
	}

	total := 0.0
	for _, joint := range joints {
		total += joint.Weight
	}
	if total <= WeightEpsilon {
		if fallbackIndex < 0 {
			fallbackIndex = 0
		}
		return NewDeform([]int{fallbackIndex}, []float64{1.0})
	}

	indexes := make([]int, 0, len(joints))
	weights := make([]float64, 0, len(joints))
	for _, joint := range joints {
		indexes = append(indexes, joint.Index)
		weights = append(weights, joint.Weight/total)
	}
	return NewDeform(indexes, weights)
}

// WeightOf は指定ボーンの合算ウェイトを返す。
func (d *Deform) WeightOf(boneIndex int) float64 {
	if d == nil {
		return 0
	}
	total := 0.0
	for i := range d.Indexes {
		if i >= len(d.Weights) {
			break
		}
		if d.Indexes[i] == boneIndex {
			total += d.Weights[i]
		}
	}
	return total
}

// WeightSum は全ウェイトの合計を返す。
func (d *Deform) WeightSum() float64 {
	if d == nil {
		return 0
	}
	total := 0.0
	for _, weight := range d.Weights {
		total += weight
	}
	return total
}

// DominantBoneIndex は最大ウェイトのボーンindexを返す。空のときは-1を返す。
func (d *Deform) DominantBoneIndex() int {
	if d == nil {
		return -1
	}
	dominant := -1
	best := 0.0
	for i := range d.Indexes {
		if i >= len(d.Weights) {
			break
		}
		if d.Weights[i] > best {
			best = d.Weights[i]
			dominant = d.Indexes[i]
		}
	}
	return dominant
}

// Vertex はメッシュ頂点1件を表す。
type Vertex struct {
	Index    int
	Position mmath.Vec3
	Deform   *Deform
}

// VertexCollection はindexで安定参照できる頂点集合を表す。
type VertexCollection struct {
	Vertices []*Vertex
}

// NewVertexCollection は空の頂点集合を生成する。
func NewVertexCollection() *VertexCollection {
	return &VertexCollection{Vertices: []*Vertex{}}
}

// Len は登録頂点数を返す。
func (c *VertexCollection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Vertices)
}

// Append は頂点を末尾へ追加する。
func (c *VertexCollection) Append(vertex *Vertex) int {
	if c == nil || vertex == nil {
		return -1
	}
	vertex.Index = len(c.Vertices)
	c.Vertices = append(c.Vertices, vertex)
	return vertex.Index
}

// Values は全頂点を登録順で返す。
func (c *VertexCollection) Values() []*Vertex {
	if c == nil {
		return []*Vertex{}
	}
	return c.Vertices
}
