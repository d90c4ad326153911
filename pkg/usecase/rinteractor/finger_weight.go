// 指示: miu200521358
package rinteractor

import (
	"fmt"
	"math"

	"github.com/miu200521358/mu_rig2ue/pkg/domain/mmath"
	"github.com/miu200521358/mu_rig2ue/pkg/domain/model"
)

const (
	// maxWeightTransferRate は手から指へ移す最大ウェイト比率を表す。
	// 掌側の頂点を手へ残すため全量は移さない。
	maxWeightTransferRate = 0.8
	weightDistanceEpsilon = 1e-8
)

// WeightEstimateResult はウェイト近似割当の結果を表す。
type WeightEstimateResult struct {
	UpdatedVertexCount int
	TargetBoneCount    int
	FalloffRadius      float64
}

// weightSourceGroup は移譲元ボーン1件とその配下の対象ボーン群を表す。
type weightSourceGroup struct {
	SourceIndex   int
	TargetIndexes []int
}

// EstimateFingerWeights は対象ボーン(通常は合成された指)へ頂点ウェイトを近似割当する。
// 移譲元(手)に重み付いた頂点から、最近傍の対象ボーン線分までの距離に応じて
// 指数減衰でウェイトを移し、合計1不変条件を再正規化で保つ。
// 体積熱拡散ソルバではない高速な局所近似であり、外部の高品質リガーで置換できる。
func EstimateFingerWeights(modelData *model.SkeletonModel, targetBoneIndexes []int) (*WeightEstimateResult, error) {
	if modelData == nil || modelData.Bones == nil {
		return nil, fmt.Errorf("ウェイト割当対象モデルが未設定です")
	}
	if len(targetBoneIndexes) == 0 {
		return &WeightEstimateResult{}, nil
	}
	for _, boneIndex := range targetBoneIndexes {
		if _, err := modelData.Bones.Get(boneIndex); err != nil {
			return nil, fmt.Errorf("対象ボーンが不正です: %w", err)
		}
	}

	groups := buildWeightSourceGroups(modelData, targetBoneIndexes)
	falloffRadius := resolveFalloffRadius(modelData, targetBoneIndexes)

	updatedCount := 0
	for _, vertex := range modelData.Vertices.Values() {
		if vertex == nil || vertex.Deform == nil {
			continue
		}
		if applyFingerWeightTransfer(modelData, vertex, groups, falloffRadius) {
			updatedCount++
		}
	}

	return &WeightEstimateResult{
		UpdatedVertexCount: updatedCount,
		TargetBoneCount:    len(targetBoneIndexes),
		FalloffRadius:      falloffRadius,
	}, nil
}

// buildWeightSourceGroups は対象ボーンを移譲元(対象外の最近祖先)ごとにまとめる。
func buildWeightSourceGroups(modelData *model.SkeletonModel, targetBoneIndexes []int) []weightSourceGroup {
	targetSet := map[int]struct{}{}
	for _, boneIndex := range targetBoneIndexes {
		targetSet[boneIndex] = struct{}{}
	}

	targetsBySource := map[int][]int{}
	sourceOrder := []int{}
	for _, boneIndex := range targetBoneIndexes {
		sourceIndex := resolveTransferSourceIndex(modelData, boneIndex, targetSet)
		if sourceIndex < 0 {
			continue
		}
		if _, exists := targetsBySource[sourceIndex]; !exists {
			sourceOrder = append(sourceOrder, sourceIndex)
		}
		targetsBySource[sourceIndex] = append(targetsBySource[sourceIndex], boneIndex)
	}

	groups := make([]weightSourceGroup, 0, len(sourceOrder))
	for _, sourceIndex := range sourceOrder {
		groups = append(groups, weightSourceGroup{
			SourceIndex:   sourceIndex,
			TargetIndexes: targetsBySource[sourceIndex],
		})
	}
	return groups
}

// resolveTransferSourceIndex は対象ボーンの移譲元(対象外の最近祖先)を解決する。
func resolveTransferSourceIndex(modelData *model.SkeletonModel, boneIndex int, targetSet map[int]struct{}) int {
	current, err := modelData.Bones.Get(boneIndex)
	if err != nil {
		return -1
	}
	parentIndex := current.ParentIndex
	for parentIndex >= 0 {
		if _, isTarget := targetSet[parentIndex]; !isTarget {
			return parentIndex
		}
		parent, err := modelData.Bones.Get(parentIndex)
		if err != nil {
			return -1
		}
		parentIndex = parent.ParentIndex
	}
	return -1
}

// resolveFalloffRadius は減衰半径を対象ボーンの平均長から解決する。
func resolveFalloffRadius(modelData *model.SkeletonModel, targetBoneIndexes []int) float64 {
	total := 0.0
	count := 0
	for _, boneIndex := range targetBoneIndexes {
		bone, err := modelData.Bones.Get(boneIndex)
		if err != nil {
			continue
		}
		length := bone.Length()
		if length <= weightDistanceEpsilon {
			continue
		}
		total += length
		count++
	}
	if count == 0 {
		return 1.0
	}
	return total / float64(count)
}

// applyFingerWeightTransfer は1頂点分のウェイト移譲を適用する。移譲したときtrueを返す。
func applyFingerWeightTransfer(
	modelData *model.SkeletonModel,
	vertex *model.Vertex,
	groups []weightSourceGroup,
	falloffRadius float64,
) bool {
	transferred := false
	joints := append([]int(nil), vertex.Deform.Indexes...)
	weights := append([]float64(nil), vertex.Deform.Weights...)

	for _, group := range groups {
		sourceWeight := 0.0
		for i := range joints {
			if i >= len(weights) {
				break
			}
			if joints[i] == group.SourceIndex {
				sourceWeight += weights[i]
			}
		}
		if sourceWeight <= model.WeightEpsilon {
			continue
		}

		nearestIndex, nearestDistance := nearestTargetBone(modelData, vertex.Position, group.TargetIndexes)
		if nearestIndex < 0 {
			continue
		}
		factor := maxWeightTransferRate * math.Exp(-nearestDistance/falloffRadius)
		if factor <= model.WeightEpsilon {
			continue
		}

		moved := sourceWeight * factor
		for i := range joints {
			if joints[i] == group.SourceIndex {
				weights[i] *= 1.0 - factor
			}
		}
		joints = append(joints, nearestIndex)
		weights = append(weights, moved)
		transferred = true
	}

	if !transferred {
		return false
	}
	rebuilt := model.NewDeform(joints, weights)
	fallbackIndex := rebuilt.DominantBoneIndex()
	vertex.Deform = rebuilt.Normalized(fallbackIndex)
	return true
}

// nearestTargetBone は頂点から最近傍の対象ボーンとその線分距離を返す。
// 距離は関節原点ではなくヘッド-テール線分で測り、関節付近の継ぎ目を避ける。
func nearestTargetBone(modelData *model.SkeletonModel, position mmath.Vec3, targetIndexes []int) (int, float64) {
	nearestIndex := -1
	nearestDistance := math.MaxFloat64
	for _, boneIndex := range targetIndexes {
		bone, err := modelData.Bones.Get(boneIndex)
		if err != nil {
			continue
		}
		distance := distancePointToSegment(position, bone.Position, bone.TailPosition)
		if distance < nearestDistance {
			nearestDistance = distance
			nearestIndex = boneIndex
		}
	}
	return nearestIndex, nearestDistance
}

// distancePointToSegment は点から線分への最短距離を返す。
func distancePointToSegment(point mmath.Vec3, segmentStart mmath.Vec3, segmentEnd mmath.Vec3) float64 {
	segment := segmentEnd.Subed(segmentStart)
	lengthSquared := segment.Dot(segment)
	if lengthSquared <= weightDistanceEpsilon {
		return point.Distance(segmentStart)
	}
	t := point.Subed(segmentStart).Dot(segment) / lengthSquared
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	closest := segmentStart.Added(segment.MuledScalar(t))
	return point.Distance(closest)
}
