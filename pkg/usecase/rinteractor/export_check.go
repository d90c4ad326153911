// 指示: miu200521358
package rinteractor

import (
	"fmt"
	"math"

	"github.com/miu200521358/mu_rig2ue/pkg/domain/model"
)

// ExportReadinessResult は出力前検証の結果を表す。
type ExportReadinessResult struct {
	OK         bool
	Violations []model.ExportViolation
}

// CheckExportReady はモデルが出力可能な状態か検証する。モデルへの副作用は無い。
// 骨格の木構造、ボーン名の一意性、頂点ウェイト不変条件をまとめて検査し、
// 違反を全件列挙する。違反ゼロのときだけ OK になる。
func CheckExportReady(modelData *model.SkeletonModel) (*ExportReadinessResult, error) {
	if modelData == nil || modelData.Bones == nil {
		return nil, fmt.Errorf("検証対象モデルが未設定です")
	}

	violations := []model.ExportViolation{}
	violations = append(violations, checkBoneTree(modelData.Bones)...)
	violations = append(violations, checkBoneNames(modelData.Bones)...)
	violations = append(violations, checkVertexWeights(modelData)...)

	return &ExportReadinessResult{
		OK:         len(violations) == 0,
		Violations: violations,
	}, nil
}

// checkBoneTree は骨格階層の木構造を検証する。
func checkBoneTree(bones *model.BoneCollection) []model.ExportViolation {
	violations := []model.ExportViolation{}
	boneCount := bones.Len()
	if boneCount == 0 {
		return violations
	}

	if len(bones.RootIndexes()) == 0 {
		violations = append(violations, model.ExportViolation{
			ID:          model.ExportViolationRootMissing,
			Message:     "ルートボーンがありません",
			BoneIndex:   -1,
			VertexIndex: -1,
		})
	}

	for _, bone := range bones.Values() {
		if bone == nil {
			continue
		}
		if bone.ParentIndex >= boneCount || bone.ParentIndex == bone.Index {
			violations = append(violations, model.ExportViolation{
				ID:          model.ExportViolationParentOutOfRange,
				Message:     fmt.Sprintf("親ボーンindexが不正です: %d -> %d", bone.Index, bone.ParentIndex),
				BoneIndex:   bone.Index,
				VertexIndex: -1,
			})
			continue
		}
		if bone.ParentIndex < 0 {
			continue
		}
		parent, err := bones.Get(bone.ParentIndex)
		if err != nil || parent == nil {
			continue
		}
		if !containsIndex(parent.ChildIndexes, bone.Index) {
			violations = append(violations, model.ExportViolation{
				ID:          model.ExportViolationChildLinkBroken,
				Message:     fmt.Sprintf("親の子リストに登録がありません: %d -> %d", bone.ParentIndex, bone.Index),
				BoneIndex:   bone.Index,
				VertexIndex: -1,
			})
		}
	}

	violations = append(violations, checkBoneCycles(bones)...)
	return violations
}

// checkBoneCycles は親リンクをたどって循環を検出する。
func checkBoneCycles(bones *model.BoneCollection) []model.ExportViolation {
	violations := []model.ExportViolation{}
	boneCount := bones.Len()
	for _, bone := range bones.Values() {
		if bone == nil {
			continue
		}
		visited := map[int]struct{}{bone.Index: {}}
		currentIndex := bone.ParentIndex
		for currentIndex >= 0 && currentIndex < boneCount {
			if _, seen := visited[currentIndex]; seen {
				violations = append(violations, model.ExportViolation{
					ID:          model.ExportViolationTreeCycle,
					Message:     fmt.Sprintf("親子リンクが循環しています: %d", bone.Index),
					BoneIndex:   bone.Index,
					VertexIndex: -1,
				})
				break
			}
			visited[currentIndex] = struct{}{}
			parent, err := bones.Get(currentIndex)
			if err != nil || parent == nil {
				break
			}
			currentIndex = parent.ParentIndex
		}
	}
	return violations
}

// checkBoneNames はボーン名の一意性を検証する。
func checkBoneNames(bones *model.BoneCollection) []model.ExportViolation {
	violations := []model.ExportViolation{}
	firstIndexByName := map[string]int{}
	for _, bone := range bones.Values() {
		if bone == nil {
			continue
		}
		if firstIndex, exists := firstIndexByName[bone.Name]; exists {
			violations = append(violations, model.ExportViolation{
				ID:          model.ExportViolationDuplicateBoneName,
				Message:     fmt.Sprintf("ボーン名が重複しています: %s (index=%d, %d)", bone.Name, firstIndex, bone.Index),
				BoneIndex:   bone.Index,
				VertexIndex: -1,
			})
			continue
		}
		firstIndexByName[bone.Name] = bone.Index
	}
	return violations
}

// checkVertexWeights は頂点ウェイトの不変条件を検証する。
func checkVertexWeights(modelData *model.SkeletonModel) []model.ExportViolation {
	violations := []model.ExportViolation{}
	if modelData.Vertices == nil {
		return violations
	}
	boneCount := modelData.Bones.Len()
	for _, vertex := range modelData.Vertices.Values() {
		if vertex == nil || vertex.Deform == nil {
			continue
		}
		for i, boneIndex := range vertex.Deform.Indexes {
			if boneIndex < 0 || boneIndex >= boneCount {
				violations = append(violations, model.ExportViolation{
					ID:          model.ExportViolationWeightBoneOutOfRange,
					Message:     fmt.Sprintf("ウェイト参照ボーンが範囲外です: %d", boneIndex),
					BoneIndex:   boneIndex,
					VertexIndex: vertex.Index,
				})
			}
			if i < len(vertex.Deform.Weights) && vertex.Deform.Weights[i] < 0 {
				violations = append(violations, model.ExportViolation{
					ID:          model.ExportViolationNegativeWeight,
					Message:     fmt.Sprintf("ウェイトが負です: %f", vertex.Deform.Weights[i]),
					BoneIndex:   boneIndex,
					VertexIndex: vertex.Index,
				})
			}
		}
		if sum := vertex.Deform.WeightSum(); math.Abs(sum-1.0) > model.WeightSumTolerance {
			violations = append(violations, model.ExportViolation{
				ID:          model.ExportViolationWeightSumInvalid,
				Message:     fmt.Sprintf("ウェイト合計が1ではありません: %f", sum),
				BoneIndex:   -1,
				VertexIndex: vertex.Index,
			})
		}
	}
	return violations
}

// containsIndex はindex一覧に値が含まれるか判定する。
func containsIndex(indexes []int, value int) bool {
	for _, index := range indexes {
		if index == value {
			return true
		}
	}
	return false
}
