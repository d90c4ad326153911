// 指示: miu200521358
package rinteractor

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/miu200521358/mu_rig2ue/pkg/domain/model"
)

const (
	mixamoBonePrefix = "mixamorig:"

	inspectSummaryFormat = "分類=%s ボーン数=%d 頂点数=%d 接頭辞=%s メッシュのみ=%t"
)

// InspectResult はリグ検査結果を表す。
type InspectResult struct {
	Classification model.RigClassification
	BoneCount      int
	VertexCount    int
	DetectedPrefix string
	MeshOnly       bool
	Summary        string
}

// nameFolder はボーン名の大文字小文字を畳み込む。
var nameFolder = cases.Fold()

// InspectRig はモデルのリグ分類と概要を返す。モデルへの副作用は無い。
// 過半数に満たない曖昧な命名は推測せず unknown とする。
func InspectRig(modelData *model.SkeletonModel) *InspectResult {
	result := &InspectResult{
		Classification: model.RIG_CLASSIFICATION_UNKNOWN,
	}
	if modelData != nil {
		result.BoneCount = modelData.Bones.Len()
		result.VertexCount = modelData.Vertices.Len()
	}

	result.Classification = classifyRig(modelData)
	result.MeshOnly = result.Classification == model.RIG_CLASSIFICATION_MESH_ONLY
	if result.Classification == model.RIG_CLASSIFICATION_MIXAMO {
		result.DetectedPrefix = mixamoBonePrefix
	}
	result.Summary = fmt.Sprintf(
		inspectSummaryFormat,
		result.Classification,
		result.BoneCount,
		result.VertexCount,
		result.DetectedPrefix,
		result.MeshOnly,
	)
	return result
}

// classifyRig は命名規約の過半数判定で分類を決める。
func classifyRig(modelData *model.SkeletonModel) model.RigClassification {
	if modelData == nil {
		return model.RIG_CLASSIFICATION_UNKNOWN
	}
	boneCount := modelData.Bones.Len()
	if boneCount == 0 {
		if modelData.HasMesh() {
			return model.RIG_CLASSIFICATION_MESH_ONLY
		}
		return model.RIG_CLASSIFICATION_UNKNOWN
	}

	genericKeys := genericHumanoidKeySet()
	mixamoHits := 0
	genericHits := 0
	for _, bone := range modelData.Bones.Values() {
		if bone == nil {
			continue
		}
		folded := nameFolder.String(bone.Name)
		if strings.Contains(folded, mixamoBonePrefix) {
			mixamoHits++
			continue
		}
		if _, exists := genericKeys[normalizeBoneKey(bone.Name)]; exists {
			genericHits++
		}
	}

	if mixamoHits*2 > boneCount {
		return model.RIG_CLASSIFICATION_MIXAMO
	}
	if genericHits*2 > boneCount {
		return model.RIG_CLASSIFICATION_GENERIC_HUMANOID
	}
	return model.RIG_CLASSIFICATION_UNKNOWN
}

// normalizeBoneKey は照合用にボーン名を正規化する。
// 大文字小文字を畳み込み、区切り文字を除去し、ベンダー接頭辞(:区切り)を落とす。
func normalizeBoneKey(name string) string {
	folded := nameFolder.String(strings.TrimSpace(name))
	if separatorIndex := strings.LastIndex(folded, ":"); separatorIndex >= 0 {
		folded = folded[separatorIndex+1:]
	}
	replacer := strings.NewReplacer("_", "", "-", "", " ", "", ".", "")
	return replacer.Replace(folded)
}
