// 指示: miu200521358
package rinteractor

import (
	"github.com/miu200521358/mu_rig2ue/pkg/domain/model"
	"github.com/miu200521358/mu_rig2ue/pkg/domain/model/rerrors"
)

// roleMappingRule はロール1件の照合キー候補を表す。先頭一致した候補を採用する。
type roleMappingRule struct {
	Role model.BoneRole
	Keys []string
}

// RoleMapResult はロール対応構築結果を表す。
type RoleMapResult struct {
	RoleMap              *model.BoneRoleMap
	MissingRequiredRoles []model.BoneRole
}

// mixamoSideWord は mixamo 規約の左右語を返す。
func mixamoSideWord(direction model.BoneDirection) string {
	if direction == model.BONE_DIRECTION_RIGHT {
		return "right"
	}
	return "left"
}

// mixamoFingerWordByFinger は mixamo 規約の指語を返す。
var mixamoFingerWordByFinger = map[string]string{
	"thumb":  "thumb",
	"index":  "index",
	"middle": "middle",
	"ring":   "ring",
	"pinky":  "pinky",
}

// mixamoRoleMappingRules は mixamo 規約のロール対応表を返す。
// 接頭辞 mixamorig: は正規化キー段階で除去されるため、キーは接頭辞抜きで持つ。
func mixamoRoleMappingRules() []roleMappingRule {
	rules := []roleMappingRule{
		{Role: model.HIPS.Role(), Keys: []string{"hips"}},
		{Role: model.SPINE.Role(), Keys: []string{"spine"}},
		{Role: model.CHEST.Role(), Keys: []string{"spine2", "spine1"}},
		{Role: model.NECK.Role(), Keys: []string{"neck"}},
		{Role: model.HEAD.Role(), Keys: []string{"head"}},
	}
	for _, direction := range model.BoneDirections() {
		side := mixamoSideWord(direction)
		rules = append(rules,
			roleMappingRule{Role: model.SHOULDER.FromDirection(direction), Keys: []string{side + "shoulder"}},
			roleMappingRule{Role: model.UPPER_ARM.FromDirection(direction), Keys: []string{side + "arm"}},
			roleMappingRule{Role: model.FOREARM.FromDirection(direction), Keys: []string{side + "forearm"}},
			roleMappingRule{Role: model.HAND.FromDirection(direction), Keys: []string{side + "hand"}},
			roleMappingRule{Role: model.UPPER_LEG.FromDirection(direction), Keys: []string{side + "upleg"}},
			roleMappingRule{Role: model.LOWER_LEG.FromDirection(direction), Keys: []string{side + "leg"}},
			roleMappingRule{Role: model.FOOT.FromDirection(direction), Keys: []string{side + "foot"}},
			roleMappingRule{Role: model.TOE.FromDirection(direction), Keys: []string{side + "toebase"}},
		)
		for finger, chain := range model.FingerChainRoleNames() {
			word := mixamoFingerWordByFinger[finger]
			for joint := 0; joint < len(chain); joint++ {
				rules = append(rules, roleMappingRule{
					Role: chain[joint].FromDirection(direction),
					Keys: []string{side + "hand" + word + jointDigit(joint+1)},
				})
			}
		}
	}
	return rules
}

// genericRoleMappingRules は接頭辞無しの汎用人型規約のロール対応表を返す。
func genericRoleMappingRules() []roleMappingRule {
	rules := []roleMappingRule{
		{Role: model.HIPS.Role(), Keys: []string{"hips", "pelvis"}},
		{Role: model.SPINE.Role(), Keys: []string{"spine", "spine01"}},
		{Role: model.CHEST.Role(), Keys: []string{"chest", "upperchest", "spine2", "spine02"}},
		{Role: model.NECK.Role(), Keys: []string{"neck", "neck01"}},
		{Role: model.HEAD.Role(), Keys: []string{"head"}},
	}
	for _, direction := range model.BoneDirections() {
		side := mixamoSideWord(direction)
		suffix := sideSuffixWord(direction)
		rules = append(rules,
			roleMappingRule{
				Role: model.SHOULDER.FromDirection(direction),
				Keys: []string{side + "shoulder", "shoulder" + suffix, "clavicle" + suffix},
			},
			roleMappingRule{
				Role: model.UPPER_ARM.FromDirection(direction),
				Keys: []string{side + "upperarm", side + "arm", "upperarm" + suffix, "arm" + suffix},
			},
			roleMappingRule{
				Role: model.FOREARM.FromDirection(direction),
				Keys: []string{side + "lowerarm", side + "forearm", "lowerarm" + suffix, "forearm" + suffix},
			},
			roleMappingRule{
				Role: model.HAND.FromDirection(direction),
				Keys: []string{side + "hand", "hand" + suffix, side + "wrist"},
			},
			roleMappingRule{
				Role: model.UPPER_LEG.FromDirection(direction),
				Keys: []string{side + "upperleg", side + "upleg", "thigh" + suffix, side + "thigh"},
			},
			roleMappingRule{
				Role: model.LOWER_LEG.FromDirection(direction),
				Keys: []string{side + "lowerleg", side + "leg", "calf" + suffix, side + "shin", "shin" + suffix},
			},
			roleMappingRule{
				Role: model.FOOT.FromDirection(direction),
				Keys: []string{side + "foot", "foot" + suffix, side + "ankle"},
			},
			roleMappingRule{
				Role: model.TOE.FromDirection(direction),
				Keys: []string{side + "toebase", side + "toes", side + "toe", "ball" + suffix, "toe" + suffix},
			},
		)
		for finger, chain := range model.FingerChainRoleNames() {
			for joint := 0; joint < len(chain); joint++ {
				digit := jointDigit(joint + 1)
				rules = append(rules, roleMappingRule{
					Role: chain[joint].FromDirection(direction),
					Keys: []string{
						side + finger + digit,
						finger + digit + suffix,
						finger + "0" + digit + suffix,
						side + finger + jointWord(joint),
					},
				})
			}
		}
	}
	return rules
}

// jointDigit は関節番号の数字語を返す。
func jointDigit(joint int) string {
	switch joint {
	case 1:
		return "1"
	case 2:
		return "2"
	default:
		return "3"
	}
}

// jointWord は関節番号の語(proximal/intermediate/distal)を返す。
func jointWord(joint int) string {
	switch joint {
	case 0:
		return "proximal"
	case 1:
		return "intermediate"
	default:
		return "distal"
	}
}

// sideSuffixWord は末尾一文字の左右語を返す。
func sideSuffixWord(direction model.BoneDirection) string {
	if direction == model.BONE_DIRECTION_RIGHT {
		return "r"
	}
	return "l"
}

// genericHumanoidKeySet は汎用人型規約の全照合キー集合を返す。検査時の多数決に使う。
func genericHumanoidKeySet() map[string]struct{} {
	keys := map[string]struct{}{}
	for _, rule := range genericRoleMappingRules() {
		for _, key := range rule.Keys {
			keys[key] = struct{}{}
		}
	}
	return keys
}

// roleMappingRulesByClassification は分類ごとのロール対応表を返す。
// 新しい命名規約への対応は表を1つ足すだけでよい。
func roleMappingRulesByClassification(classification model.RigClassification) []roleMappingRule {
	switch classification {
	case model.RIG_CLASSIFICATION_MIXAMO:
		return mixamoRoleMappingRules()
	case model.RIG_CLASSIFICATION_GENERIC_HUMANOID:
		return genericRoleMappingRules()
	default:
		return []roleMappingRule{}
	}
}

// BuildRoleMap は分類に応じたロール対応を構築し、未割当の必須ロールを報告する。
// 分類が unknown のときは UnsupportedRigError を返す。表に無いあいまい照合は行わない。
func BuildRoleMap(modelData *model.SkeletonModel, classification model.RigClassification) (*RoleMapResult, error) {
	if !classification.IsMappable() {
		return nil, rerrors.NewUnsupportedRigError(classification.String())
	}

	roleMap := model.NewBoneRoleMap()
	keyIndexes := collectBoneKeyIndexes(modelData)
	for _, rule := range roleMappingRulesByClassification(classification) {
		for _, key := range rule.Keys {
			if boneIndex, exists := keyIndexes[key]; exists {
				roleMap.Set(rule.Role, boneIndex)
				break
			}
		}
	}

	return &RoleMapResult{
		RoleMap:              roleMap,
		MissingRequiredRoles: roleMap.MissingRequiredRoles(),
	}, nil
}

// collectBoneKeyIndexes は正規化キーからボーンindexへの辞書を構築する。
// 同一キーは最初に出現したボーンを採用する。
func collectBoneKeyIndexes(modelData *model.SkeletonModel) map[string]int {
	keyIndexes := map[string]int{}
	if modelData == nil || modelData.Bones == nil {
		return keyIndexes
	}
	for _, bone := range modelData.Bones.Values() {
		if bone == nil {
			continue
		}
		key := normalizeBoneKey(bone.Name)
		if key == "" {
			continue
		}
		if _, exists := keyIndexes[key]; !exists {
			keyIndexes[key] = bone.Index
		}
	}
	return keyIndexes
}
