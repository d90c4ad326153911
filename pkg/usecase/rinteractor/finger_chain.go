// 指示: miu200521358
package rinteractor

import (
	"fmt"

	"github.com/miu200521358/mu_rig2ue/pkg/domain/mmath"
	"github.com/miu200521358/mu_rig2ue/pkg/domain/model"
	"github.com/miu200521358/mu_rig2ue/pkg/domain/model/rerrors"
)

const (
	// SideLeft は左手のみの合成指定を表す。
	SideLeft = "left"
	// SideRight は右手のみの合成指定を表す。
	SideRight = "right"
	// SideBoth は両手の合成指定を表す。
	SideBoth = "both"

	fingerSegmentCount    = 3
	fingerAxisEpsilon     = 1e-8
	defaultHandLength     = 1.0
	handLengthForearmRate = 0.5
	meshExtentHandRate    = 0.5

	fingerStatusCreated = "created"
	fingerStatusExisted = "existed"

	thumbOppositionDegree = -30.0
)

// fingerSegmentLengthRates は指1本を3関節へ分割する比率を表す。
var fingerSegmentLengthRates = [fingerSegmentCount]float64{0.45, 0.30, 0.25}

// fingerLengthRateByFinger は手の長さに対する指全長の比率を表す。
// 原典実装の比率は未記録のため、参照メッシュで調整した近似値を採用する。
var fingerLengthRateByFinger = map[string]float64{
	"thumb":  0.70,
	"index":  0.85,
	"middle": 0.90,
	"ring":   0.85,
	"pinky":  0.72,
}

// fingerSpreadDegreeByFinger は掌平面内の指の開き角(度、左手基準)を表す。
// 親指は対向を近似するため他の4指より大きく外へ振る。
var fingerSpreadDegreeByFinger = map[string]float64{
	"thumb":  -38.0,
	"index":  -12.0,
	"middle": 0.0,
	"ring":   12.0,
	"pinky":  32.0,
}

// FingerSynthesisResult は指チェーン合成結果を表す。
type FingerSynthesisResult struct {
	CreatedBoneIndexes []int
	FingerStatus       map[string]string
}

// SynthesizeFingerChains は指定サイドの欠落した指チェーンを合成する。
// ロール対応に第1関節が既にあるときは何も作らない(冪等)。
// 新規ボーンは手ボーン配下へ親子リンク付きで追加し、木構造不変条件を保つ。
func SynthesizeFingerChains(
	modelData *model.SkeletonModel,
	roleMap *model.BoneRoleMap,
	side string,
) (*FingerSynthesisResult, error) {
	if modelData == nil || modelData.Bones == nil {
		return nil, fmt.Errorf("合成対象モデルが未設定です")
	}
	if roleMap == nil {
		return nil, fmt.Errorf("ロール対応が未設定です")
	}
	directions, err := resolveSideDirections(side)
	if err != nil {
		return nil, err
	}

	result := &FingerSynthesisResult{
		CreatedBoneIndexes: []int{},
		FingerStatus:       map[string]string{},
	}
	for _, direction := range directions {
		if err := synthesizeFingerChainsForDirection(modelData, roleMap, direction, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// resolveSideDirections はサイド指定を方向一覧へ解決する。
func resolveSideDirections(side string) ([]model.BoneDirection, error) {
	switch side {
	case SideLeft:
		return []model.BoneDirection{model.BONE_DIRECTION_LEFT}, nil
	case SideRight:
		return []model.BoneDirection{model.BONE_DIRECTION_RIGHT}, nil
	case SideBoth:
		return model.BoneDirections(), nil
	default:
		return nil, rerrors.NewInvalidParameterError("side", side)
	}
}

// synthesizeFingerChainsForDirection は片側分の指チェーンを合成する。
func synthesizeFingerChainsForDirection(
	modelData *model.SkeletonModel,
	roleMap *model.BoneRoleMap,
	direction model.BoneDirection,
	result *FingerSynthesisResult,
) error {
	handIndex, exists := roleMap.Get(model.HAND.FromDirection(direction))
	if !exists {
		return rerrors.NewHandBoneNotFoundError(string(direction))
	}
	hand, err := modelData.Bones.Get(handIndex)
	if err != nil {
		return err
	}

	handDirection := resolveHandDirection(modelData, hand, direction)
	handLength := resolveHandLength(modelData, roleMap, hand, direction, handDirection)
	spreadAxis := resolveSpreadAxis(handDirection)
	rootPosition := hand.TailPosition
	if hand.Length() <= fingerAxisEpsilon {
		rootPosition = hand.Position.Added(handDirection.MuledScalar(handLength))
	}

	mirror := 1.0
	if direction == model.BONE_DIRECTION_RIGHT {
		mirror = -1.0
	}

	chains := model.FingerChainRoleNames()
	for _, finger := range model.FingerOrder() {
		chain := chains[finger]
		statusKey := finger + "_" + string(direction)
		if roleMap.Has(chain[0].FromDirection(direction)) {
			result.FingerStatus[statusKey] = fingerStatusExisted
			continue
		}

		spokeDirection := resolveSpokeDirection(handDirection, spreadAxis, finger, mirror)
		totalLength := handLength * fingerLengthRateByFinger[finger]
		tipPosition := rootPosition.Added(spokeDirection.MuledScalar(totalLength))
		parentIndex := hand.Index
		headPosition := rootPosition
		jointRate := 0.0
		for joint := 0; joint < fingerSegmentCount; joint++ {
			jointRate += fingerSegmentLengthRates[joint]
			bone := model.NewBoneByName(synthesizedFingerBoneName(modelData.Bones, finger, joint+1, direction))
			bone.ParentIndex = parentIndex
			bone.Position = headPosition
			bone.TailPosition = rootPosition.Lerp(tipPosition, jointRate)
			// 捻り軸を揃えるため、ロールは親の手ボーンから引き継ぐ。
			bone.Roll = hand.Roll
			bone.IsSystem = true
			boneIndex, err := modelData.Bones.Append(bone)
			if err != nil {
				return err
			}
			roleMap.Set(chain[joint].FromDirection(direction), boneIndex)
			result.CreatedBoneIndexes = append(result.CreatedBoneIndexes, boneIndex)
			parentIndex = boneIndex
			headPosition = bone.TailPosition
		}
		result.FingerStatus[statusKey] = fingerStatusCreated
	}
	return nil
}

// resolveHandDirection は手ボーンの伸長方向を解決する。
// テールが潰れているときは親からの方向、どちらも無ければ左右のX軸を使う。
func resolveHandDirection(modelData *model.SkeletonModel, hand *model.Bone, direction model.BoneDirection) mmath.Vec3 {
	handDirection := hand.Direction()
	if handDirection.Length() > fingerAxisEpsilon {
		return handDirection
	}
	if parent, err := modelData.Bones.Get(hand.ParentIndex); err == nil && parent != nil {
		fromParent := hand.Position.Subed(parent.Position).Normalized()
		if fromParent.Length() > fingerAxisEpsilon {
			return fromParent
		}
	}
	if direction == model.BONE_DIRECTION_RIGHT {
		return mmath.UNIT_X_VEC3.MuledScalar(-1.0)
	}
	return mmath.UNIT_X_VEC3
}

// resolveHandLength は手ボーンの幾何学的な長さを推定する。
// ボーン長→手ウェイト主体の頂点範囲→前腕長比率→既定値の順でフォールバックする。
func resolveHandLength(
	modelData *model.SkeletonModel,
	roleMap *model.BoneRoleMap,
	hand *model.Bone,
	direction model.BoneDirection,
	handDirection mmath.Vec3,
) float64 {
	if length := hand.Length(); length > fingerAxisEpsilon {
		return length
	}
	if extent := handWeightedMeshExtent(modelData, hand.Index, handDirection); extent > fingerAxisEpsilon {
		return extent * meshExtentHandRate
	}
	if forearmIndex, exists := roleMap.Get(model.FOREARM.FromDirection(direction)); exists {
		if forearm, err := modelData.Bones.Get(forearmIndex); err == nil {
			if length := forearm.Position.Distance(hand.Position); length > fingerAxisEpsilon {
				return length * handLengthForearmRate
			}
		}
	}
	return defaultHandLength
}

// handWeightedMeshExtent は手ボーンが支配的な頂点群の伸長方向の広がりを返す。
func handWeightedMeshExtent(modelData *model.SkeletonModel, handIndex int, handDirection mmath.Vec3) float64 {
	if modelData == nil || modelData.Vertices == nil {
		return 0
	}
	found := false
	minProjection := 0.0
	maxProjection := 0.0
	for _, vertex := range modelData.Vertices.Values() {
		if vertex == nil || vertex.Deform == nil {
			continue
		}
		if vertex.Deform.DominantBoneIndex() != handIndex {
			continue
		}
		projection := vertex.Position.Dot(handDirection)
		if !found {
			minProjection = projection
			maxProjection = projection
			found = true
			continue
		}
		if projection < minProjection {
			minProjection = projection
		}
		if projection > maxProjection {
			maxProjection = projection
		}
	}
	if !found {
		return 0
	}
	return maxProjection - minProjection
}

// resolveSpreadAxis は指を扇状に開く回転軸(掌法線の近似)を返す。
func resolveSpreadAxis(handDirection mmath.Vec3) mmath.Vec3 {
	axis := handDirection.Cross(mmath.UNIT_Y_VEC3)
	if axis.Length() <= fingerAxisEpsilon {
		axis = handDirection.Cross(mmath.UNIT_Z_VEC3)
	}
	return axis.Normalized()
}

// resolveSpokeDirection は指1本の伸長方向を返す。
// 親指だけは開き回転に対向回転を合成する。
func resolveSpokeDirection(handDirection mmath.Vec3, spreadAxis mmath.Vec3, finger string, mirror float64) mmath.Vec3 {
	rotation := mmath.NewQuaternionFromAxisAngleDeg(spreadAxis, fingerSpreadDegreeByFinger[finger]*mirror)
	if finger == "thumb" {
		opposition := mmath.NewQuaternionFromAxisAngleDeg(handDirection, thumbOppositionDegree*mirror)
		rotation = rotation.Muled(opposition)
	}
	return rotation.RotatedVec3(handDirection).Normalized()
}

// synthesizedFingerBoneName は衝突しない合成ボーン名を採番して返す。
func synthesizedFingerBoneName(bones *model.BoneCollection, finger string, joint int, direction model.BoneDirection) string {
	base := fmt.Sprintf("%s_%d.%s", finger, joint, sideSuffixWord(direction))
	if !bones.ContainsByName(base) {
		return base
	}
	for serial := 0; ; serial++ {
		candidate := fmt.Sprintf("%s_%03d", base, serial)
		if !bones.ContainsByName(candidate) {
			return candidate
		}
	}
}
