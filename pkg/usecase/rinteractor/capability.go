// 指示: miu200521358
package rinteractor

import (
	"github.com/miu200521358/mu_rig2ue/pkg/domain/model"
	"github.com/miu200521358/mu_rig2ue/pkg/usecase/port/routput"
)

const fallbackFingerRiggerName = "builtin_fallback"

// fallbackFingerRigger は内蔵の指リギング実装を表す。
// 外部リガー未接続時に指チェーン合成とウェイト近似割当を順に実行する。
type fallbackFingerRigger struct{}

// NewFallbackFingerRigger は内蔵の指リガーを生成する。
func NewFallbackFingerRigger() routput.IFingerRigger {
	return &fallbackFingerRigger{}
}

// Name はリガー識別名を返す。
func (r *fallbackFingerRigger) Name() string {
	return fallbackFingerRiggerName
}

// RigFingers は指チェーン補完とウェイト割当を実行する。
func (r *fallbackFingerRigger) RigFingers(
	modelData *model.SkeletonModel,
	roleMap *model.BoneRoleMap,
	side string,
) (*routput.FingerRigResult, error) {
	synthesis, err := SynthesizeFingerChains(modelData, roleMap, side)
	if err != nil {
		return nil, err
	}
	result := &routput.FingerRigResult{
		CreatedBoneIndexes: synthesis.CreatedBoneIndexes,
		FingerStatus:       synthesis.FingerStatus,
	}
	if len(synthesis.CreatedBoneIndexes) == 0 {
		return result, nil
	}
	weights, err := EstimateFingerWeights(modelData, synthesis.CreatedBoneIndexes)
	if err != nil {
		return nil, err
	}
	result.WeightedVertexCount = weights.UpdatedVertexCount
	return result, nil
}

// resolveFingerRigger は利用する指リガーを解決する。注入済みリガーを優先する。
func (uc *Rig2UeUsecase) resolveFingerRigger() routput.IFingerRigger {
	if uc.fingerRigger != nil {
		return uc.fingerRigger
	}
	return NewFallbackFingerRigger()
}
