// 指示: miu200521358
package rinteractor

import (
	"testing"

	"github.com/miu200521358/mu_rig2ue/pkg/domain/model"
	"github.com/miu200521358/mu_rig2ue/pkg/usecase/port/routput"
)

// stubFingerRigger はテスト用の外部指リガーを表す。
type stubFingerRigger struct {
	called int
}

func (r *stubFingerRigger) Name() string {
	return "external_stub"
}

func (r *stubFingerRigger) RigFingers(
	modelData *model.SkeletonModel,
	roleMap *model.BoneRoleMap,
	side string,
) (*routput.FingerRigResult, error) {
	r.called++
	return &routput.FingerRigResult{
		CreatedBoneIndexes: []int{},
		FingerStatus:       map[string]string{},
	}, nil
}

func TestFallbackFingerRiggerName(t *testing.T) {
	rigger := NewFallbackFingerRigger()
	if rigger.Name() != fallbackFingerRiggerName {
		t.Fatalf("name mismatch: %s", rigger.Name())
	}
}

func TestFallbackFingerRiggerRigsAndWeights(t *testing.T) {
	modelData, roleMap := buildMixamoRoleMap(t)
	rigger := NewFallbackFingerRigger()

	result, err := rigger.RigFingers(modelData, roleMap, SideBoth)
	if err != nil {
		t.Fatalf("rig failed: %v", err)
	}
	if len(result.CreatedBoneIndexes) != 30 {
		t.Fatalf("created count mismatch: %d", len(result.CreatedBoneIndexes))
	}
	if result.WeightedVertexCount == 0 {
		t.Fatalf("weighted vertex count should be positive")
	}
}

func TestFallbackFingerRiggerSkipsWeightsWhenNothingCreated(t *testing.T) {
	modelData, roleMap := buildMixamoRoleMap(t)
	rigger := NewFallbackFingerRigger()
	if _, err := rigger.RigFingers(modelData, roleMap, SideBoth); err != nil {
		t.Fatalf("first rig failed: %v", err)
	}

	second, err := rigger.RigFingers(modelData, roleMap, SideBoth)
	if err != nil {
		t.Fatalf("second rig failed: %v", err)
	}
	if len(second.CreatedBoneIndexes) != 0 {
		t.Fatalf("second run should create nothing: %d", len(second.CreatedBoneIndexes))
	}
	if second.WeightedVertexCount != 0 {
		t.Fatalf("second run should not reweight: %d", second.WeightedVertexCount)
	}
}

func TestUsecasePrefersInjectedRigger(t *testing.T) {
	stub := &stubFingerRigger{}
	usecase := NewRig2UeUsecase(Rig2UeUsecaseDeps{FingerRigger: stub})
	modelData, roleMap := buildMixamoRoleMap(t)

	result, err := usecase.RigFingers(modelData, roleMap, SideBoth)
	if err != nil {
		t.Fatalf("rig failed: %v", err)
	}
	if stub.called != 1 {
		t.Fatalf("injected rigger should be used: %d", stub.called)
	}
	if len(result.CreatedBoneIndexes) != 0 {
		t.Fatalf("stub result should pass through: %v", result.CreatedBoneIndexes)
	}
}

func TestUsecaseFallsBackToBuiltinRigger(t *testing.T) {
	usecase := NewRig2UeUsecase(Rig2UeUsecaseDeps{})
	modelData, roleMap := buildMixamoRoleMap(t)

	result, err := usecase.RigFingers(modelData, roleMap, SideBoth)
	if err != nil {
		t.Fatalf("rig failed: %v", err)
	}
	if len(result.CreatedBoneIndexes) != 30 {
		t.Fatalf("builtin rigger should create bones: %d", len(result.CreatedBoneIndexes))
	}
}
