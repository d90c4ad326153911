// 指示: miu200521358
package rinteractor

import (
	"testing"

	"github.com/miu200521358/mu_rig2ue/pkg/domain/model"
	"github.com/miu200521358/mu_rig2ue/pkg/domain/model/rerrors"
)

func TestBuildRoleMapForMixamo(t *testing.T) {
	modelData := buildMixamoModel(t)
	result, err := BuildRoleMap(modelData, model.RIG_CLASSIFICATION_MIXAMO)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if len(result.MissingRequiredRoles) != 0 {
		t.Fatalf("missing roles: %v", result.MissingRequiredRoles)
	}

	hipsIndex, exists := result.RoleMap.Get(model.HIPS.Role())
	if !exists || hipsIndex != 0 {
		t.Fatalf("hips mismatch: %d %t", hipsIndex, exists)
	}
	leftHandIndex, exists := result.RoleMap.Get(model.HAND.Left())
	if !exists || leftHandIndex != 9 {
		t.Fatalf("left hand mismatch: %d %t", leftHandIndex, exists)
	}
	rightToeIndex, exists := result.RoleMap.Get(model.TOE.Right())
	if !exists || rightToeIndex != 21 {
		t.Fatalf("right toe mismatch: %d %t", rightToeIndex, exists)
	}
	// Spine2をchestへ割り当てる。
	chestIndex, exists := result.RoleMap.Get(model.CHEST.Role())
	if !exists || chestIndex != 3 {
		t.Fatalf("chest mismatch: %d %t", chestIndex, exists)
	}
}

func TestBuildRoleMapForGenericHumanoid(t *testing.T) {
	modelData := buildGenericModel(t)
	result, err := BuildRoleMap(modelData, model.RIG_CLASSIFICATION_GENERIC_HUMANOID)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if len(result.MissingRequiredRoles) != 0 {
		t.Fatalf("missing roles: %v", result.MissingRequiredRoles)
	}
	leftThighIndex, exists := result.RoleMap.Get(model.UPPER_LEG.Left())
	if !exists || leftThighIndex != 13 {
		t.Fatalf("left thigh mismatch: %d %t", leftThighIndex, exists)
	}
	rightCalfIndex, exists := result.RoleMap.Get(model.LOWER_LEG.Right())
	if !exists || rightCalfIndex != 18 {
		t.Fatalf("right calf mismatch: %d %t", rightCalfIndex, exists)
	}
}

func TestBuildRoleMapReportsMissingRequiredRoles(t *testing.T) {
	modelData := model.NewSkeletonModel("partial")
	appendTestBones(t, modelData, []testBoneSpec{
		{Name: "mixamorig:Hips", Parent: -1},
		{Name: "mixamorig:Spine", Parent: 0},
	})
	result, err := BuildRoleMap(modelData, model.RIG_CLASSIFICATION_MIXAMO)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if len(result.MissingRequiredRoles) == 0 {
		t.Fatalf("missing roles should be reported")
	}
	if !result.RoleMap.Has(model.HIPS.Role()) {
		t.Fatalf("hips should be mapped")
	}
}

func TestBuildRoleMapRejectsUnknown(t *testing.T) {
	_, err := BuildRoleMap(model.NewSkeletonModel("unknown"), model.RIG_CLASSIFICATION_UNKNOWN)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !rerrors.IsUnsupportedRigError(err) {
		t.Fatalf("unexpected error type: %v", err)
	}
}

func TestBuildRoleMapForMeshOnlyReturnsEmptyMap(t *testing.T) {
	result, err := BuildRoleMap(buildMeshOnlyModel(t), model.RIG_CLASSIFICATION_MESH_ONLY)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if result.RoleMap.Len() != 0 {
		t.Fatalf("role map should be empty: %d", result.RoleMap.Len())
	}
}

func TestBuildRoleMapFirstKeyWins(t *testing.T) {
	modelData := model.NewSkeletonModel("alternates")
	appendTestBones(t, modelData, []testBoneSpec{
		{Name: "Hips", Parent: -1},
		{Name: "Pelvis", Parent: 0},
	})
	result, err := BuildRoleMap(modelData, model.RIG_CLASSIFICATION_GENERIC_HUMANOID)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	hipsIndex, exists := result.RoleMap.Get(model.HIPS.Role())
	if !exists || hipsIndex != 0 {
		t.Fatalf("first key should win: %d %t", hipsIndex, exists)
	}
}
