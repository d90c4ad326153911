// 指示: miu200521358
package model

import "testing"

func TestRoleNameFromDirection(t *testing.T) {
	if role := HAND.FromDirection(BONE_DIRECTION_LEFT); role != BoneRole("left_hand") {
		t.Fatalf("left role mismatch: %s", role)
	}
	if role := HAND.FromDirection(BONE_DIRECTION_RIGHT); role != BoneRole("right_hand") {
		t.Fatalf("right role mismatch: %s", role)
	}
	if role := HIPS.Role(); role != BoneRole("hips") {
		t.Fatalf("center role mismatch: %s", role)
	}
}

func TestFingerChainRoleNamesHasAllFingers(t *testing.T) {
	chains := FingerChainRoleNames()
	for _, finger := range FingerOrder() {
		chain, exists := chains[finger]
		if !exists {
			t.Fatalf("finger chain missing: %s", finger)
		}
		if len(chain) != 3 {
			t.Fatalf("chain length mismatch: %s %d", finger, len(chain))
		}
	}
}

func TestRequiredRolesExcludeFingers(t *testing.T) {
	for _, role := range RequiredRoles() {
		for _, finger := range FingerRoleNames() {
			if role == finger.Left() || role == finger.Right() {
				t.Fatalf("finger role should be optional: %s", role)
			}
		}
		if role == TOE.Left() || role == TOE.Right() {
			t.Fatalf("toe role should be optional: %s", role)
		}
	}
}

func TestBoneRoleMapSetGet(t *testing.T) {
	roleMap := NewBoneRoleMap()
	roleMap.Set(HIPS.Role(), 3)
	index, exists := roleMap.Get(HIPS.Role())
	if !exists || index != 3 {
		t.Fatalf("get mismatch: %d %t", index, exists)
	}
	if roleMap.Has(HEAD.Role()) {
		t.Fatalf("unset role should be absent")
	}
}

func TestBoneRoleMapIgnoresNegativeIndex(t *testing.T) {
	roleMap := NewBoneRoleMap()
	roleMap.Set(HIPS.Role(), -1)
	if roleMap.Has(HIPS.Role()) {
		t.Fatalf("negative index should be ignored")
	}
}

func TestBoneRoleMapMissingRequiredRoles(t *testing.T) {
	roleMap := NewBoneRoleMap()
	for _, role := range RequiredRoles() {
		roleMap.Set(role, 0)
	}
	if missing := roleMap.MissingRequiredRoles(); len(missing) != 0 {
		t.Fatalf("missing should be empty: %v", missing)
	}

	partial := NewBoneRoleMap()
	partial.Set(HIPS.Role(), 0)
	missing := partial.MissingRequiredRoles()
	if len(missing) != len(RequiredRoles())-1 {
		t.Fatalf("missing count mismatch: %d", len(missing))
	}
}

func TestRolesAreSorted(t *testing.T) {
	roleMap := NewBoneRoleMap()
	roleMap.Set(HEAD.Role(), 2)
	roleMap.Set(HIPS.Role(), 0)
	roles := roleMap.Roles()
	for i := 1; i < len(roles); i++ {
		if roles[i-1] >= roles[i] {
			t.Fatalf("roles should be sorted: %v", roles)
		}
	}
}
