// 指示: miu200521358
package model

import "sort"

// BoneDirection はボーンの左右方向を表す。
type BoneDirection string

const (
	// BONE_DIRECTION_LEFT は左側を表す。
	BONE_DIRECTION_LEFT BoneDirection = "left"
	// BONE_DIRECTION_RIGHT は右側を表す。
	BONE_DIRECTION_RIGHT BoneDirection = "right"
)

// BoneDirections は左右方向を処理順で返す。
func BoneDirections() []BoneDirection {
	return []BoneDirection{BONE_DIRECTION_LEFT, BONE_DIRECTION_RIGHT}
}

// RoleName は左右を含まない正準ロール種別を表す。
type RoleName string

// 正準ロール種別一覧。
const (
	HIPS      RoleName = "hips"
	SPINE     RoleName = "spine"
	CHEST     RoleName = "chest"
	NECK      RoleName = "neck"
	HEAD      RoleName = "head"
	SHOULDER  RoleName = "shoulder"
	UPPER_ARM RoleName = "upper_arm"
	FOREARM   RoleName = "forearm"
	HAND      RoleName = "hand"
	THUMB1    RoleName = "thumb1"
	THUMB2    RoleName = "thumb2"
	THUMB3    RoleName = "thumb3"
	INDEX1    RoleName = "index1"
	INDEX2    RoleName = "index2"
	INDEX3    RoleName = "index3"
	MIDDLE1   RoleName = "middle1"
	MIDDLE2   RoleName = "middle2"
	MIDDLE3   RoleName = "middle3"
	RING1     RoleName = "ring1"
	RING2     RoleName = "ring2"
	RING3     RoleName = "ring3"
	PINKY1    RoleName = "pinky1"
	PINKY2    RoleName = "pinky2"
	PINKY3    RoleName = "pinky3"
	UPPER_LEG RoleName = "upper_leg"
	LOWER_LEG RoleName = "lower_leg"
	FOOT      RoleName = "foot"
	TOE       RoleName = "toe"
)

// BoneRole は左右を解決済みの正準ロールを表す。
type BoneRole string

// String はロール文字列を返す。
func (r BoneRole) String() string {
	return string(r)
}

// Role は中央ロールを返す。
func (n RoleName) Role() BoneRole {
	return BoneRole(n)
}

// Left は左側ロールを返す。
func (n RoleName) Left() BoneRole {
	return BoneRole("left_" + string(n))
}

// Right は右側ロールを返す。
func (n RoleName) Right() BoneRole {
	return BoneRole("right_" + string(n))
}

// FromDirection は方向指定でロールを返す。
func (n RoleName) FromDirection(direction BoneDirection) BoneRole {
	if direction == BONE_DIRECTION_RIGHT {
		return n.Right()
	}
	return n.Left()
}

// CenterRoleNames は中央ロール種別を返す。
func CenterRoleNames() []RoleName {
	return []RoleName{HIPS, SPINE, CHEST, NECK, HEAD}
}

// SideRoleNames は左右ロール種別を返す。
func SideRoleNames() []RoleName {
	return []RoleName{
		SHOULDER, UPPER_ARM, FOREARM, HAND,
		THUMB1, THUMB2, THUMB3,
		INDEX1, INDEX2, INDEX3,
		MIDDLE1, MIDDLE2, MIDDLE3,
		RING1, RING2, RING3,
		PINKY1, PINKY2, PINKY3,
		UPPER_LEG, LOWER_LEG, FOOT, TOE,
	}
}

// FingerRoleNames は指ロール種別を返す。
func FingerRoleNames() []RoleName {
	return []RoleName{
		THUMB1, THUMB2, THUMB3,
		INDEX1, INDEX2, INDEX3,
		MIDDLE1, MIDDLE2, MIDDLE3,
		RING1, RING2, RING3,
		PINKY1, PINKY2, PINKY3,
	}
}

// FingerChainRoleNames は指種別ごとの3関節ロール種別を関節順で返す。
func FingerChainRoleNames() map[string][3]RoleName {
	return map[string][3]RoleName{
		"thumb":  {THUMB1, THUMB2, THUMB3},
		"index":  {INDEX1, INDEX2, INDEX3},
		"middle": {MIDDLE1, MIDDLE2, MIDDLE3},
		"ring":   {RING1, RING2, RING3},
		"pinky":  {PINKY1, PINKY2, PINKY3},
	}
}

// FingerOrder は指種別を親指から小指の順で返す。
func FingerOrder() []string {
	return []string{"thumb", "index", "middle", "ring", "pinky"}
}

// IsFinger は指ロール種別か判定する。
func (n RoleName) IsFinger() bool {
	for _, finger := range FingerRoleNames() {
		if n == finger {
			return true
		}
	}
	return false
}

// RequiredRoles は必須ロール一覧を返す。
// 体幹・頭部・四肢は必須、指とつま先は欠落が想定内のため任意とする。
func RequiredRoles() []BoneRole {
	roles := make([]BoneRole, 0, 24)
	for _, name := range CenterRoleNames() {
		roles = append(roles, name.Role())
	}
	for _, name := range []RoleName{SHOULDER, UPPER_ARM, FOREARM, HAND, UPPER_LEG, LOWER_LEG, FOOT} {
		roles = append(roles, name.Left(), name.Right())
	}
	return roles
}

// AllRoles は全ロールを列挙順で返す。
func AllRoles() []BoneRole {
	roles := make([]BoneRole, 0, 64)
	for _, name := range CenterRoleNames() {
		roles = append(roles, name.Role())
	}
	for _, name := range SideRoleNames() {
		roles = append(roles, name.Left(), name.Right())
	}
	return roles
}

// BoneRoleMap は正準ロールから現行モデル内ボーンindexへの対応を表す。
type BoneRoleMap struct {
	roles map[BoneRole]int
}

// NewBoneRoleMap は空のロール対応を生成する。
func NewBoneRoleMap() *BoneRoleMap {
	return &BoneRoleMap{roles: map[BoneRole]int{}}
}

// Set はロールへボーンindexを割り当てる。
func (m *BoneRoleMap) Set(role BoneRole, boneIndex int) {
	if m == nil || boneIndex < 0 {
		return
	}
	m.roles[role] = boneIndex
}

// Get はロールのボーンindexを返す。
func (m *BoneRoleMap) Get(role BoneRole) (int, bool) {
	if m == nil {
		return -1, false
	}
	index, exists := m.roles[role]
	return index, exists
}

// Has はロールが割当済みか判定する。
func (m *BoneRoleMap) Has(role BoneRole) bool {
	_, exists := m.Get(role)
	return exists
}

// Len は割当済みロール数を返す。
func (m *BoneRoleMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.roles)
}

// Roles は割当済みロールを辞書順で返す。
func (m *BoneRoleMap) Roles() []BoneRole {
	if m == nil {
		return []BoneRole{}
	}
	roles := make([]BoneRole, 0, len(m.roles))
	for role := range m.roles {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i int, j int) bool {
		return roles[i] < roles[j]
	})
	return roles
}

// MissingRequiredRoles は未割当の必須ロールを列挙順で返す。
func (m *BoneRoleMap) MissingRequiredRoles() []BoneRole {
	missing := make([]BoneRole, 0, 4)
	for _, role := range RequiredRoles() {
		if !m.Has(role) {
			missing = append(missing, role)
		}
	}
	return missing
}
