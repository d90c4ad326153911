// 指示: miu200521358
package rinteractor

import (
	"fmt"
	"sort"

	"github.com/miu200521358/mu_rig2ue/pkg/domain/model"
	"github.com/miu200521358/mu_rig2ue/pkg/domain/model/rerrors"
)

const boneRenameTempPrefix = "__mu_rig2ue_tmp_"

// RenameEntryStatus は命名変更エントリの状態を表す。
type RenameEntryStatus string

const (
	// RenameEntryStatusPlanned は適用前の計画済み状態を表す。
	RenameEntryStatusPlanned RenameEntryStatus = "planned"
	// RenameEntryStatusApplied は適用済み状態を表す。
	RenameEntryStatusApplied RenameEntryStatus = "applied"
	// RenameEntryStatusUnchanged は既に対象名で変更不要の状態を表す。
	RenameEntryStatusUnchanged RenameEntryStatus = "unchanged"
	// RenameEntryStatusSkippedCollision は衝突により除外された状態を表す。
	RenameEntryStatusSkippedCollision RenameEntryStatus = "skipped_collision"
	// RenameEntryStatusSkippedBlocked は無関係な既存名に阻まれた状態を表す。
	RenameEntryStatusSkippedBlocked RenameEntryStatus = "skipped_blocked"
)

// NameCollision の種別。
const (
	// NameCollisionKindDuplicateTarget は複数ソースが同一対象名へ解決した衝突。
	NameCollisionKindDuplicateTarget = "duplicate_target"
	// NameCollisionKindDuplicateSource は1ボーンが複数ロールへ割当済みの衝突。
	NameCollisionKindDuplicateSource = "duplicate_source"
)

// RenameEntry は命名変更計画の1件を表す。
type RenameEntry struct {
	Role        model.BoneRole
	SourceIndex int
	SourceName  string
	TargetName  string
	Status      RenameEntryStatus
	Reason      string
}

// NameCollision は検出された命名衝突1件を表す。
type NameCollision struct {
	Kind          string
	TargetName    string
	SourceIndexes []int
	Roles         []model.BoneRole
}

// RenamePlanResult は命名変更計画と適用結果を表す。
// 呼び出しごとに新規構築し、モデル変異をまたいで保持しない。
type RenamePlanResult struct {
	Entries        []RenameEntry
	AppliedIndexes []int
	Collisions     []NameCollision
	DryRun         bool
}

// ue5TargetNameByRole は正準ロールからUE5マネキン命名への固定対応表を返す。
func ue5TargetNameByRole() map[model.BoneRole]string {
	targets := map[model.BoneRole]string{
		model.HIPS.Role():  "pelvis",
		model.SPINE.Role(): "spine_01",
		model.CHEST.Role(): "spine_02",
		model.NECK.Role():  "neck_01",
		model.HEAD.Role():  "head",
	}
	sideTemplates := map[model.RoleName]string{
		model.SHOULDER:  "clavicle_%s",
		model.UPPER_ARM: "upperarm_%s",
		model.FOREARM:   "lowerarm_%s",
		model.HAND:      "hand_%s",
		model.THUMB1:    "thumb_01_%s",
		model.THUMB2:    "thumb_02_%s",
		model.THUMB3:    "thumb_03_%s",
		model.INDEX1:    "index_01_%s",
		model.INDEX2:    "index_02_%s",
		model.INDEX3:    "index_03_%s",
		model.MIDDLE1:   "middle_01_%s",
		model.MIDDLE2:   "middle_02_%s",
		model.MIDDLE3:   "middle_03_%s",
		model.RING1:     "ring_01_%s",
		model.RING2:     "ring_02_%s",
		model.RING3:     "ring_03_%s",
		model.PINKY1:    "pinky_01_%s",
		model.PINKY2:    "pinky_02_%s",
		model.PINKY3:    "pinky_03_%s",
		model.UPPER_LEG: "thigh_%s",
		model.LOWER_LEG: "calf_%s",
		model.FOOT:      "foot_%s",
		model.TOE:       "ball_%s",
	}
	for name, template := range sideTemplates {
		for _, direction := range model.BoneDirections() {
			targets[name.FromDirection(direction)] = fmt.Sprintf(template, sideSuffixWord(direction))
		}
	}
	return targets
}

// isHandOrFingerRole は手または指のロールか判定する。
func isHandOrFingerRole(role model.BoneRole) bool {
	for _, direction := range model.BoneDirections() {
		if role == model.HAND.FromDirection(direction) {
			return true
		}
		for _, finger := range model.FingerRoleNames() {
			if role == finger.FromDirection(direction) {
				return true
			}
		}
	}
	return false
}

// PlanRename はロール対応からUE5命名への変更計画を構築し、dry_runでなければ適用する。
// includeBody=false のときは手・指ロールだけを対象とし、体幹ボーンには触れない。
// 衝突したエントリのみ除外し、独立なエントリは部分的に成功させる。
func PlanRename(
	modelData *model.SkeletonModel,
	roleMap *model.BoneRoleMap,
	includeBody bool,
	dryRun bool,
) (*RenamePlanResult, error) {
	if modelData == nil || modelData.Bones == nil {
		return nil, fmt.Errorf("命名変更対象モデルが未設定です")
	}
	if roleMap == nil {
		return nil, fmt.Errorf("ロール対応が未設定です")
	}

	result := &RenamePlanResult{
		Entries:        buildRenameEntries(modelData, roleMap, includeBody),
		AppliedIndexes: []int{},
		Collisions:     []NameCollision{},
		DryRun:         dryRun,
	}
	detectDuplicateSourceCollisions(result)
	detectDuplicateTargetCollisions(result)
	detectBlockedRenameEntries(modelData, result)

	if dryRun {
		return result, nil
	}
	if err := applyRenameEntries(modelData, result); err != nil {
		return nil, err
	}
	return result, nil
}

// buildRenameEntries はロール対応から実在ボーンのみの計画エントリを構築する。
// 対象名の辞書順で整列し、決定的な計画にする。
func buildRenameEntries(modelData *model.SkeletonModel, roleMap *model.BoneRoleMap, includeBody bool) []RenameEntry {
	targets := ue5TargetNameByRole()
	entries := make([]RenameEntry, 0, roleMap.Len())
	for _, role := range roleMap.Roles() {
		if !includeBody && !isHandOrFingerRole(role) {
			continue
		}
		targetName, exists := targets[role]
		if !exists {
			continue
		}
		sourceIndex, _ := roleMap.Get(role)
		source, err := modelData.Bones.Get(sourceIndex)
		if err != nil || source == nil {
			continue
		}
		status := RenameEntryStatusPlanned
		if source.Name == targetName {
			status = RenameEntryStatusUnchanged
		}
		entries = append(entries, RenameEntry{
			Role:        role,
			SourceIndex: sourceIndex,
			SourceName:  source.Name,
			TargetName:  targetName,
			Status:      status,
		})
	}
	sort.Slice(entries, func(i int, j int) bool {
		if entries[i].TargetName == entries[j].TargetName {
			return entries[i].Role < entries[j].Role
		}
		return entries[i].TargetName < entries[j].TargetName
	})
	return entries
}

// detectDuplicateSourceCollisions は1ボーン複数ロールの衝突を検出して除外する。
func detectDuplicateSourceCollisions(result *RenamePlanResult) {
	entryIndexesBySource := map[int][]int{}
	sourceOrder := []int{}
	for i, entry := range result.Entries {
		if entry.Status != RenameEntryStatusPlanned && entry.Status != RenameEntryStatusUnchanged {
			continue
		}
		if _, exists := entryIndexesBySource[entry.SourceIndex]; !exists {
			sourceOrder = append(sourceOrder, entry.SourceIndex)
		}
		entryIndexesBySource[entry.SourceIndex] = append(entryIndexesBySource[entry.SourceIndex], i)
	}
	sort.Ints(sourceOrder)
	for _, sourceIndex := range sourceOrder {
		entryIndexes := entryIndexesBySource[sourceIndex]
		if len(entryIndexes) < 2 {
			continue
		}
		collision := NameCollision{
			Kind:          NameCollisionKindDuplicateSource,
			SourceIndexes: []int{sourceIndex},
		}
		for _, entryIndex := range entryIndexes {
			collision.Roles = append(collision.Roles, result.Entries[entryIndex].Role)
			result.Entries[entryIndex].Status = RenameEntryStatusSkippedCollision
			result.Entries[entryIndex].Reason = fmt.Sprintf("同一ボーンが複数ロールへ割当済みです: index=%d", sourceIndex)
		}
		result.Collisions = append(result.Collisions, collision)
	}
}

// detectDuplicateTargetCollisions は同一対象名へ解決する衝突を検出して除外する。
func detectDuplicateTargetCollisions(result *RenamePlanResult) {
	entryIndexesByTarget := map[string][]int{}
	targetOrder := []string{}
	for i, entry := range result.Entries {
		if entry.Status != RenameEntryStatusPlanned && entry.Status != RenameEntryStatusUnchanged {
			continue
		}
		if _, exists := entryIndexesByTarget[entry.TargetName]; !exists {
			targetOrder = append(targetOrder, entry.TargetName)
		}
		entryIndexesByTarget[entry.TargetName] = append(entryIndexesByTarget[entry.TargetName], i)
	}
	sort.Strings(targetOrder)
	for _, targetName := range targetOrder {
		entryIndexes := entryIndexesByTarget[targetName]
		if len(entryIndexes) < 2 {
			continue
		}
		collision := NameCollision{
			Kind:       NameCollisionKindDuplicateTarget,
			TargetName: targetName,
		}
		for _, entryIndex := range entryIndexes {
			collision.SourceIndexes = append(collision.SourceIndexes, result.Entries[entryIndex].SourceIndex)
			collision.Roles = append(collision.Roles, result.Entries[entryIndex].Role)
			result.Entries[entryIndex].Status = RenameEntryStatusSkippedCollision
			result.Entries[entryIndex].Reason = fmt.Sprintf("対象名が重複しています: %s", targetName)
		}
		result.Collisions = append(result.Collisions, collision)
	}
}

// detectBlockedRenameEntries は計画外の既存ボーン名に阻まれるエントリを検出して除外する。
// 既存ボーン自身も計画のソースであれば、二段階renameで入れ替わるため除外しない。
func detectBlockedRenameEntries(modelData *model.SkeletonModel, result *RenamePlanResult) {
	sourceIndexes := map[int]struct{}{}
	for _, entry := range result.Entries {
		if entry.Status == RenameEntryStatusPlanned || entry.Status == RenameEntryStatusUnchanged {
			sourceIndexes[entry.SourceIndex] = struct{}{}
		}
	}
	for i, entry := range result.Entries {
		if entry.Status != RenameEntryStatusPlanned {
			continue
		}
		existing, err := modelData.Bones.GetByName(entry.TargetName)
		if err != nil || existing == nil {
			continue
		}
		if existing.Index == entry.SourceIndex {
			continue
		}
		if _, isSource := sourceIndexes[existing.Index]; isSource {
			continue
		}
		result.Entries[i].Status = RenameEntryStatusSkippedBlocked
		result.Entries[i].Reason = fmt.Sprintf("計画外の既存ボーンが対象名を保持しています: %s", entry.TargetName)
	}
}

// applyRenameEntries は計画を二段階renameで適用する。
// 一旦全対象を一時名へ退避してから対象名を確定し、入れ替えの過渡衝突を避ける。
func applyRenameEntries(modelData *model.SkeletonModel, result *RenamePlanResult) error {
	tempSerial := 0
	for i, entry := range result.Entries {
		if entry.Status != RenameEntryStatusPlanned {
			continue
		}
		tempName := nextTemporaryBoneName(modelData.Bones, &tempSerial)
		if _, err := modelData.Bones.Rename(entry.SourceIndex, tempName); err != nil {
			if rerrors.IsNameConflictError(err) {
				result.Entries[i].Status = RenameEntryStatusSkippedBlocked
				result.Entries[i].Reason = err.Error()
				continue
			}
			return err
		}
	}

	for i, entry := range result.Entries {
		if entry.Status != RenameEntryStatusPlanned {
			continue
		}
		if _, err := modelData.Bones.Rename(entry.SourceIndex, entry.TargetName); err != nil {
			if rerrors.IsNameConflictError(err) {
				result.Entries[i].Status = RenameEntryStatusSkippedBlocked
				result.Entries[i].Reason = err.Error()
				continue
			}
			return err
		}
		result.Entries[i].Status = RenameEntryStatusApplied
		result.AppliedIndexes = append(result.AppliedIndexes, entry.SourceIndex)
	}
	return nil
}

// nextTemporaryBoneName は競合しない一時ボーン名を採番して返す。
func nextTemporaryBoneName(bones *model.BoneCollection, serial *int) string {
	for {
		candidate := fmt.Sprintf("%s%03d", boneRenameTempPrefix, *serial)
		*serial = *serial + 1
		if !bones.ContainsByName(candidate) {
			return candidate
		}
	}
}
