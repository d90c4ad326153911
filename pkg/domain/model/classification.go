// 指示: miu200521358
package model

// RigClassification はリグ命名規約の分類を表す。
type RigClassification string

const (
	// RIG_CLASSIFICATION_MESH_ONLY はアーマチュア無しメッシュを表す。
	RIG_CLASSIFICATION_MESH_ONLY RigClassification = "mesh_only"
	// RIG_CLASSIFICATION_MIXAMO は mixamorig: 接頭辞規約を表す。
	RIG_CLASSIFICATION_MIXAMO RigClassification = "mixamo"
	// RIG_CLASSIFICATION_GENERIC_HUMANOID は接頭辞無しの汎用人型規約を表す。
	RIG_CLASSIFICATION_GENERIC_HUMANOID RigClassification = "generic_humanoid"
	// RIG_CLASSIFICATION_UNKNOWN は判定不能を表す。
	RIG_CLASSIFICATION_UNKNOWN RigClassification = "unknown"
)

// String は分類文字列を返す。
func (c RigClassification) String() string {
	return string(c)
}

// IsMappable はロール対応表を持つ分類か判定する。
func (c RigClassification) IsMappable() bool {
	switch c {
	case RIG_CLASSIFICATION_MIXAMO, RIG_CLASSIFICATION_GENERIC_HUMANOID, RIG_CLASSIFICATION_MESH_ONLY:
		return true
	default:
		return false
	}
}
