// 指示: miu200521358
package model

const (
	// ExportViolationRootMissing はルートボーン欠落違反。
	ExportViolationRootMissing = "ExportViolationRootMissing"
	// ExportViolationParentOutOfRange は親index範囲外違反。
	ExportViolationParentOutOfRange = "ExportViolationParentOutOfRange"
	// ExportViolationTreeCycle は親子グラフの循環違反。
	ExportViolationTreeCycle = "ExportViolationTreeCycle"
	// ExportViolationChildLinkBroken は親の子リストとの不整合違反。
	ExportViolationChildLinkBroken = "ExportViolationChildLinkBroken"
	// ExportViolationDuplicateBoneName はボーン名重複違反。
	ExportViolationDuplicateBoneName = "ExportViolationDuplicateBoneName"
	// ExportViolationWeightSumInvalid は頂点ウェイト合計違反。
	ExportViolationWeightSumInvalid = "ExportViolationWeightSumInvalid"
	// ExportViolationNegativeWeight は負ウェイト違反。
	ExportViolationNegativeWeight = "ExportViolationNegativeWeight"
	// ExportViolationWeightBoneOutOfRange はウェイト参照ボーン範囲外違反。
	ExportViolationWeightBoneOutOfRange = "ExportViolationWeightBoneOutOfRange"
)

// ExportViolation は出力前検証の違反1件を表す。
type ExportViolation struct {
	ID          string
	Message     string
	BoneIndex   int
	VertexIndex int
}
