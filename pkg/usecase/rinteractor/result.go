// 指示: miu200521358
package rinteractor

import (
	"github.com/miu200521358/mu_rig2ue/pkg/domain/model"
	"github.com/miu200521358/mu_rig2ue/pkg/usecase/port/routput"
)

// ModelData は変換対象モデルを表す。
type ModelData = model.SkeletonModel

// SaveOptions は保存時オプションを表す。
type SaveOptions = routput.SaveOptions

// NormalizeProgressEventType は正規化処理の進捗イベント種別を表す。
type NormalizeProgressEventType string

const (
	// NormalizeProgressEventTypeInputValidated は入力検証完了イベントを表す。
	NormalizeProgressEventTypeInputValidated NormalizeProgressEventType = "input_validated"
	// NormalizeProgressEventTypeOutputPathResolved は出力パス解決完了イベントを表す。
	NormalizeProgressEventTypeOutputPathResolved NormalizeProgressEventType = "output_path_resolved"
	// NormalizeProgressEventTypeModelLoaded はモデル読み込み完了イベントを表す。
	NormalizeProgressEventTypeModelLoaded NormalizeProgressEventType = "model_loaded"
	// NormalizeProgressEventTypeRigInspected はリグ検査完了イベントを表す。
	NormalizeProgressEventTypeRigInspected NormalizeProgressEventType = "rig_inspected"
	// NormalizeProgressEventTypeRoleMapBuilt はロール対応構築完了イベントを表す。
	NormalizeProgressEventTypeRoleMapBuilt NormalizeProgressEventType = "role_map_built"
	// NormalizeProgressEventTypeFingersRigged は指リギング完了イベントを表す。
	NormalizeProgressEventTypeFingersRigged NormalizeProgressEventType = "fingers_rigged"
	// NormalizeProgressEventTypeRenamePlanned は命名変更計画確定イベントを表す。
	NormalizeProgressEventTypeRenamePlanned NormalizeProgressEventType = "rename_planned"
	// NormalizeProgressEventTypeExportChecked は出力前検証完了イベントを表す。
	NormalizeProgressEventTypeExportChecked NormalizeProgressEventType = "export_checked"
	// NormalizeProgressEventTypeModelSaved はモデル保存完了イベントを表す。
	NormalizeProgressEventTypeModelSaved NormalizeProgressEventType = "model_saved"
)

// NormalizeProgressEvent は正規化処理の進捗イベントを表す。
type NormalizeProgressEvent struct {
	Type             NormalizeProgressEventType
	Classification   model.RigClassification
	CreatedBoneCount int
	RenamedBoneCount int
	ViolationCount   int
}

// INormalizeProgressReporter は正規化処理の進捗通知契約を表す。
type INormalizeProgressReporter interface {
	// ReportNormalizeProgress は正規化処理進捗を通知する。
	ReportNormalizeProgress(event NormalizeProgressEvent)
}

// NormalizeRequest はリグ正規化要求を表す。
type NormalizeRequest struct {
	InputPath        string
	OutputPath       string
	ModelData        *ModelData
	Reader           routput.IFileReader
	Writer           routput.IFileWriter
	SaveOptions      routput.SaveOptions
	Side             string
	IncludeBody      bool
	DryRun           bool
	ProgressReporter INormalizeProgressReporter
}

// NormalizeResult はリグ正規化結果を表す。
type NormalizeResult struct {
	Model           *ModelData
	OutputPath      string
	Inspect         *InspectResult
	RoleMap         *model.BoneRoleMap
	FingerRig       *routput.FingerRigResult
	RenamePlan      *RenamePlanResult
	ExportReadiness *ExportReadinessResult
	Saved           bool
}
