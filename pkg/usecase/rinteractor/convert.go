// 指示: miu200521358
package rinteractor

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/miu200521358/mu_rig2ue/pkg/domain/model"
	"github.com/miu200521358/mu_rig2ue/pkg/domain/model/rerrors"
	"github.com/miu200521358/mu_rig2ue/pkg/usecase/port/routput"
)

const (
	rigFileExtension        = ".json"
	normalizedOutputSuffix  = "_ue5"
	exportViolationsSummary = 3
)

// InspectModel はモデルのリグ分類と概要を返す。
func (uc *Rig2UeUsecase) InspectModel(modelData *ModelData) *InspectResult {
	return InspectRig(modelData)
}

// BuildRoleMapForModel は検査結果の分類に応じたロール対応を構築する。
func (uc *Rig2UeUsecase) BuildRoleMapForModel(modelData *ModelData) (*RoleMapResult, error) {
	inspect := InspectRig(modelData)
	return BuildRoleMap(modelData, inspect.Classification)
}

// RigFingers は指チェーン補完とウェイト割当を実行する。
// 外部リガー注入済みのときはそちらへ委譲する。
func (uc *Rig2UeUsecase) RigFingers(
	modelData *ModelData,
	roleMap *model.BoneRoleMap,
	side string,
) (*routput.FingerRigResult, error) {
	return uc.resolveFingerRigger().RigFingers(modelData, roleMap, side)
}

// PlanRenameToUe5 はUE5命名への変更計画を構築し、dry_runでなければ適用する。
func (uc *Rig2UeUsecase) PlanRenameToUe5(
	modelData *ModelData,
	roleMap *model.BoneRoleMap,
	includeBody bool,
	dryRun bool,
) (*RenamePlanResult, error) {
	return PlanRename(modelData, roleMap, includeBody, dryRun)
}

// CheckExportReadiness はモデルが出力可能な状態か検証する。
func (uc *Rig2UeUsecase) CheckExportReadiness(modelData *ModelData) (*ExportReadinessResult, error) {
	return CheckExportReady(modelData)
}

// Normalize はリグ入力を読み込み、UE5正規化を通して保存するまでを実行する。
// DryRun のときはモデル複製上で全工程を実行し、保存だけ省く。
func (uc *Rig2UeUsecase) Normalize(request NormalizeRequest) (*NormalizeResult, error) {
	if strings.TrimSpace(request.InputPath) == "" && request.ModelData == nil {
		return nil, fmt.Errorf("入力リグパスが未指定です")
	}
	reportNormalizeProgress(request.ProgressReporter, NormalizeProgressEvent{
		Type: NormalizeProgressEventTypeInputValidated,
	})

	outputPath, err := resolveRigOutputPath(request.InputPath, request.OutputPath)
	if err != nil {
		return nil, err
	}
	reportNormalizeProgress(request.ProgressReporter, NormalizeProgressEvent{
		Type: NormalizeProgressEventTypeOutputPathResolved,
	})

	modelData, err := uc.resolveModelData(request.Reader, request.InputPath, request.ModelData)
	if err != nil {
		return nil, err
	}
	if request.DryRun {
		copied, err := modelData.Copy()
		if err != nil {
			return nil, err
		}
		modelData = copied
	}
	reportNormalizeProgress(request.ProgressReporter, NormalizeProgressEvent{
		Type: NormalizeProgressEventTypeModelLoaded,
	})

	result := &NormalizeResult{Model: modelData, OutputPath: outputPath}
	if err := uc.normalizeRig(modelData, request, result); err != nil {
		return nil, err
	}

	readiness, err := CheckExportReady(modelData)
	if err != nil {
		return nil, err
	}
	result.ExportReadiness = readiness
	reportNormalizeProgress(request.ProgressReporter, NormalizeProgressEvent{
		Type:           NormalizeProgressEventTypeExportChecked,
		ViolationCount: len(readiness.Violations),
	})
	if !readiness.OK {
		return nil, rerrors.NewExportBlockedError(
			len(readiness.Violations),
			summarizeViolations(readiness.Violations),
		)
	}

	if request.DryRun {
		return result, nil
	}
	if err := uc.SaveModel(request.Writer, outputPath, modelData, request.SaveOptions); err != nil {
		return nil, err
	}
	result.Saved = true
	reportNormalizeProgress(request.ProgressReporter, NormalizeProgressEvent{
		Type: NormalizeProgressEventTypeModelSaved,
	})
	return result, nil
}

// normalizeRig は検査からロール対応・指リギング・命名変更までを実行する。
// メッシュのみのモデルは骨格工程を持たないため、検査結果だけ記録して素通しする。
func (uc *Rig2UeUsecase) normalizeRig(
	modelData *ModelData,
	request NormalizeRequest,
	result *NormalizeResult,
) error {
	inspect := InspectRig(modelData)
	result.Inspect = inspect
	reportNormalizeProgress(request.ProgressReporter, NormalizeProgressEvent{
		Type:           NormalizeProgressEventTypeRigInspected,
		Classification: inspect.Classification,
	})
	if inspect.Classification == model.RIG_CLASSIFICATION_MESH_ONLY {
		result.RoleMap = model.NewBoneRoleMap()
		return nil
	}

	roleMapResult, err := BuildRoleMap(modelData, inspect.Classification)
	if err != nil {
		return err
	}
	result.RoleMap = roleMapResult.RoleMap
	reportNormalizeProgress(request.ProgressReporter, NormalizeProgressEvent{
		Type:           NormalizeProgressEventTypeRoleMapBuilt,
		Classification: inspect.Classification,
	})

	side := request.Side
	if strings.TrimSpace(side) == "" {
		side = SideBoth
	}
	fingerRig, err := uc.resolveFingerRigger().RigFingers(modelData, roleMapResult.RoleMap, side)
	if err != nil {
		return err
	}
	result.FingerRig = fingerRig
	reportNormalizeProgress(request.ProgressReporter, NormalizeProgressEvent{
		Type:             NormalizeProgressEventTypeFingersRigged,
		CreatedBoneCount: len(fingerRig.CreatedBoneIndexes),
	})

	// 複製上で実行済みのため、パイプラインのdry_runでも命名変更は実適用する。
	renamePlan, err := PlanRename(modelData, roleMapResult.RoleMap, request.IncludeBody, false)
	if err != nil {
		return err
	}
	result.RenamePlan = renamePlan
	reportNormalizeProgress(request.ProgressReporter, NormalizeProgressEvent{
		Type:             NormalizeProgressEventTypeRenamePlanned,
		RenamedBoneCount: len(renamePlan.AppliedIndexes),
	})
	return nil
}

// resolveModelData は変換対象モデルを解決する。
func (uc *Rig2UeUsecase) resolveModelData(
	rep routput.IFileReader,
	inputPath string,
	modelData *ModelData,
) (*ModelData, error) {
	resolved := modelData
	if resolved == nil {
		loaded, err := uc.LoadModel(rep, inputPath)
		if err != nil {
			return nil, err
		}
		resolved = loaded
	}
	if resolved == nil {
		return nil, fmt.Errorf("モデル読み込み結果が空です")
	}
	return resolved, nil
}

// resolveRigOutputPath は保存先パスを解決し、拡張子を検証する。
func resolveRigOutputPath(inputPath string, outputPath string) (string, error) {
	resolved := strings.TrimSpace(outputPath)
	if resolved == "" {
		resolved = BuildDefaultOutputPath(inputPath)
	}
	if strings.TrimSpace(resolved) == "" {
		return "", fmt.Errorf("保存先リグパスが未指定です")
	}
	if !strings.EqualFold(filepath.Ext(resolved), rigFileExtension) {
		return "", fmt.Errorf("保存先拡張子が %s ではありません: %s", rigFileExtension, resolved)
	}
	return resolved, nil
}

// BuildDefaultOutputPath は入力パスから既定の保存先パスを生成する。
func BuildDefaultOutputPath(inputPath string) string {
	dir := filepath.Dir(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	if strings.TrimSpace(base) == "" {
		return ""
	}
	return filepath.Join(dir, base+normalizedOutputSuffix+rigFileExtension)
}

// summarizeViolations は違反一覧の先頭数件を要約文字列にする。
func summarizeViolations(violations []model.ExportViolation) string {
	parts := make([]string, 0, exportViolationsSummary)
	for i, violation := range violations {
		if i >= exportViolationsSummary {
			parts = append(parts, fmt.Sprintf("他%d件", len(violations)-exportViolationsSummary))
			break
		}
		parts = append(parts, violation.ID)
	}
	return strings.Join(parts, ", ")
}

// reportNormalizeProgress は進捗通知先が設定されているときだけ通知する。
func reportNormalizeProgress(reporter INormalizeProgressReporter, event NormalizeProgressEvent) {
	if reporter == nil {
		return
	}
	reporter.ReportNormalizeProgress(event)
}
