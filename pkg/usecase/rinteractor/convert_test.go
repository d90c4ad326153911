// 指示: miu200521358
package rinteractor

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/miu200521358/mu_rig2ue/pkg/domain/mmath"
	"github.com/miu200521358/mu_rig2ue/pkg/domain/model"
	"github.com/miu200521358/mu_rig2ue/pkg/domain/model/rerrors"
	"github.com/miu200521358/mu_rig2ue/pkg/usecase/port/routput"
)

// stubReader はテスト用のモデル読み込みリポジトリを表す。
type stubReader struct {
	modelData *model.SkeletonModel
	err       error
	loaded    []string
}

func (r *stubReader) CanLoad(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

func (r *stubReader) Load(path string) (*model.SkeletonModel, error) {
	r.loaded = append(r.loaded, path)
	if r.err != nil {
		return nil, r.err
	}
	return r.modelData, nil
}

// stubWriter はテスト用のモデル保存リポジトリを表す。
type stubWriter struct {
	savedPath  string
	savedModel *model.SkeletonModel
	saveCount  int
	err        error
}

func (w *stubWriter) Save(path string, modelData *model.SkeletonModel, options routput.SaveOptions) error {
	if w.err != nil {
		return w.err
	}
	w.saveCount++
	w.savedPath = path
	w.savedModel = modelData
	return nil
}

// progressRecorder は進捗イベントを記録する。
type progressRecorder struct {
	events []NormalizeProgressEvent
}

func (r *progressRecorder) ReportNormalizeProgress(event NormalizeProgressEvent) {
	r.events = append(r.events, event)
}

func (r *progressRecorder) hasEvent(eventType NormalizeProgressEventType) bool {
	for _, event := range r.events {
		if event.Type == eventType {
			return true
		}
	}
	return false
}

// buildNormalizeUsecase はスタブ依存のユースケースを構築する。
func buildNormalizeUsecase(reader *stubReader, writer *stubWriter) *Rig2UeUsecase {
	return NewRig2UeUsecase(Rig2UeUsecaseDeps{
		ModelReader: reader,
		ModelWriter: writer,
	})
}

func TestNormalizeMixamoEndToEnd(t *testing.T) {
	reader := &stubReader{modelData: buildMixamoModel(t)}
	writer := &stubWriter{}
	usecase := buildNormalizeUsecase(reader, writer)
	recorder := &progressRecorder{}

	result, err := usecase.Normalize(NormalizeRequest{
		InputPath:        filepath.Join("work", "avatar.json"),
		Side:             SideBoth,
		IncludeBody:      true,
		ProgressReporter: recorder,
	})
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if !result.Saved {
		t.Fatalf("result should be saved")
	}
	if writer.saveCount != 1 {
		t.Fatalf("save count mismatch: %d", writer.saveCount)
	}
	expectedOutput := filepath.Join("work", "avatar_ue5.json")
	if writer.savedPath != expectedOutput {
		t.Fatalf("output path mismatch: %s != %s", writer.savedPath, expectedOutput)
	}

	if result.Inspect.Classification != model.RIG_CLASSIFICATION_MIXAMO {
		t.Fatalf("classification mismatch: %s", result.Inspect.Classification)
	}
	if len(result.FingerRig.CreatedBoneIndexes) != 30 {
		t.Fatalf("created finger count mismatch: %d", len(result.FingerRig.CreatedBoneIndexes))
	}
	for _, name := range []string{"pelvis", "hand_l", "thumb_01_l", "pinky_03_r"} {
		if !result.Model.Bones.ContainsByName(name) {
			t.Fatalf("renamed bone not found: %s", name)
		}
	}
	for _, eventType := range []NormalizeProgressEventType{
		NormalizeProgressEventTypeRigInspected,
		NormalizeProgressEventTypeFingersRigged,
		NormalizeProgressEventTypeRenamePlanned,
		NormalizeProgressEventTypeExportChecked,
		NormalizeProgressEventTypeModelSaved,
	} {
		if !recorder.hasEvent(eventType) {
			t.Fatalf("progress event missing: %s", eventType)
		}
	}
}

func TestNormalizeDryRunKeepsOriginal(t *testing.T) {
	original := buildMixamoModel(t)
	writer := &stubWriter{}
	usecase := buildNormalizeUsecase(&stubReader{}, writer)

	result, err := usecase.Normalize(NormalizeRequest{
		InputPath:   "avatar.json",
		ModelData:   original,
		Side:        SideBoth,
		IncludeBody: true,
		DryRun:      true,
	})
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if result.Saved {
		t.Fatalf("dry run should not save")
	}
	if writer.saveCount != 0 {
		t.Fatalf("writer should not be called: %d", writer.saveCount)
	}
	if result.Model == original {
		t.Fatalf("dry run should operate on a copy")
	}
	if !original.Bones.ContainsByName("mixamorig:Hips") {
		t.Fatalf("original should be unchanged")
	}
	if !result.Model.Bones.ContainsByName("pelvis") {
		t.Fatalf("copy should be normalized")
	}
}

func TestNormalizeRejectsUnknownRig(t *testing.T) {
	modelData := model.NewSkeletonModel("props")
	appendTestBones(t, modelData, []testBoneSpec{
		{Name: "prop_01", Parent: -1},
		{Name: "prop_02", Parent: 0},
	})
	usecase := buildNormalizeUsecase(&stubReader{modelData: modelData}, &stubWriter{})

	_, err := usecase.Normalize(NormalizeRequest{InputPath: "props.json"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !rerrors.IsUnsupportedRigError(err) {
		t.Fatalf("unexpected error type: %v", err)
	}
}

func TestNormalizeMeshOnlyPassesThrough(t *testing.T) {
	writer := &stubWriter{}
	usecase := buildNormalizeUsecase(&stubReader{modelData: buildMeshOnlyModel(t)}, writer)

	result, err := usecase.Normalize(NormalizeRequest{InputPath: "mesh.json"})
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if !result.Saved {
		t.Fatalf("mesh only model should be saved")
	}
	if result.Inspect.Classification != model.RIG_CLASSIFICATION_MESH_ONLY {
		t.Fatalf("classification mismatch: %s", result.Inspect.Classification)
	}
	if result.RoleMap.Len() != 0 {
		t.Fatalf("role map should be empty: %d", result.RoleMap.Len())
	}
	if result.FingerRig != nil {
		t.Fatalf("finger rig should be skipped")
	}
}

func TestNormalizeBlocksInvalidExport(t *testing.T) {
	modelData := buildMixamoModel(t)
	modelData.Vertices.Append(&model.Vertex{
		Position: mmath.NewVec3(0, 0.5, 0),
		Deform:   model.NewDeform([]int{0}, []float64{0.5}),
	})
	writer := &stubWriter{}
	usecase := buildNormalizeUsecase(&stubReader{modelData: modelData}, writer)

	_, err := usecase.Normalize(NormalizeRequest{InputPath: "avatar.json"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !rerrors.IsExportBlockedError(err) {
		t.Fatalf("unexpected error type: %v", err)
	}
	if writer.saveCount != 0 {
		t.Fatalf("blocked export should not save: %d", writer.saveCount)
	}
}

func TestNormalizeRequiresInput(t *testing.T) {
	usecase := buildNormalizeUsecase(&stubReader{}, &stubWriter{})
	if _, err := usecase.Normalize(NormalizeRequest{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNormalizeRejectsInvalidOutputExtension(t *testing.T) {
	usecase := buildNormalizeUsecase(&stubReader{modelData: buildMixamoModel(t)}, &stubWriter{})
	_, err := usecase.Normalize(NormalizeRequest{
		InputPath:  "avatar.json",
		OutputPath: "avatar.fbx",
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), ".json") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNormalizePropagatesLoadError(t *testing.T) {
	usecase := buildNormalizeUsecase(&stubReader{err: fmt.Errorf("broken")}, &stubWriter{})
	if _, err := usecase.Normalize(NormalizeRequest{InputPath: "avatar.json"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestBuildDefaultOutputPath(t *testing.T) {
	output := BuildDefaultOutputPath(filepath.Join("work", "avatar.json"))
	expected := filepath.Join("work", "avatar_ue5.json")
	if output != expected {
		t.Fatalf("output mismatch: %s != %s", output, expected)
	}
	if output := BuildDefaultOutputPath(".json"); output != "" {
		t.Fatalf("empty base should return empty: %s", output)
	}
}

func TestLoadModelValidatesPath(t *testing.T) {
	usecase := buildNormalizeUsecase(&stubReader{modelData: buildMixamoModel(t)}, &stubWriter{})
	if _, err := usecase.LoadModel(nil, ""); err == nil {
		t.Fatalf("expected error for empty path")
	}
	if _, err := usecase.LoadModel(nil, "avatar.fbx"); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}
	if _, err := usecase.LoadModel(nil, "avatar.json"); err != nil {
		t.Fatalf("load failed: %v", err)
	}
}

func TestSaveModelValidatesArguments(t *testing.T) {
	writer := &stubWriter{}
	usecase := buildNormalizeUsecase(&stubReader{}, writer)
	if err := usecase.SaveModel(nil, "", buildMixamoModel(t), SaveOptions{}); err == nil {
		t.Fatalf("expected error for empty path")
	}
	if err := usecase.SaveModel(nil, "out.json", nil, SaveOptions{}); err == nil {
		t.Fatalf("expected error for nil model")
	}
	if err := usecase.SaveModel(nil, "out.json", buildMixamoModel(t), SaveOptions{}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
}
