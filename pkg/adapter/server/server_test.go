// 指示: miu200521358
package server

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/miu200521358/mu_rig2ue/pkg/adapter/io_rig/rig"
	"github.com/miu200521358/mu_rig2ue/pkg/usecase/rinteractor"
)

// buildTestServer はテスト用リポジトリ接続済みのコマンドサーバを構築する。
func buildTestServer(t *testing.T) *CommandServer {
	t.Helper()
	repository := rig.NewRigRepository()
	usecase := rinteractor.NewRig2UeUsecase(rinteractor.Rig2UeUsecaseDeps{
		ModelReader: repository,
		ModelWriter: repository,
	})
	return NewCommandServer("mu_rig2ue_test", "0.0.0", usecase)
}

// writeMixamoRigFile はテスト用mixamoリグJSONを保存してパスを返す。
func writeMixamoRigFile(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "avatar.json")
	body := `{
		"name": "avatar",
		"bones": [
			{"name": "mixamorig:Hips", "parent": -1, "head": [0, 1.0, 0], "tail": [0, 1.1, 0]},
			{"name": "mixamorig:LeftHand", "parent": 0, "head": [0.6, 1.4, 0], "tail": [0.7, 1.4, 0]},
			{"name": "mixamorig:RightHand", "parent": 0, "head": [-0.6, 1.4, 0], "tail": [-0.7, 1.4, 0]}
		],
		"vertices": [
			{"position": [0.72, 1.4, 0], "joints": [1], "weights": [1.0]},
			{"position": [-0.72, 1.4, 0], "joints": [2], "weights": [1.0]}
		]
	}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	return path
}

func TestHandleInspectRig(t *testing.T) {
	s := buildTestServer(t)
	path := writeMixamoRigFile(t, t.TempDir())

	payload, err := s.handleInspectRig(context.Background(), "op", map[string]any{"input_path": path})
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	result, ok := payload.(*rinteractor.InspectResult)
	if !ok {
		t.Fatalf("payload type mismatch: %T", payload)
	}
	if result.Classification.String() != "mixamo" {
		t.Fatalf("classification mismatch: %s", result.Classification)
	}
}

func TestHandleBuildRoleMap(t *testing.T) {
	s := buildTestServer(t)
	path := writeMixamoRigFile(t, t.TempDir())

	payload, err := s.handleBuildRoleMap(context.Background(), "op", map[string]any{"input_path": path})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	result, ok := payload.(map[string]any)
	if !ok {
		t.Fatalf("payload type mismatch: %T", payload)
	}
	roles, ok := result["roles"].(map[string]int)
	if !ok {
		t.Fatalf("roles type mismatch: %T", result["roles"])
	}
	if roles["hips"] != 0 {
		t.Fatalf("hips mismatch: %d", roles["hips"])
	}
	if roles["left_hand"] != 1 {
		t.Fatalf("left hand mismatch: %d", roles["left_hand"])
	}
}

func TestHandleRigFingersSavesOutput(t *testing.T) {
	s := buildTestServer(t)
	tempDir := t.TempDir()
	path := writeMixamoRigFile(t, tempDir)
	outputPath := filepath.Join(tempDir, "rigged.json")

	payload, err := s.handleRigFingers(context.Background(), "op", map[string]any{
		"input_path":  path,
		"output_path": outputPath,
		"side":        "both",
	})
	if err != nil {
		t.Fatalf("rig failed: %v", err)
	}
	result, ok := payload.(map[string]any)
	if !ok {
		t.Fatalf("payload type mismatch: %T", payload)
	}
	created, ok := result["created_bone_indexes"].([]int)
	if !ok {
		t.Fatalf("created type mismatch: %T", result["created_bone_indexes"])
	}
	if len(created) != 30 {
		t.Fatalf("created count mismatch: %d", len(created))
	}
	if _, err := os.Stat(outputPath); err != nil {
		t.Fatalf("output not saved: %v", err)
	}
}

func TestHandleRenameToUe5DryRunDoesNotSave(t *testing.T) {
	s := buildTestServer(t)
	tempDir := t.TempDir()
	path := writeMixamoRigFile(t, tempDir)
	outputPath := filepath.Join(tempDir, "renamed.json")

	payload, err := s.handleRenameToUe5(context.Background(), "op", map[string]any{
		"input_path":   path,
		"output_path":  outputPath,
		"include_body": true,
		"dry_run":      true,
	})
	if err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	result, ok := payload.(map[string]any)
	if !ok {
		t.Fatalf("payload type mismatch: %T", payload)
	}
	if result["dry_run"] != true {
		t.Fatalf("dry run flag mismatch: %v", result["dry_run"])
	}
	if _, err := os.Stat(outputPath); !os.IsNotExist(err) {
		t.Fatalf("dry run should not save: %v", err)
	}
}

func TestHandleCheckExportReady(t *testing.T) {
	s := buildTestServer(t)
	path := writeMixamoRigFile(t, t.TempDir())

	payload, err := s.handleCheckExportReady(context.Background(), "op", map[string]any{"input_path": path})
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	result, ok := payload.(*rinteractor.ExportReadinessResult)
	if !ok {
		t.Fatalf("payload type mismatch: %T", payload)
	}
	if !result.OK {
		t.Fatalf("valid rig should pass: %v", result.Violations)
	}
}

func TestHandleNormalizeRig(t *testing.T) {
	s := buildTestServer(t)
	tempDir := t.TempDir()
	path := writeMixamoRigFile(t, tempDir)
	outputPath := filepath.Join(tempDir, "normalized.json")

	payload, err := s.handleNormalizeRig(context.Background(), "op", map[string]any{
		"input_path":   path,
		"output_path":  outputPath,
		"include_body": true,
	})
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	result, ok := payload.(map[string]any)
	if !ok {
		t.Fatalf("payload type mismatch: %T", payload)
	}
	if result["saved"] != true {
		t.Fatalf("saved flag mismatch: %v", result["saved"])
	}
	if result["classification"] != "mixamo" {
		t.Fatalf("classification mismatch: %v", result["classification"])
	}
	if _, err := os.Stat(outputPath); err != nil {
		t.Fatalf("output not saved: %v", err)
	}
}

func TestHandleNormalizeRigReportsLoadError(t *testing.T) {
	s := buildTestServer(t)
	if _, err := s.handleNormalizeRig(context.Background(), "op", map[string]any{
		"input_path": filepath.Join(t.TempDir(), "missing.json"),
	}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestFormatToolResultWrapsOperationID(t *testing.T) {
	result, err := formatToolResult("op-123", map[string]any{"value": 1})
	if err != nil {
		t.Fatalf("format failed: %v", err)
	}
	if len(result.Content) == 0 {
		t.Fatalf("content should not be empty")
	}
	b, err := json.Marshal(result.Content[0])
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !json.Valid(b) {
		t.Fatalf("content should be json")
	}
}

func TestArgumentHelpers(t *testing.T) {
	args := map[string]any{"text": "value", "flag": true, "number": 1}
	if stringArg(args, "text") != "value" {
		t.Fatalf("string mismatch")
	}
	if stringArg(args, "number") != "" {
		t.Fatalf("non-string should be empty")
	}
	if stringArg(nil, "text") != "" {
		t.Fatalf("nil args should be empty")
	}
	if !boolArg(args, "flag") {
		t.Fatalf("bool mismatch")
	}
	if boolArg(args, "missing") {
		t.Fatalf("missing key should be false")
	}
}
