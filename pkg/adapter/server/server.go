// 指示: miu200521358
// Package server はリグ正規化操作をMCPツールとして公開するコマンドサーバを提供する。
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/miu200521358/mu_rig2ue/pkg/adapter/rpresenter/messages"
	"github.com/miu200521358/mu_rig2ue/pkg/usecase/rinteractor"
)

// CommandServer はmcp-goサーバを包み、リグ正規化ユースケースへ委譲する。
// ホスト側の編集対象は1つなので、操作は常に1件ずつ直列に実行する。
type CommandServer struct {
	mcpServer *server.MCPServer
	usecase   *rinteractor.Rig2UeUsecase
	mu        sync.Mutex
}

// NewCommandServer はコマンドサーバを生成し、全ツールを登録する。
func NewCommandServer(name string, version string, usecase *rinteractor.Rig2UeUsecase) *CommandServer {
	s := &CommandServer{
		mcpServer: server.NewMCPServer(name, version),
		usecase:   usecase,
	}
	s.registerTools()
	return s
}

// ServeStdio は標準入出力でサーバを開始する。
func (s *CommandServer) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// registerTools は6操作をツールとして登録する。
func (s *CommandServer) registerTools() {
	s.registerTool(
		mcp.NewTool("inspect_rig",
			mcp.WithDescription("リグ分類と概要を検査する"),
			mcp.WithString("input_path", mcp.Required(), mcp.Description("リグJSONの入力パス")),
		),
		s.handleInspectRig,
	)
	s.registerTool(
		mcp.NewTool("build_role_map",
			mcp.WithDescription("ボーンの正準ロール対応を構築する"),
			mcp.WithString("input_path", mcp.Required(), mcp.Description("リグJSONの入力パス")),
		),
		s.handleBuildRoleMap,
	)
	s.registerTool(
		mcp.NewTool("rig_fingers",
			mcp.WithDescription("欠落した指チェーンを補完しウェイトを近似割当する"),
			mcp.WithString("input_path", mcp.Required(), mcp.Description("リグJSONの入力パス")),
			mcp.WithString("output_path", mcp.Description("リグJSONの保存先パス")),
			mcp.WithString("side", mcp.Description("対象サイド: left / right / both")),
		),
		s.handleRigFingers,
	)
	s.registerTool(
		mcp.NewTool("rename_to_ue5",
			mcp.WithDescription("ボーン名をUE5マネキン規約へ変更する"),
			mcp.WithString("input_path", mcp.Required(), mcp.Description("リグJSONの入力パス")),
			mcp.WithString("output_path", mcp.Description("リグJSONの保存先パス")),
			mcp.WithBoolean("include_body", mcp.Description("体幹ボーンも対象にする")),
			mcp.WithBoolean("dry_run", mcp.Description("計画だけ返して適用しない")),
		),
		s.handleRenameToUe5,
	)
	s.registerTool(
		mcp.NewTool("check_export_ready",
			mcp.WithDescription("出力可能な状態か検証する"),
			mcp.WithString("input_path", mcp.Required(), mcp.Description("リグJSONの入力パス")),
		),
		s.handleCheckExportReady,
	)
	s.registerTool(
		mcp.NewTool("normalize_rig",
			mcp.WithDescription("検査から保存までの正規化パイプラインを実行する"),
			mcp.WithString("input_path", mcp.Required(), mcp.Description("リグJSONの入力パス")),
			mcp.WithString("output_path", mcp.Description("リグJSONの保存先パス")),
			mcp.WithString("side", mcp.Description("対象サイド: left / right / both")),
			mcp.WithBoolean("include_body", mcp.Description("体幹ボーンも命名変更する")),
			mcp.WithBoolean("dry_run", mcp.Description("複製上で実行し保存しない")),
		),
		s.handleNormalizeRig,
	)
}

// toolHandler はツール1件の実装契約を表す。
type toolHandler func(ctx context.Context, operationID string, args map[string]any) (any, error)

// registerTool はツールを直列実行と応答整形で包んで登録する。
func (s *CommandServer) registerTool(tool mcp.Tool, handler toolHandler) {
	s.mcpServer.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if !s.mu.TryLock() {
			return mcp.NewToolResultError(messages.MessageServerBusy), nil
		}
		defer s.mu.Unlock()

		args, _ := request.Params.Arguments.(map[string]any)
		operationID := uuid.NewString()
		payload, err := handler(ctx, operationID, args)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("operation_id=%s %s", operationID, err.Error())), nil
		}
		return formatToolResult(operationID, payload)
	})
}

// formatToolResult は操作IDを添えた応答JSONを構築する。
func formatToolResult(operationID string, payload any) (*mcp.CallToolResult, error) {
	envelope := map[string]any{
		"operation_id": operationID,
		"result":       payload,
	}
	b, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("応答JSONの生成に失敗しました: %w", err)
	}
	return mcp.NewToolResultText(string(b)), nil
}

// handleInspectRig はリグ検査ツールを実行する。
func (s *CommandServer) handleInspectRig(_ context.Context, _ string, args map[string]any) (any, error) {
	modelData, err := s.usecase.LoadModel(nil, stringArg(args, "input_path"))
	if err != nil {
		return nil, err
	}
	return s.usecase.InspectModel(modelData), nil
}

// handleBuildRoleMap はロール対応構築ツールを実行する。
func (s *CommandServer) handleBuildRoleMap(_ context.Context, _ string, args map[string]any) (any, error) {
	modelData, err := s.usecase.LoadModel(nil, stringArg(args, "input_path"))
	if err != nil {
		return nil, err
	}
	roleMapResult, err := s.usecase.BuildRoleMapForModel(modelData)
	if err != nil {
		return nil, err
	}
	roles := map[string]int{}
	for _, role := range roleMapResult.RoleMap.Roles() {
		if boneIndex, exists := roleMapResult.RoleMap.Get(role); exists {
			roles[string(role)] = boneIndex
		}
	}
	return map[string]any{
		"roles":                  roles,
		"missing_required_roles": roleMapResult.MissingRequiredRoles,
	}, nil
}

// handleRigFingers は指リギングツールを実行し、結果モデルを保存する。
func (s *CommandServer) handleRigFingers(_ context.Context, _ string, args map[string]any) (any, error) {
	inputPath := stringArg(args, "input_path")
	modelData, err := s.usecase.LoadModel(nil, inputPath)
	if err != nil {
		return nil, err
	}
	roleMapResult, err := s.usecase.BuildRoleMapForModel(modelData)
	if err != nil {
		return nil, err
	}
	side := stringArg(args, "side")
	if side == "" {
		side = rinteractor.SideBoth
	}
	rigResult, err := s.usecase.RigFingers(modelData, roleMapResult.RoleMap, side)
	if err != nil {
		return nil, err
	}

	outputPath := stringArg(args, "output_path")
	if outputPath == "" {
		outputPath = rinteractor.BuildDefaultOutputPath(inputPath)
	}
	if err := s.usecase.SaveModel(nil, outputPath, modelData, rinteractor.SaveOptions{Indent: true}); err != nil {
		return nil, err
	}
	return map[string]any{
		"created_bone_indexes":  rigResult.CreatedBoneIndexes,
		"finger_status":         rigResult.FingerStatus,
		"weighted_vertex_count": rigResult.WeightedVertexCount,
		"output_path":           outputPath,
	}, nil
}

// handleRenameToUe5 は命名変更ツールを実行する。dry_runでなければ結果モデルを保存する。
func (s *CommandServer) handleRenameToUe5(_ context.Context, _ string, args map[string]any) (any, error) {
	inputPath := stringArg(args, "input_path")
	modelData, err := s.usecase.LoadModel(nil, inputPath)
	if err != nil {
		return nil, err
	}
	roleMapResult, err := s.usecase.BuildRoleMapForModel(modelData)
	if err != nil {
		return nil, err
	}
	dryRun := boolArg(args, "dry_run")
	plan, err := s.usecase.PlanRenameToUe5(modelData, roleMapResult.RoleMap, boolArg(args, "include_body"), dryRun)
	if err != nil {
		return nil, err
	}

	outputPath := ""
	if !dryRun {
		outputPath = stringArg(args, "output_path")
		if outputPath == "" {
			outputPath = rinteractor.BuildDefaultOutputPath(inputPath)
		}
		if err := s.usecase.SaveModel(nil, outputPath, modelData, rinteractor.SaveOptions{Indent: true}); err != nil {
			return nil, err
		}
	}
	return map[string]any{
		"entries":     plan.Entries,
		"collisions":  plan.Collisions,
		"applied":     plan.AppliedIndexes,
		"dry_run":     plan.DryRun,
		"output_path": outputPath,
	}, nil
}

// handleCheckExportReady は出力前検証ツールを実行する。
func (s *CommandServer) handleCheckExportReady(_ context.Context, _ string, args map[string]any) (any, error) {
	modelData, err := s.usecase.LoadModel(nil, stringArg(args, "input_path"))
	if err != nil {
		return nil, err
	}
	return s.usecase.CheckExportReadiness(modelData)
}

// handleNormalizeRig は正規化パイプラインツールを実行する。
func (s *CommandServer) handleNormalizeRig(_ context.Context, _ string, args map[string]any) (any, error) {
	result, err := s.usecase.Normalize(rinteractor.NormalizeRequest{
		InputPath:   stringArg(args, "input_path"),
		OutputPath:  stringArg(args, "output_path"),
		SaveOptions: rinteractor.SaveOptions{Indent: true},
		Side:        stringArg(args, "side"),
		IncludeBody: boolArg(args, "include_body"),
		DryRun:      boolArg(args, "dry_run"),
	})
	if err != nil {
		return nil, err
	}
	payload := map[string]any{
		"output_path": result.OutputPath,
		"saved":       result.Saved,
	}
	if result.Inspect != nil {
		payload["classification"] = result.Inspect.Classification.String()
		payload["summary"] = result.Inspect.Summary
	}
	if result.FingerRig != nil {
		payload["created_bone_count"] = len(result.FingerRig.CreatedBoneIndexes)
	}
	if result.RenamePlan != nil {
		payload["renamed_bone_count"] = len(result.RenamePlan.AppliedIndexes)
	}
	if result.ExportReadiness != nil {
		payload["violation_count"] = len(result.ExportReadiness.Violations)
	}
	return payload, nil
}

// stringArg は引数辞書から文字列を取り出す。
func stringArg(args map[string]any, key string) string {
	if args == nil {
		return ""
	}
	if value, exists := args[key]; exists {
		if text, ok := value.(string); ok {
			return text
		}
	}
	return ""
}

// boolArg は引数辞書から真偽値を取り出す。
func boolArg(args map[string]any, key string) bool {
	if args == nil {
		return false
	}
	if value, exists := args[key]; exists {
		if flag, ok := value.(bool); ok {
			return flag
		}
	}
	return false
}
