// 指示: miu200521358
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/miu200521358/mu_rig2ue/pkg/adapter/io_rig/rig"
	"github.com/miu200521358/mu_rig2ue/pkg/usecase/rinteractor"
)

const (
	batchOutputDirMode = 0o755
)

var targetRigPaths = []string{
	"E:/UE5_E/rigs/mixamo/ybot.json",
	// "E:/UE5_E/rigs/mixamo/xbot.json",
	// "E:/UE5_E/rigs/generic/vroid_export.json",
	// "E:/UE5_E/rigs/generic/metahuman_base.json",
	// "C:/Codex/mu_rig2ue/internal/test_resources/rigs/mesh_only.json",
}

// batchConfig はバッチ正規化の実行設定を表す。
type batchConfig struct {
	OutputRoot string
	DryRun     bool
	FailFast   bool
}

// normalizeEntry は1リグ分の正規化入力情報を表す。
type normalizeEntry struct {
	Index      int
	SourcePath string
	RigName    string
	CaseDir    string
	OutputPath string
}

// normalizeResultInfo は1リグ分の正規化結果を表す。
type normalizeResultInfo struct {
	Entry        normalizeEntry
	Status       string
	Duration     time.Duration
	Err          error
	StageInfo    string
	CreatedBones int
	RenamedBones int
}

// normalizeProgressCollector は Normalize の進捗イベントを収集する。
type normalizeProgressCollector struct {
	eventCounts  map[rinteractor.NormalizeProgressEventType]int
	createdTotal int
	renamedTotal int
}

// main はリグ検証向けの一括UE5正規化を実行する。
func main() {
	os.Exit(run())
}

// run は実行設定を解決して一括正規化を実行し、終了コードを返す。
func run() int {
	config, err := parseBatchConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "設定解析に失敗しました: %v\n", err)
		return 2
	}
	entries := buildNormalizeEntries(config.OutputRoot, targetRigPaths)
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "正規化対象リグがありません")
		return 2
	}

	results := executeBatchNormalize(config, entries)
	printBatchSummary(results)

	hasFailed := false
	for _, result := range results {
		if result.Status == "failed" {
			hasFailed = true
			break
		}
	}
	if hasFailed {
		return 1
	}
	return 0
}

// parseBatchConfig はコマンドライン引数から実行設定を構築する。
func parseBatchConfig() (batchConfig, error) {
	defaultOutputRoot, err := resolveDefaultOutputRoot()
	if err != nil {
		return batchConfig{}, err
	}
	outputRoot := flag.String("output-root", defaultOutputRoot, "正規化結果の出力ルートディレクトリ")
	dryRun := flag.Bool("dry-run", false, "保存せず、入力解決と正規化計画のみ実行する")
	failFast := flag.Bool("fail-fast", false, "失敗時に即時終了する")
	flag.Parse()

	trimmedOutputRoot := strings.TrimSpace(*outputRoot)
	if trimmedOutputRoot == "" {
		return batchConfig{}, errors.New("output-root が空です")
	}
	return batchConfig{
		OutputRoot: filepath.Clean(trimmedOutputRoot),
		DryRun:     *dryRun,
		FailFast:   *failFast,
	}, nil
}

// resolveDefaultOutputRoot はスクリプト配置ディレクトリ基準の既定出力先を返す。
func resolveDefaultOutputRoot() (string, error) {
	_, currentFilePath, _, ok := runtime.Caller(0)
	if !ok {
		return "", errors.New("実行ファイル位置を取得できません")
	}
	currentDir := filepath.Dir(currentFilePath)
	return filepath.Join(currentDir, "output"), nil
}

// buildNormalizeEntries は入力パス一覧から正規化対象エントリを生成する。
func buildNormalizeEntries(outputRoot string, inputPaths []string) []normalizeEntry {
	entries := make([]normalizeEntry, 0, len(inputPaths))
	for i, rawPath := range inputPaths {
		resolvedInputPath := normalizeInputPath(rawPath)
		rigName := resolveRigName(rawPath)
		safeRigName := sanitizePathComponent(rigName)
		caseDirName := fmt.Sprintf("%03d_%s", i+1, safeRigName)
		caseDir := filepath.Join(outputRoot, caseDirName)
		outputPath := filepath.Join(caseDir, safeRigName+"_ue5.json")
		entries = append(entries, normalizeEntry{
			Index:      i + 1,
			SourcePath: resolvedInputPath,
			RigName:    rigName,
			CaseDir:    caseDir,
			OutputPath: outputPath,
		})
	}
	return entries
}

// executeBatchNormalize は全リグの正規化処理を順次実行する。
func executeBatchNormalize(config batchConfig, entries []normalizeEntry) []normalizeResultInfo {
	results := make([]normalizeResultInfo, 0, len(entries))
	repository := rig.NewRigRepository()
	usecase := rinteractor.NewRig2UeUsecase(rinteractor.Rig2UeUsecaseDeps{
		ModelReader: repository,
		ModelWriter: repository,
	})

	total := len(entries)
	for _, entry := range entries {
		fmt.Printf("[%d/%d] 正規化開始: rig=%s\n", entry.Index, total, entry.RigName)
		result := normalizeRigEntry(usecase, config, entry)
		results = append(results, result)
		switch result.Status {
		case "succeeded":
			fmt.Printf("[%d/%d] 正規化成功: rig=%s output=%s created=%d renamed=%d elapsed=%s\n",
				entry.Index, total, entry.RigName, entry.OutputPath,
				result.CreatedBones, result.RenamedBones, result.Duration.Round(time.Millisecond))
			if strings.TrimSpace(result.StageInfo) != "" {
				fmt.Printf("[%d/%d] Normalize進捗: %s\n", entry.Index, total, result.StageInfo)
			}
		case "dry_run":
			fmt.Printf("[%d/%d] DRY-RUN: rig=%s input=%s output=%s\n", entry.Index, total, entry.RigName, entry.SourcePath, entry.OutputPath)
		case "skipped_missing":
			fmt.Printf("[%d/%d] 入力不足でスキップ: rig=%s input=%s reason=%v\n", entry.Index, total, entry.RigName, entry.SourcePath, result.Err)
		default:
			fmt.Printf("[%d/%d] 正規化失敗: rig=%s reason=%v\n", entry.Index, total, entry.RigName, result.Err)
			if config.FailFast {
				return results
			}
		}
	}
	return results
}

// normalizeRigEntry は1リグ分の正規化を実行する。
func normalizeRigEntry(usecase *rinteractor.Rig2UeUsecase, config batchConfig, entry normalizeEntry) normalizeResultInfo {
	result := normalizeResultInfo{
		Entry:  entry,
		Status: "failed",
	}
	if _, err := os.Stat(entry.SourcePath); err != nil {
		result.Status = "skipped_missing"
		result.Err = err
		return result
	}
	if config.DryRun {
		result.Status = "dry_run"
		return result
	}
	if err := os.MkdirAll(entry.CaseDir, batchOutputDirMode); err != nil {
		result.Err = fmt.Errorf("出力ディレクトリ作成に失敗しました: %w", err)
		return result
	}

	startedAt := time.Now()
	progressCollector := newNormalizeProgressCollector()
	normalized, err := usecase.Normalize(rinteractor.NormalizeRequest{
		InputPath:        entry.SourcePath,
		OutputPath:       entry.OutputPath,
		SaveOptions:      rinteractor.SaveOptions{Indent: true},
		Side:             rinteractor.SideBoth,
		IncludeBody:      true,
		ProgressReporter: progressCollector,
	})
	if err != nil {
		result.Err = fmt.Errorf("Normalizeに失敗しました: %w", err)
		return result
	}
	if normalized == nil || normalized.Model == nil {
		result.Err = errors.New("Normalize結果が空です")
		return result
	}

	result.Status = "succeeded"
	result.Duration = time.Since(startedAt)
	result.StageInfo = progressCollector.Summary()
	if normalized.FingerRig != nil {
		result.CreatedBones = len(normalized.FingerRig.CreatedBoneIndexes)
	}
	if normalized.RenamePlan != nil {
		result.RenamedBones = len(normalized.RenamePlan.AppliedIndexes)
	}
	return result
}

// printBatchSummary は正規化結果の集計を標準出力へ表示する。
func printBatchSummary(results []normalizeResultInfo) {
	succeeded := 0
	failed := 0
	skipped := 0
	dryRun := 0
	for _, result := range results {
		switch result.Status {
		case "succeeded":
			succeeded++
		case "dry_run":
			dryRun++
		case "skipped_missing":
			skipped++
		default:
			failed++
		}
	}
	fmt.Printf(
		"バッチ正規化サマリ: total=%d succeeded=%d failed=%d skipped_missing=%d dry_run=%d\n",
		len(results),
		succeeded,
		failed,
		skipped,
		dryRun,
	)
}

// resolveRigName は入力パスから拡張子を除いたリグ名を返す。
func resolveRigName(path string) string {
	base := strings.TrimSpace(filepath.Base(path))
	ext := filepath.Ext(base)
	name := strings.TrimSpace(strings.TrimSuffix(base, ext))
	if name == "" {
		return "rig"
	}
	return name
}

// normalizeInputPath は入力パスを実行環境向けに正規化する。
func normalizeInputPath(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return ""
	}
	return filepath.Clean(convertWindowsPathToWsl(path))
}

// convertWindowsPathToWsl は Linux 実行時に Windows パスを WSL パスへ変換する。
func convertWindowsPathToWsl(path string) string {
	trimmed := strings.TrimSpace(path)
	if runtime.GOOS != "linux" {
		return trimmed
	}
	if len(trimmed) < 2 || trimmed[1] != ':' {
		return trimmed
	}
	drive := strings.ToLower(trimmed[:1])
	rest := strings.ReplaceAll(trimmed[2:], "\\", "/")
	if rest == "" {
		return filepath.ToSlash(filepath.Join("/mnt", drive))
	}
	if !strings.HasPrefix(rest, "/") {
		rest = "/" + rest
	}
	return filepath.ToSlash(filepath.Join("/mnt", drive) + rest)
}

// sanitizePathComponent は出力ディレクトリ/ファイル名に使えない文字を置換する。
func sanitizePathComponent(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "rig"
	}
	replaced := strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			return '_'
		default:
			if r < 0x20 {
				return '_'
			}
			return r
		}
	}, trimmed)
	replaced = strings.Trim(replaced, " .")
	if replaced == "" {
		return "rig"
	}
	return replaced
}

// newNormalizeProgressCollector は Normalize 進捗収集器を生成する。
func newNormalizeProgressCollector() *normalizeProgressCollector {
	return &normalizeProgressCollector{
		eventCounts: map[rinteractor.NormalizeProgressEventType]int{},
	}
}

// ReportNormalizeProgress は Normalize の進捗イベントを収集する。
func (collector *normalizeProgressCollector) ReportNormalizeProgress(event rinteractor.NormalizeProgressEvent) {
	if collector == nil {
		return
	}
	if collector.eventCounts == nil {
		collector.eventCounts = map[rinteractor.NormalizeProgressEventType]int{}
	}
	collector.eventCounts[event.Type]++
	collector.createdTotal += event.CreatedBoneCount
	collector.renamedTotal += event.RenamedBoneCount
}

// Summary は収集した Normalize 進捗の要約文字列を返す。
func (collector *normalizeProgressCollector) Summary() string {
	if collector == nil || len(collector.eventCounts) == 0 {
		return ""
	}
	types := make([]string, 0, len(collector.eventCounts))
	for stageType := range collector.eventCounts {
		types = append(types, string(stageType))
	}
	sort.Strings(types)
	return fmt.Sprintf(
		"events=%d created=%d renamed=%d stages=%s",
		len(collector.eventCounts),
		collector.createdTotal,
		collector.renamedTotal,
		strings.Join(types, ","),
	)
}
