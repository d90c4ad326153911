// 指示: miu200521358
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/miu200521358/mu_rig2ue/pkg/adapter/io_rig/rig"
	"github.com/miu200521358/mu_rig2ue/pkg/adapter/rpresenter/messages"
	"github.com/miu200521358/mu_rig2ue/pkg/adapter/server"
	"github.com/miu200521358/mu_rig2ue/pkg/infra/config"
	"github.com/miu200521358/mu_rig2ue/pkg/usecase/rinteractor"
)

// options はCLI引数を保持する。
// includeBodySet / dryRunSet はフラグが明示指定されたかを表し、
// 未指定のときだけ設定ファイルの既定値を適用する。
type options struct {
	inputPath      string
	outputPath     string
	configPath     string
	side           string
	includeBody    bool
	includeBodySet bool
	dryRun         bool
	dryRunSet      bool
	serve          bool
}

// main はリグ正規化またはコマンドサーバを実行する。
func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run はCLI処理全体を実行する。
func run(args []string, out io.Writer, errOut io.Writer) error {
	opts, err := parseOptions(args, errOut)
	if err != nil {
		return err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	applyConfigDefaults(&opts, cfg)

	repository := rig.NewRigRepository()
	usecase := rinteractor.NewRig2UeUsecase(rinteractor.Rig2UeUsecaseDeps{
		ModelReader: repository,
		ModelWriter: repository,
	})

	if opts.serve {
		logLine(out, messages.LogServeStarted, cfg.Server.Name, cfg.Server.Version)
		return server.NewCommandServer(cfg.Server.Name, cfg.Server.Version, usecase).ServeStdio()
	}

	if opts.inputPath == "" {
		return fmt.Errorf(messages.MessageInputRequired)
	}
	logLine(out, messages.LogLoadStarted, opts.inputPath)
	result, err := usecase.Normalize(rinteractor.NormalizeRequest{
		InputPath:   opts.inputPath,
		OutputPath:  opts.outputPath,
		SaveOptions: rinteractor.SaveOptions{Indent: cfg.Output.Indent},
		Side:        opts.side,
		IncludeBody: opts.includeBody,
		DryRun:      opts.dryRun,
	})
	if err != nil {
		return fmt.Errorf(messages.MessageNormalizeFailed+": %w", err)
	}

	if result.Inspect != nil {
		logLine(out, messages.LogInspectSummary, result.Inspect.Summary)
	}
	if result.FingerRig != nil {
		logLine(out, messages.LogFingersRigged, len(result.FingerRig.CreatedBoneIndexes))
	}
	if result.RenamePlan != nil {
		logLine(out, messages.LogRenameApplied,
			len(result.RenamePlan.AppliedIndexes), len(result.RenamePlan.Collisions))
	}
	if result.Saved {
		logLine(out, messages.LogSaveCompleted, result.OutputPath)
	} else {
		logLine(out, messages.LogDryRunCompleted)
	}
	return nil
}

// logLine は接頭辞付きの1行ログを出力する。
func logLine(out io.Writer, format string, args ...any) {
	fmt.Fprintf(out, "[mu_rig2ue] "+format+"\n", args...)
}

// parseOptions はCLI引数を解析する。
func parseOptions(args []string, errOut io.Writer) (options, error) {
	fs := flag.NewFlagSet("mu_rig2ue", flag.ContinueOnError)
	fs.SetOutput(errOut)

	in := fs.String("in", "", messages.HelpInputPath)
	out := fs.String("out", "", messages.HelpOutputPath)
	configPath := fs.String("config", "", messages.HelpConfigPath)
	side := fs.String("side", "", messages.HelpSide)
	includeBody := fs.Bool("include-body", true, messages.HelpIncludeBody)
	dryRun := fs.Bool("dry-run", false, messages.HelpDryRun)
	serve := fs.Bool("serve", false, messages.HelpServe)
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	explicit := map[string]bool{}
	fs.Visit(func(f *flag.Flag) {
		explicit[f.Name] = true
	})

	if *in == "" && fs.NArg() > 0 {
		*in = fs.Arg(0)
	}
	if *out == "" && fs.NArg() > 1 {
		*out = fs.Arg(1)
	}
	if *in != "" && !strings.EqualFold(filepath.Ext(*in), ".json") {
		return options{}, fmt.Errorf(messages.MessageInvalidInputExt, *in)
	}

	return options{
		inputPath:      *in,
		outputPath:     *out,
		configPath:     *configPath,
		side:           *side,
		includeBody:    *includeBody,
		includeBodySet: explicit["include-body"],
		dryRun:         *dryRun,
		dryRunSet:      explicit["dry-run"],
		serve:          *serve,
	}, nil
}

// applyConfigDefaults は明示指定のないCLI引数へ設定値を反映する。
func applyConfigDefaults(opts *options, cfg *config.Config) {
	if strings.TrimSpace(opts.side) == "" {
		opts.side = cfg.Rig.Side
	}
	if !opts.includeBodySet {
		opts.includeBody = cfg.Rig.IncludeBody
	}
	if !opts.dryRunSet {
		opts.dryRun = cfg.Rig.DryRun
	}
}
