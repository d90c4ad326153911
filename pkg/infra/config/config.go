// 指示: miu200521358
// Package config は実行時設定の読み込みを提供する。
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "MU_RIG2UE_"

// Config は実行時設定を表す。
type Config struct {
	Server ServerConfig `koanf:"server"`
	Rig    RigConfig    `koanf:"rig"`
	Output OutputConfig `koanf:"output"`
}

// ServerConfig はコマンドサーバの設定を表す。
type ServerConfig struct {
	Name    string `koanf:"name"`
	Version string `koanf:"version"`
}

// RigConfig はリグ正規化の既定動作を表す。
type RigConfig struct {
	Side        string `koanf:"side"` // left, right, both
	IncludeBody bool   `koanf:"include_body"`
	DryRun      bool   `koanf:"dry_run"`
}

// OutputConfig は保存時の既定動作を表す。
type OutputConfig struct {
	Indent bool `koanf:"indent"`
}

// Load は既定値・設定ファイル・環境変数の順で設定を読み込む。
// 環境変数は MU_RIG2UE_RIG_SIDE -> rig.side のように対応付ける。
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	k.Set("server.name", "mu_rig2ue")
	k.Set("server.version", "1.0.0")
	k.Set("rig.side", "both")
	k.Set("rig.include_body", true)
	k.Set("rig.dry_run", false)
	k.Set("output.indent", true)

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("設定ファイルの読み込みに失敗しました: %w", err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, envPrefix)), "_", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("環境変数の読み込みに失敗しました: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("設定の展開に失敗しました: %w", err)
	}
	return &cfg, nil
}
