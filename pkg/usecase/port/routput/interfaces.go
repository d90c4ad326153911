// 指示: miu200521358
// Package routput はリグ正規化ユースケースの入出力契約を提供する。
package routput

import "github.com/miu200521358/mu_rig2ue/pkg/domain/model"

// SaveOptions は保存時のオプションを表す。
type SaveOptions struct {
	// Indent はJSON整形出力を有効にする。
	Indent bool
}

// IFileReader はリグファイルの読み込み契約を表す。
type IFileReader interface {
	// CanLoad は読み込み可能なパスか判定する。
	CanLoad(path string) bool
	// Load はリグファイルをモデルへ読み込む。
	Load(path string) (*model.SkeletonModel, error)
}

// IFileWriter は検証済みモデルの書き出し契約を表す。
// バイナリFBXのシリアライズは外部コラボレータの責務であり、この契約の実装は
// 確定済みの骨格・ウェイトを受け取って書き出すだけでよい。
type IFileWriter interface {
	// Save はモデルをパスへ保存する。
	Save(path string, modelData *model.SkeletonModel, options SaveOptions) error
}

// FingerRigResult は指リギング1回分の結果を表す。
type FingerRigResult struct {
	CreatedBoneIndexes  []int
	FingerStatus        map[string]string
	WeightedVertexCount int
}

// IFingerRigger は指リギング能力の契約を表す。
// 外部の高品質リガーが接続されているときはそちらを優先し、無ければ内蔵実装へ
// フォールバックする。
type IFingerRigger interface {
	// Name はリガー識別名を返す。
	Name() string
	// RigFingers は指チェーン補完とウェイト割当を実行する。
	RigFingers(modelData *model.SkeletonModel, roleMap *model.BoneRoleMap, side string) (*FingerRigResult, error)
}
