// 指示: miu200521358
package model

import (
	"fmt"

	"github.com/tiendc/go-deepcopy"
)

// SkeletonModel は骨格階層とメッシュ頂点・ウェイトを束ねた変換対象を表す。
// ホストアプリの生参照は持たず、ボーンはindexで安定参照する。
type SkeletonModel struct {
	Name     string
	Bones    *BoneCollection
	Vertices *VertexCollection
}

// NewSkeletonModel は空のモデルを生成する。
func NewSkeletonModel(name string) *SkeletonModel {
	return &SkeletonModel{
		Name:     name,
		Bones:    NewBoneCollection(),
		Vertices: NewVertexCollection(),
	}
}

// Copy はモデルの独立した複製を返す。dry-run時の隔離に使う。
func (m *SkeletonModel) Copy() (*SkeletonModel, error) {
	if m == nil {
		return nil, fmt.Errorf("複製対象モデルが未設定です")
	}
	copied := &SkeletonModel{}
	if err := deepcopy.Copy(copied, m); err != nil {
		return nil, fmt.Errorf("モデル複製に失敗しました: %w", err)
	}
	if copied.Bones == nil {
		copied.Bones = NewBoneCollection()
	}
	if copied.Vertices == nil {
		copied.Vertices = NewVertexCollection()
	}
	// 非公開の名前引き辞書は複製されないため再構築する。
	copied.Bones.RebuildNameIndex()
	return copied, nil
}

// HasMesh は頂点を1つでも保持しているか判定する。
func (m *SkeletonModel) HasMesh() bool {
	return m != nil && m.Vertices.Len() > 0
}
