// 指示: miu200521358
// Package model はリグ正規化の自己完結なドメインモデルを提供する。
package model

import (
	"fmt"

	"github.com/miu200521358/mu_rig2ue/pkg/domain/mmath"
	"github.com/miu200521358/mu_rig2ue/pkg/domain/model/rerrors"
)

// Bone は骨格階層の1ボーンを表す。
// 親子リンクはコレクション内indexで保持し、合成や命名変更で参照が壊れないようにする。
type Bone struct {
	Index        int
	Name         string
	ParentIndex  int
	ChildIndexes []int
	Position     mmath.Vec3
	TailPosition mmath.Vec3
	Roll         float64
	IsSystem     bool
}

// NewBoneByName は未登録ボーンを生成する。
func NewBoneByName(name string) *Bone {
	return &Bone{
		Index:        -1,
		Name:         name,
		ParentIndex:  -1,
		ChildIndexes: []int{},
	}
}

// Length はヘッドからテールまでの長さを返す。
func (b *Bone) Length() float64 {
	return b.Position.Distance(b.TailPosition)
}

// Direction はヘッドからテールへの正規化方向を返す。
func (b *Bone) Direction() mmath.Vec3 {
	return b.TailPosition.Subed(b.Position).Normalized()
}

// BoneCollection はindexで安定参照できるボーン集合を表す。
// 名前引きは最初に登録された同名ボーンを返す。重複名の検出は出力前検証が担う。
type BoneCollection struct {
	Bones     []*Bone
	nameIndex map[string]int
}

// NewBoneCollection は空のボーン集合を生成する。
func NewBoneCollection() *BoneCollection {
	return &BoneCollection{
		Bones:     []*Bone{},
		nameIndex: map[string]int{},
	}
}

// Len は登録ボーン数を返す。
func (c *BoneCollection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Bones)
}

// Get はindex指定でボーンを取得する。
func (c *BoneCollection) Get(index int) (*Bone, error) {
	if c == nil || index < 0 || index >= len(c.Bones) {
		return nil, fmt.Errorf("ボーンindexが範囲外です: %d", index)
	}
	return c.Bones[index], nil
}

// GetByName は名前指定でボーンを取得する。
func (c *BoneCollection) GetByName(name string) (*Bone, error) {
	if c == nil {
		return nil, fmt.Errorf("ボーン集合が未初期化です")
	}
	if index, exists := c.nameIndex[name]; exists {
		return c.Get(index)
	}
	return nil, fmt.Errorf("ボーンが見つかりません: %s", name)
}

// ContainsByName は名前のボーンが存在するか判定する。
func (c *BoneCollection) ContainsByName(name string) bool {
	if c == nil {
		return false
	}
	_, exists := c.nameIndex[name]
	return exists
}

// Append はボーンを末尾へ追加し、親の子リストへ登録する。
// 追加前に ParentIndex を設定しておくこと。
func (c *BoneCollection) Append(bone *Bone) (int, error) {
	if c == nil || bone == nil {
		return -1, fmt.Errorf("追加対象ボーンが未設定です")
	}
	if bone.ParentIndex >= len(c.Bones) {
		return -1, fmt.Errorf("親ボーンindexが範囲外です: %d", bone.ParentIndex)
	}
	index := len(c.Bones)
	bone.Index = index
	if bone.ChildIndexes == nil {
		bone.ChildIndexes = []int{}
	}
	c.Bones = append(c.Bones, bone)
	if _, exists := c.nameIndex[bone.Name]; !exists {
		c.nameIndex[bone.Name] = index
	}
	if bone.ParentIndex >= 0 {
		parent := c.Bones[bone.ParentIndex]
		parent.ChildIndexes = append(parent.ChildIndexes, index)
	}
	return index, nil
}

// Rename はボーン名を変更する。別ボーンが既に同名のときは NameConflictError を返す。
func (c *BoneCollection) Rename(index int, newName string) (*Bone, error) {
	bone, err := c.Get(index)
	if err != nil {
		return nil, err
	}
	if bone.Name == newName {
		return bone, nil
	}
	if existingIndex, exists := c.nameIndex[newName]; exists && existingIndex != index {
		return nil, rerrors.NewNameConflictError(newName)
	}
	if registered, exists := c.nameIndex[bone.Name]; exists && registered == index {
		delete(c.nameIndex, bone.Name)
	}
	bone.Name = newName
	c.nameIndex[newName] = index
	return bone, nil
}

// Values は全ボーンを登録順で返す。
func (c *BoneCollection) Values() []*Bone {
	if c == nil {
		return []*Bone{}
	}
	return c.Bones
}

// RootIndexes は親を持たないボーンのindex一覧を返す。
func (c *BoneCollection) RootIndexes() []int {
	roots := make([]int, 0, 1)
	for _, bone := range c.Values() {
		if bone != nil && bone.ParentIndex < 0 {
			roots = append(roots, bone.Index)
		}
	}
	return roots
}

// RebuildNameIndex は名前引きの辞書を再構築する。複製直後に呼ぶ。
func (c *BoneCollection) RebuildNameIndex() {
	if c == nil {
		return
	}
	c.nameIndex = make(map[string]int, len(c.Bones))
	for index, bone := range c.Bones {
		if bone == nil {
			continue
		}
		if _, exists := c.nameIndex[bone.Name]; !exists {
			c.nameIndex[bone.Name] = index
		}
	}
}
