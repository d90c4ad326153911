// 指示: miu200521358
// Package rig はリグJSONファイルの読み書きリポジトリを提供する。
package rig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/miu200521358/mu_rig2ue/pkg/domain/mmath"
	"github.com/miu200521358/mu_rig2ue/pkg/domain/model"
	"github.com/miu200521358/mu_rig2ue/pkg/usecase/port/routput"
)

const rigFileExtension = ".json"

// LoadProgressEventType はリグ読込進捗イベント種別を表す。
type LoadProgressEventType string

const (
	// LoadProgressEventTypeFileReadComplete はファイル読込完了イベントを表す。
	LoadProgressEventTypeFileReadComplete LoadProgressEventType = "file_read_complete"
	// LoadProgressEventTypeJsonParsed はJSON解析完了イベントを表す。
	LoadProgressEventTypeJsonParsed LoadProgressEventType = "json_parsed"
	// LoadProgressEventTypeCompleted はリグ読込完了イベントを表す。
	LoadProgressEventTypeCompleted LoadProgressEventType = "completed"
)

// LoadProgressEvent はリグ読込進捗イベントを表す。
type LoadProgressEvent struct {
	Type          LoadProgressEventType
	FileSizeBytes int
	BoneCount     int
	VertexCount   int
}

// RigRepository はリグJSONの読み書きリポジトリを表す。
type RigRepository struct {
	loadProgressReporter func(LoadProgressEvent)
}

// NewRigRepository はRigRepositoryを生成する。
func NewRigRepository() *RigRepository {
	return &RigRepository{}
}

// SetLoadProgressReporter はリグ読込進捗受信コールバックを設定する。
func (r *RigRepository) SetLoadProgressReporter(reporter func(LoadProgressEvent)) {
	if r == nil {
		return
	}
	r.loadProgressReporter = reporter
}

// CanLoad は拡張子に応じて読み込み可否を判定する。
func (r *RigRepository) CanLoad(path string) bool {
	return strings.EqualFold(filepath.Ext(path), rigFileExtension)
}

// InferName はパスから表示名を推定する。
func (r *RigRepository) InferName(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == "" {
		return base
	}
	return strings.TrimSuffix(base, ext)
}

// rigBoneDocument はリグJSONのボーン1件を表す。
type rigBoneDocument struct {
	Name     string     `json:"name"`
	Parent   int        `json:"parent"`
	Head     [3]float64 `json:"head"`
	Tail     [3]float64 `json:"tail"`
	Roll     float64    `json:"roll,omitempty"`
	IsSystem bool       `json:"is_system,omitempty"`
}

// rigVertexDocument はリグJSONの頂点1件を表す。
type rigVertexDocument struct {
	Position [3]float64 `json:"position"`
	Joints   []int      `json:"joints"`
	Weights  []float64  `json:"weights"`
}

// rigDocument はリグJSONのルート構造を表す。
type rigDocument struct {
	Name     string              `json:"name"`
	Bones    []rigBoneDocument   `json:"bones"`
	Vertices []rigVertexDocument `json:"vertices"`
}

// Load はリグJSONを読み込む。ボーンは親が先に出現する順序を前提とする。
func (r *RigRepository) Load(path string) (*model.SkeletonModel, error) {
	if !r.CanLoad(path) {
		return nil, fmt.Errorf("読み込みできない拡張子です: %s", path)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("リグファイルの読み取りに失敗しました: %w", err)
	}
	r.reportLoadProgress(LoadProgressEvent{
		Type:          LoadProgressEventTypeFileReadComplete,
		FileSizeBytes: len(b),
	})

	doc := rigDocument{}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("リグJSONの解析に失敗しました: %w", err)
	}
	r.reportLoadProgress(LoadProgressEvent{
		Type:        LoadProgressEventTypeJsonParsed,
		BoneCount:   len(doc.Bones),
		VertexCount: len(doc.Vertices),
	})

	modelData, err := buildSkeletonModel(r.InferName(path), &doc)
	if err != nil {
		return nil, err
	}
	r.reportLoadProgress(LoadProgressEvent{
		Type:        LoadProgressEventTypeCompleted,
		BoneCount:   modelData.Bones.Len(),
		VertexCount: modelData.Vertices.Len(),
	})
	return modelData, nil
}

// Save はモデルをリグJSONへ保存する。
func (r *RigRepository) Save(path string, modelData *model.SkeletonModel, options routput.SaveOptions) error {
	if modelData == nil {
		return fmt.Errorf("保存対象モデルが未設定です")
	}
	if !strings.EqualFold(filepath.Ext(path), rigFileExtension) {
		return fmt.Errorf("保存できない拡張子です: %s", path)
	}

	doc := buildRigDocument(modelData)
	var b []byte
	var err error
	if options.Indent {
		b, err = json.MarshalIndent(doc, "", "  ")
	} else {
		b, err = json.Marshal(doc)
	}
	if err != nil {
		return fmt.Errorf("リグJSONの生成に失敗しました: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("保存先ディレクトリの作成に失敗しました: %w", err)
		}
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("リグファイルの書き込みに失敗しました: %w", err)
	}
	return nil
}

// buildSkeletonModel はリグJSON構造からモデルを構築する。
func buildSkeletonModel(name string, doc *rigDocument) (*model.SkeletonModel, error) {
	modelName := doc.Name
	if strings.TrimSpace(modelName) == "" {
		modelName = name
	}
	modelData := model.NewSkeletonModel(modelName)

	for i, boneDoc := range doc.Bones {
		if boneDoc.Parent >= i {
			return nil, fmt.Errorf("ボーンの親が後方を参照しています: index=%d parent=%d", i, boneDoc.Parent)
		}
		bone := model.NewBoneByName(boneDoc.Name)
		bone.ParentIndex = boneDoc.Parent
		if boneDoc.Parent < 0 {
			bone.ParentIndex = -1
		}
		bone.Position = toVec3(boneDoc.Head)
		bone.TailPosition = toVec3(boneDoc.Tail)
		bone.Roll = boneDoc.Roll
		bone.IsSystem = boneDoc.IsSystem
		if _, err := modelData.Bones.Append(bone); err != nil {
			return nil, fmt.Errorf("ボーンの登録に失敗しました: %w", err)
		}
	}

	for i, vertexDoc := range doc.Vertices {
		if len(vertexDoc.Joints) != len(vertexDoc.Weights) {
			return nil, fmt.Errorf("頂点のジョイント数とウェイト数が一致しません: index=%d", i)
		}
		vertex := &model.Vertex{
			Index:    i,
			Position: toVec3(vertexDoc.Position),
			Deform:   model.NewDeform(vertexDoc.Joints, vertexDoc.Weights),
		}
		modelData.Vertices.Append(vertex)
	}
	return modelData, nil
}

// buildRigDocument はモデルからリグJSON構造を構築する。
func buildRigDocument(modelData *model.SkeletonModel) *rigDocument {
	doc := &rigDocument{
		Name:     modelData.Name,
		Bones:    make([]rigBoneDocument, 0, modelData.Bones.Len()),
		Vertices: make([]rigVertexDocument, 0, modelData.Vertices.Len()),
	}
	for _, bone := range modelData.Bones.Values() {
		if bone == nil {
			continue
		}
		doc.Bones = append(doc.Bones, rigBoneDocument{
			Name:     bone.Name,
			Parent:   bone.ParentIndex,
			Head:     fromVec3(bone.Position),
			Tail:     fromVec3(bone.TailPosition),
			Roll:     bone.Roll,
			IsSystem: bone.IsSystem,
		})
	}
	for _, vertex := range modelData.Vertices.Values() {
		if vertex == nil {
			continue
		}
		vertexDoc := rigVertexDocument{
			Position: fromVec3(vertex.Position),
			Joints:   []int{},
			Weights:  []float64{},
		}
		if vertex.Deform != nil {
			vertexDoc.Joints = append(vertexDoc.Joints, vertex.Deform.Indexes...)
			vertexDoc.Weights = append(vertexDoc.Weights, vertex.Deform.Weights...)
		}
		doc.Vertices = append(doc.Vertices, vertexDoc)
	}
	return doc
}

// toVec3 はJSON配列をベクトルへ変換する。
func toVec3(values [3]float64) mmath.Vec3 {
	return mmath.NewVec3(values[0], values[1], values[2])
}

// fromVec3 はベクトルをJSON配列へ変換する。
func fromVec3(v mmath.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// reportLoadProgress は進捗コールバック設定時だけ通知する。
func (r *RigRepository) reportLoadProgress(event LoadProgressEvent) {
	if r == nil || r.loadProgressReporter == nil {
		return
	}
	r.loadProgressReporter(event)
}
