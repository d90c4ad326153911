// 指示: miu200521358
package model

import (
	"testing"

	"github.com/miu200521358/mu_rig2ue/pkg/domain/mmath"
)

func buildTestSkeleton(t *testing.T) *SkeletonModel {
	t.Helper()
	modelData := NewSkeletonModel("test")
	root := NewBoneByName("hips")
	root.Position = mmath.NewVec3(0, 1, 0)
	root.TailPosition = mmath.NewVec3(0, 1.2, 0)
	if _, err := modelData.Bones.Append(root); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	child := NewBoneByName("spine")
	child.ParentIndex = 0
	child.Position = mmath.NewVec3(0, 1.2, 0)
	child.TailPosition = mmath.NewVec3(0, 1.4, 0)
	if _, err := modelData.Bones.Append(child); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	modelData.Vertices.Append(&Vertex{
		Position: mmath.NewVec3(0, 1.1, 0.1),
		Deform:   NewDeform([]int{0, 1}, []float64{0.6, 0.4}),
	})
	return modelData
}

func TestSkeletonModelCopyIsIndependent(t *testing.T) {
	original := buildTestSkeleton(t)
	copied, err := original.Copy()
	if err != nil {
		t.Fatalf("copy failed: %v", err)
	}

	if copied.Bones.Len() != original.Bones.Len() {
		t.Fatalf("bone count mismatch: %d != %d", copied.Bones.Len(), original.Bones.Len())
	}
	if _, err := copied.Bones.Rename(0, "pelvis"); err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	originalRoot, err := original.Bones.Get(0)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if originalRoot.Name != "hips" {
		t.Fatalf("original should be unchanged: %s", originalRoot.Name)
	}
}

func TestSkeletonModelCopyRebuildsNameIndex(t *testing.T) {
	original := buildTestSkeleton(t)
	copied, err := original.Copy()
	if err != nil {
		t.Fatalf("copy failed: %v", err)
	}
	found, err := copied.Bones.GetByName("spine")
	if err != nil {
		t.Fatalf("name lookup failed after copy: %v", err)
	}
	if found.Index != 1 {
		t.Fatalf("index mismatch: %d", found.Index)
	}
}

func TestSkeletonModelHasMesh(t *testing.T) {
	modelData := NewSkeletonModel("empty")
	if modelData.HasMesh() {
		t.Fatalf("empty model should not have mesh")
	}
	modelData.Vertices.Append(&Vertex{})
	if !modelData.HasMesh() {
		t.Fatalf("model with vertex should have mesh")
	}
}
