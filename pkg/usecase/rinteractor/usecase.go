// 指示: miu200521358
// Package rinteractor は人型リグ正規化のユースケースを提供する。
package rinteractor

import "github.com/miu200521358/mu_rig2ue/pkg/usecase/port/routput"

// Rig2UeUsecaseDeps はリグ正規化ユースケースの依存を表す。
type Rig2UeUsecaseDeps struct {
	ModelReader  routput.IFileReader
	ModelWriter  routput.IFileWriter
	FingerRigger routput.IFingerRigger
}

// Rig2UeUsecase は人型リグのUE5正規化処理をまとめたユースケースを表す。
type Rig2UeUsecase struct {
	modelReader  routput.IFileReader
	modelWriter  routput.IFileWriter
	fingerRigger routput.IFingerRigger
}

// NewRig2UeUsecase はリグ正規化ユースケースを生成する。
func NewRig2UeUsecase(deps Rig2UeUsecaseDeps) *Rig2UeUsecase {
	return &Rig2UeUsecase{
		modelReader:  deps.ModelReader,
		modelWriter:  deps.ModelWriter,
		fingerRigger: deps.FingerRigger,
	}
}
