// 指示: miu200521358
package rinteractor

import (
	"fmt"
	"strings"

	"github.com/miu200521358/mu_rig2ue/pkg/usecase/port/routput"
)

// LoadModel はリグモデルを読み込む。
func (uc *Rig2UeUsecase) LoadModel(rep routput.IFileReader, path string) (*ModelData, error) {
	repo := rep
	if repo == nil {
		repo = uc.modelReader
	}
	if repo == nil {
		return nil, fmt.Errorf("モデル読み込みリポジトリが設定されていません")
	}
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("読み込み元パスが未指定です")
	}
	if !repo.CanLoad(path) {
		return nil, fmt.Errorf("読み込みできないパスです: %s", path)
	}
	return repo.Load(path)
}
