// 指示: miu200521358
package rinteractor

import (
	"fmt"
	"strings"

	"github.com/miu200521358/mu_rig2ue/pkg/usecase/port/routput"
)

// SaveModel は検証済みモデルを保存する。
func (uc *Rig2UeUsecase) SaveModel(rep routput.IFileWriter, path string, modelData *ModelData, opts SaveOptions) error {
	writer := rep
	if writer == nil {
		writer = uc.modelWriter
	}
	if writer == nil {
		return fmt.Errorf("モデル保存リポジトリが設定されていません")
	}
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("保存先パスが未指定です")
	}
	if modelData == nil {
		return fmt.Errorf("保存対象モデルが未設定です")
	}
	return writer.Save(path, modelData, opts)
}
