// 指示: miu200521358
// Package rerrors はリグ正規化の型付きエラーを提供する。
package rerrors

import (
	"errors"
	"fmt"
)

// UnsupportedRigError は未対応リグ分類に対する操作エラーを表す。
type UnsupportedRigError struct {
	Classification string
}

// Error はエラーメッセージを返す。
func (e *UnsupportedRigError) Error() string {
	return fmt.Sprintf("未対応のリグ分類です: %s", e.Classification)
}

// NewUnsupportedRigError は未対応リグエラーを生成する。
func NewUnsupportedRigError(classification string) error {
	return &UnsupportedRigError{Classification: classification}
}

// IsUnsupportedRigError は未対応リグエラーか判定する。
func IsUnsupportedRigError(err error) bool {
	var target *UnsupportedRigError
	return errors.As(err, &target)
}

// HandBoneNotFoundError は手ボーン未割当の指合成エラーを表す。
type HandBoneNotFoundError struct {
	Side string
}

// Error はエラーメッセージを返す。
func (e *HandBoneNotFoundError) Error() string {
	return fmt.Sprintf("手ボーンが見つかりません: side=%s", e.Side)
}

// NewHandBoneNotFoundError は手ボーン未割当エラーを生成する。
func NewHandBoneNotFoundError(side string) error {
	return &HandBoneNotFoundError{Side: side}
}

// IsHandBoneNotFoundError は手ボーン未割当エラーか判定する。
func IsHandBoneNotFoundError(err error) bool {
	var target *HandBoneNotFoundError
	return errors.As(err, &target)
}

// NameConflictError はボーン名の重複衝突を表す。
type NameConflictError struct {
	Name string
}

// Error はエラーメッセージを返す。
func (e *NameConflictError) Error() string {
	return fmt.Sprintf("ボーン名が重複しています: %s", e.Name)
}

// NewNameConflictError はボーン名重複エラーを生成する。
func NewNameConflictError(name string) error {
	return &NameConflictError{Name: name}
}

// IsNameConflictError はボーン名重複エラーか判定する。
func IsNameConflictError(err error) bool {
	var target *NameConflictError
	return errors.As(err, &target)
}

// ExportBlockedError は出力前検証の不変条件違反を表す。
type ExportBlockedError struct {
	ViolationCount int
	Summary        string
}

// Error はエラーメッセージを返す。
func (e *ExportBlockedError) Error() string {
	return fmt.Sprintf("出力前検証に失敗しました: violations=%d %s", e.ViolationCount, e.Summary)
}

// NewExportBlockedError は出力前検証エラーを生成する。
func NewExportBlockedError(violationCount int, summary string) error {
	return &ExportBlockedError{ViolationCount: violationCount, Summary: summary}
}

// IsExportBlockedError は出力前検証エラーか判定する。
func IsExportBlockedError(err error) bool {
	var target *ExportBlockedError
	return errors.As(err, &target)
}

// InvalidParameterError は不正なパラメータ指定を表す。
type InvalidParameterError struct {
	Name  string
	Value string
}

// Error はエラーメッセージを返す。
func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("パラメータが不正です: %s=%s", e.Name, e.Value)
}

// NewInvalidParameterError はパラメータ不正エラーを生成する。
func NewInvalidParameterError(name string, value string) error {
	return &InvalidParameterError{Name: name, Value: value}
}

// IsInvalidParameterError はパラメータ不正エラーか判定する。
func IsInvalidParameterError(err error) bool {
	var target *InvalidParameterError
	return errors.As(err, &target)
}
