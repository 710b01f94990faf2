// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: validation, resource, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeUserNotFound      = "USER_NOT_FOUND"
	ErrCodeSongNotFound      = "SONG_NOT_FOUND"
	ErrCodeTokenNotFound     = "TOKEN_NOT_FOUND"
	ErrCodeMissingField      = "MISSING_FIELD"
	ErrCodeUnknownOwner      = "UNKNOWN_OWNER"
	ErrCodeInvalidSubject    = "INVALID_SUBJECT"
	ErrCodeDuplicateUsername = "DUPLICATE_USERNAME"
)

// NewUserNotFoundError はユーザー未検出エラーを生成する。
func NewUserNotFoundError(username string) *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  fmt.Sprintf("指定されたユーザーが見つかりません: %s", username),
		Category: "resource",
		Action:   "ユーザー名を確認してください。",
	}
}

// NewSongNotFoundError は楽曲未検出エラーを生成する。
func NewSongNotFoundError(songID string) *APIError {
	return &APIError{
		Code:     ErrCodeSongNotFound,
		Message:  fmt.Sprintf("指定された楽曲が見つかりません: %s", songID),
		Category: "resource",
		Action:   "楽曲IDを確認してください。",
	}
}

// NewTokenNotFoundError はトークン未検出エラーを生成する。
// 期限切れのトークンも未検出として扱う。
func NewTokenNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeTokenNotFound,
		Message:  "指定されたトークンが見つかりません。",
		Category: "resource",
		Action:   "トークン値を確認するか、新しいトークンを発行してください。",
	}
}

// NewMissingFieldError は必須フィールド欠落エラーを生成する。
func NewMissingFieldError(field string) *APIError {
	return &APIError{
		Code:     ErrCodeMissingField,
		Message:  fmt.Sprintf("必須フィールドが指定されていません: %s", field),
		Category: "validation",
		Action:   fmt.Sprintf("リクエストボディに %s を含めてください。", field),
	}
}

// NewUnknownOwnerError は存在しないユーザーをownerに指定した場合のエラーを生成する。
func NewUnknownOwnerError(username string) *APIError {
	return &APIError{
		Code:     ErrCodeUnknownOwner,
		Message:  fmt.Sprintf("ownerに指定されたユーザーが存在しません: %s", username),
		Category: "validation",
		Action:   "登録済みユーザーのユーザー名をownerに指定してください。",
	}
}

// NewInvalidSubjectError はトークンの対象指定が不正な場合のエラーを生成する。
func NewInvalidSubjectError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidSubject,
		Message:  fmt.Sprintf("トークンの対象指定が不正です: %s", reason),
		Category: "validation",
		Action:   "username または song_id のいずれか一方を指定してください。",
	}
}

// NewDuplicateUsernameError はユーザー名重複エラーを生成する。
func NewDuplicateUsernameError(username string) *APIError {
	return &APIError{
		Code:     ErrCodeDuplicateUsername,
		Message:  fmt.Sprintf("このユーザー名は既に使用されています: %s", username),
		Category: "conflict",
		Action:   "別のユーザー名を指定してください。",
	}
}
