// Package security はアプリケーションのセキュリティ機能を提供する。
//
// FieldSanitizerService はクライアントから送られた不透明フィールドの
// 文字列値からマークアップを除去し、保存データ経由のXSSを防ぐ。
// プロフィールやタイトル等のフィールドはプレーンテキストとして扱うため、
// bluemondayのStrictPolicy（全タグ除去）を使用する。
package security

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

// FieldSanitizerService は文字列フィールドのサニタイズ機能のインターフェースを定義する。
// エンティティの保存前に使用される。
type FieldSanitizerService interface {
	// Sanitize は文字列からHTMLタグをすべて除去して返す。
	// マークアップを含まないプレーンテキストは & や引用符を含めそのまま返り、
	// 再適用しても変化しない。
	Sanitize(raw string) string

	// SanitizeFields はマップ内の文字列値をすべてサニタイズした新しいマップを返す。
	// 文字列以外の値はそのまま保持する。nilマップにはnilを返す。
	SanitizeFields(fields map[string]any) map[string]any
}

// fieldSanitizer はFieldSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type fieldSanitizer struct {
	policy *bluemonday.Policy
}

// NewFieldSanitizer はFieldSanitizerServiceの新しいインスタンスを生成する。
func NewFieldSanitizer() *fieldSanitizer {
	return &fieldSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は文字列からHTMLタグをすべて除去して返す。
// bluemondayはタグ除去後の出力をHTMLエスケープするが、フィールドは
// プレーンテキストとして保存・返却するためエスケープを戻す。
// これにより & や引用符を含む正当な値がそのまま往復する。
func (s *fieldSanitizer) Sanitize(raw string) string {
	return html.UnescapeString(s.policy.Sanitize(raw))
}

// SanitizeFields はマップ内の文字列値をすべてサニタイズした新しいマップを返す。
func (s *fieldSanitizer) SanitizeFields(fields map[string]any) map[string]any {
	if fields == nil {
		return nil
	}

	sanitized := make(map[string]any, len(fields))
	for k, v := range fields {
		if str, ok := v.(string); ok {
			sanitized[k] = s.Sanitize(str)
			continue
		}
		sanitized[k] = v
	}

	return sanitized
}
