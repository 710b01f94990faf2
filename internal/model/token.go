// Package model はドメインモデルを定義する。
package model

import "time"

// Token は不透明な認可トークンを表す。
// Valueは作成時にゲートウェイが生成する一意な文字列。
// 対象はユーザーまたは楽曲のどちらか一方を参照する。
// ExpiresAtがnilのトークンは失効しない。
type Token struct {
	Value     string
	Username  string
	SongID    string
	ExpiresAt *time.Time
	CreatedAt time.Time
}

// Expired は指定時刻においてトークンが失効しているかを返す。
func (t *Token) Expired(now time.Time) bool {
	return t.ExpiresAt != nil && !t.ExpiresAt.After(now)
}
