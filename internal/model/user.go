// Package model はドメインモデルを定義する。
package model

import "time"

// User はカタログの利用ユーザーを表す。
// usernameが一意キーであり、プロフィールの中身はコアでは解釈しない。
type User struct {
	Username  string
	Profile   map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}
