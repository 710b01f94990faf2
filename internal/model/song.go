// Package model はドメインモデルを定義する。
package model

import "time"

// Song はカタログに登録された楽曲を表す。
// IDは作成時にゲートウェイが採番する。Ownerは所有関係ではなく
// ユーザーを引くためのルックアップキーであり、更新時も変更されない。
// タイトル等のメタデータはAttrsに不透明なまま保持する。
type Song struct {
	ID        string
	Owner     string
	Attrs     map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}
