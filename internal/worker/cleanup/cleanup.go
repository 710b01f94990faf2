// Package cleanup は期限切れトークンの自動削除ジョブを提供する。
// expires_atが過去になったトークンを定期バッチで物理削除する。
// 読み取り系は期限切れトークンを返さないため、遅延削除しても
// API上の可視性には影響しない。
package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ExpiredTokenDeleter は期限切れトークンの削除を抽象化するインターフェース。
// repository.TokenRepository がこれを満たす。
type ExpiredTokenDeleter interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// CleanupJob は期限切れトークンの自動削除ジョブ。
// 定期実行のバッチジョブとして設計されており、冪等な削除処理を保証する。
type CleanupJob struct {
	tokens ExpiredTokenDeleter
	logger *slog.Logger
}

// NewCleanupJob は新しいCleanupJobを生成する。
func NewCleanupJob(tokens ExpiredTokenDeleter, logger *slog.Logger) *CleanupJob {
	return &CleanupJob{
		tokens: tokens,
		logger: logger,
	}
}

// Run は期限切れトークンを削除する。
// 冪等: 削除対象がない場合でもエラーにならない。
func (j *CleanupJob) Run(ctx context.Context) error {
	start := time.Now()

	deletedCount, err := j.tokens.DeleteExpired(ctx)
	if err != nil {
		j.logger.Error("トークンクリーンアップジョブの実行に失敗しました",
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("トークンクリーンアップの実行に失敗: %w", err)
	}

	duration := time.Since(start)
	j.logger.Info("トークンクリーンアップジョブが完了しました",
		slog.Int64("deleted_count", deletedCount),
		slog.Float64("duration_ms", float64(duration.Milliseconds())),
	)

	return nil
}
