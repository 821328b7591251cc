package transaction

import "context"

// Tx は1つの進行中トランザクションを表すインターフェース
// イベント追記とプロジェクション更新を同一トランザクションに閉じ込めるため、
// ドメイン層・アプリケーション層はこの抽象を通してのみトランザクションに触れる
type Tx interface {
	// Commit はトランザクションをコミットする
	Commit() error
	// Rollback はトランザクションをロールバックする
	Rollback() error
}

// Manager はトランザクションを管理するインターフェース
type Manager interface {
	// Begin は新しいトランザクションを開始する
	Begin(ctx context.Context) (Tx, error)
}
