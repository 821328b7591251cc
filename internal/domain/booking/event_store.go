package booking

import (
	"context"

	"github.com/softwaremill/hotel/internal/domain/transaction"
)

// StoredEvent は永続化済みイベントとそのストリーム内位置を表す
type StoredEvent struct {
	StreamID int64
	Version  int
	Event    Event
}

// EventStore は追記専用のイベントログのインターフェース
// version はストリームごとに1から始まり、1ずつ増える（欠番はログ破損を意味する）
type EventStore interface {
	// NextBookingID は共有シーケンスから次の予約IDを払い出す
	// 予約IDはイベントストリームIDを兼ねる
	NextBookingID(ctx context.Context, tx transaction.Tx) (int64, error)

	// Append はストリーム末尾にイベントを追記し、割り当てたversionを返す
	// version計算と挿入を呼び出し元のトランザクション内で行うことで、
	// 同一ストリームへの並行追記に対して原子的になる
	Append(ctx context.Context, tx transaction.Tx, streamID int64, e Event) (int, error)

	// ListByStream はストリームのイベント履歴をversion昇順で返す
	ListByStream(ctx context.Context, streamID int64) ([]StoredEvent, error)
}
