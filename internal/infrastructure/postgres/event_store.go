package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/softwaremill/hotel/internal/domain/booking"
	"github.com/softwaremill/hotel/internal/domain/transaction"
	"github.com/softwaremill/hotel/internal/pkg/metrics"
)

type eventRow struct {
	StreamID  int64  `db:"stream_id"`
	Version   int    `db:"version"`
	EventType string `db:"event_type"`
	Data      []byte `db:"data"`
}

// EventStore は events テーブルを使った追記専用のイベントログ
// (stream_id, version) にユニーク制約があり、version計算と挿入を同一
// トランザクションで行うことで同一ストリームへの並行追記を検出できる
type EventStore struct{ db *sqlx.DB }

func NewEventStore(db *sqlx.DB) *EventStore {
	return &EventStore{db: db}
}

// NextBookingID は共有シーケンス booking_id_seq から次の予約IDを払い出す
// シーケンスはトランザクションロールバックでも巻き戻らないため、
// 並行する払い出し同士が互いをブロックすることはない
func (s *EventStore) NextBookingID(ctx context.Context, tx transaction.Tx) (int64, error) {
	sqlxTx := UnwrapTx(tx)
	var id int64
	if err := sqlxTx.GetContext(ctx, &id, `SELECT nextval('booking_id_seq')`); err != nil {
		return 0, fmt.Errorf("予約IDの払い出しに失敗: %w", err)
	}
	return id, nil
}

// Append はストリーム末尾にイベントを追記する
// version は COALESCE(MAX(version), 0) + 1 で計算する（最初のイベントは1）
func (s *EventStore) Append(ctx context.Context, tx transaction.Tx, streamID int64, e booking.Event) (int, error) {
	start := time.Now()
	sqlxTx := UnwrapTx(tx)

	var version int
	if err := sqlxTx.GetContext(ctx, &version,
		`SELECT COALESCE(MAX(version), 0) + 1 FROM events WHERE stream_id = $1`, streamID); err != nil {
		return 0, fmt.Errorf("イベントversionの計算に失敗: %w", err)
	}

	data, err := booking.EncodeEvent(e)
	if err != nil {
		return 0, err
	}

	if _, err := sqlxTx.ExecContext(ctx,
		`INSERT INTO events (stream_id, version, event_type, data) VALUES ($1, $2, $3, $4)`,
		streamID, version, string(e.EventType()), data); err != nil {
		return 0, fmt.Errorf("イベント追記に失敗: %w", err)
	}

	if m := metrics.Get(); m != nil {
		m.EventAppendDuration.Observe(time.Since(start).Seconds())
	}
	return version, nil
}

// ListByStream はストリームのイベント履歴をversion昇順で返す
// versionに欠番がある場合はログ破損として内部エラーを返す
func (s *EventStore) ListByStream(ctx context.Context, streamID int64) ([]booking.StoredEvent, error) {
	var rows []eventRow
	query := `SELECT stream_id, version, event_type, data FROM events WHERE stream_id = $1 ORDER BY version`
	if err := s.db.SelectContext(ctx, &rows, query, streamID); err != nil {
		return nil, fmt.Errorf("イベント履歴の取得に失敗: %w", err)
	}

	events := make([]booking.StoredEvent, len(rows))
	for i, row := range rows {
		if row.Version != i+1 {
			return nil, fmt.Errorf("イベントログが破損しています: stream=%d 期待version=%d 実際=%d",
				streamID, i+1, row.Version)
		}
		e, err := booking.DecodeEvent(row.Data)
		if err != nil {
			return nil, err
		}
		events[i] = booking.StoredEvent{StreamID: row.StreamID, Version: row.Version, Event: e}
	}
	return events, nil
}

var _ booking.EventStore = (*EventStore)(nil)
