package booking

import (
	"context"

	"github.com/softwaremill/hotel/internal/domain/transaction"
)

// Repository は予約プロジェクション（bookingsテーブル）のインターフェース
// 書き込みはすべてプロジェクション適用として、イベント追記と同一トランザクション内で行う
type Repository interface {
	// Insert は新しい予約行を挿入する（トランザクション必須）
	Insert(ctx context.Context, tx transaction.Tx, b *Booking) error

	// GetByID はIDから予約を取得する
	GetByID(ctx context.Context, id int64) (*Booking, error)

	// GetByIDForUpdate は予約行を排他ロックして取得する（トランザクション必須）
	GetByIDForUpdate(ctx context.Context, tx transaction.Tx, id int64) (*Booking, error)

	// ListByHotelID はホテルの予約一覧を取得する
	ListByHotelID(ctx context.Context, hotelID int64) ([]*Booking, error)

	// LockOverlapping は期間 [start, end) と重なる有効な予約
	// （confirmed / checked_in）を start_date 昇順で排他ロックして返す
	// 固定順でロックすることで、共有行を持つ2つの作成トランザクション間の
	// ロック順デッドロックを防ぐ
	LockOverlapping(ctx context.Context, tx transaction.Tx, hotelID int64, start, end Date) ([]*Booking, error)

	// LockActiveOnDay は指定日に滞在中（checked_in かつ部屋割当済み）の予約を
	// 部屋番号順で排他ロックして返す
	LockActiveOnDay(ctx context.Context, tx transaction.Tx, hotelID int64, day Date) ([]*Booking, error)

	// CountActiveCoveringDay は指定日を含む有効な予約数を数える（コミット済み状態のみ）
	CountActiveCoveringDay(ctx context.Context, hotelID int64, day Date) (int, error)

	// SetCheckedIn は予約をチェックイン状態に更新する（トランザクション必須）
	SetCheckedIn(ctx context.Context, tx transaction.Tx, id int64, roomNumber int) error

	// SetCheckedOut は予約をチェックアウト状態に更新する（トランザクション必須）
	SetCheckedOut(ctx context.Context, tx transaction.Tx, id int64) error

	// SetCancelled は予約をキャンセル状態に更新する（トランザクション必須）
	SetCancelled(ctx context.Context, tx transaction.Tx, id int64) error
}
