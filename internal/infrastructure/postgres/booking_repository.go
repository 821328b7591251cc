package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/softwaremill/hotel/internal/domain/booking"
	"github.com/softwaremill/hotel/internal/domain/transaction"
)

type bookingRow struct {
	ID         int64        `db:"id"`
	HotelID    int64        `db:"hotel_id"`
	RoomNumber *int         `db:"room_number"`
	GuestName  string       `db:"guest_name"`
	StartDate  booking.Date `db:"start_date"`
	EndDate    booking.Date `db:"end_date"`
	Status     string       `db:"status"`
}

func (r *bookingRow) toEntity() *booking.Booking {
	return &booking.Booking{
		ID:         r.ID,
		HotelID:    r.HotelID,
		RoomNumber: r.RoomNumber,
		GuestName:  r.GuestName,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		Status:     booking.Status(r.Status),
	}
}

const bookingColumns = `id, hotel_id, room_number, guest_name, start_date, end_date, status`

// BookingRepository は bookings プロジェクションテーブルへのアクセスを提供する
// 状態を変更するメソッドはすべてイベント追記と同一トランザクション内で呼ばれる
type BookingRepository struct{ db *sqlx.DB }

func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Insert(ctx context.Context, tx transaction.Tx, b *booking.Booking) error {
	sqlxTx := UnwrapTx(tx)
	query := `INSERT INTO bookings (id, hotel_id, room_number, guest_name, start_date, end_date, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := sqlxTx.ExecContext(ctx, query,
		b.ID, b.HotelID, b.RoomNumber, b.GuestName, b.StartDate, b.EndDate, string(b.Status)); err != nil {
		return fmt.Errorf("予約行の挿入に失敗: %w", err)
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*booking.Booking, error) {
	var row bookingRow
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrBookingNotFound
		}
		return nil, fmt.Errorf("予約取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

func (r *BookingRepository) GetByIDForUpdate(ctx context.Context, tx transaction.Tx, id int64) (*booking.Booking, error) {
	sqlxTx := UnwrapTx(tx)
	var row bookingRow
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`
	if err := sqlxTx.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrBookingNotFound
		}
		return nil, fmt.Errorf("予約取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

func (r *BookingRepository) ListByHotelID(ctx context.Context, hotelID int64) ([]*booking.Booking, error) {
	var rows []bookingRow
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE hotel_id = $1 ORDER BY start_date DESC, id DESC`
	if err := r.db.SelectContext(ctx, &rows, query, hotelID); err != nil {
		return nil, fmt.Errorf("予約一覧取得に失敗: %w", err)
	}
	return toEntities(rows), nil
}

// LockOverlapping は期間 [start, end) と重なる有効な予約を start_date 昇順で
// 排他ロックして返す。並行する作成トランザクション同士は共有行のロック獲得で
// 直列化され、先行コミットの結果を観測してから収容可否を判定できる。
// 固定のロック順（start_date昇順）によりロック順デッドロックを防ぐ。
func (r *BookingRepository) LockOverlapping(ctx context.Context, tx transaction.Tx, hotelID int64, start, end booking.Date) ([]*booking.Booking, error) {
	sqlxTx := UnwrapTx(tx)
	var rows []bookingRow
	query := `SELECT ` + bookingColumns + `
	          FROM bookings
	          WHERE hotel_id = $1
	            AND status IN ('confirmed', 'checked_in')
	            AND start_date < $3
	            AND end_date > $2
	          ORDER BY start_date
	          FOR UPDATE`
	if err := sqlxTx.SelectContext(ctx, &rows, query, hotelID, start, end); err != nil {
		return nil, fmt.Errorf("重複予約のロック取得に失敗: %w", err)
	}
	return toEntities(rows), nil
}

func (r *BookingRepository) LockActiveOnDay(ctx context.Context, tx transaction.Tx, hotelID int64, day booking.Date) ([]*booking.Booking, error) {
	sqlxTx := UnwrapTx(tx)
	var rows []bookingRow
	query := `SELECT ` + bookingColumns + `
	          FROM bookings
	          WHERE hotel_id = $1
	            AND status = 'checked_in'
	            AND room_number IS NOT NULL
	            AND start_date <= $2
	            AND end_date >= $2
	          ORDER BY room_number
	          FOR UPDATE`
	if err := sqlxTx.SelectContext(ctx, &rows, query, hotelID, day); err != nil {
		return nil, fmt.Errorf("滞在中予約のロック取得に失敗: %w", err)
	}
	return toEntities(rows), nil
}

func (r *BookingRepository) CountActiveCoveringDay(ctx context.Context, hotelID int64, day booking.Date) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM bookings
	          WHERE hotel_id = $1
	            AND status IN ('confirmed', 'checked_in')
	            AND start_date <= $2
	            AND end_date > $2`
	if err := r.db.GetContext(ctx, &count, query, hotelID, day); err != nil {
		return 0, fmt.Errorf("滞在予約数の取得に失敗: %w", err)
	}
	return count, nil
}

func (r *BookingRepository) SetCheckedIn(ctx context.Context, tx transaction.Tx, id int64, roomNumber int) error {
	return r.updateStatus(ctx, tx, id,
		`UPDATE bookings SET status = 'checked_in', room_number = $2 WHERE id = $1`, roomNumber)
}

func (r *BookingRepository) SetCheckedOut(ctx context.Context, tx transaction.Tx, id int64) error {
	return r.updateStatus(ctx, tx, id,
		`UPDATE bookings SET status = 'checked_out', room_number = NULL WHERE id = $1`)
}

func (r *BookingRepository) SetCancelled(ctx context.Context, tx transaction.Tx, id int64) error {
	return r.updateStatus(ctx, tx, id,
		`UPDATE bookings SET status = 'cancelled' WHERE id = $1`)
}

func (r *BookingRepository) updateStatus(ctx context.Context, tx transaction.Tx, id int64, query string, args ...interface{}) error {
	sqlxTx := UnwrapTx(tx)
	result, err := sqlxTx.ExecContext(ctx, query, append([]interface{}{id}, args...)...)
	if err != nil {
		return fmt.Errorf("予約更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return booking.ErrBookingNotFound
	}
	return nil
}

func toEntities(rows []bookingRow) []*booking.Booking {
	result := make([]*booking.Booking, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result
}

var _ booking.Repository = (*BookingRepository)(nil)
