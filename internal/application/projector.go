package application

import (
	"context"
	"fmt"

	"github.com/softwaremill/hotel/internal/domain/booking"
	"github.com/softwaremill/hotel/internal/domain/transaction"
)

// Projector はイベントを bookings プロジェクションへ反映する
// 1イベントにつき1行の書き込みを、イベント追記と同一トランザクション内で行う
// ログ追記だけ・プロジェクション更新だけの状態が観測されることは決してない
type Projector struct {
	bookings booking.Repository
}

// NewProjector は新しいProjectorを作成する
func NewProjector(bookings booking.Repository) *Projector {
	return &Projector{bookings: bookings}
}

// Apply はイベント1件をプロジェクションへ適用する
// イベント直和型に対する網羅的なswitchで分岐する（種別追加時はここも必ず更新する）
func (p *Projector) Apply(ctx context.Context, tx transaction.Tx, e booking.Event) error {
	switch ev := e.(type) {
	case booking.BookingCreated:
		b := &booking.Booking{
			ID:        ev.BookingID,
			HotelID:   ev.HotelID,
			GuestName: ev.GuestName,
			StartDate: ev.StartDate,
			EndDate:   ev.EndDate,
			Status:    booking.StatusConfirmed,
		}
		return p.bookings.Insert(ctx, tx, b)
	case booking.BookingCheckedIn:
		return p.bookings.SetCheckedIn(ctx, tx, ev.BookingID, ev.AssignedRoom)
	case booking.BookingCheckedOut:
		return p.bookings.SetCheckedOut(ctx, tx, ev.BookingID)
	case booking.BookingCancelled:
		return p.bookings.SetCancelled(ctx, tx, ev.BookingID)
	default:
		return fmt.Errorf("%w: %T", booking.ErrUnknownEventType, e)
	}
}
