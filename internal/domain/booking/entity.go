package booking

// Status は予約の状態を表す
type Status string

const (
	StatusConfirmed  Status = "confirmed"
	StatusCheckedIn  Status = "checked_in"
	StatusCheckedOut Status = "checked_out"
	StatusCancelled  Status = "cancelled"
)

// IsValid は既知の状態かを返す
func (s Status) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal は終端状態（以降の遷移が存在しない状態）かを返す
func (s Status) IsTerminal() bool {
	return s == StatusCheckedOut || s == StatusCancelled
}

// Booking は予約エンティティを表す
// bookings テーブルはイベントログから導出されるプロジェクションであり、
// 正本はあくまでイベントログ側にある
type Booking struct {
	ID         int64
	HotelID    int64
	RoomNumber *int // checked_in のときのみ非nil
	GuestName  string
	StartDate  Date
	EndDate    Date
	Status     Status
}

// NewBooking は新しい予約を作成する（状態は confirmed、部屋は未割当）
func NewBooking(hotelID int64, guestName string, start, end Date) (*Booking, error) {
	b := &Booking{
		HotelID:   hotelID,
		GuestName: guestName,
		StartDate: start,
		EndDate:   end,
		Status:    StatusConfirmed,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate は予約の検証を行う
func (b *Booking) Validate() error {
	if b.GuestName == "" {
		return ErrGuestNameRequired
	}
	if b.StartDate.IsZero() || b.EndDate.IsZero() {
		return ErrInvalidDateRange
	}
	if !b.StartDate.Before(b.EndDate) {
		return ErrInvalidDateRange
	}
	return nil
}

// Overlaps は半開区間 [start, end) と期間が重なるかを返す
// 前泊のチェックアウト日と当泊のチェックイン日が同じ場合は重ならない扱い
func (b *Booking) Overlaps(start, end Date) bool {
	return b.StartDate.Before(end) && b.EndDate.After(start)
}

// CoversDay は指定日が滞在期間に含まれるかを返す
func (b *Booking) CoversDay(day Date) bool {
	return !b.StartDate.After(day) && !b.EndDate.Before(day)
}

// IsActive は部屋在庫を消費する状態（confirmed / checked_in）かを返す
func (b *Booking) IsActive() bool {
	return b.Status == StatusConfirmed || b.Status == StatusCheckedIn
}

// CheckIn は予約をチェックイン状態に遷移させる
// 遷移は confirmed からのみ許される
func (b *Booking) CheckIn(roomNumber int) error {
	if b.Status != StatusConfirmed {
		return ErrInvalidBookingStatus
	}
	b.Status = StatusCheckedIn
	b.RoomNumber = &roomNumber
	return nil
}

// CheckOut は予約をチェックアウト状態に遷移させる（終端状態）
func (b *Booking) CheckOut() error {
	if b.Status != StatusCheckedIn {
		return ErrInvalidBookingStatus
	}
	b.Status = StatusCheckedOut
	b.RoomNumber = nil
	return nil
}

// Cancel は予約をキャンセル状態に遷移させる（終端状態）
func (b *Booking) Cancel() error {
	if b.Status != StatusConfirmed {
		return ErrInvalidBookingStatus
	}
	b.Status = StatusCancelled
	return nil
}
