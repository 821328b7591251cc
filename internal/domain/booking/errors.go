package booking

import "errors"

// Booking ドメインのエラー定義
var (
	ErrBookingNotFound      = errors.New("予約が見つかりません")
	ErrGuestNameRequired    = errors.New("宿泊者名は必須です")
	ErrInvalidDateRange     = errors.New("チェックイン日はチェックアウト日より前である必要があります")
	ErrNoRoomsAvailable     = errors.New("空室がありません")
	ErrInvalidBookingStatus = errors.New("この状態の予約に対しては実行できない操作です")
	ErrInvalidRoomNumber    = errors.New("部屋番号がホテルの部屋数の範囲外です")
	ErrRoomOccupied         = errors.New("指定された部屋は既に使用中です")
	ErrUnknownEventType     = errors.New("未知のイベント種別です")
)
