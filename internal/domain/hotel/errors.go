package hotel

import "errors"

// Hotel ドメインのエラー定義
var (
	ErrHotelNotFound     = errors.New("ホテルが見つかりません")
	ErrHotelNameRequired = errors.New("ホテル名は必須です")
	ErrInvalidRoomCount  = errors.New("部屋数は1以上である必要があります")
)
