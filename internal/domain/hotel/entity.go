package hotel

// Hotel はホテルエンティティを表す
// RoomCount はこのサブシステムでは読み取り専用（部屋数の変更は扱わない）
type Hotel struct {
	ID        int64
	Name      string
	RoomCount int
}

// NewHotel は新しいホテルを作成する
func NewHotel(name string, roomCount int) *Hotel {
	return &Hotel{
		Name:      name,
		RoomCount: roomCount,
	}
}

// Validate はホテルの検証を行う
func (h *Hotel) Validate() error {
	if h.Name == "" {
		return ErrHotelNameRequired
	}
	if h.RoomCount <= 0 {
		return ErrInvalidRoomCount
	}
	return nil
}
