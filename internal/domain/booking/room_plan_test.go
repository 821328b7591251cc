package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// jan はテスト用に2024年1月の暦日を返す
func jan(day int) Date {
	return NewDate(2024, time.January, day)
}

func fakeBooking(id int64, startDay, endDay int) *Booking {
	return &Booking{
		ID:        id,
		HotelID:   1,
		GuestName: "テストゲスト",
		StartDate: jan(startDay),
		EndDate:   jan(endDay),
		Status:    StatusConfirmed,
	}
}

func fakeBookingWithRoom(id int64, startDay, endDay, roomNumber int) *Booking {
	b := fakeBooking(id, startDay, endDay)
	b.Status = StatusCheckedIn
	b.RoomNumber = &roomNumber
	return b
}

func TestCanAccommodate(t *testing.T) {
	tests := []struct {
		name      string
		roomCount int
		existing  []*Booking
		startDay  int
		endDay    int
		want      bool
	}{
		{
			name: "既存予約なしなら1室で収容できる", roomCount: 1,
			existing: nil, startDay: 1, endDay: 3, want: true,
		},
		{
			name: "部屋数0は常に収容不可", roomCount: 0,
			existing: nil, startDay: 1, endDay: 3, want: false,
		},
		{
			name: "重ならない予約は同じ部屋を使える", roomCount: 1,
			existing: []*Booking{fakeBooking(1, 1, 3)}, startDay: 4, endDay: 6, want: true,
		},
		{
			name: "1室で重なる期間は収容不可", roomCount: 1,
			existing: []*Booking{fakeBooking(1, 1, 5)}, startDay: 3, endDay: 7, want: false,
		},
		{
			name: "2室なら重なっても収容できる", roomCount: 2,
			existing: []*Booking{fakeBooking(1, 1, 5)}, startDay: 3, endDay: 7, want: true,
		},
		{
			name: "チェックアウト日とチェックイン日が同じなら同室を使える", roomCount: 1,
			existing: []*Booking{fakeBooking(1, 1, 5)}, startDay: 5, endDay: 8, want: true,
		},
		{
			name: "連泊の隙間に収まる", roomCount: 1,
			existing: []*Booking{fakeBooking(1, 1, 5), fakeBooking(2, 5, 10)},
			startDay: 10, endDay: 15, want: true,
		},
		{
			name: "3室で既存3件と一部重なる期間は収容できる", roomCount: 3,
			existing: []*Booking{fakeBooking(1, 1, 5), fakeBooking(2, 3, 8), fakeBooking(3, 6, 10)},
			startDay: 7, endDay: 9, want: true,
		},
		{
			name: "2室で既存3件と一部重なる期間は収容不可", roomCount: 2,
			existing: []*Booking{fakeBooking(1, 1, 5), fakeBooking(2, 3, 8), fakeBooking(3, 6, 10)},
			startDay: 7, endDay: 9, want: false,
		},
		{
			name: "満室期間への追加は収容不可", roomCount: 3,
			existing: []*Booking{fakeBooking(1, 1, 10), fakeBooking(2, 2, 9), fakeBooking(3, 3, 8)},
			startDay: 5, endDay: 7, want: false,
		},
		{
			name: "長期滞在が短期滞在をブロックする", roomCount: 1,
			existing: []*Booking{fakeBooking(1, 1, 30)}, startDay: 5, endDay: 7, want: false,
		},
		{
			name: "長期滞在があっても2室なら収容できる", roomCount: 2,
			existing: []*Booking{fakeBooking(1, 1, 30)}, startDay: 10, endDay: 15, want: true,
		},
		{
			name: "交互に入れ替わる予約パターン", roomCount: 3,
			existing: []*Booking{
				fakeBooking(1, 1, 3), fakeBooking(2, 2, 4), fakeBooking(3, 3, 5),
				fakeBooking(4, 4, 6), fakeBooking(5, 5, 7),
			},
			startDay: 6, endDay: 8, want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanAccommodate(tt.roomCount, tt.existing, jan(tt.startDay), jan(tt.endDay))
			assert.Equal(t, tt.want, got)
		})
	}
}

// 収容可否は「ある時点を同時にカバーする予約数の最大値 <= 部屋数」と一致する
func TestCanAccommodate_MatchesCliqueNumber(t *testing.T) {
	existing := []*Booking{
		fakeBooking(1, 1, 5),
		fakeBooking(2, 3, 8),
		fakeBooking(3, 6, 10),
		fakeBooking(4, 12, 15),
	}
	newStart, newEnd := jan(7), jan(9)

	// 全区間を合わせた最大同時滞在数を総当たりで数える
	all := append([]*Booking{}, existing...)
	all = append(all, &Booking{StartDate: newStart, EndDate: newEnd, Status: StatusConfirmed})
	maxOverlap := 0
	for day := 1; day <= 31; day++ {
		count := 0
		for _, b := range all {
			if !b.StartDate.After(jan(day)) && b.EndDate.After(jan(day)) {
				count++
			}
		}
		if count > maxOverlap {
			maxOverlap = count
		}
	}

	for rooms := 0; rooms <= 5; rooms++ {
		want := rooms >= maxOverlap && rooms >= 1
		assert.Equal(t, want, CanAccommodate(rooms, existing, newStart, newEnd), "rooms=%d", rooms)
	}
}

func TestAssignRoomForCheckIn(t *testing.T) {
	tests := []struct {
		name        string
		roomCount   int
		activeToday []*Booking
		wantRoom    int
		wantOK      bool
	}{
		{
			name: "滞在者がいなければ1号室", roomCount: 2,
			activeToday: nil, wantRoom: 1, wantOK: true,
		},
		{
			name: "占有済みの次の最小番号を選ぶ", roomCount: 3,
			activeToday: []*Booking{
				fakeBookingWithRoom(1, 1, 5, 1),
				fakeBookingWithRoom(2, 3, 7, 2),
			},
			wantRoom: 3, wantOK: true,
		},
		{
			name: "途中の空き番号を優先する", roomCount: 3,
			activeToday: []*Booking{
				fakeBookingWithRoom(1, 1, 3, 3),
				fakeBookingWithRoom(2, 2, 4, 1),
			},
			wantRoom: 2, wantOK: true,
		},
		{
			name: "部屋未割当の予約は無視する", roomCount: 3,
			activeToday: []*Booking{
				fakeBookingWithRoom(1, 1, 5, 2),
				fakeBooking(2, 3, 7),
				fakeBookingWithRoom(3, 6, 10, 1),
			},
			wantRoom: 3, wantOK: true,
		},
		{
			name: "全室占有なら割当不可", roomCount: 2,
			activeToday: []*Booking{
				fakeBookingWithRoom(1, 1, 10, 1),
				fakeBookingWithRoom(2, 1, 10, 2),
			},
			wantOK: false,
		},
		{
			name: "範囲外の部屋番号は無視する", roomCount: 1,
			activeToday: []*Booking{
				fakeBookingWithRoom(1, 1, 5, 9),
			},
			wantRoom: 1, wantOK: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room, ok := AssignRoomForCheckIn(tt.roomCount, tt.activeToday)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantRoom, room)
			}
		})
	}
}

func TestIsRoomOccupied(t *testing.T) {
	active := []*Booking{
		fakeBookingWithRoom(1, 1, 5, 2),
		fakeBooking(2, 3, 7),
	}
	assert.True(t, IsRoomOccupied(2, active))
	assert.False(t, IsRoomOccupied(1, active))
	assert.False(t, IsRoomOccupied(3, active))
}
