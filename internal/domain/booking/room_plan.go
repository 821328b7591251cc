package booking

import "sort"

// CanAccommodate は既存の予約群に新しい期間 [newStart, newEnd) を加えても
// roomCount 室で収容できるかを判定する純粋関数
//
// 貪欲法による区間グラフ彩色を行う。開始日昇順に並べ、各予約を
// 「最初に空く部屋スロット」へ割り当てる。開始日順の貪欲割当は最小彩色数を
// 達成することが知られているため、割当の成否は真の収容可否と一致する。
// 前泊の終了日と当泊の開始日が同じ場合は同じ部屋を使い回せる（半開区間）。
func CanAccommodate(roomCount int, existing []*Booking, newStart, newEnd Date) bool {
	if roomCount <= 0 {
		return false
	}

	// 候補の予約を合成して1つのリストにする
	all := make([]*Booking, 0, len(existing)+1)
	all = append(all, existing...)
	all = append(all, &Booking{
		ID:        -1, // 仮のID（アルゴリズムには影響しない）
		StartDate: newStart,
		EndDate:   newEnd,
		Status:    StatusConfirmed,
	})

	// 開始日昇順に安定ソート（同日開始の順序は元の並びを保つ）
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].StartDate.Before(all[j].StartDate)
	})

	// 各部屋スロットが次に空く日を追跡する
	freeAt := make([]*Date, roomCount)

	for _, b := range all {
		assigned := false
		for i := range freeAt {
			// 未使用か、この予約の開始日までに空く部屋なら割り当てられる
			if freeAt[i] == nil || !freeAt[i].After(b.StartDate) {
				end := b.EndDate
				freeAt[i] = &end
				assigned = true
				break
			}
		}
		if !assigned {
			return false
		}
	}
	return true
}

// AssignRoomForCheckIn はチェックイン時の具体的な部屋番号を決める純粋関数
//
// その日チェックイン中の予約が占有している部屋だけを見て、[1, roomCount] の
// うち最小の空き番号を返す。日付の重なりはここでは考慮しない。ゲストが物理的に
// チェックインしている間、その部屋はチェックアウトまで占有されているからである
// （CanAccommodate とは意図的に別のアルゴリズム）。
func AssignRoomForCheckIn(roomCount int, activeToday []*Booking) (int, bool) {
	occupied := make([]bool, roomCount)
	for _, b := range activeToday {
		if b.RoomNumber == nil {
			continue
		}
		idx := *b.RoomNumber - 1 // 部屋番号は1始まり
		if idx >= 0 && idx < roomCount {
			occupied[idx] = true
		}
	}

	for i := 0; i < roomCount; i++ {
		if !occupied[i] {
			return i + 1, true
		}
	}
	return 0, false
}

// IsRoomOccupied は指定した部屋番号がその日の占有一覧に含まれるかを返す
func IsRoomOccupied(roomNumber int, activeToday []*Booking) bool {
	for _, b := range activeToday {
		if b.RoomNumber != nil && *b.RoomNumber == roomNumber {
			return true
		}
	}
	return false
}
