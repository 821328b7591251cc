package booking

import (
	"encoding/json"
	"fmt"
)

// EventType はイベント種別を表す
type EventType string

const (
	EventTypeBookingCreated    EventType = "booking_created"
	EventTypeBookingCheckedIn  EventType = "booking_checked_in"
	EventTypeBookingCheckedOut EventType = "booking_checked_out"
	EventTypeBookingCancelled  EventType = "booking_cancelled"
)

// Event は予約ストリームに追記されるドメインイベントの閉じた直和型
// 新しいイベント種別を追加するときは Encode/Decode とプロジェクション適用の
// switch をすべて更新する必要がある（コンパイルエラーで漏れを検出するための設計）
type Event interface {
	// EventType はイベント種別を返す
	EventType() EventType
	// StreamID はイベントが属するストリーム（= 予約ID）を返す
	StreamID() int64

	isEvent()
}

// BookingCreated は予約作成イベント
type BookingCreated struct {
	BookingID int64  `json:"booking_id"`
	HotelID   int64  `json:"hotel_id"`
	GuestName string `json:"guest_name"`
	StartDate Date   `json:"start_date"`
	EndDate   Date   `json:"end_date"`
}

func (e BookingCreated) EventType() EventType { return EventTypeBookingCreated }
func (e BookingCreated) StreamID() int64      { return e.BookingID }
func (e BookingCreated) isEvent()             {}

// BookingCheckedIn はチェックインイベント（割り当てられた部屋番号を持つ）
type BookingCheckedIn struct {
	BookingID    int64 `json:"booking_id"`
	AssignedRoom int   `json:"assigned_room"`
}

func (e BookingCheckedIn) EventType() EventType { return EventTypeBookingCheckedIn }
func (e BookingCheckedIn) StreamID() int64      { return e.BookingID }
func (e BookingCheckedIn) isEvent()             {}

// BookingCheckedOut はチェックアウトイベント
type BookingCheckedOut struct {
	BookingID int64 `json:"booking_id"`
}

func (e BookingCheckedOut) EventType() EventType { return EventTypeBookingCheckedOut }
func (e BookingCheckedOut) StreamID() int64      { return e.BookingID }
func (e BookingCheckedOut) isEvent()             {}

// BookingCancelled はキャンセルイベント
type BookingCancelled struct {
	BookingID int64 `json:"booking_id"`
}

func (e BookingCancelled) EventType() EventType { return EventTypeBookingCancelled }
func (e BookingCancelled) StreamID() int64      { return e.BookingID }
func (e BookingCancelled) isEvent()             {}

// envelope はイベントの永続化形式
// {"event_type": "...", "data": {...}} のタグ付きJSONで保存する
type envelope struct {
	EventType EventType       `json:"event_type"`
	Data      json.RawMessage `json:"data"`
}

// EncodeEvent はイベントをタグ付きJSONにエンコードする
func EncodeEvent(e Event) ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("イベントのエンコードに失敗: %w", err)
	}
	return json.Marshal(envelope{EventType: e.EventType(), Data: data})
}

// DecodeEvent はタグ付きJSONからイベントを復元する
func DecodeEvent(raw []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("イベントのデコードに失敗: %w", err)
	}

	switch env.EventType {
	case EventTypeBookingCreated:
		var e BookingCreated
		if err := json.Unmarshal(env.Data, &e); err != nil {
			return nil, fmt.Errorf("イベントのデコードに失敗: %w", err)
		}
		return e, nil
	case EventTypeBookingCheckedIn:
		var e BookingCheckedIn
		if err := json.Unmarshal(env.Data, &e); err != nil {
			return nil, fmt.Errorf("イベントのデコードに失敗: %w", err)
		}
		return e, nil
	case EventTypeBookingCheckedOut:
		var e BookingCheckedOut
		if err := json.Unmarshal(env.Data, &e); err != nil {
			return nil, fmt.Errorf("イベントのデコードに失敗: %w", err)
		}
		return e, nil
	case EventTypeBookingCancelled:
		var e BookingCancelled
		if err := json.Unmarshal(env.Data, &e); err != nil {
			return nil, fmt.Errorf("イベントのデコードに失敗: %w", err)
		}
		return e, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEventType, env.EventType)
	}
}
