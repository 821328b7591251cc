package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeEvent(t *testing.T) {
	e := BookingCreated{
		BookingID: 42,
		HotelID:   1,
		GuestName: "山田太郎",
		StartDate: NewDate(2024, time.January, 1),
		EndDate:   NewDate(2024, time.January, 5),
	}

	raw, err := EncodeEvent(e)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"event_type": "booking_created",
		"data": {
			"booking_id": 42,
			"hotel_id": 1,
			"guest_name": "山田太郎",
			"start_date": "2024-01-01",
			"end_date": "2024-01-05"
		}
	}`, string(raw))
}

func TestDecodeEvent(t *testing.T) {
	t.Run("チェックインイベントを復元できる", func(t *testing.T) {
		raw := []byte(`{"event_type":"booking_checked_in","data":{"booking_id":42,"assigned_room":3}}`)
		e, err := DecodeEvent(raw)
		require.NoError(t, err)

		checkedIn, ok := e.(BookingCheckedIn)
		require.True(t, ok)
		assert.Equal(t, int64(42), checkedIn.StreamID())
		assert.Equal(t, 3, checkedIn.AssignedRoom)
	})

	t.Run("エンコードしたイベントを復元できる", func(t *testing.T) {
		events := []Event{
			BookingCreated{BookingID: 1, HotelID: 2, GuestName: "g", StartDate: NewDate(2024, time.May, 1), EndDate: NewDate(2024, time.May, 3)},
			BookingCheckedIn{BookingID: 1, AssignedRoom: 2},
			BookingCheckedOut{BookingID: 1},
			BookingCancelled{BookingID: 1},
		}
		for _, original := range events {
			raw, err := EncodeEvent(original)
			require.NoError(t, err)
			decoded, err := DecodeEvent(raw)
			require.NoError(t, err)
			assert.Equal(t, original, decoded)
		}
	})

	t.Run("未知のイベント種別はエラー", func(t *testing.T) {
		raw := []byte(`{"event_type":"booking_upgraded","data":{}}`)
		_, err := DecodeEvent(raw)
		assert.ErrorIs(t, err, ErrUnknownEventType)
	})

	t.Run("壊れたJSONはエラー", func(t *testing.T) {
		_, err := DecodeEvent([]byte(`{`))
		assert.Error(t, err)
	})
}
