package booking

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// DateLayout は日付の文字列表現（チェックイン・チェックアウトは暦日単位）
const DateLayout = "2006-01-02"

// Date は時刻を持たない暦日を表す
// 予約期間は半開区間 [StartDate, EndDate) として扱う
type Date struct {
	t time.Time
}

// NewDate は年月日からDateを作成する
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf はtime.Timeを暦日に丸める
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate は "2006-01-02" 形式の文字列を解析する
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("日付の解析に失敗: %w", err)
	}
	return DateOf(t), nil
}

// String は "2006-01-02" 形式の文字列を返す
func (d Date) String() string {
	return d.t.Format(DateLayout)
}

// Time は暦日の0時（UTC）を返す
func (d Date) Time() time.Time {
	return d.t
}

// IsZero はゼロ値かを返す
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Before は d < other かを返す
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// After は d > other かを返す
func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

// Equal は d == other かを返す
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// AddDays はn日後の暦日を返す
func (d Date) AddDays(n int) Date {
	return DateOf(d.t.AddDate(0, 0, n))
}

// MarshalJSON は "2006-01-02" 形式でエンコードする
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON は "2006-01-02" 形式からデコードする
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value はDATEカラムへの書き込み値を返す
func (d Date) Value() (driver.Value, error) {
	return d.t, nil
}

// Scan はDATEカラムから読み取る
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = DateOf(v)
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("日付に変換できない型です: %T", src)
	}
}
