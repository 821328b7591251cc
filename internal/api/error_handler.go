package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/softwaremill/hotel/internal/domain/booking"
	"github.com/softwaremill/hotel/internal/domain/hotel"
	"github.com/softwaremill/hotel/internal/pkg/logger"
)

// ErrorResponse はエラーレスポンスの統一フォーマット
// Code は機械可読な理由コードで、クライアントはメッセージ文字列ではなく
// こちらで分岐する
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ドメインエラーとHTTPステータス・理由コードの対応表
var domainErrorMap = []struct {
	err    error
	status int
	code   string
}{
	{booking.ErrInvalidDateRange, http.StatusBadRequest, "INVALID_DATE_RANGE"},
	{booking.ErrGuestNameRequired, http.StatusBadRequest, "GUEST_NAME_REQUIRED"},
	{booking.ErrInvalidRoomNumber, http.StatusBadRequest, "INVALID_ROOM_NUMBER"},
	{booking.ErrBookingNotFound, http.StatusNotFound, "BOOKING_NOT_FOUND"},
	{hotel.ErrHotelNotFound, http.StatusNotFound, "HOTEL_NOT_FOUND"},
	{booking.ErrNoRoomsAvailable, http.StatusConflict, "NO_ROOMS_AVAILABLE"},
	{booking.ErrInvalidBookingStatus, http.StatusConflict, "INVALID_BOOKING_STATUS"},
	{booking.ErrRoomOccupied, http.StatusConflict, "ROOM_OCCUPIED"},
	{hotel.ErrHotelNameRequired, http.StatusBadRequest, "HOTEL_NAME_REQUIRED"},
	{hotel.ErrInvalidRoomCount, http.StatusBadRequest, "INVALID_ROOM_COUNT"},
}

// DomainError はドメインエラーをHTTPエラーに変換する
// 対応表にないエラーは内部エラーとして500になる（詳細はクライアントに出さない）
func DomainError(err error) *echo.HTTPError {
	for _, m := range domainErrorMap {
		if errors.Is(err, m.err) {
			return echo.NewHTTPError(m.status, ErrorResponse{
				Error: m.err.Error(),
				Code:  m.code,
			}).SetInternal(err)
		}
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "内部サーバーエラー").SetInternal(err)
}

// CustomHTTPErrorHandler はカスタムエラーハンドラー
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	body := ErrorResponse{Error: "内部サーバーエラー"}

	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		switch m := he.Message.(type) {
		case ErrorResponse:
			body = m
		case string:
			body = ErrorResponse{Error: m}
		default:
			body = ErrorResponse{Error: http.StatusText(status)}
		}
	}

	// エラーログを出力（5xx エラーの場合）
	if status >= 500 {
		logger.Error("サーバーエラー",
			zap.Int("status", status),
			zap.String("path", c.Request().URL.Path),
			zap.Error(err),
		)
	}

	if err := c.JSON(status, body); err != nil {
		logger.Error("エラーレスポンス送信失敗", zap.Error(err))
	}
}
