package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/softwaremill/hotel/internal/api"
	"github.com/softwaremill/hotel/internal/domain/booking"
)

// SyncHandler はオフライン中にクライアント側で発生したイベントの取り込みを扱う
type SyncHandler struct {
	service BookingServiceInterface
}

func NewSyncHandler(s BookingServiceInterface) *SyncHandler {
	return &SyncHandler{service: s}
}

// ClientEvent はクライアント生成イベント
// BookingID はJavaScript側の整数精度の問題を避けるため文字列で受け取る
type ClientEvent struct {
	Type       string `json:"type" validate:"required" example:"offline_checkin"`
	BookingID  string `json:"booking_id" validate:"required" example:"42"`
	RoomNumber int    `json:"room_number" example:"2"`
	Today      string `json:"today" example:"2024-07-01"`
}

type SyncRequest struct {
	Events []ClientEvent `json:"events" validate:"required,min=1"`
}

// SyncResult はイベント1件ごとの取り込み結果
type SyncResult struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"` // applied / rejected
	Code      string `json:"code,omitempty"`
	Error     string `json:"error,omitempty"`
}

type SyncResponse struct {
	Results []SyncResult `json:"results"`
}

// Sync godoc
// @Summary オフラインイベントを同期
// @Description クライアントがオフライン中に記録したイベントを順に取り込む。
// @Description 一部のイベントが拒否されても残りは処理され、結果は件ごとに返る。
// @Tags sync
// @Accept json
// @Produce json
// @Param request body SyncRequest true "クライアントイベントのバッチ"
// @Success 200 {object} SyncResponse
// @Failure 400 {object} api.ErrorResponse
// @Router /sync [post]
func (h *SyncHandler) Sync(c echo.Context) error {
	var req SyncRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	results := make([]SyncResult, len(req.Events))
	for i, ev := range req.Events {
		results[i] = h.apply(c, ev)
	}
	return c.JSON(http.StatusOK, SyncResponse{Results: results})
}

func (h *SyncHandler) apply(c echo.Context, ev ClientEvent) SyncResult {
	if ev.Type != "offline_checkin" {
		return rejected(ev.BookingID, "UNKNOWN_EVENT_TYPE", "未知のイベント種別です")
	}
	bookingID, err := strconv.ParseInt(ev.BookingID, 10, 64)
	if err != nil {
		return rejected(ev.BookingID, "BOOKING_NOT_FOUND", booking.ErrBookingNotFound.Error())
	}
	today, err := booking.ParseDate(ev.Today)
	if err != nil {
		return rejected(ev.BookingID, "INVALID_DATE_RANGE", booking.ErrInvalidDateRange.Error())
	}

	if err := h.service.OfflineCheckIn(c.Request().Context(), bookingID, ev.RoomNumber, today); err != nil {
		he := api.DomainError(err)
		if resp, ok := he.Message.(api.ErrorResponse); ok {
			return rejected(ev.BookingID, resp.Code, resp.Error)
		}
		return rejected(ev.BookingID, "INTERNAL_ERROR", "内部サーバーエラー")
	}
	return SyncResult{BookingID: ev.BookingID, Status: "applied"}
}

func rejected(bookingID, code, message string) SyncResult {
	return SyncResult{
		BookingID: bookingID,
		Status:    "rejected",
		Code:      code,
		Error:     message,
	}
}
