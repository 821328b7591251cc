package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/softwaremill/hotel/internal/api"
	"github.com/softwaremill/hotel/internal/application"
	"github.com/softwaremill/hotel/internal/domain/booking"
)

type BookingHandler struct {
	service BookingServiceInterface
}

func NewBookingHandler(s BookingServiceInterface) *BookingHandler {
	return &BookingHandler{service: s}
}

type CreateBookingRequest struct {
	GuestName string `json:"guest_name" validate:"required" example:"山田太郎"`
	StartDate string `json:"start_date" validate:"required" example:"2024-07-01"`
	EndDate   string `json:"end_date" validate:"required" example:"2024-07-05"`
}

type CheckInRequest struct {
	Today string `json:"today" validate:"required" example:"2024-07-01"`
}

type BookingResponse struct {
	ID         int64  `json:"id" example:"42"`
	HotelID    int64  `json:"hotel_id" example:"1"`
	RoomNumber *int   `json:"room_number,omitempty" example:"2"`
	GuestName  string `json:"guest_name" example:"山田太郎"`
	StartDate  string `json:"start_date" example:"2024-07-01"`
	EndDate    string `json:"end_date" example:"2024-07-05"`
	Status     string `json:"status" example:"confirmed"`
}

type CheckInResponse struct {
	BookingID  int64 `json:"booking_id" example:"42"`
	RoomNumber int   `json:"room_number" example:"2"`
}

func toBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:         b.ID,
		HotelID:    b.HotelID,
		RoomNumber: b.RoomNumber,
		GuestName:  b.GuestName,
		StartDate:  b.StartDate.String(),
		EndDate:    b.EndDate.String(),
		Status:     string(b.Status),
	}
}

// Create godoc
// @Summary 予約を作成
// @Description 期間 [start_date, end_date) で収容可能な場合のみ予約を受け付ける
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path int true "ホテルID"
// @Param request body CreateBookingRequest true "予約情報"
// @Success 201 {object} BookingResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse "空室なし"
// @Router /hotels/{id}/bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	hotelID, err := parseID(c.Param("id"))
	if err != nil {
		return api.DomainError(booking.ErrBookingNotFound)
	}
	var req CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	start, err := booking.ParseDate(req.StartDate)
	if err != nil {
		return api.DomainError(booking.ErrInvalidDateRange)
	}
	end, err := booking.ParseDate(req.EndDate)
	if err != nil {
		return api.DomainError(booking.ErrInvalidDateRange)
	}

	b, err := h.service.CreateBooking(c.Request().Context(), application.CreateBookingInput{
		HotelID:   hotelID,
		GuestName: req.GuestName,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return api.DomainError(err)
	}
	return c.JSON(http.StatusCreated, toBookingResponse(b))
}

// GetByID godoc
// @Summary 予約を取得
// @Tags bookings
// @Produce json
// @Param id path int true "予約ID"
// @Success 200 {object} BookingResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetByID(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return api.DomainError(booking.ErrBookingNotFound)
	}
	b, err := h.service.GetBooking(c.Request().Context(), id)
	if err != nil {
		return api.DomainError(err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// ListByHotel godoc
// @Summary ホテルの予約一覧を取得
// @Tags bookings
// @Produce json
// @Param id path int true "ホテルID"
// @Success 200 {array} BookingResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /hotels/{id}/bookings [get]
func (h *BookingHandler) ListByHotel(c echo.Context) error {
	hotelID, err := parseID(c.Param("id"))
	if err != nil {
		return api.DomainError(booking.ErrBookingNotFound)
	}
	bookings, err := h.service.ListHotelBookings(c.Request().Context(), hotelID)
	if err != nil {
		return api.DomainError(err)
	}
	resp := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = toBookingResponse(b)
	}
	return c.JSON(http.StatusOK, resp)
}

// CheckIn godoc
// @Summary チェックイン
// @Description 当日空いている最小の部屋番号を割り当てる
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path int true "予約ID"
// @Param request body CheckInRequest true "チェックイン情報"
// @Success 200 {object} CheckInResponse
// @Failure 404 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse "状態不正または満室"
// @Router /bookings/{id}/checkin [post]
func (h *BookingHandler) CheckIn(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return api.DomainError(booking.ErrBookingNotFound)
	}
	var req CheckInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	today, err := booking.ParseDate(req.Today)
	if err != nil {
		return api.DomainError(booking.ErrInvalidDateRange)
	}

	room, err := h.service.CheckIn(c.Request().Context(), id, today)
	if err != nil {
		return api.DomainError(err)
	}
	return c.JSON(http.StatusOK, CheckInResponse{BookingID: id, RoomNumber: room})
}

// CheckOut godoc
// @Summary チェックアウト
// @Tags bookings
// @Produce json
// @Param id path int true "予約ID"
// @Success 200 {object} BookingResponse
// @Failure 404 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse
// @Router /bookings/{id}/checkout [post]
func (h *BookingHandler) CheckOut(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return api.DomainError(booking.ErrBookingNotFound)
	}
	if err := h.service.CheckOut(c.Request().Context(), id); err != nil {
		return api.DomainError(err)
	}
	b, err := h.service.GetBooking(c.Request().Context(), id)
	if err != nil {
		return api.DomainError(err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// Cancel godoc
// @Summary 予約をキャンセル
// @Description チェックイン前の予約のみキャンセルできる
// @Tags bookings
// @Produce json
// @Param id path int true "予約ID"
// @Success 200 {object} BookingResponse
// @Failure 404 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return api.DomainError(booking.ErrBookingNotFound)
	}
	if err := h.service.Cancel(c.Request().Context(), id); err != nil {
		return api.DomainError(err)
	}
	b, err := h.service.GetBooking(c.Request().Context(), id)
	if err != nil {
		return api.DomainError(err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}
