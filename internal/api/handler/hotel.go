package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/softwaremill/hotel/internal/api"
	"github.com/softwaremill/hotel/internal/application"
	"github.com/softwaremill/hotel/internal/domain/booking"
	"github.com/softwaremill/hotel/internal/domain/hotel"
)

type HotelHandler struct {
	service HotelServiceInterface
}

func NewHotelHandler(s HotelServiceInterface) *HotelHandler {
	return &HotelHandler{service: s}
}

type CreateHotelRequest struct {
	Name      string `json:"name" validate:"required" example:"Grand Hotel"`
	RoomCount int    `json:"room_count" validate:"required,min=1" example:"10"`
}

type HotelResponse struct {
	ID        int64  `json:"id" example:"1"`
	Name      string `json:"name" example:"Grand Hotel"`
	RoomCount int    `json:"room_count" example:"10"`
	// date クエリを指定したときだけ含まれる空室数のヒント
	AvailableRooms *int `json:"available_rooms,omitempty"`
}

func toHotelResponse(h *hotel.Hotel, available *int) HotelResponse {
	return HotelResponse{
		ID:             h.ID,
		Name:           h.Name,
		RoomCount:      h.RoomCount,
		AvailableRooms: available,
	}
}

// Create godoc
// @Summary ホテルを作成
// @Tags hotels
// @Accept json
// @Produce json
// @Param request body CreateHotelRequest true "ホテル情報"
// @Success 201 {object} HotelResponse
// @Failure 400 {object} api.ErrorResponse
// @Router /hotels [post]
func (h *HotelHandler) Create(c echo.Context) error {
	var req CreateHotelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	created, err := h.service.CreateHotel(c.Request().Context(), application.CreateHotelInput{
		Name:      req.Name,
		RoomCount: req.RoomCount,
	})
	if err != nil {
		return api.DomainError(err)
	}
	return c.JSON(http.StatusCreated, toHotelResponse(created, nil))
}

// List godoc
// @Summary ホテル一覧を取得
// @Description dateクエリを指定すると各ホテルの空室数ヒントを含める
// @Tags hotels
// @Produce json
// @Param date query string false "空室数を計算する日付 (YYYY-MM-DD)"
// @Success 200 {array} HotelResponse
// @Router /hotels [get]
func (h *HotelHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	hotels, err := h.service.ListHotels(ctx)
	if err != nil {
		return api.DomainError(err)
	}

	var day *booking.Date
	if raw := c.QueryParam("date"); raw != "" {
		d, err := booking.ParseDate(raw)
		if err != nil {
			return api.DomainError(booking.ErrInvalidDateRange)
		}
		day = &d
	}

	resp := make([]HotelResponse, len(hotels))
	for i, ht := range hotels {
		var available *int
		if day != nil {
			count, err := h.service.AvailableRooms(ctx, ht.ID, *day)
			if err != nil {
				return api.DomainError(err)
			}
			available = &count
		}
		resp[i] = toHotelResponse(ht, available)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetByID godoc
// @Summary ホテルを取得
// @Tags hotels
// @Produce json
// @Param id path int true "ホテルID"
// @Param date query string false "空室数を計算する日付 (YYYY-MM-DD)"
// @Success 200 {object} HotelResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /hotels/{id} [get]
func (h *HotelHandler) GetByID(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return api.DomainError(hotel.ErrHotelNotFound)
	}
	ctx := c.Request().Context()

	ht, err := h.service.GetHotel(ctx, id)
	if err != nil {
		return api.DomainError(err)
	}

	var available *int
	if raw := c.QueryParam("date"); raw != "" {
		d, err := booking.ParseDate(raw)
		if err != nil {
			return api.DomainError(booking.ErrInvalidDateRange)
		}
		count, err := h.service.AvailableRooms(ctx, id, d)
		if err != nil {
			return api.DomainError(err)
		}
		available = &count
	}
	return c.JSON(http.StatusOK, toHotelResponse(ht, available))
}

func parseID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}
