package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/softwaremill/hotel/internal/api"
	"github.com/softwaremill/hotel/internal/domain/booking"
	"github.com/softwaremill/hotel/internal/infrastructure/electric"
)

// ShapeHandler はbookingsプロジェクションの変更フィード購読をElectricへ中継する
type ShapeHandler struct {
	client *electric.Client
}

func NewShapeHandler(client *electric.Client) *ShapeHandler {
	return &ShapeHandler{client: client}
}

// Shape godoc
// @Summary 予約の変更フィードを購読
// @Description ホテルIDと日付で絞ったbookingsテーブルのshapeをElectricから中継する。
// @Description offset / handle / live はそのままElectricへ渡される。
// @Tags sync
// @Produce json
// @Param id path int true "ホテルID"
// @Param date query string true "対象日 (YYYY-MM-DD)"
// @Param offset query string false "Electricのログオフセット"
// @Param handle query string false "shapeハンドル"
// @Param live query bool false "ロングポーリングで購読する"
// @Success 200 {string} string "shapeログのチャンク"
// @Failure 400 {object} api.ErrorResponse
// @Router /hotels/{id}/shape [get]
func (h *ShapeHandler) Shape(c echo.Context) error {
	hotelID, err := parseID(c.Param("id"))
	if err != nil {
		return api.DomainError(booking.ErrBookingNotFound)
	}
	date, err := booking.ParseDate(c.QueryParam("date"))
	if err != nil {
		return api.DomainError(booking.ErrInvalidDateRange)
	}

	params := electric.ShapeParams{
		HotelID: hotelID,
		Date:    date,
		Offset:  c.QueryParam("offset"),
		Handle:  c.QueryParam("handle"),
	}
	if raw := c.QueryParam("live"); raw != "" {
		live := raw == "true"
		params.Live = &live
	}

	resp, err := h.client.GetBookingsShape(c.Request().Context(), params)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "同期サービスに接続できません").SetInternal(err)
	}
	defer resp.Body.Close()

	header := c.Response().Header()
	for name, values := range resp.Header {
		if !electric.ForwardableHeader(name) {
			continue
		}
		for _, v := range values {
			header.Add(name, v)
		}
	}

	c.Response().WriteHeader(resp.StatusCode)
	_, err = io.Copy(c.Response(), resp.Body)
	return err
}
