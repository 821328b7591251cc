package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softwaremill/hotel/internal/config"
	"github.com/softwaremill/hotel/internal/infrastructure/electric"
)

func TestShapeHandler_Shape(t *testing.T) {
	e := NewTestEcho()

	t.Run("Electricへ絞り込み付きで転送しヘッダを中継する", func(t *testing.T) {
		var gotQuery map[string][]string
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query()
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Electric-Offset", "0_0")
			w.Header().Set("Etag", `"shape-1"`)
			w.Header().Set("X-Internal", "secret")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`[{"headers":{"control":"up-to-date"}}]`))
		}))
		defer upstream.Close()

		client := electric.NewClient(&config.ElectricConfig{URL: upstream.URL})
		handler := NewShapeHandler(client)

		req := httptest.NewRequest(http.MethodGet, "/hotels/1/shape?date=2024-07-02&offset=-1&live=true", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("1")

		err := handler.Shape(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		assert.Equal(t, []string{"bookings"}, gotQuery["table"])
		assert.Equal(t, []string{"hotel_id = 1 AND start_date <= '2024-07-02' AND end_date >= '2024-07-02'"}, gotQuery["where"])
		assert.Equal(t, []string{"-1"}, gotQuery["offset"])
		assert.Equal(t, []string{"true"}, gotQuery["live"])

		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Equal(t, "0_0", rec.Header().Get("Electric-Offset"))
		assert.Equal(t, `"shape-1"`, rec.Header().Get("Etag"))
		// Electricと無関係なヘッダは転送しない
		assert.Empty(t, rec.Header().Get("X-Internal"))
		assert.Contains(t, rec.Body.String(), "up-to-date")
	})

	t.Run("dateクエリがない場合400", func(t *testing.T) {
		client := electric.NewClient(&config.ElectricConfig{URL: "http://localhost:0"})
		handler := NewShapeHandler(client)

		req := httptest.NewRequest(http.MethodGet, "/hotels/1/shape", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("1")

		err := handler.Shape(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})

	t.Run("Electricに接続できない場合502", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		upstream.Close() // 即座に閉じて接続失敗させる

		client := electric.NewClient(&config.ElectricConfig{URL: upstream.URL})
		handler := NewShapeHandler(client)

		req := httptest.NewRequest(http.MethodGet, "/hotels/1/shape?date=2024-07-02", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("1")

		err := handler.Shape(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadGateway, he.Code)
	})
}
