package electric

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/softwaremill/hotel/internal/config"
	"github.com/softwaremill/hotel/internal/domain/booking"
)

// Client はElectric同期サービスへのshapeリクエストを転送するクライアント
// bookings プロジェクションの変更フィードを購読者へストリーミングするための
// 読み取り専用の出口であり、コアの整合性には一切関与しない
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient は新しいElectricクライアントを作成する
func NewClient(cfg *config.ElectricConfig) *Client {
	return &Client{
		baseURL: cfg.URL,
		// live=true のロングポーリングを妨げないようタイムアウトは設けない
		httpClient: &http.Client{Timeout: 0},
	}
}

// ShapeParams はbookingsテーブルのshape購読パラメータ
type ShapeParams struct {
	HotelID int64
	Date    booking.Date
	Offset  string
	Handle  string
	Live    *bool
}

// GetBookingsShape はbookingsテーブルのshapeリクエストをElectricへ転送する
// テーブルはbookingsに固定し、ホテルIDと日付による絞り込みを強制する
// レスポンスボディは呼び出し元がストリーミングして閉じる
func (c *Client) GetBookingsShape(ctx context.Context, p ShapeParams) (*http.Response, error) {
	where := fmt.Sprintf("hotel_id = %d AND start_date <= '%s' AND end_date >= '%s'",
		p.HotelID, p.Date, p.Date)

	query := url.Values{}
	query.Set("table", "bookings")
	query.Set("where", where)
	if p.Offset != "" {
		query.Set("offset", p.Offset)
	}
	if p.Handle != "" {
		query.Set("handle", p.Handle)
	}
	if p.Live != nil {
		query.Set("live", fmt.Sprintf("%t", *p.Live))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/v1/shape?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("shapeリクエストの作成に失敗: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Electricへの接続に失敗: %w", err)
	}
	return resp, nil
}

// ForwardableHeader はElectricのレスポンスから購読者へ転送してよいヘッダかを返す
func ForwardableHeader(name string) bool {
	switch name {
	case "Content-Type", "Cache-Control", "Etag":
		return true
	}
	return strings.HasPrefix(name, "Electric-")
}
