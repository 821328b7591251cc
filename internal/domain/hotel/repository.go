package hotel

import "context"

// Repository はホテルリポジトリのインターフェース
type Repository interface {
	// Create は新しいホテルを作成する
	Create(ctx context.Context, hotel *Hotel) error

	// GetByID はIDからホテルを取得する
	GetByID(ctx context.Context, id int64) (*Hotel, error)

	// List はホテル一覧を取得する
	List(ctx context.Context) ([]*Hotel, error)
}
