package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/softwaremill/hotel/internal/domain/hotel"
)

type hotelRow struct {
	ID        int64  `db:"id"`
	Name      string `db:"name"`
	RoomCount int    `db:"room_count"`
}

func (r *hotelRow) toEntity() *hotel.Hotel {
	return &hotel.Hotel{ID: r.ID, Name: r.Name, RoomCount: r.RoomCount}
}

// HotelRepository は hotels テーブルへのアクセスを提供する
type HotelRepository struct{ db *sqlx.DB }

func NewHotelRepository(db *sqlx.DB) *HotelRepository {
	return &HotelRepository{db: db}
}

func (r *HotelRepository) Create(ctx context.Context, h *hotel.Hotel) error {
	query := `INSERT INTO hotels (name, room_count) VALUES ($1, $2) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, h.Name, h.RoomCount).Scan(&h.ID); err != nil {
		return fmt.Errorf("ホテル作成に失敗: %w", err)
	}
	return nil
}

func (r *HotelRepository) GetByID(ctx context.Context, id int64) (*hotel.Hotel, error) {
	var row hotelRow
	query := `SELECT id, name, room_count FROM hotels WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, hotel.ErrHotelNotFound
		}
		return nil, fmt.Errorf("ホテル取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

func (r *HotelRepository) List(ctx context.Context) ([]*hotel.Hotel, error) {
	var rows []hotelRow
	query := `SELECT id, name, room_count FROM hotels ORDER BY id`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("ホテル一覧取得に失敗: %w", err)
	}
	hotels := make([]*hotel.Hotel, len(rows))
	for i, row := range rows {
		hotels[i] = row.toEntity()
	}
	return hotels, nil
}

var _ hotel.Repository = (*HotelRepository)(nil)
