package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/softwaremill/hotel/internal/domain/booking"
	"github.com/softwaremill/hotel/internal/domain/hotel"
	redisinfra "github.com/softwaremill/hotel/internal/infrastructure/redis"
	"github.com/softwaremill/hotel/internal/pkg/logger"
	"github.com/softwaremill/hotel/internal/pkg/metrics"
)

// HotelService はホテルの参照・作成と空室数の集計を提供する
type HotelService struct {
	hotels   hotel.Repository
	bookings booking.Repository
	cache    *redisinfra.AvailabilityCache
	cacheTTL time.Duration
}

func NewHotelService(
	hotels hotel.Repository,
	bookings booking.Repository,
	cache *redisinfra.AvailabilityCache,
	cacheTTL time.Duration,
) *HotelService {
	return &HotelService{
		hotels:   hotels,
		bookings: bookings,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// CreateHotelInput はホテル作成の入力
type CreateHotelInput struct {
	Name      string
	RoomCount int
}

// CreateHotel は新しいホテルを登録する
func (s *HotelService) CreateHotel(ctx context.Context, input CreateHotelInput) (*hotel.Hotel, error) {
	h := hotel.NewHotel(input.Name, input.RoomCount)
	if err := h.Validate(); err != nil {
		return nil, err
	}
	if err := s.hotels.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// GetHotel はIDからホテルを取得する
func (s *HotelService) GetHotel(ctx context.Context, id int64) (*hotel.Hotel, error) {
	return s.hotels.GetByID(ctx, id)
}

// ListHotels はホテル一覧を取得する
func (s *HotelService) ListHotels(ctx context.Context) ([]*hotel.Hotel, error) {
	return s.hotels.List(ctx)
}

// AvailableRooms はホテルの指定日の空室数を返す
//
// 一覧表示向けのヒントであり、コミット済み状態の近似値を返す。
// 予約受付の正確な判定は CreateBooking のロック+収容判定が行う。
func (s *HotelService) AvailableRooms(ctx context.Context, hotelID int64, day booking.Date) (int, error) {
	if s.cache != nil {
		count, err := s.cache.GetAvailableRooms(ctx, hotelID, day)
		if err == nil {
			return count, nil
		}
		if !errors.Is(err, redisinfra.ErrCacheMiss) {
			logger.Warn("空室数キャッシュの取得に失敗", zap.Int64("hotel_id", hotelID), zap.Error(err))
		}
	}

	count, err := s.computeAvailableRooms(ctx, hotelID, day)
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		if err := s.cache.SetAvailableRooms(ctx, hotelID, day, count, s.cacheTTL); err != nil {
			logger.Warn("空室数キャッシュの保存に失敗", zap.Int64("hotel_id", hotelID), zap.Error(err))
		}
	}
	return count, nil
}

// RefreshAvailability は全ホテルの指定日の空室数を再計算してキャッシュとメトリクスを更新する
// バックグラウンドワーカーから定期的に呼ばれる
func (s *HotelService) RefreshAvailability(ctx context.Context, day booking.Date) error {
	hotels, err := s.hotels.List(ctx)
	if err != nil {
		return fmt.Errorf("ホテル一覧の取得に失敗: %w", err)
	}

	for _, h := range hotels {
		count, err := s.computeAvailableRooms(ctx, h.ID, day)
		if err != nil {
			return err
		}
		if s.cache != nil {
			if err := s.cache.SetAvailableRooms(ctx, h.ID, day, count, s.cacheTTL); err != nil {
				logger.Warn("空室数キャッシュの保存に失敗", zap.Int64("hotel_id", h.ID), zap.Error(err))
			}
		}
		if m := metrics.Get(); m != nil {
			m.RoomsAvailable.WithLabelValues(strconv.FormatInt(h.ID, 10)).Set(float64(count))
		}
	}
	return nil
}

func (s *HotelService) computeAvailableRooms(ctx context.Context, hotelID int64, day booking.Date) (int, error) {
	h, err := s.hotels.GetByID(ctx, hotelID)
	if err != nil {
		return 0, err
	}
	occupied, err := s.bookings.CountActiveCoveringDay(ctx, hotelID, day)
	if err != nil {
		return 0, err
	}
	count := h.RoomCount - occupied
	if count < 0 {
		count = 0
	}
	return count, nil
}
