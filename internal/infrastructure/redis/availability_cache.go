package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/softwaremill/hotel/internal/domain/booking"
)

var (
	ErrCacheMiss = errors.New("キャッシュが見つかりません")
)

// AvailabilityCache はホテルごとの指定日の空室数キャッシュを管理する
// あくまで一覧表示向けのヒントであり、予約の収容可否判定には使わない
// （収容可否は常にトランザクション内のロック済み状態から判定する）
type AvailabilityCache struct {
	client *redis.Client
}

// NewAvailabilityCache は新しいAvailabilityCacheインスタンスを作成する
func NewAvailabilityCache(client *redis.Client) *AvailabilityCache {
	return &AvailabilityCache{client: client}
}

// GetAvailableRooms はホテルの指定日の空室数をキャッシュから取得する
func (c *AvailabilityCache) GetAvailableRooms(ctx context.Context, hotelID int64, day booking.Date) (int, error) {
	val, err := c.client.Get(ctx, c.key(hotelID, day)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrCacheMiss
		}
		return 0, fmt.Errorf("キャッシュ取得に失敗: %w", err)
	}
	return val, nil
}

// SetAvailableRooms はホテルの指定日の空室数をキャッシュに保存する
func (c *AvailabilityCache) SetAvailableRooms(ctx context.Context, hotelID int64, day booking.Date, count int, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.key(hotelID, day), count, ttl).Err(); err != nil {
		return fmt.Errorf("キャッシュ保存に失敗: %w", err)
	}
	return nil
}

// Invalidate はホテルのキャッシュを無効化する
// 予約の状態が変わるたびに呼ばれる（当日以外の日付のエントリはTTLで消える）
func (c *AvailabilityCache) Invalidate(ctx context.Context, hotelID int64) error {
	pattern := fmt.Sprintf("availability:%d:*", hotelID)
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("キャッシュ無効化に失敗: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("キャッシュ無効化に失敗: %w", err)
	}
	return nil
}

func (c *AvailabilityCache) key(hotelID int64, day booking.Date) string {
	return fmt.Sprintf("availability:%d:%s", hotelID, day)
}
