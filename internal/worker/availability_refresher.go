package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/softwaremill/hotel/internal/domain/booking"
	"github.com/softwaremill/hotel/internal/pkg/logger"
)

// AvailabilityRefresher は空室数を再計算するインターフェース
type AvailabilityRefresher interface {
	RefreshAvailability(ctx context.Context, day booking.Date) error
}

// AvailabilityRefreshWorker は空室数キャッシュを定期的に温め直すワーカー
// キャッシュはあくまでヒントであり、無効化に失敗してもここで追いつく
type AvailabilityRefreshWorker struct {
	hotelService AvailabilityRefresher
	interval     time.Duration
	now          func() time.Time
	stopCh       chan struct{}
	doneCh       chan struct{}
}

// NewAvailabilityRefreshWorker は新しいワーカーを作成
func NewAvailabilityRefreshWorker(
	hs AvailabilityRefresher,
	interval time.Duration,
) *AvailabilityRefreshWorker {
	return &AvailabilityRefreshWorker{
		hotelService: hs,
		interval:     interval,
		now:          time.Now,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}
}

// Start はワーカーを開始
func (w *AvailabilityRefreshWorker) Start(ctx context.Context) {
	logger.Info("空室数リフレッシュワーカー開始",
		zap.Duration("interval", w.interval),
	)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	defer close(w.doneCh)

	for {
		select {
		case <-ctx.Done():
			logger.Info("空室数リフレッシュワーカー停止（コンテキストキャンセル）")
			return
		case <-w.stopCh:
			logger.Info("空室数リフレッシュワーカー停止（シグナル受信）")
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

// Stop はワーカーを停止
func (w *AvailabilityRefreshWorker) Stop() {
	close(w.stopCh)
	<-w.doneCh
}

// refresh は今日の空室数を再計算する
func (w *AvailabilityRefreshWorker) refresh(ctx context.Context) {
	log := logger.Get()
	log.Debug("空室数のリフレッシュ開始")

	today := booking.DateOf(w.now())
	if err := w.hotelService.RefreshAvailability(ctx, today); err != nil {
		log.Error("空室数のリフレッシュ失敗", zap.Error(err))
		return
	}

	log.Debug("空室数のリフレッシュ完了")
}
