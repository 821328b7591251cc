package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/softwaremill/hotel/internal/domain/booking"
)

// MockAvailabilityRefresher はAvailabilityRefresherのモック
type MockAvailabilityRefresher struct {
	mock.Mock
}

func (m *MockAvailabilityRefresher) RefreshAvailability(ctx context.Context, day booking.Date) error {
	args := m.Called(ctx, day)
	return args.Error(0)
}

func TestNewAvailabilityRefreshWorker(t *testing.T) {
	mockService := new(MockAvailabilityRefresher)
	interval := 1 * time.Minute

	worker := NewAvailabilityRefreshWorker(mockService, interval)

	assert.NotNil(t, worker)
	assert.Equal(t, interval, worker.interval)
	assert.NotNil(t, worker.stopCh)
	assert.NotNil(t, worker.doneCh)
}

func TestAvailabilityRefreshWorker_Refresh(t *testing.T) {
	fixedNow := time.Date(2024, time.July, 2, 10, 30, 0, 0, time.UTC)
	today := booking.NewDate(2024, time.July, 2)

	t.Run("当日の日付でリフレッシュが実行される", func(t *testing.T) {
		mockService := new(MockAvailabilityRefresher)
		mockService.On("RefreshAvailability", mock.Anything, today).Return(nil)

		worker := &AvailabilityRefreshWorker{
			hotelService: mockService,
			interval:     1 * time.Minute,
			now:          func() time.Time { return fixedNow },
			stopCh:       make(chan struct{}),
			doneCh:       make(chan struct{}),
		}

		worker.refresh(context.Background())

		mockService.AssertExpectations(t)
	})

	t.Run("エラーが発生しても継続する", func(t *testing.T) {
		mockService := new(MockAvailabilityRefresher)
		mockService.On("RefreshAvailability", mock.Anything, today).Return(assert.AnError)

		worker := &AvailabilityRefreshWorker{
			hotelService: mockService,
			interval:     1 * time.Minute,
			now:          func() time.Time { return fixedNow },
			stopCh:       make(chan struct{}),
			doneCh:       make(chan struct{}),
		}

		// パニックしないことを確認
		worker.refresh(context.Background())

		mockService.AssertExpectations(t)
	})
}

func TestAvailabilityRefreshWorker_StartStop(t *testing.T) {
	t.Run("開始と停止が正常に動作する", func(t *testing.T) {
		mockService := new(MockAvailabilityRefresher)
		mockService.On("RefreshAvailability", mock.Anything, mock.AnythingOfType("booking.Date")).
			Return(nil).Maybe()

		worker := NewAvailabilityRefreshWorker(mockService, 50*time.Millisecond)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go worker.Start(ctx)

		time.Sleep(120 * time.Millisecond)

		worker.Stop()

		select {
		case <-worker.doneCh:
			// 正常に終了
		case <-time.After(1 * time.Second):
			t.Error("worker did not stop in time")
		}
	})

	t.Run("コンテキストキャンセルで停止する", func(t *testing.T) {
		mockService := new(MockAvailabilityRefresher)
		mockService.On("RefreshAvailability", mock.Anything, mock.AnythingOfType("booking.Date")).
			Return(nil).Maybe()

		worker := NewAvailabilityRefreshWorker(mockService, 50*time.Millisecond)

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan struct{})
		go func() {
			worker.Start(ctx)
			close(done)
		}()

		time.Sleep(80 * time.Millisecond)
		cancel()

		select {
		case <-done:
			// 正常に終了
		case <-time.After(1 * time.Second):
			t.Error("worker did not stop after context cancel")
		}
	})
}
