package application

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/softwaremill/hotel/internal/domain/booking"
	"github.com/softwaremill/hotel/internal/domain/hotel"
	"github.com/softwaremill/hotel/internal/domain/transaction"
	redisinfra "github.com/softwaremill/hotel/internal/infrastructure/redis"
	"github.com/softwaremill/hotel/internal/pkg/logger"
	"github.com/softwaremill/hotel/internal/pkg/metrics"
)

// BookingService は予約の状態遷移を司るアプリケーションサービス
//
// すべての操作は「検証 →（作成時はロック+収容判定）→ イベント追記 →
// プロジェクション適用 → コミット」を1つのトランザクションで実行する。
// 途中のどの失敗でもトランザクション全体がロールバックされ、部分的な
// 効果は残らない。
type BookingService struct {
	txManager transaction.Manager
	hotels    hotel.Repository
	bookings  booking.Repository
	store     booking.EventStore
	projector *Projector
	cache     *redisinfra.AvailabilityCache
}

func NewBookingService(
	txManager transaction.Manager,
	hotels hotel.Repository,
	bookings booking.Repository,
	store booking.EventStore,
	cache *redisinfra.AvailabilityCache,
) *BookingService {
	return &BookingService{
		txManager: txManager,
		hotels:    hotels,
		bookings:  bookings,
		store:     store,
		projector: NewProjector(bookings),
		cache:     cache,
	}
}

// CreateBookingInput は予約作成の入力
type CreateBookingInput struct {
	HotelID   int64
	GuestName string
	StartDate booking.Date
	EndDate   booking.Date
}

// CreateBooking は収容可能な場合に限り新しい予約を受け付ける
//
// 同一ホテル・重複期間への並行作成は、共有する既存予約行のロック獲得で
// 直列化される。後続のトランザクションは先行コミットの結果を観測してから
// 収容可否を判定するため、個別には「空きあり」に見える2つの作成が同時に
// 通ってしまう書き込みスキューは起こらない。
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*booking.Booking, error) {
	// 期間・宿泊者名の検証（トランザクション開始前）
	b, err := booking.NewBooking(input.HotelID, input.GuestName, input.StartDate, input.EndDate)
	if err != nil {
		s.record("create", err)
		return nil, err
	}

	// ホテル確認（部屋数はこのサブシステムでは不変）
	h, err := s.hotels.GetByID(ctx, input.HotelID)
	if err != nil {
		s.record("create", err)
		return nil, err
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	// 重複する有効予約を固定順でロックしてから収容可否を判定する
	overlaps, err := s.bookings.LockOverlapping(ctx, tx, input.HotelID, input.StartDate, input.EndDate)
	if err != nil {
		s.record("create", err)
		return nil, err
	}
	if !booking.CanAccommodate(h.RoomCount, overlaps, input.StartDate, input.EndDate) {
		s.record("create", booking.ErrNoRoomsAvailable)
		return nil, booking.ErrNoRoomsAvailable
	}

	id, err := s.store.NextBookingID(ctx, tx)
	if err != nil {
		s.record("create", err)
		return nil, err
	}
	b.ID = id

	if err := s.appendAndApply(ctx, tx, booking.BookingCreated{
		BookingID: id,
		HotelID:   input.HotelID,
		GuestName: input.GuestName,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	}); err != nil {
		s.record("create", err)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.record("create", err)
		return nil, fmt.Errorf("コミットに失敗: %w", err)
	}

	s.record("create", nil)
	s.invalidateAvailability(ctx, input.HotelID)
	return b, nil
}

// CheckIn はチェックイン時に具体的な部屋番号を割り当てる
// 同じホテル・同じ日の並行チェックインは、滞在中予約行のロックで直列化され、
// 同じ部屋が二重に割り当てられることはない
func (s *BookingService) CheckIn(ctx context.Context, bookingID int64, today booking.Date) (int, error) {
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	b, err := s.bookings.GetByIDForUpdate(ctx, tx, bookingID)
	if err != nil {
		s.record("check_in", err)
		return 0, err
	}
	if b.Status != booking.StatusConfirmed {
		s.record("check_in", booking.ErrInvalidBookingStatus)
		return 0, booking.ErrInvalidBookingStatus
	}

	h, err := s.hotels.GetByID(ctx, b.HotelID)
	if err != nil {
		s.record("check_in", err)
		return 0, err
	}

	active, err := s.bookings.LockActiveOnDay(ctx, tx, b.HotelID, today)
	if err != nil {
		s.record("check_in", err)
		return 0, err
	}
	room, ok := booking.AssignRoomForCheckIn(h.RoomCount, active)
	if !ok {
		s.record("check_in", booking.ErrNoRoomsAvailable)
		return 0, booking.ErrNoRoomsAvailable
	}

	if err := s.appendAndApply(ctx, tx, booking.BookingCheckedIn{
		BookingID:    bookingID,
		AssignedRoom: room,
	}); err != nil {
		s.record("check_in", err)
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		s.record("check_in", err)
		return 0, fmt.Errorf("コミットに失敗: %w", err)
	}

	s.record("check_in", nil)
	s.invalidateAvailability(ctx, b.HotelID)
	return room, nil
}

// CheckOut は滞在を終了し、部屋の占有を解除する
func (s *BookingService) CheckOut(ctx context.Context, bookingID int64) error {
	return s.transition(ctx, "check_out", bookingID, booking.StatusCheckedIn,
		booking.BookingCheckedOut{BookingID: bookingID})
}

// Cancel はチェックイン前の予約を取り消す
func (s *BookingService) Cancel(ctx context.Context, bookingID int64) error {
	return s.transition(ctx, "cancel", bookingID, booking.StatusConfirmed,
		booking.BookingCancelled{BookingID: bookingID})
}

// transition は単一予約の状態遷移（checkout / cancel）を実行する
func (s *BookingService) transition(ctx context.Context, operation string, bookingID int64, required booking.Status, e booking.Event) error {
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	b, err := s.bookings.GetByIDForUpdate(ctx, tx, bookingID)
	if err != nil {
		s.record(operation, err)
		return err
	}
	if b.Status != required {
		s.record(operation, booking.ErrInvalidBookingStatus)
		return booking.ErrInvalidBookingStatus
	}

	if err := s.appendAndApply(ctx, tx, e); err != nil {
		s.record(operation, err)
		return err
	}

	if err := tx.Commit(); err != nil {
		s.record(operation, err)
		return fmt.Errorf("コミットに失敗: %w", err)
	}

	s.record(operation, nil)
	s.invalidateAvailability(ctx, b.HotelID)
	return nil
}

// OfflineCheckIn はオフライン中にクライアント側で行われたチェックインを取り込む
//
// 既に同じ部屋にチェックイン済みの場合は成功として扱い、イベントは追記しない
// （同じクライアントイベントの再送に対して冪等）。部屋番号はクライアントが
// 選んでいるため部屋選択アルゴリズムは通さず、範囲と占有の検証のみ行う。
func (s *BookingService) OfflineCheckIn(ctx context.Context, bookingID int64, roomNumber int, today booking.Date) error {
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	b, err := s.bookings.GetByIDForUpdate(ctx, tx, bookingID)
	if err != nil {
		s.record("offline_check_in", err)
		return err
	}

	// 冪等な再送: 同じ部屋にチェックイン済みなら何もしない
	if b.Status == booking.StatusCheckedIn && b.RoomNumber != nil && *b.RoomNumber == roomNumber {
		s.record("offline_check_in", nil)
		return nil
	}

	if b.Status != booking.StatusConfirmed {
		s.record("offline_check_in", booking.ErrInvalidBookingStatus)
		return booking.ErrInvalidBookingStatus
	}

	h, err := s.hotels.GetByID(ctx, b.HotelID)
	if err != nil {
		s.record("offline_check_in", err)
		return err
	}
	if roomNumber < 1 || roomNumber > h.RoomCount {
		s.record("offline_check_in", booking.ErrInvalidRoomNumber)
		return booking.ErrInvalidRoomNumber
	}

	active, err := s.bookings.LockActiveOnDay(ctx, tx, b.HotelID, today)
	if err != nil {
		s.record("offline_check_in", err)
		return err
	}
	if booking.IsRoomOccupied(roomNumber, active) {
		s.record("offline_check_in", booking.ErrRoomOccupied)
		return booking.ErrRoomOccupied
	}

	if err := s.appendAndApply(ctx, tx, booking.BookingCheckedIn{
		BookingID:    bookingID,
		AssignedRoom: roomNumber,
	}); err != nil {
		s.record("offline_check_in", err)
		return err
	}

	if err := tx.Commit(); err != nil {
		s.record("offline_check_in", err)
		return fmt.Errorf("コミットに失敗: %w", err)
	}

	s.record("offline_check_in", nil)
	s.invalidateAvailability(ctx, b.HotelID)
	return nil
}

// GetBooking はIDから予約を取得する
func (s *BookingService) GetBooking(ctx context.Context, id int64) (*booking.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

// ListHotelBookings はホテルの予約一覧を取得する
func (s *BookingService) ListHotelBookings(ctx context.Context, hotelID int64) ([]*booking.Booking, error) {
	if _, err := s.hotels.GetByID(ctx, hotelID); err != nil {
		return nil, err
	}
	return s.bookings.ListByHotelID(ctx, hotelID)
}

// appendAndApply はイベント追記とプロジェクション適用を同一トランザクションで行う
func (s *BookingService) appendAndApply(ctx context.Context, tx transaction.Tx, e booking.Event) error {
	if _, err := s.store.Append(ctx, tx, e.StreamID(), e); err != nil {
		return err
	}
	return s.projector.Apply(ctx, tx, e)
}

// invalidateAvailability は空室数キャッシュを無効化する（ベストエフォート）
func (s *BookingService) invalidateAvailability(ctx context.Context, hotelID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, hotelID); err != nil {
		logger.Warn("空室数キャッシュの無効化に失敗",
			zap.Int64("hotel_id", hotelID), zap.Error(err))
	}
}

// record は操作の結果をメトリクスに記録する
func (s *BookingService) record(operation string, err error) {
	m := metrics.Get()
	if m == nil {
		return
	}
	status := "success"
	switch {
	case err == nil:
	case isBusinessError(err):
		status = "rejected"
	default:
		status = "error"
	}
	m.BookingOperationsTotal.WithLabelValues(operation, status).Inc()
}

// isBusinessError は想定内の失敗（検証・業務ルール違反・未検出）かを返す
// これらは頻繁に起こるものでありエラーログは出さない
func isBusinessError(err error) bool {
	return errors.Is(err, booking.ErrBookingNotFound) ||
		errors.Is(err, booking.ErrGuestNameRequired) ||
		errors.Is(err, booking.ErrInvalidDateRange) ||
		errors.Is(err, booking.ErrNoRoomsAvailable) ||
		errors.Is(err, booking.ErrInvalidBookingStatus) ||
		errors.Is(err, booking.ErrInvalidRoomNumber) ||
		errors.Is(err, booking.ErrRoomOccupied) ||
		errors.Is(err, hotel.ErrHotelNotFound)
}
