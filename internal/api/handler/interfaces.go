package handler

import (
	"context"

	"github.com/softwaremill/hotel/internal/application"
	"github.com/softwaremill/hotel/internal/domain/booking"
	"github.com/softwaremill/hotel/internal/domain/hotel"
)

// HotelServiceInterface はホテルサービスのインターフェース
type HotelServiceInterface interface {
	CreateHotel(ctx context.Context, input application.CreateHotelInput) (*hotel.Hotel, error)
	GetHotel(ctx context.Context, id int64) (*hotel.Hotel, error)
	ListHotels(ctx context.Context) ([]*hotel.Hotel, error)
	AvailableRooms(ctx context.Context, hotelID int64, day booking.Date) (int, error)
}

// BookingServiceInterface は予約サービスのインターフェース
type BookingServiceInterface interface {
	CreateBooking(ctx context.Context, input application.CreateBookingInput) (*booking.Booking, error)
	GetBooking(ctx context.Context, id int64) (*booking.Booking, error)
	ListHotelBookings(ctx context.Context, hotelID int64) ([]*booking.Booking, error)
	CheckIn(ctx context.Context, bookingID int64, today booking.Date) (int, error)
	CheckOut(ctx context.Context, bookingID int64) error
	Cancel(ctx context.Context, bookingID int64) error
	OfflineCheckIn(ctx context.Context, bookingID int64, roomNumber int, today booking.Date) error
}
