package service

import (
	"context"
	"fmt"

	models "github.com/rgaultier/taxiresa/internal"
	"github.com/rgaultier/taxiresa/internal/ports"
	"github.com/rgaultier/taxiresa/internal/whatsapp"
)

// vibrateMs is the haptic feedback hint sent back with a confirmed booking.
const vibrateMs = 80

type bookingService struct {
	repo        ports.ReservationRepository
	driverPhone string
}

// NewBookingService wires the intake flow. driverPhone is the number the
// WhatsApp handoff opens a chat with.
func NewBookingService(repo ports.ReservationRepository, driverPhone string) *bookingService {
	return &bookingService{
		repo:        repo,
		driverPhone: driverPhone,
	}
}

// CreateBooking persists the reservation and composes the messaging handoff.
// A store failure aborts before any handoff is produced.
func (s *bookingService) CreateBooking(ctx context.Context, request *models.BookingRequest) (*models.BookingResponse, error) {
	reservation := &models.Reservation{
		Name:       request.Name,
		Phone:      request.Phone,
		Departure:  request.Departure,
		Arrival:    request.Arrival,
		Stops:      request.Stops,
		Date:       request.Date,
		Passengers: request.Passengers,
		Luggages:   request.Luggages,
		Status:     models.StatusNew,
	}

	saved, err := s.repo.CreateReservation(ctx, reservation)
	if err != nil {
		return nil, fmt.Errorf("error creating reservation: %w", err)
	}

	msg := whatsapp.BookingMessage(request)
	return &models.BookingResponse{
		Reservation: saved,
		WhatsAppURL: whatsapp.ChatURL(s.driverPhone, msg),
		VibrateMs:   vibrateMs,
	}, nil
}
