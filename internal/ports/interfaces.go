package ports

import (
	"context"

	"github.com/google/uuid"
	models "github.com/rgaultier/taxiresa/internal"
	"github.com/rgaultier/taxiresa/internal/triage"
)

type ReservationRepository interface {
	CreateReservation(ctx context.Context, r *models.Reservation) (*models.Reservation, error)
	ListReservations(ctx context.Context) ([]models.Reservation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReservationStatus) error
}

type BookingService interface {
	CreateBooking(ctx context.Context, request *models.BookingRequest) (*models.BookingResponse, error)
}

type TriageService interface {
	Load(ctx context.Context) error
	View(ctx context.Context, q triage.Query) (*triage.View, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReservationStatus) (*models.Reservation, error)
	Contact(id uuid.UUID) (*models.ContactInfo, error)
}
