package mocks

import (
	"context"

	"github.com/google/uuid"
	models "github.com/rgaultier/taxiresa/internal"
	"github.com/stretchr/testify/mock"
)

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) CreateReservation(ctx context.Context, r *models.Reservation) (*models.Reservation, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}

func (m *MockReservationRepository) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reservation), args.Error(1)
}

func (m *MockReservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReservationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
