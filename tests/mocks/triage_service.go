package mocks

import (
	"context"

	"github.com/google/uuid"
	models "github.com/rgaultier/taxiresa/internal"
	"github.com/rgaultier/taxiresa/internal/triage"
	"github.com/stretchr/testify/mock"
)

type MockTriageService struct {
	mock.Mock
}

func (m *MockTriageService) Load(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTriageService) View(ctx context.Context, q triage.Query) (*triage.View, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*triage.View), args.Error(1)
}

func (m *MockTriageService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReservationStatus) (*models.Reservation, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}

func (m *MockTriageService) Contact(id uuid.UUID) (*models.ContactInfo, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContactInfo), args.Error(1)
}
