package mocks

import (
	"context"

	geocode "github.com/rgaultier/taxiresa/internal/client"
	"github.com/stretchr/testify/mock"
)

type MockGeocodeClient struct {
	mock.Mock
}

func (m *MockGeocodeClient) Search(ctx context.Context, query, countryCode string) ([]geocode.Place, error) {
	args := m.Called(ctx, query, countryCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]geocode.Place), args.Error(1)
}
