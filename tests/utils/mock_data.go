package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	models "github.com/rgaultier/taxiresa/internal"
)

// CreateMockReservations builds count reservations with distinct creation
// times (newest first, matching the store's ordering) and trip dates spread
// one day apart.
func CreateMockReservations(count int, now time.Time) []models.Reservation {
	reservations := make([]models.Reservation, count)
	statuses := []models.ReservationStatus{models.StatusNew, models.StatusProcessed, models.StatusCancelled}

	for i := 0; i < count; i++ {
		passengers := (i % 7) + 1
		reservations[i] = models.Reservation{
			ID:         uuid.New(),
			Name:       fmt.Sprintf("Client %d", i+1),
			Phone:      fmt.Sprintf("06 15 39 22 %02d", i+10),
			Departure:  fmt.Sprintf("Rue de la Paix %d, Paris", i+1),
			Arrival:    "Aéroport Paris-Charles de Gaulle (CDG)",
			Date:       now.AddDate(0, 0, i+1),
			Passengers: &passengers,
			Status:     statuses[i%len(statuses)],
			CreatedAt:  now.Add(-time.Duration(i) * time.Hour),
		}
	}
	return reservations
}

func IntPtr(v int) *int {
	return &v
}
