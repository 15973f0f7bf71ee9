package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	models "github.com/rgaultier/taxiresa/internal"
	"github.com/rgaultier/taxiresa/internal/ports"
	"github.com/rgaultier/taxiresa/internal/triage"
	"github.com/rgaultier/taxiresa/internal/whatsapp"
)

// triageService holds the dashboard's working copy of the reservation list.
// The list is fetched in one bulk read; status updates are confirmed against
// the store first and then patched into the copy, so no reload is needed.
type triageService struct {
	repo ports.ReservationRepository
	now  func() time.Time

	mu            sync.Mutex
	cache         []models.Reservation
	loaded        bool
	lastFilterKey string
}

func NewTriageService(repo ports.ReservationRepository) *triageService {
	return &triageService{
		repo:          repo,
		now:           time.Now,
		lastFilterKey: triage.Query{}.FilterKey(),
	}
}

func (s *triageService) Load(ctx context.Context) error {
	list, err := s.repo.ListReservations(ctx)
	if err != nil {
		return fmt.Errorf("error fetching reservations: %w", err)
	}
	s.mu.Lock()
	s.cache = list
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// View computes the dashboard state for a query: aggregate counts over the
// full list and the filtered, paginated slice. Whenever the search term or a
// filter changes, the page snaps back to 1.
func (s *triageService) View(ctx context.Context, q triage.Query) (*triage.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		list, err := s.repo.ListReservations(ctx)
		if err != nil {
			return nil, fmt.Errorf("error fetching reservations: %w", err)
		}
		s.cache = list
		s.loaded = true
	}

	if key := q.FilterKey(); key != s.lastFilterKey {
		s.lastFilterKey = key
		q.Page = 1
	}

	now := s.now()
	filtered := triage.Filter(s.cache, q, now)
	items, page, totalPages := triage.Paginate(filtered, q.Page)

	return &triage.View{
		Stats:        triage.ComputeStats(s.cache, now),
		Filtered:     len(filtered),
		Page:         page,
		TotalPages:   totalPages,
		PageWindow:   triage.PageWindow(page, totalPages),
		Reservations: items,
	}, nil
}

// UpdateStatus writes the new status to the store and, only on success,
// patches the cached record. A failed update leaves the list untouched.
func (s *triageService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReservationStatus) (*models.Reservation, error) {
	if !status.IsValid() {
		return nil, models.ErrInvalidStatus
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	triage.ApplyStatusUpdate(s.cache, id, status)
	for i := range s.cache {
		if s.cache[i].ID == id {
			updated := s.cache[i]
			return &updated, nil
		}
	}
	// Updated in the store but absent from the working copy: another admin's
	// view will pick it up on its own load.
	return &models.Reservation{ID: id, Status: status}, nil
}

// Contact exposes the quick actions for one reservation.
func (s *triageService) Contact(id uuid.UUID) (*models.ContactInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.cache {
		if r.ID == id {
			return &models.ContactInfo{
				WhatsAppURL: whatsapp.ChatURL(r.Phone, whatsapp.FollowUpMessage(r.Name)),
				TelURI:      whatsapp.DialURI(r.Phone),
				Phone:       whatsapp.Digits(r.Phone),
			}, nil
		}
	}
	return nil, models.ErrReservationNotFound
}
