// Package triage implements the dashboard's in-memory reservation view:
// summary counts, the AND-combined filter pipeline, fixed-size pagination
// and the patch-by-id helper applied after a confirmed status update.
package triage

import (
	"strings"
	"time"

	"github.com/google/uuid"
	models "github.com/rgaultier/taxiresa/internal"
)

const (
	// PageSize is the number of rows shown per dashboard page.
	PageSize = 5
	// windowSize caps how many page buttons are rendered at once.
	windowSize = 5
)

const (
	DateFilterAll       = "all"
	DateFilterToday     = "today"
	DateFilterTodayTrip = "today-trip"
	DateFilterWeek      = "week"
)

type Query struct {
	Search string
	Status string
	Date   string
	Page   int
}

// FilterKey identifies the filter portion of a query; when it changes the
// current page goes back to 1.
func (q Query) FilterKey() string {
	return q.Search + "\x00" + q.Status + "\x00" + q.Date
}

type Stats struct {
	Total        int `json:"total"`
	New          int `json:"new"`
	Processed    int `json:"processed"`
	Cancelled    int `json:"cancelled"`
	CreatedToday int `json:"created_today"`
	TripsToday   int `json:"trips_today"`
}

type View struct {
	Stats        Stats                `json:"stats"`
	Filtered     int                  `json:"filtered"`
	Page         int                  `json:"page"`
	TotalPages   int                  `json:"total_pages"`
	PageWindow   []int                `json:"page_window"`
	Reservations []models.Reservation `json:"reservations"`
}

func ComputeStats(list []models.Reservation, now time.Time) Stats {
	var s Stats
	s.Total = len(list)
	for _, r := range list {
		switch r.Status {
		case models.StatusNew:
			s.New++
		case models.StatusProcessed:
			s.Processed++
		case models.StatusCancelled:
			s.Cancelled++
		}
		if sameDay(r.CreatedAt, now) {
			s.CreatedToday++
		}
		if sameDay(r.Date, now) {
			s.TripsToday++
		}
	}
	return s
}

// Filter applies the search, status and date predicates; all must match.
func Filter(list []models.Reservation, q Query, now time.Time) []models.Reservation {
	out := make([]models.Reservation, 0, len(list))
	for _, r := range list {
		if matchesSearch(r, q.Search) && matchesStatus(r, q.Status) && matchesDate(r, q.Date, now) {
			out = append(out, r)
		}
	}
	return out
}

func matchesSearch(r models.Reservation, term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return true
	}
	lower := strings.ToLower(term)
	if strings.Contains(strings.ToLower(r.Name), lower) ||
		strings.Contains(strings.ToLower(r.Departure), lower) ||
		strings.Contains(strings.ToLower(r.Arrival), lower) {
		return true
	}
	return strings.Contains(stripSpaces(r.Phone), stripSpaces(term))
}

func matchesStatus(r models.Reservation, status string) bool {
	return status == "" || status == "all" || string(r.Status) == status
}

func matchesDate(r models.Reservation, filter string, now time.Time) bool {
	switch filter {
	case DateFilterToday:
		return sameDay(r.CreatedAt, now)
	case DateFilterTodayTrip:
		return sameDay(r.Date, now)
	case DateFilterWeek:
		return !r.Date.Before(now.AddDate(0, 0, -7))
	}
	return true
}

// Paginate slices one page out of the filtered list. The requested page is
// clamped into the valid range, so an out-of-range page never yields an
// empty view while results exist.
func Paginate(filtered []models.Reservation, page int) ([]models.Reservation, int, int) {
	totalPages := (len(filtered) + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * PageSize
	end := start + PageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], page, totalPages
}

// PageWindow returns at most five page numbers centered on the current page,
// clamped to the valid range.
func PageWindow(current, totalPages int) []int {
	start := current - windowSize/2
	if start < 1 {
		start = 1
	}
	end := start + windowSize - 1
	if end > totalPages {
		end = totalPages
		start = end - windowSize + 1
		if start < 1 {
			start = 1
		}
	}
	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}

// ApplyStatusUpdate patches exactly one record in place after the store has
// confirmed the mutation. No other record is touched. Returns false when the
// id is not in the list.
func ApplyStatusUpdate(list []models.Reservation, id uuid.UUID, status models.ReservationStatus) bool {
	for i := range list {
		if list[i].ID == id {
			list[i].Status = status
			return true
		}
	}
	return false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

func stripSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "")
}
