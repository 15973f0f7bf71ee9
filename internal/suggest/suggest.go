// Package suggest ranks address candidates for the departure and arrival
// fields. It merges a curated list of well-known landmarks with results from
// the geocoding lookup; the lookup is debounced per field and its failures
// never surface to the caller.
package suggest

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	geocode "github.com/rgaultier/taxiresa/internal/client"
	"github.com/rgaultier/taxiresa/internal/debounce"
	"github.com/rgaultier/taxiresa/pkg/logger"
)

const (
	// MinQueryLen is the minimum number of runes before any suggestion is made.
	MinQueryLen = 2

	maxPopular = 3
	maxTotal   = 8

	lookupTimeout = 5 * time.Second
)

// popularPlaces is the curated list of landmarks and stations shown before
// any geocoding result.
var popularPlaces = []string{
	"Gare du Nord, Paris",
	"Gare de Lyon, Paris",
	"Gare Montparnasse, Paris",
	"Gare Saint-Lazare, Paris",
	"Aéroport Paris-Charles de Gaulle (CDG)",
	"Aéroport Paris-Orly",
	"Disneyland Paris, Marne-la-Vallée",
	"Tour Eiffel, Paris",
	"Parc des Princes, Paris",
	"Gare de l'Est, Paris",
}

type GeocodeClient interface {
	Search(ctx context.Context, query, countryCode string) ([]geocode.Place, error)
}

type Suggestion struct {
	Label string `json:"label"`
	Kind  string `json:"kind"`
	Lat   string `json:"lat,omitempty"`
	Lon   string `json:"lon,omitempty"`
}

type remoteResult struct {
	query       string
	suggestions []Suggestion
}

type Service struct {
	geo     GeocodeClient
	country string
	deb     *debounce.Debouncer
	log     *logger.Logger

	mu     sync.RWMutex
	remote map[string]remoteResult
}

func NewService(geo GeocodeClient, country string, delay time.Duration, log *logger.Logger) *Service {
	return &Service{
		geo:     geo,
		country: country,
		deb:     debounce.New(delay),
		log:     log,
		remote:  make(map[string]remoteResult),
	}
}

// Suggest returns the ranked candidates for the given field and partial text.
// Popular matches are served immediately; the geocoding lookup is scheduled
// behind the debounce window and its results show up on the next call for the
// same text. Results that arrive for a text the user has since changed are
// suppressed rather than shown stale.
func (s *Service) Suggest(field, query string) []Suggestion {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinQueryLen {
		s.deb.Cancel(field)
		return nil
	}

	out := popularMatches(query)
	s.deb.Call(field, func() { s.lookup(field, query) })

	s.mu.RLock()
	cached, ok := s.remote[field]
	s.mu.RUnlock()
	if ok && cached.query == query {
		out = mergeRemote(out, cached.suggestions)
	}
	if len(out) > maxTotal {
		out = out[:maxTotal]
	}
	return out
}

// Close releases any pending lookup timers.
func (s *Service) Close() {
	s.deb.Stop()
}

func (s *Service) lookup(field, query string) {
	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	places, err := s.geo.Search(ctx, query, s.country)
	if err != nil {
		// Degrade to popular-only suggestions.
		s.log.Debug("geocode lookup failed", "field", field, "error", err)
		return
	}

	suggestions := make([]Suggestion, 0, len(places))
	for _, p := range places {
		kind := p.Type
		if kind == "" {
			kind = "place"
		}
		suggestions = append(suggestions, Suggestion{
			Label: p.DisplayName,
			Kind:  kind,
			Lat:   p.Lat,
			Lon:   p.Lon,
		})
	}

	s.mu.Lock()
	s.remote[field] = remoteResult{query: query, suggestions: suggestions}
	s.mu.Unlock()
}

func popularMatches(query string) []Suggestion {
	lower := strings.ToLower(query)
	out := make([]Suggestion, 0, maxPopular)
	for _, place := range popularPlaces {
		if strings.Contains(strings.ToLower(place), lower) {
			out = append(out, Suggestion{Label: place, Kind: "popular"})
			if len(out) == maxPopular {
				break
			}
		}
	}
	return out
}

func mergeRemote(popular, remote []Suggestion) []Suggestion {
	seen := make(map[string]bool, len(popular))
	for _, s := range popular {
		seen[strings.ToLower(s.Label)] = true
	}
	for _, s := range remote {
		if !seen[strings.ToLower(s.Label)] {
			popular = append(popular, s)
		}
	}
	return popular
}
