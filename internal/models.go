package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	StatusNew       ReservationStatus = "new"
	StatusProcessed ReservationStatus = "processed"
	StatusCancelled ReservationStatus = "cancelled"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrInvalidStatus       = errors.New("invalid reservation status")
)

func (s ReservationStatus) IsValid() bool {
	switch s {
	case StatusNew, StatusProcessed, StatusCancelled:
		return true
	}
	return false
}

// Label returns the display label used by the admin dashboard. Unknown
// statuses are kept as stored but rendered under a neutral label.
func (s ReservationStatus) Label() string {
	switch s {
	case StatusNew:
		return "Nouveau"
	case StatusProcessed:
		return "Traitée"
	case StatusCancelled:
		return "Annulée"
	}
	return "Autre"
}

type Reservation struct {
	ID         uuid.UUID         `json:"id"`
	Name       string            `json:"name"`
	Phone      string            `json:"phone"`
	Departure  string            `json:"departure"`
	Arrival    string            `json:"arrival"`
	Stops      string            `json:"stops,omitempty"`
	Date       time.Time         `json:"date"`
	Passengers *int              `json:"passengers,omitempty"`
	Luggages   *int              `json:"luggages,omitempty"`
	Status     ReservationStatus `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
}

type BookingRequest struct {
	Name       string    `json:"name" validate:"required,min=2"`
	Phone      string    `json:"phone" validate:"required,french_phone"`
	Departure  string    `json:"departure" validate:"required"`
	Arrival    string    `json:"arrival" validate:"required"`
	Stops      string    `json:"stops,omitempty"`
	Date       time.Time `json:"date" validate:"required,future_date"`
	Passengers *int      `json:"passengers,omitempty" validate:"omitempty,min=1,max=7"`
	Luggages   *int      `json:"luggages,omitempty"`
}

// BookingResponse is returned on a successful booking. WhatsAppURL is the
// pre-filled chat the client gets redirected to; VibrateMs is a best-effort
// haptic feedback hint that clients without vibration support ignore.
type BookingResponse struct {
	Reservation *Reservation `json:"reservation"`
	WhatsAppURL string       `json:"whatsapp_url"`
	VibrateMs   int          `json:"vibrate_ms"`
}

type UpdateStatusRequest struct {
	Status ReservationStatus `json:"status"`
}

// ContactInfo carries the quick actions for a reservation: WhatsApp chat,
// system dialer and a bare number suitable for clipboard copy.
type ContactInfo struct {
	WhatsAppURL string `json:"whatsapp_url"`
	TelURI      string `json:"tel_uri"`
	Phone       string `json:"phone"`
}
