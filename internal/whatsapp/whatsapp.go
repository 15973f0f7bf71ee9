// Package whatsapp builds the outbound messaging handoffs: wa.me chat links
// with a pre-filled message and tel: URIs for the system dialer.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	models "github.com/rgaultier/taxiresa/internal"
)

const dateLayout = "02/01/2006 15:04"

// Digits strips the separators customers type into French phone numbers.
func Digits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' || r == '+' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// waNumber converts a French number to the international form wa.me expects:
// no plus sign, no leading zero.
func waNumber(phone string) string {
	n := Digits(phone)
	switch {
	case strings.HasPrefix(n, "+33"):
		return "33" + n[3:]
	case strings.HasPrefix(n, "0033"):
		return "33" + n[4:]
	case strings.HasPrefix(n, "0"):
		return "33" + n[1:]
	}
	return strings.TrimPrefix(n, "+")
}

func ChatURL(phone, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", waNumber(phone), url.QueryEscape(message))
}

func DialURI(phone string) string {
	return "tel:" + Digits(phone)
}

// BookingMessage renders the reservation request sent to the driver's chat.
func BookingMessage(req *models.BookingRequest) string {
	lines := []string{
		"Bonjour, je souhaite réserver un taxi.",
		"Nom : " + req.Name,
		"Téléphone : " + req.Phone,
		"Départ : " + req.Departure,
		"Arrivée : " + req.Arrival,
	}
	if req.Stops != "" {
		lines = append(lines, "Arrêts : "+req.Stops)
	}
	lines = append(lines, "Date/Heure : "+req.Date.Format(dateLayout))
	lines = append(lines, "Passagers : "+optionalInt(req.Passengers))
	lines = append(lines, "Bagages : "+optionalInt(req.Luggages))
	return strings.Join(lines, "\n")
}

// FollowUpMessage is the canned text for the dashboard's quick WhatsApp action.
func FollowUpMessage(name string) string {
	return fmt.Sprintf("Bonjour %s, concernant votre réservation taxi...", name)
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%d", *v)
}
