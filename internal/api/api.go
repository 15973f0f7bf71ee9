package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	models "github.com/rgaultier/taxiresa/internal"
	"github.com/rgaultier/taxiresa/internal/ports"
	"github.com/rgaultier/taxiresa/internal/prefill"
	"github.com/rgaultier/taxiresa/internal/suggest"
	"github.com/rgaultier/taxiresa/internal/utils"
	"github.com/rgaultier/taxiresa/internal/validator"
)

// PrefillCookie caches the last submitted booking fields client-side so the
// next visit starts pre-filled.
const PrefillCookie = "taxi-last-booking"

// BookingHandler accepts the public booking form.
func BookingHandler(service ports.BookingService) httprouter.Handle {
	v := validator.NewCustomValidator()
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var req models.BookingRequest
		if err := utils.JsonDecodeBody(r, &req); err != nil {
			ae := utils.NewBadRequest("error json decoding body")
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}

		if err := v.Validate(req); err != nil {
			var fields validator.FieldErrors
			if errors.As(err, &fields) {
				ae := utils.NewValidationError(fields)
				utils.RenderResponse(r, w, ae.StatusCode, ae)
				return
			}
			ae := utils.NewBadRequest(err.Error())
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}

		ans, err := service.CreateBooking(r.Context(), &req)
		if err != nil {
			ae := getApiError(err)
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}

		setPrefillCookie(w, &req)
		utils.RenderResponse(r, w, http.StatusCreated, ans)
	}
}

// PrefillHandler resolves the form's initial values: URL parameters override
// the cached last submission, which overrides defaults.
func PrefillHandler() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		cached := readPrefillCookie(r)
		form := prefill.Resolve(r.URL.Query(), cached, time.Now())
		utils.RenderResponse(r, w, http.StatusOK, form)
	}
}

// SuggestHandler serves address autocomplete for the departure and arrival
// fields. Responses may be empty; lookup failures never surface here.
func SuggestHandler(svc *suggest.Service) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		field := r.URL.Query().Get("field")
		if field != "arrival" {
			field = "departure"
		}
		suggestions := svc.Suggest(field, r.URL.Query().Get("q"))
		if suggestions == nil {
			suggestions = []suggest.Suggestion{}
		}
		utils.RenderResponse(r, w, http.StatusOK, suggestions)
	}
}

func setPrefillCookie(w http.ResponseWriter, req *models.BookingRequest) {
	form := prefill.Form{
		Name:       req.Name,
		Phone:      req.Phone,
		Departure:  req.Departure,
		Arrival:    req.Arrival,
		Stops:      req.Stops,
		Date:       req.Date.Format(prefill.DateLayout),
		Passengers: intString(req.Passengers),
		Luggages:   intString(req.Luggages),
	}
	raw, err := json.Marshal(form)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     PrefillCookie,
		Value:    url.QueryEscape(string(raw)),
		Path:     "/",
		MaxAge:   int((180 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

func readPrefillCookie(r *http.Request) prefill.Form {
	var form prefill.Form
	c, err := r.Cookie(PrefillCookie)
	if err != nil {
		return form
	}
	raw, err := url.QueryUnescape(c.Value)
	if err != nil {
		return form
	}
	// A corrupt cookie falls back to defaults.
	_ = json.Unmarshal([]byte(raw), &form)
	return form
}

func intString(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func getApiError(err error) utils.ApiError {
	ae := utils.ApiError{Msg: err.Error()}
	switch {
	case errors.Is(err, models.ErrInvalidStatus):
		ae.StatusCode = http.StatusBadRequest
	case errors.Is(err, models.ErrReservationNotFound):
		ae.StatusCode = http.StatusNotFound
	default:
		ae.StatusCode = http.StatusInternalServerError
	}
	return ae
}
