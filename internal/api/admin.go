package api

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	models "github.com/rgaultier/taxiresa/internal"
	"github.com/rgaultier/taxiresa/internal/ports"
	"github.com/rgaultier/taxiresa/internal/triage"
	"github.com/rgaultier/taxiresa/internal/utils"
)

// ReservationsHandler serves the triage dashboard view: aggregate counts plus
// the filtered, paginated reservation list.
func ReservationsHandler(service ports.TriageService) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		query := r.URL.Query()
		page, _ := strconv.Atoi(query.Get("page"))

		q := triage.Query{
			Search: query.Get("search"),
			Status: query.Get("status"),
			Date:   query.Get("date"),
			Page:   page,
		}

		if query.Get("reload") == "1" {
			if err := service.Load(r.Context()); err != nil {
				ae := getApiError(err)
				utils.RenderResponse(r, w, ae.StatusCode, ae)
				return
			}
		}

		view, err := service.View(r.Context(), q)
		if err != nil {
			ae := getApiError(err)
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, view)
	}
}

// UpdateStatusHandler changes a reservation's status, the only mutable field.
func UpdateStatusHandler(service ports.TriageService) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		id, err := uuid.Parse(ps.ByName("id"))
		if err != nil {
			ae := utils.NewBadRequest("invalid reservation id")
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}

		var req models.UpdateStatusRequest
		if err := utils.JsonDecodeBody(r, &req); err != nil {
			ae := utils.NewBadRequest("error json decoding body")
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}

		updated, err := service.UpdateStatus(r.Context(), id, req.Status)
		if err != nil {
			ae := getApiError(err)
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, updated)
	}
}

// ContactHandler returns the quick actions for one reservation: WhatsApp
// chat, dialer URI and the bare number for clipboard copy.
func ContactHandler(service ports.TriageService) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		id, err := uuid.Parse(ps.ByName("id"))
		if err != nil {
			ae := utils.NewBadRequest("invalid reservation id")
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}

		info, err := service.Contact(id)
		if err != nil {
			ae := getApiError(err)
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, info)
	}
}
