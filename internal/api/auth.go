package api

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/rgaultier/taxiresa/internal/auth"
	"github.com/rgaultier/taxiresa/internal/utils"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginHandler opens an admin session. The failure message never says which
// of the two fields was wrong.
func LoginHandler(service *auth.Service) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var req loginRequest
		if err := utils.JsonDecodeBody(r, &req); err != nil {
			ae := utils.NewBadRequest("error json decoding body")
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}

		session, err := service.SignIn(r.Context(), req.Email, req.Password)
		if err != nil {
			ae := utils.NewUnauthorized(auth.ErrInvalidCredentials.Error())
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     auth.SessionCookie,
			Value:    session.Token,
			Path:     "/",
			Expires:  session.ExpiresAt,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		utils.RenderResponse(r, w, http.StatusOK, session)
	}
}

// LogoutHandler closes the session and clears the cookie, then the client
// goes back to the login screen.
func LogoutHandler(service *auth.Service) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		if token := auth.TokenFromRequest(r); token != "" {
			service.SignOut(token)
		}
		http.SetCookie(w, &http.Cookie{
			Name:     auth.SessionCookie,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})
		w.Header().Set("Location", auth.LoginPath)
		w.WriteHeader(http.StatusNoContent)
	}
}
