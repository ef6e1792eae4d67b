package api

import (
	"errors"
	"net/http"

	"github.com/rumbahq/rumba/internal/auth"
	"github.com/rumbahq/rumba/internal/middleware"
	"github.com/rumbahq/rumba/internal/models"
	"github.com/rumbahq/rumba/internal/service"
)

func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in models.RegisterInput
	if err := decodeJSON(r, &in); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := a.authSvc.Register(r.Context(), &in)
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, session)
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &in); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := a.authSvc.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

// handleCurrentUser serves both GET /auth/verify and GET /auth/profile:
// the auth middleware has already loaded the account.
func (a *API) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	respondJSON(w, http.StatusOK, map[string]*models.User{"user": user})
}

func (a *API) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var in service.ProfileInput
	if err := decodeJSON(r, &in); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := a.authSvc.UpdateProfile(r.Context(), middleware.GetUserID(r.Context()), &in)
	if err != nil {
		if errors.Is(err, auth.ErrEmailExists) {
			respondMessage(w, http.StatusBadRequest, "Email already in use")
			return
		}
		a.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]*models.User{"user": user})
}

func (a *API) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var in struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := decodeJSON(r, &in); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := a.authSvc.ChangePassword(r.Context(), middleware.GetUserID(r.Context()), in.CurrentPassword, in.NewPassword)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondMessage(w, http.StatusUnauthorized, "Current password is incorrect")
			return
		}
		a.respondServiceError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Password updated successfully")
}
