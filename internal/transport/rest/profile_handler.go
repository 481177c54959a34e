package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"perfil/internal/domain"
	"perfil/internal/errfmt"
	"perfil/internal/transport/rest/middleware"
	"perfil/internal/validation"
)

type ProfileHandler struct {
	svc      domain.ProfileService
	history  domain.NotificationStore
	notifier domain.Notifier
}

func NewProfileHandler(svc domain.ProfileService, history domain.NotificationStore, notifier domain.Notifier) *ProfileHandler {
	return &ProfileHandler{
		svc:      svc,
		history:  history,
		notifier: notifier,
	}
}

func (h *ProfileHandler) Show(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	snapshot, err := h.svc.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			JSONError(w, http.StatusNotFound, "User not found")
			return
		}

		JSONError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{
		Message: "OK",
		Data:    snapshot,
	})
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input domain.ProfileFormInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if validationErrors := validation.Profile(input); len(validationErrors) > 0 {
		JSONValidationError(w, validationErrors)
		return
	}

	err := h.svc.Update(r.Context(), domain.ProfileUpdateRequest{
		ID:          userID,
		Name:        input.Name,
		OldPassword: input.OldPassword,
		NewPassword: input.NewPassword,
	})
	if err != nil {
		h.notifier.Notify(domain.Notification{
			Variant: domain.NotificationFailure,
			Title:   domain.NotificationTitleProfile,
			Message: errfmt.Normalize(err),
		})

		if errors.Is(err, domain.ErrInvalidCurrentPassword) {
			JSONError(w, http.StatusBadRequest, "Senha antiga incorreta.")
			return
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			JSONError(w, http.StatusNotFound, "User not found")
			return
		}

		JSONError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	h.notifier.Notify(domain.Notification{
		Variant: domain.NotificationSuccess,
		Title:   domain.NotificationTitleProfile,
		Message: "Perfil atualizado com sucesso!",
	})

	JSONSuccess(w, http.StatusOK, APIResponse{
		Message: "Profile updated successfully",
	})
}

func (h *ProfileHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserID(r.Context()); !ok {
		JSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	notifications, err := h.history.Latest(r.Context(), 50)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{
		Message: "OK",
		Data:    notifications,
	})
}
