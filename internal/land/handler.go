package land

import (
	"errors"
	"net/http"

	"cropadvisor-be/internal/logger"
	"cropadvisor-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Create handles POST /api/lands.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var input CreateLandInput
	if err := utils.DecodeJSON(r, &input); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	l, err := h.svc.Create(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]any{"success": true, "land": l})
}

// List handles GET /api/lands.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	lands, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "lands": lands})
}

// Get handles GET /api/lands/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ToUint(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteJSONError(w, "invalid land id", http.StatusBadRequest)
		return
	}

	l, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "land": l})
}

// Delete handles DELETE /api/lands/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ToUint(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteJSONError(w, "invalid land id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		utils.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, ErrInvalidInput):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrLandNotFound):
		utils.WriteJSONError(w, "land not found", http.StatusNotFound)
	default:
		logger.FromCtx(r.Context()).Error("unexpected land error", zap.Error(err))
		utils.WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
	}
}
