package crop

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

// Create handles POST /api/crops.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var input CropInput
	if err := utils.DecodeJSON(r, &input); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.svc.Create(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]any{"success": true, "crop": c})
}

// List handles GET /api/crops?category=&season=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	crops, err := h.svc.List(r.Context(), ListFilter{
		Category: r.URL.Query().Get("category"),
		Season:   r.URL.Query().Get("season"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "crops": crops})
}

// Get handles GET /api/crops/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ToUint(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteJSONError(w, "invalid crop id", http.StatusBadRequest)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "crop": c})
}

// Update handles PUT /api/crops/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ToUint(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteJSONError(w, "invalid crop id", http.StatusBadRequest)
		return
	}

	var input CropInput
	if err := utils.DecodeJSON(r, &input); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.svc.Update(r.Context(), id, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "crop": c})
}

// Delete handles DELETE /api/crops/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ToUint(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteJSONError(w, "invalid crop id", http.StatusBadRequest)
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
	case errors.Is(err, ErrInvalidInput):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrCropNotFound):
		utils.WriteJSONError(w, "crop not found", http.StatusNotFound)
	case errors.Is(err, ErrDuplicateCrop):
		utils.WriteJSONError(w, "crop already exists", http.StatusConflict)
	default:
		logger.FromCtx(r.Context()).Error("unexpected crop error", zap.Error(err))
		utils.WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
	}
}
