package timeline

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

// Create handles POST /api/timelines.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var input TimelineInput
	if err := utils.DecodeJSON(r, &input); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	t, err := h.svc.Create(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]any{"success": true, "timeline": t})
}

// List handles GET /api/timelines. With ?scientific_name= it returns the
// single matching timeline.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if name := r.URL.Query().Get("scientific_name"); name != "" {
		t, err := h.svc.GetByScientificName(r.Context(), name)
		if err != nil {
			writeError(w, r, err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "timeline": t})
		return
	}

	timelines, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "timelines": timelines})
}

// Get handles GET /api/timelines/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ToUint(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteJSONError(w, "invalid timeline id", http.StatusBadRequest)
		return
	}

	t, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "timeline": t})
}

// Update handles PUT /api/timelines/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ToUint(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteJSONError(w, "invalid timeline id", http.StatusBadRequest)
		return
	}

	var input TimelineInput
	if err := utils.DecodeJSON(r, &input); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	t, err := h.svc.Update(r.Context(), id, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "timeline": t})
}

// Delete handles DELETE /api/timelines/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ToUint(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteJSONError(w, "invalid timeline id", http.StatusBadRequest)
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
	case errors.Is(err, ErrTimelineNotFound):
		utils.WriteJSONError(w, "timeline not found", http.StatusNotFound)
	case errors.Is(err, ErrCropNotFound):
		utils.WriteJSONError(w, "crop not found", http.StatusNotFound)
	case errors.Is(err, ErrDuplicateTimeline):
		utils.WriteJSONError(w, "timeline already exists for crop", http.StatusConflict)
	default:
		logger.FromCtx(r.Context()).Error("unexpected timeline error", zap.Error(err))
		utils.WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
	}
}
