package prediction

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

// Predict handles POST /api/crops/predict.
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	var req PredictRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	res, err := h.svc.Predict(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, res)
}

// Save handles POST /api/predictions.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	var input PredictionInput
	if err := utils.DecodeJSON(r, &input); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, err := h.svc.Save(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]any{"success": true, "prediction": p})
}

// List handles GET /api/predictions.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	predictions, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "predictions": predictions})
}

// Get handles GET /api/predictions/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "invalid prediction id")
	if !ok {
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "prediction": p})
}

// Update handles PUT /api/predictions/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "invalid prediction id")
	if !ok {
		return
	}

	var input PredictionInput
	if err := utils.DecodeJSON(r, &input); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, err := h.svc.Update(r.Context(), id, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "prediction": p})
}

// Delete handles DELETE /api/predictions/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "invalid prediction id")
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Select handles POST /api/predictions/select.
func (h *Handler) Select(w http.ResponseWriter, r *http.Request) {
	var input SelectCropInput
	if err := utils.DecodeJSON(r, &input); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	sc, err := h.svc.Select(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]any{"success": true, "selected": sc})
}

// LatestSelection handles GET /api/predictions/{id}/selection.
func (h *Handler) LatestSelection(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "invalid prediction id")
	if !ok {
		return
	}

	sc, err := h.svc.LatestSelection(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "selected": sc})
}

// ListSelections handles GET /api/selected-crops.
func (h *Handler) ListSelections(w http.ResponseWriter, r *http.Request) {
	selections, err := h.svc.ListSelections(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "selected_crops": selections})
}

// UpdateSelection handles PUT /api/selected-crops/{id}.
func (h *Handler) UpdateSelection(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "invalid selected crop id")
	if !ok {
		return
	}

	var input UpdateSelectionInput
	if err := utils.DecodeJSON(r, &input); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	sc, err := h.svc.UpdateSelection(r.Context(), id, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "selected": sc})
}

// DeleteSelection handles DELETE /api/selected-crops/{id}.
func (h *Handler) DeleteSelection(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "invalid selected crop id")
	if !ok {
		return
	}

	if err := h.svc.DeleteSelection(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}

func idParam(w http.ResponseWriter, r *http.Request, msg string) (uint, bool) {
	id, err := utils.ToUint(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteJSONError(w, msg, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		utils.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, ErrInvalidInput):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrPredictionNotFound):
		utils.WriteJSONError(w, "prediction not found", http.StatusNotFound)
	case errors.Is(err, ErrSelectionNotFound):
		utils.WriteJSONError(w, "selected crop not found", http.StatusNotFound)
	case errors.Is(err, ErrPredictorUnavailable):
		utils.WriteJSONError(w, "Prediction failed", http.StatusBadGateway)
	default:
		logger.FromCtx(r.Context()).Error("unexpected prediction error", zap.Error(err))
		utils.WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
	}
}
