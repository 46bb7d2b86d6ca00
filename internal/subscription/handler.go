package subscription

import (
	"errors"
	"net/http"

	"cropadvisor-be/internal/logger"
	"cropadvisor-be/internal/payment"
	"cropadvisor-be/internal/signature"
	"cropadvisor-be/internal/utils"

	"go.uber.org/zap"
)

type Handler struct {
	svc             Service
	khaltiPublicKey string
	esewaSigner     *signature.Signer
}

// NewHandler wires the subscription endpoints. esewaSigner holds the same
// secret used for checkout signatures; eSewa signs its redirect data with it.
func NewHandler(svc Service, khaltiPublicKey string, esewaSigner *signature.Signer) *Handler {
	return &Handler{svc: svc, khaltiPublicKey: khaltiPublicKey, esewaSigner: esewaSigner}
}

// ESewaVerify handles POST /api/esewa/verify.
func (h *Handler) ESewaVerify(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req ESewaVerifyRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Data == "" {
		utils.WriteJSONError(w, "data is required", http.StatusBadRequest)
		return
	}

	cb, err := payment.DecodeESewaCallback(req.Data, h.esewaSigner)
	switch {
	case errors.Is(err, signature.ErrMissingSecret):
		logger.FromCtx(r.Context()).Error("eSewa secret not configured")
		utils.WriteJSONError(w, "Server configuration error", http.StatusInternalServerError)
		return
	case errors.Is(err, payment.ErrInvalidSignature):
		logger.FromCtx(r.Context()).Warn("rejected eSewa callback", zap.Uint("user_id", userID), zap.Error(err))
		utils.WriteJSONError(w, "Invalid payment signature", http.StatusBadRequest)
		return
	case err != nil:
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := h.svc.Activate(r.Context(), ActivateInput{
		UserID:        userID,
		PlanID:        req.PlanID,
		BillingCycle:  req.BillingCycle,
		Provider:      payment.ProviderESewa,
		TransactionID: cb.TransactionUUID,
		Amount:        cb.TotalAmount,
	})
	if err != nil {
		h.writeActivateError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, VerifyResponse{
		Success:      true,
		Message:      "Payment verified and subscription activated",
		Subscription: item,
	})
}

// KhaltiVerify handles POST /api/khalti/verify.
func (h *Handler) KhaltiVerify(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req KhaltiVerifyRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	item, err := h.svc.Activate(r.Context(), ActivateInput{
		UserID:       userID,
		PlanID:       req.PlanID,
		BillingCycle: req.BillingCycle,
		Provider:     payment.ProviderKhalti,
		Token:        req.Token,
		Amount:       float64(req.Amount),
	})
	if err != nil {
		h.writeActivateError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, VerifyResponse{
		Success:      true,
		Message:      "Payment verified and subscription activated",
		Subscription: item,
	})
}

// KhaltiPublicKey handles GET /api/khalti/public-key.
func (h *Handler) KhaltiPublicKey(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"publicKey": h.khaltiPublicKey})
}

// Plans handles GET /api/plans.
func (h *Handler) Plans(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "plans": Plans()})
}

// List handles GET /api/subscriptions.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := h.svc.ListByUser(r.Context(), userID)
	if err != nil {
		utils.WriteJSONError(w, "failed to load subscriptions", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "subscriptions": items})
}

// Current handles GET /api/subscriptions/current.
func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	item, err := h.svc.Current(r.Context(), userID)
	if errors.Is(err, ErrNotFound) {
		utils.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "status": "none"})
		return
	}
	if err != nil {
		utils.WriteJSONError(w, "failed to load subscription", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "subscription": item})
}

func (h *Handler) writeActivateError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, payment.ErrInvalidRequest), errors.Is(err, ErrUnknownPlan):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, payment.ErrPaymentNotComplete):
		utils.WriteJSONError(w, "Payment verification failed", http.StatusBadRequest)
	case errors.Is(err, ErrAmountMismatch):
		utils.WriteJSONError(w, "Payment amount does not match", http.StatusBadRequest)
	case errors.Is(err, ErrTransactionClaimed):
		utils.WriteJSONError(w, "Transaction already used", http.StatusConflict)
	case errors.Is(err, payment.ErrGatewayUnavailable):
		utils.WriteJSONError(w, "Payment gateway unavailable", http.StatusBadGateway)
	default:
		logger.FromCtx(r.Context()).Error("unexpected activation error", zap.Error(err))
		utils.WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
	}
}
