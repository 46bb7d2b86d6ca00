package signature

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"cropadvisor-be/internal/logger"
	"cropadvisor-be/internal/utils"
)

const (
	msgConfiguration = "Server configuration error"
	msgServer        = "Server error during signature generation"
)

type Handler struct {
	signer *Signer
}

func NewHandler(signer *Signer) *Handler {
	return &Handler{signer: signer}
}

// GenerateSignature handles POST /generate-signature.
func (h *Handler) GenerateSignature(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context()).With(
		zap.String("layer", "handler"),
		zap.String("method", "GenerateSignature"),
	)

	// Checked before the body is read.
	if !h.signer.Configured() {
		log.Error("signing secret is not configured")
		writeError(w, http.StatusInternalServerError, msgConfiguration)
		return
	}

	message, err := decodeMessage(r)
	if err != nil {
		log.Warn("rejecting signature request", zap.Error(err))
		writeError(w, http.StatusBadRequest, ErrEmptyMessage.Error())
		return
	}

	sig, err := h.signer.Sign(message)
	switch {
	case errors.Is(err, ErrEmptyMessage):
		writeError(w, http.StatusBadRequest, ErrEmptyMessage.Error())
		return
	case errors.Is(err, ErrMissingSecret):
		log.Error("signing secret is not configured")
		writeError(w, http.StatusInternalServerError, msgConfiguration)
		return
	case err != nil:
		log.Error("signature generation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, msgServer)
		return
	}

	log.Debug("signature generated", zap.Int("message_len", len(message)))
	utils.WriteJSON(w, http.StatusOK, SignatureResponse{Success: true, Signature: sig})
}

func decodeMessage(r *http.Request) (string, error) {
	var req SignatureRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		return "", err
	}
	if len(req.Message) == 0 || string(req.Message) == "null" {
		return "", ErrEmptyMessage
	}

	var message string
	if err := json.Unmarshal(req.Message, &message); err != nil {
		return "", ErrEmptyMessage
	}
	if message == "" {
		return "", ErrEmptyMessage
	}
	return message, nil
}

func writeError(w http.ResponseWriter, code int, message string) {
	utils.WriteJSON(w, code, ErrorResponse{Success: false, Message: message})
}
