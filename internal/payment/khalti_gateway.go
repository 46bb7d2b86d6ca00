package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"cropadvisor-be/internal/logger"

	"go.uber.org/zap"
)

const khaltiStateCompleted = "Completed"

type khaltiGateway struct {
	secretKey  string
	verifyURL  string
	httpClient *http.Client
}

// ----------------- Constructor -----------------

func NewKhaltiGateway(secretKey, verifyURL string, timeout time.Duration) Gateway {
	if secretKey == "" {
		logger.L().Warn("Khalti secret key is empty")
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &khaltiGateway{
		secretKey:  secretKey,
		verifyURL:  verifyURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (k *khaltiGateway) Provider() Provider { return ProviderKhalti }

// ----------------- Verify -----------------

func (k *khaltiGateway) Verify(ctx context.Context, req VerifyRequest) (*VerifyResult, error) {
	amount := int64(req.Amount)
	log := logger.FromCtx(ctx).With(
		zap.String("provider", string(ProviderKhalti)),
		zap.Int64("amount_paisa", amount),
	)

	if req.Token == "" || amount <= 0 {
		return nil, fmt.Errorf("%w: token and amount are required", ErrInvalidRequest)
	}
	if k.secretKey == "" {
		log.Error("Khalti secret key not configured")
		return nil, fmt.Errorf("%w: not configured", ErrGatewayUnavailable)
	}

	jsonBody, err := json.Marshal(map[string]any{
		"token":  req.Token,
		"amount": amount,
	})
	if err != nil {
		log.Error("failed to marshal verify request", zap.Error(err))
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, k.verifyURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		log.Error("failed creating request", zap.Error(err))
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Key "+k.secretKey)
	httpReq.Header.Set("Content-Type", "application/json")

	log.Info("sending verify request to Khalti")

	resp, err := k.httpClient.Do(httpReq)
	if err != nil {
		log.Error("Khalti request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("failed to read response body", zap.Error(err))
		return nil, fmt.Errorf("%w: read body: %v", ErrGatewayUnavailable, err)
	}

	// Khalti answers a rejected token with 4xx and a JSON detail, which is a
	// payment outcome, not an outage.
	if resp.StatusCode >= http.StatusInternalServerError {
		log.Error("Khalti returned server error",
			zap.Int("http_status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, fmt.Errorf("%w: khalti status %d", ErrGatewayUnavailable, resp.StatusCode)
	}

	var res khaltiVerifyResponse
	if resp.StatusCode == http.StatusOK {
		if err := json.Unmarshal(bodyBytes, &res); err != nil {
			log.Error("failed decoding Khalti response", zap.Error(err))
			return nil, fmt.Errorf("%w: decode: %v", ErrGatewayUnavailable, err)
		}
	}

	result := &VerifyResult{
		Provider:      ProviderKhalti,
		Status:        res.State.Name,
		TransactionID: res.Idx,
		ReferenceCode: res.Idx,
		Amount:        float64(res.Amount),
		Raw:           json.RawMessage(bodyBytes),
	}

	if resp.StatusCode != http.StatusOK || res.State.Name != khaltiStateCompleted {
		log.Warn("Khalti payment not completed",
			zap.Int("http_status", resp.StatusCode),
			zap.String("state", res.State.Name),
		)
		return result, fmt.Errorf("%w: khalti state %q", ErrPaymentNotComplete, res.State.Name)
	}

	log.Info("Khalti payment verified", zap.String("idx", res.Idx))
	return result, nil
}
