package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"cropadvisor-be/internal/logger"

	"go.uber.org/zap"
)

const esewaStatusComplete = "COMPLETE"

type esewaGateway struct {
	productCode string
	statusURL   string
	httpClient  *http.Client
}

// ----------------- Constructor -----------------

func NewESewaGateway(productCode, statusURL string, timeout time.Duration) Gateway {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &esewaGateway{
		productCode: productCode,
		statusURL:   statusURL,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

func (e *esewaGateway) Provider() Provider { return ProviderESewa }

// ----------------- Verify -----------------

func (e *esewaGateway) Verify(ctx context.Context, req VerifyRequest) (*VerifyResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("provider", string(ProviderESewa)),
		zap.String("transaction_uuid", req.TransactionID),
		zap.Float64("total_amount", req.Amount),
	)

	if req.TransactionID == "" || req.Amount <= 0 {
		return nil, fmt.Errorf("%w: transaction_uuid and total_amount are required", ErrInvalidRequest)
	}

	u, err := url.Parse(e.statusURL)
	if err != nil {
		log.Error("invalid eSewa status URL", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	q := u.Query()
	q.Set("product_code", e.productCode)
	q.Set("total_amount", strconv.FormatFloat(req.Amount, 'f', -1, 64))
	q.Set("transaction_uuid", req.TransactionID)
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		log.Error("failed building request", zap.Error(err))
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")

	log.Info("checking eSewa transaction status")

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		log.Error("eSewa request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("failed to read response body", zap.Error(err))
		return nil, fmt.Errorf("%w: read body: %v", ErrGatewayUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Error("eSewa returned non-success status",
			zap.Int("http_status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, fmt.Errorf("%w: esewa status %d", ErrGatewayUnavailable, resp.StatusCode)
	}

	var res esewaStatusResponse
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		log.Error("failed decoding eSewa response", zap.Error(err))
		return nil, fmt.Errorf("%w: decode: %v", ErrGatewayUnavailable, err)
	}

	result := &VerifyResult{
		Provider:      ProviderESewa,
		Status:        res.Status,
		TransactionID: req.TransactionID,
		ReferenceCode: res.TransactionCode,
		Amount:        req.Amount,
		Raw:           json.RawMessage(bodyBytes),
	}
	if res.TotalAmount > 0 {
		result.Amount = res.TotalAmount
	}
	if res.RefID != nil && result.ReferenceCode == "" {
		result.ReferenceCode = *res.RefID
	}

	if res.Status != esewaStatusComplete {
		log.Warn("eSewa transaction not complete", zap.String("status", res.Status))
		return result, fmt.Errorf("%w: status %s", ErrPaymentNotComplete, res.Status)
	}

	log.Info("eSewa transaction verified", zap.String("reference_code", result.ReferenceCode))
	return result, nil
}
