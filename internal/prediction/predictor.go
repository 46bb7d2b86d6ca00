package prediction

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

// Predictor scores a soil reading and names the best crop for it.
type Predictor interface {
	Predict(ctx context.Context, req PredictRequest) (*PredictResponse, error)
}

type httpPredictor struct {
	url        string
	httpClient *http.Client
}

// NewHTTPPredictor calls a model server that accepts PredictRequest as JSON
// and answers {"recommended_crop": "..."}.
func NewHTTPPredictor(url string, timeout time.Duration) Predictor {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &httpPredictor{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (p *httpPredictor) Predict(ctx context.Context, req PredictRequest) (*PredictResponse, error) {
	log := logger.FromCtx(ctx).With(zap.String("predictor_url", p.url))

	jsonBody, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewBuffer(jsonBody))
	if err != nil {
		log.Error("failed creating request", zap.Error(err))
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		log.Error("predictor request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrPredictorUnavailable, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrPredictorUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Error("predictor returned error",
			zap.Int("http_status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, fmt.Errorf("%w: status %d", ErrPredictorUnavailable, resp.StatusCode)
	}

	var res PredictResponse
	if err := json.Unmarshal(bodyBytes, &res); err != nil || res.RecommendedCrop == "" {
		log.Error("unexpected predictor response", zap.ByteString("response", bodyBytes))
		return nil, fmt.Errorf("%w: no recommended_crop in response", ErrPredictorUnavailable)
	}

	return &res, nil
}
