package forecast

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shelfmetrics/retail-optimizer/internal/config"
)

// Forecaster predicts one demand quantity per feature vector, in order.
type Forecaster interface {
	Predict(ctx context.Context, features []FeatureVector) ([]float64, error)
}

type modelClient struct {
	url    string
	client *http.Client
}

// NewModelClient talks to an external model service over HTTP. The service
// receives the feature vectors as JSON and returns one prediction per vector.
func NewModelClient(cfg config.ForecastConfig) Forecaster {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &modelClient{
		url:    cfg.ModelURL,
		client: &http.Client{Timeout: timeout},
	}
}

type predictRequest struct {
	Features []FeatureVector `json:"features"`
}

type predictResponse struct {
	Predictions []float64 `json:"predictions"`
}

func (c *modelClient) Predict(ctx context.Context, features []FeatureVector) ([]float64, error) {
	if len(features) == 0 {
		return nil, nil
	}

	payload, err := json.Marshal(predictRequest{Features: features})
	if err != nil {
		return nil, fmt.Errorf("encode predict request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("model request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model returned status %d", resp.StatusCode)
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode predict response: %w", err)
	}
	if len(out.Predictions) != len(features) {
		return nil, fmt.Errorf("model returned %d predictions for %d features", len(out.Predictions), len(features))
	}

	return out.Predictions, nil
}

// BaselineForecaster predicts the rolling mean for every day. Used when no
// model service is configured.
type BaselineForecaster struct{}

func (BaselineForecaster) Predict(ctx context.Context, features []FeatureVector) ([]float64, error) {
	predictions := make([]float64, len(features))
	for i, fv := range features {
		predictions[i] = fv.Rolling7
	}
	return predictions, nil
}
