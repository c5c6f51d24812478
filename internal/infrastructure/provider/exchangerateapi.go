package provider

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"

	"currency-service/internal/application"
	"currency-service/internal/domain"
	"currency-service/internal/infrastructure/httpx"
)

const DefaultBaseURL = "https://v6.exchangerate-api.com"

var ErrMissingAPIKey = errors.New("exchangerate-api: missing api key")

// ExchangeRateAPI fetches single pair rates from exchangerate-api.com (v6 pair endpoint).
type ExchangeRateAPI struct {
	BaseURL string
	APIKey  string
	Client  *httpx.Client
}

var _ application.RateFetcher = (*ExchangeRateAPI)(nil)

type pairResp struct {
	Result             string  `json:"result"`
	ErrorType          string  `json:"error-type,omitempty"`
	BaseCode           string  `json:"base_code"`
	TargetCode         string  `json:"target_code"`
	ConversionRate     float64 `json:"conversion_rate"`
	TimeLastUpdateUnix int64   `json:"time_last_update_unix"`
}

func (p *ExchangeRateAPI) Provider() string { return domain.ProviderExchangeRateAPI }

func (p *ExchangeRateAPI) Configured() bool { return p.APIKey != "" }

func (p *ExchangeRateAPI) Fetch(ctx context.Context, from, to string) (float64, error) {
	if p.APIKey == "" {
		return 0, ErrMissingAPIKey
	}
	base := p.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return 0, fmt.Errorf("exchangerate-api: invalid base url: %w", err)
	}
	u = u.JoinPath("v6", p.APIKey, "pair", from, to)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, fmt.Errorf("exchangerate-api: create request: %w", err)
	}

	client := p.Client
	if client == nil {
		client = &httpx.Client{}
	}
	var body pairResp
	if err := client.DoJSON(ctx, req, &body); err != nil {
		return 0, fmt.Errorf("exchangerate-api: %w", err)
	}
	if body.Result != "success" {
		if body.ErrorType != "" {
			return 0, fmt.Errorf("exchangerate-api: %s", body.ErrorType)
		}
		return 0, fmt.Errorf("exchangerate-api: unsuccessful response %q", body.Result)
	}
	r := body.ConversionRate
	if r <= 0 || math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, fmt.Errorf("exchangerate-api: invalid rate %v for %s/%s", r, from, to)
	}
	return r, nil
}
