package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Domenick1991/carbooking/internal/domain"
	"github.com/Domenick1991/carbooking/internal/failure"
	"github.com/Domenick1991/carbooking/internal/obs"
	"github.com/Domenick1991/carbooking/internal/provider"
	"github.com/shopspring/decimal"
)

// Client talks to the Car Rental Pricing API (POST /rental/rate).
type Client struct {
	http    *http.Client
	baseURL string
	logger  *slog.Logger
}

type rateRequest struct {
	Category string `json:"category"`
}

type rateResponse struct {
	Category   string          `json:"category"`
	RatePerDay decimal.NullDecimal `json:"ratePerDay"`
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = obs.Discard()
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// GetRate returns the daily rate of a car category. An absent or negative
// rate is treated as a malformed response.
func (c *Client) GetRate(ctx context.Context, category string) (*domain.RateQuote, error) {
	resp, err := provider.PostJSON(ctx, c.http, c.baseURL+"/rental/rate", rateRequest{Category: category})
	if err != nil {
		c.logger.Error("car pricing api unreachable", "category", category, "error", err)
		return nil, failure.Upstream(failure.UpstreamTransport, "Failed to call Car Pricing API", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		msg := provider.ErrorMessage(resp)
		c.logger.Warn("bad request to car pricing api", "category", category, "error", msg)
		return nil, failure.Upstream(failure.UpstreamBadRequest, msg, nil)
	case resp.StatusCode >= http.StatusMultipleChoices:
		msg := provider.ErrorMessage(resp)
		c.logger.Error("car pricing api error", "status", resp.StatusCode, "error", msg)
		if resp.StatusCode < http.StatusInternalServerError {
			return nil, failure.Upstream(failure.UpstreamBadRequest, "Car Pricing API error: "+msg, nil)
		}
		return nil, failure.Upstream(failure.UpstreamServerError, "Car Pricing API error: "+msg, nil)
	}

	var body rateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.logger.Error("decode car pricing response", "category", category, "error", err)
		return nil, failure.Upstream(failure.UpstreamTransport, "Failed to call Car Pricing API", err)
	}
	if err := checkRate(body.RatePerDay); err != nil {
		c.logger.Error("malformed car pricing response", "category", category, "error", err)
		return nil, failure.Upstream(failure.UpstreamTransport, "Failed to call Car Pricing API", err)
	}
	if body.Category == "" {
		body.Category = category
	}
	rate := body.RatePerDay.Decimal
	c.logger.Debug("rate retrieved", "category", body.Category, "rate", rate.String())
	return &domain.RateQuote{Category: body.Category, RatePerDay: rate}, nil
}

func checkRate(rate decimal.NullDecimal) error {
	switch {
	case !rate.Valid:
		return errors.New("missing ratePerDay")
	case rate.Decimal.IsNegative():
		return fmt.Errorf("negative ratePerDay %s", rate.Decimal.String())
	}
	return nil
}
