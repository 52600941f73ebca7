package license

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Domenick1991/carbooking/internal/domain"
	"github.com/Domenick1991/carbooking/internal/failure"
	"github.com/Domenick1991/carbooking/internal/obs"
	"github.com/Domenick1991/carbooking/internal/provider"
)

// Client talks to the Driving License API (POST /license/details).
type Client struct {
	http    *http.Client
	baseURL string
	logger  *slog.Logger
}

type detailsRequest struct {
	LicenseNumber string `json:"licenseNumber"`
}

type detailsResponse struct {
	LicenseNumber string `json:"drivingLicenseNumber"`
	OwnerName     string `json:"ownerName"`
	IssueDate     string `json:"issueDate"`
	ExpiryDate    string `json:"expiryDate"`
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

// GetLicense resolves a license number. Failures are *failure.Failure of
// kind Upstream.
func (c *Client) GetLicense(ctx context.Context, number string) (*domain.LicenseRecord, error) {
	masked := obs.MaskLicense(number)
	c.logger.Info("calling driving license api", "license", masked)

	resp, err := provider.PostJSON(ctx, c.http, c.baseURL+"/license/details", detailsRequest{LicenseNumber: number})
	if err != nil {
		c.logger.Error("driving license api unreachable", "license", masked, "error", err)
		return nil, failure.Upstream(failure.UpstreamTransport, "Failed to call Driving License API", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		c.logger.Warn("driving license not found", "license", masked)
		return nil, failure.Upstream(failure.UpstreamNotFound, "Driving license not found: "+number, nil)
	case resp.StatusCode == http.StatusBadRequest:
		msg := provider.ErrorMessage(resp)
		c.logger.Warn("bad request to driving license api", "license", masked, "error", msg)
		return nil, failure.Upstream(failure.UpstreamBadRequest, msg, nil)
	case resp.StatusCode >= http.StatusMultipleChoices:
		msg := provider.ErrorMessage(resp)
		c.logger.Error("driving license api error", "status", resp.StatusCode, "error", msg)
		if resp.StatusCode < http.StatusInternalServerError {
			return nil, failure.Upstream(failure.UpstreamBadRequest, "Driving License API error: "+msg, nil)
		}
		return nil, failure.Upstream(failure.UpstreamServerError, "Driving License API error: "+msg, nil)
	}

	var body detailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.logger.Error("decode driving license response", "license", masked, "error", err)
		return nil, failure.Upstream(failure.UpstreamTransport, "Failed to call Driving License API", err)
	}
	record, err := body.toDomain(number)
	if err != nil {
		c.logger.Error("malformed driving license response", "license", masked, "error", err)
		return nil, failure.Upstream(failure.UpstreamTransport, "Failed to call Driving License API", err)
	}
	return record, nil
}

func (r detailsResponse) toDomain(requested string) (*domain.LicenseRecord, error) {
	record := &domain.LicenseRecord{
		LicenseNumber: r.LicenseNumber,
		OwnerName:     r.OwnerName,
	}
	if record.LicenseNumber == "" {
		record.LicenseNumber = requested
	}
	var err error
	if record.IssueDate, err = optionalDate(r.IssueDate); err != nil {
		return nil, fmt.Errorf("issueDate: %w", err)
	}
	if record.ExpiryDate, err = optionalDate(r.ExpiryDate); err != nil {
		return nil, fmt.Errorf("expiryDate: %w", err)
	}
	return record, nil
}

func optionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return domain.ParseDate(s)
}
