// Package stub serves stand-in Driving License and Car Pricing APIs for local
// runs. Both speak the same wire contract as the real providers.
package stub

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Domenick1991/carbooking/internal/domain"
	"github.com/Domenick1991/carbooking/internal/obs"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// LicenseRegistry holds the license records the stub answers with.
type LicenseRegistry struct {
	mu      sync.RWMutex
	records map[string]domain.LicenseRecord
}

// NewLicenseRegistry seeds three records relative to today: a valid license,
// one issued less than a year ago and an expired one.
func NewLicenseRegistry(today time.Time) *LicenseRegistry {
	today = domain.DateOf(today)
	r := &LicenseRegistry{records: make(map[string]domain.LicenseRecord)}
	r.Put(domain.LicenseRecord{LicenseNumber: "DL123456789", OwnerName: "John Doe", ExpiryDate: domain.AddYears(today, 2)})
	r.Put(domain.LicenseRecord{LicenseNumber: "DL456789123", OwnerName: "Alice Smith", ExpiryDate: domain.AddYears(today, 10)})
	r.Put(domain.LicenseRecord{LicenseNumber: "DL999888777", OwnerName: "Bob Johnson", ExpiryDate: today.AddDate(0, -1, 0)})
	return r
}

func (r *LicenseRegistry) Put(record domain.LicenseRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.LicenseNumber] = record
}

func (r *LicenseRegistry) Get(number string) (domain.LicenseRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[number]
	return record, ok
}

// DefaultRates is the daily rate per category.
func DefaultRates() map[domain.CarCategory]decimal.Decimal {
	return map[domain.CarCategory]decimal.Decimal{
		domain.CarCategorySmall:      decimal.RequireFromString("25.00"),
		domain.CarCategoryMedium:     decimal.RequireFromString("45.99"),
		domain.CarCategoryLarge:      decimal.RequireFromString("65.00"),
		domain.CarCategoryExtraLarge: decimal.RequireFromString("95.00"),
	}
}

type Handler struct {
	licenses *LicenseRegistry
	rates    map[domain.CarCategory]decimal.Decimal
	now      func() time.Time
	logger   *slog.Logger
}

func NewHandler(licenses *LicenseRegistry, rates map[domain.CarCategory]decimal.Decimal, logger *slog.Logger) *Handler {
	return &Handler{licenses: licenses, rates: rates, now: time.Now, logger: logger}
}

// Register mounts POST /stub/driving/license/details and
// POST /stub/pricing/rental/rate.
func (h *Handler) Register(router gin.IRouter) {
	router.POST("/stub/driving/license/details", h.licenseDetails)
	router.POST("/stub/pricing/rental/rate", h.rentalRate)
}

type licenseRequest struct {
	LicenseNumber string `json:"licenseNumber"`
}

type licenseResponse struct {
	OwnerName  string `json:"ownerName"`
	ExpiryDate string `json:"expiryDate"`
}

func (h *Handler) licenseDetails(c *gin.Context) {
	var req licenseRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.LicenseNumber) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "licenseNumber is required"})
		return
	}

	masked := obs.MaskLicense(req.LicenseNumber)
	record, ok := h.licenses.Get(req.LicenseNumber)
	if !ok {
		h.logger.Warn("stub license not found", "license", masked)
		c.JSON(http.StatusNotFound, gin.H{"error": "Driving license not found"})
		return
	}
	if record.ExpiryDate.Before(domain.DateOf(h.now())) {
		h.logger.Warn("stub license expired", "license", masked)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Input/ Driving license expired"})
		return
	}

	c.JSON(http.StatusOK, licenseResponse{
		OwnerName:  record.OwnerName,
		ExpiryDate: record.ExpiryDate.Format(domain.DateLayout),
	})
}

type rateRequest struct {
	Category *string `json:"category"`
}

type rateResponse struct {
	Category   string          `json:"category"`
	RatePerDay decimal.Decimal `json:"ratePerDay"`
}

func (h *Handler) rentalRate(c *gin.Context) {
	var req rateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Category == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category is required"})
		return
	}
	normalized := strings.ToUpper(strings.TrimSpace(*req.Category))
	if normalized == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category cannot be blank"})
		return
	}

	rate, ok := h.rates[domain.CarCategory(normalized)]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid car category"})
		return
	}
	c.JSON(http.StatusOK, rateResponse{Category: normalized, RatePerDay: rate})
}
