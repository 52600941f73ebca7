package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/carbooking/internal/failure"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Timestamp   time.Time            `json:"timestamp"`
	Status      int                  `json:"status"`
	Error       string               `json:"error"`
	Message     string               `json:"message"`
	FieldErrors []failure.FieldError `json:"fieldErrors,omitempty"`
}

// statusOf maps a failure to an HTTP status. Provider 4xx answers stay
// client errors; provider outages become 502.
func statusOf(f *failure.Failure) (int, string) {
	switch f.Kind {
	case failure.KindValidation:
		return http.StatusBadRequest, "Validation Failed"
	case failure.KindBusinessRule:
		return http.StatusBadRequest, "Booking Error"
	case failure.KindNotFound:
		return http.StatusNotFound, "Not Found"
	case failure.KindUpstream:
		switch f.Upstream {
		case failure.UpstreamNotFound:
			return http.StatusNotFound, "Upstream Error"
		case failure.UpstreamBadRequest:
			return http.StatusBadRequest, "Upstream Error"
		default:
			return http.StatusBadGateway, "Upstream Error"
		}
	default:
		return http.StatusInternalServerError, "Internal Server Error"
	}
}

func (h *BookingHandler) writeError(c *gin.Context, err error) {
	f, ok := failure.As(err)
	if !ok {
		f = failure.Persistence("Unexpected error", err)
	}

	status, title := statusOf(f)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "status", status, "error", err)
	} else {
		h.logger.Warn("request rejected", "status", status, "error", f.Error())
	}

	c.JSON(status, errorResponse{
		Timestamp:   time.Now().UTC(),
		Status:      status,
		Error:       title,
		Message:     f.Message,
		FieldErrors: f.Fields,
	})
}
