package failure

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailure_AsThroughWrapping(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("confirm booking: %w", Upstream(UpstreamTransport, "Failed to call Car Pricing API", cause))

	f, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, KindUpstream, f.Kind)
	assert.Equal(t, UpstreamTransport, f.Upstream)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindUpstream, KindOf(err))
	assert.Equal(t, Kind(""), KindOf(cause))
}

func TestFailure_ErrorListsFields(t *testing.T) {
	f := Validation("Request contains invalid fields", []FieldError{
		{Field: "age", Message: "Customer must be at least 18 years old"},
		{Field: "endDate", Message: "End date is required"},
	})
	assert.Equal(t, "Request contains invalid fields (age: Customer must be at least 18 years old; endDate: End date is required)", f.Error())
	assert.Equal(t, "not here", NotFound("not here").Error())
}

func TestFailure_ClientFault(t *testing.T) {
	assert.True(t, Validation("x", nil).ClientFault())
	assert.True(t, BusinessRule("x").ClientFault())
	assert.True(t, NotFound("x").ClientFault())
	assert.True(t, Upstream(UpstreamNotFound, "x", nil).ClientFault())
	assert.True(t, Upstream(UpstreamBadRequest, "x", nil).ClientFault())
	assert.False(t, Upstream(UpstreamServerError, "x", nil).ClientFault())
	assert.False(t, Upstream(UpstreamTransport, "x", nil).ClientFault())
	assert.False(t, Persistence("x", nil).ClientFault())
}
