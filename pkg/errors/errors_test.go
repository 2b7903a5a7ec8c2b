package errors_test

import (
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/agentstation/shelfsync/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "target_count",
			Message: "must be positive",
		}
		assert.Equal(t, "validation failed for field target_count: must be positive", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "invalid configuration"}
		assert.Equal(t, "validation failed: invalid configuration", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})
}

func TestAPIError(t *testing.T) {
	tests := []struct {
		status      int
		rateLimited bool
		unavailable bool
		notFound    bool
	}{
		{status: 429, rateLimited: true},
		{status: 502, unavailable: true},
		{status: 404, notFound: true},
		{status: 400},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status %d", tt.status), func(t *testing.T) {
			err := &pkgerrors.APIError{Provider: "poizon", StatusCode: tt.status, Message: "boom"}
			assert.Contains(t, err.Error(), "poizon")
			assert.Contains(t, err.Error(), fmt.Sprint(tt.status))
			assert.Equal(t, tt.rateLimited, pkgerrors.IsRateLimited(err))
			assert.Equal(t, tt.unavailable, pkgerrors.IsProviderUnavailable(err))
			assert.Equal(t, tt.notFound, pkgerrors.IsNotFound(err))
		})
	}

	t.Run("unwraps to cause", func(t *testing.T) {
		base := errors.New("connection reset")
		err := &pkgerrors.APIError{Provider: "woocommerce", Message: "request failed", Err: base}
		assert.Equal(t, "API error from woocommerce: request failed", err.Error())
		assert.True(t, errors.Is(err, base))
		assert.False(t, pkgerrors.IsNotFound(err))
	})
}

func TestRetryError(t *testing.T) {
	last := &pkgerrors.APIError{Provider: "poizon", StatusCode: 503, Message: "busy"}
	err := pkgerrors.NewRetryError("search page 2", 5, last)

	assert.Equal(t, "search page 2 failed after 5 attempts: API error from poizon (status 503): busy", err.Error())
	assert.True(t, pkgerrors.IsRetriesExhausted(err))
	assert.True(t, pkgerrors.IsProviderUnavailable(err), "retry error must unwrap to the last attempt's error")

	var apiErr *pkgerrors.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 503, apiErr.StatusCode)
}

func TestUpsertError(t *testing.T) {
	err := pkgerrors.NewUpsertError("FZ1234-77", 400, "invalid image")
	assert.Equal(t, "upsert of FZ1234-77 rejected (status 400): invalid image", err.Error())

	err = pkgerrors.NewUpsertError("FZ1234-77", 0, "timeout")
	assert.Equal(t, "upsert of FZ1234-77 failed: timeout", err.Error())
}

func TestWrapHelpers(t *testing.T) {
	base := errors.New("disk full")

	assert.Nil(t, pkgerrors.WrapIO("write", "/tmp/x", nil))
	assert.Nil(t, pkgerrors.WrapResource("create", "product", "1", nil))
	assert.Nil(t, pkgerrors.WrapParse("yaml", "rules.yaml", nil))

	ioErr := pkgerrors.WrapIO("write", "/tmp/x", base)
	assert.True(t, errors.Is(ioErr, base))
	assert.Equal(t, "IO error during write of /tmp/x: disk full", ioErr.Error())

	resErr := pkgerrors.WrapResource("create", "product", "1", base)
	assert.Equal(t, "failed to create product 1: disk full", resErr.Error())

	parseErr := pkgerrors.WrapParse("yaml", "rules.yaml", base)
	assert.Equal(t, "parse error in yaml file rules.yaml: disk full", parseErr.Error())

	cfgErr := pkgerrors.NewConfigError("pricing", "unknown mode", base)
	assert.Equal(t, "configuration error in pricing: unknown mode", cfgErr.Error())
	assert.True(t, errors.Is(cfgErr, base))
}
