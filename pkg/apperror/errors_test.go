package apperror

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMissingDateRangeError(t *testing.T) {
	start := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	err := NewMissingDateRangeError(start, end)
	assert.Equal(t, http.StatusBadRequest, err.Code)
	assert.Equal(t, KindMissingDateRange, err.Kind)

	details, ok := err.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "2023-04-01", details["suggested_start_date"])
	assert.Equal(t, "2024-03-15", details["suggested_end_date"])
}

func TestNewInvalidDateFormatError(t *testing.T) {
	err := NewInvalidDateFormatError("startDate", "01/02/2024")
	assert.Equal(t, http.StatusBadRequest, err.Code)
	assert.Equal(t, KindInvalidDateFormat, err.Kind)
	assert.Contains(t, err.Message, "startDate")
	assert.Contains(t, err.Message, "YYYY-MM-DD")
}

func TestNewDataIntegrityError(t *testing.T) {
	err := NewDataIntegrityError("multiple invoices reference work order x")
	assert.Equal(t, http.StatusInternalServerError, err.Code)
	assert.Equal(t, KindDataIntegrityViolation, err.Kind)
}

func TestNewStoreUnavailableError(t *testing.T) {
	err := NewStoreUnavailableError(errors.New("dial tcp: connection refused"))
	assert.Equal(t, http.StatusServiceUnavailable, err.Code)
	assert.Equal(t, KindStoreUnavailable, err.Kind)
	assert.Contains(t, err.Message, "connection refused")
}

func TestIsKind(t *testing.T) {
	err := NewDataIntegrityError("bad data")
	assert.True(t, IsKind(err, KindDataIntegrityViolation))
	assert.False(t, IsKind(err, KindStoreUnavailable))
	assert.False(t, IsKind(errors.New("plain"), KindDataIntegrityViolation))
}

func TestGetAppError_WrapsUnknown(t *testing.T) {
	appErr := GetAppError(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)

	original := NewNotFoundError("Customer")
	assert.Equal(t, original, GetAppError(original))
}
