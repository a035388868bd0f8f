package errors

import (
	"net/http"
	"testing"

	"agritrace/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError_WithDetailsMatchesOriginal(t *testing.T) {
	detailed := ErrValidationFailed.WithDetails("missing required fields: productType")

	assert.True(t, errors.Is(detailed, ErrValidationFailed))
	assert.Equal(t, "missing required fields: productType", detailed.Details())
	assert.Equal(t, ErrValidationFailed.Message(), detailed.Message())

	// The predefined error itself stays detail-free.
	assert.Empty(t, ErrValidationFailed.Details())
}

func TestBaseError_WrapMessageKeepsIdentity(t *testing.T) {
	wrapped := ErrProductNotFound.WrapMessage("loading history")

	assert.True(t, errors.Is(wrapped, ErrProductNotFound))

	var appErr AppError
	require.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode())
	assert.Equal(t, "PRODUCT_NOT_FOUND", appErr.ErrorCode())
}

func TestBaseError_DistinctCodesDoNotMatch(t *testing.T) {
	assert.False(t, errors.Is(ErrProductNotFound, ErrDuplicateProduct))
}
