package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap_KeepsCodeAndCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, ErrCodeStoreWriteFailed, "не удалось сохранить")

	assert.Equal(t, http.StatusServiceUnavailable, err.HTTPStatus)
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsStoreWriteFailed(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestIs_MatchesSentinelThroughWrapping(t *testing.T) {
	err := fmt.Errorf("service: %w", ErrGenerationFailed)

	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.True(t, IsGenerationFailed(err))
	assert.False(t, IsValidation(err))
}

func TestCodeOf_PlainError(t *testing.T) {
	assert.Equal(t, ErrCodeInternal, CodeOf(errors.New("boom")))
	assert.Equal(t, http.StatusBadRequest, Validation("bad").HTTPStatus)
	assert.Equal(t, http.StatusBadGateway, ErrGenerationFailed.HTTPStatus)
}
