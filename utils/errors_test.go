package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorCodes(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ValidationError("bad", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, AuthorizationError("no").Code)
	assert.Equal(t, http.StatusForbidden, ForbiddenError("no").Code)
	assert.Equal(t, http.StatusNotFound, NotFoundError("gone").Code)
	assert.Equal(t, http.StatusConflict, ConflictError("dup").Code)
	assert.Equal(t, http.StatusBadGateway, ExternalServiceError("down", ReasonCourierUnreachable, nil).Code)
}

func TestGetAppErrorThroughWrapping(t *testing.T) {
	inner := ConflictError("payment already final")
	wrapped := WrapError(inner, "confirm failed")

	appErr := GetAppError(wrapped)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusConflict, appErr.Code)
	assert.True(t, IsConflictError(wrapped))
	assert.False(t, IsNotFoundError(wrapped))
}

func TestGetAppErrorPlainError(t *testing.T) {
	assert.Nil(t, GetAppError(errors.New("plain")))
	assert.False(t, IsConflictError(errors.New("plain")))
}

func TestExternalServiceErrorKeepsReasonAndCause(t *testing.T) {
	cause := fmt.Errorf("dial tcp: timeout")
	err := ExternalServiceError("Courier did not respond", ReasonCourierUnreachable, cause)

	assert.Equal(t, ReasonCourierUnreachable, err.Reason)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "Courier did not respond")
	assert.Contains(t, err.Error(), "timeout")
}

func TestWrapErrorNil(t *testing.T) {
	assert.Nil(t, WrapError(nil, "context"))
}
