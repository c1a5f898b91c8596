package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeErrorResponse(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestHandleAppError_AppError(t *testing.T) {
	rec := httptest.NewRecorder()

	HandleAppError(rec, &AppError{
		StatusCode: http.StatusConflict,
		Code:       ErrCodeConflict,
		Message:    "Email already exists",
		Err:        errors.New("duplicate key"),
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	body := decodeErrorResponse(t, rec)
	assert.Equal(t, ErrCodeConflict, body.Code)
	assert.Equal(t, "Email already exists", body.Message)
}

func TestHandleAppError_WrappedAppError(t *testing.T) {
	rec := httptest.NewRecorder()

	inner := &AppError{
		StatusCode: http.StatusServiceUnavailable,
		Code:       ErrCodeInternal,
		Message:    "Database unreachable",
	}
	HandleAppError(rec, fmt.Errorf("health check: %w", inner))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, ErrCodeInternal, decodeErrorResponse(t, rec).Code)
}

func TestHandleAppError_PlainError(t *testing.T) {
	rec := httptest.NewRecorder()

	HandleAppError(rec, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeErrorResponse(t, rec)
	assert.Equal(t, ErrCodeInternal, body.Code)
	// The raw error text stays in the logs, not on the wire.
	assert.NotContains(t, body.Message, "boom")
}

func TestAppError_Error(t *testing.T) {
	withCause := &AppError{Message: "public message", Err: errors.New("cause")}
	assert.Equal(t, "cause", withCause.Error())

	withoutCause := &AppError{Message: "public message"}
	assert.Equal(t, "public message", withoutCause.Error())
}
