package errors_utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Kind_Status(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected int
	}{
		{KindInvalidID, http.StatusBadRequest},
		{KindValidation, http.StatusUnprocessableEntity},
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusConflict},
		{KindForbidden, http.StatusForbidden},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindDependencyUnavailable, http.StatusInternalServerError},
		{KindCreateFailed, http.StatusInternalServerError},
		{KindUpdateFailed, http.StatusInternalServerError},
		{KindDeleteFailed, http.StatusInternalServerError},
		{KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.Status())
		})
	}
}

func Test_KindOf_FindsAppErrorInChain(t *testing.T) {
	cause := errors.New("connection refused")
	wrapped := fmt.Errorf("loading vendor: %w", DependencyUnavailable("Database is unavailable", cause))

	assert.Equal(t, KindDependencyUnavailable, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindDependencyUnavailable))
	assert.ErrorIs(t, wrapped, cause)

	assert.Equal(t, KindInternal, KindOf(cause))
	assert.False(t, IsKind(nil, KindInternal))
}

func Test_AppError_Error_IncludesCause(t *testing.T) {
	assert.Equal(t, "Vendor not found", NotFound("Vendor not found").Error())
	assert.Equal(
		t,
		"Failed to create vendor: disk full",
		CreateFailed("Failed to create vendor", errors.New("disk full")).Error(),
	)
}

func Test_RespondWithError_HidesWrappedCause(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		expectedStatus  int
		expectedCode    Kind
		expectedMessage string
	}{
		{
			name:            "conflict",
			err:             Conflict("Cannot remove the last owner"),
			expectedStatus:  http.StatusConflict,
			expectedCode:    KindConflict,
			expectedMessage: "Cannot remove the last owner",
		},
		{
			name:            "wrapped dependency failure",
			err:             DependencyUnavailable("Failed to load members", errors.New("secret dsn")),
			expectedStatus:  http.StatusInternalServerError,
			expectedCode:    KindDependencyUnavailable,
			expectedMessage: "Failed to load members",
		},
		{
			name:            "plain error",
			err:             errors.New("secret dsn"),
			expectedStatus:  http.StatusInternalServerError,
			expectedCode:    KindInternal,
			expectedMessage: "Internal server error",
		},
	}

	gin.SetMode(gin.TestMode)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(w)
			ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			RespondWithError(ctx, tt.err)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NotContains(t, w.Body.String(), "secret dsn")

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, string(tt.expectedCode), body["code"])
			assert.Equal(t, tt.expectedMessage, body["error"])
		})
	}
}
