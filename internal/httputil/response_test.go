package httputil

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

	apperrors "github.com/shopfloor/shopfloor/internal/errors"
	"github.com/shopfloor/shopfloor/internal/validation"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHandleErrorGin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "not found",
			err:            apperrors.Wrap(apperrors.ErrNotFound, "machine not found"),
			expectedStatus: http.StatusNotFound,
			expectedError:  "not_found",
		},
		{
			name:           "conflict",
			err:            apperrors.Wrap(apperrors.ErrConflict, "user with this email already exists"),
			expectedStatus: http.StatusConflict,
			expectedError:  "conflict",
		},
		{
			name:           "invalid input",
			err:            fmt.Errorf("bad column: %w", apperrors.ErrInvalidInput),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  "invalid_input",
		},
		{
			name:           "unauthorized",
			err:            apperrors.Wrap(apperrors.ErrUnauthorized, "invalid credentials"),
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "unauthorized",
		},
		{
			name:           "forbidden",
			err:            apperrors.ErrForbidden,
			expectedStatus: http.StatusForbidden,
			expectedError:  "forbidden",
		},
		{
			name:           "internal",
			err:            errors.New("connection reset"),
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			HandleErrorGin(c, tt.err, nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedError, decode(t, w).Error)
		})
	}

	t.Run("internal details hidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		HandleErrorGin(c, errors.New("pq: password authentication failed"), nil)

		assert.NotContains(t, w.Body.String(), "pq:")
	})

	t.Run("violations rendered per field", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		v := validation.NewViolations()
		v.Add("street", validation.RequiredElement{Code: "STREET_REQUIRED", Message: "Street is required"})
		v.Add("city", validation.RequiredElement{Code: "CITY_REQUIRED", Message: "City is required"})

		HandleErrorGin(c, validation.NewInformationRequiredError("site", v), nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		body := decode(t, w)
		assert.Equal(t, "validation_error", body.Error)
		assert.Equal(t, map[string]string{
			"street": "Street is required",
			"city":   "City is required",
		}, body.Fields)
	})

	t.Run("nil error writes nothing", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		HandleErrorGin(c, nil, nil)

		assert.Empty(t, w.Body.String())
	})
}

func TestHandleBadRequestGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleBadRequestGin(c, errors.New("invalid id parameter"), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"bad_request","message":"invalid id parameter"}`, w.Body.String())
}

func TestHandleValidationErrorGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleValidationErrorGin(c, errors.New("status: must be a valid value."), nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "validation_error", decode(t, w).Error)
}
