package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"busbooking/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondDomainErrorStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ValidationError{Msg: "sai", Fields: []domain.FieldError{{Field: "email", Message: "sai"}}}, http.StatusBadRequest, "validation_error"},
		{domain.UnauthorizedError{}, http.StatusUnauthorized, "unauthorized"},
		{domain.ForbiddenError{}, http.StatusForbidden, "forbidden"},
		{domain.NotFoundError{Resource: "vé"}, http.StatusNotFound, "not_found"},
		{domain.ConflictError{Msg: "trùng"}, http.StatusConflict, "conflict"},
		{errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)
		RespondDomainError(c, tc.err)

		assert.Equal(t, tc.status, w.Code)
		var body Envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Equal(t, tc.code, body.Code)
		assert.NotEmpty(t, body.Message)
	}
}

func TestInternalErrorHidesCause(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)
	RespondDomainError(c, errors.New("dial tcp 10.0.0.1:3306: refused"))
	assert.NotContains(t, w.Body.String(), "10.0.0.1")
}
