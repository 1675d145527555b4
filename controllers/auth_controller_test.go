package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func logoutRequest(t *testing.T, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ac := NewAuthController(nil, []byte("secret"), zap.NewNop())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	if authorization != "" {
		c.Request.Header.Set("Authorization", authorization)
	}

	ac.Logout(c)
	return w
}

func TestLogoutMalformedToken(t *testing.T) {
	w := logoutRequest(t, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
}

func TestLogoutGarbageSegments(t *testing.T) {
	w := logoutRequest(t, "Bearer a.b")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutMissingToken(t *testing.T) {
	w := logoutRequest(t, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Token required")
}
