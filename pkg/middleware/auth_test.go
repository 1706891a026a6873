package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"restaurant-pos/pkg/constants"
	"restaurant-pos/pkg/service"
	"restaurant-pos/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) (*echo.Echo, service.JWTService) {
	t.Helper()
	jwtSvc := service.NewJWTService("test-secret", time.Hour)
	m := NewAuthMiddleware(jwtSvc, zap.NewNop())

	e := echo.New()
	e.GET("/kitchen", func(c echo.Context) error {
		claims, err := utils.GetClaimsFromContext(c.Request().Context())
		if err != nil {
			return err
		}
		return c.String(http.StatusOK, string(claims.Role))
	}, m.Auth, m.RequireRole(constants.RoleKitchen))
	return e, jwtSvc
}

func doRequest(e *echo.Echo, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/kitchen", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthAllowsMatchingRole(t *testing.T) {
	e, jwtSvc := newTestServer(t)
	token, err := jwtSvc.GenerateSessionToken(constants.RoleKitchen)
	require.NoError(t, err)

	rec := doRequest(e, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "kitchen", rec.Body.String())
}

func TestAuthRejectsOtherRole(t *testing.T) {
	e, jwtSvc := newTestServer(t)
	token, err := jwtSvc.GenerateSessionToken(constants.RoleWaiter)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, doRequest(e, "Bearer "+token).Code)
}

func TestAuthRejectsMissingOrMalformedHeader(t *testing.T) {
	e, _ := newTestServer(t)
	assert.Equal(t, http.StatusUnauthorized, doRequest(e, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(e, "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(e, "Bearer not-a-jwt").Code)
}
