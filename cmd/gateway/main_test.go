package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/lorekeep/lorekeep/core"
	"github.com/lorekeep/lorekeep/x/auth"
)

func TestIsProtected(t *testing.T) {
	patterns := []string{"/dashboard/*", "/characters/*", "/profile"}

	assert.True(t, isProtected(patterns, "/dashboard"))
	assert.True(t, isProtected(patterns, "/dashboard/settings"))
	assert.True(t, isProtected(patterns, "/characters/abc123"))
	assert.True(t, isProtected(patterns, "/profile"))
	assert.False(t, isProtected(patterns, "/profile/extra"))
	assert.False(t, isProtected(patterns, "/signin"))
	assert.False(t, isProtected(patterns, "/"))
	assert.False(t, isProtected(patterns, "/dashboardish"))
}

func TestSessionGate(t *testing.T) {

	secret := "unittest-secret"
	gwConf := GatewayConfig{
		SigninPath: "/signin",
		Protected:  []string{"/dashboard/*"},
	}

	claims := auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-one",
			ID:        "jti-one",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	session, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	assert.NoError(t, err)

	e := echo.New()
	ok := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	gate := sessionGate(gwConf, secret)

	t.Run("browser navigation without session is redirected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard/settings?tab=2", nil)
		req.Header.Set("Accept", "text/html,application/xhtml+xml")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := gate(ok)(c)
		if assert.NoError(t, err) {
			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, "/signin?callbackUrl=%2Fdashboard%2Fsettings%3Ftab%3D2", rec.Header().Get(echo.HeaderLocation))
		}
	})

	t.Run("valid session passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard/settings", nil)
		req.Header.Set("Accept", "text/html")
		req.AddCookie(&http.Cookie{Name: core.SessionCookieName, Value: session})
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := gate(ok)(c)
		if assert.NoError(t, err) {
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})

	t.Run("forged session is redirected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard/settings", nil)
		req.Header.Set("Accept", "text/html")
		req.AddCookie(&http.Cookie{Name: core.SessionCookieName, Value: session + "tampered"})
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := gate(ok)(c)
		if assert.NoError(t, err) {
			assert.Equal(t, http.StatusFound, rec.Code)
		}
	})

	t.Run("api requests are never redirected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/characters", nil)
		req.Header.Set("Accept", "text/html")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := gate(ok)(c)
		if assert.NoError(t, err) {
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})

	t.Run("non-navigation requests pass through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard/settings", nil)
		req.Header.Set("Accept", "application/json")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := gate(ok)(c)
		if assert.NoError(t, err) {
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})
}
