package auth

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/lorekeep/lorekeep/core"
	"github.com/lorekeep/lorekeep/internal/testutil"
	"github.com/lorekeep/lorekeep/util"
)

func echoRequester(c echo.Context) error {
	requester, _ := c.Get(core.RequesterIdCtxKey).(string)
	return c.String(http.StatusOK, requester)
}

func TestIdentify(t *testing.T) {

	checker := testutil.SetupMockTraceProvider()

	rdb, cleanup_rdb := testutil.CreateRDB()
	defer cleanup_rdb()

	conf := util.Config{}
	conf.Lorekeep.FQDN = "lorekeep.example.com"
	conf.Lorekeep.JwtSecret = "unittest-secret"
	conf.Lorekeep.TokenTTLHours = 1

	svc := NewService(NewRepository(rdb), nil, conf).(*service)

	token, err := svc.issueToken(core.User{ID: "user-one", Email: "one@example.com"})
	assert.NoError(t, err)

	t.Run("bearer header", func(t *testing.T) {
		c, req, rec, traceID := testutil.CreateHttpRequest()
		req.Header.Set("Authorization", "Bearer "+token)

		err := svc.Identify(echoRequester)(c)
		if assert.NoError(t, err) {
			assert.Equal(t, "user-one", rec.Body.String())
		}

		spans := checker.GetSpans()
		identified := false
		for _, span := range spans {
			if span.SpanContext.TraceID().String() == traceID && span.Name == "auth.Identify" {
				identified = true
			}
		}
		assert.True(t, identified)

		testutil.PrintSpans(spans, traceID)
	})

	t.Run("session cookie", func(t *testing.T) {
		c, req, rec, _ := testutil.CreateHttpRequest()
		req.AddCookie(&http.Cookie{Name: core.SessionCookieName, Value: token})

		err := svc.Identify(echoRequester)(c)
		if assert.NoError(t, err) {
			assert.Equal(t, "user-one", rec.Body.String())
		}
	})

	t.Run("forged token passes through untagged", func(t *testing.T) {
		c, req, rec, _ := testutil.CreateHttpRequest()
		req.Header.Set("Authorization", "Bearer not.a.token")

		err := svc.Identify(echoRequester)(c)
		if assert.NoError(t, err) {
			assert.Equal(t, "", rec.Body.String())
		}
	})
}

func TestRestrict(t *testing.T) {

	t.Run("tagged context passes", func(t *testing.T) {
		c, _, rec, _ := testutil.CreateHttpRequest()
		c.Set(core.RequesterIdCtxKey, "user-one")

		err := Restrict(ISAUTHED)(echoRequester)(c)
		if assert.NoError(t, err) {
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})

	t.Run("untagged context is rejected", func(t *testing.T) {
		c, _, rec, _ := testutil.CreateHttpRequest()

		err := Restrict(ISAUTHED)(echoRequester)(c)
		if assert.NoError(t, err) {
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		}
	})
}
