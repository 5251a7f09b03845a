package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"

	"github.com/lorekeep/lorekeep/core"
)

type Principal int

const (
	ISAUTHED = iota
)

// Identify resolves the requester from a Bearer header or the session
// cookie and stamps the context. An unidentified request passes through
// untagged; Restrict decides whether that is acceptable.
func (s *service) Identify(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, span := tracer.Start(c.Request().Context(), "auth.Identify")
		defer span.End()

		token := ""

		authHeader := c.Request().Header.Get("authorization")
		if authHeader != "" {
			split := strings.Split(authHeader, " ")
			if len(split) != 2 || split[0] != "Bearer" {
				span.RecordError(fmt.Errorf("invalid authentication header"))
				goto skip
			}
			token = split[1]
		} else {
			cookie, err := c.Cookie(core.SessionCookieName)
			if err != nil || cookie.Value == "" {
				goto skip
			}
			token = cookie.Value
		}

		{
			claims, err := s.ParseToken(ctx, token)
			if err != nil {
				span.RecordError(err)
				goto skip
			}

			c.Set(core.RequesterIdCtxKey, claims.Subject)
			c.Set(core.RequesterClaimsCtxKey, claims)
			span.SetAttributes(attribute.String("RequesterId", claims.Subject))
		}

	skip:
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// Restrict rejects requests whose context was not stamped by Identify
func Restrict(principal Principal) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, span := tracer.Start(c.Request().Context(), "auth.Restrict")
			defer span.End()

			switch principal {
			case ISAUTHED:
				requester, _ := c.Get(core.RequesterIdCtxKey).(string)
				if requester == "" {
					return c.JSON(http.StatusUnauthorized, echo.Map{
						"error": "Unauthorized",
					})
				}
			}

			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
