package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/x-xyz/auction/base/ctx"
	"github.com/x-xyz/auction/base/delivery"
	"github.com/x-xyz/auction/domain"
)

// ClaimsKey is where Auth leaves the token claims on the echo context
const ClaimsKey = "claims"

type AuthMiddleware struct {
	tokens domain.TokenUsecase
}

func NewAuth(tokens domain.TokenUsecase) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Auth requires a valid bearer token, 401 otherwise
func (m *AuthMiddleware) Auth() echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Validator: m.validateAuthToken,
		ErrorHandler: func(err error, c echo.Context) error {
			return delivery.MakeJsonResp(c, http.StatusUnauthorized, domain.MsgUnauthenticated)
		},
	})
}

func (m *AuthMiddleware) IsAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if claims := Claims(c); claims != nil && claims.IsAdmin() {
				return next(c)
			}
			return delivery.MakeJsonResp(c, http.StatusForbidden, domain.MsgUnauthorized)
		}
	}
}

func (m *AuthMiddleware) validateAuthToken(key string, c echo.Context) (bool, error) {
	cont := c.Get("ctx").(ctx.Ctx)
	claims, err := m.tokens.ParseToken(cont, key)
	if err != nil {
		cont.WithField("err", err).Warn("tokens.ParseToken failed")
		return false, err
	}
	c.Set(ClaimsKey, claims)
	return true, nil
}

// Claims set by Auth, nil on routes without it
func Claims(c echo.Context) *domain.JwtCustomClaims {
	claims, _ := c.Get(ClaimsKey).(*domain.JwtCustomClaims)
	return claims
}
