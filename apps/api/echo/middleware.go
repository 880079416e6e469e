package echoapi

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// sessionMiddleware must run after the JWT middleware.
func (s *Server) sessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		claims, err := getContextClaims(ctx)
		if err != nil {
			return err
		}
		if err := s.setSession(ctx, claims); err != nil {
			return err
		}
		return next(ctx)
	}
}

// optionalSessionMiddleware attaches a session when the request carries a valid bearer token.
func (s *Server) optionalSessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		auth := ctx.Request().Header.Get(echo.HeaderAuthorization)
		if raw := strings.TrimPrefix(auth, "Bearer "); raw != "" && raw != auth {
			if claims, err := s.parseToken(raw); err == nil {
				if err := s.setSession(ctx, *claims); err != nil && err != errUnauthorized {
					return err
				}
			}
		}
		return next(ctx)
	}
}
