package middleware

import (
	stderrors "errors"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"shopapi/internal/auth"
	"shopapi/internal/errors"
	"shopapi/internal/logging"
	"shopapi/internal/model"
)

// ClaimsKey is the echo context key holding the verified *auth.Claims.
const ClaimsKey = "user"

// Protect rejects requests without a valid bearer token and stores the
// verified claims under ClaimsKey.
func Protect(tokens *auth.JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  ClaimsKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return tokens.Verify(token)
		},
		SuccessHandler: func(c echo.Context) {
			claims, ok := CurrentUser(c)
			if !ok {
				return
			}
			req := c.Request()
			entry := logging.FromContext(req.Context()).WithField("user_id", claims.UserID)
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), entry)))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			var extractErr *echojwt.TokenExtractionError
			if stderrors.As(err, &extractErr) {
				return reject(errors.ErrNoToken)
			}
			logging.FromContext(c.Request().Context()).WithError(err).Warn("Token verification failed")
			return reject(errors.ErrTokenFailed)
		},
	})
}

// RequireAdmin lets only ADMIN callers through. It must run after Protect.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := CurrentUser(c)
		if !ok {
			return reject(errors.ErrNoToken)
		}
		if claims.Role != model.RoleAdmin {
			logging.FromContext(c.Request().Context()).
				WithField("role", claims.Role).
				Warn("Non-admin access to admin route")
			return reject(errors.ErrAdminRequired)
		}
		return next(c)
	}
}

// CurrentUser returns the claims stored by Protect.
func CurrentUser(c echo.Context) (*auth.Claims, bool) {
	claims, ok := c.Get(ClaimsKey).(*auth.Claims)
	return claims, ok && claims != nil
}

func reject(err error) *echo.HTTPError {
	he := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
}
