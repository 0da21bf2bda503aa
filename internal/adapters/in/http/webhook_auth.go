package http

import (
	"crypto/subtle"
	"net/http"

	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	// HeaderPrinterSecret carries the shared secret on server-to-server webhook calls.
	HeaderPrinterSecret = "x-printer-secret"
	// QueryPrinterToken carries the shared secret on links clicked from emails.
	QueryPrinterToken = "token"
)

// ErrPrinterSecretMismatch is returned when neither the header nor the token matches.
var ErrPrinterSecretMismatch = errs.NewUnauthorizedError("printer secret mismatch")

// WebhookAuthGuard checks printer requests against a shared secret.
// With no secret configured every request passes.
type WebhookAuthGuard struct {
	secret []byte
}

func NewWebhookAuthGuard(secret string) WebhookAuthGuard {
	return WebhookAuthGuard{secret: []byte(secret)}
}

// Enabled reports whether a secret is configured.
func (g WebhookAuthGuard) Enabled() bool {
	return len(g.secret) > 0
}

// Check passes when either credential matches the secret.
func (g WebhookAuthGuard) Check(header, token string) error {
	if !g.Enabled() {
		return nil
	}
	if g.matches(header) || g.matches(token) {
		return nil
	}
	return ErrPrinterSecretMismatch
}

func (g WebhookAuthGuard) matches(candidate string) bool {
	if candidate == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(candidate), g.secret) == 1
}

func (g WebhookAuthGuard) checkRequest(c echo.Context) error {
	return g.Check(c.Request().Header.Get(HeaderPrinterSecret), c.QueryParam(QueryPrinterToken))
}

// JSON rejects unauthorized calls with 401 {"error":"Unauthorized"}.
func (g WebhookAuthGuard) JSON() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := g.checkRequest(c); err != nil {
				return c.JSON(http.StatusUnauthorized, errorResponse{Error: unauthorizedMessage})
			}
			return next(c)
		}
	}
}

// Redirect hands unauthorized link clicks to onFailure with reason "unauthorized".
func (g WebhookAuthGuard) Redirect(onFailure func(c echo.Context, reason string) error) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := g.checkRequest(c); err != nil {
				return onFailure(c, reasonUnauthorized)
			}
			return next(c)
		}
	}
}
