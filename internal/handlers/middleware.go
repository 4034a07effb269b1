package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"customer-portal/internal/models"
	"customer-portal/internal/session"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestID tags every request with an ID, reusing the caller's when sent.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// RequestLogger writes one zerolog event per request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		status := c.Writer.Status()
		evt := log.Info()
		switch {
		case status >= http.StatusInternalServerError:
			evt = log.Error()
		case status >= http.StatusBadRequest:
			evt = log.Warn()
		}
		evt.Str("request_id", requestID(c)).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request completed")
	}
}

// AuthRequired resolves the bearer token into a session and stores it in the
// request context.
func (a *API) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			RespondWithError(c, http.StatusUnauthorized, models.ErrorCodeUnauthorized, "Authentication required", nil)
			return
		}

		sess, err := a.sessions.Lookup(c.Request.Context(), token)
		switch {
		case errors.Is(err, session.ErrSessionNotFound), errors.Is(err, session.ErrSessionExpired):
			RespondWithError(c, http.StatusUnauthorized, models.ErrorCodeUnauthorized, "Session expired or invalid", nil)
			return
		case err != nil:
			a.log.Error().Err(err).Str("request_id", requestID(c)).Msg("session lookup failed")
			RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "An unexpected error occurred", nil)
			return
		}

		c.Request = c.Request.WithContext(session.WithSession(c.Request.Context(), sess))
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// currentSession returns the session placed by AuthRequired.
func currentSession(c *gin.Context) *models.Session {
	sess, _ := session.FromContext(c.Request.Context())
	return sess
}

// resolveCustomer returns the customer a request acts for. A supplied
// identifier must match the session's; leading zeros are ignored since
// clients send both padded and unpadded forms.
func resolveCustomer(c *gin.Context, supplied string) (string, bool) {
	sess := currentSession(c)
	if sess == nil {
		RespondWithError(c, http.StatusUnauthorized, models.ErrorCodeUnauthorized, "Authentication required", nil)
		return "", false
	}
	supplied = strings.TrimSpace(supplied)
	if supplied == "" {
		return sess.CustomerID, true
	}
	if !sameCustomer(supplied, sess.CustomerID) {
		RespondWithError(c, http.StatusForbidden, models.ErrorCodeForbidden, "Access to this customer is not permitted", nil)
		return "", false
	}
	return supplied, true
}

func sameCustomer(a, b string) bool {
	return strings.TrimLeft(strings.TrimSpace(a), "0") == strings.TrimLeft(strings.TrimSpace(b), "0")
}
