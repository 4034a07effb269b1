package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"customer-portal/internal/models"
)

const welcomeMessage = "WELCOME USER"

// loginHandler godoc
// @Summary Log in to the portal
// @Description Verifies the credentials against the backend and opens a session bound to the customer.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.LoginRequest true "Portal credentials"
// @Success 200 {object} models.APIResponse{data=models.LoginResult}
// @Failure 400 {object} models.APIError "VALIDATION_ERROR"
// @Failure 401 {object} models.APIError "UNAUTHORIZED"
// @Failure 502 {object} models.APIError "BACKEND_UNREACHABLE"
// @Failure 504 {object} models.APIError "REQUEST_TIMEOUT"
// @Router /api/login [post]
func (a *API) loginHandler(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "User ID and password are required", gin.H{"reason": err.Error()})
		return
	}
	userID := strings.TrimSpace(req.UserID)

	res, err := a.exec.Execute(c.Request.Context(), "login", map[string]string{
		"userId":   userID,
		"password": req.Password,
	})
	if err != nil {
		a.respondOperationError(c, "login", err)
		return
	}

	rec := res.Record()
	message, _ := rec["message"].(string)
	if message != welcomeMessage {
		if message == "" {
			message = "Invalid credentials"
		}
		a.log.Info().Str("request_id", requestID(c)).Str("user_id", userID).Msg("login rejected")
		RespondWithError(c, http.StatusUnauthorized, models.ErrorCodeUnauthorized, message, nil)
		return
	}

	kunnr, _ := rec["kunnr"].(string)
	if kunnr == "" {
		kunnr = userID
	}
	sess, err := a.sessions.Create(c.Request.Context(), userID, kunnr)
	if err != nil {
		a.log.Error().Err(err).Str("request_id", requestID(c)).Msg("failed to create session")
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "An unexpected error occurred", nil)
		return
	}

	a.log.Info().Str("request_id", requestID(c)).Str("user_id", userID).Str("customer_id", kunnr).Msg("login succeeded")
	RespondWithSuccess(c, http.StatusOK, "Login successful", models.LoginResult{
		Token:     sess.Token,
		Kunnr:     sess.CustomerID,
		UserID:    sess.UserID,
		ExpiresAt: sess.ExpiresAt,
	})
}

// logoutHandler godoc
// @Summary Log out
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse
// @Failure 401 {object} models.APIError "UNAUTHORIZED"
// @Router /api/logout [post]
func (a *API) logoutHandler(c *gin.Context) {
	sess := currentSession(c)
	if err := a.sessions.Revoke(c.Request.Context(), sess.Token); err != nil {
		a.log.Error().Err(err).Str("request_id", requestID(c)).Msg("failed to revoke session")
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "An unexpected error occurred", nil)
		return
	}
	RespondWithSuccess(c, http.StatusOK, "Logged out", nil)
}

// sessionHandler godoc
// @Summary Current session
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse{data=models.Session}
// @Failure 401 {object} models.APIError "UNAUTHORIZED"
// @Router /api/session [get]
func (a *API) sessionHandler(c *gin.Context) {
	RespondWithSuccess(c, http.StatusOK, "", currentSession(c))
}
