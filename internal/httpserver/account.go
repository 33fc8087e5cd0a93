package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/internal/service/account"
	"storefront/internal/shopify"
)

const recoverMessage = "If an account exists for that email, a password reset link has been sent."

type recoverRequest struct {
	Email string `json:"email"`
}

func (h *handlers) recoverAccount(c *gin.Context) {
	var req recoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	err := h.deps.AccountSvc.Recover(c.Request.Context(), req.Email)
	switch {
	case errors.Is(err, account.ErrEmailRequired):
		writeError(c, http.StatusBadRequest, "Email is required")
	case err != nil:
		h.logger.Printf("account handler: recover: %v", err)
		writeError(c, http.StatusInternalServerError, "Password reset processing error")
	default:
		c.JSON(http.StatusOK, gin.H{"success": true, "message": recoverMessage})
	}
}

func (h *handlers) accountOverview(c *gin.Context) {
	customer, err := h.deps.AccountSvc.Overview(c.Request.Context(), accessToken(c))
	switch {
	case errors.Is(err, account.ErrNoSession), errors.Is(err, shopify.ErrUnauthorized):
		writeError(c, http.StatusUnauthorized, "Not signed in")
	case err != nil:
		h.logger.Printf("account handler: overview: %v", err)
		writeError(c, http.StatusInternalServerError, remoteMessage(err))
	default:
		c.JSON(http.StatusOK, gin.H{"customer": customer})
	}
}

func accessToken(c *gin.Context) string {
	if token := cookieValue(c, customerTokenCookie); token != "" {
		return token
	}
	auth := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}
