package handlers

import (
	"strconv"

	"marketplace/internal/domain"
	"marketplace/internal/http/middleware"
	"marketplace/internal/notify"

	"github.com/gin-gonic/gin"
)

// Notifier is the shared outbound notification client, set by the router
// at startup. Defaults to a no-op so handlers never nil-check it.
var Notifier notify.Notifier = notify.Nop{}

// JWTSecret signs and verifies auth tokens; the router sets it from env.
var JWTSecret = []byte("dev-secret-change-me")

func paramID(c *gin.Context, name string) (domain.ID, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || v <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: name, Msg: "must be a positive integer"})
		return 0, false
	}
	return domain.ID(v), true
}

func mustAuth(c *gin.Context) (domain.RequestContext, bool) {
	rc, ok := middleware.GetAuth(c)
	if !ok {
		respondError(c, 401, "unauthorized", "not authenticated", nil)
	}
	return rc, ok
}

func requestID(c *gin.Context) string {
	return middleware.GetRequestID(c)
}
