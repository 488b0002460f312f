package handlers

import (
	"net/http"

	"marketplace/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/admin/reports/summary
func AdminSummary(c *gin.Context) {
	summary, err := services.ReportService{}.AdminSummary()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GET /api/host/reports/summary
func HostSummary(c *gin.Context) {
	rc, ok := mustAuth(c)
	if !ok {
		return
	}

	summary, err := services.ReportService{}.HostSummary(rc.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
