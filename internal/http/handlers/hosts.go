package handlers

import (
	"net/http"

	"marketplace/internal/services"

	"github.com/gin-gonic/gin"
)

func hostService(c *gin.Context) services.HostService {
	return services.HostService{Notifier: Notifier, RequestID: requestID(c)}
}

type hostApplyRequest struct {
	About      string `json:"about" binding:"required"`
	Experience string `json:"experience"`
}

// POST /api/host-applications
func ApplyHost(c *gin.Context) {
	rc, ok := mustAuth(c)
	if !ok {
		return
	}

	var req hostApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "about is required", nil)
		return
	}

	id, err := hostService(c).Apply(rc.UserID, req.About, req.Experience)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "application submitted", "applicationId": id})
}

// GET /api/admin/host-applications
func PendingHostApplications(c *gin.Context) {
	apps, err := hostService(c).PendingApplications()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps, "total": len(apps)})
}

// POST /api/admin/host-applications/:id/approve
func ApproveHostApplication(c *gin.Context) {
	rc, ok := mustAuth(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	app, err := hostService(c).Approve(id, rc.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "application approved, user is now a host", "application": app})
}

// POST /api/admin/host-applications/:id/reject
func RejectHostApplication(c *gin.Context) {
	rc, ok := mustAuth(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := hostService(c).Reject(id, rc.UserID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "application rejected"})
}
