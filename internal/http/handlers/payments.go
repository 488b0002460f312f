package handlers

import (
	"net/http"

	"marketplace/internal/services"
	"marketplace/internal/utils"

	"github.com/gin-gonic/gin"
)

// POST /api/payments/webhook
//
// Gateway confirmation endpoint. The gateway retries on non-2xx, so
// conflicts from already-settled bookings still map through the normal
// error path and retries stay harmless.
func PaymentWebhook(c *gin.Context) {
	var ev services.WebhookEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid payload: "+err.Error(), nil)
		return
	}

	svc := services.PaymentService{RequestID: requestID(c)}
	if err := svc.HandleWebhook(ev); err != nil {
		utils.LogEvent(requestID(c), "payments", "webhook", "rejected for booking "+ev.BookingID+": "+err.Error())
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "payment recorded"})
}

// POST /api/admin/payments/sweep-overdue
func SweepOverdue(c *gin.Context) {
	svc := services.PaymentService{RequestID: requestID(c)}
	n, err := svc.SweepOverdue()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "sweep complete", "bookingsMarkedOverdue": n})
}
