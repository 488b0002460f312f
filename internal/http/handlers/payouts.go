package handlers

import (
	"net/http"

	"marketplace/internal/domain"
	"marketplace/internal/services"
	"marketplace/internal/utils"

	"github.com/gin-gonic/gin"
)

func payoutService(c *gin.Context) services.PayoutService {
	return services.PayoutService{Notifier: Notifier, RequestID: requestID(c)}
}

// GET /api/admin/payouts
func ListPayouts(c *gin.Context) {
	payouts, err := payoutService(c).ListPayouts()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payouts": payouts, "total": len(payouts)})
}

// GET /api/admin/payouts/:id
func GetPayout(c *gin.Context) {
	payout, err := payoutService(c).GetPayout(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payout": payout})
}

// GET /api/admin/payouts/needing
func BookingsNeedingPayout(c *gin.Context) {
	bookings, err := payoutService(c).BookingsNeedingPayout()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "total": len(bookings)})
}

type createPayoutRequest struct {
	BookingID    string `json:"bookingId" binding:"required"`
	FirstPercent int    `json:"firstPercent" binding:"required,min=1,max=99"`
	FirstDue     string `json:"firstDue" binding:"required"`
	SecondDue    string `json:"secondDue" binding:"required"`
}

// POST /api/admin/payouts
func CreatePayout(c *gin.Context) {
	var req createPayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid payload: "+err.Error(), nil)
		return
	}

	firstDue, err := utils.ParseDate(req.FirstDue)
	if err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "firstDue", Msg: "expected YYYY-MM-DD"})
		return
	}
	secondDue, err := utils.ParseDate(req.SecondDue)
	if err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "secondDue", Msg: "expected YYYY-MM-DD"})
		return
	}

	payout, err := payoutService(c).CreatePayout(services.CreatePayoutInput{
		BookingID:    req.BookingID,
		FirstPercent: req.FirstPercent,
		FirstDue:     firstDue,
		SecondDue:    secondDue,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"payout": payout})
}

type markInstallmentRequest struct {
	Installment string `json:"installment" binding:"required,oneof=first second"`
}

// POST /api/admin/payouts/:id/mark-paid
func MarkInstallmentPaid(c *gin.Context) {
	var req markInstallmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", `installment must be "first" or "second"`, nil)
		return
	}

	payout, err := payoutService(c).MarkInstallmentPaid(c.Param("id"), req.Installment)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "installment marked paid", "payout": payout})
}

// GET /api/admin/payouts/:id/statement
func PayoutStatement(c *gin.Context) {
	svc := services.DocsService{RequestID: requestID(c)}
	pdf, filename, err := svc.GeneratePayoutStatement(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
