package handlers

import (
	"net/http"
	"time"

	"marketplace/internal/domain"
	"marketplace/internal/services"
	"marketplace/internal/utils"
	"marketplace/internal/validation"

	"github.com/gin-gonic/gin"
)

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{RequestID: requestID(c)}
}

type createBookingRequest struct {
	TravelPlanID        domain.ID               `json:"travelPlanId" binding:"required"`
	StartDate           string                  `json:"startDate" binding:"required"`
	Participants        int                     `json:"participants" binding:"required,min=1"`
	SpecialRequirements string                  `json:"specialRequirements"`
	PaymentDeadline     string                  `json:"paymentDeadline"`
	Guests              []validation.GuestInput `json:"guests" binding:"required"`
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	rc, ok := mustAuth(c)
	if !ok {
		return
	}

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid payload: "+err.Error(), nil)
		return
	}

	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "startDate", Msg: "expected YYYY-MM-DD"})
		return
	}

	var deadline *time.Time
	if req.PaymentDeadline != "" {
		d, err := utils.ParseDate(req.PaymentDeadline)
		if err != nil {
			RespondDomainError(c, domain.ValidationError{Field: "paymentDeadline", Msg: "expected YYYY-MM-DD"})
			return
		}
		deadline = &d
	}

	booking, err := bookingService(c).CreateBooking(services.CreateBookingInput{
		UserID:              rc.UserID,
		TravelPlanID:        req.TravelPlanID,
		StartDate:           start,
		Participants:        req.Participants,
		SpecialRequirements: req.SpecialRequirements,
		PaymentDeadline:     deadline,
		Guests:              req.Guests,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"booking": booking})
}

// GET /api/bookings/:id
func GetBooking(c *gin.Context) {
	rc, ok := mustAuth(c)
	if !ok {
		return
	}

	booking, err := bookingService(c).GetBooking(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	// Travelers only see their own bookings. Staff see everything; the
	// host surface goes through its own listing.
	if rc.Role == domain.RoleUser && booking.UserID != rc.UserID {
		respondError(c, http.StatusNotFound, "not_found", "booking not found", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// GET /api/bookings/my
func ListMyBookings(c *gin.Context) {
	rc, ok := mustAuth(c)
	if !ok {
		return
	}

	bookings, err := bookingService(c).ListForUser(rc.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "total": len(bookings)})
}

// GET /api/host/bookings
func ListHostBookings(c *gin.Context) {
	rc, ok := mustAuth(c)
	if !ok {
		return
	}

	bookings, err := bookingService(c).ListForHost(rc.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "total": len(bookings)})
}

// GET /api/admin/bookings
func ListAllBookings(c *gin.Context) {
	bookings, err := bookingService(c).ListAll()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "total": len(bookings)})
}

func refundService(c *gin.Context) services.RefundService {
	return services.RefundService{Notifier: Notifier, RequestID: requestID(c)}
}

// GET /api/bookings/:id/refund-quote
func QuoteRefund(c *gin.Context) {
	rc, ok := mustAuth(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if rc.Role == domain.RoleUser {
		if !ownsBooking(c, rc, id) {
			return
		}
	}

	quote, err := refundService(c).QuoteRefund(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quote": quote})
}

// POST /api/bookings/:id/cancel
func CancelBooking(c *gin.Context) {
	rc, ok := mustAuth(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if rc.Role == domain.RoleUser {
		if !ownsBooking(c, rc, id) {
			return
		}
	}

	quote, err := refundService(c).ConfirmCancellation(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "booking cancelled",
		"refundAmount": quote.RefundAmount,
		"quote":        quote,
	})
}

// POST /api/admin/bookings/:id/mark-refunded
func MarkRefunded(c *gin.Context) {
	if err := refundService(c).MarkRefunded(c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "refund marked as disbursed"})
}

// GET /api/bookings/:id/invoice
func BookingInvoice(c *gin.Context) {
	rc, ok := mustAuth(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if rc.Role == domain.RoleUser {
		if !ownsBooking(c, rc, id) {
			return
		}
	}

	svc := services.DocsService{RequestID: requestID(c)}
	pdf, filename, err := svc.GenerateInvoice(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// ownsBooking loads the booking and hides it behind a 404 when it
// belongs to someone else.
func ownsBooking(c *gin.Context, rc domain.RequestContext, id string) bool {
	booking, err := bookingService(c).GetBooking(id)
	if err != nil {
		RespondDomainError(c, err)
		return false
	}
	if booking.UserID != rc.UserID {
		respondError(c, http.StatusNotFound, "not_found", "booking not found", nil)
		return false
	}
	return true
}
