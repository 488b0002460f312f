package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/domain/models"
	"marketplace/internal/repositories"
	"marketplace/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders booking invoices and payout statements as PDFs.
type DocsService struct {
	BookingRepo repositories.BookingRepository
	PayoutRepo  repositories.PayoutRepository
	PlanRepo    repositories.TravelPlanRepository
	RequestID   string
}

// GenerateInvoice renders the invoice for one booking.
func (s DocsService) GenerateInvoice(bookingID string) ([]byte, string, error) {
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, "", err
	}

	title := ""
	if plan, err := s.PlanRepo.GetByID(b.TravelPlanID); err == nil {
		title = plan.Title
	}

	utils.LogEvent(s.RequestID, "docs", "generate_invoice", "booking_id="+bookingID)
	return buildInvoicePDF(b, title)
}

// GeneratePayoutStatement renders the installment statement for a payout.
func (s DocsService) GeneratePayoutStatement(payoutID string) ([]byte, string, error) {
	p, err := s.PayoutRepo.GetByID(payoutID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_statement", "payout_id="+payoutID)
	return buildPayoutStatementPDF(p)
}

func buildInvoicePDF(b models.Booking, planTitle string) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING INVOICE")
	pdf.Ln(12)

	lead := "-"
	for _, g := range b.Guests {
		if g.IsTeamLead {
			lead = g.FirstName + " " + g.LastName
			break
		}
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Invoice No    : INV-%s", shortID(b.ID)),
		fmt.Sprintf("Date          : %s", utils.FormatDateTime(time.Now())),
		fmt.Sprintf("Booking       : %s", b.ID),
		fmt.Sprintf("Trip          : %s", safe(planTitle, "-")),
		fmt.Sprintf("Lead Traveler : %s", lead),
		fmt.Sprintf("Travel Dates  : %s to %s", utils.FormatDate(b.StartDate), utils.FormatDate(b.EndDate)),
		fmt.Sprintf("Travelers     : %d", b.Participants),
	}
	for _, l := range lines {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Amounts:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Price per person : %s", pdfMoney(int64(b.PricePerPerson))))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Amount paid      : %s", pdfMoney(int64(b.AmountPaid))))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Remaining        : %s", pdfMoney(int64(b.RemainingAmount))))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total: %s", pdfMoney(int64(b.TotalPrice))))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Payment status: %s", b.PaymentStatus.Display().Label))
	pdf.Ln(10)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("INVOICE_%s.pdf", shortID(b.ID)), nil
}

func buildPayoutStatementPDF(p models.Payout) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payout Statement", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "PAYOUT STATEMENT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Statement No : PAY-%s", shortID(p.ID)),
		fmt.Sprintf("Host         : %s (%s)", safe(p.HostName, "-"), safe(p.HostEmail, "-")),
		fmt.Sprintf("Trip         : %s", safe(p.TripTitle, "-")),
		fmt.Sprintf("Trip Dates   : %s to %s", utils.FormatDate(p.TripStartDate), utils.FormatDate(p.TripEndDate)),
		fmt.Sprintf("Booked By    : %s", safe(p.UserName, "-")),
	}
	for _, l := range lines {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Installments:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("1) %s (%d%%)  due %s  [%s]",
		pdfMoney(int64(p.FirstPaymentAmount)), p.FirstPaymentPercent,
		utils.FormatDate(p.FirstPaymentDue), p.FirstPaymentStatus))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("2) %s (%d%%)  due %s  [%s]",
		pdfMoney(int64(p.SecondPaymentAmount)), p.SecondPaymentPercent,
		utils.FormatDate(p.SecondPaymentDue), p.SecondPaymentStatus))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total payable: %s", pdfMoney(int64(p.TotalAmount))))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("PAYOUT_%s.pdf", shortID(p.ID)), nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func shortID(id string) string {
	id = strings.ReplaceAll(id, "-", "")
	if len(id) > 8 {
		return strings.ToUpper(id[:8])
	}
	return strings.ToUpper(id)
}

// pdfMoney avoids the rupee glyph, which the base PDF fonts lack.
func pdfMoney(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	s := fmt.Sprintf("%d", v)
	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]
		var parts []string
		for len(head) > 2 {
			parts = append([]string{head[len(head)-2:]}, parts...)
			head = head[:len(head)-2]
		}
		parts = append([]string{head}, parts...)
		s = strings.Join(parts, ",") + "," + tail
	}
	return sign + "Rs " + s
}
