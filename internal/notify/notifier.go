package notify

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"marketplace/internal/utils"
)

// Event is one outbound notification. Delivery is best effort: a failed
// send is logged and never blocks the state change that triggered it.
type Event struct {
	Type    string `json:"type"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

const (
	EventBookingCancelled = "booking_cancelled"
	EventRefundDisbursed  = "refund_disbursed"
	EventHostApproved     = "host_application_approved"
	EventHostRejected     = "host_application_rejected"
	EventInstallmentPaid  = "payout_installment_paid"
)

type Notifier interface {
	Send(requestID string, ev Event)
}

// WebhookNotifier posts events to the notification service endpoint.
type WebhookNotifier struct {
	URL    string
	Client *http.Client
}

func NewWebhookNotifier(url string) WebhookNotifier {
	return WebhookNotifier{
		URL:    url,
		Client: &http.Client{Timeout: 5 * time.Second},
	}
}

func (n WebhookNotifier) Send(requestID string, ev Event) {
	if n.URL == "" {
		utils.LogEvent(requestID, "notify", "skip", "no notify endpoint configured, dropping "+ev.Type)
		return
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		utils.LogEvent(requestID, "notify", "send", "marshal failed: "+err.Error())
		return
	}

	resp, err := n.Client.Post(n.URL, "application/json", bytes.NewReader(payload))
	if err != nil {
		utils.LogEvent(requestID, "notify", "send", "warning: "+ev.Type+" not delivered: "+err.Error())
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		utils.LogEvent(requestID, "notify", "send", "warning: "+ev.Type+" got status "+resp.Status)
		return
	}
	utils.LogEvent(requestID, "notify", "send", ev.Type+" delivered to "+ev.Email)
}

// Nop drops every event; used in tests and when notifications are off.
type Nop struct{}

func (Nop) Send(string, Event) {}
