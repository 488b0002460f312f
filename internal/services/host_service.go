package services

import (
	"fmt"
	"strings"

	"marketplace/internal/domain"
	"marketplace/internal/domain/models"
	"marketplace/internal/notify"
	"marketplace/internal/repositories"
	"marketplace/internal/utils"
)

// HostService runs the host-application workflow. Approval is the only
// place a USER becomes a HOST.
type HostService struct {
	ApplicationRepo repositories.HostApplicationRepository
	UserRepo        repositories.UserRepository
	Notifier        notify.Notifier
	RequestID       string
}

func (s HostService) notifier() notify.Notifier {
	if s.Notifier != nil {
		return s.Notifier
	}
	return notify.Nop{}
}

// Apply files a host application for the calling user.
func (s HostService) Apply(userID domain.ID, about, experience string) (domain.ID, error) {
	about = strings.TrimSpace(about)
	if about == "" {
		return 0, domain.ValidationError{Field: "about", Msg: "tell us about yourself"}
	}

	u, err := s.UserRepo.GetByID(userID)
	if err != nil {
		return 0, err
	}
	if u.Role != domain.RoleUser {
		return 0, domain.ConflictError{Resource: "host application", Msg: "only travelers can apply to host"}
	}

	id, err := s.ApplicationRepo.Create(userID, about, strings.TrimSpace(experience))
	if err != nil {
		return 0, err
	}
	utils.LogEvent(s.RequestID, "host", "apply", fmt.Sprintf("application_id=%d user_id=%d", id, userID))
	return id, nil
}

// PendingApplications is the admin review queue.
func (s HostService) PendingApplications() ([]models.HostApplication, error) {
	return s.ApplicationRepo.ListPending()
}

// Approve promotes the applicant and removes the application from the
// pending queue in one transaction. The notification is fire-and-forget:
// the promotion stands even when the email fails.
func (s HostService) Approve(applicationID, adminID domain.ID) (models.HostApplication, error) {
	app, err := s.ApplicationRepo.Approve(applicationID, adminID)
	if err != nil {
		return models.HostApplication{}, err
	}

	utils.LogEvent(s.RequestID, "host", "approve", fmt.Sprintf("application_id=%d", applicationID))

	if u, err := s.UserRepo.GetByID(app.UserID); err == nil {
		s.notifier().Send(s.RequestID, notify.Event{
			Type:    notify.EventHostApproved,
			Email:   u.Email,
			Subject: "Your host application was approved",
			Body:    "Welcome aboard! You can now create travel plans.",
		})
	}
	return app, nil
}

// Reject declines the application; the applicant stays a USER.
func (s HostService) Reject(applicationID, adminID domain.ID) error {
	app, err := s.ApplicationRepo.GetByID(applicationID)
	if err != nil {
		return err
	}

	if err := s.ApplicationRepo.Reject(applicationID, adminID); err != nil {
		return err
	}

	utils.LogEvent(s.RequestID, "host", "reject", fmt.Sprintf("application_id=%d", applicationID))

	if u, err := s.UserRepo.GetByID(app.UserID); err == nil {
		s.notifier().Send(s.RequestID, notify.Event{
			Type:    notify.EventHostRejected,
			Email:   u.Email,
			Subject: "Your host application was not approved",
			Body:    "You can re-apply with more detail about your hosting experience.",
		})
	}
	return nil
}
