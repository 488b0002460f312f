package validation

import (
	"fmt"
	"regexp"
	"strings"

	"marketplace/internal/domain/models"

	"github.com/go-playground/validator/v10"
)

var (
	nameRegex  = regexp.MustCompile(`^[A-Za-z][A-Za-z '\-]{0,48}[A-Za-z]$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{10,20}$`)
)

// FieldError is one field-scoped validation failure, e.g.
// {Field: "guests.2.email", Message: "must be a valid email"}.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FieldErrors collects every failure before rejecting so the caller can
// render all of them at once.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(e), strings.Join(msgs, "; "))
}

// GuestInput is the guest-information form payload for one traveler.
type GuestInput struct {
	FirstName  string `json:"firstName" validate:"required"`
	LastName   string `json:"lastName" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required"`
	IsTeamLead bool   `json:"isTeamLead"`
}

// GuestValidator validates the guest list before booking creation.
type GuestValidator struct {
	validate *validator.Validate
}

func NewGuestValidator() *GuestValidator {
	return &GuestValidator{validate: validator.New()}
}

// ValidateGuestList checks every guest and the list-level invariants:
// the guest count must equal the declared participant count and exactly
// one guest must be the team lead. It never fails fast; all errors come
// back together, field-scoped as guests.<index>.<field>.
func (v *GuestValidator) ValidateGuestList(guests []GuestInput, participants int) error {
	var errs FieldErrors

	if participants < 1 {
		errs = append(errs, FieldError{Field: "participants", Message: "must be at least 1"})
	}
	if len(guests) != participants {
		errs = append(errs, FieldError{
			Field:   "guests",
			Message: fmt.Sprintf("guest count (%d) must equal participants (%d)", len(guests), participants),
		})
	}

	leads := 0
	for i, g := range guests {
		errs = append(errs, v.validateGuest(i, g)...)
		if g.IsTeamLead {
			leads++
		}
	}

	if len(guests) > 0 {
		switch {
		case leads == 0:
			errs = append(errs, FieldError{Field: "guests", Message: "one guest must be marked team lead"})
		case leads > 1:
			errs = append(errs, FieldError{Field: "guests", Message: fmt.Sprintf("only one team lead allowed, found %d", leads)})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (v *GuestValidator) validateGuest(index int, g GuestInput) FieldErrors {
	var errs FieldErrors
	field := func(name string) string {
		return fmt.Sprintf("guests.%d.%s", index, name)
	}

	if err := v.validate.Struct(g); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				switch fe.Field() {
				case "FirstName":
					errs = append(errs, FieldError{Field: field("firstName"), Message: "first name is required"})
				case "LastName":
					errs = append(errs, FieldError{Field: field("lastName"), Message: "last name is required"})
				case "Email":
					if fe.Tag() == "required" {
						errs = append(errs, FieldError{Field: field("email"), Message: "email is required"})
					} else {
						errs = append(errs, FieldError{Field: field("email"), Message: "must be a valid email"})
					}
				case "Phone":
					errs = append(errs, FieldError{Field: field("phone"), Message: "phone is required"})
				}
			}
		}
	}

	if g.FirstName != "" && !nameRegex.MatchString(g.FirstName) {
		errs = append(errs, FieldError{Field: field("firstName"), Message: "2-50 letters, spaces, hyphens or apostrophes"})
	}
	if g.LastName != "" && !nameRegex.MatchString(g.LastName) {
		errs = append(errs, FieldError{Field: field("lastName"), Message: "2-50 letters, spaces, hyphens or apostrophes"})
	}
	if g.Phone != "" && !phoneRegex.MatchString(g.Phone) {
		errs = append(errs, FieldError{Field: field("phone"), Message: "10-20 digits with optional leading +"})
	}

	return errs
}

// SetTeamLead marks guest i as team lead and unsets every other guest.
// Single-select semantics: after the call exactly one lead remains.
func SetTeamLead(guests []GuestInput, i int) []GuestInput {
	if i < 0 || i >= len(guests) {
		return guests
	}
	for j := range guests {
		guests[j].IsTeamLead = j == i
	}
	return guests
}

// ToModels converts validated inputs into guest records for persistence.
func ToModels(bookingID string, guests []GuestInput) []models.Guest {
	out := make([]models.Guest, 0, len(guests))
	for _, g := range guests {
		out = append(out, models.Guest{
			BookingID:  bookingID,
			FirstName:  strings.TrimSpace(g.FirstName),
			LastName:   strings.TrimSpace(g.LastName),
			Email:      strings.TrimSpace(g.Email),
			Phone:      strings.TrimSpace(g.Phone),
			IsTeamLead: g.IsTeamLead,
		})
	}
	return out
}
