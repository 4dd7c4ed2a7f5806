// Package appointment describes the appointment request form and validates
// submitted requests. Requests are confirmed but never stored.
package appointment

import (
	"errors"
	"fmt"
	"net/mail"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidRequest = errors.New("invalid appointment request")

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

type ContactMethod string

const (
	ContactEmail ContactMethod = "email"
	ContactPhone ContactMethod = "phone"
)

var DoctorTypes = []string{
	"General Practitioner",
	"Cardiologist",
	"Dermatologist",
	"Neurologist",
	"Orthopedist",
	"Pediatrician",
	"Psychiatrist",
	"Ophthalmologist",
	"Gynecologist",
	"Dentist",
	"Other",
}

// TimeSlots are the half-hour slots offered between 09:00 AM and 05:30 PM.
var TimeSlots = func() []string {
	var slots []string
	start := time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC)
	for t := start; t.Hour() < 18; t = t.Add(30 * time.Minute) {
		slots = append(slots, t.Format("03:04 PM"))
	}
	return slots
}()

// Form is the render payload of the scheduling tool.
type Form struct {
	DoctorTypes    []string        `json:"doctorTypes"`
	TimeSlots      []string        `json:"timeSlots"`
	Urgencies      []Urgency       `json:"urgencies"`
	ContactMethods []ContactMethod `json:"contactMethods"`
	Defaults       Request         `json:"defaults"`
}

func NewForm() Form {
	return Form{
		DoctorTypes:    slices.Clone(DoctorTypes),
		TimeSlots:      slices.Clone(TimeSlots),
		Urgencies:      []Urgency{UrgencyLow, UrgencyMedium, UrgencyHigh},
		ContactMethods: []ContactMethod{ContactEmail, ContactPhone},
		Defaults: Request{
			Urgency:       UrgencyMedium,
			ContactMethod: ContactEmail,
		},
	}
}

type Request struct {
	DoctorType    string        `json:"doctorType"`
	PreferredDate string        `json:"preferredDate"`
	PreferredTime string        `json:"preferredTime"`
	Reason        string        `json:"reason"`
	Urgency       Urgency       `json:"urgency"`
	ContactMethod ContactMethod `json:"contactMethod"`
	ContactInfo   string        `json:"contactInfo"`
}

type Confirmation struct {
	ID          string  `json:"id"`
	Message     string  `json:"message"`
	SubmittedAt string  `json:"submittedAt"`
	Request     Request `json:"request"`
}

// Normalize trims every field and fills in the form defaults.
func (r Request) Normalize() Request {
	r.DoctorType = strings.TrimSpace(r.DoctorType)
	r.PreferredDate = strings.TrimSpace(r.PreferredDate)
	r.PreferredTime = strings.TrimSpace(r.PreferredTime)
	r.Reason = strings.TrimSpace(r.Reason)
	r.ContactInfo = strings.TrimSpace(r.ContactInfo)
	if r.Urgency == "" {
		r.Urgency = UrgencyMedium
	}
	if r.ContactMethod == "" {
		r.ContactMethod = ContactEmail
	}
	return r
}

// Validate reports every problem with the request at once. The preferred
// date is compared against the calendar day of now.
func (r Request) Validate(now time.Time) error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	switch {
	case r.DoctorType == "":
		fail("doctor type is required")
	case !slices.Contains(DoctorTypes, r.DoctorType):
		fail("unknown doctor type %q", r.DoctorType)
	}

	if r.PreferredDate == "" {
		fail("preferred date is required")
	} else if date, err := time.ParseInLocation(time.DateOnly, r.PreferredDate, now.Location()); err != nil {
		fail("preferred date must be YYYY-MM-DD")
	} else {
		y, m, d := now.Date()
		if date.Before(time.Date(y, m, d, 0, 0, 0, 0, now.Location())) {
			fail("preferred date %s is in the past", r.PreferredDate)
		}
	}

	switch {
	case r.PreferredTime == "":
		fail("preferred time is required")
	case !slices.Contains(TimeSlots, r.PreferredTime):
		fail("unknown time slot %q", r.PreferredTime)
	}

	if r.Reason == "" {
		fail("reason is required")
	}

	switch r.Urgency {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
	default:
		fail("unknown urgency %q", r.Urgency)
	}

	switch r.ContactMethod {
	case ContactEmail:
		if r.ContactInfo != "" {
			if _, err := mail.ParseAddress(r.ContactInfo); err != nil {
				fail("contact info must be an email address")
			}
		}
	case ContactPhone:
	default:
		fail("unknown contact method %q", r.ContactMethod)
	}
	if r.ContactInfo == "" {
		fail("contact info is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, errors.Join(errs...))
	}
	return nil
}

// Schedule validates the request and returns a confirmation.
func Schedule(req Request, now time.Time) (*Confirmation, error) {
	req = req.Normalize()
	if err := req.Validate(now); err != nil {
		return nil, err
	}

	return &Confirmation{
		ID:          uuid.NewString(),
		Message:     "Your appointment request has been submitted successfully. We'll contact you within 24 hours to confirm your appointment details.",
		SubmittedAt: now.UTC().Format(time.RFC3339),
		Request:     req,
	}, nil
}
