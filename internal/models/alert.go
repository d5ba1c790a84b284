package models

import (
	"time"

	"github.com/google/uuid"
)

// AlertKind represents the kind of operational alert
type AlertKind string

const (
	// AlertKindPendingDeletion signals a secret blocked in its deletion recovery window
	AlertKindPendingDeletion AlertKind = "secret_pending_deletion"
	// AlertKindTicketFailure signals a failed Zendesk ticket creation
	AlertKindTicketFailure AlertKind = "ticket_creation_failed"
)

// IsValid checks if the alert kind value is valid
func (k AlertKind) IsValid() bool {
	switch k {
	case AlertKindPendingDeletion, AlertKindTicketFailure:
		return true
	default:
		return false
	}
}

// String returns the string representation of the alert kind
func (k AlertKind) String() string {
	return string(k)
}

// Alert is an operational notification published when a condition requires
// an operator decision or follow-up
type Alert struct {
	// ID is the unique identifier for the alert
	ID string `json:"id"`

	// Kind is the alert category
	Kind AlertKind `json:"kind"`

	// Stage is the environment the alert originated from
	Stage Stage `json:"stage"`

	// Subject is a short human-readable summary
	Subject string `json:"subject"`

	// Detail carries the full description, including any remediation options
	Detail string `json:"detail"`

	// CreatedDate is when the alert was raised
	CreatedDate time.Time `json:"created_date"`
}

// NewAlert creates a new alert with default values
func NewAlert(kind AlertKind, stage Stage, subject string, detail string) *Alert {
	return &Alert{
		ID:          uuid.New().String(),
		Kind:        kind,
		Stage:       stage,
		Subject:     subject,
		Detail:      detail,
		CreatedDate: time.Now().UTC(),
	}
}
