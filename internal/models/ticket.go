package models

import (
	"time"

	"github.com/google/uuid"
)

// TicketStatus represents the outcome of a ticket creation attempt
type TicketStatus string

const (
	// TicketStatusCreated indicates the ticket was created in Zendesk
	TicketStatusCreated TicketStatus = "created"
	// TicketStatusFailed indicates ticket creation failed
	TicketStatusFailed TicketStatus = "failed"
)

// IsValid checks if the ticket status value is valid
func (ts TicketStatus) IsValid() bool {
	switch ts {
	case TicketStatusCreated, TicketStatusFailed:
		return true
	default:
		return false
	}
}

// String returns the string representation of the ticket status
func (ts TicketStatus) String() string {
	return string(ts)
}

// TicketRecord is the audit record for a Zendesk ticket creation attempt
type TicketRecord struct {
	// ID is the unique identifier for the record
	ID string `json:"id" dynamodbav:"id"`

	// ZendeskTicketID is the ticket id assigned by Zendesk (zero when Status is failed)
	ZendeskTicketID int64 `json:"zendesk_ticket_id,omitempty" dynamodbav:"zendesk_ticket_id,omitempty"`

	// Subject is the ticket subject line
	Subject string `json:"subject" dynamodbav:"subject"`

	// RequesterEmail is the email of the end user the ticket was opened for
	RequesterEmail string `json:"requester_email" dynamodbav:"requester_email"`

	// Stage is the target environment (dev, staging, prod)
	Stage Stage `json:"stage" dynamodbav:"stage"`

	// Status is the outcome of the creation attempt
	Status TicketStatus `json:"status" dynamodbav:"status"`

	// CreatedDate is when the record was created
	CreatedDate time.Time `json:"created_date" dynamodbav:"created_date"`

	// ErrorMessage contains error details if Status is failed
	ErrorMessage string `json:"error_message,omitempty" dynamodbav:"error_message,omitempty"`
}

// NewTicketRecord creates a new ticket audit record with default values
func NewTicketRecord(stage Stage, subject string, requesterEmail string) *TicketRecord {
	return &TicketRecord{
		ID:             uuid.New().String(),
		Subject:        subject,
		RequesterEmail: requesterEmail,
		Stage:          stage,
		Status:         TicketStatusCreated,
		CreatedDate:    time.Now().UTC(),
	}
}
