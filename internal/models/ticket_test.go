package models

import "testing"

func TestTicketStatus_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		status TicketStatus
		want   bool
	}{
		{"created is valid", TicketStatusCreated, true},
		{"failed is valid", TicketStatusFailed, true},
		{"invalid status", TicketStatus("open"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.IsValid(); got != tt.want {
				t.Errorf("TicketStatus.IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewTicketRecord(t *testing.T) {
	record := NewTicketRecord(StageDev, "Cannot log in", "user@example.com")

	if record.ID == "" {
		t.Error("NewTicketRecord() should generate an ID")
	}
	if record.Stage != StageDev {
		t.Errorf("Stage = %v, want %v", record.Stage, StageDev)
	}
	if record.Status != TicketStatusCreated {
		t.Errorf("Status = %v, want %v", record.Status, TicketStatusCreated)
	}
	if record.Subject != "Cannot log in" {
		t.Errorf("Subject = %v, want %v", record.Subject, "Cannot log in")
	}
	if record.CreatedDate.IsZero() {
		t.Error("CreatedDate should be set")
	}
}

func TestNewTicketRecord_UniqueIDs(t *testing.T) {
	a := NewTicketRecord(StageDev, "a", "a@example.com")
	b := NewTicketRecord(StageDev, "b", "b@example.com")

	if a.ID == b.ID {
		t.Errorf("ticket record IDs should be unique, got %q twice", a.ID)
	}
}

func TestNewAlert(t *testing.T) {
	alert := NewAlert(AlertKindPendingDeletion, StageProd, "secret blocked", "wait or force-delete")

	if alert.ID == "" {
		t.Error("NewAlert() should generate an ID")
	}
	if alert.Kind != AlertKindPendingDeletion {
		t.Errorf("Kind = %v, want %v", alert.Kind, AlertKindPendingDeletion)
	}
	if !alert.Kind.IsValid() {
		t.Error("alert kind should be valid")
	}
	if alert.CreatedDate.IsZero() {
		t.Error("CreatedDate should be set")
	}
}
