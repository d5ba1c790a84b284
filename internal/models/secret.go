package models

import (
	"fmt"
	"time"
)

// SecretState represents the lifecycle state of a remote secret
type SecretState string

const (
	// SecretStateActive indicates the secret exists and is usable
	SecretStateActive SecretState = "active"
	// SecretStatePendingDeletion indicates the secret was deleted but its name
	// is still reserved until the recovery window elapses
	SecretStatePendingDeletion SecretState = "pending_deletion"
	// SecretStateAbsent indicates no secret exists under the name
	SecretStateAbsent SecretState = "absent"
)

// IsValid checks if the secret state value is valid
func (s SecretState) IsValid() bool {
	switch s {
	case SecretStateActive, SecretStatePendingDeletion, SecretStateAbsent:
		return true
	default:
		return false
	}
}

// String returns the string representation of the secret state
func (s SecretState) String() string {
	return string(s)
}

// SecretRecord describes a secret as it exists in the remote store.
// While the state is pending_deletion, creating a new secret under the same
// name fails until RecoveryUntil has passed or the secret is force-deleted.
type SecretRecord struct {
	Name          string
	ARN           string
	State         SecretState
	DeletedAt     time.Time
	RecoveryUntil time.Time
}

// SecretName derives the remote secret name for a (project, environment, kind)
// triple. The derivation is deterministic and stable across redeploys.
func SecretName(project string, environment string, kind string) string {
	return fmt.Sprintf("%s-%s-%s", project, environment, kind)
}
