package ledger

import (
	"context"
	"errors"
	"fmt"
)

// Canonical resource addresses for the Zendesk credentials secret in the
// Terraform configuration
const (
	SecretAddress        = "module.iam.aws_secretsmanager_secret.zendesk_credentials"
	SecretVersionAddress = "module.iam.aws_secretsmanager_secret_version.zendesk_credentials_version"
)

// ErrImportConflict indicates the ledger already maps the address to a remote
// identity. Callers treat this as an idempotent no-op, not a failure.
var ErrImportConflict = errors.New("resource address already managed")

// Importer registers pre-existing remote resources into the desired-state
// ledger. It never creates or mutates remote resources.
type Importer interface {
	ImportResource(ctx context.Context, address string, remoteID string) error
}

// VersionID builds the composite remote identity for a secret version
// resource, keyed by secret name and version id.
func VersionID(secretName string, versionID string) string {
	return fmt.Sprintf("%s|%s", secretName, versionID)
}
