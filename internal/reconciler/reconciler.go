// Package reconciler brings out-of-band Secrets Manager secrets under
// Terraform management. Deleting a secret leaves its name reserved for a
// recovery window, so a fresh apply against an environment that already has
// the secret (or recently destroyed it) cannot simply recreate it: the secret
// must be imported into state instead. The reconciler detects which situation
// holds and performs the import, leaving the force-delete-or-wait decision on
// pending-deletion secrets to the operator.
package reconciler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/novabot-ai/novabot/internal/ledger"
	"github.com/novabot-ai/novabot/internal/models"
	"github.com/novabot-ai/novabot/internal/secretstore"
)

// ErrLookupFailed indicates the remote store could not be queried
var ErrLookupFailed = errors.New("secret lookup failed")

// Outcome classifies the result of a reconcile run
type Outcome string

const (
	// OutcomeNoSecret means no remote secret exists and apply can create it fresh
	OutcomeNoSecret Outcome = "no_secret"
	// OutcomeImported means the secret (and its current version, if any) was
	// imported into state
	OutcomeImported Outcome = "imported"
	// OutcomeAlreadyManaged means state already held the mappings; nothing changed
	OutcomeAlreadyManaged Outcome = "already_managed"
	// OutcomePendingDeletion means the secret is mid-recovery-window and the
	// operator must force-delete it or wait before applying
	OutcomePendingDeletion Outcome = "pending_deletion"
)

// Result describes what a reconcile run found and did
type Result struct {
	Outcome    Outcome
	SecretName string
	// VersionID is the imported version id, empty when no version existed
	VersionID string
	// RecoveryUntil is set for OutcomePendingDeletion
	RecoveryUntil time.Time
}

// Reconciler reconciles the remote secret for an environment with the
// Terraform state ledger
type Reconciler struct {
	store   secretstore.Store
	ledger  ledger.Importer
	project string
	kind    string
	logger  *slog.Logger
}

// New creates a reconciler for the given project and secret kind
func New(store secretstore.Store, importer ledger.Importer, project string, kind string, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Reconciler{
		store:   store,
		ledger:  importer,
		project: project,
		kind:    kind,
		logger:  logger,
	}
}

// Reconcile checks whether the environment's secret already exists remotely
// and, if it is active, imports it and its current version into state.
// Running it twice in a row is safe: import conflicts are logged and treated
// as no-ops.
func (r *Reconciler) Reconcile(ctx context.Context, environment string) (*Result, error) {
	name := models.SecretName(r.project, environment, r.kind)

	record, err := r.store.Describe(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}

	if record == nil {
		r.logger.InfoContext(ctx, "no remote secret found, nothing to import",
			slog.String("secret_name", name),
		)
		return &Result{Outcome: OutcomeNoSecret, SecretName: name}, nil
	}

	if record.State == models.SecretStatePendingDeletion {
		// Not resolved here: force-deleting a secret is destructive and stays
		// an explicit operator action
		r.logger.WarnContext(ctx, "secret is scheduled for deletion, creation will fail until the window elapses",
			slog.String("secret_name", name),
			slog.Time("recovery_until", record.RecoveryUntil),
		)
		return &Result{
			Outcome:       OutcomePendingDeletion,
			SecretName:    name,
			RecoveryUntil: record.RecoveryUntil,
		}, nil
	}

	imported, err := r.importResource(ctx, ledger.SecretAddress, name)
	if err != nil {
		return nil, err
	}

	versionID, versionImported, err := r.importCurrentVersion(ctx, name)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Outcome:    OutcomeAlreadyManaged,
		SecretName: name,
		VersionID:  versionID,
	}
	if imported || versionImported {
		result.Outcome = OutcomeImported
	}

	r.logger.InfoContext(ctx, "reconcile completed",
		slog.String("secret_name", name),
		slog.String("outcome", string(result.Outcome)),
		slog.String("version_id", versionID),
	)

	return result, nil
}

// importCurrentVersion imports the current secret version, if one exists.
// A secret with zero versions occurs only in transient states and skips the
// version import.
func (r *Reconciler) importCurrentVersion(ctx context.Context, name string) (string, bool, error) {
	versions, err := r.store.ListVersionIDs(ctx, name)
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}

	if len(versions) == 0 {
		r.logger.InfoContext(ctx, "secret has no versions, skipping version import",
			slog.String("secret_name", name),
		)
		return "", false, nil
	}

	versionID := versions[0]
	imported, err := r.importResource(ctx, ledger.SecretVersionAddress, ledger.VersionID(name, versionID))
	if err != nil {
		return "", false, err
	}

	return versionID, imported, nil
}

// importResource imports a single address, downgrading an import conflict to
// a warning so re-runs stay idempotent. The returned bool reports whether the
// ledger actually gained a mapping.
func (r *Reconciler) importResource(ctx context.Context, address string, remoteID string) (bool, error) {
	err := r.ledger.ImportResource(ctx, address, remoteID)
	if err == nil {
		return true, nil
	}

	if errors.Is(err, ledger.ErrImportConflict) {
		r.logger.WarnContext(ctx, "resource already in state, skipping import",
			slog.String("address", address),
			slog.String("remote_id", remoteID),
		)
		return false, nil
	}

	return false, fmt.Errorf("failed to import %s: %w", address, err)
}
