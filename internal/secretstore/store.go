package secretstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/novabot-ai/novabot/internal/models"
)

// currentStage is the staging label Secrets Manager attaches to the version
// holding the live secret value
const currentStage = "AWSCURRENT"

// recoveryWindow is the deletion retention period configured on this
// project's secret resources. DescribeSecret reports when deletion was
// requested, not when the name frees up, so the deadline is derived here.
const recoveryWindow = 7 * 24 * time.Hour

// Store defines read-only access to the remote secret store. Implementations
// never mutate secret content.
type Store interface {
	// Describe looks up a secret by name. It returns nil, nil when no secret
	// exists under the name.
	Describe(ctx context.Context, name string) (*models.SecretRecord, error)

	// ListVersionIDs returns the version ids for a secret, the version staged
	// AWSCURRENT first, then the rest by descending creation date.
	ListVersionIDs(ctx context.Context, name string) ([]string, error)
}

// api is the subset of the Secrets Manager client the store uses
type api interface {
	DescribeSecret(ctx context.Context, params *secretsmanager.DescribeSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.DescribeSecretOutput, error)
	ListSecretVersionIds(ctx context.Context, params *secretsmanager.ListSecretVersionIdsInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.ListSecretVersionIdsOutput, error)
}

// AWSStore implements Store using AWS Secrets Manager
type AWSStore struct {
	client api
	logger *slog.Logger
}

// NewAWSStore creates a new Secrets Manager backed store
func NewAWSStore(cfg aws.Config, logger *slog.Logger) *AWSStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &AWSStore{
		client: secretsmanager.NewFromConfig(cfg),
		logger: logger,
	}
}

// Describe looks up a secret by name
func (s *AWSStore) Describe(ctx context.Context, name string) (*models.SecretRecord, error) {
	input := &secretsmanager.DescribeSecretInput{
		SecretId: aws.String(name),
	}

	result, err := s.client.DescribeSecret(ctx, input)
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			s.logger.DebugContext(ctx, "secret not found",
				slog.String("secret_name", name),
			)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to describe secret %s: %w", name, err)
	}

	record := &models.SecretRecord{
		Name:  aws.ToString(result.Name),
		ARN:   aws.ToString(result.ARN),
		State: models.SecretStateActive,
	}

	// A populated DeletedDate means the secret is in its recovery window and
	// the name cannot be reused yet
	if result.DeletedDate != nil {
		record.State = models.SecretStatePendingDeletion
		record.DeletedAt = *result.DeletedDate
		record.RecoveryUntil = result.DeletedDate.Add(recoveryWindow)
	}

	s.logger.DebugContext(ctx, "secret described",
		slog.String("secret_name", name),
		slog.String("state", record.State.String()),
	)

	return record, nil
}

// ListVersionIDs returns the version ids for a secret, AWSCURRENT first
func (s *AWSStore) ListVersionIDs(ctx context.Context, name string) ([]string, error) {
	input := &secretsmanager.ListSecretVersionIdsInput{
		SecretId: aws.String(name),
	}

	result, err := s.client.ListSecretVersionIds(ctx, input)
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list versions for secret %s: %w", name, err)
	}

	return orderVersions(result.Versions), nil
}

// orderVersions sorts version entries so the AWSCURRENT staged version comes
// first and the remainder follow by descending creation date. The positional
// order of the API response is not meaningful and is never relied on.
func orderVersions(versions []types.SecretVersionsListEntry) []string {
	sorted := make([]types.SecretVersionsListEntry, len(versions))
	copy(sorted, versions)

	sort.SliceStable(sorted, func(i, j int) bool {
		if isCurrent(sorted[i]) != isCurrent(sorted[j]) {
			return isCurrent(sorted[i])
		}
		return createdAfter(sorted[i], sorted[j])
	})

	ids := make([]string, 0, len(sorted))
	for _, v := range sorted {
		ids = append(ids, aws.ToString(v.VersionId))
	}
	return ids
}

func isCurrent(v types.SecretVersionsListEntry) bool {
	for _, stage := range v.VersionStages {
		if stage == currentStage {
			return true
		}
	}
	return false
}

func createdAfter(a, b types.SecretVersionsListEntry) bool {
	if a.CreatedDate == nil || b.CreatedDate == nil {
		return b.CreatedDate == nil && a.CreatedDate != nil
	}
	return a.CreatedDate.After(*b.CreatedDate)
}
