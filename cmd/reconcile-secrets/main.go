// reconcile-secrets brings an environment's Zendesk credentials secret under
// Terraform management before an apply. Destroying an environment leaves the
// secret name reserved for its 7-day recovery window, so the next apply
// cannot recreate it; this tool detects the remote secret and imports it (and
// its current version) into state instead.
//
// Usage: reconcile-secrets [environment]   (environment defaults to dev)
//
// Exit codes: 0 on success, including the nothing-to-import path; 1 on a
// lookup or import failure; 2 when the secret is pending deletion and the
// operator must force-delete it or wait out the window.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/novabot-ai/novabot/internal/ledger"
	"github.com/novabot-ai/novabot/internal/logging"
	"github.com/novabot-ai/novabot/internal/messaging"
	"github.com/novabot-ai/novabot/internal/models"
	"github.com/novabot-ai/novabot/internal/reconciler"
	"github.com/novabot-ai/novabot/internal/secretstore"
	appconfig "github.com/novabot-ai/novabot/pkg/config"
)

const (
	exitOK            = 0
	exitFailure       = 1
	exitPendingSecret = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	environment := "dev"
	if len(args) > 0 && args[0] != "" {
		environment = args[0]
	}

	// Setup structured logging
	logger := logging.NewLogger("reconcile-secrets")
	slog.SetDefault(logger)

	stage := models.Stage(environment)
	if !stage.IsValid() {
		logger.Error("invalid environment",
			slog.String("environment", environment),
		)
		fmt.Fprintf(os.Stderr, "invalid environment %q (must be dev, staging, or prod)\n", environment)
		return exitFailure
	}

	// The positional argument wins over STAGE from the environment
	cfg, err := appconfig.LoadForStage(stage)
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		return exitFailure
	}

	logger.Info("secret reconciliation starting",
		slog.String("environment", environment),
		slog.String("terraform_dir", cfg.TerraformDir),
	)

	ctx := context.Background()

	// Initialize AWS SDK
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		logger.Error("failed to load AWS config", slog.String("error", err.Error()))
		return exitFailure
	}

	store := secretstore.NewAWSStore(awsCfg, logger)
	importer := ledger.NewTerraformCLI(ledger.TerraformCLIConfig{
		Dir:    cfg.TerraformDir,
		Logger: logger,
	})

	r := reconciler.New(store, importer, appconfig.Project, appconfig.SecretKindZendeskCredentials, logger)

	result, err := r.Reconcile(ctx, environment)
	if err != nil {
		logger.Error("reconciliation failed", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "reconciliation failed: %v\n", err)
		return exitFailure
	}

	switch result.Outcome {
	case reconciler.OutcomeNoSecret:
		fmt.Printf("no secret named %s exists, no import needed\n", result.SecretName)
		return exitOK

	case reconciler.OutcomePendingDeletion:
		notifyPendingDeletion(ctx, awsCfg, cfg, logger, result)
		fmt.Fprintf(os.Stderr,
			"secret %s is scheduled for deletion (name free after %s)\n"+
				"creation will fail until then; either wait, or force-delete with:\n"+
				"  aws secretsmanager delete-secret --secret-id %s --force-delete-without-recovery\n",
			result.SecretName,
			result.RecoveryUntil.Format(time.RFC3339),
			result.SecretName,
		)
		return exitPendingSecret

	case reconciler.OutcomeAlreadyManaged:
		fmt.Printf("secret %s already in terraform state, nothing to do\n", result.SecretName)
		return exitOK

	default:
		fmt.Printf("imported secret %s", result.SecretName)
		if result.VersionID != "" {
			fmt.Printf(" (version %s)", result.VersionID)
		}
		fmt.Println(" into terraform state")
		return exitOK
	}
}

// notifyPendingDeletion publishes an operator alert when an alerts topic is
// configured. Best effort: a publish failure never changes the exit code.
func notifyPendingDeletion(ctx context.Context, awsCfg aws.Config, cfg *appconfig.Config, logger *slog.Logger, result *reconciler.Result) {
	if cfg.AlertsTopicArn == "" {
		return
	}

	publisher := messaging.NewSNSClient(sns.NewFromConfig(awsCfg), cfg.AlertsTopicArn, logger)
	alert := models.NewAlert(models.AlertKindPendingDeletion, cfg.Stage,
		fmt.Sprintf("secret %s pending deletion", result.SecretName),
		fmt.Sprintf("secret %s is in its deletion recovery window until %s; apply will fail until an operator force-deletes it or the window elapses",
			result.SecretName, result.RecoveryUntil.Format(time.RFC3339)),
	)

	if err := publisher.PublishAlert(ctx, alert); err != nil {
		logger.Warn("failed to publish pending-deletion alert", slog.String("error", err.Error()))
	}
}
