package config

import (
	"fmt"
	"os"

	"github.com/novabot-ai/novabot/internal/models"
)

// Project is the fixed project identifier used to derive resource names
const Project = "novabot"

// SecretKindZendeskCredentials is the resource kind for the Zendesk API secret
const SecretKindZendeskCredentials = "zendesk-credentials"

// Config holds all configuration for the application
type Config struct {
	// Stage is the deployment environment (dev, staging, prod)
	Stage models.Stage

	// AWS Configuration
	AWSRegion string

	// Secrets Manager Configuration
	ZendeskSecretName string

	// Terraform Configuration
	TerraformDir string

	// DynamoDB Configuration
	TicketAuditTableName string

	// SNS Configuration
	AlertsTopicArn string // Topic for operational alerts (optional)

	// Zendesk Configuration
	ZendeskBaseURL string // Override for the Zendesk API base URL (tests, localstack)

	// Lambda build Configuration
	FulfillmentBuildPath string // Path probed for the deployable fulfillment artifact
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	stage := os.Getenv("STAGE")
	if stage == "" {
		stage = "dev"
	}

	stageEnum := models.Stage(stage)
	if !stageEnum.IsValid() {
		return nil, fmt.Errorf("invalid STAGE value: %s (must be dev, staging, or prod)", stage)
	}

	return LoadForStage(stageEnum)
}

// LoadForStage reads configuration from environment variables for an
// explicitly chosen stage, ignoring STAGE. CLIs that take the stage as an
// argument use this instead of Load.
func LoadForStage(stage models.Stage) (*Config, error) {
	if !stage.IsValid() {
		return nil, fmt.Errorf("invalid stage: %s (must be dev, staging, or prod)", stage)
	}

	awsRegion := os.Getenv("AWS_REGION")
	if awsRegion == "" {
		awsRegion = "us-east-1"
	}

	zendeskSecretName := os.Getenv("ZENDESK_SECRET_NAME")
	if zendeskSecretName == "" {
		zendeskSecretName = models.SecretName(Project, stage.String(), SecretKindZendeskCredentials)
	}

	terraformDir := os.Getenv("TERRAFORM_DIR")
	if terraformDir == "" {
		terraformDir = fmt.Sprintf("environments/%s", stage)
	}

	ticketAuditTableName := os.Getenv("TICKET_AUDIT_TABLE_NAME")
	if ticketAuditTableName == "" {
		ticketAuditTableName = fmt.Sprintf("%s-%s-ticket-audit", Project, stage)
	}

	// Optional - alerts are skipped when no topic is configured
	alertsTopicArn := os.Getenv("ALERTS_TOPIC_ARN")

	zendeskBaseURL := os.Getenv("ZENDESK_BASE_URL")

	fulfillmentBuildPath := os.Getenv("FULFILLMENT_BUILD_PATH")
	if fulfillmentBuildPath == "" {
		fulfillmentBuildPath = "build/fulfillment.zip"
	}

	return &Config{
		Stage:                stage,
		AWSRegion:            awsRegion,
		ZendeskSecretName:    zendeskSecretName,
		TerraformDir:         terraformDir,
		TicketAuditTableName: ticketAuditTableName,
		AlertsTopicArn:       alertsTopicArn,
		ZendeskBaseURL:       zendeskBaseURL,
		FulfillmentBuildPath: fulfillmentBuildPath,
	}, nil
}

// MustLoad loads configuration and panics if there's an error
// This is useful for Lambda handlers where configuration errors should prevent startup
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}

// Validate checks that all required configuration is present
func (c *Config) Validate() error {
	if !c.Stage.IsValid() {
		return fmt.Errorf("invalid stage: %s", c.Stage)
	}

	if c.AWSRegion == "" {
		return fmt.Errorf("AWS region is required")
	}

	if c.ZendeskSecretName == "" {
		return fmt.Errorf("Zendesk secret name is required")
	}

	if c.TicketAuditTableName == "" {
		return fmt.Errorf("ticket audit table name is required")
	}

	return nil
}

// IsDevelopment returns true if the stage is development
func (c *Config) IsDevelopment() bool {
	return c.Stage == models.StageDev
}

// IsStaging returns true if the stage is staging
func (c *Config) IsStaging() bool {
	return c.Stage == models.StageStaging
}

// IsProduction returns true if the stage is production
func (c *Config) IsProduction() bool {
	return c.Stage == models.StageProd
}
