package config

import (
	"testing"

	"github.com/novabot-ai/novabot/internal/models"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		envVars   map[string]string
		wantErr   bool
		checkFunc func(*testing.T, *Config)
	}{
		{
			name: "valid configuration with all env vars",
			envVars: map[string]string{
				"STAGE":                   "staging",
				"AWS_REGION":              "us-west-2",
				"ZENDESK_SECRET_NAME":     "custom-secret",
				"TERRAFORM_DIR":           "/srv/terraform/staging",
				"TICKET_AUDIT_TABLE_NAME": "custom-table",
				"ALERTS_TOPIC_ARN":        "arn:aws:sns:us-west-2:123456789012:alerts",
			},
			wantErr: false,
			checkFunc: func(t *testing.T, cfg *Config) {
				if cfg.Stage != models.StageStaging {
					t.Errorf("Stage = %v, want %v", cfg.Stage, models.StageStaging)
				}
				if cfg.AWSRegion != "us-west-2" {
					t.Errorf("AWSRegion = %v, want %v", cfg.AWSRegion, "us-west-2")
				}
				if cfg.ZendeskSecretName != "custom-secret" {
					t.Errorf("ZendeskSecretName = %v, want %v", cfg.ZendeskSecretName, "custom-secret")
				}
				if cfg.TerraformDir != "/srv/terraform/staging" {
					t.Errorf("TerraformDir = %v, want %v", cfg.TerraformDir, "/srv/terraform/staging")
				}
			},
		},
		{
			name:    "defaults when optional vars not set",
			envVars: map[string]string{},
			wantErr: false,
			checkFunc: func(t *testing.T, cfg *Config) {
				if cfg.Stage != models.StageDev {
					t.Errorf("Stage = %v, want default %v", cfg.Stage, models.StageDev)
				}
				if cfg.AWSRegion != "us-east-1" {
					t.Errorf("AWSRegion = %v, want default %v", cfg.AWSRegion, "us-east-1")
				}
				if cfg.ZendeskSecretName != "novabot-dev-zendesk-credentials" {
					t.Errorf("ZendeskSecretName = %v, want derived default", cfg.ZendeskSecretName)
				}
				if cfg.TerraformDir != "environments/dev" {
					t.Errorf("TerraformDir = %v, want default %v", cfg.TerraformDir, "environments/dev")
				}
				if cfg.TicketAuditTableName != "novabot-dev-ticket-audit" {
					t.Errorf("TicketAuditTableName = %v, want derived default", cfg.TicketAuditTableName)
				}
			},
		},
		{
			name: "secret name follows stage",
			envVars: map[string]string{
				"STAGE": "prod",
			},
			wantErr: false,
			checkFunc: func(t *testing.T, cfg *Config) {
				if cfg.ZendeskSecretName != "novabot-prod-zendesk-credentials" {
					t.Errorf("ZendeskSecretName = %v, want novabot-prod-zendesk-credentials", cfg.ZendeskSecretName)
				}
			},
		},
		{
			name: "invalid stage",
			envVars: map[string]string{
				"STAGE": "qa",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"STAGE", "AWS_REGION", "ZENDESK_SECRET_NAME", "TERRAFORM_DIR", "TICKET_AUDIT_TABLE_NAME", "ALERTS_TOPIC_ARN", "ZENDESK_BASE_URL", "FULFILLMENT_BUILD_PATH"} {
				t.Setenv(key, "")
			}
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			cfg, err := Load()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoadForStage(t *testing.T) {
	// STAGE in the environment must not leak into an explicit stage load
	t.Setenv("STAGE", "prod")
	t.Setenv("ZENDESK_SECRET_NAME", "")
	t.Setenv("TERRAFORM_DIR", "")
	t.Setenv("TICKET_AUDIT_TABLE_NAME", "")

	cfg, err := LoadForStage(models.StageStaging)
	if err != nil {
		t.Fatalf("LoadForStage() error = %v", err)
	}
	if cfg.Stage != models.StageStaging {
		t.Errorf("Stage = %v, want %v", cfg.Stage, models.StageStaging)
	}
	if cfg.ZendeskSecretName != "novabot-staging-zendesk-credentials" {
		t.Errorf("ZendeskSecretName = %v, want novabot-staging-zendesk-credentials", cfg.ZendeskSecretName)
	}
	if cfg.TerraformDir != "environments/staging" {
		t.Errorf("TerraformDir = %v, want environments/staging", cfg.TerraformDir)
	}

	if _, err := LoadForStage(models.Stage("qa")); err == nil {
		t.Error("LoadForStage() with invalid stage = nil, want error")
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := &Config{
		Stage:                models.StageDev,
		AWSRegion:            "us-east-1",
		ZendeskSecretName:    "novabot-dev-zendesk-credentials",
		TicketAuditTableName: "novabot-dev-ticket-audit",
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() on valid config = %v, want nil", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"invalid stage", func(c *Config) { c.Stage = models.Stage("qa") }},
		{"missing region", func(c *Config) { c.AWSRegion = "" }},
		{"missing secret name", func(c *Config) { c.ZendeskSecretName = "" }},
		{"missing audit table", func(c *Config) { c.TicketAuditTableName = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *valid
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestConfig_StageHelpers(t *testing.T) {
	cfg := &Config{Stage: models.StageProd}

	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true for prod")
	}
	if cfg.IsStaging() {
		t.Error("IsStaging() = true for prod")
	}
	if !cfg.IsProduction() {
		t.Error("IsProduction() = false for prod")
	}
}
