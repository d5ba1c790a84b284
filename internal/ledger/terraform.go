package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// alreadyManagedMarker is the phrase the Terraform CLI prints when an import
// targets an address that already exists in state
const alreadyManagedMarker = "Resource already managed by Terraform"

// TerraformCLI implements Importer by driving the terraform binary in a
// configured working directory
type TerraformCLI struct {
	binary  string
	dir     string
	timeout time.Duration
	logger  *slog.Logger
}

// TerraformCLIConfig holds configuration for the Terraform CLI importer
type TerraformCLIConfig struct {
	// Binary is the terraform executable, defaults to "terraform" on PATH
	Binary string
	// Dir is the working directory holding the environment's root module
	Dir string
	// Timeout bounds a single import invocation
	Timeout time.Duration
	Logger  *slog.Logger
}

// NewTerraformCLI creates a new Terraform CLI importer
func NewTerraformCLI(config TerraformCLIConfig) *TerraformCLI {
	if config.Binary == "" {
		config.Binary = "terraform"
	}
	if config.Timeout == 0 {
		config.Timeout = 2 * time.Minute
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	return &TerraformCLI{
		binary:  config.Binary,
		dir:     config.Dir,
		timeout: config.Timeout,
		logger:  config.Logger,
	}
}

// ImportResource runs `terraform import` for the address and remote id.
// An address already present in state returns ErrImportConflict.
func (t *TerraformCLI) ImportResource(ctx context.Context, address string, remoteID string) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, t.binary, "import", "-input=false", "-no-color", address, remoteID)
	cmd.Dir = t.dir

	t.logger.InfoContext(ctx, "importing resource into terraform state",
		slog.String("address", address),
		slog.String("remote_id", remoteID),
		slog.String("dir", t.dir),
	)

	start := time.Now()
	output, err := cmd.CombinedOutput()
	duration := time.Since(start)

	if err != nil {
		if classified := classifyImportError(string(output)); classified != nil {
			return fmt.Errorf("import %s: %w", address, classified)
		}
		t.logger.ErrorContext(ctx, "terraform import failed",
			slog.String("address", address),
			slog.Duration("duration", duration),
			slog.String("output", truncateOutput(string(output), 500)),
		)
		return fmt.Errorf("terraform import %s failed: %w: %s", address, err, truncateOutput(string(output), 200))
	}

	t.logger.InfoContext(ctx, "terraform import completed",
		slog.String("address", address),
		slog.Duration("duration", duration),
	)

	return nil
}

// classifyImportError maps known Terraform CLI failure text to sentinel
// errors. Returns nil for unrecognized output.
func classifyImportError(output string) error {
	if strings.Contains(output, alreadyManagedMarker) {
		return ErrImportConflict
	}
	return nil
}

// truncateOutput truncates CLI output for logging
func truncateOutput(output string, maxLen int) string {
	output = strings.TrimSpace(output)
	if len(output) <= maxLen {
		return output
	}
	return output[:maxLen] + "..."
}
