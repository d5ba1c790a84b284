// zendesk is the ticket-creation Lambda behind the NovaBot API Gateway. It
// reads the Zendesk API credentials from Secrets Manager, creates the ticket,
// and writes an audit record for every attempt.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/novabot-ai/novabot/internal/logging"
	"github.com/novabot-ai/novabot/internal/messaging"
	"github.com/novabot-ai/novabot/internal/models"
	"github.com/novabot-ai/novabot/internal/repository"
	"github.com/novabot-ai/novabot/internal/secrets"
	"github.com/novabot-ai/novabot/internal/zendesk"
	appconfig "github.com/novabot-ai/novabot/pkg/config"
)

// createTicketRequest is the API request body
type createTicketRequest struct {
	Subject        string `json:"subject"`
	Description    string `json:"description"`
	RequesterName  string `json:"requester_name"`
	RequesterEmail string `json:"requester_email"`
	Priority       string `json:"priority"`
}

// createTicketResponse is the API response body on success
type createTicketResponse struct {
	TicketID int64  `json:"ticket_id"`
	Status   string `json:"status"`
	AuditID  string `json:"audit_id"`
}

// credentialsReader reads Zendesk credentials from the secret store
type credentialsReader interface {
	GetZendeskCredentials(ctx context.Context, secretName string) (*secrets.ZendeskCredentials, error)
}

// clientFactory builds a Zendesk client for a set of credentials. Indirected
// so tests can substitute a fake client.
type clientFactory func(creds *secrets.ZendeskCredentials) zendesk.Client

// TicketHandler handles API Gateway ticket-creation requests
type TicketHandler struct {
	config     *appconfig.Config
	secrets    credentialsReader
	newClient  clientFactory
	repository repository.TicketRepository
	publisher  messaging.AlertPublisher
	logger     *slog.Logger
}

// NewTicketHandler creates a new ticket handler instance. publisher may be
// nil when no alerts topic is configured.
func NewTicketHandler(
	cfg *appconfig.Config,
	creds credentialsReader,
	newClient clientFactory,
	repo repository.TicketRepository,
	publisher messaging.AlertPublisher,
	logger *slog.Logger,
) *TicketHandler {
	return &TicketHandler{
		config:     cfg,
		secrets:    creds,
		newClient:  newClient,
		repository: repo,
		publisher:  publisher,
		logger:     logger,
	}
}

// HandleRequest processes one ticket-creation request
func (h *TicketHandler) HandleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var req createTicketRequest
	if err := json.Unmarshal([]byte(request.Body), &req); err != nil {
		return errorResponse(400, "invalid request body"), nil
	}
	if req.Subject == "" || req.RequesterEmail == "" {
		return errorResponse(400, "subject and requester_email are required"), nil
	}

	h.logger.InfoContext(ctx, "ticket creation requested",
		slog.String("subject", req.Subject),
		slog.String("stage", h.config.Stage.String()),
	)

	creds, err := h.secrets.GetZendeskCredentials(ctx, h.config.ZendeskSecretName)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load Zendesk credentials",
			slog.String("error", err.Error()),
		)
		return errorResponse(502, "ticketing backend unavailable"), nil
	}

	record := models.NewTicketRecord(h.config.Stage, req.Subject, req.RequesterEmail)

	ticket, err := h.newClient(creds).CreateTicket(ctx, &zendesk.TicketRequest{
		Subject:        req.Subject,
		Body:           req.Description,
		RequesterName:  req.RequesterName,
		RequesterEmail: req.RequesterEmail,
		Priority:       req.Priority,
		Tags:           []string{"novabot", h.config.Stage.String()},
	})
	if err != nil {
		return h.handleFailure(ctx, record, err), nil
	}

	record.ZendeskTicketID = ticket.ID
	if err := h.repository.SaveTicketRecord(ctx, record); err != nil {
		// The ticket exists; a lost audit record is logged, not surfaced
		h.logger.ErrorContext(ctx, "failed to save ticket audit record",
			slog.String("audit_id", record.ID),
			slog.String("error", err.Error()),
		)
	}

	body, _ := json.Marshal(createTicketResponse{
		TicketID: ticket.ID,
		Status:   ticket.Status,
		AuditID:  record.ID,
	})

	return events.APIGatewayProxyResponse{
		StatusCode: 201,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}, nil
}

// handleFailure records the failed attempt, raises an alert, and builds the
// error response
func (h *TicketHandler) handleFailure(ctx context.Context, record *models.TicketRecord, cause error) events.APIGatewayProxyResponse {
	h.logger.ErrorContext(ctx, "ticket creation failed",
		slog.String("audit_id", record.ID),
		slog.String("error", cause.Error()),
	)

	record.Status = models.TicketStatusFailed
	record.ErrorMessage = cause.Error()
	if err := h.repository.SaveTicketRecord(ctx, record); err != nil {
		h.logger.ErrorContext(ctx, "failed to save failed-ticket audit record",
			slog.String("audit_id", record.ID),
			slog.String("error", err.Error()),
		)
	}

	if h.publisher != nil {
		alert := models.NewAlert(models.AlertKindTicketFailure, h.config.Stage,
			"Zendesk ticket creation failed",
			fmt.Sprintf("audit record %s: %v", record.ID, cause),
		)
		if err := h.publisher.PublishAlert(ctx, alert); err != nil {
			h.logger.WarnContext(ctx, "failed to publish ticket-failure alert",
				slog.String("error", err.Error()),
			)
		}
	}

	return errorResponse(502, "failed to create ticket")
}

func errorResponse(status int, message string) events.APIGatewayProxyResponse {
	body, _ := json.Marshal(map[string]string{"error": message})
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}
}

func main() {
	// Setup structured logging
	logger := logging.NewLogger("zendesk")
	slog.SetDefault(logger)

	// Load configuration
	cfg := appconfig.MustLoad()

	logger.Info("zendesk lambda starting",
		slog.String("stage", cfg.Stage.String()),
		slog.String("region", cfg.AWSRegion),
	)

	// Initialize AWS SDK
	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		logger.Error("failed to load AWS config", slog.String("error", err.Error()))
		panic(fmt.Sprintf("failed to load AWS config: %v", err))
	}

	secretsManager := secrets.NewManager(awsCfg, logger)
	repo := repository.NewDynamoDBRepository(dynamodb.NewFromConfig(awsCfg), cfg.TicketAuditTableName)

	var publisher messaging.AlertPublisher
	if cfg.AlertsTopicArn != "" {
		publisher = messaging.NewSNSClient(sns.NewFromConfig(awsCfg), cfg.AlertsTopicArn, logger)
	}

	newClient := func(creds *secrets.ZendeskCredentials) zendesk.Client {
		return zendesk.NewAPIClient(zendesk.APIClientConfig{
			Subdomain: creds.Subdomain,
			BaseURL:   cfg.ZendeskBaseURL,
			Email:     creds.Email,
			APIToken:  creds.APIToken,
			Logger:    logger,
		})
	}

	handler := NewTicketHandler(cfg, secretsManager, newClient, repo, publisher, logger)
	lambda.Start(handler.HandleRequest)
}
