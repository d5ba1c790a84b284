package zendesk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Client defines the interface for Zendesk ticket operations
type Client interface {
	CreateTicket(ctx context.Context, req *TicketRequest) (*Ticket, error)
}

// TicketRequest holds the fields for a new support ticket
type TicketRequest struct {
	Subject        string
	Body           string
	RequesterName  string
	RequesterEmail string
	Priority       string
	Tags           []string
}

// Ticket is the subset of the Zendesk ticket the callers use
type Ticket struct {
	ID        int64     `json:"id"`
	Status    string    `json:"status"`
	Subject   string    `json:"subject"`
	CreatedAt time.Time `json:"created_at"`
}

// APIClient is an HTTP client for the Zendesk Tickets API
type APIClient struct {
	baseURL    string
	email      string
	apiToken   string
	httpClient *http.Client
	logger     *slog.Logger
	maxRetries int
}

// APIClientConfig holds configuration for the Zendesk client
type APIClientConfig struct {
	// Subdomain is the Zendesk account subdomain ({subdomain}.zendesk.com)
	Subdomain string
	// BaseURL overrides the URL derived from Subdomain (tests)
	BaseURL    string
	Email      string
	APIToken   string
	Timeout    time.Duration
	MaxRetries int
	Logger     *slog.Logger
}

// NewAPIClient creates a new Zendesk API client
func NewAPIClient(config APIClientConfig) *APIClient {
	if config.BaseURL == "" {
		config.BaseURL = fmt.Sprintf("https://%s.zendesk.com", config.Subdomain)
	}
	if config.Timeout == 0 {
		config.Timeout = 15 * time.Second
	}
	if config.MaxRetries == 0 {
		config.MaxRetries = 3
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	return &APIClient{
		baseURL:  config.BaseURL,
		email:    config.Email,
		apiToken: config.APIToken,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger:     config.Logger,
		maxRetries: config.MaxRetries,
	}
}

// ticketPayload is the wire shape of the create-ticket request
type ticketPayload struct {
	Ticket struct {
		Subject string `json:"subject"`
		Comment struct {
			Body string `json:"body"`
		} `json:"comment"`
		Requester struct {
			Name  string `json:"name,omitempty"`
			Email string `json:"email"`
		} `json:"requester"`
		Priority string   `json:"priority,omitempty"`
		Tags     []string `json:"tags,omitempty"`
	} `json:"ticket"`
}

// ticketEnvelope is the wire shape of the create-ticket response
type ticketEnvelope struct {
	Ticket Ticket `json:"ticket"`
}

// CreateTicket creates a support ticket with retry logic. Retries happen on
// transport errors, 429 and 5xx responses only.
func (c *APIClient) CreateTicket(ctx context.Context, req *TicketRequest) (*Ticket, error) {
	if req.Subject == "" || req.RequesterEmail == "" {
		return nil, fmt.Errorf("ticket requires a subject and requester email")
	}

	var lastErr error

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 1s, 2s, 4s, etc.
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			c.logger.DebugContext(ctx, "retrying ticket creation",
				slog.Int("attempt", attempt+1),
				slog.Int("max_retries", c.maxRetries),
				slog.Duration("backoff", backoff),
			)

			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("context cancelled during retry: %w", ctx.Err())
			case <-time.After(backoff):
			}
		}

		ticket, retryable, err := c.createOnce(ctx, req)
		if err == nil {
			c.logger.InfoContext(ctx, "ticket created",
				slog.Int64("ticket_id", ticket.ID),
				slog.Int("attempt", attempt+1),
			)
			return ticket, nil
		}

		lastErr = err
		if !retryable {
			return nil, err
		}

		c.logger.WarnContext(ctx, "ticket creation attempt failed",
			slog.Int("attempt", attempt+1),
			slog.String("error", err.Error()),
		)
	}

	return nil, fmt.Errorf("failed to create ticket after %d attempts: %w", c.maxRetries, lastErr)
}

// createOnce performs a single create-ticket request. The bool reports
// whether a failure is retryable.
func (c *APIClient) createOnce(ctx context.Context, req *TicketRequest) (*Ticket, bool, error) {
	var payload ticketPayload
	payload.Ticket.Subject = req.Subject
	payload.Ticket.Comment.Body = req.Body
	payload.Ticket.Requester.Name = req.RequesterName
	payload.Ticket.Requester.Email = req.RequesterEmail
	payload.Ticket.Priority = req.Priority
	payload.Ticket.Tags = req.Tags

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, false, fmt.Errorf("failed to marshal ticket payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v2/tickets.json", bytes.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	// Zendesk API token auth: {email}/token as the username
	httpReq.SetBasicAuth(c.email+"/token", c.apiToken)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, true, fmt.Errorf("failed to send HTTP request: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, true, fmt.Errorf("zendesk returned status %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, false, fmt.Errorf("zendesk returned status %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var envelope ticketEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, false, fmt.Errorf("failed to parse ticket response: %w", err)
	}

	return &envelope.Ticket, false, nil
}

// truncate truncates a response body for error messages
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
