// fulfillment is the Lex fulfillment Lambda for the NovaBot bot. The real
// fulfillment artifact ships from a separate build; when none exists this
// stub is packaged instead and closes every intent with a fixed placeholder
// message.
package main

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/novabot-ai/novabot/internal/artifact"
	"github.com/novabot-ai/novabot/internal/logging"
	appconfig "github.com/novabot-ai/novabot/pkg/config"
)

// LexV2Event is the subset of the Lex V2 input event the handler reads
type LexV2Event struct {
	SessionState struct {
		Intent struct {
			Name string `json:"name"`
		} `json:"intent"`
	} `json:"sessionState"`
	SessionID string `json:"sessionId"`
}

// LexV2Response is the Lex V2 fulfillment response shape
type LexV2Response struct {
	SessionState struct {
		DialogAction struct {
			Type string `json:"type"`
		} `json:"dialogAction"`
		Intent struct {
			Name  string `json:"name"`
			State string `json:"state"`
		} `json:"intent"`
	} `json:"sessionState"`
	Messages []LexV2Message `json:"messages"`
}

// LexV2Message is one message in a Lex V2 response
type LexV2Message struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// FulfillmentHandler closes Lex intents with the placeholder response
type FulfillmentHandler struct {
	config *appconfig.Config
	logger *slog.Logger
}

// NewFulfillmentHandler creates a new fulfillment handler instance
func NewFulfillmentHandler(cfg *appconfig.Config, logger *slog.Logger) *FulfillmentHandler {
	return &FulfillmentHandler{
		config: cfg,
		logger: logger,
	}
}

// HandleEvent fulfills a Lex intent with the fixed placeholder message
func (h *FulfillmentHandler) HandleEvent(ctx context.Context, event LexV2Event) (LexV2Response, error) {
	h.logger.InfoContext(ctx, "fulfillment request received",
		slog.String("intent", event.SessionState.Intent.Name),
		slog.String("session_id", event.SessionID),
		slog.String("stage", h.config.Stage.String()),
	)

	placeholder := artifact.NewPlaceholderResponse("novabot-" + h.config.Stage.String() + "-fulfillment")

	var response LexV2Response
	response.SessionState.DialogAction.Type = "Close"
	response.SessionState.Intent.Name = event.SessionState.Intent.Name
	response.SessionState.Intent.State = "Fulfilled"
	response.Messages = []LexV2Message{
		{
			ContentType: "PlainText",
			Content:     placeholder.Message,
		},
	}

	return response, nil
}

func main() {
	// Setup structured logging
	logger := logging.NewLogger("fulfillment")
	slog.SetDefault(logger)

	// Load configuration
	cfg := appconfig.MustLoad()

	// Packaging selects between the real build artifact and this stub once,
	// before deploy; log which one is live so drift is visible
	source := artifact.Resolve(cfg.FulfillmentBuildPath)
	logger.Info("fulfillment lambda starting",
		slog.String("stage", cfg.Stage.String()),
		slog.String("artifact_source", source.String()),
	)

	handler := NewFulfillmentHandler(cfg, logger)
	lambda.Start(handler.HandleEvent)
}
