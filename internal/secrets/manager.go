package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretValue represents a generic secret value
type SecretValue map[string]string

// ZendeskCredentials represents the Zendesk API token credentials stored in
// Secrets Manager
type ZendeskCredentials struct {
	Subdomain string `json:"subdomain"`
	Email     string `json:"email"`
	APIToken  string `json:"api_token"`
}

// cachedSecret represents a cached secret with TTL
type cachedSecret struct {
	Value     SecretValue
	ExpiresAt time.Time
}

// valueAPI is the subset of the Secrets Manager client the reader uses
type valueAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// Manager reads secret values from AWS Secrets Manager with caching. It is
// strictly read-only: secret content is managed out-of-band and never written
// back from this code.
type Manager struct {
	client    valueAPI
	logger    *slog.Logger
	cache     map[string]*cachedSecret
	cacheLock sync.RWMutex
	cacheTTL  time.Duration
}

// NewManager creates a new secrets manager with caching
func NewManager(cfg aws.Config, logger *slog.Logger) *Manager {
	return &Manager{
		client:    secretsmanager.NewFromConfig(cfg),
		logger:    logger,
		cache:     make(map[string]*cachedSecret),
		cacheLock: sync.RWMutex{},
		cacheTTL:  5 * time.Minute, // Cache secrets for 5 minutes
	}
}

// GetSecret retrieves a secret from AWS Secrets Manager with caching
func (m *Manager) GetSecret(ctx context.Context, secretName string) (SecretValue, error) {
	// Check cache first
	if cached := m.getFromCache(secretName); cached != nil {
		m.logger.Debug("secret cache hit", slog.String("secret_name", "[REDACTED]"))
		return cached.Value, nil
	}

	m.logger.Debug("secret cache miss, fetching from AWS", slog.String("secret_name", "[REDACTED]"))

	// Fetch from AWS Secrets Manager
	input := &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretName),
	}

	result, err := m.client.GetSecretValue(ctx, input)
	if err != nil {
		m.logger.Error("failed to retrieve secret",
			slog.String("error", err.Error()),
			// SECURITY: Never log secret name in production
			slog.String("secret_name", "[REDACTED]"),
		)
		return nil, fmt.Errorf("failed to retrieve secret: %w", err)
	}

	if result.SecretString == nil {
		return nil, fmt.Errorf("secret has no string value")
	}

	// Parse secret JSON
	var secretValue SecretValue
	if err := json.Unmarshal([]byte(*result.SecretString), &secretValue); err != nil {
		return nil, fmt.Errorf("failed to parse secret JSON: %w", err)
	}

	// Cache the secret
	m.putInCache(secretName, secretValue)

	return secretValue, nil
}

// GetZendeskCredentials retrieves Zendesk API credentials from a secret
func (m *Manager) GetZendeskCredentials(ctx context.Context, secretName string) (*ZendeskCredentials, error) {
	secretValue, err := m.GetSecret(ctx, secretName)
	if err != nil {
		return nil, err
	}

	creds := &ZendeskCredentials{
		Subdomain: secretValue["subdomain"],
		Email:     secretValue["email"],
		APIToken:  secretValue["api_token"],
	}

	// Validate required fields. A freshly provisioned secret still holds the
	// placeholder value and fails here until an operator sets the real one.
	if creds.Subdomain == "" || creds.Email == "" || creds.APIToken == "" {
		return nil, fmt.Errorf("secret missing required Zendesk fields (subdomain, email, api_token)")
	}

	// SECURITY: Never log credentials
	m.logger.Debug("Zendesk credentials retrieved",
		slog.String("secret_name", "[REDACTED]"),
	)

	return creds, nil
}

// getFromCache retrieves a secret from cache if not expired
func (m *Manager) getFromCache(secretName string) *cachedSecret {
	m.cacheLock.RLock()
	defer m.cacheLock.RUnlock()

	cached, exists := m.cache[secretName]
	if !exists {
		return nil
	}

	// Check if expired
	if time.Now().After(cached.ExpiresAt) {
		return nil
	}

	return cached
}

// putInCache stores a secret in cache with TTL
func (m *Manager) putInCache(secretName string, value SecretValue) {
	m.cacheLock.Lock()
	defer m.cacheLock.Unlock()

	m.cache[secretName] = &cachedSecret{
		Value:     value,
		ExpiresAt: time.Now().Add(m.cacheTTL),
	}
}

// ClearCache clears all cached secrets
func (m *Manager) ClearCache() {
	m.cacheLock.Lock()
	defer m.cacheLock.Unlock()

	m.cache = make(map[string]*cachedSecret)
	m.logger.Debug("secret cache cleared")
}

// GetCacheSize returns the number of cached secrets
func (m *Manager) GetCacheSize() int {
	m.cacheLock.RLock()
	defer m.cacheLock.RUnlock()

	return len(m.cache)
}
