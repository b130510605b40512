package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/rocketchat-client/internal/http"
	"github.com/fivetwenty-io/rocketchat-client/pkg/rocketchat"
)

// IntegrationsClient implements rocketchat.IntegrationsClient.
type IntegrationsClient struct {
	httpClient *http.Client
}

// NewIntegrationsClient creates a new integrations client.
func NewIntegrationsClient(httpClient *http.Client) *IntegrationsClient {
	return &IntegrationsClient{
		httpClient: httpClient,
	}
}

// Create implements rocketchat.IntegrationsClient.Create. Only incoming and
// outgoing webhooks are accepted; incoming webhooks never send event or urls.
func (c *IntegrationsClient) Create(ctx context.Context, integration *rocketchat.NewIntegration) (*rocketchat.IntegrationResponse, error) {
	params, err := integrationParams(integration)
	if err != nil {
		return nil, err
	}

	switch integration.Type {
	case rocketchat.IntegrationWebhookOutgoing:
	case rocketchat.IntegrationWebhookIncoming:
		delete(params, "event")
		delete(params, "urls")
	default:
		return nil, &rocketchat.UnsupportedIntegrationTypeError{Type: integration.Type}
	}

	resp, err := c.httpClient.Post(ctx, "integrations.create", params)
	if err != nil {
		return nil, fmt.Errorf("creating integration: %w", err)
	}

	return decode[rocketchat.IntegrationResponse](resp, "integration")
}

// List implements rocketchat.IntegrationsClient.List.
func (c *IntegrationsClient) List(ctx context.Context, opts *rocketchat.ListOptions) (*rocketchat.Pager[rocketchat.Integration], error) {
	return newPager[rocketchat.Integration](ctx, c.httpClient, "integrations.list", "integrations", nil, opts)
}

// Update implements rocketchat.IntegrationsClient.Update.
func (c *IntegrationsClient) Update(ctx context.Context, integrationID string, integration *rocketchat.NewIntegration) (*rocketchat.IntegrationResponse, error) {
	params, err := integrationParams(integration)
	if err != nil {
		return nil, err
	}

	params["integrationId"] = integrationID

	resp, err := c.httpClient.Put(ctx, "integrations.update", params)
	if err != nil {
		return nil, fmt.Errorf("updating integration: %w", err)
	}

	return decode[rocketchat.IntegrationResponse](resp, "integration")
}

// Remove implements rocketchat.IntegrationsClient.Remove.
func (c *IntegrationsClient) Remove(ctx context.Context, integrationType, integrationID string) error {
	_, err := c.httpClient.Post(ctx, "integrations.remove", rocketchat.Params{
		"type":          integrationType,
		"integrationId": integrationID,
	})
	if err != nil {
		return fmt.Errorf("removing integration: %w", err)
	}

	return nil
}

func integrationParams(integration *rocketchat.NewIntegration) (rocketchat.Params, error) {
	if integration == nil {
		return nil, &rocketchat.UnsupportedIntegrationTypeError{}
	}

	params, err := rocketchat.ParamsFrom(integration)
	if err != nil {
		return nil, err
	}

	return params.With(integration.Extra), nil
}
