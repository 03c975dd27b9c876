package console

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/giantswarm/projectinstall/pkg/logging"
)

const (
	headerAPIKey    = "x-api-key"
	headerRequestID = "x-request-id"

	// maxErrorBody caps how much of an error response is kept in APIError.
	maxErrorBody = 4096
)

// HTTPClientConfig configures an HTTPClient.
type HTTPClientConfig struct {
	// Endpoint is the base URL of the console API, e.g. https://developers.adobe.io/console.
	Endpoint string
	// APIKey is sent as the x-api-key header on every request.
	APIKey string
	// AccessToken is the bearer token used for every request.
	AccessToken string
	// Timeout bounds each individual request. Zero means no timeout.
	Timeout time.Duration
	// Transport overrides the base HTTP transport (used by tests).
	Transport http.RoundTripper
	// Logger receives request logs. Defaults to the ConsoleClient subsystem.
	Logger logging.Logger
}

// HTTPClient implements Client against the console REST API.
type HTTPClient struct {
	baseURL *url.URL
	apiKey  string
	http    *http.Client
	logger  logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a console client authenticated with a static bearer token.
func NewHTTPClient(cfg HTTPClientConfig) (*HTTPClient, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("console endpoint is required")
	}
	if cfg.AccessToken == "" {
		return nil, fmt.Errorf("access token is required")
	}
	base, err := url.Parse(strings.TrimSuffix(cfg.Endpoint, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid console endpoint %q: %w", cfg.Endpoint, err)
	}

	ctx := context.Background()
	if cfg.Transport != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Transport: cfg.Transport})
	}
	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: cfg.AccessToken,
		TokenType:   "Bearer",
	}))
	httpClient.Timeout = cfg.Timeout

	logger := cfg.Logger
	if logger == nil {
		logger = logging.For("ConsoleClient")
	}

	return &HTTPClient{
		baseURL: base,
		apiKey:  cfg.APIKey,
		http:    httpClient,
		logger:  logger,
	}, nil
}

func projectPath(orgID, projectID string) string {
	return fmt.Sprintf("/organizations/%s/projects/%s", url.PathEscape(orgID), url.PathEscape(projectID))
}

func workspacePath(orgID, projectID, workspaceID string) string {
	return fmt.Sprintf("%s/workspaces/%s", projectPath(orgID, projectID), url.PathEscape(workspaceID))
}

// ListWorkspaces returns all workspaces of a project.
func (c *HTTPClient) ListWorkspaces(ctx context.Context, orgID, projectID string) ([]Workspace, error) {
	var out []Workspace
	err := c.doJSON(ctx, http.MethodGet, projectPath(orgID, projectID)+"/workspaces", nil, &out)
	return out, err
}

// CreateWorkspace creates a workspace in a project.
func (c *HTTPClient) CreateWorkspace(ctx context.Context, orgID, projectID string, spec WorkspaceSpec) (*Workspace, error) {
	var out Workspace
	if err := c.doJSON(ctx, http.MethodPost, projectPath(orgID, projectID)+"/workspaces", spec, &out); err != nil {
		return nil, err
	}
	if out.Name == "" {
		out.Name = spec.Name
		out.Title = spec.Title
	}
	return &out, nil
}

// CreateRuntimeNamespace provisions the runtime namespace of a workspace.
func (c *HTTPClient) CreateRuntimeNamespace(ctx context.Context, orgID, projectID, workspaceID string) error {
	return c.doJSON(ctx, http.MethodPost, workspacePath(orgID, projectID, workspaceID)+"/namespace", struct{}{}, nil)
}

// ListOrgServices returns the organization service catalog.
func (c *HTTPClient) ListOrgServices(ctx context.Context, orgID string) ([]ServiceDefinition, error) {
	var out []ServiceDefinition
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/organizations/%s/services", url.PathEscape(orgID)), nil, &out)
	return out, err
}

// ListCredentials returns the credentials of a workspace.
func (c *HTTPClient) ListCredentials(ctx context.Context, orgID, projectID, workspaceID string) ([]Credential, error) {
	var out []Credential
	err := c.doJSON(ctx, http.MethodGet, workspacePath(orgID, projectID, workspaceID)+"/credentials", nil, &out)
	return out, err
}

// CreateEnterpriseCredential uploads a certificate and creates a legacy
// service-account credential.
func (c *HTTPClient) CreateEnterpriseCredential(ctx context.Context, orgID, projectID, workspaceID string, spec EnterpriseCredentialSpec) (*Credential, error) {
	if spec.Certificate == nil {
		return nil, fmt.Errorf("certificate is required for enterprise credentials")
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("certificate", "certificate.crt")
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, spec.Certificate); err != nil {
		return nil, fmt.Errorf("failed to read certificate: %w", err)
	}
	if err := mw.WriteField("name", spec.Name); err != nil {
		return nil, err
	}
	if err := mw.WriteField("description", spec.Description); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var out Credential
	path := workspacePath(orgID, projectID, workspaceID) + "/credentials/entp"
	if err := c.do(ctx, http.MethodPost, path, mw.FormDataContentType(), &body, &out); err != nil {
		return nil, err
	}
	out.FlowType = FlowTypeEnterprise
	out.IntegrationType = IntegrationTypeService
	return &out, nil
}

// CreateOAuthServerToServerCredential creates an OAuth server-to-server credential.
func (c *HTTPClient) CreateOAuthServerToServerCredential(ctx context.Context, orgID, projectID, workspaceID, name, description string) (*Credential, error) {
	payload := map[string]string{"name": name, "description": description}
	var out Credential
	path := workspacePath(orgID, projectID, workspaceID) + "/credentials/oauth_server_to_server"
	if err := c.doJSON(ctx, http.MethodPost, path, payload, &out); err != nil {
		return nil, err
	}
	out.FlowType = FlowTypeEnterprise
	out.IntegrationType = IntegrationTypeOAuthServerToServer
	return &out, nil
}

// CreateAdobeIDCredential creates an AdobeID credential.
func (c *HTTPClient) CreateAdobeIDCredential(ctx context.Context, orgID, projectID, workspaceID string, spec AdobeIDCredentialSpec) (*Credential, error) {
	var out Credential
	path := workspacePath(orgID, projectID, workspaceID) + "/credentials/adobeid"
	if err := c.doJSON(ctx, http.MethodPost, path, spec, &out); err != nil {
		return nil, err
	}
	out.FlowType = FlowTypeAdobeID
	out.IntegrationType = IntegrationTypeAPIKey
	return &out, nil
}

// SubscribeCredentialToServices adds services to a credential. The request
// body is the bare service list.
func (c *HTTPClient) SubscribeCredentialToServices(ctx context.Context, orgID, projectID, workspaceID, credentialType, credentialID string, services []ServiceInfo) (*SubscriptionResult, error) {
	path := fmt.Sprintf("%s/credentials/%s/%s/services",
		workspacePath(orgID, projectID, workspaceID), url.PathEscape(credentialType), url.PathEscape(credentialID))
	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodPut, path, services, &raw); err != nil {
		return nil, err
	}
	return &SubscriptionResult{Body: raw}, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s request: %w", method, path, err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, contentType, body, out)
}

func (c *HTTPClient) do(ctx context.Context, method, path, contentType string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return err
	}
	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, requestID)
	if c.apiKey != "" {
		req.Header.Set(headerAPIKey, c.apiKey)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	c.logger.Debug("%s %s (request %s)", method, path, requestID)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(data)),
			RequestID:  requestID,
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: failed to read response: %w", method, path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %s: failed to decode response: %w", method, path, err)
	}
	return nil
}
