package console

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method  string
	Path    string
	Body    string
	Headers http.Header
}

func newTestServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*HTTPClient, *[]recordedRequest) {
	t.Helper()
	var requests []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requests = append(requests, recordedRequest{
			Method:  r.Method,
			Path:    r.URL.Path,
			Body:    string(body),
			Headers: r.Header.Clone(),
		})
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := NewHTTPClient(HTTPClientConfig{
		Endpoint:    srv.URL + "/console/",
		APIKey:      "test-key",
		AccessToken: "token-123",
	})
	require.NoError(t, err)
	return client, &requests
}

type recordingLogger struct {
	debug []string
}

func (l *recordingLogger) Debug(format string, args ...interface{}) {
	l.debug = append(l.debug, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Info(string, ...interface{})         {}
func (l *recordingLogger) Warn(string, ...interface{})         {}
func (l *recordingLogger) Error(error, string, ...interface{}) {}

func TestNewHTTPClient_Logger(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	}))
	t.Cleanup(srv.Close)

	logger := &recordingLogger{}
	client, err := NewHTTPClient(HTTPClientConfig{Endpoint: srv.URL, AccessToken: "token", Logger: logger})
	require.NoError(t, err)

	_, err = client.ListWorkspaces(context.Background(), "org1", "proj1")
	require.NoError(t, err)
	require.Len(t, logger.debug, 1)
	assert.Contains(t, logger.debug[0], "GET /organizations/org1/projects/proj1/workspaces")

	client, err = NewHTTPClient(HTTPClientConfig{Endpoint: srv.URL, AccessToken: "token"})
	require.NoError(t, err)
	assert.NotNil(t, client.logger)
}

func TestNewHTTPClient_Validation(t *testing.T) {
	_, err := NewHTTPClient(HTTPClientConfig{AccessToken: "x"})
	assert.Error(t, err)

	_, err = NewHTTPClient(HTTPClientConfig{Endpoint: "https://example.com"})
	assert.Error(t, err)
}

func TestHTTPClient_ListWorkspaces(t *testing.T) {
	client, requests := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"id":"1","name":"Stage","runtime_enabled":1},{"id":"2","name":"Production","runtime_enabled":0}]`)
	})

	workspaces, err := client.ListWorkspaces(context.Background(), "org1", "proj1")
	require.NoError(t, err)
	require.Len(t, workspaces, 2)
	assert.Equal(t, "Stage", workspaces[0].Name)
	assert.True(t, bool(workspaces[0].RuntimeEnabled))
	assert.False(t, bool(workspaces[1].RuntimeEnabled))

	require.Len(t, *requests, 1)
	req := (*requests)[0]
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/console/organizations/org1/projects/proj1/workspaces", req.Path)
	assert.Equal(t, "Bearer token-123", req.Headers.Get("Authorization"))
	assert.Equal(t, "test-key", req.Headers.Get("x-api-key"))
	assert.NotEmpty(t, req.Headers.Get("x-request-id"))
}

func TestHTTPClient_CreateWorkspace(t *testing.T) {
	client, requests := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"projectId":"proj1","workspaceId":"ws-9"}`)
	})

	ws, err := client.CreateWorkspace(context.Background(), "org1", "proj1", WorkspaceSpec{Name: "Dev", Title: "Dev workspace"})
	require.NoError(t, err)
	assert.Equal(t, "ws-9", ws.ID)
	assert.Equal(t, "Dev", ws.Name)

	var sent WorkspaceSpec
	require.NoError(t, json.Unmarshal([]byte((*requests)[0].Body), &sent))
	assert.Equal(t, WorkspaceSpec{Name: "Dev", Title: "Dev workspace"}, sent)
	assert.Equal(t, "application/json", (*requests)[0].Headers.Get("Content-Type"))
}

func TestHTTPClient_ListCredentials(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"id_integration":"c1","flow_type":"entp","integration_type":"oauth_server_to_server"}]`)
	})

	creds, err := client.ListCredentials(context.Background(), "org1", "proj1", "ws1")
	require.NoError(t, err)
	require.Len(t, creds, 1)
	assert.Equal(t, Credential{ID: "c1", FlowType: "entp", IntegrationType: "oauth_server_to_server"}, creds[0])
}

func TestHTTPClient_CreateCredentials(t *testing.T) {
	client, requests := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":"new-cred","apiKey":"k"}`)
	})
	ctx := context.Background()

	oauth, err := client.CreateOAuthServerToServerCredential(ctx, "org1", "proj1", "ws1", "cred-oauth1", "Oauth Credential")
	require.NoError(t, err)
	assert.Equal(t, "new-cred", oauth.ID)
	assert.Equal(t, IntegrationTypeOAuthServerToServer, oauth.IntegrationType)

	adobeID, err := client.CreateAdobeIDCredential(ctx, "org1", "proj1", "ws1", AdobeIDCredentialSpec{
		Name:         "AdobeId Credentials 1",
		Description:  "AdobeId Credentials",
		Platform:     PlatformAPIKey,
		Domain:       "www.example.com",
		RedirectURIs: []string{"https://www.example.com/callback"},
	})
	require.NoError(t, err)
	assert.Equal(t, FlowTypeAdobeID, adobeID.FlowType)

	entp, err := client.CreateEnterpriseCredential(ctx, "org1", "proj1", "ws1", EnterpriseCredentialSpec{
		Name:        "cred-entp",
		Description: "Enterprise Credential",
		Certificate: strings.NewReader("-----BEGIN CERTIFICATE-----"),
	})
	require.NoError(t, err)
	assert.Equal(t, IntegrationTypeService, entp.IntegrationType)

	require.Len(t, *requests, 3)
	assert.Equal(t, "/console/organizations/org1/projects/proj1/workspaces/ws1/credentials/oauth_server_to_server", (*requests)[0].Path)
	assert.Equal(t, "/console/organizations/org1/projects/proj1/workspaces/ws1/credentials/adobeid", (*requests)[1].Path)
	assert.Contains(t, (*requests)[1].Body, `"redirectUriList":["https://www.example.com/callback"]`)
	assert.Contains(t, (*requests)[1].Body, `"platform":"apiKey"`)
	assert.True(t, strings.HasPrefix((*requests)[2].Headers.Get("Content-Type"), "multipart/form-data"))
	assert.Contains(t, (*requests)[2].Body, "BEGIN CERTIFICATE")
}

func TestHTTPClient_CreateEnterpriseCredentialRequiresCertificate(t *testing.T) {
	client, requests := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := client.CreateEnterpriseCredential(context.Background(), "o", "p", "w", EnterpriseCredentialSpec{Name: "x"})
	assert.Error(t, err)
	assert.Empty(t, *requests)
}

func TestHTTPClient_Subscribe(t *testing.T) {
	client, requests := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"sdkList":["AssetComputeSDK"]}`)
	})

	services := []ServiceInfo{{
		SDKCode:        "AssetComputeSDK",
		LicenseConfigs: []LicenseConfigOp{{Op: LicenseConfigOpAdd, ID: "1", ProductID: "P"}},
	}}
	result, err := client.SubscribeCredentialToServices(context.Background(), "org1", "proj1", "ws1", "entp", "cred1", services)
	require.NoError(t, err)
	assert.JSONEq(t, `{"sdkList":["AssetComputeSDK"]}`, string(result.Body))

	req := (*requests)[0]
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/console/organizations/org1/projects/proj1/workspaces/ws1/credentials/entp/cred1/services", req.Path)
	assert.JSONEq(t, `[{"sdkCode":"AssetComputeSDK","roles":null,"licenseConfigs":[{"op":"add","id":"1","productId":"P"}]}]`, req.Body)
}

func TestHTTPClient_APIError(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"error":"denied"}`)
	})

	_, err := client.ListOrgServices(context.Background(), "org1")
	require.Error(t, err)

	apiErr, ok := IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, `{"error":"denied"}`, apiErr.Body)
	assert.NotEmpty(t, apiErr.RequestID)
	assert.True(t, IsUnauthorized(err))
	assert.Contains(t, err.Error(), "403")
}

func TestHTTPClient_RuntimeNamespaceIgnoresBody(t *testing.T) {
	client, requests := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"name":"ns"}`)
	})

	require.NoError(t, client.CreateRuntimeNamespace(context.Background(), "org1", "proj1", "ws1"))
	assert.Equal(t, "/console/organizations/org1/projects/proj1/workspaces/ws1/namespace", (*requests)[0].Path)
}
