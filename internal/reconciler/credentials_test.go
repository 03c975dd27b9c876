package reconciler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/projectinstall/internal/console"
	"github.com/giantswarm/projectinstall/internal/template"
	"github.com/giantswarm/projectinstall/internal/testing/mock"
)

func TestResolveCredential_Enterprise(t *testing.T) {
	oauth := console.Credential{ID: "oauth-1", FlowType: console.FlowTypeEnterprise, IntegrationType: console.IntegrationTypeOAuthServerToServer}
	legacy := console.Credential{ID: "jwt-1", FlowType: console.FlowTypeEnterprise, IntegrationType: console.IntegrationTypeService}
	apiKey := console.Credential{ID: "key-1", FlowType: console.FlowTypeAdobeID, IntegrationType: console.IntegrationTypeAPIKey}

	tests := []struct {
		name        string
		existing    []console.Credential
		expectedID  string
		expectNewID bool
	}{
		{
			name:       "oauth preferred over legacy listed first",
			existing:   []console.Credential{legacy, oauth},
			expectedID: "oauth-1",
		},
		{
			name:       "oauth preferred over legacy listed last",
			existing:   []console.Credential{oauth, legacy},
			expectedID: "oauth-1",
		},
		{
			name:       "legacy used when no oauth",
			existing:   []console.Credential{apiKey, legacy},
			expectedID: "jwt-1",
		},
		{
			name:        "created when only adobeid exists",
			existing:    []console.Credential{apiKey},
			expectNewID: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := mock.NewConsole()
			for _, c := range tt.existing {
				fake.AddCredential("ws-1", c)
			}
			inst := newTestInstaller(fake, template.Configuration{})

			id, err := inst.ResolveCredential(context.Background(), testOrg, testProject, "ws-1", FamilyEnterprise)
			require.NoError(t, err)

			if tt.expectNewID {
				created := fake.CallsTo(mock.OpCreateOAuthCredential)
				require.Len(t, created, 1)
				assert.NotEmpty(t, id)
				assert.NotContains(t, []string{"oauth-1", "jwt-1", "key-1"}, id)
				return
			}
			assert.Equal(t, tt.expectedID, id)
			assert.Empty(t, fake.Creations())
		})
	}
}

func TestResolveCredential_CreatesOnceAndReuses(t *testing.T) {
	fake := mock.NewConsole()
	inst := newTestInstaller(fake, template.Configuration{})
	ctx := context.Background()

	first, err := inst.ResolveCredential(ctx, testOrg, testProject, "ws-1", FamilyEnterprise)
	require.NoError(t, err)
	second, err := inst.ResolveCredential(ctx, testOrg, testProject, "ws-1", FamilyEnterprise)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, fake.Count(mock.OpCreateOAuthCredential))
	assert.Equal(t, 1, fake.Count(mock.OpListCredentials))

	created := fake.CallsTo(mock.OpCreateOAuthCredential)[0]
	assert.Equal(t, "cred-oauth1700000000000", created.Name)
	assert.Equal(t, "Oauth Credential", created.Description)

	// a different workspace gets its own credential
	other, err := inst.ResolveCredential(ctx, testOrg, testProject, "ws-2", FamilyEnterprise)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
	assert.Equal(t, 2, fake.Count(mock.OpCreateOAuthCredential))
}

func TestResolveCredential_AdobeID(t *testing.T) {
	t.Run("reuses api key credential", func(t *testing.T) {
		fake := mock.NewConsole()
		fake.AddCredential("ws-1", console.Credential{ID: "jwt-1", FlowType: console.FlowTypeEnterprise, IntegrationType: console.IntegrationTypeService})
		fake.AddCredential("ws-1", console.Credential{ID: "key-1", FlowType: console.FlowTypeAdobeID, IntegrationType: console.IntegrationTypeAPIKey})
		inst := newTestInstaller(fake, template.Configuration{})

		id, err := inst.ResolveCredential(context.Background(), testOrg, testProject, "ws-1", FamilyAdobeID)
		require.NoError(t, err)
		assert.Equal(t, "key-1", id)
		assert.Empty(t, fake.Creations())
	})

	t.Run("creates with default domain", func(t *testing.T) {
		fake := mock.NewConsole()
		inst := newTestInstaller(fake, template.Configuration{})

		_, err := inst.ResolveCredential(context.Background(), testOrg, testProject, "ws-1", FamilyAdobeID)
		require.NoError(t, err)

		created := fake.CallsTo(mock.OpCreateAdobeIDCredential)
		require.Len(t, created, 1)
		spec := created[0].AdobeID
		require.NotNil(t, spec)
		assert.Equal(t, "AdobeId Credentials 1700000000000", spec.Name)
		assert.Equal(t, "AdobeId Credentials", spec.Description)
		assert.Equal(t, console.PlatformAPIKey, spec.Platform)
		assert.Equal(t, "www.graph.adobe.io", spec.Domain)
		assert.Empty(t, spec.RedirectURIs)
	})

	t.Run("creates with configured domain", func(t *testing.T) {
		fake := mock.NewConsole()
		inst := newTestInstaller(fake, template.Configuration{},
			WithAdobeID("app.example.com", []string{"https://app.example.com/callback"}),
			WithCredentialNames(CredentialNames{
				OAuthName:          "unused",
				OAuthDescription:   "unused",
				AdobeIDName:        "{{ .Family | upper }}-{{ .WorkspaceID }}",
				AdobeIDDescription: "key for {{ .WorkspaceID }}",
			}),
		)

		_, err := inst.ResolveCredential(context.Background(), testOrg, testProject, "ws-7", FamilyAdobeID)
		require.NoError(t, err)

		spec := fake.CallsTo(mock.OpCreateAdobeIDCredential)[0].AdobeID
		assert.Equal(t, "ADOBEID-ws-7", spec.Name)
		assert.Equal(t, "key for ws-7", spec.Description)
		assert.Equal(t, "app.example.com", spec.Domain)
		assert.Equal(t, []string{"https://app.example.com/callback"}, spec.RedirectURIs)
	})
}

func TestResolveCredential_UnsupportedFamily(t *testing.T) {
	fake := mock.NewConsole()
	inst := newTestInstaller(fake, template.Configuration{})

	_, err := inst.ResolveCredential(context.Background(), testOrg, testProject, "ws-1", CredentialFamily("analytics"))
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, ReasonUnsupportedFamily, cfgErr.Reason)
	assert.Contains(t, err.Error(), "entp, adobeid")
	assert.Empty(t, fake.Calls())
}

func TestResolveCredential_InvalidNameTemplate(t *testing.T) {
	fake := mock.NewConsole()
	names := DefaultCredentialNames()
	names.OAuthName = "{{ .Missing }}"
	inst := newTestInstaller(fake, template.Configuration{}, WithCredentialNames(names))

	_, err := inst.ResolveCredential(context.Background(), testOrg, testProject, "ws-1", FamilyEnterprise)
	require.Error(t, err)
	assert.Equal(t, KindConfiguration, KindOf(err))
	assert.Equal(t, 0, fake.Count(mock.OpCreateOAuthCredential))
}

func TestResolveCredential_RemoteErrors(t *testing.T) {
	boom := errors.New("boom")

	t.Run("list", func(t *testing.T) {
		fake := mock.NewConsole()
		fake.FailOn(mock.OpListCredentials, boom)
		inst := newTestInstaller(fake, template.Configuration{})

		_, err := inst.ResolveCredential(context.Background(), testOrg, testProject, "ws-1", FamilyEnterprise)
		var remote *RemoteOperationError
		require.True(t, errors.As(err, &remote))
		assert.Equal(t, OpListCredentials, remote.Op)
		assert.Equal(t, FamilyEnterprise, remote.Family)
		assert.Equal(t, "ws-1", remote.WorkspaceID)
	})

	t.Run("create", func(t *testing.T) {
		fake := mock.NewConsole()
		fake.FailOn(mock.OpCreateAdobeIDCredential, boom)
		inst := newTestInstaller(fake, template.Configuration{})

		_, err := inst.ResolveCredential(context.Background(), testOrg, testProject, "ws-1", FamilyAdobeID)
		var remote *RemoteOperationError
		require.True(t, errors.As(err, &remote))
		assert.Equal(t, OpCreateAdobeIDCredential, remote.Op)
		assert.ErrorIs(t, err, boom)

		// a failed creation is not cached
		fake.FailOn(mock.OpCreateAdobeIDCredential, nil)
		id, err := inst.ResolveCredential(context.Background(), testOrg, testProject, "ws-1", FamilyAdobeID)
		require.NoError(t, err)
		assert.NotEmpty(t, id)
	})
}
