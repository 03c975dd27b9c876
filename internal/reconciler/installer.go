package reconciler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/giantswarm/projectinstall/internal/config"
	"github.com/giantswarm/projectinstall/internal/console"
	"github.com/giantswarm/projectinstall/internal/template"
	"github.com/giantswarm/projectinstall/pkg/logging"
)

// HookRegistrar records template hooks once the console project is set up.
type HookRegistrar interface {
	RegisterHooks(ctx context.Context, templateID string, hooks []string) error
}

// AdobeIDSettings are the values AdobeID credentials are created with.
type AdobeIDSettings struct {
	Domain       string
	RedirectURIs []string
}

// Installer converges a console project towards a template configuration.
type Installer struct {
	client  console.Client
	cfg     template.Configuration
	logger  logging.Logger
	workers int
	clock   func() time.Time
	adobeID AdobeIDSettings
	names   CredentialNames
	metrics *Metrics

	hooks      HookRegistrar
	templateID string

	credMu      sync.Mutex
	credentials map[credentialKey]string
}

// Option configures an Installer.
type Option func(*Installer)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logging.Logger) Option {
	return func(i *Installer) {
		if l != nil {
			i.logger = l
		}
	}
}

// WithWorkers sets how many workspaces are configured at once. Values below
// one mean sequential.
func WithWorkers(n int) Option {
	return func(i *Installer) {
		if n < 1 {
			n = 1
		}
		i.workers = n
	}
}

// WithClock replaces time.Now for credential names.
func WithClock(clock func() time.Time) Option {
	return func(i *Installer) {
		if clock != nil {
			i.clock = clock
		}
	}
}

// WithAdobeID sets the domain and redirect URIs of created AdobeID credentials.
func WithAdobeID(domain string, redirectURIs []string) Option {
	return func(i *Installer) {
		i.adobeID = AdobeIDSettings{Domain: domain, RedirectURIs: redirectURIs}
	}
}

// WithCredentialNames sets the name and description templates of created credentials.
func WithCredentialNames(names CredentialNames) Option {
	return func(i *Installer) {
		i.names = names
	}
}

// WithHookRegistrar registers the template hooks after a successful install.
func WithHookRegistrar(templateID string, r HookRegistrar) Option {
	return func(i *Installer) {
		i.templateID = templateID
		i.hooks = r
	}
}

// WithMetrics records remote calls into m instead of a private instance.
func WithMetrics(m *Metrics) Option {
	return func(i *Installer) {
		if m != nil {
			i.metrics = m
		}
	}
}

// NewInstaller creates an Installer for cfg. Every console call goes through
// an instrumented wrapper of client that feeds the installer metrics.
func NewInstaller(client console.Client, cfg template.Configuration, opts ...Option) *Installer {
	i := &Installer{
		cfg:     cfg,
		logger:  logging.Discard(),
		workers: 1,
		clock:   time.Now,
		adobeID: AdobeIDSettings{Domain: config.DefaultAdobeIDDomain},
		names:   DefaultCredentialNames(),
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.metrics == nil {
		i.metrics = NewMetrics()
	}
	i.client = newInstrumentedClient(client, i.metrics)
	i.resetRun()
	return i
}

// Metrics returns the metrics the installer records into.
func (i *Installer) Metrics() *Metrics {
	return i.metrics
}

func (i *Installer) resetRun() {
	i.credMu.Lock()
	defer i.credMu.Unlock()
	i.credentials = make(map[credentialKey]string)
}

// Install reconciles workspaces, subscribes every workspace of the project to
// the declared APIs and registers hooks. Workspaces that exist in the project
// without being declared are subscribed too. It stops at the first error; whatever was created
// before stays in place and a re-run picks up from there. The returned report
// is non-nil and reflects the work done up to the failure.
func (i *Installer) Install(ctx context.Context, orgID, projectID string) (*Report, error) {
	i.resetRun()
	report := &Report{OrgID: orgID, ProjectID: projectID}
	defer func() { report.Metrics = i.metrics.GetSummary() }()

	i.logger.Info("Installing template into project %s of org %s", projectID, orgID)

	states, err := i.reconcileWorkspaces(ctx, orgID, projectID, i.cfg.RuntimeEnabled(), i.cfg.Workspaces)
	report.Workspaces = states
	if err != nil {
		return report, err
	}

	if codes := i.cfg.APICodes(); len(codes) > 0 {
		plan, err := i.plan(ctx, orgID, codes)
		if err != nil {
			return report, err
		}
		extra, err := i.undeclaredWorkspaces(ctx, orgID, projectID, report.Workspaces)
		if err != nil {
			return report, err
		}
		report.Workspaces = append(report.Workspaces, extra...)
		if err := i.configureAPIs(ctx, orgID, projectID, plan, report.Workspaces); err != nil {
			return report, err
		}
	}

	if len(i.cfg.Hooks) > 0 && i.hooks != nil {
		i.logger.Info("Registering %d hooks for %s", len(i.cfg.Hooks), i.templateID)
		if err := i.hooks.RegisterHooks(ctx, i.templateID, i.cfg.Hooks); err != nil {
			return report, fmt.Errorf("failed to register hooks: %w", err)
		}
		report.Hooks = append([]string(nil), i.cfg.Hooks...)
	}

	i.logger.Info("Installation into project %s complete", projectID)
	return report, nil
}

// Plan lists the organization services once and groups the declared APIs.
// It makes no changes.
func (i *Installer) Plan(ctx context.Context, orgID string) (*ServicePlan, error) {
	return i.plan(ctx, orgID, i.cfg.APICodes())
}

func (i *Installer) plan(ctx context.Context, orgID string, codes []string) (*ServicePlan, error) {
	services, err := i.client.ListOrgServices(ctx, orgID)
	if err != nil {
		return nil, remoteError(OpListOrgServices, orgID, "", "", err)
	}
	plan, err := PlanServices(services, codes, i.cfg.ProductProfiles)
	if err != nil {
		i.logger.Error(err, "Cannot satisfy declared APIs")
		return nil, err
	}
	return plan, nil
}

// configureAPIs runs one worker per workspace. Each worker owns its report
// entry; nothing else is shared except the credential cache and metrics.
func (i *Installer) configureAPIs(ctx context.Context, orgID, projectID string, plan *ServicePlan, workspaces []WorkspaceReport) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.workers)

	for idx := range workspaces {
		ws := &workspaces[idx]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return i.configureWorkspace(gctx, orgID, projectID, plan, ws)
		})
	}
	return g.Wait()
}

func (i *Installer) configureWorkspace(ctx context.Context, orgID, projectID string, plan *ServicePlan, ws *WorkspaceReport) error {
	requests := plan.ForWorkspace(orgID, projectID, ws.ID)
	for _, family := range plan.Families() {
		req := requests[family]
		i.logger.Info("Configuring %s APIs %v for workspace %s", family, req.SDKCodes(), ws.Name)

		credentialID, created, err := i.resolveCredential(ctx, orgID, projectID, ws.ID, family)
		if err != nil {
			return err
		}
		req.CredentialType = string(family)
		req.CredentialID = credentialID

		if err := i.Dispatch(ctx, req); err != nil {
			return err
		}
		ws.Subscriptions = append(ws.Subscriptions, SubscriptionReport{
			Family:            family,
			CredentialID:      credentialID,
			CredentialCreated: created,
			Services:          req.SDKCodes(),
		})
	}
	return nil
}
