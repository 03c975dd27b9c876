package template

// Implicit workspaces every project ends up with.
const (
	WorkspaceStage      = "Stage"
	WorkspaceProduction = "Production"
)

// Configuration is the desired state declared by a template.
// It is validated once when loaded and treated as read-only afterwards.
type Configuration struct {
	// Workspaces lists workspace names to create. Stage and Production are implied.
	Workspaces []string `json:"workspaces,omitempty" yaml:"workspaces,omitempty"`
	// Runtime requests a runtime namespace for every workspace.
	Runtime *bool `json:"runtime,omitempty" yaml:"runtime,omitempty"`
	// APIs lists service codes to subscribe every workspace to.
	APIs []API `json:"apis,omitempty" yaml:"apis,omitempty"`
	// ProductProfiles narrows the license configs subscribed for a service.
	ProductProfiles []ProductProfile `json:"productProfiles,omitempty" yaml:"productProfiles,omitempty"`
	// Hooks lists app hooks registered in the application manifest after install.
	Hooks []string `json:"hooks,omitempty" yaml:"hooks,omitempty"`
}

// API references a service of the organization catalog by code.
type API struct {
	Code string `json:"code" yaml:"code"`
}

// ProductProfile selects license configs of one service.
type ProductProfile struct {
	SDKCode        string             `json:"sdkCode" yaml:"sdkCode"`
	LicenseConfigs []LicenseConfigRef `json:"licenseConfigs" yaml:"licenseConfigs"`
}

// LicenseConfigRef identifies a license config. Only ID is used for matching.
type LicenseConfigRef struct {
	ID        string `json:"id" yaml:"id"`
	ProductID string `json:"productId" yaml:"productId"`
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`
}

// RuntimeEnabled reports whether runtime namespaces are requested. Unset means false.
func (c Configuration) RuntimeEnabled() bool {
	return c.Runtime != nil && *c.Runtime
}

// APICodes returns the declared service codes in declaration order.
func (c Configuration) APICodes() []string {
	codes := make([]string, 0, len(c.APIs))
	for _, api := range c.APIs {
		codes = append(codes, api.Code)
	}
	return codes
}

// Dependencies is what a template needs from the console project.
type Dependencies struct {
	Runtime bool  `json:"runtime" yaml:"runtime"`
	APIs    []API `json:"apis" yaml:"apis"`
}

// RequiredServices returns the runtime flag and APIs the template depends on,
// defaulting to false and an empty list.
func (c Configuration) RequiredServices() Dependencies {
	deps := Dependencies{
		Runtime: c.RuntimeEnabled(),
		APIs:    []API{},
	}
	deps.APIs = append(deps.APIs, c.APIs...)
	return deps
}

// KnownHooks are the app hooks a template may register.
var KnownHooks = []string{
	"pre-app-build",
	"post-app-build",
	"build-actions",
	"build-static",
	"pre-app-deploy",
	"post-app-deploy",
	"deploy-actions",
	"deploy-static",
	"pre-app-undeploy",
	"post-app-undeploy",
	"undeploy-actions",
	"undeploy-static",
	"pre-app-run",
	"post-app-run",
	"serve-static",
}
