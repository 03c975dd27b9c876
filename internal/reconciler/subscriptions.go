package reconciler

import (
	"github.com/giantswarm/projectinstall/internal/console"
	"github.com/giantswarm/projectinstall/internal/template"
)

// ServicePlan is the declared APIs grouped by credential family. It is built
// once per install and only read afterwards.
type ServicePlan struct {
	groups map[CredentialFamily][]console.ServiceInfo
}

// PlanServices resolves every code in apiCodes against the organization
// catalog and groups the resulting services by family, in declaration order.
// Repeated codes are ignored after their first occurrence. Product profile
// filters narrow the license configs of the service they name.
func PlanServices(services []console.ServiceDefinition, apiCodes []string, filters []template.ProductProfile) (*ServicePlan, error) {
	plan := &ServicePlan{groups: make(map[CredentialFamily][]console.ServiceInfo)}
	filterIDs := licenseFilters(filters)
	seen := make(map[string]struct{}, len(apiCodes))

	for _, code := range apiCodes {
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}

		def, ok := findEnabledService(services, code)
		if !ok {
			return nil, &ConfigurationError{
				Reason:    ReasonServiceNotFound,
				Code:      code,
				Supported: supportedFamilyNames(),
			}
		}
		family := CredentialFamily(def.Type)
		if !family.IsSupported() {
			return nil, &ConfigurationError{
				Reason:      ReasonUnsupportedServiceType,
				Code:        code,
				ServiceType: def.Type,
				Supported:   supportedFamilyNames(),
			}
		}
		plan.groups[family] = append(plan.groups[family], serviceInfo(def, filterIDs[code]))
	}
	return plan, nil
}

// Families returns the families with at least one service, in subscription order.
func (p *ServicePlan) Families() []CredentialFamily {
	var families []CredentialFamily
	for _, f := range SupportedFamilies {
		if len(p.groups[f]) > 0 {
			families = append(families, f)
		}
	}
	return families
}

// Services returns a copy of the services planned for family.
func (p *ServicePlan) Services(family CredentialFamily) []console.ServiceInfo {
	return copyServices(p.groups[family])
}

// ForWorkspace returns one subscription request per non-empty family for
// workspaceID. Credential fields are left for the caller to fill in.
func (p *ServicePlan) ForWorkspace(orgID, projectID, workspaceID string) map[CredentialFamily]*console.SubscriptionRequest {
	requests := make(map[CredentialFamily]*console.SubscriptionRequest)
	for _, family := range p.Families() {
		requests[family] = &console.SubscriptionRequest{
			OrgID:          orgID,
			ProjectID:      projectID,
			WorkspaceID:    workspaceID,
			CredentialType: string(family),
			Services:       p.Services(family),
		}
	}
	return requests
}

// BuildSubscriptions plans apiCodes and returns the requests for one workspace.
func BuildSubscriptions(services []console.ServiceDefinition, orgID, projectID, workspaceID string, apiCodes []string, filters []template.ProductProfile) (map[CredentialFamily]*console.SubscriptionRequest, error) {
	plan, err := PlanServices(services, apiCodes, filters)
	if err != nil {
		return nil, err
	}
	return plan.ForWorkspace(orgID, projectID, workspaceID), nil
}

func findEnabledService(services []console.ServiceDefinition, code string) (console.ServiceDefinition, bool) {
	for _, s := range services {
		if s.Code == code && s.Enabled {
			return s, true
		}
	}
	return console.ServiceDefinition{}, false
}

// licenseFilters maps sdkCode to the selected license config ids. Profiles
// without license configs select nothing and are skipped; the first profile
// for a code wins.
func licenseFilters(filters []template.ProductProfile) map[string]map[string]struct{} {
	out := make(map[string]map[string]struct{})
	for _, f := range filters {
		if len(f.LicenseConfigs) == 0 {
			continue
		}
		if _, ok := out[f.SDKCode]; ok {
			continue
		}
		ids := make(map[string]struct{}, len(f.LicenseConfigs))
		for _, lc := range f.LicenseConfigs {
			ids[lc.ID] = struct{}{}
		}
		out[f.SDKCode] = ids
	}
	return out
}

// serviceInfo builds a subscription entry without touching def.
func serviceInfo(def console.ServiceDefinition, filter map[string]struct{}) console.ServiceInfo {
	info := console.ServiceInfo{
		SDKCode: def.Code,
		Name:    def.Name,
	}
	if roles := def.Roles(); roles != nil {
		info.Roles = append([]console.Role{}, roles...)
	}

	configs := def.LicenseConfigs()
	if len(configs) == 0 {
		return info
	}
	info.LicenseConfigs = make([]console.LicenseConfigOp, 0, len(configs))
	for _, lc := range configs {
		if filter != nil {
			if _, ok := filter[lc.ID]; !ok {
				continue
			}
		}
		info.LicenseConfigs = append(info.LicenseConfigs, console.LicenseConfigOp{
			Op:        console.LicenseConfigOpAdd,
			ID:        lc.ID,
			ProductID: lc.ProductID,
		})
	}
	return info
}

func copyServices(in []console.ServiceInfo) []console.ServiceInfo {
	if in == nil {
		return nil
	}
	out := make([]console.ServiceInfo, len(in))
	for i, s := range in {
		out[i] = s
		if s.Roles != nil {
			out[i].Roles = append([]console.Role{}, s.Roles...)
		}
		if s.LicenseConfigs != nil {
			out[i].LicenseConfigs = append([]console.LicenseConfigOp{}, s.LicenseConfigs...)
		}
	}
	return out
}
