package reconciler

import (
	"time"

	"github.com/giantswarm/projectinstall/internal/console"
	"github.com/giantswarm/projectinstall/internal/template"
	"github.com/giantswarm/projectinstall/internal/testing/mock"
)

const (
	testOrg     = "org-1"
	testProject = "project-1"
)

var testNow = time.UnixMilli(1700000000000)

func service(code, serviceType string, configs ...console.LicenseConfig) console.ServiceDefinition {
	def := console.ServiceDefinition{
		Code:    code,
		Name:    code + " name",
		Type:    serviceType,
		Enabled: true,
	}
	if len(configs) > 0 {
		def.Properties = &console.ServiceProperties{LicenseConfigs: configs}
	}
	return def
}

func apis(codes ...string) []template.API {
	out := make([]template.API, 0, len(codes))
	for _, c := range codes {
		out = append(out, template.API{Code: c})
	}
	return out
}

func newTestInstaller(fake *mock.Console, cfg template.Configuration, opts ...Option) *Installer {
	clock := mock.NewClock(testNow)
	return NewInstaller(fake, cfg, append([]Option{WithClock(clock.Now)}, opts...)...)
}

func boolPtr(b bool) *bool { return &b }
