package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"sigs.k8s.io/yaml"

	"github.com/giantswarm/projectinstall/internal/reconciler"
	"github.com/giantswarm/projectinstall/internal/template"
	pkgstrings "github.com/giantswarm/projectinstall/pkg/strings"
)

// maxServicesPerRow caps the services listed in one report row.
const maxServicesPerRow = 6

// OutputFormat selects how command results are printed.
type OutputFormat string

const (
	// OutputFormatTable prints human readable tables
	OutputFormatTable OutputFormat = "table"
	// OutputFormatJSON prints indented JSON
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML prints YAML converted from the JSON form
	OutputFormatYAML OutputFormat = "yaml"
)

// ValidOutputFormats contains all valid output format values.
var ValidOutputFormats = []OutputFormat{OutputFormatTable, OutputFormatJSON, OutputFormatYAML}

// ValidateOutputFormat returns an error for anything but table, json or yaml.
func ValidateOutputFormat(format string) error {
	switch OutputFormat(format) {
	case OutputFormatTable, OutputFormatJSON, OutputFormatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format: %q (valid: table, json, yaml)", format)
	}
}

// Printer writes command results in the selected format.
type Printer struct {
	out    io.Writer
	format OutputFormat
}

// NewPrinter creates a printer writing to out.
func NewPrinter(out io.Writer, format OutputFormat) *Printer {
	return &Printer{out: out, format: format}
}

// Structured reports whether the printer emits machine readable output.
func (p *Printer) Structured() bool {
	return p.format == OutputFormatJSON || p.format == OutputFormatYAML
}

// PlanEntry is one planned service subscription.
type PlanEntry struct {
	Family         reconciler.CredentialFamily `json:"family"`
	Service        string                      `json:"service"`
	Name           string                      `json:"name,omitempty"`
	LicenseConfigs []string                    `json:"licenseConfigs"`
}

// PlanView is what the plan command prints.
type PlanView struct {
	Workspaces []string    `json:"workspaces"`
	Runtime    bool        `json:"runtime"`
	Services   []PlanEntry `json:"services"`
	Hooks      []string    `json:"hooks,omitempty"`
}

// NewPlanView flattens a service plan for printing.
func NewPlanView(cfg template.Configuration, plan *reconciler.ServicePlan) PlanView {
	view := PlanView{
		Workspaces: reconciler.WorkspaceNames(cfg.Workspaces),
		Runtime:    cfg.RuntimeEnabled(),
		Services:   []PlanEntry{},
		Hooks:      cfg.Hooks,
	}
	if plan == nil {
		return view
	}
	for _, family := range plan.Families() {
		for _, svc := range plan.Services(family) {
			entry := PlanEntry{Family: family, Service: svc.SDKCode, Name: svc.Name}
			if svc.LicenseConfigs != nil {
				entry.LicenseConfigs = []string{}
				for _, lc := range svc.LicenseConfigs {
					entry.LicenseConfigs = append(entry.LicenseConfigs, lc.ID)
				}
			}
			view.Services = append(view.Services, entry)
		}
	}
	return view
}

// ValidationResult is what the validate command prints.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// PrintReport prints an install report.
func (p *Printer) PrintReport(report *reconciler.Report) error {
	if p.Structured() {
		return p.printStructured(report)
	}

	t := p.newTable()
	t.AppendHeader(header("WORKSPACE", "ID", "CREATED", "RUNTIME", "FAMILY", "CREDENTIAL", "SERVICES"))
	for _, ws := range report.Workspaces {
		runtime := yesNo(ws.RuntimeEnabled)
		if ws.RuntimeCreated {
			runtime += " (new)"
		}
		if len(ws.Subscriptions) == 0 {
			t.AppendRow(table.Row{ws.Name, ws.ID, yesNo(ws.Created), runtime, "-", "-", "-"})
			continue
		}
		for i, sub := range ws.Subscriptions {
			credential := sub.CredentialID
			if sub.CredentialCreated {
				credential += " (new)"
			}
			name, id, created, rt := ws.Name, ws.ID, yesNo(ws.Created), runtime
			if i > 0 {
				name, id, created, rt = "", "", "", ""
			}
			t.AppendRow(table.Row{name, id, created, rt, string(sub.Family), credential, pkgstrings.JoinLimited(sub.Services, maxServicesPerRow)})
		}
	}
	t.Render()

	if len(report.Hooks) > 0 {
		fmt.Fprintf(p.out, "Registered hooks: %s\n", strings.Join(report.Hooks, ", "))
	}
	fmt.Fprintf(p.out, "%d console calls, %d failed\n", report.Metrics.TotalCalls, report.Metrics.TotalFailures)
	return nil
}

// PrintPlan prints a dry-run plan.
func (p *Printer) PrintPlan(view PlanView) error {
	if p.Structured() {
		return p.printStructured(view)
	}

	fmt.Fprintf(p.out, "Workspaces: %s\n", strings.Join(view.Workspaces, ", "))
	fmt.Fprintf(p.out, "Runtime: %s\n", yesNo(view.Runtime))
	if len(view.Services) == 0 {
		fmt.Fprintln(p.out, text.FgYellow.Sprint("No APIs declared"))
	} else {
		t := p.newTable()
		t.AppendHeader(header("FAMILY", "SERVICE", "NAME", "LICENSE CONFIGS"))
		for _, e := range view.Services {
			configs := "-"
			if e.LicenseConfigs != nil {
				configs = strings.Join(e.LicenseConfigs, ", ")
				if configs == "" {
					configs = "(none selected)"
				}
			}
			t.AppendRow(table.Row{string(e.Family), e.Service, pkgstrings.Truncate(e.Name, pkgstrings.DefaultMaxLen), configs})
		}
		t.Render()
	}
	if len(view.Hooks) > 0 {
		fmt.Fprintf(p.out, "Hooks: %s\n", strings.Join(view.Hooks, ", "))
	}
	return nil
}

// PrintValidation prints the result of validating a template.
func (p *Printer) PrintValidation(result ValidationResult) error {
	if p.Structured() {
		return p.printStructured(result)
	}
	if result.Valid {
		fmt.Fprintln(p.out, text.FgGreen.Sprint("Template is valid"))
		return nil
	}
	fmt.Fprintln(p.out, text.FgRed.Sprint("Template is invalid:"))
	for _, e := range result.Errors {
		fmt.Fprintf(p.out, "  - %s\n", e)
	}
	return nil
}

// PrintDependencies prints what a template needs from the console.
func (p *Printer) PrintDependencies(deps template.Dependencies) error {
	if p.Structured() {
		return p.printStructured(deps)
	}
	t := p.newTable()
	t.AppendHeader(header("DEPENDENCY", "VALUE"))
	t.AppendRow(table.Row{"runtime", yesNo(deps.Runtime)})
	for _, api := range deps.APIs {
		t.AppendRow(table.Row{"api", api.Code})
	}
	t.Render()
	return nil
}

func (p *Printer) printStructured(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	if p.format == OutputFormatYAML {
		data, err = yaml.JSONToYAML(data)
		if err != nil {
			return fmt.Errorf("failed to convert to YAML: %w", err)
		}
		_, err = p.out.Write(data)
		return err
	}
	_, err = fmt.Fprintln(p.out, string(data))
	return err
}

func (p *Printer) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(p.out)
	t.SetStyle(table.StyleRounded)
	return t
}

func header(names ...string) table.Row {
	row := make(table.Row, 0, len(names))
	for _, n := range names {
		row = append(row, text.FgHiCyan.Sprint(n))
	}
	return row
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
