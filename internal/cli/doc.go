// Package cli holds the terminal presentation used by the projectinstall
// commands: table, JSON and YAML printers for install reports, plans,
// validation results and dependencies, and a progress spinner.
//
// Tables use go-pretty with the rounded style. YAML output is produced by
// converting the JSON encoding, so both structured formats carry the same
// field names.
package cli
