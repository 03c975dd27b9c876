package template

import (
	"fmt"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
)

// Engine renders the short text templates used for credential names and
// hook commands. Templates get the sprig function set plus unixMilli, which
// reads the engine clock.
type Engine struct {
	funcs texttemplate.FuncMap
}

// NewEngine creates an engine. A nil clock means time.Now.
func NewEngine(clock func() time.Time) *Engine {
	if clock == nil {
		clock = time.Now
	}
	funcs := sprig.TxtFuncMap()
	funcs["unixMilli"] = func() int64 { return clock().UnixMilli() }
	funcs["now"] = clock
	return &Engine{funcs: funcs}
}

// Render executes text against the merged contexts. Referencing a variable
// that no context provides is an error.
func (e *Engine) Render(name, text string, contexts ...map[string]interface{}) (string, error) {
	tmpl, err := e.parse(name, text)
	if err != nil {
		return "", err
	}
	var out strings.Builder
	if err := tmpl.Execute(&out, mergeContexts(contexts)); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return out.String(), nil
}

// Check parses text without executing it.
func (e *Engine) Check(name, text string) error {
	_, err := e.parse(name, text)
	return err
}

func (e *Engine) parse(name, text string) (*texttemplate.Template, error) {
	tmpl, err := texttemplate.New(name).Option("missingkey=error").Funcs(e.funcs).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return tmpl, nil
}

// mergeContexts flattens contexts; later keys win.
func mergeContexts(contexts []map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{})
	for _, c := range contexts {
		for k, v := range c {
			merged[k] = v
		}
	}
	return merged
}
