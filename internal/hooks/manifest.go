// Package hooks registers template hooks in the application manifest.
package hooks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/giantswarm/projectinstall/internal/template"
	"github.com/giantswarm/projectinstall/pkg/logging"
)

const (
	applicationKey = "application"
	hooksKey       = "hooks"
)

// ManifestRegistrar writes application.hooks.<hook> entries into a YAML
// manifest, leaving the rest of the document as it is.
type ManifestRegistrar struct {
	path            string
	commandTemplate string
	engine          *template.Engine
	logger          logging.Logger
}

// NewManifestRegistrar creates a registrar for the manifest at path. Each hook
// command is rendered from commandTemplate with .Template and .Hook.
func NewManifestRegistrar(path, commandTemplate string, logger logging.Logger) *ManifestRegistrar {
	if logger == nil {
		logger = logging.Discard()
	}
	return &ManifestRegistrar{
		path:            path,
		commandTemplate: commandTemplate,
		engine:          template.NewEngine(nil),
		logger:          logger,
	}
}

// RegisterHooks sets a command for every hook. Existing commands for the same
// hooks are replaced. A missing manifest is created.
func (r *ManifestRegistrar) RegisterHooks(ctx context.Context, templateID string, hooks []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc, perm, err := r.load()
	if err != nil {
		return err
	}

	hooksNode, err := ensureMapping(doc, applicationKey, hooksKey)
	if err != nil {
		return fmt.Errorf("invalid manifest %s: %w", r.path, err)
	}

	for _, hook := range hooks {
		command, err := r.engine.Render("hook command", r.commandTemplate, map[string]interface{}{
			"Template": templateID,
			"Hook":     hook,
		})
		if err != nil {
			return err
		}
		setScalar(hooksNode, hook, command)
		r.logger.Debug("Registered hook %s: %s", hook, command)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode manifest %s: %w", r.path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode manifest %s: %w", r.path, err)
	}

	if err := writeFileAtomic(r.path, buf.Bytes(), perm); err != nil {
		return fmt.Errorf("failed to write manifest %s: %w", r.path, err)
	}
	r.logger.Info("Registered %d hooks in %s", len(hooks), r.path)
	return nil
}

// load returns the manifest document node and the file mode to write it back with.
func (r *ManifestRegistrar) load() (*yaml.Node, os.FileMode, error) {
	perm := os.FileMode(0644)

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return newDocument(), perm, nil
		}
		return nil, 0, fmt.Errorf("failed to read manifest %s: %w", r.path, err)
	}
	if info, err := os.Stat(r.path); err == nil {
		perm = info.Mode().Perm()
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, 0, fmt.Errorf("failed to parse manifest %s: %w", r.path, err)
	}
	if doc.Kind == 0 {
		return newDocument(), perm, nil
	}
	return &doc, perm, nil
}

func newDocument() *yaml.Node {
	return &yaml.Node{
		Kind:    yaml.DocumentNode,
		Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}},
	}
}

// ensureMapping walks keys from the document root, creating empty mappings
// where a key is missing or null.
func ensureMapping(doc *yaml.Node, keys ...string) (*yaml.Node, error) {
	if len(doc.Content) == 0 {
		doc.Content = []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}
	}
	node := doc.Content[0]
	if isNull(node) {
		*node = yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("document root is not a mapping")
	}

	for _, key := range keys {
		child := lookup(node, key)
		switch {
		case child == nil:
			child = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
				child,
			)
		case isNull(child):
			*child = yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		case child.Kind != yaml.MappingNode:
			return nil, fmt.Errorf("%s is not a mapping", key)
		}
		node = child
	}
	return node, nil
}

func lookup(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

func setScalar(mapping *yaml.Node, key, value string) {
	if existing := lookup(mapping, key); existing != nil {
		*existing = yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
		return
	}
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value},
	)
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}
