package manifest

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/ext/typeexpr"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/sockwire/internal/ctxlog"
	"github.com/vk/sockwire/internal/fsutil"
	"github.com/vk/sockwire/internal/schema"
)

// Loader reads event catalogue files and builds the schema registry.
type Loader struct{}

// NewLoader creates a catalogue loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file under each path (single files or directories)
// and merges their event blocks into one registry. Duplicate event names
// across all loaded files are rejected.
func (l *Loader) Load(ctx context.Context, paths ...string) (*schema.Registry, error) {
	logger := ctxlog.FromContext(ctx)

	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("manifest: %w", err)
		}
		if info.IsDir() {
			found, err := fsutil.FindFilesByExtension(path, ".hcl")
			if err != nil {
				return nil, fmt.Errorf("manifest: failed to walk %s: %w", path, err)
			}
			files = append(files, found...)
		} else {
			files = append(files, path)
		}
	}

	if len(files) == 0 {
		logger.Warn("No catalogue files found in paths", "paths", paths)
	}

	parser := hclparse.NewParser()
	defs := make(map[string]schema.PayloadValidator)

	for _, filePath := range files {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("manifest: failed to parse %s: %w", filePath, diags)
		}

		var cfg CatalogueConfig
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &cfg); diags.HasErrors() {
			return nil, fmt.Errorf("manifest: invalid catalogue file %s: %w", filePath, diags)
		}

		for _, def := range cfg.Events {
			if _, dup := defs[def.Name]; dup {
				return nil, fmt.Errorf("manifest: event %q declared more than once", def.Name)
			}
			typ, err := payloadType(def.Payload)
			if err != nil {
				return nil, fmt.Errorf("manifest: event %q in %s: %w", def.Name, filePath, err)
			}
			defs[def.Name] = schema.ForType(typ)
			logger.Debug("Catalogue event loaded.", "event", def.Name, "type", typ.FriendlyName())
		}
	}

	logger.Info("Catalogue loaded.", "events", len(defs), "files", len(files))
	return schema.New(defs), nil
}

// payloadType translates a payload type expression (`string`,
// `list(number)`, `object({user = string})`, `any`) into its cty type
// constraint.
func payloadType(expr hcl.Expression) (cty.Type, error) {
	typ, diags := typeexpr.TypeConstraint(expr)
	if diags.HasErrors() {
		return cty.DynamicPseudoType, fmt.Errorf("invalid payload type: %w", diags)
	}
	return typ, nil
}
