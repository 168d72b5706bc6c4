package manifest

import "github.com/hashicorp/hcl/v2"

// EventDefinition is a single `event` block from a catalogue file. The
// payload attribute is kept as a raw expression and translated into a cty
// type constraint during loading.
type EventDefinition struct {
	Name        string         `hcl:"name,label"`
	Description string         `hcl:"description,optional"`
	Payload     hcl.Expression `hcl:"payload"`
}

// CatalogueConfig is the top-level structure of one catalogue file.
type CatalogueConfig struct {
	Events []*EventDefinition `hcl:"event,block"`
	Body   hcl.Body           `hcl:",remain"`
}
