// Package yaml turns YAML metadata files into records. It is an intake
// convenience for workflows that author MDTO metadata by hand: the YAML key
// structure mirrors the element structure, and the resulting record goes
// through the same lexical checks as parsed XML.
package yaml

import (
	"fmt"

	yamlv3 "gopkg.in/yaml.v3"

	"github.com/guidodo/mdto"
)

// NewRecord decodes YAML data into a record for the named global element.
func NewRecord(h *mdto.Schema, root string, data []byte) (*mdto.Record, error) {
	var m map[string]any
	if err := yamlv3.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return mdto.RecordFromMap(h, root, m)
}
