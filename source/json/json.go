// Package json turns JSON metadata documents into records, mirroring the
// YAML intake driver for pipelines that exchange MDTO metadata as JSON.
package json

import (
	"fmt"

	gojson "github.com/goccy/go-json"

	"github.com/guidodo/mdto"
)

// NewRecord decodes JSON data into a record for the named global element.
func NewRecord(h *mdto.Schema, root string, data []byte) (*mdto.Record, error) {
	var m map[string]any
	if err := gojson.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return mdto.RecordFromMap(h, root, m)
}
