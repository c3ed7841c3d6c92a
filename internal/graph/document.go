/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package graph

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"
)

// Document is the in-memory representation of a board file.
type Document struct {
	Name  string `json:"name"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges,omitempty"`
}

// boardSchema validates the raw JSON shape of a board document before it is
// unmarshalled, so malformed files are rejected with per-field errors
// instead of producing half-initialized nodes.
const boardSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["name", "nodes"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "nodes": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "x", "y"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "x": {"type": "number"},
          "y": {"type": "number"},
          "width": {"type": "number", "exclusiveMinimum": 0},
          "height": {"type": "number", "exclusiveMinimum": 0},
          "label": {"type": "string"}
        }
      }
    },
    "edges": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["from", "to"],
        "properties": {
          "from": {"type": "string", "minLength": 1},
          "to": {"type": "string", "minLength": 1}
        }
      }
    }
  }
}`

// Validate checks raw board JSON against the embedded schema.
func Validate(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(boardSchema)
	docLoader := gojsonschema.NewBytesLoader(data)
	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("validate board: %w", err)
	}
	if !result.Valid() {
		var b strings.Builder
		for i, e := range result.Errors() {
			if i > 0 {
				b.WriteString("; ")
			}
			b.WriteString(e.String())
		}
		return fmt.Errorf("invalid board document: %s", b.String())
	}
	return nil
}

// Parse validates and unmarshals a board document. It additionally rejects
// duplicate node ids and edges referencing unknown nodes, which the schema
// alone cannot express.
func Parse(data []byte) (*Document, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse board: %w", err)
	}
	seen := make(map[string]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		if seen[n.ID] {
			return nil, fmt.Errorf("invalid board document: duplicate node id %q", n.ID)
		}
		seen[n.ID] = true
	}
	for _, e := range doc.Edges {
		if !seen[e.From] || !seen[e.To] {
			return nil, fmt.Errorf("invalid board document: edge %s->%s references unknown node", e.From, e.To)
		}
	}
	return &doc, nil
}

// Load reads and parses a board file from disk.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read board: %w", err)
	}
	return Parse(data)
}

// Save writes the document back to disk as indented JSON.
func (d *Document) Save(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal board: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write board: %w", err)
	}
	return nil
}

// Node looks up a node by id.
func (d *Document) Node(id string) (Node, bool) {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Index returns an id lookup over the document's nodes.
func (d *Document) Index() map[string]Node { return IndexNodes(d.Nodes) }

// SetPosition moves the node with the given id; unknown ids are ignored.
func (d *Document) SetPosition(id string, x, y float32) {
	for i := range d.Nodes {
		if d.Nodes[i].ID == id {
			d.Nodes[i].X = x
			d.Nodes[i].Y = y
			return
		}
	}
}
