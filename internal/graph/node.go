/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package graph defines the board document model: the nodes and edges of a
// diagram, plus loading and schema validation of *.board.json files.
package graph

import "graphboard/internal/geometry"

// Default box size applied when a node has no explicit width/height.
const (
	DefaultWidth  float32 = 150
	DefaultHeight float32 = 50
)

// Node is one diagram element. Width and Height are optional; zero means
// "use the default box size".
type Node struct {
	ID     string  `json:"id"`
	X      float32 `json:"x"`
	Y      float32 `json:"y"`
	Width  float32 `json:"width,omitempty"`
	Height float32 `json:"height,omitempty"`
	Label  string  `json:"label,omitempty"`
}

// Box returns the node's bounding box. Missing dimensions fall back to the
// default size, so the result is always a well-formed rectangle.
func (n Node) Box() geometry.Rect {
	w, h := n.Width, n.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return geometry.R(n.X, n.Y, w, h)
}

// Position returns the node's min corner as a point.
func (n Node) Position() geometry.Pt { return geometry.Pt{X: n.X, Y: n.Y} }

// Edge connects two nodes by id.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// IndexNodes builds an id lookup for a node slice. Later duplicates win,
// matching the behavior of re-reading the node set.
func IndexNodes(nodes []Node) map[string]Node {
	idx := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		idx[n.ID] = n
	}
	return idx
}
