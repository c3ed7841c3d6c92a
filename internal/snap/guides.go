/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package snap

import "graphboard/internal/graph"

// GuideLine is one candidate alignment line contributed by one stationary
// node's anchor. Guide lines are recomputed from current node state on every
// drag frame and never persisted.
type GuideLine struct {
	Orientation Orientation
	Position    float32
	SourceID    string
	Anchor      string
}

// BuildGuides emits one guide line per anchor for every node not in
// excluded. The excluded set must contain every node of the current drag
// gesture: a dragged node never snaps to itself or to a co-dragged node.
// Duplicates from coincident nodes are retained; the matcher resolves them.
func BuildGuides(nodes []graph.Node, excluded map[string]bool) []GuideLine {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]GuideLine, 0, len(nodes)*len(anchors))
	for _, n := range nodes {
		if excluded[n.ID] {
			continue
		}
		box := n.Box()
		for _, a := range anchors {
			out = append(out, GuideLine{
				Orientation: a.Orientation,
				Position:    a.Pos(box),
				SourceID:    n.ID,
				Anchor:      a.Name,
			})
		}
	}
	return out
}
