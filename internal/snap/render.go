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

import (
	"graphboard/internal/geometry"
	"graphboard/internal/graph"
)

// Segment is a drawable guide line in canvas units.
type Segment struct {
	Orientation Orientation
	From, To    geometry.Pt
}

// Transform projects the segment through a view transform (pan/zoom).
func (s Segment) Transform(m geometry.Affine2D) Segment {
	return Segment{Orientation: s.Orientation, From: m.Apply(s.From), To: m.Apply(s.To)}
}

// Segments is a pure projection of the current helper-line state into
// drawable line segments: at most one horizontal and one vertical. Each
// segment spans the union of the dragged node's box and the guide source's
// box along the line's own axis, padded by GuidePadding, so the line covers
// only the aligned elements. No guide, no segment.
func Segments(lines HelperLines, nodes []graph.Node, draggedID string) []Segment {
	if lines.Horizontal == nil && lines.Vertical == nil {
		return nil
	}
	index := graph.IndexNodes(nodes)
	dragged, ok := index[draggedID]
	if !ok {
		return nil
	}
	db := dragged.Box()

	var out []Segment
	if g := lines.Horizontal; g != nil {
		if src, ok := index[g.SourceID]; ok {
			sb := src.Box()
			x0 := min(db.X, sb.X) - GuidePadding
			x1 := max(db.X+db.W, sb.X+sb.W) + GuidePadding
			out = append(out, Segment{
				Orientation: Horizontal,
				From:        geometry.Pt{X: x0, Y: g.Position},
				To:          geometry.Pt{X: x1, Y: g.Position},
			})
		}
	}
	if g := lines.Vertical; g != nil {
		if src, ok := index[g.SourceID]; ok {
			sb := src.Box()
			y0 := min(db.Y, sb.Y) - GuidePadding
			y1 := max(db.Y+db.H, sb.Y+sb.H) + GuidePadding
			out = append(out, Segment{
				Orientation: Vertical,
				From:        geometry.Pt{X: g.Position, Y: y0},
				To:          geometry.Pt{X: g.Position, Y: y1},
			})
		}
	}
	return out
}
