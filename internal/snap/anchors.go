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

import "graphboard/internal/geometry"

// Orientation classifies a guide line. Horizontal guides carry a Y
// coordinate and pull vertically-adjacent content onto one horizontal line;
// vertical guides carry an X coordinate.
type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Anchor names one measurable feature of a box. Pos extracts the scalar
// coordinate the anchor measures: a Y for horizontal anchors, an X for
// vertical ones.
type Anchor struct {
	Name        string
	Orientation Orientation
	Pos         func(geometry.Rect) float32
}

// anchors is the fixed, process-wide anchor set. Read-only; the iteration
// order below is the tie-break order when two candidates are equidistant.
var anchors = [...]Anchor{
	{Name: "top", Orientation: Horizontal, Pos: func(b geometry.Rect) float32 { return b.Y }},
	{Name: "bottom", Orientation: Horizontal, Pos: func(b geometry.Rect) float32 { return b.Y + b.H }},
	{Name: "left", Orientation: Vertical, Pos: func(b geometry.Rect) float32 { return b.X }},
	{Name: "right", Orientation: Vertical, Pos: func(b geometry.Rect) float32 { return b.X + b.W }},
	{Name: "centerX", Orientation: Vertical, Pos: func(b geometry.Rect) float32 { return b.X + b.W/2 }},
	{Name: "centerY", Orientation: Horizontal, Pos: func(b geometry.Rect) float32 { return b.Y + b.H/2 }},
}
