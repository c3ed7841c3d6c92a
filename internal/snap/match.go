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
	"math"

	"graphboard/internal/geometry"
)

// GuideMatch is the nearest candidate line for one orientation, within
// threshold, for one dragged box. AnchorPos is the dragged anchor coordinate
// that produced the match.
type GuideMatch struct {
	Line      GuideLine
	Distance  float32
	AnchorPos float32
}

// FindClosest evaluates every anchor of box against every guide of matching
// orientation and keeps the minimum-distance match per orientation. Matches
// at exactly Threshold are accepted; the first minimum wins on exact ties.
// Nil results are the common case on frames with nothing nearby.
func FindClosest(box geometry.Rect, guides []GuideLine) (horizontal, vertical *GuideMatch) {
	for _, g := range guides {
		for _, a := range anchors {
			if a.Orientation != g.Orientation {
				continue
			}
			pos := a.Pos(box)
			dist := float32(math.Abs(float64(pos - g.Position)))
			// The negated form keeps NaN from degenerate geometry out.
			if !(dist <= Threshold) {
				continue
			}
			switch g.Orientation {
			case Horizontal:
				if horizontal == nil || dist < horizontal.Distance {
					horizontal = &GuideMatch{Line: g, Distance: dist, AnchorPos: pos}
				}
			case Vertical:
				if vertical == nil || dist < vertical.Distance {
					vertical = &GuideMatch{Line: g, Distance: dist, AnchorPos: pos}
				}
			}
		}
	}
	return horizontal, vertical
}

// OffsetFor converts per-orientation matches into the signed translation
// that, added to the dragged position, puts each matched anchor exactly on
// its guide. Missing matches contribute zero.
func OffsetFor(horizontal, vertical *GuideMatch) geometry.Pt {
	var off geometry.Pt
	if vertical != nil {
		off.X = vertical.Line.Position - vertical.AnchorPos
	}
	if horizontal != nil {
		off.Y = horizontal.Line.Position - horizontal.AnchorPos
	}
	return off
}
