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
	"testing"

	"graphboard/internal/geometry"
	"graphboard/internal/graph"
)

func TestFindClosestAbuttingEdges(t *testing.T) {
	// Node A at origin; node B dragged to x=103 should match A's right
	// edge at 100 with its left anchor, for an offset of exactly -3.
	guides := BuildGuides([]graph.Node{{ID: "a", X: 0, Y: 0, Width: 100, Height: 50}}, nil)
	box := geometry.R(103, 0, 100, 50)

	h, v := FindClosest(box, guides)
	if v == nil {
		t.Fatalf("expected a vertical match")
	}
	if v.Line.Anchor != "right" || v.Line.Position != 100 || v.AnchorPos != 103 || v.Distance != 3 {
		t.Fatalf("unexpected vertical match: %+v", v)
	}
	if h == nil || h.Distance != 0 || h.Line.Anchor != "top" {
		t.Fatalf("expected exact top alignment, got %+v", h)
	}

	off := OffsetFor(h, v)
	if off.X != -3 || off.Y != 0 {
		t.Fatalf("offset = %+v, want {-3 0}", off)
	}
	if got := box.X + off.X; got != 100 {
		t.Fatalf("final x = %v, want 100", got)
	}
}

func TestFindClosestThresholdIsInclusive(t *testing.T) {
	guides := []GuideLine{{Orientation: Horizontal, Position: 0, SourceID: "a", Anchor: "top"}}

	// Box top at exactly Threshold must still match.
	h, _ := FindClosest(geometry.R(500, Threshold, 10, 10), guides)
	if h == nil || h.Distance != Threshold {
		t.Fatalf("match at exact threshold rejected: %+v", h)
	}

	// Just beyond the threshold must not.
	h, _ = FindClosest(geometry.R(500, Threshold+0.01, 10, 10), guides)
	if h != nil {
		t.Fatalf("match beyond threshold accepted: %+v", h)
	}
}

func TestFindClosestPrefersSmallerDistance(t *testing.T) {
	guides := []GuideLine{
		{Orientation: Vertical, Position: 4, SourceID: "far", Anchor: "left"},
		{Orientation: Vertical, Position: 1, SourceID: "near", Anchor: "left"},
	}
	_, v := FindClosest(geometry.R(0, 500, 100, 10), guides)
	if v == nil || v.Line.SourceID != "near" {
		t.Fatalf("expected nearest line to win, got %+v", v)
	}
}

func TestFindClosestFirstMinimumWinsOnTie(t *testing.T) {
	// Two equidistant lines: the one encountered first is kept.
	guides := []GuideLine{
		{Orientation: Vertical, Position: 2, SourceID: "first", Anchor: "left"},
		{Orientation: Vertical, Position: -2, SourceID: "second", Anchor: "left"},
	}
	_, v := FindClosest(geometry.R(0, 500, 100, 10), guides)
	if v == nil || v.Line.SourceID != "first" {
		t.Fatalf("tie-break changed: %+v", v)
	}
}

func TestFindClosestNothingNearby(t *testing.T) {
	guides := BuildGuides([]graph.Node{{ID: "a", X: 0, Y: 0}}, nil)
	h, v := FindClosest(geometry.R(1000, 1000, 100, 50), guides)
	if h != nil || v != nil {
		t.Fatalf("expected no match far from all guides, got h=%+v v=%+v", h, v)
	}
}

func TestFindClosestIgnoresNonFiniteGuides(t *testing.T) {
	guides := []GuideLine{
		{Orientation: Vertical, Position: float32(math.NaN()), SourceID: "bad", Anchor: "left"},
		{Orientation: Vertical, Position: float32(math.Inf(1)), SourceID: "bad", Anchor: "right"},
	}
	_, v := FindClosest(geometry.R(0, 0, 10, 10), guides)
	if v != nil {
		t.Fatalf("degenerate guide produced a match: %+v", v)
	}
}

func TestFindClosestIsIdempotent(t *testing.T) {
	guides := BuildGuides([]graph.Node{{ID: "a", X: 0, Y: 0, Width: 100, Height: 50}}, nil)
	box := geometry.R(103, 2, 100, 50)

	h1, v1 := FindClosest(box, guides)
	h2, v2 := FindClosest(box, guides)
	if h1 == nil || h2 == nil || *h1 != *h2 {
		t.Fatalf("horizontal match differs across calls: %+v vs %+v", h1, h2)
	}
	if v1 == nil || v2 == nil || *v1 != *v2 {
		t.Fatalf("vertical match differs across calls: %+v vs %+v", v1, v2)
	}
}

func TestOffsetForNilMatches(t *testing.T) {
	if off := OffsetFor(nil, nil); off.X != 0 || off.Y != 0 {
		t.Fatalf("expected zero offset, got %+v", off)
	}
}

func TestOffsetLandsAnchorOnGuide(t *testing.T) {
	// All anchors translate rigidly with the box, so AnchorPos plus the
	// computed offset must land exactly on the guide position.
	guides := BuildGuides([]graph.Node{{ID: "a", X: 7.25, Y: 11.5, Width: 90, Height: 40}}, nil)
	box := geometry.R(100.1, 13.9, 80, 40)
	h, v := FindClosest(box, guides)
	if h == nil || v == nil {
		t.Fatalf("expected matches on both orientations, got h=%+v v=%+v", h, v)
	}
	off := OffsetFor(h, v)
	const eps = 1e-4
	if diff := math.Abs(float64(v.AnchorPos + off.X - v.Line.Position)); diff > eps {
		t.Fatalf("vertical anchor off guide by %v", diff)
	}
	if diff := math.Abs(float64(h.AnchorPos + off.Y - h.Line.Position)); diff > eps {
		t.Fatalf("horizontal anchor off guide by %v", diff)
	}
}
