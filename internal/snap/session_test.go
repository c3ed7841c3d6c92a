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
	"testing"
	"time"

	"graphboard/internal/geometry"
	"graphboard/internal/graph"
)

// fakeClock lets tests step through the settle window without sleeping.
type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestController() (*Controller, *fakeClock) {
	c := NewController()
	clk := &fakeClock{t: time.Unix(1000, 0)}
	c.now = clk.now
	return c, clk
}

func TestApplySnapsSingleNodeToNeighborEdge(t *testing.T) {
	nodes := []graph.Node{
		{ID: "a", X: 0, Y: 0, Width: 100, Height: 50},
		{ID: "b", X: 90, Y: 0, Width: 100, Height: 50},
	}
	c, _ := newTestController()

	out := c.Apply([]PositionChange{{NodeID: "b", Position: geometry.Pt{X: 103, Y: 0}, Dragging: true}}, nodes)
	if len(out) != 1 {
		t.Fatalf("unexpected batch size %d", len(out))
	}
	if out[0].Position.X != 100 || out[0].Position.Y != 0 {
		t.Fatalf("expected snapped position {100 0}, got %+v", out[0].Position)
	}
	lines := c.Guides()
	if lines.Vertical == nil || lines.Vertical.Position != 100 || lines.Vertical.SourceID != "a" {
		t.Fatalf("expected vertical guide at a's right edge, got %+v", lines.Vertical)
	}
	if c.DraggedID() != "b" {
		t.Fatalf("expected b to be the dragged reference, got %q", c.DraggedID())
	}
}

func TestApplyNoOpWithoutCandidates(t *testing.T) {
	// A lone node has nothing to snap to: the batch passes through and no
	// guides are shown.
	nodes := []graph.Node{{ID: "a", X: 0, Y: 0}}
	c, _ := newTestController()

	in := []PositionChange{{NodeID: "a", Position: geometry.Pt{X: 42, Y: 17}, Dragging: true}}
	out := c.Apply(in, nodes)
	if out[0].Position != in[0].Position {
		t.Fatalf("expected pass-through, got %+v", out[0].Position)
	}
	if lines := c.Guides(); lines.Horizontal != nil || lines.Vertical != nil {
		t.Fatalf("expected no guides, got %+v", lines)
	}
}

func TestApplySteadyStateReturnsInputUnchanged(t *testing.T) {
	nodes := []graph.Node{{ID: "a", X: 0, Y: 0}, {ID: "b", X: 500, Y: 500}}
	c, _ := newTestController()

	in := []PositionChange{{NodeID: "a", Position: geometry.Pt{X: 1, Y: 2}}}
	out := c.Apply(in, nodes)
	if &out[0] != &in[0] {
		t.Fatalf("steady-state path should return the input batch as-is")
	}
}

func TestApplyGroupCohesion(t *testing.T) {
	// Three nodes dragged together; only the reference node b is within
	// threshold of a's right edge. All three must receive the same offset
	// so their pairwise geometry is preserved.
	nodes := []graph.Node{
		{ID: "a", X: 0, Y: 0, Width: 100, Height: 50},
		{ID: "b", X: 90, Y: 300, Width: 100, Height: 50},
		{ID: "c", X: 290, Y: 300, Width: 100, Height: 50},
		{ID: "d", X: 90, Y: 500, Width: 100, Height: 50},
	}
	c, _ := newTestController()

	in := []PositionChange{
		{NodeID: "b", Position: geometry.Pt{X: 103, Y: 300}, Dragging: true},
		{NodeID: "c", Position: geometry.Pt{X: 303, Y: 300}, Dragging: true},
		{NodeID: "d", Position: geometry.Pt{X: 103, Y: 500}, Dragging: true},
	}
	out := c.Apply(in, nodes)

	if out[0].Position.X != 100 {
		t.Fatalf("reference node not snapped: %+v", out[0].Position)
	}
	for i := range in {
		for j := range in {
			wantDX := in[j].Position.X - in[i].Position.X
			wantDY := in[j].Position.Y - in[i].Position.Y
			gotDX := out[j].Position.X - out[i].Position.X
			gotDY := out[j].Position.Y - out[i].Position.Y
			if gotDX != wantDX || gotDY != wantDY {
				t.Fatalf("pairwise offset %s->%s changed: got (%v,%v), want (%v,%v)",
					in[i].NodeID, in[j].NodeID, gotDX, gotDY, wantDX, wantDY)
			}
		}
	}
}

func TestApplyGroupNeverSplitsAcrossTargets(t *testing.T) {
	// c alone would snap to e's left edge, but it is not the reference
	// node, so it must follow the group offset instead of snapping itself.
	nodes := []graph.Node{
		{ID: "a", X: 0, Y: 0, Width: 100, Height: 50},
		{ID: "e", X: 600, Y: 300, Width: 100, Height: 50},
		{ID: "b", X: 90, Y: 300, Width: 100, Height: 50},
		{ID: "c", X: 490, Y: 300, Width: 100, Height: 50},
	}
	c, _ := newTestController()

	in := []PositionChange{
		{NodeID: "b", Position: geometry.Pt{X: 103, Y: 300}, Dragging: true},
		{NodeID: "c", Position: geometry.Pt{X: 503, Y: 300}, Dragging: true},
	}
	out := c.Apply(in, nodes)
	// b snaps -3 to a's right edge. c's own right edge (603) is within
	// threshold of e's left edge (600), but c must follow the group offset.
	if got := out[1].Position.X - out[0].Position.X; got != 400 {
		t.Fatalf("group torn apart: relative dx = %v, want 400", got)
	}
	if out[0].Position.X != 100 || out[1].Position.X != 500 {
		t.Fatalf("unexpected group positions: %+v, %+v", out[0].Position, out[1].Position)
	}
}

func TestApplySettleLockSuppressesLateEvents(t *testing.T) {
	nodes := []graph.Node{
		{ID: "a", X: 0, Y: 0, Width: 100, Height: 50},
		{ID: "b", X: 90, Y: 0, Width: 100, Height: 50},
	}
	c, clk := newTestController()

	// Drag within threshold, then drop at the same proposed position.
	c.Apply([]PositionChange{{NodeID: "b", Position: geometry.Pt{X: 103, Y: 0}, Dragging: true}}, nodes)
	out := c.Apply([]PositionChange{{NodeID: "b", Position: geometry.Pt{X: 103, Y: 0}}}, nodes)
	if out[0].Position.X != 100 {
		t.Fatalf("drop did not re-apply recorded offset: %+v", out[0].Position)
	}
	if lines := c.Guides(); lines.Horizontal != nil || lines.Vertical != nil {
		t.Fatalf("guides must clear on drop, got %+v", lines)
	}

	// A late duplicate inside the settle window reports the pre-snap
	// position; it must be overridden with the locked snapped position.
	clk.advance(100 * time.Millisecond)
	out = c.Apply([]PositionChange{{NodeID: "b", Position: geometry.Pt{X: 103, Y: 0}}}, nodes)
	if out[0].Position.X != 100 {
		t.Fatalf("late event not suppressed: %+v", out[0].Position)
	}

	// After the window elapses the lock drops and events pass through.
	clk.advance(SettleDuration)
	out = c.Apply([]PositionChange{{NodeID: "b", Position: geometry.Pt{X: 103, Y: 0}}}, nodes)
	if out[0].Position.X != 103 {
		t.Fatalf("expected pass-through after settle expiry: %+v", out[0].Position)
	}
}

func TestApplyNewDragClearsSettleLock(t *testing.T) {
	nodes := []graph.Node{
		{ID: "a", X: 0, Y: 0, Width: 100, Height: 50},
		{ID: "b", X: 90, Y: 0, Width: 100, Height: 50},
	}
	c, _ := newTestController()

	c.Apply([]PositionChange{{NodeID: "b", Position: geometry.Pt{X: 103, Y: 0}, Dragging: true}}, nodes)
	c.Apply([]PositionChange{{NodeID: "b", Position: geometry.Pt{X: 103, Y: 0}}}, nodes)

	// New gesture far from any guide: the stale lock must not override it.
	out := c.Apply([]PositionChange{{NodeID: "b", Position: geometry.Pt{X: 400, Y: 400}, Dragging: true}}, nodes)
	if out[0].Position.X != 400 || out[0].Position.Y != 400 {
		t.Fatalf("new drag overridden by stale settle lock: %+v", out[0].Position)
	}
}

func TestApplyMissingNodePassesThrough(t *testing.T) {
	nodes := []graph.Node{
		{ID: "a", X: 0, Y: 0, Width: 100, Height: 50},
		{ID: "b", X: 90, Y: 0, Width: 100, Height: 50},
	}
	c, _ := newTestController()

	// ghost was deleted mid-drag: its change is untouched, and b (the
	// first surviving node) still acts as the reference.
	in := []PositionChange{
		{NodeID: "ghost", Position: geometry.Pt{X: 9, Y: 9}, Dragging: true},
		{NodeID: "b", Position: geometry.Pt{X: 103, Y: 0}, Dragging: true},
	}
	out := c.Apply(in, nodes)
	if out[0].Position != in[0].Position {
		t.Fatalf("missing node change was modified: %+v", out[0])
	}
	if out[1].Position.X != 100 {
		t.Fatalf("surviving node not snapped: %+v", out[1].Position)
	}
}

func TestApplyDropWithoutPriorDragPassesThrough(t *testing.T) {
	nodes := []graph.Node{{ID: "a", X: 0, Y: 0}, {ID: "b", X: 300, Y: 300}}
	c, clk := newTestController()

	// Seed some unrelated session state so the fast path is not taken.
	c.Apply([]PositionChange{{NodeID: "b", Position: geometry.Pt{X: 300, Y: 300}, Dragging: true}}, nodes)
	clk.advance(time.Millisecond)

	out := c.Apply([]PositionChange{{NodeID: "a", Position: geometry.Pt{X: 7, Y: 8}}}, nodes)
	if out[0].Position.X != 7 || out[0].Position.Y != 8 {
		t.Fatalf("unrelated node should pass through, got %+v", out[0].Position)
	}
}
