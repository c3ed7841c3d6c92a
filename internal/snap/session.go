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
	"time"

	"graphboard/internal/geometry"
	"graphboard/internal/graph"
)

// PositionChange is one proposed node move for the current interaction
// frame. Dragging marks a live pointer drag; a change with Dragging false
// and a prior recorded offset is the drop event.
type PositionChange struct {
	NodeID   string
	Position geometry.Pt
	Dragging bool
}

// HelperLines is the publicly visible guide state for the current frame:
// at most one line per orientation. This is all the renderer consumes.
type HelperLines struct {
	Horizontal *GuideLine
	Vertical   *GuideLine
}

type settleLock struct {
	pos     geometry.Pt
	expires time.Time
}

// Controller orchestrates the drag session. It owns the per-node offsets
// accumulated during a drag, the post-drop settle locks, and the shared
// helper-line state. Not safe for concurrent use: it runs on the interaction
// thread, once per frame.
type Controller struct {
	now      func() time.Time
	offsets  map[string]geometry.Pt
	settled  map[string]settleLock
	lines    HelperLines
	activeID string
}

func NewController() *Controller {
	return &Controller{
		now:     time.Now,
		offsets: make(map[string]geometry.Pt),
		settled: make(map[string]settleLock),
	}
}

// Guides returns the helper-line snapshot for the current frame.
func (c *Controller) Guides() HelperLines { return c.lines }

// DraggedID returns the reference node of the active drag, or "" when idle.
func (c *Controller) DraggedID() string { return c.activeID }

// Apply rewrites a batch of proposed position changes. Dragging changes are
// snapped against guides built from the stationary nodes; drop events are
// settled at their snapped position for SettleDuration; everything else
// passes through. Changes referencing unknown node ids pass through
// unmodified. The input slice is not mutated.
func (c *Controller) Apply(changes []PositionChange, nodes []graph.Node) []PositionChange {
	// Steady-state no-op path: no session state and nothing dragging.
	if len(c.offsets) == 0 && len(c.settled) == 0 && !anyDragging(changes) {
		return changes
	}

	out := make([]PositionChange, len(changes))
	copy(out, changes)

	index := graph.IndexNodes(nodes)

	// Collect the drag gesture: every dragging change whose node exists.
	var refIdx = -1
	moving := make(map[string]bool)
	for i, ch := range changes {
		if !ch.Dragging {
			continue
		}
		if _, ok := index[ch.NodeID]; !ok {
			continue // deleted mid-drag: pass through below
		}
		moving[ch.NodeID] = true
		if refIdx < 0 {
			refIdx = i
		}
	}

	if refIdx >= 0 {
		// A fresh gesture supersedes any pending settle locks.
		if len(c.offsets) == 0 && len(c.settled) > 0 {
			c.settled = make(map[string]settleLock)
		}

		ref := changes[refIdx]
		box := index[ref.NodeID].Box().At(ref.Position)
		h, v := FindClosest(box, BuildGuides(nodes, moving))
		off := OffsetFor(h, v)

		// One offset for the whole gesture keeps a multi-selection rigid.
		for i, ch := range changes {
			if !ch.Dragging || !moving[ch.NodeID] {
				continue
			}
			out[i].Position = ch.Position.Add(off)
			c.offsets[ch.NodeID] = off
		}

		c.lines = HelperLines{}
		if h != nil {
			line := h.Line
			c.lines.Horizontal = &line
		}
		if v != nil {
			line := v.Line
			c.lines.Vertical = &line
		}
		c.activeID = ref.NodeID
	}

	for i, ch := range changes {
		if ch.Dragging {
			continue
		}
		now := c.now()
		if lock, ok := c.settled[ch.NodeID]; ok {
			if now.Before(lock.expires) {
				out[i].Position = lock.pos
				continue
			}
			delete(c.settled, ch.NodeID)
		}
		if off, ok := c.offsets[ch.NodeID]; ok {
			// Drop: re-apply the recorded offset to the final position and
			// hold it there until the settle window elapses.
			snapped := ch.Position.Add(off)
			out[i].Position = snapped
			c.settled[ch.NodeID] = settleLock{pos: snapped, expires: now.Add(SettleDuration)}
			delete(c.offsets, ch.NodeID)
			c.lines = HelperLines{}
			c.activeID = ""
		}
	}

	return out
}

func anyDragging(changes []PositionChange) bool {
	for _, ch := range changes {
		if ch.Dragging {
			return true
		}
	}
	return false
}
