/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package snap implements the alignment-guide engine used while dragging
// nodes on the board: it builds candidate guide lines from the stationary
// nodes, finds the nearest line per orientation within a fixed threshold,
// and rewrites the dragged positions so the matched anchors coincide with
// the guides. The helpers are UI-agnostic and deterministic to enable unit
// testing and reuse across frontends; the only stateful piece is the
// Controller, which runs once per interaction frame.
package snap

import "time"

// Fixed engine configuration. These are deliberately constants, not user
// settings: every call site shares the same values.
const (
	// Threshold is the maximum distance (canvas units) at which snapping
	// occurs. Inclusive: a match at exactly Threshold is accepted.
	Threshold float32 = 5

	// SettleDuration is how long a dropped node's snapped position is held
	// so late duplicate move events cannot visually un-snap it.
	SettleDuration = 250 * time.Millisecond

	// GuidePadding extends a rendered guide beyond the union of the two
	// aligned boxes so the line is visible past their edges.
	GuidePadding float32 = 20
)
