/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package routing

import (
	"math"

	"gonodeflow/internal/vector"
)

const (
	// minControlOffset keeps short curves visibly leaving their ports.
	minControlOffset = 20.0
	// maxControlOffset stops long connections from bulging across the canvas.
	maxControlOffset = 300.0
)

// Curved draws one cubic bezier whose control points sit on the outward
// normals of the source and target sides.
type Curved struct{}

func (Curved) Kind() Kind { return KindCurved }

func (Curved) Route(ctx Context) (vector.Pt, []vector.Segment) {
	s, e := ctx.Start, ctx.End
	ns, nt := ctx.SourceSide.Normal(), ctx.TargetSide.Normal()
	off := controlOffset(s.Dist(e), ctx.Curvature)

	c1 := s.Add(ns.Scale(off))
	c2 := e.Add(nt.Scale(off))
	if ctx.SourceSide == ctx.TargetSide {
		// Both controls go to the same outer level so the curve leaves on the
		// shared side and bends back instead of cutting through the node.
		level := math.Max(s.Dot(ns), e.Dot(ns)) + off
		c1 = s.Add(ns.Scale(level - s.Dot(ns)))
		c2 = e.Add(ns.Scale(level - e.Dot(ns)))
	}
	return s, []vector.Segment{vector.Curve(s, c1, c2, e)}
}

// controlOffset scales with the endpoint distance. The lower clamp never
// exceeds half the distance so ports that almost touch do not loop.
func controlOffset(dist, curvature float64) float64 {
	if curvature < 0 || math.IsNaN(curvature) {
		curvature = 0
	}
	off := dist * curvature
	if lo := math.Min(minControlOffset, dist/2); off < lo {
		off = lo
	}
	return math.Min(off, maxControlOffset)
}
