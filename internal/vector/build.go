/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Path builder: turns a routed start point plus segments into drawable and
// hit-testable geometry. All builders are pure functions of the same inputs so
// the i-th segment always maps to the i-th rect.

// BuildDrawPath concatenates segments into one continuous path.
func BuildDrawPath(start Pt, segs []Segment) Path {
	var p Path
	p.Cmds = make([]PathCmd, 0, len(segs)+1)
	p.MoveTo(start.X, start.Y)
	for _, s := range segs {
		switch s.Kind {
		case SegCurve:
			p.CubicTo(s.C1.X, s.C1.Y, s.C2.X, s.C2.Y, s.To.X, s.To.Y)
		default:
			p.LineTo(s.To.X, s.To.Y)
		}
	}
	return p
}

// BuildHitTestRects returns one rect per segment: its tight bounds expanded by
// tolerance on every side.
// The start point is implied by the first segment.
func BuildHitTestRects(_ Pt, segs []Segment, tolerance float64) []Rect {
	if tolerance < 0 {
		tolerance = 0
	}
	rects := make([]Rect, len(segs))
	for i, s := range segs {
		rects[i] = s.Bounds().Expand(tolerance)
	}
	return rects
}

// BuildHitTestPath unions the expanded rects into a region.
func BuildHitTestPath(rects []Rect) Region {
	r := Region{Rects: append([]Rect(nil), rects...)}
	for i, rc := range rects {
		if i == 0 {
			r.bbox = rc
			continue
		}
		r.bbox = r.bbox.Union(rc)
	}
	return r
}

// IntersectsBounds reports whether any of the per-segment rects overlaps q.
func IntersectsBounds(rects []Rect, q Rect) bool {
	for _, rc := range rects {
		if rc.Overlaps(q) {
			return true
		}
	}
	return false
}
