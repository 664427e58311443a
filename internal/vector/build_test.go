/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "testing"

func sampleSegments() (Pt, []Segment) {
	start := Pt{0, 0}
	return start, []Segment{
		Line(start, Pt{40, 0}),
		Curve(Pt{40, 0}, Pt{45.5, 0}, Pt{50, 4.5}, Pt{50, 10}),
		Line(Pt{50, 10}, Pt{50, 80}),
		Line(Pt{50, 80}, Pt{120, 80}),
	}
}

func TestBuildDrawPath_OneCommandPerSegment(t *testing.T) {
	start, segs := sampleSegments()
	p := BuildDrawPath(start, segs)
	if len(p.Cmds) != len(segs)+1 {
		t.Fatalf("expected %d commands, got %d", len(segs)+1, len(p.Cmds))
	}
	if p.Cmds[0].Op != MoveTo || p.Cmds[2].Op != CubicTo || p.Cmds[1].Op != LineTo {
		t.Fatalf("unexpected ops: %+v", p.Cmds)
	}
}

func TestBuildHitTestRects_BoundEachSegmentWithMargin(t *testing.T) {
	start, segs := sampleSegments()
	const tol = 4
	rects := BuildHitTestRects(start, segs, tol)
	if len(rects) != len(segs) {
		t.Fatalf("expected one rect per segment")
	}
	for i, s := range segs {
		sb := s.Bounds()
		r := rects[i]
		if sb.X-r.X < tol-1e-9 || sb.Y-r.Y < tol-1e-9 ||
			(r.X+r.W)-(sb.X+sb.W) < tol-1e-9 || (r.Y+r.H)-(sb.Y+sb.H) < tol-1e-9 {
			t.Fatalf("rect %d does not bound segment with margin %v: %+v vs %+v", i, tol, r, sb)
		}
	}
}

func TestRegion_ToleranceBoundary(t *testing.T) {
	const tol, eps = 5.0, 0.01
	segs := []Segment{Line(Pt{0, 0}, Pt{100, 100})}
	region := BuildHitTestPath(BuildHitTestRects(Pt{0, 0}, segs, tol)).WithCenterline(segs, tol)
	// unit normal of the diagonal
	n := Pt{-0.7071067811865476, 0.7071067811865476}
	mid := Pt{50, 50}
	if !region.Hit(mid.Add(n.Scale(tol - eps))) {
		t.Fatalf("point inside tolerance should hit")
	}
	if region.Hit(mid.Add(n.Scale(tol + eps))) {
		t.Fatalf("point outside tolerance should miss")
	}
}

func TestRegion_CoarseUsesRects(t *testing.T) {
	segs := []Segment{Line(Pt{0, 0}, Pt{100, 100})}
	region := BuildHitTestPath(BuildHitTestRects(Pt{0, 0}, segs, 2))
	if region.Precise() {
		t.Fatalf("region without centerline must be coarse")
	}
	// inside the bbox but far from the diagonal
	if !region.Hit(Pt{90, 10}) {
		t.Fatalf("coarse region should accept any point inside the rects")
	}
	if region.Hit(Pt{200, 200}) {
		t.Fatalf("far point must miss")
	}
}

func TestRegion_MismatchedCenterlineIgnored(t *testing.T) {
	_, segs := sampleSegments()
	region := BuildHitTestPath(BuildHitTestRects(Pt{}, segs, 1)).WithCenterline(segs[:1], 1)
	if region.Precise() {
		t.Fatalf("centerline with wrong length must be ignored")
	}
}

func TestIntersectsBounds(t *testing.T) {
	start, segs := sampleSegments()
	rects := BuildHitTestRects(start, segs, 2)
	if !IntersectsBounds(rects, R(100, 70, 50, 50)) {
		t.Fatalf("expected overlap with last segment")
	}
	if IntersectsBounds(rects, R(0, 30, 20, 20)) {
		t.Fatalf("did not expect overlap in empty area")
	}
}
