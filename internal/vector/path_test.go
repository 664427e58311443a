/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "testing"

func TestPath_Bounds(t *testing.T) {
	var p Path
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.LineTo(0, 10)
	p.Close()

	b := p.Bounds()
	if b.X != 0 || b.Y != 0 || b.W != 10 || b.H != 10 {
		t.Fatalf("unexpected bounds: %+v", b)
	}
}

func TestPath_SVG(t *testing.T) {
	var p Path
	p.MoveTo(0, 0)
	p.LineTo(10.5, -0.0001)
	p.CubicTo(1, 2, 3, 4, 5, 6)
	p.Close()
	if got, want := p.SVG(), "M0 0 L10.5 0 C1 2 3 4 5 6 Z"; got != want {
		t.Fatalf("SVG() = %q, want %q", got, want)
	}
	var empty Path
	if empty.SVG() != "" || !empty.Empty() {
		t.Fatalf("empty path should render nothing")
	}
}

func TestPath_SegmentsRoundTrip(t *testing.T) {
	segs := []Segment{
		Line(Pt{0, 0}, Pt{10, 0}),
		Curve(Pt{10, 0}, Pt{15, 0}, Pt{20, 5}, Pt{20, 10}),
	}
	p := BuildDrawPath(Pt{0, 0}, segs)
	start, got := p.Segments()
	if start != (Pt{0, 0}) {
		t.Fatalf("unexpected start: %+v", start)
	}
	if len(got) != len(segs) {
		t.Fatalf("expected %d segments, got %d", len(segs), len(got))
	}
	for i := range segs {
		if got[i] != segs[i] {
			t.Fatalf("segment %d mismatch: %+v vs %+v", i, got[i], segs[i])
		}
	}
}
