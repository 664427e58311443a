/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "testing"

func TestCalculateEndpoint_ZeroMarkerCollapses(t *testing.T) {
	port := Pt{100, 30}
	for _, side := range []Side{SideLeft, SideRight, SideTop, SideBottom} {
		for _, gap := range []float64{0, 2.5, 10} {
			ep, lp := CalculateEndpoint(port, side, Size{}, gap)
			if ep != lp {
				t.Fatalf("%s gap=%v: endpoint %+v != line %+v", side, gap, ep, lp)
			}
			if !almostEq(lp.Dist(port), gap, 1e-12) {
				t.Fatalf("%s gap=%v: line pos %+v not gap away from port", side, gap, lp)
			}
		}
	}
}

func TestCalculateEndpoint_MarkerBetweenLineAndPort(t *testing.T) {
	port := Pt{100, 30}
	ep, lp := CalculateEndpoint(port, SideRight, Size{W: 10, H: 8}, 4)
	if lp != (Pt{114, 30}) {
		t.Fatalf("line pos = %+v", lp)
	}
	if ep != (Pt{109, 30}) {
		t.Fatalf("endpoint = %+v", ep)
	}
	// vertical sides use marker height
	ep, lp = CalculateEndpoint(port, SideTop, Size{W: 10, H: 6}, 0)
	if lp != (Pt{100, 24}) || ep != (Pt{100, 27}) {
		t.Fatalf("top side: endpoint %+v line %+v", ep, lp)
	}
}

func TestArrowheadPath(t *testing.T) {
	marker := Size{W: 10, H: 8}
	ep, lp := CalculateEndpoint(Pt{0, 0}, SideLeft, marker, 2)
	p := ArrowheadPath(ep, SideLeft, marker)
	if len(p.Cmds) != 4 || p.Cmds[3].Op != Close {
		t.Fatalf("expected closed triangle, got %+v", p.Cmds)
	}
	tip := Pt{p.Cmds[1].Data[0], p.Cmds[1].Data[1]}
	if tip != (Pt{-2, 0}) {
		t.Fatalf("tip should sit at the gap, got %+v", tip)
	}
	b := p.Bounds()
	if !almostEq(b.X, lp.X, 1e-9) || !almostEq(b.H, 8, 1e-9) {
		t.Fatalf("unexpected arrowhead bounds %+v (line pos %+v)", b, lp)
	}
	if empty := ArrowheadPath(ep, SideLeft, Size{}); !empty.Empty() {
		t.Fatalf("zero marker should produce no path")
	}
}
