/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "testing"

func TestPath_Cubic_Bounds(t *testing.T) {
	var p Path
	p.MoveTo(0, 0)
	p.CubicTo(10, 10, 20, 10, 30, 0)
	p.CubicTo(40, -10, 50, 10, 60, 0)
	p.Close()

	// Tight bounds: the first cubic peaks at y=7.5, the second dips to about -2.887.
	b := p.Bounds()
	if !almostEq(b.X, 0, 1e-9) || !almostEq(b.W, 60, 1e-9) {
		t.Fatalf("unexpected x extent: %+v", b)
	}
	if !almostEq(b.Y, -2.8868, 1e-3) || !almostEq(b.Y+b.H, 7.5, 1e-9) {
		t.Fatalf("unexpected y extent: %+v", b)
	}
}
