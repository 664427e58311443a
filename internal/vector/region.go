/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Region is the hit-test area of a connection: the union of per-segment
// rectangles expanded by the hit tolerance. When centerline data is attached,
// a point must also lie within the tolerance of the owning segment.
type Region struct {
	Rects []Rect
	bbox  Rect

	segs []Segment
	tol  float64
}

// Bounds returns the rectangle enclosing every member rect.
func (r Region) Bounds() Rect { return r.bbox }

// Empty reports whether the region has no area to hit.
func (r Region) Empty() bool { return len(r.Rects) == 0 }

// Precise reports whether the region narrows rect hits with segment distance.
func (r Region) Precise() bool { return len(r.segs) == len(r.Rects) && len(r.segs) > 0 }

// Tolerance returns the tolerance the centerline test uses, zero for coarse regions.
func (r Region) Tolerance() float64 { return r.tol }

// WithCenterline attaches the segments the rects were built from. segs must
// correspond index-for-index with r.Rects; otherwise r is returned unchanged.
func (r Region) WithCenterline(segs []Segment, tolerance float64) Region {
	if len(segs) != len(r.Rects) {
		return r
	}
	r.segs = append([]Segment(nil), segs...)
	r.tol = tolerance
	return r
}

// Hit reports whether p lies inside the region.
func (r Region) Hit(p Pt) bool {
	if r.Empty() || !r.bbox.Contains(p) {
		return false
	}
	precise := r.Precise()
	for i, rc := range r.Rects {
		if !rc.Contains(p) {
			continue
		}
		if !precise || r.segs[i].DistanceTo(p) <= r.tol {
			return true
		}
	}
	return false
}
