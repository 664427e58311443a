/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "math"

// SegmentKind tags the variant held by a Segment.
type SegmentKind uint8

const (
	SegLine SegmentKind = iota
	SegCurve
)

// Segment is one piece of a routed connection: either a straight line or a
// cubic bezier. For lines C1 and C2 are unused.
type Segment struct {
	Kind     SegmentKind
	From, To Pt
	C1, C2   Pt
}

func Line(from, to Pt) Segment { return Segment{Kind: SegLine, From: from, To: to} }

func Curve(from, c1, c2, to Pt) Segment {
	return Segment{Kind: SegCurve, From: from, C1: c1, C2: c2, To: to}
}

// PointAt evaluates the segment at t in [0,1].
func (s Segment) PointAt(t float64) Pt {
	if s.Kind == SegLine {
		return s.From.Lerp(s.To, t)
	}
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	c := 3 * mt * t * t
	d := t * t * t
	return Pt{
		X: a*s.From.X + b*s.C1.X + c*s.C2.X + d*s.To.X,
		Y: a*s.From.Y + b*s.C1.Y + c*s.C2.Y + d*s.To.Y,
	}
}

// Bounds returns the tight bounding box of the segment.
func (s Segment) Bounds() Rect {
	if s.Kind == SegLine {
		return RectFromPoints(s.From, s.To)
	}
	pts := []Pt{s.From, s.To}
	for _, t := range cubicExtrema(s.From.X, s.C1.X, s.C2.X, s.To.X) {
		pts = append(pts, s.PointAt(t))
	}
	for _, t := range cubicExtrema(s.From.Y, s.C1.Y, s.C2.Y, s.To.Y) {
		pts = append(pts, s.PointAt(t))
	}
	return RectFromPoints(pts...)
}

// cubicExtrema returns the parameters in (0,1) where the derivative of the
// one-dimensional cubic bezier p0..p3 vanishes.
func cubicExtrema(p0, p1, p2, p3 float64) []float64 {
	// B'(t)/3 = a t^2 + b t + c
	a := -p0 + 3*p1 - 3*p2 + p3
	b := 2 * (p0 - 2*p1 + p2)
	c := p1 - p0
	var out []float64
	keep := func(t float64) {
		if t > 0 && t < 1 {
			out = append(out, t)
		}
	}
	const eps = 1e-12
	if math.Abs(a) < eps {
		if math.Abs(b) > eps {
			keep(-c / b)
		}
		return out
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return out
	}
	sq := math.Sqrt(disc)
	keep((-b + sq) / (2 * a))
	keep((-b - sq) / (2 * a))
	return out
}

// curveSteps is the number of chords used when a curve is approximated.
const curveSteps = 32

// Flatten approximates the segment by a polyline including both endpoints.
func (s Segment) Flatten() []Pt {
	if s.Kind == SegLine {
		return []Pt{s.From, s.To}
	}
	pts := make([]Pt, 0, curveSteps+1)
	for i := 0; i <= curveSteps; i++ {
		pts = append(pts, s.PointAt(float64(i)/curveSteps))
	}
	return pts
}

// DistanceTo returns the distance from p to the segment centerline.
// Curves are measured against their flattened polyline.
func (s Segment) DistanceTo(p Pt) float64 {
	pts := s.Flatten()
	best := math.Inf(1)
	for i := 1; i < len(pts); i++ {
		best = math.Min(best, distToLine(p, pts[i-1], pts[i]))
	}
	return best
}

// Length is the arc length of the segment (flattened for curves).
func (s Segment) Length() float64 {
	pts := s.Flatten()
	var l float64
	for i := 1; i < len(pts); i++ {
		l += pts[i-1].Dist(pts[i])
	}
	return l
}

func distToLine(p, a, b Pt) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.Dist(a)
	}
	t := p.Sub(a).Dot(ab) / l2
	t = math.Max(0, math.Min(1, t))
	return p.Dist(a.Add(ab.Scale(t)))
}
