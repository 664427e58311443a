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
	// bendPenalty is the length a bend is worth when ranking candidate routes.
	bendPenalty = 20.0
	// kappa places cubic control points so a quarter turn approximates a circle.
	kappa = 0.5522847498
	eps   = 1e-9
)

// Orthogonal draws axis-aligned segments joined by rounded corners. Both ends
// leave their ports along the side normal for ExtensionOffset before turning.
// When node bounds are known, routes that would cut through a node are
// replaced by detours keeping BackEdgeGap clear of it.
type Orthogonal struct{}

func (Orthogonal) Kind() Kind { return KindOrthogonal }

func (Orthogonal) Route(ctx Context) (vector.Pt, []vector.Segment) {
	return ctx.Start, roundCorners(orthogonalWaypoints(ctx), ctx.CornerRadius)
}

// orthogonalWaypoints returns the corner points of the route from Start to End.
func orthogonalWaypoints(ctx Context) []vector.Pt {
	ext := math.Max(ctx.ExtensionOffset, 0)
	gap := math.Max(ctx.BackEdgeGap, 0)
	// Facing ports closer than two stubs meet halfway instead of overshooting.
	if ctx.TargetSide == ctx.SourceSide.Opposite() {
		if d := ctx.End.Sub(ctx.Start).Dot(ctx.SourceSide.Normal()); d > 0 {
			ext = math.Min(ext, d/2)
		}
	}
	a := ctx.Start.Add(ctx.SourceSide.Normal().Scale(ext))
	b := ctx.End.Add(ctx.TargetSide.Normal().Scale(ext))

	var obstacles []vector.Rect
	if ctx.SourceBounds != nil {
		obstacles = append(obstacles, *ctx.SourceBounds)
	}
	if ctx.TargetBounds != nil {
		obstacles = append(obstacles, *ctx.TargetBounds)
	}
	p := planner{
		ns:        ctx.SourceSide.Normal(),
		nt:        ctx.TargetSide.Normal(),
		obstacles: obstacles,
		// Stubs end ext away from their node, so a detour cannot ask for
		// more clearance than that without rejecting every route.
		clearance: math.Min(gap, ext),
	}

	var best []vector.Pt
	bestCost, bestBad := math.Inf(1), math.MaxInt
	for _, mid := range candidates(a, b, obstacles, gap, ext) {
		full := simplify(append(append([]vector.Pt{ctx.Start}, mid...), ctx.End))
		bad := p.violations(mid)
		cost := polylineCost(full)
		if bad < bestBad || (bad == bestBad && cost < bestCost) {
			best, bestCost, bestBad = full, cost, bad
		}
	}
	return best
}

// candidates lists orthogonal polylines from a to b. Order matters: on equal
// cost the earlier candidate wins.
func candidates(a, b vector.Pt, obstacles []vector.Rect, gap, ext float64) [][]vector.Pt {
	var out [][]vector.Pt
	if a.X == b.X || a.Y == b.Y {
		out = append(out, []vector.Pt{a, b})
	}
	mx, my := (a.X+b.X)/2, (a.Y+b.Y)/2
	out = append(out,
		[]vector.Pt{a, {X: mx, Y: a.Y}, {X: mx, Y: b.Y}, b},
		[]vector.Pt{a, {X: a.X, Y: my}, {X: b.X, Y: my}, b},
		[]vector.Pt{a, {X: b.X, Y: a.Y}, b},
		[]vector.Pt{a, {X: a.X, Y: b.Y}, b},
	)

	var xs, ys []float64
	for _, o := range obstacles {
		ys = append(ys, o.Y-gap, o.Y+o.H+gap)
		xs = append(xs, o.X-gap, o.X+o.W+gap)
	}
	if len(obstacles) == 0 {
		// Without bounds the only known extent is the stubs themselves.
		ys = append(ys, math.Min(a.Y, b.Y)-ext, math.Max(a.Y, b.Y)+ext)
		xs = append(xs, math.Min(a.X, b.X)-ext, math.Max(a.X, b.X)+ext)
	}
	for _, y := range ys {
		out = append(out, []vector.Pt{a, {X: a.X, Y: y}, {X: b.X, Y: y}, b})
	}
	for _, x := range xs {
		out = append(out, []vector.Pt{a, {X: x, Y: a.Y}, {X: x, Y: b.Y}, b})
	}
	for _, y := range ys {
		for _, x := range xs {
			out = append(out,
				[]vector.Pt{a, {X: a.X, Y: y}, {X: x, Y: y}, {X: x, Y: b.Y}, b},
				[]vector.Pt{a, {X: x, Y: a.Y}, {X: x, Y: y}, {X: b.X, Y: y}, b},
			)
		}
	}
	return out
}

type planner struct {
	ns, nt    vector.Pt
	obstacles []vector.Rect
	clearance float64
}

// violations counts the rule breaks of the middle part of a route: turning
// back into the source, leaving the target outward, and each segment that
// enters an obstacle's clearance zone.
func (p planner) violations(mid []vector.Pt) int {
	bad := 0
	if d, ok := firstDir(mid); ok && d.Dot(p.ns) < -eps {
		bad++
	}
	if d, ok := lastDir(mid); ok && d.Dot(p.nt) > eps {
		bad++
	}
	// Shrink by a hair so running exactly on the clearance line is allowed.
	inflate := p.clearance - 1e-6
	for i := 1; i < len(mid); i++ {
		if mid[i-1].Dist(mid[i]) < eps {
			continue
		}
		seg := vector.RectFromPoints(mid[i-1], mid[i])
		for _, o := range p.obstacles {
			if seg.OverlapsInterior(o.Expand(inflate)) {
				bad++
			}
		}
	}
	return bad
}

func firstDir(pts []vector.Pt) (vector.Pt, bool) {
	for i := 1; i < len(pts); i++ {
		if d := pts[i].Sub(pts[i-1]); math.Abs(d.X)+math.Abs(d.Y) > eps {
			return unit(d), true
		}
	}
	return vector.Pt{}, false
}

func lastDir(pts []vector.Pt) (vector.Pt, bool) {
	for i := len(pts) - 1; i > 0; i-- {
		if d := pts[i].Sub(pts[i-1]); math.Abs(d.X)+math.Abs(d.Y) > eps {
			return unit(d), true
		}
	}
	return vector.Pt{}, false
}

func unit(d vector.Pt) vector.Pt {
	l := math.Hypot(d.X, d.Y)
	if l < eps {
		return vector.Pt{}
	}
	return d.Scale(1 / l)
}

// simplify drops repeated points and points in the middle of a straight run.
// U-turns are kept so they stay visible as corners.
func simplify(pts []vector.Pt) []vector.Pt {
	out := make([]vector.Pt, 0, len(pts))
	for _, q := range pts {
		if n := len(out); n > 0 && out[n-1].Dist(q) < eps {
			continue
		}
		if n := len(out); n >= 2 {
			d1 := unit(out[n-1].Sub(out[n-2]))
			d2 := unit(q.Sub(out[n-1]))
			if d1.Dot(d2) > 1-eps {
				out[n-1] = q
				continue
			}
		}
		out = append(out, q)
	}
	if len(out) == 0 && len(pts) > 0 {
		out = append(out, pts[0])
	}
	return out
}

func polylineCost(pts []vector.Pt) float64 {
	length := 0.0
	for i := 1; i < len(pts); i++ {
		length += math.Abs(pts[i].X-pts[i-1].X) + math.Abs(pts[i].Y-pts[i-1].Y)
	}
	bends := len(pts) - 2
	if bends < 0 {
		bends = 0
	}
	return length + bendPenalty*float64(bends)
}

// roundCorners converts a polyline into segments, replacing each right-angle
// corner with a quarter-circle cubic. The radius shrinks to half of the
// shorter adjacent leg so neighbouring arcs never overlap.
func roundCorners(pts []vector.Pt, radius float64) []vector.Segment {
	if len(pts) == 0 {
		return []vector.Segment{vector.Line(vector.Pt{}, vector.Pt{})}
	}
	var segs []vector.Segment
	cur := pts[0]
	for i := 1; i < len(pts)-1; i++ {
		prev, corner, next := pts[i-1], pts[i], pts[i+1]
		inLen, outLen := prev.Dist(corner), corner.Dist(next)
		dIn, dOut := unit(corner.Sub(prev)), unit(next.Sub(corner))
		r := math.Min(radius, math.Min(inLen, outLen)/2)
		if r <= eps || math.Abs(dIn.Dot(dOut)) > 0.5 {
			segs = appendLine(segs, cur, corner)
			cur = corner
			continue
		}
		p1 := corner.Sub(dIn.Scale(r))
		p2 := corner.Add(dOut.Scale(r))
		segs = appendLine(segs, cur, p1)
		segs = append(segs, vector.Curve(p1, p1.Lerp(corner, kappa), p2.Lerp(corner, kappa), p2))
		cur = p2
	}
	segs = appendLine(segs, cur, pts[len(pts)-1])
	if len(segs) == 0 {
		segs = append(segs, vector.Line(pts[0], pts[0]))
	}
	return segs
}

func appendLine(segs []vector.Segment, from, to vector.Pt) []vector.Segment {
	if from.Dist(to) < eps {
		return segs
	}
	return append(segs, vector.Line(from, to))
}
