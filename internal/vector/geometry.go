/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Basic 2D geometry for connection routing and hit-testing.
// Values are float64 so routed geometry stays bit-identical across repeated runs.

import (
	"fmt"
	"math"
)

// Pt is a 2D point.
type Pt struct{ X, Y float64 }

func (p Pt) Add(q Pt) Pt            { return Pt{p.X + q.X, p.Y + q.Y} }
func (p Pt) Sub(q Pt) Pt            { return Pt{p.X - q.X, p.Y - q.Y} }
func (p Pt) Scale(s float64) Pt     { return Pt{p.X * s, p.Y * s} }
func (p Pt) Dot(q Pt) float64       { return p.X*q.X + p.Y*q.Y }
func (p Pt) Dist(q Pt) float64      { return math.Hypot(q.X-p.X, q.Y-p.Y) }
func (p Pt) Lerp(q Pt, t float64) Pt { return Pt{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t} }

// Size is a width/height pair.
type Size struct{ W, H float64 }

// IsZero reports whether both extents are zero or negative.
func (s Size) IsZero() bool { return s.W <= 0 && s.H <= 0 }

// Rect is an axis-aligned rectangle defined by min corner and size.
type Rect struct {
	X, Y float64
	W, H float64
}

func R(x, y, w, h float64) Rect { return Rect{X: x, Y: y, W: w, H: h} }

// RectFromPoints returns the smallest rect containing all pts.
func RectFromPoints(pts ...Pt) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

func (r Rect) Min() Pt    { return Pt{r.X, r.Y} }
func (r Rect) Max() Pt    { return Pt{r.X + r.W, r.Y + r.H} }
func (r Rect) Center() Pt { return Pt{r.X + r.W/2, r.Y + r.H/2} }

func (r Rect) Contains(p Pt) bool {
	return p.X >= r.X && p.Y >= r.Y && p.X <= r.X+r.W && p.Y <= r.Y+r.H
}

// Inset returns a rectangle inset by dx,dy on all sides (negative grows).
func (r Rect) Inset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W - 2*dx, H: r.H - 2*dy}
}

// Expand grows the rectangle by d on every side.
func (r Rect) Expand(d float64) Rect { return r.Inset(-d, -d) }

// Union returns the minimal rect containing both.
func (r Rect) Union(o Rect) Rect {
	minX := math.Min(r.X, o.X)
	minY := math.Min(r.Y, o.Y)
	maxX := math.Max(r.X+r.W, o.X+o.W)
	maxY := math.Max(r.Y+r.H, o.Y+o.H)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Overlaps reports whether r and o share at least one point. Touching edges count.
func (r Rect) Overlaps(o Rect) bool {
	return r.X <= o.X+o.W && o.X <= r.X+r.W && r.Y <= o.Y+o.H && o.Y <= r.Y+r.H
}

// OverlapsInterior reports whether r reaches strictly inside o.
// A zero-width rect lying on an edge of o does not count.
func (r Rect) OverlapsInterior(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Side is the compass side a port protrudes from on its node.
type Side uint8

const (
	SideLeft Side = iota
	SideRight
	SideTop
	SideBottom
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	}
	return "unknown"
}

// ParseSide maps "left", "right", "top", "bottom" to a Side.
func ParseSide(s string) (Side, bool) {
	switch s {
	case "left":
		return SideLeft, true
	case "right":
		return SideRight, true
	case "top":
		return SideTop, true
	case "bottom":
		return SideBottom, true
	}
	return SideRight, false
}

func (s Side) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Side) UnmarshalText(b []byte) error {
	v, ok := ParseSide(string(b))
	if !ok {
		return fmt.Errorf("unknown side %q", b)
	}
	*s = v
	return nil
}

// Normal is the outward unit vector of the side (y grows downwards).
func (s Side) Normal() Pt {
	switch s {
	case SideLeft:
		return Pt{-1, 0}
	case SideTop:
		return Pt{0, -1}
	case SideBottom:
		return Pt{0, 1}
	default:
		return Pt{1, 0}
	}
}

// Horizontal reports whether the side's normal lies on the x axis.
func (s Side) Horizontal() bool { return s == SideLeft || s == SideRight }

// Opposite returns the facing side.
func (s Side) Opposite() Side {
	switch s {
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	case SideTop:
		return SideBottom
	default:
		return SideTop
	}
}

// ClassifySide returns the side whose normal dominates the direction (ux, uy).
func ClassifySide(ux, uy float64) Side {
	ax, ay := math.Abs(ux), math.Abs(uy)
	if ax >= ay {
		if ux >= 0 {
			return SideRight
		}
		return SideLeft
	}
	if uy >= 0 {
		return SideBottom
	}
	return SideTop
}

// Affine2D represents a 2D affine transform as matrix:
// | a c e |
// | b d f |
// | 0 0 1 |
// stored as [a b c d e f].
type Affine2D struct{ A, B, C, D, E, F float64 }

// Mul returns m applied after n.
func (m Affine2D) Mul(n Affine2D) Affine2D {
	return Affine2D{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

func (m Affine2D) Apply(p Pt) Pt {
	return Pt{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

func Translate(tx, ty float64) Affine2D { return Affine2D{A: 1, D: 1, E: tx, F: ty} }
func Scale(sx, sy float64) Affine2D     { return Affine2D{A: sx, D: sy} }

// FloatRound rounds v to n decimal places deterministically.
func FloatRound(v float64, places int) float64 {
	if places < 0 {
		return v
	}
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
