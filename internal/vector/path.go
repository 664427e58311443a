/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import (
	"strconv"
	"strings"
)

// Path commands and shapes.

type PathOp uint8

const (
	MoveTo PathOp = iota
	LineTo
	CubicTo // cubic bezier (cx1, cy1, cx2, cy2, x, y)
	Close
)

type PathCmd struct {
	Op   PathOp
	Data [6]float64 // enough for cubic; unused slots are zero
}

type Path struct{ Cmds []PathCmd }

func (p *Path) MoveTo(x, y float64) {
	p.Cmds = append(p.Cmds, PathCmd{Op: MoveTo, Data: [6]float64{x, y}})
}
func (p *Path) LineTo(x, y float64) {
	p.Cmds = append(p.Cmds, PathCmd{Op: LineTo, Data: [6]float64{x, y}})
}
func (p *Path) CubicTo(cx1, cy1, cx2, cy2, x, y float64) {
	p.Cmds = append(p.Cmds, PathCmd{Op: CubicTo, Data: [6]float64{cx1, cy1, cx2, cy2, x, y}})
}
func (p *Path) Close() { p.Cmds = append(p.Cmds, PathCmd{Op: Close}) }

// Empty reports whether the path has no drawing commands.
func (p *Path) Empty() bool { return p == nil || len(p.Cmds) == 0 }

// Segments converts the path back into segments. MoveTo starts a new run and
// Close adds a closing line.
func (p *Path) Segments() (Pt, []Segment) {
	var start, cur, sub Pt
	var segs []Segment
	for i, c := range p.Cmds {
		switch c.Op {
		case MoveTo:
			cur = Pt{c.Data[0], c.Data[1]}
			sub = cur
			if i == 0 {
				start = cur
			}
		case LineTo:
			to := Pt{c.Data[0], c.Data[1]}
			segs = append(segs, Line(cur, to))
			cur = to
		case CubicTo:
			to := Pt{c.Data[4], c.Data[5]}
			segs = append(segs, Curve(cur, Pt{c.Data[0], c.Data[1]}, Pt{c.Data[2], c.Data[3]}, to))
			cur = to
		case Close:
			if cur != sub {
				segs = append(segs, Line(cur, sub))
			}
			cur = sub
		}
	}
	return start, segs
}

// Bounds returns the tight axis-aligned bounding box of the path. Curves are
// bounded by their extrema, not by their control polygon.
func (p *Path) Bounds() Rect {
	if p.Empty() {
		return Rect{}
	}
	start, segs := p.Segments()
	b := Rect{X: start.X, Y: start.Y}
	for _, s := range segs {
		b = b.Union(s.Bounds())
	}
	return b
}

// SVG returns the path in SVG path-data syntax.
func (p *Path) SVG() string {
	if p.Empty() {
		return ""
	}
	var sb strings.Builder
	for i, c := range p.Cmds {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch c.Op {
		case MoveTo:
			sb.WriteString("M")
			writeNums(&sb, c.Data[:2])
		case LineTo:
			sb.WriteString("L")
			writeNums(&sb, c.Data[:2])
		case CubicTo:
			sb.WriteString("C")
			writeNums(&sb, c.Data[:6])
		case Close:
			sb.WriteString("Z")
		}
	}
	return sb.String()
}

func writeNums(sb *strings.Builder, vs []float64) {
	for i, v := range vs {
		if i > 0 {
			sb.WriteByte(' ')
		}
		v = FloatRound(v, 3)
		if v == 0 {
			v = 0 // drop negative zero
		}
		sb.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
	}
}
