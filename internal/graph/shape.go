/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package graph

import (
	"math"

	"gonodeflow/internal/vector"
)

// NodeShape moves a nominal port point onto the outline of a node.
type NodeShape interface {
	Project(bounds vector.Rect, p vector.Pt, side vector.Side) vector.Pt
}

// ShapeFunc picks the shape of a node. Returning nil means a plain rectangle.
type ShapeFunc func(n *Node) NodeShape

// Rectangle leaves port points where the port rectangle puts them.
type Rectangle struct{}

func (Rectangle) Project(_ vector.Rect, p vector.Pt, _ vector.Side) vector.Pt { return p }

// Ellipse is the ellipse inscribed in the node bounds. Points are moved along
// the ray from the center until they meet the outline.
type Ellipse struct{}

func (Ellipse) Project(b vector.Rect, p vector.Pt, side vector.Side) vector.Pt {
	rx, ry := b.W/2, b.H/2
	if rx <= 0 || ry <= 0 {
		return p
	}
	c := b.Center()
	v := p.Sub(c)
	if v.X == 0 && v.Y == 0 {
		v = side.Normal()
	}
	mag := math.Hypot(v.X, v.Y)
	ux, uy := v.X/mag, v.Y/mag
	// d = 1 / sqrt(ux^2/rx^2 + uy^2/ry^2)
	d := 1 / math.Sqrt(ux*ux/(rx*rx)+uy*uy/(ry*ry))
	return vector.Pt{X: vector.FloatRound(c.X+ux*d, 6), Y: vector.FloatRound(c.Y+uy*d, 6)}
}
