/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package pathcache

import (
	"math"

	"gonodeflow/internal/graph"
	"gonodeflow/internal/routing"
	"gonodeflow/internal/vector"
)

// toleranceEpsilon is how far a requested tolerance may drift from the cached
// one before the region is rebuilt.
const toleranceEpsilon = 1e-3

// HitTest reports whether p lies within tolerance of the entry's path. A
// non-positive tolerance uses the one the entry was built with; a materially
// different one rebuilds the region for this query only.
func HitTest(e *CachedPath, p vector.Pt, tolerance float64) bool {
	if e == nil || !e.HasHitTestData || e.HitTestPath == nil {
		return false
	}
	if tolerance <= 0 || math.Abs(tolerance-e.Tolerance) <= toleranceEpsilon {
		return e.HitTestPath.Hit(p)
	}
	rects := vector.BuildHitTestRects(e.Start, e.Segments, tolerance)
	return hitRegion(e.Segments, rects, tolerance).Hit(p)
}

// IntersectsBounds reports whether any per-segment hit rect overlaps q.
func IntersectsBounds(segmentRects []vector.Rect, q vector.Rect) bool {
	return vector.IntersectsBounds(segmentRects, q)
}

// HitTest resolves the full entry of conn and tests p against it.
func (c *Cache) HitTest(conn *graph.Connection, src, tgt *graph.Node, style routing.Style, p vector.Pt, tolerance float64) bool {
	e, ok := c.FullPath(conn, src, tgt, style)
	if !ok {
		return false
	}
	return HitTest(e, p, tolerance)
}

// IntersectsBounds resolves the full entry of conn and checks its segment
// rects against q.
func (c *Cache) IntersectsBounds(conn *graph.Connection, src, tgt *graph.Node, style routing.Style, q vector.Rect) bool {
	e, ok := c.FullPath(conn, src, tgt, style)
	if !ok {
		return false
	}
	return IntersectsBounds(e.SegmentBounds, q)
}

// HitTestAll returns the top-most connection of g under p. Connections later
// in g are painted above earlier ones.
func (c *Cache) HitTestAll(g *graph.Graph, p vector.Pt, tolerance float64) (string, bool) {
	def := c.Theme().DefaultStyle
	for i := len(g.Connections) - 1; i >= 0; i-- {
		conn := g.Connections[i]
		src, tgt := g.Endpoints(conn)
		if c.HitTest(conn, src, tgt, conn.RoutingStyle(def), p, tolerance) {
			return conn.ID, true
		}
	}
	return "", false
}

// SelectInRect returns the ids of all connections of g touching q, in paint order.
func (c *Cache) SelectInRect(g *graph.Graph, q vector.Rect) []string {
	def := c.Theme().DefaultStyle
	var ids []string
	for _, conn := range g.Connections {
		src, tgt := g.Endpoints(conn)
		if c.IntersectsBounds(conn, src, tgt, conn.RoutingStyle(def), q) {
			ids = append(ids, conn.ID)
		}
	}
	return ids
}
