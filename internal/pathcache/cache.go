/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package pathcache keeps the routed geometry of every connection between
// frames. An entry stays valid while every input that shaped it is unchanged;
// any difference in a tracked input replaces the entry on the next request.
package pathcache

import (
	"log/slog"
	"sync"

	"gonodeflow/internal/graph"
	applog "gonodeflow/internal/log"
	"gonodeflow/internal/routing"
	"gonodeflow/internal/vector"
)

// tracked is the complete set of inputs a cached path depends on. Adding a
// visual property that can change during a connection's life means adding it
// here, or entries go stale while still looking valid.
type tracked struct {
	sourcePos, targetPos               vector.Pt
	sourceSize, targetSize             vector.Size
	startGap, endGap                   float64
	sourcePortOffset, targetPortOffset vector.Pt
	sourceSide, targetSide             vector.Side
	sourcePortSize, targetPortSize     vector.Size
	sourceAnchor, targetAnchor         vector.Pt
	styleHash                          uint64
}

// Marker locates one arrowhead of a connection.
type Marker struct {
	Pos  vector.Pt
	Side vector.Side
	Size vector.Size
}

// Path returns the arrowhead outline, empty for an invisible marker.
func (m Marker) Path() vector.Path { return vector.ArrowheadPath(m.Pos, m.Side, m.Size) }

// CachedPath is an immutable snapshot of one connection's geometry. Draw and
// hit-test data always come from the same segment computation.
//
// The cache hands out its stored snapshot, not a copy. Callers must treat
// every field, slices included, as read-only. A changed input makes the cache
// build a new snapshot and leaves the old one untouched, so a held pointer
// stays consistent but stale.
type CachedPath struct {
	DrawPath       vector.Path
	HitTestPath    *vector.Region
	SegmentBounds  []vector.Rect
	Start          vector.Pt
	Segments       []vector.Segment
	StartMarker    Marker
	EndMarker      Marker
	StyleHash      uint64
	HasHitTestData bool
	Tolerance      float64

	key tracked
}

// Cache owns one entry per connection id. It is safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	theme   Theme
	shape   graph.ShapeFunc
	entries map[string]*CachedPath
	log     *slog.Logger

	hits, misses, promotions uint64
}

// Option configures a Cache.
type Option func(*Cache)

// WithShapeFunc makes port lookups shape-aware.
func WithShapeFunc(f graph.ShapeFunc) Option { return func(c *Cache) { c.shape = f } }

// WithLogger replaces the component logger.
func WithLogger(l *slog.Logger) Option { return func(c *Cache) { c.log = l } }

// New creates an empty cache using theme for every unset override.
func New(theme Theme, opts ...Option) *Cache {
	c := &Cache{
		theme:   theme,
		entries: make(map[string]*CachedPath),
	}
	for _, o := range opts {
		o(c)
	}
	if c.log == nil {
		c.log = applog.WithComponent("pathcache")
	}
	return c
}

// Theme returns the defaults in use.
func (c *Cache) Theme() Theme {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.theme
}

// SetTheme swaps the defaults and drops every entry.
func (c *Cache) SetTheme(t Theme) {
	c.mu.Lock()
	c.theme = t
	c.mu.Unlock()
	c.InvalidateAll()
}

// DrawPath returns the drawable path of conn, computing a draw-only entry when
// nothing valid is cached. It reports false when the connection cannot be
// drawn right now: a node or port is missing or something is hidden.
// The returned path belongs to the cache and must not be modified.
func (c *Cache) DrawPath(conn *graph.Connection, src, tgt *graph.Node, style routing.Style) (*vector.Path, bool) {
	e, ok := c.DrawEntry(conn, src, tgt, style)
	if !ok {
		return nil, false
	}
	return &e.DrawPath, true
}

// DrawEntry is DrawPath returning the whole entry, validated and read under
// one lock. An entry that already carries hit-test data is returned as is.
func (c *Cache) DrawEntry(conn *graph.Connection, src, tgt *graph.Node, style routing.Style) (*CachedPath, bool) {
	return c.get(conn, src, tgt, style, false)
}

// FullPath returns an entry that carries hit-test data. A draw-only entry is
// recomputed as a whole rather than extended.
func (c *Cache) FullPath(conn *graph.Connection, src, tgt *graph.Node, style routing.Style) (*CachedPath, bool) {
	return c.get(conn, src, tgt, style, true)
}

// Entry returns the stored entry of a connection without validating it.
// Like every entry the cache returns, it is shared and read-only.
func (c *Cache) Entry(connID string) (*CachedPath, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[connID]
	return e, ok
}

// HasConnection reports whether an entry exists for connID.
func (c *Cache) HasConnection(connID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[connID]
	return ok
}

// InvalidateAll drops every entry.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	n := len(c.entries)
	c.entries = make(map[string]*CachedPath)
	c.mu.Unlock()
	c.log.Debug("invalidate all", slog.Int("entries", n))
}

// Remove drops the entry of one connection.
func (c *Cache) Remove(connID string) {
	c.mu.Lock()
	_, ok := c.entries[connID]
	delete(c.entries, connID)
	c.mu.Unlock()
	if ok {
		c.log.Debug("remove", slog.String("conn", connID))
	}
}

// Prune drops entries whose id is not in live and returns how many went.
func (c *Cache) Prune(live []string) int {
	keep := make(map[string]struct{}, len(live))
	for _, id := range live {
		keep[id] = struct{}{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for id := range c.entries {
		if _, ok := keep[id]; !ok {
			delete(c.entries, id)
			n++
		}
	}
	return n
}

// resolved is everything needed to route a connection, gathered from the
// current node and port state.
type resolved struct {
	key                    tracked
	srcPort, tgtPort       graph.Port
	srcBounds, tgtBounds   vector.Rect
	startMarker, endMarker vector.Size
	params                 routing.Params
	kind                   routing.Kind
}

func (c *Cache) resolve(th Theme, conn *graph.Connection, src, tgt *graph.Node, style routing.Style) (resolved, bool) {
	if conn == nil || src == nil || tgt == nil || conn.Hidden || src.Hidden || tgt.Hidden {
		return resolved{}, false
	}
	sp, ok := src.FindPort(conn.SourcePortID)
	if !ok {
		return resolved{}, false
	}
	tp, ok := tgt.FindPort(conn.TargetPortID)
	if !ok {
		return resolved{}, false
	}
	sa, _ := src.ConnectionPoint(sp.ID, th.PortSize, c.shapeOf(src))
	ta, _ := tgt.ConnectionPoint(tp.ID, th.PortSize, c.shapeOf(tgt))

	r := resolved{
		srcPort:     sp,
		tgtPort:     tp,
		srcBounds:   src.Bounds(),
		tgtBounds:   tgt.Bounds(),
		startMarker: th.StartMarker,
		endMarker:   th.EndMarker,
		params:      style.Resolve(th.Routing),
		kind:        style.Kind,
	}
	if conn.StartMarker != nil {
		r.startMarker = *conn.StartMarker
	}
	if conn.EndMarker != nil {
		r.endMarker = *conn.EndMarker
	}
	r.key = tracked{
		sourcePos:        src.Position,
		targetPos:        tgt.Position,
		sourceSize:       src.Size,
		targetSize:       tgt.Size,
		startGap:         th.StartGap,
		endGap:           th.EndGap,
		sourcePortOffset: sp.Offset,
		targetPortOffset: tp.Offset,
		sourceSide:       sp.Side,
		targetSide:       tp.Side,
		sourcePortSize:   portSize(sp, th.PortSize),
		targetPortSize:   portSize(tp, th.PortSize),
		sourceAnchor:     sa,
		targetAnchor:     ta,
		styleHash:        routing.Identity(r.kind, r.params, r.startMarker, r.endMarker),
	}
	if conn.StartGap != nil {
		r.key.startGap = *conn.StartGap
	}
	if conn.EndGap != nil {
		r.key.endGap = *conn.EndGap
	}
	return r, true
}

func (c *Cache) shapeOf(n *graph.Node) graph.NodeShape {
	if c.shape == nil {
		return nil
	}
	return c.shape(n)
}

func portSize(p graph.Port, def vector.Size) vector.Size {
	if p.Size != nil {
		return *p.Size
	}
	return def
}

func (c *Cache) get(conn *graph.Connection, src, tgt *graph.Node, style routing.Style, full bool) (*CachedPath, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.resolve(c.theme, conn, src, tgt, style)
	if !ok {
		return nil, false
	}
	old := c.entries[conn.ID]
	if old != nil && old.key == r.key && (!full || old.HasHitTestData) {
		c.hits++
		return old, true
	}

	reason := "absent"
	switch {
	case old != nil && old.key == r.key:
		reason = "promote"
		c.promotions++
	case old != nil:
		reason = "stale"
		c.misses++
	default:
		c.misses++
	}
	e := build(r, c.theme.HitTolerance, full)
	c.entries[conn.ID] = e
	c.log.Debug("recompute",
		slog.String("conn", conn.ID),
		slog.String("reason", reason),
		slog.String("style", r.kind.String()),
		slog.Bool("hit_data", full),
	)
	return e, true
}

// build routes a resolved connection and derives every geometry from the one
// segment list.
func build(r resolved, tolerance float64, full bool) *CachedPath {
	startEP, startLine := vector.CalculateEndpoint(r.key.sourceAnchor, r.srcPort.Side, r.startMarker, r.key.startGap)
	endEP, endLine := vector.CalculateEndpoint(r.key.targetAnchor, r.tgtPort.Side, r.endMarker, r.key.endGap)

	ctx := routing.Context{
		Start:           startLine,
		End:             endLine,
		SourceSide:      r.srcPort.Side,
		TargetSide:      r.tgtPort.Side,
		Curvature:       r.params.Curvature,
		CornerRadius:    r.params.CornerRadius,
		ExtensionOffset: r.params.ExtensionOffset,
		BackEdgeGap:     r.params.BackEdgeGap,
		SourceBounds:    &r.srcBounds,
		TargetBounds:    &r.tgtBounds,
	}
	start, segs := routing.For(r.kind).Route(ctx)

	e := &CachedPath{
		DrawPath:    vector.BuildDrawPath(start, segs),
		Start:       start,
		Segments:    segs,
		StartMarker: Marker{Pos: startEP, Side: r.srcPort.Side, Size: r.startMarker},
		EndMarker:   Marker{Pos: endEP, Side: r.tgtPort.Side, Size: r.endMarker},
		StyleHash:   r.key.styleHash,
		key:         r.key,
	}
	if full {
		e.SegmentBounds = vector.BuildHitTestRects(start, segs, tolerance)
		region := hitRegion(segs, e.SegmentBounds, tolerance)
		e.HitTestPath = &region
		e.HasHitTestData = true
		e.Tolerance = tolerance
	}
	return e
}

func hitRegion(segs []vector.Segment, rects []vector.Rect, tolerance float64) vector.Region {
	return vector.BuildHitTestPath(rects).WithCenterline(segs, tolerance)
}
