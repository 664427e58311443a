/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export renders the cached connection geometry of a graph for
// inspection. Every exporter draws exactly what the path cache holds, so a
// picture that looks wrong points at the cache or the router.
package export

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"

	"gonodeflow/internal/graph"
	"gonodeflow/internal/pathcache"
	"gonodeflow/internal/vector"
)

var (
	// ErrUnsupportedFormat is returned for an unknown output format.
	ErrUnsupportedFormat = zerr.New("unsupported export format")
	// ErrEmptyScene is returned when nothing in the scene is drawable.
	ErrEmptyScene = zerr.New("nothing to export")
)

// Format names an output encoding.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

// ParseFormat normalizes a user supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatSVG, FormatPNG, FormatPDF:
		return f, nil
	}
	return "", zerr.With(zerr.Wrap(ErrUnsupportedFormat, "parse format"), "format", s)
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Scene is a graph together with the cache that owns its geometry. A nil
// Cache gets a fresh one with the default theme.
type Scene struct {
	Graph *graph.Graph
	Cache *pathcache.Cache
}

// Options controls colors and extras shared by all exporters. Zero values
// fall back to defaults.
type Options struct {
	// Margin is added around the drawn content, in model units.
	Margin float64
	// Scale is the number of pixels per model unit for raster output.
	Scale float64
	// HitRects draws the per-segment hit-test rectangles.
	HitRects bool
	// Labels writes node ids.
	Labels bool

	Background vector.Color
	NodeFill   vector.Color
	NodeStroke vector.Stroke
	ConnStroke vector.Stroke
	HitColor   vector.Color
}

func (o Options) withDefaults() Options {
	if o.Margin <= 0 {
		o.Margin = 20
	}
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if o.Background.IsZero() {
		o.Background = vector.White
	}
	if o.NodeFill.IsZero() {
		o.NodeFill = vector.Color{R: 0xf4, G: 0xf4, B: 0xf4, A: 255}
	}
	if o.NodeStroke.Width == 0 {
		o.NodeStroke = vector.Stroke{Color: vector.Black, Width: 1}
	}
	if o.ConnStroke.Width == 0 {
		o.ConnStroke = vector.Stroke{
			Color: vector.Color{R: 0x33, G: 0x33, B: 0x33, A: 255},
			Width: 1.5,
			Cap:   vector.CapRound,
			Join:  vector.JoinRound,
		}
	}
	if o.HitColor.IsZero() {
		o.HitColor = vector.Color{R: 255, A: 255}
	}
	return o
}

// Write encodes the scene in format f.
func Write(w io.Writer, f Format, s Scene, opt Options) error {
	switch f {
	case FormatSVG:
		return WriteSVG(w, s, opt)
	case FormatPNG:
		return WritePNG(w, s, opt)
	case FormatPDF:
		return WritePDF(w, s, opt)
	}
	return zerr.With(zerr.Wrap(ErrUnsupportedFormat, "export"), "format", string(f))
}

// WriteFile writes the scene to path, creating parent directories. An empty
// format is taken from the file extension.
func WriteFile(path string, f Format, s Scene, opt Options) error {
	if f == "" {
		var err error
		if f, err = FormatFromPath(path); err != nil {
			return err
		}
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return zerr.With(zerr.Wrap(err, "ensure out dir"), "path", dir)
		}
	}
	out, err := os.Create(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "create export file"), "path", path)
	}
	if err := Write(out, f, s, opt); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "close export file"), "path", path)
	}
	return nil
}

// drawnConn is the geometry of one visible connection.
type drawnConn struct {
	id      string
	path    vector.Path
	markers []vector.Path
	rects   []vector.Rect
}

// drawnNode is one visible node with its port squares.
type drawnNode struct {
	id     string
	bounds vector.Rect
	ports  []vector.Rect
}

// frame is a scene resolved against the cache, ready to be painted.
type frame struct {
	bounds vector.Rect
	nodes  []drawnNode
	conns  []drawnConn
}

// layout pulls every drawable piece out of the cache and measures the scene.
func layout(s Scene, opt Options) (frame, error) {
	var f frame
	if s.Graph == nil {
		return f, ErrEmptyScene
	}
	c := s.Cache
	if c == nil {
		c = pathcache.New(pathcache.DefaultTheme())
	}
	th := c.Theme()

	empty := true
	grow := func(r vector.Rect) {
		if empty {
			f.bounds = r
			empty = false
			return
		}
		f.bounds = f.bounds.Union(r)
	}

	for _, n := range s.Graph.Nodes {
		if n == nil || n.Hidden {
			continue
		}
		dn := drawnNode{id: n.ID, bounds: n.Bounds()}
		grow(dn.bounds)
		for _, p := range n.Ports {
			sz := th.PortSize
			if p.Size != nil {
				sz = *p.Size
			}
			pr := vector.Rect{X: n.Position.X + p.Offset.X, Y: n.Position.Y + p.Offset.Y, W: sz.W, H: sz.H}
			dn.ports = append(dn.ports, pr)
			grow(pr)
		}
		f.nodes = append(f.nodes, dn)
	}

	for _, conn := range s.Graph.Connections {
		if conn == nil {
			continue
		}
		src, tgt := s.Graph.Endpoints(conn)
		style := conn.RoutingStyle(th.DefaultStyle)
		var e *pathcache.CachedPath
		var ok bool
		if opt.HitRects {
			e, ok = c.FullPath(conn, src, tgt, style)
		} else {
			e, ok = c.DrawEntry(conn, src, tgt, style)
		}
		if !ok {
			continue
		}
		dc := drawnConn{id: conn.ID, path: e.DrawPath}
		grow(e.DrawPath.Bounds())
		for _, m := range []pathcache.Marker{e.StartMarker, e.EndMarker} {
			if mp := m.Path(); !mp.Empty() {
				dc.markers = append(dc.markers, mp)
				grow(mp.Bounds())
			}
		}
		if opt.HitRects {
			dc.rects = e.SegmentBounds
			for _, r := range dc.rects {
				grow(r)
			}
		}
		f.conns = append(f.conns, dc)
	}

	if empty {
		return f, ErrEmptyScene
	}
	f.bounds = f.bounds.Expand(opt.Margin)
	return f, nil
}

// pixels is the raster size of the frame at scale.
func (f frame) pixels(scale float64) (int, int) {
	w := int(math.Ceil(f.bounds.W * scale))
	h := int(math.Ceil(f.bounds.H * scale))
	return max(w, 1), max(h, 1)
}
