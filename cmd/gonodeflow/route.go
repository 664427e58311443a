/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"

	"gonodeflow/internal/export"
	"gonodeflow/internal/graph"
	applog "gonodeflow/internal/log"
	"gonodeflow/internal/pathcache"
	"gonodeflow/internal/vector"
)

// formatText is the plain listing written by route when no image format is chosen.
const formatText = "text"

type routeFlags struct {
	scene    sceneFlags
	format   string
	out      string
	hitRects bool
	labels   bool
	scale    float64
}

func (c *cli) newRouteCmd() *cobra.Command {
	var f routeFlags
	cmd := &cobra.Command{
		Use:   "route",
		Short: "Route one connection between two nodes and print or render it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.route(cmd, f)
		},
	}
	f.scene.bind(cmd)
	cmd.Flags().StringVar(&f.format, "format", "", "output format: text|svg|png|pdf (default from --out extension, else text)")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&f.hitRects, "hit-rects", false, "draw hit-test rectangles")
	cmd.Flags().BoolVar(&f.labels, "labels", false, "draw node ids")
	cmd.Flags().Float64Var(&f.scale, "scale", 1, "pixels per unit for png output")
	return cmd
}

func (c *cli) route(cmd *cobra.Command, f routeFlags) error {
	l := applog.WithOperation(applog.WithComponent("cli"), "route")
	th := c.cfg.CacheTheme()
	g, cache, err := f.scene.build(th)
	if err != nil {
		return err
	}
	c.crash.Graph = g

	conn := g.Connections[0]
	src, tgt := g.Endpoints(conn)
	e, ok := cache.FullPath(conn, src, tgt, conn.RoutingStyle(th.DefaultStyle))
	if !ok {
		return zerr.With(zerr.New("connection cannot be routed"), "conn", conn.ID)
	}
	l.Info("routed",
		slog.String("conn", conn.ID),
		slog.String("style", conn.Style.Kind.String()),
		slog.Int("segments", len(e.Segments)),
	)
	l.Debug("cache", slog.String("stats", cache.Stats().String()))

	format := strings.ToLower(strings.TrimSpace(f.format))
	if format == "" {
		format = formatText
		if ext := strings.TrimPrefix(filepath.Ext(f.out), "."); ext != "" {
			format = ext
		}
	}
	if format == formatText {
		return writeRouteText(cmd.OutOrStdout(), conn, e, cache.Stats())
	}

	ef, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	scene := export.Scene{Graph: g, Cache: cache}
	opt := export.Options{HitRects: f.hitRects, Labels: f.labels, Scale: f.scale}
	if f.out == "" || f.out == "-" {
		return export.Write(cmd.OutOrStdout(), ef, scene, opt)
	}
	if err := export.WriteFile(f.out, ef, scene, opt); err != nil {
		return err
	}
	l.Info("exported", slog.String("path", f.out), slog.String("format", string(ef)))
	return nil
}

func writeRouteText(w io.Writer, conn *graph.Connection, e *pathcache.CachedPath, st pathcache.Stats) error {
	var werr error
	wf := func(format string, args ...any) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(w, format, args...)
	}

	wf("connection %s style=%s segments=%d\n", conn.ID, conn.Style.Kind, len(e.Segments))
	wf("start  %s\n", fmtPt(e.Start))
	var length float64
	for i, s := range e.Segments {
		length += s.Length()
		if s.Kind == vector.SegCurve {
			wf("seg %d  curve %s -> %s via %s %s\n", i, fmtPt(s.From), fmtPt(s.To), fmtPt(s.C1), fmtPt(s.C2))
			continue
		}
		wf("seg %d  line  %s -> %s\n", i, fmtPt(s.From), fmtPt(s.To))
	}
	wf("path   %s\n", e.DrawPath.SVG())
	wf("length %s\n", fmtNum(length))
	for _, m := range []struct {
		name string
		m    pathcache.Marker
	}{{"start", e.StartMarker}, {"end", e.EndMarker}} {
		if m.m.Size.IsZero() {
			continue
		}
		wf("marker %s %s (%sx%s)\n", m.name, fmtPt(m.m.Pos), fmtNum(m.m.Size.W), fmtNum(m.m.Size.H))
	}
	wf("%s\n", st)
	if werr != nil {
		return zerr.Wrap(werr, "write route")
	}
	return nil
}
