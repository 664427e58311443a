/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"

	"gonodeflow/internal/graph"
	"gonodeflow/internal/pathcache"
	"gonodeflow/internal/routing"
	"gonodeflow/internal/vector"
)

// ErrInvalidFlag is returned when a flag value cannot be parsed.
var ErrInvalidFlag = zerr.New("invalid flag value")

// sceneFlags describe a two-node graph joined by one connection.
type sceneFlags struct {
	from, to         string
	fromSide, toSide string
	style            string
	shape            string
	curvature        float64
	cornerRadius     float64
	extension        float64
	backEdgeGap      float64
}

func (f *sceneFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.from, "from", "0,0,100,60", "source node rect as x,y,w,h")
	fs.StringVar(&f.to, "to", "300,0,100,60", "target node rect as x,y,w,h")
	fs.StringVar(&f.fromSide, "from-side", "right", "source port side: left|right|top|bottom|auto")
	fs.StringVar(&f.toSide, "to-side", "left", "target port side: left|right|top|bottom|auto")
	fs.StringVar(&f.style, "style", "", "routing style: straight|curved|orthogonal (default from theme)")
	fs.StringVar(&f.shape, "shape", "rect", "node shape: rect|ellipse")
	fs.Float64Var(&f.curvature, "curvature", 0, "curved style curvature override")
	fs.Float64Var(&f.cornerRadius, "corner-radius", 0, "orthogonal corner radius override")
	fs.Float64Var(&f.extension, "extension", 0, "orthogonal extension offset override")
	fs.Float64Var(&f.backEdgeGap, "back-edge-gap", 0, "orthogonal back-edge gap override")
}

// build creates the graph and a cache for it. The single connection is "c1"
// from port "out" of node "a" to port "in" of node "b".
func (f *sceneFlags) build(th pathcache.Theme) (*graph.Graph, *pathcache.Cache, error) {
	fromRect, err := parseRect("from", f.from)
	if err != nil {
		return nil, nil, err
	}
	toRect, err := parseRect("to", f.to)
	if err != nil {
		return nil, nil, err
	}
	// "auto" faces the port toward the other node's center.
	d := toRect.Center().Sub(fromRect.Center())
	fromSide, err := parseSide("from-side", f.fromSide, vector.ClassifySide(d.X, d.Y))
	if err != nil {
		return nil, nil, err
	}
	toSide, err := parseSide("to-side", f.toSide, vector.ClassifySide(-d.X, -d.Y))
	if err != nil {
		return nil, nil, err
	}

	style := th.DefaultStyle
	if f.style != "" {
		k, ok := routing.ParseKind(strings.ToLower(strings.TrimSpace(f.style)))
		if !ok {
			return nil, nil, flagError("style", f.style)
		}
		style.Kind = k
	}
	style.Curvature = f.curvature
	style.CornerRadius = f.cornerRadius
	style.ExtensionOffset = f.extension
	style.BackEdgeGap = f.backEdgeGap

	var opts []pathcache.Option
	switch strings.ToLower(f.shape) {
	case "", "rect", "rectangle":
	case "ellipse":
		opts = append(opts, pathcache.WithShapeFunc(func(*graph.Node) graph.NodeShape { return graph.Ellipse{} }))
	default:
		return nil, nil, flagError("shape", f.shape)
	}

	g := &graph.Graph{
		Nodes: []*graph.Node{
			nodeWithPort("a", fromRect, "out", fromSide, th.PortSize),
			nodeWithPort("b", toRect, "in", toSide, th.PortSize),
		},
		Connections: []*graph.Connection{{
			ID:           "c1",
			SourceNodeID: "a",
			SourcePortID: "out",
			TargetNodeID: "b",
			TargetPortID: "in",
			Style:        &style,
		}},
	}
	return g, pathcache.New(th, opts...), nil
}

// nodeWithPort places one port centered on the middle of side, half inside
// and half outside the node.
func nodeWithPort(id string, r vector.Rect, portID string, side vector.Side, ps vector.Size) *graph.Node {
	var off vector.Pt
	switch side {
	case vector.SideLeft:
		off = vector.Pt{X: -ps.W / 2, Y: r.H/2 - ps.H/2}
	case vector.SideRight:
		off = vector.Pt{X: r.W - ps.W/2, Y: r.H/2 - ps.H/2}
	case vector.SideTop:
		off = vector.Pt{X: r.W/2 - ps.W/2, Y: -ps.H / 2}
	default:
		off = vector.Pt{X: r.W/2 - ps.W/2, Y: r.H - ps.H/2}
	}
	return &graph.Node{
		ID:       id,
		Position: r.Min(),
		Size:     vector.Size{W: r.W, H: r.H},
		Ports:    []graph.Port{{ID: portID, Side: side, Offset: off}},
	}
}

func parseSide(flag, s string, auto vector.Side) (vector.Side, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "auto" {
		return auto, nil
	}
	side, ok := vector.ParseSide(s)
	if !ok {
		return side, flagError(flag, s)
	}
	return side, nil
}

func parseRect(flag, s string) (vector.Rect, error) {
	v, err := parseFloats(flag, s, 4)
	if err != nil {
		return vector.Rect{}, err
	}
	if v[2] < 0 || v[3] < 0 {
		return vector.Rect{}, flagError(flag, s)
	}
	return vector.R(v[0], v[1], v[2], v[3]), nil
}

func parsePoint(flag, s string) (vector.Pt, error) {
	v, err := parseFloats(flag, s, 2)
	if err != nil {
		return vector.Pt{}, err
	}
	return vector.Pt{X: v[0], Y: v[1]}, nil
}

func parseFloats(flag, s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, flagError(flag, s)
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, flagError(flag, s)
		}
		out[i] = v
	}
	return out, nil
}

func flagError(flag, value string) error {
	err := zerr.Wrap(ErrInvalidFlag, "--"+flag)
	err = zerr.With(err, "flag", flag)
	return zerr.With(err, "value", value)
}

// fmtPt prints a point the way path data prints coordinates.
func fmtPt(p vector.Pt) string {
	return fmtNum(p.X) + "," + fmtNum(p.Y)
}

func fmtNum(v float64) string {
	v = vector.FloatRound(v, 3)
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
