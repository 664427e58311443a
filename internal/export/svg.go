/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.trai.ch/zerr"

	"gonodeflow/internal/vector"
)

// WriteSVG renders the scene as a standalone SVG document. The viewBox is in
// model units; width and height are in pixels derived from Scale.
func WriteSVG(w io.Writer, s Scene, opt Options) error {
	opt = opt.withDefaults()
	f, err := layout(s, opt)
	if err != nil {
		return err
	}

	var werr error
	wf := func(format string, args ...any) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(w, format, args...)
	}

	b := f.bounds
	pxW, pxH := f.pixels(opt.Scale)
	wf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	wf("<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%dpx\" height=\"%dpx\" viewBox=\"%s %s %s %s\">\n",
		pxW, pxH, num(b.X), num(b.Y), num(b.W), num(b.H))
	wf("  <rect x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\" fill=\"%s\"/>\n",
		num(b.X), num(b.Y), num(b.W), num(b.H), svgColor(opt.Background))

	ns := svgColor(opt.NodeStroke.Color)
	for _, n := range f.nodes {
		r := n.bounds
		wf("  <rect id=\"node-%s\" x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\" fill=\"%s\" stroke=\"%s\" stroke-width=\"%s\"/>\n",
			escAttr(n.id), num(r.X), num(r.Y), num(r.W), num(r.H), svgColor(opt.NodeFill), ns, num(opt.NodeStroke.Width))
		for _, p := range n.ports {
			wf("  <rect x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\" fill=\"%s\"/>\n", num(p.X), num(p.Y), num(p.W), num(p.H), ns)
		}
		if opt.Labels {
			wf("  <text x=\"%s\" y=\"%s\" font-family=\"Helvetica, Arial, sans-serif\" font-size=\"10\" fill=\"%s\">%s</text>\n",
				num(r.X+4), num(r.Y+12), ns, escText(n.id))
		}
	}

	cs := svgColor(opt.ConnStroke.Color)
	hc := svgColor(opt.HitColor)
	for _, c := range f.conns {
		wf("  <path id=\"conn-%s\" d=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"%s\" stroke-linecap=\"%s\" stroke-linejoin=\"%s\"/>\n",
			escAttr(c.id), c.path.SVG(), cs, num(opt.ConnStroke.Width), capName(opt.ConnStroke.Cap), joinName(opt.ConnStroke.Join))
		for _, m := range c.markers {
			wf("  <path d=\"%s\" fill=\"%s\"/>\n", m.SVG(), cs)
		}
		for _, r := range c.rects {
			wf("  <rect x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"0.5\" stroke-dasharray=\"2 2\"/>\n",
				num(r.X), num(r.Y), num(r.W), num(r.H), hc)
		}
	}
	wf("</svg>\n")

	if werr != nil {
		return zerr.Wrap(werr, "write svg")
	}
	return nil
}

func svgColor(c vector.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// num formats like path data: three decimals at most, no negative zero.
func num(v float64) string {
	v = vector.FloatRound(v, 3)
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func capName(c vector.LineCap) string {
	switch c {
	case vector.CapRound:
		return "round"
	case vector.CapSquare:
		return "square"
	default:
		return "butt"
	}
}

func joinName(j vector.LineJoin) string {
	switch j {
	case vector.JoinRound:
		return "round"
	case vector.JoinBevel:
		return "bevel"
	default:
		return "miter"
	}
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escText(s string) string { return textEscaper.Replace(s) }

func escAttr(s string) string {
	// naive escaping sufficient for ids
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '"':
			out = append(out, "&quot;"...)
		case '&':
			out = append(out, "&amp;"...)
		case '<':
			out = append(out, "&lt;"...)
		case '\n':
			out = append(out, ' ')
		case '\r':
			// skip
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}
