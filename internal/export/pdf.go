/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"io"

	"github.com/jung-kurt/gofpdf"
	"go.trai.ch/zerr"

	"gonodeflow/internal/vector"
)

// WritePDF renders the scene on a single page sized to the content. Units
// are points, one per model unit, with the page origin at the top-left of
// the scene bounds.
func WritePDF(w io.Writer, s Scene, opt Options) error {
	opt = opt.withDefaults()
	f, err := layout(s, opt)
	if err != nil {
		return err
	}
	b := f.bounds
	size := gofpdf.SizeType{Wd: b.W, Ht: b.H}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "pt", Size: size})
	pdf.SetTitle("gonodeflow connection geometry", false)
	pdf.SetCreator("gonodeflow", false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.AddPageFormat("", size)
	pdf.SetFont("Helvetica", "", 10)

	xf := vector.Translate(-b.X, -b.Y)
	rect := func(r vector.Rect, style string) {
		p := xf.Apply(r.Min())
		pdf.Rect(p.X, p.Y, r.W, r.H, style)
	}

	setFillColor(pdf, opt.Background)
	pdf.Rect(0, 0, b.W, b.H, "F")

	setDrawColor(pdf, opt.NodeStroke.Color)
	pdf.SetLineWidth(opt.NodeStroke.Width)
	for _, n := range f.nodes {
		setFillColor(pdf, opt.NodeFill)
		rect(n.bounds, "FD")
		setFillColor(pdf, opt.NodeStroke.Color)
		for _, p := range n.ports {
			rect(p, "F")
		}
		if opt.Labels {
			setTextColor(pdf, opt.NodeStroke.Color)
			p := xf.Apply(n.bounds.Min().Add(vector.Pt{X: 4, Y: 12}))
			pdf.Text(p.X, p.Y, n.id)
		}
	}

	pdf.SetLineCapStyle(capName(opt.ConnStroke.Cap))
	pdf.SetLineJoinStyle(joinName(opt.ConnStroke.Join))
	for _, c := range f.conns {
		setDrawColor(pdf, opt.ConnStroke.Color)
		setFillColor(pdf, opt.ConnStroke.Color)
		pdf.SetLineWidth(opt.ConnStroke.Width)
		tracePath(pdf, c.path, xf)
		pdf.DrawPath("D")
		for _, m := range c.markers {
			tracePath(pdf, m, xf)
			pdf.DrawPath("F")
		}
		if len(c.rects) > 0 {
			setDrawColor(pdf, opt.HitColor)
			pdf.SetLineWidth(0.5)
			pdf.SetDashPattern([]float64{2, 2}, 0)
			for _, r := range c.rects {
				rect(r, "D")
			}
			pdf.SetDashPattern([]float64{}, 0)
		}
	}

	if err := pdf.Output(w); err != nil {
		return zerr.Wrap(err, "write pdf")
	}
	return nil
}

// tracePath replays path commands into the current PDF path.
func tracePath(pdf *gofpdf.Fpdf, p vector.Path, xf vector.Affine2D) {
	pt := func(x, y float64) vector.Pt { return xf.Apply(vector.Pt{X: x, Y: y}) }
	for _, c := range p.Cmds {
		d := c.Data
		switch c.Op {
		case vector.MoveTo:
			a := pt(d[0], d[1])
			pdf.MoveTo(a.X, a.Y)
		case vector.LineTo:
			a := pt(d[0], d[1])
			pdf.LineTo(a.X, a.Y)
		case vector.CubicTo:
			c1, c2, a := pt(d[0], d[1]), pt(d[2], d[3]), pt(d[4], d[5])
			pdf.CurveBezierCubicTo(c1.X, c1.Y, c2.X, c2.Y, a.X, a.Y)
		case vector.Close:
			pdf.ClosePath()
		}
	}
}

func setDrawColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func setFillColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}

func setTextColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
}
