/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"go.trai.ch/zerr"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	xvector "golang.org/x/image/vector"

	"gonodeflow/internal/vector"
)

// WritePNG rasterizes the scene. Connections and arrowheads are
// anti-aliased; node boxes and hit rects are drawn on the pixel grid.
func WritePNG(w io.Writer, s Scene, opt Options) error {
	opt = opt.withDefaults()
	f, err := layout(s, opt)
	if err != nil {
		return err
	}
	pixW, pixH := f.pixels(opt.Scale)
	rp := &raster{
		img:   image.NewRGBA(image.Rect(0, 0, pixW, pixH)),
		ras:   xvector.NewRasterizer(pixW, pixH),
		xf:    vector.Scale(opt.Scale, opt.Scale).Mul(vector.Translate(-f.bounds.X, -f.bounds.Y)),
		scale: opt.Scale,
	}
	draw.Draw(rp.img, rp.img.Bounds(), image.NewUniform(toRGBA(opt.Background)), image.Point{}, draw.Src)

	nf := toRGBA(opt.NodeFill)
	ns := toRGBA(opt.NodeStroke.Color)
	for _, n := range f.nodes {
		x0, y0, x1, y1 := rp.box(n.bounds)
		fillRect(rp.img, x0, y0, x1, y1, nf)
		strokeRect(rp.img, x0, y0, x1, y1, ns)
		for _, p := range n.ports {
			px0, py0, px1, py1 := rp.box(p)
			fillRect(rp.img, px0, py0, px1, py1, ns)
		}
		if opt.Labels {
			d := font.Drawer{
				Dst:  rp.img,
				Src:  image.NewUniform(ns),
				Face: basicfont.Face7x13,
				Dot:  fixed.P(x0+4, y0+13),
			}
			d.DrawString(n.id)
		}
	}

	cs := toRGBA(opt.ConnStroke.Color)
	hw := math.Max(opt.ConnStroke.Width*opt.Scale/2, 0.5)
	hc := toRGBA(opt.HitColor)
	for _, c := range f.conns {
		rp.stroke(c.path, hw, cs)
		for _, m := range c.markers {
			rp.fill(m, cs)
		}
		for _, r := range c.rects {
			x0, y0, x1, y1 := rp.box(r)
			strokeRect(rp.img, x0, y0, x1, y1, hc)
		}
	}

	if err := png.Encode(w, rp.img); err != nil {
		return zerr.Wrap(err, "encode png")
	}
	return nil
}

// raster maps model coordinates to pixels and paints through the x/image
// rasterizer, one primitive at a time so coverage never cancels.
type raster struct {
	img   *image.RGBA
	ras   *xvector.Rasterizer
	xf    vector.Affine2D
	scale float64
}

func (r *raster) pt(p vector.Pt) (float32, float32) {
	q := r.xf.Apply(p)
	return float32(q.X), float32(q.Y)
}

func (r *raster) box(rc vector.Rect) (x0, y0, x1, y1 int) {
	q := r.xf.Apply(rc.Min())
	x0 = int(math.Round(q.X))
	y0 = int(math.Round(q.Y))
	x1 = x0 + int(math.Round(rc.W*r.scale)) - 1
	y1 = y0 + int(math.Round(rc.H*r.scale)) - 1
	return x0, y0, x1, y1
}

func (r *raster) reset() {
	b := r.img.Bounds()
	r.ras.Reset(b.Dx(), b.Dy())
}

func (r *raster) paint(col color.RGBA) {
	r.ras.Draw(r.img, r.img.Bounds(), image.NewUniform(col), image.Point{})
}

// fill paints a closed path. Curves go straight to the rasterizer.
func (r *raster) fill(p vector.Path, col color.RGBA) {
	r.reset()
	for _, c := range p.Cmds {
		switch c.Op {
		case vector.MoveTo:
			x, y := r.pt(vector.Pt{X: c.Data[0], Y: c.Data[1]})
			r.ras.MoveTo(x, y)
		case vector.LineTo:
			x, y := r.pt(vector.Pt{X: c.Data[0], Y: c.Data[1]})
			r.ras.LineTo(x, y)
		case vector.CubicTo:
			c1x, c1y := r.pt(vector.Pt{X: c.Data[0], Y: c.Data[1]})
			c2x, c2y := r.pt(vector.Pt{X: c.Data[2], Y: c.Data[3]})
			x, y := r.pt(vector.Pt{X: c.Data[4], Y: c.Data[5]})
			r.ras.CubeTo(c1x, c1y, c2x, c2y, x, y)
		case vector.Close:
			r.ras.ClosePath()
		}
	}
	r.ras.ClosePath()
	r.paint(col)
}

// stroke outlines the flattened path with quads of half width hw plus a
// square on every vertex. All quads share one winding, so overlaps saturate.
func (r *raster) stroke(p vector.Path, hw float64, col color.RGBA) {
	r.reset()
	_, segs := p.Segments()
	for _, s := range segs {
		pts := s.Flatten()
		for i, q := range pts {
			r.square(q, hw)
			if i > 0 {
				r.quad(pts[i-1], q, hw)
			}
		}
	}
	r.paint(col)
}

func (r *raster) quad(a, b vector.Pt, hw float64) {
	ax, ay := r.pt(a)
	bx, by := r.pt(b)
	dx, dy := float64(bx-ax), float64(by-ay)
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := float32(-dy/l*hw), float32(dx/l*hw)
	r.ras.MoveTo(ax+nx, ay+ny)
	r.ras.LineTo(bx+nx, by+ny)
	r.ras.LineTo(bx-nx, by-ny)
	r.ras.LineTo(ax-nx, ay-ny)
	r.ras.ClosePath()
}

func (r *raster) square(c vector.Pt, hw float64) {
	x, y := r.pt(c)
	h := float32(hw)
	r.ras.MoveTo(x-h, y+h)
	r.ras.LineTo(x+h, y+h)
	r.ras.LineTo(x+h, y-h)
	r.ras.LineTo(x-h, y-h)
	r.ras.ClosePath()
}

func toRGBA(c vector.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// strokeRect draws a 1px axis-aligned rectangle border inclusive of endpoints.
func strokeRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	for x := x0; x <= x1; x++ {
		img.SetRGBA(x, y0, col)
		img.SetRGBA(x, y1, col)
	}
	for y := y0; y <= y1; y++ {
		img.SetRGBA(x0, y, col)
		img.SetRGBA(x1, y, col)
	}
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			img.SetRGBA(x, y, col)
		}
	}
}
