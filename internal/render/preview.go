/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package render rasterizes a board into a PNG preview: node boxes with
// labels, straight connection lines, and optionally the active alignment
// guides. It is headless and used by the CLI as well as tests.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"graphboard/internal/geometry"
	"graphboard/internal/graph"
	"graphboard/internal/snap"
)

// Options controls preview rendering. Zero values get sensible defaults.
type Options struct {
	Margin     float32 // empty border around the board content, default 40
	Background color.RGBA
	NodeStroke color.RGBA
	NodeFill   color.RGBA
	EdgeColor  color.RGBA
	GuideColor color.RGBA
	LabelColor color.RGBA
	Guides     []snap.Segment // already in board coordinates
}

func (o *Options) applyDefaults() {
	if o.Margin == 0 {
		o.Margin = 40
	}
	if o.Background.A == 0 {
		o.Background = color.RGBA{255, 255, 255, 255}
	}
	if o.NodeStroke.A == 0 {
		o.NodeStroke = color.RGBA{40, 40, 40, 255}
	}
	if o.NodeFill.A == 0 {
		o.NodeFill = color.RGBA{235, 238, 245, 255}
	}
	if o.EdgeColor.A == 0 {
		o.EdgeColor = color.RGBA{120, 120, 120, 255}
	}
	if o.GuideColor.A == 0 {
		o.GuideColor = color.RGBA{255, 0, 0, 255}
	}
	if o.LabelColor.A == 0 {
		o.LabelColor = color.RGBA{0, 0, 0, 255}
	}
}

// contentBounds computes the union of all node boxes plus guide extents.
func contentBounds(doc *graph.Document, guides []snap.Segment) geometry.Rect {
	var b geometry.Rect
	first := true
	for _, n := range doc.Nodes {
		if first {
			b = n.Box()
			first = false
			continue
		}
		b = b.Union(n.Box())
	}
	for _, s := range guides {
		seg := geometry.R(s.From.X, s.From.Y, s.To.X-s.From.X, s.To.Y-s.From.Y)
		if first {
			b = seg
			first = false
			continue
		}
		b = b.Union(seg)
	}
	return b
}

// Preview renders the document to an RGBA image.
func Preview(doc *graph.Document, opt Options) (*image.RGBA, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is nil")
	}
	opt.applyDefaults()

	bounds := contentBounds(doc, opt.Guides)
	// Shift board coordinates so content starts at the margin.
	off := geometry.Pt{X: opt.Margin - bounds.X, Y: opt.Margin - bounds.Y}
	pixW := int(math.Ceil(float64(bounds.W + 2*opt.Margin)))
	pixH := int(math.Ceil(float64(bounds.H + 2*opt.Margin)))
	if pixW < 1 {
		pixW = 1
	}
	if pixH < 1 {
		pixH = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, pixW, pixH))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: opt.Background}, image.Point{}, draw.Src)

	idx := doc.Index()

	// Edges first so nodes paint over them.
	for _, e := range doc.Edges {
		from, okF := idx[e.From]
		to, okT := idx[e.To]
		if !okF || !okT {
			continue
		}
		fb := from.Box()
		tb := to.Box()
		drawLine(img,
			px(fb.X+fb.W/2+off.X), px(fb.Y+fb.H/2+off.Y),
			px(tb.X+tb.W/2+off.X), px(tb.Y+tb.H/2+off.Y),
			opt.EdgeColor)
	}

	for _, n := range doc.Nodes {
		b := n.Box()
		x0 := px(b.X + off.X)
		y0 := px(b.Y + off.Y)
		x1 := px(b.X + b.W + off.X)
		y1 := px(b.Y + b.H + off.Y)
		fillRect(img, x0, y0, x1, y1, opt.NodeFill)
		strokeRect(img, x0, y0, x1, y1, opt.NodeStroke)
		label := n.Label
		if label == "" {
			label = n.ID
		}
		drawLabel(img, label, b.At(b.Min().Add(off)), opt.LabelColor)
	}

	for _, s := range opt.Guides {
		drawLine(img,
			px(s.From.X+off.X), px(s.From.Y+off.Y),
			px(s.To.X+off.X), px(s.To.Y+off.Y),
			opt.GuideColor)
	}
	return img, nil
}

// WritePNG renders the document and writes it to path.
func WritePNG(doc *graph.Document, path string, opt Options) error {
	img, err := Preview(doc, opt)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close png: %w", err)
	}
	return nil
}

func px(v float32) int { return int(math.Round(float64(v))) }

// drawLabel centers the text in the box using the fixed 7x13 face. Labels
// wider than the box are clipped by the image bounds, which is acceptable
// for a debug preview.
func drawLabel(img *image.RGBA, text string, box geometry.Rect, col color.RGBA) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
	}
	w := d.MeasureString(text)
	cx := fixed.I(px(box.X+box.W/2)) - w/2
	cy := fixed.I(px(box.Y+box.H/2) + face.Height/2 - face.Descent)
	d.Dot = fixed.Point26_6{X: cx, Y: cy}
	d.DrawString(text)
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

// drawLine rasterizes a straight segment with the classic integer Bresenham
// walk. Guide and edge lines are always either axis-aligned or short, so no
// anti-aliasing is needed.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		img.SetRGBA(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
