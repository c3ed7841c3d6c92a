//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"graphboard/internal/config"
	"graphboard/internal/crash"
	"graphboard/internal/geometry"
	"graphboard/internal/graph"
	applog "graphboard/internal/log"
	"graphboard/internal/snap"
	"graphboard/internal/telemetry"
)

// Run starts the Fyne-based board editor.
func Run(boardPath string) error {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("ui")
	l.Info("starting UI")

	defer crash.Recover(&boardPath)

	cfg, err := config.Load()
	if err != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", err))
		cfg = config.Defaults()
	}
	// config.Load already folded in env overrides; re-init logging from it.
	applog.Init(applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	})

	telCfg := telemetry.FromEnv()
	if cfg.General.TelemetryOptIn {
		telCfg.OptIn = true
	}
	tel := telemetry.New(telCfg)
	defer tel.Close()
	tel.Event("ui_start", nil)

	if cfg.General.Theme != "" && cfg.General.Theme != "system" {
		// Fyne reads the theme variant from the environment at startup.
		_ = os.Setenv("FYNE_THEME", cfg.General.Theme)
	}

	fyneApp := app.NewWithID("graphboard")
	w := fyneApp.NewWindow("GraphBoard")
	prefs := fyneApp.Preferences()
	winW := prefs.IntWithFallback("window.width", 1200)
	winH := prefs.IntWithFallback("window.height", 800)
	if winW < 800 {
		winW = 800
	}
	if winH < 600 {
		winH = 600
	}
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	status := widget.NewLabel("Ready")
	board := NewBoardCanvas()
	board.OnStatus = func(msg string) { status.SetText(msg) }

	currentPath := ""
	openBoard := func(path string) {
		doc, err := graph.Load(path)
		if err != nil {
			dialog.ShowError(err, w)
			l.Error("open board failed", slog.String("path", path), slog.Any("err", err))
			return
		}
		currentPath = path
		boardPath = path
		board.SetDocument(doc)
		status.SetText(fmt.Sprintf("Opened %s (%d nodes)", path, len(doc.Nodes)))
		tel.Event("board_open", map[string]any{"nodes": len(doc.Nodes), "edges": len(doc.Edges)})
		l.Info("board opened", slog.String("path", path), slog.Int("nodes", len(doc.Nodes)))
	}

	openItem := func() {
		dialog.ShowFileOpen(func(rc fyne.URIReadCloser, err error) {
			if err != nil || rc == nil {
				return
			}
			path := rc.URI().Path()
			_ = rc.Close()
			openBoard(path)
		}, w)
	}
	saveItem := func() {
		if board.doc == nil {
			return
		}
		if currentPath == "" {
			dialog.ShowFileSave(func(wc fyne.URIWriteCloser, err error) {
				if err != nil || wc == nil {
					return
				}
				currentPath = wc.URI().Path()
				_ = wc.Close()
				saveTo(board.doc, currentPath, status, w, l)
			}, w)
			return
		}
		saveTo(board.doc, currentPath, status, w, l)
	}

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.FolderOpenIcon(), openItem),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), saveItem),
	)
	w.SetMainMenu(fyne.NewMainMenu(fyne.NewMenu("File",
		fyne.NewMenuItem("Open…", openItem),
		fyne.NewMenuItem("Save", saveItem),
	)))

	w.SetContent(container.NewBorder(toolbar, status, nil, nil, board))
	w.SetOnClosed(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
	})

	if boardPath != "" {
		openBoard(boardPath)
	}

	w.ShowAndRun()
	return nil
}

func saveTo(doc *graph.Document, path string, status *widget.Label, w fyne.Window, l *slog.Logger) {
	if err := doc.Save(path); err != nil {
		dialog.ShowError(err, w)
		l.Error("save board failed", slog.String("path", path), slog.Any("err", err))
		return
	}
	status.SetText("Saved " + path)
	l.Info("board saved", slog.String("path", path))
}

type dragMode int

const (
	dragNone dragMode = iota
	dragPan
	dragMove
)

// BoardCanvas draws the node graph and runs the alignment-guide session while
// a node is dragged. Pan with background drag, zoom with the wheel.
type BoardCanvas struct {
	widget.BaseWidget

	zoom    float32
	offsetX float32
	offsetY float32

	doc  *graph.Document
	ctrl *snap.Controller

	selected string
	mode     dragMode
	// board-space offset from the grabbed node's min corner to the pointer
	grabDX, grabDY float32
	lastProposed   geometry.Pt

	OnStatus func(string)
}

func NewBoardCanvas() *BoardCanvas {
	bc := &BoardCanvas{
		zoom: 1,
		ctrl: snap.NewController(),
	}
	bc.ExtendBaseWidget(bc)
	return bc
}

// SetDocument replaces the displayed board and resets interaction state.
func (b *BoardCanvas) SetDocument(doc *graph.Document) {
	b.doc = doc
	b.ctrl = snap.NewController()
	b.selected = ""
	b.mode = dragNone
	b.Refresh()
}

// PreferredSize sets a decent default size for the widget.
func (b *BoardCanvas) PreferredSize() fyne.Size { return fyne.NewSize(900, 600) }

// viewTransform maps board coordinates to screen coordinates.
func (b *BoardCanvas) viewTransform() geometry.Affine2D {
	size := b.Size()
	return geometry.Translate(float32(size.Width)/2+b.offsetX, float32(size.Height)/2+b.offsetY).
		Mul(geometry.Scale(b.zoom, b.zoom))
}

func (b *BoardCanvas) toScreen(p geometry.Pt) fyne.Position {
	s := b.viewTransform().Apply(p)
	return fyne.NewPos(s.X, s.Y)
}

func (b *BoardCanvas) toBoard(pos fyne.Position) geometry.Pt {
	return b.viewTransform().Invert().Apply(geometry.Pt{X: pos.X, Y: pos.Y})
}

// hitTest returns the topmost node under the board-space point, or "".
func (b *BoardCanvas) hitTest(p geometry.Pt) string {
	if b.doc == nil {
		return ""
	}
	for i := len(b.doc.Nodes) - 1; i >= 0; i-- {
		if b.doc.Nodes[i].Box().Contains(p) {
			return b.doc.Nodes[i].ID
		}
	}
	return ""
}

// Tapped selects the node under the pointer.
func (b *BoardCanvas) Tapped(e *fyne.PointEvent) {
	b.selected = b.hitTest(b.toBoard(e.Position))
	b.Refresh()
}

// Dragged pans the view or moves the grabbed node through the snap session.
func (b *BoardCanvas) Dragged(e *fyne.DragEvent) {
	pos := e.Position
	if b.mode == dragNone {
		pt := b.toBoard(pos)
		if id := b.hitTest(pt); id != "" && b.doc != nil {
			b.mode = dragMove
			b.selected = id
			if n, ok := b.doc.Node(id); ok {
				b.grabDX = pt.X - n.X
				b.grabDY = pt.Y - n.Y
			}
		} else {
			b.mode = dragPan
		}
	}

	switch b.mode {
	case dragPan:
		b.offsetX += e.Dragged.DX
		b.offsetY += e.Dragged.DY
	case dragMove:
		cur := b.toBoard(pos)
		b.lastProposed = geometry.Pt{X: cur.X - b.grabDX, Y: cur.Y - b.grabDY}
		out := b.ctrl.Apply([]snap.PositionChange{
			{NodeID: b.selected, Position: b.lastProposed, Dragging: true},
		}, b.doc.Nodes)
		b.doc.SetPosition(b.selected, out[0].Position.X, out[0].Position.Y)
		if b.OnStatus != nil {
			g := b.ctrl.Guides()
			switch {
			case g.Horizontal != nil && g.Vertical != nil:
				b.OnStatus(fmt.Sprintf("Snapped to %s and %s of %s", g.Horizontal.Anchor, g.Vertical.Anchor, g.Vertical.SourceID))
			case g.Horizontal != nil:
				b.OnStatus(fmt.Sprintf("Snapped to %s of %s", g.Horizontal.Anchor, g.Horizontal.SourceID))
			case g.Vertical != nil:
				b.OnStatus(fmt.Sprintf("Snapped to %s of %s", g.Vertical.Anchor, g.Vertical.SourceID))
			default:
				b.OnStatus("Dragging " + b.selected)
			}
		}
	}
	b.Refresh()
}

// DragEnd drops the node. The controller settles it at the snapped position.
func (b *BoardCanvas) DragEnd() {
	if b.mode == dragMove && b.doc != nil && b.selected != "" {
		out := b.ctrl.Apply([]snap.PositionChange{
			{NodeID: b.selected, Position: b.lastProposed, Dragging: false},
		}, b.doc.Nodes)
		b.doc.SetPosition(b.selected, out[0].Position.X, out[0].Position.Y)
		if b.OnStatus != nil {
			b.OnStatus("Moved " + b.selected)
		}
	}
	b.mode = dragNone
	b.Refresh()
}

// Scrolled zooms around the widget center.
func (b *BoardCanvas) Scrolled(e *fyne.ScrollEvent) {
	step := e.Scrolled.DY * 0.002
	b.zoom += step
	if b.zoom < 0.1 {
		b.zoom = 0.1
	}
	if b.zoom > 4.0 {
		b.zoom = 4.0
	}
	b.Refresh()
}

// CreateRenderer builds the canvas objects positioned manually in Layout.
func (b *BoardCanvas) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.RGBA{R: 30, G: 30, B: 34, A: 255})

	hGuide := canvas.NewLine(color.RGBA{R: 255, G: 64, B: 64, A: 255})
	hGuide.StrokeWidth = 1
	hGuide.Hide()
	vGuide := canvas.NewLine(color.RGBA{R: 255, G: 64, B: 64, A: 255})
	vGuide.StrokeWidth = 1
	vGuide.Hide()

	sel := canvas.NewRectangle(color.RGBA{0, 0, 0, 0})
	sel.StrokeColor = color.RGBA{R: 0, G: 170, B: 255, A: 255}
	sel.StrokeWidth = 1
	sel.Hide()

	return &boardRenderer{
		bc:      b,
		objects: []fyne.CanvasObject{bg, hGuide, vGuide, sel},
		bg:      bg,
		hGuide:  hGuide,
		vGuide:  vGuide,
		sel:     sel,
	}
}

type boardRenderer struct {
	bc      *BoardCanvas
	objects []fyne.CanvasObject
	bg      *canvas.Rectangle
	edges   []*canvas.Line
	rects   []*canvas.Rectangle
	labels  []*canvas.Text
	hGuide  *canvas.Line
	vGuide  *canvas.Line
	sel     *canvas.Rectangle
}

func (r *boardRenderer) Destroy()                     {}
func (r *boardRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *boardRenderer) MinSize() fyne.Size           { return r.bc.PreferredSize() }
func (r *boardRenderer) Refresh()                     { r.Layout(r.bc.Size()); canvas.Refresh(r.bc) }

// ensureVisuals grows the pooled edge/rect/label objects to the document
// size, inserting new ones below the guide lines in draw order.
func (r *boardRenderer) ensureVisuals(nodes, edges int) {
	insertBefore := func(marker fyne.CanvasObject, objs []fyne.CanvasObject) {
		ins := len(r.objects)
		for i, o := range r.objects {
			if o == marker {
				ins = i
				break
			}
		}
		out := make([]fyne.CanvasObject, 0, len(r.objects)+len(objs))
		out = append(out, r.objects[:ins]...)
		out = append(out, objs...)
		out = append(out, r.objects[ins:]...)
		r.objects = out
	}
	if edges > len(r.edges) {
		var added []fyne.CanvasObject
		for len(r.edges) < edges {
			ln := canvas.NewLine(color.RGBA{R: 110, G: 110, B: 120, A: 255})
			ln.StrokeWidth = 1
			r.edges = append(r.edges, ln)
			added = append(added, ln)
		}
		insertBefore(r.hGuide, added)
	}
	if nodes > len(r.rects) {
		var added []fyne.CanvasObject
		for len(r.rects) < nodes {
			rc := canvas.NewRectangle(color.RGBA{R: 225, G: 228, B: 235, A: 255})
			rc.StrokeColor = color.RGBA{R: 40, G: 40, B: 40, A: 255}
			rc.StrokeWidth = 1
			txt := canvas.NewText("", color.RGBA{R: 20, G: 20, B: 20, A: 255})
			txt.Alignment = fyne.TextAlignCenter
			r.rects = append(r.rects, rc)
			r.labels = append(r.labels, txt)
			added = append(added, rc, txt)
		}
		insertBefore(r.hGuide, added)
	}
}

func (r *boardRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.bg.Move(fyne.NewPos(0, 0))

	doc := r.bc.doc
	if doc == nil {
		for _, ln := range r.edges {
			ln.Hide()
		}
		for _, rc := range r.rects {
			rc.Hide()
		}
		for _, txt := range r.labels {
			txt.Hide()
		}
		r.hGuide.Hide()
		r.vGuide.Hide()
		r.sel.Hide()
		return
	}

	r.ensureVisuals(len(doc.Nodes), len(doc.Edges))
	idx := doc.Index()

	for i, e := range doc.Edges {
		ln := r.edges[i]
		from, okF := idx[e.From]
		to, okT := idx[e.To]
		if !okF || !okT {
			ln.Hide()
			continue
		}
		fb := from.Box()
		tb := to.Box()
		ln.Position1 = r.bc.toScreen(geometry.Pt{X: fb.X + fb.W/2, Y: fb.Y + fb.H/2})
		ln.Position2 = r.bc.toScreen(geometry.Pt{X: tb.X + tb.W/2, Y: tb.Y + tb.H/2})
		ln.Show()
		ln.Refresh()
	}
	for j := len(doc.Edges); j < len(r.edges); j++ {
		r.edges[j].Hide()
	}

	for i, n := range doc.Nodes {
		box := n.Box()
		p0 := r.bc.toScreen(box.Min())
		p1 := r.bc.toScreen(box.Max())
		rc := r.rects[i]
		rc.Show()
		rc.Resize(fyne.NewSize(p1.X-p0.X, p1.Y-p0.Y))
		rc.Move(p0)
		rc.Refresh()

		txt := r.labels[i]
		label := n.Label
		if label == "" {
			label = n.ID
		}
		txt.Text = label
		txt.TextSize = 12 * r.bc.zoom
		ts := txt.MinSize()
		txt.Show()
		txt.Move(fyne.NewPos((p0.X+p1.X)/2-ts.Width/2, (p0.Y+p1.Y)/2-ts.Height/2))
		txt.Refresh()
	}
	for j := len(doc.Nodes); j < len(r.rects); j++ {
		r.rects[j].Hide()
		r.labels[j].Hide()
	}

	// Helper lines for the active drag, projected through the view transform.
	r.hGuide.Hide()
	r.vGuide.Hide()
	m := r.bc.viewTransform()
	for _, seg := range snap.Segments(r.bc.ctrl.Guides(), doc.Nodes, r.bc.ctrl.DraggedID()) {
		s := seg.Transform(m)
		ln := r.hGuide
		if seg.Orientation == snap.Vertical {
			ln = r.vGuide
		}
		ln.Position1 = fyne.NewPos(s.From.X, s.From.Y)
		ln.Position2 = fyne.NewPos(s.To.X, s.To.Y)
		ln.Show()
		ln.Refresh()
	}

	if n, ok := idx[r.bc.selected]; ok {
		box := n.Box()
		p0 := r.bc.toScreen(box.Min())
		p1 := r.bc.toScreen(box.Max())
		r.sel.Show()
		r.sel.Resize(fyne.NewSize(p1.X-p0.X, p1.Y-p0.Y))
		r.sel.Move(p0)
		r.sel.Refresh()
	} else {
		r.sel.Hide()
	}
}
