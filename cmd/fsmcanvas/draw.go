package main

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/ha1tch/fsm-canvas/pkg/canvas"
	"github.com/ha1tch/fsm-canvas/pkg/diagram"
)

// Styles
var (
	styleDefault    = tcell.StyleDefault
	styleGrid       = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleState      = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleTrans      = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	styleDelete     = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleLine       = tcell.StyleDefault.Foreground(tcell.NewRGBColor(200, 162, 200)) // Lilac
	styleDragging   = tcell.StyleDefault.Background(tcell.ColorPurple).Foreground(tcell.ColorWhite)
	styleInput      = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	styleStatus     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleMsgInfo    = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorNavy)
	styleMsgError   = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorNavy).Bold(true)
	styleMsgSuccess = tcell.StyleDefault.Foreground(tcell.ColorLime).Background(tcell.ColorNavy)
	styleHelp       = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// canvasHeight leaves two rows for the help and status bars.
func canvasHeight(h int) int {
	return h - 2
}

func (ed *Editor) draw() {
	ed.screen.Clear()
	w, h := ed.screen.Size()
	model := ed.session.Model()
	ch := canvasHeight(h)
	ed.edges = layoutEdges(model.Document)

	ed.drawGrid(w, ch)
	ed.drawTransitions(model, w, ch)
	if dl, ok := model.Mode.(canvas.DrawingLine); ok {
		ed.drawPreviewLine(dl, w, ch)
	}
	ed.drawStates(model, w, ch)
	ed.drawStatusBar(model, w, h)
}

// set draws r at diagram cell c if it is visible.
func (ed *Editor) set(c cell, r rune, style tcell.Style, w, h int) {
	x, y := c.x-ed.offsetX, c.y-ed.offsetY
	if x < 0 || x >= w || y < 0 || y >= h {
		return
	}
	ed.screen.SetContent(x, y, r, nil, style)
}

func (ed *Editor) setString(c cell, s string, style tcell.Style, w, h int) {
	for _, r := range s {
		ed.set(c, r, style, w, h)
		c.x += runewidth.RuneWidth(r)
	}
}

func (ed *Editor) drawGrid(w, h int) {
	g := ed.cfg.GridSize
	if g < 2 {
		return
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy := x+ed.offsetX, y+ed.offsetY
			if mod(dx, g) == 0 && mod(dy, g) == 0 {
				ed.screen.SetContent(x, y, '·', nil, styleGrid)
			}
		}
	}
}

func mod(a, b int) int {
	return ((a % b) + b) % b
}

// lineRune picks a glyph for the step from a to b.
func lineRune(a, b cell) rune {
	dx, dy := b.x-a.x, b.y-a.y
	switch {
	case dy == 0:
		return '─'
	case dx == 0:
		return '│'
	case dx == dy:
		return '╲'
	default:
		return '╱'
	}
}

// arrowRune points along the last step of a line.
func arrowRune(a, b cell) rune {
	dx, dy := b.x-a.x, b.y-a.y
	if abs(dx) >= abs(dy) {
		if dx < 0 {
			return '←'
		}
		return '→'
	}
	if dy < 0 {
		return '↑'
	}
	return '↓'
}

func (ed *Editor) drawPath(pts []cell, style tcell.Style, arrow bool, w, h int) {
	for i := 1; i < len(pts); i++ {
		ed.set(pts[i-1], lineRune(pts[i-1], pts[i]), style, w, h)
	}
	if n := len(pts); n >= 2 && arrow {
		ed.set(pts[n-1], arrowRune(pts[n-2], pts[n-1]), style, w, h)
	}
}

func (ed *Editor) drawTransitions(model canvas.Model, w, h int) {
	style := styleTrans
	if model.Kind() == canvas.KindDeleting {
		style = styleDelete
	}
	editing, _ := model.Mode.(canvas.Editing)

	for _, e := range ed.edges {
		ed.drawPath(e.points, style, true, w, h)

		text := strings.ReplaceAll(e.transition.Text, "\n", " ")
		labelStyle := style
		if editing.Target == canvas.TransitionTarget(e.transition.ID) {
			text, labelStyle = editing.Draft+"_", styleInput
		}
		ed.setString(e.label, text, labelStyle, w, h)
	}
}

func (ed *Editor) drawPreviewLine(dl canvas.DrawingLine, w, h int) {
	pts := linePoints(toCell(dl.Origin()), toCell(dl.Position))
	ed.drawPath(pts, styleLine, false, w, h)
}

func (ed *Editor) drawStates(model canvas.Model, w, h int) {
	base := styleState
	if model.Kind() == canvas.KindDeleting {
		base = styleDelete
	}
	drag, dragging := model.Mode.(canvas.Dragging)
	editing, _ := model.Mode.(canvas.Editing)

	for _, s := range model.States {
		style := base
		text := s.Text
		if dragging && s.ID == drag.State.ID {
			s = s.WithCoords(drag.DraggedCoords())
			style = styleDragging
		}
		if editing.Target == canvas.StateTarget(s.ID) {
			text = editing.Draft + "_"
		}
		ed.drawStateBox(s, text, style, w, h)
	}
}

func (ed *Editor) drawStateBox(s diagram.State, text string, style tcell.Style, w, h int) {
	x0, y0, x1, y1 := stateRect(s)

	ed.set(cell{x0, y0}, '┌', style, w, h)
	ed.set(cell{x1, y0}, '┐', style, w, h)
	ed.set(cell{x0, y1}, '└', style, w, h)
	ed.set(cell{x1, y1}, '┘', style, w, h)
	for x := x0 + 1; x < x1; x++ {
		ed.set(cell{x, y0}, '─', style, w, h)
		ed.set(cell{x, y1}, '─', style, w, h)
	}
	for y := y0 + 1; y < y1; y++ {
		ed.set(cell{x0, y}, '│', style, w, h)
		ed.set(cell{x1, y}, '│', style, w, h)
		for x := x0 + 1; x < x1; x++ {
			ed.set(cell{x, y}, ' ', styleDefault, w, h)
		}
	}

	for i, line := range strings.Split(text, "\n") {
		if y0+1+i >= y1 {
			break
		}
		start, _ := textSpan(s, line)
		if start <= x0 {
			start = x0 + 1
		}
		ed.setString(cell{start, y0 + 1 + i}, line, style, w, h)
	}
}

func (ed *Editor) drawStatusBar(model canvas.Model, w, h int) {
	y := h - 1
	for x := 0; x < w; x++ {
		ed.screen.SetContent(x, y, ' ', nil, styleStatus)
	}

	info := ed.docInfo(model)
	ed.drawString(1, y, info, styleStatus)

	mode := model.Kind().String()
	ed.drawString(w/2-len(mode)/2, y, mode, styleStatus)

	if ed.message != "" {
		style := styleMsgInfo
		switch ed.messageType {
		case MsgError:
			style = styleMsgError
		case MsgSuccess:
			style = styleMsgSuccess
		}
		ed.drawString(w-runewidth.StringWidth(ed.message)-2, y, ed.message, style)
	}

	y = h - 2
	for x := 0; x < w; x++ {
		ed.screen.SetContent(x, y, ' ', nil, styleDefault)
	}
	ed.drawString(1, y, helpString(model.Kind()), styleHelp)
}

func (ed *Editor) docInfo(model canvas.Model) string {
	return fmt.Sprintf("%d states, %d transitions", len(model.States), len(model.Transitions))
}

func (ed *Editor) drawString(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		ed.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

func helpString(k canvas.ModeKind) string {
	switch k {
	case canvas.KindDragging:
		return "Release:Drop  Esc:Cancel"
	case canvas.KindDrawingLine:
		return "Click border:Connect  Esc:Cancel"
	case canvas.KindDeleting:
		return "Click state/transition:Delete  Esc:Cancel"
	case canvas.KindEditing:
		return "Type text  Enter:Confirm  Esc:Cancel"
	default:
		return "DblClick:Add/Edit  Drag:Move  Click border:Line  Bksp:Delete  Arrows:Pan  ^E:Export  ^Y:Copy SVG  ^C:Quit"
	}
}
