// Command fsmcanvas is a terminal editor for finite-state-machine diagrams.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/fsm-canvas/pkg/canvas"
	"github.com/ha1tch/fsm-canvas/pkg/config"
	"github.com/ha1tch/fsm-canvas/pkg/diagram"
	"github.com/ha1tch/fsm-canvas/pkg/export"
	"github.com/ha1tch/fsm-canvas/pkg/interact"
	"github.com/ha1tch/fsm-canvas/pkg/ruler"
)

// Export cell size in pixels. Terminal cells are about twice as tall as wide.
const (
	exportCellWidth  = 10
	exportCellHeight = 20
)

// MessageType categorises status bar messages.
type MessageType int

const (
	MsgInfo MessageType = iota
	MsgError
	MsgSuccess
)

// Editor holds the terminal front end around one editing session.
type Editor struct {
	screen  tcell.Screen
	cfg     *config.Config
	session *canvas.Session
	machine *interact.Machine
	log     *slog.Logger

	message     string
	messageType MessageType

	// Viewport: diagram cell shown at the top-left of the screen
	offsetX int
	offsetY int

	edges []edgeLayout

	// Pointer tracking
	pressed     bool
	pressAt     cell
	pressTarget interact.Target
	lastAt      cell
	outside     bool
	clicks      clickTracker
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	level, _ := cfg.Level()

	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	reducer := canvas.Reducer(canvas.Reduce)
	if cfg.ActionLog {
		actions := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug}))
		sink := canvas.NewSlogSink(actions)
		reducer = canvas.WithLog(reducer, sink)
		logger.Info("action log enabled", "session", sink.Session())
	}

	session := canvas.NewSession(reducer)
	session.OnChange(func(m canvas.Model) {
		logger.Debug("model changed", "mode", m.Kind(), "states", len(m.States), "transitions", len(m.Transitions))
	})

	ed := &Editor{
		cfg:     cfg,
		session: session,
		machine: interact.NewMachine(session,
			interact.WithRuler(ruler.CellRuler{MinWidth: 9}),
			interact.WithFontSize(cfg.FontSize)),
		log:    logger,
		clicks: clickTracker{window: cfg.DoubleClick()},
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing screen: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	screen.Clear()
	ed.screen = screen

	// Restore the terminal before a contract violation reaches the user.
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			logger.Error("editor crashed", "panic", r)
			panic(r)
		}
	}()

	logger.Info("editor started", "grid", cfg.GridSize, "formats", cfg.ExportFormats)
	ed.run()
	screen.Fini()
}

func (ed *Editor) run() {
	for {
		ed.draw()
		ed.screen.Show()

		ev := ed.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			ed.screen.Sync()
		case *tcell.EventKey:
			if ed.handleKey(ev) {
				return
			}
		case *tcell.EventMouse:
			ed.handleMouse(ev)
		}
	}
}

func (ed *Editor) showMessage(msg string, msgType MessageType) {
	ed.message = msg
	ed.messageType = msgType
}

func (ed *Editor) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return true
	}

	if ed.session.Model().Kind() == canvas.KindEditing {
		ed.handleEditKey(ev)
		return false
	}

	switch ev.Key() {
	case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyDelete:
		ed.machine.Handle(interact.KeyDown{Key: interact.KeyBackspace})
	case tcell.KeyEscape:
		ed.machine.Handle(interact.KeyDown{Key: interact.KeyEscape})
		ed.message = ""
	case tcell.KeyCtrlE:
		ed.export()
	case tcell.KeyCtrlY:
		ed.copySVG()
	case tcell.KeyUp:
		ed.pan(0, -1)
	case tcell.KeyDown:
		ed.pan(0, 1)
	case tcell.KeyLeft:
		ed.pan(-2, 0)
	case tcell.KeyRight:
		ed.pan(2, 0)
	}
	return false
}

// handleEditKey feeds the inline label editor.
func (ed *Editor) handleEditKey(ev *tcell.EventKey) {
	mode, ok := ed.session.Model().Mode.(canvas.Editing)
	if !ok {
		return
	}
	draft := []rune(mode.Draft)

	switch ev.Key() {
	case tcell.KeyEnter:
		ed.machine.Handle(interact.TextCommit{Text: mode.Draft})
	case tcell.KeyEscape:
		ed.machine.Handle(interact.KeyDown{Key: interact.KeyEscape})
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(draft) > 0 {
			ed.machine.Handle(interact.TextChange{Text: string(draft[:len(draft)-1])})
		}
		// Also offered to the machine, which ignores it while editing.
		ed.machine.Handle(interact.KeyDown{Key: interact.KeyBackspace})
	case tcell.KeyRune:
		ed.machine.Handle(interact.TextChange{Text: string(append(draft, ev.Rune()))})
	}
}

func (ed *Editor) pan(dx, dy int) {
	ed.offsetX += dx
	ed.offsetY += dy
}

func (ed *Editor) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	_, h := ed.screen.Size()
	buttons := ev.Buttons()

	if y >= canvasHeight(h) {
		if !ed.outside {
			ed.outside = true
			ed.pressed = false
			ed.machine.Handle(interact.PointerLeave{})
		}
		return
	}
	ed.outside = false

	at := cell{x + ed.offsetX, y + ed.offsetY}
	p := at.point()
	doc := ed.session.Model().Document

	switch {
	case buttons&tcell.Button1 != 0 && !ed.pressed:
		ed.pressed = true
		ed.pressAt = at
		ed.pressTarget = classify(doc, ed.edges, at)
		ed.machine.Handle(interact.PointerDown{Target: ed.pressTarget, Point: p})

	case buttons&tcell.Button1 != 0:
		if at != ed.lastAt {
			ed.machine.Handle(interact.PointerMove{Point: p})
		}

	case ed.pressed:
		ed.pressed = false
		ed.machine.Handle(interact.PointerUp{Point: p})
		if at != ed.pressAt {
			break
		}
		ed.machine.Handle(interact.Click{Target: ed.pressTarget, Point: p})
		if ed.clicks.click(time.Now(), at) {
			// The click may have changed the document; classify afresh.
			doc = ed.session.Model().Document
			target := classify(doc, layoutEdges(doc), at)
			ed.machine.Handle(interact.DoubleClick{Target: target, Point: p})
		}

	default:
		if at != ed.lastAt {
			ed.machine.Handle(interact.PointerMove{Point: p})
		}
	}
	ed.lastAt = at
}

func (ed *Editor) exportOptions() export.Options {
	return export.Options{
		UnitWidth:  exportCellWidth,
		UnitHeight: exportCellHeight,
		Margin:     20,
		FontSize:   ed.cfg.FontSize,
		LabelSize:  ed.cfg.FontSize - 2,
	}
}

// export writes the diagram once per configured format.
func (ed *Editor) export() {
	doc := ed.session.Model().Document
	formats, err := ed.cfg.Formats()
	if err != nil {
		ed.showMessage(err.Error(), MsgError)
		return
	}

	stamp := time.Now().Format("20060102-150405")
	var written []string
	for _, f := range formats {
		path, err := ed.exportTo(f, doc, stamp)
		if err != nil {
			ed.log.Error("export failed", "format", f, "error", err)
			ed.showMessage(fmt.Sprintf("Export failed: %v", err), MsgError)
			return
		}
		written = append(written, filepath.Base(path))
	}
	ed.log.Info("exported", "files", written)
	ed.showMessage(fmt.Sprintf("Exported %v", written), MsgSuccess)
}

func (ed *Editor) exportTo(f export.Format, doc diagram.Document, stamp string) (path string, err error) {
	e, err := export.NewExporter(f, ed.exportOptions())
	if err != nil {
		return "", err
	}
	path = filepath.Join(ed.cfg.ExportDir, "fsmcanvas-"+stamp+e.Extension())
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	if err := e.Export(out, doc); err != nil {
		return "", err
	}
	return path, nil
}

func (ed *Editor) copySVG() {
	e, _ := export.NewExporter(export.FormatSVG, ed.exportOptions())
	svg, err := e.(*export.SVGExporter).RenderSVG(ed.session.Model().Document)
	if err != nil {
		ed.showMessage(err.Error(), MsgError)
		return
	}
	if err := clipboard.WriteAll(svg); err != nil {
		ed.log.Error("clipboard write failed", "error", err)
		ed.showMessage("Clipboard unavailable", MsgError)
		return
	}
	ed.showMessage("SVG copied", MsgSuccess)
}
