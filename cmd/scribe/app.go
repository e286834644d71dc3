package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/scribe-editor/scribe/internal/config"
	"github.com/scribe-editor/scribe/internal/editor"
	"github.com/scribe-editor/scribe/internal/engine/buffer"
	"github.com/scribe-editor/scribe/internal/engine/history"
	"github.com/scribe-editor/scribe/internal/highlight"
	"github.com/scribe-editor/scribe/internal/log"
	"github.com/scribe-editor/scribe/internal/lsp"
	"github.com/scribe-editor/scribe/internal/watch"
)

// tickInterval paces background work: at most one LSP result is drained
// per tick, and disk-change refreshes piggyback on the same loop.
const tickInterval = 50 * time.Millisecond

type app struct {
	screen  tcell.Screen
	ed      *editor.Editor
	buf     *buffer.Buffer
	cfg     config.Config
	logger  *log.Logger
	theme   *highlight.Theme
	lspc    *lsp.Client
	watcher *watch.Watcher
	uri     lsp.DocumentURI

	topLine int // first visible line
	quit    bool
}

func newApp(path string, cfg config.Config, logger *log.Logger) (*app, error) {
	var tok highlight.Tokenizer = highlight.None
	if filepath.Ext(path) == ".go" {
		tok = highlight.NewGoTokenizer()
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		// Opening a new file: create it empty so the buffer binds to it.
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			return nil, fmt.Errorf("create %s: %w", path, err)
		}
	}
	buf, err := buffer.Load(path, buffer.WithTokenizer(tok))
	if err != nil {
		return nil, err
	}

	ed := editor.New(buf,
		editor.WithTabWidth(cfg.TabWidth),
		editor.WithCommentToken(cfg.CommentToken(path)),
		editor.WithLog(history.NewLog(cfg.UndoDebounce())),
	)

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("open screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}

	a := &app{
		screen: screen,
		ed:     ed,
		buf:    buf,
		cfg:    cfg,
		logger: logger,
		theme:  highlight.DefaultTheme(),
		uri:    lsp.URIFromPath(path),
	}

	if cmd := cfg.LSPCommand(path); len(cmd) > 0 {
		c, err := lsp.Start(cmd, logger.WithField("server", cmd[0]))
		if err != nil {
			logger.Warnf("lsp: %v", err)
		} else {
			a.lspc = c
			c.DidOpen(a.uri, strings.TrimPrefix(filepath.Ext(path), "."), buf.Text())
		}
	}

	if w, err := watch.New(0, logger); err != nil {
		logger.Warnf("watch: %v", err)
	} else {
		a.watcher = w
		if err := w.Add(path); err != nil {
			logger.Warnf("watch %s: %v", path, err)
		}
	}

	return a, nil
}

// Run drives the single-threaded loop: one event or one tick's worth of
// background work is fully processed before the next is accepted.
func (a *app) Run() error {
	events := make(chan tcell.Event, 8)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	a.draw()
	for !a.quit {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := a.handleEvent(ev); err != nil {
				return err
			}
		case path := <-a.watchEvents():
			a.refresh(path)
		case <-ticker.C:
			a.drainLSP()
		}
		a.draw()
	}
	return nil
}

func (a *app) watchEvents() <-chan string {
	if a.watcher == nil {
		return nil
	}
	return a.watcher.Events()
}

func (a *app) handleEvent(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlQ {
			a.quit = true
			return nil
		}
		if ev.Key() == tcell.KeyCtrlG {
			a.requestDefinition()
			return nil
		}
		kev, ok := decodeKey(ev)
		if !ok {
			return nil
		}
		if err := a.ed.Handle(kev); err != nil {
			a.logger.Errorf("action: %v", err)
		}
	}
	return nil
}

func (a *app) requestDefinition() {
	if a.lspc == nil {
		return
	}
	a.lspc.Definition(a.uri, lsp.PositionFor(a.buf, a.ed.Cursors().Main().Pos))
}

// drainLSP applies at most one queued language-server result.
func (a *app) drainLSP() {
	if a.lspc == nil {
		return
	}
	res, ok := a.lspc.Drain()
	if !ok {
		return
	}
	if res.URI != a.uri {
		// Jump lands in another file; this frontend edits one document.
		a.logger.Infof("definition in %s:%d", lsp.PathFromURI(res.URI), res.Line+1)
		return
	}
	a.ed.JumpTo(lsp.OffsetFor(a.buf, lsp.Position{Line: res.Line, Character: res.Col}))
}

func (a *app) refresh(path string) {
	if path != a.buf.Path() {
		return
	}
	if err := a.buf.RefreshFromDisk(); err != nil {
		a.logger.Warnf("refresh: %v", err)
	}
	a.ed.Cursors().ClampAll(a.buf.Len())
}

func (a *app) Close() {
	if a.watcher != nil {
		a.watcher.Close()
	}
	if a.lspc != nil {
		if err := a.lspc.Close(); err != nil {
			a.logger.Debugf("lsp close: %v", err)
		}
	}
	a.screen.Fini()
}

// decodeKey translates a tcell key event to the editor's input model.
func decodeKey(ev *tcell.EventKey) (editor.KeyEvent, bool) {
	mods := ev.Modifiers()
	out := editor.KeyEvent{
		Shift: mods&tcell.ModShift != 0,
		Ctrl:  mods&tcell.ModCtrl != 0,
		Alt:   mods&tcell.ModAlt != 0,
	}

	switch ev.Key() {
	case tcell.KeyRune:
		out.Key, out.Rune = editor.KeyRune, ev.Rune()
	case tcell.KeyLeft:
		out.Key = editor.KeyLeft
	case tcell.KeyRight:
		out.Key = editor.KeyRight
	case tcell.KeyUp:
		out.Key = editor.KeyUp
	case tcell.KeyDown:
		out.Key = editor.KeyDown
	case tcell.KeyHome:
		out.Key = editor.KeyHome
	case tcell.KeyEnd:
		out.Key = editor.KeyEnd
	case tcell.KeyPgUp:
		out.Key = editor.KeyPageUp
	case tcell.KeyPgDn:
		out.Key = editor.KeyPageDown
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		out.Key = editor.KeyBackspace
	case tcell.KeyDelete:
		out.Key = editor.KeyDelete
	case tcell.KeyEnter:
		out.Key = editor.KeyEnter
	case tcell.KeyTab:
		out.Key = editor.KeyTab
	case tcell.KeyBacktab:
		out.Key, out.Shift = editor.KeyTab, true
	case tcell.KeyEscape:
		out.Key = editor.KeyEscape
	case tcell.KeyF3:
		out.Key = editor.KeyF3
	case tcell.KeyCtrlZ:
		out.Key, out.Rune, out.Ctrl = editor.KeyRune, 'z', true
	case tcell.KeyCtrlY:
		out.Key, out.Rune, out.Ctrl = editor.KeyRune, 'y', true
	case tcell.KeyCtrlS:
		out.Key, out.Rune, out.Ctrl = editor.KeyRune, 's', true
	case tcell.KeyCtrlC:
		out.Key, out.Rune, out.Ctrl = editor.KeyRune, 'c', true
	case tcell.KeyCtrlX:
		out.Key, out.Rune, out.Ctrl = editor.KeyRune, 'x', true
	case tcell.KeyCtrlV:
		out.Key, out.Rune, out.Ctrl = editor.KeyRune, 'v', true
	case tcell.KeyCtrlA:
		out.Key, out.Rune, out.Ctrl = editor.KeyRune, 'a', true
	case tcell.KeyCtrlL:
		out.Key, out.Rune, out.Ctrl = editor.KeyRune, 'l', true
	case tcell.KeyCtrlD:
		out.Key, out.Rune, out.Ctrl = editor.KeyRune, 'd', true
	case tcell.KeyCtrlUnderscore:
		out.Key, out.Rune, out.Ctrl = editor.KeyRune, '/', true
	default:
		return out, false
	}
	return out, true
}
