package cellview

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v3"
)

// Capacity of the queue of functions waiting to run on the event loop.
const updatesQueueSize = 100

type queuedUpdate struct {
	f    func()
	done chan struct{}
}

// Application owns the terminal and runs the event loop. Key and paste events
// go to the root primitive, mouse events are translated into [MouseAction]s
// first. The commands returned by the handlers are executed by the loop, and
// the screen is redrawn whenever the root reports itself dirty.
//
//	if err := cellview.NewApplication().SetRoot(list).Run(); err != nil {
//		log.Fatal(err)
//	}
type Application struct {
	mu sync.Mutex

	screen tcell.Screen
	root   Primitive
	focus  Primitive

	// Functions from other goroutines, run on the event loop.
	updates chan queuedUpdate

	mouse mouseState

	// Clear the whole screen before the next draw.
	forceRedraw bool
	// Paste events are collected here between paste start and end.
	paste   strings.Builder
	pasting bool
}

// NewApplication returns an application without screen and root.
func NewApplication() *Application {
	return &Application{
		updates: make(chan queuedUpdate, updatesQueueSize),
	}
}

// SetScreen makes the application draw onto screen instead of the terminal.
// It has no effect once a screen is set.
func (a *Application) SetScreen(screen tcell.Screen) *Application {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.screen == nil {
		a.screen = screen
		a.forceRedraw = true
	}
	return a
}

// SetRoot replaces the primitive filling the screen and gives it focus.
func (a *Application) SetRoot(root Primitive) *Application {
	a.mu.Lock()
	a.root = root
	a.forceRedraw = true
	a.mu.Unlock()

	a.SetFocus(root)
	return a
}

// SetFocus blurs the focused primitive and focuses p. Containers receiving
// focus may pass it on to one of their children.
func (a *Application) SetFocus(p Primitive) *Application {
	a.mu.Lock()
	previous := a.focus
	a.focus = p
	if a.screen != nil {
		a.screen.HideCursor()
	}
	a.mu.Unlock()

	if previous != nil {
		previous.Blur()
	}
	if p != nil {
		p.Focus(func(p Primitive) {
			a.SetFocus(p)
		})
	}
	return a
}

// GetFocus returns the focused primitive, or nil.
func (a *Application) GetFocus() Primitive {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.focus
}

// Run initializes the terminal unless a screen was set and processes events
// until [Application.Stop] is called or a [QuitCommand] is executed. While it
// runs, the application owns stdin and stdout, so logs belong in a file.
func (a *Application) Run() (err error) {
	screen, err := a.initScreen()
	if err != nil {
		return err
	}

	// Leave the terminal usable when a handler panics. No lock is held while
	// the screen or a handler runs.
	defer func() {
		if p := recover(); p != nil {
			a.Stop()
			panic(p)
		}
	}()

	events := screen.EventQ()
	a.draw(true)
	Logger.Debug().Msg("event loop started")
	defer func() {
		Logger.Debug().Err(err).Msg("event loop stopped")
	}()

	for {
		select {
		case event := <-events:
			// The queue is closed by Fini.
			if event == nil {
				return nil
			}
			if stop := a.handleEvent(event); stop != nil {
				a.Stop()
				return stop
			}
		case update := <-a.updates:
			update.f()
			close(update.done)
		}
	}
}

func (a *Application) initScreen() (tcell.Screen, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.screen != nil {
		return a.screen, nil
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	screen.EnablePaste()
	a.screen = screen
	return screen, nil
}

// handleEvent processes one terminal event. It returns an error only for
// terminal failures, which end the loop.
func (a *Application) handleEvent(event tcell.Event) error {
	switch event := event.(type) {
	case *tcell.EventKey:
		a.handleKey(event)
	case *tcell.EventPaste:
		a.handlePaste(event)
	case *tcell.EventResize:
		a.mu.Lock()
		a.forceRedraw = true
		a.mu.Unlock()
		a.draw(false)
	case *tcell.EventMouse:
		a.handleMouse(event)
	case *tcell.EventError:
		Logger.Error().Err(event).Msg("terminal error")
		return event
	}
	return nil
}

func (a *Application) handleKey(event *tcell.EventKey) {
	if a.pasting {
		switch event.Key() {
		case tcell.KeyRune:
			a.paste.WriteString(event.Str())
		case tcell.KeyEnter:
			a.paste.WriteByte('\n')
		case tcell.KeyTab:
			a.paste.WriteByte('\t')
		}
		return
	}

	root := a.currentRoot()
	if root == nil || !root.HasFocus() {
		return
	}
	a.execute(root.InputHandler(event))
}

func (a *Application) handlePaste(event *tcell.EventPaste) {
	switch {
	case event.Start():
		a.pasting = true
		a.paste.Reset()
	case event.End():
		a.pasting = false
		root := a.currentRoot()
		if root != nil && root.HasFocus() && a.paste.Len() > 0 {
			a.execute(root.PasteHandler(a.paste.String()))
		}
	}
}

func (a *Application) handleMouse(event *tcell.EventMouse) {
	var cmd Command
	a.mouse.translate(event, func(action MouseAction) {
		target := a.mouse.capture
		if target == nil {
			target = a.currentRoot()
		}
		if target == nil {
			return
		}
		var next Command
		a.mouse.capture, next = target.MouseHandler(action, event)
		cmd = AppendCommand(cmd, next)
	})
	a.execute(cmd)
}

func (a *Application) currentRoot() Primitive {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.root
}

// execute runs the side effects of cmd and redraws what became dirty.
func (a *Application) execute(cmd Command) {
	if cmd == nil {
		return
	}
	if a.executeCommand(cmd) {
		a.draw(false)
	}
}

// executeCommand returns false once the application stopped.
func (a *Application) executeCommand(cmd Command) bool {
	switch c := cmd.(type) {
	case BatchCommand:
		for _, item := range c {
			if !a.executeCommand(item) {
				return false
			}
		}
	case QuitCommand:
		Logger.Debug().Msg("quit requested")
		a.Stop()
		return false
	case SetFocusCommand:
		if c.Target != nil && a.GetFocus() != c.Target {
			a.SetFocus(c.Target)
		}
	case RedrawCommand, nil:
	default:
		Logger.Warn().Str("command", fmt.Sprintf("%T", cmd)).Msg("unknown command")
	}
	return true
}

// Stop releases the terminal, which closes its event queue and makes Run
// return.
func (a *Application) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.screen == nil {
		return
	}
	a.screen.Fini()
	a.screen = nil
}

// Draw redraws the root on the event loop. Call it from goroutines other than
// the one running the loop.
func (a *Application) Draw() *Application {
	return a.QueueUpdate(func() {
		a.draw(true)
	})
}

// draw lays the root out over the whole screen and draws it if anything
// changed since the last frame or force is set.
func (a *Application) draw(force bool) {
	a.mu.Lock()
	screen, root := a.screen, a.root
	clearScreen := a.forceRedraw
	a.forceRedraw = false
	a.mu.Unlock()

	if screen == nil || root == nil {
		return
	}

	width, height := screen.Size()
	root.SetRect(0, 0, width, height)
	if !force && !clearScreen && !root.IsDirty() {
		return
	}

	// Show only writes changed cells, so the screen is cleared for forced
	// redraws only.
	if clearScreen {
		screen.Clear()
	}
	root.Draw(screen)
	root.MarkClean()
	screen.Show()
}

// QueueUpdate runs f on the event loop and waits for it to finish. Primitives
// and observed item sequences must only be changed from the event loop, so
// other goroutines go through this function. The screen is redrawn afterwards
// if f changed anything visible.
func (a *Application) QueueUpdate(f func()) *Application {
	done := make(chan struct{})
	a.updates <- queuedUpdate{
		f: func() {
			f()
			a.draw(false)
		},
		done: done,
	}
	<-done
	return a
}

// QueueUpdateDraw works like [Application.QueueUpdate] but always redraws.
func (a *Application) QueueUpdateDraw(f func()) *Application {
	return a.QueueUpdate(func() {
		f()
		a.draw(true)
	})
}
