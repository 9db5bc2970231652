package cellview

import "github.com/gdamore/tcell/v3"

// Primitive is anything the application can lay out, draw and route events
// to. Most implementations embed a [Box].
type Primitive interface {
	// Draw renders the primitive within its rectangle. Only a focused
	// primitive may show the terminal cursor.
	Draw(screen tcell.Screen)

	GetRect() (int, int, int, int)
	SetRect(x, y, width, height int)

	// InputHandler handles a key event while the primitive has focus. A nil
	// command means the key was not consumed.
	InputHandler(event *tcell.EventKey) Command
	// MouseHandler handles a mouse event. A non-nil capture receives all
	// following mouse events until it returns a nil capture itself.
	MouseHandler(action MouseAction, event *tcell.EventMouse) (capture Primitive, cmd Command)
	PasteHandler(text string) Command

	// HasFocus also reports true when a child of the primitive has focus.
	HasFocus() bool
	// Focus gives the primitive focus. Containers hand it on by calling
	// delegate with one of their children.
	Focus(delegate func(p Primitive))
	Blur()

	IsDirty() bool
	// MarkClean is called after the primitive has been drawn.
	MarkClean()
}
