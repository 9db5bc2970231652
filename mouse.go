package cellview

import (
	"time"

	"github.com/gdamore/tcell/v3"
)

// DoubleClickInterval is the longest pause between two clicks that still
// counts as a double click.
var DoubleClickInterval = 500 * time.Millisecond

// MouseAction is what a primitive's MouseHandler is told the mouse did.
type MouseAction int16

const (
	MouseMove MouseAction = iota
	MouseLeftDown
	MouseLeftUp
	MouseLeftClick
	MouseLeftDoubleClick
	MouseMiddleDown
	MouseMiddleUp
	MouseMiddleClick
	MouseMiddleDoubleClick
	MouseRightDown
	MouseRightUp
	MouseRightClick
	MouseRightDoubleClick
	MouseScrollUp
	MouseScrollDown
	MouseScrollLeft
	MouseScrollRight
)

var buttonActions = []struct {
	button                  tcell.ButtonMask
	down, up, click, double MouseAction
}{
	{tcell.ButtonPrimary, MouseLeftDown, MouseLeftUp, MouseLeftClick, MouseLeftDoubleClick},
	{tcell.ButtonMiddle, MouseMiddleDown, MouseMiddleUp, MouseMiddleClick, MouseMiddleDoubleClick},
	{tcell.ButtonSecondary, MouseRightDown, MouseRightUp, MouseRightClick, MouseRightDoubleClick},
}

var wheelActions = []struct {
	button tcell.ButtonMask
	action MouseAction
}{
	{tcell.WheelUp, MouseScrollUp},
	{tcell.WheelDown, MouseScrollDown},
	{tcell.WheelLeft, MouseScrollLeft},
	{tcell.WheelRight, MouseScrollRight},
}

// mouseState turns the raw button masks reported by the terminal into
// presses, releases and clicks.
type mouseState struct {
	// Receives all mouse actions while set.
	capture Primitive

	x, y         int
	downX, downY int
	buttons      tcell.ButtonMask
	lastClick    time.Time
	now          func() time.Time
}

// translate reports every action event stands for. A release at the position
// of the matching press is also a click, or a double click if the previous
// click was recent enough.
func (m *mouseState) translate(event *tcell.EventMouse, fire func(MouseAction)) {
	now := time.Now
	if m.now != nil {
		now = m.now
	}

	x, y := event.Position()
	buttons := event.Buttons()
	changed := buttons ^ m.buttons
	stayed := x == m.downX && y == m.downY

	if x != m.x || y != m.y {
		m.x, m.y = x, y
		fire(MouseMove)
	}

	pressed := false
	for _, b := range buttonActions {
		switch {
		case changed&b.button == 0:
		case buttons&b.button != 0:
			pressed = true
			fire(b.down)
		default:
			fire(b.up)
			if !stayed {
				break
			}
			if t := now(); t.Sub(m.lastClick) > DoubleClickInterval {
				m.lastClick = t
				fire(b.click)
			} else {
				m.lastClick = time.Time{}
				fire(b.double)
			}
		}
	}

	for _, w := range wheelActions {
		if buttons&w.button != 0 {
			fire(w.action)
		}
	}

	m.buttons = buttons
	if pressed {
		m.downX, m.downY = x, y
	}
}
