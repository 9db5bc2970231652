package cellview

import (
	"sync/atomic"

	"github.com/gdamore/tcell/v3"
)

// Box is the base of every primitive in this package. It owns the rectangle,
// the focus flag and the redraw state, and draws a background, an optional
// border and an optional title. Embedders draw their content into
// [Box.GetInnerRect] after calling [Box.DrawForSubclass].
type Box struct {
	x, y, width, height int

	background tcell.Color
	// Keep the screen content below the box instead of filling it.
	dontClear bool
	visible   bool
	hasFocus  bool

	borders   Borders
	borderSet BorderSet
	title     string

	dirty  atomic.Bool
	parent atomic.Pointer[Box]
}

// NewBox returns a visible, borderless box.
func NewBox() *Box {
	b := &Box{
		width:      15,
		height:     10,
		visible:    true,
		background: Styles.PrimitiveBackgroundColor,
		borderSet:  BorderSetPlain(),
	}
	b.dirty.Store(true)
	return b
}

// GetRect returns the box's position and size.
func (b *Box) GetRect() (int, int, int, int) {
	return b.x, b.y, b.width, b.height
}

// SetRect moves and resizes the box.
func (b *Box) SetRect(x, y, width, height int) {
	if b.x == x && b.y == y && b.width == width && b.height == height {
		return
	}
	b.x, b.y, b.width, b.height = x, y, width, height
	b.MarkDirty()
}

// GetInnerRect returns the area left for content once the border and the
// title row are taken away. Width and height are never negative.
func (b *Box) GetInnerRect() (int, int, int, int) {
	x, y, width, height := b.GetRect()
	if b.title != "" || b.borders.Has(BordersTop) {
		y, height = y+1, height-1
	}
	if b.borders.Has(BordersBottom) {
		height--
	}
	if b.borders.Has(BordersLeft) {
		x, width = x+1, width-1
	}
	if b.borders.Has(BordersRight) {
		width--
	}
	return x, y, max(width, 0), max(height, 0)
}

// InRect reports whether the screen position lies within the box.
func (b *Box) InRect(x, y int) bool {
	return x >= b.x && x < b.x+b.width && y >= b.y && y < b.y+b.height
}

// SetVisible shows or hides the box. Hidden boxes keep their state but draw
// nothing.
func (b *Box) SetVisible(visible bool) *Box {
	if b.visible != visible {
		b.visible = visible
		b.MarkDirty()
	}
	return b
}

func (b *Box) IsVisible() bool {
	return b.visible
}

func (b *Box) SetBackgroundColor(color tcell.Color) *Box {
	if b.background != color {
		b.background = color
		b.MarkDirty()
	}
	return b
}

// SetDontClear keeps whatever is on the screen below the box instead of
// filling it with the background color.
func (b *Box) SetDontClear(dontClear bool) *Box {
	if b.dontClear != dontClear {
		b.dontClear = dontClear
		b.MarkDirty()
	}
	return b
}

func (b *Box) GetBorders() Borders {
	return b.borders
}

func (b *Box) SetBorders(borders Borders) *Box {
	if b.borders != borders {
		b.borders = borders
		b.MarkDirty()
	}
	return b
}

func (b *Box) SetBorderSet(set BorderSet) *Box {
	if b.borderSet != set {
		b.borderSet = set
		b.MarkDirty()
	}
	return b
}

func (b *Box) GetTitle() string {
	return b.title
}

// SetTitle sets the text centered in the top row. A title takes up the top
// row even without a border.
func (b *Box) SetTitle(title string) *Box {
	if b.title != title {
		b.title = title
		b.MarkDirty()
	}
	return b
}

func (b *Box) InputHandler(event *tcell.EventKey) Command {
	return nil
}

func (b *Box) PasteHandler(text string) Command {
	return nil
}

// MouseHandler asks for focus when the box is pressed.
func (b *Box) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	if action == MouseLeftDown && b.InRect(event.Position()) {
		return nil, SetFocusCommand{Target: b}
	}
	return nil, nil
}

func (b *Box) Focus(delegate func(p Primitive)) {
	if !b.hasFocus {
		b.hasFocus = true
		b.MarkDirty()
	}
}

func (b *Box) Blur() {
	if b.hasFocus {
		b.hasFocus = false
		b.MarkDirty()
	}
}

func (b *Box) HasFocus() bool {
	return b.hasFocus
}

// Draw draws the box's frame.
func (b *Box) Draw(screen tcell.Screen) {
	if b.visible {
		b.DrawForSubclass(screen, b)
	}
}

// DrawForSubclass draws the frame of the primitive p which embeds the box.
// The border is highlighted while p has focus.
func (b *Box) DrawForSubclass(screen tcell.Screen, p Primitive) {
	if b.width <= 0 || b.height <= 0 {
		return
	}

	if !b.dontClear {
		fill := tcell.StyleDefault.Background(b.background)
		for y := b.y; y < b.y+b.height; y++ {
			for x := b.x; x < b.x+b.width; x++ {
				screen.Put(x, y, " ", fill)
			}
		}
	}

	style := tcell.StyleDefault.Foreground(Styles.BorderColor).Background(b.background)
	if p.HasFocus() {
		style = style.Foreground(Styles.FocusedBorderColor)
	}
	b.drawBorder(screen, style)
	b.drawTitle(screen)
}

func (b *Box) drawBorder(screen tcell.Screen, style tcell.Style) {
	if b.borders == BordersNone || b.width < 2 || b.height < 2 {
		return
	}
	left, top := b.x, b.y
	right, bottom := b.x+b.width-1, b.y+b.height-1
	set := b.borderSet

	for x := left + 1; x < right; x++ {
		if b.borders.Has(BordersTop) {
			screen.Put(x, top, set.Top, style)
		}
		if b.borders.Has(BordersBottom) {
			screen.Put(x, bottom, set.Bottom, style)
		}
	}
	for y := top + 1; y < bottom; y++ {
		if b.borders.Has(BordersLeft) {
			screen.Put(left, y, set.Left, style)
		}
		if b.borders.Has(BordersRight) {
			screen.Put(right, y, set.Right, style)
		}
	}

	corners := []struct {
		x, y  int
		sides Borders
		glyph string
	}{
		{left, top, BordersTop | BordersLeft, set.TopLeft},
		{right, top, BordersTop | BordersRight, set.TopRight},
		{left, bottom, BordersBottom | BordersLeft, set.BottomLeft},
		{right, bottom, BordersBottom | BordersRight, set.BottomRight},
	}
	for _, c := range corners {
		if b.borders.Has(c.sides) {
			screen.Put(c.x, c.y, c.glyph, style)
		}
	}
}

// drawTitle centers the title between the corners and ends it with an
// ellipsis when it does not fit.
func (b *Box) drawTitle(screen tcell.Screen) {
	room := b.width - 2
	if b.title == "" || room < 2 {
		return
	}
	style := tcell.StyleDefault.Foreground(Styles.TitleColor)
	if StringWidth(b.title) <= room {
		PrintWithStyle(screen, b.title, b.x+1, b.y, room, AlignmentCenter, style, true)
		return
	}
	PrintWithStyle(screen, b.title, b.x+1, b.y, room-1, AlignmentLeft, style, true)
	PrintWithStyle(screen, SemigraphicsHorizontalEllipsis, b.x+room, b.y, 1, AlignmentLeft, style, true)
}

var _ Primitive = &Box{}
