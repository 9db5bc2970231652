package cellview

import (
	"strings"

	"github.com/gdamore/tcell/v3"
)

// Label displays read-only text. Long lines are word wrapped unless wrapping
// is turned off, in which case they are cut at the right edge.
type Label struct {
	*Box

	text      string
	style     tcell.Style
	alignment Alignment
	wrap      bool

	// Wrapped lines for wrappedWidth.
	wrapped      []string
	wrappedWidth int
}

// NewLabel returns a new label showing text.
func NewLabel(text string) *Label {
	l := &Label{
		Box:          NewBox(),
		text:         text,
		style:        tcell.StyleDefault.Foreground(Styles.PrimaryTextColor),
		alignment:    AlignmentLeft,
		wrap:         true,
		wrappedWidth: -1,
	}
	l.Box.SetDontClear(true)
	return l
}

// SetText sets the text.
func (l *Label) SetText(text string) *Label {
	if l.text != text {
		l.text = text
		l.wrappedWidth = -1
		l.MarkDirty()
	}
	return l
}

// GetText returns the text.
func (l *Label) GetText() string {
	return l.text
}

// SetTextStyle sets the style of the text.
func (l *Label) SetTextStyle(style tcell.Style) *Label {
	if l.style != style {
		l.style = style
		l.MarkDirty()
	}
	return l
}

// SetTextAlign sets the horizontal alignment of each line.
func (l *Label) SetTextAlign(alignment Alignment) *Label {
	if l.alignment != alignment {
		l.alignment = alignment
		l.MarkDirty()
	}
	return l
}

// SetWrap sets whether lines longer than the available width continue on the
// next line.
func (l *Label) SetWrap(wrap bool) *Label {
	if l.wrap != wrap {
		l.wrap = wrap
		l.wrappedWidth = -1
		l.MarkDirty()
	}
	return l
}

func (l *Label) lines(width int) []string {
	if l.wrappedWidth == width {
		return l.wrapped
	}
	l.wrappedWidth = width
	l.wrapped = l.wrapped[:0]
	for _, line := range strings.Split(l.text, "\n") {
		if !l.wrap || line == "" {
			l.wrapped = append(l.wrapped, line)
			continue
		}
		l.wrapped = append(l.wrapped, WordWrap(line, width)...)
	}
	return l.wrapped
}

// Height returns the number of rows needed at the given width.
func (l *Label) Height(width int) int {
	if width < 1 {
		return 1
	}
	return max(len(l.lines(width)), 1)
}

// Width returns the number of columns of the widest line.
func (l *Label) Width() int {
	width := 0
	for _, line := range strings.Split(l.text, "\n") {
		width = max(width, StringWidth(line))
	}
	return width
}

// Draw draws the label.
func (l *Label) Draw(screen tcell.Screen) {
	if !l.visible {
		return
	}
	l.DrawForSubclass(screen, l)

	x, y, width, height := l.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}
	for row, line := range l.lines(width) {
		if row >= height {
			break
		}
		PrintWithStyle(screen, strings.TrimRight(line, " "), x, y+row, width, l.alignment, l.style, true)
	}
}

var _ Primitive = &Label{}
