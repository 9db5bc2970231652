package cellview

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/gdamore/tcell/v3"
	"github.com/rivo/uniseg"
)

type capturedCell struct {
	text  string
	style tcell.Style
	// Continuation cells hold the right half of a wide grapheme.
	cont bool
}

// CaptureScreen is an offscreen tcell.Screen which records what primitives
// draw. Besides drawing it supports the event queue, so an [Application] can
// run on it with events written to [CaptureScreen.EventQ]. Methods outside of
// that subset, like mouse and paste control, are not available.
type CaptureScreen struct {
	tcell.Screen

	events   chan tcell.Event
	finiOnce sync.Once

	width, height int
	cells         []capturedCell
	defaultStyle  tcell.Style

	cursorX, cursorY int
	cursorVisible    bool
}

// NewCaptureScreen returns a blank screen of the given size.
func NewCaptureScreen(width, height int) *CaptureScreen {
	s := &CaptureScreen{
		events: make(chan tcell.Event, 16),
		width:  max(width, 0),
		height: max(height, 0),
	}
	s.cells = make([]capturedCell, s.width*s.height)
	s.Clear()
	return s
}

func (s *CaptureScreen) Size() (int, int) {
	return s.width, s.height
}

func (s *CaptureScreen) Show() {}

func (s *CaptureScreen) Sync() {}

func (s *CaptureScreen) Init() error {
	return nil
}

// Fini closes the event queue. Nothing may be written to it afterwards.
func (s *CaptureScreen) Fini() {
	s.finiOnce.Do(func() {
		close(s.events)
	})
}

func (s *CaptureScreen) EventQ() chan tcell.Event {
	return s.events
}

func (s *CaptureScreen) Clear() {
	s.Fill(' ', s.defaultStyle)
}

func (s *CaptureScreen) Fill(r rune, style tcell.Style) {
	for i := range s.cells {
		s.cells[i] = capturedCell{text: string(r), style: style}
	}
}

func (s *CaptureScreen) SetStyle(style tcell.Style) {
	s.defaultStyle = style
}

func (s *CaptureScreen) ShowCursor(x int, y int) {
	s.cursorX, s.cursorY, s.cursorVisible = x, y, true
}

func (s *CaptureScreen) HideCursor() {
	s.cursorVisible = false
}

// Cursor returns the cursor position and whether it is visible.
func (s *CaptureScreen) Cursor() (x, y int, visible bool) {
	return s.cursorX, s.cursorY, s.cursorVisible
}

func (s *CaptureScreen) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.width && y < s.height
}

func (s *CaptureScreen) SetContent(x int, y int, primary rune, combining []rune, style tcell.Style) {
	s.Put(x, y, string(primary)+string(combining), style)
}

func (s *CaptureScreen) Get(x, y int) (str string, style tcell.Style, width int) {
	if !s.inBounds(x, y) {
		return "", tcell.StyleDefault, 1
	}
	c := s.cells[y*s.width+x]
	return c.text, c.style, max(uniseg.StringWidth(c.text), 1)
}

func (s *CaptureScreen) Put(x int, y int, str string, style tcell.Style) (string, int) {
	if str == "" {
		return "", 0
	}

	cluster, remain, width, _ := uniseg.FirstGraphemeClusterInString(str, -1)
	if cluster == "" {
		r, size := utf8.DecodeRuneInString(str)
		if size == 0 {
			return "", 0
		}
		cluster, remain, width = string(r), str[size:], 1
	}
	if width <= 0 {
		return remain, 0
	}
	if !s.inBounds(x, y) {
		return remain, width
	}

	// Wide graphemes at the right edge are clipped like terminals do.
	if width > 1 && x == s.width-1 {
		cluster, width = " ", 1
	}

	s.cells[y*s.width+x] = capturedCell{text: cluster, style: style}
	for i := 1; i < width && x+i < s.width; i++ {
		s.cells[y*s.width+x+i] = capturedCell{style: style, cont: true}
	}
	return remain, width
}

func (s *CaptureScreen) PutStr(x int, y int, str string) {
	s.PutStrStyled(x, y, str, s.defaultStyle)
}

func (s *CaptureScreen) PutStrStyled(x int, y int, str string, style tcell.Style) {
	for str != "" && x < s.width {
		remain, width := s.Put(x, y, str, style)
		if width <= 0 || remain == str {
			return
		}
		x += width
		str = remain
	}
}

// Line returns the text of row y with trailing blanks removed.
func (s *CaptureScreen) Line(y int) string {
	if y < 0 || y >= s.height {
		return ""
	}
	var b strings.Builder
	for x := 0; x < s.width; x++ {
		c := s.cells[y*s.width+x]
		if !c.cont {
			b.WriteString(c.text)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// Lines returns the text of all rows.
func (s *CaptureScreen) Lines() []string {
	lines := make([]string, s.height)
	for y := range lines {
		lines[y] = s.Line(y)
	}
	return lines
}

// StyleAt returns the style of the cell at x, y.
func (s *CaptureScreen) StyleAt(x, y int) tcell.Style {
	_, style, _ := s.Get(x, y)
	return style
}
