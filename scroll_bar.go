package cellview

import "github.com/gdamore/tcell/v3"

// The thumb moves in steps of an eighth of a cell.
const eighths = 8

// Partial block glyphs for a thumb covering 1/8 to 7/8 of a cell, anchored at
// the end (tail) or the start (head) of the cell.
var (
	verticalTail   = [eighths - 1]string{"▁", "▂", "▃", "▄", "▅", "▆", "▇"}
	verticalHead   = [eighths - 1]string{"▔", "🮂", "🮃", "▀", "🮄", "🮅", "🮆"}
	horizontalTail = [eighths - 1]string{"▕", "🮇", "🮈", "▐", "🮉", "🮊", "🮋"}
	horizontalHead = [eighths - 1]string{"▏", "▎", "▍", "▌", "▋", "▊", "▉"}
)

// ScrollBar shows which part of a list's rows is visible. It draws nothing
// while all rows fit.
type ScrollBar struct {
	*Box

	vertical bool
	// All lengths count rows.
	content, viewport, offset int
}

func NewScrollBar() *ScrollBar {
	return &ScrollBar{Box: NewBox(), vertical: true}
}

func (s *ScrollBar) SetVertical(vertical bool) *ScrollBar {
	if s.vertical != vertical {
		s.vertical = vertical
		s.MarkDirty()
	}
	return s
}

// SetLengths sets the number of rows in total and in view.
func (s *ScrollBar) SetLengths(content, viewport int) *ScrollBar {
	content, viewport = max(content, 0), max(viewport, 0)
	if s.content != content || s.viewport != viewport {
		s.content, s.viewport = content, viewport
		s.MarkDirty()
	}
	return s
}

// SetOffset sets the index of the first row in view.
func (s *ScrollBar) SetOffset(offset int) *ScrollBar {
	if offset = max(offset, 0); s.offset != offset {
		s.offset = offset
		s.MarkDirty()
	}
	return s
}

// thumb returns the thumb's extent along a track of the given number of
// cells, in eighths of a cell.
func (s *ScrollBar) thumb(cells int) (start, end int) {
	track := cells * eighths
	viewport := min(max(s.viewport, 1), s.content)
	hidden := s.content - viewport
	if track == 0 || hidden <= 0 {
		return 0, track
	}
	size := min(max(track*viewport/s.content, eighths), track)
	start = (track - size) * min(s.offset, hidden) / hidden
	return start, start + size
}

// Direction returns -1 for a position on the track before the thumb, 1 for
// one after it and 0 for the thumb itself or a position off the bar.
func (s *ScrollBar) Direction(x, y int) int {
	if !s.IsVisible() || !s.InRect(x, y) || s.content <= max(s.viewport, 1) {
		return 0
	}
	bx, by, width, height := s.GetInnerRect()
	cells, pos := height, y-by
	if !s.vertical {
		cells, pos = width, x-bx
	}
	start, end := s.thumb(cells)
	switch {
	case (pos+1)*eighths <= start:
		return -1
	case pos*eighths >= end:
		return 1
	}
	return 0
}

// glyph returns what to draw in cell given the thumb extent.
func (s *ScrollBar) glyph(cell, start, end int) (string, tcell.Style) {
	from, to := max(start, cell*eighths), min(end, (cell+1)*eighths)
	style := tcell.StyleDefault.Foreground(Styles.GraphicsColor)
	covered := to - from
	switch {
	case covered <= 0:
		if s.vertical {
			return BoxDrawingsLightVertical, style.Dim(true)
		}
		return BoxDrawingsLightHorizontal, style.Dim(true)
	case covered == eighths:
		return BlockFullBlock, style
	}

	head := from == cell*eighths
	switch {
	case s.vertical && head:
		return verticalHead[covered-1], style
	case s.vertical:
		return verticalTail[covered-1], style
	case head:
		return horizontalHead[covered-1], style
	default:
		return horizontalTail[covered-1], style
	}
}

func (s *ScrollBar) Draw(screen tcell.Screen) {
	if !s.IsVisible() {
		return
	}
	s.DrawForSubclass(screen, s)

	x, y, width, height := s.GetInnerRect()
	cells, dx, dy := height, 0, 1
	if !s.vertical {
		cells, dx, dy = width, 1, 0
	}
	if cells <= 0 || s.content <= max(s.viewport, 1) {
		return
	}

	start, end := s.thumb(cells)
	for cell := range cells {
		glyph, style := s.glyph(cell, start, end)
		screen.Put(x+cell*dx, y+cell*dy, glyph, style)
	}
}

var _ Primitive = &ScrollBar{}
