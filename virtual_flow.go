package cellview

import (
	"github.com/gdamore/tcell/v3"
	"github.com/rivo/uniseg"
)

// VirtualFlow is the default [Viewport]. It lays out only the cells that
// intersect its rectangle and recycles cells which scrolled out of view.
//
// The scroll state is the index of the leading cell plus the number of rows
// (columns when horizontal) of that cell scrolled out of view. Layout is
// computed eagerly after every scroll operation so the visible-cell queries
// always describe what the next Draw will show.
type VirtualFlow struct {
	*Box

	createCell func() Cell

	cellCount        int
	vertical         bool
	focusTraversable bool
	fixedCellLength  int

	// Index of the leading cell.
	top int
	// Rows of the leading cell scrolled out of view.
	offset int
	// Scroll to the end on the next layout.
	pendingEnd bool
	// The last value set or derived for Position.
	position float64

	// Cells currently laid out, ordered by index.
	cells []flowCell
	// Cells not bound to a visible position.
	pile []Cell
	// Cell used to measure indexes which are not laid out.
	accumCell Cell
	// Laid out cells available for reuse while a layout is in progress.
	spare map[int]Cell

	needsLayout      bool
	needsReconfigure bool
	lastRect         flowRect
	// The extent across the scrolling axis available to cells.
	breadth int

	scrollBar      *ScrollBar
	showScrollBar  bool
	scrollBarShown bool
}

type flowCell struct {
	cell   Cell
	index  int
	pos    int // Leading edge relative to the viewport start. Negative when scrolled out.
	length int
}

type flowRect struct {
	x      int
	y      int
	width  int
	height int
}

// NewVirtualFlow returns an empty vertical flow. Cells are obtained from the
// function set with [VirtualFlow.SetCreateCell].
func NewVirtualFlow() *VirtualFlow {
	v := &VirtualFlow{
		Box:              NewBox(),
		vertical:         true,
		focusTraversable: true,
		showScrollBar:    true,
		scrollBar:        NewScrollBar(),
		needsLayout:      true,
	}
	BindParent(v.scrollBar, v.Box)
	return v
}

// SetCreateCell sets the cell factory and discards all existing cells.
func (v *VirtualFlow) SetCreateCell(create func() Cell) {
	v.createCell = create
	v.RecreateCells()
}

// SetCellCount sets the number of cells.
func (v *VirtualFlow) SetCellCount(count int) {
	count = max(count, 0)
	if v.cellCount != count {
		v.cellCount = count
		v.invalidate()
	}
}

// CellCount returns the number of cells.
func (v *VirtualFlow) CellCount() int {
	return v.cellCount
}

// RebuildCells moves every laid out cell to the pile. Each cell shown by the
// next layout is bound to its index again.
func (v *VirtualFlow) RebuildCells() {
	for _, c := range v.cells {
		v.pile = append(v.pile, c.cell)
	}
	v.cells = nil
	v.invalidate()
}

// ReconfigureCells rebinds the laid out cells to their current indexes on the
// next layout and measures them again.
func (v *VirtualFlow) ReconfigureCells() {
	v.needsReconfigure = true
	v.invalidate()
}

// RecreateCells drops all cells. New ones are obtained from the factory.
func (v *VirtualFlow) RecreateCells() {
	for _, c := range v.cells {
		UnbindParent(c.cell, v.Box)
	}
	for _, c := range v.pile {
		UnbindParent(c, v.Box)
	}
	v.cells = nil
	v.pile = nil
	v.accumCell = nil
	v.invalidate()
}

// SetVertical selects the scrolling axis.
func (v *VirtualFlow) SetVertical(vertical bool) {
	if v.vertical != vertical {
		v.vertical = vertical
		v.scrollBar.SetVertical(vertical)
		v.invalidate()
	}
}

// IsVertical returns whether the flow scrolls vertically.
func (v *VirtualFlow) IsVertical() bool {
	return v.vertical
}

// SetFocusTraversable sets whether presses on the scroll bar ask for the
// owning control to be focused.
func (v *VirtualFlow) SetFocusTraversable(traversable bool) {
	v.focusTraversable = traversable
}

// FocusTraversable returns the value set with SetFocusTraversable.
func (v *VirtualFlow) FocusTraversable() bool {
	return v.focusTraversable
}

// PressScrollBar pages towards a press on the scroll bar's track. It reports
// whether the press hit the bar and, if so, whether the owning control should
// take the focus.
func (v *VirtualFlow) PressScrollBar(x, y int) (hit, focus bool) {
	v.layout()
	if !v.scrollBarShown || !v.scrollBar.InRect(x, y) {
		return false, false
	}
	if direction := v.scrollBar.Direction(x, y); direction != 0 {
		v.ScrollLines(direction * v.viewportLength())
	}
	return true, v.focusTraversable
}

// SetFixedCellLength makes every cell length rows long (columns when
// horizontal). Values of zero or less let cells measure themselves.
func (v *VirtualFlow) SetFixedCellLength(length int) {
	length = max(length, 0)
	if v.fixedCellLength != length {
		v.fixedCellLength = length
		v.invalidate()
	}
}

// SetVisible shows or hides the flow.
func (v *VirtualFlow) SetVisible(visible bool) {
	v.Box.SetVisible(visible)
}

// SetScrollBarVisible controls whether a scroll bar is drawn when the cells
// do not fit.
func (v *VirtualFlow) SetScrollBarVisible(show bool) *VirtualFlow {
	if v.showScrollBar != show {
		v.showScrollBar = show
		v.invalidate()
	}
	return v
}

// ScrollTo scrolls the minimal amount needed to make the cell at index fully
// visible. Nothing happens if it already is.
func (v *VirtualFlow) ScrollTo(index int) {
	if v.cellCount <= 0 {
		return
	}
	index = min(max(index, 0), v.cellCount-1)
	v.layout()

	length := v.viewportLength()
	for _, c := range v.cells {
		if c.index != index {
			continue
		}
		if c.pos >= 0 && c.pos+c.length <= length {
			return
		}
		if c.pos < 0 {
			v.setScroll(index, 0)
			return
		}
		break
	}
	if index <= v.top {
		v.setScroll(index, 0)
		return
	}
	v.showAsLast(index)
}

// ScrollToCell scrolls to the index cell is bound to.
func (v *VirtualFlow) ScrollToCell(cell Cell) {
	if cell == nil || cell.Index() < 0 {
		return
	}
	v.ScrollTo(cell.Index())
}

// ShowAsFirst scrolls so that cell starts at the leading edge of the flow.
func (v *VirtualFlow) ShowAsFirst(cell Cell) {
	if cell == nil || cell.Index() < 0 || v.cellCount <= 0 {
		return
	}
	v.setScroll(min(cell.Index(), v.cellCount-1), 0)
}

// ShowAsLast scrolls so that cell ends at the trailing edge of the flow.
func (v *VirtualFlow) ShowAsLast(cell Cell) {
	if cell == nil || cell.Index() < 0 || v.cellCount <= 0 {
		return
	}
	v.layout()
	v.showAsLast(min(cell.Index(), v.cellCount-1))
}

func (v *VirtualFlow) showAsLast(index int) {
	length := v.viewportLength()
	total := 0
	for i := index; i >= 0; i-- {
		total += v.measureIndex(i)
		if total >= length {
			v.setScroll(i, total-length)
			return
		}
	}
	v.setScroll(0, 0)
}

// SetPosition scrolls to a relative position. 0 shows the first cell at the
// leading edge, 1 shows the last cell at the trailing edge.
func (v *VirtualFlow) SetPosition(position float64) {
	position = min(max(position, 0), 1)
	if v.cellCount <= 0 {
		v.position = 0
		return
	}
	if position >= 1 {
		v.top, v.offset = v.cellCount-1, 0
		v.pendingEnd = true
		v.invalidate()
		v.layout()
		v.position = 1
		return
	}

	target := position * float64(v.cellCount)
	top := min(int(target), v.cellCount-1)
	v.layout()
	offset := int((target - float64(top)) * float64(v.measureIndex(top)))
	v.top, v.offset = top, offset
	v.pendingEnd = false
	v.invalidate()
	v.layout()
	v.position = position
}

// Position returns the relative scroll position.
func (v *VirtualFlow) Position() float64 {
	return v.position
}

// ScrollLines scrolls by delta rows, or columns when horizontal. Negative
// values scroll towards the first cell.
func (v *VirtualFlow) ScrollLines(delta int) {
	if v.cellCount <= 0 || delta == 0 {
		return
	}
	v.layout()
	top, offset := v.top, v.offset+delta
	for offset < 0 && top > 0 {
		top--
		offset += v.measureIndex(top)
	}
	v.setScroll(top, max(offset, 0))
}

// FirstVisibleCell returns the first cell which is at least partially
// visible.
func (v *VirtualFlow) FirstVisibleCell() Cell {
	v.layout()
	for _, c := range v.cells {
		if c.pos+c.length > 0 {
			return c.cell
		}
	}
	return nil
}

// LastVisibleCell returns the last cell which is at least partially visible.
func (v *VirtualFlow) LastVisibleCell() Cell {
	v.layout()
	length := v.viewportLength()
	for i := len(v.cells) - 1; i >= 0; i-- {
		if v.cells[i].pos < length {
			return v.cells[i].cell
		}
	}
	return nil
}

// FirstVisibleCellWithinViewport returns the first fully visible cell.
func (v *VirtualFlow) FirstVisibleCellWithinViewport() Cell {
	v.layout()
	length := v.viewportLength()
	for _, c := range v.cells {
		if c.pos >= 0 && c.pos+c.length <= length {
			return c.cell
		}
	}
	return nil
}

// LastVisibleCellWithinViewport returns the last fully visible cell.
func (v *VirtualFlow) LastVisibleCellWithinViewport() Cell {
	v.layout()
	length := v.viewportLength()
	for i := len(v.cells) - 1; i >= 0; i-- {
		c := v.cells[i]
		if c.pos >= 0 && c.pos+c.length <= length {
			return c.cell
		}
	}
	return nil
}

// VisibleCells returns the laid out cells in index order.
func (v *VirtualFlow) VisibleCells() []Cell {
	v.layout()
	cells := make([]Cell, 0, len(v.cells))
	for _, c := range v.cells {
		cells = append(cells, c.cell)
	}
	return cells
}

// CellAt returns the visible cell covering the given screen position.
func (v *VirtualFlow) CellAt(x, y int) Cell {
	v.layout()
	for _, c := range v.cells {
		cx, cy, width, height := c.cell.GetRect()
		if x < cx || x >= cx+width || y < cy || y >= cy+height {
			continue
		}
		if v.inContent(x, y) {
			return c.cell
		}
	}
	return nil
}

func (v *VirtualFlow) inContent(x, y int) bool {
	r := v.lastRect
	width, height := r.width, r.height
	if v.vertical {
		width = v.breadth
	} else {
		height = v.breadth
	}
	return x >= r.x && x < r.x+width && y >= r.y && y < r.y+height
}

func (v *VirtualFlow) invalidate() {
	v.needsLayout = true
	v.MarkDirty()
}

func (v *VirtualFlow) setScroll(top, offset int) {
	v.top, v.offset = top, offset
	v.pendingEnd = false
	v.invalidate()
	v.layout()
	v.updatePosition()
}

func (v *VirtualFlow) updatePosition() {
	if v.cellCount <= 0 || len(v.cells) == 0 {
		v.position = 0
		return
	}
	if v.top == 0 && v.offset == 0 {
		v.position = 0
		return
	}
	last := v.cells[len(v.cells)-1]
	if last.index == v.cellCount-1 && last.pos+last.length <= v.viewportLength() {
		v.position = 1
		return
	}
	first := v.cells[0]
	v.position = (float64(v.top) + float64(v.offset)/float64(max(first.length, 1))) / float64(v.cellCount)
}

// axis splits a width and height into the length along the scrolling axis
// and the breadth across it.
func (v *VirtualFlow) axis(width, height int) (length, breadth int) {
	if v.vertical {
		return height, width
	}
	return width, height
}

func (v *VirtualFlow) viewportLength() int {
	length, _ := v.axis(v.lastRect.width, v.lastRect.height)
	return length
}

func (v *VirtualFlow) measure(cell Cell) int {
	if v.fixedCellLength > 0 {
		return v.fixedCellLength
	}
	var length int
	if v.vertical {
		length = cell.Height(v.breadth)
	} else {
		length = cell.Width(v.breadth)
	}
	return max(length, 1)
}

// measureIndex returns the length of the cell at index, binding the
// measuring cell if no laid out cell shows that index.
func (v *VirtualFlow) measureIndex(index int) int {
	if v.fixedCellLength > 0 {
		return v.fixedCellLength
	}
	if cell, ok := v.spare[index]; ok {
		return v.measure(cell)
	}
	for _, c := range v.cells {
		if c.index == index {
			return c.length
		}
	}
	if v.accumCell == nil {
		if v.createCell == nil {
			return 1
		}
		v.accumCell = v.createCell()
		if v.accumCell == nil {
			return 1
		}
	}
	v.accumCell.UpdateIndex(index)
	return v.measure(v.accumCell)
}

// takeCell returns a cell bound to index, preferring the cell which showed
// the index before.
func (v *VirtualFlow) takeCell(index int) Cell {
	if cell, ok := v.spare[index]; ok {
		delete(v.spare, index)
		if v.needsReconfigure {
			cell.UpdateIndex(index)
		}
		return cell
	}

	var cell Cell
	if n := len(v.pile); n > 0 {
		cell = v.pile[n-1]
		v.pile = v.pile[:n-1]
	} else if v.createCell != nil {
		cell = v.createCell()
		if cell == nil {
			return nil
		}
		BindParent(cell, v.Box)
	} else {
		return nil
	}
	cell.UpdateIndex(index)
	return cell
}

// placeCells fills the viewport starting at the leading cell.
func (v *VirtualFlow) placeCells(length int) []flowCell {
	for v.offset > 0 && v.top < v.cellCount-1 {
		l := v.measureIndex(v.top)
		if v.offset < l {
			break
		}
		v.offset -= l
		v.top++
	}

	var cells []flowCell
	pos := -v.offset
	for i := v.top; i < v.cellCount && pos < length; i++ {
		cell := v.takeCell(i)
		if cell == nil {
			break
		}
		l := v.measure(cell)
		cells = append(cells, flowCell{cell: cell, index: i, pos: pos, length: l})
		pos += l
	}
	return cells
}

func (v *VirtualFlow) releaseCells(cells []flowCell) {
	for _, c := range cells {
		v.spare[c.index] = c.cell
	}
}

// fill places cells and clamps the scroll state so no blank space is left
// after the last cell unless all cells fit.
func (v *VirtualFlow) fill(length int) []flowCell {
	for {
		cells := v.placeCells(length)
		if len(cells) == 0 {
			return cells
		}
		last := cells[len(cells)-1]
		if last.index == v.cellCount-1 && last.pos+last.length < length && (v.top > 0 || v.offset > 0) {
			top, offset := v.lastScrollState(length)
			if top != v.top || offset != v.offset {
				v.top, v.offset = top, offset
				v.releaseCells(cells)
				continue
			}
		}
		return cells
	}
}

// lastScrollState returns the scroll state showing the last cell at the
// trailing edge.
func (v *VirtualFlow) lastScrollState(length int) (top, offset int) {
	total := 0
	for i := v.cellCount - 1; i >= 0; i-- {
		total += v.measureIndex(i)
		if total >= length {
			return i, total - length
		}
	}
	return 0, 0
}

func (v *VirtualFlow) overflows(cells []flowCell, length int) bool {
	if v.top > 0 || v.offset > 0 {
		return true
	}
	if len(cells) == 0 {
		return false
	}
	last := cells[len(cells)-1]
	return last.index < v.cellCount-1 || last.pos+last.length > length
}

func (v *VirtualFlow) layout() {
	x, y, width, height := v.GetInnerRect()
	rect := flowRect{x: x, y: y, width: width, height: height}
	if !v.needsLayout && rect == v.lastRect {
		return
	}
	v.lastRect = rect
	v.needsLayout = false

	v.spare = make(map[int]Cell, len(v.cells))
	v.releaseCells(v.cells)
	v.cells = nil
	defer func() {
		for _, cell := range v.spare {
			v.pile = append(v.pile, cell)
		}
		v.spare = nil
		v.needsReconfigure = false
	}()

	length, breadth := v.axis(width, height)
	v.breadth = breadth
	v.scrollBarShown = false
	if v.cellCount <= 0 || length <= 0 || breadth <= 0 {
		v.top, v.offset = 0, 0
		v.pendingEnd = false
		return
	}

	v.top = min(max(v.top, 0), v.cellCount-1)
	v.offset = max(v.offset, 0)
	if v.pendingEnd {
		v.top, v.offset = v.lastScrollState(length)
		v.pendingEnd = false
	}

	cells := v.fill(length)
	if v.showScrollBar && breadth > 1 && v.overflows(cells, length) {
		v.scrollBarShown = true
		v.breadth = breadth - 1
		if v.fixedCellLength <= 0 {
			v.releaseCells(cells)
			cells = v.fill(length)
		}
	}
	v.cells = cells

	for _, c := range cells {
		if v.vertical {
			c.cell.SetRect(x, y+c.pos, v.breadth, c.length)
		} else {
			c.cell.SetRect(x+c.pos, y, c.length, v.breadth)
		}
	}

	if v.scrollBarShown {
		if v.vertical {
			v.scrollBar.SetRect(x+width-1, y, 1, height)
		} else {
			v.scrollBar.SetRect(x, y+height-1, width, 1)
		}
		within := 0
		for _, c := range cells {
			if c.pos >= 0 && c.pos+c.length <= length {
				within++
			}
		}
		v.scrollBar.SetLengths(v.cellCount, max(within, 1))
		v.scrollBar.SetOffset(v.top)
	}
}

// Draw lays out and draws the visible cells.
func (v *VirtualFlow) Draw(screen tcell.Screen) {
	if !v.visible {
		return
	}
	v.DrawForSubclass(screen, v)
	v.layout()

	r := v.lastRect
	width, height := r.width, r.height
	if v.vertical {
		width = v.breadth
	} else {
		height = v.breadth
	}
	clipped := newClippedScreen(screen, r.x, r.y, width, height)
	for _, c := range v.cells {
		c.cell.Draw(clipped)
	}
	if v.scrollBarShown {
		v.scrollBar.Draw(screen)
	}
}

// IsDirty returns whether the flow or one of its visible cells needs redraw.
func (v *VirtualFlow) IsDirty() bool {
	if v.Box.IsDirty() || v.scrollBar.IsDirty() {
		return true
	}
	for _, c := range v.cells {
		if c.cell.IsDirty() {
			return true
		}
	}
	return false
}

// MarkClean marks the flow and its visible cells as clean.
func (v *VirtualFlow) MarkClean() {
	v.Box.MarkClean()
	v.scrollBar.MarkClean()
	for _, c := range v.cells {
		c.cell.MarkClean()
	}
}

var _ Viewport = &VirtualFlow{}

// clippedScreen drops all output outside of its rectangle.
type clippedScreen struct {
	tcell.Screen
	x      int
	y      int
	width  int
	height int
}

func newClippedScreen(screen tcell.Screen, x, y, width, height int) *clippedScreen {
	return &clippedScreen{
		Screen: screen,
		x:      x,
		y:      y,
		width:  width,
		height: height,
	}
}

func (s *clippedScreen) inBounds(x, y int) bool {
	return x >= s.x && x < s.x+s.width && y >= s.y && y < s.y+s.height
}

func (s *clippedScreen) SetContent(x int, y int, primary rune, combining []rune, style tcell.Style) {
	if !s.inBounds(x, y) {
		return
	}
	s.Screen.SetContent(x, y, primary, combining, style)
}

func (s *clippedScreen) Put(x int, y int, str string, style tcell.Style) (string, int) {
	if !s.inBounds(x, y) {
		return str, 0
	}
	return s.Screen.Put(x, y, str, style)
}

func (s *clippedScreen) PutStr(x int, y int, str string) {
	s.PutStrStyled(x, y, str, tcell.StyleDefault)
}

func (s *clippedScreen) PutStrStyled(x int, y int, str string, style tcell.Style) {
	if y < s.y || y >= s.y+s.height {
		return
	}

	gr := uniseg.NewGraphemes(str)
	for gr.Next() {
		cluster := gr.Str()
		width := max(uniseg.StringWidth(cluster), 1)
		if x >= s.x+s.width {
			return
		}
		if x >= s.x && x+width <= s.x+s.width {
			s.Screen.Put(x, y, cluster, style)
		}
		x += width
	}
}

func (s *clippedScreen) ShowCursor(x int, y int) {
	if !s.inBounds(x, y) {
		s.Screen.ShowCursor(-1, -1)
		return
	}
	s.Screen.ShowCursor(x, y)
}
