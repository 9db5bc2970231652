package cellview

// Cell is a reusable view owned by a [Viewport]. The viewport binds a cell to
// an index with UpdateIndex before showing it and measures it along the
// scrolling axis.
type Cell interface {
	Primitive

	// Index returns the index the cell is bound to, or -1.
	Index() int
	// UpdateIndex binds the cell to index and refreshes its content. It is
	// also called again with an unchanged index when the viewport is asked to
	// reconfigure its cells.
	UpdateIndex(index int)
	// Height returns the number of rows the cell needs at the given width.
	Height(width int) int
	// Width returns the number of columns the cell needs at the given height.
	Width(height int) int
}

// Viewport presents a window onto a sequence of cellCount cells using a
// bounded pool of [Cell] values.
//
// Methods returning a Cell return nil when there is no such cell. All methods
// must be called from the goroutine running the application's event loop.
type Viewport interface {
	Primitive

	// SetCellCount sets the number of cells the viewport scrolls through.
	SetCellCount(count int)
	// CellCount returns the number of cells.
	CellCount() int

	// RebuildCells discards the binding of every cell so all visible cells are
	// bound afresh on the next layout.
	RebuildCells()
	// ReconfigureCells refreshes the content of the visible cells without
	// discarding them.
	ReconfigureCells()
	// RecreateCells throws away all cells so new ones are obtained from the
	// cell factory.
	RecreateCells()

	// ScrollTo scrolls the minimal amount needed to show the cell at index.
	ScrollTo(index int)
	// ScrollToCell scrolls the minimal amount needed to show cell.
	ScrollToCell(cell Cell)
	// SetPosition scrolls to a relative position in [0, 1].
	SetPosition(position float64)
	// Position returns the current relative position in [0, 1].
	Position() float64

	// FirstVisibleCell returns the first cell that is at least partially
	// visible.
	FirstVisibleCell() Cell
	// LastVisibleCell returns the last cell that is at least partially
	// visible.
	LastVisibleCell() Cell
	// FirstVisibleCellWithinViewport returns the first fully visible cell.
	FirstVisibleCellWithinViewport() Cell
	// LastVisibleCellWithinViewport returns the last fully visible cell.
	LastVisibleCellWithinViewport() Cell
	// ShowAsFirst scrolls so cell starts at the leading edge.
	ShowAsFirst(cell Cell)
	// ShowAsLast scrolls so cell ends at the trailing edge.
	ShowAsLast(cell Cell)
	// CellAt returns the visible cell covering the screen position, if any.
	CellAt(x, y int) Cell
	// ScrollLines scrolls by delta rows (or columns when horizontal).
	ScrollLines(delta int)

	// SetVisible shows or hides the viewport.
	SetVisible(visible bool)
	// IsVisible returns whether the viewport is shown.
	IsVisible() bool
	// SetVertical selects the scrolling axis.
	SetVertical(vertical bool)
	// SetFocusTraversable sets whether presses on the viewport's scroll bar
	// ask for the owning control to be focused.
	SetFocusTraversable(traversable bool)
	// PressScrollBar handles a mouse press at the screen position. It reports
	// whether the press hit a scroll bar and whether the owning control should
	// take the focus for it.
	PressScrollBar(x, y int) (hit, focus bool)
	// SetFixedCellLength makes all cells length rows (or columns) long.
	// Zero or less lets every cell measure itself.
	SetFixedCellLength(length int)
	// SetCreateCell sets the cell factory.
	SetCreateCell(create func() Cell)
}
