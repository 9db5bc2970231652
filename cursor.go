package cellview

// FocusModel tracks the focused row of a list.
type FocusModel interface {
	// FocusedIndex returns the focused index, or -1.
	FocusedIndex() int
	// Focus moves the focus to index. Negative values clear it.
	Focus(index int)
}

// SelectionModel tracks the selected row of a list.
type SelectionModel interface {
	// SelectedIndex returns the selected index, or -1.
	SelectedIndex() int
	// Select selects index. Negative values clear the selection.
	Select(index int)
	// ClearSelection removes the selection.
	ClearSelection()
}

// cursor is an index which is -1 when unset. Out of range indexes are kept
// as given and clamped by the owning list.
type cursor struct {
	index   int
	changed func(index int)
}

func (c *cursor) set(index int) {
	if index < -1 {
		index = -1
	}
	if c.index == index {
		return
	}
	c.index = index
	if c.changed != nil {
		c.changed(index)
	}
}

// FocusCursor is the default single-index [FocusModel].
type FocusCursor struct {
	cursor
}

// NewFocusCursor returns a focus model without a focused index.
func NewFocusCursor() *FocusCursor {
	return &FocusCursor{cursor{index: -1}}
}

// FocusedIndex returns the focused index, or -1.
func (f *FocusCursor) FocusedIndex() int {
	return f.index
}

// Focus moves the focus to index.
func (f *FocusCursor) Focus(index int) {
	f.set(index)
}

// SetChangedFunc sets a handler called whenever the focused index changes.
func (f *FocusCursor) SetChangedFunc(handler func(index int)) *FocusCursor {
	f.changed = handler
	return f
}

// SelectionCursor is the default single-selection [SelectionModel].
type SelectionCursor struct {
	cursor
}

// NewSelectionCursor returns a selection model without a selected index.
func NewSelectionCursor() *SelectionCursor {
	return &SelectionCursor{cursor{index: -1}}
}

// SelectedIndex returns the selected index, or -1.
func (s *SelectionCursor) SelectedIndex() int {
	return s.index
}

// Select selects index.
func (s *SelectionCursor) Select(index int) {
	s.set(index)
}

// ClearSelection removes the selection.
func (s *SelectionCursor) ClearSelection() {
	s.set(-1)
}

// SetChangedFunc sets a handler called whenever the selected index changes.
func (s *SelectionCursor) SetChangedFunc(handler func(index int)) *SelectionCursor {
	s.changed = handler
	return s
}
