package cellview

// FocusPrevious scrolls the focused row into view after the focus moved up.
func (c *ListController[T]) FocusPrevious() {
	c.showFocused()
}

// FocusNext scrolls the focused row into view after the focus moved down.
func (c *ListController[T]) FocusNext() {
	c.showFocused()
}

func (c *ListController[T]) showFocused() {
	fm := c.list.focus
	if fm == nil {
		return
	}
	c.viewport.ScrollTo(fm.FocusedIndex())
}

// SelectPrevious scrolls the selected row into view after the selection
// moved up.
func (c *ListController[T]) SelectPrevious() {
	sm := c.list.selection
	if sm == nil {
		return
	}
	pos := sm.SelectedIndex()
	c.viewport.ScrollTo(pos)

	// Fallback for rows which could not be scrolled into view, e.g. when the
	// viewport has no size yet.
	cell := c.viewport.FirstVisibleCell()
	if cell == nil || pos < cell.Index() {
		c.viewport.SetPosition(c.relativePosition(pos))
	}
}

// SelectNext scrolls the selected row into view after the selection moved
// down.
func (c *ListController[T]) SelectNext() {
	sm := c.list.selection
	if sm == nil {
		return
	}
	pos := sm.SelectedIndex()
	c.viewport.ScrollTo(pos)

	cell := c.viewport.LastVisibleCell()
	if cell == nil || cell.Index() < pos {
		c.viewport.SetPosition(c.relativePosition(pos))
	}
}

// MoveToFirst scrolls to the first row.
func (c *ListController[T]) MoveToFirst() {
	c.viewport.ScrollTo(0)
	c.viewport.SetPosition(0)
}

// MoveToLast scrolls to the last row.
func (c *ListController[T]) MoveToLast() {
	c.viewport.ScrollTo(c.itemCount - 1)
	c.viewport.SetPosition(1)
}

// PageUp returns the index a page up from anchor moves to, or -1 if no row is
// fully visible. If the first fully visible row is the selected or focused
// anchor row, the viewport first scrolls up by a page so that row ends up at
// the trailing edge. The returned row is scrolled into view.
//
// anchor must be the current selected (or focused) index.
func (c *ListController[T]) PageUp(anchor int) int {
	first := c.viewport.FirstVisibleCellWithinViewport()
	if first == nil {
		return -1
	}

	target := first.Index()
	if c.selectedOrFocused(first) && target == anchor {
		c.viewport.ShowAsLast(first)
		if cell := c.viewport.FirstVisibleCellWithinViewport(); cell != nil {
			first = cell
		}
		target = first.Index()
	}

	c.viewport.ScrollToCell(first)
	c.logger.Debug().Int("anchor", anchor).Int("target", target).Msg("page up")
	return target
}

// PageDown returns the index a page down from anchor moves to, or -1 if no
// row is fully visible. It mirrors [ListController.PageUp].
func (c *ListController[T]) PageDown(anchor int) int {
	last := c.viewport.LastVisibleCellWithinViewport()
	if last == nil {
		return -1
	}

	target := last.Index()
	if c.selectedOrFocused(last) && target == anchor {
		c.viewport.ShowAsFirst(last)
		if cell := c.viewport.LastVisibleCellWithinViewport(); cell != nil {
			last = cell
		}
		target = last.Index()
	}

	c.viewport.ScrollToCell(last)
	c.logger.Debug().Int("anchor", anchor).Int("target", target).Msg("page down")
	return target
}

func (c *ListController[T]) selectedOrFocused(cell Cell) bool {
	index := cell.Index()
	if index < 0 {
		return false
	}
	if sm := c.list.selection; sm != nil && sm.SelectedIndex() == index {
		return true
	}
	if fm := c.list.focus; fm != nil && fm.FocusedIndex() == index {
		return true
	}
	return false
}

// relativePosition returns index as a fraction of the item count.
func (c *ListController[T]) relativePosition(index int) float64 {
	if c.itemCount <= 0 {
		return 0
	}
	return float64(index) / float64(c.itemCount)
}
