package cellview

import (
	"github.com/rs/zerolog"
	"github.com/xqrs/cellview/observable"
)

// golden is the ratio between the preferred width and height of a list.
const golden = 0.618033987

// listPrefHeight is the preferred height of a list, in rows.
const listPrefHeight = 20

// ListController decides what a [ListView] shows. It tracks the number of
// items, classifies changes of the item sequence, tells the viewport when to
// rebuild or merely reconfigure its rows and swaps between the rows and the
// placeholder.
//
// Changes of the sequence are coalesced: the controller only marks the row
// count dirty and requests a redraw. The next [ListController.Layout] call
// resolves the count and updates the viewport.
type ListController[T any] struct {
	list     *ListView[T]
	viewport Viewport
	logger   zerolog.Logger

	// Number of items as of the last count resolution. -1 before the first.
	itemCount     int
	rowCountDirty bool

	needCellsRebuilt      bool
	needCellsReconfigured bool

	items        observable.Sequence[T]
	subscription *observable.Subscription

	// Created the first time the list is empty.
	placeholderRegion *Placeholder
	placeholderLabel  *Label
}

// NewListController binds a controller to list and viewport. The viewport is
// configured from the list's current properties and the item count is
// resolved right away.
func NewListController[T any](list *ListView[T], viewport Viewport) *ListController[T] {
	c := &ListController[T]{
		list:             list,
		viewport:         viewport,
		logger:           list.logger,
		itemCount:        -1,
		needCellsRebuilt: true,
	}

	c.UpdateItemsSource()

	viewport.SetVertical(list.orientation == OrientationVertical)
	viewport.SetFocusTraversable(list.focusTraversable)
	viewport.SetCreateCell(func() Cell {
		return c.CreateRow()
	})
	viewport.SetFixedCellLength(list.fixedCellLength)

	c.updateRowCount()
	return c
}

// ItemCount returns the number of items as of the last count resolution.
func (c *ListController[T]) ItemCount() int {
	return c.itemCount
}

// UpdateItemsSource subscribes to the list's current item sequence, dropping
// the subscription to the previous one.
func (c *ListController[T]) UpdateItemsSource() {
	c.subscription.Close()
	c.subscription = nil

	c.items = c.list.items
	if c.items != nil {
		c.subscription = c.items.Subscribe(c.OnSequenceChanged)
	}
	c.logger.Debug().Bool("items", c.items != nil).Msg("items source updated")

	c.rowCountDirty = true
	c.requestLayout()
}

// OnSequenceChanged handles a change notification of the item sequence.
// Changes which invalidate every row (replacements and removal of all items)
// reset the cached count so the next layout rebuilds.
func (c *ListController[T]) OnSequenceChanged(change observable.Change[T]) {
	for _, sub := range change.Changes {
		if sub.WasReplaced() || sub.RemovedSize() == c.itemCount {
			c.logger.Debug().
				Int("from", sub.From).
				Int("removed", sub.RemovedSize()).
				Int("added", sub.AddedSize()).
				Msg("change invalidates all rows")
			c.itemCount = 0
			break
		}
	}
	c.rowCountDirty = true
	c.requestLayout()
}

// updateRowCount pushes the live length of the sequence to the viewport and
// decides between rebuilding and reconfiguring the rows.
func (c *ListController[T]) updateRowCount() {
	oldCount := c.itemCount
	newCount := 0
	if c.items != nil {
		newCount = c.items.Len()
	}
	c.itemCount = newCount

	c.viewport.SetCellCount(newCount)
	c.updatePlaceholderVisibility()

	if newCount != oldCount {
		c.needCellsRebuilt = true
	} else {
		c.needCellsReconfigured = true
	}
	c.logger.Debug().
		Int("old", oldCount).
		Int("new", newCount).
		Bool("rebuild", newCount != oldCount).
		Msg("row count resolved")
}

// updatePlaceholderVisibility shows the placeholder instead of the viewport
// while there are no items. It does not request a layout.
func (c *ListController[T]) updatePlaceholderVisibility() {
	visible := c.itemCount == 0
	if visible {
		if c.placeholderRegion == nil {
			c.placeholderRegion = NewPlaceholder()
			BindParent(c.placeholderRegion, c.list.Box)
		}
		content := c.list.placeholder
		if content == nil {
			if c.placeholderLabel == nil {
				c.placeholderLabel = NewLabel("").SetWrap(true).SetTextAlign(AlignmentCenter)
			}
			c.placeholderLabel.SetText(c.list.emptyText)
			content = c.placeholderLabel
		}
		c.placeholderRegion.SetContent(content)
	}

	c.viewport.SetVisible(!visible)
	if c.placeholderRegion != nil {
		c.placeholderRegion.SetVisible(visible)
	}
}

// Layout resolves a dirty row count, applies the pending rebuild or
// reconfigure to the viewport and sizes either the placeholder or the
// viewport to the given rectangle.
func (c *ListController[T]) Layout(x, y, width, height int) {
	if c.rowCountDirty {
		c.updateRowCount()
		c.rowCountDirty = false
	}

	if c.needCellsRebuilt {
		c.viewport.RebuildCells()
	} else if c.needCellsReconfigured {
		c.viewport.ReconfigureCells()
	}
	c.needCellsRebuilt = false
	c.needCellsReconfigured = false

	if c.itemCount == 0 {
		if c.placeholderRegion != nil {
			c.placeholderRegion.SetRect(x, y, width, height)
		}
		return
	}
	c.viewport.SetRect(x, y, width, height)
}

// CreateRow returns a new row from the list's row factory, or a default row,
// bound to the list.
func (c *ListController[T]) CreateRow() ListRow[T] {
	var row ListRow[T]
	if c.list.rowFactory != nil {
		row = c.list.rowFactory(c.list)
		if row == nil {
			c.logger.Warn().Msg("row factory returned nil, using default row")
		}
	}
	if row == nil {
		row = NewRow[T]()
	}
	row.UpdateListView(c.list)
	return row
}

// OnItemsChanged is called when the list's item sequence is replaced.
func (c *ListController[T]) OnItemsChanged() {
	c.UpdateItemsSource()
}

// OnOrientationChanged is called when the list's orientation changes.
func (c *ListController[T]) OnOrientationChanged() {
	c.viewport.SetVertical(c.list.orientation == OrientationVertical)
}

// OnRowFactoryChanged is called when the list's row factory changes.
func (c *ListController[T]) OnRowFactoryChanged() {
	c.viewport.RecreateCells()
}

// OnParentChanged is called when the list is attached to or detached from a
// container.
func (c *ListController[T]) OnParentChanged() {
	if c.list.Parent() != nil && c.list.IsVisible() {
		c.requestLayout()
	}
}

// OnFocusTraversableChanged is called when the list's focus traversability
// changes.
func (c *ListController[T]) OnFocusTraversableChanged() {
	c.viewport.SetFocusTraversable(c.list.focusTraversable)
}

// OnPlaceholderChanged is called when the list's placeholder changes.
func (c *ListController[T]) OnPlaceholderChanged() {
	c.updatePlaceholderVisibility()
}

// OnFixedCellLengthChanged is called when the list's fixed cell length
// changes.
func (c *ListController[T]) OnFixedCellLengthChanged() {
	c.viewport.SetFixedCellLength(c.list.fixedCellLength)
}

// Placeholder returns the placeholder region, or nil if the list has never
// been empty.
func (c *ListController[T]) Placeholder() *Placeholder {
	return c.placeholderRegion
}

// PrefWidth returns the preferred width of the list at the given height.
// Negative heights select the preferred height.
func (c *ListController[T]) PrefWidth(height int) int {
	if c.itemCount == 0 && c.placeholderRegion != nil {
		return c.placeholderRegion.PrefWidth()
	}
	if height < 0 {
		height = c.PrefHeight(-1)
	}
	return int(float64(height)*golden + 0.5)
}

// PrefHeight returns the preferred height of the list.
func (c *ListController[T]) PrefHeight(width int) int {
	return listPrefHeight
}

// Dispose releases the subscription to the item sequence.
func (c *ListController[T]) Dispose() {
	c.subscription.Close()
	c.subscription = nil
	c.items = nil
}

func (c *ListController[T]) requestLayout() {
	c.list.MarkDirty()
}
