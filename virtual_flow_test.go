package cellview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sizedCell struct {
	*Box
	index   int
	length  func(index int) int
	updates int
}

func (c *sizedCell) Index() int { return c.index }

func (c *sizedCell) UpdateIndex(index int) {
	c.index = index
	c.updates++
}

func (c *sizedCell) Height(width int) int { return c.length(c.index) }

func (c *sizedCell) Width(height int) int { return c.length(c.index) }

func uniform(length int) func(int) int {
	return func(int) int { return length }
}

func newTestFlow(count, width, height int, length func(int) int) (*VirtualFlow, *[]*sizedCell) {
	var created []*sizedCell
	flow := NewVirtualFlow().SetScrollBarVisible(false)
	flow.SetCreateCell(func() Cell {
		c := &sizedCell{Box: NewBox(), index: -1, length: length}
		created = append(created, c)
		return c
	})
	flow.SetCellCount(count)
	flow.SetRect(0, 0, width, height)
	return flow, &created
}

func indexes(cells []Cell) []int {
	out := make([]int, 0, len(cells))
	for _, c := range cells {
		out = append(out, c.Index())
	}
	return out
}

func TestVirtualFlowLaysOutVisibleCells(t *testing.T) {
	t.Parallel()

	flow, _ := newTestFlow(10, 10, 3, uniform(1))

	assert.Equal(t, []int{0, 1, 2}, indexes(flow.VisibleCells()))
	assert.Equal(t, 0, flow.FirstVisibleCell().Index())
	assert.Equal(t, 2, flow.LastVisibleCell().Index())
	assert.Equal(t, 0, flow.FirstVisibleCellWithinViewport().Index())
	assert.Equal(t, 2, flow.LastVisibleCellWithinViewport().Index())

	x, y, width, height := flow.LastVisibleCell().GetRect()
	assert.Equal(t, []int{0, 2, 10, 1}, []int{x, y, width, height})
}

func TestVirtualFlowPartiallyVisibleCells(t *testing.T) {
	t.Parallel()

	flow, _ := newTestFlow(5, 10, 3, uniform(2))

	assert.Equal(t, 1, flow.LastVisibleCell().Index())
	assert.Equal(t, 0, flow.LastVisibleCellWithinViewport().Index())

	flow.ScrollTo(1)
	assert.Equal(t, 0, flow.FirstVisibleCell().Index(), "scrolled by one row only")
	assert.Equal(t, 1, flow.FirstVisibleCellWithinViewport().Index())
	assert.Equal(t, 1, flow.LastVisibleCellWithinViewport().Index())
}

func TestVirtualFlowScrollTo(t *testing.T) {
	t.Parallel()

	flow, _ := newTestFlow(10, 10, 3, uniform(1))

	flow.ScrollTo(5)
	assert.Equal(t, []int{3, 4, 5}, indexes(flow.VisibleCells()))

	flow.ScrollTo(4)
	assert.Equal(t, []int{3, 4, 5}, indexes(flow.VisibleCells()), "visible cells do not scroll")

	flow.ScrollTo(1)
	assert.Equal(t, []int{1, 2, 3}, indexes(flow.VisibleCells()))

	flow.ScrollTo(100)
	assert.Equal(t, 9, flow.LastVisibleCell().Index())
	assert.Equal(t, 1.0, flow.Position())
}

func TestVirtualFlowSetPosition(t *testing.T) {
	t.Parallel()

	flow, _ := newTestFlow(10, 10, 3, uniform(1))

	flow.SetPosition(1)
	assert.Equal(t, []int{7, 8, 9}, indexes(flow.VisibleCells()))
	assert.Equal(t, 1.0, flow.Position())

	flow.SetPosition(0.5)
	assert.Equal(t, 5, flow.FirstVisibleCell().Index())
	assert.Equal(t, 0.5, flow.Position())

	flow.SetPosition(0)
	assert.Equal(t, 0, flow.FirstVisibleCell().Index())
	assert.Zero(t, flow.Position())
}

func TestVirtualFlowShowAsFirstAndLast(t *testing.T) {
	t.Parallel()

	flow, _ := newTestFlow(10, 10, 3, uniform(1))

	flow.ShowAsFirst(newStubCell(4))
	assert.Equal(t, []int{4, 5, 6}, indexes(flow.VisibleCells()))

	flow.ShowAsFirst(newStubCell(9))
	assert.Equal(t, []int{7, 8, 9}, indexes(flow.VisibleCells()), "no blank space after the last cell")

	flow.ShowAsLast(newStubCell(5))
	assert.Equal(t, []int{3, 4, 5}, indexes(flow.VisibleCells()))

	flow.ShowAsLast(newStubCell(1))
	assert.Equal(t, []int{0, 1, 2}, indexes(flow.VisibleCells()))
}

func TestVirtualFlowRecyclesCells(t *testing.T) {
	t.Parallel()

	flow, created := newTestFlow(100, 10, 3, uniform(1))
	for range 120 {
		flow.ScrollLines(1)
		flow.VisibleCells()
	}

	assert.Equal(t, 99, flow.LastVisibleCell().Index())
	assert.LessOrEqual(t, len(*created), 5)

	flow.ScrollLines(-200)
	assert.Equal(t, 0, flow.FirstVisibleCell().Index())
}

func TestVirtualFlowReconfigureAndRebuild(t *testing.T) {
	t.Parallel()

	flow, created := newTestFlow(10, 10, 3, uniform(1))
	before := flow.VisibleCells()
	for _, c := range *created {
		require.Equal(t, 1, c.updates)
	}

	flow.ReconfigureCells()
	after := flow.VisibleCells()
	assert.Equal(t, before, after, "cells stay at their index")
	for _, c := range *created {
		assert.Equal(t, 2, c.updates)
	}

	flow.RebuildCells()
	rebuilt := flow.VisibleCells()
	assert.ElementsMatch(t, before, rebuilt, "rebuilt cells come from the pile")
	assert.Equal(t, []int{0, 1, 2}, indexes(rebuilt))
	assert.Len(t, *created, 3)
	for _, c := range *created {
		assert.Equal(t, 3, c.updates)
	}

	flow.VisibleCells()
	for _, c := range *created {
		assert.Equal(t, 3, c.updates, "unchanged cells are not bound again")
	}
}

func TestVirtualFlowRecreateCells(t *testing.T) {
	t.Parallel()

	flow, created := newTestFlow(10, 10, 3, uniform(1))
	before := flow.VisibleCells()

	flow.RecreateCells()
	after := flow.VisibleCells()

	assert.Len(t, *created, 6)
	for _, c := range after {
		assert.NotContains(t, before, c)
	}
}

func TestVirtualFlowFixedCellLength(t *testing.T) {
	t.Parallel()

	flow, _ := newTestFlow(10, 10, 4, uniform(1))
	flow.SetFixedCellLength(2)

	cells := flow.VisibleCells()
	require.Len(t, cells, 2)
	_, y, _, height := cells[1].GetRect()
	assert.Equal(t, 2, y)
	assert.Equal(t, 2, height)
}

func TestVirtualFlowHorizontal(t *testing.T) {
	t.Parallel()

	flow, _ := newTestFlow(10, 6, 1, uniform(2))
	flow.SetVertical(false)

	assert.Equal(t, []int{0, 1, 2}, indexes(flow.VisibleCells()))
	x, y, width, height := flow.LastVisibleCell().GetRect()
	assert.Equal(t, []int{4, 0, 2, 1}, []int{x, y, width, height})
}

func TestVirtualFlowScrollBarReservesColumn(t *testing.T) {
	t.Parallel()

	flow, _ := newTestFlow(10, 10, 3, uniform(1))
	flow.SetScrollBarVisible(true)
	_, _, width, _ := flow.FirstVisibleCell().GetRect()
	assert.Equal(t, 9, width)

	flow.SetCellCount(2)
	_, _, width, _ = flow.FirstVisibleCell().GetRect()
	assert.Equal(t, 10, width, "no scroll bar while everything fits")
}

func TestVirtualFlowScrollBarPress(t *testing.T) {
	t.Parallel()

	flow, _ := newTestFlow(10, 10, 3, uniform(1))
	flow.SetScrollBarVisible(true)

	hit, focus := flow.PressScrollBar(9, 2)
	assert.True(t, hit)
	assert.True(t, focus)
	assert.Equal(t, 3, flow.FirstVisibleCell().Index(), "pages down below the thumb")

	flow.SetFocusTraversable(false)
	hit, focus = flow.PressScrollBar(9, 1)
	assert.True(t, hit)
	assert.False(t, focus)
	assert.Equal(t, 3, flow.FirstVisibleCell().Index(), "presses on the thumb do not scroll")

	flow.PressScrollBar(9, 2)
	assert.Equal(t, 6, flow.FirstVisibleCell().Index())
	flow.PressScrollBar(9, 0)
	assert.Equal(t, 3, flow.FirstVisibleCell().Index(), "pages up above the thumb")

	hit, _ = flow.PressScrollBar(4, 1)
	assert.False(t, hit)
	assert.Equal(t, 3, flow.FirstVisibleCell().Index())
}

func TestVirtualFlowCellAt(t *testing.T) {
	t.Parallel()

	flow, _ := newTestFlow(10, 10, 3, uniform(1))
	flow.SetRect(2, 5, 10, 3)

	require.NotNil(t, flow.CellAt(3, 6))
	assert.Equal(t, 1, flow.CellAt(3, 6).Index())
	assert.Nil(t, flow.CellAt(0, 6))
	assert.Nil(t, flow.CellAt(3, 8))
}

func TestVirtualFlowEmpty(t *testing.T) {
	t.Parallel()

	flow, created := newTestFlow(0, 10, 3, uniform(1))
	assert.Nil(t, flow.FirstVisibleCell())
	assert.Nil(t, flow.LastVisibleCellWithinViewport())
	assert.Empty(t, *created)

	flow.SetCellCount(5)
	flow.SetRect(0, 0, 0, 0)
	assert.Nil(t, flow.FirstVisibleCell())
}
