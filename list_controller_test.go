package cellview

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xqrs/cellview/observable"
)

type stubCell struct {
	*Box
	index int
}

func newStubCell(index int) *stubCell {
	return &stubCell{Box: NewBox(), index: index}
}

func (c *stubCell) Index() int           { return c.index }
func (c *stubCell) UpdateIndex(i int)    { c.index = i }
func (c *stubCell) Height(width int) int { return 1 }
func (c *stubCell) Width(height int) int { return 1 }

// recordingViewport records the calls made by a controller. The cells it
// reports as visible are set by the test.
type recordingViewport struct {
	*Box

	calls []string

	cellCount        int
	vertical         bool
	focusTraversable bool
	fixedCellLength  int
	createCell       func() Cell
	position         float64

	first, last             Cell
	firstWithin, lastWithin Cell

	// Called after ShowAsFirst and ShowAsLast to simulate scrolling.
	onShowAsFirst func(cell Cell)
	onShowAsLast  func(cell Cell)
}

func newRecordingViewport() *recordingViewport {
	return &recordingViewport{Box: NewBox()}
}

func (v *recordingViewport) record(format string, args ...any) {
	v.calls = append(v.calls, fmt.Sprintf(format, args...))
}

func (v *recordingViewport) reset() {
	v.calls = nil
}

func (v *recordingViewport) SetCellCount(count int) {
	v.cellCount = count
	v.record("SetCellCount(%d)", count)
}

func (v *recordingViewport) CellCount() int {
	return v.cellCount
}

func (v *recordingViewport) RebuildCells() {
	v.record("RebuildCells")
}

func (v *recordingViewport) ReconfigureCells() {
	v.record("ReconfigureCells")
}

func (v *recordingViewport) RecreateCells() {
	v.record("RecreateCells")
}

func (v *recordingViewport) ScrollTo(index int) {
	v.record("ScrollTo(%d)", index)
}

func (v *recordingViewport) ScrollToCell(cell Cell) {
	v.record("ScrollToCell(%d)", cell.Index())
}

func (v *recordingViewport) SetPosition(position float64) {
	v.position = position
	v.record("SetPosition(%.2f)", position)
}

func (v *recordingViewport) Position() float64 {
	return v.position
}

func (v *recordingViewport) FirstVisibleCell() Cell {
	return v.first
}

func (v *recordingViewport) LastVisibleCell() Cell {
	return v.last
}

func (v *recordingViewport) FirstVisibleCellWithinViewport() Cell {
	return v.firstWithin
}

func (v *recordingViewport) LastVisibleCellWithinViewport() Cell {
	return v.lastWithin
}

func (v *recordingViewport) ShowAsFirst(cell Cell) {
	v.record("ShowAsFirst(%d)", cell.Index())
	if v.onShowAsFirst != nil {
		v.onShowAsFirst(cell)
	}
}

func (v *recordingViewport) ShowAsLast(cell Cell) {
	v.record("ShowAsLast(%d)", cell.Index())
	if v.onShowAsLast != nil {
		v.onShowAsLast(cell)
	}
}

func (v *recordingViewport) CellAt(x, y int) Cell {
	return nil
}

func (v *recordingViewport) ScrollLines(delta int) {
	v.record("ScrollLines(%d)", delta)
}

func (v *recordingViewport) SetVertical(vertical bool) {
	v.vertical = vertical
	v.record("SetVertical(%t)", vertical)
}

func (v *recordingViewport) SetFocusTraversable(traversable bool) {
	v.focusTraversable = traversable
	v.record("SetFocusTraversable(%t)", traversable)
}

func (v *recordingViewport) PressScrollBar(x, y int) (bool, bool) {
	return false, false
}

func (v *recordingViewport) SetFixedCellLength(length int) {
	v.fixedCellLength = length
	v.record("SetFixedCellLength(%d)", length)
}

func (v *recordingViewport) SetCreateCell(create func() Cell) {
	v.createCell = create
	v.record("SetCreateCell")
}

func (v *recordingViewport) SetVisible(visible bool) {
	v.Box.SetVisible(visible)
	v.record("SetVisible(%t)", visible)
}

var _ Viewport = &recordingViewport{}

// newRecordedList returns a list showing items after one layout pass, with
// the recorded calls cleared.
func newRecordedList(items ...string) (*ListView[string], *recordingViewport, *observable.List[string]) {
	vp := newRecordingViewport()
	list := NewListViewWithViewport[string](vp)
	seq := observable.NewList(items...)
	list.SetItems(seq)
	list.SetRect(0, 0, 20, 10)
	layoutPass(list)
	vp.reset()
	return list, vp, seq
}

func layoutPass[T any](list *ListView[T]) {
	list.Controller().Layout(list.GetInnerRect())
}

func TestListControllerInitialization(t *testing.T) {
	t.Parallel()

	vp := newRecordingViewport()
	list := NewListViewWithViewport[string](vp)

	assert.Equal(t, []string{
		"SetVertical(true)",
		"SetFocusTraversable(true)",
		"SetCreateCell",
		"SetFixedCellLength(0)",
		"SetCellCount(0)",
		"SetVisible(false)",
	}, vp.calls)
	assert.Equal(t, 0, list.Controller().ItemCount())
	require.NotNil(t, list.Controller().Placeholder())
	assert.True(t, list.Controller().Placeholder().IsVisible())

	vp.reset()
	layoutPass(list)
	assert.Equal(t, []string{"SetCellCount(0)", "SetVisible(false)", "RebuildCells"}, vp.calls,
		"the first pass resolves the count set dirty by subscribing")
}

func TestListControllerCountMatchesSequence(t *testing.T) {
	t.Parallel()

	list, vp, seq := newRecordedList("a", "b", "c")
	steps := []func(){
		func() { seq.Append("d") },
		func() { seq.Insert(0, "z", "y") },
		func() { seq.Remove(2) },
		func() { seq.Set(1, "x") },
		func() { seq.RemoveRange(0, 3) },
		func() { seq.SetAll("p", "q") },
		func() { seq.Clear() },
		func() { seq.Append("r") },
	}
	for i, step := range steps {
		step()
		layoutPass(list)
		assert.Equal(t, seq.Len(), list.Controller().ItemCount(), "step %d", i)
		assert.Equal(t, seq.Len(), vp.cellCount, "step %d", i)
	}
}

func TestListControllerRebuildOrReconfigure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(seq *observable.List[string])
		want   string
	}{
		{name: "append", mutate: func(seq *observable.List[string]) { seq.Append("d") }, want: "RebuildCells"},
		{name: "remove", mutate: func(seq *observable.List[string]) { seq.Remove(0) }, want: "RebuildCells"},
		{name: "replace one", mutate: func(seq *observable.List[string]) { seq.Set(0, "a") }, want: "RebuildCells"},
		{name: "replace all, same length", mutate: func(seq *observable.List[string]) { seq.SetAll("x", "y", "z") }, want: "RebuildCells"},
		{name: "swap", mutate: func(seq *observable.List[string]) { seq.Swap(0, 2) }, want: "ReconfigureCells"},
		{name: "update in place", mutate: func(seq *observable.List[string]) { seq.Update(1) }, want: "ReconfigureCells"},
		{
			name: "clear and refill to the same length",
			mutate: func(seq *observable.List[string]) {
				seq.Batch(func(seq *observable.List[string]) {
					seq.Clear()
					seq.Append("x", "y", "z")
				})
			},
			want: "RebuildCells",
		},
		{
			name: "remove and add, same length",
			mutate: func(seq *observable.List[string]) {
				seq.Batch(func(seq *observable.List[string]) {
					seq.Remove(1)
					seq.Append("d")
				})
			},
			want: "ReconfigureCells",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			list, vp, seq := newRecordedList("a", "b", "c")

			tt.mutate(seq)
			assert.Empty(t, vp.calls, "changes are resolved by the next layout pass")
			layoutPass(list)

			assert.Contains(t, vp.calls, tt.want)
			if tt.want == "RebuildCells" {
				assert.NotContains(t, vp.calls, "ReconfigureCells")
			} else {
				assert.NotContains(t, vp.calls, "RebuildCells")
			}
		})
	}
}

func TestListControllerCoalescesChanges(t *testing.T) {
	t.Parallel()

	list, vp, seq := newRecordedList("a")
	list.MarkClean()

	seq.Append("b")
	seq.Append("c")
	seq.Remove(0)
	assert.True(t, list.IsDirty())

	layoutPass(list)
	assert.Equal(t, []string{"SetCellCount(2)", "SetVisible(true)", "RebuildCells"}, vp.calls)

	vp.reset()
	layoutPass(list)
	assert.Empty(t, vp.calls, "flags are cleared after a pass")
}

func TestListControllerPlaceholder(t *testing.T) {
	t.Parallel()

	list, vp, seq := newRecordedList("a")
	controller := list.Controller()
	require.NotNil(t, controller.Placeholder(), "created while the list had no items yet")
	assert.False(t, controller.Placeholder().IsVisible())
	assert.True(t, vp.IsVisible())

	seq.Clear()
	layoutPass(list)
	placeholder := controller.Placeholder()
	require.NotNil(t, placeholder)
	assert.True(t, placeholder.IsVisible())
	assert.False(t, vp.IsVisible())
	label, ok := placeholder.Content().(*Label)
	require.True(t, ok)
	assert.Equal(t, "No content in list", label.GetText())
	x, y, width, height := placeholder.GetRect()
	assert.Equal(t, []int{0, 0, 20, 10}, []int{x, y, width, height})

	seq.Append("b")
	layoutPass(list)
	assert.False(t, placeholder.IsVisible())
	assert.True(t, vp.IsVisible())

	seq.Clear()
	layoutPass(list)
	assert.Same(t, placeholder, controller.Placeholder())
	assert.Same(t, label, placeholder.Content())
	assert.True(t, placeholder.IsVisible())
}

func TestListControllerPlaceholderContent(t *testing.T) {
	t.Parallel()

	list, _, _ := newRecordedList()
	placeholder := list.Controller().Placeholder()
	require.NotNil(t, placeholder)

	list.SetEmptyText("Nothing here")
	label, ok := placeholder.Content().(*Label)
	require.True(t, ok)
	assert.Equal(t, "Nothing here", label.GetText())

	custom := NewLabel("custom")
	list.SetPlaceholder(custom)
	assert.Same(t, custom, placeholder.Content())

	list.SetPlaceholder(nil)
	assert.Same(t, label, placeholder.Content())
}

func TestListControllerNilItems(t *testing.T) {
	t.Parallel()

	list, vp, _ := newRecordedList("a", "b")
	list.SetItems(nil)
	layoutPass(list)

	assert.Equal(t, 0, list.Controller().ItemCount())
	assert.Equal(t, 0, vp.cellCount)
	assert.True(t, list.Controller().Placeholder().IsVisible())
}

func TestListControllerResubscribes(t *testing.T) {
	t.Parallel()

	list, vp, old := newRecordedList("a")
	next := observable.NewList("x", "y")
	list.SetItems(next)
	layoutPass(list)
	assert.Equal(t, 2, list.Controller().ItemCount())

	vp.reset()
	list.MarkClean()
	old.Append("b")
	assert.False(t, list.IsDirty(), "the previous sequence is no longer observed")
	layoutPass(list)
	assert.Empty(t, vp.calls)

	next.Append("z")
	assert.True(t, list.IsDirty())
}

func TestListControllerDispose(t *testing.T) {
	t.Parallel()

	list, vp, seq := newRecordedList("a")
	list.Dispose()
	list.MarkClean()

	seq.Append("b")
	assert.False(t, list.IsDirty())
	layoutPass(list)
	assert.Empty(t, vp.calls)
}

func TestListControllerPropertyHooks(t *testing.T) {
	t.Parallel()

	list, vp, _ := newRecordedList("a")

	list.SetOrientation(OrientationHorizontal)
	assert.False(t, vp.vertical)
	list.SetFocusTraversable(false)
	assert.False(t, vp.focusTraversable)
	list.SetFixedCellLength(2)
	assert.Equal(t, 2, vp.fixedCellLength)
	list.SetRowFactory(func(*ListView[string]) ListRow[string] { return NewRow[string]() })
	assert.Contains(t, vp.calls, "RecreateCells")
}

func TestListControllerParentChange(t *testing.T) {
	t.Parallel()

	list, _, _ := newRecordedList("a")
	list.MarkClean()
	BindParent(list, NewBox())
	assert.True(t, list.IsDirty(), "attaching a visible list requests a layout")

	hidden, _, _ := newRecordedList("a")
	hidden.SetVisible(false)
	hidden.MarkClean()
	BindParent(hidden, NewBox())
	assert.False(t, hidden.IsDirty())
}

func TestListControllerCreateRow(t *testing.T) {
	t.Parallel()

	list, vp, _ := newRecordedList("a")

	row, ok := vp.createCell().(*Row[string])
	require.True(t, ok)
	assert.Same(t, list, row.ListView())

	custom := NewRow[string]()
	list.SetRowFactory(func(*ListView[string]) ListRow[string] { return custom })
	assert.Same(t, custom, vp.createCell())
	assert.Same(t, list, custom.ListView())

	list.SetRowFactory(func(*ListView[string]) ListRow[string] { return nil })
	row, ok = vp.createCell().(*Row[string])
	require.True(t, ok, "a nil row falls back to the default row")
	assert.Same(t, list, row.ListView())
}

func TestListControllerPrefSize(t *testing.T) {
	t.Parallel()

	list, _, seq := newRecordedList("a")
	assert.Equal(t, 20, list.PrefHeight(-1))
	assert.Equal(t, 12, list.PrefWidth(-1))
	assert.Equal(t, 6, list.PrefWidth(10))

	seq.Clear()
	layoutPass(list)
	assert.Equal(t, len("No content in list"), list.PrefWidth(-1))
}

func TestListControllerFocusNavigation(t *testing.T) {
	t.Parallel()

	list, vp, _ := newRecordedList("a", "b", "c", "d")
	list.FocusModel().Focus(2)

	list.Controller().FocusNext()
	list.Controller().FocusPrevious()
	assert.Equal(t, []string{"ScrollTo(2)", "ScrollTo(2)"}, vp.calls)

	vp.reset()
	list.SetFocusModel(nil)
	list.Controller().FocusNext()
	assert.Empty(t, vp.calls)
}

func TestListControllerSelectNavigation(t *testing.T) {
	t.Parallel()

	items := make([]string, 10)
	for i := range items {
		items[i] = fmt.Sprint(i)
	}

	t.Run("previous above the first visible row", func(t *testing.T) {
		t.Parallel()
		list, vp, _ := newRecordedList(items...)
		list.SelectionModel().Select(2)
		vp.first = newStubCell(5)

		list.Controller().SelectPrevious()
		assert.Equal(t, []string{"ScrollTo(2)", "SetPosition(0.20)"}, vp.calls)
	})

	t.Run("previous within view", func(t *testing.T) {
		t.Parallel()
		list, vp, _ := newRecordedList(items...)
		list.SelectionModel().Select(2)
		vp.first = newStubCell(1)

		list.Controller().SelectPrevious()
		assert.Equal(t, []string{"ScrollTo(2)"}, vp.calls)
	})

	t.Run("previous without visible rows", func(t *testing.T) {
		t.Parallel()
		list, vp, _ := newRecordedList(items...)
		list.SelectionModel().Select(3)

		list.Controller().SelectPrevious()
		assert.Equal(t, []string{"ScrollTo(3)", "SetPosition(0.30)"}, vp.calls)
	})

	t.Run("next below the last visible row", func(t *testing.T) {
		t.Parallel()
		list, vp, _ := newRecordedList(items...)
		list.SelectionModel().Select(7)
		vp.last = newStubCell(3)

		list.Controller().SelectNext()
		assert.Equal(t, []string{"ScrollTo(7)", "SetPosition(0.70)"}, vp.calls)
	})

	t.Run("next within view", func(t *testing.T) {
		t.Parallel()
		list, vp, _ := newRecordedList(items...)
		list.SelectionModel().Select(7)
		vp.last = newStubCell(8)

		list.Controller().SelectNext()
		assert.Equal(t, []string{"ScrollTo(7)"}, vp.calls)
	})

	t.Run("no selection model", func(t *testing.T) {
		t.Parallel()
		list, vp, _ := newRecordedList(items...)
		list.SetSelectionModel(nil)

		list.Controller().SelectNext()
		list.Controller().SelectPrevious()
		assert.Empty(t, vp.calls)
	})
}

func TestListControllerMoveToEnds(t *testing.T) {
	t.Parallel()

	list, vp, _ := newRecordedList("a", "b", "c", "d", "e")

	list.Controller().MoveToFirst()
	assert.Equal(t, []string{"ScrollTo(0)", "SetPosition(0.00)"}, vp.calls)
	assert.Zero(t, vp.Position())

	vp.reset()
	list.Controller().MoveToLast()
	assert.Equal(t, []string{"ScrollTo(4)", "SetPosition(1.00)"}, vp.calls)
	assert.Equal(t, 1.0, vp.Position())
}

func TestListControllerPageDown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		selected  int
		anchor    int
		wantIndex int
		wantCalls []string
	}{
		{
			name:      "last row not selected",
			selected:  0,
			anchor:    0,
			wantIndex: 4,
			wantCalls: []string{"ScrollToCell(4)"},
		},
		{
			name:      "last row selected, anchor elsewhere",
			selected:  4,
			anchor:    3,
			wantIndex: 4,
			wantCalls: []string{"ScrollToCell(4)"},
		},
		{
			name:      "last row selected and anchor",
			selected:  4,
			anchor:    4,
			wantIndex: 8,
			wantCalls: []string{"ShowAsFirst(4)", "ScrollToCell(8)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			list, vp, _ := newRecordedList("0", "1", "2", "3", "4", "5", "6", "7", "8", "9")
			list.SelectionModel().Select(tt.selected)
			vp.lastWithin = newStubCell(4)
			vp.onShowAsFirst = func(cell Cell) {
				vp.lastWithin = newStubCell(cell.Index() + 4)
			}

			assert.Equal(t, tt.wantIndex, list.Controller().PageDown(tt.anchor))
			assert.Equal(t, tt.wantCalls, vp.calls)
		})
	}
}

func TestListControllerPageDownFocused(t *testing.T) {
	t.Parallel()

	list, vp, _ := newRecordedList("0", "1", "2", "3", "4", "5")
	list.SetSelectionModel(nil)
	list.FocusModel().Focus(2)
	vp.lastWithin = newStubCell(2)
	vp.onShowAsFirst = func(Cell) { vp.lastWithin = newStubCell(5) }

	assert.Equal(t, 5, list.Controller().PageDown(2))
}

func TestListControllerPageUp(t *testing.T) {
	t.Parallel()

	list, vp, _ := newRecordedList("0", "1", "2", "3", "4", "5", "6", "7", "8", "9")
	list.SelectionModel().Select(9)
	vp.firstWithin = newStubCell(6)
	vp.onShowAsLast = func(cell Cell) {
		vp.firstWithin = newStubCell(cell.Index() - 3)
	}

	assert.Equal(t, 6, list.Controller().PageUp(9))
	assert.Equal(t, []string{"ScrollToCell(6)"}, vp.calls)

	list.SelectionModel().Select(6)
	vp.reset()
	assert.Equal(t, 3, list.Controller().PageUp(6))
	assert.Equal(t, []string{"ShowAsLast(6)", "ScrollToCell(3)"}, vp.calls)
}

func TestListControllerPageWithoutRows(t *testing.T) {
	t.Parallel()

	list, vp, _ := newRecordedList("a")
	assert.Equal(t, -1, list.Controller().PageDown(0))
	assert.Equal(t, -1, list.Controller().PageUp(0))
	assert.Empty(t, vp.calls)
}
