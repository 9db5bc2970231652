package cellview

import (
	"github.com/gdamore/tcell/v3"
	"github.com/rs/zerolog"
	"github.com/xqrs/cellview/i18n"
	"github.com/xqrs/cellview/keybind"
	"github.com/xqrs/cellview/observable"
)

// Orientation is the scrolling axis of a [ListView].
type Orientation int

const (
	OrientationVertical Orientation = iota
	OrientationHorizontal
)

// wheelLines is the number of rows scrolled per mouse wheel step.
const wheelLines = 3

// ListView shows the items of an observable sequence as a scrollable list of
// rows. Only the rows in view exist; they are created by the row factory and
// reused while scrolling.
//
// The list observes the sequence: items may be added, removed or replaced at
// any time from the goroutine running the application's event loop (use
// [Application.QueueUpdateDraw] from other goroutines). While the sequence is
// empty a placeholder is shown instead of the rows.
type ListView[T any] struct {
	*Box

	items            observable.Sequence[T]
	rowFactory       RowFactory[T]
	placeholder      Primitive
	emptyText        string
	orientation      Orientation
	focusTraversable bool
	fixedCellLength  int

	focus     FocusModel
	selection SelectionModel
	keyMap    ListKeyMap
	logger    zerolog.Logger

	viewport   Viewport
	controller *ListController[T]

	// Called when the selected index changes.
	changed func(index int)
	// Called when an item is activated with the keyboard or a double click.
	selected func(index int, item T)
}

// NewListView returns a list without items, scrolled by a [VirtualFlow].
func NewListView[T any]() *ListView[T] {
	return NewListViewWithViewport[T](NewVirtualFlow())
}

// NewListViewWithViewport returns a list without items, scrolled by viewport.
func NewListViewWithViewport[T any](viewport Viewport) *ListView[T] {
	l := &ListView[T]{
		Box:              NewBox(),
		emptyText:        i18n.T("list.no_content"),
		orientation:      OrientationVertical,
		focusTraversable: true,
		focus:            NewFocusCursor(),
		selection:        NewSelectionCursor(),
		keyMap:           DefaultListKeyMap(),
		logger:           Logger,
		viewport:         viewport,
	}
	BindParent(viewport, l.Box)
	l.controller = NewListController(l, viewport)
	return l
}

// SetItems sets the sequence of items to show. nil shows the placeholder.
func (l *ListView[T]) SetItems(items observable.Sequence[T]) *ListView[T] {
	if l.items == items {
		return l
	}
	l.items = items
	l.controller.OnItemsChanged()
	return l
}

// Items returns the sequence of items.
func (l *ListView[T]) Items() observable.Sequence[T] {
	return l.items
}

// SetRowFactory sets the function creating rows. All existing rows are
// dropped. nil selects default rows.
func (l *ListView[T]) SetRowFactory(factory RowFactory[T]) *ListView[T] {
	l.rowFactory = factory
	l.controller.OnRowFactoryChanged()
	l.MarkDirty()
	return l
}

// SetPlaceholder sets the primitive shown while there are no items. nil shows
// the empty text.
func (l *ListView[T]) SetPlaceholder(placeholder Primitive) *ListView[T] {
	if l.placeholder == placeholder {
		return l
	}
	l.placeholder = placeholder
	l.controller.OnPlaceholderChanged()
	l.MarkDirty()
	return l
}

// SetEmptyText sets the text shown while there are no items and no
// placeholder is set.
func (l *ListView[T]) SetEmptyText(text string) *ListView[T] {
	if l.emptyText == text {
		return l
	}
	l.emptyText = text
	l.controller.OnPlaceholderChanged()
	l.MarkDirty()
	return l
}

// SetOrientation sets the scrolling axis.
func (l *ListView[T]) SetOrientation(orientation Orientation) *ListView[T] {
	if l.orientation != orientation {
		l.orientation = orientation
		l.controller.OnOrientationChanged()
		l.MarkDirty()
	}
	return l
}

// GetOrientation returns the scrolling axis.
func (l *ListView[T]) GetOrientation() Orientation {
	return l.orientation
}

// SetFocusTraversable sets whether the list takes the focus when clicked.
func (l *ListView[T]) SetFocusTraversable(traversable bool) *ListView[T] {
	if l.focusTraversable != traversable {
		l.focusTraversable = traversable
		l.controller.OnFocusTraversableChanged()
	}
	return l
}

// SetFixedCellLength makes every row length rows high (columns wide when
// horizontal). Zero lets rows measure themselves.
func (l *ListView[T]) SetFixedCellLength(length int) *ListView[T] {
	if l.fixedCellLength != length {
		l.fixedCellLength = length
		l.controller.OnFixedCellLengthChanged()
		l.MarkDirty()
	}
	return l
}

// SetFocusModel sets the model tracking the focused row. nil disables focus
// navigation.
func (l *ListView[T]) SetFocusModel(model FocusModel) *ListView[T] {
	l.focus = model
	l.MarkDirty()
	return l
}

// FocusModel returns the model tracking the focused row.
func (l *ListView[T]) FocusModel() FocusModel {
	return l.focus
}

// SetSelectionModel sets the model tracking the selected row. nil disables
// selection.
func (l *ListView[T]) SetSelectionModel(model SelectionModel) *ListView[T] {
	l.selection = model
	l.MarkDirty()
	return l
}

// SelectionModel returns the model tracking the selected row.
func (l *ListView[T]) SelectionModel() SelectionModel {
	return l.selection
}

// SetKeyMap sets the key bindings.
func (l *ListView[T]) SetKeyMap(keyMap ListKeyMap) *ListView[T] {
	l.keyMap = keyMap
	return l
}

// KeyMap returns the key bindings.
func (l *ListView[T]) KeyMap() ListKeyMap {
	return l.keyMap
}

// SetLogger sets the logger of this list. The package [Logger] is used by
// default.
func (l *ListView[T]) SetLogger(logger zerolog.Logger) *ListView[T] {
	l.logger = logger
	l.controller.logger = logger
	return l
}

// SetChangedFunc sets a handler called when the selected index changes.
func (l *ListView[T]) SetChangedFunc(handler func(index int)) *ListView[T] {
	l.changed = handler
	return l
}

// SetSelectedFunc sets a handler called when an item is activated.
func (l *ListView[T]) SetSelectedFunc(handler func(index int, item T)) *ListView[T] {
	l.selected = handler
	return l
}

// Controller returns the controller deciding what the list shows.
func (l *ListView[T]) Controller() *ListController[T] {
	return l.controller
}

// Viewport returns the viewport scrolling the rows.
func (l *ListView[T]) Viewport() Viewport {
	return l.viewport
}

// SelectedIndex returns the selected index, or -1.
func (l *ListView[T]) SelectedIndex() int {
	if l.selection == nil {
		return -1
	}
	return l.selection.SelectedIndex()
}

// FocusedIndex returns the focused index, or -1.
func (l *ListView[T]) FocusedIndex() int {
	if l.focus == nil {
		return -1
	}
	return l.focus.FocusedIndex()
}

// Select selects and focuses index and scrolls it into view.
func (l *ListView[T]) Select(index int) *ListView[T] {
	l.layout()
	l.selectIndex(index)
	if index >= 0 {
		l.viewport.ScrollTo(index)
	}
	return l
}

// ScrollTo scrolls the row at index into view.
func (l *ListView[T]) ScrollTo(index int) *ListView[T] {
	l.layout()
	l.viewport.ScrollTo(index)
	return l
}

// PrefWidth returns the preferred width at the given height. Negative heights
// select the preferred height.
func (l *ListView[T]) PrefWidth(height int) int {
	return l.controller.PrefWidth(height)
}

// PrefHeight returns the preferred height at the given width.
func (l *ListView[T]) PrefHeight(width int) int {
	return l.controller.PrefHeight(width)
}

// Dispose stops observing the item sequence. The list must not be used
// afterwards.
func (l *ListView[T]) Dispose() {
	l.controller.Dispose()
}

// SetDirtyParent attaches the list to a container.
func (l *ListView[T]) SetDirtyParent(parent *Box) {
	before := l.Parent()
	l.Box.SetDirtyParent(parent)
	if l.Parent() != before {
		l.controller.OnParentChanged()
	}
}

// ClearDirtyParent detaches the list from parent.
func (l *ListView[T]) ClearDirtyParent(parent *Box) {
	before := l.Parent()
	l.Box.ClearDirtyParent(parent)
	if l.Parent() != before {
		l.controller.OnParentChanged()
	}
}

// layout runs a layout pass for the current inner rectangle.
func (l *ListView[T]) layout() {
	l.controller.Layout(l.GetInnerRect())
	l.clampCursors()
}

// clampCursors moves cursors which point past the last item onto it.
func (l *ListView[T]) clampCursors() {
	count := l.controller.ItemCount()
	if l.selection != nil {
		if index := l.selection.SelectedIndex(); index >= count {
			l.selectIndex(count - 1)
		}
	}
	if l.focus != nil {
		if index := l.focus.FocusedIndex(); index >= count {
			l.focus.Focus(count - 1)
		}
	}
}

// selectIndex updates both cursors and reports a changed selection.
func (l *ListView[T]) selectIndex(index int) {
	if count := l.controller.ItemCount(); index >= count {
		index = count - 1
	}
	index = max(index, -1)
	if l.focus != nil {
		l.focus.Focus(index)
	}
	if l.selection == nil {
		return
	}
	previous := l.selection.SelectedIndex()
	if index < 0 {
		l.selection.ClearSelection()
	} else {
		l.selection.Select(index)
	}
	if previous != index {
		l.MarkDirty()
		if l.changed != nil {
			l.changed(index)
		}
	}
}

// Draw draws the rows, or the placeholder while there are no items.
func (l *ListView[T]) Draw(screen tcell.Screen) {
	if !l.visible {
		return
	}
	l.DrawForSubclass(screen, l)
	l.layout()

	if l.controller.ItemCount() == 0 {
		if placeholder := l.controller.Placeholder(); placeholder != nil {
			placeholder.Draw(screen)
		}
		return
	}
	l.viewport.Draw(screen)
}

// SelectPreviousRow selects the row above the selected one.
func (l *ListView[T]) SelectPreviousRow() {
	if l.selection == nil {
		return
	}
	l.layout()
	if l.controller.ItemCount() <= 0 {
		return
	}
	l.selectIndex(max(l.selection.SelectedIndex()-1, 0))
	l.controller.SelectPrevious()
}

// SelectNextRow selects the row below the selected one.
func (l *ListView[T]) SelectNextRow() {
	if l.selection == nil {
		return
	}
	l.layout()
	count := l.controller.ItemCount()
	if count <= 0 {
		return
	}
	l.selectIndex(min(l.selection.SelectedIndex()+1, count-1))
	l.controller.SelectNext()
}

// FocusPreviousRow moves the focus up without changing the selection.
func (l *ListView[T]) FocusPreviousRow() {
	if l.focus == nil {
		return
	}
	l.layout()
	if l.controller.ItemCount() <= 0 {
		return
	}
	l.focus.Focus(max(l.focus.FocusedIndex()-1, 0))
	l.MarkDirty()
	l.controller.FocusPrevious()
}

// FocusNextRow moves the focus down without changing the selection.
func (l *ListView[T]) FocusNextRow() {
	if l.focus == nil {
		return
	}
	l.layout()
	count := l.controller.ItemCount()
	if count <= 0 {
		return
	}
	l.focus.Focus(min(l.focus.FocusedIndex()+1, count-1))
	l.MarkDirty()
	l.controller.FocusNext()
}

// SelectFirstRow selects the first row and scrolls to it.
func (l *ListView[T]) SelectFirstRow() {
	l.layout()
	if l.controller.ItemCount() <= 0 {
		return
	}
	l.selectIndex(0)
	l.controller.MoveToFirst()
}

// SelectLastRow selects the last row and scrolls to it.
func (l *ListView[T]) SelectLastRow() {
	l.layout()
	count := l.controller.ItemCount()
	if count <= 0 {
		return
	}
	l.selectIndex(count - 1)
	l.controller.MoveToLast()
}

// PageUp selects the row a page above the selected one.
func (l *ListView[T]) PageUp() {
	l.layout()
	if index := l.controller.PageUp(l.anchor()); index >= 0 {
		l.selectIndex(index)
	}
}

// PageDown selects the row a page below the selected one.
func (l *ListView[T]) PageDown() {
	l.layout()
	if index := l.controller.PageDown(l.anchor()); index >= 0 {
		l.selectIndex(index)
	}
}

// anchor returns the index paging starts from.
func (l *ListView[T]) anchor() int {
	if l.selection != nil {
		return l.selection.SelectedIndex()
	}
	return l.FocusedIndex()
}

// Activate calls the selected handler for the selected item.
func (l *ListView[T]) Activate() {
	index := l.SelectedIndex()
	if l.selected == nil || l.items == nil || index < 0 || index >= l.items.Len() {
		return
	}
	l.selected(index, l.items.At(index))
}

// InputHandler handles the list's key bindings.
func (l *ListView[T]) InputHandler(event *tcell.EventKey) Command {
	km := l.keyMap
	switch {
	case keybind.Matches(event, km.SelectPrevious):
		l.SelectPreviousRow()
	case keybind.Matches(event, km.SelectNext):
		l.SelectNextRow()
	case keybind.Matches(event, km.FocusPrevious):
		l.FocusPreviousRow()
	case keybind.Matches(event, km.FocusNext):
		l.FocusNextRow()
	case keybind.Matches(event, km.First):
		l.SelectFirstRow()
	case keybind.Matches(event, km.Last):
		l.SelectLastRow()
	case keybind.Matches(event, km.PageUp):
		l.PageUp()
	case keybind.Matches(event, km.PageDown):
		l.PageDown()
	case keybind.Matches(event, km.Activate):
		l.Activate()
	default:
		return nil
	}
	return RedrawCommand{}
}

// MouseHandler selects clicked rows and scrolls on wheel events.
func (l *ListView[T]) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	x, y := event.Position()
	if !l.InRect(x, y) {
		return nil, nil
	}

	switch action {
	case MouseLeftDown:
		var cmd Command
		hit, focus := l.viewport.PressScrollBar(x, y)
		if hit {
			cmd = RedrawCommand{}
		} else {
			focus = l.focusTraversable
		}
		if focus {
			cmd = AppendCommand(cmd, SetFocusCommand{Target: l})
		}
		return nil, cmd
	case MouseLeftClick, MouseLeftDoubleClick:
		if l.controller.ItemCount() <= 0 {
			return nil, nil
		}
		cell := l.viewport.CellAt(x, y)
		if cell == nil || cell.Index() < 0 || cell.Index() >= l.controller.ItemCount() {
			return nil, nil
		}
		l.selectIndex(cell.Index())
		if action == MouseLeftDoubleClick {
			l.Activate()
		}
		return nil, RedrawCommand{}
	case MouseScrollUp, MouseScrollLeft:
		l.viewport.ScrollLines(-wheelLines)
		return nil, RedrawCommand{}
	case MouseScrollDown, MouseScrollRight:
		l.viewport.ScrollLines(wheelLines)
		return nil, RedrawCommand{}
	}
	return nil, nil
}

// IsDirty returns whether the list, its rows or its placeholder need redraw.
func (l *ListView[T]) IsDirty() bool {
	if l.Box.IsDirty() || l.viewport.IsDirty() {
		return true
	}
	placeholder := l.controller.Placeholder()
	return placeholder != nil && placeholder.IsDirty()
}

// MarkClean marks the list, its rows and its placeholder as clean.
func (l *ListView[T]) MarkClean() {
	l.Box.MarkClean()
	l.viewport.MarkClean()
	if placeholder := l.controller.Placeholder(); placeholder != nil {
		placeholder.MarkClean()
	}
}

var _ Primitive = &ListView[string]{}
