package cellview

import (
	"fmt"
	"reflect"

	"github.com/gdamore/tcell/v3"
	"github.com/xqrs/cellview/observable"
)

// ListRow is a [Cell] presenting one item of a [ListView].
type ListRow[T any] interface {
	Cell
	// UpdateListView binds the row to the list whose items it presents.
	UpdateListView(list *ListView[T])
}

// RowFactory creates the rows of a list. A nil factory selects [NewRow].
type RowFactory[T any] func(list *ListView[T]) ListRow[T]

// ContentKind tells which field of a [RowContent] is set.
type ContentKind int

const (
	// ContentEmpty is shown by rows not bound to an item.
	ContentEmpty ContentKind = iota
	// ContentGraphic shows an item which is a primitive itself.
	ContentGraphic
	// ContentText shows the textual form of an item.
	ContentText
)

// RowContent is what a default row shows for an item.
type RowContent struct {
	Kind    ContentKind
	Graphic Primitive
	Text    string
}

// ResolveContent decides how a default row shows item. Absent items (nil
// pointers, interfaces and the like) are shown as "null".
func ResolveContent[T any](item T, empty bool) RowContent {
	if empty {
		return RowContent{Kind: ContentEmpty}
	}
	value := any(item)
	if isNil(value) {
		return RowContent{Kind: ContentText, Text: "null"}
	}
	if graphic, ok := value.(Primitive); ok {
		return RowContent{Kind: ContentGraphic, Graphic: graphic}
	}
	return RowContent{Kind: ContentText, Text: fmt.Sprint(value)}
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// Row is the default [ListRow]. It shows either a text or a graphic.
//
// Custom factories usually return a Row with an UpdateItem function set via
// [Row.SetUpdateItemFunc].
type Row[T any] struct {
	*Box

	list  *ListView[T]
	index int
	item  T
	empty bool

	// Created on first use and kept for the row's lifetime.
	text    *Label
	graphic Primitive

	updateItem func(row *Row[T], item T, empty bool)
}

// NewRow returns an empty row not bound to any list.
func NewRow[T any]() *Row[T] {
	r := &Row[T]{
		Box:   NewBox(),
		index: -1,
		empty: true,
	}
	r.Box.SetDontClear(true)
	return r
}

// SetUpdateItemFunc replaces the default binding of items. The function
// usually calls [Row.SetText] or [Row.SetGraphic]; it may call
// [Row.DefaultUpdateItem] to fall back to the default behaviour.
func (r *Row[T]) SetUpdateItemFunc(update func(row *Row[T], item T, empty bool)) *Row[T] {
	r.updateItem = update
	return r
}

// UpdateListView binds the row to list.
func (r *Row[T]) UpdateListView(list *ListView[T]) {
	r.list = list
}

// ListView returns the list the row is bound to.
func (r *Row[T]) ListView() *ListView[T] {
	return r.list
}

// Index returns the index the row is bound to, or -1.
func (r *Row[T]) Index() int {
	return r.index
}

// UpdateIndex binds the row to index and updates its item.
func (r *Row[T]) UpdateIndex(index int) {
	r.index = index
	var items observable.Sequence[T]
	if r.list != nil {
		items = r.list.items
	}
	if items == nil || index < 0 || index >= items.Len() {
		var zero T
		r.UpdateItem(zero, true)
		return
	}
	r.UpdateItem(items.At(index), false)
}

// UpdateItem sets the item shown by the row.
func (r *Row[T]) UpdateItem(item T, empty bool) {
	r.item, r.empty = item, empty
	if r.updateItem != nil {
		r.updateItem(r, item, empty)
	} else {
		r.DefaultUpdateItem(item, empty)
	}
	r.MarkDirty()
}

// DefaultUpdateItem shows item as a graphic if it is a [Primitive] and as
// text otherwise.
func (r *Row[T]) DefaultUpdateItem(item T, empty bool) {
	content := ResolveContent(item, empty)
	switch content.Kind {
	case ContentEmpty:
		r.SetText("")
		r.SetGraphic(nil)
	case ContentGraphic:
		r.SetText("")
		r.SetGraphic(content.Graphic)
	case ContentText:
		r.SetText(content.Text)
		r.SetGraphic(nil)
	}
}

// Item returns the bound item.
func (r *Row[T]) Item() T {
	return r.item
}

// IsEmpty returns whether the row is not bound to an item.
func (r *Row[T]) IsEmpty() bool {
	return r.empty
}

// SetText sets the text of the row.
func (r *Row[T]) SetText(text string) *Row[T] {
	if r.text == nil {
		if text == "" {
			return r
		}
		r.text = NewLabel("")
		BindParent(r.text, r.Box)
	}
	r.text.SetText(text)
	return r
}

// Text returns the text of the row.
func (r *Row[T]) Text() string {
	if r.text == nil {
		return ""
	}
	return r.text.GetText()
}

// SetGraphic sets the primitive drawn by the row. Setting the current graphic
// again does nothing.
func (r *Row[T]) SetGraphic(graphic Primitive) *Row[T] {
	if r.graphic == graphic {
		return r
	}
	UnbindParent(r.graphic, r.Box)
	r.graphic = graphic
	BindParent(graphic, r.Box)
	r.MarkDirty()
	return r
}

// Graphic returns the primitive drawn by the row.
func (r *Row[T]) Graphic() Primitive {
	return r.graphic
}

// IsSelected returns whether the row shows the selected item.
func (r *Row[T]) IsSelected() bool {
	if r.empty || r.list == nil || r.list.selection == nil {
		return false
	}
	return r.list.selection.SelectedIndex() == r.index
}

// IsFocused returns whether the row shows the focused item.
func (r *Row[T]) IsFocused() bool {
	if r.empty || r.list == nil || r.list.focus == nil {
		return false
	}
	return r.list.focus.FocusedIndex() == r.index
}

// Height returns the rows needed at the given width.
func (r *Row[T]) Height(width int) int {
	switch {
	case r.graphic != nil:
		if g, ok := r.graphic.(interface{ Height(width int) int }); ok {
			return max(g.Height(width), 1)
		}
		_, _, _, height := r.graphic.GetRect()
		return max(height, 1)
	case r.text != nil && r.text.GetText() != "":
		return r.text.Height(width)
	}
	return 1
}

// Width returns the columns needed at the given height.
func (r *Row[T]) Width(height int) int {
	switch {
	case r.graphic != nil:
		if g, ok := r.graphic.(interface{ Width() int }); ok {
			return max(g.Width(), 1)
		}
		_, _, width, _ := r.graphic.GetRect()
		return max(width, 1)
	case r.text != nil:
		// One column separates horizontally laid out rows.
		return r.text.Width() + 1
	}
	return 1
}

// Draw draws the row.
func (r *Row[T]) Draw(screen tcell.Screen) {
	if !r.visible {
		return
	}
	x, y, width, height := r.GetRect()
	if width <= 0 || height <= 0 {
		return
	}

	background := Styles.PrimitiveBackgroundColor
	foreground := Styles.PrimaryTextColor
	switch {
	case r.IsSelected():
		background, foreground = Styles.SelectedRowBackgroundColor, Styles.SelectedRowTextColor
	case r.IsFocused() && r.list.HasFocus():
		background = Styles.FocusedRowBackgroundColor
	}
	style := tcell.StyleDefault.Background(background)
	for row := y; row < y+height; row++ {
		for column := x; column < x+width; column++ {
			screen.Put(column, row, " ", style)
		}
	}

	switch {
	case r.graphic != nil:
		r.graphic.SetRect(x, y, width, height)
		r.graphic.Draw(screen)
	case r.text != nil:
		r.text.SetTextStyle(tcell.StyleDefault.Foreground(foreground))
		r.text.SetRect(x, y, width, height)
		r.text.Draw(screen)
	}
}

// IsDirty returns whether the row or its content needs redraw.
func (r *Row[T]) IsDirty() bool {
	if r.Box.IsDirty() {
		return true
	}
	if r.graphic != nil && r.graphic.IsDirty() {
		return true
	}
	return r.text != nil && r.text.IsDirty()
}

// MarkClean marks the row and its content as clean.
func (r *Row[T]) MarkClean() {
	r.Box.MarkClean()
	if r.graphic != nil {
		r.graphic.MarkClean()
	}
	if r.text != nil {
		r.text.MarkClean()
	}
}

var _ ListRow[string] = &Row[string]{}
