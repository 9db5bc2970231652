// Package help renders the key bindings of a widget either as a single line
// or as aligned columns.
package help

import (
	"strings"

	"github.com/gdamore/tcell/v3"
	"github.com/xqrs/cellview"
	"github.com/xqrs/cellview/keybind"
)

// KeyMap is implemented by the key maps of widgets which can describe their
// bindings.
type KeyMap interface {
	// ShortHelp returns keybinds for single-line help.
	ShortHelp() []keybind.Keybind
	// FullHelp returns keybind groups, where each top-level entry is a column.
	FullHelp() [][]keybind.Keybind
}

// Help draws the help of a [KeyMap].
type Help struct {
	*cellview.Box
	Styles Styles

	keyMap         KeyMap
	showAll        bool
	shortSeparator string
	fullSeparator  string
	ellipsis       string
}

func New() *Help {
	return &Help{
		Box:            cellview.NewBox(),
		Styles:         DefaultStyles(),
		shortSeparator: " • ",
		fullSeparator:  "    ",
		ellipsis:       cellview.SemigraphicsHorizontalEllipsis,
	}
}

// SetKeyMap sets the key map to describe.
func (h *Help) SetKeyMap(keyMap KeyMap) *Help {
	h.keyMap = keyMap
	h.MarkDirty()
	return h
}

// SetShowAll switches between the single line and the column layout.
func (h *Help) SetShowAll(showAll bool) *Help {
	if h.showAll != showAll {
		h.showAll = showAll
		h.MarkDirty()
	}
	return h
}

// ShowAll returns whether the column layout is active.
func (h *Help) ShowAll() bool {
	return h.showAll
}

// SetStyles sets help styles.
func (h *Help) SetStyles(styles Styles) *Help {
	h.Styles = styles
	h.MarkDirty()
	return h
}

// frame returns the columns and rows taken by the box border and title.
func (h *Help) frame() (columns, rows int) {
	borders := h.GetBorders()
	if borders.Has(cellview.BordersTop) || h.GetTitle() != "" {
		rows++
	}
	if borders.Has(cellview.BordersBottom) {
		rows++
	}
	if borders.Has(cellview.BordersLeft) {
		columns++
	}
	if borders.Has(cellview.BordersRight) {
		columns++
	}
	return columns, rows
}

// Height returns the rows needed to draw the help at the given width,
// including the box border.
func (h *Help) Height(width int) int {
	if h.keyMap == nil {
		return 0
	}
	columns, rows := h.frame()
	return len(h.lines(width-columns)) + rows
}

// Width returns the columns the full help needs, including the box border.
func (h *Help) Width() int {
	width := 0
	for _, line := range h.lines(0) {
		width = max(width, line.width())
	}
	columns, _ := h.frame()
	return width + columns
}

func (h *Help) lines(width int) []helpLine {
	if h.keyMap == nil {
		return nil
	}
	if h.showAll {
		return h.fullHelpSegments(h.keyMap.FullHelp(), width)
	}
	return []helpLine{h.shortHelpSegments(h.keyMap.ShortHelp(), width)}
}

// Draw draws this primitive onto the screen.
func (h *Help) Draw(screen tcell.Screen) {
	if !h.IsVisible() {
		return
	}
	h.DrawForSubclass(screen, h)

	x, y, width, height := h.GetInnerRect()
	lines := h.lines(width)
	for row := 0; row < len(lines) && row < height; row++ {
		h.drawSegments(screen, x, y+row, width, lines[row])
	}
}

type segment struct {
	text  string
	style tcell.Style
}

type helpLine []segment

func (l helpLine) width() int {
	width := 0
	for _, s := range l {
		width += cellview.StringWidth(s.text)
	}
	return width
}

func (h *Help) shortHelpSegments(bindings []keybind.Keybind, maxWidth int) helpLine {
	var items []helpLine
	for _, kb := range bindings {
		if item := entrySegments(kb, h.Styles.Short); len(item) > 0 {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return nil
	}

	sep := segment{text: h.shortSeparator, style: h.Styles.Short.Separator}
	out := append(helpLine(nil), items[0]...)
	for _, item := range items[1:] {
		candidate := append(append(append(helpLine(nil), out...), sep), item...)
		if maxWidth > 0 && candidate.width() > maxWidth {
			return append(out, h.truncationTail(out, maxWidth)...)
		}
		out = candidate
	}
	if maxWidth > 0 && out.width() > maxWidth {
		return nil
	}
	return out
}

type helpColumn struct {
	entries []keybind.Help
	keyW    int
	colW    int
}

func newHelpColumn(group []keybind.Keybind) helpColumn {
	var col helpColumn
	for _, kb := range group {
		hp := kb.Help()
		if !kb.Enabled() || (hp.Key == "" && hp.Desc == "") {
			continue
		}
		col.entries = append(col.entries, hp)
		col.keyW = max(col.keyW, cellview.StringWidth(hp.Key))
	}
	for _, e := range col.entries {
		w := col.keyW + cellview.StringWidth(e.Desc)
		if e.Key != "" && e.Desc != "" {
			w++
		}
		col.colW = max(col.colW, w)
	}
	return col
}

func (c helpColumn) row(index int, last bool, styles Styles) helpLine {
	if index >= len(c.entries) {
		// Keep following separators aligned.
		return helpLine{{text: strings.Repeat(" ", c.colW), style: styles.Full.Desc}}
	}
	e := c.entries[index]
	var cell helpLine
	if e.Key != "" {
		cell = append(cell, segment{text: e.Key, style: styles.Full.Key})
	}
	if pad := c.keyW - cellview.StringWidth(e.Key); pad > 0 {
		cell = append(cell, segment{text: strings.Repeat(" ", pad), style: styles.Full.Key})
	}
	if e.Key != "" && e.Desc != "" {
		cell = append(cell, segment{text: " ", style: styles.Full.Desc})
	}
	if e.Desc != "" {
		cell = append(cell, segment{text: e.Desc, style: styles.Full.Desc})
	}
	if !last {
		if pad := c.colW - cell.width(); pad > 0 {
			cell = append(cell, segment{text: strings.Repeat(" ", pad), style: styles.Full.Desc})
		}
	}
	return cell
}

func (h *Help) fullHelpSegments(groups [][]keybind.Keybind, maxWidth int) []helpLine {
	var columns []helpColumn
	for _, group := range groups {
		if col := newHelpColumn(group); len(col.entries) > 0 {
			columns = append(columns, col)
		}
	}
	if len(columns) == 0 {
		return nil
	}

	// Columns are included left to right until the next would overflow.
	sepW := cellview.StringWidth(h.fullSeparator)
	included, totalW := 0, 0
	for i, col := range columns {
		nextW := col.colW
		if i > 0 {
			nextW += sepW
		}
		if maxWidth > 0 && totalW+nextW > maxWidth {
			break
		}
		included++
		totalW += nextW
	}
	if included == 0 {
		return []helpLine{{{text: h.ellipsis, style: h.Styles.Ellipsis}}}
	}

	rows := 0
	for _, col := range columns[:included] {
		rows = max(rows, len(col.entries))
	}
	lines := make([]helpLine, 0, rows)
	for row := range rows {
		var line helpLine
		for i, col := range columns[:included] {
			if i > 0 {
				line = append(line, segment{text: h.fullSeparator, style: h.Styles.Full.Separator})
			}
			line = append(line, col.row(row, i == included-1, h.Styles)...)
		}
		lines = append(lines, line)
	}

	if included < len(columns) {
		lines[0] = append(lines[0], h.truncationTail(lines[0], maxWidth)...)
	}
	return lines
}

// truncationTail returns the ellipsis marker if it fully fits behind current.
func (h *Help) truncationTail(current helpLine, maxWidth int) helpLine {
	if maxWidth <= 0 || h.ellipsis == "" {
		return nil
	}
	tail := helpLine{
		{text: " ", style: h.Styles.Ellipsis},
		{text: h.ellipsis, style: h.Styles.Ellipsis},
	}
	if current.width()+tail.width() <= maxWidth {
		return tail
	}
	return nil
}

func (h *Help) drawSegments(screen tcell.Screen, x, y, width int, segments helpLine) {
	for _, s := range segments {
		if width <= 0 {
			return
		}
		if s.text == "" {
			continue
		}
		_, _, printed := cellview.PrintWithStyle(screen, s.text, x, y, width, cellview.AlignmentLeft, s.style, true)
		x += printed
		width -= printed
	}
}

// entrySegments renders one binding as "key desc", dropping whichever part
// is empty.
func entrySegments(kb keybind.Keybind, styles PartStyles) helpLine {
	if !kb.Enabled() {
		return nil
	}
	var out helpLine
	help := kb.Help()
	if help.Key != "" {
		out = append(out, segment{text: help.Key, style: styles.Key})
	}
	if help.Key != "" && help.Desc != "" {
		out = append(out, segment{text: " ", style: styles.Desc})
	}
	if help.Desc != "" {
		out = append(out, segment{text: help.Desc, style: styles.Desc})
	}
	return out
}

var _ cellview.Primitive = &Help{}
