package cellview

import (
	"strings"

	"github.com/gdamore/tcell/v3"
	"github.com/rivo/uniseg"
)

// Alignment positions text within the width available to it.
type Alignment int

const (
	AlignmentLeft Alignment = iota
	AlignmentCenter
	AlignmentRight
)

// grapheme is one user-perceived character of a text together with the line
// break opportunity that follows it.
type grapheme struct {
	text      string
	width     int
	canBreak  bool
	mustBreak bool
}

// graphemes splits text into its grapheme clusters. The end of the text is
// never reported as a break opportunity unless it is an explicit newline.
func graphemes(text string) []grapheme {
	var (
		out        []grapheme
		cluster    string
		boundaries int
	)
	state := -1
	for text != "" {
		cluster, text, boundaries, state = uniseg.StepString(text, state)
		if text == "" && !uniseg.HasTrailingLineBreakInString(cluster) {
			boundaries &^= uniseg.MaskLine
		}
		out = append(out, grapheme{
			text:      cluster,
			width:     boundaries >> uniseg.ShiftWidth,
			canBreak:  boundaries&uniseg.MaskLine == uniseg.LineCanBreak,
			mustBreak: boundaries&uniseg.MaskLine == uniseg.LineMustBreak,
		})
	}
	return out
}

// StringWidth returns the number of screen cells needed to print text.
func StringWidth(text string) int {
	return uniseg.StringWidth(text)
}

// WordWrap splits text into lines no wider than width cells. Lines are broken
// after the last break opportunity that still fits, or in the middle of a word
// when there is none. Explicit newlines always start a new line.
func WordWrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}

	var lines []string
	var start, pos, lineWidth int
	lastBreak, breakWidth := -1, 0
	for _, g := range graphemes(text) {
		if lineWidth+g.width > width {
			if lastBreak < 0 {
				lines = append(lines, text[start:pos])
				start, lineWidth = pos, 0
			} else {
				lines = append(lines, text[start:lastBreak])
				start = lastBreak
				lineWidth -= breakWidth
			}
			lastBreak, breakWidth = -1, 0
		}

		pos += len(g.text)
		lineWidth += g.width

		switch {
		case g.mustBreak:
			lines = append(lines, strings.TrimRight(text[start:pos], "\n\r"))
			start, lineWidth = pos, 0
			lastBreak, breakWidth = -1, 0
		case g.canBreak:
			lastBreak, breakWidth = pos, lineWidth
		}
	}
	return append(lines, text[start:])
}

// PrintWithStyle prints a single line of text at (x, y) into at most maxWidth
// cells and returns the byte range of text that was printed and the number of
// cells it covers. Text too wide for right alignment loses its beginning,
// centered text loses both ends. With maintainBackground, the style's
// background is replaced by whatever is already on the screen.
func PrintWithStyle(screen tcell.Screen, text string, x, y, maxWidth int, alignment Alignment, style tcell.Style, maintainBackground bool) (start, end, printedWidth int) {
	screenWidth, screenHeight := screen.Size()
	if maxWidth <= 0 || text == "" || y < 0 || y >= screenHeight {
		return 0, 0, 0
	}

	clusters := graphemes(text)
	total := 0
	for _, g := range clusters {
		total += g.width
	}

	first := 0
	drop := func(cells int) {
		for first < len(clusters) && cells > 0 {
			cells -= clusters[first].width
			total -= clusters[first].width
			start += len(clusters[first].text)
			first++
		}
	}
	switch alignment {
	case AlignmentRight:
		drop(total - maxWidth)
		x, maxWidth = x+maxWidth-total, total
	case AlignmentCenter:
		drop((total - maxWidth) / 2)
		if total < maxWidth {
			x, maxWidth = x+maxWidth/2-total/2, total
		}
	}

	end = start
	right := min(x+maxWidth, screenWidth)
	for _, g := range clusters[first:] {
		if x >= right {
			break
		}
		if g.width > 0 {
			cellStyle := style
			if maintainBackground {
				_, existing, _ := screen.Get(x, y)
				cellStyle = cellStyle.Background(existing.GetBackground())
			}
			for fill := 1; fill < g.width; fill++ {
				screen.Put(x+fill, y, " ", cellStyle)
			}
			screen.Put(x, y, g.text, cellStyle)
		}
		x += g.width
		end += len(g.text)
		printedWidth += g.width
	}
	return start, end, printedWidth
}
