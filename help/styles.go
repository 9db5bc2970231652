package help

import (
	"github.com/gdamore/tcell/v3"
	"github.com/xqrs/cellview"
)

// PartStyles styles one entry of the help: the key, its description and the
// gap to the next entry.
type PartStyles struct {
	Key       tcell.Style
	Desc      tcell.Style
	Separator tcell.Style
}

// Styles holds the styles of both layouts.
type Styles struct {
	Short    PartStyles
	Full     PartStyles
	Ellipsis tcell.Style
}

// DefaultStyles dims everything but the descriptions.
func DefaultStyles() Styles {
	dim := tcell.StyleDefault.Foreground(cellview.Styles.SecondaryTextColor).Dim(true)
	part := PartStyles{
		Key:       dim,
		Desc:      tcell.StyleDefault.Foreground(cellview.Styles.PrimaryTextColor),
		Separator: dim,
	}
	return Styles{Short: part, Full: part, Ellipsis: dim}
}
