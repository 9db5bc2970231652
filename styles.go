package cellview

import (
	"github.com/gdamore/tcell/v3"
	"github.com/gdamore/tcell/v3/color"
)

// Theme is the palette primitives read when they are created or drawn.
type Theme struct {
	PrimitiveBackgroundColor tcell.Color
	ContrastBackgroundColor  tcell.Color // Panels drawn over the list, such as help.
	BorderColor              tcell.Color
	FocusedBorderColor       tcell.Color
	TitleColor               tcell.Color
	GraphicsColor            tcell.Color // Scroll bars.
	PrimaryTextColor         tcell.Color
	SecondaryTextColor       tcell.Color // Status lines and placeholders.

	SelectedRowBackgroundColor tcell.Color
	SelectedRowTextColor       tcell.Color
	// Used for the focused row while it is not selected.
	FocusedRowBackgroundColor tcell.Color
}

// Styles is the active theme. Changing it affects primitives created or drawn
// afterwards.
var Styles = Theme{
	PrimitiveBackgroundColor: color.Black,
	ContrastBackgroundColor:  color.Blue,
	BorderColor:              color.White,
	FocusedBorderColor:       color.Yellow,
	TitleColor:               color.White,
	GraphicsColor:            color.White,
	PrimaryTextColor:         color.White,
	SecondaryTextColor:       color.Yellow,

	SelectedRowBackgroundColor: color.Blue,
	SelectedRowTextColor:       color.White,
	FocusedRowBackgroundColor:  color.Navy,
}
