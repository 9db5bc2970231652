package cellview

// Glyphs drawn by the primitives of this package.
const (
	SemigraphicsHorizontalEllipsis = "…"
	BlockFullBlock                 = "█"

	BoxDrawingsLightHorizontal      = "─"
	BoxDrawingsLightVertical        = "│"
	BoxDrawingsLightDownAndRight    = "┌"
	BoxDrawingsLightDownAndLeft     = "┐"
	BoxDrawingsLightUpAndRight      = "└"
	BoxDrawingsLightUpAndLeft       = "┘"
	BoxDrawingsLightArcDownAndRight = "╭"
	BoxDrawingsLightArcDownAndLeft  = "╮"
	BoxDrawingsLightArcUpAndLeft    = "╯"
	BoxDrawingsLightArcUpAndRight   = "╰"
)

// Borders selects the sides of a box that get a border.
type Borders uint

const (
	BordersTop Borders = 1 << iota
	BordersBottom
	BordersLeft
	BordersRight

	BordersNone Borders = 0
	BordersAll          = BordersTop | BordersBottom | BordersLeft | BordersRight
)

// Has reports whether any of the sides in flag is set.
func (b Borders) Has(flag Borders) bool {
	return b&flag != 0
}

// BorderSet holds one glyph per side and corner of a border.
type BorderSet struct {
	Top, Bottom, Left, Right                   string
	TopLeft, TopRight, BottomLeft, BottomRight string
}

// BorderSetPlain draws thin lines with square corners.
func BorderSetPlain() BorderSet {
	return BorderSet{
		Top:         BoxDrawingsLightHorizontal,
		Bottom:      BoxDrawingsLightHorizontal,
		Left:        BoxDrawingsLightVertical,
		Right:       BoxDrawingsLightVertical,
		TopLeft:     BoxDrawingsLightDownAndRight,
		TopRight:    BoxDrawingsLightDownAndLeft,
		BottomLeft:  BoxDrawingsLightUpAndRight,
		BottomRight: BoxDrawingsLightUpAndLeft,
	}
}

// BorderSetRound is [BorderSetPlain] with rounded corners.
func BorderSetRound() BorderSet {
	set := BorderSetPlain()
	set.TopLeft, set.TopRight = BoxDrawingsLightArcDownAndRight, BoxDrawingsLightArcDownAndLeft
	set.BottomLeft, set.BottomRight = BoxDrawingsLightArcUpAndRight, BoxDrawingsLightArcUpAndLeft
	return set
}
