package cellview

import "github.com/gdamore/tcell/v3"

// Placeholder is the region a list shows instead of its rows while it has no
// items. It centres a single content primitive.
type Placeholder struct {
	*Box

	content Primitive
}

// NewPlaceholder returns an empty placeholder region.
func NewPlaceholder() *Placeholder {
	return &Placeholder{Box: NewBox()}
}

// SetContent replaces the content. Setting the current content again does
// nothing.
func (p *Placeholder) SetContent(content Primitive) *Placeholder {
	if p.content == content {
		return p
	}
	UnbindParent(p.content, p.Box)
	p.content = content
	BindParent(content, p.Box)
	p.MarkDirty()
	return p
}

// Content returns the content primitive.
func (p *Placeholder) Content() Primitive {
	return p.content
}

// PrefWidth returns the width the content would like to have.
func (p *Placeholder) PrefWidth() int {
	switch c := p.content.(type) {
	case nil:
		return 0
	case interface{ Width() int }:
		return c.Width()
	default:
		_, _, width, _ := c.GetRect()
		return width
	}
}

// contentHeight returns the rows the content needs at the given width.
func (p *Placeholder) contentHeight(width int) int {
	if c, ok := p.content.(interface{ Height(width int) int }); ok {
		return c.Height(width)
	}
	return 1
}

// Draw draws the placeholder with its content centred in it.
func (p *Placeholder) Draw(screen tcell.Screen) {
	if !p.visible {
		return
	}
	p.DrawForSubclass(screen, p)
	if p.content == nil {
		return
	}

	x, y, width, height := p.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}
	contentWidth := min(max(p.PrefWidth(), 1), width)
	contentHeight := min(max(p.contentHeight(contentWidth), 1), height)
	p.content.SetRect(x+(width-contentWidth)/2, y+(height-contentHeight)/2, contentWidth, contentHeight)
	p.content.Draw(screen)
}

// IsDirty returns whether the placeholder or its content needs redraw.
func (p *Placeholder) IsDirty() bool {
	return p.Box.IsDirty() || (p.content != nil && p.content.IsDirty())
}

// MarkClean marks the placeholder and its content as clean.
func (p *Placeholder) MarkClean() {
	p.Box.MarkClean()
	if p.content != nil {
		p.content.MarkClean()
	}
}

var _ Primitive = &Placeholder{}
