// Package layers stacks primitives on top of each other, e.g. a list with a
// modal help window above it.
package layers

import (
	"slices"

	"github.com/gdamore/tcell/v3"
	"github.com/xqrs/cellview"
)

// Placement decides the rectangle of a layer within the container's inner
// rectangle.
type Placement func(item cellview.Primitive, x, y, width, height int) (int, int, int, int)

// Fill makes the layer cover the whole container.
func Fill(_ cellview.Primitive, x, y, width, height int) (int, int, int, int) {
	return x, y, width, height
}

// Centered places the layer in the middle of the container. Primitives which
// report a Width() or Height(width) are sized accordingly, others get half
// of the container.
func Centered(item cellview.Primitive, x, y, width, height int) (int, int, int, int) {
	w := width / 2
	if sized, ok := item.(interface{ Width() int }); ok {
		w = sized.Width()
	}
	w = min(max(w, 1), width)
	h := height / 2
	if sized, ok := item.(interface{ Height(width int) int }); ok {
		h = sized.Height(w)
	}
	h = min(max(h, 1), height)
	return x + (width-w)/2, y + (height-h)/2, w, h
}

type layer struct {
	name      string
	item      cellview.Primitive
	placement Placement
	visible   bool
	overlay   bool // Dims the layers behind it and blocks their input.
}

// Layers is a container for primitives drawn from back to front. Only the
// front-most visible layer receives key events.
type Layers struct {
	*cellview.Box

	layers []*layer
	// The style applied to layers behind the active overlay layer.
	backgroundLayerStyle tcell.Style
}

// Option configures a layer on AddLayer.
type Option func(*layer)

// WithName sets the layer's name.
func WithName(name string) Option {
	return func(l *layer) {
		l.name = name
	}
}

// WithPlacement sets how the layer is positioned. The default is [Fill].
func WithPlacement(placement Placement) Option {
	return func(l *layer) {
		l.placement = placement
	}
}

// WithVisible sets the initial visibility of the layer.
func WithVisible(visible bool) Option {
	return func(l *layer) {
		l.visible = visible
	}
}

// WithOverlay marks the layer as modal.
func WithOverlay() Option {
	return func(l *layer) {
		l.overlay = true
	}
}

// New returns an empty container.
func New() *Layers {
	return &Layers{
		Box:                  cellview.NewBox(),
		backgroundLayerStyle: tcell.StyleDefault.Dim(true),
	}
}

// AddLayer adds item as the new front layer. A layer with the same name is
// replaced.
func (l *Layers) AddLayer(item cellview.Primitive, opts ...Option) *Layers {
	newLayer := &layer{item: item, placement: Fill, visible: true}
	for _, opt := range opts {
		opt(newLayer)
	}
	if newLayer.name != "" {
		l.RemoveLayer(newLayer.name)
	}
	l.layers = append(l.layers, newLayer)
	cellview.BindParent(item, l.Box)
	l.MarkDirty()
	return l
}

func (l *Layers) find(name string) int {
	return slices.IndexFunc(l.layers, func(ly *layer) bool { return ly.name == name })
}

// RemoveLayer removes the layer with the given name.
func (l *Layers) RemoveLayer(name string) *Layers {
	if index := l.find(name); index >= 0 {
		cellview.UnbindParent(l.layers[index].item, l.Box)
		l.layers = slices.Delete(l.layers, index, index+1)
		l.MarkDirty()
	}
	return l
}

// GetVisible reports whether the named layer exists and is shown.
func (l *Layers) GetVisible(name string) bool {
	index := l.find(name)
	return index >= 0 && l.layers[index].visible
}

// SetLayerVisible shows or hides the named layer. A hidden layer loses focus.
func (l *Layers) SetLayerVisible(name string, visible bool) *Layers {
	index := l.find(name)
	if index < 0 || l.layers[index].visible == visible {
		return l
	}
	ly := l.layers[index]
	if !visible && ly.item.HasFocus() {
		ly.item.Blur()
	}
	ly.visible = visible
	l.MarkDirty()
	return l
}

// GetFrontLayer returns the front-most visible layer. If there are no visible
// layers, ("", nil) is returned.
func (l *Layers) GetFrontLayer() (name string, item cellview.Primitive) {
	if front := l.front(); front != nil {
		return front.name, front.item
	}
	return "", nil
}

// SetBackgroundLayerStyle sets the style applied to layers behind a visible
// overlay layer.
func (l *Layers) SetBackgroundLayerStyle(style tcell.Style) *Layers {
	if l.backgroundLayerStyle != style {
		l.backgroundLayerStyle = style
		l.MarkDirty()
	}
	return l
}

func (l *Layers) front() *layer {
	for index := len(l.layers) - 1; index >= 0; index-- {
		if l.layers[index].visible {
			return l.layers[index]
		}
	}
	return nil
}

// overlayIndex returns the index of the front-most visible overlay layer, or
// -1.
func (l *Layers) overlayIndex() int {
	for index := len(l.layers) - 1; index >= 0; index-- {
		if ly := l.layers[index]; ly.visible && ly.overlay {
			return index
		}
	}
	return -1
}

// IsDirty returns whether this primitive or one of its visible layers needs
// redraw.
func (l *Layers) IsDirty() bool {
	if l.Box.IsDirty() {
		return true
	}
	for _, ly := range l.layers {
		if ly.visible && ly.item.IsDirty() {
			return true
		}
	}
	return false
}

// MarkClean marks this primitive and all layers as clean.
func (l *Layers) MarkClean() {
	l.Box.MarkClean()
	for _, ly := range l.layers {
		ly.item.MarkClean()
	}
}

// HasFocus returns whether a layer has focus.
func (l *Layers) HasFocus() bool {
	for _, ly := range l.layers {
		if ly.item.HasFocus() {
			return true
		}
	}
	return l.Box.HasFocus()
}

// Focus passes the focus to the front-most visible layer.
func (l *Layers) Focus(delegate func(p cellview.Primitive)) {
	if front := l.front(); front != nil && delegate != nil {
		delegate(front.item)
		return
	}
	l.Box.Focus(delegate)
}

// Draw draws the visible layers from back to front.
func (l *Layers) Draw(screen tcell.Screen) {
	l.DrawForSubclass(screen, l)

	x, y, width, height := l.GetInnerRect()
	overlay := l.overlayIndex()
	for index, ly := range l.layers {
		if !ly.visible {
			continue
		}
		layerScreen := screen
		if overlay >= 0 && index < overlay {
			layerScreen = newOverlayScreen(screen, l.backgroundLayerStyle)
		}
		ly.item.SetRect(ly.placement(ly.item, x, y, width, height))
		ly.item.Draw(layerScreen)
	}
}

// focused returns the front-most visible layer holding the focus.
func (l *Layers) focused() cellview.Primitive {
	for _, ly := range slices.Backward(l.layers) {
		if ly.visible && ly.item.HasFocus() {
			return ly.item
		}
	}
	return nil
}

func (l *Layers) InputHandler(event *tcell.EventKey) cellview.Command {
	if item := l.focused(); item != nil {
		return item.InputHandler(event)
	}
	return nil
}

func (l *Layers) PasteHandler(text string) cellview.Command {
	if item := l.focused(); item != nil {
		return item.PasteHandler(text)
	}
	return nil
}

// MouseHandler passes mouse events to the front-most layer under the mouse,
// never to layers behind a visible overlay.
func (l *Layers) MouseHandler(action cellview.MouseAction, event *tcell.EventMouse) (cellview.Primitive, cellview.Command) {
	if !l.InRect(event.Position()) {
		return nil, nil
	}
	overlay := l.overlayIndex()
	for index := len(l.layers) - 1; index >= 0 && index >= overlay; index-- {
		ly := l.layers[index]
		if !ly.visible {
			continue
		}
		x, y, width, height := ly.item.GetRect()
		mx, my := event.Position()
		if mx < x || mx >= x+width || my < y || my >= y+height {
			if ly.overlay {
				return nil, nil
			}
			continue
		}
		return ly.item.MouseHandler(action, event)
	}
	return nil, nil
}

// dimmedScreen merges the attributes and explicit colors of style into
// everything drawn through it.
type dimmedScreen struct {
	tcell.Screen
	style tcell.Style
}

func newOverlayScreen(screen tcell.Screen, style tcell.Style) *dimmedScreen {
	return &dimmedScreen{Screen: screen, style: style}
}

func (s *dimmedScreen) merge(style tcell.Style) tcell.Style {
	if fg := s.style.GetForeground(); fg != tcell.ColorDefault {
		style = style.Foreground(fg)
	}
	if bg := s.style.GetBackground(); bg != tcell.ColorDefault {
		style = style.Background(bg)
	}
	return style.
		Bold(style.HasBold() || s.style.HasBold()).
		Dim(style.HasDim() || s.style.HasDim()).
		Italic(style.HasItalic() || s.style.HasItalic()).
		Reverse(style.HasReverse() || s.style.HasReverse())
}

func (s *dimmedScreen) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	s.Screen.SetContent(x, y, primary, combining, s.merge(style))
}

func (s *dimmedScreen) Put(x, y int, str string, style tcell.Style) (string, int) {
	return s.Screen.Put(x, y, str, s.merge(style))
}

func (s *dimmedScreen) PutStr(x, y int, str string) {
	s.Screen.PutStrStyled(x, y, str, s.merge(tcell.StyleDefault))
}

func (s *dimmedScreen) PutStrStyled(x, y int, str string, style tcell.Style) {
	s.Screen.PutStrStyled(x, y, str, s.merge(style))
}

var _ cellview.Primitive = &Layers{}
