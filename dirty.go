package cellview

// A box starts out dirty. It becomes clean once the application has drawn it
// and dirty again on any change that affects its appearance. Boxes can be
// linked to a parent box which is dirtied together with them, so a redraw
// request travels up to the root without containers polling their children.

// IsDirty reports whether the box changed since it was last drawn.
func (b *Box) IsDirty() bool {
	return b.dirty.Load()
}

// MarkDirty requests a redraw of the box and of its ancestors.
func (b *Box) MarkDirty() {
	if b.dirty.Swap(true) {
		return
	}
	if parent := b.parent.Load(); parent != nil {
		parent.MarkDirty()
	}
}

// MarkClean is called by the application after drawing. It leaves the
// parent alone.
func (b *Box) MarkClean() {
	b.dirty.Store(false)
}

// Parent returns the box this box is linked to, or nil.
func (b *Box) Parent() *Box {
	return b.parent.Load()
}

// SetDirtyParent links the box to parent.
func (b *Box) SetDirtyParent(parent *Box) {
	if parent != nil && parent != b {
		b.parent.Store(parent)
	}
}

// ClearDirtyParent removes the link to parent. A link to a different box is
// left alone.
func (b *Box) ClearDirtyParent(parent *Box) {
	if parent != nil {
		b.parent.CompareAndSwap(parent, nil)
	}
}

type parentLinker interface {
	SetDirtyParent(parent *Box)
	ClearDirtyParent(parent *Box)
}

// BindParent links child to parent if child is built on a [Box]. Containers
// call it for every child they adopt.
func BindParent(child Primitive, parent *Box) {
	if linker, ok := child.(parentLinker); ok && parent != nil {
		linker.SetDirtyParent(parent)
	}
}

// UnbindParent reverses [BindParent].
func UnbindParent(child Primitive, parent *Box) {
	if linker, ok := child.(parentLinker); ok && parent != nil {
		linker.ClearDirtyParent(parent)
	}
}
