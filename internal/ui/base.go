package ui

// Base holds the focus and size state every component needs.
// Embed it in component models:
//
//	type Model struct {
//	    ui.Base
//	    bar progress.Model
//	}
type Base struct {
	width, height int
	focused       bool
}

func (b *Base) SetFocused(focused bool) { b.focused = focused }

func (b Base) IsFocused() bool { return b.focused }

// SetSize sets the area the component may draw in.
func (b *Base) SetSize(width, height int) {
	b.width = width
	b.height = height
}

func (b Base) Width() int  { return b.width }
func (b Base) Height() int { return b.height }

// InBounds reports whether the component-relative cell x, y lies inside
// the component's area.
func (b Base) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.width && y < b.height
}
