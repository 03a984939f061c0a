package logic

// Navigator handles cursor movement and viewport management for one list
type Navigator struct {
	selectedIndex  int
	viewportOffset int
	viewportHeight int
	total          int
}

// NewNavigator creates a new navigator
func NewNavigator() *Navigator {
	return &Navigator{
		viewportHeight: 10, // updated on first WindowSizeMsg
	}
}

// SelectedIndex returns the current cursor position
func (n *Navigator) SelectedIndex() int {
	return n.selectedIndex
}

// ViewportOffset returns the index of the first visible item
func (n *Navigator) ViewportOffset() int {
	return n.viewportOffset
}

// ViewportHeight returns the number of visible items
func (n *Navigator) ViewportHeight() int {
	return n.viewportHeight
}

// Total returns the number of items in the list
func (n *Navigator) Total() int {
	return n.total
}

// SetTotal updates the item count and clamps the cursor into range
func (n *Navigator) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	n.total = total
	n.clamp()
	n.ensureSelectedVisible()
}

// SetViewportHeight updates the number of visible items
func (n *Navigator) SetViewportHeight(height int) {
	if height < 1 {
		height = 1
	}
	n.viewportHeight = height
	n.ensureSelectedVisible()
}

// SetSelectedIndex sets the selected index and ensures it's visible
func (n *Navigator) SetSelectedIndex(index int) (int, int) {
	n.selectedIndex = index
	n.clamp()
	n.ensureSelectedVisible()
	return n.selectedIndex, n.viewportOffset
}

// MoveUp moves the cursor one item up
func (n *Navigator) MoveUp() {
	n.SetSelectedIndex(n.selectedIndex - 1)
}

// MoveDown moves the cursor one item down
func (n *Navigator) MoveDown() {
	n.SetSelectedIndex(n.selectedIndex + 1)
}

// PageUp moves the cursor one viewport up
func (n *Navigator) PageUp() {
	n.SetSelectedIndex(n.selectedIndex - n.viewportHeight)
}

// PageDown moves the cursor one viewport down
func (n *Navigator) PageDown() {
	n.SetSelectedIndex(n.selectedIndex + n.viewportHeight)
}

// Top jumps to the first item
func (n *Navigator) Top() {
	n.SetSelectedIndex(0)
}

// Bottom jumps to the last item
func (n *Navigator) Bottom() {
	n.SetSelectedIndex(n.total - 1)
}

// VisibleRange returns the half-open index range shown in the viewport
func (n *Navigator) VisibleRange() (int, int) {
	end := n.viewportOffset + n.viewportHeight
	if end > n.total {
		end = n.total
	}
	return n.viewportOffset, end
}

func (n *Navigator) clamp() {
	if n.selectedIndex >= n.total {
		n.selectedIndex = n.total - 1
	}
	if n.selectedIndex < 0 {
		n.selectedIndex = 0
	}
}

// ensureSelectedVisible adjusts the viewport to keep the selected item visible
func (n *Navigator) ensureSelectedVisible() {
	// If selected item is above viewport, scroll up
	if n.selectedIndex < n.viewportOffset {
		n.viewportOffset = n.selectedIndex
	}

	// If selected item is below viewport, scroll down
	if n.selectedIndex >= n.viewportOffset+n.viewportHeight {
		n.viewportOffset = n.selectedIndex - n.viewportHeight + 1
	}

	// Never leave empty rows at the bottom when the list could fill them
	maxOffset := n.total - n.viewportHeight
	if maxOffset < 0 {
		maxOffset = 0
	}
	if n.viewportOffset > maxOffset {
		n.viewportOffset = maxOffset
	}
	if n.viewportOffset < 0 {
		n.viewportOffset = 0
	}
}
