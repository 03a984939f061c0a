package selection

// State holds selection state
type State struct {
	Items []string // reading list in the order paths were added
}
