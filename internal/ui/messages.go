package ui

// indexLoadedMsg carries the parsed index once the load finished
type indexLoadedMsg struct {
	paths []string
}

// indexLoadFailedMsg reports that the index could not be loaded
type indexLoadFailedMsg struct {
	err error
}

// exportPagerMsg contains the result of the export pager
type exportPagerMsg struct {
	err error
}

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}
