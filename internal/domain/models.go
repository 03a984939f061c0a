package domain

// Entry is one matched path in a filter pass
type Entry struct {
	Path string
	Even bool // group marker; false renders as "odd"
}

// FilterResult is the ordered output of a filter pass
type FilterResult []Entry

// Paths returns the matched paths in order
func (r FilterResult) Paths() []string {
	paths := make([]string, 0, len(r))
	for _, e := range r {
		paths = append(paths, e.Path)
	}
	return paths
}

// ItemTypeBook is the only item type the reading list emits
const ItemTypeBook = "book"

// ExportItem is a single reading list record
type ExportItem struct {
	Type string `json:"type" yaml:"type"`
	URI  string `json:"uri" yaml:"uri"`
}

// Export is the document shown to the user on export
type Export struct {
	Items []ExportItem `json:"items" yaml:"items"`
}
