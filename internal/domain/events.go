package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventIndexLoaded      EventType = "IndexLoaded"
	EventIndexLoadFailed  EventType = "IndexLoadFailed"
	EventQueryChanged     EventType = "QueryChanged"
	EventSelectionChanged EventType = "SelectionChanged"
	EventSelectionCleared EventType = "SelectionCleared"
	EventExportRendered   EventType = "ExportRendered"
	EventIndexBuilt       EventType = "IndexBuilt"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path  string // empty when defaults were used
	Root  string
	Index string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// IndexLoadedEvent is emitted once the index is available
type IndexLoadedEvent struct {
	Source string
	Count  int
}

func (e IndexLoadedEvent) Type() EventType { return EventIndexLoaded }

// IndexLoadFailedEvent is emitted when the index could not be loaded
type IndexLoadFailedEvent struct {
	Source string
	Err    error
}

func (e IndexLoadFailedEvent) Type() EventType { return EventIndexLoadFailed }

// QueryChangedEvent is emitted after every filter pass
type QueryChangedEvent struct {
	Query   string
	Matches int
}

func (e QueryChangedEvent) Type() EventType { return EventQueryChanged }

// SelectionChangedEvent is emitted when paths are added to or removed from the reading list
type SelectionChangedEvent struct {
	Added   []string
	Removed []string
	Total   int
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// SelectionClearedEvent is emitted when the reading list is emptied
type SelectionClearedEvent struct {
	Dropped int
}

func (e SelectionClearedEvent) Type() EventType { return EventSelectionCleared }

// ExportRenderedEvent is emitted when the reading list was rendered for export
type ExportRenderedEvent struct {
	Items int
	Bytes int
}

func (e ExportRenderedEvent) Type() EventType { return EventExportRendered }

// IndexBuiltEvent is emitted when an index file was generated from a directory
type IndexBuiltEvent struct {
	Dir   string
	Count int
}

func (e IndexBuiltEvent) Type() EventType { return EventIndexBuilt }
