package selection

import (
	"jrlgen/internal/domain"
	"jrlgen/internal/eventbus"
)

// Service owns the reading list
type Service struct {
	state *State
	bus   eventbus.EventBus
}

// NewService creates a new selection service
func NewService(bus eventbus.EventBus) *Service {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	return &Service{
		state: &State{Items: make([]string, 0)},
		bus:   bus,
	}
}

// Append adds a path to the end of the reading list
func (s *Service) Append(path string) {
	s.state.Items = append(s.state.Items, path)

	s.bus.Publish(domain.SelectionChangedEvent{
		Added: []string{path},
		Total: len(s.state.Items),
	})
}

// AppendAll adds paths to the end of the reading list, keeping their order
func (s *Service) AppendAll(paths []string) {
	if len(paths) == 0 {
		return
	}
	s.state.Items = append(s.state.Items, paths...)

	added := make([]string, len(paths))
	copy(added, paths)
	s.bus.Publish(domain.SelectionChangedEvent{
		Added: added,
		Total: len(s.state.Items),
	})
}

// RemoveAt removes the entry at index. Out of range indices are ignored.
func (s *Service) RemoveAt(index int) {
	if index < 0 || index >= len(s.state.Items) {
		return
	}

	removed := s.state.Items[index]
	s.state.Items = append(s.state.Items[:index], s.state.Items[index+1:]...)

	s.bus.Publish(domain.SelectionChangedEvent{
		Removed: []string{removed},
		Total:   len(s.state.Items),
	})
}

// Clear empties the reading list
func (s *Service) Clear() {
	dropped := len(s.state.Items)
	s.state.Items = make([]string, 0)

	s.bus.Publish(domain.SelectionClearedEvent{Dropped: dropped})
}

// Items returns a copy of the reading list
func (s *Service) Items() []string {
	items := make([]string, len(s.state.Items))
	copy(items, s.state.Items)
	return items
}

// Count returns the number of entries in the reading list
func (s *Service) Count() int {
	return len(s.state.Items)
}

// HasSelection returns true if the reading list is not empty
func (s *Service) HasSelection() bool {
	return len(s.state.Items) > 0
}

// ExportModel returns the reading list as export records
func (s *Service) ExportModel() []domain.ExportItem {
	items := make([]domain.ExportItem, 0, len(s.state.Items))
	for _, path := range s.state.Items {
		items = append(items, domain.ExportItem{Type: domain.ItemTypeBook, URI: path})
	}
	return items
}
