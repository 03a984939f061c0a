package selection

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jrlgen/internal/domain"
	"jrlgen/internal/eventbus"
)

// recordingBus captures published events synchronously
type recordingBus struct {
	mu     sync.Mutex
	events []eventbus.DomainEvent
}

func (b *recordingBus) Publish(event eventbus.DomainEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBus) Subscribe(eventbus.EventType, eventbus.EventHandler) func() { return func() {} }
func (b *recordingBus) Close() {}

func TestService_AppendKeepsCallOrder(t *testing.T) {
	s := NewService(nil)

	s.Append("/b")
	s.Append("/a")
	s.Append("/b")

	assert.Equal(t, []string{"/b", "/a", "/b"}, s.Items())
	assert.Equal(t, 3, s.Count())
}

func TestService_AppendAll(t *testing.T) {
	s := NewService(nil)
	s.Append("/first")

	s.AppendAll([]string{"/x", "/y"})

	assert.Equal(t, []string{"/first", "/x", "/y"}, s.Items())
}

func TestService_AppendAllEmptyIsNoop(t *testing.T) {
	bus := &recordingBus{}
	s := NewService(bus)

	s.AppendAll(nil)

	assert.Empty(t, s.Items())
	assert.Empty(t, bus.events)
}

func TestService_RemoveAt(t *testing.T) {
	s := NewService(nil)
	s.Append("/a")
	s.Append("/b")

	s.RemoveAt(0)

	assert.Equal(t, []string{"/b"}, s.Items())
	assert.Equal(t, []domain.ExportItem{{Type: "book", URI: "/b"}}, s.ExportModel())
}

func TestService_RemoveAtOutOfRangeIsNoop(t *testing.T) {
	tests := []struct {
		name  string
		index int
	}{
		{"negative", -1},
		{"past end", 2},
		{"far past end", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := &recordingBus{}
			s := NewService(bus)
			s.Append("/a")
			s.Append("/b")
			bus.events = nil

			s.RemoveAt(tt.index)

			assert.Equal(t, []string{"/a", "/b"}, s.Items())
			assert.Empty(t, bus.events)
		})
	}
}

func TestService_RemoveAtOnEmptySelection(t *testing.T) {
	s := NewService(nil)

	assert.NotPanics(t, func() { s.RemoveAt(0) })
	assert.Empty(t, s.Items())
}

func TestService_Clear(t *testing.T) {
	s := NewService(nil)
	s.AppendAll([]string{"/a", "/b"})

	s.Clear()

	assert.Empty(t, s.Items())
	assert.False(t, s.HasSelection())
	model := s.ExportModel()
	require.NotNil(t, model)
	assert.Empty(t, model)
}

func TestService_ExportModel(t *testing.T) {
	s := NewService(nil)
	s.Append("/data/one.cbr")
	s.Append("/data/two.cbz")

	assert.Equal(t, []domain.ExportItem{
		{Type: domain.ItemTypeBook, URI: "/data/one.cbr"},
		{Type: domain.ItemTypeBook, URI: "/data/two.cbz"},
	}, s.ExportModel())
}

func TestService_ItemsIsACopy(t *testing.T) {
	s := NewService(nil)
	s.Append("/a")

	items := s.Items()
	items[0] = "/changed"

	assert.Equal(t, []string{"/a"}, s.Items())
}

func TestService_PublishesEvents(t *testing.T) {
	bus := &recordingBus{}
	s := NewService(bus)

	s.Append("/a")
	s.AppendAll([]string{"/b", "/c"})
	s.RemoveAt(1)
	s.Clear()

	require.Len(t, bus.events, 4)
	assert.Equal(t, domain.SelectionChangedEvent{Added: []string{"/a"}, Total: 1}, bus.events[0])
	assert.Equal(t, domain.SelectionChangedEvent{Added: []string{"/b", "/c"}, Total: 3}, bus.events[1])
	assert.Equal(t, domain.SelectionChangedEvent{Removed: []string{"/b"}, Total: 2}, bus.events[2])
	assert.Equal(t, domain.SelectionClearedEvent{Dropped: 2}, bus.events[3])
}
