package eventbus

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jrlgen/internal/domain"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBus_DeliversToSubscribers(t *testing.T) {
	b := New(quietLogger())
	defer b.Close()

	got := make(chan DomainEvent, 1)
	b.Subscribe(EventIndexLoaded, func(e DomainEvent) { got <- e })

	b.Publish(domain.IndexLoadedEvent{Source: "all-files.txt", Count: 3})

	select {
	case e := <-got:
		loaded, ok := e.(domain.IndexLoadedEvent)
		require.True(t, ok, "unexpected event type %T", e)
		assert.Equal(t, 3, loaded.Count)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestBus_OnlyMatchingTypeIsDelivered(t *testing.T) {
	b := New(quietLogger())
	defer b.Close()

	got := make(chan DomainEvent, 2)
	b.Subscribe(EventSelectionCleared, func(e DomainEvent) { got <- e })

	b.Publish(domain.QueryChangedEvent{Query: "x"})
	b.Publish(domain.SelectionClearedEvent{Dropped: 2})

	select {
	case e := <-got:
		assert.Equal(t, EventSelectionCleared, e.Type())
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}

	select {
	case e := <-got:
		t.Fatalf("unexpected extra event %v", e.Type())
	case <-time.After(100 * time.Millisecond):
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	b := New(quietLogger())
	defer b.Close()

	first := make(chan struct{}, 1)
	second := make(chan struct{}, 1)
	unsubscribe := b.Subscribe(EventExportRendered, func(DomainEvent) { first <- struct{}{} })
	b.Subscribe(EventExportRendered, func(DomainEvent) { second <- struct{}{} })

	unsubscribe()
	b.Publish(domain.ExportRenderedEvent{Items: 1})

	select {
	case <-second:
	case <-time.After(2 * time.Second):
		t.Fatal("remaining subscriber was not called")
	}

	select {
	case <-first:
		t.Fatal("unsubscribed handler was called")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestBus_HandlerPanicIsRecovered(t *testing.T) {
	b := New(quietLogger())
	defer b.Close()

	done := make(chan struct{}, 1)
	b.Subscribe(EventIndexBuilt, func(DomainEvent) { panic("boom") })
	b.Subscribe(EventIndexBuilt, func(DomainEvent) { done <- struct{}{} })

	b.Publish(domain.IndexBuiltEvent{Dir: "/tmp", Count: 1})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("healthy handler did not run")
	}
}

func TestBus_PublishAfterCloseIsIgnored(t *testing.T) {
	b := New(quietLogger())
	b.Close()

	assert.NotPanics(t, func() {
		b.Publish(domain.SelectionClearedEvent{})
		b.Close()
	})
}

func TestNullBus(t *testing.T) {
	var b EventBus = NullBus{}
	unsubscribe := b.Subscribe(EventIndexLoaded, func(DomainEvent) { t.Fatal("called") })
	b.Publish(domain.IndexLoadedEvent{})
	unsubscribe()
	b.Close()
}
