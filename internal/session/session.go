// Package session owns the state of one reading-list session: the loaded
// index, the current query and its filter result, and the reading list.
//
// All commands are synchronous and meant to be called from a single control
// loop. Until an index is set, or after the load failed, every command is a
// no-op.
package session

import (
	"fmt"
	"log/slog"

	"jrlgen/internal/domain"
	"jrlgen/internal/eventbus"
	"jrlgen/internal/export"
	"jrlgen/internal/logic"
	"jrlgen/internal/selection"
)

// Session is the controller the UI dispatches user commands to
type Session struct {
	bus       eventbus.EventBus
	logger    *slog.Logger
	selection *selection.Service

	source  string
	index   []string
	loaded  bool
	loadErr error

	query    string
	filtered domain.FilterResult
}

// New creates an empty session waiting for its index
func New(bus eventbus.EventBus, logger *slog.Logger) *Session {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		bus:       bus,
		logger:    logger,
		selection: selection.NewService(bus),
		filtered:  make(domain.FilterResult, 0),
	}
}

// SetIndex installs the loaded index and runs the initial empty-query pass
func (s *Session) SetIndex(source string, paths []string) {
	if s.loaded || s.loadErr != nil {
		s.logger.Warn("ignoring second index load", slog.String("source", source))
		return
	}

	s.source = source
	s.index = make([]string, len(paths))
	copy(s.index, paths)
	s.loaded = true

	s.bus.Publish(domain.IndexLoadedEvent{Source: source, Count: len(s.index)})
	s.OnQueryChanged("")
}

// OnLoadFailed records the load failure and leaves the session inert
func (s *Session) OnLoadFailed(source string, err error) {
	if s.loaded {
		return
	}
	s.source = source
	s.loadErr = err

	s.logger.Error("session inert after index load failure",
		slog.String("source", source),
		slog.String("error", err.Error()))
	s.bus.Publish(domain.IndexLoadFailedEvent{Source: source, Err: err})
}

// Loaded reports whether the index is available
func (s *Session) Loaded() bool {
	return s.loaded
}

// Err returns the index load failure, if any
func (s *Session) Err() error {
	return s.loadErr
}

// Source returns where the index was loaded from
func (s *Session) Source() string {
	return s.source
}

// Index returns the loaded index
func (s *Session) Index() []string {
	return s.index
}

// Query returns the query of the current filter result
func (s *Session) Query() string {
	return s.query
}

// Filtered returns the current filter result
func (s *Session) Filtered() domain.FilterResult {
	return s.filtered
}

// Selection returns the reading list in append order
func (s *Session) Selection() []string {
	return s.selection.Items()
}

// OnQueryChanged recomputes the filter result for query
func (s *Session) OnQueryChanged(query string) domain.FilterResult {
	if !s.loaded {
		return s.filtered
	}

	s.query = query
	s.filtered = logic.Filter(s.index, query)

	s.logger.Debug("filtered", slog.String("query", query), slog.Int("matches", len(s.filtered)))
	s.bus.Publish(domain.QueryChangedEvent{Query: query, Matches: len(s.filtered)})
	return s.filtered
}

// OnSelect appends path to the reading list
func (s *Session) OnSelect(path string) {
	if !s.loaded {
		return
	}
	s.selection.Append(path)
}

// OnSelectResult appends the i-th entry of the current filter result.
// Out of range indices are ignored.
func (s *Session) OnSelectResult(i int) {
	if !s.loaded || i < 0 || i >= len(s.filtered) {
		return
	}
	s.selection.Append(s.filtered[i].Path)
}

// OnAddAll appends every entry of the current filter result
func (s *Session) OnAddAll() {
	if !s.loaded {
		return
	}
	s.selection.AppendAll(s.filtered.Paths())
}

// OnDeselect removes the reading list entry at position i
func (s *Session) OnDeselect(i int) {
	if !s.loaded {
		return
	}
	s.selection.RemoveAt(i)
}

// OnClear empties the reading list
func (s *Session) OnClear() {
	if !s.loaded {
		return
	}
	s.selection.Clear()
}

// ExportModel returns the reading list as an export document
func (s *Session) ExportModel() domain.Export {
	return export.NewDocument(s.selection.ExportModel())
}

// OnExport renders the reading list as pretty-printed JSON
func (s *Session) OnExport() ([]byte, error) {
	return s.OnExportAs(export.FormatJSON)
}

// OnExportAs renders the reading list in the given format
func (s *Session) OnExportAs(format export.Format) ([]byte, error) {
	if !s.loaded {
		return nil, fmt.Errorf("nothing to export: index not loaded")
	}

	out, err := export.Render(s.ExportModel(), format)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(domain.ExportRenderedEvent{Items: s.selection.Count(), Bytes: len(out)})
	return out, nil
}
