package ui

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"jrlgen/internal/config"
	"jrlgen/internal/export"
	"jrlgen/internal/session"
	"jrlgen/internal/ui/logic"
	"jrlgen/internal/ui/views"
)

// lines used by everything except the list rows: padding, title, query,
// pane borders, pane title, scroll indicators, status and help
const chromeHeight = 12

// IndexLoader fetches the raw index for the session
type IndexLoader interface {
	Load(ctx context.Context) ([]string, error)
}

// Model represents the UI state
type Model struct {
	ctx     context.Context
	session *session.Session
	loader  IndexLoader
	source  string
	config  *config.Config
	logger  *slog.Logger

	// UI-specific state not in the session
	width    int
	height   int
	keys     keyMap
	help     help.Model
	query    textinput.Model
	focus    views.Pane
	loading  bool
	status   string
	showHelp bool

	results   *logic.Navigator
	selection *logic.Navigator
	renderer  *views.Renderer

	lastExport []byte
}

// NewModel creates a new UI model. The index is loaded by Init.
func NewModel(ctx context.Context, sess *session.Session, loader IndexLoader, source string, cfg *config.Config, logger *slog.Logger) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	query := textinput.New()
	query.Prompt = "filter> "
	query.Placeholder = "type to filter"
	query.Focus()

	return &Model{
		ctx:       ctx,
		session:   sess,
		loader:    loader,
		source:    source,
		config:    cfg,
		logger:    logger,
		keys:      newKeyMap(),
		help:      help.New(),
		query:     query,
		focus:     views.PaneResults,
		loading:   true,
		showHelp:  cfg.UI.ShowHelp,
		results:   logic.NewNavigator(),
		selection: logic.NewNavigator(),
		renderer:  views.NewRenderer(),
	}
}

// LastExport returns the most recent export document, nil if none
func (m *Model) LastExport() []byte {
	return m.lastExport
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadIndex(), textinput.Blink)
}

// loadIndex runs the single asynchronous load of the session
func (m *Model) loadIndex() tea.Cmd {
	return func() tea.Msg {
		paths, err := m.loader.Load(m.ctx)
		if err != nil {
			return indexLoadFailedMsg{err: err}
		}
		return indexLoadedMsg{paths: paths}
	}
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateViewportHeight()
		return m, nil

	case indexLoadedMsg:
		m.loading = false
		m.session.SetIndex(m.source, msg.paths)
		m.syncResults()
		m.status = fmt.Sprintf("Loaded %d entries from %s", len(m.session.Index()), m.source)
		m.logger.Info("index loaded", slog.String("source", m.source), slog.Int("count", len(msg.paths)))
		return m, nil

	case indexLoadFailedMsg:
		m.loading = false
		m.session.OnLoadFailed(m.source, msg.err)
		return m, nil

	case exportPagerMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Pager failed: %v", msg.err)
			m.logger.Error("export pager failed", slog.String("error", msg.err.Error()))
		}
		return m, nil

	case helpPagerMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Pager failed: %v", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// Blocking states only accept quit
	if m.loading || m.session.Err() != nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.SwitchPane):
		if m.focus == views.PaneResults {
			m.focus = views.PaneSelection
		} else {
			m.focus = views.PaneResults
		}

	case key.Matches(msg, m.keys.Up):
		m.focused().MoveUp()

	case key.Matches(msg, m.keys.Down):
		m.focused().MoveDown()

	case key.Matches(msg, m.keys.PageUp):
		m.focused().PageUp()

	case key.Matches(msg, m.keys.PageDown):
		m.focused().PageDown()

	case key.Matches(msg, m.keys.Toggle):
		if m.focus == views.PaneResults {
			m.session.OnSelectResult(m.results.SelectedIndex())
		} else {
			m.session.OnDeselect(m.selection.SelectedIndex())
		}
		m.syncSelection()

	case key.Matches(msg, m.keys.ClearQuery):
		m.query.SetValue("")
		m.applyQuery()

	case key.Matches(msg, m.keys.AddAll):
		m.session.OnAddAll()
		m.syncSelection()
		m.status = fmt.Sprintf("Added %d entries", len(m.session.Filtered()))

	case key.Matches(msg, m.keys.ClearSelection):
		m.session.OnClear()
		m.syncSelection()
		m.status = "Reading list cleared"

	case key.Matches(msg, m.keys.Export):
		return m, m.exportSelection()

	case key.Matches(msg, m.keys.Help):
		content := NewHelpRenderer().RenderHelpContent(m.keys)
		return m, tea.Exec(export.NewPager([]byte(content)), func(err error) tea.Msg {
			return helpPagerMsg{err: err}
		})

	default:
		before := m.query.Value()
		var cmd tea.Cmd
		m.query, cmd = m.query.Update(msg)
		if m.query.Value() != before {
			m.applyQuery()
		}
		return m, cmd
	}

	return m, nil
}

// exportSelection renders the reading list and opens it in the pager
func (m *Model) exportSelection() tea.Cmd {
	out, err := m.session.OnExport()
	if err != nil {
		m.status = fmt.Sprintf("Export failed: %v", err)
		m.logger.Error("export failed", slog.String("error", err.Error()))
		return nil
	}

	m.lastExport = out
	m.status = fmt.Sprintf("Exported %d entries, printed on exit", len(m.session.Selection()))

	return tea.Exec(export.NewPager(out), func(err error) tea.Msg {
		return exportPagerMsg{err: err}
	})
}

func (m *Model) applyQuery() {
	m.session.OnQueryChanged(m.query.Value())
	m.syncResults()
}

func (m *Model) syncResults() {
	m.results.SetTotal(len(m.session.Filtered()))
	m.results.Top()
}

func (m *Model) syncSelection() {
	m.selection.SetTotal(len(m.session.Selection()))
}

func (m *Model) focused() *logic.Navigator {
	if m.focus == views.PaneSelection {
		return m.selection
	}
	return m.results
}

func (m *Model) updateViewportHeight() {
	h := m.height - chromeHeight
	if !m.showHelp {
		h++
	}
	m.results.SetViewportHeight(h)
	m.selection.SetViewportHeight(h)
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	state := views.ViewState{
		Width:      m.width,
		Height:     m.height,
		Loading:    m.loading,
		Source:     m.source,
		IndexCount: len(m.session.Index()),
		QueryInput: m.query.View(),
		Results:    m.session.Filtered(),
		ResultList: views.ListState{
			Cursor: m.results.SelectedIndex(),
			Offset: m.results.ViewportOffset(),
			Height: m.results.ViewportHeight(),
		},
		Selection: m.session.Selection(),
		SelectionList: views.ListState{
			Cursor: m.selection.SelectedIndex(),
			Offset: m.selection.ViewportOffset(),
			Height: m.selection.ViewportHeight(),
		},
		Focus:         m.focus,
		StatusMessage: m.status,
		ShowHelp:      m.showHelp,
		HelpModel:     m.help,
		KeyMap:        m.keys,
	}
	if err := m.session.Err(); err != nil {
		state.LoadError = err.Error()
	}

	return m.renderer.Render(state)
}
