package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"jrlgen/internal/domain"
)

// Pane identifies one of the two lists
type Pane int

const (
	PaneResults Pane = iota
	PaneSelection
)

// ListState is the visible slice of one pane
type ListState struct {
	Cursor int
	Offset int
	Height int
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	Loading       bool
	LoadError     string
	Source        string
	IndexCount    int
	QueryInput    string
	Results       domain.FilterResult
	ResultList    ListState
	Selection     []string
	SelectionList ListState
	Focus         Pane
	StatusMessage string
	ShowHelp      bool
	HelpModel     help.Model
	KeyMap        help.KeyMap
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		popupRender: NewPopupRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	if state.LoadError != "" {
		return r.renderLoadError(state)
	}

	content := &strings.Builder{}
	content.WriteString(r.renderTitle(state))
	content.WriteString("\n")

	if state.Loading {
		content.WriteString(r.styles.StatusLoading.Render(fmt.Sprintf("Loading index from %s...", state.Source)))
		return r.styles.Main.Render(content.String())
	}

	content.WriteString(r.styles.Query.Render(state.QueryInput))
	content.WriteString("\n")

	paneWidth := r.paneWidth(state.Width)
	results := r.renderPane(
		fmt.Sprintf("Results (%d)", len(state.Results)),
		r.resultLines(state, paneWidth),
		state.ResultList, len(state.Results), paneWidth,
		state.Focus == PaneResults,
	)
	selection := r.renderPane(
		fmt.Sprintf("Reading list (%d)", len(state.Selection)),
		r.selectionLines(state, paneWidth),
		state.SelectionList, len(state.Selection), paneWidth,
		state.Focus == PaneSelection,
	)
	content.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, results, " ", selection))
	content.WriteString("\n")

	if state.StatusMessage != "" {
		content.WriteString(r.styles.Status.Render(state.StatusMessage))
	}

	if state.ShowHelp && state.KeyMap != nil {
		content.WriteString("\n")
		content.WriteString(state.HelpModel.View(state.KeyMap))
	}

	return r.styles.Main.Render(content.String())
}

func (r *Renderer) renderTitle(state ViewState) string {
	logo := r.styles.Title.Render("jrlgen")
	if state.Loading {
		return logo
	}

	right := r.styles.Dim.Render(fmt.Sprintf("%d entries | %d selected", state.IndexCount, len(state.Selection)))

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80 // Default terminal width
	}
	padding := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(right)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + right
}

func (r *Renderer) renderLoadError(state ViewState) string {
	var popup strings.Builder
	popup.WriteString(r.styles.StatusError.Bold(true).Render("Could not load the index"))
	popup.WriteString("\n\n")
	popup.WriteString(state.LoadError)
	popup.WriteString("\n\n")
	popup.WriteString(r.styles.Help.Render("ctrl+c to quit"))

	return r.popupRender.RenderPopup(popup.String(), state.Height, state.Width, r.styles.ErrorBox)
}

// paneWidth is the inner width of each of the two side by side panes
func (r *Renderer) paneWidth(termWidth int) int {
	if termWidth <= 0 {
		termWidth = 80
	}
	// main padding, two borders per pane and the gap between panes
	w := (termWidth - 4 - 4 - 1) / 2
	if w < 10 {
		w = 10
	}
	return w
}

func (r *Renderer) resultLines(state ViewState, width int) []string {
	start, end := visibleRange(state.ResultList, len(state.Results))
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		entry := state.Results[i]
		style := r.styles.OddRow
		if entry.Even {
			style = r.styles.EvenRow
		}
		if i == state.ResultList.Cursor && state.Focus == PaneResults {
			style = r.styles.Highlight.Inherit(r.styles.HighlightBg)
		}
		lines = append(lines, style.Width(width).MaxWidth(width).Render(entry.Path))
	}
	return lines
}

func (r *Renderer) selectionLines(state ViewState, width int) []string {
	start, end := visibleRange(state.SelectionList, len(state.Selection))
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		line := fmt.Sprintf(`{"type": %q, "uri": %q}`, domain.ItemTypeBook, state.Selection[i])
		style := r.styles.OddRow
		if i == state.SelectionList.Cursor && state.Focus == PaneSelection {
			style = r.styles.Highlight.Inherit(r.styles.HighlightBg)
		}
		lines = append(lines, style.Width(width).MaxWidth(width).Render(line))
	}
	return lines
}

func (r *Renderer) renderPane(title string, lines []string, list ListState, total, width int, active bool) string {
	body := make([]string, 0, list.Height+2)
	body = append(body, r.styles.PaneTitle.Render(title))

	if list.Offset > 0 {
		body = append(body, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above", list.Offset)))
	} else {
		body = append(body, "")
	}

	body = append(body, lines...)
	for i := len(lines); i < list.Height; i++ {
		body = append(body, "")
	}

	below := total - list.Offset - len(lines)
	if below > 0 {
		body = append(body, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below", below)))
	} else {
		body = append(body, "")
	}

	style := r.styles.Pane
	if active {
		style = r.styles.ActivePane
	}
	return style.Width(width).Render(strings.Join(body, "\n"))
}

func visibleRange(list ListState, total int) (int, int) {
	start := list.Offset
	if start > total {
		start = total
	}
	if start < 0 {
		start = 0
	}
	end := start + list.Height
	if end > total {
		end = total
	}
	return start, end
}
