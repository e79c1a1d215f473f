package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sandevgo/factdeck/internal/core"
	"github.com/sandevgo/factdeck/internal/service/browser"
	"github.com/sandevgo/factdeck/internal/service/ui"
	"github.com/sandevgo/factdeck/internal/service/view"
	"github.com/sandevgo/factdeck/pkg/log"
)

type focusArea int

const (
	focusFact focusArea = iota
	focusHistory
)

// mountMsg is sent once by Init; it triggers the automatic first fetch.
type mountMsg struct{}

// factMsg carries the outcome of one provider call.
type factMsg struct {
	ticket browser.Ticket
	fact   core.Fact
	err    error
}

// Model is the bubbletea model for one browsing session.
type Model struct {
	ctx      context.Context
	provider core.FactProvider

	state    browser.State
	mounted  bool
	focus    focusArea
	selected int

	spinner spinner.Model
	help    help.Model
	keys    keyMap

	width    int
	height   int
	quitting bool
}

func New(ctx context.Context, provider core.FactProvider) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = ui.SelectedStyle

	return Model{
		ctx:      ctx,
		provider: provider,
		state:    browser.New(),
		spinner:  s,
		help:     help.New(),
		keys:     defaultKeys(),
	}
}

// State exposes the current snapshot.
func (m Model) State() browser.State {
	return m.state
}

func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return mountMsg{} }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case mountMsg:
		if m.mounted {
			return m, nil
		}
		m.mounted = true
		return m.fetch()

	case factMsg:
		return m.applyFact(msg), nil

	case spinner.TickMsg:
		if !m.state.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	page := view.Project(m.state)

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Focus):
		if m.focus == focusFact && m.state.Len() > 0 {
			m.focus = focusHistory
			m.selected = max(m.state.Cursor(), 0)
		} else {
			m.focus = focusFact
		}
		return m, nil

	case key.Matches(msg, m.keys.Previous):
		if page.Previous.Disabled {
			return m, nil
		}
		m.state = m.state.Previous()
		m.selected = m.state.Cursor()
		return m, nil

	case key.Matches(msg, m.keys.Next):
		return m.next(page)

	case key.Matches(msg, m.keys.Jump):
		return m.goTo(int(msg.Runes[0]-'1')), nil
	}

	if m.focus == focusHistory {
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.selected > 0 {
				m.selected--
			}
		case key.Matches(msg, m.keys.Down):
			if m.selected < m.state.Len()-1 {
				m.selected++
			}
		case key.Matches(msg, m.keys.Open):
			return m.goTo(m.selected), nil
		}
		return m, nil
	}

	if key.Matches(msg, m.keys.Open) {
		return m.next(page)
	}
	return m, nil
}

// next is goToNext; the button is disabled while loading.
func (m Model) next(page view.Page) (tea.Model, tea.Cmd) {
	if page.Next.Disabled {
		return m, nil
	}
	next, needFetch := m.state.Next()
	m.state = next
	m.selected = m.state.Cursor()
	if needFetch {
		return m.fetch()
	}
	return m, nil
}

func (m Model) goTo(index int) Model {
	if _, ok := m.state.At(index); !ok {
		return m
	}
	m.state = m.state.GoTo(index)
	m.selected = index
	return m
}

// fetch is fetchRandomFact: the state flips to loading now and the result
// comes back later as a factMsg.
func (m Model) fetch() (Model, tea.Cmd) {
	next, t, ok := m.state.BeginFetch()
	if !ok {
		return m, nil
	}
	m.state = next

	ctx, provider := m.ctx, m.provider
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		f, err := provider.RandomFact(ctx)
		return factMsg{ticket: t, fact: f, err: err}
	})
}

func (m Model) applyFact(msg factMsg) Model {
	logger := log.FromCtx(m.ctx)
	if msg.err != nil {
		logger.Warn().Err(msg.err).Msg("fact fetch failed")
		m.state = m.state.FailFetch(msg.ticket)
	} else {
		m.state = m.state.CompleteFetch(msg.ticket, msg.fact)
		logger.Debug().Int("history", m.state.Len()).Msg("fact fetched")
	}
	m.selected = max(m.state.Cursor(), 0)
	return m
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	page := view.Project(m.state)

	factWidth, historyWidth := m.columns()
	left := lipgloss.JoinVertical(lipgloss.Left,
		m.renderFactPanel(page, factWidth),
		m.renderButtons(page),
	)
	right := m.renderHistory(page, historyWidth)

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
	return ui.TitleStyle.Render(view.Title) + "\n" + body + "\n\n" + m.help.View(m.keys) + "\n"
}

// columns splits the terminal 2:1 like the two-thirds fact / one-third history layout.
func (m Model) columns() (int, int) {
	if m.width <= 0 {
		return 60, 32
	}
	factWidth := max(m.width*2/3-4, 30)
	historyWidth := max(m.width-factWidth-8, 20)
	return factWidth, historyWidth
}

func (m Model) renderFactPanel(page view.Page, width int) string {
	var b strings.Builder
	b.WriteString(ui.HeadingStyle.Render(view.PanelHeading) + "\n\n")

	textStyle := lipgloss.NewStyle().Width(width - 4)
	switch page.Mode {
	case view.ModeLoading:
		b.WriteString(m.spinner.View() + " " + ui.MutedStyle.Render(page.Message))
	case view.ModeError:
		b.WriteString(ui.ErrorStyle.Width(width - 4).Render(page.Message))
	case view.ModeFact:
		b.WriteString(textStyle.Render(page.Text) + "\n\n")
		b.WriteString(ui.MutedStyle.Render("Source: "+page.Source) + "\n")
		b.WriteString(ui.MutedStyle.Render(page.Counter))
	default:
		b.WriteString(ui.MutedStyle.Render(page.Message))
	}

	style := ui.PanelStyle
	if m.focus == focusFact {
		style = ui.FocusedPanelStyle
	}
	return style.Width(width).Render(b.String())
}

func (m Model) renderButtons(page view.Page) string {
	prev := ui.ButtonStyle
	if page.Previous.Disabled {
		prev = ui.DisabledButtonStyle
	}
	next := ui.ButtonStyle
	if page.Next.Label == view.NewFactLabel {
		next = ui.NewFactButtonStyle
	}
	if page.Next.Disabled {
		next = ui.DisabledButtonStyle
	}
	return "\n" + lipgloss.JoinHorizontal(lipgloss.Center,
		prev.Render(page.Previous.Label),
		"  ",
		next.Render(page.Next.Label),
	)
}

func (m Model) renderHistory(page view.Page, width int) string {
	var b strings.Builder
	b.WriteString(ui.HeadingStyle.Render(page.HistoryTitle) + "\n\n")

	if len(page.Entries) == 0 {
		b.WriteString(ui.MutedStyle.Render(page.HistoryEmpty))
	}

	from, to := m.visibleEntries(len(page.Entries))
	if from > 0 {
		b.WriteString(ui.MutedStyle.Render(fmt.Sprintf("↑ %d more", from)) + "\n")
	}
	rowStyle := lipgloss.NewStyle().Width(width - 6)
	for _, e := range page.Entries[from:to] {
		marker := "  "
		if m.focus == focusHistory && e.Index == m.selected {
			marker = "❯ "
		}
		preview := rowStyle.Render(e.Preview)
		label := ui.MutedStyle.Render(e.Label)
		if e.Current {
			preview = ui.SelectedStyle.Inherit(rowStyle).Render(e.Preview)
			label = ui.SelectedStyle.Render(e.Label)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, marker, lipgloss.JoinVertical(lipgloss.Left, preview, label)) + "\n")
	}
	if to < len(page.Entries) {
		b.WriteString(ui.MutedStyle.Render(fmt.Sprintf("↓ %d more", len(page.Entries)-to)) + "\n")
	}

	style := ui.PanelStyle
	if m.focus == focusHistory {
		style = ui.FocusedPanelStyle
	}
	return style.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

// visibleEntries windows the history list around the selected row so a long
// session still fits the terminal.
func (m Model) visibleEntries(n int) (int, int) {
	if m.height <= 0 {
		return 0, n
	}
	rows := max((m.height-12)/3, 3)
	if n <= rows {
		return 0, n
	}
	from := min(max(m.selected-rows/2, 0), n-rows)
	return from, from + rows
}

// Run starts the terminal UI and blocks until the user quits.
func Run(ctx context.Context, provider core.FactProvider) error {
	p := tea.NewProgram(New(ctx, provider), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
