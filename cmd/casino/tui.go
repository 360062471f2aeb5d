package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/casino/internal/config"
	"github.com/lox/casino/internal/game"
	"github.com/lox/casino/internal/randutil"
)

const (
	paneLog   = 0
	paneInput = 1
)

// playModel is the Bubble Tea model for an interactive session. Session
// events are narrated into a scrolling log and commands are read from a
// single-line prompt.
type playModel struct {
	ctx    context.Context
	table  *table
	logger *log.Logger

	logViewport viewport.Model
	actionInput textinput.Model
	gameLog     bytes.Buffer

	hint    bool
	hintRNG *rand.Rand

	status      game.Status
	over        bool
	quitting    bool
	err         error
	focusedPane int

	width  int
	height int
}

// newPlayModel builds the table and runs it up to the first decision.
func newPlayModel(ctx context.Context, cfg *config.Config, logger *log.Logger, hint bool) (*playModel, error) {
	t, err := newTable(cfg, logger)
	if err != nil {
		return nil, err
	}

	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "fold, check, call, bet 100, raise 200, allin, help, quit"
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 64
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)

	m := &playModel{
		ctx:         ctx,
		table:       t,
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		actionInput: ti,
		hint:        hint,
		hintRNG:     randutil.New(t.seed + 1),
		focusedPane: paneInput,
	}
	t.bus.Subscribe(newPrinter(&m.gameLog))

	fmt.Fprintln(&m.gameLog, headerStyle.Render("Texas hold'em"), dimStyle.Render("type 'help' for commands"))
	if err := m.advance(); err != nil {
		return nil, err
	}
	m.refreshLog()
	return m, nil
}

func (m *playModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, m.leave()
		case "tab":
			if m.focusedPane == paneInput {
				m.focusedPane = paneLog
				m.actionInput.Blur()
			} else {
				m.focusedPane = paneInput
				m.actionInput.Focus()
			}
		case "enter":
			if m.focusedPane == paneInput {
				line := strings.TrimSpace(m.actionInput.Value())
				m.actionInput.SetValue("")
				if cmd := m.submit(line); cmd != nil {
					return m, cmd
				}
			}
		case "home", "g":
			if m.focusedPane == paneLog {
				m.logViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == paneLog {
				m.logViewport.GotoBottom()
			}
		}
	}

	// Keys go to one pane only, so typing never scrolls the log.
	var cmd tea.Cmd
	if m.focusedPane == paneInput {
		m.actionInput, cmd = m.actionInput.Update(msg)
	} else {
		m.logViewport, cmd = m.logViewport.Update(msg)
	}
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit handles one line from the prompt. A non-nil command ends the
// program.
func (m *playModel) submit(line string) tea.Cmd {
	defer m.refreshLog()

	if m.over || m.err != nil {
		return m.quit()
	}
	s := m.table.session

	switch m.status {
	case game.StatusHandComplete:
		if isQuit(line) {
			return m.quit()
		}
	case game.StatusAwaitingHuman:
		switch {
		case line == "":
			return nil
		case isQuit(line):
			return m.leave()
		case line == "help" || line == "?":
			printHelp(&m.gameLog)
			return nil
		}

		kind, amount, err := parseCommand(line)
		if err != nil {
			fmt.Fprintln(&m.gameLog, lossStyle.Render(err.Error()))
			return nil
		}
		if err := s.SubmitAction(game.HumanSeat, kind, amount); err != nil {
			fmt.Fprintln(&m.gameLog, lossStyle.Render(err.Error()))
			if errors.Is(err, game.ErrIllegalAction) {
				return nil
			}
			m.err = err
			return m.quit()
		}
		m.logger.Debug("human action", "kind", kind, "amount", amount)
	}

	if err := m.advance(); err != nil {
		m.err = err
		return m.quit()
	}
	if m.over {
		return m.quit()
	}
	return nil
}

// advance runs scripted seats until the human must act, the hand ends or
// the session is over.
func (m *playModel) advance() error {
	s := m.table.session
	if err := m.ctx.Err(); err != nil {
		return err
	}
	if !s.Table().Live {
		if err := s.DealStreet(); err != nil {
			if errors.Is(err, game.ErrSessionOver) {
				m.gameOver()
				return nil
			}
			return err
		}
	}

	status, err := s.Advance()
	if err != nil {
		return err
	}
	m.status = status

	switch status {
	case game.StatusSessionOver:
		m.gameOver()
	case game.StatusHandComplete:
		fmt.Fprintln(&m.gameLog, dimStyle.Render("Enter for the next hand, q to quit"))
	case game.StatusAwaitingHuman:
		if m.hint {
			showHint(m.ctx, &m.gameLog, s, m.hintRNG)
		}
	}
	return nil
}

func (m *playModel) gameOver() {
	m.over = true
	m.status = game.StatusSessionOver
	fmt.Fprintln(&m.gameLog, headerStyle.Render("Game over"))
}

// leave forfeits any hand in progress and ends the program.
func (m *playModel) leave() tea.Cmd {
	if !m.over && m.err == nil && m.table.session.Table().Live {
		if _, err := m.table.session.Leave(); err != nil {
			m.err = err
		}
		m.refreshLog()
	}
	return m.quit()
}

func (m *playModel) quit() tea.Cmd {
	m.quitting = true
	return tea.Quit
}

// transcript returns everything narrated so far.
func (m *playModel) transcript() string {
	return m.gameLog.String()
}

func (m *playModel) refreshLog() {
	m.logViewport.SetContent(m.gameLog.String())
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

func (m *playModel) resize() {
	sidebarWidth := 24
	actionHeight := 3
	m.logViewport.Width = max(m.width-sidebarWidth-4, 1)
	m.logViewport.Height = max(m.height-actionHeight-4, 1)
	m.actionInput.Width = max(m.width-len(m.actionInput.Prompt)-4, 1)
	m.refreshLog()
}

func (m *playModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Width(m.logViewport.Width).
		Height(m.logViewport.Height)
	inputStyle := logStyle.Height(3).Width(max(m.width-2, 1))
	if m.focusedPane == paneLog {
		logStyle = logStyle.BorderForeground(lipgloss.Color("10"))
	} else {
		inputStyle = inputStyle.BorderForeground(lipgloss.Color("10"))
	}
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Width(max(m.width-m.logViewport.Width-4, 1)).
		Height(m.logViewport.Height)

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		logStyle.Render(m.logViewport.View()),
		sidebarStyle.Render(m.renderSidebar()))
	return lipgloss.JoinVertical(lipgloss.Left, top, inputStyle.Render(m.renderActionPane()))
}

func (m *playModel) renderSidebar() string {
	s := m.table.session
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Pot %d", s.Table().Pot)))
	b.WriteString("\n\n")
	for _, seat := range s.Seats() {
		line := fmt.Sprintf("%s %d", seat.Name, seat.Chips)
		if seat.ID == m.table.session.Table().ActiveSeat {
			line = "> " + line
		}
		switch {
		case !seat.Active:
			line = dimStyle.Render(line + " (out)")
		case seat.Folded:
			line = dimStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m *playModel) renderActionPane() string {
	var b strings.Builder
	switch m.status {
	case game.StatusAwaitingHuman:
		s := m.table.session
		fmt.Fprintf(&b, "To call %d  [%s]", s.ToCall(game.HumanSeat), formatValid(s.ValidActions(game.HumanSeat)))
	case game.StatusHandComplete:
		b.WriteString(dimStyle.Render("Enter for the next hand, q to quit"))
	default:
		b.WriteString(dimStyle.Render("Waiting..."))
	}
	b.WriteString("\n")
	b.WriteString(m.actionInput.View())
	b.WriteString("\n")
	if m.focusedPane == paneLog {
		b.WriteString(dimStyle.Render("Log focused: ↑↓ scroll, PgUp/PgDn page, Home/End, Tab to input"))
	} else {
		b.WriteString(dimStyle.Render("Tab to scroll log • Enter to submit • Ctrl+C to leave"))
	}
	return b.String()
}
