package display

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// TUIModel represents the Bubble Tea model for a game of SET
type TUIModel struct {
	logger *log.Logger

	// UI components
	logViewport viewport.Model
	actionInput textinput.Model

	// State
	gameLog      []string
	actionResult chan ActionResult
	quitSignal   chan bool
	quitting     bool
	focusedPane  int // 0 = log, 1 = input

	// Sidebar content, rendered by the session
	field   string
	players string

	// Dimensions
	width       int
	height      int
	initialized bool

	// Test mode
	testMode    bool
	capturedLog []string
}

// ActionResult represents a line the user submitted
type ActionResult struct {
	Action   string
	Args     []string
	Continue bool
	Error    error
}

// QuitMsg is a custom message to signal quit
type QuitMsg struct{}

// logEntryMsg carries a log entry from another goroutine into Update
type logEntryMsg struct {
	entry string
}

// statusMsg carries new sidebar content into Update
type statusMsg struct {
	field   string
	players string
}

// NewTUIModel creates a new TUI model
func NewTUIModel(logger *log.Logger) *TUIModel {
	return NewTUIModelWithOptions(logger, false)
}

// NewTUIModelWithOptions creates a new TUI model with test mode option
func NewTUIModelWithOptions(logger *log.Logger, testMode bool) *TUIModel {
	// Properly sized when the first WindowSizeMsg arrives
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "set <player> <r> <c> <r> <c> <r> <c>"
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 100
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	return &TUIModel{
		logger:       logger.WithPrefix("tui"),
		logViewport:  vp,
		actionInput:  ti,
		gameLog:      []string{},
		actionResult: make(chan ActionResult, 1),
		quitSignal:   make(chan bool, 1),
		focusedPane:  1,
		testMode:     testMode,
		capturedLog:  []string{},
	}
}

// Init initializes the TUI model
func (m *TUIModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.listenForQuit())
}

// listenForQuit returns a command that listens for quit signals
func (m *TUIModel) listenForQuit() tea.Cmd {
	return func() tea.Msg {
		<-m.quitSignal
		return QuitMsg{}
	}
}

// Update handles messages in the TUI
func (m *TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case QuitMsg:
		m.quitting = true
		return m, tea.Sequence(tea.ClearScreen, tea.Quit)

	case logEntryMsg:
		m.AddLogEntry(msg.entry)
		return m, nil

	case statusMsg:
		m.SetStatus(msg.field, msg.players)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			m.sendResult(ActionResult{Action: "quit", Continue: false})
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.actionInput.Focus()
			} else {
				m.focusedPane = 0
				m.actionInput.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				m.processAction(strings.TrimSpace(m.actionInput.Value()))
				m.actionInput.SetValue("")
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup", "b":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}
		case "pgdown", "f":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageDown()
			}
		case "home", "g":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.actionInput, cmd = m.actionInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the TUI
func (m *TUIModel) View() string {
	if m.quitting {
		return ""
	}

	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Action pane (bottom, full width)
	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)

	actionStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(max(m.width-2, 1)).
		Height(max(actionHeight, 1))
	if m.focusedPane == 1 {
		actionStyle = actionStyle.BorderForeground(lipgloss.Color("#04B575"))
	}
	actionPane := actionStyle.Render(actionContent)

	// Sidebar (field and scores) to the right of the log
	sidebarContent := m.renderSidebarPane()
	sidebarWidth := max(lipgloss.Width(sidebarContent), 25)
	paneHeight := max(m.height-actionHeight-4, 1)

	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	// Log pane fills the rest
	logWidth := max(m.width-sidebarWidth-4, 1)
	m.logViewport.SetContent(m.renderLogPane())
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight

	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(logWidth).
		Height(paneHeight)
	if m.focusedPane == 0 {
		logStyle = logStyle.BorderForeground(lipgloss.Color("#04B575"))
	}
	logPane := logStyle.Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

// renderLogPane renders the game log pane content
func (m *TUIModel) renderLogPane() string {
	return strings.Join(m.gameLog, "\n")
}

// renderSidebarPane shows the field above the scoreboard
func (m *TUIModel) renderSidebarPane() string {
	var content strings.Builder

	content.WriteString(HeaderStyle.Render(" Field "))
	content.WriteString("\n")
	content.WriteString(m.field)
	content.WriteString("\n\n")
	content.WriteString(HeaderStyle.Render(" Players "))
	content.WriteString("\n")
	content.WriteString(m.players)

	return content.String()
}

// renderActionPane renders the input line and key help
func (m *TUIModel) renderActionPane() string {
	var content strings.Builder

	content.WriteString(m.actionInput.View())
	content.WriteString("\n")

	if m.focusedPane == 0 {
		content.WriteString(InfoStyle.Render("Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"))
	} else {
		content.WriteString(InfoStyle.Render("Tab to scroll log • Enter to submit • 'help' for commands • Ctrl+C to quit"))
	}

	return content.String()
}

// AddLogEntry adds an entry to the game log. Only call it from the Bubble
// Tea goroutine or in test mode; other goroutines go through TUIInterface.
func (m *TUIModel) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)

	if m.testMode {
		m.capturedLog = append(m.capturedLog, entry)
		return
	}

	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// SetStatus replaces the sidebar content
func (m *TUIModel) SetStatus(field, players string) {
	m.field = field
	m.players = players
}

// ClearLog clears the game log
func (m *TUIModel) ClearLog() {
	m.gameLog = []string{}
	m.logViewport.SetContent("")
}

// processAction splits the submitted line into a verb and its arguments
func (m *TUIModel) processAction(input string) {
	parts := strings.Fields(strings.ToLower(input))

	var action string
	var args []string
	if len(parts) > 0 {
		action = parts[0]
		args = parts[1:]
	}

	m.sendResult(ActionResult{
		Action:   action,
		Args:     args,
		Continue: true,
	})
}

// sendResult hands a result to WaitForAction, dropping it if one is
// already pending
func (m *TUIModel) sendResult(result ActionResult) {
	select {
	case m.actionResult <- result:
	default:
		m.logger.Warn("Dropping input, previous action not yet handled", "action", result.Action)
	}
}

// WaitForAction waits for user input (for use by the main game loop)
func (m *TUIModel) WaitForAction(ctx context.Context) (string, []string, bool, error) {
	select {
	case result := <-m.actionResult:
		return result.Action, result.Args, result.Continue, result.Error
	case <-ctx.Done():
		return "", nil, false, ctx.Err()
	}
}

// SendQuitSignal signals the TUI to quit gracefully
func (m *TUIModel) SendQuitSignal() {
	select {
	case m.quitSignal <- true:
	default:
		// Quit signal already sent
	}
}

// GetCapturedLog returns the captured log entries (test mode only)
func (m *TUIModel) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	result := make([]string, len(m.capturedLog))
	copy(result, m.capturedLog)
	return result
}

// InjectAction programmatically injects an action (test mode only)
func (m *TUIModel) InjectAction(action string, args []string) error {
	if !m.testMode {
		return fmt.Errorf("action injection only available in test mode")
	}

	select {
	case m.actionResult <- ActionResult{
		Action:   action,
		Args:     args,
		Continue: true,
	}:
		return nil
	default:
		return fmt.Errorf("action channel full")
	}
}

// IsTestMode returns whether the TUI is in test mode
func (m *TUIModel) IsTestMode() bool {
	return m.testMode
}
