// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/TheCrazy8/Lunaa/internal/model"
	"github.com/TheCrazy8/Lunaa/internal/ollama"
	"github.com/TheCrazy8/Lunaa/internal/ui/components"
	"github.com/TheCrazy8/Lunaa/internal/ui/styles"
)

// =============================================================================
// STATE
// =============================================================================

// state is the chat view's interaction state.
type state int

const (
	// stateReady accepts input.
	stateReady state = iota
	// stateStreaming has a response in flight; input is disabled.
	stateStreaming
)

const inputCharLimit = 4000

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	session *model.Session
	client  *ollama.Client
	relay   *StreamRelay

	keys       KeyMap
	theme      *styles.Theme
	header     *components.Header
	statusBar  *components.StatusBar
	transcript *components.Transcript
	markdown   *markdownRenderer

	input    textinput.Model
	viewport viewport.Model
	spin     spinner.Model

	state state
	// pending accumulates the in-flight assistant response for display.
	// It mirrors what the session worker has forwarded so far and is
	// discarded on error; committed history lives in the session.
	pending    strings.Builder
	notice     string
	chunkCount int
	startTime  time.Time

	width  int
	height int
	ready  bool
}

// Options configures the chat view.
type Options struct {
	ShowTimestamps bool
}

// New creates the chat model. The relay's sender must be attached
// before the first submission.
func New(session *model.Session, client *ollama.Client, relay *StreamRelay, opts Options) *Model {
	theme := styles.NewTheme()

	input := textinput.New()
	input.Placeholder = "Ask anything..."
	input.Prompt = "> "
	input.PromptStyle = theme.InputPrompt
	input.TextStyle = theme.InputText
	input.PlaceholderStyle = theme.InputPlaceholder
	input.CharLimit = inputCharLimit
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = theme.Spinner

	transcript := components.NewTranscript(theme)
	transcript.ShowTimestamps = opts.ShowTimestamps

	statusBar := components.NewStatusBar(theme)
	statusBar.ModelName = session.Model()

	header := components.NewHeader(theme)
	header.Subtitle = session.Model()

	return &Model{
		session:    session,
		client:     client,
		relay:      relay,
		keys:       DefaultKeyMap(),
		theme:      theme,
		header:     header,
		statusBar:  statusBar,
		transcript: transcript,
		input:      input,
		spin:       spin,
		state:      stateReady,
		notice:     "Chatting with " + session.Model() + ". Type /help for commands.",
	}
}

// Init starts the cursor blink, the spinner, and a daemon health probe.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spin.Tick,
		CheckDaemonCmd(m.client),
	)
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles all incoming messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case StreamStartMsg:
		m.state = stateStreaming
		m.startTime = msg.StartTime
		m.pending.Reset()
		m.chunkCount = 0
		m.notice = ""
		m.statusBar.SetStatus(components.StatusStreaming)
		m.refreshViewport()
		return m, m.spin.Tick

	case StreamTokenMsg:
		m.pending.WriteString(msg.Token)
		m.chunkCount++
		m.refreshViewport()
		return m, nil

	case StreamErrorMsg:
		// The session already rolled the user turn back; the partial
		// response is discarded with the pending buffer.
		m.pending.Reset()
		m.notice = msg.Text
		m.statusBar.SetStatus(components.StatusError)
		m.refreshViewport()
		return m, nil

	case StreamCompleteMsg:
		m.state = stateReady
		m.statusBar.Elapsed = 0
		m.statusBar.LastTokens = m.chunkCount
		if msg.Failed {
			m.statusBar.LastTokens = 0
		} else {
			m.statusBar.SetStatus(components.StatusReady)
		}
		m.pending.Reset()
		m.statusBar.TurnCount = m.userTurnCount()
		m.input.Focus()
		m.refreshViewport()
		return m, textinput.Blink

	case DaemonStatusMsg:
		m.statusBar.SetDaemon(msg.Running)
		if !msg.Running && msg.Error != nil {
			m.notice = "Cannot reach the Ollama daemon: " + msg.Error.Error()
			m.refreshViewport()
		}
		return m, nil

	case ModelsListMsg:
		m.notice = formatModelList(msg.Models, msg.Error)
		m.refreshViewport()
		return m, nil

	case ModelSwitchedMsg:
		if msg.Error != nil {
			m.notice = "Cannot switch to '" + msg.Model + "': " + msg.Error.Error()
		} else {
			m.session.SetModel(msg.Model)
			m.statusBar.ModelName = msg.Model
			m.header.Subtitle = msg.Model
			m.notice = "Now talking to " + msg.Model + "."
		}
		m.refreshViewport()
		return m, nil

	case spinner.TickMsg:
		if m.state != stateStreaming {
			return m, nil
		}
		m.statusBar.Elapsed = time.Since(m.startTime)
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	// Everything else feeds the input field.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey dispatches key presses by binding.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Clear):
		if m.state == stateReady {
			m.clearConversation()
		}
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.handleSubmit()
	}

	if m.state != stateReady {
		// Input is disabled while a response streams.
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleSubmit sends the typed text to the session or runs a command.
func (m *Model) handleSubmit() (tea.Model, tea.Cmd) {
	if m.state != stateReady {
		return m, nil
	}

	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}

	if strings.HasPrefix(text, "/") {
		m.input.SetValue("")
		return m.handleCommand(text)
	}

	if err := m.relay.Start(text); err != nil {
		if errors.Is(err, model.ErrBusy) {
			return m, nil
		}
		m.notice = err.Error()
		m.refreshViewport()
		return m, nil
	}

	// Disable input immediately; StreamStartMsg confirms asynchronously.
	m.state = stateStreaming
	m.startTime = time.Now()
	m.input.SetValue("")
	m.input.Blur()
	m.statusBar.SetStatus(components.StatusStreaming)
	m.refreshViewport()
	return m, m.spin.Tick
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// handleCommand runs a slash command typed at the prompt.
func (m *Model) handleCommand(text string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(text)
	cmd := strings.ToLower(fields[0])

	switch cmd {
	case "/quit", "/exit":
		return m, tea.Quit

	case "/clear", "/new":
		m.clearConversation()
		return m, nil

	case "/help":
		m.notice = helpText()
		m.refreshViewport()
		return m, nil

	case "/models":
		return m, ListModelsCmd(m.client)

	case "/model":
		if len(fields) < 2 {
			m.notice = "Current model: " + m.session.Model() + "\nUsage: /model <name>"
			m.refreshViewport()
			return m, nil
		}
		return m, SwitchModelCmd(m.client, fields[1])

	default:
		m.notice = "Unknown command " + cmd + ". Try /help."
		m.refreshViewport()
		return m, nil
	}
}

// clearConversation resets history back to just the system prompt.
func (m *Model) clearConversation() {
	if m.session.Reset() {
		m.notice = "Conversation cleared."
	}
	m.statusBar.TurnCount = 0
	m.statusBar.LastTokens = 0
	m.refreshViewport()
}

// helpText lists the available commands and shortcuts.
func helpText() string {
	return strings.Join([]string{
		"Commands:",
		"  /help          show this help",
		"  /clear         start a fresh conversation",
		"  /model <name>  switch to another installed model",
		"  /models        list installed models",
		"  /quit          exit",
		"",
		"Keys: Enter send, C-l clear, PgUp/PgDn scroll, C-c quit.",
	}, "\n")
}

// formatModelList renders the /models output.
func formatModelList(models []ollama.ModelInfo, err error) string {
	if err != nil {
		return "Cannot list models: " + err.Error()
	}
	if len(models) == 0 {
		return "No models installed. Try: ollama pull llama3.1"
	}

	var b strings.Builder
	b.WriteString("Installed models:")
	for i := range models {
		b.WriteString("\n  ")
		b.WriteString(models[i].Name)
		b.WriteString("  (")
		b.WriteString(models[i].FormatSize())
		b.WriteString(")")
	}
	return b.String()
}

// =============================================================================
// HELPERS
// =============================================================================

// resize lays components out for a new terminal size.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)

	m.header.SetWidth(width)
	m.statusBar.SetWidth(width)
	m.transcript.SetWidth(width - 2)
	m.input.Width = width - 6

	m.markdown = newMarkdownRenderer(width - 6)
	m.transcript.AssistantRenderer = m.markdown.Render

	viewportHeight := height - m.chromeHeight()
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	if !m.ready {
		m.viewport = viewport.New(width, viewportHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = viewportHeight
	}

	m.refreshViewport()
}

// chromeHeight is the vertical space used by everything but the viewport.
func (m *Model) chromeHeight() int {
	// header (2 with border) + input (2 with border) + status bar (1)
	return 5
}

// refreshViewport re-renders the transcript into the viewport and
// follows the tail.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	wasAtBottom := m.viewport.AtBottom()

	var b strings.Builder
	b.WriteString(m.transcript.View(m.session.History()))

	if m.state == stateStreaming && m.pending.Len() > 0 {
		sv := components.NewStreamingView(m.pending.String(), m.theme)
		sv.SetWidth(m.transcript.Width)
		b.WriteString("\n\n")
		b.WriteString(sv.View())
	}

	if m.notice != "" {
		nv := components.NewMessageView(model.NewSystemTurn(m.notice), m.theme)
		nv.SetWidth(m.transcript.Width)
		b.WriteString("\n\n")
		b.WriteString(nv.View())
	}

	m.viewport.SetContent(b.String())
	if wasAtBottom || m.state == stateStreaming {
		m.viewport.GotoBottom()
	}
}

// userTurnCount counts committed user turns.
func (m *Model) userTurnCount() int {
	count := 0
	for _, turn := range m.session.History() {
		if turn.Role == model.RoleUser {
			count++
		}
	}
	return count
}

// Streaming reports whether a response is currently in flight.
func (m *Model) Streaming() bool {
	return m.state == stateStreaming
}
