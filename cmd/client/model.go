package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"chat-relay/client"
	"chat-relay/domain"
)

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true)

	systemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	selfStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("36"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

type phase int

const (
	phaseName phase = iota
	phaseChat
	phaseGone
)

// receivedMsg wraps one decoded server frame for the update loop.
type receivedMsg domain.ChatMessage

type recvErrMsg struct{ err error }

type tickMsg time.Time

type model struct {
	conn     *client.Conn
	timeline *client.Timeline
	input    textinput.Model
	viewport viewport.Model
	phase    phase
	username string
	err      error
	ready    bool
}

func newModel(conn *client.Conn) model {
	input := textinput.New()
	input.Placeholder = "Pick a username"
	input.Focus()
	input.CharLimit = 256

	return model{
		conn:     conn,
		timeline: client.NewTimeline(),
		input:    input,
		phase:    phaseName,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tick())
}

// waitForMessage blocks on the connection and feeds the next frame
// back into the program as a message.
func waitForMessage(conn *client.Conn) tea.Cmd {
	return func() tea.Msg {
		msg, err := conn.Receive()
		if err != nil {
			return recvErrMsg{err: err}
		}
		return receivedMsg(msg)
	}
}

// tick refreshes the "N s ago" metadata once per second.
func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			_ = m.conn.Close()
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.refresh()
		return m, nil

	case receivedMsg:
		m.timeline.Append(domain.ChatMessage(msg))
		m.refresh()
		return m, waitForMessage(m.conn)

	case recvErrMsg:
		m.err = msg.err
		m.phase = phaseGone
		return m, nil

	case tickMsg:
		m.refresh()
		return m, tick()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit sends the current input line: the first line is the
// handshake name, every later line is a message body.
func (m model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		return m, nil
	}
	m.input.Reset()

	switch m.phase {
	case phaseName:
		if err := m.conn.Send(line); err != nil {
			m.err = err
			m.phase = phaseGone
			return m, nil
		}
		m.username = line
		m.phase = phaseChat
		m.input.Placeholder = "Say something"
		return m, waitForMessage(m.conn)

	case phaseChat:
		if err := m.conn.Send(line); err != nil {
			m.err = err
			m.phase = phaseGone
			return m, nil
		}
		// The relay never echoes back to the sender; echo locally.
		m.timeline.Append(domain.NewChatMessage("", m.username, line))
		m.refresh()
		return m, nil
	}

	return m, nil
}

func (m *model) resize(width, height int) {
	const chromeHeight = 4
	if !m.ready {
		m.viewport = viewport.New(width, height-chromeHeight)
		m.ready = true
		return
	}
	m.viewport.Width = width
	m.viewport.Height = height - chromeHeight
}

func (m *model) refresh() {
	if !m.ready {
		return
	}

	now := time.Now()
	var b strings.Builder
	for _, entry := range m.timeline.Snapshot() {
		b.WriteString(renderEntry(entry, m.username, now))
		b.WriteString("\n")
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

func renderEntry(entry client.Entry, username string, now time.Time) string {
	if entry.Message.IsSystem() {
		return systemStyle.Render(fmt.Sprintf("-- %s --", entry.Message.Body))
	}

	meta := metaStyle.Render(entry.Metadata(now))
	if entry.Message.SenderName == username {
		return fmt.Sprintf("%s\n  %s", meta, selfStyle.Render(entry.Message.Body))
	}
	return fmt.Sprintf("%s\n  %s", meta, entry.Message.Body)
}

func (m model) View() string {
	if m.phase == phaseGone {
		return errorStyle.Render(fmt.Sprintf("Connection lost: %v\n", m.err))
	}
	if !m.ready {
		return "Connecting..."
	}

	title := promptStyle.Render("chat-relay")
	if m.username != "" {
		title = promptStyle.Render(fmt.Sprintf("chat-relay (%s)", m.username))
	}

	return fmt.Sprintf("%s\n%s\n\n%s\n", title, m.viewport.View(), m.input.View())
}
