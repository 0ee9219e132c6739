package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/riyan-hx/Lumid.ai/internal/domain"
	"github.com/riyan-hx/Lumid.ai/internal/protocol"
)

const sidebarWidth = 30

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the interactive chat",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := DialWS(serverURL)
		if err != nil {
			return err
		}
		defer client.Close()

		inbound := make(chan tea.Msg, 64)
		go client.ReadMessages(inbound)

		p := tea.NewProgram(newChatModel(client, inbound), tea.WithAltScreen(), tea.WithMouseCellMotion())
		_, err = p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

// commandSender is the part of WSClient the model needs.
type commandSender interface {
	Send(msgType string, fields map[string]string) error
}

type theme struct {
	header    lipgloss.Style
	sidebar   lipgloss.Style
	current   lipgloss.Style
	muted     lipgloss.Style
	user      lipgloss.Style
	assistant lipgloss.Style
	banner    lipgloss.Style
	status    lipgloss.Style
	input     lipgloss.Style
}

func newTheme() theme {
	amber := lipgloss.Color("#ffbf00")
	teal := lipgloss.Color("#2ec4b6")
	violet := lipgloss.Color("#9d8df1")
	muted := lipgloss.Color("#7a7f8c")

	return theme{
		header:    lipgloss.NewStyle().Bold(true).Foreground(teal).Padding(0, 1),
		sidebar:   lipgloss.NewStyle().Width(sidebarWidth).Border(lipgloss.RoundedBorder()).BorderForeground(muted).Padding(0, 1),
		current:   lipgloss.NewStyle().Foreground(teal).Bold(true),
		muted:     lipgloss.NewStyle().Foreground(muted),
		user:      lipgloss.NewStyle().Foreground(violet).Bold(true),
		assistant: lipgloss.NewStyle().Foreground(teal).Bold(true),
		banner:    lipgloss.NewStyle().Foreground(lipgloss.Color("#1a1a1a")).Background(amber).Padding(0, 1),
		status:    lipgloss.NewStyle().Foreground(muted).Italic(true),
		input:     lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true, false, false, false).BorderForeground(muted),
	}
}

type chatModel struct {
	client  commandSender
	inbound <-chan tea.Msg

	state     domain.StateSnapshot
	connected bool
	notice    string

	input    textinput.Model
	timeline viewport.Model
	spinner  spinner.Model
	theme    theme

	width  int
	height int
}

func newChatModel(client commandSender, inbound <-chan tea.Msg) chatModel {
	input := textinput.New()
	input.Prompt = "❯ "
	input.Placeholder = "How are you feeling today?"
	input.CharLimit = 4000
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#2ec4b6"))

	return chatModel{
		client:    client,
		inbound:   inbound,
		connected: true,
		input:     input,
		timeline:  viewport.New(0, 0),
		spinner:   sp,
		theme:     newTheme(),
	}
}

func waitInbound(ch <-chan tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return disconnectedMsg{}
		}
		return msg
	}
}

func (m chatModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, waitInbound(m.inbound))
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case stateMsg:
		m.state = msg.state
		m.notice = ""
		m.renderTimeline()
		cmds = append(cmds, waitInbound(m.inbound))

	case serverErrorMsg:
		m.notice = msg.message
		cmds = append(cmds, waitInbound(m.inbound))

	case disconnectedMsg:
		m.connected = false
		m.notice = "disconnected from server"
		if msg.err != nil {
			m.notice = "disconnected: " + msg.err.Error()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.renderTimeline()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.timeline, cmd = m.timeline.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKey runs chat shortcuts. It reports false for keys meant for the input line.
func (m *chatModel) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return tea.Quit, true
	case "enter":
		text := m.input.Value()
		if strings.TrimSpace(text) == "" || m.state.InFlight {
			return nil, true
		}
		m.input.Reset()
		m.send(protocol.TypeSend, map[string]string{"text": text})
		return nil, true
	case "ctrl+r":
		if !m.state.InFlight {
			m.send(protocol.TypeRetry, nil)
		}
		return nil, true
	case "ctrl+d":
		m.send(protocol.TypeDismissError, nil)
		return nil, true
	case "ctrl+n":
		m.send(protocol.TypeNewSession, nil)
		return nil, true
	case "ctrl+x":
		if m.state.CurrentSessionID != "" {
			m.send(protocol.TypeDeleteSession, map[string]string{"session_id": m.state.CurrentSessionID})
		}
		return nil, true
	case "ctrl+up", "ctrl+k":
		m.selectRelative(-1)
		return nil, true
	case "ctrl+down", "ctrl+j":
		m.selectRelative(1)
		return nil, true
	case "pgup", "pgdown":
		m.timeline, _ = m.timeline.Update(msg)
		return nil, true
	case "1", "2", "3", "4":
		if m.input.Value() != "" || !m.showActivities() {
			return nil, false
		}
		activities := domain.Activities()
		idx := int(msg.String()[0] - '1')
		m.send(protocol.TypeActivity, map[string]string{"action": activities[idx].Action})
		return nil, true
	}
	return nil, false
}

func (m *chatModel) send(msgType string, fields map[string]string) {
	if !m.connected {
		return
	}
	if err := m.client.Send(msgType, fields); err != nil {
		m.notice = "send failed: " + err.Error()
	}
}

// selectRelative moves the selection up or down the session list.
func (m *chatModel) selectRelative(delta int) {
	sessions := m.state.Sessions
	if len(sessions) == 0 {
		return
	}
	idx := -1
	for i, s := range sessions {
		if s.ID == m.state.CurrentSessionID {
			idx = i
			break
		}
	}
	next := idx + delta
	if idx < 0 {
		next = 0
	}
	if next < 0 || next >= len(sessions) {
		return
	}
	m.send(protocol.TypeSelectSession, map[string]string{"session_id": sessions[next].ID})
}

// showActivities reports whether the activity cards are on screen.
func (m chatModel) showActivities() bool {
	return m.state.Current == nil || len(m.state.Current.Messages) == 0
}

func (m *chatModel) resize() {
	w := m.width - sidebarWidth - 4
	if w < 20 {
		w = 20
	}
	h := m.height - 6
	if m.state.Error != nil {
		h--
	}
	if h < 3 {
		h = 3
	}
	m.timeline.Width = w
	m.timeline.Height = h
	m.input.Width = w - 4
}

func (m *chatModel) renderTimeline() {
	m.resize()
	m.timeline.SetContent(m.timelineContent())
	m.timeline.GotoBottom()
}

func (m chatModel) timelineContent() string {
	if m.showActivities() {
		var b strings.Builder
		b.WriteString("Hi, I'm Lumid. What would you like to do?\n\n")
		for i, a := range domain.Activities() {
			fmt.Fprintf(&b, "  %d. %s  %s\n", i+1, a.Title, m.theme.muted.Render(a.Subtitle))
		}
		b.WriteString("\nOr just type how you are feeling.")
		return b.String()
	}

	wrap := lipgloss.NewStyle().Width(max(10, m.timeline.Width-2))
	var b strings.Builder
	for _, msg := range m.state.Current.Messages {
		who := m.theme.user.Render("You")
		if msg.Sender == domain.SenderAssistant {
			who = m.theme.assistant.Render("Lumid")
		}
		fmt.Fprintf(&b, "%s %s\n%s\n\n", who, m.theme.muted.Render(msg.Timestamp.Local().Format("15:04")), wrap.Render(msg.Content))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m chatModel) renderSidebar() string {
	var b strings.Builder
	b.WriteString(m.theme.header.Render("Conversations") + "\n")
	if len(m.state.Sessions) == 0 {
		b.WriteString(m.theme.muted.Render("none yet"))
	}
	for _, s := range m.state.Sessions {
		line := truncateRunes(s.Title, sidebarWidth-6)
		if s.ID == m.state.CurrentSessionID {
			b.WriteString(m.theme.current.Render("› "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	return m.theme.sidebar.Height(max(3, m.height-4)).Render(strings.TrimRight(b.String(), "\n"))
}

func (m chatModel) View() string {
	if m.width == 0 {
		return "connecting..."
	}

	status := m.theme.status.Render("ctrl+n new · ctrl+↑/↓ switch · ctrl+x delete · ctrl+r retry · ctrl+d dismiss · esc quit")
	if m.state.InFlight {
		status = m.spinner.View() + " " + m.theme.status.Render("Lumid is thinking...")
	}
	if m.notice != "" {
		status = m.theme.status.Render(m.notice)
	}

	column := []string{m.theme.header.Render(m.currentTitle())}
	if m.state.Error != nil {
		column = append(column, m.theme.banner.Render(m.state.Error.Message+"  (ctrl+r retry · ctrl+d dismiss)"))
	}
	column = append(column, m.timeline.View(), m.theme.input.Render(m.input.View()), status)

	return lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), lipgloss.JoinVertical(lipgloss.Left, column...))
}

func (m chatModel) currentTitle() string {
	if m.state.Current == nil {
		return domain.DefaultSessionTitle
	}
	return m.state.Current.Title
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
