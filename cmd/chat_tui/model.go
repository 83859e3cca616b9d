package main

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"outdoor-chat/internal/chatclient"
	"outdoor-chat/internal/domain"
)

var (
	green  = lipgloss.Color("#3fb950")
	sand   = lipgloss.Color("#e3b341")
	muted  = lipgloss.Color("#8b949e")
	danger = lipgloss.Color("#f85149")

	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(green)
	userLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(sand)
	botLabelStyle  = lipgloss.NewStyle().Bold(true).Foreground(green)
	hintStyle      = lipgloss.NewStyle().Foreground(muted)
	errorStyle     = lipgloss.NewStyle().Foreground(danger)
	inputStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1)
)

// turnDoneMsg llega cuando termina el envio en segundo plano.
type turnDoneMsg struct {
	resp chatclient.Response
	err  error
}

type model struct {
	ctx       context.Context
	session   *chatclient.Session
	transport chatclient.Transport

	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	ready   bool
	width   int
	height  int
	lastErr error
}

func newModel(ctx context.Context, session *chatclient.Session, transport chatclient.Transport) model {
	ta := textarea.New()
	ta.Placeholder = "Ask about hiking, climbing, kayaking..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(green)

	return model{
		ctx:       ctx,
		session:   session,
		transport: transport,
		textarea:  ta,
		spinner:   s,
	}
}

func (m model) Init() tea.Cmd {
	return textarea.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := m.height - 7
		if vpHeight < 5 {
			vpHeight = 5
		}
		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}
		m.textarea.SetWidth(m.width - 4)
		m.refresh()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			if m.session.Busy() {
				return m, nil
			}
			input := strings.TrimSpace(m.textarea.Value())
			if input == "exit" || input == "quit" {
				return m, tea.Quit
			}
			out, err := m.session.Submit(input)
			if err != nil {
				return m, nil
			}
			m.textarea.Reset()
			m.lastErr = nil
			m.refresh()
			return m, tea.Batch(m.send(out), m.spinner.Tick)
		}

	case turnDoneMsg:
		if msg.err != nil {
			m.session.Fail(msg.err)
			m.lastErr = msg.err
		} else {
			m.session.Complete(msg.resp)
		}
		m.refresh()

	case spinner.TickMsg:
		if m.session.Busy() {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	// La entrada queda bloqueada mientras hay un envio en curso.
	if _, ok := msg.(tea.KeyMsg); ok && !m.session.Busy() {
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
		m.session.SetInput(m.textarea.Value())
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m model) send(out chatclient.Outgoing) tea.Cmd {
	ctx, transport := m.ctx, m.transport
	return func() tea.Msg {
		resp, err := transport.Send(ctx, out)
		return turnDoneMsg{resp: resp, err: err}
	}
}

func (m *model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(renderMessages(m.session.Messages(), m.width))
	m.viewport.GotoBottom()
}

func renderMessages(msgs domain.Transcript, width int) string {
	if len(msgs) == 0 {
		return hintStyle.Render("Start a conversation by typing a message below.")
	}
	body := lipgloss.NewStyle().Width(max(width-2, 10))
	var b strings.Builder
	for _, msg := range msgs {
		label := botLabelStyle.Render("Bot")
		if msg.Role == domain.RoleUser {
			label = userLabelStyle.Render("You")
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(body.Render(msg.Content))
		b.WriteString("\n\n")
	}
	return b.String()
}

func (m model) View() string {
	if !m.ready {
		return hintStyle.Render("  Initializing...")
	}

	header := titleStyle.Render("Outdoor Chat")
	if id := m.session.ConversationID(); id != "" {
		header += hintStyle.Render("  " + id)
	}

	var input string
	if m.session.Busy() {
		input = m.spinner.View() + hintStyle.Render(" waiting for the assistant...")
	} else {
		input = m.textarea.View()
	}

	sections := []string{header, m.viewport.View(), inputStyle.Width(max(m.width-2, 10)).Render(input)}
	if m.lastErr != nil {
		sections = append(sections, errorStyle.Render(m.lastErr.Error()))
	}
	sections = append(sections, hintStyle.Render("enter: send  esc: quit"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
