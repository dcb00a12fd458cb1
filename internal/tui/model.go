package tui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cdpbot/internal/domain"
	"cdpbot/internal/repl"
)

// AssistantPort is the TUI-facing subset of the assistant.
type AssistantPort interface {
	Respond(question string) (string, error)
	Platforms() []domain.Platform
	FragmentCount(platform domain.Platform) int
}

// Model is the Bubble Tea model for the chat application.
type Model struct {
	assistant AssistantPort
	input     textinput.Model
	viewport  viewport.Model
	summary   string
	response  string
	status    string
	ready     bool
	lastQuery string
}

// New creates a new TUI model instance.
func New(assistant AssistantPort) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "How can I help you?"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		assistant: assistant,
		input:     ti,
		viewport:  vp,
		summary:   indexSummary(assistant),
		status:    "Type 'quit' to exit.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		// account for frames around response and question boxes
		_, rh := responseBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		totalHeaderLines := 2                                    // header + summary
		totalFooterLines := 1                                    // status
		reserved := totalHeaderLines + totalFooterLines + qh + 1 // 1 spacer
		vh := msg.Height - reserved
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderResponse())
		return m, nil
	case tea.KeyMsg:
		// Global quits
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.String() == "enter" {
			q := m.input.Value()
			if strings.EqualFold(q, repl.QuitCommand) {
				return m, tea.Quit
			}
			if strings.TrimSpace(q) == "" {
				return m, nil
			}
			res, err := m.assistant.Respond(q)
			if err != nil {
				m.status = "Error: " + err.Error()
				m.response = ""
			} else {
				m.status = fmt.Sprintf("Answered %q", q)
				m.response = res
				m.lastQuery = q
			}
			m.input.SetValue("")
			m.viewport.SetContent(m.renderResponse())
			m.viewport.GotoTop()
			return m, nil
		}
	}
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	// letters belong to the input; only paging keys scroll the response
	if k, ok := msg.(tea.KeyMsg); !ok || isScrollKey(k) {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// View renders the TUI layout and the current response.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("CDP Support Chatbot")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	response := responseBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + response + "\n" + input + "\n" + status
}

func isScrollKey(k tea.KeyMsg) bool {
	switch k.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
		return true
	}
	return false
}

func (m Model) renderResponse() string {
	if m.response == "" {
		return "Ask about Segment, mParticle, Lytics, or Zeotap."
	}
	return highlightBestLine(m.response, m.lastQuery)
}

func indexSummary(a AssistantPort) string {
	parts := make([]string, 0, 4)
	for _, p := range a.Platforms() {
		parts = append(parts, fmt.Sprintf("%s: %d", p, a.FragmentCount(p)))
	}
	return "Indexed fragments: " + strings.Join(parts, ", ")
}

var (
	responseBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	unicodeWordRe    = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)
	fragmentLineRe   = regexp.MustCompile(`^(\d+\.|-) `)
)

// highlightBestLine emphasizes the fragment line sharing the most words with the question.
func highlightBestLine(text, query string) string {
	lines := strings.Split(text, "\n")
	qTokens := toTokenSet(query)
	if len(qTokens) == 0 {
		return text
	}
	bestIdx := -1
	bestScore := 0
	for i, line := range lines {
		if !fragmentLineRe.MatchString(line) {
			continue
		}
		score := tokenOverlapScore(qTokens, line)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	if bestIdx >= 0 {
		lines[bestIdx] = highlightStyle.Render(lines[bestIdx])
	}
	return strings.Join(lines, "\n")
}

func toTokenSet(s string) map[string]struct{} {
	tokens := unicodeWordRe.FindAllString(strings.ToLower(s), -1)
	m := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		m[t] = struct{}{}
	}
	return m
}

func tokenOverlapScore(queryTokens map[string]struct{}, line string) int {
	score := 0
	tokens := unicodeWordRe.FindAllString(strings.ToLower(line), -1)
	seen := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := queryTokens[t]; ok {
			score++
		}
	}
	return score
}
