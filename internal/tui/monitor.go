package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// CheckUpdate reports one completed probe to the monitor.
type CheckUpdate struct {
	Index  int
	URL    string
	Label  string
	Broken bool
	Done   int
	Total  int
}

// RunComplete signals that every probe has finished.
type RunComplete struct {
	Checked int
	Broken  int
}

// Model renders a live view of an in-flight check run: completion
// progress, broken counts, and a rolling log of the latest broken URLs.
type Model struct {
	total       int
	done        int
	brokenCount int
	brokenLog   []string
	spinner     spinner.Model
	progress    progress.Model
	width       int
	height      int
	quit        bool
	finished    bool
}

// NewModel creates a monitor for a run of total URLs.
func NewModel(total int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	pr := progress.New(progress.WithDefaultGradient())

	return Model{
		total:    total,
		spinner:  sp,
		progress: pr,
		width:    80,
		height:   24,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quit = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20

	case CheckUpdate:
		m = m.handleCheckUpdate(msg)

	case RunComplete:
		m.finished = true
		m.done = msg.Checked
		m.brokenCount = msg.Broken
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		if progressModel, ok := progressModel.(progress.Model); ok {
			m.progress = progressModel
		}
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleCheckUpdate(msg CheckUpdate) Model {
	m.done = msg.Done
	if msg.Broken {
		m.brokenCount++
		url := msg.URL
		if url == "" {
			url = "(blank)"
		}
		m.brokenLog = append(m.brokenLog, fmt.Sprintf("[%s] row %d  %s  %s",
			time.Now().Format("15:04:05"), msg.Index, msg.Label, truncate(url, m.width-30)))
		if len(m.brokenLog) > 10 {
			m.brokenLog = m.brokenLog[len(m.brokenLog)-10:]
		}
	}
	return m
}

func (m Model) View() string {
	if m.quit {
		return "Shutting down...\n"
	}

	var s strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginBottom(1)

	s.WriteString(headerStyle.Render("🔍 imgcheck"))
	s.WriteString("\n\n")

	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("244"))

	summary := fmt.Sprintf("Checked: %d/%d | ❌ Broken: %d", m.done, m.total, m.brokenCount)
	if !m.finished {
		summary = m.spinner.View() + " " + summary
	}
	s.WriteString(summaryStyle.Render(summary))
	s.WriteString("\n\n")

	ratio := 0.0
	if m.total > 0 {
		ratio = float64(m.done) / float64(m.total)
	}
	s.WriteString(m.progress.ViewAs(ratio))
	s.WriteString("\n\n")

	logSectionStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Width(m.width - 2)

	var logSection strings.Builder
	logSection.WriteString("❌ Recent broken URLs\n")
	logSection.WriteString(strings.Repeat("─", 40) + "\n")
	if len(m.brokenLog) == 0 {
		logSection.WriteString("none yet\n")
	}
	for _, line := range m.brokenLog {
		logSection.WriteString(line + "\n")
	}

	s.WriteString(logSectionStyle.Render(logSection.String()))
	s.WriteString("\n\n")

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	footer := "Press 'q' to quit | Logs: logs/imgcheck_*.log"
	s.WriteString(footerStyle.Render(footer))

	return s.String()
}

func truncate(s string, max int) string {
	if max < 4 {
		max = 4
	}
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
