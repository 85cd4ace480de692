package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	cl "starmaker/internal/cli"
	"starmaker/internal/game"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	dashTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("13")).
			Bold(true).
			Padding(0, 1)
	dashBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("5")).
			Padding(0, 2)
	dashLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(12)
	dashErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dashHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)

type summaryMsg struct {
	summary game.CareerSummary
	err     error
}

type dashTickMsg time.Time

type dashModel struct {
	client  *cl.Client
	energy  progress.Model
	retire  progress.Model
	summary game.CareerSummary
	loaded  bool
	err     error
}

func newDashModel(client *cl.Client) dashModel {
	return dashModel{
		client: client,
		energy: progress.New(progress.WithDefaultGradient()),
		retire: progress.New(progress.WithGradient("#5A56E0", "#EE6FF8")),
	}
}

func (m dashModel) Init() tea.Cmd {
	return tea.Batch(m.fetch, dashTick())
}

func dashTick() tea.Cmd {
	return tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
		return dashTickMsg(t)
	})
}

func (m dashModel) fetch() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	raw, err := m.client.Summary(ctx)
	if err != nil {
		return summaryMsg{err: err}
	}
	summary, err := decodeInto[game.CareerSummary](raw)
	return summaryMsg{summary: summary, err: err}
}

func (m dashModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m, m.fetch
		}
	case dashTickMsg:
		return m, tea.Batch(m.fetch, dashTick())
	case summaryMsg:
		m.err = msg.err
		if msg.err == nil {
			m.summary = msg.summary
			m.loaded = true
		}
	case tea.WindowSizeMsg:
		width := msg.Width - 20
		if width > 60 {
			width = 60
		}
		if width > 0 {
			m.energy.Width = width
			m.retire.Width = width
		}
	}
	return m, nil
}

func (m dashModel) View() string {
	var b strings.Builder

	if !m.loaded {
		if m.err != nil {
			return dashErrStyle.Render("dashboard: "+m.err.Error()) + "\n" +
				dashHintStyle.Render("q to quit, r to retry") + "\n"
		}
		return "loading...\n"
	}

	s := m.summary
	b.WriteString(dashTitleStyle.Render(fmt.Sprintf("%s  [%s]", s.StageName, s.Genre)))
	b.WriteString("\n\n")

	var stats strings.Builder
	stats.WriteString(dashLabelStyle.Render("Money") + s.Money + "\n")
	stats.WriteString(dashLabelStyle.Render("Level") + fmt.Sprintf("%d", s.Level) + "\n")
	stats.WriteString(dashLabelStyle.Render("Prestige") + fmt.Sprintf("%d", s.Prestige) + "\n")
	stats.WriteString(dashLabelStyle.Render("Reputation") + fmt.Sprintf("%d", s.Reputation) + "\n")
	stats.WriteString(dashLabelStyle.Render("Fans") + s.Fans + "\n")
	stats.WriteString(dashLabelStyle.Render("Songs") + fmt.Sprintf("%d", s.Songs) + "\n")
	stats.WriteString(dashLabelStyle.Render("Team") + fmt.Sprintf("%d", s.TeamSize) + "\n")
	stats.WriteString(dashLabelStyle.Render("Awards") + fmt.Sprintf("%d", s.Awards))
	b.WriteString(dashBoxStyle.Render(stats.String()))
	b.WriteString("\n\n")

	energyFrac := 0.0
	if s.MaxEnergy > 0 {
		energyFrac = float64(s.Energy) / float64(s.MaxEnergy)
	}
	b.WriteString(fmt.Sprintf("Energy %d/%d\n", s.Energy, s.MaxEnergy))
	b.WriteString(m.energy.ViewAs(energyFrac))
	b.WriteString("\n\nRetirement goals\n")
	b.WriteString(m.retire.ViewAs(s.RetirementProgress))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(dashErrStyle.Render("refresh failed: "+m.err.Error()) + "\n")
	}
	b.WriteString(dashHintStyle.Render("q quit · r refresh"))
	b.WriteString("\n")
	return b.String()
}

func runDashboard(ctx context.Context, client *cl.Client) error {
	program := tea.NewProgram(newDashModel(client), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}
