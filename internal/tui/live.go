// Package tui renders a run live in the terminal: the concentration
// profile redrawn as the driver advances through time levels.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/glioma-lab/gliosim/internal/metrics"
	"github.com/glioma-lab/gliosim/internal/sim"
)

const (
	graphWidth  = 80
	graphHeight = 16
)

var (
	frameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model owns a driver and advances it a fixed number of time levels
// per frame.
type Model struct {
	driver         *sim.Driver
	dx             float64
	levelsPerFrame int
	running        bool
	err            error
}

func NewModel(driver *sim.Driver, dx float64, levelsPerFrame int) Model {
	if levelsPerFrame < 1 {
		levelsPerFrame = 1
	}
	return Model{
		driver:         driver,
		dx:             dx,
		levelsPerFrame: levelsPerFrame,
		running:        true,
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		}
	case TickMsg:
		if m.running && m.err == nil && !m.driver.Done() {
			for i := 0; i < m.levelsPerFrame && !m.driver.Done(); i++ {
				if err := m.driver.Step(); err != nil {
					m.err = err
					m.running = false
					break
				}
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	r := m.driver.Result()
	col := r.Columns[m.driver.Level()]

	graph := asciigraph.Plot(col,
		asciigraph.Height(graphHeight),
		asciigraph.Width(graphWidth),
		asciigraph.Caption("concentration vs position"),
	)

	peak, peakIdx := metrics.Peak(col)
	status := fmt.Sprintf("t=%-8.2f level %d/%d   peak %.2f at x=%.1f   mass %.2f",
		r.Times[m.driver.Level()], m.driver.Level(), m.driver.Levels(),
		peak, r.X[peakIdx], metrics.Mass(col, m.dx))

	lines := headerStyle.Render("gliosim live") + "\n" +
		frameStyle.Render(graph) + "\n" +
		statusStyle.Render(status)

	if n := len(r.Failures); n > 0 {
		lines += "\n" + failStyle.Render(fmt.Sprintf("%d level(s) did not converge", n))
	}
	if m.err != nil {
		lines += "\n" + failStyle.Render("solver aborted: "+m.err.Error())
	}

	return lines + "\n" + helpStyle.Render("space pause · q quit")
}

// Run drives the live view until the user quits.
func Run(driver *sim.Driver, dx float64, levelsPerFrame int) error {
	p := tea.NewProgram(NewModel(driver, dx, levelsPerFrame))
	_, err := p.Run()
	return err
}
