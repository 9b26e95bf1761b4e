// Package ui renders batch progress for the CLI with Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"sniper/internal/driver"
)

const statusColumn = 10

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	queuedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	workingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	elapsedStyle = lipgloss.NewStyle().Faint(true)
)

// stageWeight is the share of a file's work finished when a stage starts.
var stageWeight = map[driver.Stage]float64{
	driver.StageLoad:  0.05,
	driver.StageParse: 0.2,
	driver.StageEdit:  0.5,
	driver.StagePrint: 0.7,
	driver.StageWrite: 0.9,
}

var stageVerb = map[driver.Stage]string{
	driver.StageLoad:  "loading",
	driver.StageParse: "parsing",
	driver.StageEdit:  "editing",
	driver.StagePrint: "printing",
	driver.StageWrite: "writing",
}

type row struct {
	path    string
	status  driver.Status
	stage   driver.Stage
	elapsed time.Duration
	err     string
}

func (r row) label() string {
	switch r.status {
	case driver.StatusWorking:
		if verb := stageVerb[r.stage]; verb != "" {
			return verb
		}
		return "working"
	case driver.StatusDone, driver.StatusError:
		return string(r.status)
	default:
		return "queued"
	}
}

func (r row) finished() bool {
	return r.status == driver.StatusDone || r.status == driver.StatusError
}

type progressModel struct {
	title      string
	events     <-chan driver.Event
	spinner    spinner.Model
	bar        progress.Model
	rows       []row
	byPath     map[string]int
	stageLabel string
	width      int
	done       bool
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a model that shows one row per file and an overall
// bar until events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = workingStyle

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 76

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		rows:    make([]row, len(files)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	for i, file := range files {
		m.rows[i] = row{path: file, status: driver.StatusQueued}
		m.byPath[file] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(driver.Event(msg)), m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		next, cmd := m.bar.Update(msg)
		m.bar = next.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.header()))
	b.WriteString("\n\n")

	nameWidth := max(m.width-statusColumn-16, 20)
	for _, r := range m.rows {
		status := fmt.Sprintf("%*s", statusColumn, r.label())
		fmt.Fprintf(&b, "  %s %s", statusStyle(r).Render(status), truncate(r.path, nameWidth))
		if r.finished() && r.elapsed > 0 {
			b.WriteString(elapsedStyle.Render(fmt.Sprintf("  %s", r.elapsed.Round(time.Millisecond))))
		}
		b.WriteString("\n")
		if r.err != "" {
			b.WriteString(strings.Repeat(" ", statusColumn+3))
			b.WriteString(failedStyle.Render(truncate(r.err, nameWidth)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.bar.ViewAs(1.0))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) header() string {
	finished, failed := 0, 0
	for _, r := range m.rows {
		if r.finished() {
			finished++
		}
		if r.status == driver.StatusError {
			failed++
		}
	}
	h := m.title
	if m.stageLabel != "" {
		h = fmt.Sprintf("%s (%s)", h, m.stageLabel)
	}
	h = fmt.Sprintf("%s [%d/%d", h, finished, len(m.rows))
	if failed > 0 {
		h += fmt.Sprintf(", %d failed", failed)
	}
	h += "]"
	if m.done {
		return "done: " + h
	}
	return m.spinner.View() + " " + h
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

// apply folds ev into the rows. Events without a file only relabel the
// header.
func (m *progressModel) apply(ev driver.Event) tea.Cmd {
	if ev.File == "" {
		if verb := stageVerb[ev.Stage]; verb != "" {
			m.stageLabel = verb
		}
		return nil
	}
	i, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	r := &m.rows[i]
	r.status, r.stage = ev.Status, ev.Stage
	if r.finished() {
		r.elapsed = ev.Elapsed
	}
	if ev.Status == driver.StatusError && ev.Err != nil {
		r.err = ev.Err.Error()
	}
	return m.bar.SetPercent(m.percent())
}

func (m *progressModel) percent() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	total := 0.0
	for _, r := range m.rows {
		switch {
		case r.finished():
			total++
		case r.status == driver.StatusWorking:
			total += stageWeight[r.stage]
		}
	}
	return total / float64(len(m.rows))
}

func statusStyle(r row) lipgloss.Style {
	switch r.status {
	case driver.StatusDone:
		return doneStyle
	case driver.StatusError:
		return failedStyle
	case driver.StatusWorking:
		return workingStyle
	default:
		return queuedStyle
	}
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
