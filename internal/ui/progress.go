// Package ui draws the interactive progress view of `nut check`.
package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"nut/internal/driver"
)

// stages: подпись и доля выполненной работы для файла в этой стадии.
var stages = map[driver.Stage]struct {
	label  string
	weight float64
}{
	driver.StageLoad:    {"loading", 0.1},
	driver.StageParse:   {"parsing", 0.3},
	driver.StageAnalyze: {"analyzing", 0.6},
}

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	styleOK      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleFailed  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleBusy    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleIdle    = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	styleElapsed = lipgloss.NewStyle().Faint(true)
)

const statusWidth = 12

type fileRow struct {
	path    string
	label   string
	stage   driver.Stage
	status  driver.Status
	elapsed time.Duration
}

func (r *fileRow) finished() bool { return r.status.Final() }

func (r *fileRow) style() lipgloss.Style {
	switch r.status {
	case driver.StatusDone, driver.StatusCached:
		return styleOK
	case driver.StatusError:
		return styleFailed
	case driver.StatusWorking:
		return styleBusy
	}
	return styleIdle
}

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	rows    []fileRow
	byPath  map[string]int
	phase   string // run-wide stage from events without File
	width   int
	done    bool
}

type (
	eventMsg driver.Event
	doneMsg  struct{}
)

// NewProgressModel lists files as queued and advances them as events
// arrive; it quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	m := &progressModel{
		title:   title,
		events:  events,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styleBusy)),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(76)),
		rows:    make([]fileRow, len(files)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	for i, f := range files {
		m.rows[i] = fileRow{path: f, label: string(driver.StatusQueued), status: driver.StatusQueued}
		m.byPath[f] = i
	}
	return m
}

// Run shows the view on out until events is closed. Keyboard input is
// not read.
func Run(out io.Writer, title string, files []string, events <-chan driver.Event) error {
	_, err := tea.NewProgram(NewProgressModel(title, files, events), tea.WithOutput(out), tea.WithInput(nil)).Run()
	return err
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(driver.Event(msg)), m.next())
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
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func label(ev driver.Event) string {
	if ev.Status == driver.StatusWorking {
		return stages[ev.Stage].label
	}
	return string(ev.Status)
}

func (m *progressModel) apply(ev driver.Event) tea.Cmd {
	l := label(ev)
	if ev.File == "" {
		if l != "" {
			m.phase = l
		}
		return nil
	}
	i, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	row := &m.rows[i]
	if l != "" {
		row.label, row.stage = l, ev.Stage
	}
	row.status = ev.Status
	row.elapsed = ev.Elapsed
	return m.bar.SetPercent(m.percent())
}

func (m *progressModel) percent() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	var sum float64
	for i := range m.rows {
		if m.rows[i].finished() {
			sum++
		} else {
			sum += stages[m.rows[i].stage].weight
		}
	}
	return sum / float64(len(m.rows))
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	header := m.title
	if m.phase != "" {
		header += " (" + m.phase + ")"
	}
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render(header))
	b.WriteString("\n\n")
	nameWidth := max(m.width-statusWidth-14, 20)
	finished, failed := 0, 0
	for i := range m.rows {
		r := &m.rows[i]
		fmt.Fprintf(&b, "  %s %s", r.style().Render(fmt.Sprintf("%*s", statusWidth, r.label)), truncate(r.path, nameWidth))
		if r.finished() {
			finished++
			fmt.Fprintf(&b, " %s", styleElapsed.Render(r.elapsed.Round(time.Millisecond).String()))
		}
		if r.status == driver.StatusError {
			failed++
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	fmt.Fprintf(&b, "\n%d/%d files", finished, len(m.rows))
	if failed > 0 {
		b.WriteString(styleFailed.Render(fmt.Sprintf(", %d failed", failed)))
	}
	b.WriteByte('\n')
	return b.String()
}

// truncate fits value into width display cells, marking the cut with "...".
func truncate(value string, width int) string {
	switch {
	case width <= 0 || runewidth.StringWidth(value) <= width:
		return value
	case width <= 3:
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
