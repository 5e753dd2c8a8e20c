package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "jsprobe.dev/pkg/jsprobe/internal/model"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	killedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	timeoutStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	survivedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	scoreStyle    = lipgloss.NewStyle().Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
)

// TUI implements UI with a Bubble Tea program running next to the workflow.
// Display calls are forwarded to the program as messages.
type TUI struct {
	output io.Writer

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start launches the Bubble Tea program.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := newStartConfig(options...)

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.program != nil {
		return errors.New("tui already started")
	}

	program := tea.NewProgram(
		newTUIModel(cfg.mode),
		tea.WithOutput(t.output),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	done := make(chan struct{})

	go func() {
		defer close(done)

		if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			slog.Error("Failed to run TUI", "error", err)
		}
	}()

	t.program = program
	t.done = done

	return nil
}

// Close stops the program and waits for it to restore the terminal.
func (t *TUI) Close(ctx context.Context) {
	t.mu.Lock()
	program, done := t.program, t.done
	t.program, t.done = nil, nil
	t.mu.Unlock()

	if program == nil {
		return
	}

	program.Quit()

	select {
	case <-done:
	case <-ctx.Done():
	}
}

// Wait blocks until the user quits the program.
func (t *TUI) Wait(ctx context.Context) {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()

	if done == nil {
		return
	}

	select {
	case <-done:
	case <-ctx.Done():
	}
}

func (t *TUI) send(ctx context.Context, msg tea.Msg) {
	if ctx.Err() != nil {
		return
	}

	t.mu.Lock()
	program := t.program
	t.mu.Unlock()

	if program != nil {
		program.Send(msg)
	}
}

// DisplayCoverage implements UI.
func (t *TUI) DisplayCoverage(ctx context.Context, file m.Path, report string) {
	t.send(ctx, coverageMsg{file: file, report: report})
}

// DisplayMutants implements UI.
func (t *TUI) DisplayMutants(ctx context.Context, file m.Path, mutants []m.Mutant, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	t.send(ctx, mutantsMsg{file: file, mutants: mutants, err: err})

	return err
}

// DisplayConcurrencyInfo implements UI.
func (t *TUI) DisplayConcurrencyInfo(ctx context.Context, threads int, shardIndex int, shardCount int) {
	t.send(ctx, concurrencyMsg{threads: threads, shardIndex: shardIndex, shardCount: shardCount})
}

// DisplayUpcomingTestsInfo implements UI.
func (t *TUI) DisplayUpcomingTestsInfo(ctx context.Context, n int) {
	t.send(ctx, upcomingMsg{n: n})
}

// DisplayStartingTestInfo implements UI.
func (t *TUI) DisplayStartingTestInfo(ctx context.Context, file m.Path, mutant m.Mutant, threadID int) {
	t.send(ctx, startingMsg{file: file, mutant: mutant, threadID: threadID})
}

// DisplayCompletedTestInfo implements UI.
func (t *TUI) DisplayCompletedTestInfo(ctx context.Context, report m.Report) {
	t.send(ctx, completedMsg{report: report})
}

// DisplayMutationScore implements UI.
func (t *TUI) DisplayMutationScore(ctx context.Context, score float64) {
	t.send(ctx, scoreMsg{score: score})
}

// DisplayReports implements UI.
func (t *TUI) DisplayReports(ctx context.Context, reports []m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.send(ctx, reportsMsg{reports: reports})

	return nil
}

type (
	coverageMsg struct {
		file   m.Path
		report string
	}
	mutantsMsg struct {
		file    m.Path
		mutants []m.Mutant
		err     error
	}
	concurrencyMsg struct {
		threads, shardIndex, shardCount int
	}
	upcomingMsg struct {
		n int
	}
	startingMsg struct {
		file     m.Path
		mutant   m.Mutant
		threadID int
	}
	completedMsg struct {
		report m.Report
	}
	scoreMsg struct {
		score float64
	}
	reportsMsg struct {
		reports []m.Report
	}
)

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Detail   key.Binding
	Quit     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Detail, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.PageUp, k.PageDown}, {k.Detail, k.Quit}}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "f", " "), key.WithHelp("pgdn", "page down")),
		Detail:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "toggle diffs")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// tuiModel is the Bubble Tea model behind TUI. Everything the workflow
// reports is kept so the body can be re-rendered on resize or detail toggle.
type tuiModel struct {
	mode     StartMode
	keys     keyMap
	help     help.Model
	viewport viewport.Model
	ready    bool
	width    int
	height   int
	quitting bool
	detail   bool

	sections    []string
	concurrency string
	upcoming    int
	running     map[int]string
	results     []m.Report
	score       *float64
}

func newTUIModel(mode StartMode) tuiModel {
	return tuiModel{
		mode:    mode,
		keys:    defaultKeyMap(),
		help:    help.New(),
		running: make(map[int]string),
	}
}

func (tm tuiModel) Init() tea.Cmd {
	return nil
}

func (tm tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return tm.resize(msg.Width, msg.Height), nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, tm.keys.Quit):
			tm.quitting = true
			return tm, tea.Quit
		case key.Matches(msg, tm.keys.Detail):
			tm.detail = !tm.detail
			return tm.refresh(false), nil
		}

	case coverageMsg:
		tm.sections = append(tm.sections, fmt.Sprintf("%s\n%s", titleStyle.Render(string(msg.file)), msg.report))
		return tm.refresh(false), nil

	case mutantsMsg:
		tm.sections = append(tm.sections, renderMutantSection(msg))
		return tm.refresh(false), nil

	case concurrencyMsg:
		tm.concurrency = fmt.Sprintf("%d worker(s), shard %d/%d", msg.threads, msg.shardIndex, msg.shardCount)
		return tm.refresh(false), nil

	case upcomingMsg:
		tm.upcoming = msg.n
		return tm.refresh(false), nil

	case startingMsg:
		tm.running[msg.threadID] = fmt.Sprintf("#%d %s %s", msg.mutant.ID, msg.mutant.Type, msg.file)
		return tm.refresh(true), nil

	case completedMsg:
		for thread, label := range tm.running {
			if strings.HasPrefix(label, fmt.Sprintf("#%d ", msg.report.Mutant.ID)) {
				delete(tm.running, thread)
			}
		}

		tm.results = append(tm.results, msg.report)

		return tm.refresh(true), nil

	case scoreMsg:
		score := msg.score
		tm.score = &score

		return tm.refresh(true), nil

	case reportsMsg:
		tm.results = append([]m.Report(nil), msg.reports...)
		return tm.refresh(false), nil
	}

	if !tm.ready {
		return tm, nil
	}

	var cmd tea.Cmd
	tm.viewport, cmd = tm.viewport.Update(msg)

	return tm, cmd
}

func (tm tuiModel) resize(width, height int) tuiModel {
	tm.width = width
	tm.height = height
	tm.help.Width = width

	bodyHeight := height - lipgloss.Height(tm.header()) - lipgloss.Height(tm.footer())
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	if !tm.ready {
		tm.viewport = viewport.New(width, bodyHeight)
		tm.ready = true
	} else {
		tm.viewport.Width = width
		tm.viewport.Height = bodyHeight
	}

	return tm.refresh(false)
}

func (tm tuiModel) refresh(follow bool) tuiModel {
	if !tm.ready {
		return tm
	}

	tm.viewport.SetContent(tm.body())

	if follow {
		tm.viewport.GotoBottom()
	}

	return tm
}

func (tm tuiModel) View() string {
	if tm.quitting {
		return ""
	}

	content := tm.body()
	if tm.ready {
		content = tm.viewport.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tm.header(), content, tm.footer())
}

func (tm tuiModel) header() string {
	title := titleStyle.Render("jsprobe · " + modeTitle(tm.mode))
	if tm.concurrency == "" {
		return title
	}

	return title + "\n" + subtleStyle.Render(tm.concurrency)
}

func (tm tuiModel) footer() string {
	return subtleStyle.Render(tm.help.View(tm.keys))
}

func modeTitle(mode StartMode) string {
	switch mode {
	case ModeCover:
		return "coverage"
	case ModeList:
		return "mutants"
	case ModeView:
		return "reports"
	default:
		return "mutation testing"
	}
}

func (tm tuiModel) body() string {
	var b strings.Builder

	for _, section := range tm.sections {
		b.WriteString(section)
		b.WriteString("\n\n")
	}

	if tm.mode == ModeTest {
		fmt.Fprintf(&b, "Tested %d/%d mutants\n", len(tm.results), tm.upcoming)

		threads := make([]int, 0, len(tm.running))
		for thread := range tm.running {
			threads = append(threads, thread)
		}

		sort.Ints(threads)

		for _, thread := range threads {
			b.WriteString(subtleStyle.Render(fmt.Sprintf("  [%d] %s", thread, tm.running[thread])))
			b.WriteString("\n")
		}
	}

	for _, report := range tm.results {
		b.WriteString(renderResultLine(report))
		b.WriteString("\n")

		if tm.detail && report.Status == m.Survived && report.Mutant.Diff != "" {
			b.WriteString(report.Mutant.Diff)
			b.WriteString("\n")
		}
	}

	if tm.score != nil {
		counts := statusCounts(tm.results)
		fmt.Fprintf(&b, "\n%s  %s\n",
			scoreStyle.Render(fmt.Sprintf("Mutation score: %.2f%%", *tm.score*100)),
			subtleStyle.Render(fmt.Sprintf("killed %d, timeout %d, survived %d, error %d",
				counts[m.Killed], counts[m.Timeout], counts[m.Survived], counts[m.Error])),
		)
	}

	return strings.TrimRight(b.String(), "\n")
}

func renderMutantSection(msg mutantsMsg) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%d mutants)", msg.file, len(msg.mutants))))

	if msg.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(msg.err.Error()))

		return b.String()
	}

	for _, mutant := range msg.mutants {
		fmt.Fprintf(&b, "\n%4d %-22s %-14s %s -> %s",
			mutant.ID, mutant.Type, mutant.Range, snippet(mutant.OriginalText()), snippet(mutant.MutatedText))
	}

	return b.String()
}

func renderResultLine(report m.Report) string {
	line := fmt.Sprintf("%4d %-22s %-14s %s", report.Mutant.ID, report.Mutant.Type, report.Mutant.Range, report.File)

	return line + "  " + statusStyle(report.Status).Render(report.Status.String())
}

func statusStyle(status m.TestStatus) lipgloss.Style {
	switch status {
	case m.Killed:
		return killedStyle
	case m.Timeout:
		return timeoutStyle
	case m.Survived:
		return survivedStyle
	case m.Error:
		return errorStyle
	default:
		return subtleStyle
	}
}
