package ui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/exview/internal/clipboard"
	"github.com/five82/exview/internal/clock"
	"github.com/five82/exview/internal/logsapi"
	"github.com/five82/exview/internal/prefs"
	"github.com/five82/exview/internal/state"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	API       logsapi.API
	Clipboard clipboard.Writer
	Clock     clock.Clock
	Logger    *slog.Logger

	// APIBase is shown in the header.
	APIBase    string
	ThemeName  string
	PrefsPath  string
	TruncateAt int
	CopyFade   time.Duration
	CopyReset  time.Duration

	// Debug turns invalid selections into panics.
	Debug bool
}

// Overlay buttons.
const (
	buttonCopy = iota
	buttonClose
)

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx        context.Context
	api        logsapi.API
	clip       clipboard.Writer
	clock      clock.Clock
	logger     *slog.Logger
	apiBase    string
	prefsPath  string
	truncateAt int
	debug      bool

	// UI state
	theme    Theme
	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	width    int
	height   int
	ready    bool
	showHelp bool
	today    string

	// Data state
	nav  state.Nav
	copy *state.Copy

	// Lists
	dateTable      table.Model
	exceptionTable table.Model

	// Detail overlay
	detailViewport viewport.Model
	focusedButton  int

	// Footer notice
	notice    state.Notice
	hasNotice bool
	noticeGen int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	clk := opts.Clock
	if clk == nil {
		clk = clock.System{}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.DefaultTheme()
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	truncateAt := opts.TruncateAt
	if truncateAt <= 0 {
		truncateAt = DefaultTruncateAt
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	keys := DefaultKeyMap()

	m := Model{
		ctx:            ctx,
		api:            opts.API,
		clip:           opts.Clipboard,
		clock:          clk,
		logger:         logger,
		apiBase:        opts.APIBase,
		prefsPath:      prefsPath,
		truncateAt:     truncateAt,
		debug:          opts.Debug,
		theme:          GetTheme(themeName),
		keys:           keys,
		help:           help.New(),
		spinner:        sp,
		today:          clock.Today(clk),
		copy:           state.NewCopy(opts.CopyFade, opts.CopyReset),
		dateTable:      newDateTable(keys.tableKeys()),
		exceptionTable: newExceptionTable(keys.tableKeys()),
		detailViewport: viewport.New(0, 0),
	}
	m.applyTableStyles()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		dayTickCmd(m.clock),
		func() tea.Msg { return mountMsg{} },
	)
}

// mountMsg starts the session once the program is running.
type mountMsg struct{}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case mountMsg:
		next, effects := m.nav.Mount()
		return m.apply(next, effects)

	case instancesMsg:
		if msg.err != nil {
			m.logger.Error("list instances failed", "error", msg.err)
			next, effects := m.nav.InstancesFailed(msg.err)
			return m.apply(next, effects)
		}
		m.logger.Debug("instances loaded", "count", len(msg.ids))
		next, effects := m.nav.InstancesLoaded(msg.ids)
		return m.apply(next, effects)

	case datesMsg:
		if msg.err != nil {
			m.logger.Error("list extracted dates failed", "instance", msg.instance, "error", msg.err)
			next, effects := m.nav.DatesFailed(msg.instance, msg.err)
			return m.apply(next, effects)
		}
		next, effects := m.nav.DatesLoaded(msg.instance, msg.dates)
		return m.apply(next, effects)

	case extractMsg:
		if msg.err != nil {
			m.logger.Error("request extraction failed", "instance", msg.instance, "error", msg.err)
			next, effects := m.nav.ExtractionFailed(msg.instance, msg.err)
			return m.apply(next, effects)
		}
		m.logger.Info("extraction requested", "instance", msg.instance, "message", msg.result.Message)
		next, effects := m.nav.ExtractionSucceeded(msg.instance, msg.result.Message)
		return m.apply(next, effects)

	case exceptionsMsg:
		if msg.err != nil {
			m.logger.Error("list exceptions failed", "instance", msg.instance, "date", msg.date, "error", msg.err)
			next, effects := m.nav.ExceptionsFailed(msg.instance, msg.date, msg.err)
			return m.apply(next, effects)
		}
		next, effects := m.nav.ExceptionsLoaded(msg.instance, msg.date, msg.list)
		return m.apply(next, effects)

	case copyTimerMsg:
		if !m.copy.Advance(msg.gen, msg.next) {
			return m, nil
		}
		if m.copy.Phase() == state.PhaseFading {
			return m, fadeFrameCmd(msg.gen)
		}
		return m, nil

	case fadeFrameMsg:
		if msg.gen == m.copy.Gen() && m.copy.Phase() == state.PhaseFading {
			return m, fadeFrameCmd(msg.gen)
		}
		return m, nil

	case clearNoticeMsg:
		if msg.gen == m.noticeGen {
			m.hasNotice = false
		}
		return m, nil

	case dayTickMsg:
		m.today = clock.Today(m.clock)
		return m, dayTickCmd(m.clock)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.nav.OverlayOpen {
		return m.renderOverlay()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// The overlay traps every key.
	if m.nav.OverlayOpen {
		return m.handleOverlayKey(msg)
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.applyTableStyles()
		if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
			m.logger.Warn("save prefs failed", "path", m.prefsPath, "error", err)
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevInstance):
		return m.stepInstance(-1)

	case key.Matches(msg, m.keys.NextInstance):
		return m.stepInstance(1)

	case key.Matches(msg, m.keys.PickInstance):
		idx := int(msg.String()[0] - '1')
		if idx >= len(m.nav.Instances) {
			return m, nil
		}
		return m.selectInstance(m.nav.Instances[idx])

	case key.Matches(msg, m.keys.Extract):
		return m.requestExtraction()
	}

	if m.nav.SelectedDate != "" {
		return m.handleExceptionListKey(msg)
	}
	return m.handleDateListKey(msg)
}

func (m Model) handleDateListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Select) {
		if len(m.nav.Dates) == 0 {
			return m, nil
		}
		row := m.dateTable.Cursor()
		if row < 0 || row >= len(m.nav.Dates) {
			return m, nil
		}
		next, effects, err := m.nav.SelectDate(m.nav.Dates[row])
		return m.applyChecked(next, effects, err)
	}
	if key.Matches(msg, m.keys.Back) {
		return m, nil
	}
	var cmd tea.Cmd
	m.dateTable, cmd = m.dateTable.Update(msg)
	return m, cmd
}

func (m Model) handleExceptionListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		next, effects := m.nav.BackToDates()
		return m.apply(next, effects)

	case key.Matches(msg, m.keys.Select):
		if len(m.nav.Exceptions) == 0 {
			return m, nil
		}
		row := m.exceptionTable.Cursor()
		if row < 0 || row >= len(m.nav.Exceptions) {
			return m, nil
		}
		next, effects, err := m.nav.OpenDetail(m.nav.Exceptions[row].ID)
		return m.applyChecked(next, effects, err)
	}
	var cmd tea.Cmd
	m.exceptionTable, cmd = m.exceptionTable.Update(msg)
	return m, cmd
}

func (m Model) stepInstance(delta int) (tea.Model, tea.Cmd) {
	n := len(m.nav.Instances)
	if n == 0 {
		return m, nil
	}
	cur := 0
	for i, id := range m.nav.Instances {
		if id == m.nav.SelectedInstance {
			cur = i
			break
		}
	}
	return m.selectInstance(m.nav.Instances[(cur+delta+n)%n])
}

func (m Model) selectInstance(id string) (tea.Model, tea.Cmd) {
	if id == m.nav.SelectedInstance && m.nav.SelectedDate == "" {
		return m, nil
	}
	next, effects, err := m.nav.SelectInstance(id)
	if err == nil {
		m.dateTable.SetCursor(0)
	}
	return m.applyChecked(next, effects, err)
}

func (m Model) requestExtraction() (tea.Model, tea.Cmd) {
	m.today = clock.Today(m.clock)
	if m.nav.SelectedInstance != "" && m.nav.HasTodayLog(m.today) {
		// The control is replaced by a notice in this state; nothing to do.
		return m, nil
	}
	next, effects, err := m.nav.RequestExtraction(m.today)
	return m.applyChecked(next, effects, err)
}

// apply commits a navigation transition and runs its effects.
func (m Model) apply(next state.Nav, effects []state.Effect) (Model, tea.Cmd) {
	prevDate := m.nav.SelectedDate
	m.nav = next
	cmd := m.runEffects(effects)
	if m.nav.SelectedDate != prevDate {
		m.exceptionTable.SetCursor(0)
	}
	m.syncTables()
	return m, cmd
}

// applyChecked is apply for transitions that can reject a selection.
func (m Model) applyChecked(next state.Nav, effects []state.Effect, err error) (Model, tea.Cmd) {
	if err != nil {
		m.invalidSelection(err)
		return m, nil
	}
	return m.apply(next, effects)
}

func (m Model) invalidSelection(err error) {
	if m.debug {
		panic(err)
	}
	m.logger.Error("invalid selection ignored", "error", err)
}

// runEffects turns transition effects into commands.
func (m *Model) runEffects(effects []state.Effect) tea.Cmd {
	var cmds []tea.Cmd
	for _, e := range effects {
		switch e.Kind {
		case state.FetchInstances:
			cmds = append(cmds, fetchInstancesCmd(m.ctx, m.api))
		case state.FetchDates:
			cmds = append(cmds, fetchDatesCmd(m.ctx, m.api, e.Instance))
		case state.FetchExceptions:
			cmds = append(cmds, fetchExceptionsCmd(m.ctx, m.api, e.Instance, e.Date))
		case state.Extract:
			cmds = append(cmds, extractCmd(m.ctx, m.api, e.Instance))
		case state.ResetCopy:
			m.copy.Reset()
			m.focusedButton = buttonCopy
			m.syncDetail()
			m.detailViewport.GotoTop()
		case state.Notify:
			cmds = append(cmds, m.setNotice(e.Notice))
		}
	}
	return tea.Batch(cmds...)
}

// setNotice shows a notice and schedules its removal.
func (m *Model) setNotice(n state.Notice) tea.Cmd {
	m.noticeGen++
	m.notice = n
	m.hasNotice = true
	return clearNoticeCmd(m.noticeGen)
}

// copyDetail runs the copy control for the open exception.
func (m Model) copyDetail() (tea.Model, tea.Cmd) {
	ex := m.nav.SelectedException
	if ex == nil || m.copy.ButtonDisabled() {
		return m, nil
	}
	timers, err := m.copy.Activate(func() error {
		if m.clip == nil {
			return errors.New("no clipboard configured")
		}
		content, err := detailContent(*ex)
		if err != nil {
			return err
		}
		return m.clip.Write(content)
	})
	if err != nil {
		m.logger.Error("copy failed", "exception", ex.ID, "error", err)
		return m, m.setNotice(state.Notice{Level: state.LevelError, Text: MsgCopyFailed, Err: err})
	}
	m.logger.Debug("exception copied", "exception", ex.ID)
	cmds := make([]tea.Cmd, 0, len(timers))
	for _, t := range timers {
		cmds = append(cmds, copyTimerCmd(t))
	}
	return m, tea.Batch(cmds...)
}

// MsgCopyFailed is shown when the clipboard write fails.
const MsgCopyFailed = "Copy failed"

// closeDetail closes the overlay through the navigation machine.
func (m Model) closeDetail() (tea.Model, tea.Cmd) {
	next, effects := m.nav.CloseDetail()
	return m.apply(next, effects)
}

// resize recomputes component sizes after a window change.
func (m *Model) resize() {
	h := m.bodyHeight() - 2
	if h < 1 {
		h = 1
	}
	m.dateTable.SetHeight(h)
	m.dateTable.SetWidth(m.width)
	m.exceptionTable.SetHeight(h)
	m.exceptionTable.SetWidth(m.width)
	m.syncTables()

	l := m.overlayLayout()
	m.detailViewport.Width = l.innerWidth
	m.detailViewport.Height = l.bodyHeight
	m.syncDetail()
}

func (m Model) bodyHeight() int {
	return maxInt(m.height-headerRows-footerRows, 1)
}

// renderMain renders the header, the active list and the footer.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderBody())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// Run starts the Bubble Tea program.
func Run(opts Options, progOpts ...tea.ProgramOption) error {
	m := New(opts)
	p := tea.NewProgram(m, progOpts...)
	_, err := p.Run()
	return err
}
