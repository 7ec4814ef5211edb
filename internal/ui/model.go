package ui

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cwarden/calmate/internal/calendar"
	"github.com/cwarden/calmate/internal/config"
	"github.com/cwarden/calmate/internal/log"
	"github.com/cwarden/calmate/internal/parser"
	"github.com/cwarden/calmate/internal/seed"
)

const messageDuration = 3 * time.Second

type ViewMode int

const (
	ViewMonth ViewMode = iota
	ViewDay
	ViewEditor
	ViewGoto
	ViewHelp
)

type Model struct {
	// Core components
	config  *config.Config
	store   *calendar.Store
	notices *Notices
	parser  *parser.DateParser

	// View state
	mode     ViewMode
	prevMode ViewMode
	cursor   calendar.Cursor
	selected time.Time
	today    calendar.DateKey
	dayIndex int // selected row in the day view

	// Editor state
	form      calendar.Form
	formField int
	formDate  calendar.DateKey
	editingID int64
	formErr   string

	// Prompt state
	gotoInput     string
	pendingDelete int64

	// UI state
	width      int
	height     int
	message    string
	messageSeq int

	// Styles
	styles Styles
}

type Styles struct {
	Normal   lipgloss.Style
	Selected lipgloss.Style
	Today    lipgloss.Style
	Past     lipgloss.Style
	Weekend  lipgloss.Style
	Header   lipgloss.Style
	Help     lipgloss.Style
	Message  lipgloss.Style
	Notice   lipgloss.Style
	Input    lipgloss.Style
}

// NewModel builds the TUI around store. The store's clock decides what
// "today" is.
func NewModel(cfg *config.Config, store *calendar.Store, notices *Notices) *Model {
	if notices == nil {
		notices = &Notices{}
	}

	m := &Model{
		config:  cfg,
		store:   store,
		notices: notices,
		parser:  parser.NewDateParser(),
		mode:    ViewMonth,
		styles:  NewStyles(cfg.Colors),
	}
	m.today = store.Today()
	m.jumpTo(m.todayTime())
	return m
}

func NewStyles(colors map[string]string) Styles {
	color := func(name, fallback string) lipgloss.Color {
		if c, ok := colors[name]; ok && c != "" {
			return lipgloss.Color(c)
		}
		return lipgloss.Color(fallback)
	}

	return Styles{
		Normal: lipgloss.NewStyle().
			Foreground(color("normal", "252")),
		Selected: lipgloss.NewStyle().
			Foreground(color("selected", "235")).
			Background(color("today", "220")).
			Bold(true),
		Today: lipgloss.NewStyle().
			Foreground(color("today", "220")).
			Bold(true),
		Past: lipgloss.NewStyle().
			Foreground(color("past", "241")),
		Weekend: lipgloss.NewStyle().
			Foreground(color("weekend", "39")),
		Header: lipgloss.NewStyle().
			Foreground(color("header", "220")).
			Bold(true).
			Underline(true),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Message: lipgloss.NewStyle().
			Foreground(color("today", "220")).
			Background(lipgloss.Color("235")).
			Padding(0, 1),
		Notice: lipgloss.NewStyle().
			Foreground(color("notice", "196")).
			Bold(true),
		Input: lipgloss.NewStyle().
			Foreground(lipgloss.Color("235")).
			Background(lipgloss.Color("252")),
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.EnterAltScreen
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case SeedChangedMsg:
		return m, loadSeedCmd(msg.Path)

	case seedLoadedMsg:
		if msg.err != nil {
			log.Error("reload seed", msg.err)
			return m, m.showMessage("Seed reload failed: " + msg.err.Error())
		}
		n := m.store.Reseed(msg.events)
		m.clampDayIndex()
		return m, m.showMessage(pluralize(n, "seed event") + " reloaded")

	case DayChangedMsg:
		m.rollDay()
		return m, nil

	case messageTimeoutMsg:
		if msg.seq == m.messageSeq && m.pendingDelete == 0 {
			m.message = ""
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	switch m.mode {
	case ViewDay:
		return m.viewDay()
	case ViewEditor:
		return m.viewEditor()
	case ViewGoto:
		return m.viewGoto()
	case ViewHelp:
		return m.viewHelp()
	default:
		return m.viewMonth()
	}
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Modes that take free text come first so typed letters are not actions.
	switch m.mode {
	case ViewEditor:
		return m.handleEditorKeys(msg)
	case ViewGoto:
		return m.handleGotoKeys(msg)
	case ViewHelp:
		m.mode = m.prevMode
		return m, nil
	}

	if m.pendingDelete != 0 {
		return m.handleConfirmKeys(msg)
	}

	action := m.config.KeyBindings[msg.String()]
	switch action {
	case "quit":
		return m, tea.Quit

	case "help":
		m.prevMode = m.mode
		m.mode = ViewHelp
		return m, nil

	case "goto_date":
		m.prevMode = m.mode
		m.mode = ViewGoto
		m.gotoInput = ""
		return m, nil

	case "today":
		m.jumpTo(m.todayTime())
		return m, nil

	case "new_event":
		m.openEditor(calendar.KeyOf(m.selected), nil)
		return m, nil
	}

	switch m.mode {
	case ViewDay:
		return m.handleDayKeys(msg, action)
	default:
		return m.handleMonthKeys(action)
	}
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.pendingDelete
	m.pendingDelete = 0

	switch msg.String() {
	case "y", "Y":
		return m, m.deleteEvent(id)
	default:
		return m, m.showMessage("Delete cancelled")
	}
}

func (m *Model) deleteEvent(id int64) tea.Cmd {
	err := m.store.Remove(id)
	if err == nil {
		m.clampDayIndex()
		return m.showMessage("Event deleted")
	}
	return m.reportError(err)
}

// reportError shows store notices when the store emitted any, and the error
// text otherwise.
func (m *Model) reportError(err error) tea.Cmd {
	if notices := m.notices.Drain(); len(notices) > 0 {
		return m.showMessage(notices[len(notices)-1])
	}
	if !errors.Is(err, calendar.ErrPolicy) {
		log.Debug("action rejected", "error", err)
	}
	return m.showMessage(calendar.UserMessage(err))
}

// jumpTo selects day t and shows its month.
func (m *Model) jumpTo(t time.Time) {
	m.selected = dayOf(t)
	m.cursor = calendar.CursorFor(m.selected)
	m.dayIndex = 0
}

func (m *Model) todayTime() time.Time {
	t, err := m.today.Time()
	if err != nil {
		return dayOf(time.Now())
	}
	return t
}

// rollDay moves the selection along when it sat on the day that just ended.
func (m *Model) rollDay() {
	previous := m.today
	m.today = m.store.Today()
	if previous != m.today && calendar.KeyOf(m.selected) == previous {
		m.jumpTo(m.todayTime())
	}
}

func (m *Model) showMessage(msg string) tea.Cmd {
	m.message = msg
	m.messageSeq++
	seq := m.messageSeq
	return tea.Tick(messageDuration, func(time.Time) tea.Msg {
		return messageTimeoutMsg{seq: seq}
	})
}

func loadSeedCmd(path string) tea.Cmd {
	return func() tea.Msg {
		events, err := seed.Load(path)
		return seedLoadedMsg{events: events, err: err}
	}
}

// SeedChangedMsg asks the model to reload the seed file at Path.
type SeedChangedMsg struct {
	Path string
}

// DayChangedMsg is sent when the wall clock crosses midnight.
type DayChangedMsg struct{}

type seedLoadedMsg struct {
	events []calendar.Event
	err    error
}

type messageTimeoutMsg struct {
	seq int
}
