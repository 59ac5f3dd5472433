package tui

import (
	"context"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/osrsbots/botdash/internal/botapi"
	"github.com/osrsbots/botdash/internal/logging"
	"github.com/osrsbots/botdash/internal/monitor"
	"github.com/osrsbots/botdash/internal/notify"
	"github.com/osrsbots/botdash/internal/registry"
	"github.com/osrsbots/botdash/internal/ui"
)

// statusPollInterval is how often the dashboard refreshes bot statuses.
const statusPollInterval = 5 * time.Second

// requestTimeout bounds the API calls issued by dashboard commands.
const requestTimeout = 10 * time.Second

// dashboardKeyMap defines keybindings for the dashboard screen
type dashboardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Configure key.Binding
	Start     key.Binding
	Stop      key.Binding
	Pause     key.Binding
	Refresh   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func (k dashboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Configure, k.Start, k.Help, k.Quit}
}

func (k dashboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Configure},
		{k.Start, k.Stop, k.Pause},
		{k.Refresh, k.Help, k.Quit},
	}
}

var dashboardKeys = dashboardKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "move down"),
	),
	Configure: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "configure"),
	),
	Start: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "start"),
	),
	Stop: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "stop"),
	),
	Pause: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "pause/resume"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
}

// Messages produced by dashboard commands

type botsLoadedMsg struct {
	bots map[string]botapi.BotInfo
	err  error
}

type statusesMsg struct {
	statuses map[string]botapi.BotStatus
}

type actionDoneMsg struct {
	botID  string
	action string
	err    error
}

type statusTickMsg struct{}

// registryDirtyMsg asks the application to schedule a registry save.
type registryDirtyMsg struct{}

// DashboardModel is the bot list screen: every bot the backend knows
// about, its live status, and the controls to start, stop, pause and
// configure it.
type DashboardModel struct {
	Client   *botapi.Client
	Registry *registry.Registry

	ConnState monitor.State

	bots     []botapi.BotInfo
	statuses map[string]botapi.BotStatus
	cursor   int

	loading bool
	loadErr error
	spinner spinner.Model

	// action tracks the in-flight start/stop/control call for one bot.
	action    notify.Control
	actionBot string

	keys     dashboardKeyMap
	help     help.Model
	showHelp bool

	width  int
	height int
}

// NewDashboardModel creates the dashboard screen model.
func NewDashboardModel(client *botapi.Client, reg *registry.Registry) *DashboardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	// Size from the terminal until the first WindowSizeMsg arrives.
	width, height := ui.GetTerminalSize()

	return &DashboardModel{
		Client:    client,
		Registry:  reg,
		ConnState: monitor.Connected,
		statuses:  make(map[string]botapi.BotStatus),
		loading:   true,
		spinner:   s,
		keys:      dashboardKeys,
		help:      help.New(),
		width:     width,
		height:    height,
	}
}

// SetSize updates the terminal dimensions.
func (m *DashboardModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
}

// Init implements tea.Model
func (m *DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadBotsCmd())
}

// Refresh reloads the bot list, used when returning from another screen.
func (m *DashboardModel) Refresh() tea.Cmd {
	m.loading = true
	m.loadErr = nil
	return tea.Batch(m.spinner.Tick, m.loadBotsCmd())
}

// Update implements tea.Model
func (m *DashboardModel) Update(msg tea.Msg) (*DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading && !m.action.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case botsLoadedMsg:
		m.loading = false
		m.loadErr = msg.err
		if msg.err != nil {
			return m, nil
		}
		m.bots = sortBots(msg.bots)
		if m.cursor >= len(m.bots) {
			m.cursor = 0
		}
		return m, tea.Batch(m.fetchStatusesCmd(), m.statusTickCmd())

	case statusesMsg:
		for id, st := range msg.statuses {
			m.statuses[id] = st
		}
		return m, nil

	case statusTickMsg:
		if len(m.bots) == 0 {
			return m, m.statusTickCmd()
		}
		return m, tea.Batch(m.fetchStatusesCmd(), m.statusTickCmd())

	case actionDoneMsg:
		m.action.StopLoading()
		m.actionBot = ""
		if msg.err != nil {
			// The client already raised the toast; just refresh status.
			return m, m.fetchStatusesCmd()
		}
		var cmds []tea.Cmd
		cmds = append(cmds, m.fetchStatusesCmd())
		if msg.action == "start" && m.Registry != nil {
			cmds = append(cmds, func() tea.Msg { return registryDirtyMsg{} })
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *DashboardModel) handleKey(msg tea.KeyMsg) (*DashboardModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, func() tea.Msg { return quitMsg{} }

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.bots)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.Refresh()

	case key.Matches(msg, m.keys.Configure):
		if bot, ok := m.selected(); ok {
			return m, func() tea.Msg { return openFormMsg{bot: bot} }
		}
		return m, nil

	case key.Matches(msg, m.keys.Start):
		bot, ok := m.selected()
		if !ok || m.action.Busy() {
			return m, nil
		}
		if m.statuses[bot.ID].Running() {
			return m, nil
		}
		m.action.StartLoading("Starting " + bot.Name)
		m.actionBot = bot.ID
		return m, tea.Batch(m.spinner.Tick, m.startBotCmd(bot))

	case key.Matches(msg, m.keys.Stop):
		bot, ok := m.selected()
		if !ok || m.action.Busy() || !m.statuses[bot.ID].Running() {
			return m, nil
		}
		m.action.StartLoading("Stopping " + bot.Name)
		m.actionBot = bot.ID
		return m, tea.Batch(m.spinner.Tick, m.stopBotCmd(bot.ID))

	case key.Matches(msg, m.keys.Pause):
		bot, ok := m.selected()
		if !ok || m.action.Busy() {
			return m, nil
		}
		st := m.statuses[bot.ID]
		if !st.Running() {
			return m, nil
		}
		action := botapi.ActionPause
		label := "Pausing "
		if st.Paused {
			action = botapi.ActionResume
			label = "Resuming "
		}
		m.action.StartLoading(label + bot.Name)
		m.actionBot = bot.ID
		return m, tea.Batch(m.spinner.Tick, m.controlBotCmd(bot.ID, action))
	}

	return m, nil
}

func (m *DashboardModel) selected() (botapi.BotInfo, bool) {
	if m.cursor < 0 || m.cursor >= len(m.bots) {
		return botapi.BotInfo{}, false
	}
	return m.bots[m.cursor], true
}

// Commands

func (m *DashboardModel) loadBotsCmd() tea.Cmd {
	client := m.Client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		bots, err := client.ListBots(ctx)
		return botsLoadedMsg{bots: bots, err: err}
	}
}

// fetchStatusesCmd polls every listed bot. Individual status failures
// are dropped so one dead bot does not blank the whole column.
func (m *DashboardModel) fetchStatusesCmd() tea.Cmd {
	client := m.Client
	ids := make([]string, len(m.bots))
	for i, b := range m.bots {
		ids[i] = b.ID
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		statuses := make(map[string]botapi.BotStatus, len(ids))
		for _, id := range ids {
			st, err := client.Status(ctx, id)
			if err != nil {
				continue
			}
			statuses[id] = *st
		}
		return statusesMsg{statuses: statuses}
	}
}

func (m *DashboardModel) statusTickCmd() tea.Cmd {
	return tea.Tick(statusPollInterval, func(time.Time) tea.Msg {
		return statusTickMsg{}
	})
}

// startBotCmd fetches the bot's stored configuration and starts it with
// the username recorded in the registry.
func (m *DashboardModel) startBotCmd(bot botapi.BotInfo) tea.Cmd {
	client := m.Client
	username := m.usernameFor(bot.ID)
	fallback := bot.DefaultConfig

	if m.Registry != nil {
		m.Registry.RecordBotStart(bot.ID, username)
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		config, err := client.GetConfig(ctx, bot.ID)
		if err != nil {
			config = fallback
		}
		err = client.Start(ctx, bot.ID, config, username)
		logging.LogBotAction(bot.ID, "start", err)
		return actionDoneMsg{botID: bot.ID, action: "start", err: err}
	}
}

func (m *DashboardModel) stopBotCmd(botID string) tea.Cmd {
	client := m.Client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := client.Stop(ctx, botID)
		logging.LogBotAction(botID, "stop", err)
		return actionDoneMsg{botID: botID, action: "stop", err: err}
	}
}

func (m *DashboardModel) controlBotCmd(botID, action string) tea.Cmd {
	client := m.Client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := client.Control(ctx, botID, action, nil)
		logging.LogBotAction(botID, action, err)
		return actionDoneMsg{botID: botID, action: action, err: err}
	}
}

// usernameFor resolves the account name a bot should run under: the
// bot's own recorded username first, then the registry default.
func (m *DashboardModel) usernameFor(botID string) string {
	if m.Registry == nil {
		return ""
	}
	if meta := m.Registry.GetBot(botID); meta != nil && meta.Username != "" {
		return meta.Username
	}
	if m.Registry.Preferences != nil {
		return m.Registry.Preferences.DefaultUsername
	}
	return ""
}

// View implements tea.Model
func (m *DashboardModel) View() string {
	if m.action.Busy() {
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(1, 2).
			Width(SafeModalWidth(44, m.width)).
			Render(m.spinner.View() + " " + m.action.Label)
		return RenderModal(box, m.width, m.height)
	}

	content := m.buildContent()
	footer := m.help.View(m.keys)
	return RenderApplicationContainer(content, footer, m.width, m.height)
}

func (m *DashboardModel) buildContent() string {
	var sections []string

	header := lipgloss.JoinHorizontal(
		lipgloss.Top,
		RenderTitle("Bots"),
		lipgloss.NewStyle().PaddingLeft(3).PaddingTop(1).Render(ui.RenderConnectionStatus(m.ConnState)),
	)
	sections = append(sections, header)

	switch {
	case m.loading:
		sections = append(sections, m.spinner.View()+" Loading bots...")

	case m.loadErr != nil:
		sections = append(sections, RenderError(botapi.ShortMessage(m.loadErr)))
		sections = append(sections, SubtitleStyle.Render("Press r to retry"))

	case len(m.bots) == 0:
		sections = append(sections, SubtitleStyle.Render("No bots registered with this backend."))

	default:
		sections = append(sections, m.renderBotList())
		if bot, ok := m.selected(); ok && bot.Description != "" {
			sections = append(sections, "")
			sections = append(sections, SubtitleStyle.Render(bot.Description))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *DashboardModel) renderBotList() string {
	rows := make([]string, 0, len(m.bots))
	for i, bot := range m.bots {
		st := m.statuses[bot.ID]

		status := st.Status
		if status == "" {
			status = botapi.StatusNotRunning
		}
		line := bot.Name + "  " + ui.RenderBotStatus(status)
		if st.Running() && st.Runtime > 0 {
			line += "  " + SubtitleStyle.Render(FormatRuntime(st.Runtime))
		}
		if m.actionBot == bot.ID {
			line += "  " + SubtitleStyle.Render(notify.SpinnerGlyph)
		}

		rows = append(rows, RenderMenuItem(line, i == m.cursor))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// sortBots orders the backend's bot map by display name, falling back to
// ID for stable ordering.
func sortBots(bots map[string]botapi.BotInfo) []botapi.BotInfo {
	out := make([]botapi.BotInfo, 0, len(bots))
	for id, b := range bots {
		if b.ID == "" {
			b.ID = id
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}
