package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/osrsbots/botdash/internal/botapi"
	"github.com/osrsbots/botdash/internal/monitor"
	"github.com/osrsbots/botdash/internal/notify"
	"github.com/osrsbots/botdash/internal/registry"
	"github.com/osrsbots/botdash/internal/ui"
)

// Screen represents the current screen in the application
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenForm
)

// ToastLifetime is how long a toast stays on screen before the program
// dismisses it.
const ToastLifetime = 3 * time.Second

// registrySaveQuiet is the debounce quiet interval for registry writes.
// Metadata changes arrive in bursts while the user navigates; one write
// at the end is enough.
const registrySaveQuiet = 500 * time.Millisecond

// ConnectionChangedMsg is sent into the program by the connectivity
// monitor on every state transition.
type ConnectionChangedMsg struct {
	State monitor.State
}

// screenTransitionMsg signals a screen change
type screenTransitionMsg struct {
	screen Screen
}

// goBackMsg signals return to the previous screen
type goBackMsg struct{}

// toastExpiredMsg dismisses the toast with the given sequence number.
type toastExpiredMsg struct {
	seq uint64
}

// liveToast is a toast plus the sequence number its expiry timer carries.
type liveToast struct {
	seq   uint64
	toast notify.Toast
}

// AppModel is the top-level model coordinating screens, the connectivity
// indicator and the toast stack.
type AppModel struct {
	CurrentScreen  Screen
	PreviousScreen Screen

	// Shared dependencies
	Client   *botapi.Client
	Registry *registry.Registry

	// Screen models
	Dashboard *DashboardModel
	Form      *FormModel

	// Connectivity indicator state, updated by ConnectionChangedMsg.
	ConnState monitor.State

	// Live toast stack, newest last.
	toasts   []liveToast
	toastSeq uint64

	saveDebouncer *notify.Debouncer

	Width  int
	Height int
}

// NewAppModel creates the application model. reg may be nil when the
// registry could not be loaded; metadata persistence is then disabled.
func NewAppModel(client *botapi.Client, reg *registry.Registry) *AppModel {
	width, height := ui.GetTerminalSize()

	app := &AppModel{
		CurrentScreen: ScreenDashboard,
		Client:        client,
		Registry:      reg,
		ConnState:     monitor.Connected,
		Width:         width,
		Height:        height,
	}
	app.Dashboard = NewDashboardModel(client, reg)
	if reg != nil {
		app.saveDebouncer = notify.NewDebouncer(registrySaveQuiet, func(...any) {
			_ = registry.SaveGlobal()
		})
	}
	return app
}

// RequestRegistrySave schedules a debounced write of the registry.
func (m *AppModel) RequestRegistrySave() {
	if m.saveDebouncer != nil {
		m.saveDebouncer.Call()
	}
}

// Init implements tea.Model
func (m *AppModel) Init() tea.Cmd {
	return m.Dashboard.Init()
}

// Update implements tea.Model
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		// Propagate to all screens so they resize without focus
		m.Dashboard.SetSize(msg.Width, msg.Height)
		if m.Form != nil {
			m.Form.SetSize(msg.Width, msg.Height)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.flushRegistry()
			return m, tea.Quit
		}

	case ConnectionChangedMsg:
		m.ConnState = msg.State
		m.Dashboard.ConnState = msg.State
		if m.Form != nil {
			m.Form.ConnState = msg.State
		}
		return m, nil

	case notify.ToastMsg:
		m.toastSeq++
		seq := m.toastSeq
		m.toasts = append(m.toasts, liveToast{seq: seq, toast: msg.Toast})
		return m, tea.Tick(ToastLifetime, func(time.Time) tea.Msg {
			return toastExpiredMsg{seq: seq}
		})

	case toastExpiredMsg:
		for i := range m.toasts {
			if m.toasts[i].seq == msg.seq {
				m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
				break
			}
		}
		return m, nil

	case registryDirtyMsg:
		m.RequestRegistrySave()
		return m, nil

	case openFormMsg:
		form := NewFormModel(m.Client, msg.bot)
		form.SetSize(m.Width, m.Height)
		form.ConnState = m.ConnState
		m.Form = form
		return m.transitionTo(ScreenForm)

	case screenTransitionMsg:
		return m.transitionTo(msg.screen)

	case goBackMsg:
		return m.transitionTo(m.PreviousScreen)

	case quitMsg:
		m.flushRegistry()
		return m, tea.Quit
	}

	// Delegate everything else to the focused screen
	switch m.CurrentScreen {
	case ScreenDashboard:
		model, cmd := m.Dashboard.Update(msg)
		m.Dashboard = model
		return m, cmd
	case ScreenForm:
		if m.Form != nil {
			model, cmd := m.Form.Update(msg)
			m.Form = model
			return m, cmd
		}
	}

	return m, nil
}

// quitMsg asks the application to exit cleanly.
type quitMsg struct{}

// openFormMsg asks the application to open the config form for a bot.
type openFormMsg struct {
	bot botapi.BotInfo
}

// transitionTo switches the active screen, remembering where we came from
func (m *AppModel) transitionTo(screen Screen) (tea.Model, tea.Cmd) {
	m.PreviousScreen = m.CurrentScreen
	m.CurrentScreen = screen

	switch screen {
	case ScreenDashboard:
		m.Form = nil
		return m, m.Dashboard.Refresh()
	case ScreenForm:
		if m.Form != nil {
			return m, m.Form.Init()
		}
	}
	return m, nil
}

// flushRegistry cancels any pending debounced save and writes the
// registry synchronously before the program exits.
func (m *AppModel) flushRegistry() {
	if m.saveDebouncer != nil {
		m.saveDebouncer.Cancel()
		_ = registry.SaveGlobal()
	}
}

// View implements tea.Model
func (m *AppModel) View() string {
	var view string
	switch m.CurrentScreen {
	case ScreenForm:
		if m.Form != nil {
			view = m.Form.View()
		}
	default:
		view = m.Dashboard.View()
	}

	if len(m.toasts) == 0 {
		return view
	}

	// Toasts overlay the bottom-right corner of whatever screen is up.
	toasts := make([]notify.Toast, len(m.toasts))
	for i, t := range m.toasts {
		toasts[i] = t.toast
	}
	stack := ui.RenderToasts(toasts, SafeModalWidth(60, m.Width))

	overlay := lipgloss.Place(
		m.Width,
		lipgloss.Height(stack),
		lipgloss.Right,
		lipgloss.Bottom,
		stack,
	)

	lines := lipgloss.Height(view) - lipgloss.Height(overlay)
	if lines < 0 {
		return view
	}
	return lipgloss.JoinVertical(lipgloss.Left, trimHeight(view, lines), overlay)
}

// trimHeight keeps the first n terminal rows of a rendered block.
func trimHeight(view string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := 0; i < len(view); i++ {
		if view[i] == '\n' {
			count++
			if count == n {
				return view[:i]
			}
		}
	}
	return view
}
