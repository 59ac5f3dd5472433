package tui

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/osrsbots/botdash/internal/botapi"
	"github.com/osrsbots/botdash/internal/botconfig"
	"github.com/osrsbots/botdash/internal/monitor"
	"github.com/osrsbots/botdash/internal/notify"
	"github.com/osrsbots/botdash/internal/params"
	"github.com/osrsbots/botdash/internal/ui"
	"github.com/osrsbots/botdash/internal/validate"
)

// fieldKind is the editor shape of a configuration parameter.
type fieldKind int

const (
	kindScalar fieldKind = iota // single input
	kindRGB                     // three channel inputs with live preview
	kindRange                   // min and max inputs
)

// formField is one configuration parameter and its editor inputs.
type formField struct {
	kind        fieldKind
	name        string
	description string

	inputs []textinput.Model

	// Declared bounds for scalar parameters, nil when absent.
	min *float64
	max *float64

	// Live hex preview, recomputed on every channel edit.
	hex string
}

// formKeyMap defines keybindings for the config form screen
type formKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Apply  key.Binding
	Export key.Binding
	Import key.Binding
	Back   key.Binding
}

func (k formKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Apply, k.Export, k.Import, k.Back}
}

func (k formKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev}, {k.Apply, k.Export, k.Import}, {k.Back}}
}

var formKeys = formKeyMap{
	Next: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("shift+tab", "previous field"),
	),
	Apply: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "apply"),
	),
	Export: key.NewBinding(
		key.WithKeys("ctrl+e"),
		key.WithHelp("ctrl+e", "export config"),
	),
	Import: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("ctrl+o", "import config"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
}

// Messages produced by form commands

type configLoadedMsg struct {
	config map[string]json.RawMessage
	err    error
}

type applyDoneMsg struct {
	err error
}

// FormModel is the configuration form for one bot: a typed editor per
// parameter, live validation, and import/export of the values as JSON.
type FormModel struct {
	Client *botapi.Client
	Bot    botapi.BotInfo

	ConnState monitor.State

	fields []formField

	// focus is a flat index over every input, with the apply button last.
	focus int

	result validate.Result

	apply   notify.Control
	spinner spinner.Model
	loading bool

	keys formKeyMap

	width  int
	height int
}

// NewFormModel builds the form for a bot from its parameter descriptors.
func NewFormModel(client *botapi.Client, bot botapi.BotInfo) *FormModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	width, height := ui.GetTerminalSize()

	m := &FormModel{
		Client:  client,
		Bot:     bot,
		apply:   notify.Control{Label: "Apply"},
		spinner: s,
		loading: true,
		keys:    formKeys,
		width:   width,
		height:  height,
	}
	m.fields = buildFields(bot.ConfigParams)
	m.setFocus(0)
	return m
}

// buildFields converts parameter descriptors into ordered editor fields.
func buildFields(descriptors map[string]botapi.ParamDescriptor) []formField {
	names := make([]string, 0, len(descriptors))
	for name := range descriptors {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]formField, 0, len(names))
	for _, name := range names {
		d := descriptors[name]
		f := formField{
			name:        name,
			description: d.Description,
			min:         d.Min,
			max:         d.Max,
		}

		switch d.Type {
		case "RGB":
			f.kind = kindRGB
			f.inputs = newInputs(3, 3)
			f.hex = params.RGB{}.Hex()
		case "Range":
			f.kind = kindRange
			f.inputs = newInputs(2, 10)
		default:
			f.kind = kindScalar
			f.inputs = newInputs(1, 24)
		}

		fields = append(fields, f)
	}
	return fields
}

func newInputs(n, width int) []textinput.Model {
	inputs := make([]textinput.Model, n)
	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 64
		ti.Width = width
		ti.Prompt = ""
		inputs[i] = ti
	}
	return inputs
}

// SetSize updates the terminal dimensions.
func (m *FormModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Init implements tea.Model
func (m *FormModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadConfigCmd())
}

// Update implements tea.Model
func (m *FormModel) Update(msg tea.Msg) (*FormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading && !m.apply.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case configLoadedMsg:
		m.loading = false
		if msg.err == nil {
			m.populate(msg.config)
		}
		m.revalidate()
		return m, nil

	case applyDoneMsg:
		m.apply.StopLoading()
		if msg.err == nil {
			m.notify("Configuration saved", notify.LevelSuccess)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *FormModel) handleKey(msg tea.KeyMsg) (*FormModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return goBackMsg{} }

	case key.Matches(msg, m.keys.Next):
		m.setFocus(m.focus + 1)
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		m.setFocus(m.focus - 1)
		return m, nil

	case key.Matches(msg, m.keys.Export):
		m.exportConfig()
		return m, nil

	case key.Matches(msg, m.keys.Import):
		m.importConfig()
		return m, nil

	case key.Matches(msg, m.keys.Apply):
		if m.focus == m.inputCount() {
			return m, m.submit()
		}
		// Enter inside a field moves on, like tabbing through a web form.
		m.setFocus(m.focus + 1)
		return m, nil
	}

	// Forward everything else to the focused input.
	field, idx := m.fieldAt(m.focus)
	if field == nil {
		return m, nil
	}
	var cmd tea.Cmd
	field.inputs[idx], cmd = field.inputs[idx].Update(msg)
	if field.kind == kindRGB {
		field.hex = rgbFromInputs(field.inputs).Hex()
	}
	m.revalidate()
	return m, cmd
}

// inputCount is the number of focusable inputs; the apply button sits at
// this index.
func (m *FormModel) inputCount() int {
	n := 0
	for i := range m.fields {
		n += len(m.fields[i].inputs)
	}
	return n
}

// fieldAt maps a flat focus index to its field and input offset.
func (m *FormModel) fieldAt(focus int) (*formField, int) {
	for i := range m.fields {
		n := len(m.fields[i].inputs)
		if focus < n {
			return &m.fields[i], focus
		}
		focus -= n
	}
	return nil, 0
}

func (m *FormModel) setFocus(focus int) {
	max := m.inputCount()
	if focus < 0 {
		focus = max
	}
	if focus > max {
		focus = 0
	}
	m.focus = focus

	flat := 0
	for i := range m.fields {
		for j := range m.fields[i].inputs {
			if flat == focus {
				m.fields[i].inputs[j].Focus()
				m.fields[i].inputs[j].TextStyle = FocusedInputStyle
			} else {
				m.fields[i].inputs[j].Blur()
				m.fields[i].inputs[j].TextStyle = BlurredInputStyle
			}
			flat++
		}
	}
}

// revalidate runs a full validation pass and replaces the previous
// annotations.
func (m *FormModel) revalidate() {
	var fields []validate.Field
	var pairs []validate.RangePair

	for i := range m.fields {
		f := &m.fields[i]
		switch f.kind {
		case kindScalar:
			fields = append(fields, validate.Field{
				Name:  f.name,
				Value: f.inputs[0].Value(),
				Min:   f.min,
				Max:   f.max,
			})
		case kindRange:
			pairs = append(pairs, validate.RangePair{
				Name:     f.name,
				MinValue: f.inputs[0].Value(),
				MaxValue: f.inputs[1].Value(),
			})
		}
	}

	m.result = validate.Form(fields, pairs)
}

// submit validates and uploads the configuration. A failed validation
// pass cancels the submit.
func (m *FormModel) submit() tea.Cmd {
	if m.apply.Busy() {
		return nil
	}

	m.revalidate()
	if !m.result.OK {
		m.notify("Fix the highlighted fields before applying", notify.LevelWarning)
		return nil
	}

	config := m.collectConfig()
	m.apply.StartLoading("Applying")

	client := m.Client
	botID := m.Bot.ID
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := client.SaveConfig(ctx, botID, config)
		return applyDoneMsg{err: err}
	})
}

// collectConfig encodes the current editor values into the backend's
// typed configuration map.
func (m *FormModel) collectConfig() map[string]json.RawMessage {
	config := make(map[string]json.RawMessage, len(m.fields))
	for i := range m.fields {
		f := &m.fields[i]
		switch f.kind {
		case kindRGB:
			raw, err := json.Marshal(rgbFromInputs(f.inputs))
			if err == nil {
				config[f.name] = raw
			}
		case kindRange:
			min, errMin := strconv.ParseFloat(strings.TrimSpace(f.inputs[0].Value()), 64)
			max, errMax := strconv.ParseFloat(strings.TrimSpace(f.inputs[1].Value()), 64)
			if errMin != nil || errMax != nil {
				continue
			}
			raw, err := json.Marshal(params.Range{Min: min, Max: max})
			if err == nil {
				config[f.name] = raw
			}
		default:
			config[f.name] = scalarToJSON(f.inputs[0].Value())
		}
	}
	return config
}

// populate fills the editor inputs from a configuration map. Values that
// fail to decode leave their inputs untouched.
func (m *FormModel) populate(config map[string]json.RawMessage) {
	for i := range m.fields {
		f := &m.fields[i]
		raw, ok := config[f.name]
		if !ok {
			continue
		}

		switch f.kind {
		case kindRGB:
			var c params.RGB
			if err := json.Unmarshal(raw, &c); err != nil {
				continue
			}
			f.inputs[0].SetValue(strconv.Itoa(c.R))
			f.inputs[1].SetValue(strconv.Itoa(c.G))
			f.inputs[2].SetValue(strconv.Itoa(c.B))
			f.hex = c.Hex()

		case kindRange:
			var r params.Range
			if err := json.Unmarshal(raw, &r); err != nil {
				continue
			}
			f.inputs[0].SetValue(formatNumber(r.Min))
			f.inputs[1].SetValue(formatNumber(r.Max))

		default:
			f.inputs[0].SetValue(scalarFromJSON(raw))
		}
	}
}

// exportConfig writes the current values to bot_config.json next to the
// working directory.
func (m *FormModel) exportConfig() {
	path, err := botconfig.ExportFile("", m.collectConfig())
	if err != nil {
		m.notify("Error exporting config file", notify.LevelDanger)
		return
	}
	m.notify("Configuration exported to "+path, notify.LevelSuccess)
}

// importConfig reads bot_config.json and loads its values into the form.
// The shared import helper owns the error toasts.
func (m *FormModel) importConfig() {
	notifier := m.Client.Notifier
	err := botconfig.ImportFile(botconfig.DefaultExportName, notifier, func(config map[string]json.RawMessage) {
		m.populate(config)
		m.revalidate()
	})
	if err == nil {
		m.notify("Configuration imported", notify.LevelSuccess)
	}
}

func (m *FormModel) notify(message string, level notify.Level) {
	if m.Client != nil && m.Client.Notifier != nil {
		m.Client.Notifier.Notify(message, level)
	}
}

// Commands

func (m *FormModel) loadConfigCmd() tea.Cmd {
	client := m.Client
	botID := m.Bot.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		config, err := client.GetConfig(ctx, botID)
		return configLoadedMsg{config: config, err: err}
	}
}

// View implements tea.Model
func (m *FormModel) View() string {
	content := m.buildContent()
	footer := "tab/shift+tab: move • enter: apply • ctrl+e: export • ctrl+o: import • esc: back"
	return RenderApplicationContainer(content, footer, m.width, m.height)
}

func (m *FormModel) buildContent() string {
	var sections []string

	header := lipgloss.JoinHorizontal(
		lipgloss.Top,
		RenderTitle("Configure "+m.Bot.Name),
		lipgloss.NewStyle().PaddingLeft(3).PaddingTop(1).Render(ui.RenderConnectionStatus(m.ConnState)),
	)
	sections = append(sections, header)

	if m.loading {
		sections = append(sections, m.spinner.View()+" Loading configuration...")
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	if len(m.fields) == 0 {
		sections = append(sections, SubtitleStyle.Render("This bot has no configurable parameters."))
	}

	flat := 0
	for i := range m.fields {
		f := &m.fields[i]
		focused := m.focus >= flat && m.focus < flat+len(f.inputs)
		flat += len(f.inputs)
		sections = append(sections, m.renderField(f, focused))
	}

	sections = append(sections, "")
	sections = append(sections, m.renderApplyButton())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *FormModel) renderField(f *formField, focused bool) string {
	label := f.name
	if focused {
		label = SelectedMenuItemStyle.Render("→ " + label)
	} else {
		label = MenuItemStyle.Render("  " + label)
	}

	var editor string
	switch f.kind {
	case kindRGB:
		editor = lipgloss.JoinHorizontal(
			lipgloss.Top,
			"r ", f.inputs[0].View(),
			"  g ", f.inputs[1].View(),
			"  b ", f.inputs[2].View(),
			"  ", ui.Swatch(f.hex), " ", SubtitleStyle.Render(f.hex),
		)
	case kindRange:
		editor = lipgloss.JoinHorizontal(
			lipgloss.Top,
			"min ", f.inputs[0].View(),
			"  max ", f.inputs[1].View(),
		)
	default:
		editor = f.inputs[0].View()
	}

	lines := []string{lipgloss.JoinHorizontal(lipgloss.Top, label, "  ", editor)}

	if f.description != "" {
		lines = append(lines, "    "+SubtitleStyle.Render(f.description))
	}
	for _, msg := range m.fieldErrors(f) {
		lines = append(lines, "    "+FieldErrorStyle.Render("✗ "+msg))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// fieldErrors collects the validation messages attached to a field's
// logical input names.
func (m *FormModel) fieldErrors(f *formField) []string {
	var names []string
	switch f.kind {
	case kindRange:
		names = []string{f.name + "_min", f.name + "_max"}
	default:
		names = []string{f.name}
	}

	var out []string
	for _, name := range names {
		if msg := m.result.ErrorFor(name); msg != "" {
			out = append(out, msg)
		}
	}
	return out
}

func (m *FormModel) renderApplyButton() string {
	label := "[ " + m.apply.Label + " ]"
	switch {
	case m.apply.Busy():
		return "  " + SubtitleStyle.Render(m.spinner.View()+" "+m.apply.Label)
	case m.focus == m.inputCount():
		return SelectedMenuItemStyle.Render("→ " + label)
	default:
		return MenuItemStyle.Render("  " + label)
	}
}

// rgbFromInputs reads the three channel inputs, treating junk as 0 and
// clamping to the valid range.
func rgbFromInputs(inputs []textinput.Model) params.RGB {
	return params.RGB{
		R: params.ChannelFromString(inputs[0].Value()),
		G: params.ChannelFromString(inputs[1].Value()),
		B: params.ChannelFromString(inputs[2].Value()),
	}
}

// scalarToJSON encodes a plain input as a JSON number, boolean or string.
func scalarToJSON(value string) json.RawMessage {
	trimmed := strings.TrimSpace(value)
	if trimmed == "true" || trimmed == "false" {
		return json.RawMessage(trimmed)
	}
	if _, err := strconv.ParseFloat(trimmed, 64); err == nil && json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed)
	}
	raw, _ := json.Marshal(value)
	return raw
}

// scalarFromJSON renders a stored scalar value as input text.
func scalarFromJSON(raw json.RawMessage) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return formatNumber(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return string(raw)
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
