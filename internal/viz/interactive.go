package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/nbody/internal/config"
	"github.com/san-kum/nbody/internal/dynamo"
)

// IntegratorSource resolves integrator names.
type IntegratorSource interface {
	GetIntegrator(name string) (dynamo.Integrator, error)
}

var presetInfo = map[string]string{
	"solar":    "five inclined satellites",
	"planar":   "flat disc of eight",
	"crowded":  "forty small bodies",
	"binary":   "two heavy partners",
	"inclined": "tilted, jittered orbits",
}

const (
	stateMenu = iota
	stateConfig
	stateSim
)

var (
	menuTitle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	menuSub    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	menuCursor = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuActive = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuValue  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff")).Bold(true)
	menuIdle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuKey    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

var fieldNames = []string{"satellites", "G", "time_scale", "restitution", "seed", "dt"}

// App lets the user pick a preset, tweak a few fields and launch the live
// view.
type App struct {
	state, cursor int
	presets       []string
	selected      string
	fields        map[string]float64
	fieldCursor   int
	editing       bool
	editBuf       string
	integrators   IntegratorSource
	err           error
	live          Model
}

func NewInteractiveApp(src IntegratorSource) *App {
	return &App{
		state:       stateMenu,
		presets:     config.ListPresets(),
		fields:      make(map[string]float64),
		integrators: src,
	}
}

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)
	default:
		if a.state == stateSim {
			newLive, cmd := a.live.Update(msg)
			a.live = newLive.(Model)
			return a, cmd
		}
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch a.state {
	case stateMenu:
		return a.menuKey(msg)
	case stateConfig:
		return a.configKey(msg)
	case stateSim:
		newLive, cmd := a.live.Update(msg)
		a.live = newLive.(Model)
		return a, cmd
	}
	return a, nil
}

func (a App) menuKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.presets)-1 {
			a.cursor++
		}
	case "enter", " ":
		a.selected = a.presets[a.cursor]
		a.state, a.fieldCursor, a.err = stateConfig, 0, nil
		a.loadFields()
	}
	return a, nil
}

func (a App) configKey(msg tea.KeyMsg) (App, tea.Cmd) {
	name := fieldNames[a.fieldCursor]
	if a.editing {
		switch msg.String() {
		case "enter":
			var val float64
			if _, err := fmt.Sscanf(a.editBuf, "%f", &val); err == nil {
				a.fields[name] = val
			}
			a.editing, a.editBuf = false, ""
		case "esc":
			a.editing, a.editBuf = false, ""
		case "backspace":
			if len(a.editBuf) > 0 {
				a.editBuf = a.editBuf[:len(a.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 {
				c := s[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					a.editBuf += string(c)
				}
			}
		}
		return a, nil
	}
	switch msg.String() {
	case "q", "esc":
		a.state = stateMenu
	case "up", "k":
		if a.fieldCursor > 0 {
			a.fieldCursor--
		}
	case "down", "j":
		if a.fieldCursor < len(fieldNames)-1 {
			a.fieldCursor++
		}
	case "enter", " ":
		a.editing, a.editBuf = true, fmt.Sprintf("%g", a.fields[name])
	case "s":
		return a.start()
	}
	return a, nil
}

func (a *App) loadFields() {
	cfg, err := config.GetPreset(a.selected)
	if err != nil {
		a.err = err
		return
	}
	a.fields["satellites"] = float64(cfg.Generation.NumBodies)
	a.fields["G"] = cfg.Physics.G
	a.fields["time_scale"] = cfg.Physics.TimeScale
	a.fields["restitution"] = cfg.Physics.Restitution
	a.fields["seed"] = float64(cfg.Run.Seed)
	a.fields["dt"] = cfg.Run.Dt
}

// Config builds the configuration for the selected preset with the edited
// fields applied.
func (a *App) Config() (*config.Config, error) {
	cfg, err := config.GetPreset(a.selected)
	if err != nil {
		return nil, err
	}
	cfg.Generation.NumBodies = int(a.fields["satellites"])
	cfg.Physics.G = a.fields["G"]
	cfg.Physics.TimeScale = a.fields["time_scale"]
	cfg.Physics.Restitution = a.fields["restitution"]
	cfg.Run.Seed = int64(a.fields["seed"])
	cfg.Run.Dt = a.fields["dt"]
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (a App) start() (App, tea.Cmd) {
	cfg, err := a.Config()
	if err != nil {
		a.err = err
		return a, nil
	}
	integ, err := a.integrators.GetIntegrator(cfg.Run.Integrator)
	if err != nil {
		a.err = err
		return a, nil
	}
	a.live = NewModel(cfg, integ, a.selected)
	a.state, a.err = stateSim, nil
	return a, a.live.Init()
}

func (a App) View() string {
	switch a.state {
	case stateMenu:
		return a.viewMenu()
	case stateConfig:
		return a.viewConfig()
	case stateSim:
		return a.live.View()
	}
	return ""
}

func (a App) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render("NBODY") + "\n    " + menuSub.Render("gravitational n-body simulator") + "\n    " + menuSub.Render("──────────────────────────────") + "\n\n")
	for i, name := range a.presets {
		desc := presetInfo[name]
		if i == a.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", menuCursor.Render("▸"), menuActive.Render(fmt.Sprintf("%-12s", name)), menuValue.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", menuIdle.Render(fmt.Sprintf("  %-12s", name)), menuIdle.Render(desc)))
		}
	}
	b.WriteString("\n    " + menuKey.Render("j/k") + menuIdle.Render(" navigate  ") + menuKey.Render("enter") + menuIdle.Render(" select  ") + menuKey.Render("q") + menuIdle.Render(" quit") + "\n")
	return b.String()
}

func (a App) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render(strings.ToUpper(a.selected)) + "\n    " + menuSub.Render(presetInfo[a.selected]) + "\n    " + menuSub.Render("──────────────────────────────") + "\n\n")
	for i, name := range fieldNames {
		valStr := fmt.Sprintf("%10g", a.fields[name])
		if a.editing && i == a.fieldCursor {
			valStr = fmt.Sprintf("%10s", a.editBuf+"_")
		}
		if i == a.fieldCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", menuCursor.Render("▸"), menuActive.Render(fmt.Sprintf("%-12s", name)), menuValue.Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", menuIdle.Render(fmt.Sprintf("  %-12s", name)), menuIdle.Render(valStr)))
		}
	}
	if a.err != nil {
		b.WriteString("\n    " + statusStyle("diverged").Render(a.err.Error()) + "\n")
	}
	b.WriteString("\n    " + menuKey.Render("j/k") + menuIdle.Render(" select  ") + menuKey.Render("enter") + menuIdle.Render(" edit  ") + menuKey.Render("s") + menuIdle.Render(" start  ") + menuKey.Render("esc") + menuIdle.Render(" back") + "\n")
	return b.String()
}

func RunInteractive(src IntegratorSource) error {
	_, err := tea.NewProgram(NewInteractiveApp(src), tea.WithAltScreen()).Run()
	return err
}
