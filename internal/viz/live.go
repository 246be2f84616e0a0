package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/nbody/internal/config"
	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/physics"
	"github.com/san-kum/nbody/internal/scenario"
	"github.com/san-kum/nbody/internal/sim"
)

const (
	width           = 72
	height          = 24
	historyCapacity = 300
	trailLength     = 40
	legendLimit     = 8
	fitMargin       = 1.2
)

var paramKeys = []string{"G", "time scale", "restitution"}

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model hosts a live simulation. It owns the body collection and decides
// when the stepper runs; pausing simply skips the tick.
type Model struct {
	title         string
	stepper       *sim.Stepper
	gen           dynamo.Generation
	seed          int64
	bodies        dynamo.Bodies
	initialBodies dynamo.Bodies
	initialParams dynamo.Params
	t, dt         float64
	paused        bool
	diverged      bool
	pendingBodies int
	selected      int
	showHelp      bool
	canvas        *Canvas
	camera        *Camera
	trails        [][]mgl64.Vec3
	energyHistory []float64
}

func NewModel(cfg *config.Config, integrator dynamo.Integrator, title string) Model {
	params := cfg.Params()
	m := Model{
		title:         title,
		stepper:       sim.NewStepper(params, integrator),
		gen:           cfg.GenerationParams(),
		initialParams: params,
		dt:            cfg.Run.Dt,
		paused:        cfg.Run.Paused,
		canvas:        NewCanvas(width, height),
		camera:        NewCamera(),
		energyHistory: make([]float64, 0, historyCapacity),
	}
	m.regenerate(m.gen.NumBodies, cfg.Run.Seed)
	m.fitCamera()
	return m
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "p":
			if !m.diverged {
				m.paused = !m.paused
			}
		case "r":
			m.reset()
		case "n":
			if m.pendingBodies > 0 {
				m.pendingBodies--
			}
		case "N":
			m.pendingBodies++
		case "enter":
			m.regenerate(m.pendingBodies, m.seed+1)
		case "tab":
			m.selected = (m.selected + 1) % len(paramKeys)
		case "up", "k":
			m.adjustParam(1)
		case "down", "j":
			m.adjustParam(-1)
		case "x":
			m.camera.RotateX(0.1)
		case "X":
			m.camera.RotateX(-0.1)
		case "y":
			m.camera.RotateY(0.1)
		case "Y":
			m.camera.RotateY(-0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		case "c":
			m.camera.Reset()
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if !m.paused && !m.diverged {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) step() {
	m.stepper.Step(m.bodies, m.dt)
	m.t += m.dt * m.stepper.Params().TimeScale

	if !m.bodies.IsValid() {
		m.diverged = true
		m.paused = true
		return
	}

	m.energyHistory = append(m.energyHistory, m.energy())
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}

	for i := range m.bodies {
		m.trails[i] = append(m.trails[i], m.bodies[i].Position)
		if len(m.trails[i]) > trailLength {
			m.trails[i] = m.trails[i][1:]
		}
	}
}

func (m *Model) energy() float64 {
	return physics.NewForceField(m.stepper.Params()).Energy(m.bodies)
}

// regenerate replaces the collection with n fresh satellites.
func (m *Model) regenerate(n int, seed int64) {
	m.gen.NumBodies = n
	m.seed = seed
	m.pendingBodies = n
	m.initialParams = m.stepper.Params()
	m.bodies = scenario.Generate(m.gen, m.initialParams, seed)
	m.initialBodies = m.bodies.Clone()
	m.restart()
}

// reset restores the bodies and the parameters the current collection was
// generated with.
func (m *Model) reset() {
	m.stepper.SetParams(m.initialParams)
	m.bodies = m.initialBodies.Clone()
	m.pendingBodies = m.gen.NumBodies
	m.restart()
}

func (m *Model) restart() {
	m.t = 0
	m.diverged = false
	m.energyHistory = m.energyHistory[:0]
	m.trails = make([][]mgl64.Vec3, len(m.bodies))
}

func (m *Model) adjustParam(dir int) {
	p := m.stepper.Params()
	factor := 1.1
	if dir < 0 {
		factor = 1 / 1.1
	}
	switch paramKeys[m.selected] {
	case "G":
		p.G *= factor
	case "time scale":
		if p.TimeScale == 0 && dir > 0 {
			p.TimeScale = 0.1
		} else {
			p.TimeScale *= factor
		}
	case "restitution":
		p.Restitution = mgl64.Clamp(p.Restitution+0.05*float64(dir), 0, 1)
	}
	m.stepper.SetParams(p)
}

func (m *Model) fitCamera() {
	m.camera.Target = m.gen.CentralPosition
	sw, sh := m.canvas.PixelSize()
	m.camera.Fit(fitMargin*(m.gen.MaxOrbitRadius+m.gen.ZJitter), sw, sh)
}

func (m *Model) draw() {
	m.canvas.Clear()
	sw, sh := m.canvas.PixelSize()

	for i, trail := range m.trails {
		color := BodyColor(m.bodies[i].Color)
		for _, p := range trail {
			if x, y, _, ok := m.camera.Project(p, sw, sh); ok {
				m.canvas.SetColor(x, y, color)
			}
		}
	}

	type projected struct {
		x, y, r int
		depth   float64
		color   string
	}
	proj := make([]projected, 0, len(m.bodies))
	for i := range m.bodies {
		b := &m.bodies[i]
		x, y, depth, ok := m.camera.Project(b.Position, sw, sh)
		if !ok {
			continue
		}
		proj = append(proj, projected{x, y, m.camera.PixelRadius(b.Radius), depth, BodyColor(b.Color)})
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, p := range proj {
		m.canvas.FillCircle(p.x, p.y, p.r, p.color)
	}
}

func (m Model) status() string {
	switch {
	case m.diverged:
		return statusStyle("diverged").Render("DIVERGED")
	case m.paused:
		return statusStyle("paused").Render("PAUSED")
	default:
		return statusStyle("running").Render("RUNNING")
	}
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.Render(paint))

	var s strings.Builder
	s.WriteString(headerStyle().Render(strings.ToUpper(m.title)) + "\n")
	s.WriteString(m.status() + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	energy := 0.0
	if len(m.energyHistory) > 0 {
		energy = m.energyHistory[len(m.energyHistory)-1]
	}
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.2f", energy)) + "\n")
	s.WriteString(labelStyle.Render("Momentum") + valueStyle.Render(fmt.Sprintf("%.3f", m.bodies.TotalMomentum().Len())) + "\n")
	bodies := fmt.Sprintf("%d", m.gen.NumBodies)
	if m.pendingBodies != m.gen.NumBodies {
		bodies += fmt.Sprintf(" (enter: %d)", m.pendingBodies)
	}
	s.WriteString(labelStyle.Render("Satellites") + valueStyle.Render(bodies) + "\n")
	s.WriteString(labelStyle.Render("Seed") + valueStyle.Render(fmt.Sprintf("%d", m.seed)) + "\n")

	s.WriteString("\nPARAMETERS\n")
	p := m.stepper.Params()
	values := []float64{p.G, p.TimeScale, p.Restitution}
	for i, k := range paramKeys {
		line := fmt.Sprintf("%-12s %.3f", k, values[i])
		if i == m.selected {
			s.WriteString(activeStyle().Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}

	s.WriteString("\nBODIES\n")
	for i := range m.bodies {
		if i == legendLimit {
			s.WriteString(labelStyle.Render(fmt.Sprintf("  +%d more", len(m.bodies)-legendLimit)) + "\n")
			break
		}
		b := &m.bodies[i]
		s.WriteString(paint(BodyColor(b.Color), "●") + valueStyle.Render(fmt.Sprintf(" %2d  m=%-8.1f r=%.1f", i, b.Mass, b.Radius)) + "\n")
	}

	s.WriteString(helpStyle.Render("\n" + Separator(30) + "\nSP:Pause R:Reset Q:Quit ?:Help\nn/N:Bodies ENTER:Regenerate ↑↓:Tune"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))

	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space/P  - Pause/Resume simulation  ║
║  R        - Reset to initial bodies  ║
║  n / N    - Fewer / more satellites  ║
║  Enter    - Regenerate bodies        ║
║  Tab      - Cycle parameters         ║
║  Up/K     - Increase parameter       ║
║  Down/J   - Decrease parameter       ║
║  x/X y/Y  - Rotate view              ║
║  + / -    - Zoom                     ║
║  C        - Reset camera             ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

// RunLive starts the live view in the alternate screen.
func RunLive(cfg *config.Config, integrator dynamo.Integrator, title string) error {
	_, err := tea.NewProgram(NewModel(cfg, integrator, title), tea.WithAltScreen()).Run()
	return err
}
