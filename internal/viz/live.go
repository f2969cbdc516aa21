package viz

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/linkage/internal/dynamo"
	"github.com/san-kum/linkage/internal/metrics"
	"github.com/san-kum/linkage/internal/render"
	"github.com/san-kum/linkage/internal/sim"
)

const (
	defaultWidth    = 80
	defaultHeight   = 24
	historyCapacity = 300
)

type TickMsg time.Time

type Options struct {
	// Width and Height are the canvas size in terminal cells.
	Width, Height int
	FPS           int
	Title         string
	Theme         string
	GIFPath       string
}

// Model drives a simulator from bubbletea ticks and draws it on a braille
// canvas. Pausing and stepping only change when ticks run; they never touch
// the bodies.
type Model struct {
	sim      *sim.Simulator
	rebuild  func() (*dynamo.State, error)
	viewport *Viewport
	renderer *render.Renderer

	opts          Options
	theme         int
	styles        styles
	running       bool
	err           error
	strainHistory []float64
	recording     bool
	frames        []*image.Paletted
	notice        string
	showHelp      bool
}

// NewModel attaches a canvas renderer to s. rebuild produces the initial
// state again for reset.
func NewModel(s *sim.Simulator, rebuild func() (*dynamo.State, error), surfaceW, surfaceH float64, opts Options) Model {
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultHeight
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Title == "" {
		opts.Title = "linkage"
	}
	if opts.GIFPath == "" {
		opts.GIFPath = "linkage.gif"
	}

	vp := NewViewport(NewCanvas(opts.Width, opts.Height), surfaceW, surfaceH)
	r := render.New(vp)
	s.SetRenderer(r)
	r.Render(s.State())

	theme := themeIndex(opts.Theme)
	return Model{
		sim:           s,
		rebuild:       rebuild,
		viewport:      vp,
		renderer:      r,
		opts:          opts,
		theme:         theme,
		styles:        newStyles(Themes[theme]),
		running:       true,
		strainHistory: make([]float64, 0, historyCapacity),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.recording {
				m.toggleRecording()
			}
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "n":
			if !m.running {
				m.step()
			}
		case "r":
			m.reset()
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
			m.styles = newStyles(Themes[m.theme])
		case "g":
			m.toggleRecording()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	if m.err != nil {
		return
	}
	if err := m.sim.Tick(); err != nil {
		m.err = err
		m.running = false
		return
	}
	if len(m.strainHistory) == historyCapacity {
		m.strainHistory = m.strainHistory[1:]
	}
	m.strainHistory = append(m.strainHistory, m.sim.State().MaxStrain())
	if m.recording {
		m.frames = append(m.frames, m.viewport.Canvas().Image(2, color.White, color.Black))
	}
}

func (m *Model) reset() {
	st, err := m.rebuild()
	if err != nil {
		m.err = err
		return
	}
	m.sim.Reset(st)
	m.err = nil
	m.strainHistory = m.strainHistory[:0]
	m.renderer.Render(st)
}

func (m *Model) toggleRecording() {
	if !m.recording {
		m.recording = true
		m.frames = m.frames[:0]
		m.notice = ""
		return
	}
	m.recording = false
	if len(m.frames) == 0 {
		return
	}
	m.notice = fmt.Sprintf("saved %d frames to %s", len(m.frames), m.opts.GIFPath)
	if err := m.saveGIF(); err != nil {
		m.notice = "gif: " + err.Error()
	}
	m.frames = nil
}

func (m *Model) saveGIF() error {
	f, err := os.Create(m.opts.GIFPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeGIF(f, m.frames, 100/m.opts.FPS+1)
}

func (m Model) Running() bool { return m.running }
func (m Model) Err() error    { return m.err }
func (m Model) Theme() Theme  { return Themes[m.theme] }

// View renders the TUI interface.
func (m Model) View() string {
	st := m.sim.State()
	sty := m.styles

	var s strings.Builder
	s.WriteString(sty.header.Render(strings.ToUpper(m.opts.Title)) + "\n")

	switch {
	case m.err != nil:
		s.WriteString(sty.failed.Render("FAILED") + "\n" + sty.value.Render(m.err.Error()) + "\n")
	case m.running:
		s.WriteString(sty.running.Render("RUNNING") + "\n")
	default:
		s.WriteString(sty.paused.Render("PAUSED") + "\n")
	}
	if m.recording {
		s.WriteString(sty.rec.Render(fmt.Sprintf("● REC %d", len(m.frames))) + "\n")
	} else if m.notice != "" {
		s.WriteString(sty.value.Render(m.notice) + "\n")
	}
	s.WriteString("\n")

	if len(m.strainHistory) > 1 {
		chart := asciigraph.Plot(m.strainHistory, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("max strain"))
		s.WriteString(sty.graph.Render(chart) + "\n")
	}

	s.WriteString(sty.label.Render("Tick") + sty.value.Render(humanize.Comma(int64(st.Tick))) + "\n")
	s.WriteString(sty.label.Render("Points") + sty.value.Render(fmt.Sprintf("%d", len(st.Points))) + "\n")
	s.WriteString(sty.label.Render("Sticks") + sty.value.Render(fmt.Sprintf("%d", len(st.Sticks))) + "\n")
	s.WriteString(sty.label.Render("Strain") + sty.value.Render(fmt.Sprintf("%.3f", st.MaxStrain())) + "\n")
	s.WriteString(sty.label.Render("Kinetic") + sty.value.Render(fmt.Sprintf("%.2f", metrics.Kinetic(st))) + "\n")
	if st.Engine != nil {
		s.WriteString(sty.label.Render("Engine") + sty.value.Render(fmt.Sprintf("%.2f rad", st.Engine.Angle)) + "\n")
	}
	s.WriteString(sty.label.Render("Theme") + sty.value.Render(Themes[m.theme].Name) + "\n")

	if m.showHelp {
		s.WriteString(sty.help.Render("space  pause/resume\nn      step once (paused)\nr      reset\nt      cycle theme\ng      record gif\nq      quit"))
	} else {
		s.WriteString(sty.help.Render("SP:Pause N:Step R:Reset\nT:Theme G:Record ?:Help Q:Quit"))
	}

	canvasView := sty.canvas.Render(m.viewport.Canvas().String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, sty.stats.Render(s.String()))
}

// Run starts the full-screen program and blocks until the user quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
