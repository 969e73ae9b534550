package ui

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/askne/specfall/internal/capture"
	"github.com/askne/specfall/internal/config"
	"github.com/askne/specfall/internal/player"
	"github.com/askne/specfall/internal/spectro"
)

// Terminal rows reserved around the waterfall plot.
const (
	headerLines = 2
	axisLines   = 1
	helpLines   = 1

	// Right margin holding the elapsed-time labels.
	timeAxisWidth = 7
)

// Model is the Bubbletea model for the specfall TUI. It owns the driving
// loop: a per-frame tick feeds the pipeline the capture clock, and terminal
// focus maps to pipeline visibility.
type Model struct {
	player   *player.Player
	analyzer *capture.Analyzer
	settings *spectro.Settings
	pipe     *spectro.Pipeline
	meta     player.Metadata
	cfgPath  string

	width    int
	height   int
	finished bool
	quitting bool
}

// New assembles the model around an already-playing player and its analyzer.
// cfgPath is where settings persist on quit ("" disables persistence).
func New(p *player.Player, a *capture.Analyzer, settings *spectro.Settings, meta player.Metadata, cfgPath string) Model {
	pipe := spectro.NewPipeline(a, settings, 0, 0)
	pipe.SetSmoother(spectro.NewSmoother(30, 7.0, 0.9))
	pipe.SetOnResume(p.EnsureRunning)
	return Model{
		player:   p,
		analyzer: a,
		settings: settings,
		pipe:     pipe,
		meta:     meta,
		cfgPath:  cfgPath,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(frameTick(), checkDone(m.player), tea.SetWindowTitle("specfall · "+m.meta.Title))
}

func checkDone(p *player.Player) tea.Cmd {
	return func() tea.Msg {
		<-p.Done()
		return playbackEndedMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizePlot()
		return m, nil

	case tea.FocusMsg:
		m.pipe.SetVisible(true)
		return m, nil

	case tea.BlurMsg:
		m.pipe.SetVisible(false)
		return m, nil

	case frameMsg:
		m.pipe.Tick(m.analyzer.Clock())
		return m, frameTick()

	case playbackEndedMsg:
		m.finished = true
		return m, nil
	}
	return m, nil
}

func (m *Model) resizePlot() {
	plotW := m.width - timeAxisWidth
	plotH := 2 * (m.height - headerLines - axisLines - helpLines)
	if plotW < 0 {
		plotW = 0
	}
	if plotH < 0 {
		plotH = 0
	}
	m.pipe.Resize(plotW, plotH)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if isQuit(msg) {
		m.quitting = true
		m.saveConfig()
		m.player.Close()
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
	}

	s := m.settings
	switch msg.String() {
	case " ":
		m.player.TogglePause()
	case "m":
		if s.ScaleMode() == spectro.ScaleLinear {
			s.SetScaleMode(spectro.ScaleMel)
		} else {
			s.SetScaleMode(spectro.ScaleLinear)
		}
	case "[":
		s.SetDynamicRangeDb(s.DynamicRangeDb() - 10)
	case "]":
		s.SetDynamicRangeDb(s.DynamicRangeDb() + 10)
	case "-", "_":
		s.SetRowsPerSecond(s.RowsPerSecond() - 5)
	case "+", "=":
		s.SetRowsPerSecond(s.RowsPerSecond() + 5)
	case "c":
		s.SetContrast(s.Contrast() - 0.1)
	case "C":
		s.SetContrast(s.Contrast() + 0.1)
	case "b":
		s.SetLuminosity(s.Luminosity() - 0.05)
	case "B":
		s.SetLuminosity(s.Luminosity() + 0.05)
	case "s":
		s.SetSensitivity(s.Sensitivity() / 1.25)
		m.analyzer.SetGain(s.Sensitivity())
	case "S":
		s.SetSensitivity(s.Sensitivity() * 1.25)
		m.analyzer.SetGain(s.Sensitivity())
	case "f":
		s.SetBinCount(s.BinCount() / 2)
		m.analyzer.SetBinCount(s.BinCount())
	case "F":
		s.SetBinCount(s.BinCount() * 2)
		m.analyzer.SetBinCount(s.BinCount())
	}
	return m, nil
}

func (m Model) saveConfig() {
	if m.cfgPath == "" {
		return
	}
	if err := config.Save(m.cfgPath, config.FromSettings(m.settings, "")); err != nil {
		log.Printf("saving settings: %v", err)
	}
}
