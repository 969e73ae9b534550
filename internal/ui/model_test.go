package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/askne/specfall/internal/capture"
	"github.com/askne/specfall/internal/spectro"
)

// testModel builds a model without a player, enough to exercise keys,
// focus, and geometry handling.
func testModel() Model {
	a := capture.NewAnalyzer(48000, 2, 1024)
	settings := spectro.DefaultSettings()
	return Model{
		analyzer: a,
		settings: settings,
		pipe:     spectro.NewPipeline(a, settings, 32, 8),
	}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestScaleModeKeyToggles(t *testing.T) {
	m := testModel()

	next, _ := m.Update(key("m"))
	m = next.(Model)
	if got := m.settings.ScaleMode(); got != spectro.ScaleMel {
		t.Fatalf("ScaleMode() after m = %v, want mel", got)
	}

	next, _ = m.Update(key("m"))
	m = next.(Model)
	if got := m.settings.ScaleMode(); got != spectro.ScaleLinear {
		t.Fatalf("ScaleMode() after second m = %v, want linear", got)
	}
}

func TestRangeKeysStepTenDb(t *testing.T) {
	m := testModel()
	start := m.settings.DynamicRangeDb()

	next, _ := m.Update(key("["))
	m = next.(Model)
	if got := m.settings.DynamicRangeDb(); got != start-10 {
		t.Fatalf("DynamicRangeDb() after [ = %v, want %v", got, start-10)
	}

	next, _ = m.Update(key("]"))
	m = next.(Model)
	if got := m.settings.DynamicRangeDb(); got != start {
		t.Fatalf("DynamicRangeDb() after ] = %v, want %v", got, start)
	}
}

func TestFFTKeysHalveAndDouble(t *testing.T) {
	m := testModel()
	start := m.settings.BinCount()

	next, _ := m.Update(key("f"))
	m = next.(Model)
	if got := m.settings.BinCount(); got != start/2 {
		t.Fatalf("BinCount() after f = %d, want %d", got, start/2)
	}

	next, _ = m.Update(key("F"))
	m = next.(Model)
	next, _ = m.Update(key("F"))
	m = next.(Model)
	if got := m.settings.BinCount(); got != 2*start {
		t.Fatalf("BinCount() after F F = %d, want %d", got, 2*start)
	}
}

func TestFocusMapsToVisibility(t *testing.T) {
	m := testModel()

	next, _ := m.Update(tea.BlurMsg{})
	m = next.(Model)
	if m.pipe.Visible() {
		t.Fatal("pipeline still visible after blur")
	}

	next, _ = m.Update(tea.FocusMsg{})
	m = next.(Model)
	if !m.pipe.Visible() {
		t.Fatal("pipeline not visible after focus")
	}
}

func TestWindowSizeReservesChrome(t *testing.T) {
	m := testModel()

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(Model)

	// 7 columns go to the time axis; 4 lines to header, freq axis, and help.
	// Each terminal row holds two pixel rows.
	if got := m.pipe.Buffer().Width(); got != 73 {
		t.Fatalf("plot width = %d, want 73", got)
	}
	if got := m.pipe.Buffer().Height(); got != 40 {
		t.Fatalf("plot height = %d, want 40", got)
	}
}

func TestTinyWindowDoesNotPanic(t *testing.T) {
	m := testModel()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 3, Height: 2})
	m = next.(Model)
	if m.pipe.Buffer().Width() != 0 {
		t.Fatalf("plot width = %d for a 3-column window, want 0", m.pipe.Buffer().Width())
	}
}
