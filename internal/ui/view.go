package ui

import (
	"fmt"
	"strings"

	"github.com/askne/specfall/internal/spectro"
	"github.com/askne/specfall/internal/util"
)

func (m Model) View() string {
	if m.quitting || m.width <= 0 || m.height <= 0 {
		return ""
	}

	var b strings.Builder
	m.headerView(&b)
	m.waterfallView(&b)
	m.freqAxisView(&b)
	b.WriteString(helpStyle.Render(helpText()))
	return b.String()
}

func (m Model) headerView(b *strings.Builder) {
	title := m.meta.Title
	switch {
	case m.finished:
		title += "  [done]"
	case m.player.Paused():
		title += "  [paused]"
	case !m.pipe.Visible():
		title += fmt.Sprintf("  [hidden, %d queued]", m.pipe.QueueLen())
	}
	b.WriteString(titleStyle.Render(truncate(title, m.width)))
	if rem := m.width - len([]rune(title)); m.meta.Artist != "" && rem > 3 {
		b.WriteString(artistStyle.Render(truncate("  "+m.meta.Artist, rem)))
	}
	b.WriteByte('\n')

	s := m.settings
	status := fmt.Sprintf("%s  %s  %.0fdB  %.0f rows/s  fft %d  con %.1f  lum %+.2f  sens %.2f  %s",
		util.FormatDuration(m.player.Position()),
		s.ScaleMode(),
		s.DynamicRangeDb(),
		s.RowsPerSecond(),
		2*s.BinCount(),
		s.Contrast(),
		s.Luminosity(),
		s.Sensitivity(),
		util.FormatHz(m.player.SampleRate()),
	)
	b.WriteString(statusStyle.Render(truncate(status, m.width)))
	b.WriteByte('\n')
}

// waterfallView blits the scroll buffer as half-block cells and overlays the
// time axis labels in the right margin, redrawn every frame.
func (m Model) waterfallView(b *strings.Builder) {
	buf := m.pipe.Buffer()
	cellRows := buf.Height() / 2
	if buf.Width() <= 0 || cellRows <= 0 {
		return
	}

	labels := make(map[int]string)
	for _, t := range spectro.TimeTicks(m.pipe.Context(), buf.Height()) {
		labels[t.Pos/2] = t.Label
	}

	w := newCellWriter()
	for cy := 0; cy < cellRows; cy++ {
		for x := 0; x < buf.Width(); x++ {
			w.cell(b, buf.At(x, 2*cy), buf.At(x, 2*cy+1))
		}
		w.reset(b)
		if label, ok := labels[cy]; ok {
			b.WriteString(axisStyle.Render(fmt.Sprintf("◄%s", label)))
		}
		b.WriteByte('\n')
	}
}

// freqAxisView draws the bottom frequency scale: a tick mark under each nice
// frequency with its label placed after it, overlap-suppressed left to right.
func (m Model) freqAxisView(b *strings.Builder) {
	width := m.pipe.Buffer().Width()
	if width <= 0 {
		b.WriteByte('\n')
		return
	}

	line := make([]rune, width)
	for i := range line {
		line[i] = ' '
	}
	lastEnd := -2
	for _, t := range spectro.FreqTicks(m.pipe.Context(), width, m.settings.ScaleMode()) {
		if t.Pos <= lastEnd {
			continue
		}
		label := []rune("┴" + t.Label)
		if t.Pos+len(label) > width {
			continue
		}
		copy(line[t.Pos:], label)
		lastEnd = t.Pos + len(label)
	}
	b.WriteString(axisStyle.Render(string(line)))
	b.WriteByte('\n')
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
