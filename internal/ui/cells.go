package ui

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/askne/specfall/internal/spectro"
)

type colorProfile uint8

const (
	colorNone colorProfile = iota
	colorANSI256
	colorTrueColor
)

var (
	profileOnce sync.Once
	profile     colorProfile
)

func currentColorProfile() colorProfile {
	profileOnce.Do(func() {
		if _, disabled := os.LookupEnv("NO_COLOR"); disabled {
			profile = colorNone
			return
		}
		term := strings.ToLower(os.Getenv("TERM"))
		colorTerm := strings.ToLower(os.Getenv("COLORTERM"))
		switch {
		case strings.Contains(colorTerm, "truecolor"), strings.Contains(colorTerm, "24bit"):
			profile = colorTrueColor
		case strings.Contains(term, "256color"):
			profile = colorANSI256
		case term == "", term == "dumb":
			profile = colorNone
		default:
			profile = colorANSI256
		}
	})
	return profile
}

const noColor = ^uint32(0)

// cellWriter emits the waterfall as half-block cells, one terminal cell per
// two pixel rows: the upper pixel is the foreground of '▀', the lower pixel
// the background. It tracks the active colors so unchanged ones cost no
// escape bytes.
type cellWriter struct {
	profile colorProfile
	fg      uint32
	bg      uint32
}

func newCellWriter() cellWriter {
	return cellWriter{profile: currentColorProfile(), fg: noColor, bg: noColor}
}

func colorKey(c spectro.RGB) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func (w *cellWriter) cell(sb *strings.Builder, top, bottom spectro.RGB) {
	if w.profile == colorNone {
		sb.WriteRune(shadeRune(top, bottom))
		return
	}
	if k := colorKey(top); k != w.fg {
		w.writeColor(sb, 38, top)
		w.fg = k
	}
	if k := colorKey(bottom); k != w.bg {
		w.writeColor(sb, 48, bottom)
		w.bg = k
	}
	sb.WriteRune('▀')
}

func (w *cellWriter) writeColor(sb *strings.Builder, layer int, c spectro.RGB) {
	if w.profile == colorTrueColor {
		fmt.Fprintf(sb, "\x1b[%d;2;%d;%d;%dm", layer, c.R, c.G, c.B)
		return
	}
	fmt.Fprintf(sb, "\x1b[%d;5;%dm", layer, ansi256(c))
}

func (w *cellWriter) reset(sb *strings.Builder) {
	if w.profile == colorNone || (w.fg == noColor && w.bg == noColor) {
		return
	}
	sb.WriteString("\x1b[0m")
	w.fg = noColor
	w.bg = noColor
}

// ansi256 maps an RGB color onto the 6x6x6 xterm cube.
func ansi256(c spectro.RGB) int {
	r := (int(c.R)*5 + 127) / 255
	g := (int(c.G)*5 + 127) / 255
	b := (int(c.B)*5 + 127) / 255
	return 16 + 36*r + 6*g + b
}

var shadeChars = []rune(" .:-=+*#%@")

// shadeRune approximates a cell by brightness when color output is disabled.
func shadeRune(top, bottom spectro.RGB) rune {
	lum := func(c spectro.RGB) float64 {
		return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
	}
	v := (lum(top) + lum(bottom)) / 2
	idx := int(v * float64(len(shadeChars)-1))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(shadeChars) {
		idx = len(shadeChars) - 1
	}
	return shadeChars[idx]
}
