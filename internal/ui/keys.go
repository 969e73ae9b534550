package ui

import tea "github.com/charmbracelet/bubbletea"

func isQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return true
	}
	return false
}

func helpText() string {
	return "space pause  m scale  [/] range  -/+ rows  c/C contrast  b/B bright  s/S sens  f/F fft  q quit"
}
