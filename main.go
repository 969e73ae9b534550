package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/askne/specfall/internal/capture"
	"github.com/askne/specfall/internal/config"
	"github.com/askne/specfall/internal/player"
	"github.com/askne/specfall/internal/spectro"
	"github.com/askne/specfall/internal/ui"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: specfall FILE")
		os.Exit(2)
	}
	path := os.Args[1]

	if os.Getenv("SPECFALL_DEBUG") != "" {
		if f, err := tea.LogToFile("specfall.log", "specfall"); err == nil {
			defer f.Close()
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if info.IsDir() {
		fmt.Fprintf(os.Stderr, "Error: %s is a directory\n", path)
		os.Exit(1)
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !player.IsSupportedExt(ext) {
		fmt.Fprintf(os.Stderr, "Error: unsupported format %s (supported: %s)\n", ext, strings.Join(player.SupportedExts, " "))
		os.Exit(1)
	}

	settings := spectro.DefaultSettings()
	cfgPath, err := config.Path()
	if err != nil {
		cfgPath = ""
	} else if st, err := config.Load(cfgPath); err == nil {
		st.Apply(settings)
	}

	// The analyzer needs the stream format, which is only known once the
	// decoder is open; the proxy lets playback start first and attaches the
	// analyzer right after.
	var sink sinkProxy
	p, err := player.New(path, &sink)
	if err != nil {
		switch {
		case errors.Is(err, spectro.ErrDeviceBusy):
			fmt.Fprintln(os.Stderr, "Error: audio device is busy; close other audio applications and retry")
		case errors.Is(err, spectro.ErrAcquisitionDenied):
			fmt.Fprintln(os.Stderr, "Error: audio access denied; check system permissions and retry")
		default:
			fmt.Fprintf(os.Stderr, "Error creating player: %v\n", err)
		}
		os.Exit(1)
	}
	defer p.Close()

	analyzer := capture.NewAnalyzer(p.SampleRate(), p.Channels(), settings.BinCount())
	analyzer.SetGain(settings.Sensitivity())
	sink.Set(analyzer)

	model := ui.New(p, analyzer, settings, player.ReadMetadata(path), cfgPath)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus())

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// sinkProxy forwards PCM once a destination is attached, dropping the few
// blocks decoded before that.
type sinkProxy struct {
	mu  sync.Mutex
	dst player.PCMSink
}

func (s *sinkProxy) Set(dst player.PCMSink) {
	s.mu.Lock()
	s.dst = dst
	s.mu.Unlock()
}

func (s *sinkProxy) WritePCM(p []byte) {
	s.mu.Lock()
	dst := s.dst
	s.mu.Unlock()
	if dst != nil {
		dst.WritePCM(p)
	}
}
