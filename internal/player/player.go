// Package player decodes one audio file and renders it to the system audio
// device, teeing every PCM block into the analysis tap so the waterfall stays
// in lock-step with what is audible.
package player

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/askne/specfall/internal/spectro"
)

// PCMSink receives every PCM block on its way to the audio device.
type PCMSink interface {
	WritePCM(p []byte)
}

// Player streams a decoded file through oto.
type Player struct {
	file   *os.File
	stream pcmStream
	sink   PCMSink
	out    *oto.Player

	sampleRate int
	channels   int

	done     chan struct{}
	doneOnce sync.Once

	mu     sync.Mutex
	pos    int64 // bytes delivered to the device
	paused bool
	closed bool
}

var (
	otoCtx  *oto.Context
	otoOnce sync.Once
	otoErr  error
)

// The oto context is process-wide; the first file's format wins. Fine for a
// one-file-per-invocation tool.
func initOto(sampleRate, channels int) (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channels,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		otoCtx, ready, otoErr = oto.NewContext(op)
		if otoErr == nil {
			<-ready
		}
	})
	return otoCtx, otoErr
}

// deviceError classifies an audio device init failure onto the pipeline's
// acquisition sentinels so the host can message and retry appropriately.
func deviceError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "busy") || strings.Contains(msg, "in use"):
		return fmt.Errorf("%w: %v", spectro.ErrDeviceBusy, err)
	case strings.Contains(msg, "denied") || strings.Contains(msg, "permission"):
		return fmt.Errorf("%w: %v", spectro.ErrAcquisitionDenied, err)
	default:
		return fmt.Errorf("%w: %v", spectro.ErrDeviceUnavailable, err)
	}
}

// New opens path, picks a decoder by extension, and starts playback. Every
// decoded block is forwarded to sink (may be nil) before it reaches the
// device.
func New(path string, sink PCMSink) (*Player, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	stream, err := openStream(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	ctx, err := initOto(stream.SampleRate(), stream.Channels())
	if err != nil {
		f.Close()
		return nil, deviceError(err)
	}

	p := &Player{
		file:       f,
		stream:     stream,
		sink:       sink,
		sampleRate: stream.SampleRate(),
		channels:   stream.Channels(),
		done:       make(chan struct{}),
	}
	p.out = ctx.NewPlayer(p)
	p.out.Play()
	return p, nil
}

// Read implements io.Reader for the oto player. It runs on the playback
// goroutine: decode, tee to the sink, count progress, flag end of stream.
func (p *Player) Read(b []byte) (int, error) {
	n, err := p.stream.Read(b)
	if n > 0 {
		if p.sink != nil {
			p.sink.WritePCM(b[:n])
		}
		p.mu.Lock()
		p.pos += int64(n)
		p.mu.Unlock()
	}
	if err == io.EOF {
		p.doneOnce.Do(func() { close(p.done) })
	}
	return n, err
}

// Done is closed when the stream has been fully decoded.
func (p *Player) Done() <-chan struct{} { return p.done }

func (p *Player) SampleRate() int { return p.sampleRate }
func (p *Player) Channels() int   { return p.channels }

// Position returns how much audio has been delivered to the device.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	pos := p.pos
	p.mu.Unlock()
	bytesPerSec := int64(p.sampleRate * p.channels * 2)
	if bytesPerSec == 0 {
		return 0
	}
	return time.Duration(pos * int64(time.Second) / bytesPerSec)
}

// TogglePause flips user-requested pause state.
func (p *Player) TogglePause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	if p.paused {
		p.out.Play()
	} else {
		p.out.Pause()
	}
	p.paused = !p.paused
}

// Paused reports whether the user paused playback.
func (p *Player) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// EnsureRunning resumes the device if it stalled while hidden and the user
// did not explicitly pause. Used as the pipeline's visibility-restore hook.
func (p *Player) EnsureRunning() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || p.paused {
		return
	}
	if !p.out.IsPlaying() {
		p.out.Play()
	}
}

// Close stops playback and releases the file. Safe to call more than once.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	p.out.Close()
	p.file.Close()
	p.doneOnce.Do(func() { close(p.done) })
}
